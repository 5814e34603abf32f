package telegram

import (
	"fmt"
	"html"
	"strings"
	"time"
	"unicode/utf8"

	"rpsboard/internal/application"
	"rpsboard/internal/models"
	"rpsboard/internal/view"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func (b *Bot) sendText(chatID int64, text string) {
	if text == "" {
		return
	}
	b.send(tgbotapi.NewMessage(chatID, truncate(text, maxMessageLen)))
}

func (b *Bot) sendHTML(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	b.send(msg)
}

func (b *Bot) send(msg tgbotapi.MessageConfig) {
	if _, err := b.bot.Send(msg); err != nil {
		b.logger.Error("failed to send telegram message: %v", err)
	}
}

// sendError shows user errors as an alert and logs the rest.
func (b *Bot) sendError(chatID int64, command string, err error) {
	if application.IsUserError(err) {
		b.sendText(chatID, "⚠️ "+err.Error())
		return
	}
	b.logger.Error("%s failed: %v", command, err)
	b.sendText(chatID, "요청을 처리하는 중 오류가 발생했습니다.")
}

func studentMessage(report *application.StudentReport, loc *time.Location) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "<b>학번 %s 조회 결과</b>\n", html.EscapeString(report.Query))
	for _, line := range view.SummaryLines(report.Summary, application.WinRate(&report.Summary)) {
		sb.WriteString(html.EscapeString(line))
		sb.WriteString("\n")
	}
	if len(report.MatchedIDs) > 1 {
		fmt.Fprintf(&sb, "일치한 학번: %s\n", html.EscapeString(strings.Join(report.MatchedIDs, ", ")))
	}

	if len(report.Log) == 0 {
		sb.WriteString("\n기록이 없습니다.")
		return sb.String()
	}

	rows := view.LogRows(report.Log, loc)
	if len(rows) > logTableLimit {
		fmt.Fprintf(&sb, "\n최근 %d / %d건\n", logTableLimit, len(rows))
		rows = rows[:logTableLimit]
	}
	cells := make([][]string, 0, len(rows))
	for _, r := range rows {
		cells = append(cells, r.Cells())
	}

	return sb.String() + pre(view.Table(view.LogHeaders, cells), maxMessageLen-sb.Len())
}

func rankingMessage(r *models.Ranking) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "<b>사용자 랭킹</b>\n%s ~ %s | 정렬: %s\n",
		r.Start.Format("2006-01-02"), r.End.Format("2006-01-02"), html.EscapeString(string(r.SortKey)))

	if r.Empty() {
		sb.WriteString("\n해당 기간에 기록이 없습니다.")
		return sb.String()
	}

	sb.WriteString("\n")
	for _, c := range view.LeaderboardCards(r.Entries) {
		fmt.Fprintf(&sb, "%s <b>%s</b> | MVP %s | 승률 %s%% | 보상 %s | 충전 %s | 출금 %s\n",
			c.Badge, html.EscapeString(c.StudentID), c.MVPScore, c.WinRate, c.Reward, c.Charge, c.Withdraw)
	}

	rows := view.RankingRows(r.Top(rankingTableLimit))
	cells := make([][]string, 0, len(rows))
	for _, row := range rows {
		cells = append(cells, row.Cells)
	}
	if len(r.Entries) > len(rows) {
		fmt.Fprintf(&sb, "\n상위 %d명 / 총 %d명\n", len(rows), len(r.Entries))
	}

	return sb.String() + pre(view.Table(view.RankingHeaders, cells), maxMessageLen-sb.Len())
}

// pre escapes text into a <pre> block, dropping trailing lines beyond limit.
func pre(text string, limit int) string {
	const open, closing = "<pre>", "</pre>"
	escaped := html.EscapeString(text)
	budget := limit - len(open) - len(closing)
	for len(escaped) > budget {
		nl := strings.LastIndexByte(text, '\n')
		if nl <= 0 {
			return ""
		}
		text = text[:nl]
		escaped = html.EscapeString(text)
	}
	return open + escaped + closing
}

func truncate(msg string, limit int) string {
	if len(msg) <= limit {
		return msg
	}
	const suffix = "..."
	cut := msg[:limit-len(suffix)]
	for !utf8.ValidString(cut) {
		cut = cut[:len(cut)-1]
	}
	return cut + suffix
}
