package discord

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"rpsboard/internal/application"
	"rpsboard/internal/models"
	"rpsboard/internal/view"

	"github.com/bwmarrin/discordgo"
)

var cardColors = []int{colorGold, colorSilver, colorBronze}

func studentEmbeds(report *application.StudentReport, loc *time.Location) []*discordgo.MessageEmbed {
	summary := &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("학번 %s 조회 결과", report.Query),
		Description: strings.Join(view.SummaryLines(report.Summary, application.WinRate(&report.Summary)), "\n"),
		Color:       colorBlue,
	}
	if len(report.MatchedIDs) > 1 {
		summary.Footer = &discordgo.MessageEmbedFooter{
			Text: "일치한 학번: " + strings.Join(report.MatchedIDs, ", "),
		}
	}

	if len(report.Log) == 0 {
		summary.Description += "\n\n기록이 없습니다."
		return []*discordgo.MessageEmbed{summary}
	}

	rows := view.LogRows(report.Log, loc)
	shown := rows
	if len(shown) > logTableLimit {
		shown = shown[:logTableLimit]
	}
	cells := make([][]string, 0, len(shown))
	for _, r := range shown {
		cells = append(cells, r.Cells())
	}

	title := "게임 기록"
	if len(rows) > len(shown) {
		title = fmt.Sprintf("게임 기록 (최근 %d / %d건)", len(shown), len(rows))
	}

	log := &discordgo.MessageEmbed{
		Title:       title,
		Description: codeBlock(view.Table(view.LogHeaders, cells), maxEmbedLength),
		Color:       colorGray,
	}
	return []*discordgo.MessageEmbed{summary, log}
}

// rankingEmbeds renders the leaderboard cards followed by the ranking table.
func rankingEmbeds(r *models.Ranking) []*discordgo.MessageEmbed {
	header := fmt.Sprintf("%s ~ %s | 정렬: %s",
		r.Start.Format("2006-01-02"), r.End.Format("2006-01-02"), sortKeyNames[r.SortKey])

	if r.Empty() {
		return []*discordgo.MessageEmbed{{
			Title:       "사용자 랭킹",
			Description: header + "\n\n해당 기간에 기록이 없습니다.",
			Color:       colorGray,
		}}
	}

	embeds := make([]*discordgo.MessageEmbed, 0, 4)
	for idx, card := range view.LeaderboardCards(r.Entries) {
		embeds = append(embeds, cardEmbed(card, cardColors[idx]))
	}

	rows := view.RankingRows(r.Top(rankingTableLimit))
	cells := make([][]string, 0, len(rows))
	for _, row := range rows {
		cells = append(cells, row.Cells)
	}

	footer := fmt.Sprintf("총 %d명", len(r.Entries))
	if len(r.Entries) > len(rows) {
		footer = fmt.Sprintf("상위 %d명 / 총 %d명", len(rows), len(r.Entries))
	}

	embeds = append(embeds, &discordgo.MessageEmbed{
		Title:       "사용자 랭킹",
		Description: header + "\n" + codeBlock(view.Table(view.RankingHeaders, cells), maxEmbedLength-len(header)-1),
		Color:       colorGray,
		Footer:      &discordgo.MessageEmbedFooter{Text: footer},
		Timestamp:   r.GeneratedAt.Format(time.RFC3339),
	})
	return embeds
}

func cardEmbed(c view.LeaderboardCard, color int) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title: c.Badge,
		Color: color,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "학번", Value: c.StudentID, Inline: true},
			{Name: "MVP 점수", Value: c.MVPScore, Inline: true},
			{Name: "승률", Value: c.WinRate + "%", Inline: true},
			{Name: "보상", Value: c.Reward, Inline: true},
			{Name: "충전", Value: c.Charge, Inline: true},
			{Name: "출금", Value: c.Withdraw, Inline: true},
		},
	}
}

func alertEmbed(msg string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "⚠️ 알림",
		Description: msg,
		Color:       colorRed,
	}
}

// codeBlock wraps text in a fenced block, cutting whole lines to fit limit.
func codeBlock(text string, limit int) string {
	const fence = "```"
	budget := limit - 2*len(fence) - 2
	if len(text) > budget {
		cut := text[:budget]
		if nl := strings.LastIndexByte(cut, '\n'); nl > 0 {
			cut = cut[:nl]
		}
		for !utf8.ValidString(cut) {
			cut = cut[:len(cut)-1]
		}
		text = cut
	}
	return fence + "\n" + text + "\n" + fence
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
