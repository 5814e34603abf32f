package telegram

import (
	"strings"

	"rpsboard/internal/application"
	"rpsboard/internal/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const helpText = "RPS 랭킹 봇\n\n" +
	"/student [학번] - 게임 기록 조회\n" +
	"/ranking [시작일] [종료일] [정렬] - 랭킹 생성\n" +
	"/export - 마지막 랭킹 엑셀 다운로드\n\n" +
	"관리자:\n" +
	"/watch [시작일] [종료일] [정렬] - 자동 갱신\n" +
	"/unwatch - 자동 갱신 중지\n" +
	"/reset - 랭킹 초기화\n" +
	"/sync_sheet - Google Sheet 동기화\n\n" +
	"날짜 형식: YYYY-MM-DD"

func (b *Bot) handleCommand(msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	args := strings.Fields(msg.CommandArguments())

	switch msg.Command() {
	case "start", "help":
		b.sendText(chatID, helpText)
	case "student":
		b.handleStudent(chatID, studentQuery(msg))
	case "ranking":
		b.handleRanking(chatID, args)
	case "export":
		b.handleExport(chatID)
	case "watch", "unwatch", "reset", "sync_sheet":
		if msg.From == nil || !b.isAdmin(msg.From.ID) {
			b.sendText(chatID, "권한이 없습니다.")
			return
		}
		b.handleAdminCommand(chatID, msg.Command(), args)
	default:
		b.sendText(chatID, "알 수 없는 명령입니다. /help 를 참고하세요.")
	}
}

func (b *Bot) handleAdminCommand(chatID int64, command string, args []string) {
	switch command {
	case "watch":
		b.handleWatch(chatID, args)
	case "unwatch":
		if !b.services.Refresher.Unwatch(scopeKey(chatID)) {
			b.sendText(chatID, "이 채팅에는 자동 갱신이 설정되어 있지 않습니다.")
			return
		}
		b.sendText(chatID, "자동 갱신을 중지했습니다.")
	case "reset":
		b.services.Refresher.Unwatch(scopeKey(chatID))
		ctx, cancel := b.requestContext()
		defer cancel()
		if err := b.services.Dashboard.ClearRanking(ctx, scopeKey(chatID)); err != nil {
			b.sendError(chatID, "reset", err)
			return
		}
		b.sendText(chatID, "이 채팅의 랭킹을 초기화했습니다.")
	case "sync_sheet":
		b.handleSyncSheet(chatID)
	}
}

func (b *Bot) handleStudent(chatID int64, id string) {
	ctx, cancel := b.requestContext()
	defer cancel()

	report, err := b.services.Dashboard.LookupStudent(ctx, id)
	if err != nil {
		b.sendError(chatID, "student", err)
		return
	}
	b.sendHTML(chatID, studentMessage(report, b.loc))
}

func (b *Bot) handleRanking(chatID int64, args []string) {
	ctx, cancel := b.requestContext()
	defer cancel()

	ranking, err := b.services.Dashboard.GenerateRanking(ctx, scopeKey(chatID), rankingRequest(args))
	if err != nil {
		b.sendError(chatID, "ranking", err)
		return
	}
	b.sendHTML(chatID, rankingMessage(ranking))
}

func (b *Bot) handleExport(chatID int64) {
	ctx, cancel := b.requestContext()
	defer cancel()

	data, err := b.services.Dashboard.ExportLatest(ctx, scopeKey(chatID))
	if err != nil {
		b.sendError(chatID, "export", err)
		return
	}

	doc := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{Name: application.ExportFileName, Bytes: data})
	if _, err := b.bot.Send(doc); err != nil {
		b.logger.Error("failed to send export: %v", err)
	}
}

func (b *Bot) handleWatch(chatID int64, args []string) {
	req := rankingRequest(args)
	scope := scopeKey(chatID)

	err := b.services.Refresher.Watch(scope, req, func(ranking *models.Ranking, err error) {
		if err != nil {
			b.sendError(chatID, "refresh", err)
			return
		}
		b.sendHTML(chatID, rankingMessage(ranking))
	})
	if err != nil {
		b.sendError(chatID, "watch", err)
		return
	}

	b.mu.RLock()
	ctx := b.ctx
	b.mu.RUnlock()
	b.services.Refresher.Trigger(ctx, scope)

	b.sendText(chatID, req.Start+" ~ "+req.End+" 랭킹을 자동 갱신합니다.")
}

func (b *Bot) handleSyncSheet(chatID int64) {
	if b.services.Sheets == nil {
		b.sendText(chatID, "Google Sheets가 설정되어 있지 않습니다.")
		return
	}

	ctx, cancel := b.requestContext()
	defer cancel()

	ranking, err := b.services.Dashboard.LatestRanking(ctx, scopeKey(chatID))
	if err != nil {
		b.sendError(chatID, "sync_sheet", err)
		return
	}
	url, err := b.services.Sheets.SyncRanking(ctx, ranking)
	if err != nil {
		b.sendError(chatID, "sync_sheet", err)
		return
	}
	b.sendText(chatID, "시트가 업데이트되었습니다.\n링크: "+url)
}

// studentQuery keeps inner spaces so ids like "10101 김" search as typed.
func studentQuery(msg *tgbotapi.Message) string {
	return strings.TrimSpace(msg.CommandArguments())
}

func rankingRequest(args []string) application.RankingRequest {
	var req application.RankingRequest
	if len(args) > 0 {
		req.Start = args[0]
	}
	if len(args) > 1 {
		req.End = args[1]
	}
	if len(args) > 2 {
		req.SortKey = args[2]
	}
	return req
}
