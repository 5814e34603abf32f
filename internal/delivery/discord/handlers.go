package discord

import (
	"bytes"
	"fmt"

	"rpsboard/internal/application"
	"rpsboard/internal/models"

	"github.com/bwmarrin/discordgo"
)

func (b *Bot) handleStudent(s *discordgo.Session, i *discordgo.Interaction) {
	id := optionString(i, "id")

	b.deferResponse(s, i)

	ctx, cancel := b.requestContext()
	defer cancel()

	report, err := b.services.Dashboard.LookupStudent(ctx, id)
	if err != nil {
		b.failDeferred(s, i, "student", err)
		return
	}

	b.editEmbeds(s, i, studentEmbeds(report, b.loc))
}

func (b *Bot) handleRanking(s *discordgo.Session, i *discordgo.Interaction) {
	req := rankingRequest(i)

	b.deferResponse(s, i)

	ctx, cancel := b.requestContext()
	defer cancel()

	ranking, err := b.services.Dashboard.GenerateRanking(ctx, scopeKey(i.ChannelID), req)
	if err != nil {
		b.failDeferred(s, i, "ranking", err)
		return
	}

	b.editEmbeds(s, i, rankingEmbeds(ranking))
}

func (b *Bot) handleExport(s *discordgo.Session, i *discordgo.Interaction) {
	b.deferResponse(s, i)

	ctx, cancel := b.requestContext()
	defer cancel()

	data, err := b.services.Dashboard.ExportLatest(ctx, scopeKey(i.ChannelID))
	if err != nil {
		b.failDeferred(s, i, "export", err)
		return
	}

	content := "랭킹 엑셀 파일이 준비되었습니다."
	_, err = s.InteractionResponseEdit(i, &discordgo.WebhookEdit{
		Content: &content,
		Files: []*discordgo.File{
			{Name: application.ExportFileName, Reader: bytes.NewReader(data)},
		},
	})
	if err != nil {
		b.logger.Error("failed to send export: %v", err)
	}
}

func (b *Bot) handleWatch(s *discordgo.Session, i *discordgo.Interaction) {
	req := rankingRequest(i)
	scope := scopeKey(i.ChannelID)
	channelID := i.ChannelID

	err := b.services.Refresher.Watch(scope, req, func(ranking *models.Ranking, err error) {
		if err != nil {
			msg := "랭킹 자동 갱신에 실패했습니다."
			if application.IsUserError(err) {
				msg = err.Error()
			}
			if _, sendErr := s.ChannelMessageSend(channelID, msg); sendErr != nil {
				b.logger.Error("failed to report refresh error: %v", sendErr)
			}
			return
		}
		if _, sendErr := s.ChannelMessageSendEmbeds(channelID, rankingEmbeds(ranking)); sendErr != nil {
			b.logger.Error("failed to post refreshed ranking: %v", sendErr)
		}
	})
	if err != nil {
		b.respondAlert(s, i, err.Error())
		return
	}

	b.mu.RLock()
	ctx := b.ctx
	b.mu.RUnlock()
	b.services.Refresher.Trigger(ctx, scope)

	b.respondMessage(s, i, fmt.Sprintf("%s ~ %s 랭킹을 자동 갱신합니다.", req.Start, req.End), false)
}

func (b *Bot) handleUnwatch(s *discordgo.Session, i *discordgo.Interaction) {
	if !b.services.Refresher.Unwatch(scopeKey(i.ChannelID)) {
		b.respondMessage(s, i, "이 채널에는 자동 갱신이 설정되어 있지 않습니다.", true)
		return
	}
	b.respondMessage(s, i, "자동 갱신을 중지했습니다.", false)
}

func (b *Bot) handleReset(s *discordgo.Session, i *discordgo.Interaction) {
	scope := scopeKey(i.ChannelID)
	b.services.Refresher.Unwatch(scope)

	ctx, cancel := b.requestContext()
	defer cancel()

	if err := b.services.Dashboard.ClearRanking(ctx, scope); err != nil {
		b.logger.Error("reset failed: %v", err)
		b.respondMessage(s, i, "초기화 중 오류가 발생했습니다.", true)
		return
	}
	b.respondMessage(s, i, "이 채널의 랭킹을 초기화했습니다.", false)
}

func (b *Bot) handleSyncSheet(s *discordgo.Session, i *discordgo.Interaction) {
	if b.services.Sheets == nil {
		b.respondMessage(s, i, "Google Sheets가 설정되어 있지 않습니다.", true)
		return
	}

	b.deferResponse(s, i)

	ctx, cancel := b.requestContext()
	defer cancel()

	ranking, err := b.services.Dashboard.LatestRanking(ctx, scopeKey(i.ChannelID))
	if err != nil {
		b.failDeferred(s, i, "sync_sheet", err)
		return
	}

	url, err := b.services.Sheets.SyncRanking(ctx, ranking)
	if err != nil {
		b.failDeferred(s, i, "sync_sheet", err)
		return
	}

	b.editContent(s, i, fmt.Sprintf("시트가 업데이트되었습니다.\n링크: %s", url))
}

// failDeferred reports err on an already deferred interaction. User errors
// become an ephemeral alert; anything else is logged and answered generically.
func (b *Bot) failDeferred(s *discordgo.Session, i *discordgo.Interaction, command string, err error) {
	if !application.IsUserError(err) {
		b.logger.Error("%s failed: %v", command, err)
		b.editContent(s, i, "요청을 처리하는 중 오류가 발생했습니다.")
		return
	}

	if delErr := s.InteractionResponseDelete(i); delErr != nil {
		b.logger.Warn("failed to delete deferred response: %v", delErr)
	}
	_, fErr := s.FollowupMessageCreate(i, true, &discordgo.WebhookParams{
		Embeds: []*discordgo.MessageEmbed{alertEmbed(err.Error())},
		Flags:  discordgo.MessageFlagsEphemeral,
	})
	if fErr != nil {
		b.logger.Error("failed to send alert: %v", fErr)
	}
}

func (b *Bot) editContent(s *discordgo.Session, i *discordgo.Interaction, msg string) {
	msg = truncate(msg, maxMessageLength)
	if _, err := s.InteractionResponseEdit(i, &discordgo.WebhookEdit{Content: &msg}); err != nil {
		b.logger.Error("failed to edit response: %v", err)
	}
}

func (b *Bot) editEmbeds(s *discordgo.Session, i *discordgo.Interaction, embeds []*discordgo.MessageEmbed) {
	if _, err := s.InteractionResponseEdit(i, &discordgo.WebhookEdit{Embeds: &embeds}); err != nil {
		b.logger.Error("failed to edit response: %v", err)
	}
}

func rankingRequest(i *discordgo.Interaction) application.RankingRequest {
	return application.RankingRequest{
		Start:   optionString(i, "start"),
		End:     optionString(i, "end"),
		SortKey: optionString(i, "sort"),
	}
}

func optionString(i *discordgo.Interaction, name string) string {
	for _, opt := range i.ApplicationCommandData().Options {
		if opt.Name == name {
			return opt.StringValue()
		}
	}
	return ""
}
