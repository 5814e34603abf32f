package discord

import (
	"rpsboard/internal/models"

	"github.com/bwmarrin/discordgo"
)

var sortKeyNames = map[models.SortKey]string{
	models.SortGamesPlayed:    "총 게임",
	models.SortWins:           "승",
	models.SortDraws:          "무",
	models.SortLosses:         "패",
	models.SortWinRate:        "승률",
	models.SortTotalCharged:   "충전",
	models.SortTotalReward:    "보상",
	models.SortTotalWithdrawn: "출금",
	models.SortMVPScore:       "MVP 점수",
}

func (b *Bot) addCommands(commands ...*discordgo.ApplicationCommand) {
	b.commands = append(b.commands, commands...)
}

func dateRangeOptions() []*discordgo.ApplicationCommandOption {
	return []*discordgo.ApplicationCommandOption{
		{Type: discordgo.ApplicationCommandOptionString, Name: "start", Description: "시작일 YYYY-MM-DD", Required: true},
		{Type: discordgo.ApplicationCommandOptionString, Name: "end", Description: "종료일 YYYY-MM-DD", Required: true},
		{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "sort",
			Description: "정렬 기준 (기본: MVP 점수)",
			Required:    false,
			Choices:     sortChoices(),
		},
	}
}

func sortChoices() []*discordgo.ApplicationCommandOptionChoice {
	choices := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(models.SortKeys))
	for _, k := range models.SortKeys {
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{Name: sortKeyNames[k], Value: string(k)})
	}
	return choices
}

func (b *Bot) newStudentCommand() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        "student",
		Description: "학번으로 게임 기록 조회",
		Options: []*discordgo.ApplicationCommandOption{
			{Type: discordgo.ApplicationCommandOptionString, Name: "id", Description: "학번 (앞자리 검색 가능)", Required: true},
		},
	}
}

func (b *Bot) newRankingCommand() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        "ranking",
		Description: "기간별 사용자 랭킹 생성",
		Options:     dateRangeOptions(),
	}
}

func (b *Bot) newExportCommand() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        "export",
		Description: "마지막 랭킹을 엑셀로 내보내기",
	}
}

func (b *Bot) newWatchCommand() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        "watch",
		Description: "이 채널의 랭킹을 주기적으로 갱신 (관리자)",
		Options:     dateRangeOptions(),
	}
}

func (b *Bot) newUnwatchCommand() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        "unwatch",
		Description: "이 채널의 자동 갱신 중지 (관리자)",
	}
}

func (b *Bot) newSyncSheetCommand() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        "sync_sheet",
		Description: "마지막 랭킹을 Google Sheet에 동기화 (관리자)",
	}
}

func (b *Bot) newResetCommand() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        "reset",
		Description: "이 채널의 랭킹과 자동 갱신 초기화 (관리자)",
	}
}
