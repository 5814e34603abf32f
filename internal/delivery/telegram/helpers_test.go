package telegram

import (
	"strings"
	"testing"
	"time"

	"rpsboard/internal/application"
	"rpsboard/internal/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
)

func TestRankingRequest(t *testing.T) {
	assert.Equal(t,
		application.RankingRequest{Start: "2024-05-01", End: "2024-05-31", SortKey: "wins"},
		rankingRequest([]string{"2024-05-01", "2024-05-31", "wins"}))
	assert.Equal(t, application.RankingRequest{Start: "2024-05-01"}, rankingRequest([]string{"2024-05-01"}))
	assert.Equal(t, application.RankingRequest{}, rankingRequest(nil))
}

func TestRankingMessage(t *testing.T) {
	r := &models.Ranking{
		Start:   time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		End:     time.Date(2024, 5, 31, 0, 0, 0, 0, time.UTC),
		SortKey: models.SortMVPScore,
		Entries: []models.RankingEntry{{
			Rank:     1,
			Stats:    models.PlayerStats{StudentID: "<b>1", GamesPlayed: 2, Wins: 1, Losses: 1},
			WinRate:  50,
			MVPScore: 20.3,
		}},
	}

	msg := rankingMessage(r)
	assert.Contains(t, msg, "2024-05-01 ~ 2024-05-31")
	assert.Contains(t, msg, "👑 GOLD MVP")
	assert.Contains(t, msg, "&lt;b&gt;1")
	assert.NotContains(t, msg, "<b>1")
	assert.Contains(t, msg, "<pre>")
}

func TestRankingMessage_Empty(t *testing.T) {
	msg := rankingMessage(&models.Ranking{SortKey: models.SortWins})
	assert.Contains(t, msg, "기록이 없습니다")
	assert.NotContains(t, msg, "<pre>")
}

func TestStudentMessage(t *testing.T) {
	report := &application.StudentReport{
		Query:      "2024",
		Log:        []models.Event{{StudentID: "20240001", RawType: models.TagCharge, Amount: 500, HasAmount: true}},
		Summary:    models.PlayerStats{StudentID: "2024", TotalCharged: 500},
		MatchedIDs: []string{"20240001"},
	}

	msg := studentMessage(report, time.UTC)
	assert.Contains(t, msg, "학번 2024 조회 결과")
	assert.Contains(t, msg, "충전: 500")
	assert.NotContains(t, msg, "일치한 학번")
	assert.Contains(t, msg, "<pre>")
}

func TestPre_DropsLinesBeyondLimit(t *testing.T) {
	text := strings.Repeat("a&b\n", 100)
	out := pre(strings.TrimRight(text, "\n"), 60)

	assert.LessOrEqual(t, len(out), 60)
	assert.True(t, strings.HasPrefix(out, "<pre>a&amp;b"))
}

func TestScopeKey(t *testing.T) {
	assert.Equal(t, "telegram:-100", scopeKey(-100))
}

func commandMessage(text string, commandLen int) *tgbotapi.Message {
	return &tgbotapi.Message{
		Text:     text,
		Entities: []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: commandLen}},
	}
}

func TestStudentQuery_KeepsInnerSpaces(t *testing.T) {
	assert.Equal(t, "10101 김", studentQuery(commandMessage("/student  10101 김 ", 8)))
	assert.Equal(t, "10101", studentQuery(commandMessage("/student 10101", 8)))
	assert.Empty(t, studentQuery(commandMessage("/student", 8)))
}
