// Package view projects events and rankings into display rows and cards.
// It holds no business rules beyond formatting.
package view

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/width"

	"rpsboard/internal/models"
)

const (
	StyleGold   = "mvp-gold"
	StyleSilver = "mvp-silver"
	StyleBronze = "mvp-bronze"

	emptyCell = "-"
	columnGap = 2
)

var (
	LogHeaders     = []string{"시간", "종류", "내용"}
	RankingHeaders = []string{"순위", "학번", "총게임", "승", "무", "패", "승률", "충전", "보상", "출금", "MVP"}

	badges = []string{"👑 GOLD MVP", "🥈 SILVER", "🥉 BRONZE"}
	styles = []string{StyleGold, StyleSilver, StyleBronze}
)

type LogRow struct {
	Time   string
	Type   string
	Detail string
}

func (r LogRow) Cells() []string {
	return []string{r.Time, r.Type, r.Detail}
}

type RankingRow struct {
	Cells []string
	Style string
}

type LeaderboardCard struct {
	Badge     string
	StudentID string
	MVPScore  string
	WinRate   string
	Reward    string
	Charge    string
	Withdraw  string
}

// LogRows keeps the order events were delivered in.
func LogRows(events []models.Event, loc *time.Location) []LogRow {
	rows := make([]LogRow, 0, len(events))
	for _, ev := range events {
		rows = append(rows, LogRow{
			Time:   eventTime(ev, loc),
			Type:   valueOrDefault(ev.RawType, emptyCell),
			Detail: eventDetail(ev),
		})
	}
	return rows
}

func RankingRows(entries []models.RankingEntry) []RankingRow {
	rows := make([]RankingRow, 0, len(entries))
	for i, e := range entries {
		rows = append(rows, RankingRow{
			Cells: []string{
				strconv.Itoa(e.Rank),
				e.Stats.StudentID,
				strconv.Itoa(e.Stats.GamesPlayed),
				strconv.Itoa(e.Stats.Wins),
				strconv.Itoa(e.Stats.Draws),
				strconv.Itoa(e.Stats.Losses),
				FormatWinRate(e.WinRate),
				FormatAmount(e.Stats.TotalCharged),
				FormatAmount(e.Stats.TotalReward),
				FormatAmount(e.Stats.TotalWithdrawn),
				FormatMVP(e.MVPScore),
			},
			Style: rankStyle(i),
		})
	}
	return rows
}

// LeaderboardCards renders one card per entry among the first three.
// Missing places are left out rather than padded.
func LeaderboardCards(entries []models.RankingEntry) []LeaderboardCard {
	n := len(entries)
	if n > len(badges) {
		n = len(badges)
	}

	cards := make([]LeaderboardCard, 0, n)
	for i, e := range entries[:n] {
		cards = append(cards, LeaderboardCard{
			Badge:     badges[i],
			StudentID: e.Stats.StudentID,
			MVPScore:  FormatMVP(e.MVPScore),
			WinRate:   FormatWinRate(e.WinRate),
			Reward:    FormatAmount(e.Stats.TotalReward),
			Charge:    FormatAmount(e.Stats.TotalCharged),
			Withdraw:  FormatAmount(e.Stats.TotalWithdrawn),
		})
	}
	return cards
}

func SummaryLines(s models.PlayerStats, winRate float64) []string {
	return []string{
		fmt.Sprintf("총 게임: %d | 승: %d | 무: %d | 패: %d", s.GamesPlayed, s.Wins, s.Draws, s.Losses),
		fmt.Sprintf("승률: %s%%", FormatWinRate(winRate)),
		fmt.Sprintf("사용: %d | 보상: %s | 충전: %s | 출금: %s",
			s.GamesStarted, FormatAmount(s.TotalReward), FormatAmount(s.TotalCharged), FormatAmount(s.TotalWithdrawn)),
	}
}

// Table lays rows out in aligned plain-text columns for monospace output.
// Widths are display columns, so Hangul cells count double.
func Table(headers []string, rows [][]string) string {
	all := make([][]string, 0, len(rows)+1)
	all = append(all, headers)
	all = append(all, rows...)

	var widths []int
	for _, row := range all {
		for i, cell := range row {
			if i >= len(widths) {
				widths = append(widths, 0)
			}
			if w := DisplayWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	lines := make([]string, 0, len(all))
	for _, row := range all {
		var sb strings.Builder
		for i, cell := range row {
			sb.WriteString(cell)
			if i < len(row)-1 {
				sb.WriteString(strings.Repeat(" ", widths[i]-DisplayWidth(cell)+columnGap))
			}
		}
		lines = append(lines, sb.String())
	}
	return strings.Join(lines, "\n")
}

// DisplayWidth counts East Asian wide and fullwidth runes as two columns.
func DisplayWidth(s string) int {
	n := 0
	for _, r := range s {
		switch width.LookupRune(r).Kind() {
		case width.EastAsianWide, width.EastAsianFullwidth:
			n += 2
		default:
			n++
		}
	}
	return n
}

// FormatTime mimics the ko-KR locale string, e.g. "2024. 5. 1. 오후 3:04:05".
func FormatTime(t time.Time, loc *time.Location) string {
	if loc != nil {
		t = t.In(loc)
	}
	meridiem := "오전"
	if t.Hour() >= 12 {
		meridiem = "오후"
	}
	hour := t.Hour() % 12
	if hour == 0 {
		hour = 12
	}
	return fmt.Sprintf("%d. %d. %d. %s %d:%02d:%02d",
		t.Year(), int(t.Month()), t.Day(), meridiem, hour, t.Minute(), t.Second())
}

func FormatWinRate(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}

func FormatMVP(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func FormatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func eventTime(ev models.Event, loc *time.Location) string {
	if ev.Time.IsZero() {
		return valueOrDefault(ev.RawTime, emptyCell)
	}
	return FormatTime(ev.Time, loc)
}

func eventDetail(ev models.Event) string {
	switch {
	case ev.Result != "":
		return ev.Result
	case ev.RewardText != "":
		return ev.RewardText
	case ev.HasAmount && ev.Amount != 0:
		return FormatAmount(ev.Amount)
	default:
		return emptyCell
	}
}

func rankStyle(i int) string {
	if i < len(styles) {
		return styles[i]
	}
	return ""
}

func valueOrDefault(value, defaultValue string) string {
	if value == "" {
		return defaultValue
	}
	return value
}
