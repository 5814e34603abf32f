package models

import "time"

type SortKey string

const (
	SortGamesPlayed    SortKey = "gamesPlayed"
	SortWins           SortKey = "wins"
	SortDraws          SortKey = "draws"
	SortLosses         SortKey = "losses"
	SortWinRate        SortKey = "winRate"
	SortTotalCharged   SortKey = "totalCharged"
	SortTotalReward    SortKey = "totalReward"
	SortTotalWithdrawn SortKey = "totalWithdrawn"
	SortMVPScore       SortKey = "mvpScore"
)

var SortKeys = []SortKey{
	SortGamesPlayed,
	SortWins,
	SortDraws,
	SortLosses,
	SortWinRate,
	SortTotalCharged,
	SortTotalReward,
	SortTotalWithdrawn,
	SortMVPScore,
}

// PlayerStats accumulates one student's events. GamesPlayed always equals
// Wins+Draws+Losses; GamesStarted is counted separately.
type PlayerStats struct {
	StudentID      string  `json:"student_id"`
	GamesPlayed    int     `json:"games_played"`
	Wins           int     `json:"wins"`
	Draws          int     `json:"draws"`
	Losses         int     `json:"losses"`
	GamesStarted   int     `json:"games_started"`
	TotalReward    float64 `json:"total_reward"`
	TotalCharged   float64 `json:"total_charged"`
	TotalWithdrawn float64 `json:"total_withdrawn"`
}

type RankingEntry struct {
	Rank     int         `json:"rank"`
	Stats    PlayerStats `json:"stats"`
	WinRate  float64     `json:"win_rate"`
	MVPScore float64     `json:"mvp_score"`
}

type Ranking struct {
	ID          string         `json:"id"`
	GeneratedAt time.Time      `json:"generated_at"`
	Start       time.Time      `json:"start"`
	End         time.Time      `json:"end"`
	SortKey     SortKey        `json:"sort_key"`
	Entries     []RankingEntry `json:"entries"`
}

// Top returns at most n leading entries.
func (r *Ranking) Top(n int) []RankingEntry {
	if r == nil {
		return nil
	}
	if n > len(r.Entries) {
		n = len(r.Entries)
	}
	return r.Entries[:n]
}

func (r *Ranking) Empty() bool {
	return r == nil || len(r.Entries) == 0
}
