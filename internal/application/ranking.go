package application

import (
	"sort"
	"strings"

	"rpsboard/internal/models"
)

// ParseSortKey resolves a sort key name. An empty name selects the MVP score.
func ParseSortKey(name string) (models.SortKey, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.SortMVPScore, nil
	}
	for _, k := range models.SortKeys {
		if strings.EqualFold(string(k), name) {
			return k, nil
		}
	}
	return "", ErrUnknownSortKey
}

// Rank derives win rate and MVP score for every student and orders them
// descending by key. Equal keys fall back to student id ascending.
func Rank(statsMap map[string]*models.PlayerStats, key models.SortKey) []models.RankingEntry {
	entries := make([]models.RankingEntry, 0, len(statsMap))
	for _, st := range statsMap {
		entries = append(entries, models.RankingEntry{
			Stats:    *st,
			WinRate:  WinRate(st),
			MVPScore: MVPScore(st),
		})
	}

	SortEntries(entries, key)
	return entries
}

// SortEntries sorts in place and renumbers ranks from 1.
func SortEntries(entries []models.RankingEntry, key models.SortKey) {
	sort.SliceStable(entries, func(i, j int) bool {
		vi, vj := sortValue(&entries[i], key), sortValue(&entries[j], key)
		if vi != vj {
			return vi > vj
		}
		return entries[i].Stats.StudentID < entries[j].Stats.StudentID
	})

	for i := range entries {
		entries[i].Rank = i + 1
	}
}

func sortValue(e *models.RankingEntry, key models.SortKey) float64 {
	switch key {
	case models.SortGamesPlayed:
		return float64(e.Stats.GamesPlayed)
	case models.SortWins:
		return float64(e.Stats.Wins)
	case models.SortDraws:
		return float64(e.Stats.Draws)
	case models.SortLosses:
		return float64(e.Stats.Losses)
	case models.SortWinRate:
		return e.WinRate
	case models.SortTotalCharged:
		return e.Stats.TotalCharged
	case models.SortTotalReward:
		return e.Stats.TotalReward
	case models.SortTotalWithdrawn:
		return e.Stats.TotalWithdrawn
	default:
		return e.MVPScore
	}
}
