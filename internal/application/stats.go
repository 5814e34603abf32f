package application

import "rpsboard/internal/models"

// Aggregate folds events into per-student statistics keyed by full student
// id. The result does not depend on event order.
func Aggregate(events []models.Event) map[string]*models.PlayerStats {
	statsMap := make(map[string]*models.PlayerStats)

	for _, ev := range events {
		stat, ok := statsMap[ev.StudentID]
		if !ok {
			stat = &models.PlayerStats{StudentID: ev.StudentID}
			statsMap[ev.StudentID] = stat
		}
		accumulate(stat, ev)
	}
	return statsMap
}

// Summarize computes a single summary over all events regardless of which
// full id they carry.
func Summarize(id string, events []models.Event) models.PlayerStats {
	stat := models.PlayerStats{StudentID: id}
	for _, ev := range events {
		accumulate(&stat, ev)
	}
	return stat
}

func accumulate(stat *models.PlayerStats, ev models.Event) {
	switch ev.Kind {
	case models.KindGameResult:
		stat.GamesPlayed++
		switch ev.Outcome {
		case models.OutcomeWin:
			stat.Wins++
		case models.OutcomeDraw:
			stat.Draws++
		default:
			stat.Losses++
		}
	case models.KindReward:
		stat.TotalReward += float64(ParseReward(ev.RewardText))
	case models.KindGameStart:
		stat.GamesStarted++
	case models.KindCharge:
		stat.TotalCharged += ev.Amount
	case models.KindWithdraw:
		stat.TotalWithdrawn += ev.Amount
	}
}
