package application

import (
	"math"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"rpsboard/internal/models"
)

func calculateWinRate(wins, games int) float64 {
	if games == 0 {
		return 0.0
	}
	return (float64(wins) / float64(games)) * 100
}

func calculateMVPScore(s *models.PlayerStats) float64 {
	return calculateWinRate(s.Wins, s.GamesPlayed)*mvpWeightWinRate +
		s.TotalReward*mvpWeightReward +
		float64(s.GamesPlayed)*mvpWeightGames -
		s.TotalCharged*mvpWeightCharged
}

// WinRate is rounded to one decimal place.
func WinRate(s *models.PlayerStats) float64 {
	return roundTo(calculateWinRate(s.Wins, s.GamesPlayed), 1)
}

// MVPScore is rounded to two decimal places.
func MVPScore(s *models.PlayerStats) float64 {
	return roundTo(calculateMVPScore(s), 2)
}

func roundTo(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

// ParseReward reads reward text such as "50X": one trailing non-digit
// suffix is dropped and the rest must be a non-negative integer. Anything
// else yields 0.
func ParseReward(text string) int {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0
	}

	last, size := utf8.DecodeLastRuneInString(text)
	if !unicode.IsDigit(last) {
		text = text[:len(text)-size]
	}

	n, err := strconv.Atoi(text)
	if err != nil || n < 0 {
		return 0
	}
	return n
}
