package application

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"rpsboard/internal/models"
)

type testLogger struct{}

func (testLogger) Error(string, ...interface{}) {}
func (testLogger) Warn(string, ...interface{})  {}
func (testLogger) Info(string, ...interface{})  {}
func (testLogger) Debug(string, ...interface{}) {}

func TestParseReward(t *testing.T) {
	tests := []struct {
		text string
		want int
	}{
		{"50X", 50},
		{"3X", 3},
		{"120", 120},
		{" 7X ", 7},
		{"0X", 0},
		{"X", 0},
		{"", 0},
		{"abcX", 0},
		{"5배", 5},
		{"-5X", 0},
		{"1.5X", 0},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseReward(tt.text))
		})
	}
}

func TestWinRate(t *testing.T) {
	assert.Equal(t, 0.0, WinRate(&models.PlayerStats{}))
	assert.Equal(t, 50.0, WinRate(&models.PlayerStats{GamesPlayed: 10, Wins: 5}))
	assert.Equal(t, 33.3, WinRate(&models.PlayerStats{GamesPlayed: 3, Wins: 1}))
	assert.Equal(t, 66.7, WinRate(&models.PlayerStats{GamesPlayed: 3, Wins: 2}))
	assert.Equal(t, 100.0, WinRate(&models.PlayerStats{GamesPlayed: 4, Wins: 4}))
}

func TestMVPScore(t *testing.T) {
	s := &models.PlayerStats{GamesPlayed: 10, Wins: 5, TotalReward: 100, TotalCharged: 20}
	assert.InDelta(t, 50.0, MVPScore(s), 1e-9)

	assert.Equal(t, 0.0, MVPScore(&models.PlayerStats{}))

	chargedOnly := &models.PlayerStats{TotalCharged: 300}
	assert.InDelta(t, -30.0, MVPScore(chargedOnly), 1e-9)
}

func TestIsUserError(t *testing.T) {
	assert.True(t, IsUserError(ErrNoRanking))
	assert.True(t, IsUserError(ErrEmptyStudentID))
	assert.False(t, IsUserError(assert.AnError))
	assert.False(t, IsUserError(nil))
}
