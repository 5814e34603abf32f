package application

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rpsboard/internal/models"
)

func TestParseSortKey(t *testing.T) {
	k, err := ParseSortKey("")
	require.NoError(t, err)
	assert.Equal(t, models.SortMVPScore, k)

	k, err = ParseSortKey("WINRATE")
	require.NoError(t, err)
	assert.Equal(t, models.SortWinRate, k)

	for _, want := range models.SortKeys {
		got, err := ParseSortKey(string(want))
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err = ParseSortKey("kda")
	assert.ErrorIs(t, err, ErrUnknownSortKey)
}

func rankingFixture() map[string]*models.PlayerStats {
	return map[string]*models.PlayerStats{
		"a": {StudentID: "a", GamesPlayed: 10, Wins: 5, Draws: 2, Losses: 3, TotalReward: 100, TotalCharged: 20},
		"b": {StudentID: "b", GamesPlayed: 4, Wins: 4, TotalReward: 10, TotalWithdrawn: 50},
		"c": {StudentID: "c", GamesPlayed: 6, Wins: 1, Draws: 1, Losses: 4, TotalCharged: 500},
		"d": {StudentID: "d"},
	}
}

func TestRank_DerivedFields(t *testing.T) {
	entries := Rank(rankingFixture(), models.SortMVPScore)
	require.Len(t, entries, 4)

	first := entries[0]
	assert.Equal(t, 1, first.Rank)
	assert.Equal(t, "a", first.Stats.StudentID)
	assert.Equal(t, 50.0, first.WinRate)
	assert.InDelta(t, 50.0, first.MVPScore, 1e-9)

	for i, e := range entries {
		assert.Equal(t, i+1, e.Rank)
	}
}

func TestRank_SortedDescendingForEveryKey(t *testing.T) {
	for _, key := range models.SortKeys {
		t.Run(string(key), func(t *testing.T) {
			entries := Rank(rankingFixture(), key)
			assert.True(t, sort.SliceIsSorted(entries, func(i, j int) bool {
				return sortValue(&entries[i], key) > sortValue(&entries[j], key)
			}))

			again := append([]models.RankingEntry(nil), entries...)
			SortEntries(again, key)
			assert.Equal(t, entries, again)
		})
	}
}

func TestRank_WinRateOrder(t *testing.T) {
	entries := Rank(rankingFixture(), models.SortWinRate)

	ids := make([]string, len(entries))
	for i, e := range entries {
		ids[i] = e.Stats.StudentID
	}
	assert.Equal(t, []string{"b", "a", "c", "d"}, ids)
}

func TestRank_TiesKeepBoth(t *testing.T) {
	stats := map[string]*models.PlayerStats{
		"x": {StudentID: "x", GamesPlayed: 2, Wins: 1, Losses: 1},
		"y": {StudentID: "y", GamesPlayed: 2, Wins: 1, Losses: 1},
	}

	entries := Rank(stats, models.SortWins)
	require.Len(t, entries, 2)
	assert.ElementsMatch(t, []string{"x", "y"}, []string{entries[0].Stats.StudentID, entries[1].Stats.StudentID})
}

func TestRank_Empty(t *testing.T) {
	assert.Empty(t, Rank(nil, models.SortMVPScore))
}
