package application

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rpsboard/internal/models"
	"rpsboard/internal/repository"
)

type betweenCall struct {
	stream   models.Stream
	from, to time.Time
}

type fakeEventLog struct {
	byPrefix map[models.Stream][]models.Event
	between  map[models.Stream][]models.Event
	err      error

	prefixCalls  []string
	betweenCalls []betweenCall
}

func (f *fakeEventLog) FindByStudentPrefix(_ context.Context, stream models.Stream, prefix string) ([]models.Event, error) {
	f.prefixCalls = append(f.prefixCalls, string(stream)+":"+prefix)
	if f.err != nil {
		return nil, f.err
	}
	return f.byPrefix[stream], nil
}

func (f *fakeEventLog) FindBetween(_ context.Context, stream models.Stream, from, to time.Time) ([]models.Event, error) {
	f.betweenCalls = append(f.betweenCalls, betweenCall{stream, from, to})
	if f.err != nil {
		return nil, f.err
	}
	return f.between[stream], nil
}

func newTestDashboard(events *fakeEventLog) (*DashboardServiceImpl, *repository.RankingCache) {
	cache := repository.NewRankingCache()
	return NewDashboardServiceImpl(events, cache, nil, testLogger{}), cache
}

func TestLookupStudent_EmptySearch(t *testing.T) {
	events := &fakeEventLog{}
	svc, _ := newTestDashboard(events)

	_, err := svc.LookupStudent(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrEmptyStudentID)
	assert.Empty(t, events.prefixCalls)
}

func TestLookupStudent_LogOrderAndSummary(t *testing.T) {
	game := []models.Event{
		gameResult("10101 김", "이겼다"),
		reward("10101 김", "50X"),
		gameStart("10101 김"),
		gameResult("10102 이", "무승부"),
	}
	coin := []models.Event{
		charge("10101 김", 300),
		withdraw("10102 이", 40),
	}
	events := &fakeEventLog{byPrefix: map[models.Stream][]models.Event{
		models.StreamGame: game,
		models.StreamCoin: coin,
	}}
	svc, _ := newTestDashboard(events)

	report, err := svc.LookupStudent(context.Background(), " 1010 ")
	require.NoError(t, err)

	assert.Equal(t, []string{"game:1010", "coin:1010"}, events.prefixCalls)
	assert.Equal(t, "1010", report.Query)
	assert.Equal(t, append(append([]models.Event(nil), game...), coin...), report.Log)
	assert.Equal(t, []string{"10101 김", "10102 이"}, report.MatchedIDs)

	s := report.Summary
	assert.Equal(t, 2, s.GamesPlayed)
	assert.Equal(t, 1, s.Wins)
	assert.Equal(t, 1, s.Draws)
	assert.Equal(t, 1, s.GamesStarted)
	assert.Equal(t, 50.0, s.TotalReward)
	assert.Equal(t, 300.0, s.TotalCharged)
	assert.Equal(t, 40.0, s.TotalWithdrawn)
}

func TestLookupStudent_StoreFailure(t *testing.T) {
	svc, _ := newTestDashboard(&fakeEventLog{err: errors.New("unavailable")})

	_, err := svc.LookupStudent(context.Background(), "10101")
	require.Error(t, err)
	assert.False(t, IsUserError(err))
}

func TestGenerateRanking_Validation(t *testing.T) {
	svc, _ := newTestDashboard(&fakeEventLog{})
	ctx := context.Background()

	tests := []struct {
		name string
		req  RankingRequest
		want error
	}{
		{"missing start", RankingRequest{End: "2024-05-01"}, ErrMissingDateRange},
		{"missing end", RankingRequest{Start: "2024-05-01"}, ErrMissingDateRange},
		{"bad date", RankingRequest{Start: "05/01/2024", End: "2024-05-02"}, ErrInvalidDate},
		{"reversed", RankingRequest{Start: "2024-05-02", End: "2024-05-01"}, ErrInvalidDateRange},
		{"bad key", RankingRequest{Start: "2024-05-01", End: "2024-05-01", SortKey: "kda"}, ErrUnknownSortKey},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.GenerateRanking(ctx, "scope", tt.req)
			assert.ErrorIs(t, err, tt.want)
			assert.True(t, IsUserError(err))
			assert.ErrorIs(t, ValidateRankingRequest(tt.req), tt.want)
		})
	}

	assert.NoError(t, ValidateRankingRequest(RankingRequest{Start: "2024-05-01", End: "2024-05-01", SortKey: "WINS"}))
}

func TestGenerateRanking_WindowAndStore(t *testing.T) {
	events := &fakeEventLog{between: map[models.Stream][]models.Event{
		models.StreamGame: {
			gameResult("a", "이겼다"),
			gameResult("a", "졌다"),
			gameResult("b", "이겼다"),
			reward("b", "10X"),
		},
		models.StreamCoin: {
			charge("a", 50),
			withdraw("c", 5),
		},
	}}
	svc, cache := newTestDashboard(events)
	ctx := context.Background()

	r, err := svc.GenerateRanking(ctx, "discord:1", RankingRequest{Start: "2024-05-01", End: "2024-05-03", SortKey: "wins"})
	require.NoError(t, err)

	require.Len(t, events.betweenCalls, 2)
	for _, c := range events.betweenCalls {
		assert.Equal(t, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), c.from)
		assert.Equal(t, time.Date(2024, 5, 4, 0, 0, 0, 0, time.UTC), c.to)
	}

	assert.NotEmpty(t, r.ID)
	assert.Equal(t, models.SortWins, r.SortKey)
	assert.Equal(t, time.Date(2024, 5, 3, 0, 0, 0, 0, time.UTC), r.End)
	require.Len(t, r.Entries, 3)
	assert.Equal(t, "a", r.Entries[0].Stats.StudentID)
	assert.Equal(t, "b", r.Entries[1].Stats.StudentID)
	assert.Equal(t, "c", r.Entries[2].Stats.StudentID)
	assert.Len(t, r.Top(3), 3)

	stored, err := cache.Load(ctx, "discord:1")
	require.NoError(t, err)
	assert.Equal(t, r, stored)

	latest, err := svc.LatestRanking(ctx, "discord:1")
	require.NoError(t, err)
	assert.Equal(t, r.ID, latest.ID)
}

func TestGenerateRanking_CancelledRunIsNotStored(t *testing.T) {
	svc, cache := newTestDashboard(&fakeEventLog{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.GenerateRanking(ctx, "scope", RankingRequest{Start: "2024-05-01", End: "2024-05-01"})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, cache.Size())
}

func TestExport_WithoutRanking(t *testing.T) {
	svc, _ := newTestDashboard(&fakeEventLog{})

	data, err := svc.ExportLatest(context.Background(), "nobody")
	assert.ErrorIs(t, err, ErrNoRanking)
	assert.Nil(t, data)

	data, err = svc.ExportRanking(nil)
	assert.ErrorIs(t, err, ErrNoRanking)
	assert.Nil(t, data)

	data, err = svc.ExportRanking(&models.Ranking{})
	assert.ErrorIs(t, err, ErrNoRanking)
	assert.Nil(t, data)
}

func TestExportLatest(t *testing.T) {
	events := &fakeEventLog{between: map[models.Stream][]models.Event{
		models.StreamGame: {gameResult("a", "이겼다")},
	}}
	svc, _ := newTestDashboard(events)
	ctx := context.Background()

	_, err := svc.GenerateRanking(ctx, "tg:9", RankingRequest{Start: "2024-05-01", End: "2024-05-01"})
	require.NoError(t, err)

	data, err := svc.ExportLatest(ctx, "tg:9")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("PK")))
}

func TestClearRanking(t *testing.T) {
	svc, cache := newTestDashboard(&fakeEventLog{})
	ctx := context.Background()

	_, err := svc.GenerateRanking(ctx, "discord:1", RankingRequest{Start: "2024-05-01", End: "2024-05-01"})
	require.NoError(t, err)
	require.Equal(t, 1, cache.Size())

	require.NoError(t, svc.ClearRanking(ctx, "discord:1"))
	assert.Equal(t, 0, cache.Size())

	_, err = svc.LatestRanking(ctx, "discord:1")
	assert.ErrorIs(t, err, ErrNoRanking)
}
