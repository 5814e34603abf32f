package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"rpsboard/internal/models"
	"rpsboard/internal/repository"
)

type RankingRequest struct {
	Start   string `json:"start"`
	End     string `json:"end"`
	SortKey string `json:"sort_key"`
}

// StudentReport is the single-student view: every matching record in the
// order the store delivered it, plus one summary over all of them.
type StudentReport struct {
	Query   string
	Log     []models.Event
	Summary models.PlayerStats
	// MatchedIDs lists the distinct full ids merged into Summary. More than
	// one means the query was a prefix of several students.
	MatchedIDs []string
}

type DashboardServiceImpl struct {
	events   repository.EventLog
	rankings repository.RankingStore
	metrics  Metrics
	logger   Logger
	now      func() time.Time
}

func NewDashboardServiceImpl(events repository.EventLog, rankings repository.RankingStore, metrics Metrics, logger Logger) *DashboardServiceImpl {
	if metrics == nil {
		metrics = noopMetrics{}
	}
	return &DashboardServiceImpl{
		events:   events,
		rankings: rankings,
		metrics:  metrics,
		logger:   logger,
		now:      time.Now,
	}
}

func (s *DashboardServiceImpl) LookupStudent(ctx context.Context, search string) (*StudentReport, error) {
	search = strings.TrimSpace(search)
	if search == "" {
		return nil, ErrEmptyStudentID
	}

	var log []models.Event
	for _, stream := range models.Streams {
		began := s.now()
		events, err := s.events.FindByStudentPrefix(ctx, stream, search)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch %s log: %w", stream, err)
		}
		s.metrics.ObserveQuery(string(stream), s.now().Sub(began), len(events))
		log = append(log, events...)
	}

	report := &StudentReport{
		Query:      search,
		Log:        log,
		Summary:    Summarize(search, log),
		MatchedIDs: matchedIDs(log),
	}
	if len(report.MatchedIDs) > 1 {
		s.logger.Debug("student query %q matched %d ids", search, len(report.MatchedIDs))
	}
	return report, nil
}

// ValidateRankingRequest reports the user error GenerateRanking would
// return for req before touching the store.
func ValidateRankingRequest(req RankingRequest) error {
	if _, _, err := parseDateRange(req.Start, req.End); err != nil {
		return err
	}
	_, err := ParseSortKey(req.SortKey)
	return err
}

func (s *DashboardServiceImpl) GenerateRanking(ctx context.Context, scope string, req RankingRequest) (*models.Ranking, error) {
	start, end, err := parseDateRange(req.Start, req.End)
	if err != nil {
		return nil, err
	}
	key, err := ParseSortKey(req.SortKey)
	if err != nil {
		return nil, err
	}

	began := s.now()
	var events []models.Event
	for _, stream := range models.Streams {
		queryStart := s.now()
		batch, err := s.events.FindBetween(ctx, stream, start, end.Add(dayLength))
		if err != nil {
			return nil, fmt.Errorf("failed to fetch %s events: %w", stream, err)
		}
		s.metrics.ObserveQuery(string(stream), s.now().Sub(queryStart), len(batch))
		events = append(events, batch...)
	}

	ranking := &models.Ranking{
		ID:          uuid.NewString(),
		GeneratedAt: s.now(),
		Start:       start,
		End:         end,
		SortKey:     key,
		Entries:     Rank(Aggregate(events), key),
	}

	// A superseded refresh must not overwrite the newer result.
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if scope != "" {
		if err := s.rankings.Save(ctx, scope, ranking); err != nil {
			return nil, fmt.Errorf("failed to remember ranking: %w", err)
		}
	}

	s.metrics.ObserveRanking(s.now().Sub(began), len(ranking.Entries))
	s.logger.Debug("ranking %s for %q: %d events, %d students", ranking.ID, scope, len(events), len(ranking.Entries))
	return ranking, nil
}

func (s *DashboardServiceImpl) LatestRanking(ctx context.Context, scope string) (*models.Ranking, error) {
	r, err := s.rankings.Load(ctx, scope)
	if errors.Is(err, repository.ErrRankingNotFound) {
		return nil, ErrNoRanking
	}
	if err != nil {
		return nil, err
	}
	return r, nil
}

func (s *DashboardServiceImpl) ExportRanking(ranking *models.Ranking) ([]byte, error) {
	if ranking.Empty() {
		return nil, ErrNoRanking
	}

	data, err := BuildRankingWorkbook(ranking)
	if err != nil {
		return nil, fmt.Errorf("failed to build workbook: %w", err)
	}
	s.metrics.IncExport()
	return data, nil
}

func (s *DashboardServiceImpl) ExportLatest(ctx context.Context, scope string) ([]byte, error) {
	ranking, err := s.LatestRanking(ctx, scope)
	if err != nil {
		return nil, err
	}
	return s.ExportRanking(ranking)
}

// ClearRanking forgets the ranking remembered for scope.
func (s *DashboardServiceImpl) ClearRanking(ctx context.Context, scope string) error {
	if err := s.rankings.Delete(ctx, scope); err != nil {
		return fmt.Errorf("failed to clear ranking: %w", err)
	}
	return nil
}

func parseDateRange(startStr, endStr string) (time.Time, time.Time, error) {
	startStr, endStr = strings.TrimSpace(startStr), strings.TrimSpace(endStr)
	if startStr == "" || endStr == "" {
		return time.Time{}, time.Time{}, ErrMissingDateRange
	}

	start, err := time.Parse(dateLayout, startStr)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w (%s)", ErrInvalidDate, startStr)
	}
	end, err := time.Parse(dateLayout, endStr)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w (%s)", ErrInvalidDate, endStr)
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, ErrInvalidDateRange
	}
	return start, end, nil
}

func matchedIDs(events []models.Event) []string {
	seen := make(map[string]struct{})
	var ids []string
	for _, ev := range events {
		if ev.StudentID == "" {
			continue
		}
		if _, ok := seen[ev.StudentID]; ok {
			continue
		}
		seen[ev.StudentID] = struct{}{}
		ids = append(ids, ev.StudentID)
	}
	return ids
}
