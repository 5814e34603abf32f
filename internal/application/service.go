package application

import (
	"context"
	"time"

	"rpsboard/internal/models"
	"rpsboard/internal/repository"
	"rpsboard/pkg/sheets"
)

type Logger interface {
	Error(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Info(format string, v ...interface{})
	Debug(format string, v ...interface{})
}

type Metrics interface {
	ObserveQuery(stream string, elapsed time.Duration, events int)
	ObserveRanking(elapsed time.Duration, entries int)
	IncExport()
	IncRefreshCancelled()
}

type DashboardService interface {
	LookupStudent(ctx context.Context, search string) (*StudentReport, error)
	GenerateRanking(ctx context.Context, scope string, req RankingRequest) (*models.Ranking, error)
	LatestRanking(ctx context.Context, scope string) (*models.Ranking, error)
	ExportRanking(ranking *models.Ranking) ([]byte, error)
	ExportLatest(ctx context.Context, scope string) ([]byte, error)
	ClearRanking(ctx context.Context, scope string) error
}

type SheetsService interface {
	SyncRanking(ctx context.Context, ranking *models.Ranking) (string, error)
	GetSpreadsheetURL() string
}

type Options struct {
	OwnerEmail      string
	SpreadsheetID   string
	RefreshInterval time.Duration
}

type Service struct {
	Dashboard DashboardService
	// Sheets is nil when no Google credentials are configured.
	Sheets    SheetsService
	Refresher *Refresher
}

func NewService(repos *repository.Repository, sheetsClient sheets.Client, opts Options, metrics Metrics, logger Logger) *Service {
	dashboard := NewDashboardServiceImpl(repos.EventLog, repos.Rankings, metrics, logger)

	svc := &Service{
		Dashboard: dashboard,
		Refresher: NewRefresher(dashboard, opts.RefreshInterval, metrics, logger),
	}
	if sheetsClient != nil {
		sheetsSvc := NewSheetsServiceImpl(sheetsClient, opts.OwnerEmail)
		if opts.SpreadsheetID != "" {
			sheetsSvc.SetSpreadsheetID(opts.SpreadsheetID)
		}
		svc.Sheets = sheetsSvc
	}
	return svc
}

type noopMetrics struct{}

func (noopMetrics) ObserveQuery(string, time.Duration, int) {}
func (noopMetrics) ObserveRanking(time.Duration, int)      {}
func (noopMetrics) IncExport()                             {}
func (noopMetrics) IncRefreshCancelled()                   {}
