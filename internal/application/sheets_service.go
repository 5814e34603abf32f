package application

import (
	"context"
	"fmt"
	"sync"

	"rpsboard/internal/models"
	"rpsboard/pkg/sheets"
)

type SheetsServiceImpl struct {
	client     sheets.Client
	ownerEmail string

	mu             sync.Mutex
	spreadsheetID  string
	spreadsheetURL string
	// created but not yet shared; sharing is retried on the next sync
	pendingID  string
	pendingURL string
}

func NewSheetsServiceImpl(client sheets.Client, ownerEmail string) *SheetsServiceImpl {
	return &SheetsServiceImpl{
		client:     client,
		ownerEmail: ownerEmail,
	}
}

// SyncRanking replaces the spreadsheet contents with the ranking table and
// returns the spreadsheet URL. The spreadsheet is created on first use.
func (s *SheetsServiceImpl) SyncRanking(ctx context.Context, ranking *models.Ranking) (string, error) {
	if ranking.Empty() {
		return "", ErrNoRanking
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureSheetExists(ctx); err != nil {
		return "", err
	}

	if err := s.client.ClearRange(ctx, s.spreadsheetID, defaultClearRange); err != nil {
		return "", fmt.Errorf("failed to clear spreadsheet: %w", err)
	}

	if err := s.client.UpdateValues(ctx, s.spreadsheetID, defaultStartCell, rankingTable(ranking)); err != nil {
		return "", fmt.Errorf("failed to update spreadsheet: %w", err)
	}

	return s.spreadsheetURL, nil
}

// ensureSheetExists creates and shares the spreadsheet. The id is only
// adopted once sharing succeeded, so a failed share is retried.
func (s *SheetsServiceImpl) ensureSheetExists(ctx context.Context) error {
	if s.spreadsheetID != "" {
		return nil
	}

	if s.pendingID == "" {
		id, url, err := s.client.CreateSpreadsheet(ctx, defaultSheetTitle)
		if err != nil {
			return fmt.Errorf("failed to create spreadsheet: %w", err)
		}
		s.pendingID, s.pendingURL = id, url
	}

	if s.ownerEmail != "" {
		if err := s.client.AddPermission(ctx, s.pendingID, s.ownerEmail, "writer"); err != nil {
			return fmt.Errorf("failed to add owner permission: %w", err)
		}
	}

	if err := s.client.MakePublic(ctx, s.pendingID); err != nil {
		return fmt.Errorf("failed to make spreadsheet public: %w", err)
	}

	s.spreadsheetID, s.spreadsheetURL = s.pendingID, s.pendingURL
	s.pendingID, s.pendingURL = "", ""
	return nil
}

func (s *SheetsServiceImpl) GetSpreadsheetURL() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.spreadsheetURL
}

func (s *SheetsServiceImpl) SetSpreadsheetID(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.spreadsheetID = id
	s.spreadsheetURL = fmt.Sprintf("https://docs.google.com/spreadsheets/d/%s", id)
}
