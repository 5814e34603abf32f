package application

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"rpsboard/internal/models"
)

// rankingTable lays the ranking out as the spreadsheet rows shared by the
// xlsx export and the Google Sheets sync, header first.
func rankingTable(ranking *models.Ranking) [][]interface{} {
	rows := make([][]interface{}, 0, len(ranking.Entries)+1)

	header := make([]interface{}, len(rankingHeaders))
	for i, h := range rankingHeaders {
		header[i] = h
	}
	rows = append(rows, header)

	for _, e := range ranking.Entries {
		rows = append(rows, []interface{}{
			e.Rank,
			e.Stats.StudentID,
			e.Stats.GamesPlayed,
			e.Stats.Wins,
			e.Stats.Draws,
			e.Stats.Losses,
			fmt.Sprintf("%.1f%%", e.WinRate),
			e.Stats.TotalCharged,
			e.Stats.TotalReward,
			e.Stats.TotalWithdrawn,
			fmt.Sprintf("%.2f", e.MVPScore),
		})
	}
	return rows
}

// BuildRankingWorkbook renders the ranking as an xlsx file.
func BuildRankingWorkbook(ranking *models.Ranking) ([]byte, error) {
	if ranking.Empty() {
		return nil, ErrNoRanking
	}

	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(excelSheetName)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(idx)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}

	for r, row := range rankingTable(ranking) {
		cell, err := excelize.CoordinatesToCellName(1, r+1)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(excelSheetName, cell, &row); err != nil {
			return nil, err
		}
	}

	f.SetColWidth(excelSheetName, "A", "A", 8)
	f.SetColWidth(excelSheetName, "B", "B", 20)
	f.SetColWidth(excelSheetName, "C", "K", 12)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
