package application

import "time"

const (
	// MVP score weights.
	mvpWeightWinRate = 0.4
	mvpWeightReward  = 0.3
	mvpWeightGames   = 0.2
	mvpWeightCharged = 0.1

	// Date inputs use the same layout as the dashboard date pickers.
	dateLayout = "2006-01-02"

	// End dates are inclusive.
	dayLength = 24 * time.Hour

	DefaultRefreshInterval = time.Minute

	// Excel report configuration
	excelSheetName = "랭킹"
	ExportFileName = "사용자_랭킹.xlsx"

	// Google Sheets configuration
	defaultSheetTitle = "RPS 랭킹"
	defaultClearRange = "A1:Z1000"
	defaultStartCell  = "A1"
)

var rankingHeaders = []string{"순위", "학번", "총게임", "승", "무", "패", "승률", "충전", "보상", "출금", "MVP점수"}
