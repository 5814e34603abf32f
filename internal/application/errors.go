package application

import "errors"

// User input errors. Their messages are shown to the user as is.
var (
	ErrEmptyStudentID   = errors.New("학번을 입력하세요.")
	ErrMissingDateRange = errors.New("시작일과 종료일을 입력하세요.")
	ErrInvalidDate      = errors.New("날짜 형식이 올바르지 않습니다. YYYY-MM-DD 형식을 사용하세요.")
	ErrInvalidDateRange = errors.New("종료일이 시작일보다 빠릅니다.")
	ErrUnknownSortKey   = errors.New("알 수 없는 정렬 기준입니다.")
	ErrNoRanking        = errors.New("먼저 랭킹을 생성하세요.")
)

var userErrors = []error{
	ErrEmptyStudentID,
	ErrMissingDateRange,
	ErrInvalidDate,
	ErrInvalidDateRange,
	ErrUnknownSortKey,
	ErrNoRanking,
}

// IsUserError reports whether err should be surfaced to the user as an alert
// rather than logged as a failure.
func IsUserError(err error) bool {
	for _, target := range userErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
