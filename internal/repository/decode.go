package repository

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"

	"rpsboard/internal/models"
)

// Document field names shared by gameLogs and coinLogs.
const (
	fieldStudentID     = "studentId"
	fieldStudentIDOnly = "studentIdOnly"
	fieldType          = "type"
	fieldTime          = "time"
	fieldResult        = "result"
	fieldReward        = "reward"
	fieldAmount        = "amount"
)

// isoLayout matches the timestamps the game client writes (JS toISOString).
const isoLayout = "2006-01-02T15:04:05.000Z"

// DecodeEvent converts a raw log document into an Event. Missing or
// mistyped fields become zero values; decoding never fails.
func DecodeEvent(stream models.Stream, data map[string]interface{}) models.Event {
	ev := models.Event{
		Stream:          stream,
		StudentID:       stringField(data, fieldStudentID),
		StudentIDPrefix: stringField(data, fieldStudentIDOnly),
		RawType:         stringField(data, fieldType),
	}

	ev.Kind = models.KindFromTag(ev.RawType)
	if ev.Kind.Stream() != stream {
		ev.Kind = models.KindUnknown
	}

	ev.RawTime, ev.Time = timeField(data, fieldTime)

	switch ev.Kind {
	case models.KindGameResult:
		ev.Result = stringField(data, fieldResult)
		ev.Outcome = models.ClassifyResult(ev.Result)
	case models.KindReward:
		ev.RewardText = stringField(data, fieldReward)
	case models.KindCharge, models.KindWithdraw:
		ev.Amount, ev.HasAmount = amountField(data, fieldAmount)
	}

	return ev
}

func stringField(data map[string]interface{}, key string) string {
	switch v := data[key].(type) {
	case string:
		return v
	case int64:
		return strconv.FormatInt(v, 10)
	case int:
		return strconv.Itoa(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case json.Number:
		return v.String()
	default:
		return ""
	}
}

func timeField(data map[string]interface{}, key string) (string, time.Time) {
	switch v := data[key].(type) {
	case time.Time:
		return v.UTC().Format(isoLayout), v
	case string:
		t, err := time.Parse(time.RFC3339Nano, strings.TrimSpace(v))
		if err != nil {
			return v, time.Time{}
		}
		return v, t
	default:
		return "", time.Time{}
	}
}

// amountField returns the amount and whether a usable one was present.
// Negative and non-finite values are treated as absent.
func amountField(data map[string]interface{}, key string) (float64, bool) {
	var f float64
	switch v := data[key].(type) {
	case int64:
		f = float64(v)
	case int:
		f = float64(v)
	case float64:
		f = v
	case json.Number:
		parsed, err := v.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}

	if f < 0 || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
