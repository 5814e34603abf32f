package models

import (
	"strings"
	"time"
)

type Stream string

const (
	StreamGame Stream = "game"
	StreamCoin Stream = "coin"
)

// Streams lists every event stream in the order the dashboard reads them.
var Streams = []Stream{StreamGame, StreamCoin}

type Kind int

const (
	KindUnknown Kind = iota
	KindGameStart
	KindGameResult
	KindReward
	KindCharge
	KindWithdraw
)

// Type tags as written by the game client.
const (
	TagGameStart  = "게임시작"
	TagGameResult = "게임결과"
	TagReward     = "보상"
	TagCharge     = "충전"
	TagWithdraw   = "출금"
)

func KindFromTag(tag string) Kind {
	switch tag {
	case TagGameStart:
		return KindGameStart
	case TagGameResult:
		return KindGameResult
	case TagReward:
		return KindReward
	case TagCharge:
		return KindCharge
	case TagWithdraw:
		return KindWithdraw
	default:
		return KindUnknown
	}
}

func (k Kind) String() string {
	switch k {
	case KindGameStart:
		return TagGameStart
	case KindGameResult:
		return TagGameResult
	case KindReward:
		return TagReward
	case KindCharge:
		return TagCharge
	case KindWithdraw:
		return TagWithdraw
	default:
		return "unknown"
	}
}

type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeWin
	OutcomeDraw
	OutcomeLoss
)

const (
	winMarker  = "이겼"
	drawMarker = "무승부"
)

// ClassifyResult maps free result text to an outcome. Anything that is
// neither a win nor a draw counts as a loss.
func ClassifyResult(result string) Outcome {
	switch {
	case strings.Contains(result, winMarker):
		return OutcomeWin
	case strings.Contains(result, drawMarker):
		return OutcomeDraw
	default:
		return OutcomeLoss
	}
}

type Event struct {
	StudentID       string    `json:"student_id"`
	StudentIDPrefix string    `json:"student_id_only"`
	Stream          Stream    `json:"stream"`
	Kind            Kind      `json:"kind"`
	RawType         string    `json:"type"`
	Time            time.Time `json:"time"`
	RawTime         string    `json:"raw_time"`
	Result          string    `json:"result,omitempty"`
	Outcome         Outcome   `json:"outcome,omitempty"`
	RewardText      string    `json:"reward,omitempty"`
	Amount          float64   `json:"amount,omitempty"`
	HasAmount       bool      `json:"has_amount,omitempty"`
}

// Stream reports which collection a kind is recorded in.
func (k Kind) Stream() Stream {
	switch k {
	case KindCharge, KindWithdraw:
		return StreamCoin
	case KindGameStart, KindGameResult, KindReward:
		return StreamGame
	default:
		return ""
	}
}
