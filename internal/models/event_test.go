package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyResult(t *testing.T) {
	tests := []struct {
		name   string
		result string
		want   Outcome
	}{
		{"win", "이겼다", OutcomeWin},
		{"win inside sentence", "가위로 이겼습니다!", OutcomeWin},
		{"draw", "무승부", OutcomeDraw},
		{"loss", "졌다", OutcomeLoss},
		{"empty counts as loss", "", OutcomeLoss},
		{"unrelated text counts as loss", "timeout", OutcomeLoss},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyResult(tt.result))
		})
	}
}

func TestKindFromTag(t *testing.T) {
	assert.Equal(t, KindGameStart, KindFromTag("게임시작"))
	assert.Equal(t, KindGameResult, KindFromTag("게임결과"))
	assert.Equal(t, KindReward, KindFromTag("보상"))
	assert.Equal(t, KindCharge, KindFromTag("충전"))
	assert.Equal(t, KindWithdraw, KindFromTag("출금"))
	assert.Equal(t, KindUnknown, KindFromTag("사용"))

	for _, k := range []Kind{KindGameStart, KindGameResult, KindReward, KindCharge, KindWithdraw} {
		assert.Equal(t, k, KindFromTag(k.String()))
	}
}

func TestRankingTop(t *testing.T) {
	r := &Ranking{Entries: []RankingEntry{{Rank: 1}, {Rank: 2}}}

	assert.Len(t, r.Top(3), 2)
	assert.Len(t, r.Top(1), 1)
	assert.False(t, r.Empty())

	var nilRanking *Ranking
	assert.Nil(t, nilRanking.Top(3))
	assert.True(t, nilRanking.Empty())
	assert.True(t, (&Ranking{}).Empty())
}

func TestKindStream(t *testing.T) {
	assert.Equal(t, StreamGame, KindGameResult.Stream())
	assert.Equal(t, StreamGame, KindReward.Stream())
	assert.Equal(t, StreamCoin, KindCharge.Stream())
	assert.Equal(t, StreamCoin, KindWithdraw.Stream())
	assert.Equal(t, Stream(""), KindUnknown.Stream())
}
