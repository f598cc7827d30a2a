// internal/srs/scheduler_test.go
package srs

import (
	"math/rand"
	"testing"
	"time"

	"go_5_hanzi_drill/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestTransition_Buckets(t *testing.T) {
	now := time.Now()
	rng := rand.New(rand.NewSource(1))

	// 正解: 全バケットで min(b+1, MaxBucket)
	for b := model.Bucket(0); b <= MaxBucket; b++ {
		got := Transition(b, true, now, rng)
		want := b + 1
		if want > MaxBucket {
			want = MaxBucket
		}
		assert.Equalf(t, want, got.Bucket, "correct from bucket %d", b)
	}

	// 不正解: 必ず0に戻る
	for b := model.Bucket(0); b <= MaxBucket; b++ {
		got := Transition(b, false, now, rng)
		assert.Equalf(t, model.Bucket(0), got.Bucket, "incorrect from bucket %d", b)
	}
}

func TestDelay_Monotonic(t *testing.T) {
	for b := model.Bucket(1); b <= MaxBucket; b++ {
		assert.Greaterf(t, Delay(b), Delay(b-1), "delay(%d) > delay(%d)", b, b-1)
	}
	// 最終値が最大
	assert.Equal(t, 30*24*time.Hour, Delay(MaxBucket))
	// 範囲外は即時
	assert.Equal(t, time.Duration(0), Delay(-1))
	assert.Equal(t, time.Duration(0), Delay(MaxBucket+1))
}

// 次回期限は必ず [now + 0.75*delay, now + 1.25*delay] に収まる
func TestTransition_JitterBounds(t *testing.T) {
	now := time.Now()
	rng := rand.New(rand.NewSource(42))

	for b := model.Bucket(0); b <= MaxBucket; b++ {
		for i := 0; i < 200; i++ {
			got := Transition(b, true, now, rng)
			delay := Delay(got.Bucket)
			lo := now.Add(time.Duration(float64(delay) * jitterMin))
			hi := now.Add(time.Duration(float64(delay) * jitterMax))
			assert.Falsef(t, got.NextReviewAt.Before(lo), "bucket %d: %v before %v", b, got.NextReviewAt, lo)
			assert.Falsef(t, got.NextReviewAt.After(hi), "bucket %d: %v after %v", b, got.NextReviewAt, hi)
		}
	}
}

// 不正解はバケット0（即時）なので期限は now のまま
func TestTransition_IncorrectIsImmediate(t *testing.T) {
	now := time.Now()
	rng := rand.New(rand.NewSource(7))

	got := Transition(5, false, now, rng)
	assert.Equal(t, model.Bucket(0), got.Bucket)
	assert.True(t, got.NextReviewAt.Equal(now))
}

// 仕様シナリオ: バケット0で正解 → バケット1、約1分後（±25%）
func TestTransition_FirstCorrectAnswer(t *testing.T) {
	now := time.Now()
	rng := rand.New(rand.NewSource(99))

	got := Transition(0, true, now, rng)
	assert.Equal(t, model.Bucket(1), got.Bucket)

	wait := got.NextReviewAt.Sub(now)
	assert.GreaterOrEqual(t, wait, 45*time.Second)
	assert.LessOrEqual(t, wait, 75*time.Second)
}
