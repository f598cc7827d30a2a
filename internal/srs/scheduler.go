// internal/srs/scheduler.go
package srs

import (
	"math/rand"
	"time"

	"go_5_hanzi_drill/internal/model"
)

// delays はバケットごとの復習間隔です。単調増加で、最終値が「習得済み」。
var delays = [...]time.Duration{
	0,                   // バケット0: 即時
	1 * time.Minute,     // 1
	5 * time.Minute,     // 2
	30 * time.Minute,    // 3
	4 * time.Hour,       // 4
	24 * time.Hour,      // 5
	3 * 24 * time.Hour,  // 6
	7 * 24 * time.Hour,  // 7
	30 * 24 * time.Hour, // 8: 習得済み
}

// MaxBucket は最上位バケット（習得済み）です
const MaxBucket = model.Bucket(len(delays) - 1)

// 揺らぎ（ジッタ）の範囲。同一セッションで採点された単語が
// 全部同じ瞬間に期限到来して復習が山積みになるのを防ぎます。
const (
	jitterMin = 0.75
	jitterMax = 1.25
)

// Result は遷移結果です
type Result struct {
	Bucket       model.Bucket
	NextReviewAt time.Time
}

// Delay はバケットの基準間隔を返します。範囲外は0（即時）。
func Delay(bucket model.Bucket) time.Duration {
	if bucket < 0 || int(bucket) >= len(delays) {
		return 0
	}
	return delays[bucket]
}

// Transition は (現バケット, 正誤) から (次バケット, 次回期限) を計算する
// 純粋関数です。正解で1段上がり（上限 MaxBucket）、不正解で0に戻ります。
// 次回期限は now + delay(次バケット) × U[0.75, 1.25]。
// 永続化は呼び出し側の責務です（採点1回につき upsert 1回）。
func Transition(bucket model.Bucket, correct bool, now time.Time, rng *rand.Rand) Result {
	var next model.Bucket
	if correct {
		next = bucket + 1
		if next > MaxBucket {
			next = MaxBucket
		}
	} else {
		next = 0
	}

	jitter := jitterMin + rng.Float64()*(jitterMax-jitterMin)
	wait := time.Duration(float64(Delay(next)) * jitter)

	return Result{
		Bucket:       next,
		NextReviewAt: now.Add(wait),
	}
}
