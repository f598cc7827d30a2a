// internal/model/practice.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// SelectionStrategy は出題リストの組み立て方です
type SelectionStrategy string

const (
	// StrategyMixed は復習期限到来分を優先し、残り枠を新規で埋めます（既定）
	StrategyMixed SelectionStrategy = "mixed"
	// StrategyRandomReview は期限到来分のみをランダム順で出題します
	StrategyRandomReview SelectionStrategy = "random_review"
	// StrategyNewOnly は未出題の単語のみを頻度順で出題します
	StrategyNewOnly SelectionStrategy = "new_only"
)

// SelectionFilter は出題クエリ共通の絞り込み条件です
type SelectionFilter struct {
	Categories       []string // 空 = 絞り込みなし
	HanziOnly        bool     // 一文字（単漢字）のみ
	TranslatableOnly bool     // 訳語が答え/問題になるモードで注釈語を除外
}

// セッション開始リクエストDTO
type StartSessionRequest struct {
	Mode       string   `json:"mode" validate:"required"`
	Count      int      `json:"count" validate:"omitempty,min=1,max=100"`
	Strategy   string   `json:"strategy" validate:"omitempty,oneof=mixed random_review new_only"`
	Categories []string `json:"categories,omitempty"`
	HanziOnly  bool     `json:"hanzi_only"` // 一文字（単漢字）だけに絞る
}

// Question は出題1件です。Bucket は未出題なら null（"new"）。
type Question struct {
	WordID          uuid.UUID `json:"word_id"`
	Hanzi           string    `json:"hanzi"`
	Prompt          string    `json:"prompt"`
	AcceptedAnswers []string  `json:"accepted_answers"`
	Bucket          *Bucket   `json:"bucket"`
}

// StartSessionResponse は出題リストのレスポンスDTO
type StartSessionResponse struct {
	Mode      PracticeMode `json:"mode"`
	Questions []Question   `json:"questions"`
}

// 解答判定リクエストDTO
type SubmitAnswerRequest struct {
	Mode   string `json:"mode" validate:"required"`
	Hanzi  string `json:"hanzi" validate:"required"`
	Answer string `json:"answer" validate:"required"`
}

// SubmitAnswerResponse は判定結果です。
// NearMiss は「別解として妥当だが期待解ではない」惜しい解答を示し、
// 正解としては扱いません（バケットは進まない）。
type SubmitAnswerResponse struct {
	Correct         bool     `json:"correct"`
	NearMiss        bool     `json:"near_miss"`
	AcceptedAnswers []string `json:"accepted_answers"`
}

// セッション完了（採点結果一括送信）リクエストDTO
type CompleteSessionRequest struct {
	Mode    string              `json:"mode" validate:"required"`
	Results []SessionItemResult `json:"results" validate:"required,min=1,dive"`
}

type SessionItemResult struct {
	Hanzi                 string `json:"hanzi" validate:"required"`
	CorrectOnFirstAttempt *bool  `json:"correct_on_first_attempt" validate:"required"`
}

// CompleteSessionResponse は単語ごとの更新後スケジュールです
type CompleteSessionResponse struct {
	Updated []UpdatedProgress `json:"updated"`
}

type UpdatedProgress struct {
	Hanzi        string    `json:"hanzi"`
	Bucket       Bucket    `json:"bucket"`
	NextReviewAt time.Time `json:"next_review_at"`
}
