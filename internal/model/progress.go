// internal/model/progress.go
package model

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// PracticeMode は出題形式を表す閉じた列挙型です。
// 文字列キーでの動的ディスパッチはせず、必ず switch で全変種を扱います。
type PracticeMode int

const (
	ModeHanziToPinyin      PracticeMode = iota + 1 // 漢字 → ピンイン
	ModeHanziToTranslation                         // 漢字 → 訳語
	ModeTranslationToHanzi                         // 訳語 → 漢字
	ModeTranslationToPinyin                        // 訳語 → ピンイン
)

var practiceModeNames = map[PracticeMode]string{
	ModeHanziToPinyin:       "hanzi_to_pinyin",
	ModeHanziToTranslation:  "hanzi_to_translation",
	ModeTranslationToHanzi:  "translation_to_hanzi",
	ModeTranslationToPinyin: "translation_to_pinyin",
}

// AllPracticeModes は定義済みの全モードです（リマインダー集計などで使用）
var AllPracticeModes = []PracticeMode{
	ModeHanziToPinyin,
	ModeHanziToTranslation,
	ModeTranslationToHanzi,
	ModeTranslationToPinyin,
}

func (m PracticeMode) String() string {
	if name, ok := practiceModeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("practice_mode(%d)", int(m))
}

// IsValid は定義済みモードかどうかを返します
func (m PracticeMode) IsValid() bool {
	_, ok := practiceModeNames[m]
	return ok
}

// ParsePracticeMode は文字列表現からモードを復元します。
// 未知の値は ErrInvalidMode（リトライ不可のリクエストエラー）。
func ParsePracticeMode(s string) (PracticeMode, error) {
	for mode, name := range practiceModeNames {
		if name == s {
			return mode, nil
		}
	}
	return 0, NewAppError("INVALID_MODE", "未知の出題形式です: "+s, "mode", ErrInvalidMode)
}

// MarshalJSON はモードを文字列としてシリアライズします
func (m PracticeMode) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

func (m *PracticeMode) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	mode, err := ParsePracticeMode(s)
	if err != nil {
		return err
	}
	*m = mode
	return nil
}

// Bucket は間隔反復の段階（0=初期、MaxBucket=習得済み）です
type Bucket int

// LearningProgress は (単語, モード) ごとの学習進捗を表します。
// 一度でも解答（または自動開示）された時点で作成され、以後は更新のみ。
// 行が存在しない単語はそのモードで「新規」です。
type LearningProgress struct {
	ProgressID      uuid.UUID    `gorm:"type:uuid;primaryKey"`
	WordID          uuid.UUID    `gorm:"type:uuid;not null;index:idx_word_mode,unique"` // 複合ユニークインデックスの一部
	Mode            PracticeMode `gorm:"not null;index:idx_word_mode,unique"`
	Bucket          Bucket       `gorm:"not null;default:0"`
	LastPracticedAt time.Time    `gorm:"not null"`
	NextReviewAt    time.Time    `gorm:"not null;index"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
	// GORMのDeletedAtは不要 (Wordの削除に追従)

	// 関連 (Preload用)
	Word *Word `gorm:"foreignKey:WordID;references:WordID" json:"-"`
}

func (LearningProgress) TableName() string {
	return "learning_progress"
}

// ProgressState は「新規 or 復習中」を明示的に表す二変種型です。
// 進捗行の有無（nilかどうか）での分岐を型で置き換えます。
type ProgressState interface {
	isProgressState()
}

// StateNew は対象モードで一度も出題されていない状態
type StateNew struct{}

// StateReviewing は進捗行が存在する状態
type StateReviewing struct {
	Bucket          Bucket
	LastPracticedAt time.Time
	NextReviewAt    time.Time
}

func (StateNew) isProgressState()       {}
func (StateReviewing) isProgressState() {}

// StateOf は進捗行（存在しなければnil）を ProgressState に持ち上げます
func StateOf(progress *LearningProgress) ProgressState {
	if progress == nil {
		return StateNew{}
	}
	return StateReviewing{
		Bucket:          progress.Bucket,
		LastPracticedAt: progress.LastPracticedAt,
		NextReviewAt:    progress.NextReviewAt,
	}
}
