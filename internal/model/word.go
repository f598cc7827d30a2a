// internal/model/word.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NoFrequencyRank は頻度ランク未設定（手動追加語など）の番兵値です。
// 新規出題の並び順で必ず最後に来るように大きな値にしています。
const NoFrequencyRank = 999999

// Word は学習対象の単語（漢字・ピンイン・訳語）を表します
type Word struct {
	WordID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"word_id"`
	Hanzi         string         `gorm:"not null;uniqueIndex" json:"hanzi"` // 漢字表記（一意キー）
	Pinyin        string         `gorm:"not null" json:"pinyin"`            // 声調記号つき表示形（空白区切り）
	FrequencyRank int            `gorm:"not null;default:999999;index" json:"frequency_rank"`
	Translatable  bool           `gorm:"not null;default:true" json:"translatable"` // 全訳語が注釈的な語は false
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"` // 論理削除用

	// 関連 (Preload用)
	Translations []Translation `gorm:"foreignKey:WordID;references:WordID" json:"translations"`
	Categories   []Category    `gorm:"many2many:word_categories;foreignKey:WordID;joinForeignKey:WordID;References:CategoryID;joinReferences:CategoryID" json:"categories"`
}

func (Word) TableName() string {
	return "words"
}

// PrimaryTranslation は先頭（Position最小）の訳語を返します。訳語なしは空文字。
func (w *Word) PrimaryTranslation() string {
	if len(w.Translations) == 0 {
		return ""
	}
	return w.Translations[0].Text
}

// TranslationTexts は並び順どおりの訳語文字列リストを返します
func (w *Word) TranslationTexts() []string {
	texts := make([]string, 0, len(w.Translations))
	for _, tr := range w.Translations {
		texts = append(texts, tr.Text)
	}
	return texts
}

// Translation は単語の訳語1件を表します（Position順で保持）
type Translation struct {
	TranslationID uuid.UUID `gorm:"type:uuid;primaryKey" json:"-"`
	WordID        uuid.UUID `gorm:"type:uuid;not null;index" json:"-"`
	Position      int       `gorm:"not null" json:"position"`
	Text          string    `gorm:"not null" json:"text"`
}

func (Translation) TableName() string {
	return "translations"
}

// Category は単語に付与するカテゴリタグです
type Category struct {
	CategoryID uuid.UUID `gorm:"type:uuid;primaryKey" json:"category_id"`
	Name       string    `gorm:"not null;uniqueIndex" json:"name"`
	CreatedAt  time.Time `json:"created_at"`
}

func (Category) TableName() string {
	return "categories"
}

// 単語作成リクエストDTO
type PostWordRequest struct {
	Hanzi         string   `json:"hanzi" validate:"required"`
	Pinyin        string   `json:"pinyin" validate:"required"`
	Translations  []string `json:"translations" validate:"required,min=1,dive,required"`
	FrequencyRank *int     `json:"frequency_rank,omitempty" validate:"omitempty,min=1"`
	Translatable  *bool    `json:"translatable,omitempty"`
	Categories    []string `json:"categories,omitempty"`
}

// 単語更新（部分）リクエストDTO
type PatchWordRequest struct {
	Pinyin       *string   `json:"pinyin,omitempty" validate:"omitempty,min=1"`
	Translations []string  `json:"translations,omitempty" validate:"omitempty,min=1,dive,required"`
	Translatable *bool     `json:"translatable,omitempty"`
	Categories   *[]string `json:"categories,omitempty"` // nil=変更なし、空スライス=全解除
}

// ImportResult は一括取り込みの結果サマリです
type ImportResult struct {
	Imported int      `json:"imported"`
	Skipped  []string `json:"skipped,omitempty"` // 重複などでスキップした漢字
}
