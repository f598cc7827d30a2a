// internal/model/synonym.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// PinyinSynonym は学習者が「この読みも正しい」と明示登録した別読みです。
// Reading は正規化済み機械形（例: "hao3"）で保持します。
type PinyinSynonym struct {
	SynonymID uuid.UUID `gorm:"type:uuid;primaryKey" json:"-"`
	WordID    uuid.UUID `gorm:"type:uuid;not null;index:idx_word_reading,unique" json:"word_id"`
	Reading   string    `gorm:"not null;index:idx_word_reading,unique" json:"reading"`
	CreatedAt time.Time `json:"created_at"`
}

func (PinyinSynonym) TableName() string {
	return "pinyin_synonyms"
}

// 別読み登録リクエストDTO
type PostSynonymRequest struct {
	Hanzi   string `json:"hanzi" validate:"required"`
	Reading string `json:"reading" validate:"required"`
}
