// internal/repository/synonym_repository.go
package repository

import (
	"context"
	"fmt"

	"go_5_hanzi_drill/internal/middleware"
	"go_5_hanzi_drill/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SynonymRepository は学習者が登録した別読みを永続化します
type SynonymRepository interface {
	Create(ctx context.Context, tx *gorm.DB, synonym *model.PinyinSynonym) error
	FindByWordID(ctx context.Context, db *gorm.DB, wordID uuid.UUID) ([]*model.PinyinSynonym, error)
	Exists(ctx context.Context, db *gorm.DB, wordID uuid.UUID, reading string) (bool, error)
}

type gormSynonymRepository struct{}

func NewGormSynonymRepository() SynonymRepository {
	return &gormSynonymRepository{}
}

func (r *gormSynonymRepository) Create(ctx context.Context, tx *gorm.DB, synonym *model.PinyinSynonym) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Create(synonym)
	if result.Error != nil {
		logger.Error("Error creating pinyin synonym in DB",
			"error", result.Error,
			"word_id", synonym.WordID.String(),
			"reading", synonym.Reading,
		)
		return fmt.Errorf("gormSynonymRepository.Create: %w", result.Error)
	}
	return nil
}

func (r *gormSynonymRepository) FindByWordID(ctx context.Context, db *gorm.DB, wordID uuid.UUID) ([]*model.PinyinSynonym, error) {
	var synonyms []*model.PinyinSynonym
	result := db.WithContext(ctx).Where("word_id = ?", wordID).Order("created_at ASC").Find(&synonyms)
	if result.Error != nil {
		return nil, fmt.Errorf("gormSynonymRepository.FindByWordID: %w", result.Error)
	}
	return synonyms, nil
}

func (r *gormSynonymRepository) Exists(ctx context.Context, db *gorm.DB, wordID uuid.UUID, reading string) (bool, error) {
	var count int64
	result := db.WithContext(ctx).
		Model(&model.PinyinSynonym{}).
		Where("word_id = ? AND reading = ?", wordID, reading).
		Count(&count)
	if result.Error != nil {
		return false, fmt.Errorf("gormSynonymRepository.Exists: %w", result.Error)
	}
	return count > 0, nil
}
