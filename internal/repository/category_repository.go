// internal/repository/category_repository.go
package repository

import (
	"context"
	"errors"
	"fmt"

	"go_5_hanzi_drill/internal/middleware"
	"go_5_hanzi_drill/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CategoryRepository はカテゴリタグを永続化します。
// カテゴリの編集UIはスコープ外なので、一覧と名前解決だけを提供します。
type CategoryRepository interface {
	ListAll(ctx context.Context, db *gorm.DB) ([]*model.Category, error)
	// FindOrCreateByNames は名前のリストをカテゴリ行に解決します（なければ作る）
	FindOrCreateByNames(ctx context.Context, tx *gorm.DB, names []string) ([]model.Category, error)
}

type gormCategoryRepository struct{}

func NewGormCategoryRepository() CategoryRepository {
	return &gormCategoryRepository{}
}

func (r *gormCategoryRepository) ListAll(ctx context.Context, db *gorm.DB) ([]*model.Category, error) {
	var categories []*model.Category
	result := db.WithContext(ctx).Order("name ASC").Find(&categories)
	if result.Error != nil {
		return nil, fmt.Errorf("gormCategoryRepository.ListAll: %w", result.Error)
	}
	return categories, nil
}

func (r *gormCategoryRepository) FindOrCreateByNames(ctx context.Context, tx *gorm.DB, names []string) ([]model.Category, error) {
	logger := middleware.GetLogger(ctx)
	categories := make([]model.Category, 0, len(names))
	for _, name := range names {
		var category model.Category
		err := tx.WithContext(ctx).Where("name = ?", name).First(&category).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			category = model.Category{
				CategoryID: uuid.New(),
				Name:       name,
			}
			if createErr := tx.WithContext(ctx).Create(&category).Error; createErr != nil {
				logger.Error("Error creating category in DB", "error", createErr, "name", name)
				return nil, fmt.Errorf("gormCategoryRepository.FindOrCreateByNames: %w", createErr)
			}
		} else if err != nil {
			logger.Error("Error finding category in DB", "error", err, "name", name)
			return nil, fmt.Errorf("gormCategoryRepository.FindOrCreateByNames: %w", err)
		}
		categories = append(categories, category)
	}
	return categories, nil
}
