// internal/repository/word_repository.go
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

// WordRepository は単語と訳語・カテゴリ関連の永続化を担います
type WordRepository interface {
	Create(ctx context.Context, tx *gorm.DB, word *model.Word) error
	FindByID(ctx context.Context, db *gorm.DB, wordID uuid.UUID) (*model.Word, error)
	FindByHanzi(ctx context.Context, db *gorm.DB, hanzi string) (*model.Word, error)
	FindAll(ctx context.Context, db *gorm.DB, categories []string) ([]*model.Word, error)
	Update(ctx context.Context, tx *gorm.DB, wordID uuid.UUID, updates map[string]interface{}) error
	ReplaceTranslations(ctx context.Context, tx *gorm.DB, wordID uuid.UUID, texts []string) error
	ReplaceCategories(ctx context.Context, tx *gorm.DB, word *model.Word, categories []model.Category) error
	Delete(ctx context.Context, tx *gorm.DB, wordID uuid.UUID) error
	CheckHanziExists(ctx context.Context, db *gorm.DB, hanzi string, excludeWordID *uuid.UUID) (bool, error)
	// FindNewWords はモードに進捗行がない単語を頻度順（番兵は最後）で返します
	FindNewWords(ctx context.Context, db *gorm.DB, mode model.PracticeMode, limit int, filter model.SelectionFilter) ([]*model.Word, error)
}

type gormWordRepository struct{}

func NewGormWordRepository() WordRepository {
	return &gormWordRepository{}
}

// preloadWord は訳語（Position順）とカテゴリを読み込む共通スコープです
func preloadWord(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Translations", func(db *gorm.DB) *gorm.DB {
			return db.Order("translations.position ASC")
		}).
		Preload("Categories")
}

func (r *gormWordRepository) Create(ctx context.Context, tx *gorm.DB, word *model.Word) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Create(word)
	if result.Error != nil {
		// 事前チェック後に別リクエストが同じ漢字を登録したケース
		if IsUniqueViolation(result.Error) {
			return model.ErrConflict
		}
		logger.Error("Error creating word in DB",
			"error", result.Error,
			"hanzi", word.Hanzi,
		)
		return fmt.Errorf("gormWordRepository.Create: %w", result.Error)
	}
	return nil
}

func (r *gormWordRepository) FindByID(ctx context.Context, db *gorm.DB, wordID uuid.UUID) (*model.Word, error) {
	logger := middleware.GetLogger(ctx)
	var word model.Word
	result := preloadWord(db.WithContext(ctx)).Where("word_id = ?", wordID).First(&word)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding word by ID in DB",
			"error", result.Error,
			"word_id", wordID.String(),
		)
		return nil, fmt.Errorf("gormWordRepository.FindByID: %w", result.Error)
	}
	return &word, nil
}

func (r *gormWordRepository) FindByHanzi(ctx context.Context, db *gorm.DB, hanzi string) (*model.Word, error) {
	logger := middleware.GetLogger(ctx)
	var word model.Word
	result := preloadWord(db.WithContext(ctx)).Where("hanzi = ?", hanzi).First(&word)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding word by hanzi in DB",
			"error", result.Error,
			"hanzi", hanzi,
		)
		return nil, fmt.Errorf("gormWordRepository.FindByHanzi: %w", result.Error)
	}
	return &word, nil
}

func (r *gormWordRepository) FindAll(ctx context.Context, db *gorm.DB, categories []string) ([]*model.Word, error) {
	logger := middleware.GetLogger(ctx)
	var words []*model.Word
	query := preloadWord(db.WithContext(ctx))
	query = applyCategoryFilter(query, db, categories)
	result := query.Order("frequency_rank ASC, created_at ASC").Find(&words)
	if result.Error != nil {
		logger.Error("Error finding words in DB", "error", result.Error)
		return nil, fmt.Errorf("gormWordRepository.FindAll: %w", result.Error)
	}
	return words, nil
}

func (r *gormWordRepository) Update(ctx context.Context, tx *gorm.DB, wordID uuid.UUID, updates map[string]interface{}) error {
	logger := middleware.GetLogger(ctx)
	if len(updates) == 0 {
		return nil
	}
	result := tx.WithContext(ctx).Model(&model.Word{}).Where("word_id = ?", wordID).Updates(updates)
	if result.Error != nil {
		logger.Error("Error updating word in DB",
			"error", result.Error,
			"word_id", wordID.String(),
		)
		return fmt.Errorf("gormWordRepository.Update: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

// ReplaceTranslations は訳語リストを並び順ごと差し替えます
func (r *gormWordRepository) ReplaceTranslations(ctx context.Context, tx *gorm.DB, wordID uuid.UUID, texts []string) error {
	logger := middleware.GetLogger(ctx)
	if err := tx.WithContext(ctx).Where("word_id = ?", wordID).Delete(&model.Translation{}).Error; err != nil {
		logger.Error("Error deleting old translations in DB", "error", err, "word_id", wordID.String())
		return fmt.Errorf("gormWordRepository.ReplaceTranslations: %w", err)
	}
	translations := make([]model.Translation, 0, len(texts))
	for i, text := range texts {
		translations = append(translations, model.Translation{
			TranslationID: uuid.New(),
			WordID:        wordID,
			Position:      i,
			Text:          text,
		})
	}
	if len(translations) == 0 {
		return nil
	}
	if err := tx.WithContext(ctx).Create(&translations).Error; err != nil {
		logger.Error("Error creating translations in DB", "error", err, "word_id", wordID.String())
		return fmt.Errorf("gormWordRepository.ReplaceTranslations: %w", err)
	}
	return nil
}

// ReplaceCategories は many2many の関連を差し替えます
func (r *gormWordRepository) ReplaceCategories(ctx context.Context, tx *gorm.DB, word *model.Word, categories []model.Category) error {
	logger := middleware.GetLogger(ctx)
	if err := tx.WithContext(ctx).Model(word).Association("Categories").Replace(categories); err != nil {
		logger.Error("Error replacing word categories in DB", "error", err, "word_id", word.WordID.String())
		return fmt.Errorf("gormWordRepository.ReplaceCategories: %w", err)
	}
	return nil
}

func (r *gormWordRepository) Delete(ctx context.Context, tx *gorm.DB, wordID uuid.UUID) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Delete(&model.Word{}, "word_id = ?", wordID)
	if result.Error != nil {
		logger.Error("Error deleting word in DB",
			"error", result.Error,
			"word_id", wordID.String(),
		)
		return fmt.Errorf("gormWordRepository.Delete: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *gormWordRepository) CheckHanziExists(ctx context.Context, db *gorm.DB, hanzi string, excludeWordID *uuid.UUID) (bool, error) {
	logger := middleware.GetLogger(ctx)
	var count int64
	query := db.WithContext(ctx).Model(&model.Word{}).Where("hanzi = ?", hanzi)
	if excludeWordID != nil {
		query = query.Where("word_id != ?", *excludeWordID)
	}
	result := query.Count(&count)
	if result.Error != nil {
		logger.Error("Error checking hanzi existence in DB",
			"error", result.Error,
			"hanzi", hanzi,
		)
		return false, fmt.Errorf("gormWordRepository.CheckHanziExists: %w", result.Error)
	}
	return count > 0, nil
}

func (r *gormWordRepository) FindNewWords(ctx context.Context, db *gorm.DB, mode model.PracticeMode, limit int, filter model.SelectionFilter) ([]*model.Word, error) {
	logger := middleware.GetLogger(ctx)
	var words []*model.Word

	query := preloadWord(db.WithContext(ctx)).
		Where("NOT EXISTS (SELECT 1 FROM learning_progress lp WHERE lp.word_id = words.word_id AND lp.mode = ?)", mode)
	query = applySelectionFilter(query, db, filter)

	// 頻度ランク昇順（未設定の番兵値は最後）、同順位は登録順
	result := query.Order("frequency_rank ASC, created_at ASC").Limit(limit).Find(&words)
	if result.Error != nil {
		logger.Error("Error finding new words in DB", "error", result.Error, "mode", mode.String())
		return nil, fmt.Errorf("gormWordRepository.FindNewWords: %w", result.Error)
	}
	return words, nil
}

// applyCategoryFilter はカテゴリ名での絞り込みをサブクエリで付与します。
// JOINだと複数カテゴリ一致で行が重複するため IN サブクエリにしています。
func applyCategoryFilter(query *gorm.DB, db *gorm.DB, categories []string) *gorm.DB {
	if len(categories) == 0 {
		return query
	}
	sub := db.Table("word_categories").
		Select("word_categories.word_id").
		Joins("JOIN categories ON categories.category_id = word_categories.category_id").
		Where("categories.name IN ?", categories)
	return query.Where("words.word_id IN (?)", sub)
}

// applySelectionFilter は出題クエリ共通の絞り込みを付与します
func applySelectionFilter(query *gorm.DB, db *gorm.DB, filter model.SelectionFilter) *gorm.DB {
	query = applyCategoryFilter(query, db, filter.Categories)
	if filter.HanziOnly {
		// LENGTH は PostgreSQL / SQLite とも文字数を返す
		query = query.Where("LENGTH(words.hanzi) = 1")
	}
	if filter.TranslatableOnly {
		query = query.Where("words.translatable = ?", true)
	}
	return query
}
