// internal/repository/progress_repository.go
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go_5_hanzi_drill/internal/middleware"
	"go_5_hanzi_drill/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProgressRepository は (単語, モード) ごとの進捗行を永続化します
type ProgressRepository interface {
	Create(ctx context.Context, tx *gorm.DB, progress *model.LearningProgress) error // トランザクション対応
	FindByWordAndMode(ctx context.Context, db *gorm.DB, wordID uuid.UUID, mode model.PracticeMode) (*model.LearningProgress, error)
	Update(ctx context.Context, tx *gorm.DB, progress *model.LearningProgress) error // トランザクション対応
	// DeleteByWord は単語の進捗を消して「新規」に戻します。mode=nil なら全モード。
	DeleteByWord(ctx context.Context, tx *gorm.DB, wordID uuid.UUID, mode *model.PracticeMode) error
	// FindDueByMode は期限到来分を next_review_at 昇順（滞留が古い順）で返します
	FindDueByMode(ctx context.Context, db *gorm.DB, mode model.PracticeMode, now time.Time, limit int, filter model.SelectionFilter) ([]*model.LearningProgress, error)
	// FindRandomDueByMode は同じ期限条件でランダム順に返します
	FindRandomDueByMode(ctx context.Context, db *gorm.DB, mode model.PracticeMode, now time.Time, limit int, filter model.SelectionFilter) ([]*model.LearningProgress, error)
	CountDueByMode(ctx context.Context, db *gorm.DB, mode model.PracticeMode, now time.Time) (int64, error)
}

type gormProgressRepository struct {
	// DB接続はService層から渡される想定
}

func NewGormProgressRepository() ProgressRepository {
	return &gormProgressRepository{}
}

func (r *gormProgressRepository) Create(ctx context.Context, tx *gorm.DB, progress *model.LearningProgress) error {
	// UUIDはService層で設定済み想定
	result := tx.WithContext(ctx).Create(progress)
	// GORMは複合ユニーク制約違反などをErrorで返す
	return result.Error
}

func (r *gormProgressRepository) FindByWordAndMode(ctx context.Context, db *gorm.DB, wordID uuid.UUID, mode model.PracticeMode) (*model.LearningProgress, error) {
	var progress model.LearningProgress
	result := db.WithContext(ctx).Where("word_id = ? AND mode = ?", wordID, mode).First(&progress)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("gormProgressRepository.FindByWordAndMode: %w", result.Error)
	}
	return &progress, nil
}

func (r *gormProgressRepository) Update(ctx context.Context, tx *gorm.DB, progress *model.LearningProgress) error {
	// Saveは主キーに基づくUpdate。事前の存在確認はService側で行う想定。
	result := tx.WithContext(ctx).Save(progress)
	if result.Error != nil {
		return fmt.Errorf("gormProgressRepository.Update: %w", result.Error)
	}
	return nil
}

func (r *gormProgressRepository) DeleteByWord(ctx context.Context, tx *gorm.DB, wordID uuid.UUID, mode *model.PracticeMode) error {
	logger := middleware.GetLogger(ctx)
	query := tx.WithContext(ctx).Where("word_id = ?", wordID)
	if mode != nil {
		query = query.Where("mode = ?", *mode)
	}
	result := query.Delete(&model.LearningProgress{})
	if result.Error != nil {
		logger.Error("Error deleting progress in DB", "error", result.Error, "word_id", wordID.String())
		return fmt.Errorf("gormProgressRepository.DeleteByWord: %w", result.Error)
	}
	// 進捗ゼロの単語のリセットも成功扱い（冪等）
	return nil
}

// dueQuery は期限到来分の共通条件を組み立てます
func (r *gormProgressRepository) dueQuery(ctx context.Context, db *gorm.DB, mode model.PracticeMode, now time.Time, filter model.SelectionFilter) *gorm.DB {
	query := db.WithContext(ctx).
		Model(&model.LearningProgress{}).
		Preload("Word.Translations", func(db *gorm.DB) *gorm.DB {
			return db.Order("translations.position ASC")
		}).
		Preload("Word.Categories").
		Joins("JOIN words ON words.word_id = learning_progress.word_id AND words.deleted_at IS NULL").
		Where("learning_progress.mode = ? AND learning_progress.next_review_at <= ?", mode, now)
	return applySelectionFilter(query, db, filter)
}

func (r *gormProgressRepository) FindDueByMode(ctx context.Context, db *gorm.DB, mode model.PracticeMode, now time.Time, limit int, filter model.SelectionFilter) ([]*model.LearningProgress, error) {
	var progresses []*model.LearningProgress
	result := r.dueQuery(ctx, db, mode, now, filter).
		Order("learning_progress.next_review_at ASC").
		Limit(limit).
		Find(&progresses)
	if result.Error != nil {
		return nil, fmt.Errorf("gormProgressRepository.FindDueByMode: %w", result.Error)
	}
	return progresses, nil
}

func (r *gormProgressRepository) FindRandomDueByMode(ctx context.Context, db *gorm.DB, mode model.PracticeMode, now time.Time, limit int, filter model.SelectionFilter) ([]*model.LearningProgress, error) {
	var progresses []*model.LearningProgress
	// RANDOM() は PostgreSQL / SQLite 共通
	result := r.dueQuery(ctx, db, mode, now, filter).
		Order("RANDOM()").
		Limit(limit).
		Find(&progresses)
	if result.Error != nil {
		return nil, fmt.Errorf("gormProgressRepository.FindRandomDueByMode: %w", result.Error)
	}
	return progresses, nil
}

func (r *gormProgressRepository) CountDueByMode(ctx context.Context, db *gorm.DB, mode model.PracticeMode, now time.Time) (int64, error) {
	var count int64
	result := db.WithContext(ctx).
		Model(&model.LearningProgress{}).
		Joins("JOIN words ON words.word_id = learning_progress.word_id AND words.deleted_at IS NULL").
		Where("learning_progress.mode = ? AND learning_progress.next_review_at <= ?", mode, now).
		Count(&count)
	if result.Error != nil {
		return 0, fmt.Errorf("gormProgressRepository.CountDueByMode: %w", result.Error)
	}
	return count, nil
}
