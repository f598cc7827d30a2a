// internal/repository/translation_index.go
package repository

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"go_5_hanzi_drill/internal/middleware"
	"go_5_hanzi_drill/internal/model"

	"gorm.io/gorm"
)

// TranslationIndex は「訳語セットが完全に一致する単語が2語以上あるか」を
// 判定するためのインデックスです。元システムはモジュール変数のマップを
// 暗黙に使い回していましたが、ここでは明示的なキャッシュオブジェクトとして
// 持ち、単語の変更後は Invalidate() を呼んで作り直します。
type TranslationIndex struct {
	db *gorm.DB

	mu    sync.Mutex
	built bool
	// 正規化した訳語セットキー → そのセットを持つ単語数
	counts map[string]int
}

func NewTranslationIndex(db *gorm.DB) *TranslationIndex {
	return &TranslationIndex{db: db}
}

// IsAmbiguous は対象単語と同一の訳語セットを持つ単語が
// 他にも存在するかどうかを返します
func (idx *TranslationIndex) IsAmbiguous(ctx context.Context, word *model.Word) (bool, error) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	if !idx.built {
		if err := idx.rebuild(ctx); err != nil {
			return false, err
		}
	}
	key := translationSetKey(word.TranslationTexts())
	if key == "" {
		return false, nil
	}
	return idx.counts[key] >= 2, nil
}

// Invalidate は次回参照時の再構築を予約します。
// 単語の作成・更新・削除・取り込みのあとに必ず呼びます。
func (idx *TranslationIndex) Invalidate() {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	idx.built = false
	idx.counts = nil
}

// rebuild は全単語の訳語セットを数え直します（mu 保持中に呼ぶこと）
func (idx *TranslationIndex) rebuild(ctx context.Context) error {
	logger := middleware.GetLogger(ctx)

	var words []*model.Word
	result := idx.db.WithContext(ctx).
		Preload("Translations", func(db *gorm.DB) *gorm.DB {
			return db.Order("translations.position ASC")
		}).
		Find(&words)
	if result.Error != nil {
		logger.Error("Error rebuilding translation index", "error", result.Error)
		return fmt.Errorf("TranslationIndex.rebuild: %w", result.Error)
	}

	counts := make(map[string]int, len(words))
	for _, word := range words {
		if key := translationSetKey(word.TranslationTexts()); key != "" {
			counts[key]++
		}
	}
	idx.counts = counts
	idx.built = true
	logger.Debug("Translation index rebuilt", "words", len(words), "distinct_sets", len(counts))
	return nil
}

// translationSetKey は訳語セットの正準キーを作ります。
// 並び順と大文字小文字は同一視します。
func translationSetKey(texts []string) string {
	if len(texts) == 0 {
		return ""
	}
	folded := make([]string, 0, len(texts))
	for _, t := range texts {
		folded = append(folded, strings.ToLower(strings.TrimSpace(t)))
	}
	sort.Strings(folded)
	return strings.Join(folded, "\x1f")
}
