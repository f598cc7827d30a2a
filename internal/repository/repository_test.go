package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"go_5_hanzi_drill/internal/model"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	// テストごとに独立した名前付きインメモリDB（コネクションプール越しでも同一DBを共有）
	dsn := "file:" + t.Name() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&model.Word{},
		&model.Translation{},
		&model.Category{},
		&model.LearningProgress{},
		&model.PinyinSynonym{},
	))
	return db
}

// mustCreateWord はテスト用の単語を関連ごと登録します
func mustCreateWord(t *testing.T, db *gorm.DB, hanzi, pinyinStr string, rank int, translations ...string) *model.Word {
	t.Helper()
	word := &model.Word{
		WordID:        uuid.New(),
		Hanzi:         hanzi,
		Pinyin:        pinyinStr,
		FrequencyRank: rank,
		Translatable:  true,
	}
	for i, text := range translations {
		word.Translations = append(word.Translations, model.Translation{
			TranslationID: uuid.New(),
			WordID:        word.WordID,
			Position:      i,
			Text:          text,
		})
	}
	require.NoError(t, db.Create(word).Error)
	return word
}

func mustCreateProgress(t *testing.T, db *gorm.DB, wordID uuid.UUID, mode model.PracticeMode, bucket model.Bucket, nextReviewAt time.Time) {
	t.Helper()
	require.NoError(t, db.Create(&model.LearningProgress{
		ProgressID:      uuid.New(),
		WordID:          wordID,
		Mode:            mode,
		Bucket:          bucket,
		LastPracticedAt: nextReviewAt.Add(-time.Hour),
		NextReviewAt:    nextReviewAt,
	}).Error)
}

func TestGormWordRepository_FindNewWords(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := NewGormWordRepository()

	// 頻度ランクあり2語、番兵値（手動追加）1語
	common := mustCreateWord(t, db, "你", "nǐ", 10, "you")
	rare := mustCreateWord(t, db, "豆腐", "dòu fu", 500, "tofu")
	mustCreateWord(t, db, "猫", "māo", model.NoFrequencyRank, "cat")

	// 「你」だけ hanzi_to_pinyin で学習済み
	mustCreateProgress(t, db, common.WordID, model.ModeHanziToPinyin, 2, time.Now())

	t.Run("進捗のあるモードでは未出題の語だけを頻度順で返す", func(t *testing.T) {
		words, err := repo.FindNewWords(ctx, db, model.ModeHanziToPinyin, 10, model.SelectionFilter{})
		require.NoError(t, err)
		require.Len(t, words, 2)
		assert.Equal(t, "豆腐", words[0].Hanzi) // rank 500
		assert.Equal(t, "猫", words[1].Hanzi)  // 番兵値は最後
	})

	t.Run("別モードの進捗は影響しない", func(t *testing.T) {
		words, err := repo.FindNewWords(ctx, db, model.ModeHanziToTranslation, 10, model.SelectionFilter{})
		require.NoError(t, err)
		assert.Len(t, words, 3)
		assert.Equal(t, "你", words[0].Hanzi) // rank 10 が先頭
	})

	t.Run("単漢字フィルタ", func(t *testing.T) {
		words, err := repo.FindNewWords(ctx, db, model.ModeHanziToPinyin, 10, model.SelectionFilter{HanziOnly: true})
		require.NoError(t, err)
		require.Len(t, words, 1)
		assert.Equal(t, "猫", words[0].Hanzi)
	})

	t.Run("訳語が注釈的な語を除外", func(t *testing.T) {
		require.NoError(t, db.Model(&model.Word{}).
			Where("word_id = ?", rare.WordID).
			Update("translatable", false).Error)

		words, err := repo.FindNewWords(ctx, db, model.ModeHanziToPinyin, 10, model.SelectionFilter{TranslatableOnly: true})
		require.NoError(t, err)
		require.Len(t, words, 1)
		assert.Equal(t, "猫", words[0].Hanzi)
	})

	t.Run("訳語はPosition順でPreloadされる", func(t *testing.T) {
		words, err := repo.FindNewWords(ctx, db, model.ModeTranslationToHanzi, 1, model.SelectionFilter{})
		require.NoError(t, err)
		require.Len(t, words, 1)
		require.NotEmpty(t, words[0].Translations)
		assert.Equal(t, "you", words[0].Translations[0].Text)
	})
}

func TestGormWordRepository_FindNewWords_CategoryFilter(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := NewGormWordRepository()

	hsk1 := model.Category{CategoryID: uuid.New(), Name: "HSK1"}
	require.NoError(t, db.Create(&hsk1).Error)

	tagged := mustCreateWord(t, db, "你", "nǐ", 10, "you")
	require.NoError(t, db.Model(tagged).Association("Categories").Append(&hsk1))
	mustCreateWord(t, db, "猫", "māo", 20, "cat")

	words, err := repo.FindNewWords(ctx, db, model.ModeHanziToPinyin, 10, model.SelectionFilter{Categories: []string{"HSK1"}})
	require.NoError(t, err)
	require.Len(t, words, 1)
	assert.Equal(t, "你", words[0].Hanzi)
}

func TestGormWordRepository_CheckHanziExists(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := NewGormWordRepository()

	word := mustCreateWord(t, db, "爱", "ài", 100, "to love")

	exists, err := repo.CheckHanziExists(ctx, db, "爱", nil)
	require.NoError(t, err)
	assert.True(t, exists)

	// 自分自身を除外すれば重複なし（更新時のチェック用）
	exists, err = repo.CheckHanziExists(ctx, db, "爱", &word.WordID)
	require.NoError(t, err)
	assert.False(t, exists)

	exists, err = repo.CheckHanziExists(ctx, db, "恨", nil)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestGormProgressRepository_FindDueByMode(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := NewGormProgressRepository()
	now := time.Now()

	oldWord := mustCreateWord(t, db, "你", "nǐ", 10, "you")
	newerWord := mustCreateWord(t, db, "好", "hǎo", 20, "good")
	futureWord := mustCreateWord(t, db, "猫", "māo", 30, "cat")
	deletedWord := mustCreateWord(t, db, "狗", "gǒu", 40, "dog")

	mustCreateProgress(t, db, oldWord.WordID, model.ModeHanziToPinyin, 3, now.Add(-2*time.Hour))
	mustCreateProgress(t, db, newerWord.WordID, model.ModeHanziToPinyin, 1, now.Add(-time.Minute))
	mustCreateProgress(t, db, futureWord.WordID, model.ModeHanziToPinyin, 1, now.Add(time.Hour))
	mustCreateProgress(t, db, deletedWord.WordID, model.ModeHanziToPinyin, 1, now.Add(-time.Hour))
	require.NoError(t, db.Delete(deletedWord).Error)

	t.Run("期限到来分を滞留が古い順に返す", func(t *testing.T) {
		progresses, err := repo.FindDueByMode(ctx, db, model.ModeHanziToPinyin, now, 10, model.SelectionFilter{})
		require.NoError(t, err)
		require.Len(t, progresses, 2)
		assert.Equal(t, oldWord.WordID, progresses[0].WordID)
		assert.Equal(t, newerWord.WordID, progresses[1].WordID)
		// 出題に必要な単語情報がPreloadされていること
		require.NotNil(t, progresses[0].Word)
		assert.Equal(t, "你", progresses[0].Word.Hanzi)
		assert.Equal(t, []string{"you"}, progresses[0].Word.TranslationTexts())
	})

	t.Run("limitで件数を絞る", func(t *testing.T) {
		progresses, err := repo.FindDueByMode(ctx, db, model.ModeHanziToPinyin, now, 1, model.SelectionFilter{})
		require.NoError(t, err)
		require.Len(t, progresses, 1)
		assert.Equal(t, oldWord.WordID, progresses[0].WordID)
	})

	t.Run("ランダム選択も同じ期限条件", func(t *testing.T) {
		progresses, err := repo.FindRandomDueByMode(ctx, db, model.ModeHanziToPinyin, now, 10, model.SelectionFilter{})
		require.NoError(t, err)
		assert.Len(t, progresses, 2)
	})

	t.Run("件数カウントも論理削除を除外する", func(t *testing.T) {
		count, err := repo.CountDueByMode(ctx, db, model.ModeHanziToPinyin, now)
		require.NoError(t, err)
		assert.Equal(t, int64(2), count)
	})
}

func TestGormProgressRepository_DeleteByWord(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := NewGormProgressRepository()
	now := time.Now()

	word := mustCreateWord(t, db, "行", "xíng", 50, "to walk")
	mustCreateProgress(t, db, word.WordID, model.ModeHanziToPinyin, 4, now)
	mustCreateProgress(t, db, word.WordID, model.ModeHanziToTranslation, 2, now)

	t.Run("モード指定でそのモードだけ消える", func(t *testing.T) {
		mode := model.ModeHanziToPinyin
		require.NoError(t, db.Transaction(func(tx *gorm.DB) error {
			return repo.DeleteByWord(ctx, tx, word.WordID, &mode)
		}))

		_, err := repo.FindByWordAndMode(ctx, db, word.WordID, model.ModeHanziToPinyin)
		assert.ErrorIs(t, err, model.ErrNotFound)
		remaining, err := repo.FindByWordAndMode(ctx, db, word.WordID, model.ModeHanziToTranslation)
		require.NoError(t, err)
		assert.Equal(t, model.Bucket(2), remaining.Bucket)
	})

	t.Run("モードなしで全モード消える・進捗ゼロでも成功", func(t *testing.T) {
		require.NoError(t, db.Transaction(func(tx *gorm.DB) error {
			return repo.DeleteByWord(ctx, tx, word.WordID, nil)
		}))
		_, err := repo.FindByWordAndMode(ctx, db, word.WordID, model.ModeHanziToTranslation)
		assert.ErrorIs(t, err, model.ErrNotFound)

		// 2回目も冪等に成功
		require.NoError(t, db.Transaction(func(tx *gorm.DB) error {
			return repo.DeleteByWord(ctx, tx, word.WordID, nil)
		}))
	})
}
