// internal/service/word_service.go
package service

import (
	"context"
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"go_5_hanzi_drill/internal/middleware"
	"go_5_hanzi_drill/internal/model"
	"go_5_hanzi_drill/internal/pinyin"
	"go_5_hanzi_drill/internal/repository"
)

type WordService interface {
	CreateWord(ctx context.Context, req *model.PostWordRequest) (*model.Word, error)
	GetWord(ctx context.Context, wordID uuid.UUID) (*model.Word, error)
	GetWordByHanzi(ctx context.Context, hanzi string) (*model.Word, error)
	ListWords(ctx context.Context, categories []string) ([]*model.Word, error)
	UpdateWord(ctx context.Context, wordID uuid.UUID, req *model.PatchWordRequest) (*model.Word, error)
	DeleteWord(ctx context.Context, wordID uuid.UUID) error
	// ResetProgress は単語の進捗を消して「新規」に戻します。mode が nil なら全モード。
	ResetProgress(ctx context.Context, wordID uuid.UUID, mode *model.PracticeMode) error
	// ImportWords はxlsxファイルから単語を一括登録します
	ImportWords(ctx context.Context, r io.Reader) (*model.ImportResult, error)
	ListCategories(ctx context.Context) ([]*model.Category, error)
}

type wordService struct {
	db       *gorm.DB // トランザクション用にDB接続を持つ
	wordRepo repository.WordRepository
	progRepo repository.ProgressRepository
	catRepo  repository.CategoryRepository
	trIndex  *repository.TranslationIndex
}

func NewWordService(db *gorm.DB, wordRepo repository.WordRepository, progRepo repository.ProgressRepository, catRepo repository.CategoryRepository, trIndex *repository.TranslationIndex) WordService {
	return &wordService{
		db:       db,
		wordRepo: wordRepo,
		progRepo: progRepo,
		catRepo:  catRepo,
		trIndex:  trIndex,
	}
}

// canonicalPinyin は入力ピンイン（数字式でも記号式でも可）を
// 声調記号つきの表示形に正規化します。読みとして解釈できない場合はエラー。
func canonicalPinyin(input string) (string, error) {
	// 声調数字だけ・記号だけの入力を弾く（音節の実体が必要）
	if pinyin.StripTones(input) == "" {
		return "", model.NewAppError("INVALID_PINYIN", "ピンインとして解釈できません: "+input, "pinyin", model.ErrInvalidInput)
	}
	return pinyin.ToMarked(input), nil
}

// cleanTranslations は空要素を除きつつ前後の空白を落とします
func cleanTranslations(texts []string) []string {
	cleaned := make([]string, 0, len(texts))
	for _, t := range texts {
		t = strings.TrimSpace(t)
		if t != "" {
			cleaned = append(cleaned, t)
		}
	}
	return cleaned
}

func (s *wordService) CreateWord(ctx context.Context, req *model.PostWordRequest) (*model.Word, error) {
	logger := middleware.GetLogger(ctx).With("hanzi", req.Hanzi)

	marked, err := canonicalPinyin(req.Pinyin)
	if err != nil {
		return nil, err
	}
	translations := cleanTranslations(req.Translations)
	if len(translations) == 0 {
		return nil, model.NewAppError("INVALID_INPUT", "訳語が1つ以上必要です。", "translations", model.ErrInvalidInput)
	}

	var createdWord *model.Word

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		exists, err := s.wordRepo.CheckHanziExists(ctx, tx, req.Hanzi, nil)
		if err != nil {
			return model.NewAppError("INTERNAL_SERVER_ERROR", "重複チェックに失敗しました。", "", err)
		}
		if exists {
			return model.NewAppError("CONFLICT", "同じ漢字の単語がすでに登録されています。", "hanzi", model.ErrConflict)
		}

		word := &model.Word{
			WordID:        uuid.New(),
			Hanzi:         req.Hanzi,
			Pinyin:        marked,
			FrequencyRank: model.NoFrequencyRank,
			Translatable:  true,
		}
		if req.FrequencyRank != nil {
			word.FrequencyRank = *req.FrequencyRank
		}
		if req.Translatable != nil {
			word.Translatable = *req.Translatable
		}
		if err := s.wordRepo.Create(ctx, tx, word); err != nil {
			// 事前チェック後に滑り込んだ同時登録も重複として扱う
			if errors.Is(err, model.ErrConflict) {
				return model.NewAppError("CONFLICT", "同じ漢字の単語がすでに登録されています。", "hanzi", model.ErrConflict)
			}
			return model.NewAppError("INTERNAL_SERVER_ERROR", "単語の作成に失敗しました。", "", err)
		}

		if err := s.wordRepo.ReplaceTranslations(ctx, tx, word.WordID, translations); err != nil {
			return model.NewAppError("INTERNAL_SERVER_ERROR", "訳語の登録に失敗しました。", "", err)
		}

		if len(req.Categories) > 0 {
			cats, err := s.catRepo.FindOrCreateByNames(ctx, tx, req.Categories)
			if err != nil {
				return model.NewAppError("INTERNAL_SERVER_ERROR", "カテゴリの登録に失敗しました。", "", err)
			}
			if err := s.wordRepo.ReplaceCategories(ctx, tx, word, cats); err != nil {
				return model.NewAppError("INTERNAL_SERVER_ERROR", "カテゴリの紐付けに失敗しました。", "", err)
			}
		}

		createdWord = word
		return nil
	})
	if err != nil {
		return nil, err
	}

	// 訳語集合が変わったので曖昧さキャッシュを破棄
	s.trIndex.Invalidate()

	logger.Info("Word created", "word_id", createdWord.WordID)
	return s.wordRepo.FindByID(ctx, s.db, createdWord.WordID)
}

func (s *wordService) GetWord(ctx context.Context, wordID uuid.UUID) (*model.Word, error) {
	return s.wordRepo.FindByID(ctx, s.db, wordID)
}

func (s *wordService) GetWordByHanzi(ctx context.Context, hanzi string) (*model.Word, error) {
	return s.wordRepo.FindByHanzi(ctx, s.db, hanzi)
}

func (s *wordService) ListWords(ctx context.Context, categories []string) ([]*model.Word, error) {
	return s.wordRepo.FindAll(ctx, s.db, categories)
}

func (s *wordService) UpdateWord(ctx context.Context, wordID uuid.UUID, req *model.PatchWordRequest) (*model.Word, error) {
	logger := middleware.GetLogger(ctx).With("word_id", wordID)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		word, err := s.wordRepo.FindByID(ctx, tx, wordID)
		if err != nil {
			return err
		}

		updates := make(map[string]interface{})
		if req.Pinyin != nil {
			marked, err := canonicalPinyin(*req.Pinyin)
			if err != nil {
				return err
			}
			if marked != word.Pinyin {
				updates["pinyin"] = marked
			}
		}
		if req.Translatable != nil && *req.Translatable != word.Translatable {
			updates["translatable"] = *req.Translatable
		}
		if len(updates) > 0 {
			if err := s.wordRepo.Update(ctx, tx, wordID, updates); err != nil {
				return err
			}
		}

		if req.Translations != nil {
			translations := cleanTranslations(req.Translations)
			if len(translations) == 0 {
				return model.NewAppError("INVALID_INPUT", "訳語が1つ以上必要です。", "translations", model.ErrInvalidInput)
			}
			if err := s.wordRepo.ReplaceTranslations(ctx, tx, wordID, translations); err != nil {
				return model.NewAppError("INTERNAL_SERVER_ERROR", "訳語の更新に失敗しました。", "", err)
			}
		}

		if req.Categories != nil {
			cats, err := s.catRepo.FindOrCreateByNames(ctx, tx, *req.Categories)
			if err != nil {
				return model.NewAppError("INTERNAL_SERVER_ERROR", "カテゴリの更新に失敗しました。", "", err)
			}
			if err := s.wordRepo.ReplaceCategories(ctx, tx, word, cats); err != nil {
				return model.NewAppError("INTERNAL_SERVER_ERROR", "カテゴリの紐付けに失敗しました。", "", err)
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.trIndex.Invalidate()
	logger.Info("Word updated")
	return s.wordRepo.FindByID(ctx, s.db, wordID)
}

func (s *wordService) DeleteWord(ctx context.Context, wordID uuid.UUID) error {
	logger := middleware.GetLogger(ctx).With("word_id", wordID)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.wordRepo.Delete(ctx, tx, wordID); err != nil {
			return err
		}
		// 進捗も道連れにする（論理削除から復帰しても新規扱いで良い）
		if err := s.progRepo.DeleteByWord(ctx, tx, wordID, nil); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.trIndex.Invalidate()
	logger.Info("Word deleted")
	return nil
}

func (s *wordService) ResetProgress(ctx context.Context, wordID uuid.UUID, mode *model.PracticeMode) error {
	logger := middleware.GetLogger(ctx).With("word_id", wordID)

	// 存在しない単語のリセットは404
	if _, err := s.wordRepo.FindByID(ctx, s.db, wordID); err != nil {
		return err
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.progRepo.DeleteByWord(ctx, tx, wordID, mode)
	})
	if err != nil {
		return err
	}

	logger.Info("Progress reset", "mode", mode)
	return nil
}

// importColumns はxlsx取り込みの列割り当てです。
// A=漢字 B=ピンイン C=訳語(;区切り) D=頻度ランク(任意) E=カテゴリ(,区切り 任意)
const (
	importColHanzi = iota
	importColPinyin
	importColTranslations
	importColFrequencyRank
	importColCategories
)

func (s *wordService) ImportWords(ctx context.Context, r io.Reader) (*model.ImportResult, error) {
	logger := middleware.GetLogger(ctx)

	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, model.NewAppError("INVALID_INPUT", "xlsxファイルとして読み込めません。", "file", model.ErrInvalidInput)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, model.NewAppError("INVALID_INPUT", "シートが見つかりません。", "file", model.ErrInvalidInput)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, model.NewAppError("INVALID_INPUT", "シートの読み取りに失敗しました。", "file", model.ErrInvalidInput)
	}

	result := &model.ImportResult{}
	for i, row := range rows {
		// 先頭行がヘッダーならスキップ
		if i == 0 && len(row) > 0 && strings.EqualFold(strings.TrimSpace(row[importColHanzi]), "hanzi") {
			continue
		}
		if len(row) <= importColTranslations {
			continue
		}

		req := &model.PostWordRequest{
			Hanzi:        strings.TrimSpace(row[importColHanzi]),
			Pinyin:       strings.TrimSpace(row[importColPinyin]),
			Translations: cleanTranslations(strings.Split(row[importColTranslations], ";")),
		}
		if req.Hanzi == "" || req.Pinyin == "" {
			continue
		}
		if len(row) > importColFrequencyRank {
			if rank, err := strconv.Atoi(strings.TrimSpace(row[importColFrequencyRank])); err == nil && rank > 0 {
				req.FrequencyRank = &rank
			}
		}
		if len(row) > importColCategories {
			req.Categories = cleanTranslations(strings.Split(row[importColCategories], ","))
		}

		if _, err := s.CreateWord(ctx, req); err != nil {
			if errors.Is(err, model.ErrConflict) || errors.Is(err, model.ErrInvalidInput) {
				result.Skipped = append(result.Skipped, req.Hanzi)
				continue
			}
			logger.Error("Import aborted on row", "row", i+1, "error", err)
			return nil, err
		}
		result.Imported++
	}

	logger.Info("Import finished", "imported", result.Imported, "skipped", len(result.Skipped))
	return result, nil
}

func (s *wordService) ListCategories(ctx context.Context) ([]*model.Category, error) {
	return s.catRepo.ListAll(ctx, s.db)
}
