// internal/service/practice_service.go
package service

import (
	"context"
	"errors"
	"math/rand"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"go_5_hanzi_drill/internal/config"
	"go_5_hanzi_drill/internal/middleware"
	"go_5_hanzi_drill/internal/model"
	"go_5_hanzi_drill/internal/pinyin"
	"go_5_hanzi_drill/internal/repository"
	"go_5_hanzi_drill/internal/srs"
)

type PracticeService interface {
	StartSession(ctx context.Context, req *model.StartSessionRequest) (*model.StartSessionResponse, error)
	SubmitAnswer(ctx context.Context, req *model.SubmitAnswerRequest) (*model.SubmitAnswerResponse, error)
	CompleteSession(ctx context.Context, req *model.CompleteSessionRequest) (*model.CompleteSessionResponse, error)
	RegisterSynonym(ctx context.Context, req *model.PostSynonymRequest) error
}

type practiceService struct {
	db       *gorm.DB
	wordRepo repository.WordRepository
	progRepo repository.ProgressRepository
	synRepo  repository.SynonymRepository
	trIndex  *repository.TranslationIndex
	cfg      *config.Config

	// srs.Transition に渡す乱数源。rand.Rand は並行安全でないため mu で守る。
	mu  sync.Mutex
	rng *rand.Rand
}

func NewPracticeService(db *gorm.DB, wordRepo repository.WordRepository, progRepo repository.ProgressRepository, synRepo repository.SynonymRepository, trIndex *repository.TranslationIndex, cfg *config.Config) PracticeService {
	return &practiceService{
		db:       db,
		wordRepo: wordRepo,
		progRepo: progRepo,
		synRepo:  synRepo,
		trIndex:  trIndex,
		cfg:      cfg,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// modeInvolvesTranslation は訳語が問題文または答えになるモードかどうかを返します
func modeInvolvesTranslation(mode model.PracticeMode) bool {
	switch mode {
	case model.ModeHanziToTranslation, model.ModeTranslationToHanzi, model.ModeTranslationToPinyin:
		return true
	case model.ModeHanziToPinyin:
		return false
	}
	return false
}

// renderQuestion は単語とモードから出題1件を組み立てます
func renderQuestion(mode model.PracticeMode, word *model.Word, bucket *model.Bucket) model.Question {
	q := model.Question{
		WordID: word.WordID,
		Hanzi:  word.Hanzi,
		Bucket: bucket,
	}
	switch mode {
	case model.ModeHanziToPinyin:
		q.Prompt = word.Hanzi
		q.AcceptedAnswers = []string{word.Pinyin}
	case model.ModeHanziToTranslation:
		q.Prompt = word.Hanzi
		q.AcceptedAnswers = word.TranslationTexts()
	case model.ModeTranslationToHanzi:
		q.Prompt = word.PrimaryTranslation()
		q.AcceptedAnswers = []string{word.Hanzi}
	case model.ModeTranslationToPinyin:
		q.Prompt = word.PrimaryTranslation()
		q.AcceptedAnswers = []string{word.Pinyin}
	}
	return q
}

func (s *practiceService) StartSession(ctx context.Context, req *model.StartSessionRequest) (*model.StartSessionResponse, error) {
	logger := middleware.GetLogger(ctx)

	mode, err := model.ParsePracticeMode(req.Mode)
	if err != nil {
		return nil, err
	}

	count := req.Count
	if count <= 0 {
		count = s.cfg.App.PracticeLimit
	}
	if count > s.cfg.App.PracticeLimitMax {
		count = s.cfg.App.PracticeLimitMax
	}

	strategy := model.SelectionStrategy(req.Strategy)
	if strategy == "" {
		strategy = model.StrategyMixed
	}

	filter := model.SelectionFilter{
		Categories:       req.Categories,
		HanziOnly:        req.HanziOnly,
		TranslatableOnly: modeInvolvesTranslation(mode),
	}

	now := time.Now()
	questions := make([]model.Question, 0, count)
	seen := make(map[uuid.UUID]bool)

	appendDue := func(progresses []*model.LearningProgress) {
		for _, p := range progresses {
			if p.Word == nil || seen[p.WordID] {
				continue
			}
			seen[p.WordID] = true
			bucket := p.Bucket
			questions = append(questions, renderQuestion(mode, p.Word, &bucket))
		}
	}
	appendNew := func(words []*model.Word) {
		for _, w := range words {
			if seen[w.WordID] {
				continue
			}
			seen[w.WordID] = true
			// 未出題はバケットなし（null = "new"）
			questions = append(questions, renderQuestion(mode, w, nil))
		}
	}

	switch strategy {
	case model.StrategyMixed:
		due, err := s.progRepo.FindDueByMode(ctx, s.db, mode, now, count, filter)
		if err != nil {
			return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "復習対象の取得に失敗しました。", "", err)
		}
		appendDue(due)
		if remaining := count - len(questions); remaining > 0 {
			newWords, err := s.wordRepo.FindNewWords(ctx, s.db, mode, remaining, filter)
			if err != nil {
				return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "新規出題対象の取得に失敗しました。", "", err)
			}
			appendNew(newWords)
		}

	case model.StrategyRandomReview:
		due, err := s.progRepo.FindRandomDueByMode(ctx, s.db, mode, now, count, filter)
		if err != nil {
			return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "復習対象の取得に失敗しました。", "", err)
		}
		appendDue(due)

	case model.StrategyNewOnly:
		newWords, err := s.wordRepo.FindNewWords(ctx, s.db, mode, count, filter)
		if err != nil {
			return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "新規出題対象の取得に失敗しました。", "", err)
		}
		appendNew(newWords)

	default:
		return nil, model.NewAppError("INVALID_INPUT", "未知の選択方式です: "+req.Strategy, "strategy", model.ErrInvalidInput)
	}

	if len(questions) == 0 {
		return nil, model.NewAppError("NO_REVIEWABLE_WORDS", "出題できる単語がありません。", "", model.ErrNoReviewableWords)
	}

	logger.Info("Session started",
		"mode", mode.String(),
		"strategy", string(strategy),
		"questions", len(questions),
	)
	return &model.StartSessionResponse{Mode: mode, Questions: questions}, nil
}

// verdict は採点結果です。NearMiss は「妥当だが期待解ではない」状態で、
// 正解扱いにはなりません。
type verdict struct {
	Correct  bool
	NearMiss bool
}

// verifyAnswer は採点の純粋関数です。モードの閉じた列挙を switch で
// 網羅します。synonyms は正規化済みの別読み集合、ambiguous は
// 「同一訳語集合を持つ単語がカタログに2語以上ある」ことを示します。
func verifyAnswer(mode model.PracticeMode, word *model.Word, answer string, synonyms []string, ambiguous bool) verdict {
	switch mode {
	case model.ModeHanziToPinyin:
		return verdict{Correct: pinyin.SameReading(answer, word.Pinyin)}

	case model.ModeHanziToTranslation:
		folded := strings.ToLower(strings.TrimSpace(answer))
		for _, t := range word.TranslationTexts() {
			if strings.ToLower(strings.TrimSpace(t)) == folded {
				return verdict{Correct: true}
			}
		}
		return verdict{}

	case model.ModeTranslationToHanzi:
		// 対象文字体系に大文字小文字はないため、文字単位の完全一致
		if answer == word.Hanzi {
			return verdict{Correct: true}
		}
		// 不正解でも、同じ訳語集合の別単語がありうるなら「惜しい」扱い
		return verdict{NearMiss: ambiguous}

	case model.ModeTranslationToPinyin:
		if pinyin.SameReading(answer, word.Pinyin) {
			return verdict{Correct: true}
		}
		normalized := pinyin.Normalize(answer)
		for _, syn := range synonyms {
			if syn == normalized {
				return verdict{NearMiss: true}
			}
		}
		if utf8.RuneCountInString(word.Hanzi) >= 2 &&
			pinyin.ToneOptionalMatch(normalized, pinyin.Normalize(word.Pinyin)) {
			return verdict{NearMiss: true}
		}
		return verdict{NearMiss: ambiguous}
	}
	return verdict{}
}

func (s *practiceService) SubmitAnswer(ctx context.Context, req *model.SubmitAnswerRequest) (*model.SubmitAnswerResponse, error) {
	logger := middleware.GetLogger(ctx).With("hanzi", req.Hanzi)

	mode, err := model.ParsePracticeMode(req.Mode)
	if err != nil {
		return nil, err
	}

	word, err := s.wordRepo.FindByHanzi(ctx, s.db, req.Hanzi)
	if err != nil {
		return nil, err
	}

	var synonyms []string
	if mode == model.ModeTranslationToPinyin {
		records, err := s.synRepo.FindByWordID(ctx, s.db, word.WordID)
		if err != nil {
			return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "別読みの取得に失敗しました。", "", err)
		}
		for _, r := range records {
			synonyms = append(synonyms, r.Reading)
		}
	}

	ambiguous := false
	if mode == model.ModeTranslationToHanzi || mode == model.ModeTranslationToPinyin {
		ambiguous, err = s.trIndex.IsAmbiguous(ctx, word)
		if err != nil {
			return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "訳語の曖昧性判定に失敗しました。", "", err)
		}
	}

	v := verifyAnswer(mode, word, req.Answer, synonyms, ambiguous)

	logger.Info("Answer verified",
		"mode", mode.String(),
		"correct", v.Correct,
		"near_miss", v.NearMiss,
	)
	return &model.SubmitAnswerResponse{
		Correct:         v.Correct,
		NearMiss:        v.NearMiss,
		AcceptedAnswers: renderQuestion(mode, word, nil).AcceptedAnswers,
	}, nil
}

func (s *practiceService) CompleteSession(ctx context.Context, req *model.CompleteSessionRequest) (*model.CompleteSessionResponse, error) {
	logger := middleware.GetLogger(ctx)

	mode, err := model.ParsePracticeMode(req.Mode)
	if err != nil {
		return nil, err
	}

	resp := &model.CompleteSessionResponse{
		Updated: make([]model.UpdatedProgress, 0, len(req.Results)),
	}

	// 採点は単語ごとに1トランザクション。途中で失敗しても、
	// 処理済みの単語の進捗はそのまま残ります（単語単位の原子性）。
	for _, item := range req.Results {
		if item.CorrectOnFirstAttempt == nil {
			return nil, model.NewAppError("INVALID_INPUT", "correct_on_first_attempt は必須です。", "results", model.ErrInvalidInput)
		}

		word, err := s.wordRepo.FindByHanzi(ctx, s.db, item.Hanzi)
		if err != nil {
			return nil, err
		}

		updated, err := s.gradeWord(ctx, mode, word, *item.CorrectOnFirstAttempt)
		if err != nil {
			return nil, err
		}
		resp.Updated = append(resp.Updated, *updated)
	}

	logger.Info("Session completed", "mode", mode.String(), "graded", len(resp.Updated))
	return resp, nil
}

// gradeWord は1単語の採点結果をスケジューラに通し、進捗行を upsert します
func (s *practiceService) gradeWord(ctx context.Context, mode model.PracticeMode, word *model.Word, correct bool) (*model.UpdatedProgress, error) {
	logger := middleware.GetLogger(ctx).With("hanzi", word.Hanzi, "mode", mode.String())
	now := time.Now()

	var updated *model.UpdatedProgress

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		progress, err := s.progRepo.FindByWordAndMode(ctx, tx, word.WordID, mode)
		if err != nil && !errors.Is(err, model.ErrNotFound) {
			return model.NewAppError("INTERNAL_SERVER_ERROR", "学習進捗の確認中にエラーが発生しました。", "", err)
		}
		if errors.Is(err, model.ErrNotFound) {
			progress = nil
		}

		// 進捗行の有無でなく ProgressState で分岐する
		var current model.Bucket
		switch state := model.StateOf(progress).(type) {
		case model.StateNew:
			current = 0
		case model.StateReviewing:
			current = state.Bucket
		}

		s.mu.Lock()
		result := srs.Transition(current, correct, now, s.rng)
		s.mu.Unlock()

		if progress == nil {
			newProgress := &model.LearningProgress{
				ProgressID:      uuid.New(),
				WordID:          word.WordID,
				Mode:            mode,
				Bucket:          result.Bucket,
				LastPracticedAt: now,
				NextReviewAt:    result.NextReviewAt,
			}
			if createErr := s.progRepo.Create(ctx, tx, newProgress); createErr != nil {
				logger.Error("Error creating new progress", "error", createErr)
				return model.NewAppError("INTERNAL_SERVER_ERROR", "学習進捗の作成に失敗しました。", "", createErr)
			}
		} else {
			progress.Bucket = result.Bucket
			progress.LastPracticedAt = now
			progress.NextReviewAt = result.NextReviewAt
			if updateErr := s.progRepo.Update(ctx, tx, progress); updateErr != nil {
				logger.Error("Error updating existing progress", "error", updateErr)
				return model.NewAppError("INTERNAL_SERVER_ERROR", "学習進捗の更新に失敗しました。", "", updateErr)
			}
		}

		updated = &model.UpdatedProgress{
			Hanzi:        word.Hanzi,
			Bucket:       result.Bucket,
			NextReviewAt: result.NextReviewAt,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Debug("Progress upserted", "bucket", updated.Bucket, "next_review_at", updated.NextReviewAt)
	return updated, nil
}

func (s *practiceService) RegisterSynonym(ctx context.Context, req *model.PostSynonymRequest) error {
	logger := middleware.GetLogger(ctx).With("hanzi", req.Hanzi)

	word, err := s.wordRepo.FindByHanzi(ctx, s.db, req.Hanzi)
	if err != nil {
		return err
	}

	reading := pinyin.Normalize(req.Reading)
	if reading == "" {
		return model.NewAppError("INVALID_PINYIN", "読みとして解釈できません: "+req.Reading, "reading", model.ErrInvalidInput)
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		exists, err := s.synRepo.Exists(ctx, tx, word.WordID, reading)
		if err != nil {
			return model.NewAppError("INTERNAL_SERVER_ERROR", "別読みの確認に失敗しました。", "", err)
		}
		if exists {
			// 登録済みなら何もしない（冪等）
			return nil
		}
		synonym := &model.PinyinSynonym{
			SynonymID: uuid.New(),
			WordID:    word.WordID,
			Reading:   reading,
		}
		if err := s.synRepo.Create(ctx, tx, synonym); err != nil {
			return model.NewAppError("INTERNAL_SERVER_ERROR", "別読みの登録に失敗しました。", "", err)
		}
		logger.Info("Synonym registered", "reading", reading)
		return nil
	})
}
