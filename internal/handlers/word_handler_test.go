package handlers_test

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"go_5_hanzi_drill/internal/handlers"
	"go_5_hanzi_drill/internal/model"
	svcmocks "go_5_hanzi_drill/internal/service/mocks"
)

func setupWordRouter(mockService *svcmocks.WordService) *chi.Mux {
	testLogger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := handlers.NewWordHandler(mockService, testLogger)

	r := chi.NewRouter()
	r.Route("/words", func(r chi.Router) {
		r.Post("/", handler.PostWord)
		r.Get("/", handler.GetWords)
		r.Get("/hanzi/{hanzi}", handler.GetWordByHanzi)
		r.Route("/{word_id}", func(r chi.Router) {
			r.Get("/", handler.GetWord)
			r.Patch("/", handler.PatchWord)
			r.Delete("/", handler.DeleteWord)
			r.Delete("/progress", handler.DeleteProgress)
		})
	})
	return r
}

func TestWordHandler_PostWord(t *testing.T) {
	createdWord := &model.Word{
		WordID: uuid.New(),
		Hanzi:  "爱",
		Pinyin: "ài",
		Translations: []model.Translation{
			{Text: "to love"},
		},
	}

	tests := []struct {
		name           string
		body           interface{}
		setupMock      func(m *svcmocks.WordService)
		expectedStatus int
		checkBody      func(t *testing.T, body string)
	}{
		{
			name: "正常系: 201で作成後の単語を返す",
			body: model.PostWordRequest{Hanzi: "爱", Pinyin: "ai4", Translations: []string{"to love"}},
			setupMock: func(m *svcmocks.WordService) {
				m.On("CreateWord", mock.Anything, mock.AnythingOfType("*model.PostWordRequest")).
					Return(createdWord, nil).Once()
			},
			expectedStatus: http.StatusCreated,
			checkBody: func(t *testing.T, body string) {
				assert.Contains(t, body, `"hanzi":"爱"`)
				assert.Contains(t, body, `"pinyin":"ài"`)
			},
		},
		{
			name:           "異常系: 訳語なしはバリデーションエラー",
			body:           model.PostWordRequest{Hanzi: "爱", Pinyin: "ai4"},
			setupMock:      func(m *svcmocks.WordService) {},
			expectedStatus: http.StatusBadRequest,
			checkBody: func(t *testing.T, body string) {
				assert.Contains(t, body, "VALIDATION_ERROR")
			},
		},
		{
			name: "異常系: 漢字重複は409",
			body: model.PostWordRequest{Hanzi: "爱", Pinyin: "ai4", Translations: []string{"to love"}},
			setupMock: func(m *svcmocks.WordService) {
				m.On("CreateWord", mock.Anything, mock.AnythingOfType("*model.PostWordRequest")).
					Return(nil, model.NewAppError("CONFLICT", "この漢字はすでに登録されています。", "hanzi", model.ErrConflict)).Once()
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name: "異常系: 不正なピンインは400",
			body: model.PostWordRequest{Hanzi: "爱", Pinyin: "12345", Translations: []string{"to love"}},
			setupMock: func(m *svcmocks.WordService) {
				m.On("CreateWord", mock.Anything, mock.AnythingOfType("*model.PostWordRequest")).
					Return(nil, model.NewAppError("INVALID_PINYIN", "ピンインとして解釈できません。", "pinyin", model.ErrInvalidInput)).Once()
			},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(svcmocks.WordService)
			tt.setupMock(mockService)
			router := setupWordRouter(mockService)

			req := newJSONRequest(t, http.MethodPost, "/words", tt.body)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.checkBody != nil {
				tt.checkBody(t, rec.Body.String())
			}
			mockService.AssertExpectations(t)
		})
	}
}

func TestWordHandler_GetWord(t *testing.T) {
	wordID := uuid.New()

	t.Run("正常系: 1件取得", func(t *testing.T) {
		mockService := new(svcmocks.WordService)
		mockService.On("GetWord", mock.Anything, wordID).
			Return(&model.Word{WordID: wordID, Hanzi: "你", Pinyin: "nǐ"}, nil).Once()
		router := setupWordRouter(mockService)

		req := newJSONRequest(t, http.MethodGet, "/words/"+wordID.String(), nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"hanzi":"你"`)
		mockService.AssertExpectations(t)
	})

	t.Run("異常系: 存在しないIDは404", func(t *testing.T) {
		mockService := new(svcmocks.WordService)
		mockService.On("GetWord", mock.Anything, wordID).
			Return(nil, model.ErrNotFound).Once()
		router := setupWordRouter(mockService)

		req := newJSONRequest(t, http.MethodGet, "/words/"+wordID.String(), nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("異常系: UUIDでないIDは400", func(t *testing.T) {
		mockService := new(svcmocks.WordService)
		router := setupWordRouter(mockService)

		req := newJSONRequest(t, http.MethodGet, "/words/not-a-uuid", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		mockService.AssertNotCalled(t, "GetWord", mock.Anything, mock.Anything)
	})
}

func TestWordHandler_GetWords(t *testing.T) {
	mockService := new(svcmocks.WordService)
	mockService.On("ListWords", mock.Anything, []string{"HSK1", "HSK2"}).
		Return([]*model.Word{
			{WordID: uuid.New(), Hanzi: "你", Pinyin: "nǐ"},
			{WordID: uuid.New(), Hanzi: "好", Pinyin: "hǎo"},
		}, nil).Once()
	router := setupWordRouter(mockService)

	req := newJSONRequest(t, http.MethodGet, "/words?category=HSK1&category=HSK2", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"hanzi":"你"`)
	assert.Contains(t, rec.Body.String(), `"hanzi":"好"`)
	mockService.AssertExpectations(t)
}

func TestWordHandler_GetWordByHanzi(t *testing.T) {
	mockService := new(svcmocks.WordService)
	mockService.On("GetWordByHanzi", mock.Anything, "豆腐").
		Return(&model.Word{WordID: uuid.New(), Hanzi: "豆腐", Pinyin: "dòu fu"}, nil).Once()
	router := setupWordRouter(mockService)

	req := newJSONRequest(t, http.MethodGet, "/words/hanzi/豆腐", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"pinyin":"dòu fu"`)
	mockService.AssertExpectations(t)
}

func TestWordHandler_PatchWord(t *testing.T) {
	wordID := uuid.New()
	newPinyin := "hǎo"

	mockService := new(svcmocks.WordService)
	mockService.On("UpdateWord", mock.Anything, wordID, mock.AnythingOfType("*model.PatchWordRequest")).
		Return(&model.Word{WordID: wordID, Hanzi: "好", Pinyin: newPinyin}, nil).Once()
	router := setupWordRouter(mockService)

	req := newJSONRequest(t, http.MethodPatch, "/words/"+wordID.String(), model.PatchWordRequest{Pinyin: &newPinyin})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"pinyin":"hǎo"`)
	mockService.AssertExpectations(t)
}

func TestWordHandler_DeleteWord(t *testing.T) {
	wordID := uuid.New()

	mockService := new(svcmocks.WordService)
	mockService.On("DeleteWord", mock.Anything, wordID).Return(nil).Once()
	router := setupWordRouter(mockService)

	req := newJSONRequest(t, http.MethodDelete, "/words/"+wordID.String(), nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	mockService.AssertExpectations(t)
}

func TestWordHandler_DeleteProgress(t *testing.T) {
	wordID := uuid.New()

	t.Run("正常系: モード指定でリセット", func(t *testing.T) {
		mockService := new(svcmocks.WordService)
		mockService.On("ResetProgress", mock.Anything, wordID, mock.MatchedBy(func(m *model.PracticeMode) bool {
			return m != nil && *m == model.ModeHanziToPinyin
		})).Return(nil).Once()
		router := setupWordRouter(mockService)

		req := newJSONRequest(t, http.MethodDelete, "/words/"+wordID.String()+"/progress?mode=hanzi_to_pinyin", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("正常系: モード未指定で全モードリセット", func(t *testing.T) {
		mockService := new(svcmocks.WordService)
		mockService.On("ResetProgress", mock.Anything, wordID, (*model.PracticeMode)(nil)).
			Return(nil).Once()
		router := setupWordRouter(mockService)

		req := newJSONRequest(t, http.MethodDelete, "/words/"+wordID.String()+"/progress", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("異常系: 未知のモードは400", func(t *testing.T) {
		mockService := new(svcmocks.WordService)
		router := setupWordRouter(mockService)

		req := newJSONRequest(t, http.MethodDelete, "/words/"+wordID.String()+"/progress?mode=osmosis", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		mockService.AssertNotCalled(t, "ResetProgress", mock.Anything, mock.Anything, mock.Anything)
	})
}
