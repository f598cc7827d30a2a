package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"go_5_hanzi_drill/internal/handlers"
	"go_5_hanzi_drill/internal/model"
	svcmocks "go_5_hanzi_drill/internal/service/mocks"
)

// --- ヘルパー ---

func newJSONRequest(t *testing.T, method, target string, body interface{}) *http.Request {
	t.Helper()
	var reqBody io.Reader
	if body != nil {
		if bodyStr, ok := body.(string); ok {
			reqBody = strings.NewReader(bodyStr)
		} else {
			jsonData, err := json.Marshal(body)
			require.NoError(t, err)
			reqBody = bytes.NewBuffer(jsonData)
		}
	}
	req, err := http.NewRequest(method, target, reqBody)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req
}

func setupPracticeRouter(mockService *svcmocks.PracticeService) *chi.Mux {
	testLogger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := handlers.NewPracticeHandler(mockService, testLogger)

	r := chi.NewRouter()
	r.Post("/practice/sessions", handler.PostSession)
	r.Post("/practice/answers", handler.PostAnswer)
	r.Post("/practice/completions", handler.PostCompletion)
	r.Post("/practice/synonyms", handler.PostSynonym)
	return r
}

// --- PostSession ---

func TestPracticeHandler_PostSession(t *testing.T) {
	bucket := model.Bucket(2)
	okResponse := &model.StartSessionResponse{
		Mode: model.ModeHanziToPinyin,
		Questions: []model.Question{
			{WordID: uuid.New(), Hanzi: "你", Prompt: "你", AcceptedAnswers: []string{"nǐ"}, Bucket: &bucket},
			{WordID: uuid.New(), Hanzi: "爱", Prompt: "爱", AcceptedAnswers: []string{"ài"}, Bucket: nil},
		},
	}

	tests := []struct {
		name           string
		body           interface{}
		setupMock      func(m *svcmocks.PracticeService)
		expectedStatus int
		checkBody      func(t *testing.T, body string)
	}{
		{
			name: "正常系: 出題リストを返す",
			body: model.StartSessionRequest{Mode: "hanzi_to_pinyin", Count: 5},
			setupMock: func(m *svcmocks.PracticeService) {
				m.On("StartSession", mock.Anything, mock.AnythingOfType("*model.StartSessionRequest")).
					Return(okResponse, nil).Once()
			},
			expectedStatus: http.StatusOK,
			checkBody: func(t *testing.T, body string) {
				assert.Contains(t, body, `"hanzi_to_pinyin"`)
				assert.Contains(t, body, `"bucket":2`)
				assert.Contains(t, body, `"bucket":null`)
			},
		},
		{
			name: "異常系: 未知のモードは400",
			body: model.StartSessionRequest{Mode: "nonsense"},
			setupMock: func(m *svcmocks.PracticeService) {
				m.On("StartSession", mock.Anything, mock.AnythingOfType("*model.StartSessionRequest")).
					Return(nil, model.NewAppError("INVALID_MODE", "未知の出題形式です: nonsense", "mode", model.ErrInvalidMode)).Once()
			},
			expectedStatus: http.StatusBadRequest,
			checkBody: func(t *testing.T, body string) {
				assert.Contains(t, body, "INVALID_MODE")
			},
		},
		{
			name: "異常系: 出題対象なしは404",
			body: model.StartSessionRequest{Mode: "hanzi_to_pinyin"},
			setupMock: func(m *svcmocks.PracticeService) {
				m.On("StartSession", mock.Anything, mock.AnythingOfType("*model.StartSessionRequest")).
					Return(nil, model.NewAppError("NO_REVIEWABLE_WORDS", "出題できる単語がありません。", "", model.ErrNoReviewableWords)).Once()
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "異常系: 壊れたJSONは400",
			body:           `{"mode": `,
			setupMock:      func(m *svcmocks.PracticeService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "異常系: count上限超えはバリデーションエラー",
			body:           model.StartSessionRequest{Mode: "hanzi_to_pinyin", Count: 101},
			setupMock:      func(m *svcmocks.PracticeService) {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(svcmocks.PracticeService)
			tt.setupMock(mockService)
			router := setupPracticeRouter(mockService)

			req := newJSONRequest(t, http.MethodPost, "/practice/sessions", tt.body)
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

// --- PostAnswer ---

func TestPracticeHandler_PostAnswer(t *testing.T) {
	tests := []struct {
		name           string
		body           interface{}
		setupMock      func(m *svcmocks.PracticeService)
		expectedStatus int
		checkBody      func(t *testing.T, body string)
	}{
		{
			name: "正常系: 正解",
			body: model.SubmitAnswerRequest{Mode: "hanzi_to_pinyin", Hanzi: "爱", Answer: "ai4"},
			setupMock: func(m *svcmocks.PracticeService) {
				m.On("SubmitAnswer", mock.Anything, mock.AnythingOfType("*model.SubmitAnswerRequest")).
					Return(&model.SubmitAnswerResponse{Correct: true, AcceptedAnswers: []string{"ài"}}, nil).Once()
			},
			expectedStatus: http.StatusOK,
			checkBody: func(t *testing.T, body string) {
				assert.Contains(t, body, `"correct":true`)
				assert.Contains(t, body, `"near_miss":false`)
			},
		},
		{
			name: "正常系: 惜しい解答",
			body: model.SubmitAnswerRequest{Mode: "translation_to_pinyin", Hanzi: "豆腐", Answer: "dou4fu3"},
			setupMock: func(m *svcmocks.PracticeService) {
				m.On("SubmitAnswer", mock.Anything, mock.AnythingOfType("*model.SubmitAnswerRequest")).
					Return(&model.SubmitAnswerResponse{NearMiss: true, AcceptedAnswers: []string{"dòu fu"}}, nil).Once()
			},
			expectedStatus: http.StatusOK,
			checkBody: func(t *testing.T, body string) {
				assert.Contains(t, body, `"correct":false`)
				assert.Contains(t, body, `"near_miss":true`)
			},
		},
		{
			name: "異常系: 未登録の漢字は404",
			body: model.SubmitAnswerRequest{Mode: "hanzi_to_pinyin", Hanzi: "犬", Answer: "quan3"},
			setupMock: func(m *svcmocks.PracticeService) {
				m.On("SubmitAnswer", mock.Anything, mock.AnythingOfType("*model.SubmitAnswerRequest")).
					Return(nil, model.ErrNotFound).Once()
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "異常系: answer必須",
			body:           model.SubmitAnswerRequest{Mode: "hanzi_to_pinyin", Hanzi: "爱"},
			setupMock:      func(m *svcmocks.PracticeService) {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(svcmocks.PracticeService)
			tt.setupMock(mockService)
			router := setupPracticeRouter(mockService)

			req := newJSONRequest(t, http.MethodPost, "/practice/answers", tt.body)
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

// --- PostCompletion ---

func TestPracticeHandler_PostCompletion(t *testing.T) {
	correct := true
	next := time.Now().Add(time.Minute)

	mockService := new(svcmocks.PracticeService)
	mockService.On("CompleteSession", mock.Anything, mock.AnythingOfType("*model.CompleteSessionRequest")).
		Return(&model.CompleteSessionResponse{
			Updated: []model.UpdatedProgress{{Hanzi: "爱", Bucket: 1, NextReviewAt: next}},
		}, nil).Once()
	router := setupPracticeRouter(mockService)

	req := newJSONRequest(t, http.MethodPost, "/practice/completions", model.CompleteSessionRequest{
		Mode:    "hanzi_to_pinyin",
		Results: []model.SessionItemResult{{Hanzi: "爱", CorrectOnFirstAttempt: &correct}},
	})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"bucket":1`)
	mockService.AssertExpectations(t)
}

func TestPracticeHandler_PostCompletion_EmptyResults(t *testing.T) {
	mockService := new(svcmocks.PracticeService)
	router := setupPracticeRouter(mockService)

	req := newJSONRequest(t, http.MethodPost, "/practice/completions", model.CompleteSessionRequest{
		Mode:    "hanzi_to_pinyin",
		Results: []model.SessionItemResult{},
	})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	mockService.AssertNotCalled(t, "CompleteSession", mock.Anything, mock.Anything)
}

// --- PostSynonym ---

func TestPracticeHandler_PostSynonym(t *testing.T) {
	mockService := new(svcmocks.PracticeService)
	mockService.On("RegisterSynonym", mock.Anything, mock.AnythingOfType("*model.PostSynonymRequest")).
		Return(nil).Once()
	router := setupPracticeRouter(mockService)

	req := newJSONRequest(t, http.MethodPost, "/practice/synonyms", model.PostSynonymRequest{
		Hanzi:   "好",
		Reading: "hao4",
	})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	mockService.AssertExpectations(t)
}
