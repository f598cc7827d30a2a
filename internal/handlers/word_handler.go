// internal/handlers/word_handler.go
package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"go_5_hanzi_drill/internal/model"
	"go_5_hanzi_drill/internal/service"
	"go_5_hanzi_drill/internal/webutil"
)

type WordHandler struct {
	service service.WordService
	logger  *slog.Logger
}

func NewWordHandler(s service.WordService, logger *slog.Logger) *WordHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &WordHandler{
		service: s,
		logger:  logger,
	}
}

// parseWordID はURLパスの {word_id} を解釈します
func parseWordID(w http.ResponseWriter, r *http.Request, logger *slog.Logger) (uuid.UUID, bool) {
	idStr := chi.URLParam(r, "word_id")
	wordID, err := uuid.Parse(idStr)
	if err != nil {
		logger.Warn("Invalid word ID format", slog.String("word_id", idStr))
		appErr := model.NewAppError("INVALID_INPUT", "単語IDの形式が正しくありません。", "word_id", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return uuid.Nil, false
	}
	return wordID, true
}

// PostWord は新しい単語リソースを作成するためのハンドラ
func (h *WordHandler) PostWord(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PostWord"))

	var req model.PostWordRequest
	if !decodeAndValidate(w, r, logger, &req) {
		return
	}

	word, err := h.service.CreateWord(r.Context(), &req)
	if err != nil {
		logger.Error("Error creating word in service", slog.Any("error", err), slog.String("hanzi", req.Hanzi))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Word created successfully", slog.String("word_id", word.WordID.String()))
	webutil.RespondWithJSON(w, http.StatusCreated, word)
}

// GetWords は単語リソースの一覧を取得するためのハンドラ。
// ?category= を複数指定するとカテゴリで絞り込めます。
func (h *WordHandler) GetWords(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetWords"))

	categories := r.URL.Query()["category"]

	words, err := h.service.ListWords(r.Context(), categories)
	if err != nil {
		logger.Error("Error listing words in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, words)
}

// GetWord は単語リソースを1件取得するためのハンドラ
func (h *WordHandler) GetWord(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetWord"))

	wordID, ok := parseWordID(w, r, logger)
	if !ok {
		return
	}

	word, err := h.service.GetWord(r.Context(), wordID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, word)
}

// GetWordByHanzi は漢字表記で単語を1件取得するためのハンドラ
func (h *WordHandler) GetWordByHanzi(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetWordByHanzi"))

	hanzi := chi.URLParam(r, "hanzi")
	word, err := h.service.GetWordByHanzi(r.Context(), hanzi)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, word)
}

// PatchWord は単語リソースを部分更新するためのハンドラ
func (h *WordHandler) PatchWord(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PatchWord"))

	wordID, ok := parseWordID(w, r, logger)
	if !ok {
		return
	}

	var req model.PatchWordRequest
	if !decodeAndValidate(w, r, logger, &req) {
		return
	}

	word, err := h.service.UpdateWord(r.Context(), wordID, &req)
	if err != nil {
		logger.Error("Error updating word in service", slog.Any("error", err), slog.String("word_id", wordID.String()))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Word updated successfully", slog.String("word_id", wordID.String()))
	webutil.RespondWithJSON(w, http.StatusOK, word)
}

// DeleteWord は単語リソースを削除（論理削除）するためのハンドラ
func (h *WordHandler) DeleteWord(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "DeleteWord"))

	wordID, ok := parseWordID(w, r, logger)
	if !ok {
		return
	}

	if err := h.service.DeleteWord(r.Context(), wordID); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Word deleted successfully", slog.String("word_id", wordID.String()))
	w.WriteHeader(http.StatusNoContent)
}

// DeleteProgress は単語の学習進捗を削除（リセット）するためのハンドラ。
// ?mode= を指定するとそのモードだけリセットします。
func (h *WordHandler) DeleteProgress(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "DeleteProgress"))

	wordID, ok := parseWordID(w, r, logger)
	if !ok {
		return
	}

	var mode *model.PracticeMode
	if modeStr := r.URL.Query().Get("mode"); modeStr != "" {
		parsed, err := model.ParsePracticeMode(modeStr)
		if err != nil {
			webutil.HandleError(w, logger, err)
			return
		}
		mode = &parsed
	}

	if err := h.service.ResetProgress(r.Context(), wordID, mode); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Progress reset successfully", slog.String("word_id", wordID.String()))
	w.WriteHeader(http.StatusNoContent)
}

// ImportWords はxlsxファイルから単語を一括登録するためのハンドラ。
// multipart/form-data の "file" フィールドでアップロードします。
func (h *WordHandler) ImportWords(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "ImportWords"))

	// 10MBまで
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		logger.Warn("Failed to parse multipart form", slog.Any("error", err))
		appErr := model.NewAppError("INVALID_INPUT", "アップロード形式が正しくありません。", "file", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		logger.Warn("Missing file field", slog.Any("error", err))
		appErr := model.NewAppError("INVALID_INPUT", "file フィールドが必要です。", "file", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}
	defer file.Close()

	result, err := h.service.ImportWords(r.Context(), file)
	if err != nil {
		logger.Error("Error importing words in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Words imported", slog.Int("imported", result.Imported), slog.Int("skipped", len(result.Skipped)))
	webutil.RespondWithJSON(w, http.StatusOK, result)
}
