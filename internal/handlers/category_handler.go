// internal/handlers/category_handler.go
package handlers

import (
	"log/slog"
	"net/http"

	"go_5_hanzi_drill/internal/service"
	"go_5_hanzi_drill/internal/webutil"
)

type CategoryHandler struct {
	service service.WordService
	logger  *slog.Logger
}

func NewCategoryHandler(s service.WordService, logger *slog.Logger) *CategoryHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &CategoryHandler{
		service: s,
		logger:  logger,
	}
}

// GetCategories は登録済みカテゴリの一覧を返すためのハンドラ
func (h *CategoryHandler) GetCategories(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetCategories"))

	categories, err := h.service.ListCategories(r.Context())
	if err != nil {
		logger.Error("Error listing categories in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, categories)
}
