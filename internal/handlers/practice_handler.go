// internal/handlers/practice_handler.go
package handlers

import (
	"log/slog"
	"net/http"

	"go_5_hanzi_drill/internal/model"
	"go_5_hanzi_drill/internal/service"
	"go_5_hanzi_drill/internal/webutil"
)

type PracticeHandler struct {
	service service.PracticeService
	logger  *slog.Logger
}

func NewPracticeHandler(s service.PracticeService, logger *slog.Logger) *PracticeHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &PracticeHandler{
		service: s,
		logger:  logger,
	}
}

// PostSession は出題リストを組み立てて返すためのハンドラ
func (h *PracticeHandler) PostSession(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PostSession"))

	var req model.StartSessionRequest
	if !decodeAndValidate(w, r, logger, &req) {
		return
	}

	resp, err := h.service.StartSession(r.Context(), &req)
	if err != nil {
		logger.Warn("Error starting session in service", slog.Any("error", err), slog.String("mode", req.Mode))
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, resp)
}

// PostAnswer は1問の解答を採点するためのハンドラ
func (h *PracticeHandler) PostAnswer(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PostAnswer"))

	var req model.SubmitAnswerRequest
	if !decodeAndValidate(w, r, logger, &req) {
		return
	}

	resp, err := h.service.SubmitAnswer(r.Context(), &req)
	if err != nil {
		logger.Warn("Error submitting answer in service", slog.Any("error", err), slog.String("hanzi", req.Hanzi))
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, resp)
}

// PostCompletion はセッションの採点結果を一括反映するためのハンドラ
func (h *PracticeHandler) PostCompletion(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PostCompletion"))

	var req model.CompleteSessionRequest
	if !decodeAndValidate(w, r, logger, &req) {
		return
	}

	resp, err := h.service.CompleteSession(r.Context(), &req)
	if err != nil {
		logger.Error("Error completing session in service", slog.Any("error", err), slog.String("mode", req.Mode))
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, resp)
}

// PostSynonym は別読みを明示登録するためのハンドラ
func (h *PracticeHandler) PostSynonym(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PostSynonym"))

	var req model.PostSynonymRequest
	if !decodeAndValidate(w, r, logger, &req) {
		return
	}

	if err := h.service.RegisterSynonym(r.Context(), &req); err != nil {
		logger.Warn("Error registering synonym in service", slog.Any("error", err), slog.String("hanzi", req.Hanzi))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Synonym registered", slog.String("hanzi", req.Hanzi))
	w.WriteHeader(http.StatusNoContent)
}
