// internal/handlers/study_handler.go
package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"flash_decks/internal/middleware"
	"flash_decks/internal/model"
	"flash_decks/internal/service"
	"flash_decks/internal/webutil"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type StudyHandler struct {
	service service.StudyService
	logger  *slog.Logger
}

func NewStudyHandler(s service.StudyService, logger *slog.Logger) *StudyHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &StudyHandler{
		service: s,
		logger:  logger,
	}
}

// CreateSession は新しい学習セッションを作成するハンドラ
func (h *StudyHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "CreateSession"))

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		logger.Warn("Unauthorized access attempt", slog.String("error", err.Error()))
		webutil.HandleError(w, logger, err)
		return
	}
	logger = logger.With(slog.String("user_id", userID.String()))

	var req model.CreateSessionRequest
	if err := webutil.DecodeJSONBody(r, &req); err != nil {
		logger.Warn("Failed to decode request body", slog.String("error", err.Error()))
		appErr := model.NewAppError("INVALID_REQUEST_BODY", "リクエストボディの形式が正しくありません。", "", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}

	if err := webutil.Validator.Struct(req); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			logger.Warn("Validation failed", slog.Any("errors", validationErrors.Error()))
			webutil.HandleError(w, logger, webutil.NewValidationErrorResponse(validationErrors))
			return
		}
		webutil.HandleError(w, logger, err)
		return
	}

	session, err := h.service.CreateSession(r.Context(), userID, &req)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusCreated, session)
}

// GetSession はセッションを取得するハンドラ
func (h *StudyHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetSession"))

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	sessionID, ok := h.sessionIDFromURL(w, r, logger)
	if !ok {
		return
	}

	session, err := h.service.GetSession(r.Context(), userID, sessionID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, session)
}

// SubmitAnswer はセッション内の解答を記録するハンドラ
func (h *StudyHandler) SubmitAnswer(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "SubmitAnswer"))

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	sessionID, ok := h.sessionIDFromURL(w, r, logger)
	if !ok {
		return
	}

	var req model.SubmitAnswerRequest
	if err := webutil.DecodeJSONBody(r, &req); err != nil {
		logger.Warn("Failed to decode request body", slog.String("error", err.Error()))
		appErr := model.NewAppError("INVALID_REQUEST_BODY", "リクエストボディの形式が正しくありません。", "", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}

	if err := webutil.Validator.Struct(req); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			logger.Warn("Validation failed", slog.Any("errors", validationErrors.Error()))
			webutil.HandleError(w, logger, webutil.NewValidationErrorResponse(validationErrors))
			return
		}
		webutil.HandleError(w, logger, err)
		return
	}

	answer, err := h.service.RecordAnswer(r.Context(), userID, sessionID, &req)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, answer)
}

// FinishSession はセッションを完了させるハンドラ
func (h *StudyHandler) FinishSession(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "FinishSession"))

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	sessionID, ok := h.sessionIDFromURL(w, r, logger)
	if !ok {
		return
	}

	session, err := h.service.FinishSession(r.Context(), userID, sessionID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, session)
}

// GetSessionStats はセッション内の解答集計を返すハンドラ
func (h *StudyHandler) GetSessionStats(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetSessionStats"))

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	sessionID, ok := h.sessionIDFromURL(w, r, logger)
	if !ok {
		return
	}

	stats, err := h.service.GetSessionStats(r.Context(), userID, sessionID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, stats)
}

// GetDueReviews は復習期限が到来したカードの一覧を返すハンドラ
func (h *StudyHandler) GetDueReviews(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetDueReviews"))

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	reviews, err := h.service.DueReviews(r.Context(), userID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	if reviews == nil {
		reviews = []*model.DueReviewResponse{}
	}
	webutil.RespondWithJSON(w, http.StatusOK, reviews)
}

func (h *StudyHandler) sessionIDFromURL(w http.ResponseWriter, r *http.Request, logger *slog.Logger) (uuid.UUID, bool) {
	sessionIDStr := chi.URLParam(r, "session_id")
	sessionID, err := uuid.Parse(sessionIDStr)
	if err != nil {
		logger.Warn("Invalid session ID format", slog.String("session_id", sessionIDStr))
		appErr := model.NewAppError("INVALID_SESSION_ID", "セッションIDの形式が正しくありません。", "", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return uuid.Nil, false
	}
	return sessionID, true
}
