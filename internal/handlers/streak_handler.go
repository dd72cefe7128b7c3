// internal/handlers/streak_handler.go
package handlers

import (
	"log/slog"
	"net/http"

	"flash_decks/internal/middleware"
	"flash_decks/internal/service"
	"flash_decks/internal/webutil"
)

type StreakHandler struct {
	service service.StreakService
	logger  *slog.Logger
}

func NewStreakHandler(s service.StreakService, logger *slog.Logger) *StreakHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &StreakHandler{
		service: s,
		logger:  logger,
	}
}

// GetStreak はログインユーザーのストリーク統計を返すハンドラ
func (h *StreakHandler) GetStreak(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetStreak"))

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		logger.Warn("Unauthorized access attempt", slog.String("error", err.Error()))
		webutil.HandleError(w, logger, err)
		return
	}

	stats, err := h.service.GetStreakStats(r.Context(), userID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, stats)
}
