// internal/handlers/streak_handler_test.go
package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"flash_decks/internal/handlers"
	"flash_decks/internal/model"
	svc_mocks "flash_decks/internal/service/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestStreakHandler_GetStreak(t *testing.T) {
	userID := uuid.New()

	t.Run("正常系: 200でストリーク統計を返す", func(t *testing.T) {
		mockService := new(svc_mocks.StreakService)
		handler := handlers.NewStreakHandler(mockService, nil)

		lastDate := "2025-06-10"
		expected := &model.StreakStatsResponse{
			CurrentStreak:    3,
			LongestStreak:    5,
			LastActivityDate: &lastDate,
			IsActive:         true,
		}
		mockService.On("GetStreakStats", mock.Anything, userID).Return(expected, nil)

		req := newAuthenticatedRequest(t, http.MethodGet, "/api/v1/me/streak", nil, userID, nil)
		rr := httptest.NewRecorder()

		handler.GetStreak(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		var resp model.StreakStatsResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, 3, resp.CurrentStreak)
		assert.Equal(t, 5, resp.LongestStreak)
		assert.True(t, resp.IsActive)
		require.NotNil(t, resp.LastActivityDate)
		assert.Equal(t, lastDate, *resp.LastActivityDate)
		mockService.AssertExpectations(t)
	})

	t.Run("異常系: 認証情報がない場合は401", func(t *testing.T) {
		mockService := new(svc_mocks.StreakService)
		handler := handlers.NewStreakHandler(mockService, nil)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/me/streak", nil)
		rr := httptest.NewRecorder()

		handler.GetStreak(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		mockService.AssertNotCalled(t, "GetStreakStats", mock.Anything, mock.Anything)
	})

	t.Run("異常系: サービスの内部エラーは500", func(t *testing.T) {
		mockService := new(svc_mocks.StreakService)
		handler := handlers.NewStreakHandler(mockService, nil)

		appErr := model.NewAppError("INTERNAL_SERVER_ERROR", "ユーザー情報の取得に失敗しました。", "", model.ErrInternalServer)
		mockService.On("GetStreakStats", mock.Anything, userID).Return(nil, appErr)

		req := newAuthenticatedRequest(t, http.MethodGet, "/api/v1/me/streak", nil, userID, nil)
		rr := httptest.NewRecorder()

		handler.GetStreak(rr, req)

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
	})
}
