// internal/middleware/auth_test.go
package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"flash_decks/internal/config"
	"flash_decks/internal/middleware"
	"flash_decks/internal/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecretKey = "test-secret-key"

func newTestConfig() *config.Config {
	cfg := &config.Config{}
	cfg.JWT.SecretKey = testSecretKey
	return cfg
}

func signTestToken(t *testing.T, subject string, secret string, expiresAt time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": subject,
		"exp": expiresAt.Unix(),
	})
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestJWTAuthMiddleware(t *testing.T) {
	userID := uuid.New()
	validExp := time.Now().Add(1 * time.Hour)

	tests := []struct {
		name           string
		authHeader     string
		wantStatusCode int
		wantUserID     bool
	}{
		{
			name:           "正常系: 有効なトークン",
			authHeader:     "Bearer " + signTestToken(t, userID.String(), testSecretKey, validExp),
			wantStatusCode: http.StatusOK,
			wantUserID:     true,
		},
		{
			name:           "異常系: Authorizationヘッダーなし",
			authHeader:     "",
			wantStatusCode: http.StatusUnauthorized,
		},
		{
			name:           "異常系: Bearer形式でない",
			authHeader:     "Basic abc123",
			wantStatusCode: http.StatusUnauthorized,
		},
		{
			name:           "異常系: 署名キーが違う",
			authHeader:     "Bearer " + signTestToken(t, userID.String(), "wrong-secret", validExp),
			wantStatusCode: http.StatusUnauthorized,
		},
		{
			name:           "異常系: 有効期限切れ",
			authHeader:     "Bearer " + signTestToken(t, userID.String(), testSecretKey, time.Now().Add(-1*time.Hour)),
			wantStatusCode: http.StatusUnauthorized,
		},
		{
			name:           "異常系: subjectがUUIDでない",
			authHeader:     "Bearer " + signTestToken(t, "not-a-uuid", testSecretKey, validExp),
			wantStatusCode: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var capturedUserID uuid.UUID
			var nextCalled bool
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true
				if id, ok := r.Context().Value(model.UserIDKey).(uuid.UUID); ok {
					capturedUserID = id
				}
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/api/v1/me/streak", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rr := httptest.NewRecorder()

			middleware.JWTAuthMiddleware(newTestConfig())(next).ServeHTTP(rr, req)

			assert.Equal(t, tt.wantStatusCode, rr.Code)
			if tt.wantUserID {
				assert.True(t, nextCalled)
				assert.Equal(t, userID, capturedUserID)
			} else {
				assert.False(t, nextCalled)
			}
		})
	}
}

func TestGetUserIDFromContext(t *testing.T) {
	t.Run("コンテキストにユーザーIDがある場合", func(t *testing.T) {
		userID := uuid.New()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		token := signTestToken(t, userID.String(), testSecretKey, time.Now().Add(time.Hour))
		req.Header.Set("Authorization", "Bearer "+token)

		var got uuid.UUID
		var gotErr error
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got, gotErr = middleware.GetUserIDFromContext(r.Context())
		})
		middleware.JWTAuthMiddleware(newTestConfig())(next).ServeHTTP(httptest.NewRecorder(), req)

		require.NoError(t, gotErr)
		assert.Equal(t, userID, got)
	})

	t.Run("コンテキストにユーザーIDがない場合はエラー", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		_, err := middleware.GetUserIDFromContext(req.Context())
		assert.ErrorIs(t, err, model.ErrForbidden)
	})
}
