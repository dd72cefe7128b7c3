// internal/middleware/auth.go
package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"flash_decks/internal/config"
	"flash_decks/internal/model"
	"flash_decks/internal/webutil"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// JWTAuthMiddleware は Authorization ヘッダーの Bearer トークンを検証し、
// subject のユーザーIDをコンテキストにセットするミドルウェア。
// トークンの発行はこのサービスの責務外 (外部の認証基盤が行う)。
func JWTAuthMiddleware(cfg *config.Config) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger := GetLogger(r.Context())

			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				logger.Warn("JWT auth failed: Authorization header missing")
				appErr := model.NewAppError("UNAUTHORIZED", "Authorizationヘッダーが必要です。", "", model.ErrForbidden)
				webutil.HandleError(w, logger, appErr)
				return
			}

			// "Bearer {token}" の形式を検証
			headerParts := strings.Split(authHeader, " ")
			if len(headerParts) != 2 || strings.ToLower(headerParts[0]) != "bearer" {
				logger.Warn("JWT auth failed: Invalid Authorization header format")
				appErr := model.NewAppError("UNAUTHORIZED", "Authorizationヘッダーの形式が正しくありません。", "", model.ErrForbidden)
				webutil.HandleError(w, logger, appErr)
				return
			}
			tokenString := headerParts[1]

			// jwt.Parse は署名と有効期限(exp)の両方を検証してくれる
			token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, errors.New("unexpected signing method")
				}
				return []byte(cfg.JWT.SecretKey), nil
			})

			if err != nil {
				logger.Warn("JWT auth failed: Invalid token", "error", err)
				appErr := model.NewAppError("INVALID_TOKEN", "トークンが無効です。", "", model.ErrForbidden)
				webutil.HandleError(w, logger, appErr)
				return
			}

			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok || !token.Valid {
				logger.Warn("JWT auth failed: Unknown claims type or invalid token")
				appErr := model.NewAppError("INVALID_TOKEN", "トークンが無効です。", "", model.ErrForbidden)
				webutil.HandleError(w, logger, appErr)
				return
			}

			subject, err := claims.GetSubject()
			if err != nil {
				logger.Warn("JWT auth failed: Subject (sub) claim missing", "error", err)
				appErr := model.NewAppError("INVALID_TOKEN", "トークンにユーザー情報が含まれていません。", "", model.ErrForbidden)
				webutil.HandleError(w, logger, appErr)
				return
			}

			userID, err := uuid.Parse(subject)
			if err != nil {
				logger.Warn("JWT auth failed: Invalid subject (sub) format", "subject", subject, "error", err)
				appErr := model.NewAppError("INVALID_TOKEN", "トークンのユーザー情報が不正です。", "", model.ErrForbidden)
				webutil.HandleError(w, logger, appErr)
				return
			}

			ctx := context.WithValue(r.Context(), model.UserIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUserIDFromContext はコンテキストから認証済みユーザーIDを取得します
func GetUserIDFromContext(ctx context.Context) (uuid.UUID, error) {
	value, ok := ctx.Value(model.UserIDKey).(uuid.UUID)
	if !ok {
		// ミドルウェアが正しく適用されていない場合の内部エラー
		return uuid.Nil, model.NewAppError("UNAUTHORIZED", "コンテキストからユーザー情報を取得できませんでした。", "", model.ErrForbidden)
	}
	return value, nil
}
