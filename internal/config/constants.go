// internal/config/constants.go
package config

// アプリケーション情報
const (
	AppName    = "FlashDecks"
	AppVersion = "1.0.0"
)

// デフォルト設定値
const (
	DefaultServerPort     = ":8080"
	DefaultLogLevel       = "info"
	DefaultDueReviewLimit = 50
	DefaultAuthEnabled    = true
)
