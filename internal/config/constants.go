// internal/config/constants.go
package config

import "time"

// アプリケーション情報
const (
	AppName    = "hanzi-drill"
	AppVersion = "0.1.0"
)

// デフォルト設定値
const (
	DefaultServerPort       = ":8080"
	DefaultLogLevel         = "info"
	DefaultLogFormat        = "json"
	DefaultPracticeLimit    = 20
	DefaultPracticeLimitMax = 100
	DefaultAuthEnabled      = false
	DefaultAccessTokenTTL   = 24 * time.Hour
	DefaultReminderSendAt   = "08:00"
)
