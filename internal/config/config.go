// internal/config/config.go
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	Server   ServerConfig   `mapstructure:"server"`
	App      AppConfig      `mapstructure:"app"`
	Log      LogConfig      `mapstructure:"log"`
	CORS     CORSConfig     `mapstructure:"cors"`
	Auth     AuthConfig     `mapstructure:"auth"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	Mailer   MailerConfig   `mapstructure:"mailer"`
	SES      SESConfig      `mapstructure:"ses"`
	Reminder ReminderConfig `mapstructure:"reminder"`
}

type DatabaseConfig struct {
	URL string `mapstructure:"url"`
}

type ServerConfig struct {
	Port string `mapstructure:"port"`
}

type AppConfig struct {
	// PracticeLimit は1セッションの出題数の既定値です
	PracticeLimit int `mapstructure:"practice_limit"`
	// PracticeLimitMax はリクエストで指定できる出題数の上限です
	PracticeLimitMax int `mapstructure:"practice_limit_max"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug / info / warn / error
	Format string `mapstructure:"format"` // text / json
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// AuthConfig は単一利用者向けの簡易認証設定です。
// Enabled が false のときは全APIを認証なしで公開します。
type AuthConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Password string `mapstructure:"password"`
}

type JWTConfig struct {
	SecretKey      string        `mapstructure:"secret_key"`
	AccessTokenTTL time.Duration `mapstructure:"access_token_ttl"`
}

type MailerConfig struct {
	Type string `mapstructure:"type"` // ses / log
}

type SESConfig struct {
	Region          string `mapstructure:"region"`
	AuthType        string `mapstructure:"auth_type"` // static_credentials / iam_role
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	From            string `mapstructure:"from"`
}

// ReminderConfig は復習リマインダーメールの設定です
type ReminderConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	SendAt  string `mapstructure:"send_at"` // "HH:MM" (サーバーローカル時刻)
	To      string `mapstructure:"to"`
}

// LoadConfig は設定ファイルと環境変数から設定を読み込みます。
// 環境変数は APP_ 接頭辞つき（例: APP_DATABASE_URL）で上書きできます。
func LoadConfig(path string) (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(path)
	viper.AddConfigPath(".")

	viper.SetEnvPrefix("APP")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("server.port", DefaultServerPort)
	viper.SetDefault("app.practice_limit", DefaultPracticeLimit)
	viper.SetDefault("app.practice_limit_max", DefaultPracticeLimitMax)
	viper.SetDefault("log.level", DefaultLogLevel)
	viper.SetDefault("log.format", DefaultLogFormat)
	viper.SetDefault("auth.enabled", DefaultAuthEnabled)
	viper.SetDefault("jwt.access_token_ttl", DefaultAccessTokenTTL)
	viper.SetDefault("mailer.type", "log")
	viper.SetDefault("reminder.enabled", false)
	viper.SetDefault("reminder.send_at", DefaultReminderSendAt)

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("config: reading config file: %w", err)
		}
		// ファイルなしは環境変数とデフォルト値のみで続行
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshalling config: %w", err)
	}

	if cfg.Database.URL == "" {
		return nil, fmt.Errorf("config: database.url is required")
	}
	if cfg.Auth.Enabled {
		if cfg.Auth.Password == "" {
			return nil, fmt.Errorf("config: auth.password is required when auth is enabled")
		}
		if cfg.JWT.SecretKey == "" {
			return nil, fmt.Errorf("config: jwt.secret_key is required when auth is enabled")
		}
	}

	return &cfg, nil
}
