package service

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go_5_hanzi_drill/internal/config"
	"go_5_hanzi_drill/internal/model"
)

func authTestConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Auth.Enabled = true
	cfg.Auth.Password = "correct-horse"
	cfg.JWT.SecretKey = "test-secret-key"
	cfg.JWT.AccessTokenTTL = time.Hour
	return cfg
}

func Test_authService_Login(t *testing.T) {
	ctx := context.Background()
	cfg := authTestConfig()
	svc := NewAuthService(cfg)

	t.Run("正常系: 正しいパスワードでトークン発行", func(t *testing.T) {
		resp, err := svc.Login(ctx, &model.LoginRequest{Password: "correct-horse"})
		require.NoError(t, err)
		require.NotEmpty(t, resp.AccessToken)

		// 発行したトークンが自分の秘密鍵で検証できること
		claims := &model.JWTCustomClaims{}
		token, err := jwt.ParseWithClaims(resp.AccessToken, claims, func(token *jwt.Token) (interface{}, error) {
			return []byte(cfg.JWT.SecretKey), nil
		})
		require.NoError(t, err)
		assert.True(t, token.Valid)
		assert.Equal(t, config.AppName, claims.Issuer)
		assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, time.Minute)
	})

	t.Run("異常系: パスワード不一致", func(t *testing.T) {
		resp, err := svc.Login(ctx, &model.LoginRequest{Password: "wrong"})
		assert.ErrorIs(t, err, model.ErrInvalidInput)
		assert.Nil(t, resp)
	})
}
