// internal/service/auth_service.go
package service

import (
	"context"
	"crypto/subtle"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"go_5_hanzi_drill/internal/config"
	"go_5_hanzi_drill/internal/middleware"
	"go_5_hanzi_drill/internal/model"
)

// AuthService は単一利用者向けの簡易認証です。
// 設定ファイルのアクセスパスワードとの照合のみでJWTを発行します。
type AuthService interface {
	Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error)
}

type authService struct {
	cfg *config.Config
}

func NewAuthService(cfg *config.Config) AuthService {
	return &authService{cfg: cfg}
}

func (s *authService) Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error) {
	logger := middleware.GetLogger(ctx)

	if subtle.ConstantTimeCompare([]byte(req.Password), []byte(s.cfg.Auth.Password)) != 1 {
		logger.Warn("Login failed: password mismatch")
		return nil, model.NewAppError("AUTHENTICATION_FAILED", "パスワードが正しくありません。", "", model.ErrInvalidInput)
	}

	claims := &model.JWTCustomClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    config.AppName,
			Subject:   "learner",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.cfg.JWT.AccessTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString([]byte(s.cfg.JWT.SecretKey))
	if err != nil {
		logger.Error("Failed to sign JWT", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "トークンの生成に失敗しました。", "", err)
	}

	logger.Info("Login successful")
	return &model.LoginResponse{AccessToken: signedToken}, nil
}
