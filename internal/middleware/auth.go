package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"go_5_hanzi_drill/internal/config"
	"go_5_hanzi_drill/internal/model"
	"go_5_hanzi_drill/internal/webutil"
)

// authCtxKey は認証済みフラグをコンテキストに格納するためのキーです。
type authCtxKey struct{}

// JWTAuthMiddleware は Authorization ヘッダーの Bearer トークンを検証します。
// cfg.Auth.Enabled が false の場合は素通しです。
func JWTAuthMiddleware(cfg *config.Config) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !cfg.Auth.Enabled {
				next.ServeHTTP(w, r)
				return
			}

			logger := GetLogger(r.Context())

			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				webutil.HandleError(w, logger, model.NewAppError("UNAUTHORIZED", "認証トークンが必要です。", "", model.ErrForbidden))
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				webutil.HandleError(w, logger, model.NewAppError("UNAUTHORIZED", "Authorization ヘッダーの形式が不正です。", "", model.ErrForbidden))
				return
			}

			tokenString := parts[1]
			claims := &model.JWTCustomClaims{}
			token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
				}
				return []byte(cfg.JWT.SecretKey), nil
			})
			if err != nil || !token.Valid {
				logger.Warn("トークン検証に失敗しました", "error", err)
				webutil.HandleError(w, logger, model.NewAppError("UNAUTHORIZED", "認証トークンが無効です。", "", model.ErrForbidden))
				return
			}

			ctx := context.WithValue(r.Context(), authCtxKey{}, true)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// IsAuthenticated はコンテキストの認証済みフラグを返します。
func IsAuthenticated(ctx context.Context) bool {
	v, ok := ctx.Value(authCtxKey{}).(bool)
	return ok && v
}
