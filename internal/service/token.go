// File: internal/service/token.go
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"events-api/internal/cache"
	"events-api/internal/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenRevoked = errors.New("token revoked")
)

const revokedPrefix = "revoked:"

// 測試替換點
var (
	timeNow    = time.Now
	newTokenID = func() string { return uuid.NewString() }
)

// Claims 定義 JWT 負載內容
type Claims struct {
	UserID   int    `json:"user_id"`
	Username string `json:"username"`
	IsAdmin  bool   `json:"is_admin"`
	jwt.RegisteredClaims
}

// TokenManager 簽發與驗證存取令牌，登出的令牌記錄在 cache 直到過期
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	cache  cache.Cache
}

func NewTokenManager(secret string, ttl time.Duration, c cache.Cache) *TokenManager {
	return &TokenManager{secret: []byte(secret), ttl: ttl, cache: c}
}

// Issue 依據使用者資訊與 TTL 產生 JWT
func (m *TokenManager) Issue(user model.User) (string, *Claims, error) {
	now := timeNow()
	claims := &Claims{
		UserID:   user.ID,
		Username: user.Username,
		IsAdmin:  user.IsAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        newTokenID(),
			Subject:   fmt.Sprint(user.ID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", nil, err
	}
	return token, claims, nil
}

// Verify 驗證簽章、期限與是否已登出
func (m *TokenManager) Verify(ctx context.Context, tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	}, jwt.WithTimeFunc(timeNow))
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	if claims.ID == "" {
		return nil, fmt.Errorf("%w: missing jti", ErrInvalidToken)
	}

	err = m.cache.Get(ctx, revokedPrefix+claims.ID).Err()
	switch {
	case err == nil:
		return nil, ErrTokenRevoked
	case !errors.Is(err, redis.Nil):
		return nil, fmt.Errorf("check revocation: %w", err)
	}
	return claims, nil
}

// Revoke 將令牌 jti 寫入 cache，保存到令牌原本的到期時間
func (m *TokenManager) Revoke(ctx context.Context, claims *Claims) error {
	if claims.ID == "" {
		return ErrInvalidToken
	}
	ttl := time.Minute
	if claims.ExpiresAt != nil {
		ttl = claims.ExpiresAt.Sub(timeNow())
	}
	if ttl <= 0 {
		return nil
	}
	return m.cache.Set(ctx, revokedPrefix+claims.ID, "1", ttl).Err()
}
