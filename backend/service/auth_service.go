package service

import (
	"context"
	"errors"
	"time"

	"learnnest/backend/common"
	"learnnest/backend/model"

	"github.com/golang-jwt/jwt/v5"
)

const jwtIssuer = "learnnest"

// Claims is the JWT payload for both access and refresh tokens.
type Claims struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	Role     int    `json:"role"`
	jwt.RegisteredClaims
}

func generateWithSecret(user *model.User, secret string, expiry time.Duration) (string, error) {
	if secret == "" {
		return "", errors.New("jwt secret is not configured")
	}
	now := time.Now()
	claims := Claims{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    jwtIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func validateWithSecret(tokenString string, secret string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

// GenerateToken issues an access token for the user.
func GenerateToken(user *model.User) (string, error) {
	return generateWithSecret(user, common.JWTSecret, common.AccessTokenExpiry)
}

// ValidateToken parses and verifies an access token.
func ValidateToken(tokenString string) (*Claims, error) {
	return validateWithSecret(tokenString, common.JWTSecret)
}

// GenerateRefreshToken issues a refresh token for the user.
func GenerateRefreshToken(user *model.User) (string, error) {
	return generateWithSecret(user, common.JWTRefreshSecret, common.RefreshTokenExpiry)
}

// ValidateRefreshToken parses and verifies a refresh token.
func ValidateRefreshToken(tokenString string) (*Claims, error) {
	return validateWithSecret(tokenString, common.JWTRefreshSecret)
}

// BlacklistToken invalidates an access token until its natural expiry. Without
// redis the token simply ages out.
func BlacklistToken(ctx context.Context, tokenString string) error {
	if !common.RedisEnabled {
		return nil
	}
	return common.RDB.Set(ctx, "jwt:blacklist:"+tokenString, "1", common.AccessTokenExpiry).Err()
}
