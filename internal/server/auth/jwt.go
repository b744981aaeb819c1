package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/edusys/eduauth/internal/common"
)

// Claims carries the identity embedded in an issued token: the registered
// subject plus a duplicate User claim kept for clients that only read the
// claim set as a flat map.
type Claims struct {
	jwt.RegisteredClaims
	User string `json:"user"`
}

// GenerateToken issues a signed HS256 token for the given username expiring
// after validityDuration.
func GenerateToken(username string, secretKey []byte, validityDuration time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(validityDuration)),
		},
		User: username,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// ParseToken verifies the signature and expiry of tokenString and returns the
// embedded claims. Any failure (malformed token, wrong signature, expired)
// yields common.ErrInvalidToken; validation has no side effects.
func ParseToken(tokenString string, secretKey []byte) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secretKey, nil
	})
	if err != nil {
		return nil, common.ErrInvalidToken
	}

	if !token.Valid || claims.User == "" {
		return nil, common.ErrInvalidToken
	}

	return claims, nil
}
