package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Identity — то, что внешняя проверка полномочий сообщает ядру: идентификатор
// пользователя и признак администратора. Ядро доверяет этим данным и не
// перепроверяет их
type Identity struct {
	UserID  int64
	IsAdmin bool
}

// NewToken builds and signs an HS256 JWT carrying the identity claims
func NewToken(secret string, identity Identity, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"sub":   identity.UserID,
		"admin": identity.IsAdmin,
		"exp":   now.Add(ttl).Unix(),
		"iat":   now.Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(secret))
}

// ParseToken validates a signed token and extracts the identity claims
func ParseToken(secret, raw string) (*Identity, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	if !tok.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("invalid claims")
	}

	sub, ok := claims["sub"].(float64)
	if !ok {
		return nil, fmt.Errorf("missing subject claim")
	}

	isAdmin, _ := claims["admin"].(bool)

	return &Identity{
		UserID:  int64(sub),
		IsAdmin: isAdmin,
	}, nil
}
