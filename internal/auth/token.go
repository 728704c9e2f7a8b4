// Package auth issues and verifies the signed session tokens that replace
// the client-supplied identity headers of earlier prototypes. Handlers only
// ever see a Principal that has passed signature verification.
package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/studyboss/study-service/internal/models"
)

var ErrInvalidToken = errors.New("invalid or expired token")

// Principal is the verified identity attached to a request.
type Principal struct {
	UserID  uint
	Email   string
	IsAdmin bool
}

type sessionClaims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
	Admin bool   `json:"admin"`
}

// TokenManager signs and verifies session tokens with a shared HMAC secret.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	return &TokenManager{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

// Issue creates a signed token for the given user. The admin flag is baked
// into the token at login time.
func (m *TokenManager) Issue(user *models.User, isAdmin bool) (string, error) {
	now := time.Now()
	claims := sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(user.ID), 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
			Issuer:    "study-service",
		},
		Email: user.Email,
		Admin: isAdmin,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify parses and validates a token and returns the principal it carries.
func (m *TokenManager) Verify(tokenString string) (*Principal, error) {
	var claims sessionClaims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	userID, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil {
		return nil, ErrInvalidToken
	}

	return &Principal{
		UserID:  uint(userID),
		Email:   claims.Email,
		IsAdmin: claims.Admin,
	}, nil
}
