package auth

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// TokenCookie is the session cookie the browser client authenticates
// with; API clients may use a bearer header instead.
const TokenCookie = "chatty-token"

type JWTManager struct {
	secretKey     string
	tokenDuration time.Duration
}

func NewJWTManager(secret string, duration time.Duration) *JWTManager {
	return &JWTManager{secretKey: secret, tokenDuration: duration}
}

// Generate creates a signed JWT for userID.
func (m *JWTManager) Generate(userID string) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(m.tokenDuration)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(m.secretKey))
}

// Duration returns the configured token lifetime.
func (m *JWTManager) Duration() time.Duration {
	return m.tokenDuration
}

// Verify parses and validates a JWT.
func (m *JWTManager) Verify(accessToken string) (*jwt.RegisteredClaims, error) {
	token, err := jwt.ParseWithClaims(accessToken, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(m.secretKey), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

// Expiry returns the token's expiration time.
func (m *JWTManager) Expiry(accessToken string) (time.Time, error) {
	claims, err := m.Verify(accessToken)
	if err != nil {
		return time.Time{}, err
	}
	return claims.ExpiresAt.Time, nil
}

// ExtractToken pulls the token from the Authorization header or, for
// browser clients, from the session cookie.
func ExtractToken(r *http.Request) (string, error) {
	hdr := r.Header.Get("Authorization")
	if hdr != "" {
		parts := strings.SplitN(hdr, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return parts[1], nil
		}
		return "", errors.New("invalid Authorization header")
	}

	cookie, err := r.Cookie(TokenCookie)
	if err != nil || cookie.Value == "" {
		return "", errors.New("missing token")
	}
	return cookie.Value, nil
}
