package services

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/messagely/messagely-backend/internal/apperrors"
)

// DefaultTokenTTL bounds how long an issued session token stays valid.
const DefaultTokenTTL = 24 * time.Hour

// sessionClaims are the claims embedded in a session token: the standard
// issued-at/expires-at pair plus the authenticated username.
type sessionClaims struct {
	jwt.RegisteredClaims
	Username string `json:"username"`
}

// TokenService signs and verifies stateless session tokens. The signing
// secret is injected at construction; there is no server-side session
// state and no revocation list, so any token with a valid signature is
// honored until it expires.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenService builds a TokenService with the given signing secret and
// token lifetime. A non-positive ttl falls back to DefaultTokenTTL.
func NewTokenService(secret string, ttl time.Duration) *TokenService {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenService{secret: []byte(secret), ttl: ttl}
}

// Issue mints a signed token bound to username.
func (s *TokenService) Issue(username string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
		Username: username,
	})
	return token.SignedString(s.secret)
}

// Verify checks the token's signature and claims and returns the embedded
// username. It never trusts an unverified payload: a bad signature or a
// malformed token yields apperrors.ErrInvalidToken, an expired one
// apperrors.ErrTokenExpired.
func (s *TokenService) Verify(tokenString string) (string, error) {
	claims := &sessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (interface{}, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", apperrors.ErrTokenExpired
		}
		return "", apperrors.ErrInvalidToken
	}
	if !token.Valid || claims.Username == "" {
		return "", apperrors.ErrInvalidToken
	}
	return claims.Username, nil
}
