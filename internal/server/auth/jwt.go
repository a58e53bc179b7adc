// Package auth issues and validates the signed bearer tokens that bind a
// request to a username.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/hasilakhwa/secure-locker-api/internal/common"
)

// TokenIssuer mints and validates HS256-signed JWTs carrying the username as
// subject. The clock is injected so expiry checks stay deterministic in tests.
// Safe for concurrent use: all fields are immutable after construction.
type TokenIssuer struct {
	secretKey []byte
	ttl       time.Duration
	now       func() time.Time
}

// NewTokenIssuer builds a TokenIssuer with the given HMAC secret and token
// lifetime. A nil clock defaults to time.Now.
func NewTokenIssuer(secretKey []byte, ttl time.Duration, now func() time.Time) *TokenIssuer {
	if now == nil {
		now = time.Now
	}
	return &TokenIssuer{secretKey: secretKey, ttl: ttl, now: now}
}

// Issue returns a signed token with claims {sub: username, iat, exp}.
func (t *TokenIssuer) Issue(username string) (string, error) {
	issuedAt := t.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   username,
		IssuedAt:  jwt.NewNumericDate(issuedAt),
		ExpiresAt: jwt.NewNumericDate(issuedAt.Add(t.ttl)),
	})

	signed, err := token.SignedString(t.secretKey)
	if err != nil {
		return "", err
	}
	return signed, nil
}

// Validate parses and verifies a token and returns its subject username.
// It fails with common.ErrTokenExpired once now >= exp, and with
// common.ErrInvalidToken when the signature does not verify, the payload is
// not parseable, or the exp or sub claims are missing.
func (t *TokenIssuer) Validate(tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(*jwt.Token) (any, error) { return t.secretKey, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(t.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", common.ErrTokenExpired
		}
		return "", common.ErrInvalidToken
	}

	if !token.Valid || claims.Subject == "" {
		return "", common.ErrInvalidToken
	}

	return claims.Subject, nil
}
