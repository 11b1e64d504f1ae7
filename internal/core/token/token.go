// Package token issues and verifies the signed bearer credentials used for
// session propagation. Tokens are self-contained: the user id and expiry are
// the only claims, and possession of a validly signed, unexpired token is the
// sole authorization proof.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/taskhub/task-manager-api/internal/core/domain"
)

// Issuer signs and verifies HS256 tokens with a process-wide secret.
// Rotating the secret invalidates every outstanding token.
type Issuer struct {
	secret []byte
	ttl    time.Duration
}

// NewIssuer returns an Issuer. A non-positive ttl defaults to 30 days.
func NewIssuer(secret string, ttl time.Duration) *Issuer {
	if ttl <= 0 {
		ttl = 30 * 24 * time.Hour
	}
	return &Issuer{secret: []byte(secret), ttl: ttl}
}

// Issue mints a signed token binding userID with the configured expiry.
func (i *Issuer) Issue(userID string) (string, error) {
	claims := jwt.MapClaims{
		"id":  userID,
		"exp": time.Now().Add(i.ttl).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(i.secret)
}

// Verify checks signature and expiry and returns the embedded user id.
// Expired tokens yield domain.ErrTokenExpired; every other failure (bad
// signature, malformed token, wrong method, missing id claim) yields
// domain.ErrTokenInvalid.
func (i *Issuer) Verify(raw string) (string, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return i.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", domain.ErrTokenExpired
		}
		return "", domain.ErrTokenInvalid
	}
	if !tkn.Valid {
		return "", domain.ErrTokenInvalid
	}

	id, ok := claims["id"].(string)
	if !ok || id == "" {
		return "", domain.ErrTokenInvalid
	}
	return id, nil
}
