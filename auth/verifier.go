// Package auth verifies connection identities.
//
// Every websocket attach and every authenticated REST request presents a
// bearer token. The Verifier resolves it to a stable user identifier or
// rejects it; no game operation is reachable without a verified identity.
// Tokens are HS256 JWTs carrying the identity in the "id" claim.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var ErrInvalidToken = errors.New("invalid token")

// tokenTTL bounds how long an issued token stays valid.
const tokenTTL = 7 * 24 * time.Hour

// Verifier validates bearer tokens and resolves them to identities.
type Verifier struct {
	secret []byte
}

// NewVerifier creates a Verifier with the given signing secret.
func NewVerifier(secret string) (*Verifier, error) {
	if secret == "" {
		return nil, fmt.Errorf("signing secret cannot be empty")
	}
	return &Verifier{secret: []byte(secret)}, nil
}

// Verify resolves a token to its identity. It fails with ErrInvalidToken for
// anything other than a well-formed, unexpired token signed with the
// verifier's secret and carrying a non-empty "id" claim.
func (v *Verifier) Verify(token string) (string, error) {
	if token == "" {
		return "", ErrInvalidToken
	}

	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil || !parsed.Valid {
		return "", ErrInvalidToken
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrInvalidToken
	}
	id, _ := claims["id"].(string)
	if id == "" {
		return "", ErrInvalidToken
	}
	return id, nil
}

// Sign issues a token for an identity. The identity is carried in the "id"
// claim so that Verify round-trips it.
func (v *Verifier) Sign(identity string) (string, error) {
	if identity == "" {
		return "", fmt.Errorf("identity cannot be empty")
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":  identity,
		"iat": now.Unix(),
		"exp": now.Add(tokenTTL).Unix(),
	})
	signed, err := token.SignedString(v.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// NewGuestIdentity mints a fresh random identity for anonymous players.
func NewGuestIdentity() string {
	return "guest-" + uuid.NewString()
}
