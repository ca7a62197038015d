// Package session issues and validates the signed token that keeps a user
// logged in between runs. Tokens are HS256 JWTs whose subject is the
// username; the signing key and the current token live in the metadata table.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/weighttracker/internal/common"
	"github.com/dmitrijs2005/weighttracker/internal/repositories/metadata"
	"github.com/golang-jwt/jwt/v5"
)

// Metadata keys.
const (
	SigningKeyName = "session_signing_key"
	TokenName      = "session_token"

	signingKeySize = 32
	issuer         = "weighttracker"
)

type Claims struct {
	jwt.RegisteredClaims
}

type Manager struct {
	meta metadata.Repository
	ttl  time.Duration
	now  func() time.Time
}

func NewManager(meta metadata.Repository, ttl time.Duration) *Manager {
	return &Manager{meta: meta, ttl: ttl, now: time.Now}
}

// Issue signs a token for username valid for the configured TTL.
func (m *Manager) Issue(ctx context.Context, username string) (string, error) {
	key, err := m.signingKey(ctx, true)
	if err != nil {
		return "", err
	}

	now := m.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	})

	s, err := token.SignedString(key)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return s, nil
}

// Parse validates token and returns its username.
func (m *Manager) Parse(ctx context.Context, token string) (string, error) {
	key, err := m.signingKey(ctx, false)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", common.ErrInvalidToken
		}
		return "", err
	}

	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return key, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", common.ErrTokenExpired
		}
		return "", fmt.Errorf("%w: %w", common.ErrInvalidToken, err)
	}
	if !parsed.Valid || claims.Subject == "" {
		return "", common.ErrInvalidToken
	}

	return claims.Subject, nil
}

// Save caches token so the next run can resume the session.
func (m *Manager) Save(ctx context.Context, token string) error {
	return m.meta.Set(ctx, TokenName, []byte(token))
}

// Load returns the cached token, or common.ErrorNotFound.
func (m *Manager) Load(ctx context.Context) (string, error) {
	b, err := m.meta.Get(ctx, TokenName)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Clear forgets the cached token. The signing key is kept.
func (m *Manager) Clear(ctx context.Context) error {
	return m.meta.Delete(ctx, TokenName)
}

func (m *Manager) signingKey(ctx context.Context, create bool) ([]byte, error) {
	key, err := m.meta.Get(ctx, SigningKeyName)
	if err == nil {
		return key, nil
	}
	if !errors.Is(err, common.ErrorNotFound) || !create {
		return nil, err
	}

	key = common.GenerateRandByteArray(signingKeySize)
	if key == nil {
		return nil, fmt.Errorf("generate signing key: %w", common.ErrorInternal)
	}
	if err := m.meta.Set(ctx, SigningKeyName, key); err != nil {
		return nil, err
	}
	return key, nil
}
