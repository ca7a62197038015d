// Package cryptox protects account passwords at rest.
//
// A Guard turns a plaintext password into a storable secret and later checks a
// password attempt against that secret:
//
//	salt, _ := guard.GenerateSalt()
//	key := guard.DeriveKey(password, salt)
//	secret, _ := guard.Encrypt(password, key)
//	// persist salt and secret
//
//	ok, err := guard.Verify(attempt, salt, secret)
//
// Keys come from PBKDF2-HMAC-SHA256 (1000 iterations, 128-bit output) and the
// password is sealed with AES-128-GCM. Every secret carries its own random
// nonce, encoded as base64(nonce || ciphertext). Verification re-seals the
// attempt under the stored nonce and compares in constant time.
package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"io"

	"github.com/dmitrijs2005/weighttracker/internal/common"
	"golang.org/x/crypto/pbkdf2"
)

const (
	// SaltSize is the number of random bytes in a salt before encoding.
	SaltSize = 16
	// KDFIterations is the PBKDF2 iteration count.
	KDFIterations = 1000
	// KeySize is the derived key length in bytes (AES-128).
	KeySize = 16

	nonceSize = 12
	tagSize   = 16
)

var (
	// ErrCrypto marks failures of the underlying primitives: random source,
	// key material or cipher construction. It never means "wrong password".
	ErrCrypto = errors.New("crypto provider failure")

	// ErrMalformedSecret is returned when a stored secret cannot be decoded.
	ErrMalformedSecret = errors.New("malformed secret")
)

// Guard produces and verifies encrypted password material.
// It holds no per-user state and is safe for concurrent use as long as its
// random source is.
type Guard struct {
	random io.Reader
}

// Option configures a Guard.
type Option func(*Guard)

// WithRandom replaces crypto/rand as the source for salts and nonces.
func WithRandom(r io.Reader) Option {
	return func(g *Guard) {
		g.random = r
	}
}

// NewGuard returns a Guard reading randomness from crypto/rand unless
// overridden with WithRandom.
func NewGuard(opts ...Option) *Guard {
	g := &Guard{random: rand.Reader}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// GenerateSalt returns SaltSize fresh random bytes, base64 encoded.
func (g *Guard) GenerateSalt() (string, error) {
	salt, err := g.readRandom(SaltSize)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(salt), nil
}

// DeriveKey derives a KeySize-byte AES key from password and the salt text.
// The same pair always yields the same key.
func (g *Guard) DeriveKey(password, salt string) []byte {
	return pbkdf2.Key([]byte(password), []byte(salt), KDFIterations, KeySize, sha256.New)
}

// Encrypt seals password under key with a fresh nonce and returns the
// base64 text form of nonce || ciphertext.
func (g *Guard) Encrypt(password string, key []byte) (string, error) {
	nonce, err := g.readRandom(nonceSize)
	if err != nil {
		return "", err
	}

	sealed, err := seal(password, key, nonce)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(sealed), nil
}

// Verify reports whether attempt is the password that produced secret under
// salt. A wrong password yields (false, nil). Errors are returned only for a
// malformed secret (ErrMalformedSecret) or a provider failure (ErrCrypto).
func (g *Guard) Verify(attempt, salt, secret string) (bool, error) {
	stored, err := base64.StdEncoding.DecodeString(secret)
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrMalformedSecret, err)
	}
	if len(stored) < nonceSize+tagSize {
		return false, fmt.Errorf("%w: %d bytes is too short", ErrMalformedSecret, len(stored))
	}

	key := g.DeriveKey(attempt, salt)
	defer common.WipeByteArray(key)

	candidate, err := seal(attempt, key, stored[:nonceSize])
	if err != nil {
		return false, err
	}

	return subtle.ConstantTimeCompare(candidate, stored) == 1, nil
}

func (g *Guard) readRandom(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := io.ReadFull(g.random, b); err != nil {
		return nil, fmt.Errorf("%w: read random: %w", ErrCrypto, err)
	}
	return b, nil
}

// seal returns nonce || AES-GCM(key, nonce, password).
func seal(password string, key, nonce []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCrypto, err)
	}

	aesgcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCrypto, err)
	}

	out := make([]byte, 0, len(nonce)+len(password)+aesgcm.Overhead())
	out = append(out, nonce...)
	return aesgcm.Seal(out, nonce, []byte(password), nil), nil
}
