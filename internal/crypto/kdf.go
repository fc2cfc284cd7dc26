// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"io"
	"strings"

	"golang.org/x/crypto/pbkdf2"
	"golang.org/x/crypto/scrypt"
)

const (
	// PBKDF2Iterations is the PBKDF2-SHA256 round count for master and
	// emergency keys.
	PBKDF2Iterations = 210_000
	// SaltSize is the size of every generated salt in bytes.
	SaltSize = 32

	// ScryptN, ScryptR and ScryptP are the cost parameters of new verifiers.
	ScryptN = 1 << 15
	ScryptR = 8
	ScryptP = 1
	// ScryptKeyLen is the derived key length of new verifiers.
	ScryptKeyLen = 32

	authContext = "legacyshield/auth/v1"
)

// keyDerivation is the private implementation of [KeyDerivation].
type keyDerivation struct {
	// iterations is the PBKDF2 round count. Stored in the struct so tests can
	// lower it; production code always uses PBKDF2Iterations.
	iterations int
	random     io.Reader
}

// NewKeyDerivation constructs a [KeyDerivation] with PBKDF2Iterations rounds
// and scrypt N=2^15, r=8, p=1 verifiers.
func NewKeyDerivation() KeyDerivation {
	return &keyDerivation{iterations: PBKDF2Iterations, random: rand.Reader}
}

// DeriveKey implements [KeyDerivation].
func (d *keyDerivation) DeriveKey(secret, salt string, extractable bool) (*Key, error) {
	saltBytes, err := decodeSalt(salt)
	if err != nil {
		return nil, err
	}

	raw := pbkdf2.Key([]byte(secret), saltBytes, d.iterations, KeySize, sha256.New)
	return NewKey(raw, extractable)
}

// DeriveAuthHash implements [KeyDerivation].
func (d *keyDerivation) DeriveAuthHash(secret, salt string) (string, error) {
	saltBytes, err := decodeSalt(salt)
	if err != nil {
		return "", err
	}

	authSalt := append([]byte(authContext), saltBytes...)
	raw := pbkdf2.Key([]byte(secret), authSalt, d.iterations, KeySize, sha256.New)
	return base64.StdEncoding.EncodeToString(raw), nil
}

// DeriveVerifier implements [KeyDerivation].
func (d *keyDerivation) DeriveVerifier(secret string) (string, error) {
	salt := make([]byte, SaltSize)
	if _, err := io.ReadFull(d.random, salt); err != nil {
		return "", fmt.Errorf("generate verifier salt: %w", err)
	}

	key, err := scrypt.Key([]byte(secret), salt, ScryptN, ScryptR, ScryptP, ScryptKeyLen)
	if err != nil {
		return "", fmt.Errorf("derive verifier: %w", err)
	}

	return ScryptVerifier{N: ScryptN, R: ScryptR, P: ScryptP, Salt: salt, Key: key}.String(), nil
}

// GenerateSalt implements [KeyDerivation].
func (d *keyDerivation) GenerateSalt() (string, error) {
	salt := make([]byte, SaltSize)
	if _, err := io.ReadFull(d.random, salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}
	return base64.StdEncoding.EncodeToString(salt), nil
}

// HashDigest implements [KeyDerivation].
func (d *keyDerivation) HashDigest(secret string) string {
	return hashDigest(secret)
}

func hashDigest(secret string) string {
	sum := sha256.Sum256([]byte(secret))
	return base64.StdEncoding.EncodeToString(sum[:])
}

// decodeSalt decodes a standard base64 salt as emitted by GenerateSalt.
func decodeSalt(salt string) ([]byte, error) {
	salt = strings.TrimSpace(salt)
	if salt == "" {
		return nil, fmt.Errorf("%w: empty salt", ErrConfiguration)
	}

	b, err := base64.StdEncoding.DecodeString(salt)
	if err != nil || len(b) == 0 {
		return nil, fmt.Errorf("%w: salt is not valid base64", ErrConfiguration)
	}
	return b, nil
}
