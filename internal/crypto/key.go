// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"sync"

	"github.com/awnumar/memguard"
)

const (
	// KeySize is the size of every symmetric key in bytes (AES-256).
	KeySize = 32
	// NonceSize is the AES-GCM nonce size in bytes (96 bits).
	NonceSize = 12
	// TagSize is the AES-GCM authentication tag size in bytes.
	TagSize = 16
)

// Key is a 256-bit symmetric key sealed in a memguard enclave. The raw bytes
// are decrypted into locked memory only while an AEAD is being built.
type Key struct {
	mu          sync.RWMutex
	enclave     *memguard.Enclave
	extractable bool
}

// GenerateKey returns a fresh random key.
func GenerateKey(extractable bool) (*Key, error) {
	enclave := memguard.NewEnclaveRandom(KeySize)
	if enclave == nil {
		return nil, ErrKeyUnavailable
	}
	return &Key{enclave: enclave, extractable: extractable}, nil
}

// NewKey seals raw into a new Key. raw is wiped.
func NewKey(raw []byte, extractable bool) (*Key, error) {
	if len(raw) != KeySize {
		memguard.WipeBytes(raw)
		return nil, ErrConfiguration
	}
	return &Key{enclave: memguard.NewEnclave(raw), extractable: extractable}, nil
}

// Extractable reports whether Export is permitted.
func (k *Key) Extractable() bool {
	return k != nil && k.extractable
}

// Export returns a copy of the raw key bytes. The caller owns the copy and
// must wipe it with memguard.WipeBytes.
func (k *Key) Export() ([]byte, error) {
	if !k.Extractable() {
		return nil, ErrKeyNotExtractable
	}

	var raw []byte
	err := k.open(func(b []byte) error {
		raw = make([]byte, len(b))
		copy(raw, b)
		return nil
	})
	return raw, err
}

// Destroy drops the enclave. Using the key afterwards returns
// ErrKeyUnavailable.
func (k *Key) Destroy() {
	if k == nil {
		return
	}
	k.mu.Lock()
	k.enclave = nil
	k.mu.Unlock()
}

func (k *Key) open(fn func(raw []byte) error) error {
	if k == nil {
		return ErrKeyUnavailable
	}

	k.mu.RLock()
	enclave := k.enclave
	k.mu.RUnlock()
	if enclave == nil {
		return ErrKeyUnavailable
	}

	buf, err := enclave.Open()
	if err != nil {
		return ErrKeyUnavailable
	}
	defer buf.Destroy()

	return fn(buf.Bytes())
}

// withAEAD builds an AES-256-GCM instance from the key for the duration of fn.
func (k *Key) withAEAD(fn func(aead cipher.AEAD) error) error {
	return k.open(func(raw []byte) error {
		return withRawAEAD(raw, fn)
	})
}

func withRawAEAD(raw []byte, fn func(aead cipher.AEAD) error) error {
	block, err := aes.NewCipher(raw)
	if err != nil {
		return err
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return err
	}
	return fn(aead)
}
