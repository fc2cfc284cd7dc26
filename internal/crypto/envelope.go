// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/cipher"
	"crypto/rand"
	"fmt"
	"io"

	"github.com/awnumar/memguard"
)

// WrappedKey is a content key encrypted under an access key.
type WrappedKey struct {
	Ciphertext []byte
	Nonce      []byte
}

// IsZero reports whether the wrap is absent.
func (w WrappedKey) IsZero() bool {
	return len(w.Ciphertext) == 0 && len(w.Nonce) == 0
}

// EncryptedFile is an encrypted body with its detached tag and the wrapped
// content keys. Ciphertext has the same length as the plaintext.
type EncryptedFile struct {
	Ciphertext []byte
	Nonce      []byte
	Tag        []byte
	Owner      WrappedKey
	Emergency  *WrappedKey
}

// envelopeCipher is the private implementation of [EnvelopeCipher].
type envelopeCipher struct {
	random io.Reader
}

// NewEnvelopeCipher constructs an AES-256-GCM [EnvelopeCipher].
func NewEnvelopeCipher() EnvelopeCipher {
	return &envelopeCipher{random: rand.Reader}
}

// EncryptFile implements [EnvelopeCipher].
func (e *envelopeCipher) EncryptFile(plaintext []byte, ownerKey, emergencyKey *Key) (*EncryptedFile, error) {
	content := memguard.NewBufferRandom(KeySize)
	defer content.Destroy()

	fileNonce, err := e.nonce()
	if err != nil {
		return nil, err
	}

	var sealed []byte
	err = withRawAEAD(content.Bytes(), func(aead cipher.AEAD) error {
		sealed = aead.Seal(nil, fileNonce, plaintext, nil)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("encrypt file body: %w", err)
	}

	split := len(sealed) - TagSize
	file := &EncryptedFile{
		Ciphertext: sealed[:split:split],
		Nonce:      fileNonce,
		Tag:        sealed[split:],
	}

	file.Owner, err = e.seal(ownerKey, content.Bytes())
	if err != nil {
		return nil, fmt.Errorf("wrap content key for owner: %w", err)
	}

	if emergencyKey != nil {
		wrapped, err := e.seal(emergencyKey, content.Bytes())
		if err != nil {
			return nil, fmt.Errorf("wrap content key for emergency contact: %w", err)
		}
		file.Emergency = &wrapped
	}

	return file, nil
}

// DecryptFile implements [EnvelopeCipher].
func (e *envelopeCipher) DecryptFile(file *EncryptedFile, wrapped WrappedKey, userKey *Key) ([]byte, error) {
	if file == nil || len(file.Nonce) != NonceSize || len(file.Tag) != TagSize {
		return nil, ErrDecryptionFailed
	}

	content, err := e.open(userKey, wrapped)
	if err != nil {
		return nil, err
	}
	defer memguard.WipeBytes(content)
	if len(content) != KeySize {
		return nil, ErrDecryptionFailed
	}

	sealed := make([]byte, 0, len(file.Ciphertext)+TagSize)
	sealed = append(sealed, file.Ciphertext...)
	sealed = append(sealed, file.Tag...)

	var plaintext []byte
	err = withRawAEAD(content, func(aead cipher.AEAD) error {
		var openErr error
		plaintext, openErr = aead.Open(nil, file.Nonce, sealed, nil)
		return openErr
	})
	if err != nil {
		return nil, ErrDecryptionFailed
	}

	return plaintext, nil
}

// RewrapKey implements [EnvelopeCipher].
func (e *envelopeCipher) RewrapKey(old WrappedKey, oldKey, newKey *Key) (WrappedKey, error) {
	content, err := e.open(oldKey, old)
	if err != nil {
		return WrappedKey{}, err
	}
	defer memguard.WipeBytes(content)
	if len(content) != KeySize {
		return WrappedKey{}, ErrDecryptionFailed
	}

	return e.seal(newKey, content)
}

// WrapKey implements [EnvelopeCipher].
func (e *envelopeCipher) WrapKey(key, wrappingKey *Key) (string, error) {
	raw, err := key.Export()
	if err != nil {
		return "", err
	}
	defer memguard.WipeBytes(raw)

	wrapped, err := e.seal(wrappingKey, raw)
	if err != nil {
		return "", err
	}
	return EncodeKeyRecord(wrapped), nil
}

// UnwrapKey implements [EnvelopeCipher].
func (e *envelopeCipher) UnwrapKey(record string, wrappingKey *Key, extractable bool) (*Key, error) {
	wrapped, err := ParseKeyRecord(record)
	if err != nil {
		return nil, err
	}

	raw, err := e.open(wrappingKey, wrapped)
	if err != nil {
		return nil, err
	}
	if len(raw) != KeySize {
		memguard.WipeBytes(raw)
		return nil, ErrDecryptionFailed
	}
	return NewKey(raw, extractable)
}

// seal encrypts plaintext under key with a fresh nonce.
func (e *envelopeCipher) seal(key *Key, plaintext []byte) (WrappedKey, error) {
	nonce, err := e.nonce()
	if err != nil {
		return WrappedKey{}, err
	}

	var ciphertext []byte
	err = key.withAEAD(func(aead cipher.AEAD) error {
		ciphertext = aead.Seal(nil, nonce, plaintext, nil)
		return nil
	})
	if err != nil {
		return WrappedKey{}, err
	}

	return WrappedKey{Ciphertext: ciphertext, Nonce: nonce}, nil
}

// open decrypts a wrap. Every failure collapses into ErrDecryptionFailed.
func (e *envelopeCipher) open(key *Key, wrapped WrappedKey) ([]byte, error) {
	if len(wrapped.Nonce) != NonceSize || len(wrapped.Ciphertext) < TagSize {
		return nil, ErrDecryptionFailed
	}

	var plaintext []byte
	err := key.withAEAD(func(aead cipher.AEAD) error {
		var openErr error
		plaintext, openErr = aead.Open(nil, wrapped.Nonce, wrapped.Ciphertext, nil)
		return openErr
	})
	if err != nil {
		return nil, ErrDecryptionFailed
	}
	return plaintext, nil
}

func (e *envelopeCipher) nonce() ([]byte, error) {
	nonce := make([]byte, NonceSize)
	if _, err := io.ReadFull(e.random, nonce); err != nil {
		return nil, fmt.Errorf("generate nonce: %w", err)
	}
	return nonce, nil
}
