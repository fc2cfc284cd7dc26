package crypto

import (
	"encoding/base64"
	"strings"
)

const recordSeparator = ":"

// EncodeKeyRecord formats a wrapped key as "<b64 ciphertext>:<b64 nonce>".
func EncodeKeyRecord(w WrappedKey) string {
	return base64.StdEncoding.EncodeToString(w.Ciphertext) + recordSeparator +
		base64.StdEncoding.EncodeToString(w.Nonce)
}

// ParseKeyRecord parses a "<b64 ciphertext>:<b64 nonce>" record. A malformed
// record is reported as ErrDecryptionFailed.
func ParseKeyRecord(record string) (WrappedKey, error) {
	ct, nonce, ok := strings.Cut(strings.TrimSpace(record), recordSeparator)
	if !ok || ct == "" || nonce == "" {
		return WrappedKey{}, ErrDecryptionFailed
	}

	ctBytes, err := base64.StdEncoding.DecodeString(ct)
	if err != nil {
		return WrappedKey{}, ErrDecryptionFailed
	}
	nonceBytes, err := base64.StdEncoding.DecodeString(nonce)
	if err != nil || len(nonceBytes) != NonceSize {
		return WrappedKey{}, ErrDecryptionFailed
	}

	return WrappedKey{Ciphertext: ctBytes, Nonce: nonceBytes}, nil
}
