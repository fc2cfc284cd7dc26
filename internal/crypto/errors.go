package crypto

import "errors"

var (
	// ErrConfiguration is returned for malformed derivation input such as a
	// salt that does not decode. Not retryable without fixing the input.
	ErrConfiguration = errors.New("invalid key derivation parameters")

	// ErrDecryptionFailed is the single opaque error for every failed unwrap
	// or body decryption. Wrong key, wrong nonce and corrupted ciphertext are
	// deliberately indistinguishable.
	ErrDecryptionFailed = errors.New("decryption failed")

	// ErrVerificationFailed is returned by callers when a phrase does not
	// match the stored verifier, or when no verifier exists at all.
	ErrVerificationFailed = errors.New("verification failed")

	// ErrKeyNotExtractable is returned by Key.Export for keys derived with
	// extractable=false.
	ErrKeyNotExtractable = errors.New("key is not extractable")

	// ErrKeyUnavailable is returned when a destroyed key is used.
	ErrKeyUnavailable = errors.New("key is destroyed")

	// ErrSessionLocked is returned when the session holds no key of the
	// requested kind.
	ErrSessionLocked = errors.New("key session is locked")

	// ErrSessionExpired is returned when the session idle deadline passed.
	// The session is cleared before the error is returned.
	ErrSessionExpired = errors.New("key session expired")
)
