package crypto

//go:generate mockgen -source=interfaces.go -destination=../mock/crypto_mock.go -package=mock

// KeyDerivation turns low-entropy secrets into keys and verifiers.
// Implementations are stateless and safe for concurrent use.
//
// Flow:
//
//	salt     = GenerateSalt()                         (registration / phrase setup)
//	key      = DeriveKey(secret, salt, extractable)   (login / unlock, client only)
//	verifier = DeriveVerifier(phrase)                 (phrase setup, stored by the server)
type KeyDerivation interface {
	// DeriveKey runs PBKDF2-SHA256 over secret and the base64 salt and
	// returns a 256-bit AEAD key. It never fails on a wrong secret; a wrong
	// secret is detected later when an unwrap fails. A salt that does not
	// decode returns ErrConfiguration.
	DeriveKey(secret, salt string, extractable bool) (*Key, error)

	// DeriveVerifier returns a scrypt verifier string with a fresh salt and
	// the full parameter set embedded.
	DeriveVerifier(secret string) (string, error)

	// DeriveAuthHash derives the login credential sent to the server. It is
	// domain-separated from DeriveKey so the server never sees material
	// that could unwrap anything.
	DeriveAuthHash(secret, salt string) (string, error)

	// GenerateSalt returns 256 random bits, base64 encoded.
	GenerateSalt() (string, error)

	// HashDigest returns base64(SHA-256(secret)). Used for the legacy
	// verifier path only.
	HashDigest(secret string) string
}

// EnvelopeCipher performs per-file envelope encryption.
type EnvelopeCipher interface {
	// EncryptFile encrypts plaintext under a fresh content key and wraps
	// that key under ownerKey and, when non-nil, emergencyKey. The content
	// key itself is never returned.
	EncryptFile(plaintext []byte, ownerKey, emergencyKey *Key) (*EncryptedFile, error)

	// DecryptFile unwraps the content key from wrapped with userKey and
	// decrypts the body. Any failure returns ErrDecryptionFailed and no
	// plaintext.
	DecryptFile(file *EncryptedFile, wrapped WrappedKey, userKey *Key) ([]byte, error)

	// RewrapKey unwraps the content key with oldKey and wraps it under
	// newKey with a fresh nonce. The file body is not involved.
	RewrapKey(old WrappedKey, oldKey, newKey *Key) (WrappedKey, error)

	// WrapKey encrypts an extractable key under wrappingKey and returns the
	// "<b64 ciphertext>:<b64 nonce>" record.
	WrapKey(key, wrappingKey *Key) (string, error)

	// UnwrapKey reverses WrapKey.
	UnwrapKey(record string, wrappingKey *Key, extractable bool) (*Key, error)
}
