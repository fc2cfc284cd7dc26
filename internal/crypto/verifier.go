// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"strconv"
	"strings"

	"golang.org/x/crypto/scrypt"
)

const (
	scryptTag      = "scrypt"
	verifierFields = 6

	// Upper bounds applied when parsing stored verifiers, so a tampered row
	// cannot make the server allocate arbitrary memory.
	maxScryptN      = 1 << 20
	maxScryptRP     = 1 << 30
	minScryptKeyLen = 16
	maxScryptKeyLen = 64
)

// Verifier is a parsed emergency verifier. It is either a [ScryptVerifier]
// or a [LegacyVerifier]; the set is closed.
type Verifier interface {
	// NeedsUpgrade reports whether the record should be replaced with a
	// verifier derived at the current parameters.
	NeedsUpgrade() bool

	verifier()
}

// ScryptVerifier is the current verifier format:
// scrypt$N$r$p$saltHex$keyHex.
type ScryptVerifier struct {
	N, R, P int
	Salt    []byte
	Key     []byte
}

// LegacyVerifier is any stored value that does not parse as a
// ScryptVerifier: a base64 SHA-256 digest of the phrase or, for old
// records, the raw phrase.
type LegacyVerifier struct {
	Value string
}

func (ScryptVerifier) verifier() {}
func (LegacyVerifier) verifier() {}

// String encodes the verifier in its stored form.
func (v ScryptVerifier) String() string {
	return strings.Join([]string{
		scryptTag,
		strconv.Itoa(v.N),
		strconv.Itoa(v.R),
		strconv.Itoa(v.P),
		hex.EncodeToString(v.Salt),
		hex.EncodeToString(v.Key),
	}, "$")
}

// NeedsUpgrade implements [Verifier].
func (v ScryptVerifier) NeedsUpgrade() bool {
	return v.N < ScryptN || v.R < ScryptR || v.P < ScryptP || len(v.Key) < ScryptKeyLen
}

// NeedsUpgrade implements [Verifier]. Legacy records are always upgraded.
func (LegacyVerifier) NeedsUpgrade() bool {
	return true
}

// ParseVerifier parses a stored verifier once. It never fails: anything
// that is not a well-formed scrypt record within parameter bounds is a
// LegacyVerifier.
func ParseVerifier(stored string) Verifier {
	if v, ok := parseScrypt(stored); ok {
		return v
	}
	return LegacyVerifier{Value: stored}
}

// Verify reports whether phrase matches v. Comparisons are constant time
// for equal-length inputs.
func Verify(v Verifier, phrase string) bool {
	switch v := v.(type) {
	case ScryptVerifier:
		return verifyScrypt(v, phrase)
	case LegacyVerifier:
		return verifyLegacy(v, phrase)
	default:
		return false
	}
}

// decoyWork runs one current-parameter verification and drops the result.
var decoyWork = func(phrase string) {
	Verify(DecoyVerifier(), phrase)
}

// VerifyAtCurrentCost is Verify for request paths. A verifier cheaper than
// a current scrypt record is followed by one decoy verification, so no
// answer comes back faster than the one for an account that does not exist.
func VerifyAtCurrentCost(v Verifier, phrase string) bool {
	matched := Verify(v, phrase)
	if v.NeedsUpgrade() {
		decoyWork(phrase)
	}
	return matched
}

// VerifyStored parses stored and verifies phrase against it.
func VerifyStored(stored, phrase string) bool {
	return Verify(ParseVerifier(stored), phrase)
}

// DecoyVerifier returns a current-parameter verifier that matches no phrase
// in practice. Verifying against it costs the same as a real verification.
func DecoyVerifier() Verifier {
	return ScryptVerifier{
		N:    ScryptN,
		R:    ScryptR,
		P:    ScryptP,
		Salt: make([]byte, SaltSize),
		Key:  make([]byte, ScryptKeyLen),
	}
}

func parseScrypt(stored string) (ScryptVerifier, bool) {
	parts := strings.Split(stored, "$")
	if len(parts) != verifierFields || parts[0] != scryptTag {
		return ScryptVerifier{}, false
	}

	n, errN := strconv.Atoi(parts[1])
	r, errR := strconv.Atoi(parts[2])
	p, errP := strconv.Atoi(parts[3])
	if errN != nil || errR != nil || errP != nil {
		return ScryptVerifier{}, false
	}
	if n <= 1 || n > maxScryptN || n&(n-1) != 0 || r <= 0 || p <= 0 || r*p >= maxScryptRP {
		return ScryptVerifier{}, false
	}

	salt, err := hex.DecodeString(parts[4])
	if err != nil || len(salt) == 0 {
		return ScryptVerifier{}, false
	}
	key, err := hex.DecodeString(parts[5])
	if err != nil || len(key) < minScryptKeyLen || len(key) > maxScryptKeyLen {
		return ScryptVerifier{}, false
	}

	return ScryptVerifier{N: n, R: r, P: p, Salt: salt, Key: key}, true
}

func verifyScrypt(v ScryptVerifier, phrase string) bool {
	derived, err := scrypt.Key([]byte(phrase), v.Salt, v.N, v.R, v.P, len(v.Key))
	if err != nil || len(derived) != len(v.Key) {
		return false
	}
	return subtle.ConstantTimeCompare(derived, v.Key) == 1
}

// verifyLegacy accepts either a digest match or a raw match. Both branches
// always run. The raw branch compares SHA-256 sums so the comparison length
// does not depend on the stored value.
func verifyLegacy(v LegacyVerifier, phrase string) bool {
	if v.Value == "" || phrase == "" {
		return false
	}

	digest := subtle.ConstantTimeCompare([]byte(hashDigest(phrase)), []byte(v.Value))

	suppliedSum := sha256.Sum256([]byte(phrase))
	storedSum := sha256.Sum256([]byte(v.Value))
	raw := subtle.ConstantTimeCompare(suppliedSum[:], storedSum[:])

	return digest|raw == 1
}
