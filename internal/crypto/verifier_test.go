// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/sha256"
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerify_ScryptRoundTrip(t *testing.T) {
	stored, err := fastDerivation().DeriveVerifier("my unlock phrase")
	require.NoError(t, err)

	v := ParseVerifier(stored)
	require.IsType(t, ScryptVerifier{}, v)
	assert.False(t, v.NeedsUpgrade())

	assert.True(t, Verify(v, "my unlock phrase"))
	assert.False(t, Verify(v, "my unlock phrase "))
	assert.False(t, Verify(v, "My unlock phrase"))
	assert.False(t, Verify(v, ""))
}

func TestVerify_LegacyDigest(t *testing.T) {
	sum := sha256.Sum256([]byte("old phrase"))
	stored := base64.StdEncoding.EncodeToString(sum[:])

	v := ParseVerifier(stored)
	require.IsType(t, LegacyVerifier{}, v)
	assert.True(t, v.NeedsUpgrade())

	assert.True(t, VerifyStored(stored, "old phrase"))
	assert.False(t, VerifyStored(stored, "other phrase"))
}

func TestVerify_LegacyRaw(t *testing.T) {
	assert.True(t, VerifyStored("plain stored phrase", "plain stored phrase"))
	assert.False(t, VerifyStored("plain stored phrase", "plain stored"))
	assert.False(t, VerifyStored("", ""))
	assert.False(t, VerifyStored("value", ""))
}

func TestVerify_LegacyStillValidAfterFormatChange(t *testing.T) {
	d := fastDerivation()
	legacy := d.HashDigest("family phrase")
	current, err := d.DeriveVerifier("family phrase")
	require.NoError(t, err)

	assert.True(t, VerifyStored(legacy, "family phrase"))
	assert.True(t, VerifyStored(current, "family phrase"))
}

func TestParseVerifier_MalformedFallsThrough(t *testing.T) {
	cases := []string{
		"scrypt$32768$8$1$zz$00",
		"scrypt$32768$8$1$0011",
		"scrypt$abc$8$1$0011$00112233445566778899aabbccddeeff",
		"scrypt$1000$8$1$0011$00112233445566778899aabbccddeeff",
		"scrypt$2097152$8$1$0011$00112233445566778899aabbccddeeff",
		"scrypt$32768$0$1$0011$00112233445566778899aabbccddeeff",
		"scrypt$32768$8$1$0011$0011",
		"bcrypt$32768$8$1$0011$00112233445566778899aabbccddeeff",
		"",
	}

	for _, stored := range cases {
		v := ParseVerifier(stored)
		assert.IsType(t, LegacyVerifier{}, v, "stored %q", stored)
		assert.NotPanics(t, func() { Verify(v, "anything") })
		assert.False(t, Verify(v, "anything"))
	}
}

func TestScryptVerifier_StringRoundTrip(t *testing.T) {
	v := ScryptVerifier{N: 1 << 14, R: 8, P: 1, Salt: []byte{1, 2, 3}, Key: make([]byte, 32)}

	parsed := ParseVerifier(v.String())
	require.IsType(t, ScryptVerifier{}, parsed)
	assert.Equal(t, v, parsed)
	assert.True(t, parsed.NeedsUpgrade(), "N below current parameters")
}

func TestDecoyVerifier_NeverMatches(t *testing.T) {
	assert.False(t, Verify(DecoyVerifier(), "guess"))
	assert.False(t, Verify(DecoyVerifier(), ""))
}

func TestVerifyAtCurrentCost_PadsCheapVerifiers(t *testing.T) {
	var decoys int
	saved := decoyWork
	decoyWork = func(string) { decoys++ }
	t.Cleanup(func() { decoyWork = saved })

	current, err := fastDerivation().DeriveVerifier("phrase")
	require.NoError(t, err)
	digest := fastDerivation().HashDigest("phrase")
	weak := ScryptVerifier{N: 1 << 10, R: 8, P: 1, Salt: []byte{1, 2, 3}, Key: make([]byte, 32)}

	tests := []struct {
		name       string
		verifier   Verifier
		phrase     string
		wantMatch  bool
		wantDecoys int
	}{
		{name: "legacy digest, wrong phrase", verifier: ParseVerifier(digest), phrase: "guess", wantDecoys: 1},
		{name: "legacy digest, right phrase", verifier: ParseVerifier(digest), phrase: "phrase", wantMatch: true, wantDecoys: 1},
		{name: "legacy raw, wrong phrase", verifier: ParseVerifier("plain phrase"), phrase: "guess", wantDecoys: 1},
		{name: "weak scrypt", verifier: weak, phrase: "guess", wantDecoys: 1},
		{name: "current scrypt", verifier: ParseVerifier(current), phrase: "guess"},
		{name: "current scrypt, right phrase", verifier: ParseVerifier(current), phrase: "phrase", wantMatch: true},
		{name: "unknown account", verifier: DecoyVerifier(), phrase: "guess"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decoys = 0
			assert.Equal(t, tt.wantMatch, VerifyAtCurrentCost(tt.verifier, tt.phrase))
			assert.Equal(t, tt.wantDecoys, decoys)
		})
	}
}
