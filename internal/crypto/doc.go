// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package crypto implements the zero-knowledge key protocol of the vault:
// password and phrase based key derivation, per-file envelope encryption,
// emergency phrase verifiers and the in-memory key session.
//
// Key hierarchy:
//
//	MasterKey    = PBKDF2-SHA256(password, masterSalt)       (owner, client only)
//	EmergencyKey = PBKDF2-SHA256(phrase, emergencySalt)      (owner and contact, client only)
//	C            = random 256-bit content key, one per file
//	ownerWrap    = AES-GCM(MasterKey, C)
//	emergWrap    = AES-GCM(EmergencyKey, C)
//	record       = AES-GCM(MasterKey, EmergencyKey)          (persisted as "<b64 ct>:<b64 nonce>")
//	verifier     = scrypt$N$r$p$saltHex$keyHex               (server only)
//
// Raw key bytes live in memguard enclaves and are opened only for the
// duration of a single AEAD call.
package crypto
