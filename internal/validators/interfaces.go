// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks the shape of client-produced envelope material
// before it reaches storage.
//
// The server cannot decrypt anything it stores, so validation is limited to
// what is observable from the outside: identifiers, base64 encodings, nonce,
// tag and wrap lengths, and the pairing of optional fields. A file that
// passes validation may still fail to decrypt; that is the client's problem
// to detect.
package validators

import "context"

// Validator validates a value, optionally restricted to the named fields.
type Validator interface {
	Validate(context.Context, any, ...string) error
}
