// Package http serves the vault's REST API.
//
// Owner routes require a bearer token with the owner scope for every write;
// tokens issued by emergency unlock are read-only and may only list and
// fetch files. The unlock route itself is public and rate limited per
// client IP. Request and response bodies are opaque ciphertext to this
// package: nothing here decrypts or inspects file contents.
package http
