// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains constants shared by the LegacyShield server handlers
// and the client adapter.
//
// Msg* constants are the exact response bodies written for each failure.
// The client maps them back to service errors, so the wording is part of
// the wire contract and must not change casually.
package app

// RotationLeaseHeader carries the rotation lease id on every write that
// must be made under the lease.
const RotationLeaseHeader = "X-Rotation-Lease"

const (
	// MsgInvalidDataProvided is returned when the request body cannot be
	// decoded or fails validation.
	MsgInvalidDataProvided = "invalid data provided"

	// MsgInvalidLoginPassword is returned for an unknown login or a wrong
	// auth hash. The two cases are not distinguished.
	MsgInvalidLoginPassword = "invalid login/password"

	// MsgUnlockFailed is the single answer to a failed emergency unlock,
	// whether or not the account exists.
	MsgUnlockFailed = "unlock failed"

	// MsgInternalServerError is returned when an unexpected server-side
	// failure occurs that the client cannot resolve.
	MsgInternalServerError = "internal server error"

	// MsgTokenIsExpiredOrInvalid is returned when a bearer token is expired
	// or cannot be verified.
	MsgTokenIsExpiredOrInvalid = "token is expired or invalid"

	// MsgReadOnlyCredential is returned when an emergency credential is
	// used on a route that writes.
	MsgReadOnlyCredential = "credential is read-only"

	// MsgTooManyRequests is returned when the unlock limiter rejects a
	// caller.
	MsgTooManyRequests = "too many requests"

	// MsgLoginAlreadyExists is returned when a registration attempt is
	// rejected because the login is already in use.
	MsgLoginAlreadyExists = "login already exists"

	// MsgUserNotFound is returned when an authenticated user no longer
	// exists.
	MsgUserNotFound = "user not found"

	// MsgFileNotFound is returned when a file does not exist for the
	// current user.
	MsgFileNotFound = "file not found"

	// MsgFileAlreadyExists is returned when an upload reuses a file id.
	MsgFileAlreadyExists = "file already exists"

	// MsgEmergencyNotConfigured is returned when the owner never set an
	// unlock phrase.
	MsgEmergencyNotConfigured = "emergency access is not configured"

	// MsgRotationInProgress is returned when another device holds the
	// rotation lease.
	MsgRotationInProgress = "another key rotation is in progress"

	// MsgLeaseNotHeld is returned when a lease-guarded write arrives
	// without a live lease.
	MsgLeaseNotHeld = "rotation lease is not held"
)
