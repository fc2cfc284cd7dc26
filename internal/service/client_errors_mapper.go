// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"errors"
	"strings"

	"github.com/MKhiriev/legacy-shield/internal/adapter"
	"github.com/MKhiriev/legacy-shield/internal/app"
	"github.com/MKhiriev/legacy-shield/internal/crypto"
	"github.com/MKhiriev/legacy-shield/internal/store"
)

// mapAdapterError translates the adapter's transport error into a service business error
func mapAdapterError(err error) error {
	if err == nil {
		return nil
	}

	msg := extractBody(err)

	switch {
	case errors.Is(err, adapter.ErrBadRequest):
		return ErrInvalidDataProvided

	case errors.Is(err, adapter.ErrUnauthorized):
		switch msg {
		case app.MsgInvalidLoginPassword:
			return ErrWrongPassword
		case app.MsgUnlockFailed:
			return crypto.ErrVerificationFailed
		case app.MsgTokenIsExpiredOrInvalid:
			return ErrTokenIsExpiredOrInvalid
		}

	case errors.Is(err, adapter.ErrForbidden):
		if msg == app.MsgReadOnlyCredential {
			return ErrReadOnlyCredential
		}

	case errors.Is(err, adapter.ErrNotFound):
		switch msg {
		case app.MsgFileNotFound:
			return store.ErrFileNotFound
		case app.MsgUserNotFound:
			return store.ErrUserNotFound
		case app.MsgEmergencyNotConfigured:
			return ErrEmergencyNotConfigured
		}

	case errors.Is(err, adapter.ErrConflict):
		switch msg {
		case app.MsgLoginAlreadyExists:
			return store.ErrLoginAlreadyExists
		case app.MsgFileAlreadyExists:
			return store.ErrFileAlreadyExists
		case app.MsgRotationInProgress:
			return ErrRotationInProgress
		case app.MsgLeaseNotHeld:
			return store.ErrLeaseNotHeld
		}

	case errors.Is(err, adapter.ErrTooManyRequests):
		return ErrTooManyRequests
	}

	return err
}

// extractBody extracts the body from a message of the form "bad request: <body>"
func extractBody(err error) string {
	msg := err.Error()
	if idx := strings.Index(msg, ": "); idx != -1 {
		return msg[idx+2:]
	}
	return msg
}
