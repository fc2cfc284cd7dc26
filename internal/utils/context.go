// Package utils holds small helpers shared by the server and the CLI:
// request context keys, JWT issuing and parsing, auth hash keying, JSON
// responses and id checks.
package utils

import (
	"context"

	"github.com/MKhiriev/legacy-shield/models"
)

type contextKey string

func (c contextKey) String() string {
	return string(c)
}

var (
	// UserIDCtxKey holds the int64 id of the authenticated user.
	UserIDCtxKey = contextKey("userID")
	// ScopeCtxKey holds the [models.TokenScope] of the request credential.
	ScopeCtxKey = contextKey("scope")
)

// WithCredential stores the authenticated user and the credential scope.
func WithCredential(ctx context.Context, userID int64, scope models.TokenScope) context.Context {
	ctx = context.WithValue(ctx, UserIDCtxKey, userID)
	return context.WithValue(ctx, ScopeCtxKey, scope)
}

// GetUserIDFromContext returns the authenticated user id, or ok == false
// when the request was not authenticated.
func GetUserIDFromContext(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(UserIDCtxKey).(int64)
	return userID, ok
}

// GetScopeFromContext returns the credential scope. A missing scope must be
// treated as unauthenticated.
func GetScopeFromContext(ctx context.Context) (models.TokenScope, bool) {
	scope, ok := ctx.Value(ScopeCtxKey).(models.TokenScope)
	return scope, ok
}
