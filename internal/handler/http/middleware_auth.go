package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/MKhiriev/legacy-shield/internal/app"
	"github.com/MKhiriev/legacy-shield/internal/logger"
	"github.com/MKhiriev/legacy-shield/internal/service"
	"github.com/MKhiriev/legacy-shield/internal/utils"
)

// Authorization header parse errors.
var (
	ErrEmptyAuthorizationHeader   = errors.New("empty `Authorization` header")
	ErrInvalidAuthorizationHeader = errors.New("invalid `Authorization` header")
	ErrEmptyToken                 = errors.New("empty token in `Authorization` header")
)

// auth is an HTTP middleware that enforces JWT-based authentication.
//
// It extracts the bearer token from the "Authorization" header, validates
// it via [service.AuthService.ParseToken] and stores the user id and the
// credential scope in the request context under [utils.UserIDCtxKey] and
// [utils.ScopeCtxKey].
//
// Requests are rejected with 401 when the header is absent or malformed,
// or when the token is expired, foreign or otherwise invalid.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			log.Warn().Err(ErrEmptyAuthorizationHeader).Send()
			http.Error(w, app.MsgTokenIsExpiredOrInvalid, http.StatusUnauthorized)
			return
		}

		tokenString, err := getTokenFromAuthHeader(authHeader)
		if err != nil {
			log.Warn().Err(err).Send()
			http.Error(w, app.MsgTokenIsExpiredOrInvalid, http.StatusUnauthorized)
			return
		}

		ctx := r.Context()
		token, err := h.services.AuthService.ParseToken(ctx, tokenString)
		if err != nil {
			writeError(w, r, err, "error occurred during parsing token")
			return
		}

		ctx = utils.WithCredential(ctx, token.UserID, token.Scope)

		l := log.WithUser(token.UserID)
		ctx = l.WithContext(ctx)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// withWriteScope rejects every non-GET request made with a read-only
// credential. Must run after auth.
func (h *Handler) withWriteScope(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet || r.Method == http.MethodHead {
			next.ServeHTTP(w, r)
			return
		}

		scope, ok := utils.GetScopeFromContext(r.Context())
		if !ok || scope.ReadOnly() {
			writeError(w, r, service.ErrReadOnlyCredential, "write attempted with read-only credential")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withOwnerScope admits owner credentials only, whatever the method.
func (h *Handler) withOwnerScope(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		scope, ok := utils.GetScopeFromContext(r.Context())
		if !ok || scope.ReadOnly() {
			writeError(w, r, service.ErrReadOnlyCredential, "owner route called with read-only credential")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// getTokenFromAuthHeader extracts the token from "<scheme> <token>".
//
// It returns [ErrInvalidAuthorizationHeader] when the header has no space
// separated second part and [ErrEmptyToken] when that part is empty.
func getTokenFromAuthHeader(authHeader string) (string, error) {
	parts := strings.Split(authHeader, " ")
	if len(parts) < 2 {
		return "", ErrInvalidAuthorizationHeader
	}

	tokenString := parts[1]
	if tokenString == "" {
		return "", ErrEmptyToken
	}

	return tokenString, nil
}
