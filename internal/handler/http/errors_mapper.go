package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/legacy-shield/internal/app"
	"github.com/MKhiriev/legacy-shield/internal/crypto"
	"github.com/MKhiriev/legacy-shield/internal/logger"
	"github.com/MKhiriev/legacy-shield/internal/service"
	"github.com/MKhiriev/legacy-shield/internal/store"
)

type errorResponse struct {
	status  int
	message string
}

// errorStatusMap maps service and store sentinels to the status and body
// written to the client. Errors that can wrap each other map to the same
// status so lookup order does not matter.
var errorStatusMap = map[error]errorResponse{
	service.ErrInvalidDataProvided:     {http.StatusBadRequest, app.MsgInvalidDataProvided},
	service.ErrWrongPassword:           {http.StatusUnauthorized, app.MsgInvalidLoginPassword},
	service.ErrTokenIsExpiredOrInvalid: {http.StatusUnauthorized, app.MsgTokenIsExpiredOrInvalid},
	crypto.ErrVerificationFailed:       {http.StatusUnauthorized, app.MsgUnlockFailed},
	service.ErrReadOnlyCredential:      {http.StatusForbidden, app.MsgReadOnlyCredential},
	service.ErrEmergencyNotConfigured:  {http.StatusNotFound, app.MsgEmergencyNotConfigured},
	service.ErrRotationInProgress:      {http.StatusConflict, app.MsgRotationInProgress},
	service.ErrTooManyRequests:         {http.StatusTooManyRequests, app.MsgTooManyRequests},

	store.ErrLoginAlreadyExists: {http.StatusConflict, app.MsgLoginAlreadyExists},
	store.ErrUserNotFound:       {http.StatusNotFound, app.MsgUserNotFound},
	store.ErrFileAlreadyExists:  {http.StatusConflict, app.MsgFileAlreadyExists},
	store.ErrFileNotFound:       {http.StatusNotFound, app.MsgFileNotFound},
	store.ErrBlobNotFound:       {http.StatusNotFound, app.MsgFileNotFound},
	store.ErrLeaseNotHeld:       {http.StatusConflict, app.MsgLeaseNotHeld},
}

func responseFromError(err error) errorResponse {
	for target, resp := range errorStatusMap {
		if errors.Is(err, target) {
			return resp
		}
	}
	return errorResponse{http.StatusInternalServerError, app.MsgInternalServerError}
}

func statusFromError(err error) int {
	return responseFromError(err).status
}

// writeError logs err and writes the mapped status and body. Internal
// errors are logged at error level, client errors at warn.
func writeError(w http.ResponseWriter, r *http.Request, err error, msg string) {
	resp := responseFromError(err)

	log := logger.FromRequest(r)
	if resp.status >= http.StatusInternalServerError {
		log.Err(err).Msg(msg)
	} else {
		log.Warn().Err(err).Int("status", resp.status).Msg(msg)
	}

	http.Error(w, resp.message, resp.status)
}
