package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/MKhiriev/legacy-shield/internal/app"
	"github.com/MKhiriev/legacy-shield/internal/crypto"
	"github.com/MKhiriev/legacy-shield/internal/logger"
	"github.com/MKhiriev/legacy-shield/internal/service"
	"github.com/MKhiriev/legacy-shield/internal/utils"
	"github.com/MKhiriev/legacy-shield/models"
)

func (h *Handler) getEmergencyAccess(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		writeError(w, r, service.ErrTokenIsExpiredOrInvalid, "no user id in context")
		return
	}

	access, err := h.services.EmergencyService.GetEmergencyAccess(ctx, userID)
	if err != nil {
		writeError(w, r, err, "getting emergency access failed")
		return
	}

	utils.WriteJSON(w, access, http.StatusOK)
}

// setEmergencyAccess commits a new verifier, salt and wrapped emergency key
// under the lease named by the X-Rotation-Lease header.
func (h *Handler) setEmergencyAccess(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var access models.EmergencyAccess
	if err := json.NewDecoder(r.Body).Decode(&access); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, app.MsgInvalidDataProvided, http.StatusBadRequest)
		return
	}

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		writeError(w, r, service.ErrTokenIsExpiredOrInvalid, "no user id in context")
		return
	}
	access.UserID = userID
	access.LeaseID = r.Header.Get(app.RotationLeaseHeader)

	if err := h.services.EmergencyService.SetEmergencyAccess(ctx, access); err != nil {
		writeError(w, r, err, "committing emergency access failed")
		return
	}

	log.Info().Msg("emergency access committed")
	w.WriteHeader(http.StatusNoContent)
}

// unlock verifies an emergency phrase. Every verification failure, whether
// the login exists or not, gets the same 401 body.
func (h *Handler) unlock(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.UnlockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, app.MsgInvalidDataProvided, http.StatusBadRequest)
		return
	}

	grant, err := h.services.EmergencyService.Unlock(ctx, req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidDataProvided) || errors.Is(err, crypto.ErrVerificationFailed) {
			log.Warn().Msg("emergency unlock failed")
			http.Error(w, app.MsgUnlockFailed, http.StatusUnauthorized)
			return
		}
		writeError(w, r, err, "emergency unlock errored")
		return
	}

	log.Info().Time("expires_at", grant.ExpiresAt).Msg("emergency unlock granted")
	utils.WriteJSON(w, grant, http.StatusOK)
}

func (h *Handler) acquireRotationLease(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.RotationLease
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, app.MsgInvalidDataProvided, http.StatusBadRequest)
		return
	}

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		writeError(w, r, service.ErrTokenIsExpiredOrInvalid, "no user id in context")
		return
	}

	lease, err := h.services.EmergencyService.AcquireRotationLease(ctx, userID, req.LeaseID)
	if err != nil {
		writeError(w, r, err, "acquiring rotation lease failed")
		return
	}

	utils.WriteJSON(w, lease, http.StatusOK)
}

func (h *Handler) releaseRotationLease(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		writeError(w, r, service.ErrTokenIsExpiredOrInvalid, "no user id in context")
		return
	}

	if err := h.services.EmergencyService.ReleaseRotationLease(ctx, userID, r.Header.Get(app.RotationLeaseHeader)); err != nil {
		writeError(w, r, err, "releasing rotation lease failed")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
