package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/MKhiriev/legacy-shield/internal/app"
	"github.com/MKhiriev/legacy-shield/internal/logger"
	"github.com/MKhiriev/legacy-shield/internal/service"
	"github.com/MKhiriev/legacy-shield/internal/utils"
	"github.com/MKhiriev/legacy-shield/models"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) uploadFile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var upload models.FileUpload
	if err := json.NewDecoder(r.Body).Decode(&upload); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, app.MsgInvalidDataProvided, http.StatusBadRequest)
		return
	}

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		writeError(w, r, service.ErrTokenIsExpiredOrInvalid, "no user id in context")
		return
	}
	upload.UserID = userID

	saved, err := h.services.FileService.Upload(ctx, upload)
	if err != nil {
		writeError(w, r, err, "file upload failed")
		return
	}

	log.Info().Str("file_id", saved.FileID).Int64("size", saved.Size).Msg("file uploaded")
	utils.WriteJSON(w, saved, http.StatusCreated)
}

func (h *Handler) listFiles(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		writeError(w, r, service.ErrTokenIsExpiredOrInvalid, "no user id in context")
		return
	}

	req := models.PageRequest{
		UserID: userID,
		Cursor: r.URL.Query().Get("cursor"),
	}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, r, service.ErrInvalidDataProvided, "invalid limit")
			return
		}
		req.Limit = limit
	}

	page, err := h.services.FileService.List(ctx, req)
	if err != nil {
		writeError(w, r, err, "listing files failed")
		return
	}

	utils.WriteJSON(w, page, http.StatusOK)
}

func (h *Handler) getFile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		writeError(w, r, service.ErrTokenIsExpiredOrInvalid, "no user id in context")
		return
	}

	file, err := h.services.FileService.Get(ctx, userID, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err, "getting file failed")
		return
	}

	utils.WriteJSON(w, file, http.StatusOK)
}

func (h *Handler) getFileBlob(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		writeError(w, r, service.ErrTokenIsExpiredOrInvalid, "no user id in context")
		return
	}

	body, err := h.services.FileService.Blob(ctx, userID, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err, "reading file body failed")
		return
	}

	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}

func (h *Handler) deleteFile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		writeError(w, r, service.ErrTokenIsExpiredOrInvalid, "no user id in context")
		return
	}

	fileID := chi.URLParam(r, "id")
	if err := h.services.FileService.Delete(ctx, userID, fileID); err != nil {
		writeError(w, r, err, "deleting file failed")
		return
	}

	logger.FromRequest(r).WithFile(fileID).Info().Msg("file deleted")
	w.WriteHeader(http.StatusNoContent)
}

// updateEmergencyWrap replaces the emergency wrap of one file under the
// rotation lease named by the X-Rotation-Lease header.
func (h *Handler) updateEmergencyWrap(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var update models.EmergencyWrapUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, app.MsgInvalidDataProvided, http.StatusBadRequest)
		return
	}

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		writeError(w, r, service.ErrTokenIsExpiredOrInvalid, "no user id in context")
		return
	}

	update.FileID = chi.URLParam(r, "id")
	update.UserID = userID
	update.LeaseID = r.Header.Get(app.RotationLeaseHeader)

	if err := h.services.FileService.UpdateEmergencyWrap(ctx, update); err != nil {
		writeError(w, r, err, "updating emergency wrap failed")
		return
	}

	log.Debug().Str("file_id", update.FileID).Msg("emergency wrap replaced")
	w.WriteHeader(http.StatusNoContent)
}
