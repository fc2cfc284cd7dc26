package adapter

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"github.com/MKhiriev/legacy-shield/internal/app"
	"github.com/MKhiriev/legacy-shield/internal/config"
	"github.com/MKhiriev/legacy-shield/internal/logger"
	"github.com/MKhiriev/legacy-shield/internal/utils"
	"github.com/MKhiriev/legacy-shield/models"
	"github.com/go-resty/resty/v2"
)

type httpServerAdapter struct {
	client *utils.HTTPClient

	mu    sync.RWMutex
	token string

	logger *logger.Logger
}

// NewHTTPServerAdapter constructs an HTTP/REST implementation of [ServerAdapter].
// It normalises and validates the base URL from adapterCfg.HTTPAddress and
// configures the underlying HTTP client with the resolved base URL and request
// timeout.
//
// Returns an error if adapterCfg.HTTPAddress is empty or cannot be parsed as a
// valid URL.
func NewHTTPServerAdapter(adapterCfg config.ClientAdapter, logger *logger.Logger) (ServerAdapter, error) {
	baseURL, err := normalizeBaseURL(adapterCfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	return &httpServerAdapter{
		client: utils.NewHTTPClient(baseURL, adapterCfg.RequestTimeout),
		logger: logger,
	}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// SetToken implements [ServerAdapter]. The token is whitespace-trimmed.
func (h *httpServerAdapter) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

// Token implements [ServerAdapter].
func (h *httpServerAdapter) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

// Register implements [ServerAdapter]. POST /api/auth/register; the owner
// token comes back in the Authorization header.
func (h *httpServerAdapter) Register(ctx context.Context, user models.User) error {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(user).
		Post("/api/auth/register")
	if err != nil {
		return fmt.Errorf("register request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return err
	}

	return h.storeBearer(resp)
}

// RequestParams implements [ServerAdapter]. GET /api/auth/params?login=.
func (h *httpServerAdapter) RequestParams(ctx context.Context, login string) (models.AuthParams, error) {
	var params models.AuthParams

	resp, err := h.client.R().
		SetContext(ctx).
		SetQueryParam("login", login).
		SetResult(&params).
		Get("/api/auth/params")
	if err != nil {
		return models.AuthParams{}, fmt.Errorf("params request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.AuthParams{}, err
	}

	return params, nil
}

// Login implements [ServerAdapter]. POST /api/auth/login; the owner token
// comes back in the Authorization header.
func (h *httpServerAdapter) Login(ctx context.Context, user models.User) error {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(models.User{Login: user.Login, AuthHash: user.AuthHash}).
		Post("/api/auth/login")
	if err != nil {
		return fmt.Errorf("login request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return err
	}

	return h.storeBearer(resp)
}

// GetEmergencyAccess implements [ServerAdapter]. GET /api/emergency.
func (h *httpServerAdapter) GetEmergencyAccess(ctx context.Context) (models.EmergencyAccess, error) {
	var access models.EmergencyAccess

	resp, err := h.authedRequest(ctx).SetResult(&access).Get("/api/emergency")
	if err != nil {
		return models.EmergencyAccess{}, fmt.Errorf("get emergency access request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.EmergencyAccess{}, err
	}

	return access, nil
}

// SetEmergencyAccess implements [ServerAdapter]. PUT /api/emergency under
// the rotation lease.
func (h *httpServerAdapter) SetEmergencyAccess(ctx context.Context, leaseID string, access models.EmergencyAccess) error {
	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetHeader(app.RotationLeaseHeader, leaseID).
		SetBody(access).
		Put("/api/emergency")
	if err != nil {
		return fmt.Errorf("set emergency access request: %w", err)
	}

	return mapHTTPError(resp)
}

// AcquireRotationLease implements [ServerAdapter]. POST
// /api/emergency/rotation/lease. Calling it again with the same id renews
// the lease.
func (h *httpServerAdapter) AcquireRotationLease(ctx context.Context, leaseID string) (models.RotationLease, error) {
	var lease models.RotationLease

	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(models.RotationLease{LeaseID: leaseID}).
		SetResult(&lease).
		Post("/api/emergency/rotation/lease")
	if err != nil {
		return models.RotationLease{}, fmt.Errorf("acquire lease request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.RotationLease{}, err
	}

	return lease, nil
}

// ReleaseRotationLease implements [ServerAdapter]. DELETE
// /api/emergency/rotation/lease.
func (h *httpServerAdapter) ReleaseRotationLease(ctx context.Context, leaseID string) error {
	resp, err := h.authedRequest(ctx).
		SetHeader(app.RotationLeaseHeader, leaseID).
		Delete("/api/emergency/rotation/lease")
	if err != nil {
		return fmt.Errorf("release lease request: %w", err)
	}

	return mapHTTPError(resp)
}

// Unlock implements [ServerAdapter]. POST /api/emergency/unlock.
func (h *httpServerAdapter) Unlock(ctx context.Context, req models.UnlockRequest) (models.UnlockGrant, error) {
	var grant models.UnlockGrant

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		SetResult(&grant).
		Post("/api/emergency/unlock")
	if err != nil {
		return models.UnlockGrant{}, fmt.Errorf("unlock request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.UnlockGrant{}, err
	}

	return grant, nil
}

// UploadFile implements [ServerAdapter]. POST /api/files.
func (h *httpServerAdapter) UploadFile(ctx context.Context, upload models.FileUpload) (models.File, error) {
	var saved models.File

	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(upload).
		SetResult(&saved).
		Post("/api/files")
	if err != nil {
		return models.File{}, fmt.Errorf("upload request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.File{}, err
	}

	return saved, nil
}

// ListFiles implements [ServerAdapter]. GET /api/files?cursor=&limit=.
func (h *httpServerAdapter) ListFiles(ctx context.Context, cursor string, limit int) (models.FilePage, error) {
	var page models.FilePage

	req := h.authedRequest(ctx).SetResult(&page)
	if cursor != "" {
		req.SetQueryParam("cursor", cursor)
	}
	if limit > 0 {
		req.SetQueryParam("limit", strconv.Itoa(limit))
	}

	resp, err := req.Get("/api/files")
	if err != nil {
		return models.FilePage{}, fmt.Errorf("list files request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.FilePage{}, err
	}

	return page, nil
}

// GetFile implements [ServerAdapter]. GET /api/files/{id}.
func (h *httpServerAdapter) GetFile(ctx context.Context, fileID string) (models.File, error) {
	var file models.File

	resp, err := h.authedRequest(ctx).
		SetPathParam("id", fileID).
		SetResult(&file).
		Get("/api/files/{id}")
	if err != nil {
		return models.File{}, fmt.Errorf("get file request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.File{}, err
	}

	return file, nil
}

// DownloadBlob implements [ServerAdapter]. GET /api/files/{id}/blob returns
// the raw ciphertext.
func (h *httpServerAdapter) DownloadBlob(ctx context.Context, fileID string) ([]byte, error) {
	resp, err := h.authedRequest(ctx).
		SetPathParam("id", fileID).
		SetHeader("Accept", "application/octet-stream").
		Get("/api/files/{id}/blob")
	if err != nil {
		return nil, fmt.Errorf("download blob request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	return resp.Body(), nil
}

// DeleteFile implements [ServerAdapter]. DELETE /api/files/{id}.
func (h *httpServerAdapter) DeleteFile(ctx context.Context, fileID string) error {
	resp, err := h.authedRequest(ctx).
		SetPathParam("id", fileID).
		Delete("/api/files/{id}")
	if err != nil {
		return fmt.Errorf("delete file request: %w", err)
	}

	return mapHTTPError(resp)
}

// UpdateEmergencyWrap implements [ServerAdapter]. PUT
// /api/files/{id}/emergency-key under the rotation lease.
func (h *httpServerAdapter) UpdateEmergencyWrap(ctx context.Context, leaseID string, update models.EmergencyWrapUpdate) error {
	resp, err := h.authedRequest(ctx).
		SetPathParam("id", update.FileID).
		SetHeader("Content-Type", "application/json").
		SetHeader(app.RotationLeaseHeader, leaseID).
		SetBody(update).
		Put("/api/files/{id}/emergency-key")
	if err != nil {
		return fmt.Errorf("update emergency wrap request: %w", err)
	}

	return mapHTTPError(resp)
}

// GetServerVersion implements [ServerAdapter]. GET /api/version/.
func (h *httpServerAdapter) GetServerVersion(ctx context.Context) (string, error) {
	resp, err := h.client.R().SetContext(ctx).Get("/api/version/")
	if err != nil {
		return "", fmt.Errorf("version request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}

	return strings.TrimSpace(resp.String()), nil
}

func (h *httpServerAdapter) storeBearer(resp *resty.Response) error {
	token, err := utils.ParseBearerToken(resp.Header().Get("Authorization"))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrNoToken, err)
	}

	h.SetToken(token)
	return nil
}

func (h *httpServerAdapter) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}
	return req
}
