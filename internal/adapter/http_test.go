// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/MKhiriev/legacy-shield/internal/app"
	"github.com/MKhiriev/legacy-shield/internal/config"
	"github.com/MKhiriev/legacy-shield/internal/logger"
	"github.com/MKhiriev/legacy-shield/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testFileID = "0192f0c4-5b7e-7c3a-8e1d-2f4a6b8c9d0e"

func newTestAdapter(t *testing.T, serverURL string) *httpServerAdapter {
	t.Helper()
	a, err := NewHTTPServerAdapter(config.ClientAdapter{HTTPAddress: serverURL, RequestTimeout: 5 * time.Second}, logger.Nop())
	require.NoError(t, err)
	return a.(*httpServerAdapter)
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

// ── constructor ─────────────────────────────────────────────────────────────

func TestNewHTTPServerAdapter_NormalizesAddress(t *testing.T) {
	for _, raw := range []string{"localhost:8080", "http://localhost:8080/", "  http://localhost:8080  "} {
		got, err := normalizeBaseURL(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, "http://localhost:8080", got)
	}

	_, err := NewHTTPServerAdapter(config.ClientAdapter{HTTPAddress: ""}, logger.Nop())
	assert.Error(t, err)
}

func TestSetToken_Trims(t *testing.T) {
	a := newTestAdapter(t, "http://localhost")
	a.SetToken("  abc \n")
	assert.Equal(t, "abc", a.Token())
}

// ── auth ────────────────────────────────────────────────────────────────────

func TestRegister_StoresBearer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/auth/register", r.URL.Path)

		var got models.User
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		assert.Equal(t, "alice", got.Login)
		assert.Equal(t, "salt", got.MasterKeySalt)

		w.Header().Set("Authorization", "Bearer owner-token")
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	require.NoError(t, a.Register(context.Background(), models.User{Login: "alice", AuthHash: "h", MasterKeySalt: "salt"}))
	assert.Equal(t, "owner-token", a.Token())
}

func TestRegister_Conflict(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(app.MsgLoginAlreadyExists))
	}))
	defer srv.Close()

	err := newTestAdapter(t, srv.URL).Register(context.Background(), models.User{Login: "alice"})
	assert.ErrorIs(t, err, ErrConflict)
	assert.ErrorContains(t, err, app.MsgLoginAlreadyExists)
}

func TestLogin_MissingBearer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	err := newTestAdapter(t, srv.URL).Login(context.Background(), models.User{Login: "alice", AuthHash: "h"})
	assert.ErrorIs(t, err, ErrNoToken)
}

func TestLogin_SendsOnlyCredentials(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		assert.NotContains(t, string(raw), "master_key_salt")

		w.Header().Set("Authorization", "Bearer t")
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	require.NoError(t, a.Login(context.Background(), models.User{Login: "alice", AuthHash: "h", MasterKeySalt: "s"}))
	assert.Equal(t, "t", a.Token())
}

func TestRequestParams(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/auth/params", r.URL.Path)
		assert.Equal(t, "alice", r.URL.Query().Get("login"))
		writeJSON(t, w, http.StatusOK, models.AuthParams{Login: "alice", MasterKeySalt: "salt"})
	}))
	defer srv.Close()

	params, err := newTestAdapter(t, srv.URL).RequestParams(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, "salt", params.MasterKeySalt)
}

// ── emergency ───────────────────────────────────────────────────────────────

func TestSetEmergencyAccess_SendsLeaseAndToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/emergency", r.URL.Path)
		assert.Equal(t, "lease-1", r.Header.Get(app.RotationLeaseHeader))
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))

		var got models.EmergencyAccess
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		assert.Equal(t, "v", got.Verifier)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	a.SetToken("tok")
	err := a.SetEmergencyAccess(context.Background(), "lease-1", models.EmergencyAccess{Verifier: "v", EmergencyKeySalt: "s", EncryptedEmergencyKey: "r"})
	require.NoError(t, err)
}

func TestAcquireAndReleaseRotationLease(t *testing.T) {
	until := time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/emergency/rotation/lease", r.URL.Path)
		switch r.Method {
		case http.MethodPost:
			var got models.RotationLease
			require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
			writeJSON(t, w, http.StatusOK, models.RotationLease{LeaseID: got.LeaseID, LeaseUntil: until})
		case http.MethodDelete:
			assert.Equal(t, "lease-1", r.Header.Get(app.RotationLeaseHeader))
			w.WriteHeader(http.StatusNoContent)
		}
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	lease, err := a.AcquireRotationLease(context.Background(), "lease-1")
	require.NoError(t, err)
	assert.Equal(t, "lease-1", lease.LeaseID)
	assert.True(t, lease.LeaseUntil.Equal(until))

	require.NoError(t, a.ReleaseRotationLease(context.Background(), "lease-1"))
}

func TestAcquireRotationLease_Held(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(app.MsgRotationInProgress))
	}))
	defer srv.Close()

	_, err := newTestAdapter(t, srv.URL).AcquireRotationLease(context.Background(), "lease-1")
	assert.ErrorIs(t, err, ErrConflict)
}

func TestUnlock_RateLimited(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"), "unlock is unauthenticated")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(app.MsgTooManyRequests))
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	a.SetToken("stale")
	_, err := a.Unlock(context.Background(), models.UnlockRequest{Login: "alice", Phrase: "p"})
	assert.ErrorIs(t, err, ErrTooManyRequests)
}

func TestUnlock_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/emergency/unlock", r.URL.Path)
		writeJSON(t, w, http.StatusOK, models.UnlockGrant{Token: "ro", EmergencyKeySalt: "s"})
	}))
	defer srv.Close()

	grant, err := newTestAdapter(t, srv.URL).Unlock(context.Background(), models.UnlockRequest{Login: "alice", Phrase: "p"})
	require.NoError(t, err)
	assert.Equal(t, "ro", grant.Token)
}

// ── files ───────────────────────────────────────────────────────────────────

func TestListFiles_Query(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/files", r.URL.Path)
		assert.Equal(t, testFileID, r.URL.Query().Get("cursor"))
		assert.Equal(t, "50", r.URL.Query().Get("limit"))
		writeJSON(t, w, http.StatusOK, models.FilePage{Files: []models.File{{FileID: "x"}}, Total: 1})
	}))
	defer srv.Close()

	page, err := newTestAdapter(t, srv.URL).ListFiles(context.Background(), testFileID, 50)
	require.NoError(t, err)
	assert.Len(t, page.Files, 1)
	assert.Equal(t, 1, page.Total)
}

func TestGetFileAndBlob(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/files/" + testFileID:
			writeJSON(t, w, http.StatusOK, models.File{FileID: testFileID, Name: "a"})
		case "/api/files/" + testFileID + "/blob":
			w.Header().Set("Content-Type", "application/octet-stream")
			_, _ = w.Write([]byte{0x00, 0xff, 0x10})
		default:
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(app.MsgFileNotFound))
		}
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)

	file, err := a.GetFile(context.Background(), testFileID)
	require.NoError(t, err)
	assert.Equal(t, "a", file.Name)

	body, err := a.DownloadBlob(context.Background(), testFileID)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x00, 0xff, 0x10}, body)

	_, err = a.GetFile(context.Background(), "other")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateEmergencyWrap_ReadOnlyCredential(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/files/"+testFileID+"/emergency-key", r.URL.Path)
		assert.Equal(t, "lease-1", r.Header.Get(app.RotationLeaseHeader))
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(app.MsgReadOnlyCredential))
	}))
	defer srv.Close()

	err := newTestAdapter(t, srv.URL).UpdateEmergencyWrap(context.Background(), "lease-1",
		models.EmergencyWrapUpdate{FileID: testFileID, EmergencyEncryptedKey: "k", EmergencyIV: "iv"})
	assert.ErrorIs(t, err, ErrForbidden)
	assert.ErrorContains(t, err, app.MsgReadOnlyCredential)
}

func TestUploadFile_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		writeJSON(t, w, http.StatusCreated, models.File{FileID: testFileID})
	}))
	defer srv.Close()

	file, err := newTestAdapter(t, srv.URL).UploadFile(context.Background(), models.FileUpload{File: models.File{FileID: testFileID}})
	require.NoError(t, err)
	assert.Equal(t, testFileID, file.FileID)
	assert.Equal(t, int32(3), calls.Load())
}

func TestDeleteFile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	require.NoError(t, newTestAdapter(t, srv.URL).DeleteFile(context.Background(), testFileID))
}

// ── version ─────────────────────────────────────────────────────────────────

func TestGetServerVersion(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/version/", r.URL.Path)
		_, _ = w.Write([]byte("v1.2.3\n"))
	}))
	defer srv.Close()

	v, err := newTestAdapter(t, srv.URL).GetServerVersion(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "v1.2.3", v)
}
