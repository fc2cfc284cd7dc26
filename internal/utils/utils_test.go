// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"context"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MKhiriev/legacy-shield/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── context ──

func TestGetUserIDFromContext(t *testing.T) {
	ctx := context.WithValue(context.Background(), UserIDCtxKey, int64(42))
	id, ok := GetUserIDFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, int64(42), id)

	_, ok = GetUserIDFromContext(context.Background())
	assert.False(t, ok)

	_, ok = GetUserIDFromContext(context.WithValue(context.Background(), UserIDCtxKey, "42"))
	assert.False(t, ok)
}

func TestWithCredential(t *testing.T) {
	ctx := WithCredential(context.Background(), 7, models.ScopeOwner)

	id, ok := GetUserIDFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, int64(7), id)

	scope, ok := GetScopeFromContext(ctx)
	assert.True(t, ok)
	assert.False(t, scope.ReadOnly())
}

func TestGetScopeFromContext(t *testing.T) {
	ctx := context.WithValue(context.Background(), ScopeCtxKey, models.ScopeEmergency)
	scope, ok := GetScopeFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, models.ScopeEmergency, scope)

	_, ok = GetScopeFromContext(context.Background())
	assert.False(t, ok)
	assert.Equal(t, "scope", ScopeCtxKey.String())
}

// ── hashing ──

func TestHashString(t *testing.T) {
	a := HashString("auth-hash", "key")
	assert.Len(t, a, 64)
	assert.Equal(t, a, HashString("auth-hash", "key"))
	assert.NotEqual(t, a, HashString("auth-hash", "other"))

	assert.True(t, EqualHashes(a, HashString("auth-hash", "key")))
	assert.False(t, EqualHashes(a, HashString("auth-hash2", "key")))
}

func TestHashBase64(t *testing.T) {
	a := HashBase64("params:alice", "key")
	raw, err := base64.StdEncoding.DecodeString(a)
	require.NoError(t, err)
	assert.Len(t, raw, 32)
	assert.Equal(t, a, HashBase64("params:alice", "key"))
	assert.NotEqual(t, a, HashBase64("params:bob", "key"))
}

// ── http ──

func TestWriteJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	_, err := WriteJSON(rec, map[string]string{"status": "ok"}, http.StatusCreated)
	require.NoError(t, err)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	rec = httptest.NewRecorder()
	_, err = WriteJSON(rec, make(chan int), http.StatusOK)
	assert.Error(t, err)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestClientIP(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = "10.0.0.1:5555"
	assert.Equal(t, "10.0.0.1", ClientIP(r))

	r.Header.Set("X-Real-IP", "10.0.0.2")
	assert.Equal(t, "10.0.0.2", ClientIP(r))

	r.Header.Set("X-Forwarded-For", "10.0.0.3, 10.0.0.4")
	assert.Equal(t, "10.0.0.3", ClientIP(r))
}

func TestNewHTTPClient(t *testing.T) {
	c1 := NewHTTPClient("http://localhost:8080", 3*time.Second)
	c2 := NewHTTPClient("http://localhost:8080", 0)

	require.NotNil(t, c1.Client)
	assert.NotSame(t, c1.Client, c2.Client)
	assert.Equal(t, "http://localhost:8080", c1.BaseURL)
	assert.Equal(t, 2, c1.RetryCount)
}

// ── uuid ──

func TestUUIDGenerator(t *testing.T) {
	g := NewUUIDGenerator()
	a, b := g.Generate(), g.Generate()

	assert.True(t, IsUUID(a))
	assert.NotEqual(t, a, b)
	assert.Less(t, a, b, "v7 ids are time ordered")

	assert.False(t, IsUUID("not-a-uuid"))
	assert.False(t, IsUUID(""))
}
