package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/MKhiriev/legacy-shield/internal/adapter"
	"github.com/MKhiriev/legacy-shield/internal/app"
	"github.com/MKhiriev/legacy-shield/internal/crypto"
	"github.com/MKhiriev/legacy-shield/internal/logger"
	"github.com/MKhiriev/legacy-shield/internal/mock"
	"github.com/MKhiriev/legacy-shield/internal/store"
	"github.com/MKhiriev/legacy-shield/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestClientAuthService(t *testing.T) (
	ClientAuthService,
	*mock.MockServerAdapter,
	*mock.MockKeyDerivation,
	*crypto.KeySession,
) {
	t.Helper()
	ctrl := gomock.NewController(t)

	mockAdapter := mock.NewMockServerAdapter(ctrl)
	mockKDF := mock.NewMockKeyDerivation(ctrl)
	session := crypto.NewKeySession(0)
	t.Cleanup(session.Clear)

	svc := NewClientAuthService(mockAdapter, mockKDF, crypto.NewEnvelopeCipher(), session, logger.Nop())
	return svc, mockAdapter, mockKDF, session
}

// ── Register ──

func TestClientRegister_Success(t *testing.T) {
	svc, mockAdapter, mockKDF, session := newTestClientAuthService(t)
	ctx := context.Background()

	master, err := crypto.GenerateKey(false)
	require.NoError(t, err)

	gomock.InOrder(
		mockKDF.EXPECT().GenerateSalt().Return("salt", nil),
		mockKDF.EXPECT().DeriveAuthHash("pw", "salt").Return("auth-hash", nil),
		mockAdapter.EXPECT().Register(ctx, models.User{Login: "alice", AuthHash: "auth-hash", MasterKeySalt: "salt"}).Return(nil),
		mockKDF.EXPECT().DeriveKey("pw", "salt", false).Return(master, nil),
	)

	require.NoError(t, svc.Register(ctx, "alice", "pw"))

	got, err := session.MasterKey()
	require.NoError(t, err)
	assert.Same(t, master, got)
}

func TestClientRegister_LoginTaken(t *testing.T) {
	svc, mockAdapter, mockKDF, session := newTestClientAuthService(t)
	ctx := context.Background()

	mockKDF.EXPECT().GenerateSalt().Return("salt", nil)
	mockKDF.EXPECT().DeriveAuthHash("pw", "salt").Return("auth-hash", nil)
	mockAdapter.EXPECT().Register(ctx, gomock.Any()).
		Return(fmt.Errorf("%w: %s", adapter.ErrConflict, app.MsgLoginAlreadyExists))

	err := svc.Register(ctx, "alice", "pw")
	assert.ErrorIs(t, err, ErrRegisterOnServer)
	assert.ErrorIs(t, err, store.ErrLoginAlreadyExists)

	_, err = session.MasterKey()
	assert.ErrorIs(t, err, crypto.ErrSessionLocked)
}

func TestClientRegister_EmptyInput(t *testing.T) {
	svc, _, _, _ := newTestClientAuthService(t)

	assert.ErrorIs(t, svc.Register(context.Background(), "", "pw"), ErrInvalidDataProvided)
	assert.ErrorIs(t, svc.Register(context.Background(), "alice", ""), ErrInvalidDataProvided)
}

// ── Login ──

func TestClientLogin_LoadsEmergencyKey(t *testing.T) {
	svc, mockAdapter, mockKDF, session := newTestClientAuthService(t)
	ctx := context.Background()

	master, err := crypto.GenerateKey(false)
	require.NoError(t, err)
	emergency, err := crypto.GenerateKey(true)
	require.NoError(t, err)
	record, err := crypto.NewEnvelopeCipher().WrapKey(emergency, master)
	require.NoError(t, err)

	gomock.InOrder(
		mockAdapter.EXPECT().RequestParams(ctx, "alice").Return(models.AuthParams{Login: "alice", MasterKeySalt: "salt"}, nil),
		mockKDF.EXPECT().DeriveAuthHash("pw", "salt").Return("auth-hash", nil),
		mockAdapter.EXPECT().Login(ctx, models.User{Login: "alice", AuthHash: "auth-hash"}).Return(nil),
		mockKDF.EXPECT().DeriveKey("pw", "salt", false).Return(master, nil),
		mockAdapter.EXPECT().GetEmergencyAccess(ctx).Return(models.EmergencyAccess{EncryptedEmergencyKey: record}, nil),
	)

	require.NoError(t, svc.Login(ctx, "alice", "pw"))
	assert.True(t, session.HasEmergencyKey())

	loaded, err := session.EmergencyKey()
	require.NoError(t, err)
	assert.True(t, loaded.Extractable())
}

func TestClientLogin_WithoutEmergencyAccess(t *testing.T) {
	svc, mockAdapter, mockKDF, session := newTestClientAuthService(t)
	ctx := context.Background()

	master, err := crypto.GenerateKey(false)
	require.NoError(t, err)

	mockAdapter.EXPECT().RequestParams(ctx, "alice").Return(models.AuthParams{MasterKeySalt: "salt"}, nil)
	mockKDF.EXPECT().DeriveAuthHash("pw", "salt").Return("auth-hash", nil)
	mockAdapter.EXPECT().Login(ctx, gomock.Any()).Return(nil)
	mockKDF.EXPECT().DeriveKey("pw", "salt", false).Return(master, nil)
	mockAdapter.EXPECT().GetEmergencyAccess(ctx).
		Return(models.EmergencyAccess{}, fmt.Errorf("%w: %s", adapter.ErrNotFound, app.MsgEmergencyNotConfigured))

	require.NoError(t, svc.Login(ctx, "alice", "pw"))
	assert.False(t, session.HasEmergencyKey())
}

func TestClientLogin_WrongPassword(t *testing.T) {
	svc, mockAdapter, mockKDF, _ := newTestClientAuthService(t)
	ctx := context.Background()

	mockAdapter.EXPECT().RequestParams(ctx, "alice").Return(models.AuthParams{MasterKeySalt: "salt"}, nil)
	mockKDF.EXPECT().DeriveAuthHash("bad", "salt").Return("auth-hash", nil)
	mockAdapter.EXPECT().Login(ctx, gomock.Any()).
		Return(fmt.Errorf("%w: %s", adapter.ErrUnauthorized, app.MsgInvalidLoginPassword))

	err := svc.Login(ctx, "alice", "bad")
	assert.ErrorIs(t, err, ErrLoginOnServer)
	assert.ErrorIs(t, err, ErrWrongPassword)
}

func TestClientLogin_TamperedEmergencyRecordLogsOut(t *testing.T) {
	svc, mockAdapter, mockKDF, session := newTestClientAuthService(t)
	ctx := context.Background()

	master, err := crypto.GenerateKey(false)
	require.NoError(t, err)
	other, err := crypto.GenerateKey(false)
	require.NoError(t, err)
	emergency, err := crypto.GenerateKey(true)
	require.NoError(t, err)
	foreign, err := crypto.NewEnvelopeCipher().WrapKey(emergency, other)
	require.NoError(t, err)

	mockAdapter.EXPECT().RequestParams(ctx, "alice").Return(models.AuthParams{MasterKeySalt: "salt"}, nil)
	mockKDF.EXPECT().DeriveAuthHash("pw", "salt").Return("auth-hash", nil)
	mockAdapter.EXPECT().Login(ctx, gomock.Any()).Return(nil)
	mockKDF.EXPECT().DeriveKey("pw", "salt", false).Return(master, nil)
	mockAdapter.EXPECT().GetEmergencyAccess(ctx).Return(models.EmergencyAccess{EncryptedEmergencyKey: foreign}, nil)
	mockAdapter.EXPECT().SetToken("")

	err = svc.Login(ctx, "alice", "pw")
	assert.ErrorIs(t, err, crypto.ErrDecryptionFailed)

	_, err = session.MasterKey()
	assert.ErrorIs(t, err, crypto.ErrSessionLocked)
}

// ── Logout / UserID ──

func TestClientLogout(t *testing.T) {
	svc, mockAdapter, _, session := newTestClientAuthService(t)

	master, err := crypto.GenerateKey(false)
	require.NoError(t, err)
	session.SetMasterKey(master)

	mockAdapter.EXPECT().SetToken("")

	svc.Logout()

	_, err = session.MasterKey()
	assert.ErrorIs(t, err, crypto.ErrSessionLocked)
}

func TestClientUserID(t *testing.T) {
	svc, mockAdapter, _, _ := newTestClientAuthService(t)

	gomock.InOrder(
		mockAdapter.EXPECT().Token().Return(""),
		mockAdapter.EXPECT().Token().Return("garbage"),
		mockAdapter.EXPECT().Token().Return(ownerToken(t)),
	)

	_, err := svc.UserID()
	assert.ErrorIs(t, err, ErrNotLoggedIn)

	_, err = svc.UserID()
	assert.ErrorIs(t, err, ErrNotLoggedIn)

	id, err := svc.UserID()
	require.NoError(t, err)
	assert.Equal(t, testUserID, id)
}

// ── mapAdapterError ──

func TestMapAdapterError(t *testing.T) {
	tests := []struct {
		name string
		in   error
		want error
	}{
		{"bad request", fmt.Errorf("%w: %s", adapter.ErrBadRequest, "x"), ErrInvalidDataProvided},
		{"wrong password", fmt.Errorf("%w: %s", adapter.ErrUnauthorized, app.MsgInvalidLoginPassword), ErrWrongPassword},
		{"unlock failed", fmt.Errorf("%w: %s", adapter.ErrUnauthorized, app.MsgUnlockFailed), crypto.ErrVerificationFailed},
		{"bad token", fmt.Errorf("%w: %s", adapter.ErrUnauthorized, app.MsgTokenIsExpiredOrInvalid), ErrTokenIsExpiredOrInvalid},
		{"read only", fmt.Errorf("%w: %s", adapter.ErrForbidden, app.MsgReadOnlyCredential), ErrReadOnlyCredential},
		{"file not found", fmt.Errorf("%w: %s", adapter.ErrNotFound, app.MsgFileNotFound), store.ErrFileNotFound},
		{"not configured", fmt.Errorf("%w: %s", adapter.ErrNotFound, app.MsgEmergencyNotConfigured), ErrEmergencyNotConfigured},
		{"rotation", fmt.Errorf("%w: %s", adapter.ErrConflict, app.MsgRotationInProgress), ErrRotationInProgress},
		{"lease", fmt.Errorf("%w: %s", adapter.ErrConflict, app.MsgLeaseNotHeld), store.ErrLeaseNotHeld},
		{"rate limited", fmt.Errorf("%w: %s", adapter.ErrTooManyRequests, app.MsgTooManyRequests), ErrTooManyRequests},
		{"unknown body", fmt.Errorf("%w: %s", adapter.ErrConflict, "other"), adapter.ErrConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, mapAdapterError(tt.in), tt.want)
		})
	}

	assert.NoError(t, mapAdapterError(nil))

	plain := errors.New("dial tcp: refused")
	assert.Same(t, plain, mapAdapterError(plain))
}
