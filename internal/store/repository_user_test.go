package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/MKhiriev/legacy-shield/internal/logger"
	"github.com/MKhiriev/legacy-shield/models"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

var userRowColumns = []string{
	"user_id", "login", "auth_hash", "master_key_salt",
	"emergency_verifier", "emergency_key_salt", "encrypted_emergency_key",
	"rotation_lease_until", "created_at", "updated_at",
}

func newTestUserRepo(t *testing.T) (*userRepository, sqlmock.Sqlmock, *sql.DB) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	l := logger.Nop()
	repo := &userRepository{
		db:     &DB{DB: db, logger: l},
		logger: l,
	}
	return repo, mock, db
}

func pgError(code string) error {
	return &pgconn.PgError{Code: code}
}

func TestCreateUser_Success(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	user := models.User{Login: "john", AuthHash: "hash", MasterKeySalt: "salt"}
	now := time.Now()

	mock.ExpectQuery("INSERT INTO users").
		WithArgs(user.Login, user.AuthHash, user.MasterKeySalt).
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "created_at", "updated_at"}).AddRow(1, now, now))

	created, err := repo.CreateUser(context.Background(), user)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.UserID != 1 {
		t.Errorf("expected UserID=1, got %d", created.UserID)
	}
	if created.Login != user.Login {
		t.Errorf("expected login %s, got %s", user.Login, created.Login)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestCreateUser_UniqueViolation(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	mock.ExpectQuery("INSERT INTO users").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnError(pgError(pgerrcode.UniqueViolation))

	_, err := repo.CreateUser(context.Background(), models.User{Login: "john"})
	if !errors.Is(err, ErrLoginAlreadyExists) {
		t.Fatalf("expected ErrLoginAlreadyExists, got %v", err)
	}
}

func TestCreateUser_UnexpectedDBError(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	mock.ExpectQuery("INSERT INTO users").
		WillReturnError(errors.New("db network error"))

	_, err := repo.CreateUser(context.Background(), models.User{Login: "john"})
	if err == nil || !strings.Contains(err.Error(), "unexpected DB error") {
		t.Fatalf("expected wrapped unexpected DB error, got %v", err)
	}
}

func TestFindUserByLogin_Success(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	now := time.Now()
	lease := now.Add(time.Minute)

	mock.ExpectQuery("SELECT (.+) FROM users WHERE login = \\$1").
		WithArgs("john").
		WillReturnRows(sqlmock.NewRows(userRowColumns).
			AddRow(7, "john", "hash", "msalt", "scrypt$32768$8$1$aa$bb", "esalt", "ct:nonce", lease, now, now))

	user, err := repo.FindUserByLogin(context.Background(), "john")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.UserID != 7 || user.EmergencyKeySalt != "esalt" || user.EncryptedEmergencyKey != "ct:nonce" {
		t.Errorf("unexpected user: %+v", user)
	}
	if user.RotationLeaseUntil == nil || !user.RotationLeaseUntil.Equal(lease) {
		t.Errorf("expected lease %v, got %v", lease, user.RotationLeaseUntil)
	}
	if !user.HasEmergencyAccess() {
		t.Error("expected emergency access to be set up")
	}
}

func TestFindUserByLogin_NotFound(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM users").
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindUserByLogin(context.Background(), "ghost")
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestGetUserByID_NoEmergencyAccess(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery("SELECT (.+) FROM users WHERE user_id = \\$1").
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows(userRowColumns).
			AddRow(3, "ann", "hash", "msalt", "", "", "", nil, now, now))

	user, err := repo.GetUserByID(context.Background(), 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.HasEmergencyAccess() {
		t.Error("expected no emergency access")
	}
	if user.RotationLeaseUntil != nil {
		t.Errorf("expected nil lease, got %v", user.RotationLeaseUntil)
	}
}

func TestUpdateEmergencyAccess_Success(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	access := models.EmergencyAccess{
		UserID:                1,
		LeaseID:               "lease-1",
		Verifier:              "scrypt$32768$8$1$aa$bb",
		EmergencyKeySalt:      "esalt",
		EncryptedEmergencyKey: "ct:nonce",
	}

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT rotation_lease_id = \\$2").
		WithArgs(int64(1), "lease-1").
		WillReturnRows(sqlmock.NewRows([]string{"held"}).AddRow(true))
	mock.ExpectExec("UPDATE users SET emergency_verifier").
		WithArgs(int64(1), access.Verifier, access.EmergencyKeySalt, access.EncryptedEmergencyKey).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	if err := repo.UpdateEmergencyAccess(context.Background(), access); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestUpdateEmergencyAccess_LeaseNotHeld(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT rotation_lease_id").
		WithArgs(int64(1), "stale").
		WillReturnRows(sqlmock.NewRows([]string{"held"}).AddRow(nil))
	mock.ExpectRollback()

	err := repo.UpdateEmergencyAccess(context.Background(), models.EmergencyAccess{UserID: 1, LeaseID: "stale"})
	if !errors.Is(err, ErrLeaseNotHeld) {
		t.Fatalf("expected ErrLeaseNotHeld, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestUpgradeVerifier(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	mock.ExpectExec("UPDATE users SET emergency_verifier = \\$3").
		WithArgs(int64(1), "legacy", "scrypt$...").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE users SET emergency_verifier = \\$3").
		WithArgs(int64(1), "legacy", "scrypt$...").
		WillReturnResult(sqlmock.NewResult(0, 0))

	ok, err := repo.UpgradeVerifier(context.Background(), 1, "legacy", "scrypt$...")
	if err != nil || !ok {
		t.Fatalf("expected upgrade, got ok=%v err=%v", ok, err)
	}

	ok, err = repo.UpgradeVerifier(context.Background(), 1, "legacy", "scrypt$...")
	if err != nil || ok {
		t.Fatalf("expected lost race, got ok=%v err=%v", ok, err)
	}
}

func TestTryAcquireRotationLease(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	until := time.Now().Add(5 * time.Minute)
	lease := models.RotationLease{UserID: 1, LeaseID: "lease-1", LeaseUntil: until}

	mock.ExpectExec("UPDATE users SET rotation_lease_id = \\$2").
		WithArgs(int64(1), "lease-1", until).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE users SET rotation_lease_id = \\$2").
		WithArgs(int64(1), "lease-1", until).
		WillReturnResult(sqlmock.NewResult(0, 0))

	acquired, err := repo.TryAcquireRotationLease(context.Background(), lease)
	if err != nil || !acquired {
		t.Fatalf("expected lease, got acquired=%v err=%v", acquired, err)
	}

	acquired, err = repo.TryAcquireRotationLease(context.Background(), lease)
	if err != nil || acquired {
		t.Fatalf("expected busy lease, got acquired=%v err=%v", acquired, err)
	}
}

func TestTryAcquireRotationLease_RetriesSerializationFailure(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()
	repo.db.errorClassificator = NewPostgresErrorClassifier()

	lease := models.RotationLease{UserID: 1, LeaseID: "lease-1", LeaseUntil: time.Now()}

	mock.ExpectExec("UPDATE users SET rotation_lease_id").
		WillReturnError(pgError(pgerrcode.SerializationFailure))
	mock.ExpectExec("UPDATE users SET rotation_lease_id").
		WillReturnResult(sqlmock.NewResult(0, 1))

	acquired, err := repo.TryAcquireRotationLease(context.Background(), lease)
	if err != nil || !acquired {
		t.Fatalf("expected lease after retry, got acquired=%v err=%v", acquired, err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestReleaseAndSweepLeases(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	mock.ExpectExec("UPDATE users SET rotation_lease_id = NULL").
		WithArgs(int64(1), "lease-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("WHERE rotation_lease_until <= NOW\\(\\)").
		WillReturnResult(sqlmock.NewResult(0, 3))

	if err := repo.ReleaseRotationLease(context.Background(), 1, "lease-1"); err != nil {
		t.Fatalf("release: %v", err)
	}

	n, err := repo.SweepExpiredLeases(context.Background())
	if err != nil {
		t.Fatalf("sweep: %v", err)
	}
	if n != 3 {
		t.Errorf("expected 3 swept leases, got %d", n)
	}
}
