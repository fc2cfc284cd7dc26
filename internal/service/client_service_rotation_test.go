package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/MKhiriev/legacy-shield/internal/adapter"
	"github.com/MKhiriev/legacy-shield/internal/app"
	"github.com/MKhiriev/legacy-shield/internal/crypto"
	"github.com/MKhiriev/legacy-shield/internal/logger"
	"github.com/MKhiriev/legacy-shield/internal/mock"
	"github.com/MKhiriev/legacy-shield/internal/store"
	"github.com/MKhiriev/legacy-shield/internal/utils"
	"github.com/MKhiriev/legacy-shield/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// ─────────────────────────────────────────────
// fixture
// ─────────────────────────────────────────────

const testUserID int64 = 5

type vaultFile struct {
	meta      models.File
	body      []byte
	plaintext []byte
}

type rotationFixture struct {
	coordinator *rotationCoordinator
	adapter     *mock.MockServerAdapter
	journal     *mock.MockRotationJournal
	kdf         *mock.MockKeyDerivation
	session     *crypto.KeySession
	cipher      crypto.EnvelopeCipher
	master      *crypto.Key
	files       []vaultFile

	// updates collects every persisted emergency wrap by file id.
	updates map[string]models.EmergencyWrapUpdate
	// committed is the emergency access last stored on the server.
	committed models.EmergencyAccess
}

func ownerToken(t *testing.T) string {
	t.Helper()
	tok, err := utils.GenerateJWTToken("test", testUserID, models.ScopeOwner, time.Hour, "k")
	require.NoError(t, err)
	return tok.SignedString
}

// newRotationFixture builds a logged-in session with n files encrypted for
// the owner only.
func newRotationFixture(t *testing.T, n, pageSize int) *rotationFixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	master, err := crypto.GenerateKey(false)
	require.NoError(t, err)

	f := &rotationFixture{
		adapter: mock.NewMockServerAdapter(ctrl),
		journal: mock.NewMockRotationJournal(ctrl),
		kdf:     mock.NewMockKeyDerivation(ctrl),
		session: crypto.NewKeySession(0),
		cipher:  crypto.NewEnvelopeCipher(),
		master:  master,
		updates: make(map[string]models.EmergencyWrapUpdate),
	}
	f.session.SetMasterKey(master)
	t.Cleanup(f.session.Clear)

	ids := utils.NewUUIDGenerator()
	for i := range n {
		plaintext := []byte(fmt.Sprintf("document %d", i))
		enc, err := f.cipher.EncryptFile(plaintext, master, nil)
		require.NoError(t, err)

		upload := uploadFromEncrypted(ids.Generate(), fmt.Sprintf("doc-%d", i), enc)
		f.files = append(f.files, vaultFile{meta: upload.File, body: enc.Ciphertext, plaintext: plaintext})
	}

	c := NewRotationCoordinator(f.adapter, f.journal, f.kdf, f.cipher, f.session, pageSize, logger.Nop())
	f.coordinator = c.(*rotationCoordinator)

	f.adapter.EXPECT().Token().Return(ownerToken(t)).AnyTimes()
	return f
}

func (f *rotationFixture) metas(from, to int) []models.File {
	out := make([]models.File, 0, to-from)
	for _, v := range f.files[from:to] {
		out = append(out, v.meta)
	}
	return out
}

// expectLease allows any number of acquisitions and exactly one release.
func (f *rotationFixture) expectLease() {
	f.adapter.EXPECT().AcquireRotationLease(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, leaseID string) (models.RotationLease, error) {
			return models.RotationLease{LeaseID: leaseID, LeaseUntil: time.Now().Add(time.Minute)}, nil
		}).MinTimes(1)
	f.adapter.EXPECT().ReleaseRotationLease(gomock.Any(), gomock.Any()).Return(nil)
}

// expectNewPhrase expects a successful commit of a fresh emergency key and
// returns that key.
func (f *rotationFixture) expectNewPhrase(t *testing.T, phrase string) *crypto.Key {
	t.Helper()
	emergency, err := crypto.GenerateKey(true)
	require.NoError(t, err)

	f.kdf.EXPECT().GenerateSalt().Return("new-salt", nil)
	f.kdf.EXPECT().DeriveKey(phrase, "new-salt", true).Return(emergency, nil)
	f.kdf.EXPECT().DeriveVerifier(phrase).Return("scrypt$verifier", nil)
	f.adapter.EXPECT().SetEmergencyAccess(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, leaseID string, access models.EmergencyAccess) error {
			assert.NotEmpty(t, leaseID)
			assert.Equal(t, "scrypt$verifier", access.Verifier)
			assert.Equal(t, "new-salt", access.EmergencyKeySalt)

			unwrapped, err := f.cipher.UnwrapKey(access.EncryptedEmergencyKey, f.master, true)
			require.NoError(t, err)
			unwrapped.Destroy()

			f.committed = access
			return nil
		})
	return emergency
}

// commitEmergency stores a fresh emergency key wrapped under the master key
// as the server's committed access and returns the key.
func (f *rotationFixture) commitEmergency(t *testing.T, salt string) *crypto.Key {
	t.Helper()
	emergency, err := crypto.GenerateKey(true)
	require.NoError(t, err)

	record, err := f.cipher.WrapKey(emergency, f.master)
	require.NoError(t, err)

	f.committed = models.EmergencyAccess{EmergencyKeySalt: salt, EncryptedEmergencyKey: record}
	return emergency
}

// serveCommitted answers GetEmergencyAccess with whatever is committed at
// call time.
func (f *rotationFixture) serveCommitted() {
	f.adapter.EXPECT().GetEmergencyAccess(gomock.Any()).
		DoAndReturn(func(context.Context) (models.EmergencyAccess, error) {
			return f.committed, nil
		}).AnyTimes()
}

func (f *rotationFixture) expectUpdates() {
	f.adapter.EXPECT().UpdateEmergencyWrap(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, update models.EmergencyWrapUpdate) error {
			f.updates[update.FileID] = update
			return nil
		}).AnyTimes()
}

func (f *rotationFixture) expectJournal() {
	f.journal.EXPECT().StartRotation(gomock.Any(), gomock.Any(), testUserID).Return(nil).AnyTimes()
	f.journal.EXPECT().Record(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
}

// decryptWithEmergency opens file i with its latest persisted emergency wrap.
func (f *rotationFixture) decryptWithEmergency(t *testing.T, i int, key *crypto.Key) []byte {
	t.Helper()
	update, ok := f.updates[f.files[i].meta.FileID]
	require.True(t, ok, "file %d was not rewrapped", i)

	wrapped, err := wrapFromFields(update.EmergencyEncryptedKey, update.EmergencyIV)
	require.NoError(t, err)
	enc, err := encryptedFromWire(f.files[i].meta, f.files[i].body)
	require.NoError(t, err)

	plaintext, err := f.cipher.DecryptFile(enc, wrapped, key)
	require.NoError(t, err)
	return plaintext
}

func collect(seq func(func(models.RotationProgress) bool)) []models.RotationProgress {
	var out []models.RotationProgress
	for p := range seq {
		out = append(out, p)
	}
	return out
}

// ─────────────────────────────────────────────
// Rotate
// ─────────────────────────────────────────────

func TestRotate_RewrapsEveryFileAcrossPages(t *testing.T) {
	f := newRotationFixture(t, 3, 2)
	ctx := context.Background()

	f.expectLease()
	emergency := f.expectNewPhrase(t, "new phrase")
	f.expectUpdates()
	f.expectJournal()

	gomock.InOrder(
		f.adapter.EXPECT().ListFiles(gomock.Any(), "", 2).
			Return(models.FilePage{Files: f.metas(0, 2), NextCursor: f.files[1].meta.FileID, Total: 3}, nil),
		f.adapter.EXPECT().ListFiles(gomock.Any(), f.files[1].meta.FileID, 2).
			Return(models.FilePage{Files: f.metas(2, 3), Total: 3}, nil),
	)

	seq, result := f.coordinator.Rotate(ctx, "new phrase")
	progress := collect(seq)

	require.NoError(t, result())
	require.Len(t, progress, 3)
	for i, p := range progress {
		assert.Equal(t, i+1, p.Done)
		assert.Equal(t, 3, p.Total)
		assert.NoError(t, p.Err)
	}

	for i := range f.files {
		assert.Equal(t, f.files[i].plaintext, f.decryptWithEmergency(t, i, emergency))
	}

	inSession, err := f.session.EmergencyKey()
	require.NoError(t, err)
	assert.Same(t, emergency, inSession)
}

func TestRotate_NothingHappensUntilRanged(t *testing.T) {
	f := newRotationFixture(t, 1, 10)

	_, result := f.coordinator.Rotate(context.Background(), "phrase")

	assert.ErrorIs(t, result(), ErrNotStarted)
}

func TestRotate_SequenceIsSingleUse(t *testing.T) {
	f := newRotationFixture(t, 0, 10)

	f.expectLease()
	f.expectNewPhrase(t, "phrase")
	f.expectJournal()
	f.adapter.EXPECT().ListFiles(gomock.Any(), "", 10).Return(models.FilePage{Files: []models.File{}}, nil)

	seq, result := f.coordinator.Rotate(context.Background(), "phrase")
	assert.Empty(t, collect(seq))
	require.NoError(t, result())

	second := collect(seq)
	require.Len(t, second, 1)
	assert.ErrorIs(t, second[0].Err, ErrSequenceConsumed)
	assert.NoError(t, result(), "a second range must not overwrite the first result")
}

func TestRotate_CommitFailureTouchesNoFile(t *testing.T) {
	f := newRotationFixture(t, 2, 10)

	previous, err := crypto.GenerateKey(true)
	require.NoError(t, err)
	f.session.SetEmergencyKey(previous)

	f.expectLease()
	f.kdf.EXPECT().GenerateSalt().Return("salt", nil)
	f.kdf.EXPECT().DeriveKey("phrase", "salt", true).DoAndReturn(func(string, string, bool) (*crypto.Key, error) {
		return crypto.GenerateKey(true)
	})
	f.kdf.EXPECT().DeriveVerifier("phrase").Return("scrypt$v", nil)
	f.adapter.EXPECT().SetEmergencyAccess(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(fmt.Errorf("%w: %s", adapter.ErrConflict, app.MsgLeaseNotHeld))

	seq, result := f.coordinator.Rotate(context.Background(), "phrase")

	assert.Empty(t, collect(seq))
	assert.ErrorIs(t, result(), store.ErrLeaseNotHeld)

	current, err := f.session.EmergencyKey()
	require.NoError(t, err)
	assert.Same(t, previous, current, "previous emergency key must stay in place")
}

func TestRotate_DerivationFailureAbortsBeforeAnyFile(t *testing.T) {
	f := newRotationFixture(t, 1, 10)
	boom := errors.New("entropy exhausted")

	f.expectLease()
	f.kdf.EXPECT().GenerateSalt().Return("", boom)

	seq, result := f.coordinator.Rotate(context.Background(), "phrase")
	assert.Empty(t, collect(seq))
	assert.ErrorIs(t, result(), boom)
}

func TestRotate_PartialFailure(t *testing.T) {
	f := newRotationFixture(t, 3, 10)

	f.expectLease()
	f.expectNewPhrase(t, "phrase")
	f.expectJournal()
	f.adapter.EXPECT().ListFiles(gomock.Any(), "", 10).Return(models.FilePage{Files: f.metas(0, 3), Total: 3}, nil)

	failing := f.files[1].meta.FileID
	ioErr := fmt.Errorf("%w: %s", adapter.ErrBadGateway, "upstream")
	f.adapter.EXPECT().UpdateEmergencyWrap(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, update models.EmergencyWrapUpdate) error {
			if update.FileID == failing {
				return ioErr
			}
			f.updates[update.FileID] = update
			return nil
		}).Times(3)

	seq, result := f.coordinator.Rotate(context.Background(), "phrase")
	progress := collect(seq)

	require.Len(t, progress, 3)
	assert.Error(t, progress[1].Err)
	assert.Equal(t, failing, progress[1].FileID)

	var partial *RotationPartialFailure
	require.ErrorAs(t, result(), &partial)
	assert.Equal(t, []string{failing}, partial.FailedFileIDs)
	assert.ErrorIs(t, result(), adapter.ErrBadGateway)
	assert.Len(t, f.updates, 2)
}

func TestRotate_ConsumerBreakInterrupts(t *testing.T) {
	f := newRotationFixture(t, 3, 10)

	f.expectLease()
	f.expectNewPhrase(t, "phrase")
	f.expectJournal()
	f.expectUpdates()
	f.adapter.EXPECT().ListFiles(gomock.Any(), "", 10).Return(models.FilePage{Files: f.metas(0, 3), Total: 3}, nil)

	seq, result := f.coordinator.Rotate(context.Background(), "phrase")
	for range seq {
		break
	}

	assert.ErrorIs(t, result(), ErrRotationInterrupted)
	assert.Len(t, f.updates, 1, "only the visited prefix is rotated")
}

func TestRotate_CancelledBetweenFiles(t *testing.T) {
	f := newRotationFixture(t, 3, 10)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	f.expectLease()
	f.expectNewPhrase(t, "phrase")
	f.expectJournal()
	f.expectUpdates()
	f.adapter.EXPECT().ListFiles(gomock.Any(), "", 10).Return(models.FilePage{Files: f.metas(0, 3), Total: 3}, nil)

	seq, result := f.coordinator.Rotate(ctx, "phrase")
	var seen int
	for range seq {
		seen++
		if seen == 2 {
			cancel()
		}
	}

	assert.Equal(t, 2, seen)
	assert.ErrorIs(t, result(), ErrRotationInterrupted)
	assert.ErrorIs(t, result(), context.Canceled)
	assert.Len(t, f.updates, 2)
}

func TestRotate_SameUserIsSerialized(t *testing.T) {
	f := newRotationFixture(t, 1, 10)
	require.True(t, f.coordinator.locks.tryLock(testUserID))
	defer f.coordinator.locks.unlock(testUserID)

	seq, result := f.coordinator.Rotate(context.Background(), "phrase")
	assert.Empty(t, collect(seq))
	assert.ErrorIs(t, result(), ErrRotationInProgress)
}

func TestRotate_LeaseHeldByAnotherDevice(t *testing.T) {
	f := newRotationFixture(t, 1, 10)

	f.adapter.EXPECT().AcquireRotationLease(gomock.Any(), gomock.Any()).
		Return(models.RotationLease{}, fmt.Errorf("%w: %s", adapter.ErrConflict, app.MsgRotationInProgress))

	seq, result := f.coordinator.Rotate(context.Background(), "phrase")
	assert.Empty(t, collect(seq))
	assert.ErrorIs(t, result(), ErrRotationInProgress)
}

func TestRotate_LockedSession(t *testing.T) {
	f := newRotationFixture(t, 1, 10)
	f.session.Clear()

	seq, result := f.coordinator.Rotate(context.Background(), "phrase")
	assert.Empty(t, collect(seq))
	assert.ErrorIs(t, result(), crypto.ErrSessionLocked)
}

func TestRotate_JournalFailureDoesNotFailFiles(t *testing.T) {
	f := newRotationFixture(t, 1, 10)

	f.expectLease()
	f.expectNewPhrase(t, "phrase")
	f.expectUpdates()
	f.journal.EXPECT().StartRotation(gomock.Any(), gomock.Any(), testUserID).Return(errors.New("disk full"))
	f.journal.EXPECT().Record(gomock.Any(), gomock.Any()).Times(0)
	f.adapter.EXPECT().ListFiles(gomock.Any(), "", 10).Return(models.FilePage{Files: f.metas(0, 1), Total: 1}, nil)

	seq, result := f.coordinator.Rotate(context.Background(), "phrase")
	progress := collect(seq)

	require.NoError(t, result())
	require.Len(t, progress, 1)
	assert.NoError(t, progress[0].Err)
}

func TestRotate_JournalRecordsCommittedKeySalt(t *testing.T) {
	f := newRotationFixture(t, 0, 10)

	f.expectLease()
	f.expectNewPhrase(t, "phrase")
	f.journal.EXPECT().StartRotation(gomock.Any(), gomock.Any(), testUserID).
		DoAndReturn(func(_ context.Context, rotation models.JournalRotation, _ int64) error {
			assert.NotEmpty(t, rotation.RotationID)
			assert.Equal(t, "new-salt", rotation.KeySalt)
			return nil
		})
	f.adapter.EXPECT().ListFiles(gomock.Any(), "", 10).Return(models.FilePage{Files: []models.File{}}, nil)

	seq, result := f.coordinator.Rotate(context.Background(), "phrase")
	assert.Empty(t, collect(seq))
	require.NoError(t, result())
}

func TestRotate_LocksAreSharedAcrossCoordinators(t *testing.T) {
	f := newRotationFixture(t, 1, 10)
	other := NewRotationCoordinator(f.adapter, f.journal, f.kdf, f.cipher, f.session, 10, logger.Nop())

	require.True(t, f.coordinator.locks.tryLock(testUserID))
	defer f.coordinator.locks.unlock(testUserID)

	seq, result := other.Rotate(context.Background(), "phrase")
	assert.Empty(t, collect(seq))
	assert.ErrorIs(t, result(), ErrRotationInProgress)
}

// ─────────────────────────────────────────────
// Retry / Resume
// ─────────────────────────────────────────────

func TestRetry_ExactIDsIsIdempotent(t *testing.T) {
	f := newRotationFixture(t, 2, 10)
	emergency := f.commitEmergency(t, "salt-1")
	f.serveCommitted()

	f.expectUpdates()
	f.journal.EXPECT().LatestRotation(gomock.Any(), testUserID).
		Return(models.JournalRotation{RotationID: "rotation-1", KeySalt: "salt-1"}, nil).Times(2)
	f.journal.EXPECT().Entries(gomock.Any(), "rotation-1").Return(nil, nil).Times(2)
	f.journal.EXPECT().Record(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, entry models.JournalEntry) error {
			assert.Equal(t, "rotation-1", entry.RotationID)
			assert.Equal(t, models.RotationDone, entry.Status)
			return nil
		}).Times(2)

	target := f.files[1].meta
	f.adapter.EXPECT().GetFile(gomock.Any(), target.FileID).Return(target, nil).Times(2)
	f.adapter.EXPECT().AcquireRotationLease(gomock.Any(), gomock.Any()).Return(models.RotationLease{}, nil).Times(2)
	f.adapter.EXPECT().ReleaseRotationLease(gomock.Any(), gomock.Any()).Return(nil).Times(2)

	for range 2 {
		seq, result := f.coordinator.Retry(context.Background(), []string{target.FileID})
		progress := collect(seq)
		require.NoError(t, result())
		require.Len(t, progress, 1)
		assert.Equal(t, 1, progress[0].Total)
		assert.Equal(t, f.files[1].plaintext, f.decryptWithEmergency(t, 1, emergency))
	}
}

func TestRetry_MissingFileIsReported(t *testing.T) {
	f := newRotationFixture(t, 0, 10)
	f.commitEmergency(t, "salt-1")
	f.serveCommitted()

	f.expectLease()
	f.expectJournal()
	f.journal.EXPECT().LatestRotation(gomock.Any(), testUserID).Return(models.JournalRotation{}, store.ErrNoRotation)
	f.adapter.EXPECT().GetFile(gomock.Any(), "gone").
		Return(models.File{}, fmt.Errorf("%w: %s", adapter.ErrNotFound, app.MsgFileNotFound))

	seq, result := f.coordinator.Retry(context.Background(), []string{"gone"})
	progress := collect(seq)

	require.Len(t, progress, 1)
	assert.ErrorIs(t, progress[0].Err, store.ErrFileNotFound)

	var partial *RotationPartialFailure
	require.ErrorAs(t, result(), &partial)
	assert.Equal(t, []string{"gone"}, partial.FailedFileIDs)
}

func TestRetry_WithoutEmergencyKey(t *testing.T) {
	f := newRotationFixture(t, 1, 10)

	f.expectLease()
	f.adapter.EXPECT().GetEmergencyAccess(gomock.Any()).
		Return(models.EmergencyAccess{}, fmt.Errorf("%w: %s", adapter.ErrNotFound, app.MsgEmergencyNotConfigured))

	seq, result := f.coordinator.Retry(context.Background(), []string{f.files[0].meta.FileID})
	assert.Empty(t, collect(seq))
	assert.ErrorIs(t, result(), ErrEmergencyNotConfigured)
}

func TestResume_SkipsFilesAlreadyDone(t *testing.T) {
	f := newRotationFixture(t, 3, 10)
	emergency := f.commitEmergency(t, "salt-1")
	f.serveCommitted()

	f.expectLease()
	f.expectUpdates()
	f.journal.EXPECT().Record(gomock.Any(), gomock.Any()).Return(nil).Times(2)
	f.journal.EXPECT().LatestRotation(gomock.Any(), testUserID).
		Return(models.JournalRotation{RotationID: "rotation-1", KeySalt: "salt-1"}, nil)
	f.journal.EXPECT().Entries(gomock.Any(), "rotation-1").Return([]models.JournalEntry{
		{RotationID: "rotation-1", FileID: f.files[0].meta.FileID, Status: models.RotationDone},
		{RotationID: "rotation-1", FileID: f.files[1].meta.FileID, Status: models.RotationFailed},
	}, nil)
	f.adapter.EXPECT().ListFiles(gomock.Any(), "", 10).Return(models.FilePage{Files: f.metas(0, 3), Total: 3}, nil)

	seq, result := f.coordinator.Resume(context.Background())
	progress := collect(seq)

	require.NoError(t, result())
	require.Len(t, progress, 2)
	assert.Equal(t, 2, progress[1].Total)
	assert.NotContains(t, f.updates, f.files[0].meta.FileID)
	assert.Equal(t, f.files[1].plaintext, f.decryptWithEmergency(t, 1, emergency))
	assert.Equal(t, f.files[2].plaintext, f.decryptWithEmergency(t, 2, emergency))
}

func TestResume_WithoutJournalDoesFullPass(t *testing.T) {
	f := newRotationFixture(t, 2, 10)
	f.commitEmergency(t, "salt-1")
	f.serveCommitted()

	f.expectLease()
	f.expectUpdates()
	f.expectJournal()
	f.journal.EXPECT().LatestRotation(gomock.Any(), testUserID).Return(models.JournalRotation{}, store.ErrNoRotation)
	f.adapter.EXPECT().ListFiles(gomock.Any(), "", 10).Return(models.FilePage{Files: f.metas(0, 2), Total: 2}, nil)

	seq, result := f.coordinator.Resume(context.Background())

	assert.Len(t, collect(seq), 2)
	require.NoError(t, result())
	assert.Len(t, f.updates, 2)
}

func TestResume_ListingFailure(t *testing.T) {
	f := newRotationFixture(t, 0, 10)
	f.commitEmergency(t, "salt-1")
	f.serveCommitted()

	f.expectLease()
	f.expectJournal()
	f.journal.EXPECT().LatestRotation(gomock.Any(), testUserID).Return(models.JournalRotation{}, store.ErrNoRotation)
	f.adapter.EXPECT().ListFiles(gomock.Any(), "", 10).Return(models.FilePage{}, fmt.Errorf("%w: %s", adapter.ErrBadGateway, "down"))

	seq, result := f.coordinator.Resume(context.Background())
	assert.Empty(t, collect(seq))
	assert.ErrorIs(t, result(), adapter.ErrBadGateway)
}

// The journal's latest rotation was finished for an older emergency key.
// The rotation that committed the current key never reached the journal
// and stopped before any file. Resume must rewrap every file to the
// committed key instead of trusting the stale rotation.
func TestResume_IgnoresRotationOfOlderKey(t *testing.T) {
	f := newRotationFixture(t, 2, 10)
	ctx := context.Background()

	f.adapter.EXPECT().AcquireRotationLease(gomock.Any(), gomock.Any()).Return(models.RotationLease{}, nil).Times(2)
	f.adapter.EXPECT().ReleaseRotationLease(gomock.Any(), gomock.Any()).Return(nil).Times(2)
	f.serveCommitted()
	f.expectNewPhrase(t, "new phrase")
	f.expectUpdates()

	var resumed models.JournalRotation
	gomock.InOrder(
		f.journal.EXPECT().StartRotation(gomock.Any(), gomock.Any(), testUserID).Return(errors.New("disk full")),
		f.journal.EXPECT().StartRotation(gomock.Any(), gomock.Any(), testUserID).
			DoAndReturn(func(_ context.Context, rotation models.JournalRotation, _ int64) error {
				resumed = rotation
				return nil
			}),
	)
	f.journal.EXPECT().LatestRotation(gomock.Any(), testUserID).
		Return(models.JournalRotation{RotationID: "old-rotation", KeySalt: "old-salt"}, nil)
	f.journal.EXPECT().Entries(gomock.Any(), "old-rotation").Return([]models.JournalEntry{
		{RotationID: "old-rotation", FileID: f.files[0].meta.FileID, Status: models.RotationDone},
		{RotationID: "old-rotation", FileID: f.files[1].meta.FileID, Status: models.RotationDone},
	}, nil).AnyTimes()
	f.journal.EXPECT().Record(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, entry models.JournalEntry) error {
			assert.Equal(t, resumed.RotationID, entry.RotationID)
			return nil
		}).Times(2)

	gomock.InOrder(
		f.adapter.EXPECT().ListFiles(gomock.Any(), "", 10).
			Return(models.FilePage{}, fmt.Errorf("%w: %s", adapter.ErrBadGateway, "down")),
		f.adapter.EXPECT().ListFiles(gomock.Any(), "", 10).
			Return(models.FilePage{Files: f.metas(0, 2), Total: 2}, nil),
	)

	seq, result := f.coordinator.Rotate(ctx, "new phrase")
	assert.Empty(t, collect(seq))
	require.ErrorIs(t, result(), adapter.ErrBadGateway)
	require.Empty(t, f.updates)

	seq, result = f.coordinator.Resume(ctx)
	progress := collect(seq)

	require.NoError(t, result())
	require.Len(t, progress, 2)
	assert.NotEqual(t, "old-rotation", resumed.RotationID)
	assert.Equal(t, "new-salt", resumed.KeySalt)

	committed, err := f.cipher.UnwrapKey(f.committed.EncryptedEmergencyKey, f.master, true)
	require.NoError(t, err)
	defer committed.Destroy()
	for i := range f.files {
		assert.Equal(t, f.files[i].plaintext, f.decryptWithEmergency(t, i, committed))
	}
}

func TestResume_RewrapsToCommittedKeyNotSessionKey(t *testing.T) {
	f := newRotationFixture(t, 1, 10)

	stale, err := crypto.GenerateKey(true)
	require.NoError(t, err)
	f.session.SetEmergencyKey(stale)
	committed := f.commitEmergency(t, "salt-2")
	f.serveCommitted()

	f.expectLease()
	f.expectUpdates()
	f.expectJournal()
	f.journal.EXPECT().LatestRotation(gomock.Any(), testUserID).Return(models.JournalRotation{}, store.ErrNoRotation)
	f.adapter.EXPECT().ListFiles(gomock.Any(), "", 10).Return(models.FilePage{Files: f.metas(0, 1), Total: 1}, nil)

	seq, result := f.coordinator.Resume(context.Background())
	assert.Len(t, collect(seq), 1)
	require.NoError(t, result())

	assert.Equal(t, f.files[0].plaintext, f.decryptWithEmergency(t, 0, committed))
}

// ─────────────────────────────────────────────
// RotationPartialFailure
// ─────────────────────────────────────────────

func TestRotationPartialFailure_Error(t *testing.T) {
	ids := []string{"a", "b", "c", "d", "e", "f", "g"}
	causes := map[string]error{"a": crypto.ErrDecryptionFailed}

	err := &RotationPartialFailure{RotationID: "r", FailedFileIDs: ids, Causes: causes}

	assert.Equal(t, "key rotation failed for 7 file(s): a, b, c, d, e, ...", err.Error())
	assert.ErrorIs(t, err, crypto.ErrDecryptionFailed)
	assert.Equal(t, []string{"a", "b", "c", "d", "e", "f", "g"}, ids, "Error must not mutate the id list")
}
