package service

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"sync"
	"sync/atomic"

	"github.com/MKhiriev/legacy-shield/internal/adapter"
	"github.com/MKhiriev/legacy-shield/internal/crypto"
	"github.com/MKhiriev/legacy-shield/internal/logger"
	"github.com/MKhiriev/legacy-shield/internal/store"
	"github.com/MKhiriev/legacy-shield/internal/utils"
	"github.com/MKhiriev/legacy-shield/models"
)

// userLocks serializes rotations of one user inside the process. The server
// lease covers other processes and devices.
type userLocks struct {
	mu   sync.Mutex
	held map[int64]struct{}
}

func newUserLocks() *userLocks {
	return &userLocks{held: make(map[int64]struct{})}
}

// rotationLocks is shared by every coordinator in the process.
var rotationLocks = newUserLocks()

func (l *userLocks) tryLock(userID int64) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.held[userID]; ok {
		return false
	}
	l.held[userID] = struct{}{}
	return true
}

func (l *userLocks) unlock(userID int64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.held, userID)
}

type rotationCoordinator struct {
	adapter adapter.ServerAdapter
	journal store.RotationJournal
	kdf     crypto.KeyDerivation
	cipher  crypto.EnvelopeCipher
	session *crypto.KeySession
	ids     *utils.UUIDGenerator
	locks   *userLocks

	pageSize int
	logger   *logger.Logger
}

// NewRotationCoordinator returns a RotationCoordinator working on the keys
// of session and recording progress in journal.
func NewRotationCoordinator(serverAdapter adapter.ServerAdapter, journal store.RotationJournal, kdf crypto.KeyDerivation,
	cipher crypto.EnvelopeCipher, session *crypto.KeySession, pageSize int, logger *logger.Logger) RotationCoordinator {
	if pageSize <= 0 {
		pageSize = DefaultPageLimit
	}

	return &rotationCoordinator{
		adapter:  serverAdapter,
		journal:  journal,
		kdf:      kdf,
		cipher:   cipher,
		session:  session,
		ids:      utils.NewUUIDGenerator(),
		locks:    rotationLocks,
		pageSize: pageSize,
		logger:   logger,
	}
}

// rotationRun is the state of one pass over a set of files.
type rotationRun struct {
	rotationID string
	leaseID    string
	master     *crypto.Key
	emergency  *crypto.Key

	// keySalt identifies the committed emergency key the run rewraps to.
	keySalt string
	// unjournaled is set when the journal could not register the run.
	unjournaled bool

	done   int
	total  int
	failed []string
	causes map[string]error
}

func (r *rotationRun) fail(fileID string, err error) {
	if r.causes == nil {
		r.causes = make(map[string]error)
	}
	r.failed = append(r.failed, fileID)
	r.causes[fileID] = err
}

// result returns nil or a *RotationPartialFailure.
func (r *rotationRun) result() error {
	if len(r.failed) == 0 {
		return nil
	}
	return &RotationPartialFailure{RotationID: r.rotationID, FailedFileIDs: r.failed, Causes: r.causes}
}

// interrupted wraps the partial result of a run that stopped early.
func (r *rotationRun) interrupted(ctx context.Context) error {
	stop := ErrRotationInterrupted
	if err := ctx.Err(); err != nil {
		stop = fmt.Errorf("%w: %w", ErrRotationInterrupted, err)
	}
	return errors.Join(stop, r.result())
}

type rotationBody func(ctx context.Context, yield func(models.RotationProgress) bool) error

// sequence turns body into a single-use progress sequence. Ranging over it
// a second time yields one progress value carrying ErrSequenceConsumed and
// leaves the first result untouched.
func sequence(ctx context.Context, body rotationBody) (iter.Seq[models.RotationProgress], func() error) {
	var (
		started atomic.Bool
		mu      sync.Mutex
		result  = ErrNotStarted
	)

	seq := func(yield func(models.RotationProgress) bool) {
		if !started.CompareAndSwap(false, true) {
			yield(models.RotationProgress{Err: ErrSequenceConsumed})
			return
		}

		err := body(ctx, yield)

		mu.Lock()
		result = err
		mu.Unlock()
	}

	return seq, func() error {
		mu.Lock()
		defer mu.Unlock()
		return result
	}
}

func (c *rotationCoordinator) Rotate(ctx context.Context, phrase string) (iter.Seq[models.RotationProgress], func() error) {
	return sequence(ctx, func(ctx context.Context, yield func(models.RotationProgress) bool) error {
		if phrase == "" {
			return ErrInvalidDataProvided
		}

		return c.locked(ctx, func(run *rotationRun) error {
			if err := c.commitPhrase(ctx, run, phrase); err != nil {
				return err
			}

			run.rotationID = c.ids.Generate()
			c.startJournal(ctx, run)

			return c.sweep(ctx, run, nil, yield)
		})
	})
}

func (c *rotationCoordinator) Retry(ctx context.Context, fileIDs []string) (iter.Seq[models.RotationProgress], func() error) {
	if len(fileIDs) == 0 {
		return c.Resume(ctx)
	}

	ids := make([]string, len(fileIDs))
	copy(ids, fileIDs)

	return sequence(ctx, func(ctx context.Context, yield func(models.RotationProgress) bool) error {
		return c.locked(ctx, func(run *rotationRun) error {
			if err := c.loadCommittedKey(ctx, run); err != nil {
				return err
			}
			c.latestRotation(ctx, run)

			run.total = len(ids)
			for _, fileID := range ids {
				if ctx.Err() != nil {
					return run.interrupted(ctx)
				}

				file, err := c.adapter.GetFile(ctx, fileID)
				if err != nil {
					err = fmt.Errorf("getting file: %w", mapAdapterError(err))
				} else {
					err = c.step(ctx, run, file)
				}

				if !c.report(ctx, run, fileID, err, yield) {
					return run.interrupted(ctx)
				}
			}

			return run.result()
		})
	})
}

func (c *rotationCoordinator) Resume(ctx context.Context) (iter.Seq[models.RotationProgress], func() error) {
	return sequence(ctx, func(ctx context.Context, yield func(models.RotationProgress) bool) error {
		return c.locked(ctx, func(run *rotationRun) error {
			if err := c.loadCommittedKey(ctx, run); err != nil {
				return err
			}

			skip := c.latestRotation(ctx, run)
			return c.sweep(ctx, run, skip, yield)
		})
	})
}

// locked runs fn under the in-process user lock and a server rotation
// lease. The lease is released even when ctx is cancelled.
func (c *rotationCoordinator) locked(ctx context.Context, fn func(run *rotationRun) error) error {
	userID, err := tokenUserID(c.adapter)
	if err != nil {
		return err
	}

	if !c.locks.tryLock(userID) {
		return ErrRotationInProgress
	}
	defer c.locks.unlock(userID)

	master, err := c.session.MasterKey()
	if err != nil {
		return err
	}

	run := &rotationRun{leaseID: c.ids.Generate(), master: master}

	if _, err = c.adapter.AcquireRotationLease(ctx, run.leaseID); err != nil {
		return fmt.Errorf("acquiring rotation lease: %w", mapAdapterError(err))
	}
	defer func() {
		if err := c.adapter.ReleaseRotationLease(context.WithoutCancel(ctx), run.leaseID); err != nil {
			c.logger.Warn().Err(err).Str("lease_id", run.leaseID).Msg("failed to release rotation lease")
		}
	}()

	return fn(run)
}

// commitPhrase derives the new emergency key and commits it with the new
// verifier in one update. On any failure the previous emergency key and
// verifier stay in place.
func (c *rotationCoordinator) commitPhrase(ctx context.Context, run *rotationRun, phrase string) error {
	salt, err := c.kdf.GenerateSalt()
	if err != nil {
		return fmt.Errorf("generating emergency salt: %w", err)
	}

	emergency, err := c.kdf.DeriveKey(phrase, salt, true)
	if err != nil {
		return fmt.Errorf("deriving emergency key: %w", err)
	}

	committed := false
	defer func() {
		if !committed {
			emergency.Destroy()
		}
	}()

	verifier, err := c.kdf.DeriveVerifier(phrase)
	if err != nil {
		return fmt.Errorf("deriving verifier: %w", err)
	}

	record, err := c.cipher.WrapKey(emergency, run.master)
	if err != nil {
		return fmt.Errorf("wrapping emergency key: %w", err)
	}

	access := models.EmergencyAccess{
		Verifier:              verifier,
		EmergencyKeySalt:      salt,
		EncryptedEmergencyKey: record,
	}
	if err = c.adapter.SetEmergencyAccess(ctx, run.leaseID, access); err != nil {
		return fmt.Errorf("committing emergency access: %w", mapAdapterError(err))
	}

	committed = true
	c.session.SetEmergencyKey(emergency)
	run.emergency = emergency
	run.keySalt = salt

	c.logger.Info().Msg("emergency access committed")
	return nil
}

// loadCommittedKey unwraps the emergency key committed on the server now.
// Retries and resumes always rewrap to it, never to a key from an older
// commit.
func (c *rotationCoordinator) loadCommittedKey(ctx context.Context, run *rotationRun) error {
	access, err := c.adapter.GetEmergencyAccess(ctx)
	if err != nil {
		return fmt.Errorf("fetching emergency access: %w", mapAdapterError(err))
	}
	if access.EncryptedEmergencyKey == "" {
		return ErrEmergencyNotConfigured
	}

	emergency, err := c.cipher.UnwrapKey(access.EncryptedEmergencyKey, run.master, true)
	if err != nil {
		return fmt.Errorf("unwrapping emergency key: %w", err)
	}
	c.session.SetEmergencyKey(emergency)

	run.emergency = emergency
	run.keySalt = access.EmergencyKeySalt
	return nil
}

// latestRotation points run at the journal's latest rotation and returns
// the files it already finished. The journal is trusted only when that
// rotation rewrapped to the committed emergency key. Otherwise a new
// rotation is started and nothing is skipped.
func (c *rotationCoordinator) latestRotation(ctx context.Context, run *rotationRun) map[string]struct{} {
	userID, _ := tokenUserID(c.adapter)

	latest, err := c.journal.LatestRotation(ctx, userID)
	switch {
	case err != nil && !errors.Is(err, store.ErrNoRotation):
		c.logger.Warn().Err(err).Msg("failed to read rotation journal")
	case err == nil && run.keySalt != "" && latest.KeySalt == run.keySalt:
		return c.finishedFiles(ctx, run, latest.RotationID)
	case err == nil:
		c.logger.WithRotation(latest.RotationID).Info().Msg("journaled rotation targets another emergency key, doing a full pass")
	}

	run.rotationID = c.ids.Generate()
	c.startJournal(ctx, run)
	return nil
}

func (c *rotationCoordinator) finishedFiles(ctx context.Context, run *rotationRun, rotationID string) map[string]struct{} {
	run.rotationID = rotationID

	entries, err := c.journal.Entries(ctx, rotationID)
	if err != nil {
		c.logger.WithRotation(rotationID).Warn().Err(err).Msg("failed to read journal entries")
		return nil
	}

	done := make(map[string]struct{}, len(entries))
	for _, entry := range entries {
		if entry.Status == models.RotationDone {
			done[entry.FileID] = struct{}{}
		}
	}
	return done
}

// startJournal registers run in the journal. A run the journal cannot
// register records nothing, so a later resume never trusts a partial
// record of it.
func (c *rotationCoordinator) startJournal(ctx context.Context, run *rotationRun) {
	userID, _ := tokenUserID(c.adapter)

	rotation := models.JournalRotation{RotationID: run.rotationID, KeySalt: run.keySalt}
	if err := c.journal.StartRotation(ctx, rotation, userID); err != nil {
		run.unjournaled = true
		c.logger.WithRotation(run.rotationID).Warn().Err(err).Msg("failed to start rotation journal, continuing unjournaled")
	}
}

// sweep pages through every file of the owner, skipping the ids in skip.
// The lease is renewed after every page.
func (c *rotationCoordinator) sweep(ctx context.Context, run *rotationRun, skip map[string]struct{},
	yield func(models.RotationProgress) bool) error {
	cursor := ""
	for {
		if ctx.Err() != nil {
			return run.interrupted(ctx)
		}

		page, err := c.adapter.ListFiles(ctx, cursor, c.pageSize)
		if err != nil {
			return errors.Join(fmt.Errorf("listing files: %w", mapAdapterError(err)), run.result())
		}
		run.total = max(page.Total-len(skip), run.done)

		for _, file := range page.Files {
			if _, ok := skip[file.FileID]; ok {
				continue
			}
			if ctx.Err() != nil {
				return run.interrupted(ctx)
			}

			if !c.report(ctx, run, file.FileID, c.step(ctx, run, file), yield) {
				return run.interrupted(ctx)
			}
		}

		if page.NextCursor == "" {
			break
		}
		cursor = page.NextCursor

		if _, err = c.adapter.AcquireRotationLease(ctx, run.leaseID); err != nil {
			return errors.Join(fmt.Errorf("renewing rotation lease: %w", mapAdapterError(err)), run.result())
		}
	}

	c.logger.WithRotation(run.rotationID).Info().
		Int("done", run.done).
		Int("failed", len(run.failed)).
		Msg("rotation pass finished")

	return run.result()
}

// step rewraps one file's content key from the owner wrap to the emergency
// key and persists the new emergency wrap. The owner wrap is never written.
func (c *rotationCoordinator) step(ctx context.Context, run *rotationRun, file models.File) error {
	wrapped, err := ownerWrap(file)
	if err != nil {
		return err
	}

	rewrapped, err := c.cipher.RewrapKey(wrapped, run.master, run.emergency)
	if err != nil {
		return err
	}

	update := models.EmergencyWrapUpdate{
		FileID:                file.FileID,
		EmergencyEncryptedKey: b64(rewrapped.Ciphertext),
		EmergencyIV:           b64(rewrapped.Nonce),
	}
	if err = c.adapter.UpdateEmergencyWrap(ctx, run.leaseID, update); err != nil {
		return fmt.Errorf("updating emergency wrap: %w", mapAdapterError(err))
	}

	return nil
}

// report journals the outcome of one file and yields progress. It returns
// false when the consumer stopped ranging.
func (c *rotationCoordinator) report(ctx context.Context, run *rotationRun, fileID string, err error,
	yield func(models.RotationProgress) bool) bool {
	log := c.logger.WithRotation(run.rotationID).WithFile(fileID)

	entry := models.JournalEntry{RotationID: run.rotationID, FileID: fileID, Status: models.RotationDone}
	if err != nil {
		run.fail(fileID, err)
		entry.Status = models.RotationFailed
		entry.Error = err.Error()
		log.Warn().Err(err).Msg("file rotation failed")
	}

	if !run.unjournaled {
		if jerr := c.journal.Record(context.WithoutCancel(ctx), entry); jerr != nil {
			log.Warn().Err(jerr).Msg("failed to journal file rotation")
		}
	}

	run.done++
	run.total = max(run.total, run.done)

	return yield(models.RotationProgress{Done: run.done, Total: run.total, FileID: fileID, Err: err})
}
