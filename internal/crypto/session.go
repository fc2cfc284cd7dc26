package crypto

import (
	"sync"
	"time"
)

// KeySession holds the live keys of one authenticated session. It replaces
// any process-wide key store: every component that needs a key receives the
// session explicitly, and Clear destroys everything it holds.
type KeySession struct {
	mu          sync.Mutex
	master      *Key
	emergency   *Key
	idleTimeout time.Duration
	lastUsed    time.Time
	now         func() time.Time
}

// NewKeySession returns an empty session. A zero idleTimeout disables
// expiry.
func NewKeySession(idleTimeout time.Duration) *KeySession {
	return &KeySession{idleTimeout: idleTimeout, now: time.Now}
}

// SetMasterKey installs the owner master key, destroying any previous one.
func (s *KeySession) SetMasterKey(k *Key) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.master != nil && s.master != k {
		s.master.Destroy()
	}
	s.master = k
	s.lastUsed = s.now()
}

// SetEmergencyKey installs the emergency key, destroying any previous one.
func (s *KeySession) SetEmergencyKey(k *Key) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.emergency != nil && s.emergency != k {
		s.emergency.Destroy()
	}
	s.emergency = k
	s.lastUsed = s.now()
}

// MasterKey returns the master key or ErrSessionLocked / ErrSessionExpired.
func (s *KeySession) MasterKey() (*Key, error) {
	return s.get(func() *Key { return s.master })
}

// EmergencyKey returns the emergency key or ErrSessionLocked /
// ErrSessionExpired.
func (s *KeySession) EmergencyKey() (*Key, error) {
	return s.get(func() *Key { return s.emergency })
}

// HasEmergencyKey reports whether an emergency key is loaded.
func (s *KeySession) HasEmergencyKey() bool {
	_, err := s.EmergencyKey()
	return err == nil
}

// Expired reports whether the idle deadline has passed. The next key access
// will clear the session and return ErrSessionExpired.
func (s *KeySession) Expired() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.idleTimeout > 0 && !s.lastUsed.IsZero() && s.now().Sub(s.lastUsed) > s.idleTimeout
}

// Clear destroys every key the session holds. Safe to call repeatedly.
func (s *KeySession) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clearLocked()
}

func (s *KeySession) get(pick func() *Key) (*Key, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.idleTimeout > 0 && !s.lastUsed.IsZero() && s.now().Sub(s.lastUsed) > s.idleTimeout {
		s.clearLocked()
		return nil, ErrSessionExpired
	}

	k := pick()
	if k == nil {
		return nil, ErrSessionLocked
	}
	s.lastUsed = s.now()
	return k, nil
}

func (s *KeySession) clearLocked() {
	s.master.Destroy()
	s.emergency.Destroy()
	s.master = nil
	s.emergency = nil
	s.lastUsed = time.Time{}
}
