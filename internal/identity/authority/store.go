package authority

import (
	"context"
	"sync"

	id "rxintake/pkg/domain"
	"rxintake/pkg/platform/sentinel"
)

// AccountStore looks up known patients. FindByEmail returns sentinel.ErrNotFound.
type AccountStore interface {
	FindByEmail(ctx context.Context, email id.Email) (*Account, error)
}

// DeviceStore remembers which device fingerprints are trusted per email.
type DeviceStore interface {
	IsTrusted(ctx context.Context, email id.Email, fingerprint string) (bool, error)
	Trust(ctx context.Context, device TrustedDevice) error
}

// ChallengeStore holds at most one challenge per email. Put replaces any
// existing challenge atomically. Get returns sentinel.ErrNotFound.
type ChallengeStore interface {
	Put(ctx context.Context, challenge Challenge) error
	Get(ctx context.Context, email id.Email) (*Challenge, error)
	Delete(ctx context.Context, email id.Email) error
}

// InMemoryAccountStore is seeded at startup.
type InMemoryAccountStore struct {
	mu       sync.RWMutex
	accounts map[id.Email]Account
}

func NewInMemoryAccountStore(seed ...Account) *InMemoryAccountStore {
	s := &InMemoryAccountStore{accounts: make(map[id.Email]Account, len(seed))}
	for _, a := range seed {
		s.accounts[a.Email] = a
	}
	return s
}

func (s *InMemoryAccountStore) FindByEmail(_ context.Context, email id.Email) (*Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.accounts[email]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return &a, nil
}

// Add registers an account.
func (s *InMemoryAccountStore) Add(a Account) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts[a.Email] = a
}

type deviceKey struct {
	email       id.Email
	fingerprint string
}

type InMemoryDeviceStore struct {
	mu      sync.RWMutex
	devices map[deviceKey]TrustedDevice
}

func NewInMemoryDeviceStore() *InMemoryDeviceStore {
	return &InMemoryDeviceStore{devices: make(map[deviceKey]TrustedDevice)}
}

func (s *InMemoryDeviceStore) IsTrusted(_ context.Context, email id.Email, fingerprint string) (bool, error) {
	if fingerprint == "" {
		return false, nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.devices[deviceKey{email, fingerprint}]
	return ok, nil
}

func (s *InMemoryDeviceStore) Trust(_ context.Context, device TrustedDevice) error {
	if device.Fingerprint == "" {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.devices[deviceKey{device.Email, device.Fingerprint}] = device
	return nil
}

type InMemoryChallengeStore struct {
	mu         sync.RWMutex
	challenges map[id.Email]Challenge
}

func NewInMemoryChallengeStore() *InMemoryChallengeStore {
	return &InMemoryChallengeStore{challenges: make(map[id.Email]Challenge)}
}

func (s *InMemoryChallengeStore) Put(_ context.Context, c Challenge) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.challenges[c.Email] = c
	return nil
}

func (s *InMemoryChallengeStore) Get(_ context.Context, email id.Email) (*Challenge, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.challenges[email]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return &c, nil
}

func (s *InMemoryChallengeStore) Delete(_ context.Context, email id.Email) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.challenges, email)
	return nil
}
