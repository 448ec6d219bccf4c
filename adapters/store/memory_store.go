package store

import (
	"context"
	"sync"
	"time"

	"github.com/chainscore/walletauth/core"
)

// MemoryStore is an in-process implementation of the NonceStore interface,
// suitable for single-instance deployments and tests. One mutex guards the
// whole map; every operation is a cheap map access, so striping is not worth
// its complexity here.
type MemoryStore struct {
	mu     sync.Mutex
	nonces map[string]core.Nonce

	now  func() time.Time
	done chan struct{}
}

// NewMemoryStore creates a new in-memory nonce store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		nonces: make(map[string]core.Nonce),
		now:    time.Now,
		done:   make(chan struct{}),
	}
}

// Store generates and records a fresh nonce, replacing any pending one.
func (s *MemoryStore) Store(ctx context.Context, address string, ttl time.Duration) (string, time.Time, error) {
	canonical, err := core.ValidateAddress(address)
	if err != nil {
		return "", time.Time{}, err
	}

	value, err := core.NewNonceValue()
	if err != nil {
		return "", time.Time{}, err
	}

	now := s.now()
	nonce := core.Nonce{
		Address:   canonical,
		Value:     value,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}

	s.mu.Lock()
	s.nonces[canonical] = nonce
	s.mu.Unlock()

	return value, nonce.ExpiresAt, nil
}

// VerifyAndConsume checks the pending nonce and deletes it on success.
// Expiry is checked here regardless of the sweep, so an expired entry is
// never consumable even before the janitor reaches it.
func (s *MemoryStore) VerifyAndConsume(ctx context.Context, address, value string) (bool, error) {
	canonical, err := core.ValidateAddress(address)
	if err != nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	nonce, ok := s.nonces[canonical]
	if !ok {
		return false, nil
	}
	if nonce.Expired(s.now()) {
		delete(s.nonces, canonical)
		return false, nil
	}
	if nonce.Value != value {
		return false, nil
	}

	delete(s.nonces, canonical)
	return true, nil
}

// Delete removes any pending nonce for the address.
func (s *MemoryStore) Delete(ctx context.Context, address string) (bool, error) {
	canonical, err := core.ValidateAddress(address)
	if err != nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.nonces[canonical]
	delete(s.nonces, canonical)
	return ok, nil
}

// StartJanitor sweeps expired entries every interval until Close is called.
// The sweep only bounds memory growth; correctness does not depend on it.
func (s *MemoryStore) StartJanitor(interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-s.done:
				return
			case <-ticker.C:
				s.sweep()
			}
		}
	}()
}

func (s *MemoryStore) sweep() {
	now := s.now()
	s.mu.Lock()
	defer s.mu.Unlock()
	for address, nonce := range s.nonces {
		if nonce.Expired(now) {
			delete(s.nonces, address)
		}
	}
}

// Close stops the janitor goroutine, if one was started.
func (s *MemoryStore) Close() error {
	close(s.done)
	return nil
}
