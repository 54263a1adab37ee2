// Package session keeps submissions in memory, keyed by submission ID.
// Entries expire after a TTL; nothing survives a restart.
package session

import (
	"sync"
	"time"

	"github.com/jonathan/smart-resume/internal/types"
)

type entry struct {
	sub     *types.Submission
	expires time.Time
}

// Store is an in-memory submission store safe for concurrent use.
type Store struct {
	mu      sync.RWMutex
	entries map[string]entry
	ttl     time.Duration
	now     func() time.Time
	stop    chan struct{}
	once    sync.Once
}

// NewStore creates a store whose entries live for ttl.
// When cleanupInterval is positive a goroutine evicts expired entries until Close.
func NewStore(ttl, cleanupInterval time.Duration) *Store {
	s := &Store{
		entries: make(map[string]entry),
		ttl:     ttl,
		now:     time.Now,
		stop:    make(chan struct{}),
	}
	if cleanupInterval > 0 {
		go s.cleanupLoop(cleanupInterval)
	}
	return s
}

// Put stores sub under its ID, replacing any previous value for that ID.
func (s *Store) Put(sub *types.Submission) {
	if sub == nil || sub.ID == "" {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[sub.ID] = entry{sub: sub, expires: s.now().Add(s.ttl)}
}

// Get returns the submission for id. Expired entries are reported as missing.
func (s *Store) Get(id string) (*types.Submission, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.entries[id]
	if !ok || s.expired(e) {
		return nil, false
	}
	return e.sub, true
}

// Delete removes id from the store.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, id)
}

// Len returns the number of stored entries, expired or not.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// EvictExpired removes expired entries and returns how many were removed.
func (s *Store) EvictExpired() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, e := range s.entries {
		if s.expired(e) {
			delete(s.entries, id)
			removed++
		}
	}
	return removed
}

// Close stops the cleanup goroutine.
func (s *Store) Close() {
	s.once.Do(func() { close(s.stop) })
}

func (s *Store) expired(e entry) bool {
	return s.ttl > 0 && s.now().After(e.expires)
}

func (s *Store) cleanupLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			s.EvictExpired()
		case <-s.stop:
			return
		}
	}
}
