// Package session holds the per-research-run server-side state: the topic,
// the fetched papers and the RAG readiness flag, keyed by an opaque session
// id that is also the vector index namespace for the run.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"research-rag-platform/internal/logger"
	"research-rag-platform/models"
)

// ErrNotFound is returned when a session id is unknown or already expired.
var ErrNotFound = errors.New("session not found or expired")

// Data is the payload stored per session.
type Data struct {
	Topic    string         `json:"topic"`
	Papers   []models.Paper `json:"papers"`
	RAGReady bool           `json:"rag_ready"`
}

// Store persists session payloads with a fixed per-entry TTL. Expiry is set
// at Put time and never renewed on access.
type Store interface {
	Put(ctx context.Context, id string, data Data) error
	Get(ctx context.Context, id string) (Data, error)
	// Sweep removes all expired entries and returns how many were removed.
	Sweep(ctx context.Context) (int, error)
	Close() error
}

type memoryEntry struct {
	data      Data
	createdAt time.Time
	expiresAt time.Time
}

// MemoryStore is an in-process Store guarded by a single mutex. Contention
// is low (sessions number in the thousands at most), so one global lock is
// enough. Expired entries are removed lazily on Get and in bulk by Sweep.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	ttl     time.Duration
	now     func() time.Time
}

// NewMemoryStore creates a MemoryStore with the given entry TTL.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (s *MemoryStore) Put(_ context.Context, id string, data Data) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.entries[id] = memoryEntry{
		data:      data,
		createdAt: now,
		expiresAt: now.Add(s.ttl),
	}
	return nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (Data, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[id]
	if !ok {
		return Data{}, ErrNotFound
	}
	if !s.now().Before(entry.expiresAt) {
		delete(s.entries, id)
		return Data{}, ErrNotFound
	}
	return entry.data, nil
}

func (s *MemoryStore) Sweep(_ context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for id, entry := range s.entries {
		if !now.Before(entry.expiresAt) {
			delete(s.entries, id)
			removed++
		}
	}
	return removed, nil
}

func (s *MemoryStore) Close() error { return nil }

// Len reports the number of live and not-yet-swept entries.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Sweeper periodically sweeps a Store in the background.
type Sweeper struct {
	store    Store
	interval time.Duration
	stopChan chan struct{}
	done     chan struct{}
}

// NewSweeper creates a Sweeper that sweeps store every interval.
func NewSweeper(store Store, interval time.Duration) *Sweeper {
	return &Sweeper{
		store:    store,
		interval: interval,
		stopChan: make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start runs the sweep loop until Stop is called.
func (s *Sweeper) Start() {
	go func() {
		defer close(s.done)
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
				removed, err := s.store.Sweep(ctx)
				cancel()
				if err != nil {
					logger.Warn("session sweep failed", "error", err)
				} else if removed > 0 {
					logger.Info("swept expired sessions", "removed", removed)
				}
			case <-s.stopChan:
				return
			}
		}
	}()
}

// Stop terminates the sweep loop and waits for it to exit.
func (s *Sweeper) Stop() {
	close(s.stopChan)
	<-s.done
}
