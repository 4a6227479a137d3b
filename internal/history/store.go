// Package history keeps the bounded, persisted log of successful lookups.
package history

import (
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/Michaelcode2/pricechecker/internal/domain"
	"github.com/Michaelcode2/pricechecker/internal/events"
	"github.com/Michaelcode2/pricechecker/internal/storage"
)

// Store is the most-recent-first scan history, persisted under storage.KeyScanHistory.
// Writers are serialised; readers always see a complete snapshot.
type Store struct {
	kv     storage.KV
	events events.Publisher

	writeMu sync.Mutex

	mu      sync.RWMutex
	entries []domain.HistoryEntry
}

// NewStore creates an empty store; call Load to read the persisted log.
func NewStore(kv storage.KV, pub events.Publisher) *Store {
	return &Store{kv: kv, events: events.OrNop(pub)}
}

// Load reads the persisted history and makes it the current snapshot.
// A missing or undecodable blob yields an empty history; the problem is only logged.
func (s *Store) Load() []domain.HistoryEntry {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	var entries []domain.HistoryEntry
	err := storage.GetJSON(s.kv, storage.KeyScanHistory, &entries)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		entries = nil
	case err != nil:
		zap.L().Warn("scan history unreadable, starting empty",
			zap.String("namespace", "history"),
			zap.Error(err),
		)
		entries = nil
	}
	if len(entries) > domain.MaxHistoryEntries {
		entries = entries[:domain.MaxHistoryEntries]
	}
	s.swap(entries)
	return clone(entries)
}

// Snapshot returns a copy of the current history.
func (s *Store) Snapshot() []domain.HistoryEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clone(s.entries)
}

// Len returns the number of entries in the current history.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Record prepends entry, drops anything past MaxHistoryEntries and persists the result.
// The in-memory history only changes once the write has succeeded.
func (s *Store) Record(entry domain.HistoryEntry) ([]domain.HistoryEntry, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.RLock()
	next := make([]domain.HistoryEntry, 0, domain.MaxHistoryEntries+1)
	next = append(next, entry)
	next = append(next, s.entries...)
	s.mu.RUnlock()
	if len(next) > domain.MaxHistoryEntries {
		next = next[:domain.MaxHistoryEntries]
	}

	if err := storage.PutJSON(s.kv, storage.KeyScanHistory, next); err != nil {
		zap.L().Error("failed to persist scan history",
			zap.String("namespace", "history"),
			zap.String("barcode", entry.Barcode),
			zap.Error(err),
		)
		return nil, &storage.Error{Op: "write", Key: storage.KeyScanHistory, Err: err}
	}

	s.swap(next)
	s.events.Publish(events.TopicHistoryChanged, clone(next))
	return clone(next), nil
}

// Clear persists an empty history.
func (s *Store) Clear() error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if err := storage.PutJSON(s.kv, storage.KeyScanHistory, []domain.HistoryEntry{}); err != nil {
		zap.L().Error("failed to clear scan history", zap.String("namespace", "history"), zap.Error(err))
		return &storage.Error{Op: "clear", Key: storage.KeyScanHistory, Err: err}
	}
	s.swap(nil)
	s.events.Publish(events.TopicHistoryChanged, []domain.HistoryEntry{})
	zap.L().Info("scan history cleared", zap.String("namespace", "history"))
	return nil
}

func (s *Store) swap(entries []domain.HistoryEntry) {
	s.mu.Lock()
	s.entries = entries
	s.mu.Unlock()
}

func clone(entries []domain.HistoryEntry) []domain.HistoryEntry {
	out := make([]domain.HistoryEntry, len(entries))
	for i, e := range entries {
		e.Product = e.Product.Clone()
		out[i] = e
	}
	return out
}
