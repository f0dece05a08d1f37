// Package history keeps the list of recent candidate searches.
//
// The list is stored as a JSON array of strings under a single key of an
// injected kv.Storage, most recent first, without duplicates and capped at
// MaxEntries. Storage failures never reach the caller: a store that cannot be
// read behaves as an empty history.
package history

import (
	"encoding/json"
	"errors"
	"log/slog"
	"strings"

	"github.com/kamusis/scout-cli/internal/kv"
)

const (
	// StorageKey is the key the history is persisted under.
	StorageKey = "candidate-search-history"
	// MaxEntries is the history length cap.
	MaxEntries = 10
)

// Store reads and writes search history through a kv.Storage.
type Store struct {
	storage kv.Storage
	logger  *slog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used to report swallowed storage errors.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// New returns a Store backed by storage.
func New(storage kv.Storage, opts ...Option) *Store {
	s := &Store{storage: storage, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Save records query as the most recent search. Blank queries are ignored.
// An earlier identical entry (exact match) is dropped.
func (s *Store) Save(query string) {
	if strings.TrimSpace(query) == "" {
		return
	}

	if u, ok := s.storage.(kv.Updater); ok {
		err := u.Update(StorageKey, func(cur []byte) ([]byte, error) {
			list, err := decode(cur)
			if err != nil {
				s.logger.Debug("discarding unreadable search history", "error", err)
				list = nil
			}
			return json.Marshal(prepend(list, query))
		})
		if err != nil {
			s.logger.Debug("cannot save search history", "error", err)
		}
		return
	}

	// Plain storages get last-write-wins semantics.
	b, err := json.Marshal(prepend(s.List(), query))
	if err != nil {
		s.logger.Debug("cannot encode search history", "error", err)
		return
	}
	if err := s.storage.Set(StorageKey, b); err != nil {
		s.logger.Debug("cannot save search history", "error", err)
	}
}

// List returns the history, most recent first. It never returns nil.
func (s *Store) List() []string {
	b, err := s.storage.Get(StorageKey)
	if err != nil {
		if !errors.Is(err, kv.ErrNotFound) {
			s.logger.Debug("cannot read search history", "error", err)
		}
		return []string{}
	}
	list, err := decode(b)
	if err != nil {
		s.logger.Debug("cannot decode search history", "error", err)
		return []string{}
	}
	return normalize(list)
}

// Clear removes all history.
func (s *Store) Clear() {
	if err := s.storage.Remove(StorageKey); err != nil {
		s.logger.Debug("cannot clear search history", "error", err)
	}
}

func decode(b []byte) ([]string, error) {
	if len(b) == 0 {
		return nil, nil
	}
	var list []string
	if err := json.Unmarshal(b, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func prepend(list []string, query string) []string {
	out := make([]string, 0, MaxEntries)
	out = append(out, query)
	for _, q := range list {
		if q == query {
			continue
		}
		out = append(out, q)
	}
	return normalize(out)
}

// normalize enforces the list invariants on data that may have been written
// by something else: no blanks, no duplicates, at most MaxEntries.
func normalize(list []string) []string {
	out := make([]string, 0, min(len(list), MaxEntries))
	seen := make(map[string]bool, len(list))
	for _, q := range list {
		if strings.TrimSpace(q) == "" || seen[q] {
			continue
		}
		seen[q] = true
		out = append(out, q)
		if len(out) == MaxEntries {
			break
		}
	}
	return out
}
