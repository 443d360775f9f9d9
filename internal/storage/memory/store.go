// Package memory provides an in-process storage.Store. It backs unit tests
// and dev mode when no database is configured.
package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/hollowdeep/garrison/internal/storage"
)

type recordKey struct {
	collection string
	key        string
	userID     string
}

// Store is a mutex-guarded map implementing storage.Store with full
// version-token semantics.
type Store struct {
	mu      sync.Mutex
	records map[recordKey]storage.Record
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{records: make(map[recordKey]storage.Record)}
}

// Read returns a copy of the stored record, or (nil, nil) when absent.
func (s *Store) Read(_ context.Context, collection, key, userID string) (*storage.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[recordKey{collection, key, userID}]
	if !ok {
		return nil, nil
	}
	cp := storage.Record{
		Value:   append([]byte(nil), rec.Value...),
		Version: rec.Version,
	}
	return &cp, nil
}

// Write stores value under a fresh version token, honoring the expected
// version: VersionAny overwrites, VersionNone requires absence, anything else
// is compared against the current token.
func (s *Store) Write(_ context.Context, collection, key, userID string, value []byte, expectedVersion string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	k := recordKey{collection, key, userID}
	cur, exists := s.records[k]

	switch expectedVersion {
	case storage.VersionAny:
	case storage.VersionNone:
		if exists {
			return "", storage.ErrVersionConflict
		}
	default:
		if !exists || cur.Version != expectedVersion {
			return "", storage.ErrVersionConflict
		}
	}

	version := uuid.NewString()
	s.records[k] = storage.Record{
		Value:   append([]byte(nil), value...),
		Version: version,
	}
	return version, nil
}
