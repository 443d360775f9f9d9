// Package storage defines the per-user key/value backend the service
// persists state into. The hosting platform supplies the implementation; the
// core only depends on this interface so it is testable without a real
// backend.
package storage

import (
	"context"
	"errors"
)

// Expected-version tokens for Write.
const (
	// VersionAny overwrites unconditionally, regardless of what is stored.
	VersionAny = ""
	// VersionNone writes only if no record exists yet (create-only).
	VersionNone = "*"
)

// ErrVersionConflict is returned when the expected version passed to Write
// does not match the stored record.
var ErrVersionConflict = errors.New("storage version conflict")

// Record is a stored value together with its optimistic-concurrency token.
type Record struct {
	Value   []byte
	Version string
}

// Store reads and writes per-user records addressed by (collection, key,
// userID). Read returns (nil, nil) when the record is absent. Write returns
// the new version token on success.
type Store interface {
	Read(ctx context.Context, collection, key, userID string) (*Record, error)
	Write(ctx context.Context, collection, key, userID string, value []byte, expectedVersion string) (string, error)
}
