package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hollowdeep/garrison/internal/storage"
)

// Store implements storage.Store on a single storage_objects table keyed by
// (collection, key, user_id) with an optimistic-concurrency version column.
type Store struct {
	db *pgxpool.Pool
}

// NewStore creates a new Store
func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

// Read fetches one record. Absence is not an error: it returns (nil, nil).
func (s *Store) Read(ctx context.Context, collection, key, userID string) (*storage.Record, error) {
	query := `
		SELECT value, version
		FROM storage_objects
		WHERE collection = $1 AND key = $2 AND user_id = $3
	`
	var rec storage.Record
	err := s.db.QueryRow(ctx, query, collection, key, userID).Scan(&rec.Value, &rec.Version)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read storage object: %w", err)
	}
	return &rec, nil
}

// Write persists one record under a fresh version token. The expected
// version selects the write policy: VersionAny upserts unconditionally,
// VersionNone inserts only when absent, and any other token is compared
// against the stored version in the same statement.
func (s *Store) Write(ctx context.Context, collection, key, userID string, value []byte, expectedVersion string) (string, error) {
	newVersion := uuid.NewString()

	switch expectedVersion {
	case storage.VersionAny:
		query := `
			INSERT INTO storage_objects (collection, key, user_id, value, version)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (collection, key, user_id) DO UPDATE
			SET value = EXCLUDED.value, version = EXCLUDED.version, updated_at = NOW()
		`
		if _, err := s.db.Exec(ctx, query, collection, key, userID, value, newVersion); err != nil {
			return "", fmt.Errorf("failed to write storage object: %w", err)
		}

	case storage.VersionNone:
		query := `
			INSERT INTO storage_objects (collection, key, user_id, value, version)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (collection, key, user_id) DO NOTHING
		`
		tag, err := s.db.Exec(ctx, query, collection, key, userID, value, newVersion)
		if err != nil {
			return "", fmt.Errorf("failed to insert storage object: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return "", storage.ErrVersionConflict
		}

	default:
		query := `
			UPDATE storage_objects
			SET value = $4, version = $5, updated_at = NOW()
			WHERE collection = $1 AND key = $2 AND user_id = $3 AND version = $6
		`
		tag, err := s.db.Exec(ctx, query, collection, key, userID, value, newVersion, expectedVersion)
		if err != nil {
			return "", fmt.Errorf("failed to update storage object: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return "", storage.ErrVersionConflict
		}
	}

	return newVersion, nil
}
