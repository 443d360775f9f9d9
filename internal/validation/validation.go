// Package validation checks candidate unit stats and item bonuses against the
// schema registry before any mutation is accepted.
package validation

import (
	"fmt"

	"github.com/hollowdeep/garrison/internal/domain"
	"github.com/hollowdeep/garrison/internal/schema"
)

// UnitStats fails unless stats carries exactly the canonical stat keys.
// Checks run in order: size, per-key membership, completeness, so the error
// names the first offending or missing key.
func UnitStats(stats map[string]int64) error {
	if len(stats) != len(schema.StatKeys) {
		return fmt.Errorf("%w: stats must contain exactly the %d allowed keys",
			domain.ErrInvalidArgument, len(schema.StatKeys))
	}
	for k := range stats {
		if !schema.IsStatKey(k) {
			return fmt.Errorf("%w: invalid stat key: %s", domain.ErrInvalidArgument, k)
		}
	}
	for _, k := range schema.StatKeys {
		if _, ok := stats[k]; !ok {
			return fmt.Errorf("%w: missing required stat: %s", domain.ErrInvalidArgument, k)
		}
	}
	return nil
}

// Bonuses fails if any bonus key falls outside the canonical stat set. Empty
// and partial maps are valid; absent keys mean a zero delta.
func Bonuses(bonuses map[string]int64) error {
	for k := range bonuses {
		if !schema.IsStatKey(k) {
			return fmt.Errorf("%w: invalid bonus key: %s", domain.ErrInvalidArgument, k)
		}
	}
	return nil
}
