package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hollowdeep/garrison/internal/domain"
	"github.com/hollowdeep/garrison/internal/schema"
)

func fullStats() map[string]int64 {
	stats := make(map[string]int64, len(schema.StatKeys))
	for i, k := range schema.StatKeys {
		stats[k] = int64(i + 1)
	}
	return stats
}

func TestUnitStats(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(map[string]int64)
		wantErr string
	}{
		{
			name:   "all seven canonical keys",
			mutate: func(m map[string]int64) {},
		},
		{
			name:    "too few keys",
			mutate:  func(m map[string]int64) { delete(m, "melee") },
			wantErr: "exactly the 7 allowed keys",
		},
		{
			name: "unknown key replaces canonical one",
			mutate: func(m map[string]int64) {
				delete(m, "melee")
				m["luck"] = 3
			},
			wantErr: "invalid stat key: luck",
		},
		{
			name:    "extra key on top of full set",
			mutate:  func(m map[string]int64) { m["luck"] = 3 },
			wantErr: "exactly the 7 allowed keys",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stats := fullStats()
			tt.mutate(stats)

			err := UnitStats(stats)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, domain.ErrInvalidArgument)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestUnitStatsZeroValuesAllowed(t *testing.T) {
	stats := fullStats()
	for k := range stats {
		stats[k] = 0
	}
	assert.NoError(t, UnitStats(stats))
}

func TestBonuses(t *testing.T) {
	assert.NoError(t, Bonuses(nil))
	assert.NoError(t, Bonuses(map[string]int64{}))
	assert.NoError(t, Bonuses(map[string]int64{"melee": 3, "hp_max": -5}))
	assert.NoError(t, Bonuses(fullStats()))

	err := Bonuses(map[string]int64{"melee": 3, "crit": 1})
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
	assert.Contains(t, err.Error(), "invalid bonus key: crit")
}
