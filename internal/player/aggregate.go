package player

import (
	"github.com/hollowdeep/garrison/internal/domain"
	"github.com/hollowdeep/garrison/internal/schema"
)

// FinalStats combines a unit's base stats with the bonuses of every equipped
// item that still exists in items. Pure: neither argument is modified. Slots
// referencing a missing item are skipped, and bonus keys outside the
// canonical stat set are filtered out even though grant-time validation
// rejects them. Addition commutes, so slot iteration order is irrelevant.
func FinalStats(unit *domain.Unit, items map[string]*domain.Item) domain.StatsMap {
	final := make(domain.StatsMap, len(schema.StatKeys))
	for _, k := range schema.StatKeys {
		final[k] = unit.Stats[k]
	}

	for _, itemID := range unit.Equipment {
		if itemID == "" {
			continue
		}
		item, ok := items[itemID]
		if !ok {
			continue
		}
		for k, v := range item.Bonuses {
			if schema.IsStatKey(k) {
				final[k] += v
			}
		}
	}

	return final
}
