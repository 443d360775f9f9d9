package player

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hollowdeep/garrison/internal/domain"
	"github.com/hollowdeep/garrison/internal/schema"
)

func baseStats() domain.StatsMap {
	return domain.StatsMap{
		"hp_max":      100,
		"stamina_max": 50,
		"mana_max":    30,
		"melee":       10,
		"ranged":      8,
		"magic":       5,
		"maneuver":    7,
	}
}

func TestFinalStatsNoEquipment(t *testing.T) {
	unit := &domain.Unit{
		Stats:     baseStats(),
		Equipment: schema.EmptyEquipment(),
	}

	final := FinalStats(unit, nil)
	assert.Equal(t, baseStats(), final)
}

func TestFinalStatsSumsEquippedBonuses(t *testing.T) {
	unit := &domain.Unit{
		Stats: baseStats(),
		Equipment: map[string]string{
			"weapon": "sword-1",
			"armor":  "plate-1",
			"relic":  "",
		},
	}
	items := map[string]*domain.Item{
		"sword-1": {InstanceID: "sword-1", Slot: "Weapon", Bonuses: map[string]int64{"melee": 3}},
		"plate-1": {InstanceID: "plate-1", Slot: "Armor", Bonuses: map[string]int64{"melee": 2, "hp_max": 5}},
	}

	final := FinalStats(unit, items)
	assert.Equal(t, int64(15), final["melee"])
	assert.Equal(t, int64(105), final["hp_max"])
	assert.Equal(t, int64(8), final["ranged"])
	assert.Len(t, final, 7)
}

func TestFinalStatsSkipsDanglingReference(t *testing.T) {
	unit := &domain.Unit{
		Stats: baseStats(),
		Equipment: map[string]string{
			"weapon": "gone",
			"armor":  "",
			"relic":  "",
		},
	}

	final := FinalStats(unit, map[string]*domain.Item{})
	assert.Equal(t, baseStats(), final)
}

func TestFinalStatsFiltersNonCanonicalBonusKeys(t *testing.T) {
	unit := &domain.Unit{
		Stats: baseStats(),
		Equipment: map[string]string{
			"weapon": "odd-1",
			"armor":  "",
			"relic":  "",
		},
	}
	items := map[string]*domain.Item{
		"odd-1": {InstanceID: "odd-1", Bonuses: map[string]int64{"melee": 1, "crit": 99}},
	}

	final := FinalStats(unit, items)
	assert.Equal(t, int64(11), final["melee"])
	_, ok := final["crit"]
	assert.False(t, ok)
}

func TestFinalStatsNegativeBonuses(t *testing.T) {
	unit := &domain.Unit{
		Stats: baseStats(),
		Equipment: map[string]string{
			"weapon": "",
			"armor":  "",
			"relic":  "curse-1",
		},
	}
	items := map[string]*domain.Item{
		"curse-1": {InstanceID: "curse-1", Bonuses: map[string]int64{"magic": -3}},
	}

	final := FinalStats(unit, items)
	assert.Equal(t, int64(2), final["magic"])
}

func TestFinalStatsDoesNotMutateInputs(t *testing.T) {
	unit := &domain.Unit{
		Stats: baseStats(),
		Equipment: map[string]string{
			"weapon": "sword-1",
			"armor":  "",
			"relic":  "",
		},
	}
	items := map[string]*domain.Item{
		"sword-1": {InstanceID: "sword-1", Bonuses: map[string]int64{"melee": 3}},
	}

	_ = FinalStats(unit, items)
	assert.Equal(t, int64(10), unit.Stats["melee"])
	assert.Equal(t, int64(3), items["sword-1"].Bonuses["melee"])
}
