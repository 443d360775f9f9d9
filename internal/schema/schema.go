// Package schema holds the locked game-design contract: the fixed stat,
// rarity and slot enumerations and their membership predicates. Every
// validator and the stats aggregation consult these sets and nothing else, so
// changing an allowed value is a one-line change here.
package schema

var (
	// StatKeys are the canonical unit stat keys. A unit's stats map carries
	// exactly these keys, no more and no fewer.
	StatKeys = [7]string{
		"hp_max", "stamina_max", "mana_max", "melee", "ranged", "magic", "maneuver",
	}

	// Rarities are the allowed rarity tiers for items and units.
	Rarities = [6]string{
		"Common", "Uncommon", "Rare", "Epic", "Legendary", "Mythic",
	}

	// ItemSlots are the equipment categories an item can belong to.
	ItemSlots = [3]string{"Weapon", "Armor", "Relic"}

	// EquipmentSlotNames are the lowercase keys of a unit's equipment map.
	EquipmentSlotNames = [3]string{"weapon", "armor", "relic"}
)

// itemSlotByName maps an equipment slot name to the item slot it accepts.
var itemSlotByName = map[string]string{
	"weapon": "Weapon",
	"armor":  "Armor",
	"relic":  "Relic",
}

// IsStatKey reports whether s is a canonical stat key.
func IsStatKey(s string) bool {
	for _, k := range StatKeys {
		if k == s {
			return true
		}
	}
	return false
}

// IsRarity reports whether s is an allowed rarity.
func IsRarity(s string) bool {
	for _, r := range Rarities {
		if r == s {
			return true
		}
	}
	return false
}

// IsItemSlot reports whether s is an allowed item slot.
func IsItemSlot(s string) bool {
	for _, slot := range ItemSlots {
		if slot == s {
			return true
		}
	}
	return false
}

// IsEquipmentSlotName reports whether s is an equipment slot name.
func IsEquipmentSlotName(s string) bool {
	_, ok := itemSlotByName[s]
	return ok
}

// ItemSlotFor returns the item slot an equipment slot name accepts.
func ItemSlotFor(slotName string) (string, bool) {
	slot, ok := itemSlotByName[slotName]
	return slot, ok
}

// EmptyEquipment returns a fresh equipment map with every slot unequipped.
func EmptyEquipment() map[string]string {
	eq := make(map[string]string, len(EquipmentSlotNames))
	for _, name := range EquipmentSlotNames {
		eq[name] = ""
	}
	return eq
}
