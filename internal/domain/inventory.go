package domain

// StatsMap maps canonical stat keys to integer values.
type StatsMap map[string]int64

// Item is a concrete owned copy of an equipment template. TemplateID is a
// catalog reference for display lookup and is not validated here.
type Item struct {
	InstanceID string           `json:"instanceId"`
	TemplateID string           `json:"templateId"`
	Rarity     string           `json:"rarity"`
	Slot       string           `json:"slot"`
	Bonuses    map[string]int64 `json:"bonuses"`
	Passive    string           `json:"passive,omitempty"`
	CreatedAt  string           `json:"createdAt"`
}

// Unit is an owned unit instance. Stats always carries exactly the canonical
// stat keys; Equipment always carries exactly the three slot names, each
// holding an item instance id or "" for unequipped.
type Unit struct {
	InstanceID string            `json:"instanceId"`
	TemplateID string            `json:"templateId"`
	Rarity     string            `json:"rarity"`
	Stats      StatsMap          `json:"stats"`
	Equipment  map[string]string `json:"equipment"`
}

// Inventory is the per-user collection record. Item and unit ids live in
// separate namespaces; a coincidental id collision across the two maps is
// unambiguous.
type Inventory struct {
	Items map[string]*Item `json:"items"`
	Units map[string]*Unit `json:"units"`
}

// NewInventory returns an empty inventory with both maps allocated.
func NewInventory() *Inventory {
	return &Inventory{
		Items: make(map[string]*Item),
		Units: make(map[string]*Unit),
	}
}
