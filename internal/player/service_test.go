package player

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hollowdeep/garrison/internal/domain"
	"github.com/hollowdeep/garrison/internal/storage"
	"github.com/hollowdeep/garrison/internal/storage/memory"
)

const testAdminSecret = "test-admin-secret"

func newTestService(strict bool) (*service, *memory.Store) {
	mem := memory.New()
	svc := NewService(mem, Config{
		AdminSecret:  testAdminSecret,
		StrictWrites: strict,
		CacheSize:    16,
		CacheTTL:     time.Minute,
	}).(*service)
	return svc, mem
}

func validCreateInput() CreateUnitInput {
	return CreateUnitInput{
		TemplateID: "knight",
		Rarity:     "Rare",
		Stats: map[string]int64{
			"hp_max":      100,
			"stamina_max": 50,
			"mana_max":    30,
			"melee":       10,
			"ranged":      8,
			"magic":       5,
			"maneuver":    7,
		},
	}
}

func TestGetStateBootstrapsNewUser(t *testing.T) {
	svc, _ := newTestService(true)

	view, err := svc.GetState(context.Background(), Identity{UserID: "u1", Username: "alice"})
	require.NoError(t, err)

	assert.Equal(t, "alice", view.Profile.Username)
	assert.Zero(t, view.Wallet.Gold)
	assert.Zero(t, view.ItemsCount)
	assert.Zero(t, view.UnitsCount)
	assert.NotNil(t, view.Units)
	assert.Empty(t, view.Units)
}

func TestGetStateRequiresCaller(t *testing.T) {
	svc, _ := newTestService(true)

	_, err := svc.GetState(context.Background(), Identity{})
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestCreateUnit(t *testing.T) {
	svc, _ := newTestService(true)
	ctx := context.Background()
	caller := Identity{UserID: "u1", Username: "alice"}

	unit, err := svc.CreateUnit(ctx, caller, validCreateInput())
	require.NoError(t, err)

	assert.NotEmpty(t, unit.InstanceID)
	assert.Equal(t, "knight", unit.TemplateID)
	assert.Equal(t, "Rare", unit.Rarity)
	assert.Len(t, unit.Stats, 7)
	require.Len(t, unit.Equipment, 3)
	for _, slot := range []string{"weapon", "armor", "relic"} {
		assert.Empty(t, unit.Equipment[slot])
	}

	view, err := svc.GetState(ctx, caller)
	require.NoError(t, err)
	assert.Equal(t, 1, view.UnitsCount)
	require.Len(t, view.Units, 1)
	assert.Equal(t, unit.InstanceID, view.Units[0].InstanceID)
}

func TestCreateUnitValidation(t *testing.T) {
	svc, _ := newTestService(true)
	ctx := context.Background()
	caller := Identity{UserID: "u1"}

	tests := []struct {
		name   string
		modify func(*CreateUnitInput)
	}{
		{"missing template", func(in *CreateUnitInput) { in.TemplateID = "" }},
		{"invalid rarity", func(in *CreateUnitInput) { in.Rarity = "Ultra" }},
		{"lowercase rarity", func(in *CreateUnitInput) { in.Rarity = "rare" }},
		{"unknown stat key", func(in *CreateUnitInput) { in.Stats["luck"] = 1 }},
		{"missing stat key", func(in *CreateUnitInput) { delete(in.Stats, "melee") }},
		{"nil stats", func(in *CreateUnitInput) { in.Stats = nil }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			in := validCreateInput()
			tc.modify(&in)

			_, err := svc.CreateUnit(ctx, caller, in)
			assert.ErrorIs(t, err, domain.ErrInvalidArgument)
		})
	}

	// no partial writes on validation failure
	view, err := svc.GetState(ctx, caller)
	require.NoError(t, err)
	assert.Zero(t, view.UnitsCount)
}

func TestCreateUnitUnauthenticated(t *testing.T) {
	svc, _ := newTestService(true)

	_, err := svc.CreateUnit(context.Background(), Identity{}, validCreateInput())
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestGrantItemRequiresAdminSecret(t *testing.T) {
	svc, _ := newTestService(true)
	ctx := context.Background()
	caller := Identity{UserID: "u1"}

	_, err := svc.GrantItem(ctx, caller, GrantItemInput{
		AdminSecret: "wrong",
		TemplateID:  "sword",
		Rarity:      "Common",
		Slot:        "Weapon",
	})
	assert.ErrorIs(t, err, domain.ErrPermissionDenied)

	_, err = svc.GrantItem(ctx, caller, GrantItemInput{
		TemplateID: "sword",
		Rarity:     "Common",
		Slot:       "Weapon",
	})
	assert.ErrorIs(t, err, domain.ErrPermissionDenied)
}

func TestGrantItemNoConfiguredSecretDeniesAll(t *testing.T) {
	mem := memory.New()
	svc := NewService(mem, Config{StrictWrites: true})

	_, err := svc.GrantItem(context.Background(), Identity{UserID: "u1"}, GrantItemInput{
		AdminSecret: "",
		TemplateID:  "sword",
		Rarity:      "Common",
		Slot:        "Weapon",
	})
	assert.ErrorIs(t, err, domain.ErrPermissionDenied)
}

func TestGrantItemToCaller(t *testing.T) {
	svc, _ := newTestService(true)
	ctx := context.Background()
	caller := Identity{UserID: "u1", Username: "alice"}

	item, err := svc.GrantItem(ctx, caller, GrantItemInput{
		AdminSecret: testAdminSecret,
		TemplateID:  "iron-sword",
		Rarity:      "Uncommon",
		Slot:        "Weapon",
		Bonuses:     map[string]int64{"melee": 3},
		Passive:     "sharpness",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, item.InstanceID)
	assert.Equal(t, "Weapon", item.Slot)
	assert.Equal(t, "sharpness", item.Passive)
	assert.NotEmpty(t, item.CreatedAt)

	view, err := svc.GetState(ctx, caller)
	require.NoError(t, err)
	assert.Equal(t, 1, view.ItemsCount)
}

func TestGrantItemToExplicitTarget(t *testing.T) {
	svc, _ := newTestService(true)
	ctx := context.Background()

	_, err := svc.GrantItem(ctx, Identity{UserID: "admin-user"}, GrantItemInput{
		AdminSecret:  testAdminSecret,
		TemplateID:   "iron-sword",
		Rarity:       "Common",
		Slot:         "Weapon",
		TargetUserID: "u2",
	})
	require.NoError(t, err)

	target, err := svc.GetState(ctx, Identity{UserID: "u2"})
	require.NoError(t, err)
	assert.Equal(t, 1, target.ItemsCount)

	admin, err := svc.GetState(ctx, Identity{UserID: "admin-user"})
	require.NoError(t, err)
	assert.Zero(t, admin.ItemsCount)
}

func TestGrantItemUnauthenticatedNeedsTarget(t *testing.T) {
	svc, _ := newTestService(true)

	_, err := svc.GrantItem(context.Background(), Identity{}, GrantItemInput{
		AdminSecret: testAdminSecret,
		TemplateID:  "iron-sword",
		Rarity:      "Common",
		Slot:        "Weapon",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
}

func TestGrantItemValidation(t *testing.T) {
	svc, _ := newTestService(true)
	ctx := context.Background()
	caller := Identity{UserID: "u1"}

	tests := []struct {
		name string
		in   GrantItemInput
	}{
		{"missing template", GrantItemInput{Rarity: "Common", Slot: "Weapon"}},
		{"invalid rarity", GrantItemInput{TemplateID: "t", Rarity: "Shiny", Slot: "Weapon"}},
		{"invalid slot", GrantItemInput{TemplateID: "t", Rarity: "Common", Slot: "Boots"}},
		{"lowercase slot", GrantItemInput{TemplateID: "t", Rarity: "Common", Slot: "weapon"}},
		{"invalid bonus key", GrantItemInput{TemplateID: "t", Rarity: "Common", Slot: "Weapon",
			Bonuses: map[string]int64{"crit": 1}}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			in := tc.in
			in.AdminSecret = testAdminSecret

			_, err := svc.GrantItem(ctx, caller, in)
			assert.ErrorIs(t, err, domain.ErrInvalidArgument)
		})
	}

	view, err := svc.GetState(ctx, caller)
	require.NoError(t, err)
	assert.Zero(t, view.ItemsCount)
}

func grantAndCreate(t *testing.T, svc *service, caller Identity, slot string) (*domain.Unit, *domain.Item) {
	t.Helper()
	ctx := context.Background()

	unit, err := svc.CreateUnit(ctx, caller, validCreateInput())
	require.NoError(t, err)

	item, err := svc.GrantItem(ctx, caller, GrantItemInput{
		AdminSecret: testAdminSecret,
		TemplateID:  "gear",
		Rarity:      "Epic",
		Slot:        slot,
		Bonuses:     map[string]int64{"melee": 3, "hp_max": 5},
	})
	require.NoError(t, err)
	return unit, item
}

func TestEquipItem(t *testing.T) {
	svc, _ := newTestService(true)
	ctx := context.Background()
	caller := Identity{UserID: "u1"}
	unit, item := grantAndCreate(t, svc, caller, "Weapon")

	got, err := svc.EquipItem(ctx, caller, EquipInput{
		UnitInstanceID: unit.InstanceID,
		SlotName:       "weapon",
		ItemInstanceID: &item.InstanceID,
	})
	require.NoError(t, err)
	assert.Equal(t, item.InstanceID, got.Equipment["weapon"])

	view, err := svc.GetState(ctx, caller)
	require.NoError(t, err)
	require.Len(t, view.Units, 1)
	assert.Equal(t, item.InstanceID, view.Units[0].Equipment["weapon"])
}

func TestEquipItemSlotMismatch(t *testing.T) {
	svc, _ := newTestService(true)
	ctx := context.Background()
	caller := Identity{UserID: "u1"}
	unit, item := grantAndCreate(t, svc, caller, "Armor")

	_, err := svc.EquipItem(ctx, caller, EquipInput{
		UnitInstanceID: unit.InstanceID,
		SlotName:       "weapon",
		ItemInstanceID: &item.InstanceID,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)

	// equipment unchanged after the failed call
	view, err := svc.GetState(ctx, caller)
	require.NoError(t, err)
	require.Len(t, view.Units, 1)
	assert.Empty(t, view.Units[0].Equipment["weapon"])
}

func TestEquipItemUnknownUnit(t *testing.T) {
	svc, _ := newTestService(true)
	caller := Identity{UserID: "u1"}
	itemID := "whatever"

	_, err := svc.EquipItem(context.Background(), caller, EquipInput{
		UnitInstanceID: "missing",
		SlotName:       "weapon",
		ItemInstanceID: &itemID,
	})
	assert.ErrorIs(t, err, domain.ErrUnitNotFound)
}

func TestEquipItemUnknownItem(t *testing.T) {
	svc, _ := newTestService(true)
	ctx := context.Background()
	caller := Identity{UserID: "u1"}

	unit, err := svc.CreateUnit(ctx, caller, validCreateInput())
	require.NoError(t, err)

	itemID := "missing"
	_, err = svc.EquipItem(ctx, caller, EquipInput{
		UnitInstanceID: unit.InstanceID,
		SlotName:       "weapon",
		ItemInstanceID: &itemID,
	})
	assert.ErrorIs(t, err, domain.ErrItemNotFound)
}

func TestEquipItemInvalidSlotName(t *testing.T) {
	svc, _ := newTestService(true)
	ctx := context.Background()
	caller := Identity{UserID: "u1"}
	unit, item := grantAndCreate(t, svc, caller, "Weapon")

	_, err := svc.EquipItem(ctx, caller, EquipInput{
		UnitInstanceID: unit.InstanceID,
		SlotName:       "Weapon",
		ItemInstanceID: &item.InstanceID,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
}

func TestUnequipClearsSlot(t *testing.T) {
	svc, _ := newTestService(true)
	ctx := context.Background()
	caller := Identity{UserID: "u1"}
	unit, item := grantAndCreate(t, svc, caller, "Weapon")

	_, err := svc.EquipItem(ctx, caller, EquipInput{
		UnitInstanceID: unit.InstanceID,
		SlotName:       "weapon",
		ItemInstanceID: &item.InstanceID,
	})
	require.NoError(t, err)

	got, err := svc.EquipItem(ctx, caller, EquipInput{
		UnitInstanceID: unit.InstanceID,
		SlotName:       "weapon",
		ItemInstanceID: nil,
	})
	require.NoError(t, err)
	assert.Empty(t, got.Equipment["weapon"])
}

func TestUnequipEmptySlotIsNoop(t *testing.T) {
	svc, _ := newTestService(true)
	ctx := context.Background()
	caller := Identity{UserID: "u1"}

	unit, err := svc.CreateUnit(ctx, caller, validCreateInput())
	require.NoError(t, err)

	got, err := svc.EquipItem(ctx, caller, EquipInput{
		UnitInstanceID: unit.InstanceID,
		SlotName:       "relic",
		ItemInstanceID: nil,
	})
	require.NoError(t, err)
	assert.Empty(t, got.Equipment["relic"])
}

func TestComputeFinalStatsRoundTrip(t *testing.T) {
	svc, _ := newTestService(true)
	ctx := context.Background()
	caller := Identity{UserID: "u1"}
	unit, item := grantAndCreate(t, svc, caller, "Weapon")

	_, err := svc.EquipItem(ctx, caller, EquipInput{
		UnitInstanceID: unit.InstanceID,
		SlotName:       "weapon",
		ItemInstanceID: &item.InstanceID,
	})
	require.NoError(t, err)

	result, err := svc.ComputeFinalStats(ctx, caller, unit.InstanceID)
	require.NoError(t, err)

	assert.Equal(t, unit.InstanceID, result.UnitInstanceID)
	assert.Equal(t, int64(10), result.BaseStats["melee"])
	assert.Equal(t, int64(13), result.FinalStats["melee"])
	assert.Equal(t, int64(105), result.FinalStats["hp_max"])
	assert.Equal(t, int64(8), result.FinalStats["ranged"])
}

func TestComputeFinalStatsUnknownUnit(t *testing.T) {
	svc, _ := newTestService(true)

	_, err := svc.ComputeFinalStats(context.Background(), Identity{UserID: "u1"}, "missing")
	assert.ErrorIs(t, err, domain.ErrUnitNotFound)
}

func TestStrictModeConcurrentCreatesAllPersist(t *testing.T) {
	svc, _ := newTestService(true)
	ctx := context.Background()
	caller := Identity{UserID: "u1"}

	const n = 10
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			in := validCreateInput()
			in.TemplateID = fmt.Sprintf("knight-%d", i)
			_, errs[i] = svc.CreateUnit(ctx, caller, in)
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		require.NoError(t, err, "create %d", i)
	}

	view, err := svc.GetState(ctx, caller)
	require.NoError(t, err)
	assert.Equal(t, n, view.UnitsCount)
}

// Legacy mode reproduces the original overwrite semantics: two interleaved
// read-modify-write cycles keep only the second writer's inventory.
func TestLegacyModeOverwriteLosesConcurrentUpdate(t *testing.T) {
	svc, _ := newTestService(false)
	ctx := context.Background()
	userID := "u1"

	first, err := svc.state.LoadOrInit(ctx, userID, "")
	require.NoError(t, err)
	second, err := svc.state.LoadOrInit(ctx, userID, "")
	require.NoError(t, err)

	first.inventory.Units["a"] = &domain.Unit{InstanceID: "a", Stats: baseStats(), Equipment: map[string]string{}}
	_, err = svc.state.saveInventory(ctx, userID, first.inventory, storage.VersionAny)
	require.NoError(t, err)

	second.inventory.Units["b"] = &domain.Unit{InstanceID: "b", Stats: baseStats(), Equipment: map[string]string{}}
	_, err = svc.state.saveInventory(ctx, userID, second.inventory, storage.VersionAny)
	require.NoError(t, err)

	view, err := svc.GetState(ctx, Identity{UserID: userID})
	require.NoError(t, err)
	require.Len(t, view.Units, 1)
	assert.Equal(t, "b", view.Units[0].InstanceID)
}

func TestStateSurvivesServiceRestart(t *testing.T) {
	mem := memory.New()
	cfg := Config{AdminSecret: testAdminSecret, StrictWrites: true, CacheSize: 16, CacheTTL: time.Minute}
	ctx := context.Background()
	caller := Identity{UserID: "u1", Username: "alice"}

	svc1 := NewService(mem, cfg)
	unit, err := svc1.CreateUnit(ctx, caller, validCreateInput())
	require.NoError(t, err)

	svc2 := NewService(mem, cfg)
	view, err := svc2.GetState(ctx, caller)
	require.NoError(t, err)
	assert.Equal(t, "alice", view.Profile.Username)
	require.Len(t, view.Units, 1)
	assert.Equal(t, unit.InstanceID, view.Units[0].InstanceID)
}
