package player

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/hollowdeep/garrison/internal/concurrency"
	"github.com/hollowdeep/garrison/internal/domain"
	"github.com/hollowdeep/garrison/internal/identity"
	"github.com/hollowdeep/garrison/internal/logger"
	"github.com/hollowdeep/garrison/internal/metrics"
	"github.com/hollowdeep/garrison/internal/schema"
	"github.com/hollowdeep/garrison/internal/storage"
	"github.com/hollowdeep/garrison/internal/validation"
)

// Identity is the authenticated caller as forwarded by the hosting platform.
// A zero UserID means the call is unauthenticated.
type Identity struct {
	UserID   string
	Username string
}

// StateView is the response payload of GetState.
type StateView struct {
	Profile    *domain.Profile
	Wallet     *domain.Wallet
	ItemsCount int
	UnitsCount int
	Units      []*domain.Unit
}

// CreateUnitInput carries a candidate unit from the generation service.
type CreateUnitInput struct {
	TemplateID string
	Rarity     string
	Stats      map[string]int64
}

// GrantItemInput carries an admin-gated item grant. TargetUserID defaults to
// the authenticated caller when empty.
type GrantItemInput struct {
	AdminSecret  string
	TemplateID   string
	Rarity       string
	Slot         string
	Bonuses      map[string]int64
	Passive      string
	TargetUserID string
}

// EquipInput assigns or clears one equipment slot on a unit. A nil
// ItemInstanceID clears the slot.
type EquipInput struct {
	UnitInstanceID string
	SlotName       string
	ItemInstanceID *string
}

// FinalStatsResult is the response payload of ComputeFinalStats.
type FinalStatsResult struct {
	UnitInstanceID string
	BaseStats      domain.StatsMap
	FinalStats     domain.StatsMap
}

// Service defines the player-state operations.
type Service interface {
	GetState(ctx context.Context, caller Identity) (*StateView, error)
	CreateUnit(ctx context.Context, caller Identity, in CreateUnitInput) (*domain.Unit, error)
	GrantItem(ctx context.Context, caller Identity, in GrantItemInput) (*domain.Item, error)
	EquipItem(ctx context.Context, caller Identity, in EquipInput) (*domain.Unit, error)
	ComputeFinalStats(ctx context.Context, caller Identity, unitInstanceID string) (*FinalStatsResult, error)
}

// Config holds service construction options.
type Config struct {
	AdminSecret  string
	StrictWrites bool
	CacheSize    int
	CacheTTL     time.Duration
}

// service implements the Service interface
type service struct {
	state       *stateStore
	locks       *concurrency.LockManager
	adminSecret string
	strict      bool
	newID       func() string
	clock       func() time.Time
}

// NewService creates a new player service over the given storage backend.
func NewService(store storage.Store, cfg Config) Service {
	return &service{
		state:       newStateStore(store, newProfileCache(cfg.CacheSize, cfg.CacheTTL)),
		locks:       concurrency.NewLockManager(),
		adminSecret: cfg.AdminSecret,
		strict:      cfg.StrictWrites,
		newID:       identity.NewInstanceID,
		clock:       time.Now,
	}
}

func requireCaller(caller Identity) error {
	if caller.UserID == "" {
		return domain.ErrUnauthenticated
	}
	return nil
}

// GetState bootstraps the caller's records if needed and returns them.
func (s *service) GetState(ctx context.Context, caller Identity) (*StateView, error) {
	if err := requireCaller(caller); err != nil {
		return nil, err
	}

	st, err := s.state.LoadOrInit(ctx, caller.UserID, caller.Username)
	if err != nil {
		return nil, err
	}

	units := make([]*domain.Unit, 0, len(st.inventory.Units))
	for _, u := range st.inventory.Units {
		units = append(units, u)
	}

	return &StateView{
		Profile:    st.profile,
		Wallet:     st.wallet,
		ItemsCount: len(st.inventory.Items),
		UnitsCount: len(st.inventory.Units),
		Units:      units,
	}, nil
}

// CreateUnit validates the candidate, inserts it with empty equipment and
// persists the caller's inventory.
func (s *service) CreateUnit(ctx context.Context, caller Identity, in CreateUnitInput) (*domain.Unit, error) {
	if err := requireCaller(caller); err != nil {
		return nil, err
	}
	if in.TemplateID == "" {
		return nil, fmt.Errorf("%w: missing templateId", domain.ErrInvalidArgument)
	}
	if !schema.IsRarity(in.Rarity) {
		return nil, fmt.Errorf("%w: invalid rarity: %s", domain.ErrInvalidArgument, in.Rarity)
	}
	if err := validation.UnitStats(in.Stats); err != nil {
		return nil, err
	}

	stats := make(domain.StatsMap, len(in.Stats))
	for k, v := range in.Stats {
		stats[k] = v
	}

	unit := &domain.Unit{
		InstanceID: s.newID(),
		TemplateID: in.TemplateID,
		Rarity:     in.Rarity,
		Stats:      stats,
		Equipment:  schema.EmptyEquipment(),
	}

	err := s.mutate(ctx, caller.UserID, caller.Username, func(st *playerState) error {
		st.inventory.Units[unit.InstanceID] = unit
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.UnitsCreated.WithLabelValues(unit.Rarity).Inc()
	logger.FromContext(ctx).Info("Unit created",
		"user_id", caller.UserID,
		"instance_id", unit.InstanceID,
		"template_id", unit.TemplateID,
		"rarity", unit.Rarity)
	return unit, nil
}

// GrantItem inserts a new item into the target user's inventory. The admin
// secret is always required; the target defaults to the authenticated caller.
func (s *service) GrantItem(ctx context.Context, caller Identity, in GrantItemInput) (*domain.Item, error) {
	if s.adminSecret == "" ||
		subtle.ConstantTimeCompare([]byte(in.AdminSecret), []byte(s.adminSecret)) != 1 {
		return nil, fmt.Errorf("%w: admin only", domain.ErrPermissionDenied)
	}

	targetUserID := in.TargetUserID
	targetUsername := ""
	if targetUserID == "" {
		targetUserID = caller.UserID
		targetUsername = caller.Username
	}
	if targetUserID == "" {
		return nil, fmt.Errorf("%w: targetUserId required for unauthenticated grants", domain.ErrInvalidArgument)
	}

	if in.TemplateID == "" {
		return nil, fmt.Errorf("%w: missing templateId", domain.ErrInvalidArgument)
	}
	if !schema.IsRarity(in.Rarity) {
		return nil, fmt.Errorf("%w: invalid rarity: %s", domain.ErrInvalidArgument, in.Rarity)
	}
	if !schema.IsItemSlot(in.Slot) {
		return nil, fmt.Errorf("%w: invalid slot: %s", domain.ErrInvalidArgument, in.Slot)
	}
	if err := validation.Bonuses(in.Bonuses); err != nil {
		return nil, err
	}

	bonuses := make(map[string]int64, len(in.Bonuses))
	for k, v := range in.Bonuses {
		bonuses[k] = v
	}

	item := &domain.Item{
		InstanceID: s.newID(),
		TemplateID: in.TemplateID,
		Rarity:     in.Rarity,
		Slot:       in.Slot,
		Bonuses:    bonuses,
		Passive:    in.Passive,
		CreatedAt:  s.clock().UTC().Format(time.RFC3339),
	}

	err := s.mutate(ctx, targetUserID, targetUsername, func(st *playerState) error {
		st.inventory.Items[item.InstanceID] = item
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.ItemsGranted.WithLabelValues(item.Rarity, item.Slot).Inc()
	logger.FromContext(ctx).Info("Item granted",
		"target_user_id", targetUserID,
		"instance_id", item.InstanceID,
		"template_id", item.TemplateID,
		"slot", item.Slot)
	return item, nil
}

// EquipItem sets or clears one equipment slot. Equipping checks the item
// exists and its slot matches the target slot name.
func (s *service) EquipItem(ctx context.Context, caller Identity, in EquipInput) (*domain.Unit, error) {
	if err := requireCaller(caller); err != nil {
		return nil, err
	}
	if in.UnitInstanceID == "" || in.SlotName == "" {
		return nil, fmt.Errorf("%w: missing unitInstanceId or slotName", domain.ErrInvalidArgument)
	}
	wantSlot, ok := schema.ItemSlotFor(in.SlotName)
	if !ok {
		return nil, fmt.Errorf("%w: slotName must be weapon, armor, or relic", domain.ErrInvalidArgument)
	}

	itemID := ""
	if in.ItemInstanceID != nil {
		itemID = *in.ItemInstanceID
	}

	var unit *domain.Unit
	err := s.mutate(ctx, caller.UserID, caller.Username, func(st *playerState) error {
		u, ok := st.inventory.Units[in.UnitInstanceID]
		if !ok {
			return fmt.Errorf("%w: %s", domain.ErrUnitNotFound, in.UnitInstanceID)
		}
		if itemID != "" {
			item, ok := st.inventory.Items[itemID]
			if !ok {
				return fmt.Errorf("%w: %s", domain.ErrItemNotFound, itemID)
			}
			if item.Slot != wantSlot {
				return fmt.Errorf("%w: item slot %s does not fit %s", domain.ErrInvalidArgument, item.Slot, in.SlotName)
			}
		}
		u.Equipment[in.SlotName] = itemID
		unit = u
		return nil
	})
	if err != nil {
		return nil, err
	}

	action := "equip"
	if itemID == "" {
		action = "unequip"
	}
	metrics.EquipOperations.WithLabelValues(action).Inc()
	logger.FromContext(ctx).Info("Equipment updated",
		"user_id", caller.UserID,
		"unit_instance_id", in.UnitInstanceID,
		"slot_name", in.SlotName,
		"item_instance_id", itemID)
	return unit, nil
}

// ComputeFinalStats is a pure read: base stats plus the bonuses of currently
// equipped items.
func (s *service) ComputeFinalStats(ctx context.Context, caller Identity, unitInstanceID string) (*FinalStatsResult, error) {
	if err := requireCaller(caller); err != nil {
		return nil, err
	}
	if unitInstanceID == "" {
		return nil, fmt.Errorf("%w: missing unitInstanceId", domain.ErrInvalidArgument)
	}

	st, err := s.state.LoadOrInit(ctx, caller.UserID, caller.Username)
	if err != nil {
		return nil, err
	}

	unit, ok := st.inventory.Units[unitInstanceID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnitNotFound, unitInstanceID)
	}

	return &FinalStatsResult{
		UnitInstanceID: unitInstanceID,
		BaseStats:      unit.Stats,
		FinalStats:     FinalStats(unit, st.inventory.Items),
	}, nil
}

// mutate runs one read-modify-write cycle over userID's inventory and is the
// only place inventory writes happen. In strict mode it holds the per-user
// lock and retries version conflicts up to saveAttempts times; in legacy mode
// it issues a single unconditional overwrite, which can lose a concurrent
// update (the original platform's behavior).
func (s *service) mutate(ctx context.Context, userID, username string, apply func(*playerState) error) error {
	if s.strict {
		lock := s.locks.GetLock(userID)
		lock.Lock()
		defer lock.Unlock()
	}

	for attempt := 1; ; attempt++ {
		st, err := s.state.LoadOrInit(ctx, userID, username)
		if err != nil {
			return err
		}
		if err := apply(st); err != nil {
			return err
		}

		expected := storage.VersionAny
		if s.strict {
			expected = st.invVersion
			if expected == "" {
				expected = storage.VersionNone
			}
		}

		if _, err := s.state.saveInventory(ctx, userID, st.inventory, expected); err != nil {
			if errors.Is(err, storage.ErrVersionConflict) && attempt < saveAttempts {
				metrics.StorageWriteConflicts.Inc()
				continue
			}
			return err
		}
		return nil
	}
}
