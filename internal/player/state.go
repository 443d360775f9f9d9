package player

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/hollowdeep/garrison/internal/domain"
	"github.com/hollowdeep/garrison/internal/storage"
)

// playerState is the loaded triple of per-user records plus the inventory's
// version token ("" when the inventory record has never been written).
type playerState struct {
	profile    *domain.Profile
	wallet     *domain.Wallet
	inventory  *domain.Inventory
	invVersion string
}

// stateStore adapts the key/value backend to the three per-user records,
// creating them lazily on first access.
type stateStore struct {
	store    storage.Store
	profiles *profileCache
	clock    func() time.Time
}

func newStateStore(store storage.Store, profiles *profileCache) *stateStore {
	return &stateStore{
		store:    store,
		profiles: profiles,
		clock:    time.Now,
	}
}

// LoadOrInit reads profile, wallet and inventory for userID, creating any
// record that does not exist yet. Re-invocation never alters existing
// records: first-time creates are create-only writes, and losing that race
// falls back to reading the winner's record.
func (s *stateStore) LoadOrInit(ctx context.Context, userID, username string) (*playerState, error) {
	profile, err := s.loadOrInitProfile(ctx, userID, username)
	if err != nil {
		return nil, err
	}

	wallet, err := s.loadOrInitWallet(ctx, userID)
	if err != nil {
		return nil, err
	}

	inv, version, err := s.loadInventory(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &playerState{
		profile:    profile,
		wallet:     wallet,
		inventory:  inv,
		invVersion: version,
	}, nil
}

func (s *stateStore) loadOrInitProfile(ctx context.Context, userID, username string) (*domain.Profile, error) {
	if profile, ok := s.profiles.Get(userID); ok {
		return profile, nil
	}

	rec, err := s.store.Read(ctx, CollectionProfile, KeyProfile, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: read profile: %v", domain.ErrStorage, err)
	}

	var profile domain.Profile
	if rec == nil {
		profile = domain.Profile{
			Username:  username,
			CreatedAt: s.clock().UTC().Format(time.RFC3339),
		}
		if profile.Username == "" {
			profile.Username = defaultUsername(userID)
		}
		raw, _ := json.Marshal(profile)
		if _, err := s.store.Write(ctx, CollectionProfile, KeyProfile, userID, raw, storage.VersionNone); err != nil {
			if !errors.Is(err, storage.ErrVersionConflict) {
				return nil, fmt.Errorf("%w: create profile: %v", domain.ErrStorage, err)
			}
			// A concurrent bootstrap won the create; use its record.
			rec, err = s.store.Read(ctx, CollectionProfile, KeyProfile, userID)
			if err != nil || rec == nil {
				return nil, fmt.Errorf("%w: reread profile: %v", domain.ErrStorage, err)
			}
			if err := json.Unmarshal(rec.Value, &profile); err != nil {
				return nil, fmt.Errorf("%w: decode profile: %v", domain.ErrStorage, err)
			}
		}
	} else {
		if err := json.Unmarshal(rec.Value, &profile); err != nil {
			return nil, fmt.Errorf("%w: decode profile: %v", domain.ErrStorage, err)
		}
	}

	s.profiles.Set(userID, &profile)
	return &profile, nil
}

func (s *stateStore) loadOrInitWallet(ctx context.Context, userID string) (*domain.Wallet, error) {
	rec, err := s.store.Read(ctx, CollectionWallet, KeyWallet, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: read wallet: %v", domain.ErrStorage, err)
	}

	var wallet domain.Wallet
	if rec == nil {
		wallet = domain.Wallet{Gold: 0}
		raw, _ := json.Marshal(wallet)
		if _, err := s.store.Write(ctx, CollectionWallet, KeyWallet, userID, raw, storage.VersionNone); err != nil {
			if !errors.Is(err, storage.ErrVersionConflict) {
				return nil, fmt.Errorf("%w: create wallet: %v", domain.ErrStorage, err)
			}
			rec, err = s.store.Read(ctx, CollectionWallet, KeyWallet, userID)
			if err != nil || rec == nil {
				return nil, fmt.Errorf("%w: reread wallet: %v", domain.ErrStorage, err)
			}
			if err := json.Unmarshal(rec.Value, &wallet); err != nil {
				return nil, fmt.Errorf("%w: decode wallet: %v", domain.ErrStorage, err)
			}
		}
	} else {
		if err := json.Unmarshal(rec.Value, &wallet); err != nil {
			return nil, fmt.Errorf("%w: decode wallet: %v", domain.ErrStorage, err)
		}
	}

	return &wallet, nil
}

func (s *stateStore) loadInventory(ctx context.Context, userID string) (*domain.Inventory, string, error) {
	rec, err := s.store.Read(ctx, CollectionInventory, KeyInventory, userID)
	if err != nil {
		return nil, "", fmt.Errorf("%w: read inventory: %v", domain.ErrStorage, err)
	}

	inv := domain.NewInventory()
	if rec == nil {
		return inv, "", nil
	}

	if err := json.Unmarshal(rec.Value, inv); err != nil {
		return nil, "", fmt.Errorf("%w: decode inventory: %v", domain.ErrStorage, err)
	}
	repairInventory(inv)
	return inv, rec.Version, nil
}

// repairInventory normalizes corrupt or legacy records: missing maps become
// empty maps instead of failing the call.
func repairInventory(inv *domain.Inventory) {
	if inv.Items == nil {
		inv.Items = make(map[string]*domain.Item)
	}
	if inv.Units == nil {
		inv.Units = make(map[string]*domain.Unit)
	}
	for _, unit := range inv.Units {
		if unit.Equipment == nil {
			unit.Equipment = make(map[string]string)
		}
	}
}

// saveInventory persists the whole inventory record as one write. The
// expected version selects overwrite vs compare-and-swap semantics.
func (s *stateStore) saveInventory(ctx context.Context, userID string, inv *domain.Inventory, expectedVersion string) (string, error) {
	raw, err := json.Marshal(inv)
	if err != nil {
		return "", fmt.Errorf("%w: encode inventory: %v", domain.ErrStorage, err)
	}
	version, err := s.store.Write(ctx, CollectionInventory, KeyInventory, userID, raw, expectedVersion)
	if err != nil {
		if errors.Is(err, storage.ErrVersionConflict) {
			return "", err
		}
		return "", fmt.Errorf("%w: write inventory: %v", domain.ErrStorage, err)
	}
	return version, nil
}

func defaultUsername(userID string) string {
	if len(userID) > usernamePrefixLen {
		return userID[:usernamePrefixLen]
	}
	return userID
}
