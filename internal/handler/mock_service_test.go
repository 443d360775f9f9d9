package handler

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/hollowdeep/garrison/internal/domain"
	"github.com/hollowdeep/garrison/internal/player"
)

// MockPlayerService mocks the player.Service interface
type MockPlayerService struct {
	mock.Mock
}

func (m *MockPlayerService) GetState(ctx context.Context, caller player.Identity) (*player.StateView, error) {
	args := m.Called(ctx, caller)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*player.StateView), args.Error(1)
}

func (m *MockPlayerService) CreateUnit(ctx context.Context, caller player.Identity, in player.CreateUnitInput) (*domain.Unit, error) {
	args := m.Called(ctx, caller, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Unit), args.Error(1)
}

func (m *MockPlayerService) GrantItem(ctx context.Context, caller player.Identity, in player.GrantItemInput) (*domain.Item, error) {
	args := m.Called(ctx, caller, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Item), args.Error(1)
}

func (m *MockPlayerService) EquipItem(ctx context.Context, caller player.Identity, in player.EquipInput) (*domain.Unit, error) {
	args := m.Called(ctx, caller, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Unit), args.Error(1)
}

func (m *MockPlayerService) ComputeFinalStats(ctx context.Context, caller player.Identity, unitInstanceID string) (*player.FinalStatsResult, error) {
	args := m.Called(ctx, caller, unitInstanceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*player.FinalStatsResult), args.Error(1)
}
