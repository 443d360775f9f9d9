package handler

import (
	"net/http"

	"github.com/hollowdeep/garrison/internal/domain"
	"github.com/hollowdeep/garrison/internal/player"
)

// InventorySummary reports inventory sizes without the full item list.
type InventorySummary struct {
	ItemsCount int `json:"itemsCount"`
	UnitsCount int `json:"unitsCount"`
}

// StateResponse is the full player-state payload.
type StateResponse struct {
	Profile          *domain.Profile  `json:"profile"`
	Wallet           *domain.Wallet   `json:"wallet"`
	InventorySummary InventorySummary `json:"inventorySummary"`
	Units            []*domain.Unit   `json:"units"`
}

// HandleGetState returns the caller's profile, wallet and unit roster,
// creating the records on first access.
// @Summary Get player state
// @Description Returns the caller's profile, wallet and units, bootstrapping them on first access
// @Tags state
// @Produce json
// @Success 200 {object} StateResponse
// @Failure 401 {object} ErrorResponse
// @Router /api/v1/state [get]
func HandleGetState(svc player.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		view, err := svc.GetState(r.Context(), IdentityFromContext(r.Context()))
		if err != nil {
			respondServiceError(w, r, "Get state", err)
			return
		}

		units := view.Units
		if units == nil {
			units = []*domain.Unit{}
		}

		respondJSON(w, http.StatusOK, StateResponse{
			Profile: view.Profile,
			Wallet:  view.Wallet,
			InventorySummary: InventorySummary{
				ItemsCount: view.ItemsCount,
				UnitsCount: view.UnitsCount,
			},
			Units: units,
		})
	}
}
