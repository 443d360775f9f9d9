package handler

import (
	"net/http"

	"github.com/hollowdeep/garrison/internal/domain"
	"github.com/hollowdeep/garrison/internal/player"
)

// CreateUnitRequest represents a candidate unit from the generation service.
type CreateUnitRequest struct {
	TemplateID string           `json:"templateId" validate:"required,max=100"`
	Rarity     string           `json:"rarity" validate:"required,rarity"`
	Stats      map[string]int64 `json:"stats" validate:"required"`
}

// UnitResponse wraps a persisted unit.
type UnitResponse struct {
	Unit *domain.Unit `json:"unit"`
}

// HandleCreateUnit persists a validated unit into the caller's inventory.
// @Summary Create a unit
// @Description Validates and stores a new unit with empty equipment slots
// @Tags unit
// @Accept json
// @Produce json
// @Param request body CreateUnitRequest true "Unit candidate"
// @Success 201 {object} UnitResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /api/v1/unit/create [post]
func HandleCreateUnit(svc player.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateUnitRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Create unit"); err != nil {
			return
		}

		unit, err := svc.CreateUnit(r.Context(), IdentityFromContext(r.Context()), player.CreateUnitInput{
			TemplateID: req.TemplateID,
			Rarity:     req.Rarity,
			Stats:      req.Stats,
		})
		if err != nil {
			respondServiceError(w, r, "Create unit", err)
			return
		}

		respondJSON(w, http.StatusCreated, UnitResponse{Unit: unit})
	}
}

// EquipItemRequest assigns or clears one equipment slot. A null or omitted
// itemInstanceId clears the slot.
type EquipItemRequest struct {
	UnitInstanceID string  `json:"unitInstanceId" validate:"required"`
	SlotName       string  `json:"slotName" validate:"required,slotname"`
	ItemInstanceID *string `json:"itemInstanceId"`
}

// HandleEquipItem sets or clears an equipment slot on a unit.
// @Summary Equip or unequip an item
// @Description Assigns an owned item to a unit's slot, or clears the slot when itemInstanceId is null
// @Tags unit
// @Accept json
// @Produce json
// @Param request body EquipItemRequest true "Equip request"
// @Success 200 {object} UnitResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/unit/equip [post]
func HandleEquipItem(svc player.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req EquipItemRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Equip item"); err != nil {
			return
		}

		unit, err := svc.EquipItem(r.Context(), IdentityFromContext(r.Context()), player.EquipInput{
			UnitInstanceID: req.UnitInstanceID,
			SlotName:       req.SlotName,
			ItemInstanceID: req.ItemInstanceID,
		})
		if err != nil {
			respondServiceError(w, r, "Equip item", err)
			return
		}

		respondJSON(w, http.StatusOK, UnitResponse{Unit: unit})
	}
}

// FinalStatsRequest names the unit to aggregate.
type FinalStatsRequest struct {
	UnitInstanceID string `json:"unitInstanceId" validate:"required"`
}

// FinalStatsResponse carries base and aggregated stats for a unit.
type FinalStatsResponse struct {
	UnitInstanceID string          `json:"unitInstanceId"`
	BaseStats      domain.StatsMap `json:"baseStats"`
	FinalStats     domain.StatsMap `json:"finalStats"`
}

// HandleComputeFinalStats returns a unit's base stats plus equipped bonuses.
// @Summary Compute final stats
// @Description Returns the unit's base stats and the aggregate including equipped item bonuses
// @Tags unit
// @Accept json
// @Produce json
// @Param request body FinalStatsRequest true "Stats request"
// @Success 200 {object} FinalStatsResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/unit/stats [post]
func HandleComputeFinalStats(svc player.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req FinalStatsRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Compute final stats"); err != nil {
			return
		}

		result, err := svc.ComputeFinalStats(r.Context(), IdentityFromContext(r.Context()), req.UnitInstanceID)
		if err != nil {
			respondServiceError(w, r, "Compute final stats", err)
			return
		}

		respondJSON(w, http.StatusOK, FinalStatsResponse{
			UnitInstanceID: result.UnitInstanceID,
			BaseStats:      result.BaseStats,
			FinalStats:     result.FinalStats,
		})
	}
}
