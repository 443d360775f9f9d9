package handler

import (
	"net/http"

	"github.com/hollowdeep/garrison/internal/domain"
	"github.com/hollowdeep/garrison/internal/player"
)

// GrantItemRequest represents an admin-gated item grant. TargetUserID defaults
// to the authenticated caller when omitted.
type GrantItemRequest struct {
	AdminSecret  string           `json:"adminSecret" validate:"required"`
	TemplateID   string           `json:"templateId" validate:"required,max=100"`
	Rarity       string           `json:"rarity" validate:"required,rarity"`
	Slot         string           `json:"slot" validate:"required,itemslot"`
	Bonuses      map[string]int64 `json:"bonuses"`
	Passive      string           `json:"passive"`
	TargetUserID string           `json:"targetUserId"`
}

// ItemResponse wraps a persisted item.
type ItemResponse struct {
	Item *domain.Item `json:"item"`
}

// HandleGrantItem inserts a new item into the target user's inventory.
// @Summary Grant an item
// @Description Admin-only: grants an item instance to the target user's inventory
// @Tags item
// @Accept json
// @Produce json
// @Param request body GrantItemRequest true "Grant request"
// @Success 201 {object} ItemResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /api/v1/item/grant [post]
func HandleGrantItem(svc player.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req GrantItemRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Grant item"); err != nil {
			return
		}

		item, err := svc.GrantItem(r.Context(), IdentityFromContext(r.Context()), player.GrantItemInput{
			AdminSecret:  req.AdminSecret,
			TemplateID:   req.TemplateID,
			Rarity:       req.Rarity,
			Slot:         req.Slot,
			Bonuses:      req.Bonuses,
			Passive:      req.Passive,
			TargetUserID: req.TargetUserID,
		})
		if err != nil {
			respondServiceError(w, r, "Grant item", err)
			return
		}

		respondJSON(w, http.StatusCreated, ItemResponse{Item: item})
	}
}
