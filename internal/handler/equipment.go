package handler

import (
	"net/http"

	"github.com/tacticbot/tacticbot/internal/domain"
	"github.com/tacticbot/tacticbot/internal/equipment"
)

type EquipmentHandler struct {
	service equipment.Service
}

func NewEquipmentHandler(service equipment.Service) *EquipmentHandler {
	return &EquipmentHandler{service: service}
}

// EquipRequest represents an equip request
type EquipRequest struct {
	PlayerID string `json:"player_id" validate:"required,max=64"`
	UnitID   string `json:"unit_id" validate:"required"`
	WeaponID string `json:"weapon_id" validate:"required"`
}

// EquipResponse represents the unit after an equipment change. Displaced is
// the weapon the unit put down to take the new one, omitted when unarmed.
type EquipResponse struct {
	Message   string         `json:"message"`
	Unit      *domain.Unit   `json:"unit"`
	Displaced *domain.Weapon `json:"displaced,omitempty"`
}

func (h *EquipmentHandler) HandleEquip(w http.ResponseWriter, r *http.Request) {
	var req EquipRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Equip weapon"); err != nil {
		return
	}

	result, err := h.service.Equip(r.Context(), req.PlayerID, req.UnitID, req.WeaponID)
	if err != nil {
		respondServiceError(w, r, ErrMsgEquipFailed, err)
		return
	}

	respondJSON(w, http.StatusOK, EquipResponse{Message: MsgWeaponEquipped, Unit: result.Unit, Displaced: result.Displaced})
}

// UnequipRequest represents an unequip request
type UnequipRequest struct {
	PlayerID string `json:"player_id" validate:"required,max=64"`
	UnitID   string `json:"unit_id" validate:"required"`
}

func (h *EquipmentHandler) HandleUnequip(w http.ResponseWriter, r *http.Request) {
	var req UnequipRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Unequip weapon"); err != nil {
		return
	}

	unit, err := h.service.Unequip(r.Context(), req.PlayerID, req.UnitID)
	if err != nil {
		respondServiceError(w, r, ErrMsgUnequipFailed, err)
		return
	}

	respondJSON(w, http.StatusOK, EquipResponse{Message: MsgWeaponUnequipped, Unit: unit})
}
