package handler

import (
	"net/http"

	"github.com/tacticbot/tacticbot/internal/gacha"
	"github.com/tacticbot/tacticbot/internal/logger"
)

type GachaHandler struct {
	service gacha.Service
}

func NewGachaHandler(service gacha.Service) *GachaHandler {
	return &GachaHandler{service: service}
}

// DrawRequest represents a draw request for a unit or weapon
type DrawRequest struct {
	PlayerID string `json:"player_id" validate:"required,max=64"`
}

// DrawResponse represents a successful draw
type DrawResponse struct {
	Message string            `json:"message"`
	Result  *gacha.DrawResult `json:"result"`
}

func (h *GachaHandler) HandleDrawUnit(w http.ResponseWriter, r *http.Request) {
	var req DrawRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Draw unit"); err != nil {
		return
	}

	result, err := h.service.DrawUnit(r.Context(), req.PlayerID)
	if err != nil {
		respondServiceError(w, r, ErrMsgDrawUnitFailed, err)
		return
	}

	logger.FromContext(r.Context()).Info("Unit drawn",
		"player_id", req.PlayerID,
		"unit", result.Unit.Name,
		"rarity", result.Unit.Rarity)

	respondJSON(w, http.StatusCreated, DrawResponse{
		Message: drawMessage(string(result.Unit.Rarity)),
		Result:  result,
	})
}

func (h *GachaHandler) HandleDrawWeapon(w http.ResponseWriter, r *http.Request) {
	var req DrawRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Draw weapon"); err != nil {
		return
	}

	result, err := h.service.DrawWeapon(r.Context(), req.PlayerID)
	if err != nil {
		respondServiceError(w, r, ErrMsgDrawWeaponFailed, err)
		return
	}

	logger.FromContext(r.Context()).Info("Weapon drawn",
		"player_id", req.PlayerID,
		"weapon", result.Weapon.Name,
		"rarity", result.Weapon.Rarity)

	respondJSON(w, http.StatusCreated, DrawResponse{
		Message: drawMessage(string(result.Weapon.Rarity)),
		Result:  result,
	})
}

// drawMessage returns a flavor line matching the rolled rarity
func drawMessage(rarity string) string {
	switch rarity {
	case "legendary":
		return "LEGENDARY! An extraordinary find!"
	case "epic":
		return "Epic draw!"
	case "rare":
		return "A rare find!"
	default:
		return "Draw complete"
	}
}
