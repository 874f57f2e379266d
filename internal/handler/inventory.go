package handler

import (
	"context"
	"net/http"

	"github.com/tacticbot/tacticbot/internal/inventory"
	"github.com/tacticbot/tacticbot/internal/logger"
)

type InventoryHandler struct {
	service inventory.Service
}

func NewInventoryHandler(service inventory.Service) *InventoryHandler {
	return &InventoryHandler{service: service}
}

// HandleGetInventory returns a player's full collection, creating the starter
// roster on first access.
func (h *InventoryHandler) HandleGetInventory(w http.ResponseWriter, r *http.Request) {
	playerID, ok := GetQueryParam(r, w, "player_id")
	if !ok {
		return
	}

	inv, err := h.service.Ensure(r.Context(), playerID)
	if err != nil {
		respondServiceError(w, r, ErrMsgGetInventoryFailed, err)
		return
	}

	respondJSON(w, http.StatusOK, inv)
}

// ClaimDailyRequest represents a daily reward claim request
type ClaimDailyRequest struct {
	PlayerID string `json:"player_id" validate:"required,max=64"`
}

// ClaimDailyResponse represents a daily reward claim response
type ClaimDailyResponse struct {
	Message string                 `json:"message"`
	Result  *inventory.DailyResult `json:"result"`
}

func (h *InventoryHandler) HandleClaimDaily(w http.ResponseWriter, r *http.Request) {
	var req ClaimDailyRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Claim daily"); err != nil {
		return
	}

	result, err := h.service.ClaimDaily(r.Context(), req.PlayerID)
	if err != nil {
		respondServiceError(w, r, ErrMsgClaimDailyFailed, err)
		return
	}

	logger.FromContext(r.Context()).Info("Daily reward claimed",
		"player_id", req.PlayerID,
		"amount", result.Amount,
		"balance", result.Balance)

	respondJSON(w, http.StatusOK, ClaimDailyResponse{
		Message: MsgDailyClaimedSuccess,
		Result:  result,
	})
}

// SellRequest represents a sale request for a unit or weapon.
// Confirmed must be true; clients show the price quote and collect the
// player's confirmation before calling.
type SellRequest struct {
	PlayerID  string `json:"player_id" validate:"required,max=64"`
	ItemID    string `json:"item_id" validate:"required"`
	Confirmed bool   `json:"confirmed"`
}

// SellResponse represents a completed sale
type SellResponse struct {
	Message string                `json:"message"`
	Result  *inventory.SaleResult `json:"result"`
}

func (h *InventoryHandler) HandleSellUnit(w http.ResponseWriter, r *http.Request) {
	var req SellRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Sell unit"); err != nil {
		return
	}

	result, err := h.service.SellUnit(r.Context(), req.PlayerID, req.ItemID, confirmerFor(req.Confirmed))
	if err != nil {
		respondServiceError(w, r, ErrMsgSellUnitFailed, err)
		return
	}

	respondJSON(w, http.StatusOK, SellResponse{Message: MsgItemSoldSuccess, Result: result})
}

func (h *InventoryHandler) HandleSellWeapon(w http.ResponseWriter, r *http.Request) {
	var req SellRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Sell weapon"); err != nil {
		return
	}

	result, err := h.service.SellWeapon(r.Context(), req.PlayerID, req.ItemID, confirmerFor(req.Confirmed))
	if err != nil {
		respondServiceError(w, r, ErrMsgSellWeaponFailed, err)
		return
	}

	respondJSON(w, http.StatusOK, SellResponse{Message: MsgItemSoldSuccess, Result: result})
}

// confirmerFor adapts the request's confirmed flag to the service callback.
// The HTTP API is synchronous, so confirmation happens on the client before
// the request is made.
func confirmerFor(confirmed bool) inventory.Confirmer {
	return func(ctx context.Context, prompt string) (bool, error) {
		return confirmed, nil
	}
}

// AssignRowRequest represents a formation row assignment request
type AssignRowRequest struct {
	PlayerID string `json:"player_id" validate:"required,max=64"`
	UnitID   string `json:"unit_id" validate:"required"`
	Row      string `json:"row" validate:"required,row"`
}

func (h *InventoryHandler) HandleAssignRow(w http.ResponseWriter, r *http.Request) {
	var req AssignRowRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Assign row"); err != nil {
		return
	}

	row, ok := parseRow(req.Row)
	if !ok {
		respondError(w, http.StatusBadRequest, ErrMsgInvalidRow)
		return
	}

	if err := h.service.AssignRow(r.Context(), req.PlayerID, req.UnitID, row); err != nil {
		respondServiceError(w, r, ErrMsgAssignRowFailed, err)
		return
	}

	respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgRowAssignedSuccess})
}

// HandleGetLeaderboard returns the top players by balance
func (h *InventoryHandler) HandleGetLeaderboard(w http.ResponseWriter, r *http.Request) {
	limit, err := parseLimit(GetOptionalQueryParam(r, "limit", "10"))
	if err != nil {
		respondError(w, http.StatusBadRequest, ErrMsgInvalidLimit)
		return
	}

	entries, err := h.service.Leaderboard(r.Context(), limit)
	if err != nil {
		respondServiceError(w, r, ErrMsgGetLeaderboardFailed, err)
		return
	}

	respondJSON(w, http.StatusOK, DataResponse{Data: entries})
}
