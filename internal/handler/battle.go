package handler

import (
	"net/http"

	"github.com/tacticbot/tacticbot/internal/battle"
	"github.com/tacticbot/tacticbot/internal/domain"
	"github.com/tacticbot/tacticbot/internal/logger"
	"github.com/tacticbot/tacticbot/internal/repository"
)

type BattleHandler struct {
	service battle.Service
	battles repository.Battle
}

func NewBattleHandler(service battle.Service, battles repository.Battle) *BattleHandler {
	return &BattleHandler{service: service, battles: battles}
}

// ChallengeRequest represents a battle challenge request
type ChallengeRequest struct {
	ChallengerID string `json:"challenger_id" validate:"required,max=64"`
	OpponentID   string `json:"opponent_id" validate:"required,max=64"`
	Location     string `json:"location" validate:"max=128"`
}

// SessionResponse wraps the current session state
type SessionResponse struct {
	Message string              `json:"message"`
	Session *battle.SessionView `json:"session"`
}

func (h *BattleHandler) HandleChallenge(w http.ResponseWriter, r *http.Request) {
	var req ChallengeRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Issue challenge"); err != nil {
		return
	}

	view, err := h.service.Challenge(r.Context(), req.ChallengerID, req.OpponentID, req.Location)
	if err != nil {
		respondServiceError(w, r, ErrMsgChallengeFailed, err)
		return
	}

	logger.FromContext(r.Context()).Info("Battle challenge issued",
		"challenger_id", req.ChallengerID,
		"opponent_id", req.OpponentID,
		"location", req.Location)

	respondJSON(w, http.StatusCreated, SessionResponse{Message: MsgChallengeSent, Session: view})
}

// SessionActionRequest identifies the acting player for session transitions
type SessionActionRequest struct {
	PlayerID string `json:"player_id" validate:"required,max=64"`
}

func (h *BattleHandler) HandleAccept(w http.ResponseWriter, r *http.Request) {
	var req SessionActionRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Accept challenge"); err != nil {
		return
	}

	view, err := h.service.Accept(r.Context(), req.PlayerID)
	if err != nil {
		respondServiceError(w, r, ErrMsgAcceptFailed, err)
		return
	}

	respondJSON(w, http.StatusOK, SessionResponse{Message: MsgChallengeAccepted, Session: view})
}

func (h *BattleHandler) HandleDecline(w http.ResponseWriter, r *http.Request) {
	var req SessionActionRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Decline challenge"); err != nil {
		return
	}

	if err := h.service.Decline(r.Context(), req.PlayerID); err != nil {
		respondServiceError(w, r, ErrMsgDeclineFailed, err)
		return
	}

	respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgChallengeDeclined})
}

// SelectUnitsRequest represents a roster selection for a pending battle
type SelectUnitsRequest struct {
	PlayerID string   `json:"player_id" validate:"required,max=64"`
	UnitIDs  []string `json:"unit_ids" validate:"required,len=5,dive,required"`
}

func (h *BattleHandler) HandleSelectUnits(w http.ResponseWriter, r *http.Request) {
	var req SelectUnitsRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Select units"); err != nil {
		return
	}

	view, err := h.service.SelectUnits(r.Context(), req.PlayerID, req.UnitIDs)
	if err != nil {
		respondServiceError(w, r, ErrMsgSelectUnitsFailed, err)
		return
	}

	respondJSON(w, http.StatusOK, SessionResponse{Message: MsgUnitsSelected, Session: view})
}

// ArrangeRequest represents a formation arrangement for selected units.
// Rows maps unit ID to "front" or "back".
type ArrangeRequest struct {
	PlayerID string            `json:"player_id" validate:"required,max=64"`
	Rows     map[string]string `json:"rows" validate:"required,dive,row"`
}

func (h *BattleHandler) HandleArrange(w http.ResponseWriter, r *http.Request) {
	var req ArrangeRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Arrange formation"); err != nil {
		return
	}

	rows, ok := parseRows(req.Rows)
	if !ok {
		respondError(w, http.StatusBadRequest, ErrMsgInvalidRow)
		return
	}

	view, err := h.service.Arrange(r.Context(), req.PlayerID, rows)
	if err != nil {
		respondServiceError(w, r, ErrMsgArrangeFailed, err)
		return
	}

	respondJSON(w, http.StatusOK, SessionResponse{Message: MsgFormationSet, Session: view})
}

// AttackRequest represents one attack action in an active battle
type AttackRequest struct {
	PlayerID   string `json:"player_id" validate:"required,max=64"`
	AttackerID string `json:"attacker_id" validate:"required"`
	TargetID   string `json:"target_id" validate:"required"`
}

// AttackResponse represents a resolved attack turn
type AttackResponse struct {
	Message string                `json:"message"`
	Outcome *battle.AttackOutcome `json:"outcome"`
}

func (h *BattleHandler) HandleAttack(w http.ResponseWriter, r *http.Request) {
	var req AttackRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Attack"); err != nil {
		return
	}

	outcome, err := h.service.Attack(r.Context(), req.PlayerID, req.AttackerID, req.TargetID)
	if err != nil {
		respondServiceError(w, r, ErrMsgAttackFailed, err)
		return
	}

	respondJSON(w, http.StatusOK, AttackResponse{
		Message: outcome.Battle.LastAction,
		Outcome: outcome,
	})
}

func (h *BattleHandler) HandleSurrender(w http.ResponseWriter, r *http.Request) {
	var req SessionActionRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Surrender"); err != nil {
		return
	}

	outcome, err := h.service.Surrender(r.Context(), req.PlayerID)
	if err != nil {
		respondServiceError(w, r, ErrMsgSurrenderFailed, err)
		return
	}

	respondJSON(w, http.StatusOK, AttackResponse{Message: MsgSurrendered, Outcome: outcome})
}

// HandleStatus returns the caller's current session, if any
func (h *BattleHandler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	playerID, ok := GetQueryParam(r, w, "player_id")
	if !ok {
		return
	}

	view, err := h.service.Status(r.Context(), playerID)
	if err != nil {
		respondServiceError(w, r, ErrMsgGetStatusFailed, err)
		return
	}

	respondJSON(w, http.StatusOK, view)
}

// HandleHistory returns a player's recent battle records
func (h *BattleHandler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	playerID, ok := GetQueryParam(r, w, "player_id")
	if !ok {
		return
	}

	limit, err := parseLimit(GetOptionalQueryParam(r, "limit", "10"))
	if err != nil {
		respondError(w, http.StatusBadRequest, ErrMsgInvalidLimit)
		return
	}

	records, err := h.battles.GetRecentBattles(r.Context(), playerID, limit)
	if err != nil {
		respondServiceError(w, r, ErrMsgGetHistoryFailed, err)
		return
	}

	wins, total, err := h.battles.GetBattleStats(r.Context(), playerID)
	if err != nil {
		respondServiceError(w, r, ErrMsgGetHistoryFailed, err)
		return
	}

	respondJSON(w, http.StatusOK, BattleHistoryResponse{
		Wins:    wins,
		Total:   total,
		Battles: records,
	})
}

// BattleHistoryResponse summarizes a player's battle record
type BattleHistoryResponse struct {
	Wins    int                   `json:"wins"`
	Total   int                   `json:"total"`
	Battles []domain.BattleRecord `json:"battles"`
}

// parseRows converts request row names into domain rows
func parseRows(raw map[string]string) (map[string]domain.Row, bool) {
	rows := make(map[string]domain.Row, len(raw))
	for unitID, name := range raw {
		row, ok := parseRow(name)
		if !ok {
			return nil, false
		}
		rows[unitID] = row
	}
	return rows, true
}
