package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tacticbot/tacticbot/internal/battle"
	"github.com/tacticbot/tacticbot/internal/domain"
)

// stubBattleService implements battle.Service for handler tests
type stubBattleService struct {
	challengeFn   func(ctx context.Context, challengerID, opponentID, location string) (*battle.SessionView, error)
	acceptFn      func(ctx context.Context, playerID string) (*battle.SessionView, error)
	declineFn     func(ctx context.Context, playerID string) error
	selectUnitsFn func(ctx context.Context, playerID string, unitIDs []string) (*battle.SessionView, error)
	arrangeFn     func(ctx context.Context, playerID string, rows map[string]domain.Row) (*battle.SessionView, error)
	attackFn      func(ctx context.Context, playerID, attackerID, targetID string) (*battle.AttackOutcome, error)
	surrenderFn   func(ctx context.Context, playerID string) (*battle.AttackOutcome, error)
	statusFn      func(ctx context.Context, playerID string) (*battle.SessionView, error)
}

func (s *stubBattleService) Challenge(ctx context.Context, challengerID, opponentID, location string) (*battle.SessionView, error) {
	return s.challengeFn(ctx, challengerID, opponentID, location)
}

func (s *stubBattleService) Accept(ctx context.Context, playerID string) (*battle.SessionView, error) {
	return s.acceptFn(ctx, playerID)
}

func (s *stubBattleService) Decline(ctx context.Context, playerID string) error {
	return s.declineFn(ctx, playerID)
}

func (s *stubBattleService) SelectUnits(ctx context.Context, playerID string, unitIDs []string) (*battle.SessionView, error) {
	return s.selectUnitsFn(ctx, playerID, unitIDs)
}

func (s *stubBattleService) Arrange(ctx context.Context, playerID string, rows map[string]domain.Row) (*battle.SessionView, error) {
	return s.arrangeFn(ctx, playerID, rows)
}

func (s *stubBattleService) Attack(ctx context.Context, playerID, attackerID, targetID string) (*battle.AttackOutcome, error) {
	return s.attackFn(ctx, playerID, attackerID, targetID)
}

func (s *stubBattleService) Surrender(ctx context.Context, playerID string) (*battle.AttackOutcome, error) {
	return s.surrenderFn(ctx, playerID)
}

func (s *stubBattleService) Status(ctx context.Context, playerID string) (*battle.SessionView, error) {
	return s.statusFn(ctx, playerID)
}

func (s *stubBattleService) Sweep(ctx context.Context) int { return 0 }

// stubBattleRepo implements repository.Battle for history tests
type stubBattleRepo struct {
	records []domain.BattleRecord
	wins    int
	total   int
}

func (s *stubBattleRepo) RecordBattle(ctx context.Context, record *domain.BattleRecord) error {
	return nil
}

func (s *stubBattleRepo) GetRecentBattles(ctx context.Context, playerID string, limit int) ([]domain.BattleRecord, error) {
	return s.records, nil
}

func (s *stubBattleRepo) GetBattleStats(ctx context.Context, playerID string) (int, int, error) {
	return s.wins, s.total, nil
}

func TestHandleChallenge(t *testing.T) {
	tests := []struct {
		name           string
		reqBody        interface{}
		challengeFn    func(ctx context.Context, challengerID, opponentID, location string) (*battle.SessionView, error)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:    "Success",
			reqBody: ChallengeRequest{ChallengerID: "alice", OpponentID: "bob", Location: "arena"},
			challengeFn: func(ctx context.Context, challengerID, opponentID, location string) (*battle.SessionView, error) {
				return &battle.SessionView{
					SessionID:    "s1",
					State:        domain.SessionStatePending,
					ChallengerID: challengerID,
					OpponentID:   opponentID,
					Location:     location,
				}, nil
			},
			expectedStatus: http.StatusCreated,
			expectedBody:   MsgChallengeSent,
		},
		{
			name:    "Already in session",
			reqBody: ChallengeRequest{ChallengerID: "alice", OpponentID: "bob"},
			challengeFn: func(ctx context.Context, challengerID, opponentID, location string) (*battle.SessionView, error) {
				return nil, domain.ErrAlreadyInSession
			},
			expectedStatus: http.StatusConflict,
			expectedBody:   ErrMsgInSessionError,
		},
		{
			name:    "Not enough units",
			reqBody: ChallengeRequest{ChallengerID: "alice", OpponentID: "bob"},
			challengeFn: func(ctx context.Context, challengerID, opponentID, location string) (*battle.SessionView, error) {
				return nil, domain.ErrNotEnoughUnits
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   ErrMsgNotEnoughUnitsError,
		},
		{
			name:           "Missing opponent",
			reqBody:        ChallengeRequest{ChallengerID: "alice"},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   ErrMsgInvalidRequestSummary,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewBattleHandler(&stubBattleService{challengeFn: tt.challengeFn}, &stubBattleRepo{})
			rec := postJSON(t, h.HandleChallenge, tt.reqBody)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.expectedBody)
		})
	}
}

func TestHandleSelectUnitsValidatesCount(t *testing.T) {
	h := NewBattleHandler(&stubBattleService{}, &stubBattleRepo{})

	rec := postJSON(t, h.HandleSelectUnits, SelectUnitsRequest{
		PlayerID: "alice",
		UnitIDs:  []string{"u1", "u2", "u3"},
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), ErrMsgInvalidRequestSummary)
}

func TestHandleSelectUnits(t *testing.T) {
	svc := &stubBattleService{
		selectUnitsFn: func(ctx context.Context, playerID string, unitIDs []string) (*battle.SessionView, error) {
			assert.Len(t, unitIDs, 5)
			return &battle.SessionView{SessionID: "s1", State: domain.SessionStateArranging}, nil
		},
	}
	h := NewBattleHandler(svc, &stubBattleRepo{})

	rec := postJSON(t, h.HandleSelectUnits, SelectUnitsRequest{
		PlayerID: "alice",
		UnitIDs:  []string{"u1", "u2", "u3", "u4", "u5"},
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), MsgUnitsSelected)
}

func TestHandleArrange(t *testing.T) {
	var gotRows map[string]domain.Row
	svc := &stubBattleService{
		arrangeFn: func(ctx context.Context, playerID string, rows map[string]domain.Row) (*battle.SessionView, error) {
			gotRows = rows
			return &battle.SessionView{SessionID: "s1", State: domain.SessionStateInProgress}, nil
		},
	}
	h := NewBattleHandler(svc, &stubBattleRepo{})

	rec := postJSON(t, h.HandleArrange, ArrangeRequest{
		PlayerID: "alice",
		Rows:     map[string]string{"u1": "front", "u2": "back"},
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, domain.RowFront, gotRows["u1"])
	assert.Equal(t, domain.RowBack, gotRows["u2"])
}

func TestHandleArrangeInvalidRow(t *testing.T) {
	h := NewBattleHandler(&stubBattleService{}, &stubBattleRepo{})

	rec := postJSON(t, h.HandleArrange, ArrangeRequest{
		PlayerID: "alice",
		Rows:     map[string]string{"u1": "sideways"},
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleAttack(t *testing.T) {
	svc := &stubBattleService{
		attackFn: func(ctx context.Context, playerID, attackerID, targetID string) (*battle.AttackOutcome, error) {
			return &battle.AttackOutcome{
				Result: &battle.AttackResult{Damage: 42},
				Battle: &domain.Battle{LastAction: "Pyra hits Gorm for 42 damage"},
			}, nil
		},
	}
	h := NewBattleHandler(svc, &stubBattleRepo{})

	rec := postJSON(t, h.HandleAttack, AttackRequest{PlayerID: "alice", AttackerID: "u1", TargetID: "u9"})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "42 damage")
}

func TestHandleAttackNotYourTurn(t *testing.T) {
	svc := &stubBattleService{
		attackFn: func(ctx context.Context, playerID, attackerID, targetID string) (*battle.AttackOutcome, error) {
			return nil, domain.ErrNotYourTurn
		},
	}
	h := NewBattleHandler(svc, &stubBattleRepo{})

	rec := postJSON(t, h.HandleAttack, AttackRequest{PlayerID: "bob", AttackerID: "u1", TargetID: "u9"})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), ErrMsgNotYourTurnError)
}

func TestHandleSurrender(t *testing.T) {
	svc := &stubBattleService{
		surrenderFn: func(ctx context.Context, playerID string) (*battle.AttackOutcome, error) {
			return &battle.AttackOutcome{
				Battle:   &domain.Battle{},
				Finished: true,
				WinnerID: "bob",
				Reward:   100,
			}, nil
		},
	}
	h := NewBattleHandler(svc, &stubBattleRepo{})

	rec := postJSON(t, h.HandleSurrender, SessionActionRequest{PlayerID: "alice"})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"reward":100`)
}

func TestHandleStatusNoSession(t *testing.T) {
	svc := &stubBattleService{
		statusFn: func(ctx context.Context, playerID string) (*battle.SessionView, error) {
			return nil, domain.ErrNoActiveSession
		},
	}
	h := NewBattleHandler(svc, &stubBattleRepo{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/battle/status?player_id=alice", nil)
	rec := httptest.NewRecorder()
	h.HandleStatus(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), ErrMsgNoSessionError)
}

func TestHandleHistory(t *testing.T) {
	repo := &stubBattleRepo{
		records: []domain.BattleRecord{{ChallengerID: "alice", OpponentID: "bob", WinnerID: "alice", Reward: 200}},
		wins:    3,
		total:   5,
	}
	h := NewBattleHandler(&stubBattleService{}, repo)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/battle/history?player_id=alice", nil)
	rec := httptest.NewRecorder()
	h.HandleHistory(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"wins":3`)
	assert.Contains(t, rec.Body.String(), `"total":5`)
}
