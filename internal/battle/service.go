// Package battle runs the duel lifecycle: challenge, acceptance, unit
// selection, formation, turn-based combat and payout. Negotiation is a
// resumable state machine advanced by explicit calls; a periodic sweep
// enforces the phase deadlines.
package battle

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"

	"github.com/tacticbot/tacticbot/internal/concurrency"
	"github.com/tacticbot/tacticbot/internal/domain"
	"github.com/tacticbot/tacticbot/internal/event"
	"github.com/tacticbot/tacticbot/internal/inventory"
	"github.com/tacticbot/tacticbot/internal/logger"
	"github.com/tacticbot/tacticbot/internal/repository"
)

// PlayerInventories is the slice of the inventory service battles need.
type PlayerInventories interface {
	Ensure(ctx context.Context, playerID string) (*domain.PlayerInventory, error)
	Save(ctx context.Context, inv *domain.PlayerInventory) error
}

// SessionView is the caller-facing snapshot of a session.
type SessionView struct {
	SessionID    string               `json:"session_id"`
	State        domain.SessionState  `json:"state"`
	ChallengerID string               `json:"challenger_id"`
	OpponentID   string               `json:"opponent_id"`
	Location     string               `json:"location"`
	Deadline     time.Time            `json:"deadline,omitempty"`
	Battle       *domain.Battle       `json:"battle,omitempty"`
}

// AttackOutcome reports one resolved turn.
type AttackOutcome struct {
	Result   *AttackResult  `json:"result"`
	Battle   *domain.Battle `json:"battle"`
	Finished bool           `json:"finished"`
	WinnerID string         `json:"winner_id,omitempty"`
	Reward   int            `json:"reward,omitempty"`
}

// Service defines the battle operations.
type Service interface {
	Challenge(ctx context.Context, challengerID, opponentID, location string) (*SessionView, error)
	Accept(ctx context.Context, playerID string) (*SessionView, error)
	Decline(ctx context.Context, playerID string) error
	SelectUnits(ctx context.Context, playerID string, unitIDs []string) (*SessionView, error)
	Arrange(ctx context.Context, playerID string, rows map[string]domain.Row) (*SessionView, error)
	Attack(ctx context.Context, playerID, attackerID, targetID string) (*AttackOutcome, error)
	Surrender(ctx context.Context, playerID string) (*AttackOutcome, error)
	Status(ctx context.Context, playerID string) (*SessionView, error)
	// Sweep expires overdue negotiation phases. Run periodically.
	Sweep(ctx context.Context) int
}

type service struct {
	inventories      PlayerInventories
	battles          repository.Battle
	registry         *Registry
	lockManager      *concurrency.LockManager
	bus              event.Bus
	challengeTimeout time.Duration
	promptTimeout    time.Duration
	rnd              func() float64
	now              func() time.Time
}

// NewService creates a new battle service.
func NewService(inventories PlayerInventories, battles repository.Battle, registry *Registry, lockManager *concurrency.LockManager, bus event.Bus, challengeTimeout, promptTimeout time.Duration) Service {
	return &service{
		inventories:      inventories,
		battles:          battles,
		registry:         registry,
		lockManager:      lockManager,
		bus:              bus,
		challengeTimeout: challengeTimeout,
		promptTimeout:    promptTimeout,
		rnd:              rand.Float64,
		now:              time.Now,
	}
}

// Challenge registers a pending duel between two players at a location.
func (s *service) Challenge(ctx context.Context, challengerID, opponentID, location string) (*SessionView, error) {
	log := logger.FromContext(ctx)

	if challengerID == opponentID {
		return nil, fmt.Errorf("cannot challenge yourself: %w", domain.ErrInvalidSelection)
	}

	// Both rosters must be battle-ready before a challenge occupies the pair.
	if err := s.checkEligibility(ctx, challengerID); err != nil {
		return nil, err
	}
	if err := s.checkEligibility(ctx, opponentID); err != nil {
		return nil, err
	}

	sess := &Session{
		ID:           uuid.New(),
		ChallengerID: challengerID,
		OpponentID:   opponentID,
		Location:     location,
		State:        domain.SessionStatePending,
		Selections:   make(map[string][]string),
		Arranged:     make(map[string]bool),
		rowChoices:   make(map[string]map[string]domain.Row),
		Deadline:     s.now().Add(s.challengeTimeout),
		CreatedAt:    s.now(),
	}

	if err := s.registry.Register(sess); err != nil {
		return nil, err
	}

	log.Info("challenge issued", "challenger", challengerID, "opponent", opponentID, "location", location)
	return sess.view(), nil
}

// Accept moves the player's pending challenge into unit selection.
func (s *service) Accept(ctx context.Context, playerID string) (*SessionView, error) {
	log := logger.FromContext(ctx)

	sess := s.registry.ByPlayer(playerID)
	if sess == nil {
		return nil, domain.ErrNoPendingChallenge
	}

	sess.lock()
	defer sess.unlock()

	if sess.State != domain.SessionStatePending {
		return nil, domain.ErrNoPendingChallenge
	}
	if sess.OpponentID != playerID {
		return nil, fmt.Errorf("only the challenged player may accept: %w", domain.ErrNoPendingChallenge)
	}
	if s.now().After(sess.Deadline) {
		s.expireLocked(sess)
		return nil, domain.ErrChallengeExpired
	}

	if err := s.checkEligibility(ctx, playerID); err != nil {
		s.expireLocked(sess)
		return nil, err
	}

	sess.State = domain.SessionStateSelecting
	sess.Deadline = s.now().Add(s.promptTimeout)

	log.Info("challenge accepted", "challenger", sess.ChallengerID, "opponent", sess.OpponentID)
	return sess.view(), nil
}

// Decline removes the player's pending challenge. Either participant may
// withdraw before acceptance.
func (s *service) Decline(ctx context.Context, playerID string) error {
	log := logger.FromContext(ctx)

	sess := s.registry.ByPlayer(playerID)
	if sess == nil {
		return domain.ErrNoPendingChallenge
	}

	sess.lock()
	defer sess.unlock()

	if sess.State != domain.SessionStatePending {
		return domain.ErrNoPendingChallenge
	}

	s.expireLocked(sess)
	log.Info("challenge declined", "challenger", sess.ChallengerID, "by", playerID)
	return nil
}

// SelectUnits records a player's roster for the upcoming battle. When both
// sides have selected, the session advances to formation.
func (s *service) SelectUnits(ctx context.Context, playerID string, unitIDs []string) (*SessionView, error) {
	log := logger.FromContext(ctx)

	sess := s.registry.ByPlayer(playerID)
	if sess == nil {
		return nil, domain.ErrNoActiveSession
	}

	sess.lock()
	defer sess.unlock()

	if sess.State != domain.SessionStateSelecting {
		return nil, fmt.Errorf("session is %s: %w", sess.State, domain.ErrInvalidSelection)
	}
	if s.now().After(sess.Deadline) {
		s.expireLocked(sess)
		return nil, domain.ErrSetupTimeout
	}

	if len(unitIDs) != domain.BattleSize {
		return nil, fmt.Errorf("need exactly %d units: %w", domain.BattleSize, domain.ErrInvalidSelection)
	}

	// Hold the player lock for the whole read; sellers and equippers
	// mutate the same shared inventory.
	lock := s.lockManager.GetLock(inventory.LockKey(playerID))
	lock.Lock()
	err := s.validateSelection(ctx, playerID, unitIDs)
	lock.Unlock()
	if err != nil {
		return nil, err
	}

	sess.Selections[playerID] = unitIDs
	if len(sess.Selections) == 2 {
		sess.State = domain.SessionStateArranging
		sess.Deadline = s.now().Add(s.promptTimeout)
	}

	log.Info("units selected", "playerID", playerID, "state", sess.State)
	return sess.view(), nil
}

// Arrange records a player's formation rows. When both sides have arranged,
// combat begins.
func (s *service) Arrange(ctx context.Context, playerID string, rows map[string]domain.Row) (*SessionView, error) {
	log := logger.FromContext(ctx)

	sess := s.registry.ByPlayer(playerID)
	if sess == nil {
		return nil, domain.ErrNoActiveSession
	}

	sess.lock()
	defer sess.unlock()

	if sess.State != domain.SessionStateArranging {
		return nil, fmt.Errorf("session is %s: %w", sess.State, domain.ErrInvalidSelection)
	}

	selected := sess.Selections[playerID]
	if len(selected) == 0 {
		return nil, domain.ErrInvalidSelection
	}
	for _, id := range selected {
		row, ok := rows[id]
		if !ok || !row.Valid() {
			return nil, fmt.Errorf("unit %s needs a row: %w", id, domain.ErrInvalidSelection)
		}
	}

	sess.rowChoices[playerID] = rows
	sess.Arranged[playerID] = true

	if len(sess.Arranged) == 2 {
		if err := s.startLocked(ctx, sess); err != nil {
			return nil, err
		}
	}

	log.Info("formation arranged", "playerID", playerID, "state", sess.State)
	return sess.view(), nil
}

// startLocked snapshots both rosters and opens combat. Caller holds the
// session lock.
func (s *service) startLocked(ctx context.Context, sess *Session) error {
	log := logger.FromContext(ctx)

	challengerUnits, err := s.snapshotSide(ctx, sess, sess.ChallengerID)
	if err != nil {
		return err
	}
	opponentUnits, err := s.snapshotSide(ctx, sess, sess.OpponentID)
	if err != nil {
		return err
	}

	sess.Battle = &domain.Battle{
		ID:              sess.ID,
		ChallengerID:    sess.ChallengerID,
		OpponentID:      sess.OpponentID,
		Location:        sess.Location,
		ChallengerUnits: challengerUnits,
		OpponentUnits:   opponentUnits,
		CurrentTurn:     sess.ChallengerID,
		TurnCount:       1,
		StartedAt:       s.now(),
	}
	sess.State = domain.SessionStateInProgress
	sess.Deadline = time.Time{}

	if err := s.bus.Publish(ctx, event.NewBattleStartedEvent(sess.ID.String(), sess.ChallengerID, sess.OpponentID)); err != nil {
		log.Warn("failed to publish battle started event", "error", err)
	}

	log.Info("battle started", "battleID", sess.ID, "challenger", sess.ChallengerID, "opponent", sess.OpponentID)
	return nil
}

// validateSelection checks a proposed roster against the live inventory.
// Caller holds the player lock.
func (s *service) validateSelection(ctx context.Context, playerID string, unitIDs []string) error {
	inv, err := s.inventories.Ensure(ctx, playerID)
	if err != nil {
		return err
	}
	seen := make(map[string]bool, len(unitIDs))
	for _, id := range unitIDs {
		if seen[id] {
			return fmt.Errorf("duplicate unit %s: %w", id, domain.ErrInvalidSelection)
		}
		seen[id] = true
		unit := inv.UnitByID(id)
		if unit == nil {
			return fmt.Errorf("unit %s: %w", id, domain.ErrUnitNotFound)
		}
		if !unit.Alive() {
			return fmt.Errorf("unit %s is defeated: %w", unit.Name, domain.ErrInvalidSelection)
		}
	}
	return nil
}

// snapshotSide freezes a player's selected units into battle entries. A row
// choice wins over the unit's stored preference; unplaced units fall back to
// the role default. The player lock covers the read so a concurrent sale or
// equip cannot shear the snapshot.
func (s *service) snapshotSide(ctx context.Context, sess *Session, playerID string) ([]*domain.BattleUnit, error) {
	lock := s.lockManager.GetLock(inventory.LockKey(playerID))
	lock.Lock()
	defer lock.Unlock()

	inv, err := s.inventories.Ensure(ctx, playerID)
	if err != nil {
		return nil, err
	}

	rows := sess.rowChoices[playerID]
	units := make([]*domain.BattleUnit, 0, domain.BattleSize)
	for _, id := range sess.Selections[playerID] {
		unit := inv.UnitByID(id)
		if unit == nil {
			return nil, fmt.Errorf("unit %s: %w", id, domain.ErrUnitNotFound)
		}
		bu := domain.SnapshotUnit(unit)
		if row, ok := rows[id]; ok && row.Valid() {
			bu.Row = row
		} else if unit.Row.Valid() {
			bu.Row = unit.Row
		} else {
			bu.Row = defaultRow(unit.Role)
		}
		units = append(units, bu)
	}
	return units, nil
}

// Attack resolves one turn of combat for the acting player.
func (s *service) Attack(ctx context.Context, playerID, attackerID, targetID string) (*AttackOutcome, error) {
	log := logger.FromContext(ctx)

	sess := s.registry.ByPlayer(playerID)
	if sess == nil {
		return nil, domain.ErrNoActiveSession
	}

	sess.lock()
	defer sess.unlock()

	if sess.State != domain.SessionStateInProgress || sess.Battle == nil {
		return nil, domain.ErrNoActiveSession
	}

	b := sess.Battle
	if b.CurrentTurn != playerID {
		return nil, domain.ErrNotYourTurn
	}

	attacker := findUnit(b.UnitsOf(playerID), attackerID)
	if attacker == nil {
		return nil, domain.ErrUnitNotFound
	}
	if !attacker.Alive() {
		return nil, fmt.Errorf("%s is defeated: %w", attacker.Name, domain.ErrInvalidSelection)
	}

	defenderID := b.OpponentOf(playerID)
	defenders := b.UnitsOf(defenderID)
	target := findUnit(defenders, targetID)
	if target == nil {
		return nil, domain.ErrUnitNotFound
	}
	if !target.Alive() {
		return nil, fmt.Errorf("%s is already defeated: %w", target.Name, domain.ErrInvalidSelection)
	}

	result := resolveAttack(attacker, target, defenders, s.rnd)
	b.LastAction = describeAttack(attacker, target, result)

	outcome := &AttackOutcome{Result: result, Battle: b}
	if winnerID, done := b.CheckWinner(); done {
		reward, err := s.finishLocked(ctx, sess, winnerID, "elimination")
		if err != nil {
			return nil, err
		}
		outcome.Finished = true
		outcome.WinnerID = winnerID
		outcome.Reward = reward
		return outcome, nil
	}

	b.NextTurn()
	log.Info("attack resolved", "battleID", b.ID, "attacker", attacker.Name, "target", target.Name, "damage", result.Damage)
	return outcome, nil
}

// Surrender concedes the battle; the opponent collects the surrender reward.
func (s *service) Surrender(ctx context.Context, playerID string) (*AttackOutcome, error) {
	sess := s.registry.ByPlayer(playerID)
	if sess == nil {
		return nil, domain.ErrNoActiveSession
	}

	sess.lock()
	defer sess.unlock()

	if sess.State != domain.SessionStateInProgress || sess.Battle == nil {
		return nil, domain.ErrNoActiveSession
	}

	b := sess.Battle
	winnerID := b.OpponentOf(playerID)
	b.WinnerID = winnerID
	b.Completed = true
	b.LastAction = fmt.Sprintf("%s surrendered", playerID)

	reward, err := s.finishLocked(ctx, sess, winnerID, "surrender")
	if err != nil {
		return nil, err
	}
	return &AttackOutcome{Battle: b, Finished: true, WinnerID: winnerID, Reward: reward}, nil
}

// finishLocked pays the winner, records the outcome and releases both
// players. Caller holds the session lock.
func (s *service) finishLocked(ctx context.Context, sess *Session, winnerID, method string) (int, error) {
	log := logger.FromContext(ctx)

	reward := RewardElimination
	state := domain.SessionStateCompleted
	if method == "surrender" {
		reward = RewardSurrender
		state = domain.SessionStateSurrendered
	}
	sess.State = state

	lock := s.lockManager.GetLock(inventory.LockKey(winnerID))
	lock.Lock()
	inv, err := s.inventories.Ensure(ctx, winnerID)
	if err == nil {
		inv.Balance += reward
		err = s.inventories.Save(ctx, inv)
	}
	lock.Unlock()
	if err != nil {
		return 0, fmt.Errorf("failed to pay out reward: %w", err)
	}

	b := sess.Battle
	now := s.now()
	rec := &domain.BattleRecord{
		ID:           b.ID,
		ChallengerID: b.ChallengerID,
		OpponentID:   b.OpponentID,
		WinnerID:     winnerID,
		Location:     b.Location,
		TurnCount:    b.TurnCount,
		Surrendered:  method == "surrender",
		Reward:       reward,
		StartedAt:    b.StartedAt,
		EndedAt:      now,
	}
	if err := s.battles.RecordBattle(ctx, rec); err != nil {
		log.Error("failed to record battle", "error", err, "battleID", b.ID)
	}

	if err := s.bus.Publish(ctx, event.NewBattleCompletedEvent(b.ID.String(), b.ChallengerID, b.OpponentID, winnerID, method, b.TurnCount, reward)); err != nil {
		log.Warn("failed to publish battle completed event", "error", err)
	}

	s.registry.Remove(sess)
	log.Info("battle finished", "battleID", b.ID, "winner", winnerID, "method", method, "reward", reward)
	return reward, nil
}

// Status returns the player's current session, if any.
func (s *service) Status(ctx context.Context, playerID string) (*SessionView, error) {
	sess := s.registry.ByPlayer(playerID)
	if sess == nil {
		return nil, domain.ErrNoActiveSession
	}

	sess.lock()
	defer sess.unlock()
	return sess.view(), nil
}

// Sweep enforces phase deadlines across all live sessions. Overdue pending
// and selecting sessions expire; an overdue arranging session starts with
// the default formation for whoever never confirmed.
func (s *service) Sweep(ctx context.Context) int {
	log := logger.FromContext(ctx)
	now := s.now()
	expired := 0

	for _, sess := range s.registry.Snapshot() {
		sess.lock()
		switch {
		case !sess.Active():
			s.registry.Remove(sess)
		case sess.Deadline.IsZero() || now.Before(sess.Deadline):
			// Phase still within its window.
		case sess.State == domain.SessionStatePending, sess.State == domain.SessionStateSelecting:
			s.expireLocked(sess)
			expired++
			log.Info("session expired", "sessionID", sess.ID, "state", sess.State)
		case sess.State == domain.SessionStateArranging:
			if err := s.startLocked(ctx, sess); err != nil {
				log.Error("failed to start overdue battle", "error", err, "sessionID", sess.ID)
				s.expireLocked(sess)
				expired++
			}
		}
		sess.unlock()
	}
	return expired
}

// expireLocked marks the session dead and releases both players. Caller
// holds the session lock.
func (s *service) expireLocked(sess *Session) {
	sess.State = domain.SessionStateExpired
	s.registry.Remove(sess)
}

// checkEligibility verifies the player can field a full roster.
func (s *service) checkEligibility(ctx context.Context, playerID string) error {
	lock := s.lockManager.GetLock(inventory.LockKey(playerID))
	lock.Lock()
	defer lock.Unlock()

	inv, err := s.inventories.Ensure(ctx, playerID)
	if err != nil {
		return err
	}
	if len(inv.LivingUnits()) < domain.BattleSize {
		return fmt.Errorf("need %d living units: %w", domain.BattleSize, domain.ErrNotEnoughUnits)
	}
	return nil
}

func findUnit(units []*domain.BattleUnit, id string) *domain.BattleUnit {
	for _, u := range units {
		if u.UnitID == id {
			return u
		}
	}
	return nil
}

func describeAttack(attacker, target *domain.BattleUnit, res *AttackResult) string {
	action := fmt.Sprintf("%s hit %s for %d", attacker.Name, target.Name, res.Damage)
	if res.Critical {
		action += " (critical)"
	}
	if res.TargetDefeated {
		action += ", defeating them"
	}
	if res.CounterDamage > 0 {
		action += fmt.Sprintf("; %d defenders countered for %d", res.CounterUnits, res.CounterDamage)
	}
	return action
}

// view renders the session for callers. Caller holds the session lock.
func (s *Session) view() *SessionView {
	return &SessionView{
		SessionID:    s.ID.String(),
		State:        s.State,
		ChallengerID: s.ChallengerID,
		OpponentID:   s.OpponentID,
		Location:     s.Location,
		Deadline:     s.Deadline,
		Battle:       s.Battle,
	}
}
