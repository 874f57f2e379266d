package discord

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/tacticbot/tacticbot/internal/battle"
	"github.com/tacticbot/tacticbot/internal/domain"
	"github.com/tacticbot/tacticbot/internal/gacha"
	"github.com/tacticbot/tacticbot/internal/inventory"
)

// APIClient handles communication with the TacticBot Core API
type APIClient struct {
	BaseURL string
	Client  *http.Client
	APIKey  string
}

// NewAPIClient creates a new API client
func NewAPIClient(baseURL, apiKey string) *APIClient {
	return &APIClient{
		BaseURL: baseURL,
		Client: &http.Client{
			Timeout: 10 * time.Second,
		},
		APIKey: apiKey,
	}
}

// doRequest performs an HTTP request with retry logic
func (c *APIClient) doRequest(method, path string, body interface{}) (*http.Response, error) {
	var reqBody []byte
	var err error

	if body != nil {
		reqBody, err = json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal body: %w", err)
		}
	}

	url := fmt.Sprintf("%s%s", c.BaseURL, path)

	// Retry configuration
	maxRetries := 3
	retryDelay := 500 * time.Millisecond

	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			// Exponential backoff with jitter
			jitter := time.Duration(time.Now().UnixNano()%100) * time.Millisecond
			delay := retryDelay*time.Duration(1<<uint(attempt-1)) + jitter
			time.Sleep(delay)
			slog.Info("Retrying API request", "attempt", attempt, "path", path, "delay", delay)
		}

		req, err := http.NewRequest(method, url, bytes.NewBuffer(reqBody))
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}

		req.Header.Set("Content-Type", "application/json")
		if c.APIKey != "" {
			req.Header.Set("X-API-Key", c.APIKey)
		}

		resp, err := c.Client.Do(req)
		if err != nil {
			lastErr = err
			slog.Warn("API request failed", "error", err, "attempt", attempt)
			continue
		}

		// Success or non-retryable error
		if resp.StatusCode < 500 {
			return resp, nil
		}

		// Server error - retry
		resp.Body.Close()
		lastErr = fmt.Errorf("server error: %d", resp.StatusCode)
		slog.Warn("Server error, will retry", "status", resp.StatusCode, "attempt", attempt)
	}

	return nil, fmt.Errorf("max retries exceeded: %w", lastErr)
}

// decodeOrError decodes a success payload, or surfaces the API's error message.
func decodeOrError(resp *http.Response, out interface{}) error {
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		var errResp struct {
			Error string `json:"error"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&errResp); err == nil && errResp.Error != "" {
			return fmt.Errorf("API error: %s", errResp.Error)
		}
		return fmt.Errorf("API returned status: %d", resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// GetInventory fetches a player's full collection
func (c *APIClient) GetInventory(playerID string) (*domain.PlayerInventory, error) {
	path := fmt.Sprintf("/api/v1/inventory?player_id=%s", url.QueryEscape(playerID))
	resp, err := c.doRequest(http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	var inv domain.PlayerInventory
	if err := decodeOrError(resp, &inv); err != nil {
		return nil, err
	}
	// Restore unit<->weapon links dropped by serialization
	inv.Reconnect()
	return &inv, nil
}

// ClaimDaily claims the player's daily reward
func (c *APIClient) ClaimDaily(playerID string) (*inventory.DailyResult, error) {
	req := map[string]string{"player_id": playerID}

	resp, err := c.doRequest(http.MethodPost, "/api/v1/inventory/daily", req)
	if err != nil {
		return nil, err
	}

	var body struct {
		Result *inventory.DailyResult `json:"result"`
	}
	if err := decodeOrError(resp, &body); err != nil {
		return nil, err
	}
	return body.Result, nil
}

// DrawUnit performs a unit draw
func (c *APIClient) DrawUnit(playerID string) (*gacha.DrawResult, error) {
	return c.draw(playerID, "/api/v1/draw/unit")
}

// DrawWeapon performs a weapon draw
func (c *APIClient) DrawWeapon(playerID string) (*gacha.DrawResult, error) {
	return c.draw(playerID, "/api/v1/draw/weapon")
}

func (c *APIClient) draw(playerID, path string) (*gacha.DrawResult, error) {
	req := map[string]string{"player_id": playerID}

	resp, err := c.doRequest(http.MethodPost, path, req)
	if err != nil {
		return nil, err
	}

	var body struct {
		Message string            `json:"message"`
		Result  *gacha.DrawResult `json:"result"`
	}
	if err := decodeOrError(resp, &body); err != nil {
		return nil, err
	}
	return body.Result, nil
}

// Equip assigns a weapon to a unit
func (c *APIClient) Equip(playerID, unitID, weaponID string) (*domain.Unit, *domain.Weapon, error) {
	req := map[string]string{
		"player_id": playerID,
		"unit_id":   unitID,
		"weapon_id": weaponID,
	}
	return c.equipmentCall("/api/v1/equipment/equip", req)
}

// Unequip removes a unit's weapon
func (c *APIClient) Unequip(playerID, unitID string) (*domain.Unit, error) {
	req := map[string]string{
		"player_id": playerID,
		"unit_id":   unitID,
	}
	unit, _, err := c.equipmentCall("/api/v1/equipment/unequip", req)
	return unit, err
}

func (c *APIClient) equipmentCall(path string, req map[string]string) (*domain.Unit, *domain.Weapon, error) {
	resp, err := c.doRequest(http.MethodPost, path, req)
	if err != nil {
		return nil, nil, err
	}

	var body struct {
		Message   string         `json:"message"`
		Unit      *domain.Unit   `json:"unit"`
		Displaced *domain.Weapon `json:"displaced"`
	}
	if err := decodeOrError(resp, &body); err != nil {
		return nil, nil, err
	}
	return body.Unit, body.Displaced, nil
}

// SellUnit sells a unit; the player confirmed in Discord before this call
func (c *APIClient) SellUnit(playerID, unitID string) (*inventory.SaleResult, error) {
	return c.sell("/api/v1/inventory/sell/unit", playerID, unitID)
}

// SellWeapon sells a weapon; the player confirmed in Discord before this call
func (c *APIClient) SellWeapon(playerID, weaponID string) (*inventory.SaleResult, error) {
	return c.sell("/api/v1/inventory/sell/weapon", playerID, weaponID)
}

func (c *APIClient) sell(path, playerID, itemID string) (*inventory.SaleResult, error) {
	req := map[string]interface{}{
		"player_id": playerID,
		"item_id":   itemID,
		"confirmed": true,
	}

	resp, err := c.doRequest(http.MethodPost, path, req)
	if err != nil {
		return nil, err
	}

	var body struct {
		Message string                `json:"message"`
		Result  *inventory.SaleResult `json:"result"`
	}
	if err := decodeOrError(resp, &body); err != nil {
		return nil, err
	}
	return body.Result, nil
}

// AssignRow stores a unit's preferred formation row
func (c *APIClient) AssignRow(playerID, unitID, row string) error {
	req := map[string]string{
		"player_id": playerID,
		"unit_id":   unitID,
		"row":       row,
	}

	resp, err := c.doRequest(http.MethodPost, "/api/v1/inventory/row", req)
	if err != nil {
		return err
	}
	return decodeOrError(resp, nil)
}

// Challenge issues a battle challenge
func (c *APIClient) Challenge(challengerID, opponentID, location string) (*battle.SessionView, error) {
	req := map[string]string{
		"challenger_id": challengerID,
		"opponent_id":   opponentID,
		"location":      location,
	}
	return c.sessionCall("/api/v1/battle/challenge", req)
}

// Accept accepts a pending challenge
func (c *APIClient) Accept(playerID string) (*battle.SessionView, error) {
	return c.sessionCall("/api/v1/battle/accept", map[string]string{"player_id": playerID})
}

// Decline declines a pending challenge
func (c *APIClient) Decline(playerID string) error {
	resp, err := c.doRequest(http.MethodPost, "/api/v1/battle/decline", map[string]string{"player_id": playerID})
	if err != nil {
		return err
	}
	return decodeOrError(resp, nil)
}

// SelectUnits submits a battle roster
func (c *APIClient) SelectUnits(playerID string, unitIDs []string) (*battle.SessionView, error) {
	req := map[string]interface{}{
		"player_id": playerID,
		"unit_ids":  unitIDs,
	}
	return c.sessionCall("/api/v1/battle/select", req)
}

// Arrange submits the battle formation
func (c *APIClient) Arrange(playerID string, rows map[string]string) (*battle.SessionView, error) {
	req := map[string]interface{}{
		"player_id": playerID,
		"rows":      rows,
	}
	return c.sessionCall("/api/v1/battle/arrange", req)
}

func (c *APIClient) sessionCall(path string, req interface{}) (*battle.SessionView, error) {
	resp, err := c.doRequest(http.MethodPost, path, req)
	if err != nil {
		return nil, err
	}

	var body struct {
		Message string              `json:"message"`
		Session *battle.SessionView `json:"session"`
	}
	if err := decodeOrError(resp, &body); err != nil {
		return nil, err
	}
	return body.Session, nil
}

// Attack resolves one attack in the caller's battle
func (c *APIClient) Attack(playerID, attackerID, targetID string) (*battle.AttackOutcome, error) {
	req := map[string]string{
		"player_id":   playerID,
		"attacker_id": attackerID,
		"target_id":   targetID,
	}
	return c.outcomeCall("/api/v1/battle/attack", req)
}

// Surrender forfeits the caller's battle
func (c *APIClient) Surrender(playerID string) (*battle.AttackOutcome, error) {
	return c.outcomeCall("/api/v1/battle/surrender", map[string]string{"player_id": playerID})
}

func (c *APIClient) outcomeCall(path string, req interface{}) (*battle.AttackOutcome, error) {
	resp, err := c.doRequest(http.MethodPost, path, req)
	if err != nil {
		return nil, err
	}

	var body struct {
		Message string                `json:"message"`
		Outcome *battle.AttackOutcome `json:"outcome"`
	}
	if err := decodeOrError(resp, &body); err != nil {
		return nil, err
	}
	return body.Outcome, nil
}

// Status returns the caller's current battle session
func (c *APIClient) Status(playerID string) (*battle.SessionView, error) {
	path := fmt.Sprintf("/api/v1/battle/status?player_id=%s", url.QueryEscape(playerID))
	resp, err := c.doRequest(http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	var view battle.SessionView
	if err := decodeOrError(resp, &view); err != nil {
		return nil, err
	}
	return &view, nil
}

// Leaderboard returns the top players by balance
func (c *APIClient) Leaderboard(limit int) ([]domain.LeaderboardEntry, error) {
	path := fmt.Sprintf("/api/v1/leaderboard?limit=%d", limit)
	resp, err := c.doRequest(http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	var body struct {
		Data []domain.LeaderboardEntry `json:"data"`
	}
	if err := decodeOrError(resp, &body); err != nil {
		return nil, err
	}
	return body.Data, nil
}
