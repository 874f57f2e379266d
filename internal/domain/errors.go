package domain

import "errors"

// Error message string constants - single source of truth for error messages.
// Use these in assert.Contains() checks when testing error messages.
const (
	// Player errors
	ErrMsgPlayerNotFound = "player not found"

	// Economy errors
	ErrMsgInsufficientFunds = "insufficient funds"
	ErrMsgOnCooldown        = "daily reward on cooldown"

	// Collection errors
	ErrMsgUnitNotFound     = "unit not found"
	ErrMsgWeaponNotFound   = "weapon not found"
	ErrMsgInvalidSelection = "invalid unit selection"

	// Equipment errors
	ErrMsgIncompatibleEquipment = "weapon is not compatible with unit role"
	ErrMsgItemEquipped          = "item is currently equipped"

	// Sale errors
	ErrMsgBelowMinimumUnits    = "selling would drop collection below the minimum unit count"
	ErrMsgConfirmationDeclined = "sale declined"
	ErrMsgConfirmationTimeout  = "sale confirmation timed out"

	// Battle errors
	ErrMsgNotYourTurn        = "not your turn"
	ErrMsgNoActiveSession    = "no active battle session"
	ErrMsgAlreadyInSession   = "already in a battle session"
	ErrMsgNotEnoughUnits     = "not enough living units to battle"
	ErrMsgChallengeExpired   = "battle challenge expired"
	ErrMsgSetupTimeout       = "battle setup timed out"
	ErrMsgNoPendingChallenge = "no pending battle challenge"
)

// Common domain errors.
// These errors should be used consistently across all layers of the application.
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	// Player errors
	ErrPlayerNotFound = errors.New(ErrMsgPlayerNotFound)

	// Economy errors
	ErrInsufficientFunds = errors.New(ErrMsgInsufficientFunds)
	ErrOnCooldown        = errors.New(ErrMsgOnCooldown)

	// Collection errors
	ErrUnitNotFound     = errors.New(ErrMsgUnitNotFound)
	ErrWeaponNotFound   = errors.New(ErrMsgWeaponNotFound)
	ErrInvalidSelection = errors.New(ErrMsgInvalidSelection)

	// Equipment errors
	ErrIncompatibleEquipment = errors.New(ErrMsgIncompatibleEquipment)
	ErrItemEquipped          = errors.New(ErrMsgItemEquipped)

	// Sale errors
	ErrBelowMinimumUnits    = errors.New(ErrMsgBelowMinimumUnits)
	ErrConfirmationDeclined = errors.New(ErrMsgConfirmationDeclined)
	ErrConfirmationTimeout  = errors.New(ErrMsgConfirmationTimeout)

	// Battle errors
	ErrNotYourTurn        = errors.New(ErrMsgNotYourTurn)
	ErrNoActiveSession    = errors.New(ErrMsgNoActiveSession)
	ErrAlreadyInSession   = errors.New(ErrMsgAlreadyInSession)
	ErrNotEnoughUnits     = errors.New(ErrMsgNotEnoughUnits)
	ErrChallengeExpired   = errors.New(ErrMsgChallengeExpired)
	ErrSetupTimeout       = errors.New(ErrMsgSetupTimeout)
	ErrNoPendingChallenge = errors.New(ErrMsgNoPendingChallenge)
)
