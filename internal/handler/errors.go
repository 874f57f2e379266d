package handler

// Generic HTTP error messages for client responses.
// These messages intentionally do not expose internal error details for security reasons.
// Both handlers and tests should reference these constants to maintain consistency.
const (
	// HTTP status messages
	ErrMsgMethodNotAllowed      = "Method not allowed"
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"

	// Query parameter error messages
	ErrMsgMissingQueryParam = "Missing %s query parameter"

	// Inventory operation error messages
	ErrMsgGetInventoryFailed = "Failed to get inventory"
	ErrMsgClaimDailyFailed   = "Failed to claim daily reward"
	ErrMsgSellUnitFailed     = "Failed to sell unit"
	ErrMsgSellWeaponFailed   = "Failed to sell weapon"
	ErrMsgAssignRowFailed    = "Failed to assign row"

	// Draw operation error messages
	ErrMsgDrawUnitFailed   = "Failed to draw unit"
	ErrMsgDrawWeaponFailed = "Failed to draw weapon"

	// Equipment operation error messages
	ErrMsgEquipFailed   = "Failed to equip weapon"
	ErrMsgUnequipFailed = "Failed to unequip weapon"

	// Battle operation error messages
	ErrMsgChallengeFailed   = "Failed to issue challenge"
	ErrMsgAcceptFailed      = "Failed to accept challenge"
	ErrMsgDeclineFailed     = "Failed to decline challenge"
	ErrMsgSelectUnitsFailed = "Failed to select units"
	ErrMsgArrangeFailed     = "Failed to arrange formation"
	ErrMsgAttackFailed      = "Failed to attack"
	ErrMsgSurrenderFailed   = "Failed to surrender"
	ErrMsgGetStatusFailed   = "Failed to get battle status"
	ErrMsgGetHistoryFailed  = "Failed to get battle history"

	// Leaderboard error messages
	ErrMsgGetLeaderboardFailed = "Failed to retrieve leaderboard"

	// Parameter validation error messages
	ErrMsgInvalidLimit = "Invalid limit parameter"
	ErrMsgInvalidRow   = "Invalid row. Valid options: front, back"
)

// Success messages for API responses
// These are user-facing success messages returned in JSON responses
const (
	MsgDailyClaimedSuccess = "Daily reward claimed"
	MsgItemSoldSuccess     = "Item sold"
	MsgRowAssignedSuccess  = "Row assigned"
	MsgWeaponEquipped      = "Weapon equipped"
	MsgWeaponUnequipped    = "Weapon unequipped"
	MsgChallengeSent       = "Challenge sent!"
	MsgChallengeAccepted   = "Challenge accepted. Select your units"
	MsgChallengeDeclined   = "Challenge declined"
	MsgUnitsSelected       = "Units selected"
	MsgFormationSet        = "Formation set"
	MsgSurrendered         = "You surrendered"
)
