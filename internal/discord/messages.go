package discord

// Friendly message constants for Discord responses
const (
	// Economy
	MsgInsufficientFunds = "⚠️ **Not Enough Coins!**\nDraws cost 100β for units and 75β for weapons."
	MsgCooldownActive    = "⏳ **Already Claimed**\nYour next daily reward isn't ready yet."

	// Collection
	MsgUnitNotFound     = "❓ **Unit Not Found**\nCheck the unit ID with /inventory."
	MsgWeaponNotFound   = "❓ **Weapon Not Found**\nCheck the weapon ID with /inventory."
	MsgIncompatible     = "🚫 **Wrong Weapon Type**\nThat role can't wield this weapon."
	MsgItemEquipped     = "🛡️ **Item In Use**\nUnequip it before selling."
	MsgBelowMinimum     = "🎒 **Too Few Units**\nYou must keep at least 5 units to stay battle-ready."
	MsgSaleDeclined     = "💰 Sale cancelled."
	MsgSaleTimedOut     = "⏳ Sale confirmation timed out."

	// Battle
	MsgNotYourTurn       = "⚔️ **Not Your Turn**\nWait for your opponent to act."
	MsgNoActiveSession   = "⚔️ **No Battle**\nYou're not in a battle right now."
	MsgAlreadyInSession  = "⚔️ **Busy**\nYou're already in a battle session."
	MsgNotEnoughUnits    = "🎒 **Not Battle-Ready**\nYou need at least 5 living units."
	MsgChallengeExpired  = "⏳ **Challenge Expired**\nIssue a new one with /challenge."
	MsgNoPendingChall    = "❓ **No Challenge**\nNobody has challenged you."

	MsgGenericError = "❌ Something went wrong."
)
