package inventory

import "time"

const (
	// StartingBalance is granted when a player record is first created.
	StartingBalance = 500
	// StarterUnitCount common units seed a fresh roster.
	StarterUnitCount = 3

	// DailyReward is the currency granted per daily claim.
	DailyReward = 200
	// DailyCooldown is the minimum gap between daily claims.
	DailyCooldown = 24 * time.Hour

	// Cache sizing for the inventory LRU.
	cacheSize = 1024
	cacheTTL  = 5 * time.Minute
)

// LockKey namespaces player inventory locks in the shared lock manager.
// Every service that mutates an inventory must lock through this key.
func LockKey(playerID string) string {
	return "inventory:" + playerID
}
