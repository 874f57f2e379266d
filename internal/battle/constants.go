package battle

const (
	// RewardElimination is paid to the winner when the losing side is wiped out.
	RewardElimination = 200
	// RewardSurrender is paid to the winner when the loser concedes.
	RewardSurrender = 100

	// CritMultiplier scales a critical hit, truncating toward zero.
	CritMultiplier = 1.5
	// MagePierceFraction is the share of target armor a mage attack ignores.
	MagePierceFraction = 0.3
	// CounterFraction is the share of the attacker's damage each front-line
	// defender returns when the back row is struck in melee.
	CounterFraction = 0.25
	// MaxCounterattackers caps how many defenders join a counterattack.
	MaxCounterattackers = 3
)
