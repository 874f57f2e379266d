package discord

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tacticbot/tacticbot/internal/domain"
)

func TestHealthBar(t *testing.T) {
	tests := []struct {
		name    string
		current int
		max     int
		filled  int
	}{
		{"Full health", 100, 100, 10},
		{"Half health", 50, 100, 5},
		{"Dead", 0, 100, 0},
		{"Sliver of health shows one segment", 1, 100, 1},
		{"Over max clamps", 150, 100, 10},
		{"Zero max", 10, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bar := healthBar(tt.current, tt.max)
			assert.Len(t, []rune(bar), healthBarWidth)
			assert.Equal(t, tt.filled, strings.Count(bar, "█"))
		})
	}
}

func TestFormatUnitLine(t *testing.T) {
	u := &domain.Unit{
		ID:            "u1",
		Name:          "Pyra the Ember",
		Role:          domain.RoleMage,
		Rarity:        domain.RarityLegendary,
		MaxHealth:     160,
		CurrentHealth: 160,
		Damage:        80,
		SpellPower:    30,
	}

	line := formatUnitLine(u)
	assert.Contains(t, line, "Pyra the Ember")
	assert.Contains(t, line, "Legendary")
	assert.Contains(t, line, "Mage")
	assert.Contains(t, line, "160/160 HP")
	assert.NotContains(t, line, "wielding")
}

func TestFormatUnitLineArmed(t *testing.T) {
	w := &domain.Weapon{ID: "w1", Name: "Ember Fang", Type: domain.WeaponStaff, Rarity: domain.RarityRare}
	u := &domain.Unit{
		Name:          "Pyra",
		Role:          domain.RoleMage,
		Rarity:        domain.RarityCommon,
		MaxHealth:     80,
		CurrentHealth: 80,
		Weapon:        w,
		WeaponID:      "w1",
	}

	line := formatUnitLine(u)
	assert.Contains(t, line, "wielding *Ember Fang*")
}

func TestFormatWeaponLine(t *testing.T) {
	w := &domain.Weapon{Name: "Sturdy Blade", Type: domain.WeaponSword, Rarity: domain.RarityRare}

	line := formatWeaponLine(w)
	assert.Contains(t, line, "Sturdy Blade")
	assert.Contains(t, line, "Rare Sword")
	assert.NotContains(t, line, "equipped")

	w.WielderID = "u1"
	assert.Contains(t, formatWeaponLine(w), "equipped")
}

func TestFormatFriendlyError(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"Insufficient funds", "API error: " + domain.ErrMsgInsufficientFunds, MsgInsufficientFunds},
		{"Cooldown", domain.ErrMsgOnCooldown, MsgCooldownActive},
		{"Handler message for cooldown", "Daily reward already claimed. Try again later", MsgCooldownActive},
		{"Not your turn", domain.ErrMsgNotYourTurn, MsgNotYourTurn},
		{"Already in session", domain.ErrMsgAlreadyInSession, MsgAlreadyInSession},
		{"Unknown passes through", "the server caught fire", "the server caught fire"},
		{"Empty falls back", "", MsgGenericError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, formatFriendlyError(tt.input))
		})
	}
}

func TestParseFormation(t *testing.T) {
	rows, err := parseFormation("u1:front, u2:back,u3:FRONT")
	assert.NoError(t, err)
	assert.Equal(t, map[string]string{"u1": "front", "u2": "back", "u3": "front"}, rows)

	_, err = parseFormation("u1:middle")
	assert.Error(t, err)

	_, err = parseFormation("u1")
	assert.Error(t, err)
}

func TestSplitIDs(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, splitIDs(" a, b ,c,"))
	assert.Empty(t, splitIDs("  "))
}
