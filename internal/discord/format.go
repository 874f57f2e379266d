package discord

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/tacticbot/tacticbot/internal/domain"
)

// Embed colors per context
const (
	ColorGold   = 0xf1c40f
	ColorPurple = 0x9b59b6
	ColorGreen  = 0x2ecc71
	ColorRed    = 0xe74c3c
	ColorBlue   = 0x3498db
)

const healthBarWidth = 10

var titleCaser = cases.Title(language.English)

// rarityEmoji returns a marker matching the rarity tier
func rarityEmoji(r domain.Rarity) string {
	switch r {
	case domain.RarityLegendary:
		return "🌟"
	case domain.RarityEpic:
		return "💜"
	case domain.RarityRare:
		return "💙"
	default:
		return "⚪"
	}
}

// roleEmoji returns a marker matching the unit role
func roleEmoji(r domain.Role) string {
	switch r {
	case domain.RoleMage:
		return "🔮"
	case domain.RoleTank:
		return "🛡️"
	default:
		return "⚔️"
	}
}

// titleCase renders a role or rarity name for display
func titleCase(s string) string {
	return titleCaser.String(s)
}

// healthBar renders current/max health as a fixed-width bar
func healthBar(current, max int) string {
	if max <= 0 {
		return strings.Repeat("░", healthBarWidth)
	}
	if current < 0 {
		current = 0
	}
	filled := current * healthBarWidth / max
	if filled > healthBarWidth {
		filled = healthBarWidth
	}
	// A living unit always shows at least one filled segment
	if current > 0 && filled == 0 {
		filled = 1
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", healthBarWidth-filled)
}

// formatUnitLine renders one owned unit for the inventory embed
func formatUnitLine(u *domain.Unit) string {
	armed := ""
	if u.Weapon != nil {
		armed = fmt.Sprintf(" — wielding *%s*", u.Weapon.Name)
	}
	return fmt.Sprintf("%s %s **%s** (%s %s)\n`%s` %d/%d HP%s",
		rarityEmoji(u.Rarity), roleEmoji(u.Role), u.Name,
		titleCase(string(u.Rarity)), titleCase(string(u.Role)),
		healthBar(u.CurrentHealth, u.EffectiveMaxHealth()), u.CurrentHealth, u.EffectiveMaxHealth(), armed)
}

// formatWeaponLine renders one owned weapon for the inventory embed
func formatWeaponLine(w *domain.Weapon) string {
	held := ""
	if w.Equipped() {
		held = " — equipped"
	}
	return fmt.Sprintf("%s **%s** (%s %s)%s",
		rarityEmoji(w.Rarity), w.Name, titleCase(string(w.Rarity)), titleCase(string(w.Type)), held)
}

// formatBattleUnitLine renders one combatant for battle status embeds
func formatBattleUnitLine(u *domain.BattleUnit) string {
	status := ""
	if u.CurrentHealth <= 0 {
		status = " 💀"
	}
	return fmt.Sprintf("%s **%s** [%s] `%s` %d/%d HP%s",
		roleEmoji(u.Role), u.Name, rowName(u.Row),
		healthBar(u.CurrentHealth, u.MaxHealth), u.CurrentHealth, u.MaxHealth, status)
}

// rowName renders a formation row for display
func rowName(row domain.Row) string {
	switch row {
	case domain.RowFront:
		return "front"
	case domain.RowBack:
		return "back"
	}
	return "unassigned"
}

// formatCoins renders a currency amount
func formatCoins(amount int) string {
	return fmt.Sprintf("%dβ", amount)
}
