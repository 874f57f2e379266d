package discord

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/tacticbot/tacticbot/internal/catalog"
	"github.com/tacticbot/tacticbot/internal/domain"
)

// InfoCommand returns the item detail command definition and handler.
// Looks the ID up in the caller's own collection, so it shows units and
// weapons alike without a kind option.
func InfoCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "info",
		Description: "Show full stats for one of your units or weapons",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "id",
				Description: "Unit or weapon ID (see /inventory)",
				Required:    true,
			},
		},
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		if !deferResponse(s, i) {
			return
		}

		user := getInteractionUser(i)
		opts := optionMap(getOptions(i))
		id := opts["id"].StringValue()

		inv, err := client.GetInventory(user.ID)
		if err != nil {
			slog.Error("Failed to get inventory", "error", err)
			respondFriendlyError(s, i, err.Error())
			return
		}

		var embed *discordgo.MessageEmbed
		switch {
		case inv.UnitByID(id) != nil:
			embed = unitInfoEmbed(inv.UnitByID(id))
		case inv.WeaponByID(id) != nil:
			embed = weaponInfoEmbed(inv.WeaponByID(id))
		default:
			respondFriendlyError(s, i, domain.ErrMsgUnitNotFound)
			return
		}

		if _, err := s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
			Embeds: &[]*discordgo.MessageEmbed{embed},
		}); err != nil {
			slog.Error("Failed to send info embed", "error", err)
		}
	}

	return cmd, handler
}

func unitInfoEmbed(u *domain.Unit) *discordgo.MessageEmbed {
	stats := []string{
		fmt.Sprintf("Health: %s %d/%d", healthBar(u.CurrentHealth, u.EffectiveMaxHealth()), u.CurrentHealth, u.EffectiveMaxHealth()),
		fmt.Sprintf("Damage: %d", u.EffectiveDamage()),
		fmt.Sprintf("Armor: %d", u.EffectiveArmor()),
	}
	switch u.Role {
	case domain.RoleMage:
		stats = append(stats, fmt.Sprintf("Spell Power: %d", u.EffectiveSpellPower()))
	case domain.RoleWarrior:
		stats = append(stats, fmt.Sprintf("Crit Chance: %d%%", u.EffectiveCritChance()))
	}

	equipped := "Nothing"
	if u.Weapon != nil {
		equipped = fmt.Sprintf("%s (%s)", u.Weapon.Name, titleCase(string(u.Weapon.Type)))
	}

	var wieldable []string
	for _, wt := range catalog.CompatibleTypes(u.Role) {
		wieldable = append(wieldable, titleCase(string(wt)))
	}

	return &discordgo.MessageEmbed{
		Title: fmt.Sprintf("%s %s %s", rarityEmoji(u.Rarity), roleEmoji(u.Role), u.Name),
		Color: ColorBlue,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Role", Value: titleCase(string(u.Role)), Inline: true},
			{Name: "Rarity", Value: titleCase(string(u.Rarity)), Inline: true},
			{Name: "Row", Value: rowName(u.Row), Inline: true},
			{Name: "Stats", Value: strings.Join(stats, "\n")},
			{Name: "Wielding", Value: equipped, Inline: true},
			{Name: "Can Wield", Value: strings.Join(wieldable, ", "), Inline: true},
			{Name: "ID", Value: fmt.Sprintf("`%s`", u.ID)},
		},
		Footer: &discordgo.MessageEmbedFooter{Text: "TacticBot"},
	}
}

func weaponInfoEmbed(w *domain.Weapon) *discordgo.MessageEmbed {
	var bonuses []string
	if w.Stats.Health != 0 {
		bonuses = append(bonuses, fmt.Sprintf("Health %+d", w.Stats.Health))
	}
	if w.Stats.Damage != 0 {
		bonuses = append(bonuses, fmt.Sprintf("Damage %+d", w.Stats.Damage))
	}
	if w.Stats.Armor != 0 {
		bonuses = append(bonuses, fmt.Sprintf("Armor %+d", w.Stats.Armor))
	}
	if w.Stats.SpellPower != 0 {
		bonuses = append(bonuses, fmt.Sprintf("Spell Power %+d", w.Stats.SpellPower))
	}
	if w.Stats.CritChance != 0 {
		bonuses = append(bonuses, fmt.Sprintf("Crit Chance %+d%%", w.Stats.CritChance))
	}
	if len(bonuses) == 0 {
		bonuses = []string{"None"}
	}

	var roles []string
	for _, role := range domain.Roles {
		if catalog.Compatible(role, w.Type) {
			roles = append(roles, titleCase(string(role)))
		}
	}

	status := "In the armory"
	if w.Equipped() {
		status = fmt.Sprintf("Wielded by `%s`", w.WielderID)
	}

	return &discordgo.MessageEmbed{
		Title: fmt.Sprintf("%s %s", rarityEmoji(w.Rarity), w.Name),
		Color: ColorBlue,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Type", Value: titleCase(string(w.Type)), Inline: true},
			{Name: "Rarity", Value: titleCase(string(w.Rarity)), Inline: true},
			{Name: "Status", Value: status, Inline: true},
			{Name: "Bonuses", Value: strings.Join(bonuses, "\n")},
			{Name: "Usable By", Value: strings.Join(roles, ", "), Inline: true},
			{Name: "ID", Value: fmt.Sprintf("`%s`", w.ID)},
		},
		Footer: &discordgo.MessageEmbedFooter{Text: "TacticBot"},
	}
}
