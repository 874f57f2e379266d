package discord

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/bwmarrin/discordgo"
)

// InventoryCommand returns the inventory command definition and handler
func InventoryCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "inventory",
		Description: "View your units, weapons and balance",
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		if !deferResponse(s, i) {
			return
		}

		user := getInteractionUser(i)

		inv, err := client.GetInventory(user.ID)
		if err != nil {
			slog.Error("Failed to get inventory", "error", err)
			respondFriendlyError(s, i, err.Error())
			return
		}

		var unitLines []string
		for _, u := range inv.Units {
			unitLines = append(unitLines, formatUnitLine(u))
		}
		if len(unitLines) == 0 {
			unitLines = []string{"No units yet. Try /draw!"}
		}

		var weaponLines []string
		for _, w := range inv.Weapons {
			weaponLines = append(weaponLines, formatWeaponLine(w))
		}
		if len(weaponLines) == 0 {
			weaponLines = []string{"No weapons yet."}
		}

		embed := &discordgo.MessageEmbed{
			Title: fmt.Sprintf("%s's Collection", user.Username),
			Color: ColorPurple,
			Fields: []*discordgo.MessageEmbedField{
				{Name: "Balance", Value: formatCoins(inv.Balance), Inline: true},
				{Name: fmt.Sprintf("Units (%d)", len(inv.Units)), Value: strings.Join(unitLines, "\n")},
				{Name: fmt.Sprintf("Weapons (%d)", len(inv.Weapons)), Value: strings.Join(weaponLines, "\n")},
			},
			Footer: &discordgo.MessageEmbedFooter{
				Text: "TacticBot",
			},
		}

		if _, err := s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
			Embeds: &[]*discordgo.MessageEmbed{embed},
		}); err != nil {
			slog.Error("Failed to send inventory embed", "error", err)
		}
	}

	return cmd, handler
}

// DailyCommand returns the daily reward command definition and handler
func DailyCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "daily",
		Description: "Claim your daily coin reward",
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		handleEmbedResponse(s, i, func() (string, error) {
			user := getInteractionUser(i)

			result, err := client.ClaimDaily(user.ID)
			if err != nil {
				return "", err
			}

			return fmt.Sprintf("You claimed **%s**!\nNew balance: **%s**\nNext claim: <t:%d:R>",
				formatCoins(result.Amount), formatCoins(result.Balance), result.NextClaimAt.Unix()), nil
		}, ResponseConfig{
			Title: "💰 Daily Reward",
			Color: ColorGold,
		})
	}

	return cmd, handler
}
