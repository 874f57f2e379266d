package discord

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/tacticbot/tacticbot/internal/gacha"
)

// DrawCommand returns the draw command definition and handler
func DrawCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "draw",
		Description: "Spend coins on a random unit or weapon",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "kind",
				Description: "What to draw",
				Required:    true,
				Choices: []*discordgo.ApplicationCommandOptionChoice{
					{Name: "Unit (100β)", Value: "unit"},
					{Name: "Weapon (75β)", Value: "weapon"},
				},
			},
		},
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		handleEmbedResponse(s, i, func() (string, error) {
			user := getInteractionUser(i)
			kind := getOptions(i)[0].StringValue()

			var result *gacha.DrawResult
			var err error
			if kind == "weapon" {
				result, err = client.DrawWeapon(user.ID)
			} else {
				result, err = client.DrawUnit(user.ID)
			}
			if err != nil {
				return "", err
			}

			return describeDraw(result), nil
		}, ResponseConfig{
			Title: "🎲 Draw",
			Color: ColorBlue,
		})
	}

	return cmd, handler
}

// describeDraw renders a draw result for the response embed
func describeDraw(result *gacha.DrawResult) string {
	if result.Unit != nil {
		u := result.Unit
		return fmt.Sprintf("%s %s You drew **%s**!\n%s %s — %d HP, %d damage, %d armor\nSpent %s, balance %s",
			rarityEmoji(u.Rarity), roleEmoji(u.Role), u.Name,
			titleCase(string(u.Rarity)), titleCase(string(u.Role)),
			u.MaxHealth, u.Damage, u.Armor,
			formatCoins(result.Cost), formatCoins(result.Balance))
	}

	w := result.Weapon
	return fmt.Sprintf("%s You drew **%s**!\n%s %s\nSpent %s, balance %s",
		rarityEmoji(w.Rarity), w.Name,
		titleCase(string(w.Rarity)), titleCase(string(w.Type)),
		formatCoins(result.Cost), formatCoins(result.Balance))
}
