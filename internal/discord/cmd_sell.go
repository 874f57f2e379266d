package discord

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/tacticbot/tacticbot/internal/inventory"
)

// SellCommand returns the sell command definition and handler.
// The confirm option doubles as the sale confirmation: without it the
// command only explains what would happen, nothing is sold.
func SellCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "sell",
		Description: "Sell a unit or weapon for coins",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "kind",
				Description: "What to sell",
				Required:    true,
				Choices: []*discordgo.ApplicationCommandOptionChoice{
					{Name: "Unit", Value: "unit"},
					{Name: "Weapon", Value: "weapon"},
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "id",
				Description: "Item ID (see /inventory)",
				Required:    true,
			},
			{
				Type:        discordgo.ApplicationCommandOptionBoolean,
				Name:        "confirm",
				Description: "Set true to complete the sale",
				Required:    false,
			},
		},
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		handleEmbedResponse(s, i, func() (string, error) {
			user := getInteractionUser(i)
			opts := optionMap(getOptions(i))

			kind := opts["kind"].StringValue()
			itemID := opts["id"].StringValue()

			confirmed := false
			if opt, ok := opts["confirm"]; ok {
				confirmed = opt.BoolValue()
			}
			if !confirmed {
				return fmt.Sprintf("Selling is permanent. Re-run with `confirm: True` to sell %s `%s`.\nPrices: common 25β, rare 50β, epic 100β, legendary 200β.", kind, itemID), nil
			}

			var result *inventory.SaleResult
			var err error
			if kind == "weapon" {
				result, err = client.SellWeapon(user.ID, itemID)
			} else {
				result, err = client.SellUnit(user.ID, itemID)
			}
			if err != nil {
				return "", err
			}

			return fmt.Sprintf("Sold %s **%s** (%s) for **%s**.\nNew balance: **%s**",
				result.ItemKind, result.ItemName, titleCase(string(result.Rarity)),
				formatCoins(result.Price), formatCoins(result.Balance)), nil
		}, ResponseConfig{
			Title: "💰 Sell",
			Color: ColorGold,
		})
	}

	return cmd, handler
}

// RowCommand returns the row assignment command definition and handler
func RowCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "row",
		Description: "Set a unit's preferred formation row",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "unit",
				Description: "Unit ID (see /inventory)",
				Required:    true,
			},
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "row",
				Description: "Formation row",
				Required:    true,
				Choices: []*discordgo.ApplicationCommandOptionChoice{
					{Name: "Front", Value: "front"},
					{Name: "Back", Value: "back"},
				},
			},
		},
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		handleEmbedResponse(s, i, func() (string, error) {
			user := getInteractionUser(i)
			opts := optionMap(getOptions(i))

			unitID := opts["unit"].StringValue()
			row := opts["row"].StringValue()

			if err := client.AssignRow(user.ID, unitID, row); err != nil {
				return "", err
			}

			return fmt.Sprintf("Unit `%s` will prefer the **%s** row.", unitID, row), nil
		}, ResponseConfig{
			Title: "📐 Formation",
			Color: ColorBlue,
		})
	}

	return cmd, handler
}
