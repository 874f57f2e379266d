package discord

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// EquipCommand returns the equip command definition and handler
func EquipCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "equip",
		Description: "Give a weapon to one of your units",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "unit",
				Description: "Unit ID (see /inventory)",
				Required:    true,
			},
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "weapon",
				Description: "Weapon ID (see /inventory)",
				Required:    true,
			},
		},
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		handleEmbedResponse(s, i, func() (string, error) {
			user := getInteractionUser(i)
			opts := optionMap(getOptions(i))

			unit, displaced, err := client.Equip(user.ID, opts["unit"].StringValue(), opts["weapon"].StringValue())
			if err != nil {
				return "", err
			}

			msg := fmt.Sprintf("**%s** took up the weapon.\nBase stats: %d damage, %d armor, %d/%d HP",
				unit.Name, unit.Damage, unit.Armor, unit.CurrentHealth, unit.MaxHealth)
			if displaced != nil {
				msg += fmt.Sprintf("\nPut down *%s*, back in the armory.", displaced.Name)
			}
			return msg, nil
		}, ResponseConfig{
			Title: "🗡️ Equipped",
			Color: ColorGreen,
		})
	}

	return cmd, handler
}

// UnequipCommand returns the unequip command definition and handler
func UnequipCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "unequip",
		Description: "Remove a unit's weapon",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "unit",
				Description: "Unit ID (see /inventory)",
				Required:    true,
			},
		},
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		handleEmbedResponse(s, i, func() (string, error) {
			user := getInteractionUser(i)

			unit, err := client.Unequip(user.ID, getOptions(i)[0].StringValue())
			if err != nil {
				return "", err
			}

			return fmt.Sprintf("**%s** is now unarmed.", unit.Name), nil
		}, ResponseConfig{
			Title: "🗡️ Unequipped",
			Color: ColorBlue,
		})
	}

	return cmd, handler
}
