package discord

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/tacticbot/tacticbot/internal/battle"
	"github.com/tacticbot/tacticbot/internal/domain"
)

// ChallengeCommand returns the battle challenge command definition and handler
func ChallengeCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "challenge",
		Description: "Challenge another player to a 5v5 battle",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionUser,
				Name:        "opponent",
				Description: "Player to challenge",
				Required:    true,
			},
		},
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		handleEmbedResponse(s, i, func() (string, error) {
			user := getInteractionUser(i)
			opponent := getOptions(i)[0].UserValue(s)

			view, err := client.Challenge(user.ID, opponent.ID, i.ChannelID)
			if err != nil {
				return "", err
			}

			return fmt.Sprintf("<@%s>, you have been challenged by **%s**!\nAccept with /accept before <t:%d:R>.",
				opponent.ID, user.Username, view.Deadline.Unix()), nil
		}, ResponseConfig{
			Title: "⚔️ Challenge",
			Color: ColorRed,
		})
	}

	return cmd, handler
}

// AcceptCommand returns the challenge accept command definition and handler
func AcceptCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "accept",
		Description: "Accept a pending battle challenge",
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		handleEmbedResponse(s, i, func() (string, error) {
			user := getInteractionUser(i)

			view, err := client.Accept(user.ID)
			if err != nil {
				return "", err
			}

			return fmt.Sprintf("Battle on! Both players: pick your roster with /select before <t:%d:R>.\nSession `%s`",
				view.Deadline.Unix(), view.SessionID), nil
		}, ResponseConfig{
			Title: "⚔️ Challenge Accepted",
			Color: ColorGreen,
		})
	}

	return cmd, handler
}

// DeclineCommand returns the challenge decline command definition and handler
func DeclineCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "decline",
		Description: "Decline a pending battle challenge",
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		handleEmbedResponse(s, i, func() (string, error) {
			user := getInteractionUser(i)

			if err := client.Decline(user.ID); err != nil {
				return "", err
			}
			return "Challenge declined.", nil
		}, ResponseConfig{
			Title: "⚔️ Declined",
			Color: ColorBlue,
		})
	}

	return cmd, handler
}

// SelectCommand returns the roster selection command definition and handler
func SelectCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "select",
		Description: "Pick your 5 battle units (comma-separated IDs)",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "units",
				Description: "Five unit IDs, comma separated",
				Required:    true,
			},
		},
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		handleEmbedResponse(s, i, func() (string, error) {
			user := getInteractionUser(i)
			ids := splitIDs(getOptions(i)[0].StringValue())

			view, err := client.SelectUnits(user.ID, ids)
			if err != nil {
				return "", err
			}

			if view.State == domain.SessionStateArranging {
				return "Roster locked in. Both players: set your formation with /arrange.", nil
			}
			return "Roster locked in. Waiting for your opponent's selection.", nil
		}, ResponseConfig{
			Title: "⚔️ Roster",
			Color: ColorBlue,
		})
	}

	return cmd, handler
}

// ArrangeCommand returns the formation command definition and handler
func ArrangeCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "arrange",
		Description: "Set your formation, e.g. unit1:front,unit2:back",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "formation",
				Description: "unitID:row pairs, comma separated",
				Required:    true,
			},
		},
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		handleEmbedResponse(s, i, func() (string, error) {
			user := getInteractionUser(i)

			rows, err := parseFormation(getOptions(i)[0].StringValue())
			if err != nil {
				return "", err
			}

			view, err := client.Arrange(user.ID, rows)
			if err != nil {
				return "", err
			}

			if view.State == domain.SessionStateInProgress {
				return fmt.Sprintf("**The battle begins!** %s goes first.\nAttack with /attack.", view.Battle.CurrentTurn), nil
			}
			return "Formation set. Waiting for your opponent.", nil
		}, ResponseConfig{
			Title: "📐 Formation",
			Color: ColorBlue,
		})
	}

	return cmd, handler
}

// AttackCommand returns the attack command definition and handler
func AttackCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "attack",
		Description: "Attack an enemy unit on your turn",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "attacker",
				Description: "Your unit's ID",
				Required:    true,
			},
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "target",
				Description: "Enemy unit's ID",
				Required:    true,
			},
		},
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		handleEmbedResponse(s, i, func() (string, error) {
			user := getInteractionUser(i)
			opts := optionMap(getOptions(i))

			outcome, err := client.Attack(user.ID, opts["attacker"].StringValue(), opts["target"].StringValue())
			if err != nil {
				return "", err
			}

			return describeOutcome(outcome), nil
		}, ResponseConfig{
			Title: "⚔️ Attack",
			Color: ColorRed,
		})
	}

	return cmd, handler
}

// SurrenderCommand returns the surrender command definition and handler
func SurrenderCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "surrender",
		Description: "Forfeit your current battle",
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		handleEmbedResponse(s, i, func() (string, error) {
			user := getInteractionUser(i)

			outcome, err := client.Surrender(user.ID)
			if err != nil {
				return "", err
			}

			return fmt.Sprintf("You surrendered. <@%s> wins **%s**.", outcome.WinnerID, formatCoins(outcome.Reward)), nil
		}, ResponseConfig{
			Title: "🏳️ Surrender",
			Color: ColorBlue,
		})
	}

	return cmd, handler
}

// BattleStatusCommand returns the battle status command definition and handler
func BattleStatusCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "battle",
		Description: "Show your current battle",
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		if !deferResponse(s, i) {
			return
		}

		user := getInteractionUser(i)

		view, err := client.Status(user.ID)
		if err != nil {
			slog.Error("Failed to get battle status", "error", err)
			respondFriendlyError(s, i, err.Error())
			return
		}

		embed := battleStatusEmbed(view)
		if _, err := s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
			Embeds: &[]*discordgo.MessageEmbed{embed},
		}); err != nil {
			slog.Error("Failed to send battle embed", "error", err)
		}
	}

	return cmd, handler
}

// battleStatusEmbed renders a session into a status embed
func battleStatusEmbed(view *battle.SessionView) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: "⚔️ Battle Status",
		Color: ColorRed,
		Footer: &discordgo.MessageEmbedFooter{
			Text: "TacticBot",
		},
	}

	if view.Battle == nil {
		embed.Description = fmt.Sprintf("Session `%s` is **%s**.", view.SessionID, view.State)
		if !view.Deadline.IsZero() {
			embed.Description += fmt.Sprintf("\nPhase deadline: <t:%d:R>", view.Deadline.Unix())
		}
		return embed
	}

	b := view.Battle
	embed.Description = fmt.Sprintf("Turn %d — it is <@%s>'s move.", b.TurnCount, b.CurrentTurn)
	if b.LastAction != "" {
		embed.Description += "\n> " + b.LastAction
	}

	embed.Fields = []*discordgo.MessageEmbedField{
		{Name: "Challenger", Value: sideLines(b.ChallengerUnits)},
		{Name: "Opponent", Value: sideLines(b.OpponentUnits)},
	}
	return embed
}

func sideLines(units []*domain.BattleUnit) string {
	lines := make([]string, 0, len(units))
	for _, u := range units {
		lines = append(lines, formatBattleUnitLine(u))
	}
	return strings.Join(lines, "\n")
}

// describeOutcome renders one resolved attack turn
func describeOutcome(outcome *battle.AttackOutcome) string {
	var sb strings.Builder
	sb.WriteString(outcome.Battle.LastAction)

	r := outcome.Result
	if r != nil {
		if r.Critical {
			sb.WriteString("\n💥 **Critical hit!**")
		}
		if r.CounterDamage > 0 {
			sb.WriteString(fmt.Sprintf("\n🛡️ The front line counterattacks for %d damage (%d defenders)!", r.CounterDamage, r.CounterUnits))
		}
		if r.TargetDefeated {
			sb.WriteString("\n💀 The target falls!")
		}
		if r.AttackerDefeated {
			sb.WriteString("\n💀 The attacker is cut down by the counter!")
		}
	}

	if outcome.Finished {
		sb.WriteString(fmt.Sprintf("\n\n🏆 **<@%s> wins the battle** and earns **%s**!", outcome.WinnerID, formatCoins(outcome.Reward)))
	}
	return sb.String()
}

// splitIDs splits a comma-separated ID list, trimming whitespace
func splitIDs(raw string) []string {
	parts := strings.Split(raw, ",")
	ids := make([]string, 0, len(parts))
	for _, p := range parts {
		if id := strings.TrimSpace(p); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

// parseFormation parses "unitID:row" pairs separated by commas
func parseFormation(raw string) (map[string]string, error) {
	rows := make(map[string]string)
	for _, pair := range strings.Split(raw, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		parts := strings.SplitN(pair, ":", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid formation entry %q, expected unitID:row", pair)
		}
		id := strings.TrimSpace(parts[0])
		row := strings.ToLower(strings.TrimSpace(parts[1]))
		if row != "front" && row != "back" {
			return nil, fmt.Errorf("invalid row %q, expected front or back", row)
		}
		rows[id] = row
	}
	return rows, nil
}
