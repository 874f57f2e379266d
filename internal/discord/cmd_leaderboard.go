package discord

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
)

// LeaderboardCommand returns the leaderboard command definition and handler
func LeaderboardCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "leaderboard",
		Description: "Show the richest players",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionInteger,
				Name:        "limit",
				Description: "Number of players to show (default: 10)",
				Required:    false,
			},
		},
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		handleEmbedResponse(s, i, func() (string, error) {
			limit := 10
			if opts := getOptions(i); len(opts) > 0 {
				limit = int(opts[0].IntValue())
			}

			entries, err := client.Leaderboard(limit)
			if err != nil {
				return "", err
			}
			if len(entries) == 0 {
				return "Nobody has played yet.", nil
			}

			lines := make([]string, 0, len(entries))
			for _, e := range entries {
				medal := fmt.Sprintf("%d.", e.Rank)
				switch e.Rank {
				case 1:
					medal = "🥇"
				case 2:
					medal = "🥈"
				case 3:
					medal = "🥉"
				}
				lines = append(lines, fmt.Sprintf("%s <@%s> — **%s** (%d units)",
					medal, e.PlayerID, formatCoins(e.Balance), e.UnitCount))
			}
			return strings.Join(lines, "\n"), nil
		}, ResponseConfig{
			Title: "🏆 Leaderboard",
			Color: ColorGold,
		})
	}

	return cmd, handler
}
