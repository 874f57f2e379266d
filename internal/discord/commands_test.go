package discord

import (
	"testing"

	"github.com/bwmarrin/discordgo"
)

func TestCommandsEqual(t *testing.T) {
	base := func() []*discordgo.ApplicationCommand {
		return []*discordgo.ApplicationCommand{
			{Name: "inventory", Description: "View your units, weapons and balance"},
			{
				Name:        "draw",
				Description: "Spend coins on a random unit or weapon",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "kind",
						Description: "What to draw",
						Required:    true,
						Choices: []*discordgo.ApplicationCommandOptionChoice{
							{Name: "Unit", Value: "unit"},
							{Name: "Weapon", Value: "weapon"},
						},
					},
				},
			},
		}
	}

	t.Run("identical commands are equal", func(t *testing.T) {
		if !commandsEqual(base(), base()) {
			t.Error("Expected identical command sets to compare equal")
		}
	})

	t.Run("different length is not equal", func(t *testing.T) {
		if commandsEqual(base(), base()[:1]) {
			t.Error("Expected sets of different length to differ")
		}
	})

	t.Run("changed description is not equal", func(t *testing.T) {
		changed := base()
		changed[0].Description = "something else"
		if commandsEqual(base(), changed) {
			t.Error("Expected changed description to be detected")
		}
	})

	t.Run("changed option choice is not equal", func(t *testing.T) {
		changed := base()
		changed[1].Options[0].Choices[0].Value = "units"
		if commandsEqual(base(), changed) {
			t.Error("Expected changed choice value to be detected")
		}
	})

	t.Run("order does not matter", func(t *testing.T) {
		reordered := base()
		reordered[0], reordered[1] = reordered[1], reordered[0]
		if !commandsEqual(base(), reordered) {
			t.Error("Expected comparison to be order-independent")
		}
	})
}

func TestRegistryRegisterAndLookup(t *testing.T) {
	registry := NewCommandRegistry()
	handled := false

	registry.Register(&discordgo.ApplicationCommand{Name: "daily"}, func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		handled = true
	})

	if len(registry.Commands) != 1 || registry.Commands["daily"] == nil {
		t.Fatalf("Expected one registered command named daily, got %v", registry.Commands)
	}

	handler, ok := registry.Handlers["daily"]
	if !ok {
		t.Fatal("Expected handler to be registered under command name")
	}
	handler(nil, nil, nil)
	if !handled {
		t.Error("Handler was not invoked")
	}
}

func TestGetInteractionUser(t *testing.T) {
	guildUser := &discordgo.User{ID: "123", Username: "alice"}
	dmUser := &discordgo.User{ID: "456", Username: "bob"}

	t.Run("guild interaction uses member user", func(t *testing.T) {
		i := &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
			Member: &discordgo.Member{User: guildUser},
		}}
		if got := getInteractionUser(i); got != guildUser {
			t.Errorf("Expected member user, got %v", got)
		}
	})

	t.Run("dm interaction uses top-level user", func(t *testing.T) {
		i := &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
			User: dmUser,
		}}
		if got := getInteractionUser(i); got != dmUser {
			t.Errorf("Expected direct user, got %v", got)
		}
	})

	t.Run("no user present returns nil", func(t *testing.T) {
		i := &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{}}
		if got := getInteractionUser(i); got != nil {
			t.Errorf("Expected nil, got %v", got)
		}
	})
}
