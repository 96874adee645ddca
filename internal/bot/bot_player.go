package bot

import (
	"dominaria/internal/util"
	"fmt"
	"io"
	"strings"

	"github.com/bwmarrin/discordgo"
)

func (bot *Bot) cmdRegister(m *discordgo.Message, args []string, w io.Writer) error {
	name := strings.TrimSpace(strings.Join(args, " "))
	if name == "" {
		name = m.Author.Username
	}

	player, err := bot.back.RegisterDiscordPlayer(m.Author.ID, name)
	if err != nil {
		return err
	}

	fmt.Fprintf(
		w,
		"You are now registered as **%s**, your starting rating is %.2f.",
		player.Name, player.Rating,
	)

	return nil
}

func (bot *Bot) cmdRename(m *discordgo.Message, args []string, w io.Writer) error {
	name := strings.TrimSpace(strings.Join(args, " "))
	if name == "" {
		return util.ErrPublic("your new name cannot be empty")
	}

	if err := bot.back.UpdateDiscordPlayerName(m.Author.ID, name); err != nil {
		return err
	}

	fmt.Fprintf(w, "You are now known as **%s**.", name)

	return nil
}
