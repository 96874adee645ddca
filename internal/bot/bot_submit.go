package bot

import (
	"dominaria/internal/back"
	"dominaria/internal/util"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
)

const submitUsage = "send `!submit DATE WINNER` followed by one `PLAYER: COMMANDER` line per player, eg.\n" +
	"```\n!submit 2020-05-01 Urza\nUrza: Atraxa, Praetors' Voice\nMishra: Edgar Markov\n```"

// cmdSubmit records a game. The command spans multiple lines so commander
// names can keep their commas and spaces.
func (bot *Bot) cmdSubmit(m *discordgo.Message, _ []string, w io.Writer) error {
	if !bot.config.IsDiscordIDAdmin(m.Author.ID) {
		return util.ErrPublic("only admins can record games")
	}

	submission, err := parseSubmission(m.Content)
	if err != nil {
		return err
	}

	_, deltas, err := bot.back.SubmitGame(submission)
	if err != nil {
		return err
	}

	fmt.Fprint(w, "Game recorded.\n")
	for player, delta := range deltas {
		fmt.Fprintf(w, "%s: %+.2f\n", player, delta)
	}

	return nil
}

func parseSubmission(content string) (back.GameSubmission, error) {
	lines := strings.Split(content, "\n")

	head := strings.Fields(lines[0])
	if len(head) < 3 {
		return back.GameSubmission{}, util.ErrPublic(submitUsage)
	}

	playedAt, err := time.Parse("2006-01-02", head[1])
	if err != nil {
		return back.GameSubmission{}, util.ErrPublic("the date must look like 2020-05-01")
	}

	submission := back.GameSubmission{
		PlayedAt:   playedAt,
		Winner:     strings.Join(head[2:], " "),
		Commanders: map[string]string{},
	}

	for _, line := range lines[1:] {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		parts := strings.SplitN(line, ":", 2)
		if len(parts) != 2 {
			return back.GameSubmission{}, util.ErrPublic(fmt.Sprintf(
				"`%s` is not a `PLAYER: COMMANDER` line", line,
			))
		}

		submission.Commanders[strings.TrimSpace(parts[0])] = strings.TrimSpace(parts[1])
	}

	return submission, nil
}
