package bot

import (
	"dominaria/internal/util"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/bwmarrin/discordgo"
)

const leaderboardDisplayLimit = 20

func (bot *Bot) cmdLeaderboard(_ *discordgo.Message, _ []string, w io.Writer) error {
	leaderboard, err := bot.back.GetLeaderboard()
	if err != nil {
		return err
	}

	if len(leaderboard) == 0 {
		fmt.Fprint(w, "There are no registered players yet.")
		return nil
	}

	if len(leaderboard) > leaderboardDisplayLimit {
		leaderboard = leaderboard[:leaderboardDisplayLimit]
	}

	fmt.Fprint(w, "```\n")
	table := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprint(table, "#\tplayer\trating\tgames\twins\n")
	for _, v := range leaderboard {
		fmt.Fprintf(
			table, "%d\t%s\t%.2f\t%d\t%d\n",
			v.Rank, v.PlayerName, v.Rating, v.GamesPlayed, v.Wins,
		)
	}
	table.Flush()
	fmt.Fprint(w, "```")

	return nil
}

func (bot *Bot) cmdHistory(_ *discordgo.Message, args []string, w io.Writer) error {
	page := 1
	if len(args) > 0 {
		var err error
		if page, err = strconv.Atoi(args[0]); err != nil {
			return util.ErrPublic("the page must be a number")
		}
	}

	history, err := bot.back.GetGameHistory(page)
	if err != nil {
		return err
	}

	if len(history.Games) == 0 {
		fmt.Fprint(w, "There are no recorded games on this page.")
		return nil
	}

	for _, game := range history.Games {
		losers := make([]string, 0, len(game.Losers))
		for _, v := range game.Losers {
			losers = append(losers, fmt.Sprintf(
				"%s (%s, %.2f)",
				v.PlayerName, v.CommanderName, v.RatingDelta,
			))
		}

		fmt.Fprintf(
			w, "**%s** — **%s** (%s, +%.2f) won against %s\n",
			util.Date(game.PlayedAt),
			game.Winner.PlayerName, game.Winner.CommanderName,
			game.Winner.RatingDelta,
			strings.Join(losers, ", "),
		)
	}

	fmt.Fprintf(w, "_page %d of %d_", history.Page, history.PageCount())

	return nil
}

func (bot *Bot) cmdCommander(_ *discordgo.Message, args []string, w io.Writer) error {
	query := strings.TrimSpace(strings.Join(args, " "))
	if query == "" {
		return util.ErrPublic("give me a name to search for, eg. `!commander atraxa`")
	}

	commanders, err := bot.back.SearchCommanders(query)
	if err != nil {
		return err
	}

	if len(commanders) == 0 {
		fmt.Fprintf(w, "No commander matches `%s`.", query)
		return nil
	}

	for _, v := range commanders {
		fmt.Fprintf(w, "%s\n", v.Name)
	}

	return nil
}
