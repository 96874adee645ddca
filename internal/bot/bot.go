package bot

import (
	"dominaria/internal/back"
	"dominaria/internal/config"
	"dominaria/internal/util"
	"errors"
	"fmt"
	"io"
	"log"
	"runtime/debug"
	"strings"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"
)

type commandHandler func(m *discordgo.Message, args []string, w io.Writer) error

type Bot struct {
	back   *back.Back
	config *config.Config

	startedAt time.Time
	dg        *discordgo.Session

	handlers map[string]commandHandler
}

func New(back *back.Back, conf *config.Config) (*Bot, error) {
	dg, err := discordgo.New("Bot " + conf.DiscordToken)
	if err != nil {
		return nil, err
	}

	bot := &Bot{
		back:      back,
		config:    conf,
		dg:        dg,
		startedAt: time.Now(),
	}

	dg.AddHandler(bot.handleMessage)

	bot.handlers = map[string]commandHandler{
		"!help":        bot.cmdHelp,
		"!register":    bot.cmdRegister,
		"!rename":      bot.cmdRename,
		"!leaderboard": bot.cmdLeaderboard,
		"!history":     bot.cmdHistory,
		"!commander":   bot.cmdCommander,
		"!submit":      bot.cmdSubmit,
	}

	return bot, nil
}

func (bot *Bot) Serve(wg *sync.WaitGroup, done <-chan struct{}) {
	log.Println("info: starting Discord bot")
	wg.Add(1)
	defer wg.Done()

	if err := bot.dg.Open(); err != nil {
		log.Panic(err)
	}

	go bot.serveNotifications(done)

	<-done

	if err := bot.dg.Close(); err != nil {
		log.Printf("error: could not close Discord bot: %s", err)
	}
}

func (bot *Bot) handleMessage(s *discordgo.Session, m *discordgo.MessageCreate) {
	// Ignore webooks, self, bots, non-commands.
	if m.Author == nil || m.Author.ID == s.State.User.ID ||
		m.Author.Bot || !strings.HasPrefix(m.Content, "!") {
		return
	}

	if !bot.isListenedChannel(m.ChannelID, m.GuildID) {
		return
	}

	log.Printf(
		"info: <%s(%s)@%s#%s> %s",
		m.Author.String(), m.Author.ID,
		m.GuildID, m.ChannelID,
		m.Content,
	)

	out, err := newUserChannelWriter(s, m.Author.ID)
	if err != nil {
		log.Printf("error: could not create channel writer: %s", err)
		return
	}
	defer func() {
		if err := out.Flush(); err != nil {
			log.Printf("error: could not send message: %s", err)
		}
	}()

	defer func() {
		r := recover()
		if r != nil {
			out.Reset()
			fmt.Fprint(out, "Something went very wrong, please tell an admin.")
			log.Print("panic: ", r)
			log.Print(string(debug.Stack()))
		}
	}()

	if err := bot.dispatch(m.Message, out); err != nil {
		out.Reset()

		if errors.Is(err, util.ErrPublic("")) {
			fmt.Fprintf(out, "```%s\n```\nIf you need help, send `!help`.", err)
		} else {
			fmt.Fprint(out, "There was an error processing your command.")
			log.Printf("error: %s", err)
		}
	}
}

// isListenedChannel returns true for PMs (empty guild) and for the
// configured listen channels, everything else is ignored noise.
func (bot *Bot) isListenedChannel(channelID, guildID string) bool {
	if guildID == "" || len(bot.config.DiscordListenIDs) == 0 {
		return true
	}

	for _, v := range bot.config.DiscordListenIDs {
		if v == channelID {
			return true
		}
	}

	return false
}

func (bot *Bot) dispatch(m *discordgo.Message, w io.Writer) error {
	parts := strings.Fields(m.Content)

	handler, ok := bot.handlers[parts[0]]
	if !ok {
		return util.ErrPublic(fmt.Sprintf("there is no %s command", parts[0]))
	}

	return handler(m, parts[1:], w)
}

func (bot *Bot) cmdHelp(_ *discordgo.Message, _ []string, w io.Writer) error {
	fmt.Fprintf(w, `Available commands:
%[1]s
!help                 display this help message
!register NAME        register yourself as a player named NAME
!rename NAME          change your player name
!leaderboard          display the current player rankings
!history [PAGE]       display the latest recorded games
!commander QUERY      search the commander catalog

Admin commands:
!submit DATE WINNER   record a game, followed by one PLAYER: COMMANDER
                      line per player
%[1]s`,
		"```",
	)

	return nil
}
