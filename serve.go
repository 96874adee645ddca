package main

import (
	"context"
	"dominaria/internal/back"
	"dominaria/internal/bot"
	"dominaria/internal/config"
	"dominaria/internal/web"
	"dominaria/pkg/scryfall"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"
)

func serve() error {
	conf, err := config.NewFromUserConfigDir()
	if err != nil {
		return err
	}

	if err := performMigrations(); err != nil {
		return err
	}

	b, err := back.New("sqlite3", conf.DBPath)
	if err != nil {
		return err
	}

	done := make(chan struct{})
	signaled := make(chan os.Signal, 1)
	signal.Notify(signaled, syscall.SIGINT, syscall.SIGTERM)

	var wg sync.WaitGroup
	go b.Run(&wg, done)

	server := web.NewServer(b, conf)
	go server.Serve(&wg, done)

	if conf.DiscordToken != "" {
		discord, err := bot.New(b, conf)
		if err != nil {
			return err
		}
		go discord.Serve(&wg, done)
	} else {
		log.Print("warning: no Discord token configured, not starting the bot")
	}

	go warmupCommanderCatalog(b)

	sig := <-signaled
	log.Printf("info: received signal %d", sig)
	close(done)
	wg.Wait()

	log.Print("info: shutdown complete")

	return nil
}

// warmupCommanderCatalog fetches the commander catalog on first run, this can
// take a minute and must not hold the daemon startup back.
func warmupCommanderCatalog(b *back.Back) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	if err := b.LoadCommanderCatalog(ctx, scryfall.New()); err != nil {
		log.Printf("error: unable to load commander catalog: %s", err)
	}
}
