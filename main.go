package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	_ "github.com/mattn/go-sqlite3"
)

// Version holds the build-time version string.
var Version = "unknown" // nolint:gochecknoglobals

func main() {
	flag.Parse()

	if err := run(flag.Arg(0)); err != nil {
		log.Fatalf("error: %s", err)
	}
}

func run(command string) error {
	switch command {
	case "version":
		fmt.Fprintf(os.Stdout, "Dominaria %s\n", Version)
		return nil
	case "serve":
		return serve()
	case "migrate":
		return performMigrations()
	case "dev:fixtures":
		return loadFixtures()
	case "help":
		fmt.Fprint(os.Stdout, help())
		return nil
	default:
		fmt.Fprint(os.Stderr, help())
		os.Exit(1)
		return nil
	}
}

func help() string {
	return fmt.Sprintf(`
Dominaria keeps track of multiplayer Commander games and maintains an
Elo-based leaderboard of their players.

Usage: %[1]s COMMAND [ARGS…]

COMMANDS
    dev:fixtures create default data for quick testing during development
    help         display this help
    migrate      apply pending database migrations
    serve        run the API, the Discord bot, and the background dæmon
    version      display the current version
`,
		os.Args[0],
	)
}
