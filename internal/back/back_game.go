package back

import (
	"dominaria/internal/util"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// GameSubmission is everything a frontend collects to record one game.
type GameSubmission struct {
	PlayedAt time.Time

	// Commanders maps every participating player name to the commander name
	// it was piloting; Winner must be one of its keys.
	Commanders map[string]string
	Winner     string
}

func (s *GameSubmission) validate() error {
	var errs []error

	if len(s.Commanders) < 2 {
		errs = append(errs, util.ErrPublic("at least 2 players are required"))
	}

	if _, ok := s.Commanders[s.Winner]; !ok {
		errs = append(errs, util.ErrPublic("the winner must be one of the players"))
	}

	for player, commander := range s.Commanders {
		if commander == "" {
			errs = append(errs, util.ErrPublic(fmt.Sprintf("no commander given for player `%s`", player)))
		}
	}

	if s.PlayedAt.After(time.Now().AddDate(0, 0, 1)) {
		errs = append(errs, util.ErrPublic("a game can't be played in the future"))
	}

	return util.ConcatPublicErrors(errs)
}

// SubmitGame records a game and applies its rating transfer in a single
// transaction: either the game exists with its deltas and every rating
// moved, or nothing happened at all.
//
// It returns the recorded Game and the applied delta per player name.
func (b *Back) SubmitGame(submission GameSubmission) (game Game, deltas map[string]float64, _ error) {
	if err := submission.validate(); err != nil {
		return Game{}, nil, err
	}

	var summary GameSummary

	if err := b.transaction(func(tx *sqlx.Tx) error {
		players := make(map[string]Player, len(submission.Commanders))
		commanders := make(map[string]Commander, len(submission.Commanders))
		for playerName, commanderName := range submission.Commanders {
			player, err := getPlayerByName(tx, playerName)
			if err != nil {
				return util.ErrPublic(fmt.Sprintf("there is no player named `%s`", playerName))
			}
			players[playerName] = player

			commander, err := getCommanderByName(tx, commanderName)
			if err != nil {
				return util.ErrPublic(fmt.Sprintf("there is no commander named `%s`", commanderName))
			}
			commanders[playerName] = commander
		}

		winner := players[submission.Winner]
		game = NewGame(submission.PlayedAt, winner.ID, commanders[submission.Winner].ID)
		if err := game.insert(tx); err != nil {
			return fmt.Errorf("unable to insert game: %w", err)
		}

		loserIDs := make([]util.UUIDAsBlob, 0, len(players)-1)
		for playerName, player := range players {
			participant := NewGamePlayer(game.ID, player.ID, commanders[playerName].ID)
			if err := participant.insert(tx); err != nil {
				return fmt.Errorf("unable to insert game participant: %w", err)
			}

			if player.ID != winner.ID {
				loserIDs = append(loserIDs, player.ID)
			}
		}

		applied, err := applyGameResult(tx, game.ID, winner.ID, loserIDs, DefaultKFactor)
		if err != nil {
			return err
		}

		deltas = make(map[string]float64, len(applied))
		for playerName, player := range players {
			deltas[playerName] = applied[player.ID]
		}

		if err := injectParticipants(tx, &game); err != nil {
			return err
		}

		summary, err = getGameSummary(tx, game)
		return err
	}); err != nil {
		return Game{}, nil, err
	}

	b.sendGameRecordedNotification(game, summary)

	return game, deltas, nil
}
