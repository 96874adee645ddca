package back

import (
	"dominaria/internal/util"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// ApplyGameResult runs the rating engine over an already recorded game and
// persists the outcome: every involved player's rating is replaced and every
// participation row receives its delta, all of it or none of it.
//
// It must be invoked exactly once per game, calling it twice would apply the
// transfer twice. The game submission flow does this in the transaction that
// created the game; this entry point exists for re-rating tooling.
func (b *Back) ApplyGameResult(
	gameID, winnerID util.UUIDAsBlob,
	loserIDs []util.UUIDAsBlob,
	kFactor float64,
) (deltas map[util.UUIDAsBlob]float64, _ error) {
	if err := b.transaction(func(tx *sqlx.Tx) (err error) {
		deltas, err = applyGameResult(tx, gameID, winnerID, loserIDs, kFactor)
		return err
	}); err != nil {
		return nil, err
	}

	return deltas, nil
}

// applyGameResult validates its input against the store before any write: an
// unknown game, an unknown player, a player that did not take part in the
// game, or a degenerate loser list all abort with no effect.
func applyGameResult(
	tx *sqlx.Tx,
	gameID, winnerID util.UUIDAsBlob,
	loserIDs []util.UUIDAsBlob,
	kFactor float64,
) (map[util.UUIDAsBlob]float64, error) {
	if len(loserIDs) == 0 {
		return nil, util.ErrPublic("a game needs at least one loser")
	}

	seen := make(map[util.UUIDAsBlob]struct{}, len(loserIDs)+1)
	seen[winnerID] = struct{}{}
	for _, id := range loserIDs {
		if _, ok := seen[id]; ok {
			return nil, util.ErrPublic("the same player can't lose a game twice, nor can the winner lose it")
		}
		seen[id] = struct{}{}
	}

	game, err := getGameByID(tx, gameID)
	if err != nil {
		return nil, fmt.Errorf("unable to fetch game: %w", err)
	}

	participants := make(map[util.UUIDAsBlob]struct{}, len(game.Participants))
	for _, v := range game.Participants {
		participants[v.PlayerID] = struct{}{}
	}
	for id := range seen {
		if _, ok := participants[id]; !ok {
			return nil, util.ErrPublic(fmt.Sprintf("player %s is not a participant of this game", id))
		}
	}

	winner, err := getPlayerByID(tx, winnerID)
	if err != nil {
		return nil, fmt.Errorf("unable to fetch winner: %w", err)
	}

	losers, err := getPlayersByIDs(tx, loserIDs)
	if err != nil {
		return nil, fmt.Errorf("unable to fetch losers: %w", err)
	}

	loserRatings := make([]float64, len(loserIDs))
	for i, id := range loserIDs {
		loser, ok := losers[id]
		if !ok {
			return nil, util.ErrPublic(fmt.Sprintf("there is no player with ID %s", id))
		}
		loserRatings[i] = loser.Rating
	}

	result := CalculateRating(winner.Rating, loserRatings, kFactor)

	deltas := make(map[util.UUIDAsBlob]float64, len(loserIDs)+1)

	if err := setPlayerRating(tx, winnerID, result.WinnerNewRating.InexactFloat64()); err != nil {
		return nil, fmt.Errorf("unable to update winner rating: %w", err)
	}
	delta := result.WinnerDelta.InexactFloat64()
	if err := setGamePlayerRatingDelta(tx, gameID, winnerID, delta); err != nil {
		return nil, fmt.Errorf("unable to update winner delta: %w", err)
	}
	deltas[winnerID] = delta

	for i, id := range loserIDs {
		if err := setPlayerRating(tx, id, result.LoserNewRatings[i].InexactFloat64()); err != nil {
			return nil, fmt.Errorf("unable to update loser rating: %w", err)
		}

		delta := result.LoserDeltas[i].InexactFloat64()
		if err := setGamePlayerRatingDelta(tx, gameID, id, delta); err != nil {
			return nil, fmt.Errorf("unable to update loser delta: %w", err)
		}
		deltas[id] = delta
	}

	return deltas, nil
}
