package back

import (
	"dominaria/internal/util"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
)

// A GamePlayer is a player's participation in one Game: the commander it was
// piloting and the rating delta the game earned it. Rows are created with a
// zero delta and written exactly once by the rating engine.
type GamePlayer struct {
	GameID      util.UUIDAsBlob
	PlayerID    util.UUIDAsBlob
	CommanderID util.UUIDAsBlob
	RatingDelta float64
}

func NewGamePlayer(gameID, playerID, commanderID util.UUIDAsBlob) GamePlayer {
	return GamePlayer{
		GameID:      gameID,
		PlayerID:    playerID,
		CommanderID: commanderID,
	}
}

func (g *GamePlayer) insert(tx *sqlx.Tx) error {
	query, args, err := squirrel.Insert("GamePlayer").SetMap(squirrel.Eq{
		"GameID":      g.GameID,
		"PlayerID":    g.PlayerID,
		"CommanderID": g.CommanderID,
		"RatingDelta": g.RatingDelta,
	}).ToSql()
	if err != nil {
		return err
	}

	if _, err := tx.Exec(query, args...); err != nil {
		return err
	}

	return nil
}

func getGamePlayersByGameID(tx *sqlx.Tx, gameID util.UUIDAsBlob) ([]GamePlayer, error) {
	var ret []GamePlayer
	query := `SELECT * FROM GamePlayer WHERE GamePlayer.GameID = ?`
	if err := tx.Select(&ret, query, gameID); err != nil {
		return nil, err
	}

	return ret, nil
}

func setGamePlayerRatingDelta(tx *sqlx.Tx, gameID, playerID util.UUIDAsBlob, delta float64) error {
	query, args, err := squirrel.Update("GamePlayer").
		Set("RatingDelta", delta).
		Where(squirrel.Eq{
			"GamePlayer.GameID":   gameID,
			"GamePlayer.PlayerID": playerID,
		}).ToSql()
	if err != nil {
		return err
	}

	if _, err := tx.Exec(query, args...); err != nil {
		return err
	}

	return nil
}

func setPlayerRating(tx *sqlx.Tx, playerID util.UUIDAsBlob, rating float64) error {
	query, args, err := squirrel.Update("Player").
		Set("Rating", rating).
		Where("Player.ID = ?", playerID).
		ToSql()
	if err != nil {
		return err
	}

	if _, err := tx.Exec(query, args...); err != nil {
		return err
	}

	return nil
}
