package back

import (
	"dominaria/internal/util"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
)

// A Game is one recorded multiplayer game: a date, a winner, and at least
// two participants (winner included, cf. GamePlayer).
type Game struct {
	ID        util.UUIDAsBlob
	CreatedAt util.TimeAsTimestamp
	PlayedAt  util.TimeAsDateTimeTZ

	WinnerID          util.UUIDAsBlob
	WinnerCommanderID util.UUIDAsBlob

	Participants []GamePlayer `db:"-"`
}

func NewGame(playedAt time.Time, winnerID, winnerCommanderID util.UUIDAsBlob) Game {
	return Game{
		ID:                util.NewUUIDAsBlob(),
		CreatedAt:         util.TimeAsTimestamp(time.Now()),
		PlayedAt:          util.TimeAsDateTimeTZ(playedAt),
		WinnerID:          winnerID,
		WinnerCommanderID: winnerCommanderID,
	}
}

func (g *Game) insert(tx *sqlx.Tx) error {
	query, args, err := squirrel.Insert("Game").SetMap(squirrel.Eq{
		"ID":                g.ID,
		"CreatedAt":         g.CreatedAt,
		"PlayedAt":          g.PlayedAt,
		"WinnerID":          g.WinnerID,
		"WinnerCommanderID": g.WinnerCommanderID,
	}).ToSql()
	if err != nil {
		return err
	}

	if _, err := tx.Exec(query, args...); err != nil {
		return err
	}

	return nil
}

func getGameByID(tx *sqlx.Tx, id util.UUIDAsBlob) (Game, error) {
	var ret Game
	query := `SELECT * FROM Game WHERE Game.ID = ? LIMIT 1`
	if err := tx.Get(&ret, query, id); err != nil {
		return Game{}, err
	}

	if err := injectParticipants(tx, &ret); err != nil {
		return Game{}, err
	}

	return ret, nil
}

func injectParticipants(tx *sqlx.Tx, game *Game) (err error) {
	game.Participants, err = getGamePlayersByGameID(tx, game.ID)
	return err
}

func countGames(tx *sqlx.Tx) (count int, _ error) {
	return count, tx.Get(&count, `SELECT COUNT(*) FROM Game`)
}

func getGamesPage(tx *sqlx.Tx, limit, offset uint64) ([]Game, error) {
	var ret []Game
	err := tx.Select(
		&ret,
		`SELECT * FROM Game ORDER BY Game.PlayedAt DESC, Game.CreatedAt DESC LIMIT ? OFFSET ?`,
		limit, offset,
	)
	if err != nil {
		return nil, err
	}

	for k := range ret {
		if err := injectParticipants(tx, &ret[k]); err != nil {
			return nil, err
		}
	}

	return ret, nil
}
