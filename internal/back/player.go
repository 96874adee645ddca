package back

import (
	"dominaria/internal/util"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"gopkg.in/guregu/null.v4"
)

// A Player is a competitor with a single rating that moves after every
// recorded Game. The rating is owned by the rating engine, nothing else is
// allowed to write it.
type Player struct {
	ID        util.UUIDAsBlob
	CreatedAt util.TimeAsTimestamp
	Name      string
	Rating    float64
	DiscordID null.String
}

func NewPlayer(name string) Player {
	return Player{
		ID:        util.NewUUIDAsBlob(),
		CreatedAt: util.TimeAsTimestamp(time.Now()),
		Name:      name,
		Rating:    PlayerStartingRating,
	}
}

func (p *Player) insert(tx *sqlx.Tx) error {
	query, args, err := squirrel.Insert("Player").SetMap(squirrel.Eq{
		"ID":        p.ID,
		"CreatedAt": p.CreatedAt,
		"Name":      p.Name,
		"Rating":    p.Rating,
		"DiscordID": p.DiscordID,
	}).ToSql()
	if err != nil {
		return err
	}

	if _, err := tx.Exec(query, args...); err != nil {
		return err
	}

	return nil
}

// update writes everything but the rating, which belongs to the rating
// engine (cf. applyGameResult).
func (p *Player) update(tx *sqlx.Tx) error {
	query, args, err := squirrel.Update("Player").SetMap(squirrel.Eq{
		"Name":      p.Name,
		"DiscordID": p.DiscordID,
	}).Where("Player.ID = ?", p.ID).ToSql()
	if err != nil {
		return err
	}

	if _, err := tx.Exec(query, args...); err != nil {
		return err
	}

	return nil
}

func getPlayerByName(tx *sqlx.Tx, name string) (Player, error) {
	var ret Player
	query := `SELECT * FROM Player WHERE Player.Name = ? LIMIT 1`
	if err := tx.Get(&ret, query, name); err != nil {
		return Player{}, err
	}

	return ret, nil
}

func getPlayerByID(tx *sqlx.Tx, id util.UUIDAsBlob) (Player, error) {
	var ret Player
	query := `SELECT * FROM Player WHERE Player.ID = ? LIMIT 1`
	if err := tx.Get(&ret, query, id); err != nil {
		return Player{}, err
	}

	return ret, nil
}

func getPlayerByDiscordID(tx *sqlx.Tx, discordID string) (Player, error) {
	var ret Player
	query := `SELECT * FROM Player WHERE Player.DiscordID = ? LIMIT 1`
	if err := tx.Get(&ret, query, discordID); err != nil {
		return Player{}, err
	}

	return ret, nil
}

func validatePlayerName(tx *sqlx.Tx, name string) error {
	if len(name) < 1 || len(name) > 100 {
		return util.ErrPublic("a player name must be between 1 and 100 characters")
	}

	if _, err := getPlayerByName(tx, name); err == nil {
		return util.ErrPublic(fmt.Sprintf("the name `%s` is taken already", name))
	}

	return nil
}

// RegisterPlayer creates a Player with the default starting rating.
func (b *Back) RegisterPlayer(name string) (player Player, _ error) {
	if err := b.transaction(func(tx *sqlx.Tx) error {
		if err := validatePlayerName(tx, name); err != nil {
			return err
		}

		player = NewPlayer(name)
		return player.insert(tx)
	}); err != nil {
		return Player{}, err
	}

	return player, nil
}

// RegisterDiscordPlayer is RegisterPlayer for self-registration through the
// Discord bot.
func (b *Back) RegisterDiscordPlayer(discordID, name string) (player Player, _ error) {
	if err := b.transaction(func(tx *sqlx.Tx) error {
		if _, err := getPlayerByDiscordID(tx, discordID); err == nil {
			return util.ErrPublic("you are already registered")
		}

		if err := validatePlayerName(tx, name); err != nil {
			return err
		}

		player = NewPlayer(name)
		player.DiscordID = null.StringFrom(discordID)
		return player.insert(tx)
	}); err != nil {
		return Player{}, err
	}

	return player, nil
}

func (b *Back) UpdateDiscordPlayerName(discordID string, name string) error {
	return b.transaction(func(tx *sqlx.Tx) error {
		player, err := getPlayerByDiscordID(tx, discordID)
		if err != nil {
			return err
		}

		if player.Name == name {
			return util.ErrPublic("that's your name already")
		}

		if len(name) < 3 || len(name) > 32 {
			return util.ErrPublic("your name must be between 3 and 32 characters")
		}

		if _, err := getPlayerByName(tx, name); err == nil {
			return util.ErrPublic("this name is taken already")
		}

		player.Name = name
		return player.update(tx)
	})
}

// DeletePlayer removes a player and, by cascade, every one of its
// participation rows. Other ratings are left untouched, there is no
// historical re-rating.
func (b *Back) DeletePlayer(id util.UUIDAsBlob) error {
	return b.transaction(func(tx *sqlx.Tx) error {
		if _, err := getPlayerByID(tx, id); err != nil {
			return err
		}

		if _, err := tx.Exec(`DELETE FROM Player WHERE Player.ID = ?`, id); err != nil {
			return err
		}

		return nil
	})
}

func (b *Back) GetPlayerByID(id util.UUIDAsBlob) (player Player, _ error) {
	return player, b.transaction(func(tx *sqlx.Tx) (err error) {
		player, err = getPlayerByID(tx, id)
		return err
	})
}

func (b *Back) GetPlayerByName(name string) (player Player, _ error) {
	return player, b.transaction(func(tx *sqlx.Tx) (err error) {
		player, err = getPlayerByName(tx, name)
		return err
	})
}

// GetPlayers returns every registered player, best rating first.
func (b *Back) GetPlayers() ([]Player, error) {
	var ret []Player
	if err := b.db.Select(&ret, `SELECT * FROM Player ORDER BY Player.Rating DESC, Player.Name ASC`); err != nil {
		return nil, err
	}

	return ret, nil
}

func getPlayersByIDs(tx *sqlx.Tx, ids []util.UUIDAsBlob) (map[util.UUIDAsBlob]Player, error) {
	if len(ids) == 0 {
		return map[util.UUIDAsBlob]Player{}, nil
	}

	query, args, err := sqlx.In(`SELECT * FROM Player WHERE ID IN(?)`, ids)
	if err != nil {
		return nil, err
	}
	query = tx.Rebind(query)

	players := make([]Player, 0, len(ids))
	if err := tx.Select(&players, query, args...); err != nil {
		return nil, err
	}

	ret := make(map[util.UUIDAsBlob]Player, len(players))
	for k := range players {
		ret[players[k].ID] = players[k]
	}

	return ret, nil
}
