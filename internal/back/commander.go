package back

import (
	"context"
	"dominaria/internal/util"
	"dominaria/pkg/scryfall"
	"log"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
)

// A Commander is an entry of the locally cached card catalog. The catalog is
// filled once from the Scryfall API and only ever read afterwards.
type Commander struct {
	ID         util.UUIDAsBlob
	CreatedAt  util.TimeAsTimestamp
	Name       string
	ScryfallID string

	// NormalizedName is the lowercased, diacritic-free version of Name that
	// search runs against ("Séance" can be found by typing "seance").
	NormalizedName string

	LastSearchedAt util.NullTimeAsTimestamp
}

func NewCommander(name string, scryfallID string) Commander {
	return Commander{
		ID:             util.NewUUIDAsBlob(),
		CreatedAt:      util.TimeAsTimestamp(time.Now()),
		Name:           name,
		NormalizedName: util.FoldName(name),
		ScryfallID:     scryfallID,
	}
}

func (c *Commander) insert(tx *sqlx.Tx) error {
	// The catalog import runs against a live API and can be re-run, silently
	// keep the first version of a card we ever saw.
	query, args, err := squirrel.Insert("Commander").Options("OR IGNORE").SetMap(squirrel.Eq{
		"ID":             c.ID,
		"CreatedAt":      c.CreatedAt,
		"Name":           c.Name,
		"NormalizedName": c.NormalizedName,
		"ScryfallID":     c.ScryfallID,
		"LastSearchedAt": c.LastSearchedAt,
	}).ToSql()
	if err != nil {
		return err
	}

	if _, err := tx.Exec(query, args...); err != nil {
		return err
	}

	return nil
}

func getCommanderByName(tx *sqlx.Tx, name string) (Commander, error) {
	var ret Commander
	query := `SELECT * FROM Commander WHERE Commander.Name = ? LIMIT 1`
	if err := tx.Get(&ret, query, name); err != nil {
		return Commander{}, err
	}

	return ret, nil
}

func countCommanders(tx *sqlx.Tx) (count int, _ error) {
	return count, tx.Get(&count, `SELECT COUNT(*) FROM Commander`)
}

func searchCommanders(tx *sqlx.Tx, query string, limit uint64) ([]Commander, error) {
	var ret []Commander
	err := tx.Select(
		&ret,
		`SELECT * FROM Commander WHERE Commander.NormalizedName LIKE ?
        ORDER BY Commander.Name ASC LIMIT ?`,
		"%"+util.FoldName(query)+"%", limit,
	)
	if err != nil {
		return nil, err
	}

	return ret, nil
}

func touchCommanders(tx *sqlx.Tx, commanders []Commander, now time.Time) error {
	for k := range commanders {
		query, args, err := squirrel.Update("Commander").
			Set("LastSearchedAt", util.NewNullTimeAsTimestamp(now)).
			Where("Commander.ID = ?", commanders[k].ID).
			ToSql()
		if err != nil {
			return err
		}

		if _, err := tx.Exec(query, args...); err != nil {
			return err
		}
	}

	return nil
}

// SearchCommanders returns at most 20 catalog entries matching the given
// query, accents and case ignored.
func (b *Back) SearchCommanders(query string) (commanders []Commander, _ error) {
	if err := b.transaction(func(tx *sqlx.Tx) (err error) {
		commanders, err = searchCommanders(tx, query, 20)
		if err != nil {
			return err
		}

		return touchCommanders(tx, commanders, time.Now())
	}); err != nil {
		return nil, err
	}

	return commanders, nil
}

// GetPlayerRecentCommanders returns the last 3 distinct commanders a player
// brought to a game, most recent first.
func (b *Back) GetPlayerRecentCommanders(playerID util.UUIDAsBlob) (commanders []Commander, _ error) {
	return commanders, b.transaction(func(tx *sqlx.Tx) error {
		return tx.Select(
			&commanders,
			`SELECT Commander.* FROM Commander
            INNER JOIN GamePlayer ON (GamePlayer.CommanderID = Commander.ID)
            INNER JOIN Game ON (Game.ID = GamePlayer.GameID)
            WHERE GamePlayer.PlayerID = ?
            GROUP BY Commander.ID
            ORDER BY MAX(Game.CreatedAt) DESC
            LIMIT 3`,
			playerID,
		)
	})
}

// LoadCommanderCatalog fills the local commander catalog from the Scryfall
// API. It is a no-op if the catalog has already been loaded.
func (b *Back) LoadCommanderCatalog(ctx context.Context, api *scryfall.API) error {
	var count int
	if err := b.transaction(func(tx *sqlx.Tx) (err error) {
		count, err = countCommanders(tx)
		return err
	}); err != nil {
		return err
	}
	if count > 0 {
		log.Printf("debug: commander catalog already loaded (%d entries)", count)
		return nil
	}

	start := time.Now()
	cards, err := api.SearchCommanders(ctx)
	if err != nil {
		return err
	}

	if err := b.transaction(func(tx *sqlx.Tx) error {
		for _, card := range cards {
			commander := NewCommander(card.Name, card.ID)
			if err := commander.insert(tx); err != nil {
				return err
			}
		}

		return nil
	}); err != nil {
		return err
	}

	log.Printf("info: loaded %d commanders in %s", len(cards), time.Since(start))

	return nil
}
