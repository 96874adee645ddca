package back

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
)

// schemaVersion tags exports so an importer can tell what it is looking at.
const schemaVersion = 1

type export struct {
	SchemaVersion int
	CreatedAt     time.Time

	Players     []Player
	Commanders  []Commander
	Games       []Game
	GamePlayers []GamePlayer
}

// ExportJSON writes every table to w as a single JSON document.
func (b *Back) ExportJSON(w io.Writer) error {
	dump := export{
		SchemaVersion: schemaVersion,
		CreatedAt:     time.Now(),
	}

	if err := b.transaction(func(tx *sqlx.Tx) error {
		if err := tx.Select(&dump.Players, `SELECT * FROM Player ORDER BY CreatedAt ASC`); err != nil {
			return err
		}
		if err := tx.Select(&dump.Commanders, `SELECT * FROM Commander ORDER BY Name ASC`); err != nil {
			return err
		}
		if err := tx.Select(&dump.Games, `SELECT * FROM Game ORDER BY CreatedAt ASC`); err != nil {
			return err
		}

		return tx.Select(&dump.GamePlayers, `SELECT * FROM GamePlayer`)
	}); err != nil {
		return err
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")

	return encoder.Encode(dump)
}

// ExportCSV writes the flattened game history to w, one line per
// participant.
func (b *Back) ExportCSV(w io.Writer) error {
	csvW := csv.NewWriter(w)

	if err := csvW.Write([]string{
		"date", "player", "commander", "won", "rating_delta",
	}); err != nil {
		return err
	}

	if err := b.transaction(func(tx *sqlx.Tx) error {
		var rows []struct {
			PlayedAt      string
			PlayerName    string
			CommanderName string
			Won           bool
			RatingDelta   float64
		}

		if err := tx.Select(&rows, `
            SELECT
                Game.PlayedAt AS PlayedAt,
                Player.Name AS PlayerName,
                Commander.Name AS CommanderName,
                (Game.WinnerID = GamePlayer.PlayerID) AS Won,
                GamePlayer.RatingDelta AS RatingDelta
            FROM GamePlayer
            INNER JOIN Game ON (Game.ID = GamePlayer.GameID)
            INNER JOIN Player ON (Player.ID = GamePlayer.PlayerID)
            INNER JOIN Commander ON (Commander.ID = GamePlayer.CommanderID)
            ORDER BY Game.PlayedAt DESC, Player.Name ASC`,
		); err != nil {
			return err
		}

		for _, v := range rows {
			if err := csvW.Write([]string{
				v.PlayedAt,
				v.PlayerName,
				v.CommanderName,
				strconv.FormatBool(v.Won),
				strconv.FormatFloat(v.RatingDelta, 'f', 2, 64),
			}); err != nil {
				return err
			}
		}

		return nil
	}); err != nil {
		return err
	}

	csvW.Flush()

	return csvW.Error()
}

// BackupDatabase writes a timestamped copy of the live database next to it
// and returns its path. VACUUM INTO produces a consistent snapshot without
// locking writers out.
func (b *Back) BackupDatabase() (string, error) {
	base := strings.TrimSuffix(b.dbPath, filepath.Ext(b.dbPath))
	path := fmt.Sprintf("%s_backup_%s.db", base, time.Now().Format("20060102_150405"))

	if _, err := b.db.Exec(`VACUUM INTO ?`, path); err != nil {
		return "", fmt.Errorf("unable to vacuum into %s: %w", path, err)
	}

	return path, nil
}
