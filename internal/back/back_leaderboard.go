package back

import (
	"dominaria/internal/util"
	"log"
	"time"

	"github.com/jmoiron/sqlx"
)

// LeaderboardEntry is one line of the player leaderboard.
type LeaderboardEntry struct {
	Rank        int
	PlayerID    util.UUIDAsBlob
	PlayerName  string
	Rating      float64
	GamesPlayed int
	Wins        int
}

// CommanderStatsEntry is one line of the player+commander leaderboard,
// ranked by how much rating a player earns on average when piloting a given
// commander.
type CommanderStatsEntry struct {
	Rank           int
	PlayerName     string
	CommanderName  string
	AvgRatingDelta float64
	GamesPlayed    int
}

// commanderStatsMinGames is the number of games a player has to play with a
// commander before the pair shows up on the commander leaderboard, an
// average over fewer games is noise.
const commanderStatsMinGames = 3

// GetLeaderboard returns every player ranked by rating.
func (b *Back) GetLeaderboard() (leaderboard []LeaderboardEntry, _ error) {
	start := time.Now()
	defer func() { log.Printf("debug: computed leaderboard in %s", time.Since(start)) }()

	if err := b.transaction(func(tx *sqlx.Tx) error {
		return tx.Select(&leaderboard, `
            SELECT
                Player.ID AS PlayerID,
                Player.Name AS PlayerName,
                Player.Rating AS Rating,
                COUNT(GamePlayer.GameID) AS GamesPlayed,
                COALESCE(SUM(CASE WHEN Game.WinnerID = Player.ID THEN 1 ELSE 0 END), 0) AS Wins
            FROM Player
            LEFT JOIN GamePlayer ON (GamePlayer.PlayerID = Player.ID)
            LEFT JOIN Game ON (Game.ID = GamePlayer.GameID)
            GROUP BY Player.ID
            ORDER BY Player.Rating DESC, Player.Name ASC`,
		)
	}); err != nil {
		return nil, err
	}

	for k := range leaderboard {
		leaderboard[k].Rank = k + 1
	}

	return leaderboard, nil
}

// GetCommanderStats returns player+commander pairs ranked by average rating
// delta per game, pairs with less than 3 games are skipped.
func (b *Back) GetCommanderStats() (stats []CommanderStatsEntry, _ error) {
	if err := b.transaction(func(tx *sqlx.Tx) error {
		return tx.Select(&stats, `
            SELECT
                Player.Name AS PlayerName,
                Commander.Name AS CommanderName,
                AVG(GamePlayer.RatingDelta) AS AvgRatingDelta,
                COUNT(*) AS GamesPlayed
            FROM GamePlayer
            INNER JOIN Player ON (Player.ID = GamePlayer.PlayerID)
            INNER JOIN Commander ON (Commander.ID = GamePlayer.CommanderID)
            GROUP BY Player.ID, Commander.ID
            HAVING COUNT(*) >= ?
            ORDER BY AvgRatingDelta DESC, PlayerName ASC`,
			commanderStatsMinGames,
		)
	}); err != nil {
		return nil, err
	}

	for k := range stats {
		stats[k].Rank = k + 1
	}

	return stats, nil
}
