package back

import (
	"dominaria/internal/util"
	"io/ioutil"
	"math"
	"os"
	"testing"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/sqlite3"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

// createFixturedTestBack returns a Back over a freshly migrated database
// with the development fixtures loaded: four players where Urza already won
// one game against Mishra and Ashnod (Gix sat that one out).
func createFixturedTestBack(t *testing.T) *Back {
	f, err := ioutil.TempFile("", "*.db")
	if err != nil {
		t.Fatal(err)
	}
	path := f.Name()
	f.Close()
	t.Cleanup(func() {
		os.Remove(path)
	})

	migrator, err := migrate.New(
		"file://../../resources/migrations",
		"sqlite3://"+path,
	)
	if err != nil {
		t.Fatal(err)
	}
	if err := migrator.Up(); err != nil {
		t.Fatal(err)
	}
	migrator.Close()

	back, err := New("sqlite3", path)
	if err != nil {
		t.Fatal(err)
	}

	if err := back.LoadFixtures(); err != nil {
		t.Fatal(err)
	}

	return back
}

func (b *Back) assertPlayerRating(t *testing.T, name string, expected float64) {
	t.Helper()

	player, err := b.GetPlayerByName(name)
	if err != nil {
		t.Fatal(err)
	}

	if player.Rating != expected {
		t.Errorf("expected %s to have rating %.2f, got %.2f", name, expected, player.Rating)
	}
}

func TestLoadFixturesAppliesRatings(t *testing.T) {
	back := createFixturedTestBack(t)

	back.assertPlayerRating(t, "Urza", 1016.00)
	back.assertPlayerRating(t, "Mishra", 992.00)
	back.assertPlayerRating(t, "Ashnod", 992.00)
	back.assertPlayerRating(t, "Gix", 1000.00)
}

func TestSubmitGameTransfersRating(t *testing.T) {
	back := createFixturedTestBack(t)

	// Gix (1000.00) takes down Urza (1016.00) and Mishra (992.00).
	game, deltas, err := back.SubmitGame(GameSubmission{
		PlayedAt: time.Now(),
		Winner:   "Gix",
		Commanders: map[string]string{
			"Gix":    "The Ur-Dragon",
			"Urza":   "Atraxa, Praetors' Voice",
			"Mishra": "Edgar Markov",
		},
	})
	if err != nil {
		t.Fatal(err)
	}

	if len(game.Participants) != 3 {
		t.Errorf("expected 3 participants, got %d", len(game.Participants))
	}

	expected := map[string]float64{
		"Gix":    16.18,
		"Urza":   -8.37,
		"Mishra": -7.82,
	}
	for name, delta := range expected {
		if deltas[name] != delta {
			t.Errorf("expected a %+.2f delta for %s, got %+.2f", delta, name, deltas[name])
		}
	}

	back.assertPlayerRating(t, "Gix", 1016.18)
	back.assertPlayerRating(t, "Urza", 1007.63)
	back.assertPlayerRating(t, "Mishra", 984.18)
	back.assertPlayerRating(t, "Ashnod", 992.00)
}

func TestSubmitGameValidation(t *testing.T) {
	back := createFixturedTestBack(t)

	cases := []struct {
		name       string
		submission GameSubmission
	}{
		{
			"single player",
			GameSubmission{
				PlayedAt:   time.Now(),
				Winner:     "Urza",
				Commanders: map[string]string{"Urza": "Atraxa, Praetors' Voice"},
			},
		},
		{
			"winner not among players",
			GameSubmission{
				PlayedAt: time.Now(),
				Winner:   "Gix",
				Commanders: map[string]string{
					"Urza":   "Atraxa, Praetors' Voice",
					"Mishra": "Edgar Markov",
				},
			},
		},
		{
			"missing commander",
			GameSubmission{
				PlayedAt: time.Now(),
				Winner:   "Urza",
				Commanders: map[string]string{
					"Urza":   "Atraxa, Praetors' Voice",
					"Mishra": "",
				},
			},
		},
		{
			"future game",
			GameSubmission{
				PlayedAt: time.Now().AddDate(0, 0, 2),
				Winner:   "Urza",
				Commanders: map[string]string{
					"Urza":   "Atraxa, Praetors' Voice",
					"Mishra": "Edgar Markov",
				},
			},
		},
		{
			"unknown player",
			GameSubmission{
				PlayedAt: time.Now(),
				Winner:   "Urza",
				Commanders: map[string]string{
					"Urza":     "Atraxa, Praetors' Voice",
					"Yawgmoth": "Edgar Markov",
				},
			},
		},
		{
			"unknown commander",
			GameSubmission{
				PlayedAt: time.Now(),
				Winner:   "Urza",
				Commanders: map[string]string{
					"Urza":   "Atraxa, Praetors' Voice",
					"Mishra": "Phage the Untouchable",
				},
			},
		},
	}

	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			if _, _, err := back.SubmitGame(c.submission); err == nil {
				t.Error("expected an error, got none")
			}
		})
	}

	// A failed submission must leave no trace at all.
	history, err := back.GetGameHistory(1)
	if err != nil {
		t.Fatal(err)
	}
	if history.Total != 1 {
		t.Errorf("expected 1 recorded game, got %d", history.Total)
	}

	back.assertPlayerRating(t, "Urza", 1016.00)
	back.assertPlayerRating(t, "Mishra", 992.00)
}

func TestRatingDeltasSumToZeroInStore(t *testing.T) {
	back := createFixturedTestBack(t)

	if _, _, err := back.SubmitGame(GameSubmission{
		PlayedAt: time.Now(),
		Winner:   "Gix",
		Commanders: map[string]string{
			"Gix":    "The Ur-Dragon",
			"Urza":   "Atraxa, Praetors' Voice",
			"Mishra": "Edgar Markov",
			"Ashnod": "Sélenia, Dark Angel",
		},
	}); err != nil {
		t.Fatal(err)
	}

	if err := back.transaction(func(tx *sqlx.Tx) error {
		var sums []float64
		if err := tx.Select(&sums, `
            SELECT SUM(GamePlayer.RatingDelta) FROM GamePlayer GROUP BY GamePlayer.GameID
        `); err != nil {
			return err
		}

		if len(sums) != 2 {
			t.Fatalf("expected 2 games, got %d", len(sums))
		}

		for k, sum := range sums {
			// Per-game rounding can leave the sum one cent off zero.
			if math.Abs(sum) > 0.01+1e-9 {
				t.Errorf("deltas of game %d sum to %f, expected at most one cent", k, sum)
			}
		}

		return nil
	}); err != nil {
		t.Fatal(err)
	}
}

func TestApplyGameResultValidation(t *testing.T) {
	back := createFixturedTestBack(t)

	history, err := back.GetGameHistory(1)
	if err != nil {
		t.Fatal(err)
	}
	game := history.Games[0]

	gix, err := back.GetPlayerByName("Gix")
	if err != nil {
		t.Fatal(err)
	}

	cases := []struct {
		name     string
		winnerID util.UUIDAsBlob
		loserIDs []util.UUIDAsBlob
	}{
		{"no loser", game.Winner.PlayerID, nil},
		{
			"winner loses to itself",
			game.Winner.PlayerID,
			[]util.UUIDAsBlob{game.Winner.PlayerID},
		},
		{
			"duplicate loser",
			game.Winner.PlayerID,
			[]util.UUIDAsBlob{game.Losers[0].PlayerID, game.Losers[0].PlayerID},
		},
		{
			"loser did not participate",
			game.Winner.PlayerID,
			[]util.UUIDAsBlob{gix.ID},
		},
	}

	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			if _, err := back.ApplyGameResult(game.ID, c.winnerID, c.loserIDs, DefaultKFactor); err == nil {
				t.Error("expected an error, got none")
			}
		})
	}

	// None of the failed attempts may have moved a rating.
	back.assertPlayerRating(t, "Urza", 1016.00)
	back.assertPlayerRating(t, "Mishra", 992.00)
	back.assertPlayerRating(t, "Ashnod", 992.00)
	back.assertPlayerRating(t, "Gix", 1000.00)
}

func TestGameHistory(t *testing.T) {
	back := createFixturedTestBack(t)

	history, err := back.GetGameHistory(1)
	if err != nil {
		t.Fatal(err)
	}

	if history.Total != 1 || len(history.Games) != 1 {
		t.Fatalf("expected 1 game, got %d (%d in page)", history.Total, len(history.Games))
	}
	if history.PageCount() != 1 {
		t.Errorf("expected 1 page, got %d", history.PageCount())
	}

	game := history.Games[0]
	if game.Winner.PlayerName != "Urza" {
		t.Errorf("expected Urza to be the winner, got %s", game.Winner.PlayerName)
	}
	if game.Winner.CommanderName != "Atraxa, Praetors' Voice" {
		t.Errorf("unexpected winner commander: %s", game.Winner.CommanderName)
	}
	if game.Winner.RatingDelta != 16.00 {
		t.Errorf("expected a +16.00 winner delta, got %+.2f", game.Winner.RatingDelta)
	}

	if len(game.Losers) != 2 {
		t.Fatalf("expected 2 losers, got %d", len(game.Losers))
	}
	// Losers come back sorted by name.
	if game.Losers[0].PlayerName != "Ashnod" || game.Losers[1].PlayerName != "Mishra" {
		t.Errorf("unexpected loser order: %s, %s", game.Losers[0].PlayerName, game.Losers[1].PlayerName)
	}
	for _, v := range game.Losers {
		if v.RatingDelta != -8.00 {
			t.Errorf("expected a -8.00 delta for %s, got %+.2f", v.PlayerName, v.RatingDelta)
		}
	}

	// Pages past the end are empty, not an error.
	history, err = back.GetGameHistory(2)
	if err != nil {
		t.Fatal(err)
	}
	if len(history.Games) != 0 {
		t.Errorf("expected an empty page, got %d games", len(history.Games))
	}
}

func TestLeaderboard(t *testing.T) {
	back := createFixturedTestBack(t)

	leaderboard, err := back.GetLeaderboard()
	if err != nil {
		t.Fatal(err)
	}

	expected := []LeaderboardEntry{
		{Rank: 1, PlayerName: "Urza", Rating: 1016.00, GamesPlayed: 1, Wins: 1},
		{Rank: 2, PlayerName: "Gix", Rating: 1000.00, GamesPlayed: 0, Wins: 0},
		{Rank: 3, PlayerName: "Ashnod", Rating: 992.00, GamesPlayed: 1, Wins: 0},
		{Rank: 4, PlayerName: "Mishra", Rating: 992.00, GamesPlayed: 1, Wins: 0},
	}

	if len(leaderboard) != len(expected) {
		t.Fatalf("expected %d entries, got %d", len(expected), len(leaderboard))
	}

	for k, v := range expected {
		got := leaderboard[k]
		got.PlayerID = util.UUIDAsBlob{}
		if got != v {
			t.Errorf("entry %d: expected %+v, got %+v", k, v, got)
		}
	}
}

func TestCommanderStats(t *testing.T) {
	back := createFixturedTestBack(t)

	// A player+commander pair needs 3 games to be ranked, give Urza and
	// Mishra two more head-to-heads.
	for i := 0; i < 2; i++ {
		if _, _, err := back.SubmitGame(GameSubmission{
			PlayedAt: time.Now(),
			Winner:   "Urza",
			Commanders: map[string]string{
				"Urza":   "Atraxa, Praetors' Voice",
				"Mishra": "Edgar Markov",
			},
		}); err != nil {
			t.Fatal(err)
		}
	}

	stats, err := back.GetCommanderStats()
	if err != nil {
		t.Fatal(err)
	}

	if len(stats) != 2 {
		t.Fatalf("expected 2 ranked pairs, got %d", len(stats))
	}

	if stats[0].PlayerName != "Urza" || stats[0].CommanderName != "Atraxa, Praetors' Voice" {
		t.Errorf("unexpected first entry: %+v", stats[0])
	}
	if stats[0].Rank != 1 || stats[0].GamesPlayed != 3 {
		t.Errorf("unexpected first entry rank or game count: %+v", stats[0])
	}
	if stats[0].AvgRatingDelta <= 0 {
		t.Errorf("expected a positive average delta for the winner, got %f", stats[0].AvgRatingDelta)
	}

	if stats[1].PlayerName != "Mishra" || stats[1].AvgRatingDelta >= 0 {
		t.Errorf("unexpected second entry: %+v", stats[1])
	}
}

func TestDeletePlayerCascades(t *testing.T) {
	back := createFixturedTestBack(t)

	mishra, err := back.GetPlayerByName("Mishra")
	if err != nil {
		t.Fatal(err)
	}

	if err := back.DeletePlayer(mishra.ID); err != nil {
		t.Fatal(err)
	}

	if _, err := back.GetPlayerByName("Mishra"); err == nil {
		t.Error("expected Mishra to be gone")
	}

	// The game survives a loser's deletion, minus the participant row.
	history, err := back.GetGameHistory(1)
	if err != nil {
		t.Fatal(err)
	}
	if history.Total != 1 {
		t.Fatalf("expected the game to remain, got %d games", history.Total)
	}
	if len(history.Games[0].Losers) != 1 {
		t.Errorf("expected 1 remaining loser, got %d", len(history.Games[0].Losers))
	}

	// Deleting the winner takes the game with it.
	urza, err := back.GetPlayerByName("Urza")
	if err != nil {
		t.Fatal(err)
	}
	if err := back.DeletePlayer(urza.ID); err != nil {
		t.Fatal(err)
	}

	history, err = back.GetGameHistory(1)
	if err != nil {
		t.Fatal(err)
	}
	if history.Total != 0 {
		t.Errorf("expected no game left, got %d", history.Total)
	}
}
