package back

import (
	"dominaria/internal/util"
	"sort"

	"github.com/jmoiron/sqlx"
)

// HistoryPageSize is the number of games per page of history.
const HistoryPageSize = 20

// GameParticipantSummary is one participant of a game, denormalized for
// display.
type GameParticipantSummary struct {
	PlayerID      util.UUIDAsBlob
	PlayerName    string
	CommanderName string
	RatingDelta   float64
}

// GameSummary is one game of the history, denormalized for display.
type GameSummary struct {
	ID       util.UUIDAsBlob
	PlayedAt util.TimeAsDateTimeTZ

	Winner GameParticipantSummary
	Losers []GameParticipantSummary
}

// GameHistory is one page of recorded games, newest first.
type GameHistory struct {
	Games    []GameSummary
	Page     int
	PageSize int
	Total    int
}

// PageCount returns the number of available pages, a history with no games
// still has one (empty) page.
func (h GameHistory) PageCount() int {
	if h.Total == 0 {
		return 1
	}

	return 1 + (h.Total-1)/h.PageSize
}

// GetGameHistory returns the given 1-indexed page of game history.
func (b *Back) GetGameHistory(page int) (history GameHistory, _ error) {
	if page < 1 {
		page = 1
	}

	history.Page = page
	history.PageSize = HistoryPageSize

	if err := b.transaction(func(tx *sqlx.Tx) (err error) {
		history.Total, err = countGames(tx)
		if err != nil {
			return err
		}

		games, err := getGamesPage(tx, HistoryPageSize, uint64(page-1)*HistoryPageSize)
		if err != nil {
			return err
		}

		history.Games = make([]GameSummary, 0, len(games))
		for k := range games {
			summary, err := getGameSummary(tx, games[k])
			if err != nil {
				return err
			}
			history.Games = append(history.Games, summary)
		}

		return nil
	}); err != nil {
		return GameHistory{}, err
	}

	return history, nil
}

// getGameSummary denormalizes one game, Participants included, into names
// and deltas. Losers are sorted by name to get a stable display order.
func getGameSummary(tx *sqlx.Tx, game Game) (GameSummary, error) {
	summary := GameSummary{
		ID:       game.ID,
		PlayedAt: game.PlayedAt,
	}

	ids := make([]util.UUIDAsBlob, 0, len(game.Participants))
	for _, v := range game.Participants {
		ids = append(ids, v.PlayerID)
	}
	players, err := getPlayersByIDs(tx, ids)
	if err != nil {
		return GameSummary{}, err
	}

	commanders, err := getCommandersByGameID(tx, game.ID)
	if err != nil {
		return GameSummary{}, err
	}

	for _, v := range game.Participants {
		participant := GameParticipantSummary{
			PlayerID:      v.PlayerID,
			PlayerName:    players[v.PlayerID].Name,
			CommanderName: commanders[v.CommanderID].Name,
			RatingDelta:   v.RatingDelta,
		}

		if v.PlayerID == game.WinnerID {
			summary.Winner = participant
		} else {
			summary.Losers = append(summary.Losers, participant)
		}
	}

	sort.Slice(summary.Losers, func(i, j int) bool {
		return summary.Losers[i].PlayerName < summary.Losers[j].PlayerName
	})

	return summary, nil
}

func getCommandersByGameID(tx *sqlx.Tx, gameID util.UUIDAsBlob) (map[util.UUIDAsBlob]Commander, error) {
	var commanders []Commander
	err := tx.Select(
		&commanders,
		`SELECT Commander.* FROM Commander
        INNER JOIN GamePlayer ON (GamePlayer.CommanderID = Commander.ID)
        WHERE GamePlayer.GameID = ?`,
		gameID,
	)
	if err != nil {
		return nil, err
	}

	ret := make(map[util.UUIDAsBlob]Commander, len(commanders))
	for k := range commanders {
		ret[commanders[k].ID] = commanders[k]
	}

	return ret, nil
}
