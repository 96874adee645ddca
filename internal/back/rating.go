package back

import (
	"github.com/shopspring/decimal"
)

// DefaultKFactor is the K-factor applied when recording a game, it scales
// every delta linearly.
const DefaultKFactor = 32.0

// ratingScale is the number of fractional digits of every rating and delta
// that leaves the calculator. Values are rounded half-even at this scale,
// once, at the very end; intermediates keep the full division precision of
// the decimal package (16 fractional digits).
const ratingScale = 2

// powPrecision is the number of fractional digits carried by the 10^x
// expansion of the expected score, far beyond what survives the final
// rounding.
const powPrecision = 12

// PlayerStartingRating is the rating every new Player starts at.
const PlayerStartingRating = 1000.0

// RatingResult holds the outcome of a rating calculation for a single game.
// Loser slices are in the same order as the loser ratings given to
// CalculateRating.
type RatingResult struct {
	WinnerNewRating decimal.Decimal
	LoserNewRatings []decimal.Decimal
	WinnerDelta     decimal.Decimal
	LoserDeltas     []decimal.Decimal
}

// CalculateRating computes the rating transfer of a game with one winner and
// any number of losers.
//
// For each loser the winner's expected score follows the usual logistic
// curve, expected = 1/(1+10^((loser-winner)/400)), and the pairwise gain is
// k*(1-expected). The winner moves by the mean of the pairwise gains, so
// beating a table of five is worth no more in total than beating a single
// opponent, and each loser pays its own pairwise gain divided by the number
// of losers. Before rounding the transfer sums to exactly zero; after
// rounding it can be off by at most one cent.
//
// loserRatings must not be empty, the caller is expected to have rejected
// the degenerate one-player game long before reaching this point.
func CalculateRating(winnerRating float64, loserRatings []float64, kFactor float64) RatingResult {
	var (
		one    = decimal.NewFromInt(1)
		ten    = decimal.NewFromInt(10)
		spread = decimal.NewFromInt(400)

		k      = decimal.NewFromFloat(kFactor)
		winner = decimal.NewFromFloat(winnerRating)
		count  = decimal.NewFromInt(int64(len(loserRatings)))
	)

	losers := make([]decimal.Decimal, len(loserRatings))
	gains := make([]decimal.Decimal, len(loserRatings))
	var totalGain decimal.Decimal

	for i, v := range loserRatings {
		losers[i] = decimal.NewFromFloat(v)

		pow, err := ten.PowWithPrecision(losers[i].Sub(winner).Div(spread), powPrecision)
		if err != nil {
			// Cannot happen, the base is a positive constant.
			panic(err)
		}
		expected := one.Div(one.Add(pow))

		gains[i] = k.Mul(one.Sub(expected))
		totalGain = totalGain.Add(gains[i])
	}

	winnerDelta := totalGain.Div(count)

	ret := RatingResult{
		WinnerNewRating: winner.Add(winnerDelta).RoundBank(ratingScale),
		WinnerDelta:     winnerDelta.RoundBank(ratingScale),
		LoserNewRatings: make([]decimal.Decimal, len(losers)),
		LoserDeltas:     make([]decimal.Decimal, len(losers)),
	}

	for i := range losers {
		delta := gains[i].Neg().Div(count)
		ret.LoserNewRatings[i] = losers[i].Add(delta).RoundBank(ratingScale)
		ret.LoserDeltas[i] = delta.RoundBank(ratingScale)
	}

	return ret
}
