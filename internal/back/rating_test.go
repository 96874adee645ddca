package back // nolint:testpackage

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestCalculateRating(t *testing.T) {
	type entry struct {
		winner      float64
		losers      []float64
		k           float64
		winnerNew   string
		winnerDelta string
		losersNew   []string
		loserDeltas []string
	}

	cases := []entry{
		// Equal ratings split evenly.
		{1000, []float64{1000}, 32, "1016.00", "16.00", []string{"984.00"}, []string{"-16.00"}},

		// A win against N opponents yields the same total gain as against one.
		{
			1000, []float64{1000, 1000}, 32,
			"1016.00", "16.00",
			[]string{"992.00", "992.00"},
			[]string{"-8.00", "-8.00"},
		},

		// The favorite gains less…
		{1200, []float64{1000}, 32, "1207.69", "7.69", []string{"992.31"}, []string{"-7.69"}},
		// …and the underdog gains more.
		{1000, []float64{1200}, 32, "1024.31", "24.31", []string{"1175.69"}, []string{"-24.31"}},

		// K-factor scales deltas linearly.
		{1000, []float64{1000}, 16, "1008.00", "8.00", []string{"992.00"}, []string{"-8.00"}},
		{1000, []float64{1000}, 40, "1020.00", "20.00", []string{"980.00"}, []string{"-20.00"}},

		// Mixed table, each loser pays its own share.
		{
			1100, []float64{1000, 1050, 900}, 32,
			"1110.97", "10.97",
			[]string{"996.16", "1045.43", "897.44"},
			[]string{"-3.84", "-4.57", "-2.56"},
		},

		// Fractional inputs must not drift, deltas stay at two decimals.
		{
			1234.56, []float64{987.65, 1056.78}, 32,
			"1241.90", "7.34",
			[]string{"984.54", "1052.55"},
			[]string{"-3.11", "-4.23"},
		},
	}

	for k, v := range cases {
		result := CalculateRating(v.winner, v.losers, v.k)

		if expected := decimal.RequireFromString(v.winnerNew); !result.WinnerNewRating.Equal(expected) {
			t.Errorf("case #%d: expected winner rating %s got %s", k, expected, result.WinnerNewRating)
		}
		if expected := decimal.RequireFromString(v.winnerDelta); !result.WinnerDelta.Equal(expected) {
			t.Errorf("case #%d: expected winner delta %s got %s", k, expected, result.WinnerDelta)
		}

		if len(result.LoserNewRatings) != len(v.losersNew) || len(result.LoserDeltas) != len(v.loserDeltas) {
			t.Fatalf("case #%d: expected %d losers got %d", k, len(v.losersNew), len(result.LoserNewRatings))
		}

		for i := range v.losersNew {
			if expected := decimal.RequireFromString(v.losersNew[i]); !result.LoserNewRatings[i].Equal(expected) {
				t.Errorf("case #%d: expected loser #%d rating %s got %s", k, i, expected, result.LoserNewRatings[i])
			}
			if expected := decimal.RequireFromString(v.loserDeltas[i]); !result.LoserDeltas[i].Equal(expected) {
				t.Errorf("case #%d: expected loser #%d delta %s got %s", k, i, expected, result.LoserDeltas[i])
			}
		}
	}
}

// The transfer is exactly zero-sum before rounding, after rounding it can be
// off by at most one cent.
func TestCalculateRatingZeroSum(t *testing.T) {
	cases := [][]float64{
		// winner first, then losers
		{1000, 1000},
		{1000, 1000, 1000},
		{1200, 1000},
		{1000, 1200},
		{1100, 1000, 1050, 900},
		{1234.56, 987.65, 1056.78},
		{950.5, 1000, 1000, 1000}, // rounding boundary, off by one cent
		{812.33, 1190.25, 733.31, 1004.95, 951.01},
	}

	cent := decimal.New(1, -ratingScale)

	for k, v := range cases {
		result := CalculateRating(v[0], v[1:], DefaultKFactor)

		sum := result.WinnerDelta
		for _, delta := range result.LoserDeltas {
			sum = sum.Add(delta)
		}

		if sum.Abs().GreaterThan(cent) {
			t.Errorf("case #%d: deltas sum to %s, expected at most one cent of rounding error", k, sum)
		}
	}
}

func TestCalculateRatingUpset(t *testing.T) {
	even := CalculateRating(1000, []float64{1000}, DefaultKFactor)
	favorite := CalculateRating(1200, []float64{1000}, DefaultKFactor)
	upset := CalculateRating(1000, []float64{1200}, DefaultKFactor)

	if !favorite.WinnerDelta.LessThan(even.WinnerDelta) {
		t.Errorf("favorite should gain less than an even matchup: %s >= %s", favorite.WinnerDelta, even.WinnerDelta)
	}
	if !upset.WinnerDelta.GreaterThan(even.WinnerDelta) {
		t.Errorf("upset should gain more than an even matchup: %s <= %s", upset.WinnerDelta, even.WinnerDelta)
	}

	// An underdog win always pays more than half the K-factor.
	halfK := decimal.NewFromFloat(DefaultKFactor / 2)
	if !upset.WinnerDelta.GreaterThan(halfK) {
		t.Errorf("upset delta %s should exceed K/2 (%s)", upset.WinnerDelta, halfK)
	}
}

func TestCalculateRatingKFactorLinearity(t *testing.T) {
	base := CalculateRating(1175.25, []float64{1033.10, 980.0}, 16)
	doubled := CalculateRating(1175.25, []float64{1033.10, 980.0}, 32)

	if expected := base.WinnerDelta.Mul(decimal.NewFromInt(2)); !doubled.WinnerDelta.Equal(expected) {
		t.Errorf("expected doubling K to double the delta: %s != %s", doubled.WinnerDelta, expected)
	}
}
