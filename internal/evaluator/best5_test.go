package evaluator

import (
	"testing"

	poker "github.com/paulhankin/poker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/josephklwork-hash/HeadsUp-sub001/internal/deck"
	"github.com/josephklwork-hash/HeadsUp-sub001/internal/randutil"
)

func TestBest5From7PicksWinningSubset(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		seven []string
		want  Score
		best  []string
	}{
		{
			"straight flush ignores offsuit junk",
			[]string{"As", "Ks", "Qs", "Js", "Ts", "2c", "3d"},
			StraightFlushScore{High: 14},
			[]string{"As", "Ks", "Qs", "Js", "Ts"},
		},
		{
			"full house drops the spare cards",
			[]string{"7d", "7s", "7c", "2h", "2d", "9c", "Ks"},
			FullHouseScore{Trips: 7, Pair: 2},
			[]string{"7d", "7s", "7c", "2h", "2d"},
		},
		{
			"two pair keeps the best kicker",
			[]string{"Jd", "Js", "4h", "4c", "Ad", "9s", "2c"},
			TwoPairScore{High: 11, Low: 4, Kicker: 14},
			[]string{"Jd", "Js", "4h", "4c", "Ad"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			best, score := Best5From7(cards(t, tc.seven...))
			assert.Equal(t, tc.want, score)
			assert.ElementsMatch(t, cards(t, tc.best...), best)
		})
	}
}

func TestSortBest5ForDisplay(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		hand []string
		want []string
	}{
		{"straight high to low", []string{"5c", "9d", "7h", "8s", "6c"}, []string{"9d", "8s", "7h", "6c", "5c"}},
		{"wheel puts the ace last", []string{"Ad", "3h", "5s", "2c", "4d"}, []string{"5s", "4d", "3h", "2c", "Ad"}},
		{"quads before the kicker", []string{"Kd", "7c", "7d", "7h", "7s"}, []string{"7c", "7d", "7h", "7s", "Kd"}},
		{"full house trips first", []string{"2h", "7d", "2d", "7s", "7c"}, []string{"7d", "7s", "7c", "2h", "2d"}},
		{"two pair then kicker", []string{"4h", "Ad", "Jd", "4c", "Js"}, []string{"Jd", "Js", "4h", "4c", "Ad"}},
		{"pair leads the kickers", []string{"8h", "Td", "Ac", "3d", "Ts"}, []string{"Td", "Ts", "Ac", "8h", "3d"}},
		{"flush descending", []string{"5h", "Kh", "2h", "Jh", "8h"}, []string{"Kh", "Jh", "8h", "5h", "2h"}},
		{"high card descending", []string{"6s", "Ad", "2d", "Qc", "9h"}, []string{"Ad", "Qc", "9h", "6s", "2d"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			hand := cards(t, tc.hand...)
			got := SortBest5ForDisplay(hand, Evaluate(hand))
			assert.Equal(t, cards(t, tc.want...), got)
		})
	}
}

func toLibraryCard(t *testing.T, c deck.Card) poker.Card {
	t.Helper()
	var s poker.Suit
	switch c.Suit {
	case deck.Clubs:
		s = poker.Club
	case deck.Diamonds:
		s = poker.Diamond
	case deck.Hearts:
		s = poker.Heart
	case deck.Spades:
		s = poker.Spade
	}
	r := poker.Rank(c.Rank.Value())
	if c.Rank == deck.Ace {
		r = poker.Rank(1)
	}
	card, err := poker.MakeCard(s, r)
	require.NoError(t, err)
	return card
}

func libraryEval7(t *testing.T, seven []deck.Card) int16 {
	t.Helper()
	var a [7]poker.Card
	for i, c := range seven {
		a[i] = toLibraryCard(t, c)
	}
	return poker.Eval7(&a)
}

// TestCompareAgreesWithReferenceEvaluator pits random pairs of seven-card
// hands against an independent evaluator and requires the same relative
// ordering every time.
func TestCompareAgreesWithReferenceEvaluator(t *testing.T) {
	t.Parallel()

	rng := randutil.New(42)
	for i := 0; i < 2000; i++ {
		d := deck.NewShuffled(rng)
		board := d.DealN(5)
		sevenA := append(d.DealN(2), board...)
		sevenB := append(d.DealN(2), board...)

		_, scoreA := Best5From7(sevenA)
		_, scoreB := Best5From7(sevenB)
		got := Compare(scoreA, scoreB)

		refA, refB := libraryEval7(t, sevenA), libraryEval7(t, sevenB)
		want := 0
		if refA > refB {
			want = 1
		} else if refA < refB {
			want = -1
		}

		require.Equalf(t, want, got,
			"board %v: %v (%s) vs %v (%s)", board, sevenA[:2], scoreA, sevenB[:2], scoreB)
	}
}
