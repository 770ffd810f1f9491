package evaluator

import (
	"sort"

	"github.com/josephklwork-hash/HeadsUp-sub001/internal/deck"
)

// Best5From7 exhaustively scores all C(7,5)=21 five-card subsets and returns
// the winning subset with its score. The brute force is intentional: the
// search space is tiny and fixed, and enumerating it cannot disagree with
// Evaluate the way a cleverer pruning could.
func Best5From7(cards []deck.Card) ([]deck.Card, Score) {
	var bestCards []deck.Card
	var best Score

	// Choosing 5 of 7 is dropping 2; iterate over the dropped pair.
	for i := 0; i < len(cards); i++ {
		for j := i + 1; j < len(cards); j++ {
			subset := make([]deck.Card, 0, 5)
			for k, c := range cards {
				if k != i && k != j {
					subset = append(subset, c)
				}
			}
			score := Evaluate(subset)
			if best == nil || Compare(score, best) > 0 {
				best = score
				bestCards = subset
			}
		}
	}
	return bestCards, best
}

// SortBest5ForDisplay orders an already-selected best five for presentation.
// The ordering is a pure function of the cards and their score: grouped cards
// first (quads, trips, pairs), then kickers, everything descending, with the
// wheel rendered 5-4-3-2-A so the Ace reads as the low end. It re-derives
// nothing about hand strength and is used only for replay display.
func SortBest5ForDisplay(cards []deck.Card, score Score) []deck.Card {
	out := append([]deck.Card(nil), cards...)

	switch s := score.(type) {
	case StraightFlushScore:
		sortStraight(out, s.High)
	case StraightScore:
		sortStraight(out, s.High)
	case QuadsScore:
		sortGrouped(out, s.Quad)
	case FullHouseScore:
		sortGrouped(out, s.Trips)
	case TripsScore:
		sortGrouped(out, s.Trips)
	case TwoPairScore:
		sortGrouped(out, s.High, s.Low)
	case PairScore:
		sortGrouped(out, s.Pair)
	default: // flush, high card
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Rank.Value() > out[j].Rank.Value()
		})
	}
	return out
}

// sortStraight orders a straight high to low; in the wheel the Ace plays as 1
// and goes last.
func sortStraight(cards []deck.Card, high int) {
	display := func(c deck.Card) int {
		if high == 5 && c.Rank == deck.Ace {
			return 1
		}
		return c.Rank.Value()
	}
	sort.SliceStable(cards, func(i, j int) bool {
		return display(cards[i]) > display(cards[j])
	})
}

// sortGrouped puts cards belonging to the named groups first, in the given
// group order, then the remaining kickers descending.
func sortGrouped(cards []deck.Card, groups ...int) {
	groupIndex := func(c deck.Card) int {
		for i, g := range groups {
			if c.Rank.Value() == g {
				return i
			}
		}
		return len(groups)
	}
	sort.SliceStable(cards, func(i, j int) bool {
		gi, gj := groupIndex(cards[i]), groupIndex(cards[j])
		if gi != gj {
			return gi < gj
		}
		return cards[i].Rank.Value() > cards[j].Rank.Value()
	})
}
