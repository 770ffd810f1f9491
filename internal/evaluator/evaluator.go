// Package evaluator scores poker hands of five to seven cards and extracts
// the best five-card sub-hand. Evaluation is a total function over well-formed
// card sets: it never fails and has no side effects. All rank and suit
// aggregations are derived fresh from the input, never mutated in place.
package evaluator

import (
	"sort"

	"github.com/josephklwork-hash/HeadsUp-sub001/internal/deck"
)

// Evaluate scores a set of 5 to 7 distinct cards. Ace is high (14) except
// when completing the wheel, where it plays as 1 and the straight reports a
// high card of 5. Callers must pass at least five cards.
func Evaluate(cards []deck.Card) Score {
	counts := rankCounts(cards)
	suited := suitValues(cards)

	flushSuit, hasFlush := bestFlushSuit(suited)

	// Straight flush first: straight detection restricted to the flush suit.
	if hasFlush {
		if high, ok := straightHigh(suited[flushSuit]); ok {
			return StraightFlushScore{High: high}
		}
	}

	if quad, ok := highestWithCount(counts, 4); ok {
		return QuadsScore{Quad: quad, Kicker: bestKickers(counts, 1, quad)[0]}
	}

	if trips, ok := highestWithCount(counts, 3); ok {
		// A second group of 2+ (including a lower trips) fills the house.
		if pair, ok := highestPairBelowTrips(counts, trips); ok {
			return FullHouseScore{Trips: trips, Pair: pair}
		}
	}

	if hasFlush {
		var top [5]int
		copy(top[:], suited[flushSuit][:5])
		return FlushScore{Values: top}
	}

	if high, ok := straightHigh(allValues(cards)); ok {
		return StraightScore{High: high}
	}

	if trips, ok := highestWithCount(counts, 3); ok {
		ks := bestKickers(counts, 2, trips)
		return TripsScore{Trips: trips, K1: ks[0], K2: ks[1]}
	}

	if hi, ok := highestWithCount(counts, 2); ok {
		if lo, ok := highestPairBelow(counts, hi); ok {
			return TwoPairScore{High: hi, Low: lo, Kicker: bestKickers(counts, 1, hi, lo)[0]}
		}
		ks := bestKickers(counts, 3, hi)
		return PairScore{Pair: hi, K1: ks[0], K2: ks[1], K3: ks[2]}
	}

	ks := bestKickers(counts, 5)
	var top [5]int
	copy(top[:], ks)
	return HighCardScore{Values: top}
}

// rankCounts builds the rank-count grouping; index is the card value 2..14.
func rankCounts(cards []deck.Card) [15]int {
	var counts [15]int
	for _, c := range cards {
		counts[c.Rank.Value()]++
	}
	return counts
}

// suitValues groups card values per suit, each list sorted descending.
func suitValues(cards []deck.Card) map[deck.Suit][]int {
	suited := make(map[deck.Suit][]int, 4)
	for _, c := range cards {
		suited[c.Suit] = append(suited[c.Suit], c.Rank.Value())
	}
	for _, vs := range suited {
		sort.Sort(sort.Reverse(sort.IntSlice(vs)))
	}
	return suited
}

func allValues(cards []deck.Card) []int {
	vs := make([]int, len(cards))
	for i, c := range cards {
		vs[i] = c.Rank.Value()
	}
	sort.Sort(sort.Reverse(sort.IntSlice(vs)))
	return vs
}

// bestFlushSuit returns the suit holding five or more cards. With seven cards
// only one suit can qualify, but when several do the one whose top-five
// sequence compares highest is kept.
func bestFlushSuit(suited map[deck.Suit][]int) (deck.Suit, bool) {
	var best deck.Suit
	found := false
	for suit, vs := range suited {
		if len(vs) < 5 {
			continue
		}
		if !found || compareTop5(vs, suited[best]) > 0 {
			best = suit
			found = true
		}
	}
	return best, found
}

func compareTop5(a, b []int) int {
	for i := 0; i < 5; i++ {
		if a[i] != b[i] {
			if a[i] > b[i] {
				return 1
			}
			return -1
		}
	}
	return 0
}

// straightHigh scans descending values for five consecutive ones. Values are
// deduplicated first; an Ace is also tried as 1 so the wheel is found, and its
// high card reported as 5.
func straightHigh(values []int) (int, bool) {
	uniq := dedupDescending(values)
	if len(uniq) > 0 && uniq[0] == 14 {
		uniq = append(uniq, 1)
	}
	run := 1
	for i := 1; i < len(uniq); i++ {
		if uniq[i] == uniq[i-1]-1 {
			run++
			if run == 5 {
				return uniq[i] + 4, true
			}
		} else {
			run = 1
		}
	}
	return 0, false
}

func dedupDescending(values []int) []int {
	sorted := append([]int(nil), values...)
	sort.Sort(sort.Reverse(sort.IntSlice(sorted)))
	uniq := sorted[:0:0]
	for i, v := range sorted {
		if i == 0 || v != sorted[i-1] {
			uniq = append(uniq, v)
		}
	}
	return uniq
}

// highestWithCount finds the highest value held at least n times.
func highestWithCount(counts [15]int, n int) (int, bool) {
	for v := 14; v >= 2; v-- {
		if counts[v] >= n {
			return v, true
		}
	}
	return 0, false
}

// highestPairBelowTrips finds the best second group for a full house: any
// value other than trips held at least twice (a second trips plays as the
// pair).
func highestPairBelowTrips(counts [15]int, trips int) (int, bool) {
	for v := 14; v >= 2; v-- {
		if v != trips && counts[v] >= 2 {
			return v, true
		}
	}
	return 0, false
}

func highestPairBelow(counts [15]int, above int) (int, bool) {
	for v := above - 1; v >= 2; v-- {
		if counts[v] >= 2 {
			return v, true
		}
	}
	return 0, false
}

// bestKickers picks the n highest values not consumed by the primary
// grouping, each distinct value used once.
func bestKickers(counts [15]int, n int, used ...int) []int {
	excluded := make(map[int]bool, len(used))
	for _, u := range used {
		excluded[u] = true
	}
	kickers := make([]int, 0, n)
	for v := 14; v >= 2 && len(kickers) < n; v-- {
		if counts[v] > 0 && !excluded[v] {
			kickers = append(kickers, v)
		}
	}
	return kickers
}
