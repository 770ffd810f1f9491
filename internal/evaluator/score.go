package evaluator

import (
	"fmt"
	"strings"
)

// Category ranks hand types from High Card (weakest) to Straight Flush.
type Category int

const (
	HighCard Category = iota
	Pair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
)

// String returns a human-readable category name
func (c Category) String() string {
	switch c {
	case HighCard:
		return "High Card"
	case Pair:
		return "Pair"
	case TwoPair:
		return "Two Pair"
	case ThreeOfAKind:
		return "Three of a Kind"
	case Straight:
		return "Straight"
	case Flush:
		return "Flush"
	case FullHouse:
		return "Full House"
	case FourOfAKind:
		return "Four of a Kind"
	case StraightFlush:
		return "Straight Flush"
	default:
		return "Unknown"
	}
}

// Score is the strength of a 5-card hand. Each category carries exactly its
// own tiebreak values rather than a positional tuple, so a score can never be
// misread by index convention. Compare gives the total order.
type Score interface {
	Category() Category
	String() string

	// tiebreaks lists the category-specific values most significant first.
	// All implementations live in this package.
	tiebreaks() []int
}

// Compare returns 1 if a beats b, -1 if b beats a and 0 on an exact tie.
// Category decides first; within a category the tiebreak values are compared
// lexicographically. Two scores compare equal only when every value matches.
func Compare(a, b Score) int {
	if a.Category() != b.Category() {
		if a.Category() > b.Category() {
			return 1
		}
		return -1
	}
	at, bt := a.tiebreaks(), b.tiebreaks()
	for i := range at {
		if at[i] != bt[i] {
			if at[i] > bt[i] {
				return 1
			}
			return -1
		}
	}
	return 0
}

// StraightFlushScore is five consecutive cards of one suit; High is the top
// card value, 5 for the steel wheel.
type StraightFlushScore struct {
	High int
}

func (s StraightFlushScore) Category() Category { return StraightFlush }
func (s StraightFlushScore) tiebreaks() []int   { return []int{s.High} }
func (s StraightFlushScore) String() string {
	return fmt.Sprintf("Straight Flush, %s high", valueName(s.High))
}

// QuadsScore is four of a kind plus the best remaining kicker.
type QuadsScore struct {
	Quad   int
	Kicker int
}

func (s QuadsScore) Category() Category { return FourOfAKind }
func (s QuadsScore) tiebreaks() []int   { return []int{s.Quad, s.Kicker} }
func (s QuadsScore) String() string {
	return fmt.Sprintf("Four of a Kind, %ss", valueName(s.Quad))
}

// FullHouseScore is three of one rank and two of another.
type FullHouseScore struct {
	Trips int
	Pair  int
}

func (s FullHouseScore) Category() Category { return FullHouse }
func (s FullHouseScore) tiebreaks() []int   { return []int{s.Trips, s.Pair} }
func (s FullHouseScore) String() string {
	return fmt.Sprintf("Full House, %ss full of %ss", valueName(s.Trips), valueName(s.Pair))
}

// FlushScore is five suited cards; Values holds all five, descending.
type FlushScore struct {
	Values [5]int
}

func (s FlushScore) Category() Category { return Flush }
func (s FlushScore) tiebreaks() []int   { return s.Values[:] }
func (s FlushScore) String() string {
	return fmt.Sprintf("Flush, %s high", valueName(s.Values[0]))
}

// StraightScore is five consecutive values; High is 5 for the wheel.
type StraightScore struct {
	High int
}

func (s StraightScore) Category() Category { return Straight }
func (s StraightScore) tiebreaks() []int   { return []int{s.High} }
func (s StraightScore) String() string {
	return fmt.Sprintf("Straight, %s high", valueName(s.High))
}

// TripsScore is three of a kind with the two best kickers.
type TripsScore struct {
	Trips int
	K1    int
	K2    int
}

func (s TripsScore) Category() Category { return ThreeOfAKind }
func (s TripsScore) tiebreaks() []int   { return []int{s.Trips, s.K1, s.K2} }
func (s TripsScore) String() string {
	return fmt.Sprintf("Three of a Kind, %ss", valueName(s.Trips))
}

// TwoPairScore is two pairs with the best remaining kicker.
type TwoPairScore struct {
	High   int
	Low    int
	Kicker int
}

func (s TwoPairScore) Category() Category { return TwoPair }
func (s TwoPairScore) tiebreaks() []int   { return []int{s.High, s.Low, s.Kicker} }
func (s TwoPairScore) String() string {
	return fmt.Sprintf("Two Pair, %ss and %ss", valueName(s.High), valueName(s.Low))
}

// PairScore is a single pair with the three best kickers.
type PairScore struct {
	Pair int
	K1   int
	K2   int
	K3   int
}

func (s PairScore) Category() Category { return Pair }
func (s PairScore) tiebreaks() []int   { return []int{s.Pair, s.K1, s.K2, s.K3} }
func (s PairScore) String() string {
	return fmt.Sprintf("Pair of %ss", valueName(s.Pair))
}

// HighCardScore is the five best unconnected values, descending.
type HighCardScore struct {
	Values [5]int
}

func (s HighCardScore) Category() Category { return HighCard }
func (s HighCardScore) tiebreaks() []int   { return s.Values[:] }
func (s HighCardScore) String() string {
	return fmt.Sprintf("High Card %s", valueName(s.Values[0]))
}

func valueName(v int) string {
	names := map[int]string{
		14: "Ace", 13: "King", 12: "Queen", 11: "Jack", 10: "Ten",
		9: "Nine", 8: "Eight", 7: "Seven", 6: "Six", 5: "Five",
		4: "Four", 3: "Three", 2: "Two", 1: "Ace",
	}
	if n, ok := names[v]; ok {
		return n
	}
	return strings.TrimSpace(fmt.Sprintf("%d", v))
}
