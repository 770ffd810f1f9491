package engine

import (
	"fmt"

	"github.com/josephklwork-hash/HeadsUp-sub001/internal/deck"
	"github.com/josephklwork-hash/HeadsUp-sub001/internal/evaluator"
)

// resolveShowdown scores both hands, fixes the disclosure order, and pays the
// pot. Both hands are always evaluated internally even when one is mucked:
// winner determination never depends on what was shown.
func (h *Hand) resolveShowdown(riverAggressor Seat) {
	for _, s := range []Seat{Top, Bottom} {
		seven := append(append([]deck.Card(nil), h.hole[s][0], h.hole[s][1]), h.Board...)
		best, score := evaluator.Best5From7(seven)
		h.scores[s] = score
		h.best5[s] = evaluator.SortBest5ForDisplay(best, score)
	}

	// The last river aggressor shows first; with the river checked through,
	// the out-of-position seat does.
	first := riverAggressor
	if first == NoSeat {
		first = h.OutOfPosition()
	}
	h.ShowdownFirst = first
	second := first.Other()

	cmp := evaluator.Compare(h.scores[first], h.scores[second])
	h.canShow[first] = true
	h.shown[first] = true
	// The second seat shows only if it is not strictly beaten.
	h.canShow[second] = cmp <= 0
	if h.canShow[second] {
		h.shown[second] = true
	} else {
		h.mucked[second] = true
	}

	potWon := h.Pot
	h.Pot = 0
	switch {
	case cmp > 0:
		h.Stacks[first] += potWon
		h.endShowdown(first, potWon)
	case cmp < 0:
		h.Stacks[second] += potWon
		h.endShowdown(second, potWon)
	default:
		// Split pot; the odd chip goes to the out-of-position seat.
		half := potWon / 2
		oop := h.OutOfPosition()
		h.Stacks[oop] += potWon - half
		h.Stacks[oop.Other()] += half
		h.Result = Result{
			Status:  StatusEnded,
			Winner:  WinnerTie,
			Reason:  ReasonShowdown,
			Message: fmt.Sprintf("split pot %d, both show %s", potWon, h.scores[first]),
			PotWon:  potWon,
		}
	}
	h.ToAct = NoSeat
}

func (h *Hand) endShowdown(winner Seat, potWon int) {
	h.Result = Result{
		Status:  StatusEnded,
		Winner:  winnerFor(winner),
		Reason:  ReasonShowdown,
		Message: fmt.Sprintf("%s wins %d with %s", winner, potWon, h.scores[winner]),
		PotWon:  potWon,
	}
}

// Score returns a seat's showdown score, or nil before the showdown.
func (h *Hand) Score(seat Seat) evaluator.Score { return h.scores[seat] }

// BestFive returns a seat's best five cards in display order, or nil before
// the showdown.
func (h *Hand) BestFive(seat Seat) []deck.Card {
	return append([]deck.Card(nil), h.best5[seat]...)
}

// Shown reports whether the seat's hole cards were revealed at showdown.
func (h *Hand) Shown(seat Seat) bool { return h.shown[seat] }

// Mucked reports whether the seat discarded unseen at showdown.
func (h *Hand) Mucked(seat Seat) bool { return h.mucked[seat] }
