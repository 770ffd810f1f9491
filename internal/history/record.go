// Package history turns finished hands into immutable records, renders them
// as text transcripts, and archives them to disk in the background. Records
// are built once, after the hand ends, and never reach back into live engine
// state.
package history

import (
	"time"

	"github.com/josephklwork-hash/HeadsUp-sub001/internal/deck"
	"github.com/josephklwork-hash/HeadsUp-sub001/internal/engine"
)

// HandRecord freezes everything about one completed hand, including both
// seats' hole cards and evaluation details the players may never have seen.
type HandRecord struct {
	HandNo     int
	Seed       int64
	PlayedAt   time.Time
	Names      [2]string
	Dealer     engine.Seat
	SmallBlind int
	BigBlind   int

	StartingStacks engine.PerSeat
	FinalStacks    engine.PerSeat

	Board []string
	Holes [2][2]string

	Shown    [2]bool
	Mucked   [2]bool
	Scores   [2]string
	BestFive [2][]string

	Winner string
	Reason string
	PotWon int

	Log []engine.LogItem
}

// BuildRecord captures a finished hand. The starting stacks are the counts
// before blinds were posted; seed is the deal seed logged for replays.
func BuildRecord(h *engine.Hand, names [2]string, starting engine.PerSeat, seed int64, cfg engine.Config, playedAt time.Time) HandRecord {
	rec := HandRecord{
		HandNo:         h.No,
		Seed:           seed,
		PlayedAt:       playedAt,
		Names:          names,
		Dealer:         h.Dealer,
		SmallBlind:     cfg.SmallBlind,
		BigBlind:       cfg.BigBlind,
		StartingStacks: starting,
		FinalStacks:    h.Stacks,
		Winner:         h.Result.Winner.String(),
		Reason:         h.Result.Reason.String(),
		PotWon:         h.Result.PotWon,
		Log:            h.Log(),
	}

	rec.Board = compactAll(h.Board)

	for _, s := range []engine.Seat{engine.Top, engine.Bottom} {
		hole := h.HoleCards(s)
		rec.Holes[s] = [2]string{hole[0].Compact(), hole[1].Compact()}
		rec.Shown[s] = h.Shown(s)
		rec.Mucked[s] = h.Mucked(s)
		if score := h.Score(s); score != nil {
			rec.Scores[s] = score.String()
			rec.BestFive[s] = compactAll(h.BestFive(s))
		}
	}
	return rec
}

func compactAll(cards []deck.Card) []string {
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.Compact()
	}
	return out
}
