package history

import (
	"fmt"
	"strings"

	"github.com/josephklwork-hash/HeadsUp-sub001/internal/engine"
)

// TranscriptOpts controls what a rendered transcript discloses.
type TranscriptOpts struct {
	// IncludeHoleCards reveals both hole hands in the header and renders
	// mucked cards in the summary. With it off, only cards shown at the table
	// appear, which matches what an observer could have seen.
	IncludeHoleCards bool
}

// Transcript renders a completed hand as text, one action per line, with a
// summary block at the end.
func Transcript(rec HandRecord, opts TranscriptOpts) string {
	var b strings.Builder

	fmt.Fprintf(&b, "=== HAND %d ===\n", rec.HandNo)
	fmt.Fprintf(&b, "Date: %s\n", rec.PlayedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "Seed: %d\n", rec.Seed)
	fmt.Fprintf(&b, "Blinds: %d/%d\n", rec.SmallBlind, rec.BigBlind)
	fmt.Fprintf(&b, "Dealer: %s\n\n", rec.Dealer)

	for _, s := range []engine.Seat{engine.Top, engine.Bottom} {
		pos := "big blind"
		if s == rec.Dealer {
			pos = "dealer/small blind"
		}
		fmt.Fprintf(&b, "Seat %d: %s (%d chips) [%s]\n", int(s)+1, rec.seatName(s), rec.StartingStacks[s], pos)
	}
	if opts.IncludeHoleCards {
		for _, s := range []engine.Seat{engine.Top, engine.Bottom} {
			fmt.Fprintf(&b, "Dealt to %s: [%s %s]\n", rec.seatName(s), rec.Holes[s][0], rec.Holes[s][1])
		}
	}
	b.WriteString("\n")

	street := ""
	for _, item := range rec.Log {
		if item.Street != street {
			street = item.Street
			writeStreetHeader(&b, rec, street)
		}
		fmt.Fprintf(&b, "%s\n", rec.withName(item))
	}

	b.WriteString("\n*** SUMMARY ***\n")
	fmt.Fprintf(&b, "Total pot %d\n", rec.PotWon)
	if len(rec.Board) > 0 {
		fmt.Fprintf(&b, "Board [%s]\n", strings.Join(rec.Board, " "))
	}
	for _, s := range []engine.Seat{engine.Top, engine.Bottom} {
		b.WriteString(rec.summaryLine(s, opts))
	}
	switch rec.Winner {
	case "tie":
		fmt.Fprintf(&b, "Result: split pot %d\n", rec.PotWon)
	case engine.Top.String():
		fmt.Fprintf(&b, "Result: %s wins %d (%s)\n", rec.seatName(engine.Top), rec.PotWon, rec.Reason)
	case engine.Bottom.String():
		fmt.Fprintf(&b, "Result: %s wins %d (%s)\n", rec.seatName(engine.Bottom), rec.PotWon, rec.Reason)
	}
	return b.String()
}

func writeStreetHeader(b *strings.Builder, rec HandRecord, street string) {
	switch street {
	case "Flop":
		if len(rec.Board) >= 3 {
			fmt.Fprintf(b, "*** FLOP *** [%s]\n", strings.Join(rec.Board[:3], " "))
		}
	case "Turn":
		if len(rec.Board) >= 4 {
			fmt.Fprintf(b, "*** TURN *** [%s] [%s]\n", strings.Join(rec.Board[:3], " "), rec.Board[3])
		}
	case "River":
		if len(rec.Board) >= 5 {
			fmt.Fprintf(b, "*** RIVER *** [%s] [%s]\n", strings.Join(rec.Board[:4], " "), rec.Board[4])
		}
	}
}

func (r HandRecord) seatName(s engine.Seat) string {
	if r.Names[s] != "" {
		return r.Names[s]
	}
	return s.String()
}

// withName swaps the seat label at the front of a log line for the player
// name, so transcripts read naturally for named matches.
func (r HandRecord) withName(item engine.LogItem) string {
	prefix := item.Seat.String() + " "
	if strings.HasPrefix(item.Text, prefix) {
		return r.seatName(item.Seat) + " " + strings.TrimPrefix(item.Text, prefix)
	}
	return item.Text
}

func (r HandRecord) summaryLine(s engine.Seat, opts TranscriptOpts) string {
	line := fmt.Sprintf("Seat %d: %s", int(s)+1, r.seatName(s))
	switch {
	case r.Shown[s]:
		line += fmt.Sprintf(" showed [%s %s]", r.Holes[s][0], r.Holes[s][1])
		if r.Scores[s] != "" {
			line += fmt.Sprintf(" with %s", r.Scores[s])
		}
	case r.Mucked[s] && opts.IncludeHoleCards:
		line += fmt.Sprintf(" mucked [%s %s]", r.Holes[s][0], r.Holes[s][1])
	case r.Mucked[s]:
		line += " mucked"
	case r.Winner == s.String():
		line += " collected without showdown"
	default:
		line += " folded"
	}
	net := r.FinalStacks[s] - r.StartingStacks[s]
	if net >= 0 {
		line += fmt.Sprintf(" (+%d)", net)
	} else {
		line += fmt.Sprintf(" (%d)", net)
	}
	return line + "\n"
}
