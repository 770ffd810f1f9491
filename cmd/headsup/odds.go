package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/josephklwork-hash/HeadsUp-sub001/internal/deck"
	"github.com/josephklwork-hash/HeadsUp-sub001/internal/evaluator"
	"github.com/josephklwork-hash/HeadsUp-sub001/internal/randutil"
)

// OddsCmd estimates equity for two known hands with Monte Carlo board
// completion.
type OddsCmd struct {
	HandA  string `arg:"" help:"First hand, e.g. 'As Kd'"`
	HandB  string `arg:"" help:"Second hand, e.g. 'Qh Qs'"`
	Board  string `short:"b" help:"Community cards already dealt, e.g. 'Td 7s 8h'"`
	Trials int    `short:"t" default:"100000" help:"Number of Monte Carlo trials"`
	Seed   int64  `help:"Random seed for reproducible results (0 picks one)"`
}

func (c *OddsCmd) Run() error {
	holeA, err := parseHole(c.HandA)
	if err != nil {
		return fmt.Errorf("hand A: %w", err)
	}
	holeB, err := parseHole(c.HandB)
	if err != nil {
		return fmt.Errorf("hand B: %w", err)
	}

	var board []deck.Card
	if c.Board != "" {
		board, err = deck.ParseAll(strings.Fields(c.Board)...)
		if err != nil {
			return fmt.Errorf("board: %w", err)
		}
		if len(board) > 5 {
			return fmt.Errorf("board: %d cards exceeds five", len(board))
		}
	}
	if err := rejectDuplicates(holeA, holeB, board); err != nil {
		return err
	}

	seed := c.Seed
	if seed == 0 {
		seed = randutil.Seed()
	}

	start := time.Now()
	eq := evaluator.EstimateEquityParallel(seed, holeA, holeB, board, c.Trials)
	elapsed := time.Since(start)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Hand\tWin\tTie\n")
	fmt.Fprintf(w, "%s %s\t%.2f%%\t%.2f%%\n",
		holeA[0].Compact(), holeA[1].Compact(), eq.WinA*100, eq.Tie*100)
	fmt.Fprintf(w, "%s %s\t%.2f%%\t%.2f%%\n",
		holeB[0].Compact(), holeB[1].Compact(), eq.WinB*100, eq.Tie*100)
	if err := w.Flush(); err != nil {
		return err
	}

	if len(board) > 0 {
		fmt.Printf("\nBoard: %s\n", compactJoin(board))
	}
	fmt.Printf("\n%d trials in %s (seed %d)\n", c.Trials, elapsed.Round(time.Millisecond), seed)
	return nil
}

func parseHole(s string) ([2]deck.Card, error) {
	cards, err := deck.ParseAll(strings.Fields(s)...)
	if err != nil {
		return [2]deck.Card{}, err
	}
	if len(cards) != 2 {
		return [2]deck.Card{}, fmt.Errorf("expected two cards, got %d", len(cards))
	}
	return [2]deck.Card{cards[0], cards[1]}, nil
}

func rejectDuplicates(holeA, holeB [2]deck.Card, board []deck.Card) error {
	seen := make(map[deck.Card]bool)
	all := []deck.Card{holeA[0], holeA[1], holeB[0], holeB[1]}
	all = append(all, board...)
	for _, c := range all {
		if seen[c] {
			return fmt.Errorf("card %s appears twice", c.Compact())
		}
		seen[c] = true
	}
	return nil
}

func compactJoin(cards []deck.Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = c.Compact()
	}
	return strings.Join(parts, " ")
}
