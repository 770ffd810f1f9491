package evaluator

import (
	rand "math/rand/v2"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/josephklwork-hash/HeadsUp-sub001/internal/deck"
	"github.com/josephklwork-hash/HeadsUp-sub001/internal/randutil"
)

// Equity is the result of an odds estimation between two known hands.
type Equity struct {
	WinA float64
	WinB float64
	Tie  float64
}

// EstimateEquity estimates how often holeA beats holeB given a partial board,
// by dealing random completions and comparing the seven-card evaluations.
// With a full five-card board a single comparison is exact and trials is
// ignored.
func EstimateEquity(rng *rand.Rand, holeA, holeB [2]deck.Card, board []deck.Card, trials int) Equity {
	known := []deck.Card{holeA[0], holeA[1], holeB[0], holeB[1]}
	known = append(known, board...)

	need := 5 - len(board)
	if need <= 0 {
		return tally(holeA, holeB, board, 1)
	}

	var eq Equity
	for t := 0; t < trials; t++ {
		d := deck.NewShuffled(rng)
		d.Remove(known...)
		full := append(append([]deck.Card(nil), board...), d.DealN(need)...)
		r := tally(holeA, holeB, full, trials)
		eq.WinA += r.WinA
		eq.WinB += r.WinB
		eq.Tie += r.Tie
	}
	return eq
}

// EstimateEquityParallel splits the trials across workers, one per CPU. Each
// worker draws its own random source from seeds so the result is reproducible
// for a given seed regardless of scheduling.
func EstimateEquityParallel(seed int64, holeA, holeB [2]deck.Card, board []deck.Card, trials int) Equity {
	if len(board) >= 5 || trials < 1000 {
		return EstimateEquity(randutil.New(seed), holeA, holeB, board, trials)
	}

	workers := runtime.NumCPU()
	if workers > trials {
		workers = 1
	}
	per := trials / workers

	// Workers report into their own slot so the final sum runs in a fixed
	// order.
	parts := make([]Equity, workers)
	counts := make([]int, workers)
	var g errgroup.Group
	for w := 0; w < workers; w++ {
		w := w
		n := per
		if w == workers-1 {
			n = trials - per*(workers-1)
		}
		counts[w] = n
		g.Go(func() error {
			parts[w] = EstimateEquity(randutil.New(seed+int64(w)), holeA, holeB, board, n)
			return nil
		})
	}
	_ = g.Wait()

	var total Equity
	for w, eq := range parts {
		share := float64(counts[w]) / float64(trials)
		total.WinA += eq.WinA * share
		total.WinB += eq.WinB * share
		total.Tie += eq.Tie * share
	}
	return total
}

func tally(holeA, holeB [2]deck.Card, board []deck.Card, weight int) Equity {
	sevenA := append([]deck.Card{holeA[0], holeA[1]}, board...)
	sevenB := append([]deck.Card{holeB[0], holeB[1]}, board...)
	_, scoreA := Best5From7(sevenA)
	_, scoreB := Best5From7(sevenB)

	share := 1.0 / float64(weight)
	switch Compare(scoreA, scoreB) {
	case 1:
		return Equity{WinA: share}
	case -1:
		return Equity{WinB: share}
	default:
		return Equity{Tie: share}
	}
}
