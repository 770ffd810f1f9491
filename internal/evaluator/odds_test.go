package evaluator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/josephklwork-hash/HeadsUp-sub001/internal/deck"
	"github.com/josephklwork-hash/HeadsUp-sub001/internal/randutil"
)

func hole(t *testing.T, a, b string) [2]deck.Card {
	t.Helper()
	return [2]deck.Card{deck.MustParse(a), deck.MustParse(b)}
}

func TestEstimateEquityDominatedMatchup(t *testing.T) {
	t.Parallel()

	// Aces against seven-deuce offsuit is the classic mismatch; the exact
	// number is near 87%, so 80% leaves plenty of sampling slack.
	eq := EstimateEquity(randutil.New(3), hole(t, "As", "Ah"), hole(t, "7c", "2d"), nil, 5000)
	assert.Greater(t, eq.WinA, 0.80)
	assert.Less(t, eq.WinB, 0.20)
	assert.InDelta(t, 1.0, eq.WinA+eq.WinB+eq.Tie, 0.01)
}

func TestEstimateEquityFullBoardIsExact(t *testing.T) {
	t.Parallel()

	board, err := deck.ParseAll("Ah", "Kd", "5c", "9h", "3s")
	require.NoError(t, err)

	eq := EstimateEquity(nil, hole(t, "As", "Ks"), hole(t, "2c", "7d"), board, 0)
	assert.Equal(t, Equity{WinA: 1}, eq)

	// Swapped hands must mirror exactly.
	eq = EstimateEquity(nil, hole(t, "2c", "7d"), hole(t, "As", "Ks"), board, 0)
	assert.Equal(t, Equity{WinB: 1}, eq)
}

func TestEstimateEquityChoppedBoard(t *testing.T) {
	t.Parallel()

	// The board plays for both seats.
	board, err := deck.ParseAll("5c", "6d", "7h", "8s", "9c")
	require.NoError(t, err)

	eq := EstimateEquity(nil, hole(t, "2c", "2d"), hole(t, "3h", "3s"), board, 0)
	assert.Equal(t, Equity{Tie: 1}, eq)
}

func TestEstimateEquityParallelMatchesSequentialShape(t *testing.T) {
	t.Parallel()

	eq := EstimateEquityParallel(11, hole(t, "As", "Ah"), hole(t, "7c", "2d"), nil, 20000)
	assert.Greater(t, eq.WinA, 0.80)
	assert.InDelta(t, 1.0, eq.WinA+eq.WinB+eq.Tie, 0.01)

	// Same seed, same answer, regardless of scheduling.
	again := EstimateEquityParallel(11, hole(t, "As", "Ah"), hole(t, "7c", "2d"), nil, 20000)
	assert.Equal(t, eq, again)
}

func TestEstimateEquitySymmetricMatchup(t *testing.T) {
	t.Parallel()

	// Mirrored suited connectors should land close to even.
	eq := EstimateEquity(randutil.New(9), hole(t, "9s", "8s"), hole(t, "9h", "8h"), nil, 5000)
	assert.InDelta(t, eq.WinA, eq.WinB, 0.05)
	assert.Greater(t, eq.Tie, 0.5, "mirrored hands mostly chop")
}
