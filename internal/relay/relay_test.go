package relay

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/josephklwork-hash/HeadsUp-sub001/internal/engine"
	"github.com/josephklwork-hash/HeadsUp-sub001/internal/history"
	"github.com/josephklwork-hash/HeadsUp-sub001/internal/randutil"
)

type captureRecorder struct {
	records []history.HandRecord
}

func (c *captureRecorder) Record(rec history.HandRecord) {
	c.records = append(c.records, rec)
}

func testOptions() Options {
	return Options{
		Blinds:        engine.Config{SmallBlind: 1, BigBlind: 2},
		StartingStack: 200,
		Hands:         10,
		Names:         [2]string{"alice", "bob"},
		Seed:          1234,
		Logger:        zerolog.Nop(),
	}
}

func testContext(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func TestNewValidatesOptions(t *testing.T) {
	t.Parallel()

	bad := []func(*Options){
		func(o *Options) { o.Blinds.BigBlind = 0 },
		func(o *Options) { o.Blinds.SmallBlind = -1 },
		func(o *Options) { o.StartingStack = 1 },
		func(o *Options) { o.Hands = 0 },
	}
	for _, mut := range bad {
		opts := testOptions()
		mut(&opts)
		_, err := New(opts)
		assert.Error(t, err)
	}
}

func TestMatchLifecycle(t *testing.T) {
	t.Parallel()

	ctx := testContext(t)
	rec := &captureRecorder{}
	opts := testOptions()
	opts.Hands = 2
	opts.Recorder = rec

	r, err := New(opts)
	require.NoError(t, err)
	defer r.Close()

	// No hand yet.
	_, err = r.DispatchAction(ctx, engine.Top, engine.Fold())
	require.ErrorIs(t, err, ErrNoHand)

	require.NoError(t, r.StartNextHand(ctx))
	require.ErrorIs(t, r.StartNextHand(ctx), ErrHandInProgress)

	// Hand 1: top deals and folds, losing the small blind.
	v, err := r.View(ctx, engine.Top)
	require.NoError(t, err)
	assert.Equal(t, 1, v.HandNo)
	assert.Equal(t, engine.Top, v.Dealer)
	assert.Equal(t, engine.Top, v.ToAct)
	v, err = r.DispatchAction(ctx, engine.Top, engine.Fold())
	require.NoError(t, err)
	assert.Equal(t, engine.StatusEnded, v.Result.Status)

	st, err := r.Standings(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, st.HandsPlayed)
	assert.Equal(t, engine.PerSeat{199, 201}, st.Stacks)
	assert.False(t, st.Over)

	// Hand 2: the button moves to bottom.
	require.NoError(t, r.StartNextHand(ctx))
	v, err = r.View(ctx, engine.Bottom)
	require.NoError(t, err)
	assert.Equal(t, engine.Bottom, v.Dealer)
	assert.Equal(t, engine.Bottom, v.ToAct)
	_, err = r.DispatchAction(ctx, engine.Bottom, engine.Fold())
	require.NoError(t, err)

	// Hand limit reached; the bigger stack takes the match.
	st, err = r.Standings(ctx)
	require.NoError(t, err)
	assert.True(t, st.Over)
	assert.Equal(t, engine.PerSeat{200, 200}, st.Stacks)
	assert.Equal(t, engine.NoSeat, st.Winner, "even stacks leave no winner")

	require.ErrorIs(t, r.StartNextHand(ctx), ErrMatchOver)

	// Both hands reached the archiver with their seeds.
	require.Len(t, rec.records, 2)
	assert.Equal(t, 1, rec.records[0].HandNo)
	assert.Equal(t, int64(1234+1), rec.records[0].Seed)
	assert.Equal(t, [2]string{"alice", "bob"}, rec.records[0].Names)
	assert.Equal(t, int64(1234+2), rec.records[1].Seed)
}

func TestEngineErrorsPassThrough(t *testing.T) {
	t.Parallel()

	ctx := testContext(t)
	r, err := New(testOptions())
	require.NoError(t, err)
	defer r.Close()

	require.NoError(t, r.StartNextHand(ctx))
	_, err = r.DispatchAction(ctx, engine.Bottom, engine.Check())
	require.ErrorIs(t, err, engine.ErrInvalidTurn)
	_, err = r.DispatchAction(ctx, engine.Top, engine.BetRaiseTo(-1))
	require.ErrorIs(t, err, engine.ErrMalformedAmount)

	// The hand survives rejected actions.
	v, err := r.View(ctx, engine.Top)
	require.NoError(t, err)
	assert.Equal(t, engine.StatusPlaying, v.Result.Status)
}

func TestResignForfeitsMatch(t *testing.T) {
	t.Parallel()

	ctx := testContext(t)
	rec := &captureRecorder{}
	opts := testOptions()
	opts.Recorder = rec

	r, err := New(opts)
	require.NoError(t, err)
	defer r.Close()

	require.NoError(t, r.StartNextHand(ctx))
	require.NoError(t, r.Resign(ctx, engine.Bottom))

	st, err := r.Standings(ctx)
	require.NoError(t, err)
	assert.True(t, st.Over)
	assert.Equal(t, engine.Top, st.Winner)
	// The abandoned hand was settled as a fold and recorded.
	require.Len(t, rec.records, 1)
	assert.Equal(t, "top", rec.records[0].Winner)
	assert.Equal(t, "fold", rec.records[0].Reason)

	require.ErrorIs(t, r.Resign(ctx, engine.Top), ErrMatchOver)
}

func TestSubscribersSeePrivateViews(t *testing.T) {
	t.Parallel()

	ctx := testContext(t)
	r, err := New(testOptions())
	require.NoError(t, err)
	defer r.Close()

	updates := r.Subscribe()
	require.NoError(t, r.StartNextHand(ctx))

	select {
	case u := <-updates:
		assert.Equal(t, 1, u.HandNo)
		assert.False(t, u.HandEnded)
		top, bottom := u.Views[engine.Top], u.Views[engine.Bottom]
		assert.Equal(t, top.Pot, bottom.Pot)
		assert.Equal(t, top.Board, bottom.Board)
		assert.NotEqual(t, top.Hole, bottom.Hole, "each view carries its own hole cards")
	case <-ctx.Done():
		t.Fatal("no update received")
	}

	_, err = r.DispatchAction(ctx, engine.Top, engine.Fold())
	require.NoError(t, err)
	var last Update
	for _, u := range drain(updates) {
		last = u
	}
	assert.True(t, last.HandEnded)
	require.NotNil(t, last.Record)
	assert.Equal(t, 1, last.Record.HandNo)
}

// drain returns the updates already buffered, then stops.
func drain(ch <-chan Update) []Update {
	var out []Update
	for {
		select {
		case u, ok := <-ch:
			if !ok {
				return out
			}
			out = append(out, u)
		default:
			return out
		}
	}
}

func TestHandReplaysFromLoggedSeed(t *testing.T) {
	t.Parallel()

	ctx := testContext(t)
	rec := &captureRecorder{}
	opts := testOptions()
	opts.StartingStack = 50
	opts.Recorder = rec

	r, err := New(opts)
	require.NoError(t, err)
	defer r.Close()

	// Play one all-in hand through the relay.
	require.NoError(t, r.StartNextHand(ctx))
	_, err = r.DispatchAction(ctx, engine.Top, engine.BetRaiseTo(50))
	require.NoError(t, err)
	_, err = r.DispatchAction(ctx, engine.Bottom, engine.Call())
	require.NoError(t, err)

	require.Len(t, rec.records, 1)
	seed := rec.records[0].Seed

	// Replaying the logged seed through a fresh engine must reproduce the
	// exact same deal and outcome.
	h := engine.NewHand(randutil.New(seed), 1, engine.Top, engine.PerSeat{50, 50},
		engine.Config{SmallBlind: 1, BigBlind: 2})
	require.NoError(t, h.Apply(engine.Top, engine.BetRaiseTo(50)))
	require.NoError(t, h.Apply(engine.Bottom, engine.Call()))

	assert.Equal(t, rec.records[0].FinalStacks, h.Stacks)
	assert.Equal(t, rec.records[0].Winner, h.Result.Winner.String())
	assert.Equal(t, history.BuildRecord(h, opts.Names, engine.PerSeat{50, 50}, seed,
		engine.Config{SmallBlind: 1, BigBlind: 2}, rec.records[0].PlayedAt), rec.records[0])

	// An all-in for full stacks either busts a seat or chops; the standings
	// must agree with the stacks either way.
	st, err := r.Standings(ctx)
	require.NoError(t, err)
	if st.Stacks[engine.Top] == 0 || st.Stacks[engine.Bottom] == 0 {
		assert.True(t, st.Over)
		assert.Equal(t, 100, st.Stacks[st.Winner])
	} else {
		assert.False(t, st.Over)
		assert.Equal(t, engine.PerSeat{50, 50}, st.Stacks)
	}
}

func TestCloseUnblocksCallers(t *testing.T) {
	t.Parallel()

	r, err := New(testOptions())
	require.NoError(t, err)
	r.Close()

	ctx := testContext(t)
	require.ErrorIs(t, r.StartNextHand(ctx), ErrClosed)
	_, err = r.Standings(ctx)
	require.ErrorIs(t, err, ErrClosed)
}
