package main

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/josephklwork-hash/HeadsUp-sub001/internal/engine"
	"github.com/josephklwork-hash/HeadsUp-sub001/internal/randutil"
	"github.com/josephklwork-hash/HeadsUp-sub001/internal/relay"
)

func TestDriveMatchPlaysToCompletion(t *testing.T) {
	r, err := relay.New(relay.Options{
		Blinds:        engine.Config{SmallBlind: 1, BigBlind: 2},
		StartingStack: 50,
		Hands:         20,
		Names:         [2]string{"alice", "bob"},
		Seed:          99,
		Logger:        zerolog.Nop(),
	})
	require.NoError(t, err)
	defer r.Close()

	players := [2]strategy{
		newStrategy("random", randutil.New(1)),
		newStrategy("random", randutil.New(2)),
	}
	require.NoError(t, driveMatch(context.Background(), r, players))

	standings, err := r.Standings(context.Background())
	require.NoError(t, err)
	require.True(t, standings.Over)
	require.Equal(t, 100, standings.Stacks.Total())
}

func TestCallerStrategyNeverFolds(t *testing.T) {
	rng := randutil.New(7)
	bot := newStrategy("caller", nil)

	for i := 0; i < 50; i++ {
		h := engine.NewHand(rng, i+1, engine.Top, engine.PerSeat{60, 40}, engine.Config{SmallBlind: 1, BigBlind: 2})
		for h.Result.Status == engine.StatusPlaying {
			seat := h.ToAct
			action := bot.Act(seat, h.View(seat))
			require.NotEqual(t, engine.ActionFold, action.Type)
			require.NoError(t, h.Apply(seat, action))
		}
		require.Equal(t, engine.ReasonShowdown, h.Result.Reason)
	}
}

func TestRandomStrategySubmitsOnlyLegalActions(t *testing.T) {
	rng := randutil.New(11)
	bot := &randomStrategy{rng: randutil.New(12)}

	stacks := []engine.PerSeat{{200, 200}, {53, 47}, {7, 193}, {3, 100}}
	for i := 0; i < 200; i++ {
		h := engine.NewHand(rng, i+1, engine.Seat(i%2), stacks[i%len(stacks)], engine.Config{SmallBlind: 1, BigBlind: 2})
		steps := 0
		for h.Result.Status == engine.StatusPlaying {
			seat := h.ToAct
			require.NoError(t, h.Apply(seat, bot.Act(seat, h.View(seat))))
			steps++
			require.Less(t, steps, 1000)
		}
	}
}

func TestNewStrategyDefaultsToCaller(t *testing.T) {
	require.IsType(t, callerStrategy{}, newStrategy("caller", nil))
	require.IsType(t, &randomStrategy{}, newStrategy("random", randutil.New(1)))
}
