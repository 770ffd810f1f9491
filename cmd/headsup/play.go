package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	rand "math/rand/v2"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/josephklwork-hash/HeadsUp-sub001/internal/config"
	"github.com/josephklwork-hash/HeadsUp-sub001/internal/engine"
	"github.com/josephklwork-hash/HeadsUp-sub001/internal/history"
	"github.com/josephklwork-hash/HeadsUp-sub001/internal/randutil"
	"github.com/josephklwork-hash/HeadsUp-sub001/internal/relay"
)

// PlayCmd runs a complete match between two built-in players.
type PlayCmd struct {
	Config     string `short:"c" default:"headsup.hcl" help:"HCL configuration file"`
	Hands      int    `help:"Number of hands to play (overrides config)"`
	SmallBlind int    `help:"Small blind amount (overrides config)"`
	BigBlind   int    `help:"Big blind amount (overrides config)"`
	Stack      int    `help:"Starting stack (overrides config)"`
	Seed       int64  `help:"Deterministic match seed (0 picks one at random)"`
	Top        string `default:"caller" enum:"caller,random" help:"Strategy for the top seat"`
	Bottom     string `default:"random" enum:"caller,random" help:"Strategy for the bottom seat"`
	Debug      bool   `short:"d" help:"Enable debug logging"`
	Verbose    bool   `help:"Print every table action"`
	NoHistory  bool   `help:"Disable hand history archiving"`
}

func (c *PlayCmd) Run() error {
	cfg, err := config.Load(c.Config)
	if err != nil {
		return err
	}
	c.applyOverrides(cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := setupLogger(c.Debug)
	console := log.NewWithOptions(os.Stdout, log.Options{Level: log.InfoLevel})

	seed := cfg.Match.Seed
	if seed == 0 {
		seed = randutil.Seed()
	}

	opts := relay.Options{
		Blinds: engine.Config{
			SmallBlind: cfg.Match.SmallBlind,
			BigBlind:   cfg.Match.BigBlind,
		},
		StartingStack: cfg.Match.StartingStack,
		Hands:         cfg.Match.Hands,
		Names:         [2]string{cfg.Match.TopName, cfg.Match.BottomName},
		Seed:          seed,
		Logger:        logger,
		Clock:         quartz.NewReal(),
	}

	if cfg.History.Enabled && !c.NoHistory {
		archiver, err := history.NewArchiver(logger, quartz.NewReal(), history.ArchiverConfig{
			Dir:              cfg.History.Dir,
			Filename:         cfg.History.Filename,
			FlushInterval:    cfg.History.FlushInterval(),
			FlushHands:       cfg.History.FlushHands,
			IncludeHoleCards: cfg.History.IncludeHoleCards,
		})
		if err != nil {
			return err
		}
		defer func() {
			if err := archiver.Close(); err != nil {
				logger.Error().Err(err).Msg("closing archiver")
			}
		}()
		opts.Recorder = archiver
	}

	r, err := relay.New(opts)
	if err != nil {
		return err
	}
	defer r.Close()

	ctx := signalContext(logger)
	players := [2]strategy{
		newStrategy(c.Top, randutil.New(seed+1)),
		newStrategy(c.Bottom, randutil.New(seed+2)),
	}

	console.Info("match starting",
		"hands", cfg.Match.Hands,
		"blinds", fmt.Sprintf("%d/%d", cfg.Match.SmallBlind, cfg.Match.BigBlind),
		"stack", cfg.Match.StartingStack,
		"seed", seed,
		"top", c.Top,
		"bottom", c.Bottom)

	start := time.Now()
	var printerDone chan struct{}
	if c.Verbose {
		updates := r.Subscribe()
		printerDone = make(chan struct{})
		go func() {
			defer close(printerDone)
			printUpdates(console, updates)
		}()
	}

	if err := driveMatch(ctx, r, players); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	standings, err := r.Standings(context.Background())
	if err != nil {
		return err
	}

	// Closing the relay ends the subscriber stream; wait for the printer so
	// its output lands before the final summary.
	r.Close()
	if printerDone != nil {
		<-printerDone
	}

	console.Info("match finished",
		"hands", standings.HandsPlayed,
		"top_stack", standings.Stacks[engine.Top],
		"bottom_stack", standings.Stacks[engine.Bottom],
		"winner", winnerName(standings.Winner, cfg),
		"elapsed", time.Since(start).Round(time.Millisecond))
	return nil
}

func (c *PlayCmd) applyOverrides(cfg *config.Config) {
	if c.Hands > 0 {
		cfg.Match.Hands = c.Hands
	}
	if c.SmallBlind > 0 {
		cfg.Match.SmallBlind = c.SmallBlind
	}
	if c.BigBlind > 0 {
		cfg.Match.BigBlind = c.BigBlind
	}
	if c.Stack > 0 {
		cfg.Match.StartingStack = c.Stack
	}
	if c.Seed != 0 {
		cfg.Match.Seed = c.Seed
	}
}

// driveMatch deals hands until the relay reports the match over, letting each
// strategy act from its own private view.
func driveMatch(ctx context.Context, r *relay.Relay, players [2]strategy) error {
	for {
		if err := r.StartNextHand(ctx); err != nil {
			if errors.Is(err, relay.ErrMatchOver) {
				return nil
			}
			return err
		}
		view, err := r.View(ctx, engine.Top)
		if err != nil {
			return err
		}
		for view.Result.Status == engine.StatusPlaying {
			seat := view.ToAct
			private, err := r.View(ctx, seat)
			if err != nil {
				return err
			}
			view, err = r.DispatchAction(ctx, seat, players[seat].Act(seat, private))
			if err != nil {
				return err
			}
		}
	}
}

// printUpdates streams new log lines and hand results to the console. It uses
// the top seat's view, so the opponent's hole cards never reach the terminal.
func printUpdates(console *log.Logger, updates <-chan relay.Update) {
	printed := 0
	lastHand := 0
	for u := range updates {
		v := u.Views[engine.Top]
		if u.HandNo != lastHand {
			lastHand = u.HandNo
			printed = 0
			console.Info("hand started", "hand", u.HandNo,
				"hole", fmt.Sprintf("%s %s", v.Hole[0].Compact(), v.Hole[1].Compact()))
		}
		for _, item := range v.Log[printed:] {
			console.Info(item.Text, "hand", u.HandNo, "street", item.Street)
		}
		printed = len(v.Log)
		if u.HandEnded {
			console.Info(v.Result.Message, "hand", u.HandNo, "pot", v.Result.PotWon)
		}
	}
}

func winnerName(seat engine.Seat, cfg *config.Config) string {
	switch seat {
	case engine.Top:
		return cfg.Match.TopName
	case engine.Bottom:
		return cfg.Match.BottomName
	default:
		return "tie"
	}
}

// strategy picks one action given a seat's private view. Implementations only
// see what a player at the table would.
type strategy interface {
	Act(seat engine.Seat, v engine.StateView) engine.GameAction
}

func newStrategy(name string, rng *rand.Rand) strategy {
	switch name {
	case "random":
		return &randomStrategy{rng: rng}
	default:
		return callerStrategy{}
	}
}

// callerStrategy checks when it can and calls when it cannot. It never folds,
// which makes it a useful baseline opponent.
type callerStrategy struct{}

func (callerStrategy) Act(seat engine.Seat, v engine.StateView) engine.GameAction {
	if v.Bets[seat.Other()] > v.Bets[seat] {
		return engine.Call()
	}
	return engine.Check()
}

// randomStrategy mixes checks, calls, raises and the occasional fold. Raise
// totals come from the view's legal bounds, so every action it submits is
// accepted.
type randomStrategy struct {
	rng *rand.Rand
}

func (s *randomStrategy) Act(seat engine.Seat, v engine.StateView) engine.GameAction {
	owed := v.Bets[seat.Other()] - v.Bets[seat]
	current := max(v.Bets[engine.Top], v.Bets[engine.Bottom])
	allInFor := v.Bets[seat] + v.Stacks[seat]
	canRaise := v.MaxRaiseTo > current &&
		(v.MaxRaiseTo >= v.MinRaiseTo || v.MaxRaiseTo == allInFor)

	roll := s.rng.IntN(100)
	if owed > 0 {
		switch {
		case roll < 10:
			return engine.Fold()
		case roll < 85 || !canRaise:
			return engine.Call()
		default:
			return engine.BetRaiseTo(s.raiseTotal(v))
		}
	}
	if roll < 60 || !canRaise {
		return engine.Check()
	}
	return engine.BetRaiseTo(s.raiseTotal(v))
}

func (s *randomStrategy) raiseTotal(v engine.StateView) int {
	if v.MaxRaiseTo < v.MinRaiseTo {
		// Short all-in: the only legal total left.
		return v.MaxRaiseTo
	}
	return v.MinRaiseTo + s.rng.IntN(v.MaxRaiseTo-v.MinRaiseTo+1)
}
