// Package relay runs a heads-up match: it owns the live engine state,
// serialises every mutation through one goroutine, records finished hands,
// and fans read-only state views out to subscribers. Players never touch the
// engine directly; everything goes through the relay's inbox.
package relay

import (
	"context"
	"errors"
	"fmt"

	"github.com/coder/quartz"
	"github.com/rs/zerolog"

	"github.com/josephklwork-hash/HeadsUp-sub001/internal/engine"
	"github.com/josephklwork-hash/HeadsUp-sub001/internal/history"
	"github.com/josephklwork-hash/HeadsUp-sub001/internal/randutil"
)

var (
	// ErrMatchOver is returned once the match cannot continue.
	ErrMatchOver = errors.New("relay: match is over")
	// ErrHandInProgress rejects starting a hand while one is still live.
	ErrHandInProgress = errors.New("relay: hand in progress")
	// ErrNoHand rejects actions between hands.
	ErrNoHand = errors.New("relay: no hand in progress")
	// ErrClosed is returned after Close.
	ErrClosed = errors.New("relay: closed")
)

// Recorder receives finished hand records; *history.Archiver satisfies it.
type Recorder interface {
	Record(rec history.HandRecord)
}

// Options configure a match.
type Options struct {
	Blinds        engine.Config
	StartingStack int
	Hands         int
	Names         [2]string
	Seed          int64
	Logger        zerolog.Logger
	Clock         quartz.Clock
	Recorder      Recorder
}

// Update is a snapshot published to subscribers after every state change.
// Each seat gets its own view so hole cards stay private. Record carries the
// frozen hand history exactly once, on the update that ends the hand.
type Update struct {
	HandNo    int
	Views     [2]engine.StateView
	HandEnded bool
	MatchOver bool
	Record    *history.HandRecord
}

// Standings summarise a match at its current point.
type Standings struct {
	HandsPlayed int
	Stacks      engine.PerSeat
	Over        bool
	Winner      engine.Seat
}

type actionReply struct {
	view engine.StateView
	err  error
}

type actionRequest struct {
	seat   engine.Seat
	action engine.GameAction
	reply  chan actionReply
}

type startRequest struct {
	reply chan error
}

type resignRequest struct {
	seat  engine.Seat
	reply chan error
}

type viewRequest struct {
	seat  engine.Seat
	reply chan engine.StateView
}

type standingsRequest struct {
	reply chan Standings
}

// Relay is the single writer for one heads-up match.
type Relay struct {
	opts   Options
	logger zerolog.Logger
	clock  quartz.Clock

	actionCh    chan actionRequest
	startCh     chan startRequest
	resignCh    chan resignRequest
	viewCh      chan viewRequest
	standingsCh chan standingsRequest
	subscribeCh chan chan Update
	stopCh      chan struct{}
	doneCh      chan struct{}

	// Everything below is owned by the run goroutine.
	hand           *engine.Hand
	stacks         engine.PerSeat
	startingStacks engine.PerSeat
	dealer         engine.Seat
	handNo         int
	handSeed       int64
	matchSeed      int64
	over           bool
	winner         engine.Seat
	lastRecord     *history.HandRecord
	subs           []chan Update
}

// New validates the options and starts the match goroutine. No hand is dealt
// until StartNextHand.
func New(opts Options) (*Relay, error) {
	if opts.Blinds.SmallBlind <= 0 || opts.Blinds.BigBlind <= 0 {
		return nil, fmt.Errorf("relay: blinds must be positive, got %d/%d",
			opts.Blinds.SmallBlind, opts.Blinds.BigBlind)
	}
	if opts.StartingStack < opts.Blinds.BigBlind {
		return nil, fmt.Errorf("relay: starting stack %d cannot cover the big blind", opts.StartingStack)
	}
	if opts.Hands <= 0 {
		return nil, fmt.Errorf("relay: hands must be positive, got %d", opts.Hands)
	}
	if opts.Clock == nil {
		opts.Clock = quartz.NewReal()
	}
	if opts.Seed == 0 {
		opts.Seed = randutil.Seed()
	}

	r := &Relay{
		opts:        opts,
		logger:      opts.Logger.With().Int64("match_seed", opts.Seed).Logger(),
		clock:       opts.Clock,
		actionCh:    make(chan actionRequest),
		startCh:     make(chan startRequest),
		resignCh:    make(chan resignRequest),
		viewCh:      make(chan viewRequest),
		standingsCh: make(chan standingsRequest),
		subscribeCh: make(chan chan Update),
		stopCh:      make(chan struct{}),
		doneCh:      make(chan struct{}),
		stacks:      engine.PerSeat{opts.StartingStack, opts.StartingStack},
		dealer:      engine.Top,
		winner:      engine.NoSeat,
		matchSeed:   opts.Seed,
	}
	go r.run()
	return r, nil
}

// Close stops the relay. A live hand is abandoned without a result.
func (r *Relay) Close() {
	select {
	case <-r.stopCh:
	default:
		close(r.stopCh)
	}
	<-r.doneCh
}

// StartNextHand deals the next hand, carrying stacks over and alternating the
// dealer button.
func (r *Relay) StartNextHand(ctx context.Context) error {
	req := startRequest{reply: make(chan error, 1)}
	select {
	case r.startCh <- req:
	case <-r.stopCh:
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}
	return r.await(ctx, req.reply)
}

// DispatchAction submits one player action to the live hand. An accepted
// action returns the acting seat's view of the resulting state; a rejected
// one returns the engine's taxonomy error with the state untouched.
func (r *Relay) DispatchAction(ctx context.Context, seat engine.Seat, action engine.GameAction) (engine.StateView, error) {
	req := actionRequest{seat: seat, action: action, reply: make(chan actionReply, 1)}
	select {
	case r.actionCh <- req:
	case <-r.stopCh:
		return engine.StateView{}, ErrClosed
	case <-ctx.Done():
		return engine.StateView{}, ctx.Err()
	}
	select {
	case rep := <-req.reply:
		return rep.view, rep.err
	case <-r.doneCh:
		return engine.StateView{}, ErrClosed
	case <-ctx.Done():
		return engine.StateView{}, ctx.Err()
	}
}

// Resign folds the seat out of the live hand and forfeits the match, used
// when a player disconnects or concedes.
func (r *Relay) Resign(ctx context.Context, seat engine.Seat) error {
	req := resignRequest{seat: seat, reply: make(chan error, 1)}
	select {
	case r.resignCh <- req:
	case <-r.stopCh:
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}
	return r.await(ctx, req.reply)
}

func (r *Relay) await(ctx context.Context, reply chan error) error {
	select {
	case err := <-reply:
		return err
	case <-r.doneCh:
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// View returns the current state as visible to one seat.
func (r *Relay) View(ctx context.Context, seat engine.Seat) (engine.StateView, error) {
	req := viewRequest{seat: seat, reply: make(chan engine.StateView, 1)}
	select {
	case r.viewCh <- req:
	case <-r.stopCh:
		return engine.StateView{}, ErrClosed
	case <-ctx.Done():
		return engine.StateView{}, ctx.Err()
	}
	select {
	case v := <-req.reply:
		return v, nil
	case <-r.doneCh:
		return engine.StateView{}, ErrClosed
	case <-ctx.Done():
		return engine.StateView{}, ctx.Err()
	}
}

// Standings reports the match score so far.
func (r *Relay) Standings(ctx context.Context) (Standings, error) {
	req := standingsRequest{reply: make(chan Standings, 1)}
	select {
	case r.standingsCh <- req:
	case <-r.stopCh:
		return Standings{}, ErrClosed
	case <-ctx.Done():
		return Standings{}, ctx.Err()
	}
	select {
	case s := <-req.reply:
		return s, nil
	case <-r.doneCh:
		return Standings{}, ErrClosed
	case <-ctx.Done():
		return Standings{}, ctx.Err()
	}
}

// Subscribe registers an update channel. Updates are dropped rather than
// blocking the match when a subscriber falls behind.
func (r *Relay) Subscribe() <-chan Update {
	ch := make(chan Update, 64)
	select {
	case r.subscribeCh <- ch:
	case <-r.stopCh:
		close(ch)
	}
	return ch
}

func (r *Relay) run() {
	defer close(r.doneCh)
	defer func() {
		for _, sub := range r.subs {
			close(sub)
		}
	}()

	for {
		select {
		case req := <-r.actionCh:
			req.reply <- r.handleAction(req.seat, req.action)
		case req := <-r.startCh:
			req.reply <- r.handleStart()
		case req := <-r.resignCh:
			req.reply <- r.handleResign(req.seat)
		case req := <-r.viewCh:
			req.reply <- r.currentView(req.seat)
		case req := <-r.standingsCh:
			req.reply <- Standings{
				HandsPlayed: r.handsPlayed(),
				Stacks:      r.currentStacks(),
				Over:        r.over,
				Winner:      r.winner,
			}
		case sub := <-r.subscribeCh:
			r.subs = append(r.subs, sub)
		case <-r.stopCh:
			return
		}
	}
}

func (r *Relay) handleStart() error {
	if r.over {
		return ErrMatchOver
	}
	if r.hand != nil && r.hand.Result.Status == engine.StatusPlaying {
		return ErrHandInProgress
	}

	r.handNo++
	r.startingStacks = r.stacks
	// Per-hand seeds derive from the match seed so any single hand can be
	// replayed from the transcript header alone.
	r.handSeed = r.matchSeed + int64(r.handNo)
	r.hand = engine.NewHand(randutil.New(r.handSeed), r.handNo, r.dealer, r.stacks, r.opts.Blinds)

	r.logger.Info().
		Int("hand", r.handNo).
		Int64("seed", r.handSeed).
		Str("dealer", r.dealer.String()).
		Int("stack_top", r.stacks[engine.Top]).
		Int("stack_bottom", r.stacks[engine.Bottom]).
		Msg("hand started")

	// Blinds alone can end a hand when a stack is critically short.
	if r.hand.Result.Status == engine.StatusEnded {
		r.finishHand()
	} else {
		r.publish(false)
	}
	return nil
}

func (r *Relay) handleAction(seat engine.Seat, action engine.GameAction) actionReply {
	if r.over {
		return actionReply{err: ErrMatchOver}
	}
	if r.hand == nil {
		return actionReply{err: ErrNoHand}
	}
	if err := r.hand.Apply(seat, action); err != nil {
		r.logger.Debug().
			Int("hand", r.handNo).
			Str("seat", seat.String()).
			Str("action", action.String()).
			Err(err).
			Msg("action rejected")
		return actionReply{err: err}
	}

	if r.hand.Result.Status == engine.StatusEnded {
		r.finishHand()
	} else {
		r.publish(false)
	}
	return actionReply{view: r.hand.View(seat)}
}

func (r *Relay) handleResign(seat engine.Seat) error {
	if r.over {
		return ErrMatchOver
	}
	r.logger.Info().Str("seat", seat.String()).Msg("player resigned")
	if r.hand != nil && r.hand.Result.Status == engine.StatusPlaying {
		if err := r.hand.ForceFold(seat); err != nil {
			return err
		}
		r.finishHand()
	}
	r.endMatch(seat.Other())
	return nil
}

// finishHand settles a completed hand: stacks carry over, the button moves,
// the record goes to the archiver, and the match-over conditions are checked.
func (r *Relay) finishHand() {
	h := r.hand
	r.stacks = h.Stacks
	r.dealer = r.dealer.Other()

	r.logger.Info().
		Int("hand", h.No).
		Str("winner", h.Result.Winner.String()).
		Str("reason", h.Result.Reason.String()).
		Int("pot", h.Result.PotWon).
		Msg("hand finished")

	rec := history.BuildRecord(h, r.opts.Names, r.startingStacks, r.handSeed, r.opts.Blinds, r.clock.Now())
	r.lastRecord = &rec
	if r.opts.Recorder != nil {
		r.opts.Recorder.Record(rec)
	}

	switch {
	case r.stacks[engine.Top] == 0:
		r.endMatch(engine.Bottom)
	case r.stacks[engine.Bottom] == 0:
		r.endMatch(engine.Top)
	case r.handNo >= r.opts.Hands:
		r.endMatch(leader(r.stacks))
	default:
		r.publish(true)
	}
}

func (r *Relay) endMatch(winner engine.Seat) {
	if r.over {
		return
	}
	r.over = true
	r.winner = winner
	r.logger.Info().
		Str("winner", winner.String()).
		Int("hands", r.handsPlayed()).
		Int("stack_top", r.stacks[engine.Top]).
		Int("stack_bottom", r.stacks[engine.Bottom]).
		Msg("match over")
	r.publish(true)
}

// leader picks the match winner on the hand limit; equal stacks mean no
// winner.
func leader(stacks engine.PerSeat) engine.Seat {
	switch {
	case stacks[engine.Top] > stacks[engine.Bottom]:
		return engine.Top
	case stacks[engine.Bottom] > stacks[engine.Top]:
		return engine.Bottom
	default:
		return engine.NoSeat
	}
}

func (r *Relay) handsPlayed() int {
	if r.hand != nil && r.hand.Result.Status == engine.StatusPlaying {
		return r.handNo - 1
	}
	return r.handNo
}

func (r *Relay) currentStacks() engine.PerSeat {
	if r.hand != nil && r.hand.Result.Status == engine.StatusPlaying {
		// Chips in front of a seat still count towards its total mid-hand.
		return engine.PerSeat{
			r.hand.Stacks[engine.Top] + r.hand.Bets[engine.Top],
			r.hand.Stacks[engine.Bottom] + r.hand.Bets[engine.Bottom],
		}
	}
	return r.stacks
}

func (r *Relay) currentView(seat engine.Seat) engine.StateView {
	if r.hand == nil {
		return engine.StateView{}
	}
	return r.hand.View(seat)
}

func (r *Relay) publish(handEnded bool) {
	if len(r.subs) == 0 || r.hand == nil {
		return
	}
	u := Update{
		HandNo:    r.handNo,
		HandEnded: handEnded,
		MatchOver: r.over,
	}
	if handEnded {
		u.Record = r.lastRecord
		r.lastRecord = nil
	}
	u.Views[engine.Top] = r.hand.View(engine.Top)
	u.Views[engine.Bottom] = r.hand.View(engine.Bottom)
	for _, sub := range r.subs {
		select {
		case sub <- u:
		default:
		}
	}
}
