// Package engine is the authoritative betting state machine for a single
// heads-up no-limit hold'em hand. Exactly one Hand exists per hand in play
// and it must be mutated by a single logical thread of control: the engine
// performs no locking and no I/O, and every Apply either fully applies or
// fully rejects with the state unchanged.
package engine

import (
	"fmt"
	rand "math/rand/v2"

	"github.com/josephklwork-hash/HeadsUp-sub001/internal/deck"
	"github.com/josephklwork-hash/HeadsUp-sub001/internal/evaluator"
)

// Config carries the blind structure for a hand.
type Config struct {
	SmallBlind int
	BigBlind   int
}

// Hand is the authoritative state of one heads-up hand.
type Hand struct {
	No     int
	Dealer Seat

	Street Street
	ToAct  Seat
	Board  []deck.Card

	Stacks PerSeat
	Bets   PerSeat
	Pot    int

	Result Result

	cfg  Config
	deck *deck.Deck
	hole [2][2]deck.Card

	// Street bookkeeping. The street-completion decision depends on who last
	// bet, who still owes a response, and who has checked.
	lastAggressor     Seat
	sawCallThisStreet bool
	lastRaiseSize     int
	checked           [2]bool
	allIn             [2]bool

	// Showdown bookkeeping. Disclosure is tracked separately from
	// evaluation: a mucked losing hand is still scored internally.
	ShowdownFirst Seat
	canShow       [2]bool
	shown         [2]bool
	mucked        [2]bool

	scores [2]evaluator.Score
	best5  [2][]deck.Card

	log []LogItem
	seq int
}

// Option customises hand construction, mainly for deterministic tests.
type Option func(*Hand)

// WithDeck substitutes a prepared deck; the hand will not shuffle it.
func WithDeck(d *deck.Deck) Option {
	return func(h *Hand) { h.deck = d }
}

// NewHand starts a hand: blinds are posted (the dealer posts the small blind
// in heads-up), hole cards dealt, and the dealer is first to act preflop.
// Stacks are the carried-over chip counts from the previous hand.
func NewHand(rng *rand.Rand, no int, dealer Seat, stacks PerSeat, cfg Config, opts ...Option) *Hand {
	h := &Hand{
		No:            no,
		Dealer:        dealer,
		Street:        Preflop,
		Stacks:        stacks,
		cfg:           cfg,
		lastAggressor: NoSeat,
		ShowdownFirst: NoSeat,
		lastRaiseSize: cfg.BigBlind,
		Result:        Result{Status: StatusPlaying},
	}
	for _, opt := range opts {
		opt(h)
	}
	if h.deck == nil {
		h.deck = deck.NewShuffled(rng)
	}

	h.postBlind(dealer, min(cfg.SmallBlind, h.Stacks[dealer]), "small blind")
	bb := dealer.Other()
	h.postBlind(bb, min(cfg.BigBlind, h.Stacks[bb]), "big blind")

	// Out-of-position seat receives first, as at a live table.
	first := dealer.Other()
	h.hole[first] = [2]deck.Card{h.mustDeal(), h.mustDeal()}
	h.hole[dealer] = [2]deck.Card{h.mustDeal(), h.mustDeal()}

	h.ToAct = dealer
	// A blind can put the seat to act all-in; the hand then runs out with no
	// action and any uncallable excess refunds.
	if h.allIn[h.ToAct] {
		h.closeStreet()
	}
	return h
}

func (h *Hand) postBlind(seat Seat, amount int, name string) {
	h.Stacks[seat] -= amount
	h.Bets[seat] += amount
	if h.Stacks[seat] == 0 {
		h.allIn[seat] = true
	}
	h.appendLog(seat, fmt.Sprintf("posts %s %d", name, amount))
}

func (h *Hand) mustDeal() deck.Card {
	c, ok := h.deck.Deal()
	if !ok {
		// A 52-card deck cannot run out during one heads-up hand; reaching
		// this is a programming defect, not a runtime condition.
		panic("engine: deck exhausted")
	}
	return c
}

// HoleCards returns a seat's two hole cards.
func (h *Hand) HoleCards(seat Seat) [2]deck.Card { return h.hole[seat] }

// Log returns a copy of the append-only action log.
func (h *Hand) Log() []LogItem {
	return append([]LogItem(nil), h.log...)
}

// TotalChips sums all chips in play; it is invariant across every action
// within a hand, including the hand-end payout.
func (h *Hand) TotalChips() int {
	return h.Stacks.Total() + h.Bets.Total() + h.Pot
}

// OutOfPosition returns the seat that acts first postflop (the non-dealer).
func (h *Hand) OutOfPosition() Seat { return h.Dealer.Other() }

// AllIn reports whether the seat has committed its whole stack.
func (h *Hand) AllIn(seat Seat) bool { return h.allIn[seat] }

// firstToAct derives action order from the street on every use: the dealer
// acts first preflop and last on every other street. Never cached.
func (h *Hand) firstToAct() Seat {
	if h.Street == Preflop {
		return h.Dealer
	}
	return h.Dealer.Other()
}

// MinRaiseTo returns the lowest legal total for a bet or raise by the seat to
// act: the current bet plus the previous bet/raise size, which opens at one
// big blind on an unopened street.
func (h *Hand) MinRaiseTo() int {
	return h.currentBet() + h.lastRaiseSize
}

// MaxRaiseTo returns the highest legal total: the seat's own committable
// chips, capped by what the opponent could ever call.
func (h *Hand) MaxRaiseTo(seat Seat) int {
	other := seat.Other()
	return min(h.Bets[seat]+h.Stacks[seat], h.Bets[other]+h.Stacks[other])
}

func (h *Hand) currentBet() int {
	return max(h.Bets[Top], h.Bets[Bottom])
}

// Apply validates one action by one seat against the current state and, if
// legal, advances the hand. A rejected action returns a taxonomy error and
// leaves the state bit-identical.
func (h *Hand) Apply(seat Seat, action GameAction) error {
	if h.Result.Status == StatusEnded {
		return fmt.Errorf("%w: hand %d", ErrHandAlreadyEnded, h.No)
	}
	if seat != h.ToAct {
		return fmt.Errorf("%w: %s acted, %s expected", ErrInvalidTurn, seat, h.ToAct)
	}

	switch action.Type {
	case ActionFold:
		return h.applyFold(seat)
	case ActionCheck:
		return h.applyCheck(seat)
	case ActionCall:
		return h.applyCall(seat)
	case ActionBetRaiseTo:
		return h.applyBetRaise(seat, action.To)
	default:
		return fmt.Errorf("%w: unknown action type %d", ErrIllegalAction, action.Type)
	}
}

func (h *Hand) applyFold(seat Seat) error {
	h.appendLog(seat, "folds")
	h.endByFold(seat)
	return nil
}

// ForceFold resolves an externally abandoned hand (disconnect, resignation)
// as a fold by the given seat, regardless of whose turn it is.
func (h *Hand) ForceFold(seat Seat) error {
	if h.Result.Status == StatusEnded {
		return fmt.Errorf("%w: hand %d", ErrHandAlreadyEnded, h.No)
	}
	h.appendLog(seat, "folds (forced)")
	h.endByFold(seat)
	return nil
}

func (h *Hand) endByFold(folder Seat) {
	winner := folder.Other()
	potWon := h.Pot + h.Bets.Total()
	h.Stacks[winner] += potWon
	h.Pot = 0
	h.Bets = PerSeat{}
	h.Result = Result{
		Status:  StatusEnded,
		Winner:  winnerFor(winner),
		Reason:  ReasonFold,
		Message: fmt.Sprintf("%s wins %d (opponent folded)", winner, potWon),
		PotWon:  potWon,
	}
}

func (h *Hand) applyCheck(seat Seat) error {
	other := seat.Other()
	if h.Bets[seat] != h.Bets[other] {
		return fmt.Errorf("%w: cannot check facing a bet of %d", ErrIllegalAction, h.Bets[other])
	}

	h.checked[seat] = true
	h.appendLog(seat, "checks")

	// The street closes once both seats have checked, or when the check
	// answers a completed call (the big blind's preflop option), or when the
	// opponent is all-in and cannot respond.
	if h.checked[other] || h.sawCallThisStreet || h.allIn[other] {
		h.closeStreet()
		return nil
	}
	h.ToAct = other
	return nil
}

func (h *Hand) applyCall(seat Seat) error {
	other := seat.Other()
	owed := h.Bets[other] - h.Bets[seat]
	if owed <= 0 {
		return fmt.Errorf("%w: nothing to call", ErrIllegalAction)
	}

	pay := min(owed, h.Stacks[seat])
	h.Stacks[seat] -= pay
	h.Bets[seat] += pay
	if h.Stacks[seat] == 0 {
		h.allIn[seat] = true
	}
	h.sawCallThisStreet = true
	h.appendLog(seat, fmt.Sprintf("calls %d", pay))

	// A preflop open limp leaves the big blind its option; every other call
	// closes the street.
	if h.Street == Preflop && h.lastAggressor == NoSeat && seat == h.Dealer && !h.allIn[other] {
		h.ToAct = other
		return nil
	}
	h.closeStreet()
	return nil
}

func (h *Hand) applyBetRaise(seat Seat, to int) error {
	if to <= 0 {
		return fmt.Errorf("%w: bet total %d", ErrMalformedAmount, to)
	}
	current := h.currentBet()
	if to <= current {
		return fmt.Errorf("%w: total %d does not exceed current bet %d", ErrIllegalAction, to, current)
	}
	maxTo := h.MaxRaiseTo(seat)
	if to > maxTo {
		return fmt.Errorf("%w: total %d above maximum %d", ErrIllegalAction, to, maxTo)
	}
	minTo := h.MinRaiseTo()
	allInFor := h.Bets[seat] + h.Stacks[seat]
	shortAllIn := to < minTo && to == allInFor
	if to < minTo && !shortAllIn {
		return fmt.Errorf("%w: total %d below minimum %d", ErrIllegalAction, to, minTo)
	}

	verb := "raises to"
	if current == 0 {
		verb = "bets"
	}

	delta := to - h.Bets[seat]
	h.Stacks[seat] -= delta
	h.Bets[seat] = to
	if h.Stacks[seat] == 0 {
		h.allIn[seat] = true
	}
	if !shortAllIn {
		h.lastRaiseSize = to - current
	}
	h.lastAggressor = seat
	h.checked = [2]bool{}
	h.appendLog(seat, fmt.Sprintf("%s %d", verb, to))

	h.ToAct = seat.Other()
	return nil
}

// closeStreet collects bets into the pot and either reveals the next street
// or resolves the showdown. If a seat is all-in the remaining streets run out
// with no further action.
func (h *Hand) closeStreet() {
	// A short all-in call can leave the bets unequal; the excess could never
	// be won and returns to the bigger bettor.
	if h.Bets[Top] != h.Bets[Bottom] {
		bigger := Top
		if h.Bets[Bottom] > h.Bets[Top] {
			bigger = Bottom
		}
		excess := h.Bets[bigger] - h.Bets[bigger.Other()]
		h.Bets[bigger] -= excess
		h.Stacks[bigger] += excess
	}

	h.Pot += h.Bets.Total()
	h.Bets = PerSeat{}

	riverAggressor := NoSeat
	if h.Street == River {
		riverAggressor = h.lastAggressor
	}

	h.checked = [2]bool{}
	h.lastAggressor = NoSeat
	h.sawCallThisStreet = false
	h.lastRaiseSize = h.cfg.BigBlind

	if h.Street == River {
		h.resolveShowdown(riverAggressor)
		return
	}

	h.Board = append(h.Board, h.deck.DealN(h.Street.toDeal())...)
	h.Street = h.Street.next()
	h.ToAct = h.firstToAct()

	if h.allIn[Top] || h.allIn[Bottom] {
		h.closeStreet()
	}
}

func (h *Hand) appendLog(seat Seat, text string) {
	h.seq++
	h.log = append(h.log, LogItem{
		ID:       fmt.Sprintf("%d-%d", h.No, h.seq),
		Sequence: h.seq,
		Street:   h.Street.Name(),
		Seat:     seat,
		Text:     fmt.Sprintf("%s %s", seat, text),
	})
}
