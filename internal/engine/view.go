package engine

import "github.com/josephklwork-hash/HeadsUp-sub001/internal/deck"

// StateView is a read-only copy of the public hand state plus one seat's
// private cards. It shares no memory with the Hand and is safe to hand to
// other goroutines.
type StateView struct {
	HandNo int
	Dealer Seat
	Street Street
	ToAct  Seat
	Board  []deck.Card
	Hole   [2]deck.Card
	Stacks PerSeat
	Bets   PerSeat
	Pot    int
	// MinRaiseTo and MaxRaiseTo bound a legal bet or raise total for the
	// viewing seat, so a player can size an action without asking again.
	MinRaiseTo int
	MaxRaiseTo int
	Result     Result
	Log        []LogItem
}

// View builds a StateView for the given seat. Only that seat's hole cards are
// included; the opponent's stay private until the history snapshot after the
// hand ends.
func (h *Hand) View(seat Seat) StateView {
	return StateView{
		HandNo:     h.No,
		Dealer:     h.Dealer,
		Street:     h.Street,
		ToAct:      h.ToAct,
		Board:      append([]deck.Card(nil), h.Board...),
		Hole:       h.hole[seat],
		Stacks:     h.Stacks,
		Bets:       h.Bets,
		Pot:        h.Pot,
		MinRaiseTo: h.MinRaiseTo(),
		MaxRaiseTo: h.MaxRaiseTo(seat),
		Result:     h.Result,
		Log:        h.Log(),
	}
}
