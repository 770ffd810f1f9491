package deck

import rand "math/rand/v2"

// Deck is an ephemeral ordered sequence of the 52 distinct cards. It is
// consumed by draws during a single hand and never persisted; only the dealt
// cards are retained in hand state.
type Deck struct {
	cards []Card
	rng   *rand.Rand
}

// New creates a full 52-card deck using the provided random source. The
// caller owns the source so deals are reproducible from a seed.
func New(rng *rand.Rand) *Deck {
	d := &Deck{
		cards: make([]Card, 0, 52),
		rng:   rng,
	}
	for suit := Spades; suit <= Clubs; suit++ {
		for rank := Two; rank <= Ace; rank++ {
			d.cards = append(d.cards, NewCard(rank, suit))
		}
	}
	return d
}

// NewShuffled creates a deck and shuffles it in one step.
func NewShuffled(rng *rand.Rand) *Deck {
	d := New(rng)
	d.Shuffle()
	return d
}

// Stacked builds a deck with the given cards on top in order, followed by the
// rest of the deck in natural order. Used to reproduce specific deals.
func Stacked(top ...Card) *Deck {
	d := New(nil)
	d.Remove(top...)
	d.cards = append(append(make([]Card, 0, 52), top...), d.cards...)
	return d
}

// Shuffle randomizes the order of the remaining cards.
func (d *Deck) Shuffle() {
	for i := len(d.cards) - 1; i > 0; i-- {
		j := d.rng.IntN(i + 1)
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
}

// Deal removes and returns the top card. The second return is false when the
// deck is exhausted, which cannot happen during a legal heads-up hand.
func (d *Deck) Deal() (Card, bool) {
	if len(d.cards) == 0 {
		return Card{}, false
	}
	card := d.cards[0]
	d.cards = d.cards[1:]
	return card, true
}

// DealN deals n cards from the top of the deck.
func (d *Deck) DealN(n int) []Card {
	if n > len(d.cards) {
		n = len(d.cards)
	}
	cards := make([]Card, 0, n)
	for i := 0; i < n; i++ {
		card, ok := d.Deal()
		if !ok {
			break
		}
		cards = append(cards, card)
	}
	return cards
}

// Remove deletes specific cards from the deck, for dealing out known hands in
// tests and equity calculations.
func (d *Deck) Remove(cards ...Card) {
	for _, c := range cards {
		for i, dc := range d.cards {
			if dc == c {
				d.cards = append(d.cards[:i], d.cards[i+1:]...)
				break
			}
		}
	}
}

// Remaining returns the number of cards left in the deck.
func (d *Deck) Remaining() int {
	return len(d.cards)
}
