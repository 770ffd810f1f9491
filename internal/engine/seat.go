package engine

// Seat identifies one of the two positions at a heads-up table.
type Seat int

const (
	Top Seat = iota
	Bottom

	// NoSeat marks bookkeeping fields that do not currently point at a seat,
	// such as the aggressor on an unopened street.
	NoSeat Seat = -1
)

// Other returns the opposing seat.
func (s Seat) Other() Seat {
	if s == Top {
		return Bottom
	}
	return Top
}

func (s Seat) String() string {
	switch s {
	case Top:
		return "top"
	case Bottom:
		return "bottom"
	default:
		return "none"
	}
}

// PerSeat holds one chip amount per seat, indexed by Seat.
type PerSeat [2]int

// Get returns the amount for a seat.
func (p PerSeat) Get(s Seat) int { return p[s] }

// Total returns the sum over both seats.
func (p PerSeat) Total() int { return p[Top] + p[Bottom] }
