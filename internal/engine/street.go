package engine

// Street is a betting round, identified by the number of community cards
// revealed while it is in progress.
type Street int

const (
	Preflop Street = 0
	Flop    Street = 3
	Turn    Street = 4
	River   Street = 5
)

// Name returns the conventional street name.
func (s Street) Name() string {
	switch s {
	case Preflop:
		return "Preflop"
	case Flop:
		return "Flop"
	case Turn:
		return "Turn"
	case River:
		return "River"
	default:
		return "Unknown"
	}
}

func (s Street) String() string { return s.Name() }

// next returns the following street. River has no successor; the caller
// transitions to showdown instead.
func (s Street) next() Street {
	switch s {
	case Preflop:
		return Flop
	case Flop:
		return Turn
	default:
		return River
	}
}

// toDeal returns how many community cards the next street reveals.
func (s Street) toDeal() int {
	if s == Preflop {
		return 3
	}
	return 1
}
