package engine

// Status tracks the hand lifecycle; the playing→ended transition happens
// exactly once per hand and is terminal.
type Status int

const (
	StatusPlaying Status = iota
	StatusEnded
)

func (s Status) String() string {
	if s == StatusEnded {
		return "ended"
	}
	return "playing"
}

// WinnerLabel identifies who takes the pot.
type WinnerLabel int

const (
	WinnerNone WinnerLabel = iota
	WinnerTop
	WinnerBottom
	WinnerTie
)

func (w WinnerLabel) String() string {
	switch w {
	case WinnerTop:
		return Top.String()
	case WinnerBottom:
		return Bottom.String()
	case WinnerTie:
		return "tie"
	default:
		return ""
	}
}

// winnerFor maps a seat to its label.
func winnerFor(s Seat) WinnerLabel {
	if s == Top {
		return WinnerTop
	}
	return WinnerBottom
}

// EndReason says how the hand finished.
type EndReason int

const (
	ReasonNone EndReason = iota
	ReasonFold
	ReasonShowdown
)

func (r EndReason) String() string {
	switch r {
	case ReasonFold:
		return "fold"
	case ReasonShowdown:
		return "showdown"
	default:
		return ""
	}
}

// Result is the hand outcome exposed to observers.
type Result struct {
	Status  Status
	Winner  WinnerLabel
	Reason  EndReason
	Message string
	PotWon  int
}
