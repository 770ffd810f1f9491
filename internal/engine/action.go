package engine

import "fmt"

// ActionType enumerates the legal heads-up action kinds.
type ActionType int

const (
	ActionFold ActionType = iota
	ActionCheck
	ActionCall
	ActionBetRaiseTo
)

func (a ActionType) String() string {
	switch a {
	case ActionFold:
		return "fold"
	case ActionCheck:
		return "check"
	case ActionCall:
		return "call"
	case ActionBetRaiseTo:
		return "bet_raise_to"
	default:
		return "unknown"
	}
}

// GameAction is one validated player submission. To is only meaningful for
// ActionBetRaiseTo and names the total street commitment, not the increment.
type GameAction struct {
	Type ActionType
	To   int
}

// Fold, Check, Call and BetRaiseTo build the four action values.
func Fold() GameAction             { return GameAction{Type: ActionFold} }
func Check() GameAction            { return GameAction{Type: ActionCheck} }
func Call() GameAction             { return GameAction{Type: ActionCall} }
func BetRaiseTo(to int) GameAction { return GameAction{Type: ActionBetRaiseTo, To: to} }

func (a GameAction) String() string {
	if a.Type == ActionBetRaiseTo {
		return fmt.Sprintf("%s %d", a.Type, a.To)
	}
	return a.Type.String()
}

// LogItem is one entry of the append-only action log. Sequence increases
// strictly within a hand; Street is the street name at the time of the
// action.
type LogItem struct {
	ID       string
	Sequence int
	Street   string
	Seat     Seat
	Text     string
}
