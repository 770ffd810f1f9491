package engine

import "errors"

// Rejection taxonomy. Every rejected action wraps exactly one of these and
// leaves the hand untouched; the caller decides whether to notify the acting
// client or drop a stale submission. Nothing here is fatal.
var (
	// ErrInvalidTurn is returned when a seat acts out of turn.
	ErrInvalidTurn = errors.New("not this seat's turn")

	// ErrIllegalAction is returned for actions the current state does not
	// permit, such as checking while facing a bet or raising out of bounds.
	ErrIllegalAction = errors.New("illegal action")

	// ErrMalformedAmount is returned for nonsensical bet sizes.
	ErrMalformedAmount = errors.New("malformed amount")

	// ErrHandAlreadyEnded is returned for any action on a finished hand.
	ErrHandAlreadyEnded = errors.New("hand already ended")
)
