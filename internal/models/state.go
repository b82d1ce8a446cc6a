package models

// ReservationState is the lifecycle state of a reservation. The legacy
// schema kept three independent flags (seated, removed, pleft) which could
// encode impossible combinations; a single enum makes those unrepresentable.
type ReservationState string

const (
	StateWaiting ReservationState = "waiting"
	StateSeated  ReservationState = "seated"
	StateLeft    ReservationState = "left"
	StateRemoved ReservationState = "removed"
)

// Valid reports whether s is one of the four known states.
func (s ReservationState) Valid() bool {
	switch s {
	case StateWaiting, StateSeated, StateLeft, StateRemoved:
		return true
	}
	return false
}

// Active reports whether the reservation still holds a spot. A player may
// only re-reserve the same game once their reservation is no longer active.
func (s ReservationState) Active() bool {
	return s == StateWaiting || s == StateSeated
}

// Terminal reports whether no further transition may leave s.
func (s ReservationState) Terminal() bool {
	return s == StateLeft || s == StateRemoved
}

// CanTransition reports whether a reservation may move from s to next.
//
//	waiting -> seated | removed
//	seated  -> left
//
// Removed is waiting-only: a seated player who has to go is marked left.
func (s ReservationState) CanTransition(next ReservationState) bool {
	switch s {
	case StateWaiting:
		return next == StateSeated || next == StateRemoved
	case StateSeated:
		return next == StateLeft
	}
	return false
}

func (s ReservationState) String() string {
	return string(s)
}
