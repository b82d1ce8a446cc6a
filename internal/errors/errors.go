package errors

import "errors"

var ErrUnauthorized = errors.New("user is not authorized")
var ErrForbidden = errors.New("operation is forbidden for user")

// Domain errors returned by the reservation store and the session catalog.
// Each one is a precondition violation, not a transient fault, so callers
// must not retry them.
var ErrSessionNotFound = errors.New("no session scheduled for that date")
var ErrUnknownGameOffering = errors.New("game offering does not exist for that session")
var ErrDuplicateActiveReservation = errors.New("player already holds an active reservation for this game")
var ErrInvalidStateTransition = errors.New("reservation state does not allow this transition")
var ErrReservationNotFound = errors.New("reservation does not exist")
var ErrUnknownGameType = errors.New("game type has no display name")
var ErrPlayerNotFound = errors.New("no player registered with that email")
