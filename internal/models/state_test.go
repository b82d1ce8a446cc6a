package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStateValid(t *testing.T) {
	for _, s := range []ReservationState{StateWaiting, StateSeated, StateLeft, StateRemoved} {
		assert.True(t, s.Valid(), "state %s", s)
	}

	assert.False(t, ReservationState("pending").Valid())
	assert.False(t, ReservationState("").Valid())
}

func TestStateActive(t *testing.T) {
	assert.True(t, StateWaiting.Active())
	assert.True(t, StateSeated.Active())
	assert.False(t, StateLeft.Active())
	assert.False(t, StateRemoved.Active())
}

func TestStateTerminal(t *testing.T) {
	assert.False(t, StateWaiting.Terminal())
	assert.False(t, StateSeated.Terminal())
	assert.True(t, StateLeft.Terminal())
	assert.True(t, StateRemoved.Terminal())
}

func TestStateTransitions(t *testing.T) {
	allowed := map[ReservationState][]ReservationState{
		StateWaiting: {StateSeated, StateRemoved},
		StateSeated:  {StateLeft},
		StateLeft:    {},
		StateRemoved: {},
	}

	all := []ReservationState{StateWaiting, StateSeated, StateLeft, StateRemoved}

	for from, targets := range allowed {
		ok := map[ReservationState]bool{}
		for _, to := range targets {
			ok[to] = true
		}
		for _, to := range all {
			assert.Equal(t, ok[to], from.CanTransition(to), "%s -> %s", from, to)
		}
	}
}

func TestStateNoSelfTransition(t *testing.T) {
	for _, s := range []ReservationState{StateWaiting, StateSeated, StateLeft, StateRemoved} {
		assert.False(t, s.CanTransition(s), "state %s", s)
	}
}
