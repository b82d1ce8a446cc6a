package gameday

import (
	"testing"

	apperrors "railbird/internal/errors"

	"github.com/stretchr/testify/assert"
)

func TestDisplayName(t *testing.T) {
	name, err := DisplayName("1_2_300_max")
	assert.NoError(t, err)
	assert.Equal(t, "1/2 NLH ($300 max)", name)

	name, err = DisplayName("plo_tournament")
	assert.NoError(t, err)
	assert.Equal(t, "PLO Tournament ($250 buy-in)", name)
}

func TestDisplayNameUnknown(t *testing.T) {
	_, err := DisplayName("5_10_nlh")
	assert.ErrorIs(t, err, apperrors.ErrUnknownGameType)

	_, err = DisplayName("")
	assert.ErrorIs(t, err, apperrors.ErrUnknownGameType)
}

func TestIsTournament(t *testing.T) {
	assert.True(t, IsTournament("nlh_tournament"))
	assert.True(t, IsTournament("plo_tournament"))

	assert.False(t, IsTournament("1_2_300_max"))
	assert.False(t, IsTournament("2_5_plo"))
	assert.False(t, IsTournament("no_such_game"))
}
