package access

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyCaller(t *testing.T) {
	cases := []struct {
		name  string
		roles []Role
		want  Caller
	}{
		{"floor", []Role{RoleFloor}, CallerStaff},
		{"administrator", []Role{RoleAdministrator}, CallerStaff},
		{"staff role among others", []Role{RolePlayer, RoleFloor}, CallerStaff},
		{"plain player", []Role{RolePlayer}, CallerPlayer},
		{"no roles", nil, CallerPlayer},
		{"unknown role", []Role{"vip"}, CallerPlayer},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ClassifyCaller(tc.roles))
		})
	}
}

func TestIsStaff(t *testing.T) {
	assert.True(t, IsStaff([]string{"floor"}))
	assert.True(t, IsStaff([]string{"player", "administrator"}))
	assert.False(t, IsStaff([]string{"player"}))
	assert.False(t, IsStaff(nil))
}

func TestCallerString(t *testing.T) {
	assert.Equal(t, "staff", CallerStaff.String())
	assert.Equal(t, "player", CallerPlayer.String())
}
