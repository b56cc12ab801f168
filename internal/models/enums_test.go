package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    Role
		wantErr bool
	}{
		{in: "student", want: RoleStudent},
		{in: " Admin ", want: RoleAdmin},
		{in: "warden", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			got, err := ParseRole(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseStatus(t *testing.T) {
	t.Parallel()

	for _, st := range Statuses {
		got, err := ParseStatus(string(st))
		require.NoError(t, err)
		assert.Equal(t, st, got)
		assert.True(t, got.Valid())
	}

	for _, bad := range []string{"", "pending", "Closed", "In progress"} {
		_, err := ParseStatus(bad)
		assert.Error(t, err, bad)
		assert.False(t, Status(bad).Valid())
	}
}

func TestParsePriority(t *testing.T) {
	t.Parallel()

	for _, p := range Priorities {
		got, err := ParsePriority(string(p))
		require.NoError(t, err)
		assert.Equal(t, p, got)
	}

	_, err := ParsePriority("Urgent")
	assert.Error(t, err)
	assert.False(t, Priority("").Valid())
}

func TestIdentityRoles(t *testing.T) {
	t.Parallel()

	assert.True(t, Identity{Role: RoleAdmin}.IsAdmin())
	assert.False(t, Identity{Role: RoleAdmin}.IsStudent())
	assert.True(t, Identity{Role: RoleStudent}.IsStudent())
	assert.False(t, Identity{Role: "ghost"}.IsAdmin())
}
