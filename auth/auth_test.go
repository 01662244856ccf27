package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequireRole(t *testing.T) {
	tests := []struct {
		name    string
		creds   Credentials
		allowed []Role
		wantErr error
	}{
		{name: "nil credentials", creds: nil, wantErr: ErrUnauthenticated},
		{name: "empty token", creds: Static{UserRole: RoleAdmin}, wantErr: ErrUnauthenticated},
		{name: "token only check", creds: Func(func() string { return "t" })},
		{name: "allowed role", creds: Static{AccessToken: "t", UserRole: RoleManager}, allowed: []Role{RoleAdmin, RoleManager}},
		{name: "disallowed role", creds: Static{AccessToken: "t", UserRole: RoleEmployee}, allowed: []Role{RoleAdmin}, wantErr: ErrForbidden},
		{name: "func credentials carry no role", creds: Func(func() string { return "t" }), allowed: []Role{RoleAdmin}, wantErr: ErrForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := RequireRole(tt.creds, tt.allowed...)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestParseRole(t *testing.T) {
	r, err := ParseRole(" Admin ")
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, r)

	_, err = ParseRole("root")
	assert.Error(t, err)
}
