package sandbox

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoginRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		req     LoginRequest
		wantErr bool
	}{
		{name: "seeded local account", req: LoginRequest{Email: "admin@bizadmin.local", Password: "admin-password"}},
		{name: "non-resolving test domain", req: LoginRequest{Email: "manager@bizadmin.test", Password: "x"}},
		{name: "missing email", req: LoginRequest{Password: "x"}, wantErr: true},
		{name: "malformed email", req: LoginRequest{Email: "not-an-email", Password: "x"}, wantErr: true},
		{name: "missing password", req: LoginRequest{Email: "admin@bizadmin.local"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}
