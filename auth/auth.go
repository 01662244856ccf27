// Package auth describes who is calling: the bearer credential attached to
// outgoing requests and the role used to gate commands.
package auth

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnauthenticated is returned when no credential is available.
	ErrUnauthenticated = errors.New("not authenticated")

	// ErrForbidden is returned when the caller's role is not allowed.
	ErrForbidden = errors.New("role not allowed")
)

// Role is the platform role of the signed-in user.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleManager  Role = "manager"
	RoleEmployee Role = "employee"
)

// ParseRole converts user input into a Role.
func ParseRole(s string) (Role, error) {
	switch r := Role(strings.ToLower(strings.TrimSpace(s))); r {
	case RoleAdmin, RoleManager, RoleEmployee:
		return r, nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

// Credentials exposes the current bearer token and role. An empty token
// means nobody is signed in.
type Credentials interface {
	Token() string
	Role() Role
}

// Static is a fixed credential, typically read from configuration.
type Static struct {
	AccessToken string
	UserRole    Role
}

// Token returns the access token.
func (s Static) Token() string { return s.AccessToken }

// Role returns the role.
func (s Static) Role() Role { return s.UserRole }

// Func adapts a token accessor to Credentials. The role is always empty.
type Func func() string

// Token calls f.
func (f Func) Token() string { return f() }

// Role returns the empty role.
func (f Func) Role() Role { return "" }

// RequireRole checks that creds carry a token and one of the allowed roles.
// With no allowed roles only the token is checked.
func RequireRole(creds Credentials, allowed ...Role) error {
	if creds == nil || creds.Token() == "" {
		return ErrUnauthenticated
	}
	if len(allowed) == 0 {
		return nil
	}
	role := creds.Role()
	for _, r := range allowed {
		if r == role {
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrForbidden, role)
}
