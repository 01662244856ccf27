// Package sandboxtest runs the sandbox API on an in-memory database for tests.
package sandboxtest

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/hairizuanbinnoorazman/bizadmin/auth"
	"github.com/hairizuanbinnoorazman/bizadmin/client"
	"github.com/hairizuanbinnoorazman/bizadmin/logger"
	"github.com/hairizuanbinnoorazman/bizadmin/project"
	"github.com/hairizuanbinnoorazman/bizadmin/sandbox"
	"github.com/hairizuanbinnoorazman/bizadmin/session"
	"github.com/hairizuanbinnoorazman/bizadmin/testutil"
	"github.com/hairizuanbinnoorazman/bizadmin/user"
	"gorm.io/gorm"
)

const tokenKey = "sandboxtest-token-hash-key-32-bytes!"

// Env is a running sandbox server and the stores behind it.
type Env struct {
	Server   *httptest.Server
	DB       *gorm.DB
	Projects *project.SQLStore
	Clients  *client.SQLStore
	Users    *user.SQLStore
	Sessions *session.Manager
	Tokens   *session.TokenCodec
	Logger   *logger.TestLogger
}

// New starts a sandbox server mounted at sandbox.DefaultBasePath. It is
// closed when the test ends.
func New(t *testing.T) *Env {
	t.Helper()

	db := testutil.SetupTestDB(t)
	testutil.AutoMigrate(t, db, &client.Client{}, &project.Project{}, &user.User{})

	log := logger.NewTestLogger()
	env := &Env{
		DB:       db,
		Projects: project.NewSQLStore(db, log),
		Clients:  client.NewSQLStore(db, log),
		Users:    user.NewSQLStore(db, log),
		Sessions: session.NewManager(time.Hour, log),
		Tokens:   session.NewTokenCodec(tokenKey),
		Logger:   log,
	}

	handler := sandbox.NewRouter(sandbox.Config{}, sandbox.Deps{
		Projects: env.Projects,
		Clients:  env.Clients,
		Users:    env.Users,
		Sessions: env.Sessions,
		Tokens:   env.Tokens,
		Logger:   log,
	})
	env.Server = httptest.NewServer(handler)
	t.Cleanup(env.Server.Close)

	return env
}

// URL returns the server root.
func (e *Env) URL() string {
	return e.Server.URL
}

// Token returns a valid access token for a fresh session with role.
func (e *Env) Token(t *testing.T, role auth.Role) string {
	t.Helper()
	sess, err := e.Sessions.Create("user-"+string(role), string(role)+"@bizadmin.test", role)
	if err != nil {
		t.Fatalf("failed to create session: %v", err)
	}
	token, err := e.Tokens.Encode(sess.ID)
	if err != nil {
		t.Fatalf("failed to encode token: %v", err)
	}
	return token
}

// CreateClient inserts a client.
func (e *Env) CreateClient(t *testing.T, name string) *client.Client {
	t.Helper()
	c := &client.Client{ClientName: name, Email: "billing@" + name + ".test"}
	if err := e.Clients.Create(context.Background(), c); err != nil {
		t.Fatalf("failed to create client: %v", err)
	}
	return c
}

// CreateProject inserts a project.
func (e *Env) CreateProject(t *testing.T, clientID int, name, description string, status project.Status) *project.Project {
	t.Helper()
	p := &project.Project{
		ClientID:    clientID,
		ProjectName: name,
		Description: description,
		Status:      status,
	}
	if err := e.Projects.Create(context.Background(), p); err != nil {
		t.Fatalf("failed to create project: %v", err)
	}
	return p
}

// CreateUser inserts a user that can log in with password.
func (e *Env) CreateUser(t *testing.T, email, password string, role auth.Role) *user.User {
	t.Helper()
	u := &user.User{Email: email, Name: email, Role: role}
	if err := u.SetPassword(password); err != nil {
		t.Fatalf("failed to set password: %v", err)
	}
	if err := e.Users.Create(context.Background(), u); err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	return u
}
