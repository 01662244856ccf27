package projectstore

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/hairizuanbinnoorazman/bizadmin/apiclient"
	"github.com/hairizuanbinnoorazman/bizadmin/auth"
	"github.com/hairizuanbinnoorazman/bizadmin/logger"
	"github.com/hairizuanbinnoorazman/bizadmin/notify"
	"github.com/hairizuanbinnoorazman/bizadmin/sandbox/sandboxtest"
)

// setupSandboxStore returns a store signed in with role against a fresh
// sandbox server.
func setupSandboxStore(t *testing.T, role auth.Role, opts ...Option) (*Store, *sandboxtest.Env, *notify.Recorder) {
	t.Helper()
	env := sandboxtest.New(t)
	creds := auth.Static{AccessToken: env.Token(t, role), UserRole: role}
	rec := &notify.Recorder{}
	store := New(apiclient.New(env.URL()), creds, rec, logger.NewTestLogger(), opts...)
	return store, env, rec
}

// stubServer answers every request with the same status and body and counts
// what it received.
type stubServer struct {
	*httptest.Server

	mu       sync.Mutex
	requests []*http.Request
	onServe  func(r *http.Request)
}

func newStubServer(t *testing.T, status int, body string) *stubServer {
	t.Helper()
	s := &stubServer{}
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.requests = append(s.requests, r.Clone(r.Context()))
		hook := s.onServe
		s.mu.Unlock()
		if hook != nil {
			hook(r)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(s.Close)
	return s
}

func (s *stubServer) OnServe(fn func(r *http.Request)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onServe = fn
}

func (s *stubServer) Requests() []*http.Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*http.Request, len(s.requests))
	copy(out, s.requests)
	return out
}

func stubStore(t *testing.T, srv *stubServer, token string, opts ...Option) (*Store, *notify.Recorder) {
	t.Helper()
	rec := &notify.Recorder{}
	creds := auth.Func(func() string { return token })
	return New(apiclient.New(srv.URL), creds, rec, logger.NewTestLogger(), opts...), rec
}
