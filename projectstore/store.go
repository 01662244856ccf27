// Package projectstore keeps a local copy of the project collection in sync
// with the platform API.
//
// Reads (FetchProjects, FetchProjectStats, GetProjectsByClient, GetAllClients)
// never return errors: failures are logged, kept in Err and pushed to the
// notification sink. Writes notify and return the error as well. Every
// successful write refetches the whole collection and the stats; local state is
// never patched in place.
package projectstore

import (
	"context"
	"errors"
	"sync"

	"github.com/hairizuanbinnoorazman/bizadmin/apiclient"
	"github.com/hairizuanbinnoorazman/bizadmin/auth"
	"github.com/hairizuanbinnoorazman/bizadmin/logger"
	"github.com/hairizuanbinnoorazman/bizadmin/notify"
	"github.com/hairizuanbinnoorazman/bizadmin/project"
)

// DefaultBasePath is where the project collection is mounted on the API.
const DefaultBasePath = "/api/projects"

var (
	// ErrMissingID is returned when a write is attempted without a project id.
	ErrMissingID = errors.New("project id is required")

	// ErrNoCredentials is returned by writes when nobody is signed in. No
	// request is sent.
	ErrNoCredentials = errors.New("no credentials available")
)

// Store is the client-side cache of the project collection.
type Store struct {
	api            *apiclient.Client
	creds          auth.Credentials
	sink           notify.Sink
	logger         logger.Logger
	basePath       string
	onUnauthorized func(ctx context.Context, err error)

	mu       sync.RWMutex
	projects []project.Project
	filtered []project.Project
	stats    project.Stats
	loading  bool
	err      error
}

// Option configures a Store.
type Option func(*Store)

// WithBasePath mounts the collection somewhere other than DefaultBasePath.
func WithBasePath(path string) Option {
	return func(s *Store) {
		if path != "" {
			s.basePath = path
		}
	}
}

// WithUnauthorizedHandler registers fn to run whenever the API answers 401.
// The store itself keeps the credential; fn decides whether to re-verify it.
func WithUnauthorizedHandler(fn func(ctx context.Context, err error)) Option {
	return func(s *Store) { s.onUnauthorized = fn }
}

// New creates a store. A nil sink discards notifications and a nil logger
// discards log output.
func New(api *apiclient.Client, creds auth.Credentials, sink notify.Sink, log logger.Logger, opts ...Option) *Store {
	if sink == nil {
		sink = notify.Discard
	}
	if log == nil {
		log = logger.Nop()
	}
	s := &Store{
		api:      api,
		creds:    creds,
		sink:     sink,
		logger:   log,
		basePath: DefaultBasePath,
		projects: []project.Project{},
		filtered: []project.Project{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Projects returns a copy of the last fetched collection.
func (s *Store) Projects() []project.Project {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clone(s.projects)
}

// FilteredProjects returns a copy of the current filtered view.
func (s *Store) FilteredProjects() []project.Project {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clone(s.filtered)
}

// Stats returns the last fetched aggregate counts.
func (s *Store) Stats() project.Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stats
}

// Loading reports whether FetchProjects is in flight.
func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Err returns the error from the most recent failed read, or nil.
func (s *Store) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

// FilterProjects recomputes the filtered view from the cached collection.
// No request is made.
func (s *Store) FilterProjects(filters project.Filters) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filtered = project.Filter(s.projects, filters)
}

// client returns the API client bound to the current token, or false when
// nobody is signed in.
func (s *Store) client() (*apiclient.Client, bool) {
	if s.creds == nil {
		return nil, false
	}
	token := s.creds.Token()
	if token == "" {
		return nil, false
	}
	return s.api.WithToken(token), true
}

func (s *Store) setLoading(v bool) {
	s.mu.Lock()
	s.loading = v
	s.mu.Unlock()
}

func (s *Store) setErr(err error) {
	s.mu.Lock()
	s.err = err
	s.mu.Unlock()
}

func clone(projects []project.Project) []project.Project {
	out := make([]project.Project, len(projects))
	copy(out, projects)
	return out
}
