package projectstore

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"

	"github.com/hairizuanbinnoorazman/bizadmin/apiclient"
	"github.com/hairizuanbinnoorazman/bizadmin/client"
	"github.com/hairizuanbinnoorazman/bizadmin/notify"
	"github.com/hairizuanbinnoorazman/bizadmin/project"
)

type listResponse struct {
	Projects []project.Project `json:"projects"`
}

type statsResponse struct {
	Stats *project.Stats `json:"stats"`
}

type projectResponse struct {
	Project *project.Project `json:"project"`
}

type clientsResponse struct {
	Clients []map[string]interface{} `json:"clients"`
}

// FetchProjects loads the collection. Filters go out as query parameters the
// server may honor; the response replaces both the collection and the filtered
// view as-is.
func (s *Store) FetchProjects(ctx context.Context, filters project.Filters) {
	api, ok := s.client()
	if !ok {
		s.logger.Debug(ctx, "skipping project fetch: no credentials", nil)
		return
	}

	s.mu.Lock()
	s.loading = true
	s.err = nil
	s.mu.Unlock()
	defer s.setLoading(false)

	var resp listResponse
	if err := api.Get(ctx, s.basePath, filters.Query(), &resp); err != nil {
		s.readFailed(ctx, "Error loading projects", err)
		return
	}

	projects := resp.Projects
	if projects == nil {
		projects = []project.Project{}
	}

	s.mu.Lock()
	s.projects = projects
	s.filtered = clone(projects)
	s.mu.Unlock()

	s.logger.Debug(ctx, "projects fetched", map[string]interface{}{
		"count":     len(projects),
		"status":    string(filters.Status),
		"client_id": filters.ClientID,
		"search":    filters.Search,
	})
}

// FetchProjectStats loads the aggregate counts.
func (s *Store) FetchProjectStats(ctx context.Context) {
	api, ok := s.client()
	if !ok {
		s.logger.Debug(ctx, "skipping stats fetch: no credentials", nil)
		return
	}

	var resp statsResponse
	if err := api.Get(ctx, s.basePath+"/stats", nil, &resp); err != nil {
		s.readFailed(ctx, "Error loading project statistics", err)
		return
	}

	var stats project.Stats
	if resp.Stats != nil {
		stats = *resp.Stats
	}
	s.mu.Lock()
	s.stats = stats
	s.mu.Unlock()
}

// Refresh refetches the unfiltered collection and the stats.
func (s *Store) Refresh(ctx context.Context) {
	s.FetchProjects(ctx, project.Filters{})
	s.FetchProjectStats(ctx)
}

// GetProject fetches a single project. Store state is not touched.
func (s *Store) GetProject(ctx context.Context, id string) (*project.Project, error) {
	if id == "" {
		return nil, ErrMissingID
	}
	api, ok := s.client()
	if !ok {
		return nil, ErrNoCredentials
	}

	var resp projectResponse
	if err := api.Get(ctx, s.projectPath(id), nil, &resp); err != nil {
		s.logger.Error(ctx, "failed to get project", map[string]interface{}{
			"error":      err.Error(),
			"project_id": id,
		})
		s.unauthorized(ctx, err)
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	if resp.Project == nil {
		return nil, fmt.Errorf("failed to get project: %w", apiclient.ErrMalformedResponse)
	}
	return resp.Project, nil
}

// GetProjectsByClient returns the projects of one client. Nothing in the store
// changes, Err included; failures are logged and notified and yield an empty
// slice.
func (s *Store) GetProjectsByClient(ctx context.Context, clientID int) []project.Project {
	projects, err := s.ListByClient(ctx, clientID)
	if err != nil {
		if !errors.Is(err, ErrNoCredentials) {
			s.lookupFailed(ctx, "Error loading client projects", err)
		}
		return []project.Project{}
	}
	return projects
}

// ListByClient is GetProjectsByClient for callers that need the error. It
// neither notifies nor touches store state.
func (s *Store) ListByClient(ctx context.Context, clientID int) ([]project.Project, error) {
	api, ok := s.client()
	if !ok {
		s.logger.Debug(ctx, "skipping client projects fetch: no credentials", nil)
		return []project.Project{}, ErrNoCredentials
	}

	var resp listResponse
	path := s.basePath + "/client/" + strconv.Itoa(clientID)
	if err := api.Get(ctx, path, nil, &resp); err != nil {
		s.unauthorized(ctx, err)
		return []project.Project{}, fmt.Errorf("failed to load client projects: %w", err)
	}
	if resp.Projects == nil {
		return []project.Project{}, nil
	}
	return resp.Projects, nil
}

// GetAllClients returns the client list normalized for pickers. Entries the
// server sent without a usable id are dropped, since a project cannot be
// assigned to them. Like GetProjectsByClient it leaves store state alone and
// yields an empty slice on failure.
func (s *Store) GetAllClients(ctx context.Context) []client.Ref {
	refs, err := s.ListClients(ctx)
	if err != nil {
		if !errors.Is(err, ErrNoCredentials) {
			s.lookupFailed(ctx, "Error loading clients", err)
		}
		return []client.Ref{}
	}
	return refs
}

// ListClients is GetAllClients for callers that need the error.
func (s *Store) ListClients(ctx context.Context) ([]client.Ref, error) {
	api, ok := s.client()
	if !ok {
		s.logger.Debug(ctx, "skipping clients fetch: no credentials", nil)
		return []client.Ref{}, ErrNoCredentials
	}

	var resp clientsResponse
	if err := api.Get(ctx, s.basePath+"/clients", nil, &resp); err != nil {
		s.unauthorized(ctx, err)
		return []client.Ref{}, fmt.Errorf("failed to load clients: %w", err)
	}
	return client.NormalizeRefs(resp.Clients), nil
}

func (s *Store) projectPath(id string) string {
	return s.basePath + "/" + url.PathEscape(id)
}

// readFailed records a failed read of cached state.
func (s *Store) readFailed(ctx context.Context, message string, err error) {
	s.logger.Error(ctx, message, map[string]interface{}{
		"error": err.Error(),
	})
	s.setErr(err)
	s.sink.Notify(message+": "+describe(err), notify.SeverityError)
	s.unauthorized(ctx, err)
}

// lookupFailed reports a failed side lookup. The 401 hook already ran in the
// List variant.
func (s *Store) lookupFailed(ctx context.Context, message string, err error) {
	if inner := errors.Unwrap(err); inner != nil {
		err = inner
	}
	s.logger.Error(ctx, message, map[string]interface{}{
		"error": err.Error(),
	})
	s.sink.Notify(message+": "+describe(err), notify.SeverityError)
}
