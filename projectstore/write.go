package projectstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/hairizuanbinnoorazman/bizadmin/apiclient"
	"github.com/hairizuanbinnoorazman/bizadmin/notify"
	"github.com/hairizuanbinnoorazman/bizadmin/project"
)

// CreateProject creates a project, then resyncs. The client id may arrive as
// a number or a numeric string; an empty status becomes Pending.
func (s *Store) CreateProject(ctx context.Context, in project.CreateInput) error {
	return s.mutate(ctx, "create project", "Project created successfully", func(api *apiclient.Client) error {
		req, err := in.Normalize()
		if err != nil {
			return err
		}
		return api.Post(ctx, s.basePath, req, nil)
	})
}

// UpdateProject sends the set fields of in for project id, then resyncs.
func (s *Store) UpdateProject(ctx context.Context, id string, in project.UpdateInput) error {
	if id == "" {
		return s.missingID("update project")
	}
	return s.mutate(ctx, "update project", "Project updated successfully", func(api *apiclient.Client) error {
		return api.Put(ctx, s.projectPath(id), in, nil)
	})
}

// UpdateProjectStatus changes only the status of project id, then resyncs.
func (s *Store) UpdateProjectStatus(ctx context.Context, id string, status project.Status) error {
	if id == "" {
		return s.missingID("update project status")
	}
	return s.mutate(ctx, "update project status", "Project status updated", func(api *apiclient.Client) error {
		return api.Patch(ctx, s.projectPath(id)+"/status", project.StatusRequest{Status: status}, nil)
	})
}

// DeleteProject deletes project id, then resyncs. On failure the cached
// collection is left as it was.
func (s *Store) DeleteProject(ctx context.Context, id string) error {
	if id == "" {
		return s.missingID("delete project")
	}
	return s.mutate(ctx, "delete project", "Project deleted successfully", func(api *apiclient.Client) error {
		return api.Delete(ctx, s.projectPath(id), nil)
	})
}

func (s *Store) mutate(ctx context.Context, action, success string, call func(api *apiclient.Client) error) error {
	api, ok := s.client()
	if !ok {
		s.logger.Debug(ctx, "skipping write: no credentials", map[string]interface{}{
			"action": action,
		})
		return ErrNoCredentials
	}

	if err := call(api); err != nil {
		s.logger.Error(ctx, "failed to "+action, map[string]interface{}{
			"error": err.Error(),
		})
		s.sink.Notify("Failed to "+action+": "+describe(err), notify.SeverityError)
		s.unauthorized(ctx, err)
		return fmt.Errorf("failed to %s: %w", action, err)
	}

	s.logger.Info(ctx, "resyncing projects", map[string]interface{}{
		"action": action,
	})
	s.Refresh(ctx)
	s.sink.Notify(success, notify.SeveritySuccess)
	return nil
}

func (s *Store) missingID(action string) error {
	s.sink.Notify("Failed to "+action+": "+ErrMissingID.Error(), notify.SeverityError)
	return ErrMissingID
}

func (s *Store) unauthorized(ctx context.Context, err error) {
	if s.onUnauthorized != nil && errors.Is(err, apiclient.ErrUnauthorized) {
		s.onUnauthorized(ctx, err)
	}
}

// describe returns the server's message for API errors and the error text
// otherwise.
func describe(err error) string {
	var apiErr *apiclient.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return err.Error()
}
