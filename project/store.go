package project

import (
	"context"
)

// Store defines the interface for project persistence operations.
type Store interface {
	// Create creates a new project in the store.
	Create(ctx context.Context, project *Project) error

	// GetByID retrieves an active project by its ID.
	GetByID(ctx context.Context, id string) (*Project, error)

	// Update updates a project with the given setters.
	Update(ctx context.Context, id string, setters ...UpdateSetter) error

	// Delete soft deletes a project by setting is_active to false.
	Delete(ctx context.Context, id string) error

	// List retrieves the active projects matching filters, newest first.
	List(ctx context.Context, filters Filters) ([]Project, error)

	// Stats counts the active projects by status.
	Stats(ctx context.Context) (Stats, error)
}

// UpdateSetter is a function that updates a project field.
type UpdateSetter func(*Project) error
