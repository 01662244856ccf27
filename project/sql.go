package project

import (
	"context"
	"errors"

	"github.com/hairizuanbinnoorazman/bizadmin/logger"
	"gorm.io/gorm"
)

// SQLStore implements the Store interface using GORM. It runs on MySQL in
// deployments and on SQLite for the sandbox and tests.
type SQLStore struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewSQLStore creates a new GORM-backed project store.
func NewSQLStore(db *gorm.DB, log logger.Logger) *SQLStore {
	return &SQLStore{
		db:     db,
		logger: log,
	}
}

// Create creates a new project in the database. An empty status becomes Pending.
func (s *SQLStore) Create(ctx context.Context, project *Project) error {
	if project.Status == "" {
		project.Status = StatusPending
	}
	if err := project.Validate(); err != nil {
		return err
	}
	project.IsActive = true

	if err := s.db.WithContext(ctx).Create(project).Error; err != nil {
		s.logger.Error(ctx, "failed to create project", map[string]interface{}{
			"error":        err.Error(),
			"project_name": project.ProjectName,
			"client_id":    project.ClientID,
		})
		return err
	}

	s.logger.Info(ctx, "project created", map[string]interface{}{
		"project_id": project.ID,
		"client_id":  project.ClientID,
	})

	return nil
}

// GetByID retrieves a project by its ID.
func (s *SQLStore) GetByID(ctx context.Context, id string) (*Project, error) {
	var project Project
	err := s.db.WithContext(ctx).
		Where("id = ? AND is_active = ?", id, true).
		First(&project).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		s.logger.Error(ctx, "failed to get project by ID", map[string]interface{}{
			"error":      err.Error(),
			"project_id": id,
		})
		return nil, err
	}

	return &project, nil
}

// Update updates a project with the given setters.
func (s *SQLStore) Update(ctx context.Context, id string, setters ...UpdateSetter) error {
	project, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	for _, setter := range setters {
		if err := setter(project); err != nil {
			return err
		}
	}

	if err := s.db.WithContext(ctx).Save(project).Error; err != nil {
		s.logger.Error(ctx, "failed to update project", map[string]interface{}{
			"error":      err.Error(),
			"project_id": id,
		})
		return err
	}

	s.logger.Info(ctx, "project updated", map[string]interface{}{
		"project_id": id,
		"status":     string(project.Status),
	})

	return nil
}

// Delete soft deletes a project by setting is_active to false.
func (s *SQLStore) Delete(ctx context.Context, id string) error {
	result := s.db.WithContext(ctx).
		Model(&Project{}).
		Where("id = ? AND is_active = ?", id, true).
		Update("is_active", false)

	if result.Error != nil {
		s.logger.Error(ctx, "failed to delete project", map[string]interface{}{
			"error":      result.Error.Error(),
			"project_id": id,
		})
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrProjectNotFound
	}

	s.logger.Info(ctx, "project deleted", map[string]interface{}{
		"project_id": id,
	})

	return nil
}

// List retrieves active projects matching filters. Status and client are
// pushed down to SQL; the search term goes through Filter so the server
// and the client agree on what matches.
func (s *SQLStore) List(ctx context.Context, filters Filters) ([]Project, error) {
	query := s.db.WithContext(ctx).Where("is_active = ?", true)
	if filters.Status != "" {
		query = query.Where("status = ?", filters.Status)
	}
	if filters.ClientID != 0 {
		query = query.Where("client_id = ?", filters.ClientID)
	}

	projects := []Project{}
	if err := query.Order("created_at DESC").Find(&projects).Error; err != nil {
		s.logger.Error(ctx, "failed to list projects", map[string]interface{}{
			"error":     err.Error(),
			"status":    string(filters.Status),
			"client_id": filters.ClientID,
		})
		return nil, err
	}

	if filters.IsZero() {
		return projects, nil
	}
	return Filter(projects, filters), nil
}

// Stats counts active projects by status.
func (s *SQLStore) Stats(ctx context.Context) (Stats, error) {
	var rows []struct {
		Status Status
		Count  int
	}
	err := s.db.WithContext(ctx).
		Model(&Project{}).
		Select("status, COUNT(*) AS count").
		Where("is_active = ?", true).
		Group("status").
		Scan(&rows).Error

	if err != nil {
		s.logger.Error(ctx, "failed to count projects", map[string]interface{}{
			"error": err.Error(),
		})
		return Stats{}, err
	}

	var stats Stats
	for _, r := range rows {
		stats.Total += r.Count
		switch r.Status {
		case StatusCompleted:
			stats.Completed = r.Count
		case StatusPending:
			stats.Pending = r.Count
		case StatusInProgress:
			stats.InProgress = r.Count
		}
	}
	return stats, nil
}
