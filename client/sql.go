package client

import (
	"context"
	"errors"

	"github.com/hairizuanbinnoorazman/bizadmin/logger"
	"gorm.io/gorm"
)

// SQLStore implements the Store interface using GORM.
type SQLStore struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewSQLStore creates a new GORM-backed client store.
func NewSQLStore(db *gorm.DB, log logger.Logger) *SQLStore {
	return &SQLStore{
		db:     db,
		logger: log,
	}
}

// Create creates a new client in the database.
func (s *SQLStore) Create(ctx context.Context, client *Client) error {
	if err := client.Validate(); err != nil {
		return err
	}
	client.IsActive = true

	if err := s.db.WithContext(ctx).Create(client).Error; err != nil {
		s.logger.Error(ctx, "failed to create client", map[string]interface{}{
			"error":       err.Error(),
			"client_name": client.ClientName,
		})
		return err
	}

	s.logger.Info(ctx, "client created", map[string]interface{}{
		"client_id": client.ID,
	})
	return nil
}

// GetByID retrieves a client by its ID.
func (s *SQLStore) GetByID(ctx context.Context, id int) (*Client, error) {
	var client Client
	err := s.db.WithContext(ctx).
		Where("id = ? AND is_active = ?", id, true).
		First(&client).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClientNotFound
		}
		s.logger.Error(ctx, "failed to get client by ID", map[string]interface{}{
			"error":     err.Error(),
			"client_id": id,
		})
		return nil, err
	}

	return &client, nil
}

// List retrieves all active clients.
func (s *SQLStore) List(ctx context.Context) ([]Client, error) {
	var clients []Client
	err := s.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("client_name ASC").
		Find(&clients).Error

	if err != nil {
		s.logger.Error(ctx, "failed to list clients", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, err
	}

	return clients, nil
}
