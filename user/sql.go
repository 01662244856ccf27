package user

import (
	"context"
	"errors"
	"strings"

	"github.com/hairizuanbinnoorazman/bizadmin/logger"
	"gorm.io/gorm"
)

// SQLStore implements the Store interface using GORM.
type SQLStore struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewSQLStore creates a new GORM-backed user store.
func NewSQLStore(db *gorm.DB, log logger.Logger) *SQLStore {
	return &SQLStore{
		db:     db,
		logger: log,
	}
}

// Create creates a new user in the database.
func (s *SQLStore) Create(ctx context.Context, user *User) error {
	if err := user.Validate(); err != nil {
		return err
	}
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	user.IsActive = true

	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		// Duplicate key surfaces differently on MySQL and SQLite
		if errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return ErrDuplicateEmail
		}
		s.logger.Error(ctx, "failed to create user", map[string]interface{}{
			"error": err.Error(),
			"email": user.Email,
		})
		return err
	}

	s.logger.Info(ctx, "user created", map[string]interface{}{
		"user_id": user.ID,
		"role":    string(user.Role),
	})

	return nil
}

// GetByID retrieves a user by ID.
func (s *SQLStore) GetByID(ctx context.Context, id string) (*User, error) {
	return s.first(ctx, "id = ? AND is_active = ?", id, true)
}

// GetByEmail retrieves a user by email address. Matching ignores case.
func (s *SQLStore) GetByEmail(ctx context.Context, email string) (*User, error) {
	return s.first(ctx, "email = ? AND is_active = ?", strings.ToLower(strings.TrimSpace(email)), true)
}

func (s *SQLStore) first(ctx context.Context, query string, args ...interface{}) (*User, error) {
	var user User
	err := s.db.WithContext(ctx).Where(query, args...).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error(ctx, "failed to get user", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, err
	}
	return &user, nil
}
