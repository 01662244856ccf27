package project

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	// ErrProjectNotFound is returned when a project is not found.
	ErrProjectNotFound = errors.New("project not found")

	// ErrInvalidProjectName is returned when a project name is empty.
	ErrInvalidProjectName = errors.New("project name is required")

	// ErrInvalidClient is returned when client_id is not set.
	ErrInvalidClient = errors.New("client_id is required")

	// ErrInvalidStatus is returned for a status outside Pending, In Progress and Completed.
	ErrInvalidStatus = errors.New("invalid status: must be Pending, In Progress or Completed")
)

// Status is the lifecycle state of a project.
type Status string

const (
	StatusPending    Status = "Pending"
	StatusInProgress Status = "In Progress"
	StatusCompleted  Status = "Completed"
)

// Statuses lists every valid status in display order.
var Statuses = []Status{StatusPending, StatusInProgress, StatusCompleted}

// IsValid reports whether s is one of the known statuses.
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

// ParseStatus converts user input into a Status. Matching ignores case, and
// "in_progress" / "inprogress" are accepted for In Progress.
func ParseStatus(s string) (Status, error) {
	switch normalizeStatus(s) {
	case "pending":
		return StatusPending, nil
	case "inprogress":
		return StatusInProgress, nil
	case "completed":
		return StatusCompleted, nil
	}
	return "", ErrInvalidStatus
}

func normalizeStatus(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == ' ' || c == '_' || c == '-':
			continue
		case c >= 'A' && c <= 'Z':
			out = append(out, c+('a'-'A'))
		default:
			out = append(out, c)
		}
	}
	return string(out)
}

// Project is a client engagement tracked by the platform.
type Project struct {
	ID          string    `json:"id" gorm:"type:char(36);primaryKey"`
	ClientID    int       `json:"clientId" gorm:"not null;index:idx_projects_client_id"`
	ProjectName string    `json:"projectName" gorm:"not null"`
	Description string    `json:"description" gorm:"type:text"`
	Status      Status    `json:"status" gorm:"type:varchar(20);not null;default:Pending;index:idx_projects_status"`
	IsActive    bool      `json:"-" gorm:"not null;default:true"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// TableName returns the database table name.
func (Project) TableName() string {
	return "projects"
}

// BeforeCreate assigns a UUID when the caller did not.
func (p *Project) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// Validate checks if the project has valid required fields.
func (p *Project) Validate() error {
	if p.ProjectName == "" {
		return ErrInvalidProjectName
	}
	if p.ClientID <= 0 {
		return ErrInvalidClient
	}
	if !p.Status.IsValid() {
		return ErrInvalidStatus
	}
	return nil
}
