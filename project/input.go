package project

import (
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/hairizuanbinnoorazman/bizadmin/client"
)

const maxProjectNameLength = 255

// CreateInput is what a caller hands over to create a project. ClientID may be
// an int or a decimal string (as it arrives from a form or a flag); Normalize
// coerces it.
type CreateInput struct {
	ClientID    interface{}
	ProjectName string
	Description string
	Status      Status
}

// CreateRequest is the wire body for POST on the collection.
type CreateRequest struct {
	ClientID    int    `json:"clientId"`
	ProjectName string `json:"projectName"`
	Description string `json:"description"`
	Status      Status `json:"status"`
}

// Normalize coerces the client id to a number and defaults the status to Pending.
func (in CreateInput) Normalize() (CreateRequest, error) {
	clientID, err := client.ParseID(in.ClientID)
	if err != nil {
		return CreateRequest{}, fmt.Errorf("%w: %v", ErrInvalidClient, err)
	}
	status := in.Status
	if status == "" {
		status = StatusPending
	}
	return CreateRequest{
		ClientID:    clientID,
		ProjectName: strings.TrimSpace(in.ProjectName),
		Description: in.Description,
		Status:      status,
	}, nil
}

// Validate checks the request body.
func (r CreateRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ClientID, validation.Required, validation.Min(1)),
		validation.Field(&r.ProjectName, validation.Required, validation.Length(1, maxProjectNameLength)),
		validation.Field(&r.Status, validation.In(StatusPending, StatusInProgress, StatusCompleted)),
	)
}

// UpdateInput carries the fields of an update. Nil fields are left unchanged.
type UpdateInput struct {
	ClientID    *int    `json:"clientId,omitempty"`
	ProjectName *string `json:"projectName,omitempty"`
	Description *string `json:"description,omitempty"`
	Status      *Status `json:"status,omitempty"`
}

// IsEmpty reports whether no field is set.
func (in UpdateInput) IsEmpty() bool {
	return in.ClientID == nil && in.ProjectName == nil && in.Description == nil && in.Status == nil
}

// Validate checks the fields that are set.
func (in UpdateInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.ClientID, validation.NilOrNotEmpty, validation.Min(1)),
		validation.Field(&in.ProjectName, validation.NilOrNotEmpty, validation.Length(1, maxProjectNameLength)),
		validation.Field(&in.Status, validation.NilOrNotEmpty, validation.In(StatusPending, StatusInProgress, StatusCompleted)),
	)
}

// Setters converts the set fields into store setters.
func (in UpdateInput) Setters() []UpdateSetter {
	var setters []UpdateSetter
	if in.ClientID != nil {
		setters = append(setters, SetClientID(*in.ClientID))
	}
	if in.ProjectName != nil {
		setters = append(setters, SetProjectName(*in.ProjectName))
	}
	if in.Description != nil {
		setters = append(setters, SetDescription(*in.Description))
	}
	if in.Status != nil {
		setters = append(setters, SetStatus(*in.Status))
	}
	return setters
}

// StatusRequest is the wire body for the status-only PATCH.
type StatusRequest struct {
	Status Status `json:"status"`
}

// Validate checks the request body.
func (r StatusRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Status, validation.Required, validation.In(StatusPending, StatusInProgress, StatusCompleted)),
	)
}
