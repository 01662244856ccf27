package client

import "context"

// Store defines the interface for client persistence operations.
type Store interface {
	// Create creates a new client in the store.
	Create(ctx context.Context, client *Client) error

	// GetByID retrieves an active client by its ID.
	GetByID(ctx context.Context, id int) (*Client, error)

	// List retrieves all active clients ordered by name.
	List(ctx context.Context) ([]Client, error)
}
