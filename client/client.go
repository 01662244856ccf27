package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cast"
)

var (
	// ErrClientNotFound is returned when a client is not found.
	ErrClientNotFound = errors.New("client not found")

	// ErrInvalidClientName is returned when a client name is empty.
	ErrInvalidClientName = errors.New("client name is required")

	// ErrInvalidID is returned when a value is not a positive decimal client id.
	ErrInvalidID = errors.New("invalid client id")
)

// Client is a customer of the business. Projects reference it by ID.
type Client struct {
	ID         int       `json:"id" gorm:"primaryKey;autoIncrement"`
	ClientName string    `json:"clientName" gorm:"not null"`
	Email      string    `json:"email"`
	IsActive   bool      `json:"-" gorm:"not null;default:true"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// TableName returns the database table name.
func (Client) TableName() string {
	return "clients"
}

// Validate checks if the client has valid required fields.
func (c *Client) Validate() error {
	if strings.TrimSpace(c.ClientName) == "" {
		return ErrInvalidClientName
	}
	return nil
}

// ParseID coerces a loosely typed client id to an int. Strings are read as
// base-10 after trimming, so "010" is 10 and "0x1F" is rejected. Floats must be
// whole numbers. nil and values below 1 are rejected.
func ParseID(v interface{}) (int, error) {
	var (
		n   int
		err error
	)
	switch x := v.(type) {
	case nil:
		return 0, ErrInvalidID
	case string:
		n, err = strconv.Atoi(strings.TrimSpace(x))
	case json.Number:
		n, err = strconv.Atoi(strings.TrimSpace(x.String()))
	case float64:
		if x != math.Trunc(x) {
			return 0, fmt.Errorf("%w: %v", ErrInvalidID, x)
		}
		n, err = cast.ToIntE(x)
	case float32:
		if float64(x) != math.Trunc(float64(x)) {
			return 0, fmt.Errorf("%w: %v", ErrInvalidID, x)
		}
		n, err = cast.ToIntE(x)
	case bool:
		return 0, fmt.Errorf("%w: %v", ErrInvalidID, x)
	default:
		n, err = cast.ToIntE(x)
	}
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidID, v)
	}
	if n <= 0 {
		return 0, fmt.Errorf("%w: %d", ErrInvalidID, n)
	}
	return n, nil
}

// Ref is the uniform shape used to populate client pickers.
type Ref struct {
	ID       int    `json:"id"`
	ClientID int    `json:"clientId"`
	Name     string `json:"name"`
}

// DefaultName is the label used for a client the server sent without a name.
func DefaultName(id int) string {
	return fmt.Sprintf("Cliente %d", id)
}

// NormalizeRefs converts client entries whose field naming varies by endpoint
// ("id" or "clientId", "clientName" or "name") into Refs. Entries carrying no
// usable id are dropped.
func NormalizeRefs(raw []map[string]interface{}) []Ref {
	refs := make([]Ref, 0, len(raw))
	for _, entry := range raw {
		ref, ok := normalizeRef(entry)
		if ok {
			refs = append(refs, ref)
		}
	}
	return refs
}

func normalizeRef(entry map[string]interface{}) (Ref, bool) {
	id, hasID := intField(entry, "id")
	clientID, hasClientID := intField(entry, "clientId")

	switch {
	case hasID && !hasClientID:
		clientID = id
	case hasClientID && !hasID:
		id = clientID
	case !hasID && !hasClientID:
		return Ref{}, false
	}

	name := stringField(entry, "clientName")
	if name == "" {
		name = stringField(entry, "name")
	}
	if name == "" {
		name = DefaultName(id)
	}

	return Ref{ID: id, ClientID: clientID, Name: name}, true
}

func intField(entry map[string]interface{}, key string) (int, bool) {
	v, ok := entry[key]
	if !ok {
		return 0, false
	}
	n, err := ParseID(v)
	if err != nil {
		return 0, false
	}
	return n, true
}

func stringField(entry map[string]interface{}, key string) string {
	v, ok := entry[key]
	if !ok || v == nil {
		return ""
	}
	return strings.TrimSpace(cast.ToString(v))
}
