// Package repository implements persistence for events. Each backend owns its
// identifier format and reports malformed identifiers with ErrInvalidID.
package repository

import (
	"context"
	"errors"

	"github.com/Shivanand-hulikatti/eventos/internal/model"
)

// ErrNotFound is returned when a requested event does not exist.
var ErrNotFound = errors.New("not found")

// ErrInvalidID is returned when an identifier is not well-formed for the
// backend. It is a client input error, distinct from ErrNotFound.
var ErrInvalidID = errors.New("invalid id")

// EventRepository is the storage contract shared by every backend.
type EventRepository interface {
	// Create stores e and returns it with a newly assigned ID.
	Create(ctx context.Context, e model.Event) (*model.Event, error)

	// List returns every event ordered by title ascending.
	List(ctx context.Context) ([]model.Event, error)

	GetByID(ctx context.Context, id string) (*model.Event, error)

	// UpdateByID applies patch atomically and returns the updated event.
	UpdateByID(ctx context.Context, id string, patch model.EventPatch) (*model.Event, error)

	// DeleteByID removes the event and returns what was removed.
	DeleteByID(ctx context.Context, id string) (*model.Event, error)

	// Ping checks if the backing store is reachable.
	Ping(ctx context.Context) error
}
