package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/Shivanand-hulikatti/eventos/internal/model"
	"github.com/google/uuid"
)

// MemoryEventRepository keeps events in a process-local map. IDs are UUIDs so
// malformed-id behaviour matches the PostgreSQL backend.
type MemoryEventRepository struct {
	mu     sync.RWMutex
	events map[uuid.UUID]model.Event
}

// NewMemoryEventRepository constructs an empty MemoryEventRepository.
func NewMemoryEventRepository() *MemoryEventRepository {
	return &MemoryEventRepository{events: make(map[uuid.UUID]model.Event)}
}

func cloneEvent(e model.Event) *model.Event {
	if e.Description != nil {
		d := *e.Description
		e.Description = &d
	}
	return &e
}

// Create stores a copy of e under a new UUID.
func (r *MemoryEventRepository) Create(_ context.Context, e model.Event) (*model.Event, error) {
	id := uuid.New()
	e.ID = id.String()
	e.Date = e.Date.UTC()

	r.mu.Lock()
	r.events[id] = *cloneEvent(e)
	r.mu.Unlock()

	return cloneEvent(e), nil
}

// List returns copies of all events ordered by title, then id.
func (r *MemoryEventRepository) List(_ context.Context) ([]model.Event, error) {
	r.mu.RLock()
	events := make([]model.Event, 0, len(r.events))
	for _, e := range r.events {
		events = append(events, *cloneEvent(e))
	}
	r.mu.RUnlock()

	sort.SliceStable(events, func(i, j int) bool {
		if events[i].Title != events[j].Title {
			return events[i].Title < events[j].Title
		}
		return events[i].ID < events[j].ID
	})
	return events, nil
}

// GetByID returns a copy of the event with the given id.
func (r *MemoryEventRepository) GetByID(_ context.Context, id string) (*model.Event, error) {
	uid, err := parseUUID(id)
	if err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.events[uid]
	if !ok {
		return nil, ErrNotFound
	}
	return cloneEvent(e), nil
}

// UpdateByID applies patch to the stored event and returns the result.
func (r *MemoryEventRepository) UpdateByID(_ context.Context, id string, patch model.EventPatch) (*model.Event, error) {
	uid, err := parseUUID(id)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.events[uid]
	if !ok {
		return nil, ErrNotFound
	}
	updated := patch.Apply(e)
	updated.Date = updated.Date.UTC()
	r.events[uid] = *cloneEvent(updated)
	return cloneEvent(updated), nil
}

// DeleteByID removes the event and returns it.
func (r *MemoryEventRepository) DeleteByID(_ context.Context, id string) (*model.Event, error) {
	uid, err := parseUUID(id)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.events[uid]
	if !ok {
		return nil, ErrNotFound
	}
	delete(r.events, uid)
	return cloneEvent(e), nil
}

// Ping always succeeds.
func (r *MemoryEventRepository) Ping(_ context.Context) error {
	return nil
}
