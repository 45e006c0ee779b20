// Package service implements the event schema (trimming, required fields,
// date parsing) and orchestrates calls to the repository layer.
package service

import (
	"context"
	"errors"

	"github.com/Shivanand-hulikatti/eventos/internal/model"
	"github.com/Shivanand-hulikatti/eventos/internal/repository"
	"github.com/rs/zerolog"
)

// EventServicer is the contract the HTTP layer depends on.
type EventServicer interface {
	CreateEvent(ctx context.Context, req model.CreateEventRequest) (*model.Event, error)
	ListEvents(ctx context.Context) ([]model.Event, error)
	GetEvent(ctx context.Context, id string) (*model.Event, error)
	UpdateEvent(ctx context.Context, req model.UpdateEventRequest) (*model.Event, error)
	DeleteEvent(ctx context.Context, id string) (*model.Event, error)
	Ping(ctx context.Context) error
}

// EventService orchestrates event operations.
type EventService struct {
	events repository.EventRepository
	logger zerolog.Logger
}

// NewEventService constructs an EventService with its dependencies.
func NewEventService(events repository.EventRepository, logger zerolog.Logger) *EventService {
	return &EventService{
		events: events,
		logger: logger.With().Str("component", "events").Logger(),
	}
}

// CreateEvent validates the request and delegates to the repository.
func (s *EventService) CreateEvent(ctx context.Context, req model.CreateEventRequest) (*model.Event, error) {
	e, err := eventFromCreate(req)
	if err != nil {
		return nil, err
	}

	created, err := s.events.Create(ctx, e)
	if err != nil {
		return nil, s.storeError("create", err)
	}

	s.logger.Debug().Str("event_id", created.ID).Msg("event created")
	return created, nil
}

// ListEvents returns all events ordered by title.
func (s *EventService) ListEvents(ctx context.Context) ([]model.Event, error) {
	events, err := s.events.List(ctx)
	if err != nil {
		return nil, s.storeError("list", err)
	}
	if events == nil {
		events = []model.Event{}
	}
	return events, nil
}

// GetEvent returns a single event by ID.
func (s *EventService) GetEvent(ctx context.Context, id string) (*model.Event, error) {
	e, err := s.events.GetByID(ctx, id)
	if err != nil {
		return nil, s.classify("get", id, err)
	}
	return e, nil
}

// UpdateEvent applies the fields present in req to the stored event. The
// whole patch is validated before the store is touched.
func (s *EventService) UpdateEvent(ctx context.Context, req model.UpdateEventRequest) (*model.Event, error) {
	patch, err := patchFromUpdate(req)
	if err != nil {
		return nil, err
	}

	e, err := s.events.UpdateByID(ctx, req.ID, patch)
	if err != nil {
		return nil, s.classify("update", req.ID, err)
	}

	s.logger.Debug().Str("event_id", e.ID).Msg("event updated")
	return e, nil
}

// DeleteEvent removes an event and returns it.
func (s *EventService) DeleteEvent(ctx context.Context, id string) (*model.Event, error) {
	e, err := s.events.DeleteByID(ctx, id)
	if err != nil {
		return nil, s.classify("delete", id, err)
	}

	s.logger.Debug().Str("event_id", e.ID).Msg("event deleted")
	return e, nil
}

// Ping reports whether the store is reachable.
func (s *EventService) Ping(ctx context.Context) error {
	return s.events.Ping(ctx)
}

// classify surfaces domain errors directly so handlers can set the correct
// HTTP status, and wraps everything else as a StoreError.
func (s *EventService) classify(op, id string, err error) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return repository.ErrNotFound
	case errors.Is(err, repository.ErrInvalidID):
		return &InvalidIDError{ID: id, Err: err}
	default:
		return s.storeError(op, err)
	}
}

func (s *EventService) storeError(op string, err error) error {
	s.logger.Error().Err(err).Str("op", op).Msg("store operation failed")
	return &StoreError{Op: op, Err: err}
}
