// Package model defines the core domain types for the events service.
package model

import "time"

// Event is the single resource managed by the service.
//
// The JSON names follow the public contract of the API (titulo, descricao,
// data, local); storage keys and revision markers never appear here.
type Event struct {
	ID          string    `json:"id"`
	Title       string    `json:"titulo" validate:"required"`
	Description *string   `json:"descricao,omitempty"`
	Date        time.Time `json:"data" validate:"required"`
	Location    string    `json:"local" validate:"required"`
}

// CreateEventRequest is the payload for creating a new event.
type CreateEventRequest struct {
	Title       string  `json:"titulo"`
	Description *string `json:"descricao"`
	Date        string  `json:"data"`
	Location    string  `json:"local"`
}

// UpdateEventRequest is the payload for a partial update. Only fields present
// in the body are applied.
type UpdateEventRequest struct {
	ID          string           `json:"id"`
	Title       Optional[string] `json:"titulo"`
	Description Optional[string] `json:"descricao"`
	Date        Optional[string] `json:"data"`
	Location    Optional[string] `json:"local"`
}

// EventPatch is the validated, typed form of an update. Nil pointers leave the
// stored value untouched; Description distinguishes "clear" (Set with Null)
// from "leave alone" (not Set).
type EventPatch struct {
	Title       *string
	Description Optional[string]
	Date        *time.Time
	Location    *string
}

// IsEmpty reports whether the patch changes nothing.
func (p EventPatch) IsEmpty() bool {
	return p.Title == nil && !p.Description.Set && p.Date == nil && p.Location == nil
}

// Apply returns a copy of e with the patch applied.
func (p EventPatch) Apply(e Event) Event {
	if p.Title != nil {
		e.Title = *p.Title
	}
	if p.Description.Set {
		e.Description = p.Description.Ptr()
	}
	if p.Date != nil {
		e.Date = *p.Date
	}
	if p.Location != nil {
		e.Location = *p.Location
	}
	return e
}

// ErrorResponse is the JSON error envelope returned by every failing request.
type ErrorResponse struct {
	Message string `json:"message"`
}
