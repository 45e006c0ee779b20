package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Shivanand-hulikatti/eventos/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const eventColumns = `id, titulo, descricao, data, local`

// PostgresEventRepository stores events in the events table using pgx
// directly (no ORM). IDs are UUIDs.
type PostgresEventRepository struct {
	db *pgxpool.Pool
}

// NewPostgresEventRepository constructs a PostgresEventRepository.
func NewPostgresEventRepository(db *pgxpool.Pool) *PostgresEventRepository {
	return &PostgresEventRepository{db: db}
}

func parseUUID(id string) (uuid.UUID, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %q is not a valid UUID", ErrInvalidID, id)
	}
	return parsed, nil
}

func scanEvent(row pgx.Row) (*model.Event, error) {
	var (
		e  model.Event
		id uuid.UUID
	)
	if err := row.Scan(&id, &e.Title, &e.Description, &e.Date, &e.Location); err != nil {
		return nil, err
	}
	e.ID = id.String()
	e.Date = e.Date.UTC()
	return &e, nil
}

// Create inserts a new event and returns it with a generated UUID.
func (r *PostgresEventRepository) Create(ctx context.Context, e model.Event) (*model.Event, error) {
	id := uuid.New()

	created, err := scanEvent(r.db.QueryRow(ctx,
		`INSERT INTO events (id, titulo, descricao, data, local)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING `+eventColumns,
		id, e.Title, e.Description, e.Date, e.Location,
	))
	if err != nil {
		return nil, fmt.Errorf("insert event: %w", err)
	}
	return created, nil
}

// List returns all events ordered by title. The C collation keeps the order
// byte-wise regardless of the database locale.
func (r *PostgresEventRepository) List(ctx context.Context) ([]model.Event, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+eventColumns+`
		 FROM events
		 ORDER BY titulo COLLATE "C" ASC, id ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	events := []model.Event{}
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		events = append(events, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return events, nil
}

// GetByID returns a single event or ErrNotFound.
func (r *PostgresEventRepository) GetByID(ctx context.Context, id string) (*model.Event, error) {
	uid, err := parseUUID(id)
	if err != nil {
		return nil, err
	}

	e, err := scanEvent(r.db.QueryRow(ctx,
		`SELECT `+eventColumns+` FROM events WHERE id = $1`,
		uid,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return e, nil
}

// UpdateByID applies the patch in a single UPDATE ... RETURNING statement.
// NULL parameters keep the stored column.
func (r *PostgresEventRepository) UpdateByID(ctx context.Context, id string, patch model.EventPatch) (*model.Event, error) {
	uid, err := parseUUID(id)
	if err != nil {
		return nil, err
	}

	e, err := scanEvent(r.db.QueryRow(ctx,
		`UPDATE events SET
		   titulo     = COALESCE($2::text, titulo),
		   descricao  = CASE WHEN $3::boolean THEN $4::text ELSE descricao END,
		   data       = COALESCE($5::timestamptz, data),
		   local      = COALESCE($6::text, local),
		   updated_at = now()
		 WHERE id = $1
		 RETURNING `+eventColumns,
		uid, patch.Title, patch.Description.Set, patch.Description.Ptr(), patch.Date, patch.Location,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update event: %w", err)
	}
	return e, nil
}

// DeleteByID removes the event and returns the deleted row.
func (r *PostgresEventRepository) DeleteByID(ctx context.Context, id string) (*model.Event, error) {
	uid, err := parseUUID(id)
	if err != nil {
		return nil, err
	}

	e, err := scanEvent(r.db.QueryRow(ctx,
		`DELETE FROM events WHERE id = $1 RETURNING `+eventColumns,
		uid,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("delete event: %w", err)
	}
	return e, nil
}

// Ping checks database connectivity.
func (r *PostgresEventRepository) Ping(ctx context.Context) error {
	return r.db.Ping(ctx)
}
