package repository

import (
	"context"
	"testing"
	"time"

	"github.com/Shivanand-hulikatti/eventos/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

// runContract exercises the behaviour every backend must share. absentID is a
// well-formed identifier that does not exist in the store.
func runContract(t *testing.T, repo EventRepository, absentID string) {
	t.Helper()
	ctx := context.Background()
	date := time.Date(2023, 11, 5, 0, 0, 0, 0, time.UTC)

	t.Run("empty list", func(t *testing.T) {
		events, err := repo.List(ctx)
		require.NoError(t, err)
		assert.NotNil(t, events)
		assert.Empty(t, events)
	})

	var seminar *model.Event
	t.Run("create assigns id", func(t *testing.T) {
		var err error
		seminar, err = repo.Create(ctx, model.Event{
			Title:       "Seminário",
			Description: strPtr("Seminário de Tecnologia"),
			Date:        date,
			Location:    "Sala 101",
		})
		require.NoError(t, err)
		assert.NotEmpty(t, seminar.ID)
		assert.Equal(t, "Seminário", seminar.Title)
		assert.True(t, date.Equal(seminar.Date))
	})
	require.NotNil(t, seminar)

	t.Run("list sorted by title", func(t *testing.T) {
		_, err := repo.Create(ctx, model.Event{Title: "Conferência", Date: date, Location: "Centro"})
		require.NoError(t, err)
		_, err = repo.Create(ctx, model.Event{Title: "Workshop", Date: date, Location: "Auditório"})
		require.NoError(t, err)

		events, err := repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, events, 3)
		assert.Equal(t, "Conferência", events[0].Title)
		assert.Equal(t, "Seminário", events[1].Title)
		assert.Equal(t, "Workshop", events[2].Title)
	})

	t.Run("get", func(t *testing.T) {
		got, err := repo.GetByID(ctx, seminar.ID)
		require.NoError(t, err)
		assert.Equal(t, seminar.ID, got.ID)
		require.NotNil(t, got.Description)
		assert.Equal(t, "Seminário de Tecnologia", *got.Description)

		_, err = repo.GetByID(ctx, absentID)
		assert.ErrorIs(t, err, ErrNotFound)

		_, err = repo.GetByID(ctx, "3")
		assert.ErrorIs(t, err, ErrInvalidID)
	})

	t.Run("partial update", func(t *testing.T) {
		got, err := repo.UpdateByID(ctx, seminar.ID, model.EventPatch{
			Description: model.Some("Nova descrição"),
		})
		require.NoError(t, err)
		assert.Equal(t, "Seminário", got.Title)
		assert.Equal(t, "Sala 101", got.Location)
		assert.True(t, date.Equal(got.Date))
		require.NotNil(t, got.Description)
		assert.Equal(t, "Nova descrição", *got.Description)

		newDate := date.Add(24 * time.Hour)
		got, err = repo.UpdateByID(ctx, seminar.ID, model.EventPatch{
			Date:        &newDate,
			Description: model.Null[string](),
		})
		require.NoError(t, err)
		assert.True(t, newDate.Equal(got.Date))
		assert.Nil(t, got.Description)

		got, err = repo.UpdateByID(ctx, seminar.ID, model.EventPatch{})
		require.NoError(t, err)
		assert.Equal(t, seminar.ID, got.ID)
		assert.Equal(t, "Seminário", got.Title)
		assert.Nil(t, got.Description)

		_, err = repo.UpdateByID(ctx, absentID, model.EventPatch{Title: strPtr("x")})
		assert.ErrorIs(t, err, ErrNotFound)

		_, err = repo.UpdateByID(ctx, absentID, model.EventPatch{})
		assert.ErrorIs(t, err, ErrNotFound)

		_, err = repo.UpdateByID(ctx, "123", model.EventPatch{Title: strPtr("x")})
		assert.ErrorIs(t, err, ErrInvalidID)
	})

	t.Run("delete", func(t *testing.T) {
		deleted, err := repo.DeleteByID(ctx, seminar.ID)
		require.NoError(t, err)
		assert.Equal(t, seminar.ID, deleted.ID)

		_, err = repo.GetByID(ctx, seminar.ID)
		assert.ErrorIs(t, err, ErrNotFound)

		_, err = repo.DeleteByID(ctx, seminar.ID)
		assert.ErrorIs(t, err, ErrNotFound)

		_, err = repo.DeleteByID(ctx, "3")
		assert.ErrorIs(t, err, ErrInvalidID)
	})

	t.Run("ping", func(t *testing.T) {
		assert.NoError(t, repo.Ping(ctx))
	})
}
