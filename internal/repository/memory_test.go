package repository

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/Shivanand-hulikatti/eventos/internal/model"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryEventRepository_Contract(t *testing.T) {
	runContract(t, NewMemoryEventRepository(), uuid.NewString())
}

func TestMemoryEventRepository_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryEventRepository()

	created, err := repo.Create(ctx, model.Event{
		Title:       "Palestra",
		Description: strPtr("IA"),
		Date:        time.Now(),
		Location:    "Sala 202",
	})
	require.NoError(t, err)

	*created.Description = "mutated"
	created.Title = "mutated"

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Palestra", got.Title)
	assert.Equal(t, "IA", *got.Description)
}

func TestMemoryEventRepository_ConcurrentCreates(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryEventRepository()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.Create(ctx, model.Event{Title: "t", Date: time.Now(), Location: "l"})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	events, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, events, 50)
}
