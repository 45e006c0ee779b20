package repository

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/Shivanand-hulikatti/eventos/internal/config"
	"github.com/Shivanand-hulikatti/eventos/internal/database"
	"github.com/Shivanand-hulikatti/eventos/internal/model"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func setupMongo(t *testing.T) *mongo.Collection {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping mongo integration test in short mode")
	}
	if os.Getenv("SKIP_CONTAINER_TESTS") != "" {
		t.Skip("SKIP_CONTAINER_TESTS is set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	container, err := mongodb.Run(ctx, "mongo:7")
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = testcontainers.TerminateContainer(container)
	})

	uri, err := container.ConnectionString(ctx)
	require.NoError(t, err)

	client, coll, err := database.NewMongoCollection(ctx, config.MongoConfig{
		URI:        uri,
		Database:   "eventos",
		Collection: "events",
	}, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = client.Disconnect(context.Background())
	})

	return coll
}

func TestMongoEventRepository_Contract(t *testing.T) {
	coll := setupMongo(t)
	runContract(t, NewMongoEventRepository(coll), primitive.NewObjectID().Hex())
}

func TestMongoEventRepository_UnsetDescriptionRemovesField(t *testing.T) {
	coll := setupMongo(t)
	repo := NewMongoEventRepository(coll)
	ctx := context.Background()

	created, err := repo.Create(ctx, model.Event{
		Title:       "Palestra",
		Description: strPtr("Sobre Go"),
		Date:        time.Date(2023, 11, 20, 0, 0, 0, 0, time.UTC),
		Location:    "Sala 2",
	})
	require.NoError(t, err)

	_, err = repo.UpdateByID(ctx, created.ID, model.EventPatch{Description: model.Null[string]()})
	require.NoError(t, err)

	oid, err := parseObjectID(created.ID)
	require.NoError(t, err)
	var raw bson.M
	require.NoError(t, coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&raw))
	assert.NotContains(t, raw, "descricao")
	assert.Equal(t, "Palestra", raw["titulo"])
}

func TestParseObjectID(t *testing.T) {
	oid := primitive.NewObjectID()

	got, err := parseObjectID(oid.Hex())
	require.NoError(t, err)
	assert.Equal(t, oid, got)

	for _, bad := range []string{"", "3", "123", "zzzzzzzzzzzzzzzzzzzzzzzz"} {
		_, err := parseObjectID(bad)
		assert.ErrorIs(t, err, ErrInvalidID, bad)
	}
}

func TestUpdateDocument(t *testing.T) {
	title := "Conferência Atualizada"
	date := time.Date(2023, 11, 16, 0, 0, 0, 0, time.UTC)

	update := updateDocument(model.EventPatch{
		Title:       &title,
		Date:        &date,
		Description: model.Null[string](),
	})

	assert.Equal(t, bson.M{"titulo": title, "data": date}, update["$set"])
	assert.Equal(t, bson.M{"descricao": ""}, update["$unset"])
}

func TestUpdateDocument_OnlyDescription(t *testing.T) {
	update := updateDocument(model.EventPatch{Description: model.Some("nova")})

	assert.Equal(t, bson.M{"descricao": "nova"}, update["$set"])
	_, hasUnset := update["$unset"]
	assert.False(t, hasUnset)
}

func TestEventDocument_ToModelHidesObjectID(t *testing.T) {
	oid := primitive.NewObjectID()
	e := eventDocument{ID: oid, Title: "t", Location: "l", Date: time.Now()}.toModel()
	assert.Equal(t, oid.Hex(), e.ID)
	assert.Equal(t, time.UTC, e.Date.Location())
}
