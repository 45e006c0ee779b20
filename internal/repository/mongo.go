package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Shivanand-hulikatti/eventos/internal/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// eventDocument is the stored shape of an event. _id never leaves this file.
type eventDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Title       string             `bson:"titulo"`
	Description *string            `bson:"descricao,omitempty"`
	Date        time.Time          `bson:"data"`
	Location    string             `bson:"local"`
}

func (d eventDocument) toModel() *model.Event {
	return &model.Event{
		ID:          d.ID.Hex(),
		Title:       d.Title,
		Description: d.Description,
		Date:        d.Date.UTC(),
		Location:    d.Location,
	}
}

// MongoEventRepository stores events as documents in a MongoDB collection.
// IDs are 24-character hex ObjectIDs.
type MongoEventRepository struct {
	coll *mongo.Collection
}

// NewMongoEventRepository constructs a MongoEventRepository over coll.
func NewMongoEventRepository(coll *mongo.Collection) *MongoEventRepository {
	return &MongoEventRepository{coll: coll}
}

func parseObjectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %q is not a valid ObjectID", ErrInvalidID, id)
	}
	return oid, nil
}

// Create inserts e and returns it with its generated ObjectID.
func (r *MongoEventRepository) Create(ctx context.Context, e model.Event) (*model.Event, error) {
	doc := eventDocument{
		ID:          primitive.NewObjectID(),
		Title:       e.Title,
		Description: e.Description,
		Date:        e.Date.UTC(),
		Location:    e.Location,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert event: %w", err)
	}
	return doc.toModel(), nil
}

// List returns all events sorted by titulo, then _id.
func (r *MongoEventRepository) List(ctx context.Context) ([]model.Event, error) {
	opts := options.Find().SetSort(bson.D{{Key: "titulo", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := r.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}

	var docs []eventDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode events: %w", err)
	}

	events := make([]model.Event, 0, len(docs))
	for _, d := range docs {
		events = append(events, *d.toModel())
	}
	return events, nil
}

// GetByID returns the event with the given id.
func (r *MongoEventRepository) GetByID(ctx context.Context, id string) (*model.Event, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}

	var doc eventDocument
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return doc.toModel(), nil
}

// updateDocument translates a patch into $set / $unset operators.
func updateDocument(patch model.EventPatch) bson.M {
	set := bson.M{}
	unset := bson.M{}
	if patch.Title != nil {
		set["titulo"] = *patch.Title
	}
	if patch.Description.Set {
		if d := patch.Description.Ptr(); d != nil {
			set["descricao"] = *d
		} else {
			unset["descricao"] = ""
		}
	}
	if patch.Date != nil {
		set["data"] = patch.Date.UTC()
	}
	if patch.Location != nil {
		set["local"] = *patch.Location
	}

	update := bson.M{}
	if len(set) > 0 {
		update["$set"] = set
	}
	if len(unset) > 0 {
		update["$unset"] = unset
	}
	return update
}

// UpdateByID applies patch atomically and returns the updated event.
func (r *MongoEventRepository) UpdateByID(ctx context.Context, id string, patch model.EventPatch) (*model.Event, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}

	// MongoDB rejects an empty update document.
	if patch.IsEmpty() {
		return r.GetByID(ctx, id)
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc eventDocument
	err = r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, updateDocument(patch), opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update event: %w", err)
	}
	return doc.toModel(), nil
}

// DeleteByID removes the event and returns it.
func (r *MongoEventRepository) DeleteByID(ctx context.Context, id string) (*model.Event, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}

	var doc eventDocument
	if err := r.coll.FindOneAndDelete(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("delete event: %w", err)
	}
	return doc.toModel(), nil
}

// Ping checks the client connection.
func (r *MongoEventRepository) Ping(ctx context.Context) error {
	return r.coll.Database().Client().Ping(ctx, nil)
}
