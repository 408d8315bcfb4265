package store

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	seaterrors "github.com/tablewright/seatplan/pkg/errors"
)

const plansCollection = "plans"

// MongoStore is a MongoDB-backed plan store for server deployments where
// multiple instances share saved plans.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// NewMongoStore connects to MongoDB and returns a store over the plans
// collection of the given database. The connection is verified before
// returning.
func NewMongoStore(ctx context.Context, uri, database string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	return &MongoStore{
		client: client,
		coll:   client.Database(database).Collection(plansCollection),
	}, nil
}

// Get returns the saved plan with the given name, or nil when none exists.
func (s *MongoStore) Get(ctx context.Context, name string) (*Record, error) {
	if err := seaterrors.ValidatePlanName(name); err != nil {
		return nil, err
	}
	var rec Record
	err := s.coll.FindOne(ctx, bson.M{"_id": name}).Decode(&rec)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, seaterrors.Wrap(seaterrors.ErrCodeStorage, err, "load plan %s", name)
	}
	return &rec, nil
}

// Set saves a record, replacing any existing record of the same name.
func (s *MongoStore) Set(ctx context.Context, rec *Record) error {
	if err := seaterrors.ValidatePlanName(rec.Name); err != nil {
		return err
	}
	_, err := s.coll.ReplaceOne(ctx, bson.M{"_id": rec.Name}, rec,
		options.Replace().SetUpsert(true))
	if err != nil {
		return seaterrors.Wrap(seaterrors.ErrCodeStorage, err, "save plan %s", rec.Name)
	}
	return nil
}

// Delete removes a saved plan. Deleting an absent name is not an error.
func (s *MongoStore) Delete(ctx context.Context, name string) error {
	if err := seaterrors.ValidatePlanName(name); err != nil {
		return err
	}
	if _, err := s.coll.DeleteOne(ctx, bson.M{"_id": name}); err != nil {
		return seaterrors.Wrap(seaterrors.ErrCodeStorage, err, "delete plan %s", name)
	}
	return nil
}

// List returns the saved plan names in lexical order.
func (s *MongoStore) List(ctx context.Context) ([]string, error) {
	cursor, err := s.coll.Find(ctx, bson.D{},
		options.Find().SetProjection(bson.M{"_id": 1}).SetSort(bson.M{"_id": 1}))
	if err != nil {
		return nil, seaterrors.Wrap(seaterrors.ErrCodeStorage, err, "list plans")
	}
	defer cursor.Close(ctx)

	var names []string
	for cursor.Next(ctx) {
		var doc struct {
			Name string `bson:"_id"`
		}
		if err := cursor.Decode(&doc); err != nil {
			return nil, seaterrors.Wrap(seaterrors.ErrCodeStorage, err, "decode plan name")
		}
		names = append(names, doc.Name)
	}
	if err := cursor.Err(); err != nil {
		return nil, seaterrors.Wrap(seaterrors.ErrCodeStorage, err, "list plans")
	}
	return names, nil
}

// Close disconnects from MongoDB.
func (s *MongoStore) Close() error {
	return s.client.Disconnect(context.Background())
}

var _ Store = (*MongoStore)(nil)
