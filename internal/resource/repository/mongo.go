package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/gogotex/modelgate/internal/resource"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoRepo implements Repository on a MongoDB collection. Documents are
// looked up by "modelId"; ties between duplicates are broken by _id, which
// orders by insertion time.
type MongoRepo[T any, P resource.Ptr[T]] struct {
	col *mongo.Collection
}

// NewMongoRepo ensures the modelId index exists. With unique set the index
// rejects a second document for the same modelId.
func NewMongoRepo[T any, P resource.Ptr[T]](ctx context.Context, col *mongo.Collection, unique bool) (*MongoRepo[T, P], error) {
	idx := mongo.IndexModel{
		Keys:    bson.D{{Key: "modelId", Value: 1}},
		Options: options.Index().SetUnique(unique),
	}
	if _, err := col.Indexes().CreateOne(ctx, idx); err != nil {
		return nil, fmt.Errorf("create modelId index on %s: %w", col.Name(), err)
	}
	return &MongoRepo[T, P]{col: col}, nil
}

func (m *MongoRepo[T, P]) Create(ctx context.Context, doc *T) error {
	if _, err := m.col.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("insert into %s: %w", m.col.Name(), err)
	}
	return nil
}

func (m *MongoRepo[T, P]) FindByModelID(ctx context.Context, modelID string) (*T, error) {
	var d T
	opts := options.FindOne().SetSort(bson.D{{Key: "_id", Value: 1}})
	err := m.col.FindOne(ctx, bson.M{"modelId": modelID}, opts).Decode(&d)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find in %s: %w", m.col.Name(), err)
	}
	return &d, nil
}
