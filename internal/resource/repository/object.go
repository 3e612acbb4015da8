package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"

	"github.com/gogotex/modelgate/internal/resource"
	"github.com/gogotex/modelgate/internal/storage"
)

// ObjectStore is the subset of storage.MinIOStorage used by ObjectRepo.
type ObjectStore interface {
	Put(ctx context.Context, key string, data []byte, contentType string) error
	Get(ctx context.Context, key string) ([]byte, error)
	Exists(ctx context.Context, key string) (bool, error)
	FirstKey(ctx context.Context, prefix string) (string, error)
}

var _ ObjectStore = (*storage.MinIOStorage)(nil)

// ObjectRepo stores each document as a JSON object named
// <collection>/<modelId>/<objectId>.json. Object ids are time ordered hex,
// so the first key under a modelId prefix is the earliest insert.
type ObjectRepo[T any, P resource.Ptr[T]] struct {
	store      ObjectStore
	collection string
}

func NewObjectRepo[T any, P resource.Ptr[T]](store ObjectStore, collection string) *ObjectRepo[T, P] {
	return &ObjectRepo[T, P]{store: store, collection: collection}
}

func (o *ObjectRepo[T, P]) prefix(modelID string) string {
	return o.collection + "/" + url.PathEscape(modelID) + "/"
}

func (o *ObjectRepo[T, P]) Create(ctx context.Context, doc *T) error {
	p := P(doc)
	if p.ObjectID().IsZero() {
		return fmt.Errorf("object repo: document has no id")
	}
	key := o.prefix(p.ModelKey()) + p.ObjectID().Hex() + ".json"
	// Put overwrites, so an existing key must be refused here
	exists, err := o.store.Exists(ctx, key)
	if err != nil {
		return err
	}
	if exists {
		return ErrDuplicate
	}
	b, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode %s: %w", o.collection, err)
	}
	return o.store.Put(ctx, key, b, "application/json")
}

func (o *ObjectRepo[T, P]) FindByModelID(ctx context.Context, modelID string) (*T, error) {
	key, err := o.store.FirstKey(ctx, o.prefix(modelID))
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	b, err := o.store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	var d T
	if err := json.Unmarshal(b, &d); err != nil {
		return nil, fmt.Errorf("decode %s: %w", key, err)
	}
	return &d, nil
}
