package repository

import (
	"context"
	"errors"
)

var (
	ErrNotFound  = errors.New("document not found")
	ErrDuplicate = errors.New("document already exists")
)

// Repository stores documents of one kind. FindByModelID returns the
// earliest-inserted document with the given modelId, or ErrNotFound.
type Repository[T any] interface {
	Create(ctx context.Context, doc *T) error
	FindByModelID(ctx context.Context, modelID string) (*T, error)
}
