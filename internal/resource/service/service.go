package service

import (
	"context"
	"fmt"
	"time"

	"github.com/gogotex/modelgate/internal/resource"
	"github.com/gogotex/modelgate/internal/resource/repository"
)

// DefaultTimeout bounds a storage round trip when no timeout is configured.
const DefaultTimeout = 5 * time.Second

// Service defines the resource operations used by the handler layer.
type Service[T any] interface {
	// Get returns the first document stored for modelID, or repository.ErrNotFound.
	Get(ctx context.Context, modelID string) (*T, error)
	// Create stores doc, filling in its id and createdAt when absent.
	Create(ctx context.Context, doc *T) (*T, error)
}

// Option customises a service.
type Option func(*options)

type options struct {
	timeout time.Duration
	now     func() time.Time
}

// WithTimeout bounds every repository call.
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.timeout = d
		}
	}
}

// WithClock replaces the wall clock used to stamp new documents.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// New returns a Service on top of repo.
func New[T any, P resource.Ptr[T]](repo repository.Repository[T], opts ...Option) Service[T] {
	o := options{timeout: DefaultTimeout, now: time.Now}
	for _, fn := range opts {
		fn(&o)
	}
	return &store[T, P]{repo: repo, opts: o}
}

// NewMemoryService returns a Service backed by the in-memory repository.
func NewMemoryService[T any, P resource.Ptr[T]](opts ...Option) Service[T] {
	return New[T, P](repository.NewMemoryRepo[T, P](), opts...)
}

type store[T any, P resource.Ptr[T]] struct {
	repo repository.Repository[T]
	opts options
}

func (s *store[T, P]) Get(ctx context.Context, modelID string) (*T, error) {
	ctx, cancel := context.WithTimeout(ctx, s.opts.timeout)
	defer cancel()
	d, err := s.repo.FindByModelID(ctx, modelID)
	if err != nil {
		return nil, s.wrap(ctx, err)
	}
	return d, nil
}

func (s *store[T, P]) Create(ctx context.Context, doc *T) (*T, error) {
	P(doc).Prepare(s.opts.now())
	ctx, cancel := context.WithTimeout(ctx, s.opts.timeout)
	defer cancel()
	if err := s.repo.Create(ctx, doc); err != nil {
		return nil, s.wrap(ctx, err)
	}
	return doc, nil
}

func (s *store[T, P]) wrap(ctx context.Context, err error) error {
	if ctx.Err() == context.DeadlineExceeded {
		return fmt.Errorf("storage did not answer within %s: %w", s.opts.timeout, err)
	}
	return err
}
