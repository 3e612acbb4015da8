package repository

import (
	"context"
	"sync"

	"github.com/gogotex/modelgate/internal/resource"
)

// MemoryRepo keeps documents in insertion order. Used by unit tests and by
// STORAGE_BACKEND=memory.
type MemoryRepo[T any, P resource.Ptr[T]] struct {
	mu   sync.RWMutex
	docs []*T
}

func NewMemoryRepo[T any, P resource.Ptr[T]]() *MemoryRepo[T, P] {
	return &MemoryRepo[T, P]{}
}

func (m *MemoryRepo[T, P]) Create(ctx context.Context, doc *T) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	id := P(doc).ObjectID()
	m.mu.Lock()
	defer m.mu.Unlock()
	if !id.IsZero() {
		for _, d := range m.docs {
			if P(d).ObjectID() == id {
				return ErrDuplicate
			}
		}
	}
	cp := *doc
	m.docs = append(m.docs, &cp)
	return nil
}

func (m *MemoryRepo[T, P]) FindByModelID(ctx context.Context, modelID string) (*T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, d := range m.docs {
		if P(d).ModelKey() == modelID {
			cp := *d
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

// Len reports how many documents are stored, duplicates included.
func (m *MemoryRepo[T, P]) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.docs)
}
