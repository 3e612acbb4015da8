package repository

import (
	"context"
	"testing"
	"time"

	"github.com/gogotex/modelgate/internal/resource"
	"github.com/stretchr/testify/require"
)

func TestMemoryRepo_CreateFind(t *testing.T) {
	r := NewMemoryRepo[resource.Asset]()
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	a := &resource.Asset{ModelID: "m1", Prices: map[string]float64{"S": 10}}
	a.Prepare(now)
	require.NoError(t, r.Create(ctx, a))

	got, err := r.FindByModelID(ctx, "m1")
	require.NoError(t, err)
	require.Equal(t, a.ID, got.ID)
	require.Equal(t, 10.0, got.Prices["S"])

	_, err = r.FindByModelID(ctx, "missing")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryRepo_FirstMatchWinsOnDuplicateModelID(t *testing.T) {
	r := NewMemoryRepo[resource.Config]()
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	first := &resource.Config{ModelID: "m1", DefaultState: resource.DefaultState{CurrentColor: "red"}}
	first.Prepare(now)
	second := &resource.Config{ModelID: "m1", DefaultState: resource.DefaultState{CurrentColor: "blue"}}
	second.Prepare(now.Add(time.Second))

	require.NoError(t, r.Create(ctx, first))
	require.NoError(t, r.Create(ctx, second))
	require.Equal(t, 2, r.Len())

	got, err := r.FindByModelID(ctx, "m1")
	require.NoError(t, err)
	require.Equal(t, "red", got.DefaultState.CurrentColor)
	require.Equal(t, first.ID, got.ID)
}

func TestMemoryRepo_RejectsDuplicateObjectID(t *testing.T) {
	r := NewMemoryRepo[resource.Asset]()
	ctx := context.Background()
	a := &resource.Asset{ModelID: "m1"}
	a.Prepare(time.Now())
	require.NoError(t, r.Create(ctx, a))

	b := &resource.Asset{ID: a.ID, ModelID: "m2"}
	require.ErrorIs(t, r.Create(ctx, b), ErrDuplicate)
}

func TestMemoryRepo_ReturnsCopies(t *testing.T) {
	r := NewMemoryRepo[resource.Config]()
	ctx := context.Background()
	c := &resource.Config{ModelID: "m1"}
	c.Prepare(time.Now())
	require.NoError(t, r.Create(ctx, c))

	c.ModelID = "changed"
	got, err := r.FindByModelID(ctx, "m1")
	require.NoError(t, err)
	got.DefaultState.CurrentSize = "XL"

	again, err := r.FindByModelID(ctx, "m1")
	require.NoError(t, err)
	require.Empty(t, again.DefaultState.CurrentSize)
}

func TestMemoryRepo_HonoursCancelledContext(t *testing.T) {
	r := NewMemoryRepo[resource.Asset]()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.ErrorIs(t, r.Create(ctx, &resource.Asset{ModelID: "m"}), context.Canceled)
	_, err := r.FindByModelID(ctx, "m")
	require.ErrorIs(t, err, context.Canceled)
}
