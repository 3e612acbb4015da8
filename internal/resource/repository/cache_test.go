package repository

import (
	"context"
	"testing"
	"time"

	mr "github.com/alicebob/miniredis/v2"
	"github.com/gogotex/modelgate/internal/resource"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// countingRepo records how often the backing store is consulted.
type countingRepo struct {
	Repository[resource.Asset]
	finds int
}

func (c *countingRepo) FindByModelID(ctx context.Context, modelID string) (*resource.Asset, error) {
	c.finds++
	return c.Repository.FindByModelID(ctx, modelID)
}

func newCached(t *testing.T) (*mr.Miniredis, *countingRepo, *CachedRepo[resource.Asset]) {
	t.Helper()
	m, err := mr.Run()
	require.NoError(t, err)
	t.Cleanup(m.Close)

	client := redis.NewClient(&redis.Options{Addr: m.Addr()})
	inner := &countingRepo{Repository: NewMemoryRepo[resource.Asset]()}
	return m, inner, NewCachedRepo[resource.Asset](inner, client, "asset:", time.Minute)
}

func TestCachedRepo_ReadThrough(t *testing.T) {
	m, inner, repo := newCached(t)
	ctx := context.Background()

	a := &resource.Asset{
		ModelID:  "m1",
		Textures: map[string]string{"body": "https://cdn.example/body.png"},
		Prices:   map[string]float64{"M": 19.5},
	}
	a.Prepare(time.Date(2026, 4, 1, 10, 0, 0, 123456789, time.UTC))
	require.NoError(t, repo.Create(ctx, a))

	first, err := repo.FindByModelID(ctx, "m1")
	require.NoError(t, err)
	require.Equal(t, 1, inner.finds)
	require.True(t, m.Exists("asset:m1"))

	second, err := repo.FindByModelID(ctx, "m1")
	require.NoError(t, err)
	require.Equal(t, 1, inner.finds, "second read is served from cache")
	require.Equal(t, first.ID, second.ID)
	require.True(t, first.CreatedAt.Equal(second.CreatedAt))
	require.Equal(t, first.Textures, second.Textures)
	require.Equal(t, first.Prices, second.Prices)
}

func TestCachedRepo_MissesAreNotCached(t *testing.T) {
	m, inner, repo := newCached(t)
	ctx := context.Background()

	_, err := repo.FindByModelID(ctx, "later")
	require.ErrorIs(t, err, ErrNotFound)
	require.False(t, m.Exists("asset:later"))

	a := &resource.Asset{ModelID: "later"}
	a.Prepare(time.Now())
	require.NoError(t, repo.Create(ctx, a))

	got, err := repo.FindByModelID(ctx, "later")
	require.NoError(t, err)
	require.Equal(t, a.ID, got.ID)
	require.Equal(t, 2, inner.finds)
}

func TestCachedRepo_EntryExpires(t *testing.T) {
	m, inner, repo := newCached(t)
	ctx := context.Background()

	a := &resource.Asset{ModelID: "m1"}
	a.Prepare(time.Now())
	require.NoError(t, repo.Create(ctx, a))

	_, err := repo.FindByModelID(ctx, "m1")
	require.NoError(t, err)
	m.FastForward(2 * time.Minute)

	_, err = repo.FindByModelID(ctx, "m1")
	require.NoError(t, err)
	require.Equal(t, 2, inner.finds)
}

func TestCachedRepo_FallsBackWhenRedisDown(t *testing.T) {
	m, inner, repo := newCached(t)
	ctx := context.Background()

	a := &resource.Asset{ModelID: "m1"}
	a.Prepare(time.Now())
	require.NoError(t, repo.Create(ctx, a))
	m.Close()

	got, err := repo.FindByModelID(ctx, "m1")
	require.NoError(t, err)
	require.Equal(t, a.ID, got.ID)
	require.Equal(t, 1, inner.finds)
}

func TestCachedRepo_DropsCorruptEntry(t *testing.T) {
	m, inner, repo := newCached(t)
	ctx := context.Background()

	a := &resource.Asset{ModelID: "m1"}
	a.Prepare(time.Now())
	require.NoError(t, repo.Create(ctx, a))
	require.NoError(t, m.Set("asset:m1", "{not json"))

	got, err := repo.FindByModelID(ctx, "m1")
	require.NoError(t, err)
	require.Equal(t, a.ID, got.ID)
	require.Equal(t, 1, inner.finds)
}

func TestCachedRepo_AgreesWithObjectStoreAfterLaterDuplicate(t *testing.T) {
	m, err := mr.Run()
	require.NoError(t, err)
	defer m.Close()
	client := redis.NewClient(&redis.Options{Addr: m.Addr()})
	defer client.Close()

	inner := NewObjectRepo[resource.Asset](&fakeObjectStore{}, "assets")
	repo := NewCachedRepo[resource.Asset](inner, client, "asset:", time.Minute)
	ctx := context.Background()
	now := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)

	first := &resource.Asset{ModelID: "m1", Textures: map[string]string{"v": "first"}}
	first.Prepare(now)
	require.NoError(t, repo.Create(ctx, first))
	cached, err := repo.FindByModelID(ctx, "m1")
	require.NoError(t, err)
	require.Equal(t, "first", cached.Textures["v"])

	// an id lower than every stored one is replaced on prepare
	low, err := primitive.ObjectIDFromHex("000000000000000000000001")
	require.NoError(t, err)
	second := &resource.Asset{ID: low, ModelID: "m1", Textures: map[string]string{"v": "second"}}
	second.Prepare(now.Add(time.Second))
	require.NotEqual(t, low, second.ID)
	require.NoError(t, repo.Create(ctx, second))

	fromCache, err := repo.FindByModelID(ctx, "m1")
	require.NoError(t, err)
	fromStore, err := inner.FindByModelID(ctx, "m1")
	require.NoError(t, err)
	require.Equal(t, "first", fromStore.Textures["v"])
	require.Equal(t, fromStore.ID, fromCache.ID)
}
