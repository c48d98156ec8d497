package cache

import (
	"context"
	"errors"
	"net/url"
	"testing"
	"time"

	"bellezza-backend/utils"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingStore struct{}

func (failingStore) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, errors.New("backend down")
}
func (failingStore) Set(context.Context, string, []byte, time.Duration) error {
	return errors.New("backend down")
}
func (failingStore) DeletePattern(context.Context, string) error {
	return errors.New("backend down")
}

type item struct {
	Name string `json:"name"`
}

func TestMemoryStore_TTLAndPattern(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(0)
	defer s.Close()

	now := time.Date(2030, 1, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	require.NoError(t, s.Set(ctx, "catalog:services:list:", []byte("a"), time.Minute))
	require.NoError(t, s.Set(ctx, "catalog:services:item:1", []byte("b"), time.Minute))
	require.NoError(t, s.Set(ctx, "catalog:products:list:", []byte("c"), time.Minute))

	v, ok, err := s.Get(ctx, "catalog:services:item:1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte("b"), v)

	require.NoError(t, s.DeletePattern(ctx, Pattern(EntityServices)))
	_, ok, _ = s.Get(ctx, "catalog:services:list:")
	assert.False(t, ok)
	_, ok, _ = s.Get(ctx, "catalog:products:list:")
	assert.True(t, ok)

	now = now.Add(2 * time.Minute)
	_, ok, _ = s.Get(ctx, "catalog:products:list:")
	assert.False(t, ok, "expired entry must miss")

	s.removeExpired()
	assert.Equal(t, 0, s.Len())
}

func TestMemoryStore_Closed(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(time.Hour)
	require.NoError(t, s.Set(ctx, "catalog:services:all", []byte("x"), time.Minute))

	require.NoError(t, s.Close())
	require.NoError(t, s.Close())

	_, ok, err := s.Get(ctx, "catalog:services:all")
	assert.ErrorIs(t, err, ErrClosed)
	assert.False(t, ok)
	assert.ErrorIs(t, s.Set(ctx, "k", []byte("v"), time.Minute), ErrClosed)
	assert.ErrorIs(t, s.DeletePattern(ctx, "catalog:*"), ErrClosed)
	assert.Zero(t, s.Len())
}

func TestGetOrLoad_ReadThrough(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(0)
	defer store.Close()
	c := NewCatalog(store, time.Minute, utils.NewTestLogger())

	calls := 0
	load := func(context.Context) ([]item, error) {
		calls++
		return []item{{Name: "Manicure"}}, nil
	}

	first, err := GetOrLoad(ctx, c, ListKey(EntityServices, url.Values{}), load)
	require.NoError(t, err)
	second, err := GetOrLoad(ctx, c, ListKey(EntityServices, url.Values{}), load)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, calls)

	c.Invalidate(ctx, Pattern(EntityServices))
	_, err = GetOrLoad(ctx, c, ListKey(EntityServices, url.Values{}), load)
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestGetOrLoad_LoaderErrorNotCached(t *testing.T) {
	ctx := context.Background()
	c := NewCatalog(NewMemoryStore(0), time.Minute, utils.NewTestLogger())

	_, err := GetOrLoad(ctx, c, "k", func(context.Context) (item, error) {
		return item{}, errors.New("db down")
	})
	assert.EqualError(t, err, "db down")

	v, err := GetOrLoad(ctx, c, "k", func(context.Context) (item, error) {
		return item{Name: "ok"}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, "ok", v.Name)
}

func TestGetOrLoad_FailsOpen(t *testing.T) {
	ctx := context.Background()
	c := NewCatalog(failingStore{}, time.Minute, utils.NewTestLogger())

	calls := 0
	for i := 0; i < 2; i++ {
		v, err := GetOrLoad(ctx, c, "k", func(context.Context) (item, error) {
			calls++
			return item{Name: "fresh"}, nil
		})
		require.NoError(t, err)
		assert.Equal(t, "fresh", v.Name)
	}
	assert.Equal(t, 2, calls)

	assert.NotPanics(t, func() { c.Invalidate(ctx, "catalog:*") })
}

func TestRedisStore(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	s := NewRedisStoreFromClient(client, "bellezza:")
	defer s.Close()

	_, ok, err := s.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set(ctx, ItemKey(EntityEmployees, "1"), []byte("x"), time.Minute))
	require.NoError(t, s.Set(ctx, ItemKey(EntityCategories, "1"), []byte("y"), time.Minute))
	assert.True(t, mr.Exists("bellezza:catalog:employees:item:1"))

	require.NoError(t, s.DeletePattern(ctx, Pattern(EntityEmployees)))
	assert.False(t, mr.Exists("bellezza:catalog:employees:item:1"))
	assert.True(t, mr.Exists("bellezza:catalog:categories:item:1"))

	mr.FastForward(2 * time.Minute)
	_, ok, err = s.Get(ctx, ItemKey(EntityCategories, "1"))
	require.NoError(t, err)
	assert.False(t, ok)
}
