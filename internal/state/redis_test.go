package state

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/mercado/app/services"
	pkgerrors "github.com/shashiranjanraj/mercado/pkg/errors"
)

type fakeRedis struct {
	values map[string]string
	err    error
	closed bool
}

func newFakeRedis() *fakeRedis { return &fakeRedis{values: map[string]string{}} }

func (f *fakeRedis) Get(ctx context.Context, key string) *redis.StringCmd {
	if f.err != nil {
		return redis.NewStringResult("", f.err)
	}
	v, ok := f.values[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (f *fakeRedis) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	if f.err != nil {
		return redis.NewStatusResult("", f.err)
	}
	switch v := value.(type) {
	case []byte:
		f.values[key] = string(v)
	case string:
		f.values[key] = v
	}
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeRedis) Close() error {
	f.closed = true
	return nil
}

func TestRedisStore_MissingKeyIsFresh(t *testing.T) {
	store := NewRedisStore(newFakeRedis(), "mercado:state")

	_, found, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.False(t, found)
}

func TestRedisStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	client := newFakeRedis()
	store := NewRedisStore(client, "mercado:state")

	m := services.NewMarket()
	code, err := m.Catalog.Register("Café", decimal.RequireFromString("14.90"), 5)
	require.NoError(t, err)
	require.NoError(t, m.Cart.Add(code, 2))

	require.NoError(t, store.Save(ctx, m.State()))
	assert.Contains(t, client.values["mercado:state"], `"carrinho"`)

	st, found, err := store.Load(ctx)
	require.NoError(t, err)
	require.True(t, found)
	require.Len(t, st.Products, 1)
	assert.Equal(t, 3, st.Products[0].Stock)
	assert.Equal(t, "14.90", st.Products[0].Price.StringFixed(2))

	require.NoError(t, store.Close())
	assert.True(t, client.closed)
}

func TestRedisStore_Errors(t *testing.T) {
	ctx := context.Background()
	client := newFakeRedis()
	store := NewRedisStore(client, "k")

	client.values["k"] = "not json"
	_, _, err := store.Load(ctx)
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeCorruptState))

	boom := errors.New("connection refused")
	client.err = boom
	_, _, err = store.Load(ctx)
	assert.ErrorIs(t, err, boom)
	assert.ErrorIs(t, store.Save(ctx, services.State{}), boom)
}
