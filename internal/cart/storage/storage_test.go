package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/promostore-backend/internal/cart"
	"github.com/angelmondragon/promostore-backend/internal/catalog"
	"github.com/angelmondragon/promostore-backend/pkg/config"
	"github.com/angelmondragon/promostore-backend/pkg/db"
	"github.com/angelmondragon/promostore-backend/pkg/migrate"
	"github.com/angelmondragon/promostore-backend/pkg/redis"
)

func exerciseBackend(t *testing.T, backend Backend) {
	t.Helper()
	ctx := context.Background()

	_, err := backend.Load(ctx, "cart:missing")
	require.ErrorIs(t, err, cart.ErrNotFound)

	require.NoError(t, backend.Save(ctx, "cart:s1", []byte(`[]`)))
	require.NoError(t, backend.Save(ctx, "cart:s1", []byte(`[{"id":1}]`)))
	require.NoError(t, backend.Save(ctx, "cart:s2", []byte(`[]`)))

	blob, err := backend.Load(ctx, "cart:s1")
	require.NoError(t, err)
	assert.Equal(t, `[{"id":1}]`, string(blob))

	blob, err = backend.Load(ctx, "cart:s2")
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(blob))

	require.NoError(t, backend.Ping(ctx))
}

func TestMemory(t *testing.T) {
	exerciseBackend(t, NewMemory())
}

func TestMemoryCopiesBlobs(t *testing.T) {
	m := NewMemory()
	blob := []byte(`[]`)
	require.NoError(t, m.Save(context.Background(), "k", blob))
	blob[0] = 'x'

	got, err := m.Load(context.Background(), "k")
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(got))
}

func TestFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "carts")
	f, err := NewFile(dir)
	require.NoError(t, err)
	exerciseBackend(t, f)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2, "temp files should not be left behind")
}

func TestFileKeysDoNotCollide(t *testing.T) {
	f, err := NewFile(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, f.Save(ctx, "cart:a/b", []byte(`"slash"`)))
	require.NoError(t, f.Save(ctx, "cart:a_b", []byte(`"underscore"`)))

	got, err := f.Load(ctx, "cart:a/b")
	require.NoError(t, err)
	assert.Equal(t, `"slash"`, string(got))
}

func TestFileRequiresDir(t *testing.T) {
	_, err := NewFile("")
	assert.Error(t, err)
}

type fakeRedis struct {
	data    map[string]string
	ttls    map[string]time.Duration
	failGet error
}

func (f *fakeRedis) Get(_ context.Context, key string) (string, error) {
	if f.failGet != nil {
		return "", f.failGet
	}
	v, ok := f.data[key]
	if !ok {
		return "", redis.Nil
	}
	return v, nil
}

func (f *fakeRedis) Set(_ context.Context, key string, value any, ttl time.Duration) error {
	f.data[key] = value.(string)
	f.ttls[key] = ttl
	return nil
}

func (f *fakeRedis) Key(parts ...string) string {
	return (&redis.Client{}).Key(parts...)
}

func (f *fakeRedis) Ping(context.Context) error { return nil }

func TestRedis(t *testing.T) {
	fake := &fakeRedis{data: map[string]string{}, ttls: map[string]time.Duration{}}
	r, err := NewRedis(fake, 24*time.Hour)
	require.NoError(t, err)
	exerciseBackend(t, r)

	assert.Contains(t, fake.data, "ps:cart:s1")
	assert.Equal(t, 24*time.Hour, fake.ttls["ps:cart:s1"])
}

func TestRedisTransportError(t *testing.T) {
	fake := &fakeRedis{data: map[string]string{}, ttls: map[string]time.Duration{}, failGet: errors.New("i/o timeout")}
	r, err := NewRedis(fake, 0)
	require.NoError(t, err)

	_, err = r.Load(context.Background(), "cart:s1")
	require.Error(t, err)
	assert.False(t, errors.Is(err, cart.ErrNotFound))
}

func newMigratedSQLite(t *testing.T) *db.Client {
	t.Helper()
	client, err := db.New(context.Background(), config.DBConfig{DSN: "file::memory:", Driver: "sqlite", MaxOpenConns: 1}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	sqlDB, err := client.SQL()
	require.NoError(t, err)
	require.NoError(t, migrate.Run(context.Background(), sqlDB, migrate.Dialect(client.Driver()), "", "up"))
	return client
}

func TestSQL(t *testing.T) {
	client := newMigratedSQLite(t)
	s, err := NewSQL(client.DB())
	require.NoError(t, err)
	exerciseBackend(t, s)
}

func TestSQLUpsertRefreshesTimestamp(t *testing.T) {
	client := newMigratedSQLite(t)
	s, err := NewSQL(client.DB())
	require.NoError(t, err)

	first := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return first }
	require.NoError(t, s.Save(context.Background(), "cart:s1", []byte(`[]`)))

	second := first.Add(time.Hour)
	s.now = func() time.Time { return second }
	require.NoError(t, s.Save(context.Background(), "cart:s1", []byte(`[{"id":2}]`)))

	var count int64
	require.NoError(t, client.DB().Table("cart_snapshots").Count(&count).Error)
	assert.Equal(t, int64(1), count)

	var updatedAt time.Time
	require.NoError(t, client.DB().Table("cart_snapshots").Select("updated_at").Where("cart_key = ?", "cart:s1").Row().Scan(&updatedAt))
	assert.True(t, updatedAt.Equal(second), "got %v", updatedAt)
}

func TestCartRoundTripThroughSQL(t *testing.T) {
	client := newMigratedSQLite(t)
	backend, err := NewSQL(client.DB())
	require.NoError(t, err)

	product, ok := catalog.Default().Product(1)
	require.True(t, ok)
	color := "negro"

	store, err := cart.Open(context.Background(), backend, cart.SessionKey("s1"), nil)
	require.NoError(t, err)
	_, err = store.AddItem(context.Background(), product, 3, &color, nil)
	require.NoError(t, err)

	reopened, err := cart.Open(context.Background(), backend, cart.SessionKey("s1"), nil)
	require.NoError(t, err)
	assert.Equal(t, cart.LoadFound, reopened.LoadOutcome())
	assert.Equal(t, store.Get(), reopened.Get())
}
