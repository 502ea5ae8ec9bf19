package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"supermarket-comparator/internal/common/logger"
)

// countingSource wraps a fixed catalog and counts loads.
type countingSource struct {
	catalog *Catalog
	err     error
	loads   int
}

func (s *countingSource) Load(ctx context.Context) (*Catalog, error) {
	s.loads++
	if s.err != nil {
		return nil, s.err
	}
	return s.catalog, nil
}

// ==========================
// Redis Source Tests
// ==========================

func TestRedisSourceCacheHit(t *testing.T) {
	cat := createTestCatalog()
	cached, err := json.Marshal(cat)
	require.NoError(t, err)

	rdb, mock := redismock.NewClientMock()
	mock.ExpectGet(redisCatalogKey).SetVal(string(cached))

	inner := &countingSource{catalog: cat}
	source := NewRedisSource(inner, rdb, time.Minute, logger.NewTestLogger(t))

	got, err := source.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, cat.StoreNames(), got.StoreNames())
	assert.Equal(t, 0, inner.loads)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisSourceCacheMissPopulates(t *testing.T) {
	cat := createTestCatalog()
	data, err := json.Marshal(cat)
	require.NoError(t, err)

	rdb, mock := redismock.NewClientMock()
	mock.ExpectGet(redisCatalogKey).RedisNil()
	mock.ExpectSet(redisCatalogKey, data, time.Minute).SetVal("OK")

	inner := &countingSource{catalog: cat}
	source := NewRedisSource(inner, rdb, time.Minute, logger.NewTestLogger(t))

	got, err := source.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, inner.loads)
	assert.Equal(t, cat.StoreNames(), got.StoreNames())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisSourceDegradesOnRedisFailure(t *testing.T) {
	cat := createTestCatalog()

	rdb, mock := redismock.NewClientMock()
	mock.ExpectGet(redisCatalogKey).SetErr(fmt.Errorf("connection refused"))
	mock.Regexp().ExpectSet(redisCatalogKey, `.*`, time.Minute).SetErr(fmt.Errorf("connection refused"))

	inner := &countingSource{catalog: cat}
	source := NewRedisSource(inner, rdb, time.Minute, logger.NewTestLogger(t))

	got, err := source.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, inner.loads)
	assert.Equal(t, cat.StoreNames(), got.StoreNames())
}

func TestRedisSourceRoundTrip(t *testing.T) {
	server := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: server.Addr()})
	defer rdb.Close()

	cat := createTestCatalog()
	inner := &countingSource{catalog: cat}
	source := NewRedisSource(inner, rdb, time.Minute, logger.NewTestLogger(t))

	ctx := context.Background()

	first, err := source.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, inner.loads)

	// Second load is served from redis.
	second, err := source.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, inner.loads)
	assert.Equal(t, first.StoreNames(), second.StoreNames())

	require.NoError(t, source.Invalidate(ctx))
	_, err = source.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, inner.loads)
}

// ==========================
// Local Source Tests
// ==========================

func TestLocalSourceCaches(t *testing.T) {
	cat := createTestCatalog()
	inner := &countingSource{catalog: cat}
	source := NewLocalSource(inner, time.Minute)

	ctx := context.Background()

	_, err := source.Load(ctx)
	require.NoError(t, err)
	_, err = source.Load(ctx)
	require.NoError(t, err)

	assert.Equal(t, 1, inner.loads)
}

func TestLocalSourcePropagatesError(t *testing.T) {
	inner := &countingSource{err: fmt.Errorf("boom")}
	source := NewLocalSource(inner, time.Minute)

	_, err := source.Load(context.Background())
	require.Error(t, err)
	assert.Equal(t, 1, inner.loads)
}
