package dedup

import (
	"context"
	"errors"
	"testing"

	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisStore_ShouldAlert(t *testing.T) {
	client, mock := redismock.NewClientMock()
	store := NewRedisStoreWithClient(client)
	ctx := context.Background()

	// No recorded fingerprint yet
	mock.ExpectGet("sessionob:dedup:EUR_USD").RedisNil()
	assert.True(t, store.ShouldAlert(ctx, "EUR_USD", "ob|Bullish|1.10000"))

	// Matching fingerprint suppresses
	mock.ExpectGet("sessionob:dedup:EUR_USD").SetVal("ob|Bullish|1.10000")
	assert.False(t, store.ShouldAlert(ctx, "EUR_USD", "ob|Bullish|1.10000"))

	// Different fingerprint alerts
	mock.ExpectGet("sessionob:dedup:EUR_USD").SetVal("ob|Bullish|1.10000")
	assert.True(t, store.ShouldAlert(ctx, "EUR_USD", "ob|Bearish|1.09000"))

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisStore_FailsOpen(t *testing.T) {
	client, mock := redismock.NewClientMock()
	store := NewRedisStoreWithClient(client)

	mock.ExpectGet("sessionob:dedup:EUR_USD").SetErr(errors.New("connection refused"))
	assert.True(t, store.ShouldAlert(context.Background(), "EUR_USD", "ob|Bullish|1.10000"),
		"a broken dedup backend must not swallow alerts")
}

func TestRedisStore_Record(t *testing.T) {
	client, mock := redismock.NewClientMock()
	store := NewRedisStoreWithClient(client)

	mock.ExpectSet("sessionob:dedup:XAU_USD", "ob|Bullish|2400.00000", 0).SetVal("OK")
	store.Record(context.Background(), "XAU_USD", "ob|Bullish|2400.00000")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisStore_PingError(t *testing.T) {
	store := NewRedisStoreWithClient(redis.NewClient(&redis.Options{Addr: "127.0.0.1:0"}))
	err := store.Ping(context.Background())
	require.Error(t, err)
}
