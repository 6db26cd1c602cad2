package security

import (
	"context"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
)

func TestAllowWithoutRedis(t *testing.T) {
	var limiter *RateLimiter
	assert.NoError(t, limiter.Allow(context.Background(), "k", 1, time.Minute))

	limiter = NewRateLimiter(nil)
	assert.NoError(t, limiter.Allow(context.Background(), "k", 1, time.Minute))
}

func TestAllowCountsWithinWindow(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	limiter := NewRateLimiter(rdb)

	window := time.Minute
	bucket := bucketKey("report:u1", window)

	mock.ExpectIncr(bucket).SetVal(1)
	mock.ExpectExpire(bucket, window).SetVal(true)
	assert.NoError(t, limiter.Allow(context.Background(), "report:u1", 2, window))

	mock.ExpectIncr(bucket).SetVal(2)
	assert.NoError(t, limiter.Allow(context.Background(), "report:u1", 2, window))

	mock.ExpectIncr(bucket).SetVal(3)
	err := limiter.Allow(context.Background(), "report:u1", 2, window)
	assert.ErrorIs(t, err, ErrRateLimited)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAllowFailsOpenOnRedisError(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	limiter := NewRateLimiter(rdb)

	window := time.Minute
	mock.ExpectIncr(bucketKey("k", window)).SetErr(context.DeadlineExceeded)
	assert.NoError(t, limiter.Allow(context.Background(), "k", 5, window))
}
