package publisher

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// This test requires a running Redis instance
// If Redis is not available, the test will be skipped
func TestRedisPublisher(t *testing.T) {
	ctx := context.Background()

	client := redis.NewClient(&redis.Options{
		Addr: "localhost:6379",
		DB:   0,
	})
	defer client.Close()

	if _, err := client.Ping(ctx).Result(); err != nil {
		t.Skip("Redis is not available, skipping test")
	}

	stream := "test_vinted_findings"
	client.Del(ctx, stream)

	pub := NewRedisPublisher(ctx, "localhost:6379", 0, stream, 10)
	defer pub.Close()

	err := pub.Publish([]byte(`{"id":"123456789"}`))
	require.NoError(t, err)

	entries, err := client.XRangeN(ctx, stream, "-", "+", 1).Result()
	require.NoError(t, err)
	require.Len(t, entries, 1)

	// base64 of the JSON payload
	assert.Equal(t, "eyJpZCI6IjEyMzQ1Njc4OSJ9", entries[0].Values["b64_finding"])

	// The stream stays bounded.
	for i := 0; i < 50; i++ {
		require.NoError(t, pub.Publish([]byte(`{"id":"x"}`)))
	}
	time.Sleep(50 * time.Millisecond)
	length, err := client.XLen(ctx, stream).Result()
	require.NoError(t, err)
	assert.LessOrEqual(t, length, int64(51))

	client.Del(ctx, stream)
}
