package security_test

import (
	"context"
	"os"
	"testing"

	"go-hiring-sync/pkg/redis"
	"go-hiring-sync/pkg/security"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUploadLimiter(t *testing.T) {
	t.Run("Should allow everything without redis", func(t *testing.T) {
		l := security.NewUploadLimiter(nil, 1, 1)
		for i := 0; i < 3; i++ {
			ok, wait, err := l.Allow(context.Background(), "u1")
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Zero(t, wait)
		}
	})

	t.Run("Should limit per minute against a live redis", func(t *testing.T) {
		url := os.Getenv("TEST_REDIS_URL")
		if url == "" {
			t.Skip("TEST_REDIS_URL not set")
		}
		ctx := context.Background()
		client, err := redis.Connect(ctx, redis.Config{URL: url})
		require.NoError(t, err)
		defer client.Close()

		l := security.NewUploadLimiter(client, 2, 10)
		actor := "test-" + uuid.NewString()
		for i := 0; i < 2; i++ {
			ok, _, err := l.Allow(ctx, actor)
			require.NoError(t, err)
			assert.True(t, ok)
		}
		ok, wait, err := l.Allow(ctx, actor)
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Equal(t, 60, wait)
	})
}
