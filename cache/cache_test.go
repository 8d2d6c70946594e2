package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNilCacheIsAlwaysMiss(t *testing.T) {
	var c *Cache
	ctx := context.Background()

	assert.NoError(t, c.Set(ctx, "k", "v", time.Minute))

	var out string
	assert.False(t, c.Get(ctx, "k", &out))
	assert.NoError(t, c.Forget(ctx, "k"))
	assert.NoError(t, c.Close())
}

func TestConnectFailsWithoutRedis(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	c, err := Connect(ctx, "127.0.0.1:1", "", "test:")
	assert.Error(t, err)
	assert.Nil(t, c)
}
