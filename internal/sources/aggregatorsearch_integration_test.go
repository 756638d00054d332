//go:build integration

package sources_test

import (
	"context"
	"testing"

	"github.com/mpetrova/hirescout/internal/config"
	redisclient "github.com/mpetrova/hirescout/internal/platform/redis"
	"github.com/mpetrova/hirescout/internal/sources"

	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"

	"github.com/stretchr/testify/require"
)

// TestRedisMetroRotationState_Integration exercises the metro-rotation
// cursor against a real Redis, the alternative to the file-backed cursor
// wired in when REDIS_HOST is set (cmd/hirescout's metroRotationState).
func TestRedisMetroRotationState_Integration(t *testing.T) {
	ctx := context.Background()

	container, err := tcredis.Run(ctx, "redis:7-alpine")
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "6379/tcp")
	require.NoError(t, err)

	client, err := redisclient.New(ctx, config.RedisConfig{Host: host, Port: port.Port()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	state := &sources.RedisMetroRotationState{Client: client, Key: "hirescout:metro_rotation:test"}

	idx, err := state.NextIndex(ctx)
	require.NoError(t, err)
	require.Equal(t, 0, idx, "an unset cursor starts at 0")

	require.NoError(t, state.Advance(ctx, 3))

	idx, err = state.NextIndex(ctx)
	require.NoError(t, err)
	require.Equal(t, 3, idx)
}
