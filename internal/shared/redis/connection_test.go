package redis

import (
	"context"
	"testing"

	"galaxy-server/internal/shared/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnect_DisabledReturnsNil(t *testing.T) {
	client, err := Connect(context.Background(), config.RedisConfig{Enabled: false})

	require.NoError(t, err)
	assert.Nil(t, client)
	assert.NoError(t, client.Close())
	assert.NoError(t, client.Ping(context.Background()))
}

func TestOptions_HostPort(t *testing.T) {
	opts, err := Options(config.RedisConfig{Host: "cache", Port: "6380", Password: "pw", DB: 2})

	require.NoError(t, err)
	assert.Equal(t, "cache:6380", opts.Addr)
	assert.Equal(t, "pw", opts.Password)
	assert.Equal(t, 2, opts.DB)
}

func TestOptions_URLWins(t *testing.T) {
	opts, err := Options(config.RedisConfig{URL: "redis://:secret@example.com:6390/3", Host: "ignored"})

	require.NoError(t, err)
	assert.Equal(t, "example.com:6390", opts.Addr)
	assert.Equal(t, "secret", opts.Password)
	assert.Equal(t, 3, opts.DB)
}

func TestOptions_BadURL(t *testing.T) {
	_, err := Options(config.RedisConfig{URL: "http://nope"})
	assert.Error(t, err)
}
