package mongo_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/subscriptions/pkg/config"
	"github.com/dmitrymomot/subscriptions/pkg/mongo"
)

func TestConfigDefaults(t *testing.T) {
	t.Parallel()

	var cfg mongo.Config
	require.NoError(t, config.LoadFrom(&cfg, map[string]string{
		"MONGODB_URL": "mongodb://localhost:27017",
	}))
	assert.Equal(t, "subscriptions", cfg.Database)
	assert.Equal(t, 10*time.Second, cfg.ConnectTimeout)
	assert.Equal(t, uint64(100), cfg.MaxPoolSize)
	assert.Equal(t, 3, cfg.RetryAttempts)
	assert.True(t, cfg.RetryWrites)
}

func TestNew_InvalidURL(t *testing.T) {
	t.Parallel()

	_, err := mongo.New(context.Background(), mongo.Config{
		ConnectionURL: "not-a-mongo-url",
		RetryAttempts: 2,
		RetryInterval: time.Millisecond,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, mongo.ErrFailedToConnectToMongo)
}

func TestNew_ContextCanceledBetweenAttempts(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := mongo.New(ctx, mongo.Config{
		ConnectionURL: "not-a-mongo-url",
		RetryAttempts: 5,
		RetryInterval: time.Hour,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, mongo.ErrFailedToConnectToMongo)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewWithDatabase_MissingName(t *testing.T) {
	t.Parallel()

	_, err := mongo.NewWithDatabase(context.Background(), mongo.Config{ConnectionURL: "mongodb://localhost:27017"})
	assert.ErrorIs(t, err, mongo.ErrMissingDatabase)
}
