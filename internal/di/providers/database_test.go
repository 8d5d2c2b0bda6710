package providers

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/litnotes/litnotes/internal/config"
	"github.com/litnotes/litnotes/internal/store"
)

func TestOpenStore_Backends(t *testing.T) {
	mr := miniredis.RunT(t)

	tests := []struct {
		name string
		cfg  config.StorageConfig
	}{
		{"memory", config.StorageConfig{Backend: config.BackendMemory}},
		{"badger", config.StorageConfig{Backend: config.BackendBadger, DataPath: t.TempDir()}},
		{"sqlite", config.StorageConfig{Backend: config.BackendSQLite, DataPath: t.TempDir() + "/nested"}},
		{"redis", config.StorageConfig{Backend: config.BackendRedis, RedisAddr: mr.Addr(), RedisPrefix: "test:"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()

			s, err := OpenStore(ctx, tt.cfg, nil)
			require.NoError(t, err)
			defer s.Close()

			_, err = s.Get(ctx, store.KeyBooks)
			assert.True(t, store.IsNotFound(err))

			require.NoError(t, s.Set(ctx, store.KeyBooks, []byte("[]")))
			got, err := s.Get(ctx, store.KeyBooks)
			require.NoError(t, err)
			assert.Equal(t, []byte("[]"), got)
		})
	}
}

func TestOpenStore_Errors(t *testing.T) {
	ctx := context.Background()

	_, err := OpenStore(ctx, config.StorageConfig{Backend: "bolt"}, nil)
	assert.ErrorContains(t, err, "unknown storage backend")

	_, err = OpenStore(ctx, config.StorageConfig{Backend: config.BackendRedis, RedisAddr: "127.0.0.1:1"}, nil)
	assert.Error(t, err)
}
