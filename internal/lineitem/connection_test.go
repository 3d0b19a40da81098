package lineitem

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnectMongoDB_Errors(t *testing.T) {
	t.Run("invalid uri", func(t *testing.T) {
		_, err := ConnectMongoDB(context.Background(), "not-a-mongo-uri", "cartdb")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to connect to MongoDB")
	})

	t.Run("unreachable server", func(t *testing.T) {
		ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
		defer cancel()

		_, err := ConnectMongoDB(ctx, "mongodb://127.0.0.1:1", "cartdb")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to ping MongoDB")
	})
}
