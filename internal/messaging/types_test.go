package messaging

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"PaypalIPNListener/pkg/correlation"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEnvelope(t *testing.T) {
	t.Run("wraps payload with metadata", func(t *testing.T) {
		ctx := correlation.WithID(context.Background(), "corr-1")

		env, err := NewEnvelope(ctx, "paypal-ipn", "txn-1", "ipn.cart", map[string]string{"txn_id": "txn-1"})

		require.NoError(t, err)
		_, err = uuid.Parse(env.EventID)
		assert.NoError(t, err)
		assert.Equal(t, "paypal-ipn", env.Source)
		assert.Equal(t, "txn-1", env.Key)
		assert.Equal(t, "ipn.cart", env.Type)
		assert.Equal(t, "corr-1", env.CorrelationID)
		assert.JSONEq(t, `{"txn_id":"txn-1"}`, string(env.Payload))
		assert.WithinDuration(t, time.Now().UTC(), env.Timestamp, time.Minute)
	})

	t.Run("omits empty key and correlation id", func(t *testing.T) {
		env, err := NewEnvelope(context.Background(), "paypal-ipn", "", "ipn.cart", struct{}{})

		require.NoError(t, err)
		assert.Empty(t, env.CorrelationID)
		data, err := json.Marshal(env)
		require.NoError(t, err)
		assert.NotContains(t, string(data), `"key"`)
		assert.NotContains(t, string(data), `"correlation_id"`)
	})

	t.Run("fails on unmarshalable payload", func(t *testing.T) {
		_, err := NewEnvelope(context.Background(), "paypal-ipn", "k", "t", make(chan int))

		assert.Error(t, err)
	})
}
