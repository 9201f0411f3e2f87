package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg, err := New()

		require.NoError(t, err)
		assert.Equal(t, 8080, cfg.Port)
		assert.Equal(t, "info", cfg.LogLevel)
		assert.Equal(t, "json", cfg.LogFormat)
		assert.False(t, cfg.IPNLive)
		assert.Equal(t, 30*time.Second, cfg.IPNVerifyTimeout)
		assert.True(t, cfg.IPNTLSInsecureSkipVerify)
		assert.Empty(t, cfg.IPNTLSCAFile)
		assert.False(t, cfg.IPNReadyCheckEndpoint)
		assert.Equal(t, "paypal.ipn", cfg.KafkaIPNTopic)
		assert.Equal(t, []string{"web_accept", "cart", "express_checkout", "subscr_payment", "recurring_payment"}, cfg.IPNForwardTypes)
		assert.False(t, cfg.ForwardingEnabled())
	})

	t.Run("reads environment", func(t *testing.T) {
		t.Setenv("PORT", "9090")
		t.Setenv("IPN_LIVE", "true")
		t.Setenv("IPN_VERIFY_TIMEOUT", "5s")
		t.Setenv("IPN_TLS_INSECURE_SKIP_VERIFY", "false")
		t.Setenv("KAFKA_BROKERS", "kafka-1:9092,kafka-2:9092")
		t.Setenv("IPN_FORWARD_TYPES", "cart")
		t.Setenv("IPN_READY_CHECK_ENDPOINT", "true")

		cfg, err := New()

		require.NoError(t, err)
		assert.Equal(t, 9090, cfg.Port)
		assert.True(t, cfg.IPNLive)
		assert.Equal(t, 5*time.Second, cfg.IPNVerifyTimeout)
		assert.False(t, cfg.IPNTLSInsecureSkipVerify)
		assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.KafkaBrokers)
		assert.Equal(t, []string{"cart"}, cfg.IPNForwardTypes)
		assert.True(t, cfg.IPNReadyCheckEndpoint)
		assert.True(t, cfg.ForwardingEnabled())
	})

	t.Run("rejects bad log format", func(t *testing.T) {
		t.Setenv("LOG_FORMAT", "xml")

		_, err := New()

		assert.Error(t, err)
	})

	t.Run("rejects unparsable duration", func(t *testing.T) {
		t.Setenv("IPN_VERIFY_TIMEOUT", "soon")

		_, err := New()

		assert.Error(t, err)
	})
}

func TestConfig_Validate(t *testing.T) {
	valid := Config{Port: 8080, LogFormat: "json", IPNVerifyTimeout: time.Second}

	testCases := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "port zero", mutate: func(c *Config) { c.Port = 0 }, wantErr: true},
		{name: "port too large", mutate: func(c *Config) { c.Port = 70000 }, wantErr: true},
		{name: "console format", mutate: func(c *Config) { c.LogFormat = "console" }},
		{name: "zero verify timeout", mutate: func(c *Config) { c.IPNVerifyTimeout = 0 }, wantErr: true},
		{name: "negative handler timeout", mutate: func(c *Config) { c.IPNHandlerTimeout = -time.Second }, wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c := valid
			tc.mutate(&c)

			err := c.Validate()

			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
