package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Port      int    `env:"PORT" envDefault:"8080"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	// IPN verification: IPN_LIVE selects the production endpoint, sandbox otherwise.
	IPNLive          bool          `env:"IPN_LIVE" envDefault:"false"`
	IPNVerifyTimeout time.Duration `env:"IPN_VERIFY_TIMEOUT" envDefault:"30s"`
	// Peer verification is off unless a CA bundle is given or this is set to false.
	IPNTLSInsecureSkipVerify bool          `env:"IPN_TLS_INSECURE_SKIP_VERIFY" envDefault:"true"`
	IPNTLSCAFile             string        `env:"IPN_TLS_CA_FILE"`
	IPNAuditLogFile          string        `env:"IPN_AUDIT_LOG_FILE"`
	IPNHandlerTimeout        time.Duration `env:"IPN_HANDLER_TIMEOUT" envDefault:"0s"`
	// Readiness dials the postback host only when enabled, so a processor
	// outage does not drain every replica.
	IPNReadyCheckEndpoint bool `env:"IPN_READY_CHECK_ENDPOINT" envDefault:"false"`

	// Kafka forwarding of verified messages; disabled when no brokers are set.
	KafkaBrokers    []string `env:"KAFKA_BROKERS" envSeparator:","`
	KafkaIPNTopic   string   `env:"KAFKA_IPN_TOPIC" envDefault:"paypal.ipn"`
	IPNForwardTypes []string `env:"IPN_FORWARD_TYPES" envSeparator:"," envDefault:"web_accept,cart,express_checkout,subscr_payment,recurring_payment"`
}

func New() (Config, error) {
	c, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, err
	}

	if err := c.Validate(); err != nil {
		return Config{}, err
	}

	return c, nil
}

// Validate checks values env tags cannot express.
func (c Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("PORT out of range: %d", c.Port)
	}
	if c.LogFormat != "json" && c.LogFormat != "console" {
		return fmt.Errorf("LOG_FORMAT must be json or console, got %q", c.LogFormat)
	}
	if c.IPNVerifyTimeout <= 0 {
		return fmt.Errorf("IPN_VERIFY_TIMEOUT must be positive, got %s", c.IPNVerifyTimeout)
	}
	if c.IPNHandlerTimeout < 0 {
		return fmt.Errorf("IPN_HANDLER_TIMEOUT must not be negative, got %s", c.IPNHandlerTimeout)
	}
	return nil
}

// ForwardingEnabled reports whether verified messages are published to Kafka.
func (c Config) ForwardingEnabled() bool {
	return len(c.KafkaBrokers) > 0
}
