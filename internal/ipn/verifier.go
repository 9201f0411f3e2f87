package ipn

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"PaypalIPNListener/pkg/metrics"
)

const (
	// LiveEndpoint and SandboxEndpoint receive the confirmation postback.
	LiveEndpoint    = "https://www.paypal.com/cgi-bin/webscr"
	SandboxEndpoint = "https://www.sandbox.paypal.com/cgi-bin/webscr"

	// DefaultVerifyTimeout bounds the whole confirmation round-trip.
	DefaultVerifyTimeout = 30 * time.Second

	validateCommand = "cmd=_notify-validate"
	verifiedToken   = "VERIFIED"
	maxResponseBody = 64 * 1024
)

// EndpointFor selects the live or sandbox verification endpoint.
func EndpointFor(live bool) string {
	if live {
		return LiveEndpoint
	}
	return SandboxEndpoint
}

// Verifier confirms a decoded message with the processor.
type Verifier interface {
	Verify(ctx context.Context, msg *Message) bool
}

// VerifierConfig holds configuration for HTTPVerifier.
type VerifierConfig struct {
	Endpoint string
	Timeout  time.Duration
	// InsecureSkipVerify disables TLS peer verification. It defaults to true
	// through config for compatibility with the historical listener and is
	// ignored when CAFile is set.
	InsecureSkipVerify bool
	// CAFile is a PEM bundle used as the only trust anchor for the endpoint.
	CAFile string
}

// HTTPVerifier performs the cmd=_notify-validate round-trip over HTTP/1.1.
type HTTPVerifier struct {
	endpoint   string
	httpClient *http.Client
}

// NewHTTPVerifier creates a verifier. It fails only when CAFile cannot be loaded.
func NewHTTPVerifier(cfg VerifierConfig) (*HTTPVerifier, error) {
	if cfg.Endpoint == "" {
		return nil, errors.New("verifier endpoint is required")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultVerifyTimeout
	}

	tlsCfg := &tls.Config{MinVersion: tls.VersionTLS12}
	if cfg.CAFile != "" {
		pem, err := os.ReadFile(cfg.CAFile)
		if err != nil {
			return nil, fmt.Errorf("read ca file: %w", err)
		}
		pool := x509.NewCertPool()
		if !pool.AppendCertsFromPEM(pem) {
			return nil, fmt.Errorf("ca file %s: no certificates found", cfg.CAFile)
		}
		tlsCfg.RootCAs = pool
	} else if cfg.InsecureSkipVerify {
		slog.Warn("IPN verifier TLS peer verification is DISABLED",
			"endpoint", cfg.Endpoint)
		tlsCfg.InsecureSkipVerify = true
	}

	transport := &http.Transport{
		Proxy:             http.ProxyFromEnvironment,
		TLSClientConfig:   tlsCfg,
		DisableKeepAlives: true,
		ForceAttemptHTTP2: false,
		// A non-nil empty map keeps the transport on HTTP/1.1.
		TLSNextProto: make(map[string]func(string, *tls.Conn) http.RoundTripper),
	}

	return &HTTPVerifier{
		endpoint: cfg.Endpoint,
		httpClient: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: transport,
		},
	}, nil
}

// Verify returns true only when the endpoint answered VERIFIED.
func (v *HTTPVerifier) Verify(ctx context.Context, msg *Message) bool {
	start := time.Now()
	err := v.Confirm(ctx, msg)
	metrics.IPNVerificationDuration.Observe(time.Since(start).Seconds())
	metrics.IPNVerificationsTotal.WithLabelValues(verificationResult(err)).Inc()

	if err != nil {
		slog.WarnContext(ctx, "IPN verification failed",
			"endpoint", v.endpoint,
			slog.Any("error", err))
		return false
	}
	return true
}

// Confirm sends the validate request once and classifies the outcome.
func (v *HTTPVerifier) Confirm(ctx context.Context, msg *Message) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.endpoint,
		strings.NewReader(ValidateBody(msg)))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Close = true
	req.Header.Set("Connection", "close")
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := v.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrVerifierUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return fmt.Errorf("%w: read body: %v", ErrVerifierUnavailable, err)
	}

	if resp.StatusCode/100 != 2 {
		return fmt.Errorf("%w: %s", ErrUnexpectedStatus, resp.Status)
	}
	if string(body) != verifiedToken {
		return fmt.Errorf("%w: response %q", ErrNotVerified, truncate(body, 32))
	}
	return nil
}

// Close releases idle connections held by the client.
func (v *HTTPVerifier) Close() error {
	v.httpClient.CloseIdleConnections()
	return nil
}

// ValidateBody builds the confirmation request body: the validate command
// followed by every field, in stored order, with its decoded value re-encoded.
func ValidateBody(msg *Message) string {
	var b strings.Builder
	b.WriteString(validateCommand)
	for _, f := range msg.fields {
		b.WriteString("&")
		b.WriteString(f.Name)
		b.WriteString("=")
		b.WriteString(formEscape(f.Value))
	}
	return b.String()
}

func verificationResult(err error) string {
	switch {
	case err == nil:
		return "verified"
	case errors.Is(err, ErrNotVerified):
		return "invalid"
	case errors.Is(err, ErrUnexpectedStatus):
		return "bad_status"
	default:
		return "error"
	}
}

func truncate(b []byte, n int) string {
	if len(b) > n {
		return string(b[:n]) + "..."
	}
	return string(b)
}
