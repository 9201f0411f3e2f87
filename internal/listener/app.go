package listener

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"PaypalIPNListener/config"
	"PaypalIPNListener/internal/external/kafka"
	"PaypalIPNListener/internal/forward"
	"PaypalIPNListener/internal/ipn"
	"PaypalIPNListener/internal/listener/handlers"
	"PaypalIPNListener/internal/messaging"
	"PaypalIPNListener/pkg/health"
	"PaypalIPNListener/pkg/logger"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
)

const (
	shutdownTimeout   = 5 * time.Second
	verifierCheckName = "ipn_verifier"
)

// App is the assembled listener service.
type App struct {
	Engine   *gin.Engine
	Registry *ipn.Registry
	closers  []func() error
}

// Bind is the setup-time hook for business handlers; call it before Serve.
func (a *App) Bind(txnTypes []string, h ipn.Handler) bool {
	return a.Registry.BindAll(txnTypes, h)
}

// New wires the engine, the optional Kafka forwarder and the HTTP routes.
func New(cfg config.Config) (*App, error) {
	endpoint := ipn.EndpointFor(cfg.IPNLive)
	verifier, err := ipn.NewHTTPVerifier(ipn.VerifierConfig{
		Endpoint:           endpoint,
		Timeout:            cfg.IPNVerifyTimeout,
		InsecureSkipVerify: cfg.IPNTLSInsecureSkipVerify,
		CAFile:             cfg.IPNTLSCAFile,
	})
	if err != nil {
		return nil, fmt.Errorf("listener - New - ipn.NewHTTPVerifier: %w", err)
	}

	app := &App{
		Registry: ipn.NewRegistry(ipn.WithHandlerTimeout(cfg.IPNHandlerTimeout)),
		closers:  []func() error{verifier.Close},
	}

	healthRegistry := health.NewRegistry()
	if cfg.IPNReadyCheckEndpoint {
		healthRegistry.Register(health.NewEndpointChecker(verifierCheckName, endpoint))
	}

	if cfg.ForwardingEnabled() {
		slog.Info("Forwarding verified IPN messages to Kafka",
			"brokers", cfg.KafkaBrokers,
			"topic", cfg.KafkaIPNTopic,
			"txn_types", cfg.IPNForwardTypes)
		publisher := kafka.NewPublisher(cfg.KafkaBrokers, cfg.KafkaIPNTopic)
		app.closers = append(app.closers, publisher.Close)
		app.enableForwarding(publisher, cfg.IPNForwardTypes)
		healthRegistry.Register(health.NewKafkaChecker(cfg.KafkaBrokers, cfg.KafkaIPNTopic))
	}

	var opts []ipn.ListenerOption
	if cfg.IPNAuditLogFile != "" {
		opts = append(opts, ipn.WithAuditSink(ipn.NewFileAuditSink(cfg.IPNAuditLogFile)))
	}
	listener := ipn.NewListener(verifier, app.Registry, opts...)

	app.Engine = NewGinEngine()
	NewRouter(handlers.NewIPNHandler(listener), healthRegistry).SetUp(app.Engine)

	slog.Info("IPN listener configured",
		"endpoint", endpoint,
		"live", cfg.IPNLive,
		"verify_timeout", cfg.IPNVerifyTimeout,
		"audit_log", cfg.IPNAuditLogFile != "")

	return app, nil
}

func (a *App) enableForwarding(publisher messaging.Publisher, txnTypes []string) {
	a.Registry.BindAll(txnTypes, forward.NewHandler(publisher))
}

// Close releases the verifier and publisher.
func (a *App) Close() error {
	var errs []error
	for _, c := range a.closers {
		errs = append(errs, c())
	}
	return errors.Join(errs...)
}

// Serve runs the HTTP server until ctx is cancelled, then shuts it down.
func (a *App) Serve(ctx context.Context, port int) error {
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           a.Engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("IPN listener started", "port", port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		slog.Info("Shutting down IPN listener...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// Run bootstraps and runs the listener service until SIGINT/SIGTERM.
func Run(cfg config.Config) error {
	logger.Setup(logger.Options{Level: cfg.LogLevel, Console: cfg.LogFormat == "console", Service: "paypal-ipn-listener"})

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	app, err := New(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := app.Close(); err != nil {
			slog.Error("Failed to close IPN listener resources", slog.Any("error", err))
		}
	}()

	if err := app.Serve(ctx, cfg.Port); err != nil {
		return err
	}

	slog.Info("IPN listener stopped")
	return nil
}
