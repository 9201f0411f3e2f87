package ipn

import (
	"context"
	"log/slog"
	"runtime/debug"
	"sync"
	"time"

	"PaypalIPNListener/pkg/metrics"
)

// Result tells the registry whether to keep running the handler chain.
type Result int

const (
	Stop Result = iota
	Continue
)

func (r Result) String() string {
	if r == Continue {
		return "continue"
	}
	return "stop"
}

// Handler processes a verified message.
type Handler interface {
	Handle(ctx context.Context, msg *Message) Result
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc func(ctx context.Context, msg *Message) Result

func (f HandlerFunc) Handle(ctx context.Context, msg *Message) Result {
	return f(ctx, msg)
}

// BoolHandler adapts a predicate: true continues the chain, false stops it.
// A nil predicate yields a nil Handler, which Bind rejects.
func BoolHandler(fn func(msg *Message) bool) Handler {
	if fn == nil {
		return nil
	}
	return HandlerFunc(func(_ context.Context, msg *Message) Result {
		if fn(msg) {
			return Continue
		}
		return Stop
	})
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithHandlerTimeout gives every handler call a context deadline.
// Handlers that ignore their context still run to completion.
func WithHandlerTimeout(d time.Duration) RegistryOption {
	return func(r *Registry) {
		r.handlerTimeout = d
	}
}

// Registry maps txn_type values to ordered handler chains. Bind is meant to
// be called during setup; Process may run concurrently afterwards.
type Registry struct {
	mu             sync.RWMutex
	handlers       map[string][]Handler
	handlerTimeout time.Duration
}

// NewRegistry returns an empty registry.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{handlers: make(map[string][]Handler)}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Bind appends h to the chain of txnType. It returns false and leaves the
// registry unchanged when h is nil.
func (r *Registry) Bind(txnType string, h Handler) bool {
	return r.BindAll([]string{txnType}, h)
}

// BindAll appends h to the chain of every listed type. Each type gets its
// own independent entry.
func (r *Registry) BindAll(txnTypes []string, h Handler) bool {
	if !validHandler(h) {
		return false
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range txnTypes {
		r.handlers[t] = append(r.handlers[t], h)
	}
	return true
}

// Handlers returns how many handlers are bound to txnType.
func (r *Registry) Handlers(txnType string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.handlers[txnType])
}

// Process runs the chain bound to the message's txn_type in registration
// order and stops at the first handler returning Stop. Messages without a
// txn_type, or with a type nobody bound, are ignored.
func (r *Registry) Process(ctx context.Context, msg *Message) {
	txnType, ok := msg.TxnType()
	if !ok {
		slog.DebugContext(ctx, "IPN message has no txn_type, skipping dispatch")
		return
	}

	r.mu.RLock()
	chain := append([]Handler(nil), r.handlers[txnType]...)
	r.mu.RUnlock()

	if len(chain) == 0 {
		slog.DebugContext(ctx, "No IPN handlers bound", "txn_type", txnType)
		return
	}

	for i, h := range chain {
		res := r.invoke(ctx, h, msg)
		metrics.IPNHandlerInvocations.WithLabelValues(res.String()).Inc()
		if res != Continue {
			slog.DebugContext(ctx, "IPN handler chain stopped",
				"txn_type", txnType,
				"handler_idx", i,
				"chain_len", len(chain))
			return
		}
	}
}

func (r *Registry) invoke(ctx context.Context, h Handler, msg *Message) (res Result) {
	if r.handlerTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.handlerTimeout)
		defer cancel()
	}

	defer func() {
		if rec := recover(); rec != nil {
			slog.ErrorContext(ctx, "IPN handler panic recovered",
				"panic", rec,
				"stack", string(debug.Stack()))
			res = Stop
		}
	}()

	return h.Handle(ctx, msg)
}

func validHandler(h Handler) bool {
	if h == nil {
		return false
	}
	if f, ok := h.(HandlerFunc); ok && f == nil {
		return false
	}
	return true
}
