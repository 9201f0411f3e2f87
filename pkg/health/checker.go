package health

import (
	"context"
	"time"
)

// DefaultTimeout bounds one readiness probe across all checks.
const DefaultTimeout = 5 * time.Second

type Status string

const (
	StatusUp   Status = "up"
	StatusDown Status = "down"
)

type Result struct {
	Status  Status `json:"status"`
	Message string `json:"message,omitempty"`
}

func Up() Result { return Result{Status: StatusUp} }

func Down(message string) Result { return Result{Status: StatusDown, Message: message} }

// Checker probes one dependency of the listener (the postback endpoint, the broker).
type Checker interface {
	Name() string
	Check(ctx context.Context) Result
}

// CheckerFunc adapts a function into a named Checker.
type CheckerFunc struct {
	CheckName string
	Fn        func(ctx context.Context) Result
}

func (f CheckerFunc) Name() string { return f.CheckName }

func (f CheckerFunc) Check(ctx context.Context) Result { return f.Fn(ctx) }
