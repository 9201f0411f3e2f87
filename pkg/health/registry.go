package health

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"
)

// Registry is the set of checks behind the readiness probe.
// Checks are registered during startup and are read-only afterwards.
type Registry struct {
	checkers []Checker
}

// NewRegistry registers the non-nil checkers in order.
func NewRegistry(checkers ...Checker) *Registry {
	r := &Registry{}
	for _, c := range checkers {
		r.Register(c)
	}
	return r
}

func (r *Registry) Register(c Checker) {
	if c == nil {
		return
	}
	r.checkers = append(r.checkers, c)
}

// CheckResult reports one named check and how long it took.
type CheckResult struct {
	Name      string `json:"name"`
	Status    Status `json:"status"`
	Message   string `json:"message,omitempty"`
	LatencyMS int64  `json:"latency_ms"`
}

type ReadinessResponse struct {
	Status Status        `json:"status"`
	Checks []CheckResult `json:"checks,omitempty"`
}

// CheckAll runs every check concurrently and reports them in registration
// order. One failing or panicking check marks the whole response down.
func (r *Registry) CheckAll(ctx context.Context) ReadinessResponse {
	resp := ReadinessResponse{Status: StatusUp}
	if len(r.checkers) == 0 {
		return resp
	}

	resp.Checks = make([]CheckResult, len(r.checkers))
	var g errgroup.Group
	for i, c := range r.checkers {
		i, c := i, c
		g.Go(func() error {
			resp.Checks[i] = runCheck(ctx, c)
			return nil
		})
	}
	_ = g.Wait()

	for _, res := range resp.Checks {
		if res.Status != StatusUp {
			resp.Status = StatusDown
			break
		}
	}
	return resp
}

func runCheck(ctx context.Context, c Checker) (out CheckResult) {
	start := time.Now()
	out.Name = c.Name()
	defer func() {
		if rec := recover(); rec != nil {
			out.Status = StatusDown
			out.Message = fmt.Sprintf("check panicked: %v", rec)
		}
		out.LatencyMS = time.Since(start).Milliseconds()
	}()

	res := c.Check(ctx)
	out.Status, out.Message = res.Status, res.Message
	return out
}
