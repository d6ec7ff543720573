package lifecycle

import (
	"context"
	"log/slog"

	"github.com/winterfair/fairbot/internal/health"
)

// HealthChecker exposes liveness and readiness probes.
type HealthChecker interface {
	Liveness(ctx context.Context) error
	Readiness(ctx context.Context) error
}

// Probes answers liveness unconditionally and delegates readiness to the
// component checker.
type Probes struct {
	checker *health.Checker
	log     *slog.Logger
}

// NewProbes creates probes backed by the given checker.
func NewProbes(checker *health.Checker, log *slog.Logger) *Probes {
	if log == nil {
		log = slog.Default()
	}
	return &Probes{checker: checker, log: log}
}

// Liveness reports success while the process is able to answer at all.
func (p *Probes) Liveness(_ context.Context) error {
	return nil
}

// Readiness runs the registered component checks.
func (p *Probes) Readiness(ctx context.Context) error {
	if p.checker == nil {
		return nil
	}
	return p.checker.Healthy(ctx)
}
