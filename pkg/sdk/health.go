package shopdex

import (
	"context"

	healthuc "github.com/kailas-cloud/shopdex/internal/usecase/health"
)

// Health check component names.
const (
	ComponentDatabase = healthuc.ComponentDatabase
	ComponentIndex    = healthuc.ComponentIndex
)

// HealthStatus is the outcome of Client.Health.
type HealthStatus struct {
	Status string            // "ok" or "degraded"
	Checks map[string]string // component name to "ok", "error" or "missing"
}

// OK reports whether every component passed.
func (h HealthStatus) OK() bool { return h.Status == string(healthuc.Healthy) }

// Health probes Redis and the product index.
func (c *Client) Health(ctx context.Context) HealthStatus {
	report := c.healthSvc.Check(ctx)
	h := HealthStatus{
		Status: string(report.Status),
		Checks: make(map[string]string, len(report.Checks)),
	}
	for name, res := range report.Checks {
		h.Checks[name] = string(res)
	}
	return h
}

type healthUseCase interface {
	Check(ctx context.Context) healthuc.Report
}
