package usecase

import (
	"context"
	"sort"
	"time"
)

// Probe checks one dependency. A nil Probe marks the dependency disabled.
type Probe func(ctx context.Context) error

type HealthUsecase interface {
	// Check returns a status per dependency and whether all required ones are up.
	Check(ctx context.Context) (map[string]string, bool)
}

type healthUsecase struct {
	required map[string]Probe
	optional map[string]Probe
	timeout  time.Duration
}

// NewHealthUsecase takes required probes (failure makes the service
// unhealthy) and optional ones (reported only).
func NewHealthUsecase(required, optional map[string]Probe) HealthUsecase {
	return &healthUsecase{required: required, optional: optional, timeout: 2 * time.Second}
}

func (u *healthUsecase) Check(ctx context.Context) (map[string]string, bool) {
	ctx, cancel := context.WithTimeout(ctx, u.timeout)
	defer cancel()

	status := map[string]string{}
	healthy := true

	for _, name := range sortedNames(u.required) {
		s := runProbe(ctx, u.required[name])
		if s != "ok" {
			healthy = false
		}
		status[name] = s
	}
	for _, name := range sortedNames(u.optional) {
		status[name] = runProbe(ctx, u.optional[name])
	}

	status["status"] = "ok"
	if !healthy {
		status["status"] = "degraded"
	}
	return status, healthy
}

func runProbe(ctx context.Context, p Probe) string {
	if p == nil {
		return "disabled"
	}
	if err := p(ctx); err != nil {
		return "down"
	}
	return "ok"
}

func sortedNames(m map[string]Probe) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
