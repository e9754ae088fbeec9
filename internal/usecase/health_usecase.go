package usecase

import (
	"context"
	"sort"
	"time"
)

// Probe reports whether one backing dependency answers.
type Probe func(ctx context.Context) error

type HealthUsecase interface {
	Check(ctx context.Context) map[string]string
}

type healthUsecase struct {
	probes  map[string]Probe
	timeout time.Duration
}

// NewHealthUsecase checks every named probe. With no probes the check is
// always ok.
func NewHealthUsecase(probes map[string]Probe) HealthUsecase {
	return &healthUsecase{probes: probes, timeout: 3 * time.Second}
}

// Check returns "status" plus one entry per probe. Status is "degraded" as
// soon as one probe fails.
func (u *healthUsecase) Check(ctx context.Context) map[string]string {
	ctx, cancel := context.WithTimeout(ctx, u.timeout)
	defer cancel()

	names := make([]string, 0, len(u.probes))
	for name := range u.probes {
		names = append(names, name)
	}
	sort.Strings(names)

	out := map[string]string{"status": "ok"}
	for _, name := range names {
		if err := u.probes[name](ctx); err != nil {
			out[name] = "error: " + err.Error()
			out["status"] = "degraded"
			continue
		}
		out[name] = "ok"
	}
	return out
}
