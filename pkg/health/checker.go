// Package health reports the configuration and reachability of upstream
// speech providers. Reports are computed fresh on every call, never cached.
package health

import (
	"context"
	"time"

	"github.com/voxkit/voxkit/pkg/provider"
)

type ProviderStatus struct {
	Provider   string `json:"provider"`
	Configured bool   `json:"configured"`

	Reachable *bool  `json:"reachable,omitempty"`
	Error     string `json:"error,omitempty"`
}

type Report struct {
	Timestamp time.Time `json:"timestamp"`
	Probe     bool      `json:"probe"`

	Providers []ProviderStatus `json:"providers"`
}

// Degraded reports whether any provider is unconfigured or, when probed,
// unreachable.
func (r *Report) Degraded() bool {
	for _, p := range r.Providers {
		if !p.Configured {
			return true
		}

		if p.Reachable != nil && !*p.Reachable {
			return true
		}
	}

	return false
}

type Checker struct {
	probes []provider.Prober
}

func New(probes ...provider.Prober) *Checker {
	return &Checker{
		probes: probes,
	}
}

// Check reports each provider's credential presence. With probe set it also
// performs a reachability call against every configured provider; probe
// failures are captured in the report, never returned as errors.
// Unconfigured providers are not probed.
func (c *Checker) Check(ctx context.Context, probe bool) *Report {
	report := &Report{
		Timestamp: time.Now(),
		Probe:     probe,

		Providers: make([]ProviderStatus, 0, len(c.probes)),
	}

	for _, p := range c.probes {
		status := ProviderStatus{
			Provider:   p.Name(),
			Configured: p.Configured(),
		}

		if probe && status.Configured {
			reachable := true

			if err := p.Probe(ctx); err != nil {
				reachable = false
				status.Error = err.Error()
			}

			status.Reachable = &reachable
		}

		report.Providers = append(report.Providers, status)
	}

	return report
}
