package client

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/voxkit/voxkit/pkg/health"
)

type HealthService struct {
	Options []RequestOption
}

func NewHealthService(opts ...RequestOption) HealthService {
	return HealthService{
		Options: opts,
	}
}

type HealthReport = health.Report

// Providers fetches the provider health report. A degraded report is still
// returned (the service answers 503 with a body in that case).
func (r *HealthService) Providers(ctx context.Context, probe bool, opts ...RequestOption) (*HealthReport, error) {
	c := newRequestConfig(append(r.Options, opts...)...)

	target := strings.TrimRight(c.URL, "/") + "/health/providers"

	if probe {
		target += "?probe=true"
	}

	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	c.apply(req)

	resp, err := c.Client.Do(req)

	if err != nil {
		return nil, err
	}

	defer resp.Body.Close()

	// a degraded report comes back as 503 with success=false but still
	// carries the full report, so the envelope is unwrapped by hand here
	var envelope struct {
		Data HealthReport `json:"data"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, err
	}

	return &envelope.Data, nil
}
