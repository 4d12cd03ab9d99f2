package health

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeProbe struct {
	name       string
	configured bool

	err    error
	probed int
}

func (f *fakeProbe) Name() string     { return f.name }
func (f *fakeProbe) Configured() bool { return f.configured }

func (f *fakeProbe) Probe(ctx context.Context) error {
	f.probed++
	return f.err
}

func TestCheckWithoutProbe(t *testing.T) {
	stepfun := &fakeProbe{name: "stepfun", configured: true}
	openai := &fakeProbe{name: "openai"}

	report := New(stepfun, openai).Check(context.Background(), false)

	require.False(t, report.Probe)
	require.Len(t, report.Providers, 2)
	require.False(t, report.Timestamp.IsZero())

	require.Equal(t, "stepfun", report.Providers[0].Provider)
	require.True(t, report.Providers[0].Configured)
	require.Nil(t, report.Providers[0].Reachable)

	require.False(t, report.Providers[1].Configured)

	require.Zero(t, stepfun.probed)
	require.Zero(t, openai.probed)

	// unconfigured openai degrades the report even unprobed
	require.True(t, report.Degraded())
}

func TestCheckProbesConfiguredOnly(t *testing.T) {
	stepfun := &fakeProbe{name: "stepfun", configured: true}
	openai := &fakeProbe{name: "openai"}

	report := New(stepfun, openai).Check(context.Background(), true)

	require.True(t, report.Probe)

	require.Equal(t, 1, stepfun.probed)
	require.Zero(t, openai.probed)

	require.NotNil(t, report.Providers[0].Reachable)
	require.True(t, *report.Providers[0].Reachable)
	require.Nil(t, report.Providers[1].Reachable)
}

func TestCheckCapturesProbeFailure(t *testing.T) {
	stepfun := &fakeProbe{
		name:       "stepfun",
		configured: true,
		err:        errors.New("connection refused"),
	}

	report := New(stepfun).Check(context.Background(), true)

	require.NotNil(t, report.Providers[0].Reachable)
	require.False(t, *report.Providers[0].Reachable)
	require.Equal(t, "connection refused", report.Providers[0].Error)

	require.True(t, report.Degraded())
}

func TestHealthyReport(t *testing.T) {
	stepfun := &fakeProbe{name: "stepfun", configured: true}
	openai := &fakeProbe{name: "openai", configured: true}

	report := New(stepfun, openai).Check(context.Background(), true)

	require.False(t, report.Degraded())
}
