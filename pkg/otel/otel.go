package otel

import (
	"context"
	"os"

	sdkresource "go.opentelemetry.io/otel/sdk/resource"

	semconv "go.opentelemetry.io/otel/semconv/v1.34.0"
)

const instrumentationName = "github.com/voxkit/voxkit"

var (
	EnableDebug     = false
	EnableTelemetry = false
)

func init() {
	EnableDebug = os.Getenv("DEBUG") != ""
	EnableTelemetry = os.Getenv("TELEMETRY") != ""
}

func Setup(ctx context.Context, name, version string) error {
	if !EnableTelemetry {
		return nil
	}

	resource := sdkresource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(name),
		semconv.ServiceVersion(version),
	)

	if err := setupLogger(ctx, resource); err != nil {
		return err
	}

	if err := setupTracer(ctx, resource); err != nil {
		return err
	}

	if err := setupMeter(ctx, resource); err != nil {
		return err
	}

	return nil
}
