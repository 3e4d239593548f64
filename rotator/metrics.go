package rotator

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metric names.
const (
	MetricRotations = "applog.rotations.total"
	MetricFailures  = "applog.rotation.failures.total"
)

// Metrics counts rotations and rotation failures with OpenTelemetry.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	rotations metric.Int64Counter
	failures  metric.Int64Counter
}

// NewMetrics creates the counters. Returns nil Metrics if provider is nil.
func NewMetrics(provider metric.MeterProvider) (*Metrics, error) {
	if provider == nil {
		return nil, nil //nolint:nilnil
	}

	meter := provider.Meter("golift.io/applog/rotator")

	rotations, err := meter.Int64Counter(MetricRotations,
		metric.WithDescription("Log files rotated."),
		metric.WithUnit("{rotation}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s counter: %w", MetricRotations, err)
	}

	failures, err := meter.Int64Counter(MetricFailures,
		metric.WithDescription("Log file size checks or rotations that failed."),
		metric.WithUnit("{failure}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s counter: %w", MetricFailures, err)
	}

	return &Metrics{rotations: rotations, failures: failures}, nil
}

func (m *Metrics) rotated(fileName string) {
	if m == nil {
		return
	}

	m.rotations.Add(context.Background(), 1, metric.WithAttributes(attribute.String("file", fileName)))
}

func (m *Metrics) failed(fileName, stage string) {
	if m == nil {
		return
	}

	m.failures.Add(context.Background(), 1, metric.WithAttributes(
		attribute.String("file", fileName),
		attribute.String("stage", stage),
	))
}
