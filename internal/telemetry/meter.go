package telemetry

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// CountFunc reports the current number of stored records.
type CountFunc func(ctx context.Context) (int64, error)

// Metrics holds the custom metrics instruments for the application.
type Metrics struct {
	RequestCounter  metric.Int64Counter
	RequestDuration metric.Float64Histogram
	TasksGauge      metric.Int64ObservableGauge
	CommentsGauge   metric.Int64ObservableGauge
}

// InitMeterProvider configures an OTLP gRPC metric exporter and sets the global meter provider.
func InitMeterProvider(ctx context.Context, serviceName, otlpEndpoint, environment string) (*sdkmetric.MeterProvider, error) {
	conn, err := newConn(otlpEndpoint)
	if err != nil {
		return nil, err
	}

	exporter, err := otlpmetricgrpc.New(ctx, otlpmetricgrpc.WithGRPCConn(conn))
	if err != nil {
		return nil, fmt.Errorf("failed to create metric exporter: %w", err)
	}

	res, err := newResource(serviceName, environment)
	if err != nil {
		return nil, err
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter,
			sdkmetric.WithInterval(10*time.Second),
		)),
		sdkmetric.WithResource(res),
	)
	otel.SetMeterProvider(mp)

	return mp, nil
}

// NewMetrics creates the request instruments and the record-count gauges.
// Gauge callbacks that fail skip the observation for that collection cycle.
func NewMetrics(meter metric.Meter, countTasks, countComments CountFunc) (*Metrics, error) {
	m := &Metrics{}

	var err error

	m.RequestCounter, err = meter.Int64Counter(
		"http_requests_total",
		metric.WithDescription("Total number of HTTP requests"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create request counter: %w", err)
	}

	m.RequestDuration, err = meter.Float64Histogram(
		"http_request_duration_seconds",
		metric.WithDescription("HTTP request duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create request duration histogram: %w", err)
	}

	m.TasksGauge, err = meter.Int64ObservableGauge(
		"tasks_total",
		metric.WithDescription("Current number of tasks"),
		metric.WithUnit("{task}"),
		metric.WithInt64Callback(observeCount(countTasks)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create tasks gauge: %w", err)
	}

	m.CommentsGauge, err = meter.Int64ObservableGauge(
		"comments_total",
		metric.WithDescription("Current number of comments"),
		metric.WithUnit("{comment}"),
		metric.WithInt64Callback(observeCount(countComments)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create comments gauge: %w", err)
	}

	return m, nil
}

func observeCount(count CountFunc) metric.Int64Callback {
	return func(ctx context.Context, o metric.Int64Observer) error {
		n, err := count(ctx)
		if err != nil {
			return err
		}
		o.Observe(n)
		return nil
	}
}
