package calculator

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// Metric instruments, initialized once via InitMetrics().
var (
	opsCounter   metric.Int64Counter
	opsHistogram metric.Float64Histogram
	errorCounter metric.Int64Counter
	sellGauge    metric.Float64Gauge
)

// panelsTotal is scraped from /metrics alongside the OTLP export.
var panelsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "fieldcalc",
	Name:      "panels_total",
	Help:      "Output panels rendered, by output element and outcome.",
}, []string{"target", "outcome"})

// InitMetrics registers the calculator's OTel instruments. Call this once at
// startup, after observability.InitMetrics when exporting.
func InitMetrics() error {
	meter := otel.Meter("calculator")

	var err error

	opsCounter, err = meter.Int64Counter("fieldcalc.calculations.total",
		metric.WithDescription("Total number of calculator runs"),
		metric.WithUnit("{calculation}"),
	)
	if err != nil {
		return fmt.Errorf("creating ops counter: %w", err)
	}

	opsHistogram, err = meter.Float64Histogram("fieldcalc.calculation.duration",
		metric.WithDescription("Duration of calculator runs in milliseconds"),
		metric.WithUnit("ms"),
		metric.WithExplicitBucketBoundaries(0.01, 0.05, 0.1, 0.5, 1, 5, 10, 100, 1000),
	)
	if err != nil {
		return fmt.Errorf("creating ops histogram: %w", err)
	}

	errorCounter, err = meter.Int64Counter("fieldcalc.calculation.errors.total",
		metric.WithDescription("Calculator runs that failed or were rejected"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return fmt.Errorf("creating error counter: %w", err)
	}

	sellGauge, err = meter.Float64Gauge("fieldcalc.quote.last_sell",
		metric.WithDescription("The sell price of the last quote produced"),
		metric.WithUnit("USD"),
	)
	if err != nil {
		return fmt.Errorf("creating sell gauge: %w", err)
	}

	return nil
}
