package main

import (
	"context"

	"github.com/mmcdani2/field-cheat-sheets/internal/calculator"
	"github.com/mmcdani2/field-cheat-sheets/internal/config"
	"github.com/mmcdani2/field-cheat-sheets/internal/observability"
)

// initTelemetry starts the exporters cfg asks for and registers the calculator
// instruments. The returned shutdown flushes exporters in reverse start order.
func initTelemetry(ctx context.Context, cfg config.TelemetryConfig) (func(context.Context), error) {
	var shutdowns []func(context.Context) error
	shutdown := func(ctx context.Context) {
		for i := len(shutdowns) - 1; i >= 0; i-- {
			_ = shutdowns[i](ctx)
		}
	}

	if cfg.Enabled {
		traceShutdown, err := observability.InitTracing(ctx)
		if err != nil {
			return nil, err
		}
		shutdowns = append(shutdowns, traceShutdown)

		metricShutdown, err := observability.InitMetrics(ctx)
		if err != nil {
			shutdown(ctx)
			return nil, err
		}
		shutdowns = append(shutdowns, metricShutdown)

		if cfg.ExportLogs {
			logShutdown, err := observability.InitLogging(ctx)
			if err != nil {
				shutdown(ctx)
				return nil, err
			}
			shutdowns = append(shutdowns, logShutdown)
		}
	}

	if err := calculator.InitMetrics(); err != nil {
		shutdown(ctx)
		return nil, err
	}

	return shutdown, nil
}
