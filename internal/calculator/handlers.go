package calculator

import (
	"errors"
	"net/http"
	"time"

	"github.com/mmcdani2/field-cheat-sheets/internal/form"
	"github.com/mmcdani2/field-cheat-sheets/internal/handlers"
	"github.com/mmcdani2/field-cheat-sheets/internal/observability"
	"github.com/mmcdani2/field-cheat-sheets/internal/pricing"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("calculator")

// StatusFor maps a panel outcome to its HTTP status.
func StatusFor(o Outcome) int {
	switch o {
	case OutcomeOK:
		return http.StatusOK
	case OutcomeInvalid:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusBadGateway
	}
}

// handle serves one operation: span, decode, timed run, metrics, log, panel.
func (s *Service) handle(op Operation) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		logger := observability.LoggerWithTrace(ctx)
		requestID := observability.RequestIDFromContext(ctx)

		ctx, span := tracer.Start(ctx, "calculator."+op.Name,
			trace.WithAttributes(
				attribute.String("calculator.operation", op.Name),
				attribute.String("calculator.target", op.Target),
				attribute.String("request.id", requestID),
			),
		)
		defer span.End()

		f, err := form.FromRequest(r)
		if err != nil {
			observability.RecordError(ctx, span, logger, errorCounter, op.Name, "invalid request body", err)
			handlers.WriteError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		start := time.Now()
		panel := op.Run(ctx, f)
		elapsed := float64(time.Since(start).Microseconds()) / 1000.0 // ms

		attrs := metric.WithAttributes(
			attribute.String("operation", op.Name),
			attribute.String("outcome", string(panel.Outcome)),
		)
		opsCounter.Add(ctx, 1, attrs)
		opsHistogram.Record(ctx, elapsed, attrs)
		panelsTotal.WithLabelValues(op.Target, string(panel.Outcome)).Inc()

		span.SetAttributes(attribute.String("calculator.outcome", string(panel.Outcome)))

		switch panel.Outcome {
		case OutcomeOK:
			if panel.sell > 0 {
				sellGauge.Record(ctx, panel.sell, metric.WithAttributes(attribute.String("operation", op.Name)))
				span.SetAttributes(attribute.Float64("calculator.sell", panel.sell))
			}
			if job, ok := panel.Result.(pricing.SprayJobResult); ok {
				recordRegions(span, job)
			}
			span.AddEvent("panel.rendered", trace.WithAttributes(
				attribute.Float64("duration_ms", elapsed),
			))
			span.SetStatus(codes.Ok, "")

			logger.Info("calculator operation completed",
				zap.String("operation", op.Name),
				zap.String("target", op.Target),
				zap.Float64("sell", panel.sell),
				zap.String("request_id", requestID),
				zap.Float64("duration_ms", elapsed),
			)

		case OutcomeInvalid:
			errorCounter.Add(ctx, 1, metric.WithAttributes(attribute.String("operation", op.Name)))
			span.AddEvent("input.rejected", trace.WithAttributes(
				attribute.String("message", panel.Text),
			))

			logger.Warn("calculator input rejected",
				zap.String("operation", op.Name),
				zap.String("message", panel.Text),
				zap.String("request_id", requestID),
			)

		default:
			observability.RecordError(ctx, span, logger, errorCounter, op.Name, "calculator operation failed", errors.New(panel.Text))
		}

		handlers.WriteJSON(w, StatusFor(panel.Outcome), panel)
	}
}

// recordRegions adds one span event per sprayed region.
func recordRegions(span trace.Span, job pricing.SprayJobResult) {
	regions := []struct {
		name string
		bf   float64
	}{
		{"wall", job.WallBF},
		{"roof", job.RoofBF},
		{"gable", job.GableBF},
		{"linear", job.LinearBF},
	}
	for _, rg := range regions {
		if rg.bf <= 0 {
			continue
		}
		span.AddEvent("region.estimated", trace.WithAttributes(
			attribute.String("region", rg.name),
			attribute.Float64("board_feet", rg.bf),
		))
	}
}

// Catalog handles GET /calculators.
func (s *Service) Catalog(w http.ResponseWriter, r *http.Request) {
	entries := make([]CatalogEntry, 0, len(s.ops))
	for _, op := range s.ops {
		entries = append(entries, CatalogEntry{
			Name:   op.Name,
			Target: op.Target,
			Method: http.MethodPost,
			Path:   op.Path,
		})
	}
	handlers.WriteJSON(w, http.StatusOK, Catalog{Calculators: entries})
}
