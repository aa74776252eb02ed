package reflog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"strconv"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/mmcdani2/field-cheat-sheets/internal/observability"
)

const (
	contentType = "text/plain;charset=utf-8"

	MessageSubmitting = "Submitting..."
	MessageSuccess    = "Log submitted successfully ✅"
)

var tracer = otel.Tracer("reflog")

// Kind classifies a submission outcome.
type Kind string

const (
	KindSubmitted Kind = "submitted"
	KindInvalid   Kind = "invalid"
	KindRejected  Kind = "rejected"
	KindNetwork   Kind = "network"
)

// Outcome is what the log panel shows after a submission attempt.
type Outcome struct {
	Kind    Kind
	Message string
	// Reset is set only when the log was accepted.
	Reset *Reset
}

// OK reports whether the endpoint accepted the log.
func (o Outcome) OK() bool {
	return o.Kind == KindSubmitted
}

// Submitter posts logs to a collection endpoint. Each Submit makes exactly one
// request and never retries.
type Submitter struct {
	endpoint string
	client   *http.Client
}

// NewSubmitter returns a Submitter posting to endpoint. A nil client gets a traced
// client using the default transport and no timeout.
func NewSubmitter(endpoint string, client *http.Client) *Submitter {
	if client == nil {
		client = &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)}
	}
	return &Submitter{endpoint: endpoint, client: client}
}

// Endpoint returns the URL logs are posted to.
func (s *Submitter) Endpoint() string {
	return s.endpoint
}

// Submit validates l and, if valid, posts it once.
func (s *Submitter) Submit(ctx context.Context, l Log) Outcome {
	if err := l.Validate(); err != nil {
		return Outcome{Kind: KindInvalid, Message: validationMessage(err)}
	}

	ctx, span := tracer.Start(ctx, "reflog.submit",
		trace.WithAttributes(
			attribute.String("reflog.job_number", l.JobNumber),
			attribute.String("reflog.refrigerant_type", l.RefrigerantType),
		),
	)
	defer span.End()

	logger := observability.LoggerWithTrace(ctx)

	out := s.post(ctx, l)
	if out.OK() {
		span.SetStatus(codes.Ok, "")
	} else {
		span.SetStatus(codes.Error, out.Message)
	}

	logger.Info("refrigerant log submission finished",
		zap.String("outcome", string(out.Kind)),
		zap.String("job_number", l.JobNumber),
		zap.String("request_id", observability.RequestIDFromContext(ctx)),
	)
	return out
}

func (s *Submitter) post(ctx context.Context, l Log) Outcome {
	body, err := l.Encode()
	if err != nil {
		return networkFailure(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return networkFailure(err)
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := s.client.Do(req)
	if err != nil {
		return networkFailure(err)
	}
	defer resp.Body.Close()

	// An unreadable or non-JSON body reads as an empty reply.
	reply := map[string]any{}
	if raw, err := io.ReadAll(resp.Body); err == nil {
		_ = json.Unmarshal(raw, &reply)
	}

	statusOK := resp.StatusCode >= 200 && resp.StatusCode < 300
	if !statusOK || !truthy(reply["ok"]) {
		reason := fmt.Sprintf("HTTP %d", resp.StatusCode)
		if truthy(reply["error"]) {
			reason = jsString(reply["error"])
		}
		return Outcome{Kind: KindRejected, Message: "Submit failed: " + reason}
	}

	return Outcome{Kind: KindSubmitted, Message: MessageSuccess, Reset: FormReset()}
}

func networkFailure(err error) Outcome {
	return Outcome{Kind: KindNetwork, Message: "Network/error: " + err.Error()}
}

// truthy applies JavaScript truthiness to a decoded JSON value.
func truthy(v any) bool {
	switch tv := v.(type) {
	case nil:
		return false
	case bool:
		return tv
	case float64:
		return tv != 0 && !math.IsNaN(tv)
	case string:
		return tv != ""
	default:
		return true
	}
}

func jsString(v any) string {
	switch tv := v.(type) {
	case string:
		return tv
	case float64:
		return strconv.FormatFloat(tv, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(tv)
	case map[string]any:
		return "[object Object]"
	default:
		return fmt.Sprint(tv)
	}
}
