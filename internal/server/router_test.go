package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mmcdani2/field-cheat-sheets/internal/calculator"
	"github.com/mmcdani2/field-cheat-sheets/internal/observability"
	"github.com/mmcdani2/field-cheat-sheets/internal/pricing"
	"github.com/mmcdani2/field-cheat-sheets/internal/readiness"
	"github.com/mmcdani2/field-cheat-sheets/internal/reflog"
	"github.com/mmcdani2/field-cheat-sheets/internal/testutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	observability.Logger = zap.NewNop()
	if err := calculator.InitMetrics(); err != nil {
		t.Fatalf("initializing calculator metrics: %v", err)
	}
	svc := calculator.NewService(pricing.DefaultPolicy(), readiness.DefaultThresholds(), reflog.NewSubmitter("http://127.0.0.1:0", nil))
	return NewRouter(svc)
}

func TestNewRouterHealthEndpoint(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}

	if body := w.Body.String(); body != "ok" {
		t.Fatalf("expected body %q, got %q", "ok", body)
	}
}

func TestNewRouterCostPerBFSetsHeaderAndOmitsRequestIDInBody(t *testing.T) {
	router := newTestRouter(t)

	req := testutil.PostJSON(t, "/spray-foam/cost-per-bf", map[string]any{"setCost": 2000, "expectedYield": 4000})
	w := testutil.ExecuteRequest(req, router)

	testutil.CheckResponseCode(t, http.StatusOK, w.Code)

	requestID := w.Result().Header.Get("X-Request-ID")
	if requestID == "" {
		t.Fatal("expected X-Request-ID header to be set")
	}
	if _, err := uuid.Parse(requestID); err != nil {
		t.Fatalf("expected valid UUID in X-Request-ID, got %q: %v", requestID, err)
	}

	var payload map[string]any
	testutil.DecodeJSONBody(t, w.Result().Body, &payload)

	if _, ok := payload["request_id"]; ok {
		t.Fatal("did not expect request_id field in success JSON body")
	}

	want := "Cost per BF: $0.500\n\nSuggested Sell Price Targets:\n40% GM: $0.833 / BF\n50% GM: $1.000 / BF\n60% GM: $1.250 / BF"
	if got := payload["text"]; got != want {
		t.Fatalf("expected text %q, got %#v", want, got)
	}
	if got := payload["target"]; got != "costResults" {
		t.Fatalf("expected target costResults, got %#v", got)
	}
}

func TestNewRouterMetricsExposesPanelCounter(t *testing.T) {
	router := newTestRouter(t)

	_ = testutil.ExecuteRequest(testutil.PostJSON(t, "/hvac/gross-margin", map[string]any{"gmSellPrice": 0}), router)

	w := testutil.ExecuteRequest(httptest.NewRequest(http.MethodGet, "/metrics", nil), router)
	testutil.CheckResponseCode(t, http.StatusOK, w.Code)

	if !strings.Contains(w.Body.String(), `fieldcalc_panels_total{outcome="invalid",target="gmResults"}`) {
		t.Fatal("expected panel counter for rejected gross margin in /metrics output")
	}
}

func TestNewRouterUnknownRouteIs404(t *testing.T) {
	router := newTestRouter(t)

	w := testutil.ExecuteRequest(httptest.NewRequest(http.MethodPost, "/calculator/add", nil), router)
	testutil.CheckResponseCode(t, http.StatusNotFound, w.Code)
}
