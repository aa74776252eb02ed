package calculator

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/mmcdani2/field-cheat-sheets/internal/observability"
	"github.com/mmcdani2/field-cheat-sheets/internal/pricing"
	"github.com/mmcdani2/field-cheat-sheets/internal/testutil"
	"github.com/mmcdani2/field-cheat-sheets/internal/walls"
)

type panelBody struct {
	Target  string  `json:"target"`
	Text    string  `json:"text"`
	OK      bool    `json:"ok"`
	Outcome Outcome `json:"outcome"`
}

func newTestRouter(t *testing.T, endpoint string) http.Handler {
	t.Helper()
	r := chi.NewRouter()
	newTestService(t, endpoint).RegisterRoutes(r)
	return r
}

func TestHandleRepairQuoteFromHTMLForm(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	oldLogger := observability.Logger
	observability.Logger = zap.New(core)
	t.Cleanup(func() { observability.Logger = oldLogger })

	router := newTestRouter(t, "http://127.0.0.1:0")
	req := testutil.PostForm("/hvac/repair-quote", url.Values{
		"rqRepairType": {"Capacitor"},
		"rqLaborHours": {"1"},
	})

	w := testutil.ExecuteRequest(req, router)
	testutil.CheckResponseCode(t, http.StatusOK, w.Code)

	var body panelBody
	testutil.DecodeJSONBody(t, w.Body, &body)

	if body.Target != TargetRepair || !body.OK {
		t.Fatalf("unexpected panel %+v", body)
	}
	if !strings.HasPrefix(body.Text, "Repair Type: Capacitor\n\nRecommended Sell Price: $125.00") {
		t.Fatalf("unexpected text %q", body.Text)
	}

	entries := logs.FilterMessage("calculator operation completed").All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 completion log, got %d", len(entries))
	}
	if got := entries[0].ContextMap()["operation"]; got != "repair-quote" {
		t.Fatalf("expected operation repair-quote, got %#v", got)
	}
}

func TestHandleYieldRejectsInvalidInputWith422(t *testing.T) {
	router := newTestRouter(t, "http://127.0.0.1:0")
	req := testutil.PostJSON(t, "/spray-foam/yield", map[string]any{"areaSqft": 1000, "thicknessIn": 0})

	w := testutil.ExecuteRequest(req, router)
	testutil.CheckResponseCode(t, http.StatusUnprocessableEntity, w.Code)

	var body panelBody
	testutil.DecodeJSONBody(t, w.Body, &body)

	if body.OK || body.Outcome != OutcomeInvalid {
		t.Fatalf("unexpected panel %+v", body)
	}
	if body.Text != "Please enter valid Area, Thickness, and Sets Used." {
		t.Fatalf("unexpected text %q", body.Text)
	}
}

func TestHandleYieldOverflowIs422WithBody(t *testing.T) {
	router := newTestRouter(t, "http://127.0.0.1:0")
	req := testutil.PostJSON(t, "/spray-foam/yield", map[string]any{"areaSqft": 1e200, "thicknessIn": 1e200, "setsUsed": 1})

	w := testutil.ExecuteRequest(req, router)
	testutil.CheckResponseCode(t, http.StatusUnprocessableEntity, w.Code)

	var body panelBody
	testutil.DecodeJSONBody(t, w.Body, &body)
	if body.Text != pricing.MessageTooLarge {
		t.Fatalf("unexpected text %q", body.Text)
	}
}

func TestHandleWallsRejectsOversizedCount(t *testing.T) {
	router := newTestRouter(t, "http://127.0.0.1:0")
	req := testutil.PostForm("/spray-foam/walls", url.Values{"sfWallCount": {"1099511627776"}})

	w := testutil.ExecuteRequest(req, router)
	testutil.CheckResponseCode(t, http.StatusUnprocessableEntity, w.Code)

	var body panelBody
	testutil.DecodeJSONBody(t, w.Body, &body)
	if body.Text != walls.NoticeInvalidCount {
		t.Fatalf("unexpected text %q", body.Text)
	}
}

func TestHandleRejectsOversizedBody(t *testing.T) {
	router := newTestRouter(t, "http://127.0.0.1:0")
	big := strings.Repeat("x", 2<<20)
	req := testutil.PostForm("/hvac/repair-quote", url.Values{"rqRepairType": {big}})

	w := testutil.ExecuteRequest(req, router)
	testutil.CheckResponseCode(t, http.StatusBadRequest, w.Code)
}

func TestHandleRejectsUndecodableBody(t *testing.T) {
	router := newTestRouter(t, "http://127.0.0.1:0")
	req := httptest.NewRequest(http.MethodPost, "/hvac/gross-margin", strings.NewReader(`{"gmSellPrice":`))
	req.Header.Set("Content-Type", "application/json")

	w := testutil.ExecuteRequest(req, router)
	testutil.CheckResponseCode(t, http.StatusBadRequest, w.Code)

	var body map[string]string
	testutil.DecodeJSONBody(t, w.Body, &body)
	if body["error"] != "invalid request body" {
		t.Fatalf("unexpected error body %#v", body)
	}
}

func TestHandleRefrigerantLogUpstreamFailureIs502(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(upstream.Close)

	router := newTestRouter(t, upstream.URL)
	req := testutil.PostJSON(t, "/hvac/refrigerant-log", map[string]any{
		"refTech":            "Dana",
		"refJobNumber":       "J-1",
		"refRefrigerantType": "R-22",
	})

	w := testutil.ExecuteRequest(req, router)
	testutil.CheckResponseCode(t, http.StatusBadGateway, w.Code)

	var body panelBody
	testutil.DecodeJSONBody(t, w.Body, &body)
	if body.Text != "Submit failed: HTTP 500" || body.Target != TargetRefLog {
		t.Fatalf("unexpected panel %+v", body)
	}
}

func TestHandleGateAcceptsJSONCheckboxes(t *testing.T) {
	router := newTestRouter(t, "http://127.0.0.1:0")

	fields := map[string]any{}
	for _, id := range []string{"ccThermostat", "ccFilter", "ccDrain", "ccStatic", "ccSHSC", "ccDeltaT", "ccAmpsVolts", "ccPhotos"} {
		fields[id] = true
	}
	fields["ccCustomerWalk"] = false

	w := testutil.ExecuteRequest(testutil.PostJSON(t, "/hvac/commissioning-gate", fields), router)
	testutil.CheckResponseCode(t, http.StatusOK, w.Code)

	var body panelBody
	testutil.DecodeJSONBody(t, w.Body, &body)
	if !strings.HasSuffix(body.Text, "Missing 1 required checkpoint(s):\n- ccCustomerWalk") {
		t.Fatalf("unexpected text %q", body.Text)
	}
}

func TestCatalogListsEveryRoute(t *testing.T) {
	router := newTestRouter(t, "http://127.0.0.1:0")

	w := testutil.ExecuteRequest(httptest.NewRequest(http.MethodGet, "/calculators", nil), router)
	testutil.CheckResponseCode(t, http.StatusOK, w.Code)

	var catalog Catalog
	testutil.DecodeJSONBody(t, w.Body, &catalog)

	if len(catalog.Calculators) != 11 {
		t.Fatalf("expected 11 calculators, got %d", len(catalog.Calculators))
	}
	first := catalog.Calculators[0]
	if first.Name != "yield" || first.Path != "/spray-foam/yield" || first.Method != http.MethodPost {
		t.Fatalf("unexpected first entry %+v", first)
	}
}

func TestStatusFor(t *testing.T) {
	tests := map[Outcome]int{
		OutcomeOK:      http.StatusOK,
		OutcomeInvalid: http.StatusUnprocessableEntity,
		OutcomeFailed:  http.StatusBadGateway,
	}
	for o, want := range tests {
		if got := StatusFor(o); got != want {
			t.Fatalf("%s: expected %d, got %d", o, want, got)
		}
	}
}
