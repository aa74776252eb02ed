package calculator

import (
	"context"

	"github.com/mmcdani2/field-cheat-sheets/internal/form"
	"github.com/mmcdani2/field-cheat-sheets/internal/reflog"
)

// Outcome classifies how an operation ended.
type Outcome string

const (
	OutcomeOK      Outcome = "ok"
	OutcomeInvalid Outcome = "invalid"
	OutcomeFailed  Outcome = "failed"
)

// Panel is what one calculator writes into its output element.
type Panel struct {
	// Target is the output element id the text belongs in.
	Target  string  `json:"target"`
	Text    string  `json:"text"`
	OK      bool    `json:"ok"`
	Outcome Outcome `json:"outcome"`
	// Result is the typed calculation behind Text; nil when the inputs were rejected.
	Result any `json:"result,omitempty"`
	// Reset lists the inputs the page clears after a submitted log.
	Reset *reflog.Reset `json:"reset,omitempty"`

	sell float64
}

// Operation is one calculator bound to its output element and route.
type Operation struct {
	Name   string
	Target string
	Path   string
	run    func(ctx context.Context, f form.Form) Panel
}

// Run evaluates the operation against f.
func (o Operation) Run(ctx context.Context, f form.Form) Panel {
	return o.run(ctx, f)
}

// CatalogEntry describes an operation for GET /calculators.
type CatalogEntry struct {
	Name   string `json:"name"`
	Target string `json:"target"`
	Method string `json:"method"`
	Path   string `json:"path"`
}

// Catalog is the JSON response for GET /calculators.
type Catalog struct {
	Calculators []CatalogEntry `json:"calculators"`
}
