package pricing

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mmcdani2/field-cheat-sheets/internal/format"
)

type CostPerBFInput struct {
	SetCost       float64
	ExpectedYield float64
}

// SellTarget is the per-BF price that leaves MarginPct gross margin.
type SellTarget struct {
	MarginPct float64 `json:"marginPct"`
	Sell      float64 `json:"sell"`
}

type CostPerBFResult struct {
	CostPerBF float64      `json:"costPerBF"`
	Targets   []SellTarget `json:"targets"`
}

// CostPerBF prices a board-foot from the cost of a set.
func CostPerBF(in CostPerBFInput, p Policy) (CostPerBFResult, error) {
	if in.SetCost <= 0 || in.ExpectedYield <= 0 {
		return CostPerBFResult{}, invalid("setCost", "Please enter valid Set Cost and Expected Yield.")
	}

	cost := in.SetCost / in.ExpectedYield
	if overflowed(cost) {
		return CostPerBFResult{}, invalid("setCost", MessageTooLarge)
	}
	targets := make([]SellTarget, 0, len(p.SellTargetMarginsPct))
	for _, m := range p.SellTargetMarginsPct {
		sell := sellAtMargin(cost, m)
		if overflowed(sell) {
			return CostPerBFResult{}, invalid("setCost", MessageTooLarge)
		}
		targets = append(targets, SellTarget{MarginPct: m, Sell: sell})
	}

	return CostPerBFResult{CostPerBF: cost, Targets: targets}, nil
}

// Text renders the costResults panel.
func (r CostPerBFResult) Text() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Cost per BF: $%s\n\nSuggested Sell Price Targets:", format.Fixed(r.CostPerBF, 3))
	for _, t := range r.Targets {
		fmt.Fprintf(&b, "\n%s%% GM: $%s / BF", strconv.FormatFloat(t.MarginPct, 'f', -1, 64), format.Fixed(t.Sell, 3))
	}
	return b.String()
}
