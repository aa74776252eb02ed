// Package pricing holds the quoting and yield calculators used in the field. Every
// calculator is a pure function of its input record and the shop's Policy.
package pricing

import (
	"errors"
	"fmt"
)

// Policy collects the fixed shop numbers the calculators quote against. It is loaded
// from configuration so the numbers can be tuned without a release.
type Policy struct {
	// LoadedLaborRate is the fully burdened technician cost, USD per hour.
	LoadedLaborRate float64 `yaml:"loaded_labor_rate" json:"loadedLaborRate"`

	RepairTargetMarginPct float64 `yaml:"repair_target_margin_pct" json:"repairTargetMarginPct"`
	// MinTicket is the smallest amount a service call is ever billed at.
	MinTicket float64 `yaml:"min_ticket" json:"minTicket"`

	// DefaultSetYield is the theoretical board-feet per set when none is entered.
	DefaultSetYield      float64   `yaml:"default_set_yield" json:"defaultSetYield"`
	SellTargetMarginsPct []float64 `yaml:"sell_target_margins_pct" json:"sellTargetMarginsPct"`
	OCCostPerBF          float64   `yaml:"oc_cost_per_bf" json:"ocCostPerBF"`
	CCCostPerBF          float64   `yaml:"cc_cost_per_bf" json:"ccCostPerBF"`

	ReplacementDefaultMarginPct float64 `yaml:"replacement_default_margin_pct" json:"replacementDefaultMarginPct"`
	ReplacementMarginMinPct     float64 `yaml:"replacement_margin_min_pct" json:"replacementMarginMinPct"`
	ReplacementMarginMaxPct     float64 `yaml:"replacement_margin_max_pct" json:"replacementMarginMaxPct"`
	// QuoteRoundingUSD is the step replacement quotes are rounded up to.
	QuoteRoundingUSD float64 `yaml:"quote_rounding_usd" json:"quoteRoundingUSD"`

	Tiers TierPolicy `yaml:"tiers" json:"tiers"`
}

// TierPolicy drives the older tier-based replacement estimate.
type TierPolicy struct {
	CostPerTon map[string]float64 `yaml:"cost_per_ton" json:"costPerTon"`
	DuctAdders map[string]float64 `yaml:"duct_adders" json:"ductAdders"`
	LowFactor  float64            `yaml:"low_factor" json:"lowFactor"`
	HighFactor float64            `yaml:"high_factor" json:"highFactor"`
}

// DefaultPolicy returns the numbers the shop has always quoted with.
func DefaultPolicy() Policy {
	return Policy{
		LoadedLaborRate:             40,
		RepairTargetMarginPct:       40,
		MinTicket:                   125,
		DefaultSetYield:             4000,
		SellTargetMarginsPct:        []float64{40, 50, 60},
		OCCostPerBF:                 0.09,
		CCCostPerBF:                 0.475,
		ReplacementDefaultMarginPct: 40,
		ReplacementMarginMinPct:     1,
		ReplacementMarginMaxPct:     95,
		QuoteRoundingUSD:            50,
		Tiers: TierPolicy{
			CostPerTon: map[string]float64{"good": 1800, "better": 2300, "best": 2900},
			DuctAdders: map[string]float64{"none": 0, "partial": 1800, "full": 4500},
			LowFactor:  0.93,
			HighFactor: 1.12,
		},
	}
}

// Validate reports every policy value that would make a calculator divide by zero
// or quote below cost.
func (p Policy) Validate() error {
	var errs []error

	positive := map[string]float64{
		"loaded_labor_rate":  p.LoadedLaborRate,
		"min_ticket":         p.MinTicket,
		"default_set_yield":  p.DefaultSetYield,
		"oc_cost_per_bf":     p.OCCostPerBF,
		"cc_cost_per_bf":     p.CCCostPerBF,
		"quote_rounding_usd": p.QuoteRoundingUSD,
	}
	for name, v := range positive {
		if v <= 0 {
			errs = append(errs, fmt.Errorf("policy %s must be greater than 0, got %g", name, v))
		}
	}

	margins := map[string]float64{
		"repair_target_margin_pct":       p.RepairTargetMarginPct,
		"replacement_default_margin_pct": p.ReplacementDefaultMarginPct,
		"replacement_margin_min_pct":     p.ReplacementMarginMinPct,
		"replacement_margin_max_pct":     p.ReplacementMarginMaxPct,
	}
	for name, v := range margins {
		if !validMargin(v) {
			errs = append(errs, fmt.Errorf("policy %s must be between 0 and 100 exclusive, got %g", name, v))
		}
	}
	if p.ReplacementMarginMinPct > p.ReplacementMarginMaxPct {
		errs = append(errs, fmt.Errorf("policy replacement margin range [%g, %g] is inverted",
			p.ReplacementMarginMinPct, p.ReplacementMarginMaxPct))
	}

	if len(p.SellTargetMarginsPct) == 0 {
		errs = append(errs, errors.New("policy sell_target_margins_pct must not be empty"))
	}
	for _, m := range p.SellTargetMarginsPct {
		if !validMargin(m) {
			errs = append(errs, fmt.Errorf("policy sell target margin must be between 0 and 100 exclusive, got %g", m))
		}
	}

	if _, ok := p.Tiers.CostPerTon[defaultTier]; !ok {
		errs = append(errs, fmt.Errorf("policy tiers.cost_per_ton must define %q", defaultTier))
	}

	return errors.Join(errs...)
}

func validMargin(pct float64) bool {
	return pct > 0 && pct < 100
}

// sellAtMargin returns the price at which cost leaves marginPct of the price as profit.
func sellAtMargin(cost, marginPct float64) float64 {
	return cost / (1 - marginPct/100)
}
