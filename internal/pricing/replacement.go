package pricing

import (
	"fmt"
	"math"
	"strings"

	"github.com/mmcdani2/field-cheat-sheets/internal/format"
)

// ReplacementDisclaimer accompanies every replacement number given to a customer.
const ReplacementDisclaimer = "Disclaimer: Budgetary estimate only. Final pricing is subject to confirmed load calculation, field measurements, equipment match, duct design/scope, code requirements, and full install conditions."

type ReplacementInput struct {
	Tons          float64
	EquipmentCost float64
	LaborHours    float64
	MiscCost      float64
	// TargetMarginPct of zero means the policy default.
	TargetMarginPct float64
	DuctNeeded      bool
	DuctFeet        float64
	DuctRatePerFt   float64
}

type ReplacementResult struct {
	LaborCost       float64 `json:"laborCost"`
	DuctCost        float64 `json:"ductCost"`
	TotalCost       float64 `json:"totalCost"`
	TargetMarginPct float64 `json:"targetMarginPct"`
	RawSell         float64 `json:"rawSell"`
	Sell            float64 `json:"sell"`
	Disclaimer      string  `json:"disclaimer"`
}

// Replacement builds a budgetary system replacement price from an explicit
// equipment cost plus optional duct work, rounded up to a clean quote.
func Replacement(in ReplacementInput, p Policy) (ReplacementResult, error) {
	switch {
	case in.Tons <= 0:
		return ReplacementResult{}, invalid("reTons", "System Capacity (tons) must be greater than 0.")
	case in.EquipmentCost <= 0:
		return ReplacementResult{}, invalid("reEquipCost", "Equipment Cost must be greater than 0.")
	case in.LaborHours < 0 || in.MiscCost < 0:
		return ReplacementResult{}, invalid("reLaborHours", "Labor Hours and Materials/Misc cannot be negative.")
	case in.DuctNeeded && in.DuctFeet <= 0:
		return ReplacementResult{}, invalid("reDuctFeet", "Enter Duct Linear Feet when duct work is set to Yes.")
	case in.DuctNeeded && in.DuctRatePerFt <= 0:
		return ReplacementResult{}, invalid("reDuctRate", "Enter a valid Duct Price per Foot.")
	}

	target := in.TargetMarginPct
	if target == 0 {
		target = p.ReplacementDefaultMarginPct
	}
	target = clamp(target, p.ReplacementMarginMinPct, p.ReplacementMarginMaxPct)

	labor := in.LaborHours * p.LoadedLaborRate
	var duct float64
	if in.DuctNeeded {
		duct = in.DuctFeet * in.DuctRatePerFt
	}
	total := in.EquipmentCost + labor + in.MiscCost + duct
	raw := sellAtMargin(total, target)
	sell := roundUpTo(raw, p.QuoteRoundingUSD)
	if overflowed(labor, duct, total, raw, sell) {
		return ReplacementResult{}, invalid("reEquipCost", MessageTooLarge)
	}

	return ReplacementResult{
		LaborCost:       labor,
		DuctCost:        duct,
		TotalCost:       total,
		TargetMarginPct: target,
		RawSell:         raw,
		Sell:            sell,
		Disclaimer:      ReplacementDisclaimer,
	}, nil
}

// Text renders the reResults panel. Costs stay off the customer-facing panel.
func (r ReplacementResult) Text() string {
	return fmt.Sprintf("Recommended Sell Price: %s\n\n%s", format.Money(r.Sell), r.Disclaimer)
}

const (
	defaultTier      = "good"
	defaultDuctScope = "none"
)

// TieredReplacementInput feeds the older per-ton tier estimate.
type TieredReplacementInput struct {
	Tons      float64
	Tier      string
	DuctScope string
	// ComplexityMult of zero means 1.
	ComplexityMult float64
	Accessories    float64
	TargetPct      float64
}

type TieredReplacementResult struct {
	Tons           float64 `json:"tons"`
	Tier           string  `json:"tier"`
	DuctScope      string  `json:"ductScope"`
	ComplexityMult float64 `json:"complexityMult"`
	Accessories    float64 `json:"accessories"`
	TargetPct      float64 `json:"targetPct"`
	CostBasis      float64 `json:"costBasis"`
	Low            float64 `json:"low"`
	Target         float64 `json:"target"`
	High           float64 `json:"high"`
}

// TieredReplacement is the per-ton estimate quoted before equipment costs were entered
// directly. It returns a LOW/TARGET/HIGH range instead of one rounded number.
func TieredReplacement(in TieredReplacementInput, p Policy) (TieredReplacementResult, error) {
	if in.Tons <= 0 {
		return TieredReplacementResult{}, invalid("reTons", "System Capacity (tons) must be greater than 0.")
	}

	tier := in.Tier
	if tier == "" {
		tier = defaultTier
	}
	perTon, ok := p.Tiers.CostPerTon[tier]
	if !ok {
		perTon = p.Tiers.CostPerTon[defaultTier]
	}

	ductScope := in.DuctScope
	if ductScope == "" {
		ductScope = defaultDuctScope
	}

	mult := in.ComplexityMult
	if mult == 0 {
		mult = 1
	}

	cost := (in.Tons*perTon + p.Tiers.DuctAdders[ductScope] + in.Accessories) * mult
	target := sellAtMargin(cost, clamp(in.TargetPct, p.ReplacementMarginMinPct, p.ReplacementMarginMaxPct))
	if overflowed(cost, target, target*p.Tiers.LowFactor, target*p.Tiers.HighFactor) {
		return TieredReplacementResult{}, invalid("reTons", MessageTooLarge)
	}

	return TieredReplacementResult{
		Tons:           in.Tons,
		Tier:           tier,
		DuctScope:      ductScope,
		ComplexityMult: mult,
		Accessories:    in.Accessories,
		TargetPct:      in.TargetPct,
		CostBasis:      cost,
		Low:            target * p.Tiers.LowFactor,
		Target:         target,
		High:           target * p.Tiers.HighFactor,
	}, nil
}

// Text renders the legacy reResults panel.
func (r TieredReplacementResult) Text() string {
	return fmt.Sprintf(`Inputs:
Capacity: %s tons
Tier: %s
Duct Scope: %s
Complexity Multiplier: %s
Accessories: %s
Target Margin: %s%%

Estimated Internal Cost Basis: %s

Budgetary Sell Range:
LOW: %s
TARGET: %s
HIGH: %s`,
		format.Fixed(r.Tons, 1),
		strings.ToUpper(r.Tier),
		r.DuctScope,
		format.Fixed(r.ComplexityMult, 2),
		format.Money(r.Accessories),
		format.Fixed(r.TargetPct, 1),
		format.Money(r.CostBasis),
		format.Money(r.Low),
		format.Money(r.Target),
		format.Money(r.High),
	)
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}

func roundUpTo(v, step float64) float64 {
	return math.Ceil(v/step) * step
}

// SellPrice is the rounded quote.
func (r ReplacementResult) SellPrice() float64 { return r.Sell }

// SellPrice is the TARGET point of the range.
func (r TieredReplacementResult) SellPrice() float64 { return r.Target }
