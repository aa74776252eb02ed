package pricing

import (
	"fmt"

	"github.com/mmcdani2/field-cheat-sheets/internal/format"
)

type GrossMarginInput struct {
	SellPrice    float64
	MaterialCost float64
	LaborHours   float64
	LaborRate    float64
	OtherCost    float64
	TargetPct    float64
}

type GrossMarginResult struct {
	Revenue        float64 `json:"revenue"`
	Material       float64 `json:"material"`
	LaborHours     float64 `json:"laborHours"`
	LaborRate      float64 `json:"laborRate"`
	LaborCost      float64 `json:"laborCost"`
	Other          float64 `json:"other"`
	TotalCost      float64 `json:"totalCost"`
	GrossProfit    float64 `json:"grossProfit"`
	GrossMarginPct float64 `json:"grossMarginPct"`
	TargetPct      float64 `json:"targetPct"`
	Pass           bool    `json:"pass"`
}

// GrossMargin checks a quoted job against the target margin.
func GrossMargin(in GrossMarginInput) (GrossMarginResult, error) {
	if in.SellPrice <= 0 {
		return GrossMarginResult{}, invalid("gmSellPrice", "Sell Price must be greater than 0.")
	}

	labor := in.LaborHours * in.LaborRate
	total := in.MaterialCost + labor + in.OtherCost
	gp := in.SellPrice - total
	gm := gp / in.SellPrice * 100

	if overflowed(labor, total, gp, gm) {
		return GrossMarginResult{}, invalid("gmSellPrice", MessageTooLarge)
	}

	return GrossMarginResult{
		Revenue:        in.SellPrice,
		Material:       in.MaterialCost,
		LaborHours:     in.LaborHours,
		LaborRate:      in.LaborRate,
		LaborCost:      labor,
		Other:          in.OtherCost,
		TotalCost:      total,
		GrossProfit:    gp,
		GrossMarginPct: gm,
		TargetPct:      in.TargetPct,
		Pass:           gm >= in.TargetPct,
	}, nil
}

// Text renders the gmResults panel.
func (r GrossMarginResult) Text() string {
	status := "BELOW TARGET ⚠️"
	if r.Pass {
		status = "PASS ✅"
	}

	return fmt.Sprintf(`Revenue: %s
Material: %s
Labor (%sh @ %s/h): %s
Other Costs: %s
Total Cost: %s

Gross Profit: %s
Gross Margin: %s%%
Target Margin: %s%%
Status: %s`,
		format.Money(r.Revenue),
		format.Money(r.Material),
		format.Fixed(r.LaborHours, 2), format.Money(r.LaborRate), format.Money(r.LaborCost),
		format.Money(r.Other),
		format.Money(r.TotalCost),
		format.Money(r.GrossProfit),
		format.Fixed(r.GrossMarginPct, 1),
		format.Fixed(r.TargetPct, 1),
		status,
	)
}
