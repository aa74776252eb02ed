package pricing

import (
	"fmt"
	"math"

	"github.com/mmcdani2/field-cheat-sheets/internal/format"
)

const defaultRepairType = "Repair"

type RepairQuoteInput struct {
	RepairType string
	PartCost   float64
	LaborHours float64
}

type RepairQuoteResult struct {
	RepairType     string  `json:"repairType"`
	LaborCost      float64 `json:"laborCost"`
	TotalCost      float64 `json:"totalCost"`
	RawSell        float64 `json:"rawSell"`
	Sell           float64 `json:"sell"`
	GrossProfit    float64 `json:"grossProfit"`
	GrossMarginPct float64 `json:"grossMarginPct"`
}

// RepairQuote prices a repair at the target margin, never below the minimum ticket.
func RepairQuote(in RepairQuoteInput, p Policy) (RepairQuoteResult, error) {
	if in.PartCost < 0 || in.LaborHours < 0 {
		return RepairQuoteResult{}, invalid("rqPartCost", "Part Cost and Labor Hours cannot be negative.")
	}
	if in.PartCost == 0 && in.LaborHours == 0 {
		return RepairQuoteResult{}, invalid("rqPartCost", "Enter Part Cost and/or Labor Hours.")
	}

	repairType := in.RepairType
	if repairType == "" {
		repairType = defaultRepairType
	}

	labor := in.LaborHours * p.LoadedLaborRate
	total := in.PartCost + labor
	raw := sellAtMargin(total, p.RepairTargetMarginPct)
	sell := math.Max(raw, p.MinTicket)
	gp := sell - total

	var gm float64
	if sell > 0 {
		gm = gp / sell * 100
	}

	if overflowed(labor, total, raw, sell, gp, gm) {
		return RepairQuoteResult{}, invalid("rqPartCost", MessageTooLarge)
	}

	return RepairQuoteResult{
		RepairType:     repairType,
		LaborCost:      labor,
		TotalCost:      total,
		RawSell:        raw,
		Sell:           sell,
		GrossProfit:    gp,
		GrossMarginPct: gm,
	}, nil
}

// Text renders the rqResults panel.
func (r RepairQuoteResult) Text() string {
	return fmt.Sprintf(`Repair Type: %s

Recommended Sell Price: %s

Gross Profit: %s
Gross Margin: %s%%`,
		r.RepairType,
		format.Money(r.Sell),
		format.Money(r.GrossProfit),
		format.Fixed(r.GrossMarginPct, 1),
	)
}

// SellPrice is the quoted price.
func (r RepairQuoteResult) SellPrice() float64 { return r.Sell }
