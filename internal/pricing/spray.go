package pricing

import (
	"fmt"

	"github.com/mmcdani2/field-cheat-sheets/internal/format"
	"github.com/mmcdani2/field-cheat-sheets/internal/walls"
)

// Foam is the spray foam product a region is sprayed with.
type Foam string

const (
	FoamOC Foam = "OC"
	FoamCC Foam = "CC"
)

// ParseFoam maps a select value to a foam; anything but "CC" is open cell.
func ParseFoam(s string) Foam {
	if s == string(FoamCC) {
		return FoamCC
	}
	return FoamOC
}

// Adjuster inflates a foam bucket for framing and waste, both as fractions
// (0.10 is ten percent).
type Adjuster struct {
	Framing float64
	Waste   float64
}

func (a Adjuster) apply(bf float64) float64 {
	return bf * (1 + a.Framing + a.Waste)
}

// SprayJobInput is a full spray insulation take-off.
type SprayJobInput struct {
	Walls           walls.List
	OpeningsSqft    float64
	WallThicknessIn float64
	WallFoam        Foam

	RoofLength      float64
	RoofWidth       float64
	PitchMultiplier float64
	RoofThicknessIn float64
	RoofFoam        Foam

	GableBase        float64
	GableHeight      float64
	GableCount       float64
	GableThicknessIn float64
	GableFoam        Foam

	LinearFt          float64
	LinearHeight      float64
	LinearThicknessIn float64
	LinearFoam        Foam

	OC Adjuster
	CC Adjuster

	Helpers     float64
	Hours       float64
	LoadedRate  float64
	Fuel        float64
	Consumables float64

	TargetMarginPct float64
}

type SprayJobResult struct {
	WallBF   float64 `json:"wallBF"`
	RoofBF   float64 `json:"roofBF"`
	GableBF  float64 `json:"gableBF"`
	LinearBF float64 `json:"linearBF"`

	OCBF    float64 `json:"ocBF"`
	CCBF    float64 `json:"ccBF"`
	OCAdjBF float64 `json:"ocAdjBF"`
	CCAdjBF float64 `json:"ccAdjBF"`

	MaterialCost    float64 `json:"materialCost"`
	LaborCost       float64 `json:"laborCost"`
	Fuel            float64 `json:"fuel"`
	Consumables     float64 `json:"consumables"`
	TotalCost       float64 `json:"totalCost"`
	TargetMarginPct float64 `json:"targetMarginPct"`
	Sell            float64 `json:"sell"`
}

// SprayJob estimates a whole spray job: board-feet per region rolled into open and
// closed cell buckets, material at the policy rates, crew labor and extras.
func SprayJob(in SprayJobInput, p Policy) (SprayJobResult, error) {
	if !validMargin(in.TargetMarginPct) {
		return SprayJobResult{}, invalid("sfTargetMargin", "Target Margin must be between 1 and 99.")
	}

	wallNet := max(0, in.Walls.GrossSqft()-in.OpeningsSqft)
	r := SprayJobResult{
		WallBF:   wallNet * in.WallThicknessIn,
		RoofBF:   in.RoofLength * in.RoofWidth * in.PitchMultiplier * in.RoofThicknessIn,
		GableBF:  0.5 * in.GableBase * in.GableHeight * in.GableCount * in.GableThicknessIn,
		LinearBF: in.LinearFt * in.LinearHeight * in.LinearThicknessIn,
	}

	add := func(f Foam, bf float64) {
		if bf <= 0 {
			return
		}
		if f == FoamCC {
			r.CCBF += bf
		} else {
			r.OCBF += bf
		}
	}
	add(in.WallFoam, r.WallBF)
	add(in.RoofFoam, r.RoofBF)
	add(in.GableFoam, r.GableBF)
	add(in.LinearFoam, r.LinearBF)

	r.OCAdjBF = in.OC.apply(r.OCBF)
	r.CCAdjBF = in.CC.apply(r.CCBF)

	r.MaterialCost = r.OCAdjBF*p.OCCostPerBF + r.CCAdjBF*p.CCCostPerBF
	r.LaborCost = in.Helpers * in.Hours * in.LoadedRate
	r.Fuel = in.Fuel
	r.Consumables = in.Consumables
	r.TotalCost = r.MaterialCost + r.LaborCost + r.Fuel + r.Consumables
	r.TargetMarginPct = in.TargetMarginPct
	r.Sell = sellAtMargin(r.TotalCost, in.TargetMarginPct)

	if overflowed(r.WallBF, r.RoofBF, r.GableBF, r.LinearBF, r.OCBF, r.CCBF, r.OCAdjBF, r.CCAdjBF,
		r.MaterialCost, r.LaborCost, r.TotalCost, r.Sell) {
		return SprayJobResult{}, invalid("sfTargetMargin", MessageTooLarge)
	}
	return r, nil
}

// Text renders the sfFullJobResults panel.
func (r SprayJobResult) Text() string {
	return fmt.Sprintf(`OC Adjusted BF: %s
CC Adjusted BF: %s

Material Cost: %s
Labor Cost: %s
Fuel: %s
Consumables: %s
Total Cost: %s

Target Margin: %s%%
Recommended Sell Price: %s`,
		format.Fixed(r.OCAdjBF, 0),
		format.Fixed(r.CCAdjBF, 0),
		format.Money(r.MaterialCost),
		format.Money(r.LaborCost),
		format.Money(r.Fuel),
		format.Money(r.Consumables),
		format.Money(r.TotalCost),
		format.Fixed(r.TargetMarginPct, 1),
		format.Money(r.Sell),
	)
}

// SellPrice is the recommended job price.
func (r SprayJobResult) SellPrice() float64 { return r.Sell }
