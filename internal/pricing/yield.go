package pricing

import (
	"fmt"

	"github.com/mmcdani2/field-cheat-sheets/internal/format"
)

// YieldInput describes one finished spray job.
type YieldInput struct {
	AreaSqft    float64
	ThicknessIn float64
	SetsUsed    float64
	// TheoreticalSetYield is BF per set; zero means the policy default.
	TheoreticalSetYield float64
}

// YieldResult compares installed board-feet against what the sets should have made.
type YieldResult struct {
	InstalledBF       float64 `json:"installedBF"`
	ActualYieldPerSet float64 `json:"actualYieldPerSet"`
	TheoreticalPerSet float64 `json:"theoreticalPerSet"`
	TheoreticalTotal  float64 `json:"theoreticalTotal"`
	EfficiencyPct     float64 `json:"efficiencyPct"`
	// WastePct goes negative when the rig out-yields the drum rating.
	WastePct    float64 `json:"wastePct"`
	ShortfallBF float64 `json:"shortfallBF"`
}

// Yield computes set efficiency for a job.
func Yield(in YieldInput, p Policy) (YieldResult, error) {
	if in.AreaSqft <= 0 || in.ThicknessIn <= 0 || in.SetsUsed <= 0 {
		return YieldResult{}, invalid("areaSqft", "Please enter valid Area, Thickness, and Sets Used.")
	}

	theoretical := in.TheoreticalSetYield
	if theoretical == 0 {
		theoretical = p.DefaultSetYield
	}

	installed := in.AreaSqft * in.ThicknessIn
	perSet := installed / in.SetsUsed
	total := in.SetsUsed * theoretical
	eff := perSet / theoretical * 100

	r := YieldResult{
		InstalledBF:       installed,
		ActualYieldPerSet: perSet,
		TheoreticalPerSet: theoretical,
		TheoreticalTotal:  total,
		EfficiencyPct:     eff,
		WastePct:          100 - eff,
		ShortfallBF:       total - installed,
	}
	if overflowed(r.InstalledBF, r.ActualYieldPerSet, r.TheoreticalPerSet, r.TheoreticalTotal, r.EfficiencyPct, r.WastePct, r.ShortfallBF) {
		return YieldResult{}, invalid("areaSqft", MessageTooLarge)
	}
	return r, nil
}

// Text renders the yieldResults panel.
func (r YieldResult) Text() string {
	return fmt.Sprintf(`Installed BF: %s BF
Actual Yield per Set: %s BF/set
Theoretical Total BF: %s BF
Yield Efficiency: %s%%
Implied Waste/Loss vs Theoretical: %s%%
BF Shortfall vs Theoretical: %s BF`,
		format.Fixed(r.InstalledBF, 0),
		format.Fixed(r.ActualYieldPerSet, 0),
		format.Fixed(r.TheoreticalTotal, 0),
		format.Fixed(r.EfficiencyPct, 1),
		format.Fixed(r.WastePct, 1),
		format.Fixed(r.ShortfallBF, 0),
	)
}
