package calculator

import (
	"context"
	"fmt"

	"github.com/mmcdani2/field-cheat-sheets/internal/form"
	"github.com/mmcdani2/field-cheat-sheets/internal/pricing"
	"github.com/mmcdani2/field-cheat-sheets/internal/readiness"
	"github.com/mmcdani2/field-cheat-sheets/internal/reflog"
	"github.com/mmcdani2/field-cheat-sheets/internal/walls"
)

// Output element ids.
const (
	TargetYield        = "yieldResults"
	TargetCost         = "costResults"
	TargetWalls        = "sfWallsContainer"
	TargetSprayJob     = "sfFullJobResults"
	TargetGrossMargin  = "gmResults"
	TargetRepair       = "rqResults"
	TargetReplacement  = "reResults"
	TargetGate         = "ccResults"
	TargetPreparedness = "ipResults"
	TargetRefLog       = "refLogResult"
)

// Service evaluates every calculator against one policy.
type Service struct {
	policy     pricing.Policy
	thresholds readiness.Thresholds
	submitter  *reflog.Submitter

	ops    []Operation
	byName map[string]Operation
}

// NewService wires the calculators. thresholds apply to install preparedness only;
// the commissioning gate always requires every checkpoint.
func NewService(policy pricing.Policy, thresholds readiness.Thresholds, submitter *reflog.Submitter) *Service {
	s := &Service{
		policy:     policy,
		thresholds: thresholds,
		submitter:  submitter,
	}

	s.ops = []Operation{
		{Name: "yield", Target: TargetYield, Path: "/spray-foam/yield", run: s.yield},
		{Name: "cost-per-bf", Target: TargetCost, Path: "/spray-foam/cost-per-bf", run: s.costPerBF},
		{Name: "walls", Target: TargetWalls, Path: "/spray-foam/walls", run: s.walls},
		{Name: "spray-job", Target: TargetSprayJob, Path: "/spray-foam/full-job", run: s.sprayJob},
		{Name: "gross-margin", Target: TargetGrossMargin, Path: "/hvac/gross-margin", run: s.grossMargin},
		{Name: "repair-quote", Target: TargetRepair, Path: "/hvac/repair-quote", run: s.repairQuote},
		{Name: "replacement", Target: TargetReplacement, Path: "/hvac/replacement", run: s.replacement},
		{Name: "replacement-tiered", Target: TargetReplacement, Path: "/hvac/replacement/tiered", run: s.tieredReplacement},
		{Name: "commissioning-gate", Target: TargetGate, Path: "/hvac/commissioning-gate", run: s.commissioningGate},
		{Name: "install-preparedness", Target: TargetPreparedness, Path: "/hvac/install-preparedness", run: s.installPreparedness},
		{Name: "refrigerant-log", Target: TargetRefLog, Path: "/hvac/refrigerant-log", run: s.refrigerantLog},
	}

	s.byName = make(map[string]Operation, len(s.ops))
	for _, op := range s.ops {
		s.byName[op.Name] = op
	}
	return s
}

// Policy returns the pricing policy the service quotes with.
func (s *Service) Policy() pricing.Policy {
	return s.policy
}

// Operations returns every calculator in page order.
func (s *Service) Operations() []Operation {
	return append([]Operation(nil), s.ops...)
}

// Lookup finds an operation by name.
func (s *Service) Lookup(name string) (Operation, bool) {
	op, ok := s.byName[name]
	return op, ok
}

// Run evaluates the named operation.
func (s *Service) Run(ctx context.Context, name string, f form.Form) (Panel, error) {
	op, ok := s.Lookup(name)
	if !ok {
		return Panel{}, fmt.Errorf("unknown calculator %q", name)
	}
	return op.Run(ctx, f), nil
}

func (s *Service) yield(_ context.Context, f form.Form) Panel {
	r, err := pricing.Yield(pricing.YieldInput{
		AreaSqft:            f.Num("areaSqft"),
		ThicknessIn:         f.Num("thicknessIn"),
		SetsUsed:            f.Num("setsUsed"),
		TheoreticalSetYield: f.Num("theoreticalSetYield"),
	}, s.policy)
	return pricePanel(TargetYield, r, err)
}

func (s *Service) costPerBF(_ context.Context, f form.Form) Panel {
	r, err := pricing.CostPerBF(pricing.CostPerBFInput{
		SetCost:       f.Num("setCost"),
		ExpectedYield: f.Num("expectedYield"),
	}, s.policy)
	return pricePanel(TargetCost, r, err)
}

func (s *Service) walls(_ context.Context, f form.Form) Panel {
	m := walls.NewModel()
	layout := m.SetCount(f.Raw(walls.CountField))

	if layout.Notice == walls.NoticeInvalidCount {
		return Panel{Target: TargetWalls, Text: layout.Text(), Outcome: OutcomeInvalid, Result: layout}
	}
	return Panel{Target: TargetWalls, Text: layout.Text(), OK: true, Outcome: OutcomeOK, Result: layout}
}

func (s *Service) sprayJob(_ context.Context, f form.Form) Panel {
	r, err := pricing.SprayJob(pricing.SprayJobInput{
		Walls:           walls.FromForm(f),
		OpeningsSqft:    f.Num("sfOpeningsSqft"),
		WallThicknessIn: f.Num("sfWallThickness"),
		WallFoam:        pricing.ParseFoam(f.Select("sfWallFoam", string(pricing.FoamOC))),

		RoofLength:      f.Num("sfRoofL"),
		RoofWidth:       f.Num("sfRoofW"),
		PitchMultiplier: f.NumOr("sfPitchMult", 1),
		RoofThicknessIn: f.Num("sfRoofThickness"),
		RoofFoam:        pricing.ParseFoam(f.Select("sfRoofFoam", string(pricing.FoamOC))),

		GableBase:        f.Num("sfGableBase"),
		GableHeight:      f.Num("sfGableHeight"),
		GableCount:       f.Num("sfGableCount"),
		GableThicknessIn: f.Num("sfGableThickness"),
		GableFoam:        pricing.ParseFoam(f.Select("sfGableFoam", string(pricing.FoamOC))),

		LinearFt:          f.Num("sfLinearFt"),
		LinearHeight:      f.Num("sfLinearHeight"),
		LinearThicknessIn: f.Num("sfLinearThickness"),
		LinearFoam:        pricing.ParseFoam(f.Select("sfLinearFoam", string(pricing.FoamOC))),

		OC: pricing.Adjuster{Framing: f.Num("sfOcFramePct") / 100, Waste: f.Num("sfOcWastePct") / 100},
		CC: pricing.Adjuster{Framing: f.Num("sfCcFramePct") / 100, Waste: f.Num("sfCcWastePct") / 100},

		Helpers:     f.Num("sfHelpers"),
		Hours:       f.Num("sfHours"),
		LoadedRate:  f.Num("sfLoadedRate"),
		Fuel:        f.Num("sfFuel"),
		Consumables: f.Num("sfConsumables"),

		TargetMarginPct: f.Num("sfTargetMargin"),
	}, s.policy)
	return pricePanel(TargetSprayJob, r, err)
}

func (s *Service) grossMargin(_ context.Context, f form.Form) Panel {
	r, err := pricing.GrossMargin(pricing.GrossMarginInput{
		SellPrice:    f.Num("gmSellPrice"),
		MaterialCost: f.Num("gmMaterialCost"),
		LaborHours:   f.Num("gmLaborHours"),
		LaborRate:    f.Num("gmLaborRate"),
		OtherCost:    f.Num("gmOtherCost"),
		TargetPct:    f.Num("gmTargetMargin"),
	})
	return pricePanel(TargetGrossMargin, r, err)
}

func (s *Service) repairQuote(_ context.Context, f form.Form) Panel {
	r, err := pricing.RepairQuote(pricing.RepairQuoteInput{
		RepairType: f.Str("rqRepairType"),
		PartCost:   f.Num("rqPartCost"),
		LaborHours: f.Num("rqLaborHours"),
	}, s.policy)
	return pricePanel(TargetRepair, r, err)
}

func (s *Service) replacement(_ context.Context, f form.Form) Panel {
	r, err := pricing.Replacement(pricing.ReplacementInput{
		Tons:            f.Num("reTons"),
		EquipmentCost:   f.Num("reEquipCost"),
		LaborHours:      f.Num("reLaborHours"),
		MiscCost:        f.Num("reMiscCost"),
		TargetMarginPct: f.Num("reTargetMargin"),
		DuctNeeded:      f.Raw("reDuctNeeded") == "yes",
		DuctFeet:        f.Num("reDuctFeet"),
		DuctRatePerFt:   f.Num("reDuctRate"),
	}, s.policy)
	return pricePanel(TargetReplacement, r, err)
}

func (s *Service) tieredReplacement(_ context.Context, f form.Form) Panel {
	r, err := pricing.TieredReplacement(pricing.TieredReplacementInput{
		Tons:           f.Num("reTons"),
		Tier:           f.Select("reTier", ""),
		DuctScope:      f.Select("reDuctScope", ""),
		ComplexityMult: f.Num("reComplexityMult"),
		Accessories:    f.Num("reAccessoryCost"),
		TargetPct:      f.Num("reTargetMargin"),
	}, s.policy)
	return pricePanel(TargetReplacement, r, err)
}

func (s *Service) commissioningGate(_ context.Context, f form.Form) Panel {
	r := readiness.CommissioningGate.Evaluate(f.Checked, readiness.AllRequired)
	return Panel{Target: TargetGate, Text: readiness.GateText(r), OK: true, Outcome: OutcomeOK, Result: r}
}

func (s *Service) installPreparedness(_ context.Context, f form.Form) Panel {
	r := readiness.InstallPreparedness.Evaluate(f.Checked, s.thresholds)
	return Panel{Target: TargetPreparedness, Text: readiness.PreparednessText(r), OK: true, Outcome: OutcomeOK, Result: r}
}

func (s *Service) refrigerantLog(ctx context.Context, f form.Form) Panel {
	out := s.submitter.Submit(ctx, reflog.FromForm(f))

	p := Panel{Target: TargetRefLog, Text: out.Message, OK: out.OK(), Reset: out.Reset}
	switch out.Kind {
	case reflog.KindSubmitted:
		p.Outcome = OutcomeOK
	case reflog.KindInvalid:
		p.Outcome = OutcomeInvalid
	default:
		p.Outcome = OutcomeFailed
	}
	return p
}

type renderer interface {
	Text() string
}

// pricePanel renders an engine result, or the validation message in its place.
func pricePanel[R renderer](target string, r R, err error) Panel {
	if ve, ok := pricing.AsValidation(err); ok {
		return Panel{Target: target, Text: ve.Message, Outcome: OutcomeInvalid}
	}
	if err != nil {
		return Panel{Target: target, Text: err.Error(), Outcome: OutcomeFailed}
	}

	p := Panel{Target: target, Text: r.Text(), OK: true, Outcome: OutcomeOK, Result: r}
	if q, ok := any(r).(interface{ SellPrice() float64 }); ok {
		p.sell = q.SellPrice()
	}
	return p
}
