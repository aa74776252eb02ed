// Package readiness scores job checklists and classifies whether a crew can proceed.
package readiness

import (
	"fmt"
	"strings"

	"github.com/mmcdani2/field-cheat-sheets/internal/format"
)

// Status is the readiness verdict for a checklist.
type Status string

const (
	StatusReady     Status = "READY"
	StatusNearReady Status = "NEAR READY"
	StatusNotReady  Status = "NOT READY"
)

// Category groups checklist item ids for display.
type Category struct {
	Name  string   `json:"name"`
	Items []string `json:"items"`
}

// Checklist is an ordered set of item ids that must be checked off.
type Checklist struct {
	Name       string     `json:"name"`
	Categories []Category `json:"categories"`
}

// Items returns every item id in display order.
func (c Checklist) Items() []string {
	var ids []string
	for _, cat := range c.Categories {
		ids = append(ids, cat.Items...)
	}
	return ids
}

// Thresholds maps a completion percentage to a Status.
type Thresholds struct {
	ReadyPct     float64 `yaml:"ready_pct" json:"readyPct"`
	NearReadyPct float64 `yaml:"near_ready_pct" json:"nearReadyPct"`
}

// AllRequired is the all-or-nothing threshold used by gates.
var AllRequired = Thresholds{ReadyPct: 100, NearReadyPct: 100}

// DefaultThresholds is the install dispatch policy.
func DefaultThresholds() Thresholds {
	return Thresholds{ReadyPct: 100, NearReadyPct: 85}
}

func (t Thresholds) classify(pct float64) Status {
	switch {
	case pct >= t.ReadyPct:
		return StatusReady
	case pct >= t.NearReadyPct:
		return StatusNearReady
	default:
		return StatusNotReady
	}
}

// Result is the score of one checklist evaluation.
type Result struct {
	Done    int      `json:"done"`
	Total   int      `json:"total"`
	Percent float64  `json:"percent"`
	Status  Status   `json:"status"`
	Missing []string `json:"missing"`
}

// Evaluate scores c against checked.
func (c Checklist) Evaluate(checked func(id string) bool, t Thresholds) Result {
	items := c.Items()
	missing := make([]string, 0, len(items))
	for _, id := range items {
		if !checked(id) {
			missing = append(missing, id)
		}
	}

	r := Result{
		Total:   len(items),
		Done:    len(items) - len(missing),
		Missing: missing,
	}
	if r.Total > 0 {
		r.Percent = float64(r.Done) / float64(r.Total) * 100
	} else {
		r.Percent = 100
	}
	r.Status = t.classify(r.Percent)
	return r
}

// CommissioningGate must be fully checked before a job is closed out.
var CommissioningGate = Checklist{
	Name: "Commissioning Closeout Gate",
	Categories: []Category{{
		Name: "closeout",
		Items: []string{
			"ccThermostat", "ccFilter", "ccDrain", "ccStatic", "ccSHSC",
			"ccDeltaT", "ccAmpsVolts", "ccPhotos", "ccCustomerWalk",
		},
	}},
}

// InstallPreparedness is reviewed before an install crew is dispatched.
var InstallPreparedness = Checklist{
	Name: "Install Preparedness Checklist",
	Categories: []Category{
		{Name: "scope", Items: []string{"ipScope1", "ipScope2", "ipScope3", "ipScope4"}},
		{Name: "materials", Items: []string{"ipMat1", "ipMat2", "ipMat3", "ipMat4", "ipMat5", "ipMat6", "ipMat7"}},
		{Name: "logistics", Items: []string{"ipLog1", "ipLog2", "ipLog3", "ipLog4", "ipLog5"}},
		{Name: "tools", Items: []string{"ipTool1", "ipTool2", "ipTool3", "ipTool4", "ipTool5"}},
		{Name: "closeout", Items: []string{"ipClose1", "ipClose2", "ipClose3", "ipClose4"}},
	},
}

// GateText renders the ccResults panel.
func GateText(r Result) string {
	if r.Status == StatusReady {
		return "Closeout Status: READY TO CLOSE ✅\nAll commissioning checkpoints are complete."
	}
	return fmt.Sprintf("Closeout Status: NOT READY ⚠️\nMissing %d required checkpoint(s):\n- %s",
		len(r.Missing), strings.Join(r.Missing, "\n- "))
}

// PreparednessText renders the ipResults panel.
func PreparednessText(r Result) string {
	var status string
	switch r.Status {
	case StatusReady:
		status = "READY TO DISPATCH ✅"
	case StatusNearReady:
		status = "NEAR READY ⚠️"
	default:
		status = "NOT READY ❌"
	}

	return fmt.Sprintf("Preparedness: %d/%d (%s%%)\nStatus: %s\nMissing Items: %d",
		r.Done, r.Total, format.Fixed(r.Percent, 0), status, len(r.Missing))
}
