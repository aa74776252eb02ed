package readiness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func checkedExcept(ids ...string) func(string) bool {
	skip := make(map[string]bool, len(ids))
	for _, id := range ids {
		skip[id] = true
	}
	return func(id string) bool { return !skip[id] }
}

func TestChecklistSizes(t *testing.T) {
	assert.Len(t, CommissioningGate.Items(), 9)
	assert.Len(t, InstallPreparedness.Items(), 25)

	sizes := map[string]int{}
	for _, c := range InstallPreparedness.Categories {
		sizes[c.Name] = len(c.Items)
	}
	assert.Equal(t, map[string]int{"scope": 4, "materials": 7, "logistics": 5, "tools": 5, "closeout": 4}, sizes)
}

func TestCommissioningGateAllChecked(t *testing.T) {
	r := CommissioningGate.Evaluate(checkedExcept(), AllRequired)

	assert.Equal(t, StatusReady, r.Status)
	assert.Empty(t, r.Missing)
	assert.Equal(t, "Closeout Status: READY TO CLOSE ✅\nAll commissioning checkpoints are complete.", GateText(r))
}

func TestCommissioningGateMissingFilter(t *testing.T) {
	r := CommissioningGate.Evaluate(checkedExcept("ccFilter"), AllRequired)

	assert.Equal(t, StatusNotReady, r.Status)
	assert.Equal(t, []string{"ccFilter"}, r.Missing)
	assert.Equal(t, "Closeout Status: NOT READY ⚠️\nMissing 1 required checkpoint(s):\n- ccFilter", GateText(r))
}

func TestCommissioningGateMissingKeepsOrder(t *testing.T) {
	r := CommissioningGate.Evaluate(checkedExcept("ccPhotos", "ccThermostat"), AllRequired)

	assert.Equal(t, []string{"ccThermostat", "ccPhotos"}, r.Missing)
	assert.Equal(t, "Closeout Status: NOT READY ⚠️\nMissing 2 required checkpoint(s):\n- ccThermostat\n- ccPhotos", GateText(r))
}

func TestInstallPreparednessStatus(t *testing.T) {
	items := InstallPreparedness.Items()

	tests := []struct {
		name    string
		missing []string
		status  Status
		text    string
	}{
		{
			name:   "all done",
			status: StatusReady,
			text:   "Preparedness: 25/25 (100%)\nStatus: READY TO DISPATCH ✅\nMissing Items: 0",
		},
		{
			name:    "one missing",
			missing: items[:1],
			status:  StatusNearReady,
			text:    "Preparedness: 24/25 (96%)\nStatus: NEAR READY ⚠️\nMissing Items: 1",
		},
		{
			name:    "just above near ready",
			missing: items[:3],
			status:  StatusNearReady,
			text:    "Preparedness: 22/25 (88%)\nStatus: NEAR READY ⚠️\nMissing Items: 3",
		},
		{
			name:    "below threshold",
			missing: items[:4],
			status:  StatusNotReady,
			text:    "Preparedness: 21/25 (84%)\nStatus: NOT READY ❌\nMissing Items: 4",
		},
		{
			name:    "nothing done",
			missing: items,
			status:  StatusNotReady,
			text:    "Preparedness: 0/25 (0%)\nStatus: NOT READY ❌\nMissing Items: 25",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := InstallPreparedness.Evaluate(checkedExcept(tc.missing...), DefaultThresholds())
			assert.Equal(t, tc.status, r.Status)
			assert.Equal(t, tc.text, PreparednessText(r))
		})
	}
}

func TestEvaluateInvariants(t *testing.T) {
	items := InstallPreparedness.Items()
	rank := map[Status]int{StatusNotReady: 0, StatusNearReady: 1, StatusReady: 2}

	prev := -1
	for done := 0; done <= len(items); done++ {
		r := InstallPreparedness.Evaluate(checkedExcept(items[done:]...), DefaultThresholds())

		require.Equal(t, done, r.Done)
		require.Equal(t, r.Total, r.Done+len(r.Missing))
		require.GreaterOrEqual(t, rank[r.Status], prev, "status must not regress as items are checked")
		prev = rank[r.Status]
	}
}
