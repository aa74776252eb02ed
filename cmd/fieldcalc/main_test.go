package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	t.Setenv("FIELDCALC_CONFIG_PATH", filepath.Join(t.TempDir(), "missing.yaml"))

	var out, errOut bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)

	err = root.Execute()
	return out.String(), errOut.String(), err
}

func TestCalcPrintsPanelText(t *testing.T) {
	out, _, err := execute(t, "calc", "repair-quote", "rqRepairType=Capacitor", "rqLaborHours=1")
	require.NoError(t, err)

	assert.Equal(t, "Repair Type: Capacitor\n\nRecommended Sell Price: $125.00\n\nGross Profit: $85.00\nGross Margin: 68.0%\n", out)
}

func TestCalcJSON(t *testing.T) {
	out, _, err := execute(t, "calc", "--json", "cost-per-bf", "setCost=2400", "expectedYield=4000")
	require.NoError(t, err)

	assert.Contains(t, out, `"target": "costResults"`)
	assert.Contains(t, out, `"costPerBF": 0.6`)
}

func TestCalcRejectedInputFails(t *testing.T) {
	out, _, err := execute(t, "calc", "gross-margin", "gmSellPrice=0")
	require.Error(t, err)

	assert.Equal(t, "Sell Price must be greater than 0.\n", out)
	assert.Contains(t, err.Error(), "invalid")
}

func TestCalcUnknownCalculator(t *testing.T) {
	_, _, err := execute(t, "calc", "divide", "a=1")
	require.Error(t, err)

	assert.Contains(t, err.Error(), `unknown calculator "divide"`)
	assert.Contains(t, err.Error(), "spray-job")
}

func TestCalcMalformedPair(t *testing.T) {
	_, _, err := execute(t, "calc", "yield", "areaSqft")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected id=value")
}

func TestCalcRefrigerantLogValidatesBeforePosting(t *testing.T) {
	out, errOut, err := execute(t, "calc", "refrigerant-log", "refTech=Dana")
	require.Error(t, err)

	assert.Equal(t, "Submitting...\n", errOut)
	assert.Equal(t, "Tech, Job #, and Refrigerant Type are required.\n", out)
}

func TestPolicyPrintsDefaults(t *testing.T) {
	out, _, err := execute(t, "policy")
	require.NoError(t, err)

	assert.Contains(t, out, "min_ticket: 125")
	assert.Contains(t, out, "near_ready_pct: 85")
	assert.True(t, strings.HasPrefix(out, "policy:\n"))
}
