// Command fieldcalc serves the field cheat-sheet calculators over HTTP and runs them
// one-shot from the command line.
package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/mmcdani2/field-cheat-sheets/internal/calculator"
	"github.com/mmcdani2/field-cheat-sheets/internal/config"
	"github.com/mmcdani2/field-cheat-sheets/internal/reflog"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "fieldcalc",
		Short: "Spray foam and HVAC field calculators",
		Long:  "fieldcalc quotes spray foam jobs and HVAC repairs and replacements, scores job checklists, and submits refrigerant logs.",

		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newServeCmd(), newCalcCmd(), newPolicyCmd())
	return root
}

func main() {
	if err := loadDotEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newService builds the calculators from cfg with a traced client for log submission.
func newService(cfg *config.Config) *calculator.Service {
	client := &http.Client{
		Transport: otelhttp.NewTransport(http.DefaultTransport),
		Timeout:   time.Duration(cfg.RefLog.Timeout),
	}
	return calculator.NewService(cfg.Policy, cfg.Preparedness, reflog.NewSubmitter(cfg.RefLog.Endpoint, client))
}
