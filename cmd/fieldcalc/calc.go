package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mmcdani2/field-cheat-sheets/internal/calculator"
	"github.com/mmcdani2/field-cheat-sheets/internal/config"
	"github.com/mmcdani2/field-cheat-sheets/internal/form"
	"github.com/mmcdani2/field-cheat-sheets/internal/reflog"
)

func newCalcCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "calc <calculator> [field=value ...]",
		Short: "Run one calculator and print its panel",
		Long: `Run one calculator against field values given as id=value pairs, using the
same field ids as the web forms, e.g.

  fieldcalc calc repair-quote rqRepairType=Capacitor rqPartCost=45 rqLaborHours=1

Exits non-zero when the inputs are rejected or a log submission fails.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			return runCalc(cmd, newService(cfg), args[0], args[1:], asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the whole panel as JSON")
	return cmd
}

func runCalc(cmd *cobra.Command, svc *calculator.Service, name string, pairs []string, asJSON bool) error {
	op, ok := svc.Lookup(name)
	if !ok {
		names := make([]string, 0, len(svc.Operations()))
		for _, o := range svc.Operations() {
			names = append(names, o.Name)
		}
		return fmt.Errorf("unknown calculator %q (one of: %s)", name, strings.Join(names, ", "))
	}

	f, err := form.Parse(pairs)
	if err != nil {
		return err
	}

	if op.Target == calculator.TargetRefLog {
		fmt.Fprintln(cmd.ErrOrStderr(), reflog.MessageSubmitting)
	}

	panel := op.Run(cmd.Context(), f)

	out := cmd.OutOrStdout()
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		if err := enc.Encode(panel); err != nil {
			return fmt.Errorf("encode panel: %w", err)
		}
	} else {
		fmt.Fprintln(out, panel.Text)
	}

	if !panel.OK {
		return fmt.Errorf("%s: %s", op.Name, panel.Outcome)
	}
	return nil
}
