package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mmcdani2/field-cheat-sheets/internal/config"
	"github.com/mmcdani2/field-cheat-sheets/internal/pricing"
	"github.com/mmcdani2/field-cheat-sheets/internal/readiness"
)

func newPolicyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "policy",
		Short: "Print the effective pricing policy as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			doc := struct {
				Policy       pricing.Policy       `yaml:"policy"`
				Preparedness readiness.Thresholds `yaml:"install_preparedness"`
			}{cfg.Policy, cfg.Preparedness}

			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			defer enc.Close()
			return enc.Encode(doc)
		},
	}
}
