package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"injury-estimator/internal/factors"
)

var caseTypesCmd = &cobra.Command{
	Use:   "case-types",
	Short: "List the case types and their factor table versions",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		registry, err := factors.Load(rootFlags.factorsDir)
		if err != nil {
			return fmt.Errorf("load factor tables: %w", err)
		}
		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "CASE TYPE\tVERSION\tLABEL")
		for _, t := range registry.Tables() {
			fmt.Fprintf(tw, "%s\t%s\t%s\n", t.CaseType, t.Version, t.Label)
		}
		return tw.Flush()
	},
}
