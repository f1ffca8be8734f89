package main

import (
	"fmt"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"injury-estimator/internal/factors"
	"injury-estimator/internal/validator"
)

var schemaCmd = &cobra.Command{
	Use:   "schema <case-type>",
	Short: "Print the JSON Schema of a case type's form",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		registry, err := factors.Load(rootFlags.factorsDir)
		if err != nil {
			return fmt.Errorf("load factor tables: %w", err)
		}
		t, ok := registry.Get(args[0])
		if !ok {
			return fmt.Errorf("unknown case type %q", args[0])
		}
		data, err := json.MarshalIndent(validator.Schema(t), "", "  ")
		if err != nil {
			return fmt.Errorf("encode schema: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	},
}
