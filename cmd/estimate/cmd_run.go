package main

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"injury-estimator/internal/engine"
	"injury-estimator/internal/factors"
	"injury-estimator/internal/format"
	"injury-estimator/internal/logger"
	"injury-estimator/internal/model"
)

var runFlags struct {
	caseType string
	sets     []string
	file     string
	locale   string
	currency string
	strict   bool
	json     bool
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Estimate one calculator form",
	RunE:  runEstimate,
}

func init() {
	f := runCmd.Flags()
	f.StringVar(&runFlags.caseType, "case-type", "", "Case type, e.g. construction (required)")
	f.StringArrayVar(&runFlags.sets, "set", nil, "Form answer as key=value (repeatable)")
	f.StringVarP(&runFlags.file, "file", "f", "", "YAML or JSON file with form answers")
	f.StringVar(&runFlags.locale, "locale", "en-US", "Display locale")
	f.StringVar(&runFlags.currency, "currency", "USD", "ISO 4217 currency code")
	f.BoolVar(&runFlags.strict, "strict", false, "Reject forms that fail schema validation")
	f.BoolVar(&runFlags.json, "json", false, "Print the full response as JSON")

	_ = runCmd.MarkFlagRequired("case-type")
}

func runEstimate(cmd *cobra.Command, _ []string) error {
	form, err := loadForm(runFlags.file, runFlags.sets)
	if err != nil {
		return err
	}

	registry, err := factors.Load(rootFlags.factorsDir)
	if err != nil {
		return fmt.Errorf("load factor tables: %w", err)
	}
	formatter, err := format.New(runFlags.locale, runFlags.currency)
	if err != nil {
		return err
	}

	log := logger.Nop()
	if rootFlags.verbose {
		log = logger.New("debug", "console")
	}
	defer log.Sync()

	eng := engine.New(registry, formatter, log, false)
	resp := eng.Process(context.Background(), &model.EstimateRequest{
		CaseType: runFlags.caseType,
		Locale:   runFlags.locale,
		Strict:   runFlags.strict,
		Fields:   form,
	})

	out := cmd.OutOrStdout()
	if runFlags.json {
		data, err := json.MarshalIndent(resp, "", "  ")
		if err != nil {
			return fmt.Errorf("encode response: %w", err)
		}
		fmt.Fprintln(out, string(data))
	} else {
		printResponse(out, resp)
	}

	if resp.CalculationMetadata.CalculationOutcome != model.OutcomeSuccess {
		return fmt.Errorf("estimate failed for case type %q", runFlags.caseType)
	}
	return nil
}

func printResponse(out io.Writer, resp *model.EstimateResponse) {
	meta := resp.CalculationMetadata
	fmt.Fprintf(out, "Case type: %s (table %s)\n", meta.CaseType, meta.TableVersion)
	fmt.Fprintf(out, "Outcome:   %s\n", meta.CalculationOutcome)

	if d := resp.Display; d != nil {
		fmt.Fprintf(out, "Estimate:  %s\n", d.Total)
		fmt.Fprintf(out, "Range:     %s\n", d.Range)
		if len(d.Breakdown) > 0 {
			fmt.Fprintln(out, "Breakdown:")
			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
			for _, l := range d.Breakdown {
				fmt.Fprintf(tw, "  %s\t%s\t\n", l.Label, l.Formatted)
			}
			tw.Flush()
		}
	}

	if len(resp.Messages) > 0 {
		fmt.Fprintln(out, "Messages:")
		for _, m := range resp.Messages {
			field := ""
			if m.Field != "" {
				field = " [" + m.Field + "]"
			}
			fmt.Fprintf(out, "  %-8s %s%s %s\n", m.Level, m.Code, field, m.Message)
		}
	}
}
