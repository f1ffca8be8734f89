// estimate runs compensation estimates locally against the embedded factor
// tables.
//
// Usage:
//
//	estimate run --case-type=construction --set age=28 --set severity=serious
//	estimate run --case-type=wrongful_death --file form.yaml --json
//	estimate case-types
//	estimate schema maritime
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// version is set at build time via -ldflags.
var version = "dev"

var rootFlags struct {
	factorsDir string
	verbose    bool
}

var rootCmd = &cobra.Command{
	Use:   "estimate",
	Short: "Estimate personal injury compensation ranges",
	Long:  "estimate evaluates calculator forms against the per-case-type factor\ntables and prints the estimate, its range and the damage breakdown.",
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
	SilenceUsage: true,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&rootFlags.factorsDir, "factors-dir", "", "Directory of factor table overrides")
	pf.BoolVarP(&rootFlags.verbose, "verbose", "v", false, "Log calculation details to stderr")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(caseTypesCmd)
	rootCmd.AddCommand(schemaCmd)
	rootCmd.Version = version
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
