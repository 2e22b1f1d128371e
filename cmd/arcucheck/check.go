package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"arcucheck/internal/diag"
	"arcucheck/internal/driver"
	"arcucheck/internal/report"
)

var checkCmd = &cobra.Command{
	Use:   "check --design <file.puml> [--impl <path>]",
	Short: "Compare one design diagram with its implementation",
	Long: `Compare one design diagram with its implementation.

Without --impl the path is taken from the design file's
'implementation_path=[<path>] comment, resolved against the design file.
A .puml/.plantuml implementation path is read as a rendered diagram; any
other path is handed to the generator command of arcucheck.toml.`,
	Args: cobra.NoArgs,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().String("design", "", "design diagram file")
	checkCmd.Flags().String("impl", "", "implementation path (default: from the design file)")
	_ = checkCmd.MarkFlagRequired("design")
}

func runCheck(cmd *cobra.Command, args []string) error {
	design, err := cmd.Flags().GetString("design")
	if err != nil {
		return fmt.Errorf("failed to get design flag: %w", err)
	}
	impl, err := cmd.Flags().GetString("impl")
	if err != nil {
		return fmt.Errorf("failed to get impl flag: %w", err)
	}

	st, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	opts := st.driverOptions(cmd)

	res, err := driver.CheckPair(cmd.Context(), design, impl, opts)
	printDiagnostics(cmd, res.Diagnostics)
	if err != nil {
		dumpTraceRing(cmd)
		return err
	}

	run := report.Run{FileCount: 1, Deviations: res.Deviations}
	if err := report.Render(cmd.OutOrStdout(), run, st.report); err != nil {
		return err
	}
	st.printTimings(cmd, opts.Timer)
	if res.HasDeviations() {
		return exitError{code: 1}
	}
	return nil
}

// printDiagnostics writes parser warnings to stderr.
func printDiagnostics(cmd *cobra.Command, bag *diag.Bag) {
	if bag == nil || bag.Len() == 0 {
		return
	}
	bag.Sort()
	fmt.Fprintln(cmd.ErrOrStderr(), diag.FormatShort(bag.Items(), true))
}
