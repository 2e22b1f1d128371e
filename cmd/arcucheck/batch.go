package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"arcucheck/internal/driver"
	"arcucheck/internal/report"
	"arcucheck/internal/ui"
)

var batchCmd = &cobra.Command{
	Use:   "batch <dir>",
	Short: "Check every design diagram under a directory",
	Long: `Check every design diagram under a directory in parallel.

Each design file must carry an 'implementation_path=[<path>] comment. Files
that cannot be checked are reported and make the command exit with status 2;
the remaining files are still checked.`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	batchCmd.Flags().Int("jobs", 0, "parallel checks (0 = config value, then GOMAXPROCS)")
	batchCmd.Flags().String("pattern", "", "file name glob for design files (default from config, *.puml)")
	batchCmd.Flags().String("ui", "auto", "progress UI (auto|on|off)")
}

func runBatch(cmd *cobra.Command, args []string) error {
	dir := args[0]
	st, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	opts := driver.BatchOptions{
		Options: st.driverOptions(cmd),
		Jobs:    st.cfg.Batch.Jobs,
		Pattern: st.cfg.Batch.Pattern,
	}
	if cmd.Flags().Changed("jobs") {
		if opts.Jobs, err = cmd.Flags().GetInt("jobs"); err != nil {
			return fmt.Errorf("failed to get jobs flag: %w", err)
		}
	}
	if cmd.Flags().Changed("pattern") {
		if opts.Pattern, err = cmd.Flags().GetString("pattern"); err != nil {
			return fmt.Errorf("failed to get pattern flag: %w", err)
		}
	}
	uiValue, err := cmd.Flags().GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	mode, err := readUIMode(uiValue)
	if err != nil {
		return err
	}
	// JSON и short не смешиваем с TUI на stdout
	useUI := shouldUseTUI(mode) && (mode == uiModeOn || st.report.Format == report.FormatPretty)

	var batch *driver.BatchResult
	if useUI {
		batch, err = runBatchWithUI(cmd.Context(), dir, opts)
	} else {
		batch, err = driver.CheckDir(cmd.Context(), dir, opts)
	}
	if err != nil {
		dumpTraceRing(cmd)
		return err
	}

	run := report.Run{FileCount: len(batch.Results)}
	for _, res := range batch.Results {
		printDiagnostics(cmd, res.Diagnostics)
		if res.Failed() {
			run.Failures = append(run.Failures, report.Failure{Path: res.DesignPath, Err: res.Err.Error()})
			continue
		}
		run.Deviations = append(run.Deviations, res.Deviations...)
	}
	if err := report.Render(cmd.OutOrStdout(), run, st.report); err != nil {
		return err
	}
	st.printTimings(cmd, opts.Timer)

	switch {
	case len(run.Failures) > 0:
		dumpTraceRing(cmd)
		return exitError{code: 2}
	case len(run.Deviations) > 0:
		return exitError{code: 1}
	}
	return nil
}

type batchOutcome struct {
	result *driver.BatchResult
	err    error
}

func runBatchWithUI(ctx context.Context, dir string, opts driver.BatchOptions) (*driver.BatchResult, error) {
	files, err := driver.ListDesigns(dir, opts.Pattern)
	if err != nil {
		return nil, err
	}
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan batchOutcome, 1)

	go func() {
		reqOpts := opts
		reqOpts.Sink = driver.ChannelSink{Ch: events}
		res, err := driver.CheckDir(ctx, dir, reqOpts)
		outcomeCh <- batchOutcome{result: res, err: err}
		close(events)
	}()

	model := ui.NewProgressModel("arcucheck "+dir, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	// UI мог выйти раньше (ctrl+c): не блокируем воркеров
	go func() {
		for range events {
		}
	}()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.result, uiErr
	}
	return outcome.result, outcome.err
}
