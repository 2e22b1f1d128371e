package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"arcucheck/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "arcucheck",
	Short: "Check an implementation against its PlantUML design",
	Long: `arcucheck compares a hand-written PlantUML class diagram (the design)
with a diagram generated from the source code (the implementation) and
reports every deviation between them.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cleanup, err := setupTracing(cmd)
		if err != nil {
			return err
		}
		traceCleanup = cleanup
		return nil
	},
}

// traceCleanup is set by PersistentPreRunE and run once the command exits.
var traceCleanup = func() {}

// main registers subcommands and persistent flags and executes the root
// command. Exit status: 0 clean, 1 deviations or error, 2 batch files that
// could not be checked.
func main() {
	rootCmd.Version = version.Current().Version

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(batchCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(versionCmd)

	// Глобальные флаги
	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "path to arcucheck.toml (default: search upwards from the working directory)")
	flags.String("color", "", "colorize output (auto|on|off)")
	flags.String("format", "", "report format (pretty|short|json)")
	flags.Int("max-deviations", 0, "maximum number of deviations to list (0 = config value)")
	flags.Bool("timings", false, "show timing information")
	flags.Bool("no-cache", false, "do not read or write the generator cache")
	flags.String("trace", "", "trace output file (- for stderr)")
	flags.String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	flags.String("trace-mode", "stream", "trace storage (stream|ring|both)")
	flags.String("trace-format", "auto", "trace format (auto|text|ndjson)")
	flags.Int("trace-ring-size", 4096, "events kept by the trace ring buffer")
	flags.Duration("trace-heartbeat", 0, "emit heartbeat events at this interval (0 = off)")

	err := rootCmd.Execute()
	traceCleanup()
	os.Exit(exitCode(err))
}

// exitError carries a process status without an error message.
type exitError struct{ code int }

func (e exitError) Error() string { return fmt.Sprintf("exit status %d", e.code) }

func exitCode(err error) int {
	if err == nil {
		return 0
	}
	var ee exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	fmt.Fprintln(os.Stderr, "error:", err)
	return 1
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
