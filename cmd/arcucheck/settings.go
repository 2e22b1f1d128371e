package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"arcucheck/internal/config"
	"arcucheck/internal/driver"
	"arcucheck/internal/generator"
	"arcucheck/internal/observ"
	"arcucheck/internal/report"
	"arcucheck/internal/trace"
)

// settings is the config file merged with the command-line flags.
type settings struct {
	cfg     config.Config
	report  report.Options
	timings bool
	noCache bool
}

func loadSettings(cmd *cobra.Command) (*settings, error) {
	flags := cmd.Root().PersistentFlags()

	cfgPath, err := flags.GetString("config")
	if err != nil {
		return nil, fmt.Errorf("failed to get config flag: %w", err)
	}
	cfg, err := config.Resolve(cfgPath, ".")
	if err != nil {
		return nil, err
	}
	if cfg.Path != "" {
		trace.Point(trace.FromContext(cmd.Context()), trace.ScopeDriver, "config", cfg.Path, trace.CurrentSpan(cmd.Context()))
	}

	st := &settings{cfg: cfg}

	formatStr := cfg.Report.Format
	if flags.Changed("format") {
		if formatStr, err = flags.GetString("format"); err != nil {
			return nil, fmt.Errorf("failed to get format flag: %w", err)
		}
	}
	if st.report.Format, err = report.ParseFormat(formatStr); err != nil {
		return nil, err
	}

	colorStr := cfg.Report.Color
	if flags.Changed("color") {
		if colorStr, err = flags.GetString("color"); err != nil {
			return nil, fmt.Errorf("failed to get color flag: %w", err)
		}
	}
	if st.report.Color, err = colorMode(colorStr); err != nil {
		return nil, err
	}

	st.report.Max = cfg.Report.Max
	if flags.Changed("max-deviations") {
		if st.report.Max, err = flags.GetInt("max-deviations"); err != nil {
			return nil, fmt.Errorf("failed to get max-deviations flag: %w", err)
		}
	}

	if st.timings, err = flags.GetBool("timings"); err != nil {
		return nil, fmt.Errorf("failed to get timings flag: %w", err)
	}
	if st.noCache, err = flags.GetBool("no-cache"); err != nil {
		return nil, fmt.Errorf("failed to get no-cache flag: %w", err)
	}
	return st, nil
}

// generator wraps the configured command so pre-rendered diagrams are read
// directly.
func (s *settings) generator() generator.Generator {
	pass := generator.Passthrough{}
	if len(s.cfg.Generator.Command) > 0 {
		pass.Next = generator.Command{
			Argv:    s.cfg.Generator.Command,
			Timeout: s.cfg.Generator.Timeout.Duration,
			Dir:     s.cfg.GeneratorDir(),
		}
	}
	return pass
}

// driverOptions builds the check options. A cache that cannot be opened is
// reported on stderr and skipped.
func (s *settings) driverOptions(cmd *cobra.Command) driver.Options {
	opts := driver.Options{
		Generator:      s.generator(),
		MaxDiagnostics: 100,
	}
	if s.timings {
		opts.Timer = observ.NewTimer()
	}
	if s.cfg.Cache.Enabled && !s.noCache && len(s.cfg.Generator.Command) > 0 {
		cache, err := driver.OpenDiskCache(s.cfg.Cache.Dir)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: generator cache disabled: %v\n", err)
		} else {
			opts.Cache = cache
		}
	}
	return opts
}

func (s *settings) printTimings(cmd *cobra.Command, timer *observ.Timer) {
	if !s.timings || timer == nil {
		return
	}
	fmt.Fprint(cmd.ErrOrStderr(), timer.Summary())
}
