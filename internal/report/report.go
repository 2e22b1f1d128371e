// Package report renders deviation results for people and tools.
package report

import (
	"fmt"
	"io"
	"strings"

	"arcucheck/internal/deviation"
)

// Format selects a renderer.
type Format string

const (
	FormatPretty Format = "pretty"
	FormatShort  Format = "short"
	FormatJSON   Format = "json"
)

// ParseFormat validates a --format value.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatPretty, FormatShort, FormatJSON:
		return f, nil
	case "":
		return FormatPretty, nil
	}
	return "", fmt.Errorf("unsupported format %q (must be pretty, short or json)", s)
}

// Failure is a design file whose check did not complete.
type Failure struct {
	Path string `json:"path"`
	Err  string `json:"error"`
}

// Run is everything a renderer needs: the number of compared design files,
// their deviations and the files that failed.
type Run struct {
	FileCount  int
	Deviations []deviation.Deviation
	Failures   []Failure
}

// Options controls rendering.
type Options struct {
	Format Format
	Color  bool
	// Max caps the listed deviations; statistics always cover all of them.
	// 0 means no limit.
	Max int
}

// Render writes run in the selected format. Deviations are sorted first.
func Render(w io.Writer, run Run, opts Options) error {
	ds := make([]deviation.Deviation, len(run.Deviations))
	copy(ds, run.Deviations)
	deviation.Sort(ds)
	run.Deviations = ds

	switch opts.Format {
	case FormatShort:
		return Short(w, run, opts)
	case FormatJSON:
		return JSON(w, run, opts)
	case FormatPretty, "":
		return Pretty(w, run, opts)
	}
	return fmt.Errorf("unsupported format %q", opts.Format)
}

func limit(ds []deviation.Deviation, max int) ([]deviation.Deviation, int) {
	if max <= 0 || len(ds) <= max {
		return ds, 0
	}
	return ds[:max], len(ds) - max
}

func location(path string, line uint32) string {
	if line == 0 {
		return path
	}
	return fmt.Sprintf("%s:%d", path, line)
}
