package report

import (
	"encoding/json"
	"io"

	"arcucheck/internal/deviation"
)

// Output is the root of the JSON document.
type Output struct {
	Files      int                   `json:"files"`
	Count      int                   `json:"count"`
	Summary    deviation.Summary     `json:"summary"`
	Deviations []deviation.Deviation `json:"deviations"`
	Truncated  int                   `json:"truncated,omitempty"`
	Failures   []Failure             `json:"failures,omitempty"`
}

// JSON writes an indented Output document.
func JSON(w io.Writer, run Run, opts Options) error {
	ds, rest := limit(run.Deviations, opts.Max)
	if ds == nil {
		ds = []deviation.Deviation{}
	}
	out := Output{
		Files:      run.FileCount,
		Count:      len(run.Deviations),
		Summary:    deviation.Summarize(run.Deviations),
		Deviations: ds,
		Truncated:  rest,
		Failures:   run.Failures,
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
