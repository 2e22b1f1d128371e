package report

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Short prints one stable line per deviation:
//
//	LEVEL TYPE SUBJECT design[:line] title: description
//
// followed by one "error path: message" line per failed file.
func Short(w io.Writer, run Run, opts Options) error {
	bw := bufio.NewWriter(w)
	ds, rest := limit(run.Deviations, opts.Max)
	for _, d := range ds {
		fmt.Fprintf(bw, "%s %s %s %s %s: %s\n",
			d.Level, d.Type, d.Subject,
			location(d.DesignPath, d.DesignLine),
			d.Title, oneLine(d.Description))
	}
	if rest > 0 {
		fmt.Fprintf(bw, "... %d more deviations\n", rest)
	}
	for _, f := range run.Failures {
		fmt.Fprintf(bw, "error %s: %s\n", f.Path, oneLine(f.Err))
	}
	return bw.Flush()
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
