package report

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"arcucheck/internal/deviation"
)

const separator = "----------------------------------------------------------------------------------"

type palette struct {
	header  *color.Color
	makro   *color.Color
	mikro   *color.Color
	absent  *color.Color
	unexp   *color.Color
	misimpl *color.Color
	dim     *color.Color
	ok      *color.Color
	fail    *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		header:  color.New(color.Bold),
		makro:   color.New(color.FgRed, color.Bold),
		mikro:   color.New(color.FgYellow, color.Bold),
		absent:  color.New(color.FgRed),
		unexp:   color.New(color.FgMagenta),
		misimpl: color.New(color.FgYellow),
		dim:     color.New(color.Faint),
		ok:      color.New(color.FgGreen, color.Bold),
		fail:    color.New(color.FgRed, color.Bold),
	}
	for _, c := range []*color.Color{p.header, p.makro, p.mikro, p.absent, p.unexp, p.misimpl, p.dim, p.ok, p.fail} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) level(l deviation.Level) *color.Color {
	if l == deviation.Makro {
		return p.makro
	}
	return p.mikro
}

func (p palette) kind(t deviation.Type) *color.Color {
	switch t {
	case deviation.Absent:
		return p.absent
	case deviation.Unexpected:
		return p.unexp
	}
	return p.misimpl
}

// Pretty prints the analysis report: a header, the statistics breakdown and
// one block per deviation.
func Pretty(w io.Writer, run Run, opts Options) error {
	bw := bufio.NewWriter(w)
	p := newPalette(opts.Color)

	p.header.Fprintln(bw, "===== Deviation analysis result =====")
	fmt.Fprintln(bw)
	fmt.Fprintf(bw, "Compared PlantUML design files to their related implementation: %d\n\n", run.FileCount)
	fmt.Fprintln(bw, separator)
	fmt.Fprintln(bw)

	if len(run.Failures) > 0 {
		p.fail.Fprintf(bw, "Design files that could not be checked: %d\n", len(run.Failures))
		for _, f := range run.Failures {
			fmt.Fprintf(bw, "  %s: %s\n", f.Path, f.Err)
		}
		fmt.Fprintln(bw)
	}

	if len(run.Deviations) == 0 {
		p.ok.Fprintln(bw, "No deviations between design and implementation found.")
		return bw.Flush()
	}

	writeStatistics(bw, deviation.Summarize(run.Deviations))
	fmt.Fprintln(bw, separator)
	fmt.Fprintln(bw)

	ds, rest := limit(run.Deviations, opts.Max)
	fmt.Fprintln(bw, "List of detected deviations:")
	for _, d := range ds {
		writeDeviation(bw, p, d)
	}
	if rest > 0 {
		p.dim.Fprintf(bw, "\n ... %d more deviations not shown (raise --max-deviations)\n", rest)
	}
	fmt.Fprintln(bw)
	fmt.Fprintln(bw, separator)
	return bw.Flush()
}

func writeDeviation(w io.Writer, p palette, d deviation.Deviation) {
	fmt.Fprintf(w, "\n Detected deviation %q:\n", d.Title)
	fmt.Fprintf(w, " Level: %s\n", p.level(d.Level).Sprint(d.Level))
	fmt.Fprintf(w, " Subject: %s\n", d.Subject)
	fmt.Fprintf(w, " Type: %s\n", p.kind(d.Type).Sprint(d.Type))
	if len(d.AffectedClasses) > 0 {
		fmt.Fprintf(w, " Affected classes: %s\n", strings.Join(d.AffectedClasses, ", "))
	}
	fmt.Fprintf(w, " Cause: %s\n", d.Description)
	if d.Relocation != nil {
		fmt.Fprintf(w, " Expected package: %s, found in: %s\n", packageName(d.Relocation.From), packageName(d.Relocation.To))
	}
	fmt.Fprintf(w, " Affected design diagram: %s\n", location(d.DesignPath, d.DesignLine))
	fmt.Fprintf(w, " Affected implementation at: %s\n", d.ImplementationPath)
}

func packageName(s string) string {
	if s == "" {
		return "(default package)"
	}
	return s
}

// table выравнивает столбцы по ширине в терминальных ячейках
type table struct {
	head []string
	rows [][]string
}

func (t *table) add(cells ...string) { t.rows = append(t.rows, cells) }

func (t *table) write(w io.Writer) {
	widths := make([]int, len(t.head))
	for _, row := range append([][]string{t.head}, t.rows...) {
		for i, cell := range row {
			widths[i] = max(widths[i], runewidth.StringWidth(cell))
		}
	}
	line := func(cells []string) {
		var b strings.Builder
		for i, cell := range cells {
			if i == len(cells)-1 {
				b.WriteString(cell)
				break
			}
			b.WriteString(runewidth.FillRight(cell, widths[i]))
			b.WriteString("   ")
		}
		fmt.Fprintln(w, strings.TrimRight(b.String(), " "))
	}
	line(t.head)
	for _, row := range t.rows {
		line(row)
	}
}

func count(n int) string {
	if n == 1 {
		return "1 deviation"
	}
	return strconv.Itoa(n) + " deviations"
}

func writeStatistics(w io.Writer, s deviation.Summary) {
	fmt.Fprintf(w, "Total deviations found: %d\n\n", s.Total)

	fmt.Fprintln(w, "Breakdown by deviation LEVEL")
	levels := table{head: []string{"Level", "Description", "Count"}}
	for _, l := range deviation.Levels {
		levels.add(l.String(), l.Description(), count(s.ByLevel[l]))
	}
	levels.write(w)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Breakdown by deviation TYPE")
	types := table{head: []string{"Type", "Description", "Count"}}
	for _, t := range deviation.Types {
		types.add(t.String(), t.Description(), count(s.ByType[t]))
	}
	types.write(w)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Breakdown by deviation SUBJECT TYPE")
	subjects := table{head: []string{"Subject type", "Description", "Count"}}
	for _, sub := range deviation.Subjects {
		subjects.add(sub.String(), sub.Description(), count(s.BySubject[sub]))
	}
	subjects.write(w)
	fmt.Fprintln(w)
}
