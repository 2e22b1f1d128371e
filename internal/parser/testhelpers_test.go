package parser

import (
	"fmt"
	"strings"
	"testing"

	"arcucheck/internal/diag"
	"arcucheck/internal/puml"
	"arcucheck/internal/source"
)

func parseWithBag(t *testing.T, text string) (*puml.Diagram, *diag.Bag, error) {
	t.Helper()
	bag := diag.NewBag(0)
	d, err := ParseFile(source.FromString("test.puml", text), Options{Reporter: diag.BagReporter{Bag: bag}})
	return d, bag, err
}

func mustParse(t *testing.T, text string) (*puml.Diagram, *diag.Bag) {
	t.Helper()
	d, bag, err := parseWithBag(t, text)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	return d, bag
}

func diagnosticsSummary(bag *diag.Bag) string {
	if bag == nil {
		return "<nil bag>"
	}
	diags := bag.Items()
	if len(diags) == 0 {
		return "<none>"
	}
	lines := make([]string, len(diags))
	for i, d := range diags {
		lines[i] = fmt.Sprintf("[%s] %d: %s", d.Code.ID(), d.Pos.Line, d.Message)
	}
	return strings.Join(lines, "; ")
}

func codesOf(bag *diag.Bag) []diag.Code {
	out := make([]diag.Code, 0, bag.Len())
	for _, d := range bag.Items() {
		out = append(out, d.Code)
	}
	return out
}
