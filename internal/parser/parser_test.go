package parser

import (
	"errors"
	"slices"
	"strings"
	"testing"

	"arcucheck/internal/diag"
	"arcucheck/internal/puml"
)

const shopDiagram = `@startuml Shop
'implementation_path=[../src]
package a.b {
abstract class a.b.Foo {
  - String id
  - {static} int count
  + <<Create>> Foo(String id, Map<String, List<Integer>> index)
  + {abstract} void run()
  {static} + Foo of(int x)
  ~ Map<String, Integer> counts()
  bar()
}
}
interface a.b.Runner {
  + void run()
}
class Plain
a.b.Foo <|.. a.b.Runner
a.b.Foo <|-- Plain
@enduml
`

func TestParseDiagramFull(t *testing.T) {
	d, bag := mustParse(t, shopDiagram)

	if d.Name != "Shop" {
		t.Errorf("Name = %q, want Shop", d.Name)
	}
	if len(d.Classes) != 2 || len(d.Interfaces) != 1 {
		t.Fatalf("got %d classes and %d interfaces", len(d.Classes), len(d.Interfaces))
	}

	foo := d.Classes[0]
	if foo.FullName() != "a.b.Foo" || foo.Name != "Foo" || foo.Package.FullName != "a.b" {
		t.Fatalf("unexpected class identity %q / %q", foo.FullName(), foo.Package)
	}
	if !foo.IsAbstract {
		t.Error("Foo must be abstract")
	}
	if foo.Line != 4 {
		t.Errorf("Foo.Line = %d, want 4", foo.Line)
	}

	wantFields := []puml.Field{
		{Name: "id", DataType: "String", Visibility: puml.VisPrivate, Line: 5},
		{Name: "count", DataType: "int", Visibility: puml.VisPrivate, IsStatic: true, Line: 6},
	}
	if !slices.Equal(foo.Fields, wantFields) {
		t.Errorf("fields = %+v\nwant %+v", foo.Fields, wantFields)
	}

	if len(foo.Constructors) != 1 {
		t.Fatalf("constructors = %+v", foo.Constructors)
	}
	ctor := foo.Constructors[0]
	if !slices.Equal(ctor.ParameterTypes, []string{"String id", "Map<String, List<Integer>> index"}) {
		t.Errorf("constructor params = %q", ctor.ParameterTypes)
	}
	if ctor.Visibility != puml.VisPublic {
		t.Errorf("constructor visibility = %s", ctor.Visibility)
	}

	if len(foo.Methods) != 3 {
		t.Fatalf("methods = %+v", foo.Methods)
	}
	run, of, counts := foo.Methods[0], foo.Methods[1], foo.Methods[2]
	if run.Name != "run" || !run.IsAbstract || run.IsStatic || run.ReturnType != "void" || run.Visibility != puml.VisPublic {
		t.Errorf("run = %+v", run)
	}
	if !slices.Equal(run.ParameterTypes, []string{""}) {
		t.Errorf("run params = %q, want one empty item", run.ParameterTypes)
	}
	if of.Name != "of" || !of.IsStatic || of.ReturnType != "Foo" || !slices.Equal(of.ParameterTypes, []string{"int x"}) {
		t.Errorf("of = %+v", of)
	}
	if counts.ReturnType != "Map<String, Integer>" || counts.Visibility != puml.VisPackagePrivate {
		t.Errorf("counts = %+v", counts)
	}

	runner := d.Interfaces[0]
	if runner.FullName() != "a.b.Runner" || len(runner.Methods) != 1 || runner.Methods[0].Line != 15 {
		t.Errorf("runner = %+v", runner)
	}

	plain := d.Classes[1]
	if plain.FullName() != "Plain" || !plain.Package.IsDefault() {
		t.Errorf("plain = %+v", plain)
	}

	wantRel := []puml.Relation{
		{Kind: puml.RelRealisation, Source: "a.b.Foo", Destination: "a.b.Runner"},
		{Kind: puml.RelInheritance, Source: "a.b.Foo", Destination: "Plain"},
	}
	if !slices.Equal(d.Relations, wantRel) {
		t.Errorf("relations = %+v", d.Relations)
	}

	if got := codesOf(bag); !slices.Equal(got, []diag.Code{diag.LintUnrecognizedMember}) {
		t.Fatalf("diagnostics = %s", diagnosticsSummary(bag))
	}
	if bag.Items()[0].Pos.Line != 11 {
		t.Errorf("unrecognized member reported on line %d, want 11", bag.Items()[0].Pos.Line)
	}

	pkgs := d.Packages()
	if len(pkgs) != 2 || pkgs[0].FullName != "" || pkgs[1].FullName != "a.b" {
		t.Errorf("packages = %v", pkgs)
	}
}

func TestParseDiagramNormalizesLineEndings(t *testing.T) {
	crlf := "\xEF\xBB\xBF" + strings.ReplaceAll(shopDiagram, "\n", "\r\n")
	a, err := ParseDiagram("a.puml", shopDiagram)
	if err != nil {
		t.Fatal(err)
	}
	b, err := ParseDiagram("a.puml", crlf)
	if err != nil {
		t.Fatal(err)
	}
	if len(a.Classes) != len(b.Classes) || a.Classes[0].Fields[0] != b.Classes[0].Fields[0] {
		t.Fatalf("CRLF input parsed differently: %+v vs %+v", a.Classes[0], b.Classes[0])
	}
}

func TestParseDiagramNoContent(t *testing.T) {
	for _, text := range []string{"", "@startuml\n@enduml\n", "just some prose"} {
		_, bag, err := parseWithBag(t, text)
		var pe *ParseError
		if !errors.As(err, &pe) {
			t.Fatalf("%q: expected *ParseError, got %v", text, err)
		}
		if pe.Code != diag.ParseNoContent {
			t.Errorf("%q: code = %s", text, pe.Code.ID())
		}
		if !bag.HasErrors() {
			t.Errorf("%q: error was not reported", text)
		}
	}
}

func TestParseDiagramUnknownRelationSymbol(t *testing.T) {
	_, _, err := parseWithBag(t, "@startuml\nA --> B\n@enduml\n")
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected *ParseError, got %v", err)
	}
	if pe.Code != diag.ParseUnknownRelation || pe.Line != 2 {
		t.Fatalf("got %+v", pe)
	}
	if !strings.Contains(pe.Error(), "test.puml:2:") {
		t.Errorf("Error() = %q", pe.Error())
	}
}

func TestParseDiagramRelationsOnly(t *testing.T) {
	d, _ := mustParse(t, "A <|-- B\nC <--> D\nE -- F\nG x--> H\nI <--x J\nK *-- L\nM o-- N\n")
	kinds := make([]puml.RelationKind, 0, len(d.Relations))
	for _, r := range d.Relations {
		kinds = append(kinds, r.Kind)
	}
	want := []puml.RelationKind{
		puml.RelInheritance, puml.RelBidirectionalNav, puml.RelAssociation,
		puml.RelRightNav, puml.RelLeftNav, puml.RelComposition, puml.RelAggregation,
	}
	if !slices.Equal(kinds, want) {
		t.Fatalf("kinds = %v, want %v", kinds, want)
	}
}

func TestParseDiagramUnnamedEntity(t *testing.T) {
	d, bag := mustParse(t, "class {\n  + void x()\n}\n")
	if len(d.Classes) != 1 || d.Classes[0].Name != "" {
		t.Fatalf("classes = %+v", d.Classes)
	}
	if len(d.Classes[0].Methods) != 1 {
		t.Errorf("members of an unnamed class must still be extracted")
	}
	if !slices.Contains(codesOf(bag), diag.LintUnnamedEntity) {
		t.Errorf("diagnostics = %s", diagnosticsSummary(bag))
	}
}

func TestParseDiagramDuplicateType(t *testing.T) {
	d, bag := mustParse(t, "class p.A {\n  + int x\n}\nclass p.A {\n  + int y\n}\ninterface p.A {\n}\n")
	if len(d.Classes) != 1 || d.Classes[0].Fields[0].Name != "x" {
		t.Fatalf("classes = %+v", d.Classes)
	}
	if len(d.Interfaces) != 1 {
		t.Fatalf("an interface sharing the name of a class is a separate type")
	}
	if got := codesOf(bag); !slices.Equal(got, []diag.Code{diag.LintDuplicateType}) {
		t.Fatalf("diagnostics = %s", diagnosticsSummary(bag))
	}
}

func TestParseDiagramMemberForms(t *testing.T) {
	text := `class p.C {
  void implicit()
  {static} + {abstract} void both()
  # {static} String[] names
  + List<String> items
}
class p.D { + int inline }
class p.E {
  + int open
`
	d, bag := mustParse(t, text)
	c := d.Classes[0]
	if c.Methods[0].Visibility != puml.VisPackagePrivate {
		t.Errorf("method without visibility = %s", c.Methods[0].Visibility)
	}
	if both := c.Methods[1]; !both.IsStatic || both.IsAbstract {
		t.Errorf("first modifier must win: %+v", both)
	}
	if f := c.Fields[0]; f.DataType != "String[]" || !f.IsStatic || f.Visibility != puml.VisProtected {
		t.Errorf("names = %+v", f)
	}
	if f := c.Fields[1]; f.DataType != "List<String>" || f.Name != "items" {
		t.Errorf("items = %+v", f)
	}
	if got := d.Classes[1].Fields; len(got) != 1 || got[0].Name != "inline" {
		t.Errorf("inline body fields = %+v", got)
	}
	if got := d.Classes[2].Fields; len(got) != 1 || got[0].Name != "open" {
		t.Errorf("unclosed body fields = %+v", got)
	}
	codes := codesOf(bag)
	if !slices.Contains(codes, diag.LintConflictingModifier) || !slices.Contains(codes, diag.LintUnclosedBody) {
		t.Errorf("diagnostics = %s", diagnosticsSummary(bag))
	}
}

func TestParseDiagramInterfaceIgnoresFields(t *testing.T) {
	d, bag := mustParse(t, "interface q.I {\n  + int CONST\n  + void a(int x, int y)\n}\n")
	it := d.Interfaces[0]
	if len(it.Methods) != 1 || !slices.Equal(it.Methods[0].ParameterTypes, []string{"int x", "int y"}) {
		t.Fatalf("methods = %+v", it.Methods)
	}
	if got := codesOf(bag); !slices.Equal(got, []diag.Code{diag.LintUnrecognizedMember}) {
		t.Fatalf("diagnostics = %s", diagnosticsSummary(bag))
	}
}

func TestDiagramNameFromTitle(t *testing.T) {
	d, _ := mustParse(t, "@startuml\ntitle Order service\nclass A\n@enduml\n")
	if d.Name != "Order service" {
		t.Fatalf("Name = %q", d.Name)
	}
}

func TestParseDiagramEntitiesSharingALine(t *testing.T) {
	d, _ := mustParse(t, "class a.A { + int x } class a.B { + int y }\npackage p { interface p.I }\n")
	if len(d.Classes) != 2 || len(d.Interfaces) != 1 {
		t.Fatalf("got %d classes and %d interfaces", len(d.Classes), len(d.Interfaces))
	}
	b := d.Classes[1]
	if b.FullName() != "a.B" || len(b.Fields) != 1 || b.Fields[0].Name != "y" {
		t.Fatalf("second class = %+v", b)
	}
	if d.Classes[0].Fields[0].Name != "x" {
		t.Errorf("first class fields = %+v", d.Classes[0].Fields)
	}
	if it := d.Interfaces[0]; it.FullName() != "p.I" || it.Line != 2 {
		t.Errorf("interface = %q at line %d", it.FullName(), it.Line)
	}
}
