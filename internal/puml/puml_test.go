package puml

import (
	"slices"
	"testing"
)

func TestVisibilitySymbolRoundTrip(t *testing.T) {
	for _, v := range Visibilities {
		got, err := VisibilityFromSymbol(v.Symbol())
		if err != nil {
			t.Fatalf("VisibilityFromSymbol(%q): %v", v.Symbol(), err)
		}
		if got != v {
			t.Errorf("round trip of %s gave %s", v, got)
		}
	}
}

func TestVisibilityUnknownSymbol(t *testing.T) {
	if _, err := VisibilityFromSymbol("*"); err == nil {
		t.Fatal("expected error for unknown visibility symbol")
	}
	v, err := VisibilityFromSymbol("")
	if err != nil || v != VisPackagePrivate {
		t.Fatalf("empty symbol = %v, %v; want PACKAGE_PRIVATE", v, err)
	}
}

func TestRelationKindSymbolRoundTrip(t *testing.T) {
	seen := make(map[string]bool)
	for _, k := range RelationKinds {
		sym := k.Symbol()
		if seen[sym] {
			t.Fatalf("symbol %q used twice", sym)
		}
		seen[sym] = true
		got, err := RelationKindFromSymbol(sym)
		if err != nil {
			t.Fatalf("RelationKindFromSymbol(%q): %v", sym, err)
		}
		if got != k {
			t.Errorf("round trip of %s gave %s", k, got)
		}
	}
}

func TestRelationKindUnknownSymbol(t *testing.T) {
	for _, sym := range []string{"-->", "..", "|>", "<<--"} {
		if _, err := RelationKindFromSymbol(sym); err == nil {
			t.Errorf("expected error for %q", sym)
		}
	}
}

func TestPackageOf(t *testing.T) {
	tests := []struct {
		in     string
		pkg    string
		simple string
	}{
		{"a.b.Foo", "a.b", "Foo"},
		{"Foo", "", "Foo"},
		{"x.Y", "x", "Y"},
		{"", "", ""},
	}
	for _, tt := range tests {
		pkg, simple := PackageOf(tt.in)
		if pkg.FullName != tt.pkg || simple != tt.simple {
			t.Errorf("PackageOf(%q) = (%q, %q), want (%q, %q)", tt.in, pkg.FullName, simple, tt.pkg, tt.simple)
		}
	}
	if got := (Package{FullName: "a.b.c"}).Segments(); !slices.Equal(got, []string{"a", "b", "c"}) {
		t.Errorf("Segments = %v", got)
	}
	if (Package{}).Segments() != nil {
		t.Error("default package must have no segments")
	}
}

func TestMemberEqualityIgnoresLine(t *testing.T) {
	a := Method{Name: "bar", ReturnType: "void", ParameterTypes: []string{""}, Line: 3}
	b := a
	b.Line = 17
	if !a.Equal(b) {
		t.Error("methods differing only by line must be equal")
	}
	b.ReturnType = "int"
	if a.Equal(b) {
		t.Error("return type must take part in equality")
	}

	f := Field{Name: "id", DataType: "String", Visibility: VisPrivate}
	g := f
	g.Visibility = VisPublic
	if f.Equal(g) {
		t.Error("visibility must take part in field equality")
	}

	c := Constructor{ParameterTypes: []string{"int", "String"}}
	if c.Key() != "int, String" {
		t.Errorf("constructor key = %q", c.Key())
	}
}

func TestDiagramPackages(t *testing.T) {
	d := &Diagram{
		Classes: []*Class{
			{Name: "A", Package: Package{FullName: "b"}},
			{Name: "B", Package: Package{FullName: "a"}},
		},
		Interfaces: []*Interface{
			{Name: "I", Package: Package{FullName: "b"}},
		},
	}
	got := d.Packages()
	if len(got) != 2 || got[0].FullName != "a" || got[1].FullName != "b" {
		t.Fatalf("Packages = %v", got)
	}
	if typ, ok := d.Lookup("b.I"); !ok || Kind(typ) != "interface" {
		t.Fatalf("Lookup(b.I) = %v, %v", typ, ok)
	}
}
