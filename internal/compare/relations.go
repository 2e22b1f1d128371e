package compare

import (
	"slices"
	"sort"

	"arcucheck/internal/deviation"
	"arcucheck/internal/puml"
)

// relationDeviations is a flat set difference over relations.
func relationDeviations(design, impl []puml.Relation, paths deviation.Paths) []deviation.Deviation {
	inDesign := make(map[puml.Relation]bool, len(design))
	for _, r := range design {
		inDesign[r] = true
	}
	inImpl := make(map[puml.Relation]bool, len(impl))
	for _, r := range impl {
		inImpl[r] = true
	}

	var out []deviation.Deviation
	for _, r := range design {
		if !inImpl[r] {
			out = append(out, deviation.RelationExistence(deviation.Absent, r.Kind.String(), r.Source, r.Destination, paths))
		}
	}
	for _, r := range impl {
		if !inDesign[r] {
			out = append(out, deviation.RelationExistence(deviation.Unexpected, r.Kind.String(), r.Source, r.Destination, paths))
		}
	}
	return out
}

// packageDeviations is a flat set difference over the packages of all types.
func packageDeviations(design, impl *puml.Diagram, paths deviation.Paths) []deviation.Deviation {
	designPkgs := typesByPackage(design)
	implPkgs := typesByPackage(impl)

	var out []deviation.Deviation
	for _, p := range design.Packages() {
		if _, ok := implPkgs[p]; !ok {
			out = append(out, deviation.Existence(deviation.Makro, deviation.SubjectPackage, deviation.Absent,
				designPkgs[p], p.String(), parentOf(p), paths))
		}
	}
	for _, p := range impl.Packages() {
		if _, ok := designPkgs[p]; !ok {
			out = append(out, deviation.Existence(deviation.Makro, deviation.SubjectPackage, deviation.Unexpected,
				implPkgs[p], p.String(), parentOf(p), paths))
		}
	}
	return out
}

// typesByPackage maps every package to the sorted simple names of its types.
func typesByPackage(d *puml.Diagram) map[puml.Package][]string {
	m := make(map[puml.Package][]string)
	for _, t := range d.Types() {
		m[t.TypePackage()] = append(m[t.TypePackage()], t.TypeName())
	}
	for p, names := range m {
		sort.Strings(names)
		m[p] = slices.Compact(names)
	}
	return m
}

// parentOf is the enclosing package name, empty for a top-level package.
func parentOf(p puml.Package) string {
	parent, _ := puml.PackageOf(p.FullName)
	return parent.FullName
}
