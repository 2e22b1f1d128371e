package puml

import "sort"

// Diagram is the parsed form of one diagram text.
//
// For a design diagram SourcePath is the diagram file; for an implementation
// diagram it is the source path the generator was run on.
type Diagram struct {
	SourcePath string
	Name       string
	Classes    []*Class
	Interfaces []*Interface
	Relations  []Relation
}

// Types returns classes followed by interfaces.
func (d *Diagram) Types() []Type {
	if d == nil {
		return nil
	}
	out := make([]Type, 0, len(d.Classes)+len(d.Interfaces))
	for _, c := range d.Classes {
		out = append(out, c)
	}
	for _, i := range d.Interfaces {
		out = append(out, i)
	}
	return out
}

// ClassTypes returns the classes as Type values.
func (d *Diagram) ClassTypes() []Type {
	if d == nil {
		return nil
	}
	out := make([]Type, 0, len(d.Classes))
	for _, c := range d.Classes {
		out = append(out, c)
	}
	return out
}

// InterfaceTypes returns the interfaces as Type values.
func (d *Diagram) InterfaceTypes() []Type {
	if d == nil {
		return nil
	}
	out := make([]Type, 0, len(d.Interfaces))
	for _, i := range d.Interfaces {
		out = append(out, i)
	}
	return out
}

// Packages recomputes the distinct packages of all classes and interfaces,
// sorted by name.
func (d *Diagram) Packages() []Package {
	seen := make(map[Package]struct{})
	var out []Package
	for _, t := range d.Types() {
		p := t.TypePackage()
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FullName < out[j].FullName })
	return out
}

// Lookup finds a type by its fully-qualified name.
func (d *Diagram) Lookup(fullName string) (Type, bool) {
	for _, t := range d.Types() {
		if t.FullName() == fullName {
			return t, true
		}
	}
	return nil, false
}
