package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"arcucheck/internal/puml"
)

// MethodJSON, FieldJSON and friends are the JSON dump of a parsed diagram.
type MethodJSON struct {
	Name       string   `json:"name"`
	ReturnType string   `json:"return_type"`
	Parameters []string `json:"parameters"`
	Visibility string   `json:"visibility"`
	Static     bool     `json:"static,omitempty"`
	Abstract   bool     `json:"abstract,omitempty"`
	Line       uint32   `json:"line,omitempty"`
}

type FieldJSON struct {
	Name       string `json:"name"`
	Type       string `json:"type"`
	Visibility string `json:"visibility"`
	Static     bool   `json:"static,omitempty"`
	Line       uint32 `json:"line,omitempty"`
}

type ConstructorJSON struct {
	Parameters []string `json:"parameters"`
	Visibility string   `json:"visibility"`
	Line       uint32   `json:"line,omitempty"`
}

type TypeJSON struct {
	Kind         string            `json:"kind"`
	Name         string            `json:"name"`
	Package      string            `json:"package"`
	Abstract     bool              `json:"abstract,omitempty"`
	Constructors []ConstructorJSON `json:"constructors,omitempty"`
	Fields       []FieldJSON       `json:"fields,omitempty"`
	Methods      []MethodJSON      `json:"methods,omitempty"`
	Line         uint32            `json:"line,omitempty"`
}

type RelationJSON struct {
	Kind        string `json:"kind"`
	Symbol      string `json:"symbol"`
	Source      string `json:"source"`
	Destination string `json:"destination"`
}

type DiagramJSON struct {
	Source    string         `json:"source"`
	Name      string         `json:"name,omitempty"`
	Packages  []string       `json:"packages"`
	Types     []TypeJSON     `json:"types"`
	Relations []RelationJSON `json:"relations"`
}

func methodsJSON(ms []puml.Method) []MethodJSON {
	out := make([]MethodJSON, 0, len(ms))
	for _, m := range ms {
		out = append(out, MethodJSON{
			Name:       m.Name,
			ReturnType: m.ReturnType,
			Parameters: m.ParameterTypes,
			Visibility: m.Visibility.String(),
			Static:     m.IsStatic,
			Abstract:   m.IsAbstract,
			Line:       m.Line,
		})
	}
	return out
}

// BuildDiagramJSON converts a diagram into its JSON form.
func BuildDiagramJSON(d *puml.Diagram) DiagramJSON {
	out := DiagramJSON{
		Source:    d.SourcePath,
		Name:      d.Name,
		Packages:  []string{},
		Types:     []TypeJSON{},
		Relations: []RelationJSON{},
	}
	for _, p := range d.Packages() {
		out.Packages = append(out.Packages, p.FullName)
	}
	for _, t := range d.Types() {
		tj := TypeJSON{
			Kind:    puml.Kind(t),
			Name:    t.FullName(),
			Package: t.TypePackage().FullName,
			Methods: methodsJSON(t.TypeMethods()),
			Line:    t.DeclLine(),
		}
		if c, ok := t.(*puml.Class); ok {
			tj.Abstract = c.IsAbstract
			for _, ctor := range c.Constructors {
				tj.Constructors = append(tj.Constructors, ConstructorJSON{
					Parameters: ctor.ParameterTypes,
					Visibility: ctor.Visibility.String(),
					Line:       ctor.Line,
				})
			}
			for _, f := range c.Fields {
				tj.Fields = append(tj.Fields, FieldJSON{
					Name:       f.Name,
					Type:       f.DataType,
					Visibility: f.Visibility.String(),
					Static:     f.IsStatic,
					Line:       f.Line,
				})
			}
		}
		out.Types = append(out.Types, tj)
	}
	for _, r := range d.Relations {
		out.Relations = append(out.Relations, RelationJSON{
			Kind:        r.Kind.String(),
			Symbol:      r.Kind.Symbol(),
			Source:      r.Source,
			Destination: r.Destination,
		})
	}
	return out
}

// DiagramAsJSON writes the parsed model as indented JSON.
func DiagramAsJSON(w io.Writer, d *puml.Diagram) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(BuildDiagramJSON(d))
}

type treeNode struct {
	label    string
	children []*treeNode
}

func (n *treeNode) add(label string) *treeNode {
	c := &treeNode{label: label}
	n.children = append(n.children, c)
	return c
}

// DiagramAsTree writes the parsed model as an indented tree.
func DiagramAsTree(w io.Writer, d *puml.Diagram) error {
	header := d.SourcePath
	if d.Name != "" {
		header = fmt.Sprintf("%s (%s)", header, d.Name)
	}
	root := &treeNode{label: header}

	for _, t := range d.Types() {
		label := puml.Kind(t) + " " + t.FullName()
		if c, ok := t.(*puml.Class); ok && c.IsAbstract {
			label = "abstract " + label
		}
		node := root.add(fmt.Sprintf("%s (line %d)", label, t.DeclLine()))
		if c, ok := t.(*puml.Class); ok {
			for _, ctor := range c.Constructors {
				node.add(fmt.Sprintf("%s <<Create>> %s(%s)", ctor.Visibility.Symbol(), c.Name, puml.JoinParameters(ctor.ParameterTypes)))
			}
			for _, f := range c.Fields {
				node.add(fmt.Sprintf("%s %s%s %s", f.Visibility.Symbol(), modifier(f.IsStatic, false), f.DataType, f.Name))
			}
		}
		for _, m := range t.TypeMethods() {
			node.add(fmt.Sprintf("%s %s%s", m.Visibility.Symbol(), modifier(m.IsStatic, m.IsAbstract), m.Signature()))
		}
	}
	if len(d.Relations) > 0 {
		rels := root.add("relations")
		for _, r := range d.Relations {
			rels.add(fmt.Sprintf("%s (%s)", r, r.Kind))
		}
	}

	var b strings.Builder
	b.WriteString(root.label)
	b.WriteString("\n")
	writeChildren(&b, root, "")
	_, err := io.WriteString(w, b.String())
	return err
}

func modifier(static, abstract bool) string {
	switch {
	case static:
		return "{static} "
	case abstract:
		return "{abstract} "
	}
	return ""
}

func writeChildren(b *strings.Builder, n *treeNode, prefix string) {
	for i, c := range n.children {
		last := i == len(n.children)-1
		branch, next := "├── ", "│   "
		if last {
			branch, next = "└── ", "    "
		}
		b.WriteString(prefix + branch + c.label + "\n")
		writeChildren(b, c, prefix+next)
	}
}
