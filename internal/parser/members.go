package parser

import (
	"regexp"
	"strings"

	"arcucheck/internal/diag"
	"arcucheck/internal/puml"
)

const (
	modifierExpr = `(\{(?:static|abstract)\})`
	typeExpr     = `[\w.\[\]]+(?:<[\w.<>,?\[\] ]*>)?(?:\[\])*`
)

var (
	headerPattern = regexp.MustCompile(`^(abstract[ \t]+)?(class|interface)(?:[ \t]+([\w.]+))?`)

	constructorPattern = regexp.MustCompile(`^([+\-#~])[ \t]*<<Create>>[ \t]*(\w+)[ \t]*\((.*)\)$`)

	methodPattern = regexp.MustCompile(`^(?:` + modifierExpr + `[ \t]*)?([+\-#~])?[ \t]*(?:` + modifierExpr + `[ \t]*)?` +
		`(` + typeExpr + `)[ \t]+(\w+)[ \t]*\((.*)\)$`)

	fieldPattern = regexp.MustCompile(`^(?:(\{static\})[ \t]*)?([+\-#~])[ \t]*(?:(\{static\})[ \t]*)?` +
		`(` + typeExpr + `)[ \t]+(\w+)$`)
)

// bodyLine is one trimmed line of an entity body and its offset in the diagram.
type bodyLine struct {
	text string
	off  int
}

type header struct {
	name       string
	isAbstract bool
}

func parseHeader(c Chunk) header {
	m := headerPattern.FindStringSubmatch(c.Text)
	if m == nil {
		return header{}
	}
	return header{name: m[3], isAbstract: m[1] != ""}
}

// bodyLines returns the member lines of a chunk: the lines between the
// header's "{" and the first line that closes it. A chunk without "{" on its
// header line is scanned to its end.
func (p *parser) bodyLines(c Chunk) []bodyLine {
	text := c.Text
	headerEnd := strings.IndexByte(text, '\n')
	if headerEnd < 0 {
		headerEnd = len(text)
	}
	headerLine := text[:headerEnd]

	var out []bodyLine
	brace := strings.IndexByte(headerLine, '{')
	if brace >= 0 {
		inline := headerLine[brace+1:]
		if end := strings.IndexByte(inline, '}'); end >= 0 {
			if s := strings.TrimSpace(inline[:end]); s != "" {
				out = append(out, bodyLine{text: s, off: c.Offset + brace + 1})
			}
			return out
		}
		if s := strings.TrimSpace(inline); s != "" {
			out = append(out, bodyLine{text: s, off: c.Offset + brace + 1})
		}
	}

	closed := brace < 0
	off := headerEnd + 1
	for off < len(text) {
		end := strings.IndexByte(text[off:], '\n')
		if end < 0 {
			end = len(text) - off
		}
		s := strings.TrimSpace(text[off : off+end])
		if brace >= 0 && strings.HasPrefix(s, "}") {
			closed = true
			break
		}
		if s != "" {
			out = append(out, bodyLine{text: s, off: c.Offset + off})
		}
		off += end + 1
	}
	if !closed {
		p.warn(diag.LintUnclosedBody, c.Offset, "body of "+c.Keyword+" is not closed with \"}\"")
	}
	return out
}

// Diagram directives that may follow a body-less entity declaration.
var directiveWords = []string{"package ", "namespace ", "skinparam", "hide ", "show ", "title ", "note ", "end "}

// skippable reports lines that carry no member: comments, separators,
// directives and stray relation lines.
func skippable(s string) bool {
	if s == "" {
		return true
	}
	switch s[0] {
	case '\'', '@', '}':
		return true
	}
	if len(s) >= 2 {
		switch s[:2] {
		case "--", "..", "==", "__":
			return true
		}
	}
	for _, w := range directiveWords {
		if strings.HasPrefix(s, w) {
			return true
		}
	}
	return relationLine.MatchString(s)
}

func (p *parser) class(c Chunk, h header) *puml.Class {
	pkg, simple := puml.PackageOf(h.name)
	cls := &puml.Class{
		Name:       simple,
		Package:    pkg,
		IsAbstract: h.isAbstract,
		Line:       p.file.LineOf(c.Offset),
	}
	for _, ln := range p.bodyLines(c) {
		if skippable(ln.text) {
			continue
		}
		if m := constructorPattern.FindStringSubmatch(ln.text); m != nil {
			cls.Constructors = append(cls.Constructors, p.constructor(m, ln))
			continue
		}
		if m := methodPattern.FindStringSubmatch(ln.text); m != nil {
			cls.Methods = append(cls.Methods, p.method(m, ln))
			continue
		}
		if m := fieldPattern.FindStringSubmatch(ln.text); m != nil {
			cls.Fields = append(cls.Fields, p.field(m, ln))
			continue
		}
		p.warn(diag.LintUnrecognizedMember, ln.off, "cannot classify member line "+quote(ln.text))
	}
	return cls
}

func (p *parser) iface(c Chunk, h header) *puml.Interface {
	pkg, simple := puml.PackageOf(h.name)
	it := &puml.Interface{
		Name:    simple,
		Package: pkg,
		Line:    p.file.LineOf(c.Offset),
	}
	for _, ln := range p.bodyLines(c) {
		if skippable(ln.text) {
			continue
		}
		if m := methodPattern.FindStringSubmatch(ln.text); m != nil {
			it.Methods = append(it.Methods, p.method(m, ln))
			continue
		}
		p.warn(diag.LintUnrecognizedMember, ln.off, "interfaces declare methods only, ignoring "+quote(ln.text))
	}
	return it
}

func (p *parser) constructor(m []string, ln bodyLine) puml.Constructor {
	vis, _ := puml.VisibilityFromSymbol(m[1])
	return puml.Constructor{
		ParameterTypes: p.params(m[3], ln),
		Visibility:     vis,
		Line:           p.file.LineOf(ln.off),
	}
}

func (p *parser) method(m []string, ln bodyLine) puml.Method {
	mod := m[1]
	if mod == "" {
		mod = m[3]
	} else if m[3] != "" && m[3] != mod {
		p.warn(diag.LintConflictingModifier, ln.off, "method declares both "+mod+" and "+m[3]+", keeping "+mod)
	}
	vis, _ := puml.VisibilityFromSymbol(m[2])
	return puml.Method{
		Name:           m[5],
		ReturnType:     m[4],
		ParameterTypes: p.params(m[6], ln),
		Visibility:     vis,
		IsStatic:       strings.Contains(mod, "static"),
		IsAbstract:     strings.Contains(mod, "abstract"),
		Line:           p.file.LineOf(ln.off),
	}
}

func (p *parser) field(m []string, ln bodyLine) puml.Field {
	vis, _ := puml.VisibilityFromSymbol(m[2])
	return puml.Field{
		Name:       m[5],
		DataType:   m[4],
		Visibility: vis,
		IsStatic:   m[1] != "" || m[3] != "",
		Line:       p.file.LineOf(ln.off),
	}
}

func (p *parser) params(s string, ln bodyLine) []string {
	params, ok := splitParameters(s)
	if !ok {
		p.warn(diag.LintUnbalancedParams, ln.off, "unbalanced brackets in "+quote(ln.text))
	}
	return params
}

func quote(s string) string {
	return "\"" + s + "\""
}
