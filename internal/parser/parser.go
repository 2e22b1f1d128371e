package parser

import (
	"regexp"
	"strconv"
	"strings"

	"arcucheck/internal/diag"
	"arcucheck/internal/puml"
	"arcucheck/internal/source"
)

var (
	startumlName = regexp.MustCompile(`(?m)^[ \t]*@startuml[ \t]+(\S[^\n]*)$`)
	titleLine    = regexp.MustCompile(`(?m)^[ \t]*title[ \t]+(\S[^\n]*)$`)
)

// Options controls a single parse.
type Options struct {
	// Reporter receives warnings for degraded lines and the error that
	// aborted the parse, if any. Nil discards them.
	Reporter diag.Reporter
}

// parser хранит состояние разбора одной диаграммы
type parser struct {
	file *source.File
	rep  diag.Reporter
}

// ParseDiagram parses diagram text into a model. It fails only when nothing
// at all can be extracted or a relation line carries an unknown symbol;
// malformed members degrade into partial entities.
func ParseDiagram(sourcePath, text string) (*puml.Diagram, error) {
	return ParseFile(source.FromString(sourcePath, text), Options{})
}

// ParseFile parses an already loaded and normalized file.
func ParseFile(file *source.File, opts Options) (*puml.Diagram, error) {
	p := parser{file: file, rep: opts.Reporter}
	if p.rep == nil {
		p.rep = diag.NopReporter{}
	}
	text := file.Text()

	chunks := SplitEntities(text)
	relations := SplitRelations(text)
	if len(chunks) == 0 && len(relations) == 0 {
		return nil, p.fail(diag.ParseNoContent, -1, "no class, interface or relation found")
	}

	d := &puml.Diagram{
		SourcePath: file.Path,
		Name:       diagramName(text),
	}
	seen := make(map[string]uint32)
	for _, c := range chunks {
		h := parseHeader(c)
		if h.name == "" {
			p.warn(diag.LintUnnamedEntity, c.Offset, c.Keyword+" header without a name")
		}
		if c.IsInterface() {
			if it := p.iface(c, h); p.firstDeclaration(seen, it) {
				d.Interfaces = append(d.Interfaces, it)
			}
			continue
		}
		if cls := p.class(c, h); p.firstDeclaration(seen, cls) {
			d.Classes = append(d.Classes, cls)
		}
	}

	for _, rl := range relations {
		kind, err := puml.RelationKindFromSymbol(rl.Symbol)
		if err != nil {
			return nil, p.fail(diag.ParseUnknownRelation, rl.Offset, err.Error())
		}
		d.Relations = append(d.Relations, puml.Relation{
			Kind:        kind,
			Source:      rl.Source,
			Destination: rl.Destination,
		})
	}
	return d, nil
}

// firstDeclaration keeps the first of several same-kind types sharing a
// fully-qualified name and warns about the rest.
func (p *parser) firstDeclaration(seen map[string]uint32, t puml.Type) bool {
	key := puml.Kind(t) + " " + t.FullName()
	if line, dup := seen[key]; dup {
		p.rep.Report(diag.LintDuplicateType, diag.SevWarning, p.file.Path,
			source.LineCol{Line: t.DeclLine(), Col: 1},
			puml.Kind(t)+" "+quote(t.FullName())+" is declared more than once, keeping the first declaration",
			[]string{"first declared on line " + strconv.FormatUint(uint64(line), 10)})
		return false
	}
	seen[key] = t.DeclLine()
	return true
}

func (p *parser) warn(code diag.Code, off int, msg string) {
	p.rep.Report(code, diag.SevWarning, p.file.Path, p.file.Position(off), msg, nil)
}

// fail reports and returns a ParseError; off < 0 means the whole file.
func (p *parser) fail(code diag.Code, off int, msg string) error {
	var pos source.LineCol
	if off >= 0 {
		pos = p.file.Position(off)
	}
	p.rep.Report(code, diag.SevError, p.file.Path, pos, msg, nil)
	return &ParseError{Path: p.file.Path, Line: pos.Line, Code: code, Msg: msg}
}

// diagramName prefers "@startuml <name>" over a title line.
func diagramName(text string) string {
	if m := startumlName.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	if m := titleLine.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}
