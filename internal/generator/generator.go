// Package generator turns an implementation path into diagram text.
//
// The checker itself never looks at source code: a Generator produces a
// PlantUML class diagram for the implementation, which is then parsed like
// a design file.
package generator

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Generator produces diagram text for the implementation at sourcePath.
type Generator interface {
	Generate(ctx context.Context, sourcePath string) (string, error)
}

// Fingerprinter is implemented by generators whose output depends on more
// than the input tree, e.g. the external command line. The fingerprint is
// part of the cache key.
type Fingerprinter interface {
	Fingerprint() string
}

// ErrNoGenerator is returned when a non-diagram implementation path is given
// but no generator command is configured.
var ErrNoGenerator = errors.New("no generator command configured")

// Fingerprint returns g's fingerprint, or its type name.
func Fingerprint(g Generator) string {
	if f, ok := g.(Fingerprinter); ok {
		return f.Fingerprint()
	}
	return fmt.Sprintf("%T", g)
}

// Func adapts a function to Generator.
type Func func(ctx context.Context, sourcePath string) (string, error)

func (f Func) Generate(ctx context.Context, sourcePath string) (string, error) {
	return f(ctx, sourcePath)
}

// IsDiagramPath reports whether path names an already rendered diagram.
func IsDiagramPath(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".puml", ".plantuml", ".pu", ".iuml":
		return true
	}
	return false
}

// Passthrough reads diagram files directly and hands every other path to
// Next. A nil Next fails with ErrNoGenerator.
type Passthrough struct {
	Next Generator
}

func (p Passthrough) Generate(ctx context.Context, sourcePath string) (string, error) {
	if IsDiagramPath(sourcePath) {
		data, err := os.ReadFile(sourcePath)
		if err != nil {
			return "", fmt.Errorf("read implementation diagram: %w", err)
		}
		return string(data), nil
	}
	if p.Next == nil {
		return "", fmt.Errorf("%s: %w", sourcePath, ErrNoGenerator)
	}
	return p.Next.Generate(ctx, sourcePath)
}

func (p Passthrough) Fingerprint() string {
	if p.Next == nil {
		return "passthrough"
	}
	return "passthrough+" + Fingerprint(p.Next)
}
