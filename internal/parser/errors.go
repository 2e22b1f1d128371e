package parser

import (
	"fmt"

	"arcucheck/internal/diag"
)

// ParseError reports a diagram that cannot be decomposed into a model.
type ParseError struct {
	Path string
	Line uint32 // 0 when the problem is not tied to a line
	Code diag.Code
	Msg  string
}

func (e *ParseError) Error() string {
	switch {
	case e.Path == "":
		return "parse error: " + e.Msg
	case e.Line == 0:
		return fmt.Sprintf("%s: %s", e.Path, e.Msg)
	}
	return fmt.Sprintf("%s:%d: %s", e.Path, e.Line, e.Msg)
}

// MissingImplementationPathError is returned when a design diagram carries no
// implementation_path directive.
type MissingImplementationPathError struct {
	DesignPath string
}

func (e *MissingImplementationPathError) Error() string {
	return fmt.Sprintf("%s: missing 'implementation_path=[...] directive", e.DesignPath)
}
