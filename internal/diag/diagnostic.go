package diag

import "arcucheck/internal/source"

type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Path     string
	Pos      source.LineCol
	Notes    []string
}

func New(sev Severity, code Code, path string, pos source.LineCol, msg string) Diagnostic {
	return Diagnostic{
		Severity: sev,
		Code:     code,
		Message:  msg,
		Path:     path,
		Pos:      pos,
	}
}

func NewError(code Code, path string, pos source.LineCol, msg string) Diagnostic {
	return New(SevError, code, path, pos, msg)
}

func NewWarning(code Code, path string, pos source.LineCol, msg string) Diagnostic {
	return New(SevWarning, code, path, pos, msg)
}

func (d Diagnostic) WithNote(msg string) Diagnostic {
	d.Notes = append(d.Notes, msg)
	return d
}
