package diag

import "fmt"

type Code uint16

const (
	// Неизвестная ошибка - на первое время
	UnknownCode Code = 0

	// Структурные ошибки разбора
	ParseInfo            Code = 1000
	ParseNoContent       Code = 1001
	ParseUnknownRelation Code = 1002
	ParseMissingImplPath Code = 1003

	// Деградация: модель строится, но с потерями
	LintInfo                Code = 2000
	LintUnnamedEntity       Code = 2001
	LintUnclosedBody        Code = 2002
	LintUnrecognizedMember  Code = 2003
	LintDuplicateType       Code = 2004
	LintUnbalancedParams    Code = 2005
	LintConflictingModifier Code = 2006
)

var codeDescription = map[Code]string{
	UnknownCode:             "Unknown error",
	ParseInfo:               "Parse information",
	ParseNoContent:          "No entity or relation found",
	ParseUnknownRelation:    "Unknown relation symbol",
	ParseMissingImplPath:    "Missing implementation path directive",
	LintInfo:                "Diagram information",
	LintUnnamedEntity:       "Entity header without a name",
	LintUnclosedBody:        "Entity body is not closed",
	LintUnrecognizedMember:  "Member line not recognised",
	LintDuplicateType:       "Type declared more than once",
	LintUnbalancedParams:    "Unbalanced brackets in parameter list",
	LintConflictingModifier: "Both static and abstract modifiers",
}

// ID returns the stable identifier, e.g. PUML1001 or LINT2003.
func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("PUML%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("LINT%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	if d, ok := codeDescription[c]; ok {
		return d
	}
	return codeDescription[UnknownCode]
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
