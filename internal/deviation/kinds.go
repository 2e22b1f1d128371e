package deviation

import "fmt"

// Level separates architectural deviations from code-level ones.
type Level uint8

const (
	// Makro deviations concern existence or placement of classes,
	// interfaces, packages and relations.
	Makro Level = iota
	// Mikro deviations concern members of types that otherwise exist correctly.
	Mikro
)

// Levels lists every level in report order.
var Levels = []Level{Makro, Mikro}

func (l Level) String() string {
	switch l {
	case Makro:
		return "MAKRO"
	case Mikro:
		return "MIKRO"
	}
	return "UNKNOWN"
}

// Description is the one-line explanation used in statistics tables.
func (l Level) Description() string {
	switch l {
	case Makro:
		return "Architectural level, impacting overall structure and design"
	case Mikro:
		return "Code level, affecting specific implementations and details"
	}
	return ""
}

// Subject is the kind of entity a deviation concerns.
type Subject uint8

const (
	SubjectRelation Subject = iota
	SubjectPackage
	SubjectClass
	SubjectInterface
	SubjectMethod
	SubjectConstructor
	SubjectField
)

// Subjects lists every subject in report order.
var Subjects = []Subject{
	SubjectRelation,
	SubjectPackage,
	SubjectClass,
	SubjectInterface,
	SubjectMethod,
	SubjectConstructor,
	SubjectField,
}

var subjectNames = [...]string{"RELATION", "PACKAGE", "CLASS", "INTERFACE", "METHOD", "CONSTRUCTOR", "FIELD"}

var subjectLabels = [...]string{"Relation", "Package", "Class", "Interface", "Method", "Constructor", "Field"}

func (s Subject) String() string {
	if int(s) < len(subjectNames) {
		return subjectNames[s]
	}
	return "UNKNOWN"
}

// Label is the title-case name, e.g. "Constructor".
func (s Subject) Label() string {
	if int(s) < len(subjectLabels) {
		return subjectLabels[s]
	}
	return "Unknown"
}

// Description is the one-line explanation used in statistics tables.
func (s Subject) Description() string {
	return "Deviations affecting " + plural(s)
}

func plural(s Subject) string {
	switch s {
	case SubjectClass:
		return "classes"
	case SubjectPackage:
		return "packages"
	}
	return lower(s.Label()) + "s"
}

// Type classifies a deviation by cause.
type Type uint8

const (
	// Absent: expected by the design, missing from the implementation.
	Absent Type = iota
	// Unexpected: present in the implementation, not expected by the design.
	Unexpected
	// Misimplemented: present on both sides but structurally different, or
	// found under the same simple name in another package.
	Misimplemented
)

// Types lists every deviation type in report order.
var Types = []Type{Absent, Unexpected, Misimplemented}

func (t Type) String() string {
	switch t {
	case Absent:
		return "ABSENT"
	case Unexpected:
		return "UNEXPECTED"
	case Misimplemented:
		return "MISIMPLEMENTED"
	}
	return "UNKNOWN"
}

// Label is the adjective used in titles, e.g. "Absent".
func (t Type) Label() string {
	switch t {
	case Absent:
		return "Absent"
	case Unexpected:
		return "Unexpected"
	case Misimplemented:
		return "Misimplemented"
	}
	return "Unknown"
}

// Description is the one-line explanation used in statistics tables.
func (t Type) Description() string {
	switch t {
	case Absent:
		return "Subject expected in the design but missing in the implementation"
	case Unexpected:
		return "Subject not expected in the design but present in the implementation"
	case Misimplemented:
		return "Subject expected in the design, present in the implementation but wrongly implemented"
	}
	return ""
}

func (l Level) MarshalText() ([]byte, error)   { return []byte(l.String()), nil }
func (s Subject) MarshalText() ([]byte, error) { return []byte(s.String()), nil }
func (t Type) MarshalText() ([]byte, error)    { return []byte(t.String()), nil }

func (l *Level) UnmarshalText(b []byte) error {
	for _, v := range Levels {
		if v.String() == string(b) {
			*l = v
			return nil
		}
	}
	return fmt.Errorf("unknown deviation level %q", b)
}

func (s *Subject) UnmarshalText(b []byte) error {
	for _, v := range Subjects {
		if v.String() == string(b) {
			*s = v
			return nil
		}
	}
	return fmt.Errorf("unknown deviation subject %q", b)
}

func (t *Type) UnmarshalText(b []byte) error {
	for _, v := range Types {
		if v.String() == string(b) {
			*t = v
			return nil
		}
	}
	return fmt.Errorf("unknown deviation type %q", b)
}
