package deviation

import (
	"strconv"
	"strings"
)

// Relocation is set on a type deviation when a same-named type was found in
// another package: From is where the design expects it, To where the
// implementation has it.
type Relocation struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// Paths names the two inputs of a comparison.
type Paths struct {
	Design         string
	Implementation string
}

// Deviation is one classified discrepancy. Values are created by the builder
// functions of this package and never mutated afterwards.
type Deviation struct {
	Level              Level       `json:"level"`
	Subject            Subject     `json:"subject"`
	Type               Type        `json:"type"`
	AffectedClasses    []string    `json:"affected_classes"`
	Title              string      `json:"title"`
	Description        string      `json:"description"`
	Causes             []string    `json:"causes,omitempty"`
	Relocation         *Relocation `json:"relocation,omitempty"`
	DesignPath         string      `json:"design_path"`
	ImplementationPath string      `json:"implementation_path"`
	DesignLine         uint32      `json:"design_line,omitempty"`
}

// At returns a copy of d pointing at a line of the design diagram.
func (d Deviation) At(line uint32) Deviation {
	d.DesignLine = line
	return d
}

// Key is a value-equality key over every field.
func (d Deviation) Key() string {
	var b strings.Builder
	sep := func() { b.WriteByte(0) }
	b.WriteString(d.Level.String())
	sep()
	b.WriteString(d.Subject.String())
	sep()
	b.WriteString(d.Type.String())
	sep()
	b.WriteString(strings.Join(d.AffectedClasses, "\x01"))
	sep()
	b.WriteString(d.Title)
	sep()
	b.WriteString(d.Description)
	sep()
	b.WriteString(strings.Join(d.Causes, "\x01"))
	sep()
	if d.Relocation != nil {
		b.WriteString(d.Relocation.From + "\x01" + d.Relocation.To)
	}
	sep()
	b.WriteString(d.DesignPath)
	sep()
	b.WriteString(d.ImplementationPath)
	sep()
	b.WriteString(strconv.FormatUint(uint64(d.DesignLine), 10))
	return b.String()
}

// Equal reports value equality.
func (d Deviation) Equal(o Deviation) bool {
	return d.Key() == o.Key()
}

// IsRelocation reports whether d is a possibly-relocated type.
func (d Deviation) IsRelocation() bool {
	return d.Relocation != nil
}

func lower(s string) string {
	return strings.ToLower(s)
}
