package puml

import (
	"slices"
	"strings"
)

// Method is a method declaration of a class or interface.
type Method struct {
	Name           string
	ReturnType     string
	ParameterTypes []string
	Visibility     Visibility
	IsStatic       bool
	IsAbstract     bool
	Line           uint32
}

// Key returns the lookup key of the method: its name.
func (m Method) Key() string { return m.Name }

// Equal reports full structural equality, ignoring the declaration line.
func (m Method) Equal(o Method) bool {
	return m.Name == o.Name &&
		m.ReturnType == o.ReturnType &&
		slices.Equal(m.ParameterTypes, o.ParameterTypes) &&
		m.Visibility == o.Visibility &&
		m.IsStatic == o.IsStatic &&
		m.IsAbstract == o.IsAbstract
}

// Signature renders the method as "<ReturnType> <name>(<params>)".
func (m Method) Signature() string {
	return m.ReturnType + " " + m.Name + "(" + JoinParameters(m.ParameterTypes) + ")"
}

// Field is an attribute of a class.
type Field struct {
	Name       string
	DataType   string
	Visibility Visibility
	IsStatic   bool
	Line       uint32
}

// Key returns the lookup key of the field: its name.
func (f Field) Key() string { return f.Name }

// Equal reports full structural equality, ignoring the declaration line.
func (f Field) Equal(o Field) bool {
	return f.Name == o.Name &&
		f.DataType == o.DataType &&
		f.Visibility == o.Visibility &&
		f.IsStatic == o.IsStatic
}

// Constructor has no name; a class may declare several, told apart by their
// parameter lists.
type Constructor struct {
	ParameterTypes []string
	Visibility     Visibility
	Line           uint32
}

// Key returns the lookup key of the constructor: its parameter list.
func (c Constructor) Key() string { return JoinParameters(c.ParameterTypes) }

// Equal reports full structural equality, ignoring the declaration line.
func (c Constructor) Equal(o Constructor) bool {
	return slices.Equal(c.ParameterTypes, o.ParameterTypes) && c.Visibility == o.Visibility
}

// JoinParameters renders a parameter list as written in a signature.
func JoinParameters(params []string) string {
	return strings.Join(params, ", ")
}
