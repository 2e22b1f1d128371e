package puml

// Type is implemented by *Class and *Interface only. The sealed method keeps
// the set closed; code switching over a Type handles both variants.
type Type interface {
	TypeName() string
	TypePackage() Package
	TypeMethods() []Method
	FullName() string
	DeclLine() uint32
	sealed()
}

// Class is a (possibly abstract) class declaration.
type Class struct {
	Name         string
	Package      Package
	Constructors []Constructor
	Fields       []Field
	Methods      []Method
	IsAbstract   bool
	Line         uint32
}

// Interface declares methods only.
type Interface struct {
	Name    string
	Package Package
	Methods []Method
	Line    uint32
}

func (c *Class) TypeName() string { return c.Name }

func (c *Class) TypePackage() Package { return c.Package }

func (c *Class) TypeMethods() []Method { return c.Methods }

// FullName returns the package-qualified name of the class.
func (c *Class) FullName() string { return c.Package.Qualify(c.Name) }

func (c *Class) DeclLine() uint32 { return c.Line }

func (*Class) sealed() {}

func (i *Interface) TypeName() string { return i.Name }

func (i *Interface) TypePackage() Package { return i.Package }

func (i *Interface) TypeMethods() []Method { return i.Methods }

// FullName returns the package-qualified name of the interface.
func (i *Interface) FullName() string { return i.Package.Qualify(i.Name) }

func (i *Interface) DeclLine() uint32 { return i.Line }

func (*Interface) sealed() {}

// Kind names the variant of t: "class" or "interface".
func Kind(t Type) string {
	switch t.(type) {
	case *Class:
		return "class"
	case *Interface:
		return "interface"
	}
	return ""
}
