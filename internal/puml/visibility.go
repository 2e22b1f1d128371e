package puml

import "fmt"

// Visibility is the access level of a member.
type Visibility uint8

const (
	// VisPublic is written as '+'.
	VisPublic Visibility = iota
	// VisPrivate is written as '-'.
	VisPrivate
	// VisProtected is written as '#'.
	VisProtected
	// VisPackagePrivate is written as '~'.
	VisPackagePrivate
)

// Visibilities lists every defined visibility in declaration order.
var Visibilities = []Visibility{VisPublic, VisPrivate, VisProtected, VisPackagePrivate}

// VisibilityFromSymbol maps a notation symbol to its visibility.
// The empty symbol resolves to package-private, the implicit level of a
// member declared without a modifier.
func VisibilityFromSymbol(sym string) (Visibility, error) {
	switch sym {
	case "+":
		return VisPublic, nil
	case "-":
		return VisPrivate, nil
	case "#":
		return VisProtected, nil
	case "~", "":
		return VisPackagePrivate, nil
	}
	return VisPackagePrivate, fmt.Errorf("unknown visibility symbol %q", sym)
}

// Symbol returns the single-character notation of v.
func (v Visibility) Symbol() string {
	switch v {
	case VisPublic:
		return "+"
	case VisPrivate:
		return "-"
	case VisProtected:
		return "#"
	case VisPackagePrivate:
		return "~"
	}
	return "?"
}

func (v Visibility) String() string {
	switch v {
	case VisPublic:
		return "PUBLIC"
	case VisPrivate:
		return "PRIVATE"
	case VisProtected:
		return "PROTECTED"
	case VisPackagePrivate:
		return "PACKAGE_PRIVATE"
	}
	return "UNKNOWN"
}
