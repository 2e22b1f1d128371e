package puml

import "fmt"

// RelationKind classifies a relation line by its arrow symbol.
type RelationKind uint8

const (
	// RelInheritance: class extends class, "<|--".
	RelInheritance RelationKind = iota
	// RelRealisation: class implements interface, "<|..".
	RelRealisation
	// RelComposition: part cannot exist without the whole, "*--".
	RelComposition
	// RelAggregation: part can exist independently, "o--".
	RelAggregation
	// RelAssociation: plain association, "--".
	RelAssociation
	// RelLeftNav: navigable from the left side only, "<--x".
	RelLeftNav
	// RelRightNav: navigable from the right side only, "x-->".
	RelRightNav
	// RelBidirectionalNav: navigable both ways, "<-->".
	RelBidirectionalNav
)

// RelationKinds lists every defined relation kind in declaration order.
var RelationKinds = []RelationKind{
	RelInheritance,
	RelRealisation,
	RelComposition,
	RelAggregation,
	RelAssociation,
	RelLeftNav,
	RelRightNav,
	RelBidirectionalNav,
}

var relationSymbols = map[RelationKind]string{
	RelInheritance:      "<|--",
	RelRealisation:      "<|..",
	RelComposition:      "*--",
	RelAggregation:      "o--",
	RelAssociation:      "--",
	RelLeftNav:          "<--x",
	RelRightNav:         "x-->",
	RelBidirectionalNav: "<-->",
}

// RelationKindFromSymbol maps an arrow symbol to its kind.
func RelationKindFromSymbol(sym string) (RelationKind, error) {
	for _, k := range RelationKinds {
		if relationSymbols[k] == sym {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown relation symbol %q", sym)
}

// Symbol returns the arrow notation of k.
func (k RelationKind) Symbol() string {
	if s, ok := relationSymbols[k]; ok {
		return s
	}
	return "?"
}

func (k RelationKind) String() string {
	switch k {
	case RelInheritance:
		return "INHERITANCE"
	case RelRealisation:
		return "REALISATION"
	case RelComposition:
		return "COMPOSITION"
	case RelAggregation:
		return "AGGREGATION"
	case RelAssociation:
		return "ASSOCIATION"
	case RelLeftNav:
		return "LEFT_NAV"
	case RelRightNav:
		return "RIGHT_NAV"
	case RelBidirectionalNav:
		return "BIDIRECTIONAL_NAV"
	}
	return "UNKNOWN"
}

// Relation is a directed edge between two type names as written in the
// diagram. Relation is comparable and can be used as a map key.
type Relation struct {
	Kind        RelationKind
	Source      string
	Destination string
}

func (r Relation) String() string {
	return r.Source + " " + r.Kind.Symbol() + " " + r.Destination
}
