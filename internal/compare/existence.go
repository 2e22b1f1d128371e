package compare

import (
	"sort"

	"arcucheck/internal/deviation"
	"arcucheck/internal/puml"
)

// Resolution is the outcome of resolving a type present on one side only.
// It is either Certain or PossiblyRelocated.
type Resolution interface {
	resolution()
}

// Certain means no same-named type exists on the other side.
type Certain struct {
	Type   deviation.Type // Absent or Unexpected
	Entity puml.Type
}

// PossiblyRelocated means the design and implementation hold types with the
// same simple name in different packages.
type PossiblyRelocated struct {
	Design puml.Type
	Impl   puml.Type
}

func (Certain) resolution()           {}
func (PossiblyRelocated) resolution() {}

// From is the package the design expects the type in.
func (r PossiblyRelocated) From() puml.Package { return r.Design.TypePackage() }

// To is the package the implementation has it in.
func (r PossiblyRelocated) To() puml.Package { return r.Impl.TypePackage() }

// ResolveExistence matches design and implementation types of one kind.
//
// Candidates are the set differences by fully-qualified name. Each absent
// candidate is looked up by simple name over all implementation types; a hit
// yields PossiblyRelocated. When several types share the simple name, an
// unmatched and not yet paired one is preferred, then the first in name
// order. Relocations come from the absent pass only: an unexpected candidate
// that was not cited by such a pair is always Certain.
func ResolveExistence(design, impl []puml.Type) []Resolution {
	designFQN := indexByFullName(design)
	implFQN := indexByFullName(impl)
	implSimple := indexBySimpleName(impl)

	pairedImpl := make(map[string]bool)

	var out []Resolution
	for _, d := range design {
		if _, ok := implFQN[d.FullName()]; ok {
			continue
		}
		c := pick(implSimple[d.TypeName()], designFQN, pairedImpl)
		if c == nil {
			out = append(out, Certain{Type: deviation.Absent, Entity: d})
			continue
		}
		pairedImpl[c.FullName()] = true
		out = append(out, PossiblyRelocated{Design: d, Impl: c})
	}

	for _, i := range impl {
		if _, ok := designFQN[i.FullName()]; ok {
			continue
		}
		if pairedImpl[i.FullName()] {
			continue
		}
		// Любой одноимённый тип дизайна уже найден или сопоставлен выше.
		out = append(out, Certain{Type: deviation.Unexpected, Entity: i})
	}
	return out
}

// pick chooses among same-named candidates. A candidate is unmatched when its
// full name is missing from other.
func pick(cands []puml.Type, other map[string]puml.Type, paired map[string]bool) puml.Type {
	if len(cands) == 0 {
		return nil
	}
	for _, c := range cands {
		if _, matched := other[c.FullName()]; !matched && !paired[c.FullName()] {
			return c
		}
	}
	return cands[0]
}

func indexByFullName(ts []puml.Type) map[string]puml.Type {
	m := make(map[string]puml.Type, len(ts))
	for _, t := range ts {
		if _, dup := m[t.FullName()]; !dup {
			m[t.FullName()] = t
		}
	}
	return m
}

// indexBySimpleName groups types by simple name, each group sorted by full name.
func indexBySimpleName(ts []puml.Type) map[string][]puml.Type {
	m := make(map[string][]puml.Type)
	for _, t := range ts {
		m[t.TypeName()] = append(m[t.TypeName()], t)
	}
	for _, group := range m {
		sort.SliceStable(group, func(i, j int) bool { return group[i].FullName() < group[j].FullName() })
	}
	return m
}

// matchedPairs returns the design/implementation pairs sharing a full name,
// in design order.
func matchedPairs(design, impl []puml.Type) [][2]puml.Type {
	implFQN := indexByFullName(impl)
	seen := make(map[string]bool)
	var out [][2]puml.Type
	for _, d := range design {
		if seen[d.FullName()] {
			continue
		}
		if i, ok := implFQN[d.FullName()]; ok {
			seen[d.FullName()] = true
			out = append(out, [2]puml.Type{d, i})
		}
	}
	return out
}
