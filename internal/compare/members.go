package compare

import (
	"fmt"
	"slices"

	"arcucheck/internal/deviation"
	"arcucheck/internal/puml"
)

type member[M any] interface {
	Key() string
	Equal(M) bool
}

// memberDiff is the outcome of diffing one member collection.
type memberDiff[M any] struct {
	absent     []M
	unexpected []M
	pairs      [][2]M // design, impl sharing a key but not equal
}

// diffMembers removes exact matches first, then pairs the remaining members
// sharing a key in declaration order. Whatever is left unpaired is absent or
// unexpected.
func diffMembers[M member[M]](design, impl []M) memberDiff[M] {
	usedDesign := make([]bool, len(design))
	usedImpl := make([]bool, len(impl))
	for di, d := range design {
		for ii, i := range impl {
			if !usedImpl[ii] && d.Equal(i) {
				usedDesign[di], usedImpl[ii] = true, true
				break
			}
		}
	}

	var res memberDiff[M]
	for di, d := range design {
		if usedDesign[di] {
			continue
		}
		paired := false
		for ii, i := range impl {
			if !usedImpl[ii] && d.Key() == i.Key() {
				usedImpl[ii] = true
				res.pairs = append(res.pairs, [2]M{d, i})
				paired = true
				break
			}
		}
		if !paired {
			res.absent = append(res.absent, d)
		}
	}
	for ii, i := range impl {
		if !usedImpl[ii] {
			res.unexpected = append(res.unexpected, i)
		}
	}
	return res
}

// memberSet describes how to render one member kind.
type memberSet[M member[M]] struct {
	subject deviation.Subject
	name    func(owner puml.Type, m M) string
	line    func(m M) uint32
	causes  func(name string, design, impl M) []string
}

func (s memberSet[M]) compare(owner puml.Type, design, impl []M, paths deviation.Paths) []deviation.Deviation {
	diff := diffMembers(design, impl)
	affected := []string{owner.TypeName()}
	location := owner.FullName()

	var out []deviation.Deviation
	for _, m := range diff.absent {
		out = append(out, deviation.Existence(deviation.Mikro, s.subject, deviation.Absent,
			affected, s.name(owner, m), location, paths).At(s.line(m)))
	}
	for _, m := range diff.unexpected {
		out = append(out, deviation.Existence(deviation.Mikro, s.subject, deviation.Unexpected,
			affected, s.name(owner, m), location, paths))
	}
	for _, p := range diff.pairs {
		name := s.name(owner, p[0])
		out = append(out, deviation.Misimplementation(deviation.Mikro, s.subject,
			affected, name, location, s.causes(name, p[0], p[1]), paths).At(s.line(p[0])))
	}
	return out
}

var methods = memberSet[puml.Method]{
	subject: deviation.SubjectMethod,
	name:    func(_ puml.Type, m puml.Method) string { return m.Name },
	line:    func(m puml.Method) uint32 { return m.Line },
	causes:  methodCauses,
}

var fields = memberSet[puml.Field]{
	subject: deviation.SubjectField,
	name:    func(_ puml.Type, f puml.Field) string { return f.Name },
	line:    func(f puml.Field) uint32 { return f.Line },
	causes:  fieldCauses,
}

var constructors = memberSet[puml.Constructor]{
	subject: deviation.SubjectConstructor,
	name: func(owner puml.Type, c puml.Constructor) string {
		return owner.TypeName() + "(" + puml.JoinParameters(c.ParameterTypes) + ")"
	},
	line:   func(c puml.Constructor) uint32 { return c.Line },
	causes: constructorCauses,
}

func methodCauses(name string, design, impl puml.Method) []string {
	var causes []string
	switch {
	case impl.IsAbstract && !design.IsAbstract:
		causes = append(causes, fmt.Sprintf("Method %q is marked as abstract in the implementation but should not be abstract according to the design.", name))
	case !impl.IsAbstract && design.IsAbstract:
		causes = append(causes, fmt.Sprintf("Method %q should be abstract according to the design but is not marked as abstract in the implementation.", name))
	}
	switch {
	case impl.IsStatic && !design.IsStatic:
		causes = append(causes, fmt.Sprintf("Method %q is marked as static in the implementation but should not be static according to the design.", name))
	case !impl.IsStatic && design.IsStatic:
		causes = append(causes, fmt.Sprintf("Method %q should be static according to the design but is not marked as static in the implementation.", name))
	}
	if impl.Visibility != design.Visibility {
		causes = append(causes, visibilityCause("Method", name, design.Visibility, impl.Visibility))
	}
	if impl.ReturnType != design.ReturnType {
		causes = append(causes, fmt.Sprintf("Method %q should have the return type %q according to the design but has the return type %q in the implementation.",
			name, design.ReturnType, impl.ReturnType))
	}
	if !slices.Equal(impl.ParameterTypes, design.ParameterTypes) {
		causes = append(causes, fmt.Sprintf("Method %q should have the parameter types [%s] according to the design but has the parameter types [%s] in the implementation.",
			name, puml.JoinParameters(design.ParameterTypes), puml.JoinParameters(impl.ParameterTypes)))
	}
	return causes
}

func fieldCauses(name string, design, impl puml.Field) []string {
	var causes []string
	if impl.DataType != design.DataType {
		causes = append(causes, fmt.Sprintf("Field %q should have the data type %q according to the design but has the data type %q in the implementation.",
			name, design.DataType, impl.DataType))
	}
	if impl.Visibility != design.Visibility {
		causes = append(causes, visibilityCause("Field", name, design.Visibility, impl.Visibility))
	}
	switch {
	case impl.IsStatic && !design.IsStatic:
		causes = append(causes, fmt.Sprintf("Field %q is marked as static in the implementation but should not be static according to the design.", name))
	case !impl.IsStatic && design.IsStatic:
		causes = append(causes, fmt.Sprintf("Field %q should be static according to the design but is not marked as static in the implementation.", name))
	}
	return causes
}

func constructorCauses(name string, design, impl puml.Constructor) []string {
	return []string{visibilityCause("Constructor", name, design.Visibility, impl.Visibility)}
}

func visibilityCause(kind, name string, design, impl puml.Visibility) string {
	return fmt.Sprintf("%s %q should have the visibility %q according to the design but has the visibility %q in the implementation.",
		kind, name, design.String(), impl.String())
}

// memberDeviations compares members of every type present under the same
// full name on both sides, per kind. Fields and constructors exist on
// classes only.
func memberDeviations(design, impl *puml.Diagram, paths deviation.Paths) []deviation.Deviation {
	classPairs := matchedPairs(design.ClassTypes(), impl.ClassTypes())
	ifacePairs := matchedPairs(design.InterfaceTypes(), impl.InterfaceTypes())

	var out []deviation.Deviation
	for _, pair := range slices.Concat(classPairs, ifacePairs) {
		out = append(out, methods.compare(pair[0], pair[0].TypeMethods(), pair[1].TypeMethods(), paths)...)
	}
	for _, pair := range classPairs {
		d, i := pair[0].(*puml.Class), pair[1].(*puml.Class)
		out = append(out, fields.compare(d, d.Fields, i.Fields, paths)...)
	}
	for _, pair := range classPairs {
		d, i := pair[0].(*puml.Class), pair[1].(*puml.Class)
		out = append(out, constructors.compare(d, d.Constructors, i.Constructors, paths)...)
	}
	return out
}
