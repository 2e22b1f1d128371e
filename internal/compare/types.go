package compare

import (
	"fmt"

	"arcucheck/internal/deviation"
	"arcucheck/internal/puml"
)

func subjectOf(t puml.Type) deviation.Subject {
	switch t.(type) {
	case *puml.Class:
		return deviation.SubjectClass
	case *puml.Interface:
		return deviation.SubjectInterface
	}
	panic(fmt.Sprintf("compare: unexpected type %T", t))
}

// typeDeviations renders resolutions of one kind into MAKRO deviations.
func typeDeviations(res []Resolution, paths deviation.Paths) []deviation.Deviation {
	out := make([]deviation.Deviation, 0, len(res))
	for _, r := range res {
		switch r := r.(type) {
		case Certain:
			t := r.Entity
			d := deviation.Existence(deviation.Makro, subjectOf(t), r.Type,
				[]string{t.TypeName()}, t.TypeName(), t.TypePackage().String(), paths)
			if r.Type == deviation.Absent {
				d = d.At(t.DeclLine())
			}
			out = append(out, d)
		case PossiblyRelocated:
			out = append(out, deviation.Relocated(deviation.Makro, subjectOf(r.Design),
				[]string{r.Design.TypeName()}, r.Design.TypeName(),
				r.From().String(), r.To().String(), paths).At(r.Design.DeclLine()))
		}
	}
	return out
}

// classSignatures compares the signature of classes present on both sides.
// Only the abstract modifier is part of a class signature.
func classSignatures(design, impl []*puml.Class, paths deviation.Paths) []deviation.Deviation {
	var out []deviation.Deviation
	for _, pair := range matchedPairs(classTypes(design), classTypes(impl)) {
		d, i := pair[0].(*puml.Class), pair[1].(*puml.Class)
		var cause string
		switch {
		case d.IsAbstract && !i.IsAbstract:
			cause = fmt.Sprintf("Class %q should be abstract according to the design but is not marked as abstract in the implementation.", d.Name)
		case !d.IsAbstract && i.IsAbstract:
			cause = fmt.Sprintf("Class %q is marked as abstract in the implementation but should not be abstract according to the design.", d.Name)
		default:
			continue
		}
		out = append(out, deviation.Misimplementation(deviation.Makro, deviation.SubjectClass,
			[]string{d.Name}, d.Name, d.Package.String(), []string{cause}, paths).At(d.Line))
	}
	return out
}

func classTypes(cs []*puml.Class) []puml.Type {
	out := make([]puml.Type, 0, len(cs))
	for _, c := range cs {
		out = append(out, c)
	}
	return out
}
