package compare

import (
	"arcucheck/internal/deviation"
	"arcucheck/internal/puml"
)

// CompareDiagrams diffs impl against design. The result is deduplicated and
// empty when the diagrams agree. A nil diagram compares as an empty one.
func CompareDiagrams(impl, design *puml.Diagram) []deviation.Deviation {
	if impl == nil {
		impl = &puml.Diagram{}
	}
	if design == nil {
		design = &puml.Diagram{}
	}
	paths := deviation.Paths{Design: design.SourcePath, Implementation: impl.SourcePath}

	bag := deviation.NewBag()
	bag.AddAll(typeDeviations(ResolveExistence(design.ClassTypes(), impl.ClassTypes()), paths))
	bag.AddAll(classSignatures(design.Classes, impl.Classes, paths))
	bag.AddAll(relationDeviations(design.Relations, impl.Relations, paths))
	bag.AddAll(packageDeviations(design, impl, paths))
	bag.AddAll(typeDeviations(ResolveExistence(design.InterfaceTypes(), impl.InterfaceTypes()), paths))
	bag.AddAll(memberDeviations(design, impl, paths))
	bag.Dedup()
	return bag.Items()
}
