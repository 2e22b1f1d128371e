package deviation

import (
	"fmt"
	"strings"
)

// Existence builds an ABSENT or UNEXPECTED deviation. name is the subject's
// name, location the package (or owning type) it is expected or found in.
// An empty location, as for a top-level package, is left out of the text.
func Existence(level Level, subject Subject, typ Type, affected []string, name, location string, paths Paths) Deviation {
	return Deviation{
		Level:              level,
		Subject:            subject,
		Type:               typ,
		AffectedClasses:    affected,
		Title:              title(typ.Label(), subject),
		Description:        existenceDescription(typ, subject, name, location),
		DesignPath:         paths.Design,
		ImplementationPath: paths.Implementation,
	}
}

func existenceDescription(typ Type, subject Subject, name, location string) string {
	if location == "" {
		switch typ {
		case Unexpected:
			return fmt.Sprintf("%s %q is present in the implementation, but not expected according to the design.",
				subject.Label(), name)
		case Absent:
			return fmt.Sprintf("%s %q is expected according to the design, but not found in the implementation.",
				subject.Label(), name)
		}
		return ""
	}
	switch typ {
	case Unexpected:
		return fmt.Sprintf("%s %q found in %q is present in the implementation, but not expected according to the design.",
			subject.Label(), name, location)
	case Absent:
		return fmt.Sprintf("%s %q is expected in %q according to the design, but not found in the implementation.",
			subject.Label(), name, location)
	}
	return ""
}

// Misimplementation builds a MISIMPLEMENTED deviation listing every
// attribute of the subject that differs from the design.
func Misimplementation(level Level, subject Subject, affected []string, name, location string, causes []string, paths Paths) Deviation {
	return Deviation{
		Level:           level,
		Subject:         subject,
		Type:            Misimplemented,
		AffectedClasses: affected,
		Title:           title(Misimplemented.Label(), subject),
		Description: fmt.Sprintf("Implementation of %s %q located in %q deviates from the design: %s",
			lower(subject.Label()), name, location, strings.Join(causes, " ")),
		Causes:             causes,
		DesignPath:         paths.Design,
		ImplementationPath: paths.Implementation,
	}
}

// Relocated builds the deviation for a type the design expects in package
// from while the implementation has a same-named type in package to.
func Relocated(level Level, subject Subject, affected []string, name, from, to string, paths Paths) Deviation {
	return Deviation{
		Level:           level,
		Subject:         subject,
		Type:            Misimplemented,
		AffectedClasses: affected,
		Title:           title("Misplaced", subject),
		Description: fmt.Sprintf("According to the design, the %s %q is expected in the package %q, "+
			"but the implementation has a %s with the same name in the package %q. It may be in the wrong package.",
			lower(subject.Label()), name, from, lower(subject.Label()), to),
		Relocation:         &Relocation{From: from, To: to},
		DesignPath:         paths.Design,
		ImplementationPath: paths.Implementation,
	}
}

// RelationExistence builds an ABSENT or UNEXPECTED relation deviation.
// Both ends are listed as affected classes.
func RelationExistence(typ Type, kind, source, destination string, paths Paths) Deviation {
	d := Deviation{
		Level:              Makro,
		Subject:            SubjectRelation,
		Type:               typ,
		AffectedClasses:    []string{source, destination},
		Title:              title(typ.Label(), SubjectRelation),
		DesignPath:         paths.Design,
		ImplementationPath: paths.Implementation,
	}
	between := fmt.Sprintf("Relation of type %s between source class %q and destination class %q", kind, source, destination)
	switch typ {
	case Absent:
		d.Description = between + " is expected according to the design but missing in the implementation."
	case Unexpected:
		d.Description = between + " is not expected according to the design but present in the implementation."
	}
	return d
}

func title(adjective string, subject Subject) string {
	return adjective + " " + lower(subject.Label())
}
