// Package puml defines the structural model shared by the diagram parser and
// the deviation engine.
//
// # Data model
//
// A Diagram holds classes, interfaces and relations exactly as they were read
// from one diagram text:
//
//   - Package – dot-delimited namespace, compared by full name.
//   - Type – closed sum over *Class and *Interface. Use a type switch; there
//     are no other variants.
//   - Method, Field, Constructor – members of a type. Each member has a lookup
//     key (name, or the parameter list for constructors) and a full structural
//     Equal.
//   - Relation – directed edge between two names as written in the relation
//     line. Names are not resolved, so dangling relations stay comparable.
//
// Values are rebuilt for every parse and never shared between runs. Line
// numbers recorded on types and members are informational and never take part
// in equality.
package puml
