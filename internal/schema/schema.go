// Package schema normalizes raw sum-type declarations into an in-memory model
// and rejects structurally invalid input.
//
// The raw declaration types ([SumType], [Variant], [Config], [GroupSpec]) are
// the input surface of the engine. They are produced by a schema-parsing
// collaborator; this package never touches surface syntax. [Parse] validates a
// declaration and produces a [Model] that the emitters consume as a pure read.
package schema

import "github.com/variantkit/variantgen/internal/codefmt"

// Pos locates a declaration element in the schema source.
type Pos = codefmt.Pos

// Shape tells how a variant carries its payload.
type Shape int

const (
	// Unit variants carry no payload.
	Unit Shape = iota
	// Tuple variants carry one or more positional payload types.
	Tuple
	// Struct variants carry named fields.
	Struct
)

// Field is a named field of a struct-shaped variant. Type is a Go type
// expression.
type Field struct {
	Name string
	Type string
	Pos  Pos
}

// Variant declares one alternative of a sum type. At most one of Tuple and
// Fields may be set; a variant with neither is unit-shaped. Tuple entries and
// field types are Go type expressions for the inner payload; the configured
// container, if any, is applied on top of them.
type Variant struct {
	Name   string
	Tuple  []string
	Fields []Field
	Pos    Pos
}

// Config carries the per-declaration generation settings.
type Config struct {
	// Container is a type constructor applied uniformly to every variant's
	// payload: "[]" for a slice, "*" for a pointer, or the name of a generic
	// type such as "List". Empty means payloads are used as declared.
	Container string

	// Constraint is a capability every payload type must satisfy. It is
	// emitted as an interface-satisfaction assertion per payload; whether the
	// payloads actually satisfy it is left to the Go type checker.
	Constraint string

	// MatcherName names the primary dispatch construct. Empty derives
	// "Match<SumType>".
	MatcherName string

	// SkipConversions suppresses payload-keyed conversion constructors.
	SkipConversions bool

	// TokenImport is the import path of the package holding the shared marker
	// types. It must be set when the declaration resolves tokens against a
	// shared registry, so generated code can qualify the marker types.
	TokenImport string
}

// Category is one partition cell of a [GroupSpec].
type Category struct {
	Name     string
	Variants []string
	Pos      Pos
}

// GroupSpec declares a category-keyed dispatch construct over a named
// partition of the variant set. Categories must be mutually disjoint and refer
// only to declared variants. An exhaustive spec must cover every variant; a
// partial spec routes uncovered variants to a mandatory default handler.
type GroupSpec struct {
	MatcherName string
	Exhaustive  bool
	Categories  []Category
	Pos         Pos
}

// SumType is a raw sum-type declaration. Package names the Go package of the
// emitted artifact; empty defaults to "main".
type SumType struct {
	Name     string
	Package  string
	Variants []Variant
	Config   Config
	Groups   []GroupSpec
	Pos      Pos
}

// at adapts a position to the [codefmt.Poser] interface.
type at Pos

func (a at) Pos() Pos { return Pos(a) }
