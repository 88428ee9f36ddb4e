// Package variantgen generates type-safe accessors, conversions, and dispatch
// constructs for declared sum types.
//
// Variantgen eliminates the boilerplate around hand-rolled tagged unions.
// Declare a sum type once — its variants, their payload shapes, and optional
// dispatch groupings — and the engine produces a Go artifact with a union
// struct, per-variant marker types, checked narrowing through token bindings,
// payload-keyed constructors, and exhaustive matchers:
//
//	// declared:
//	decl := variantgen.SumType{
//		Name: "Number",
//		Variants: []variantgen.Variant{
//			{Name: "Float", Tuple: []string{"float64"}},
//			{Name: "Integer", Tuple: []string{"int64"}},
//		},
//		Config: variantgen.Config{Container: "[]"},
//	}
//	res, err := variantgen.Generate(decl, nil)
//
//	// generated: (simplified)
//	type Number struct { ... }
//	var NumberFloat = variant.NewToken[NumberFloatTag](...)
//	func NewNumberFloat(p []float64) Number { ... }
//	func MatchNumber[R any](u Number, cases NumberCases[R]) R { ... }
//
// Narrowing a union to a payload goes through [pkg/variant.Ref],
// [pkg/variant.Mut], or [pkg/variant.Owned] together with a generated token
// binding. The token carries the union type as a type parameter, so handing it
// a value of a different sum type does not compile.
//
// # Shared tokens
//
// By default every sum type declares private marker types, mangled with the
// owning type's name so unrelated declarations never collide. To let several
// sum types share one marker identity per variant name, register the names in
// a [Registry] and pass it to [Generate]:
//
//	reg := variantgen.NewRegistry("example.com/app/tokens")
//	reg.Register("X", "Y", "Z")
//
//	resA, err := variantgen.Generate(declA, reg) // A{X, Y}
//	resB, err := variantgen.Generate(declB, reg) // B{X, Y}
//
//	code, err := variantgen.GenerateTokens(reg) // the tokens package itself
//
// Resolution against a registry is strict: a variant name that was never
// registered is a fatal error, and shared markers are never minted on first
// use. Registries can be organized by name in a [RegistrySet] when a build
// drives several independent namespaces.
//
// # Groupings
//
// A [GroupSpec] partitions the variant set into named categories and generates
// an additional dispatch construct keyed by category. Exhaustive specs must
// cover every variant; partial specs route uncovered variants to a mandatory
// Default handler. Specs that are inconsistent with the variant set — unknown
// names, double assignment, empty categories — are reported as scoped
// [Diagnostic] values and dropped while the rest of the artifact still
// generates.
//
// # Errors and diagnostics
//
// Structural errors in the declaration itself (duplicate variants, invalid
// configuration, unresolved shared tokens) abort generation and are returned
// as an error; every one of them carries a position and wraps one of the
// sentinel errors such as [ErrDuplicateVariant] for errors.Is dispatch.
// Recoverable findings — dropped groupings, skipped ambiguous conversions —
// come back as [Result].Diagnostics alongside the generated code.
package variantgen

import (
	gotoken "go/token"

	"github.com/variantkit/variantgen/internal/codefmt"
	"github.com/variantkit/variantgen/internal/gen"
	"github.com/variantkit/variantgen/internal/schema"
	"github.com/variantkit/variantgen/internal/token"
)

// Declaration surface. See the package documentation for how the pieces fit
// together; the zero Config is valid and means no container, no constraint,
// derived matcher name, and conversions enabled.
type (
	// SumType is a raw sum-type declaration.
	SumType = schema.SumType
	// Variant declares one alternative of a sum type.
	Variant = schema.Variant
	// Field is a named field of a struct-shaped variant.
	Field = schema.Field
	// Config carries the per-declaration generation settings.
	Config = schema.Config
	// GroupSpec declares a category-keyed dispatch construct.
	GroupSpec = schema.GroupSpec
	// Category is one partition cell of a GroupSpec.
	Category = schema.Category
	// Pos locates a declaration element in the schema source.
	Pos = schema.Pos
	// Shape tells how a variant carries its payload.
	Shape = schema.Shape
	// Diagnostic is a recoverable finding reported alongside generated code.
	Diagnostic = schema.Diagnostic
	// Severity classifies a Diagnostic.
	Severity = schema.Severity
)

// Payload shapes of a [Variant].
const (
	Unit   = schema.Unit
	Tuple  = schema.Tuple
	Struct = schema.Struct
)

// Diagnostic severities.
const (
	SeverityWarning = schema.SeverityWarning
	SeverityError   = schema.SeverityError
)

// Sentinel errors for errors.Is dispatch. The fatal ones come back from
// [Generate] as the returned error; the grouping ones and
// [ErrAmbiguousConversion] arrive wrapped in [Result].Diagnostics.
var (
	ErrDuplicateVariant      = schema.ErrDuplicateVariant
	ErrInvalidConfig         = schema.ErrInvalidConfig
	ErrUnresolvedSharedToken = schema.ErrUnresolvedSharedToken

	ErrUnknownVariantInGroup = schema.ErrUnknownVariantInGroup
	ErrVariantAssignedTwice  = schema.ErrVariantAssignedTwice
	ErrEmptyCategory         = schema.ErrEmptyCategory
	ErrIncompleteGrouping    = schema.ErrIncompleteGrouping

	ErrAmbiguousConversion = schema.ErrAmbiguousConversion
)

// Registry is a shared, append-only namespace of variant markers. Populate it
// with [Registry.Register] before generating any declaration that resolves
// against it.
type Registry = token.Registry

// RegistrySet holds registries retrievable by name. There is no ambient
// global; a set is threaded explicitly wherever several namespaces coexist.
type RegistrySet = token.Set

// NewRegistry creates an empty registry whose marker types will be emitted
// into the package at the given import path.
func NewRegistry(importPath string) *Registry {
	return token.NewRegistry(importPath)
}

// NewRegistrySet creates an empty registry set.
func NewRegistrySet() *RegistrySet {
	return token.NewSet()
}

// Result is the output of one [Generate] call.
type Result struct {
	// Code is the generated artifact, formatted and import-pruned.
	Code []byte

	// Diagnostics carries recoverable findings: groupings dropped for
	// inconsistency and conversions skipped for ambiguity. Generation still
	// succeeded; inspect severities to decide whether to fail a build.
	Diagnostics []Diagnostic
}

// Generate validates decl, resolves its variant markers, and emits the
// artifact source.
//
// With a nil registry each variant gets a private marker declared inside the
// artifact. With a registry every variant name must already be registered and
// the generated code imports the marker package; Config.TokenImport, when
// set, must agree with the registry's import path.
//
// Fatal schema errors abort with a nil Result. All of them are collected and
// joined rather than reported one at a time.
func Generate(decl SumType, reg *Registry) (*Result, error) {
	if decl.Config.TokenImport != "" {
		if reg == nil {
			return nil, codefmt.Errorf(at(decl.Pos),
				"%w: token import %q set without a registry", ErrInvalidConfig, decl.Config.TokenImport)
		}
		if decl.Config.TokenImport != reg.ImportPath() {
			return nil, codefmt.Errorf(at(decl.Pos),
				"%w: token import %q does not match registry %q",
				ErrInvalidConfig, decl.Config.TokenImport, reg.ImportPath())
		}
	}
	if reg != nil && !gotoken.IsIdentifier(reg.Package()) {
		return nil, codefmt.Errorf(at(decl.Pos),
			"%w: registry import path %q does not yield a valid package name",
			ErrInvalidConfig, reg.ImportPath())
	}

	model, diags, err := schema.Parse(decl)
	if err != nil {
		return nil, err
	}

	bnd, err := token.Resolve(model, reg)
	if err != nil {
		return nil, err
	}

	code, err := gen.New(model, bnd).Generate()
	if err != nil {
		return nil, err
	}
	return &Result{Code: code, Diagnostics: diags}, nil
}

// GenerateTokens emits the shared marker package of a registry. Every sum
// type generated against the registry imports this package for its marker
// types, so it must be materialized exactly once per registry.
func GenerateTokens(reg *Registry) ([]byte, error) {
	if !gotoken.IsIdentifier(reg.Package()) {
		return nil, codefmt.Errorf(nil,
			"%w: registry import path %q does not yield a valid package name",
			ErrInvalidConfig, reg.ImportPath())
	}
	return gen.Tokens(reg)
}

// at adapts a position to the [codefmt.Poser] interface.
type at Pos

func (a at) Pos() Pos { return Pos(a) }
