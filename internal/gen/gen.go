// Package gen emits the code artifacts for a finalized sum-type model: the
// union type with its discriminant, marker types and token bindings, the
// accessor set, and the dispatch constructs. Emission is a pure read of the
// model; all potential errors were reported by schema parsing and token
// resolution, so a Generator never fails on valid input other than by an
// internal formatting bug.
package gen

import (
	"path"
	"unicode"
	"unicode/utf8"

	"github.com/variantkit/variantgen/internal/codefmt"
	"github.com/variantkit/variantgen/internal/schema"
	"github.com/variantkit/variantgen/internal/token"
)

// RuntimeImport is the import path of the runtime support package consumed by
// generated code.
const RuntimeImport = "github.com/variantkit/variantgen/pkg/variant"

// Generator emits the artifact for one sum-type declaration.
type Generator struct {
	m   *schema.Model
	bnd token.Bindings
	w   *codefmt.Writer
	n   names
}

// names holds the identifiers allocated for the artifact. They are reserved
// in one deterministic pass so emission never produces colliding declarations.
type names struct {
	union   string
	tagType string
	tagNone string

	tagConst map[string]string // variant -> discriminant constant
	marker   map[string]string // variant -> local marker type name
	binding  map[string]string // variant -> token binding variable
	storage  map[string]string // variant -> union storage field
	ctor     map[string]string // variant -> variant constructor
	from     map[string]string // variant -> payload-keyed conversion

	matcher    string
	matcherRef string
	cases      string
	casesRef   string
}

// New creates a Generator for the model with its resolved token bindings.
func New(m *schema.Model, bnd token.Bindings) *Generator {
	g := &Generator{
		m:   m,
		bnd: bnd,
		w:   codefmt.NewWriter(codefmt.NewNS()),
	}
	g.allocNames()
	return g
}

// Generate emits the full artifact and returns the formatted source.
func (g *Generator) Generate() ([]byte, error) {
	g.writeConstraintAsserts()
	g.writeTagType()
	g.writeRecords()
	g.writeUnion()
	g.writeMarkers()
	g.writeBindings()
	g.writeConstructors()
	g.writeMatcher()
	for _, grp := range g.m.Groups {
		g.writeGrouped(grp)
	}
	return g.w.Frame(g.m.Package)
}

func (g *Generator) allocNames() {
	m := g.m
	union := codefmt.ExportName(m.Name)

	g.n.union = g.w.Name(union)
	g.n.tagType = g.w.Name(union + "Tag")
	g.n.tagNone = g.w.Name(union + "TagNone")

	g.n.tagConst = make(map[string]string, len(m.Variants))
	g.n.marker = make(map[string]string, len(m.Variants))
	g.n.binding = make(map[string]string, len(m.Variants))
	g.n.storage = make(map[string]string, len(m.Variants))
	g.n.ctor = make(map[string]string, len(m.Variants))
	g.n.from = make(map[string]string, len(m.Variants))

	for _, v := range m.Variants {
		vn := codefmt.ExportName(v.Name)
		g.n.tagConst[v.Name] = g.w.Name(union + "Tag" + vn)
		if g.bnd.Local() {
			g.n.marker[v.Name] = g.w.Name(g.bnd.Marker(v.Name).Name)
		}
		g.n.binding[v.Name] = g.w.Name(union + vn)
		g.n.storage[v.Name] = g.w.Name(unexport(v.Name))
		g.n.ctor[v.Name] = g.w.Name("New" + union + vn)
		if v.Convert {
			g.n.from[v.Name] = g.w.Name(union + "From" + v.PayloadKey)
		}
		if v.Record != "" {
			// Record names were fixed by normalization; reserve them so no
			// other identifier lands on them.
			g.w.Reserve(v.Record)
		}
	}

	g.n.matcher = g.w.Name(m.MatcherName)
	g.n.matcherRef = g.w.Name(m.MatcherName + "Ref")
	g.n.cases = g.w.Name(union + "Cases")
	g.n.casesRef = g.w.Name(union + "RefCases")
}

// markerRef returns the type expression referring to a variant's marker,
// importing the shared token package when needed.
func (g *Generator) markerRef(variant string) string {
	m := g.bnd.Marker(variant)
	if !m.Shared {
		return g.n.marker[variant]
	}
	alias := g.w.Import(m.Import, path.Base(m.Import))
	return alias + "." + m.Name
}

// tokenType returns the full variant.Token type expression for a variant.
func (g *Generator) tokenType(v *schema.ModelVariant) string {
	rt := g.w.Import(RuntimeImport, "variant")
	return rt + ".Token[" + g.markerRef(v.Name) + ", " + g.n.union + ", " + v.Payload + "]"
}

// runtime returns the qualifier of the runtime support package.
func (g *Generator) runtime() string {
	return g.w.Import(RuntimeImport, "variant")
}

// exportedVariant returns the exported identifier chunk of a variant name.
// "Default" is reserved for the wildcard handler in cases structs.
func exportedVariant(name string) string {
	n := codefmt.ExportName(name)
	if n == "Default" {
		return "Default_"
	}
	return n
}

// unexport lowers the first rune of an identifier, keeping it legal as a
// struct field name.
func unexport(name string) string {
	name = codefmt.NormalizeName(name)
	r, size := utf8.DecodeRuneInString(name)
	if !unicode.IsLetter(r) && r != '_' {
		return "v" + name
	}
	lowered := string(unicode.ToLower(r)) + name[size:]
	switch lowered {
	case "break", "case", "chan", "const", "continue", "default", "defer",
		"else", "fallthrough", "for", "func", "go", "goto", "if", "import",
		"interface", "map", "package", "range", "return", "select", "struct",
		"switch", "type", "var":
		return lowered + "_"
	}
	return lowered
}
