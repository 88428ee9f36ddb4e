package schema

// Model is the finalized, validated description of one sum type. It is built
// once per declaration and never mutated afterwards; emitters read it only.
type Model struct {
	Name        string
	Package     string
	MatcherName string
	Constraint  string
	Container   string
	TokenImport string
	Skip        bool // payload-keyed conversions suppressed by config

	Variants []*ModelVariant
	Groups   []*ModelGroup
	Pos      Pos
}

// ModelVariant is a normalized variant with its effective payload resolved:
// the container is applied, struct and multi-tuple payloads are lowered to a
// synthesized record, and unit payloads become struct{}.
type ModelVariant struct {
	Name  string
	Shape Shape

	// Payload is the effective Go type expression of the payload.
	Payload string

	// Inner holds the declared payload types before the container was
	// applied. Constraint assertions are emitted against these.
	Inner []string

	// PayloadKey is the identifier-mangled form of Payload used to name
	// payload-keyed conversion constructors. Empty for unit variants.
	PayloadKey string

	// Record and Fields describe the synthesized record type backing struct
	// and multi-element tuple payloads. Record is empty when the payload is
	// used directly.
	Record string
	Fields []Field

	// Convert reports whether a payload-keyed conversion constructor is
	// generated for this variant. False for unit variants, when conversions
	// are skipped by config, or when the payload type is ambiguous.
	Convert bool

	Pos Pos
}

// ModelGroup is a validated GroupSpec. Groups that failed validation never
// reach the model; they are reported as scoped diagnostics instead.
type ModelGroup struct {
	MatcherName string
	Exhaustive  bool
	Categories  []ModelCategory

	// DefaultRequired is set on partial groups that leave variants uncovered:
	// the emitted construct demands a default handler for them.
	DefaultRequired bool

	Pos Pos
}

// ModelCategory is one cell of a validated partition.
type ModelCategory struct {
	Name     string
	Variants []string
	Pos      Pos
}

// VariantNames returns the declared variant names in order.
func (m *Model) VariantNames() []string {
	names := make([]string, len(m.Variants))
	for i, v := range m.Variants {
		names[i] = v.Name
	}
	return names
}

// Variant returns the variant with the given name, or nil.
func (m *Model) Variant(name string) *ModelVariant {
	for _, v := range m.Variants {
		if v.Name == name {
			return v
		}
	}
	return nil
}
