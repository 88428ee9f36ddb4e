package gen

import "github.com/variantkit/variantgen/internal/schema"

// writeMatcher emits the primary dispatch construct in two flavors: by value
// and by reference. Both require a handler per variant unless an explicit
// Default is supplied, and both expose the unwrapped payload together with the
// resolved token so one generic handler body can specialize per call site.
func (g *Generator) writeMatcher() {
	g.writeCases(false)
	g.writeMatchFunc(false)
	g.writeCases(true)
	g.writeMatchFunc(true)
}

func (g *Generator) writeCases(byRef bool) {
	name := g.n.cases
	matcher := g.n.matcher
	union := g.n.union
	if byRef {
		name = g.n.casesRef
		matcher = g.n.matcherRef
		union = "*" + union
	}

	g.w.Printf("// %s supplies one handler per variant of %s for %s.\n", name, g.n.union, matcher)
	g.w.Printf("// Default, when non-nil, stands in for any missing handler.\n")
	g.w.Printf("type %s[R any] struct {\n", name)
	for _, v := range g.m.Variants {
		g.w.Printf("\t%s func(p %s, tok %s) R\n", handlerName(v), g.payloadParam(v, byRef), g.tokenType(v))
	}
	g.w.Printf("\tDefault func(u %s) R\n", union)
	g.w.Printf("}\n\n")
}

func (g *Generator) writeMatchFunc(byRef bool) {
	matcher := g.n.matcher
	cases := g.n.cases
	recv := "u " + g.n.union
	if byRef {
		matcher = g.n.matcherRef
		cases = g.n.casesRef
		recv = "u *" + g.n.union
	}

	g.w.Printf("// %s dispatches on the variant held by u and invokes exactly one\n", matcher)
	g.w.Printf("// handler. Missing handlers without a Default are reported by a panic\n")
	g.w.Printf("// naming them all; a mismatch never falls through silently.\n")
	if byRef {
		g.w.Printf("// Handler bodies receive the payload by reference and must not move it out.\n")
	}
	g.w.Printf("func %s[R any](%s, cases %s[R]) R {\n", matcher, recv, cases)

	// Runtime completeness assertion: fail fast before touching the union.
	rt := g.runtime()
	g.w.Printf("\tif cases.Default == nil {\n")
	g.w.Printf("\t\tvar missing []string\n")
	for _, v := range g.m.Variants {
		g.w.Printf("\t\tif cases.%s == nil {\n", handlerName(v))
		g.w.Printf("\t\t\tmissing = append(missing, %q)\n", v.Name)
		g.w.Printf("\t\t}\n")
	}
	g.w.Printf("\t\t%s.MustComplete(%q, missing)\n", rt, matcher)
	g.w.Printf("\t}\n\n")

	g.w.Printf("\tswitch u.tag {\n")
	for _, v := range g.m.Variants {
		g.w.Printf("\tcase %s:\n", g.n.tagConst[v.Name])
		g.w.Printf("\t\tif cases.%s != nil {\n", handlerName(v))
		g.w.Printf("\t\t\treturn cases.%s(%s, %s)\n", handlerName(v), g.payloadArg(v, byRef), g.n.binding[v.Name])
		g.w.Printf("\t\t}\n")
	}
	g.w.Printf("\t}\n")
	g.w.Printf("\tif cases.Default != nil {\n")
	g.w.Printf("\t\treturn cases.Default(u)\n")
	g.w.Printf("\t}\n")
	g.w.Printf("\tpanic(\"%s: no variant held\")\n", matcher)
	g.w.Printf("}\n\n")
}

// payloadParam returns the handler parameter type for a variant.
func (g *Generator) payloadParam(v *schema.ModelVariant, byRef bool) string {
	if byRef {
		return "*" + v.Payload
	}
	return v.Payload
}

// payloadArg returns the expression passed as the handler's payload argument.
func (g *Generator) payloadArg(v *schema.ModelVariant, byRef bool) string {
	if v.Shape == schema.Unit {
		if byRef {
			return "new(struct{})"
		}
		return "struct{}{}"
	}
	if byRef {
		return "&u." + g.n.storage[v.Name]
	}
	return "u." + g.n.storage[v.Name]
}

// handlerName returns the cases-struct field name for a variant.
func handlerName(v *schema.ModelVariant) string {
	return exportedVariant(v.Name)
}
