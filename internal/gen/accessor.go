package gen

import "github.com/variantkit/variantgen/internal/schema"

// writeConstraintAsserts emits one interface-satisfaction assertion per
// distinct inner payload type. The generator does not verify the capability
// itself; the assertions hand that to the Go type checker.
func (g *Generator) writeConstraintAsserts() {
	if g.m.Constraint == "" {
		return
	}

	var inners []string
	seen := map[string]bool{}
	for _, v := range g.m.Variants {
		for _, t := range v.Inner {
			if !seen[t] {
				seen[t] = true
				inners = append(inners, t)
			}
		}
	}
	if len(inners) == 0 {
		return
	}

	g.w.Printf("// Every payload type of %s must satisfy %s.\n", g.n.union, g.m.Constraint)
	g.w.Printf("var (\n")
	for _, t := range inners {
		g.w.Printf("\t_ %s = *new(%s)\n", g.m.Constraint, t)
	}
	g.w.Printf(")\n\n")
}

// writeTagType emits the runtime discriminant. The zero constant is reserved
// for the zero union value, which holds no variant.
func (g *Generator) writeTagType() {
	g.w.Printf("// %s discriminates the variants of %s.\n", g.n.tagType, g.n.union)
	g.w.Printf("type %s uint8\n\n", g.n.tagType)

	g.w.Printf("const (\n")
	g.w.Printf("\t%s %s = iota\n", g.n.tagNone, g.n.tagType)
	for _, v := range g.m.Variants {
		g.w.Printf("\t%s\n", g.n.tagConst[v.Name])
	}
	g.w.Printf(")\n\n")
}

// writeRecords emits the synthesized record types backing struct-shaped and
// multi-element tuple payloads. Field names of struct variants are preserved.
func (g *Generator) writeRecords() {
	for _, v := range g.m.Variants {
		if v.Record == "" {
			continue
		}

		if v.Shape == schema.Struct {
			g.w.Printf("// %s is the payload of the %s variant of %s.\n", v.Record, v.Name, g.n.union)
		} else {
			g.w.Printf("// %s holds the positional payload of the %s variant of %s.\n", v.Record, v.Name, g.n.union)
		}
		g.w.Printf("type %s struct {\n", v.Record)
		for _, f := range v.Fields {
			g.w.Printf("\t%s %s\n", f.Name, f.Type)
		}
		g.w.Printf("}\n\n")
	}
}

// writeUnion emits the union struct: the discriminant plus one unexported
// storage field per non-unit variant.
func (g *Generator) writeUnion() {
	g.w.Printf("// %s is a sum type holding exactly one of its variants at a time.\n", g.n.union)
	g.w.Printf("// The zero value holds no variant; every downcast on it is absent.\n")
	g.w.Printf("type %s struct {\n", g.n.union)
	g.w.Printf("\ttag %s\n", g.n.tagType)
	for _, v := range g.m.Variants {
		if v.Shape == schema.Unit {
			continue
		}
		g.w.Printf("\t%s %s\n", g.n.storage[v.Name], v.Payload)
	}
	g.w.Printf("}\n\n")

	g.w.Printf("// Tag returns the discriminant of the held variant.\n")
	g.w.Printf("func (u %s) Tag() %s { return u.tag }\n\n", g.n.union, g.n.tagType)
}

// writeMarkers declares the local marker types. Shared markers are declared
// once by the registry artifact and only referenced here.
func (g *Generator) writeMarkers() {
	if !g.bnd.Local() {
		return
	}

	g.w.Printf("// Compile-time markers identifying the variants of %s.\n", g.n.union)
	g.w.Printf("// They carry no data and exist only as type arguments.\n")
	g.w.Printf("type (\n")
	for _, v := range g.m.Variants {
		g.w.Printf("\t%s struct{}\n", g.n.marker[v.Name])
	}
	g.w.Printf(")\n\n")
}

// writeBindings emits one token binding per variant, tying marker, union, and
// payload together for the runtime downcast operations.
func (g *Generator) writeBindings() {
	rt := g.runtime()

	for _, v := range g.m.Variants {
		bind := g.n.binding[v.Name]
		g.w.Printf("// %s is the token of the %s variant. Use it with %s.Ref,\n", bind, v.Name, rt)
		g.w.Printf("// %s.Mut, %s.Owned, and %s.Make.\n", rt, rt, rt)
		g.w.Printf("var %s = %s.NewToken[%s](\n", bind, rt, g.markerRef(v.Name))

		if v.Shape == schema.Unit {
			g.w.Printf("\tfunc(u *%s) *struct{} {\n", g.n.union)
			g.w.Printf("\t\tif u.tag == %s {\n", g.n.tagConst[v.Name])
			g.w.Printf("\t\t\treturn &struct{}{}\n")
			g.w.Printf("\t\t}\n")
			g.w.Printf("\t\treturn nil\n")
			g.w.Printf("\t},\n")
			g.w.Printf("\tfunc(struct{}) %s { return %s{tag: %s} },\n", g.n.union, g.n.union, g.n.tagConst[v.Name])
		} else {
			field := g.n.storage[v.Name]
			g.w.Printf("\tfunc(u *%s) *%s {\n", g.n.union, v.Payload)
			g.w.Printf("\t\tif u.tag == %s {\n", g.n.tagConst[v.Name])
			g.w.Printf("\t\t\treturn &u.%s\n", field)
			g.w.Printf("\t\t}\n")
			g.w.Printf("\t\treturn nil\n")
			g.w.Printf("\t},\n")
			g.w.Printf("\tfunc(p %s) %s { return %s{tag: %s, %s: p} },\n",
				v.Payload, g.n.union, g.n.union, g.n.tagConst[v.Name], field)
		}
		g.w.Printf(")\n\n")
	}
}

// writeConstructors emits the per-variant constructors and, where the payload
// type is unambiguous, the payload-keyed conversions.
func (g *Generator) writeConstructors() {
	for _, v := range g.m.Variants {
		ctor := g.n.ctor[v.Name]

		if v.Shape == schema.Unit {
			g.w.Printf("// %s creates a %s holding the %s variant.\n", ctor, g.n.union, v.Name)
			g.w.Printf("func %s() %s { return %s{tag: %s} }\n\n",
				ctor, g.n.union, g.n.union, g.n.tagConst[v.Name])
			continue
		}

		g.w.Printf("// %s creates a %s holding the %s variant.\n", ctor, g.n.union, v.Name)
		g.w.Printf("func %s(p %s) %s { return %s{tag: %s, %s: p} }\n\n",
			ctor, v.Payload, g.n.union, g.n.union, g.n.tagConst[v.Name], g.n.storage[v.Name])

		if v.Convert {
			from := g.n.from[v.Name]
			g.w.Printf("// %s converts a payload into a %s tagged %s.\n", from, g.n.union, v.Name)
			g.w.Printf("func %s(p %s) %s { return %s(p) }\n\n", from, v.Payload, g.n.union, ctor)
		}
	}
}
