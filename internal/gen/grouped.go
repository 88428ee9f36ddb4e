package gen

import (
	"strings"

	"github.com/variantkit/variantgen/internal/codefmt"
	"github.com/variantkit/variantgen/internal/schema"
)

// writeGrouped emits one category-keyed dispatch construct for a validated
// GroupSpec. Handlers receive the union narrowed to the category together
// with the discriminant of the matched variant; payload retrieval goes
// through the token bindings, which stay total per variant. A partial spec
// routes uncovered variants to a mandatory Default handler; an exhaustive
// spec has none and its coverage was checked at validation time.
func (g *Generator) writeGrouped(grp *schema.ModelGroup) {
	matcher := g.w.Name(grp.MatcherName)
	cases := g.w.Name(codefmt.ExportName(grp.MatcherName) + "Cases")

	catField := make(map[string]string, len(grp.Categories))
	for _, cat := range grp.Categories {
		catField[cat.Name] = exportedVariant(cat.Name)
	}

	g.w.Printf("// %s routes every variant of %s in a category to that\n", cases, g.n.union)
	g.w.Printf("// category's handler.\n")
	g.w.Printf("type %s[R any] struct {\n", cases)
	for _, cat := range grp.Categories {
		g.w.Printf("\t%s func(u %s, tag %s) R\n", catField[cat.Name], g.n.union, g.n.tagType)
	}
	if grp.DefaultRequired {
		g.w.Printf("\t// Default handles the variants not covered by any category.\n")
		g.w.Printf("\tDefault func(u %s) R\n", g.n.union)
	}
	g.w.Printf("}\n\n")

	g.w.Printf("// %s dispatches on the category containing the variant held by u\n", matcher)
	g.w.Printf("// and invokes exactly one handler. Every handler is required; missing\n")
	g.w.Printf("// ones are reported by a panic naming them all.\n")
	g.w.Printf("func %s[R any](u %s, cases %s[R]) R {\n", matcher, g.n.union, cases)

	g.w.Printf("\tvar missing []string\n")
	for _, cat := range grp.Categories {
		g.w.Printf("\tif cases.%s == nil {\n", catField[cat.Name])
		g.w.Printf("\t\tmissing = append(missing, %q)\n", cat.Name)
		g.w.Printf("\t}\n")
	}
	if grp.DefaultRequired {
		g.w.Printf("\tif cases.Default == nil {\n")
		g.w.Printf("\t\tmissing = append(missing, \"Default\")\n")
		g.w.Printf("\t}\n")
	}
	g.w.Printf("\t%s.MustComplete(%q, missing)\n\n", g.runtime(), matcher)

	g.w.Printf("\tswitch u.tag {\n")
	for _, cat := range grp.Categories {
		consts := make([]string, len(cat.Variants))
		for i, name := range cat.Variants {
			consts[i] = g.n.tagConst[name]
		}
		g.w.Printf("\tcase %s:\n", strings.Join(consts, ", "))
		g.w.Printf("\t\treturn cases.%s(u, u.tag)\n", catField[cat.Name])
	}
	g.w.Printf("\t}\n")
	if grp.DefaultRequired {
		g.w.Printf("\treturn cases.Default(u)\n")
	} else {
		g.w.Printf("\tpanic(\"%s: no variant held\")\n", matcher)
	}
	g.w.Printf("}\n\n")
}
