package gen

import (
	"github.com/variantkit/variantgen/internal/codefmt"
	"github.com/variantkit/variantgen/internal/token"
)

// Tokens renders the marker package for a shared registry. Each registered
// name becomes one zero-size discriminant type; every sum type that opts
// into the registry binds to these types instead of declaring its own, so
// a marker keeps a single identity across all of them.
func Tokens(reg *token.Registry) ([]byte, error) {
	ns := codefmt.NewNS()
	w := codefmt.NewWriter(ns)

	markers := reg.Markers()
	w.Printf("// Shared discriminant markers. Sum types bind these to their own\n")
	w.Printf("// storage; the types carry no data and exist only for identity.\n")
	w.Printf("type (\n")
	for _, mk := range markers {
		w.Printf("\t%s struct{}\n", w.Name(mk.Name))
	}
	w.Printf(")\n")

	return w.Frame(reg.Package())
}
