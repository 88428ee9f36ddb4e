package codefmt

import (
	"bytes"
	"fmt"

	"github.com/emirpasic/gods/maps/linkedhashmap"
	"golang.org/x/tools/imports"
)

// Header is written at the top of every generated artifact.
const Header = "// Code generated by variantgen. DO NOT EDIT."

// Writer buffers generated code for a single artifact. Imports recorded with
// [Writer.Import] are rendered as an import declaration when the artifact is
// framed. Names allocated through the namespace never collide within the
// artifact.
type Writer struct {
	buf     bytes.Buffer
	ns      NS
	imports *linkedhashmap.Map // import path -> package name
}

// NewWriter creates a new [Writer] with the given namespace.
func NewWriter(ns NS) *Writer {
	return &Writer{
		ns:      ns,
		imports: linkedhashmap.New(),
	}
}

// Printf writes a formatted string to the artifact body.
func (w *Writer) Printf(format string, args ...any) {
	fmt.Fprintf(&w.buf, format, args...)
}

// Name returns a unique name in the namespace of the writer.
func (w *Writer) Name(name string) string {
	return w.ns.Name(name)
}

// Reserve marks a name as used in the namespace of the writer.
func (w *Writer) Reserve(name string) bool {
	return w.ns.Reserve(name)
}

// Import records an import for the package with the given path and returns the
// name to qualify its identifiers with. The name might differ from the
// requested one if it had to be normalized to an identifier or disambiguated
// against the artifact namespace.
func (w *Writer) Import(path, name string) string {
	if prev, ok := w.imports.Get(path); ok {
		return prev.(string)
	}

	for name := range DisambiguateName(NormalizeName(name)) {
		if _, taken := w.ns[name]; taken {
			continue
		}
		w.ns.Reserve(name)
		w.imports.Put(path, name)
		return name
	}
	panic("unreachable")
}

// Frame renders the complete artifact: header comment, package clause, import
// declaration, and the buffered body. The result is passed through the
// goimports formatter, which also drops imports that ended up unused.
func (w *Writer) Frame(pkg string) ([]byte, error) {
	var out bytes.Buffer
	fmt.Fprintf(&out, "%s\n\npackage %s\n\n", Header, pkg)

	if w.imports.Size() != 0 {
		fmt.Fprintf(&out, "import (\n")
		it := w.imports.Iterator()
		for it.Next() {
			path := it.Key().(string)
			name := it.Value().(string)
			fmt.Fprintf(&out, "\t%s %q\n", name, path)
		}
		fmt.Fprintf(&out, ")\n\n")
	}

	out.Write(w.buf.Bytes())

	code, err := imports.Process(pkg+".go", out.Bytes(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to format generated code: %w\n%s", err, out.Bytes())
	}
	return code, nil
}
