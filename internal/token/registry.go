// Package token assigns the compile-time marker identifying each variant,
// either privately per sum type or through a shared cross-sum-type namespace.
//
// A marker is a zero-size Go type distinguished purely by static identity;
// generated bindings key the downcast and dispatch operations on it. Marker
// identity is a pure function of the variant name (and the owning sum type in
// local mode), so repeated runs on unchanged input resolve identical markers
// regardless of declaration order.
package token

import (
	"errors"
	gotoken "go/token"
	"path"

	"github.com/emirpasic/gods/maps/linkedhashmap"

	"github.com/variantkit/variantgen/internal/codefmt"
	"github.com/variantkit/variantgen/internal/schema"
)

// Marker is the compile-time identity bound one-to-one to a variant. It is
// never instantiated with data; generated code declares it as an empty struct
// and uses it only as a type argument.
type Marker struct {
	// Name is the Go type name of the marker, e.g. "FloatTag" for a shared
	// token or "NumberFloatTag" for a local one.
	Name string

	// Variant is the owning variant name.
	Variant string

	// Shared reports whether the marker lives in a shared registry package.
	Shared bool

	// Import is the import path of the package declaring the marker type.
	// Empty for local markers, which are declared inside the artifact itself.
	Import string
}

// Registry is a shared, append-only namespace of markers. It must be populated
// by [Registry.Register] before any declaration resolves against it; the
// engine never infers shared tokens on first use, so generation results do not
// depend on declaration order.
type Registry struct {
	importPath string
	pkg        string
	m          *linkedhashmap.Map // variant name -> *Marker
	tags       map[string]string  // marker type name -> variant name
}

// NewRegistry creates an empty registry whose markers will be emitted into the
// package at the given import path. The package name is the normalized base of
// the path, so paths like "example.com/go-tokens" yield "goTokens".
func NewRegistry(importPath string) *Registry {
	return &Registry{
		importPath: importPath,
		pkg:        codefmt.NormalizeName(path.Base(importPath)),
		m:          linkedhashmap.New(),
		tags:       make(map[string]string),
	}
}

// ImportPath returns the import path of the emitted marker package.
func (r *Registry) ImportPath() string { return r.importPath }

// Package returns the package name of the emitted marker package.
func (r *Registry) Package() string { return r.pkg }

// Register extends the registry with markers for the given variant names.
// Registering a name twice is a no-op, so the resulting markers are
// independent of registration order and repetition. Names that are not
// identifiers, or whose marker type name collides with an already registered
// name's, are rejected; all rejections are collected and joined.
func (r *Registry) Register(names ...string) error {
	var errs error
	for _, name := range names {
		if _, ok := r.m.Get(name); ok {
			continue
		}
		if !gotoken.IsIdentifier(name) {
			errs = errors.Join(errs, codefmt.Errorf(nil, "%w: token name %q is not an identifier", schema.ErrInvalidConfig, name))
			continue
		}
		tag := TagName("", name)
		if prev, ok := r.tags[tag]; ok {
			errs = errors.Join(errs, codefmt.Errorf(nil, "%w: token names %s and %s collide after name mangling", schema.ErrInvalidConfig, prev, name))
			continue
		}
		r.tags[tag] = name
		r.m.Put(name, &Marker{
			Name:    tag,
			Variant: name,
			Shared:  true,
			Import:  r.importPath,
		})
	}
	return errs
}

// Lookup resolves the marker for a variant name.
func (r *Registry) Lookup(name string) (*Marker, bool) {
	v, ok := r.m.Get(name)
	if !ok {
		return nil, false
	}
	return v.(*Marker), true
}

// Markers returns all registered markers in registration order.
func (r *Registry) Markers() []*Marker {
	markers := make([]*Marker, 0, r.m.Size())
	it := r.m.Iterator()
	for it.Next() {
		markers = append(markers, it.Value().(*Marker))
	}
	return markers
}

// Len returns the number of registered markers.
func (r *Registry) Len() int { return r.m.Size() }

// Set is a context object holding registries retrievable by name. It is
// threaded explicitly through the generation pipeline; there is no ambient
// global registry.
type Set struct {
	m *linkedhashmap.Map // registry name -> *Registry
}

// NewSet creates an empty registry set.
func NewSet() *Set {
	return &Set{m: linkedhashmap.New()}
}

// Registry returns the registry with the given name, creating it with the
// import path on first use. The import path of an existing registry is not
// changed.
func (s *Set) Registry(name, importPath string) *Registry {
	if v, ok := s.m.Get(name); ok {
		return v.(*Registry)
	}
	r := NewRegistry(importPath)
	s.m.Put(name, r)
	return r
}

// Lookup returns the registry with the given name.
func (s *Set) Lookup(name string) (*Registry, bool) {
	v, ok := s.m.Get(name)
	if !ok {
		return nil, false
	}
	return v.(*Registry), true
}
