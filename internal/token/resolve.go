package token

import (
	"errors"

	"github.com/variantkit/variantgen/internal/codefmt"
	"github.com/variantkit/variantgen/internal/schema"
)

// TagName builds the marker type name for a variant. In local mode the owning
// sum type is mangled in so two unrelated sum types never collide even if
// their variant names coincide; shared markers carry the bare variant name.
func TagName(sumType, variant string) string {
	if sumType == "" {
		return codefmt.ExportName(variant) + "Tag"
	}
	return codefmt.ExportName(sumType) + codefmt.ExportName(variant) + "Tag"
}

// Bindings maps each variant of one sum type to its resolved marker. Iteration
// follows the declared variant order of the model.
type Bindings struct {
	model   *schema.Model
	markers map[string]*Marker
}

// Marker returns the marker bound to a variant name.
func (b Bindings) Marker(variant string) *Marker {
	return b.markers[variant]
}

// Local reports whether the bindings declare their own marker types rather
// than referencing a shared registry package.
func (b Bindings) Local() bool {
	for _, m := range b.markers {
		return !m.Shared
	}
	return true
}

// Resolve binds every variant of the model to a marker. With a nil registry it
// creates one local marker per variant. With a registry, every variant name
// must already be registered; names absent from the registry are fatal and all
// of them are reported.
func Resolve(model *schema.Model, reg *Registry) (Bindings, error) {
	b := Bindings{model: model, markers: make(map[string]*Marker, len(model.Variants))}

	if reg == nil {
		for _, v := range model.Variants {
			b.markers[v.Name] = &Marker{
				Name:    TagName(model.Name, v.Name),
				Variant: v.Name,
			}
		}
		return b, nil
	}

	var errs error
	for _, v := range model.Variants {
		m, ok := reg.Lookup(v.Name)
		if !ok {
			errs = errors.Join(errs, codefmt.Errorf(poser(v.Pos), "%w: variant %s of %s is not registered in %s",
				schema.ErrUnresolvedSharedToken, v.Name, model.Name, reg.ImportPath()))
			continue
		}
		b.markers[v.Name] = m
	}
	if errs != nil {
		return Bindings{}, errs
	}
	return b, nil
}

type poser schema.Pos

func (p poser) Pos() schema.Pos { return schema.Pos(p) }
