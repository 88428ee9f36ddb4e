package schema

import (
	"errors"
	"fmt"
	"go/token"
	"strings"

	"github.com/emirpasic/gods/maps/linkedhashmap"
	"github.com/emirpasic/gods/sets/linkedhashset"

	"github.com/variantkit/variantgen/internal/codefmt"
	"github.com/variantkit/variantgen/internal/suggest"
)

// markAmbiguous disables payload-keyed conversion for variants whose payload
// type is duplicated within the sum type. Two payloads collide when their
// mangled constructor keys coincide, which covers identical type expressions
// as well as spellings that would mangle to the same name. The skip is
// reported as a consistency warning, never as an error.
func markAmbiguous(model *Model) []Diagnostic {
	if model.Skip {
		return nil
	}

	byKey := linkedhashmap.New() // payload key -> []*ModelVariant
	for _, v := range model.Variants {
		if v.Shape == Unit {
			continue
		}
		var vs []*ModelVariant
		if prev, ok := byKey.Get(v.PayloadKey); ok {
			vs = prev.([]*ModelVariant)
		}
		byKey.Put(v.PayloadKey, append(vs, v))
	}

	var diags []Diagnostic
	it := byKey.Iterator()
	for it.Next() {
		vs := it.Value().([]*ModelVariant)
		if len(vs) < 2 {
			continue
		}

		names := make([]string, len(vs))
		for i, v := range vs {
			v.Convert = false
			names[i] = v.Name
		}
		diags = append(diags, Diagnostic{
			Severity: SeverityWarning,
			Err: codefmt.Errorf(at(vs[0].Pos), "%w: payload type %s is shared by variants %s of %s; conversion constructors skipped",
				ErrAmbiguousConversion, vs[0].Payload, strings.Join(names, ", "), model.Name),
		})
	}
	return diags
}

// validateGroups checks every GroupSpec against the model. A failing group is
// dropped and reported as a scoped error diagnostic; valid groups are added to
// the model. Groups never affect each other or the base accessors.
func validateGroups(decl SumType, model *Model) []Diagnostic {
	var diags []Diagnostic

	for _, g := range decl.Groups {
		mg, err := validateGroup(g, model)
		if err != nil {
			diags = append(diags, Diagnostic{Severity: SeverityError, Err: err})
			continue
		}
		model.Groups = append(model.Groups, mg)
	}
	return diags
}

func validateGroup(g GroupSpec, model *Model) (*ModelGroup, error) {
	var errs error

	if !token.IsIdentifier(g.MatcherName) {
		errs = errors.Join(errs, codefmt.Errorf(at(g.Pos), "%w: grouped matcher name %q is not an identifier", ErrInvalidConfig, g.MatcherName))
	}
	if len(g.Categories) == 0 {
		errs = errors.Join(errs, codefmt.Errorf(at(g.Pos), "%w: grouping %s defines no categories", ErrEmptyCategory, g.MatcherName))
	}

	mg := &ModelGroup{
		MatcherName: g.MatcherName,
		Exhaustive:  g.Exhaustive,
		Pos:         g.Pos,
	}

	catNames := linkedhashset.New()
	assigned := linkedhashmap.New() // variant name -> category name
	for _, cat := range g.Categories {
		if !token.IsIdentifier(cat.Name) {
			errs = errors.Join(errs, codefmt.Errorf(at(cat.Pos), "%w: category name %q is not an identifier", ErrInvalidConfig, cat.Name))
		}
		if catNames.Contains(cat.Name) {
			errs = errors.Join(errs, codefmt.Errorf(at(cat.Pos), "%w: category %s declared twice in grouping %s", ErrInvalidConfig, cat.Name, g.MatcherName))
		}
		catNames.Add(cat.Name)

		if len(cat.Variants) == 0 {
			errs = errors.Join(errs, codefmt.Errorf(at(cat.Pos), "%w: category %s of grouping %s lists no variants", ErrEmptyCategory, cat.Name, g.MatcherName))
		}

		for _, name := range cat.Variants {
			if model.Variant(name) == nil {
				hint := ""
				if s := suggest.Closest(name, model.VariantNames()); s != "" {
					hint = fmt.Sprintf(" (did you mean %s?)", s)
				}
				errs = errors.Join(errs, codefmt.Errorf(at(cat.Pos), "%w: %s in category %s of grouping %s%s", ErrUnknownVariantInGroup, name, cat.Name, g.MatcherName, hint))
				continue
			}
			if prev, ok := assigned.Get(name); ok {
				errs = errors.Join(errs, codefmt.Errorf(at(cat.Pos), "%w: %s appears in categories %s and %s of grouping %s",
					ErrVariantAssignedTwice, name, prev.(string), cat.Name, g.MatcherName))
				continue
			}
			assigned.Put(name, cat.Name)
		}

		mg.Categories = append(mg.Categories, ModelCategory{Name: cat.Name, Variants: cat.Variants, Pos: cat.Pos})
	}

	var uncovered []string
	for _, v := range model.Variants {
		if _, ok := assigned.Get(v.Name); !ok {
			uncovered = append(uncovered, v.Name)
		}
	}
	if len(uncovered) != 0 {
		if g.Exhaustive {
			errs = errors.Join(errs, codefmt.Errorf(at(g.Pos), "%w: grouping %s does not cover variants %s",
				ErrIncompleteGrouping, g.MatcherName, strings.Join(uncovered, ", ")))
		} else {
			mg.DefaultRequired = true
		}
	}

	if errs != nil {
		return nil, errs
	}
	return mg, nil
}
