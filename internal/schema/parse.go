package schema

import (
	"errors"
	"fmt"
	"go/parser"
	"go/token"
	"strings"

	"github.com/emirpasic/gods/maps/linkedhashmap"

	"github.com/variantkit/variantgen/internal/codefmt"
)

// Parse validates a raw declaration and builds the finalized [Model].
//
// Fatal schema errors are returned through err and abort the whole sum type;
// diags carries scoped grouping errors and consistency warnings for which
// generation still proceeds. All fatal errors are collected instead of
// stopping at the first one.
func Parse(decl SumType) (model *Model, diags []Diagnostic, err error) {
	var errs error

	if !token.IsIdentifier(decl.Name) {
		errs = errors.Join(errs, codefmt.Errorf(at(decl.Pos), "%w: sum type name %q is not an identifier", ErrInvalidConfig, decl.Name))
	}
	if len(decl.Variants) == 0 {
		errs = errors.Join(errs, codefmt.Errorf(at(decl.Pos), "%w: sum type %s declares no variants", ErrInvalidConfig, decl.Name))
	}

	pkg := decl.Package
	if pkg == "" {
		pkg = "main"
	} else if !token.IsIdentifier(pkg) {
		errs = errors.Join(errs, codefmt.Errorf(at(decl.Pos), "%w: package name %q is not an identifier", ErrInvalidConfig, pkg))
	}

	errs = errors.Join(errs, validateConfig(decl))

	matcher := decl.Config.MatcherName
	if matcher == "" && token.IsIdentifier(decl.Name) {
		matcher = "Match" + codefmt.ExportName(decl.Name)
	}

	model = &Model{
		Name:        decl.Name,
		Package:     pkg,
		MatcherName: matcher,
		Constraint:  decl.Config.Constraint,
		Container:   decl.Config.Container,
		TokenImport: decl.Config.TokenImport,
		Skip:        decl.Config.SkipConversions,
		Pos:         decl.Pos,
	}

	// Normalize variants. The linked map keeps declaration order while
	// detecting duplicates. Keys are the mangled names: two distinct variant
	// names that mangle to one exported identifier would emit colliding
	// declarations, so they are as fatal as an exact redeclaration.
	seen := linkedhashmap.New() // mangled variant name -> first Variant
	for _, v := range decl.Variants {
		key := v.Name
		if token.IsIdentifier(v.Name) {
			key = codefmt.ExportName(v.Name)
		}
		if prev, ok := seen.Get(key); ok {
			first := prev.(Variant)
			if first.Name == v.Name {
				errs = errors.Join(errs, codefmt.Errorf(at(v.Pos), "%w: %s redeclared in %s\n\tfirst declared at %s",
					ErrDuplicateVariant, v.Name, decl.Name, first.Pos))
			} else {
				errs = errors.Join(errs, codefmt.Errorf(at(v.Pos), "%w: variant names %s and %s of %s collide after name mangling",
					ErrInvalidConfig, first.Name, v.Name, decl.Name))
			}
			continue
		}
		seen.Put(key, v)

		mv, verr := normalizeVariant(decl, v)
		if verr != nil {
			errs = errors.Join(errs, verr)
			continue
		}
		model.Variants = append(model.Variants, mv)
	}

	if errs == nil {
		diags = append(diags, markAmbiguous(model)...)
		diags = append(diags, validateGroups(decl, model)...)
	}
	if errs != nil {
		return nil, nil, errs
	}
	return model, diags, nil
}

// normalizeVariant resolves a declared variant into its effective payload:
// container applied, struct and multi-tuple shapes lowered to a synthesized
// record, unit shape represented as struct{}.
func normalizeVariant(decl SumType, v Variant) (*ModelVariant, error) {
	if !token.IsIdentifier(v.Name) {
		return nil, codefmt.Errorf(at(v.Pos), "%w: variant name %q is not an identifier", ErrInvalidConfig, v.Name)
	}
	if len(v.Tuple) != 0 && len(v.Fields) != 0 {
		return nil, codefmt.Errorf(at(v.Pos), "%w: variant %s declares both tuple and struct payloads", ErrInvalidConfig, v.Name)
	}

	mv := &ModelVariant{Name: v.Name, Pos: v.Pos}
	container := decl.Config.Container

	switch {
	case len(v.Fields) != 0:
		mv.Shape = Struct
		mv.Record = codefmt.ExportName(v.Name) + "Fields"
		fieldSeen := map[string]bool{}
		for _, f := range v.Fields {
			if !token.IsIdentifier(f.Name) {
				return nil, codefmt.Errorf(at(f.Pos), "%w: field name %q of variant %s is not an identifier", ErrInvalidConfig, f.Name, v.Name)
			}
			name := codefmt.ExportName(f.Name)
			if fieldSeen[name] {
				return nil, codefmt.Errorf(at(f.Pos), "%w: duplicate field %s in variant %s", ErrInvalidConfig, f.Name, v.Name)
			}
			fieldSeen[name] = true

			typ, err := applyContainer(container, f.Type, f.Pos)
			if err != nil {
				return nil, err
			}
			mv.Fields = append(mv.Fields, Field{Name: name, Type: typ, Pos: f.Pos})
			mv.Inner = append(mv.Inner, f.Type)
		}
		mv.Payload = mv.Record

	case len(v.Tuple) > 1:
		mv.Shape = Tuple
		mv.Record = codefmt.ExportName(v.Name) + "Values"
		for i, t := range v.Tuple {
			typ, err := applyContainer(container, t, v.Pos)
			if err != nil {
				return nil, err
			}
			mv.Fields = append(mv.Fields, Field{Name: fmt.Sprintf("V%d", i), Type: typ, Pos: v.Pos})
			mv.Inner = append(mv.Inner, t)
		}
		mv.Payload = mv.Record

	case len(v.Tuple) == 1:
		mv.Shape = Tuple
		typ, err := applyContainer(container, v.Tuple[0], v.Pos)
		if err != nil {
			return nil, err
		}
		mv.Payload = typ
		mv.Inner = []string{v.Tuple[0]}

	default:
		mv.Shape = Unit
		mv.Payload = "struct{}"
	}

	if mv.Shape != Unit {
		mv.PayloadKey = typeKey(mv.Payload)
		mv.Convert = !decl.Config.SkipConversions
	}
	return mv, nil
}

// validateConfig checks container, constraint, and matcher references. A
// malformed reference is fatal for the whole sum type.
func validateConfig(decl SumType) error {
	var errs error
	cfg := decl.Config

	if cfg.Container != "" {
		if _, err := applyContainer(cfg.Container, "int", decl.Pos); err != nil {
			errs = errors.Join(errs, err)
		}
	}
	if cfg.Constraint != "" {
		if !isTypeExpr(cfg.Constraint) {
			errs = errors.Join(errs, codefmt.Errorf(at(decl.Pos), "%w: constraint %q is not a type expression", ErrInvalidConfig, cfg.Constraint))
		}
	}
	if cfg.MatcherName != "" && !token.IsIdentifier(cfg.MatcherName) {
		errs = errors.Join(errs, codefmt.Errorf(at(decl.Pos), "%w: matcher name %q is not an identifier", ErrInvalidConfig, cfg.MatcherName))
	}
	return errs
}

// applyContainer wraps a declared payload type with the configured container:
// "[]" and "*" compose directly, any other container is treated as a generic
// type instantiated with the payload. The result must parse as a Go type
// expression.
func applyContainer(container, typ string, pos Pos) (string, error) {
	if !isTypeExpr(typ) {
		return "", codefmt.Errorf(at(pos), "%w: payload type %q is not a type expression", ErrInvalidConfig, typ)
	}

	var applied string
	switch container {
	case "":
		applied = typ
	case "[]":
		applied = "[]" + typ
	case "*":
		applied = "*" + typ
	default:
		applied = fmt.Sprintf("%s[%s]", container, typ)
	}

	if applied != typ && !isTypeExpr(applied) {
		return "", codefmt.Errorf(at(pos), "%w: container %q applied to %q is not a type expression", ErrInvalidConfig, container, typ)
	}
	return applied, nil
}

// isTypeExpr reports whether s parses as a single Go type expression.
func isTypeExpr(s string) bool {
	if s == "" || strings.ContainsAny(s, ";\n") {
		return false
	}
	_, err := parser.ParseExpr(s)
	return err == nil
}

// typeKey mangles a Go type expression into an identifier chunk for
// payload-keyed constructor names: "[]float64" becomes "Float64Slice",
// "*Point" becomes "PointPtr", "map[string]int" becomes "StringToIntMap".
func typeKey(typ string) string {
	typ = strings.TrimSpace(typ)
	switch {
	case strings.HasPrefix(typ, "[]"):
		return typeKey(typ[2:]) + "Slice"
	case strings.HasPrefix(typ, "*"):
		return typeKey(typ[1:]) + "Ptr"
	case strings.HasPrefix(typ, "map["):
		if i := strings.Index(typ, "]"); i > 4 {
			return typeKey(typ[4:i]) + "To" + typeKey(typ[i+1:]) + "Map"
		}
	}
	return codefmt.ExportName(typ)
}
