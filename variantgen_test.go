package variantgen_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/variantkit/variantgen"
)

func numberDecl() variantgen.SumType {
	return variantgen.SumType{
		Name:    "Number",
		Package: "numbers",
		Variants: []variantgen.Variant{
			{Name: "Float", Tuple: []string{"float64"}},
			{Name: "Integer", Tuple: []string{"int64"}},
		},
		Config: variantgen.Config{Container: "[]"},
	}
}

func TestGenerate(t *testing.T) {
	res, err := variantgen.Generate(numberDecl(), nil)
	require.NoError(t, err)
	assert.Empty(t, res.Diagnostics)

	code := string(res.Code)
	assert.Contains(t, code, "// Code generated by variantgen. DO NOT EDIT.")
	assert.Contains(t, code, "package numbers")
	assert.Contains(t, code, "type Number struct {")
	assert.Contains(t, code, "var NumberFloat = variant.NewToken[NumberFloatTag](")
	assert.Contains(t, code, "func NewNumberFloat(p []float64) Number")
	assert.Contains(t, code, "func NumberFromFloat64Slice(p []float64) Number")
	assert.Contains(t, code, "func MatchNumber[R any](u Number, cases NumberCases[R]) R {")
	assert.Contains(t, code, "func MatchNumberRef[R any](u *Number, cases NumberRefCases[R]) R {")
}

func TestGenerateFatalError(t *testing.T) {
	decl := numberDecl()
	decl.Variants = append(decl.Variants, variantgen.Variant{Name: "Float", Tuple: []string{"float32"}})

	res, err := variantgen.Generate(decl, nil)
	require.Error(t, err)
	assert.Nil(t, res)
	assert.ErrorIs(t, err, variantgen.ErrDuplicateVariant)
}

func TestGenerateUnicodeName(t *testing.T) {
	// Any name go/token.IsIdentifier accepts generates cleanly.
	res, err := variantgen.Generate(variantgen.SumType{
		Name:     "Ä",
		Variants: []variantgen.Variant{{Name: "X", Tuple: []string{"int"}}},
	}, nil)
	require.NoError(t, err)

	code := string(res.Code)
	assert.Contains(t, code, "type Ä struct {")
	assert.Contains(t, code, "func MatchÄ[R any]")
}

func TestGenerateVariantNameMangleCollision(t *testing.T) {
	res, err := variantgen.Generate(variantgen.SumType{
		Name: "Value",
		Variants: []variantgen.Variant{
			{Name: "Float", Tuple: []string{"float64"}},
			{Name: "float", Tuple: []string{"float32"}},
		},
	}, nil)
	require.Error(t, err)
	assert.Nil(t, res)
	assert.ErrorIs(t, err, variantgen.ErrInvalidConfig)
	assert.Contains(t, err.Error(), "collide after name mangling")
}

func TestGenerateDiagnostics(t *testing.T) {
	decl := variantgen.SumType{
		Name: "Value",
		Variants: []variantgen.Variant{
			{Name: "Width", Tuple: []string{"int"}},
			{Name: "Height", Tuple: []string{"int"}},
		},
		Groups: []variantgen.GroupSpec{{
			MatcherName: "MatchKind",
			Categories: []variantgen.Category{
				{Name: "Sized", Variants: []string{"Depth"}},
			},
		}},
	}

	res, err := variantgen.Generate(decl, nil)
	require.NoError(t, err)
	require.Len(t, res.Diagnostics, 2)

	assert.Equal(t, variantgen.SeverityWarning, res.Diagnostics[0].Severity)
	assert.ErrorIs(t, res.Diagnostics[0].Err, variantgen.ErrAmbiguousConversion)
	assert.Equal(t, variantgen.SeverityError, res.Diagnostics[1].Severity)
	assert.ErrorIs(t, res.Diagnostics[1].Err, variantgen.ErrUnknownVariantInGroup)

	// The dropped grouping leaves no trace in the artifact.
	code := string(res.Code)
	assert.NotContains(t, code, "MatchKind")
	assert.NotContains(t, code, "ValueFromInt")
}

func TestGenerateSharedTokens(t *testing.T) {
	reg := variantgen.NewRegistry("example.com/app/tokens")
	require.NoError(t, reg.Register("X", "Y", "Z"))

	declA := variantgen.SumType{
		Name:    "A",
		Package: "sums",
		Variants: []variantgen.Variant{
			{Name: "X", Tuple: []string{"int"}},
			{Name: "Y", Tuple: []string{"string"}},
		},
	}
	declB := variantgen.SumType{
		Name:    "B",
		Package: "sums",
		Variants: []variantgen.Variant{
			{Name: "X", Tuple: []string{"float64"}},
			{Name: "Y", Tuple: []string{"bool"}},
		},
	}

	resA, err := variantgen.Generate(declA, reg)
	require.NoError(t, err)
	resB, err := variantgen.Generate(declB, reg)
	require.NoError(t, err)

	// Both artifacts reference one marker identity per variant name, each
	// bound to its own union and payload.
	codeA, codeB := string(resA.Code), string(resB.Code)
	assert.Contains(t, codeA, "variant.NewToken[tokens.XTag](")
	assert.Contains(t, codeB, "variant.NewToken[tokens.XTag](")
	assert.NotContains(t, codeA, "XTag struct{}")
	assert.NotContains(t, codeB, "XTag struct{}")

	code, err := variantgen.GenerateTokens(reg)
	require.NoError(t, err)
	s := string(code)
	assert.Contains(t, s, "package tokens")
	assert.Contains(t, s, "XTag struct{}")
	assert.Contains(t, s, "YTag struct{}")
	assert.Contains(t, s, "ZTag struct{}")

	// A sum type declaring a variant the registry never saw fails generation.
	declC := variantgen.SumType{
		Name:    "C",
		Package: "sums",
		Variants: []variantgen.Variant{
			{Name: "Z", Tuple: []string{"int"}},
			{Name: "W", Tuple: []string{"int"}},
		},
	}
	_, err = variantgen.Generate(declC, reg)
	require.Error(t, err)
	assert.ErrorIs(t, err, variantgen.ErrUnresolvedSharedToken)
	assert.Contains(t, err.Error(), "W")
}

func TestGenerateUnresolvedSharedToken(t *testing.T) {
	reg := variantgen.NewRegistry("example.com/app/tokens")
	require.NoError(t, reg.Register("Float"))

	_, err := variantgen.Generate(numberDecl(), reg)
	require.Error(t, err)
	assert.ErrorIs(t, err, variantgen.ErrUnresolvedSharedToken)
	assert.Contains(t, err.Error(), "Integer")
}

func TestGenerateTokenImportConfig(t *testing.T) {
	decl := numberDecl()
	decl.Config.TokenImport = "example.com/app/tokens"

	_, err := variantgen.Generate(decl, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, variantgen.ErrInvalidConfig)

	reg := variantgen.NewRegistry("example.com/other/tokens")
	require.NoError(t, reg.Register("Float", "Integer"))
	_, err = variantgen.Generate(decl, reg)
	require.Error(t, err)
	assert.ErrorIs(t, err, variantgen.ErrInvalidConfig)

	reg = variantgen.NewRegistry("example.com/app/tokens")
	require.NoError(t, reg.Register("Float", "Integer"))
	res, err := variantgen.Generate(decl, reg)
	require.NoError(t, err)
	assert.Contains(t, string(res.Code), `"example.com/app/tokens"`)
}

func TestGenerateTokenPackageNormalized(t *testing.T) {
	// An import path whose base is not an identifier gets a mangled package
	// name rather than leaking into the artifact verbatim.
	reg := variantgen.NewRegistry("example.com/go-tokens")
	require.NoError(t, reg.Register("X"))

	decl := variantgen.SumType{
		Name:     "A",
		Package:  "sums",
		Variants: []variantgen.Variant{{Name: "X", Tuple: []string{"int"}}},
	}
	res, err := variantgen.Generate(decl, reg)
	require.NoError(t, err)
	assert.Contains(t, string(res.Code), "goTokens.XTag")

	code, err := variantgen.GenerateTokens(reg)
	require.NoError(t, err)
	assert.Contains(t, string(code), "package goTokens")
}

func TestGenerateInvalidTokenPackage(t *testing.T) {
	reg := variantgen.NewRegistry("example.com/---")
	require.NoError(t, reg.Register("X"))

	decl := variantgen.SumType{
		Name:     "A",
		Package:  "sums",
		Variants: []variantgen.Variant{{Name: "X", Tuple: []string{"int"}}},
	}
	_, err := variantgen.Generate(decl, reg)
	require.Error(t, err)
	assert.ErrorIs(t, err, variantgen.ErrInvalidConfig)

	_, err = variantgen.GenerateTokens(reg)
	require.Error(t, err)
	assert.ErrorIs(t, err, variantgen.ErrInvalidConfig)
}

func TestGenerateGrouped(t *testing.T) {
	decl := variantgen.SumType{
		Name:    "Number",
		Package: "numbers",
		Variants: []variantgen.Variant{
			{Name: "Float", Tuple: []string{"float64"}},
			{Name: "Integer", Tuple: []string{"int64"}},
			{Name: "Complex", Tuple: []string{"complex128"}},
		},
		Groups: []variantgen.GroupSpec{{
			MatcherName: "MatchNumberKind",
			Exhaustive:  true,
			Categories: []variantgen.Category{
				{Name: "Real", Variants: []string{"Float", "Integer"}},
				{Name: "NonReal", Variants: []string{"Complex"}},
			},
		}},
	}

	res, err := variantgen.Generate(decl, nil)
	require.NoError(t, err)
	assert.Empty(t, res.Diagnostics)

	code := string(res.Code)
	assert.Contains(t, code, "func MatchNumberKind[R any](u Number, cases MatchNumberKindCases[R]) R {")
	assert.Contains(t, code, "case NumberTagFloat, NumberTagInteger:")
}

func TestRegistrySet(t *testing.T) {
	set := variantgen.NewRegistrySet()
	reg := set.Registry("app", "example.com/app/tokens")
	require.NoError(t, reg.Register("X"))

	again, ok := set.Lookup("app")
	require.True(t, ok)
	assert.Same(t, reg, again)
}
