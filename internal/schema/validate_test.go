package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseOK(t *testing.T, decl SumType) (*Model, []Diagnostic) {
	t.Helper()
	model, diags, err := Parse(decl)
	require.NoError(t, err)
	return model, diags
}

func kindDecl(groups ...GroupSpec) SumType {
	return SumType{
		Name: "Number",
		Variants: []Variant{
			{Name: "Float", Tuple: []string{"float64"}},
			{Name: "Integer", Tuple: []string{"int64"}},
			{Name: "Complex", Tuple: []string{"complex128"}},
		},
		Groups: groups,
	}
}

func TestAmbiguousConversionWarning(t *testing.T) {
	model, diags := parseOK(t, SumType{
		Name: "Value",
		Variants: []Variant{
			{Name: "Width", Tuple: []string{"int"}},
			{Name: "Height", Tuple: []string{"int"}},
			{Name: "Label", Tuple: []string{"string"}},
		},
	})

	require.Len(t, diags, 1)
	assert.Equal(t, SeverityWarning, diags[0].Severity)
	assert.ErrorIs(t, diags[0].Err, ErrAmbiguousConversion)
	assert.Contains(t, diags[0].Err.Error(), "Width, Height")

	assert.False(t, model.Variant("Width").Convert)
	assert.False(t, model.Variant("Height").Convert)
	assert.True(t, model.Variant("Label").Convert)
}

func TestAmbiguousConversionCollidingSpellings(t *testing.T) {
	// Distinct spellings that mangle to the same constructor name also
	// collide; neither variant gets a conversion.
	model, diags := parseOK(t, SumType{
		Name: "Value",
		Variants: []Variant{
			{Name: "Plain", Tuple: []string{"intSlice"}},
			{Name: "Listed", Tuple: []string{"[]int"}},
		},
	})

	require.Len(t, diags, 1)
	assert.ErrorIs(t, diags[0].Err, ErrAmbiguousConversion)
	assert.False(t, model.Variant("Plain").Convert)
	assert.False(t, model.Variant("Listed").Convert)
}

func TestAmbiguityIgnoredWhenConversionsSkipped(t *testing.T) {
	_, diags := parseOK(t, SumType{
		Name: "Value",
		Variants: []Variant{
			{Name: "Width", Tuple: []string{"int"}},
			{Name: "Height", Tuple: []string{"int"}},
		},
		Config: Config{SkipConversions: true},
	})
	assert.Empty(t, diags)
}

func TestGroupPartition(t *testing.T) {
	model, diags := parseOK(t, kindDecl(GroupSpec{
		MatcherName: "MatchKind",
		Exhaustive:  true,
		Categories: []Category{
			{Name: "Real", Variants: []string{"Float", "Integer"}},
			{Name: "NonReal", Variants: []string{"Complex"}},
		},
	}))

	assert.Empty(t, diags)
	require.Len(t, model.Groups, 1)
	g := model.Groups[0]
	assert.True(t, g.Exhaustive)
	assert.False(t, g.DefaultRequired)
	require.Len(t, g.Categories, 2)
	assert.Equal(t, []string{"Float", "Integer"}, g.Categories[0].Variants)
}

func TestGroupPartialRequiresDefault(t *testing.T) {
	model, diags := parseOK(t, kindDecl(GroupSpec{
		MatcherName: "MatchReal",
		Categories: []Category{
			{Name: "Real", Variants: []string{"Float", "Integer"}},
		},
	}))

	assert.Empty(t, diags)
	require.Len(t, model.Groups, 1)
	assert.True(t, model.Groups[0].DefaultRequired)
}

func TestGroupExhaustiveIncomplete(t *testing.T) {
	model, diags := parseOK(t, kindDecl(GroupSpec{
		MatcherName: "MatchKind",
		Exhaustive:  true,
		Categories: []Category{
			{Name: "Real", Variants: []string{"Float", "Integer"}},
		},
	}))

	assert.Empty(t, model.Groups)
	require.Len(t, diags, 1)
	assert.Equal(t, SeverityError, diags[0].Severity)
	assert.ErrorIs(t, diags[0].Err, ErrIncompleteGrouping)
	assert.Contains(t, diags[0].Err.Error(), "Complex")
}

func TestGroupUnknownVariant(t *testing.T) {
	model, diags := parseOK(t, kindDecl(GroupSpec{
		MatcherName: "MatchKind",
		Categories: []Category{
			{Name: "Real", Variants: []string{"Float", "Rational"}},
		},
	}))

	assert.Empty(t, model.Groups)
	require.Len(t, diags, 1)
	assert.ErrorIs(t, diags[0].Err, ErrUnknownVariantInGroup)
	assert.Contains(t, diags[0].Err.Error(), "Rational")
}

func TestGroupUnknownVariantSuggestion(t *testing.T) {
	_, diags := parseOK(t, kindDecl(GroupSpec{
		MatcherName: "MatchKind",
		Categories: []Category{
			{Name: "Real", Variants: []string{"Floot"}},
		},
	}))

	require.Len(t, diags, 1)
	assert.Contains(t, diags[0].Err.Error(), "did you mean Float?")
}

func TestGroupVariantAssignedTwice(t *testing.T) {
	model, diags := parseOK(t, kindDecl(GroupSpec{
		MatcherName: "MatchKind",
		Categories: []Category{
			{Name: "Real", Variants: []string{"Float", "Integer"}},
			{Name: "Exact", Variants: []string{"Integer", "Complex"}},
		},
	}))

	assert.Empty(t, model.Groups)
	require.Len(t, diags, 1)
	assert.ErrorIs(t, diags[0].Err, ErrVariantAssignedTwice)
	assert.Contains(t, diags[0].Err.Error(), "Real and Exact")
}

func TestGroupEmptyCategory(t *testing.T) {
	model, diags := parseOK(t, kindDecl(GroupSpec{
		MatcherName: "MatchKind",
		Categories: []Category{
			{Name: "Real", Variants: []string{"Float", "Integer", "Complex"}},
			{Name: "NonReal"},
		},
	}))

	assert.Empty(t, model.Groups)
	require.Len(t, diags, 1)
	assert.ErrorIs(t, diags[0].Err, ErrEmptyCategory)
}

func TestGroupFailureIsScoped(t *testing.T) {
	// One broken group does not take down its valid sibling.
	model, diags := parseOK(t, kindDecl(
		GroupSpec{
			MatcherName: "MatchBroken",
			Categories: []Category{
				{Name: "Real", Variants: []string{"Rational"}},
			},
		},
		GroupSpec{
			MatcherName: "MatchKind",
			Exhaustive:  true,
			Categories: []Category{
				{Name: "Real", Variants: []string{"Float", "Integer"}},
				{Name: "NonReal", Variants: []string{"Complex"}},
			},
		},
	))

	require.Len(t, diags, 1)
	assert.ErrorIs(t, diags[0].Err, ErrUnknownVariantInGroup)
	require.Len(t, model.Groups, 1)
	assert.Equal(t, "MatchKind", model.Groups[0].MatcherName)
}
