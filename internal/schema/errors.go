package schema

import "errors"

// Fatal schema errors. Any of them aborts generation for the whole sum type.
var (
	ErrDuplicateVariant = errors.New("duplicate variant name")
	ErrInvalidConfig    = errors.New("invalid config")

	// ErrUnresolvedSharedToken is reported by token resolution when a variant
	// name is absent from the shared registry. It lives here so the whole
	// error taxonomy is in one place.
	ErrUnresolvedSharedToken = errors.New("unresolved shared token")
)

// Grouping errors. They abort only the offending [GroupSpec]; base accessors
// and sibling groupings still generate.
var (
	ErrUnknownVariantInGroup = errors.New("unknown variant in group")
	ErrVariantAssignedTwice  = errors.New("variant assigned twice")
	ErrEmptyCategory         = errors.New("empty category")

	// ErrIncompleteGrouping is reported when a GroupSpec marked exhaustive
	// leaves variants uncovered. Partial specs route uncovered variants to a
	// mandatory default handler instead.
	ErrIncompleteGrouping = errors.New("incomplete grouping")
)

// ErrAmbiguousConversion is a non-fatal consistency warning: payload-keyed
// conversion constructors are silently skipped for variants whose payload type
// is duplicated within the sum type.
var ErrAmbiguousConversion = errors.New("ambiguous conversion")

// Severity classifies a [Diagnostic].
type Severity int

const (
	SeverityWarning Severity = iota
	SeverityError
)

func (s Severity) String() string {
	if s == SeverityError {
		return "error"
	}
	return "warning"
}

// Diagnostic is a scoped, non-fatal report: either a consistency warning or a
// grouping error that aborted a single GroupSpec.
type Diagnostic struct {
	Severity Severity
	Err      error
}

func (d Diagnostic) String() string {
	return d.Severity.String() + ": " + d.Err.Error()
}
