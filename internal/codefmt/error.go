package codefmt

import "fmt"

// CodeError indicates where the error occurred in the user's declaration.
type CodeError struct {
	err error
	pos Pos
}

// Unwrap returns the underlying error.
func (e *CodeError) Unwrap() error { return e.err }

// Pos returns the position where the error occurred. It may be invalid.
func (e *CodeError) Pos() Pos { return e.pos }

// Error implements the error interface. If pos is valid, the position is
// prepended to the error message.
func (e *CodeError) Error() string {
	if e.err == nil {
		return ""
	}
	if !e.pos.IsValid() {
		return e.err.Error()
	}
	return fmt.Sprintf("%s: %s", e.pos, e.err.Error())
}

// Errorf formats an error message. The error will indicate the position in the
// declaration if poser is non-nil and its position is valid.
//
// %w is allowed so error kinds stay matchable with errors.Is.
func Errorf(poser Poser, format string, args ...any) error {
	var pos Pos
	if poser != nil {
		pos = poser.Pos()
	}
	return &CodeError{fmt.Errorf(format, args...), pos}
}
