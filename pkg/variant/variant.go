// Package variant is the runtime support library for generated sum types.
//
// Generated code binds each variant of a union type U to a [Token]: a value
// carrying the variant's accessor and constructor, keyed by a zero-size marker
// type Tag that exists only at compile time. The package-level operations
// [Ref], [Mut], [Owned], and [Make] accept a union together with one of its
// tokens and perform a checked narrowing. Because the union type is part of
// the token's type, passing a token of a foreign sum type does not compile.
//
// All operations are pure, non-blocking, and O(1). A mismatching downcast is
// represented purely as an absent result; nothing here ever panics on a
// mismatch. Mutable access through [Mut] relies on Go's ordinary aliasing
// rules; the library supplies no synchronization of its own.
package variant

import "strings"

// Token binds the marker type Tag to the payload type P of one variant of the
// union type U. Tokens are created by generated code via [NewToken]; treat
// them as opaque values.
type Token[Tag, U, P any] struct {
	get  func(*U) *P
	wrap func(P) U
}

// NewToken creates a token from a variant's accessor and constructor. The
// accessor must return nil unless the union currently holds the variant, and
// the constructor must produce a union holding the variant with the given
// payload. Intended to be called from generated code only.
func NewToken[Tag, U, P any](get func(*U) *P, wrap func(P) U) Token[Tag, U, P] {
	if get == nil || wrap == nil {
		panic("variant: NewToken requires both accessor and constructor")
	}
	return Token[Tag, U, P]{get: get, wrap: wrap}
}

// Ref returns a read-only view of the payload if the union currently holds the
// token's variant. The second result reports whether it matched. The returned
// pointer stays valid while the union value is alive and must not be used to
// mutate the payload; use [Mut] for that.
func Ref[Tag, U, P any](u *U, tok Token[Tag, U, P]) (*P, bool) {
	p := tok.get(u)
	return p, p != nil
}

// Mut returns a mutable view of the payload if the union currently holds the
// token's variant. The caller must hold exclusive access to the union for the
// lifetime of the returned pointer.
func Mut[Tag, U, P any](u *U, tok Token[Tag, U, P]) (*P, bool) {
	p := tok.get(u)
	return p, p != nil
}

// Owned consumes the union and yields its payload if it holds the token's
// variant. On a mismatch the payload result is the zero value and the caller
// keeps the original union unchanged; no data is dropped either way.
func Owned[Tag, U, P any](u U, tok Token[Tag, U, P]) (P, bool) {
	if p := tok.get(&u); p != nil {
		return *p, true
	}
	var zero P
	return zero, false
}

// Make constructs a union holding the token's variant with the given payload.
func Make[Tag, U, P any](tok Token[Tag, U, P], p P) U {
	return tok.wrap(p)
}

// MustComplete panics when a generated matcher was called with handlers
// missing. The panic names every missing handler at once, so a caller fixes
// the cases struct in one round trip. Generated matchers call it before
// touching the union; it is not intended for direct use.
func MustComplete(matcher string, missing []string) {
	if len(missing) == 0 {
		return
	}
	panic(matcher + ": missing handlers for " + strings.Join(missing, ", "))
}
