package pseudo

import "pseudosel/atom"

// Element is a resolved pseudo-element. It can only be obtained from a
// Catalog. Two elements are equal when their identifiers are: the internal
// flag is fixed per identifier and every constructor takes it from the
// catalog, so == and map keys agree with Equal.
type Element struct {
	id       atom.Atom
	internal bool
}

// ID returns the interned canonical text.
func (e Element) ID() atom.Atom {
	return e.id
}

// Internal reports whether the element is an anonymous box reachable only
// from trusted stylesheets.
func (e Element) Internal() bool {
	return e.internal
}

// IsZero reports whether e was never resolved.
func (e Element) IsZero() bool {
	return e.id == atom.Empty
}

// Equal compares identifiers.
func (e Element) Equal(other Element) bool {
	return e.id == other.id
}

// IsBeforeOrAfter reports whether e is ::before or ::after.
func (e Element) IsBeforeOrAfter() bool {
	return e.id == atom.Before || e.id == atom.After
}

// Text returns the canonical single-colon text, e.g. ":before".
func (e Element) Text() string {
	return e.id.String()
}

// String returns CSS text with the double colon, e.g. "::before".
func (e Element) String() string {
	if e.IsZero() {
		return ""
	}
	return ":" + e.id.String()
}
