package selector

import (
	"pseudosel/atom"
	"pseudosel/namespace"
)

// NamespaceConstraint restricts the namespace of a matched attribute.
type NamespaceConstraint struct {
	Any bool          // *|attr
	URL namespace.URL // meaningful when Any is false, None for |attr and attr
}

// IsNull reports whether the constraint is the null namespace, which is what
// an unprefixed attribute selector means.
func (nc NamespaceConstraint) IsNull() bool {
	return !nc.Any && nc.URL == namespace.None
}

// AttrSelector describes an attribute selector while its syntax node is
// being built. Only the lowercase name is interned: attribute values and
// spellings come from arbitrary stylesheets and stay plain strings.
type AttrSelector struct {
	Name      string    // as written
	LowerName atom.Atom // ASCII lowercase, matched against HTML elements
	Namespace NamespaceConstraint
	Case      CaseSensitivity
}

// SharingPolicy decides whether an attribute selector is simple enough for
// elements matching it to share computed style. Implementations must be
// pure: the same input always gives the same answer and nothing is mutated.
type SharingPolicy interface {
	AttrExistsIsShareable(sel *AttrSelector) bool
	AttrEqualsIsShareable(sel *AttrSelector, value string) bool
}

// SharingFuncs adapts plain functions to SharingPolicy. A nil function
// answers false.
type SharingFuncs struct {
	Exists func(sel *AttrSelector) bool
	Equals func(sel *AttrSelector, value string) bool
}

func (f SharingFuncs) AttrExistsIsShareable(sel *AttrSelector) bool {
	return f.Exists != nil && f.Exists(sel)
}

func (f SharingFuncs) AttrEqualsIsShareable(sel *AttrSelector, value string) bool {
	return f.Equals != nil && f.Equals(sel, value)
}

// NeverShare disables style sharing for every attribute selector.
var NeverShare SharingPolicy = SharingFuncs{}

// NamespaceSource supplies the namespace context of the enclosing
// stylesheet.
type NamespaceSource interface {
	Default() (namespace.URL, bool)
	ForPrefix(prefix atom.Atom) (namespace.URL, bool)
}
