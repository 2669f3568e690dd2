// Package namespace holds the prefix to namespace URL mapping declared by a
// stylesheet.
package namespace

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"go.uber.org/multierr"

	"pseudosel/atom"
)

// ErrDuplicatePrefix is returned when a prefix is declared twice in a
// context that does not allow redefinition.
var ErrDuplicatePrefix = errors.New("duplicate namespace prefix")

// URL is a namespace URL. The empty URL is the null namespace.
type URL string

// Well known namespaces.
const (
	None   URL = ""
	XHTML  URL = "http://www.w3.org/1999/xhtml"
	SVG    URL = "http://www.w3.org/2000/svg"
	MathML URL = "http://www.w3.org/1998/Math/MathML"
	XLink  URL = "http://www.w3.org/1999/xlink"
	XUL    URL = "http://www.mozilla.org/keymaster/gatekeeper/there.is.only.xul"
)

// Table is the namespace context of a single stylesheet parse. It is not
// safe for concurrent mutation; each parse owns its own table.
type Table struct {
	def        URL
	hasDefault bool
	prefixes   map[atom.Atom]URL
}

// NewTable creates an empty table.
func NewTable() *Table {
	return &Table{prefixes: make(map[atom.Atom]URL)}
}

// Declare records an @namespace rule. An empty prefix sets the default
// namespace. Later declarations replace earlier ones, as in CSS.
func (t *Table) Declare(prefix string, url URL) {
	if prefix == "" {
		t.def, t.hasDefault = url, true
		return
	}
	t.prefixes[atom.Intern(prefix)] = url
}

// Default returns the default namespace if one was declared.
func (t *Table) Default() (URL, bool) {
	return t.def, t.hasDefault
}

// ForPrefix returns the namespace bound to prefix. An unknown prefix is
// reported as absent, not as an error.
func (t *Table) ForPrefix(prefix atom.Atom) (URL, bool) {
	url, ok := t.prefixes[prefix]
	return url, ok
}

// Len returns the number of declared prefixes, the default not included.
func (t *Table) Len() int {
	return len(t.prefixes)
}

// Prefixes returns declared prefixes in sorted order.
func (t *Table) Prefixes() []string {
	names := make([]string, 0, len(t.prefixes))
	for p := range maps.Keys(t.prefixes) {
		names = append(names, p.String())
	}
	slices.Sort(names)
	return names
}

// Clone returns an independent copy, used to seed per-parse tables from a
// shared template.
func (t *Table) Clone() *Table {
	return &Table{
		def:        t.def,
		hasDefault: t.hasDefault,
		prefixes:   maps.Clone(t.prefixes),
	}
}

// Binding is a single prefix declaration.
type Binding struct {
	Prefix string `yaml:"prefix" validate:"required"`
	URL    string `yaml:"url"`
}

// Build creates a table from configured bindings. Prefixes must be unique;
// every violation is reported.
func Build(def string, bindings []Binding) (*Table, error) {
	t := NewTable()
	if def != "" {
		t.Declare("", URL(def))
	}

	var err error
	for _, b := range bindings {
		if b.Prefix == "" {
			err = multierr.Append(err, fmt.Errorf("empty namespace prefix for %q, use the default namespace instead", b.URL))
			continue
		}
		a := atom.Intern(b.Prefix)
		if _, dup := t.prefixes[a]; dup {
			err = multierr.Append(err, fmt.Errorf("%w: %q", ErrDuplicatePrefix, b.Prefix))
			continue
		}
		t.prefixes[a] = URL(b.URL)
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}
