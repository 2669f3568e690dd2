// Package pseudo resolves pseudo-element and pseudo-class names to typed
// identifiers and classifies pseudo-elements by cascade timing.
package pseudo

import (
	"errors"
	"fmt"
	"iter"
	"strings"

	parse "github.com/tdewolff/parse/v2"
	"go.uber.org/multierr"

	"pseudosel/atom"
)

var (
	// ErrNoMatch is returned when a name is not part of the vocabulary
	// reachable under the current trust mode.
	ErrNoMatch = errors.New("no matching pseudo name")
	// ErrInconsistent reports a constructed pseudo-element that disagrees
	// with the catalog record for its identifier.
	ErrInconsistent = errors.New("pseudo-element disagrees with catalog")
)

// Entry is a single catalog record.
type Entry struct {
	Text     string    // canonical single-colon lowercase text, e.g. ":before"
	ID       atom.Atom // interned Text
	Internal bool      // reachable only from trusted (user agent) stylesheets
}

// Catalog maps pseudo-element names to identifiers. It is immutable once
// built and safe for concurrent use.
type Catalog struct {
	entries []Entry
	byText  map[string]int // text without leading colon -> index
	byID    map[atom.Atom]int
}

// NewCatalog validates entries and builds a catalog from them. All problems
// found are reported together.
func NewCatalog(entries []Entry) (*Catalog, error) {
	c := &Catalog{
		entries: make([]Entry, 0, len(entries)),
		byText:  make(map[string]int, len(entries)),
		byID:    make(map[atom.Atom]int, len(entries)),
	}

	var err error
	for _, e := range entries {
		if er := validateText(e.Text); er != nil {
			err = multierr.Append(err, er)
			continue
		}
		key := e.Text[1:]
		if _, dup := c.byText[key]; dup {
			err = multierr.Append(err, fmt.Errorf("duplicate pseudo-element text %q", e.Text))
			continue
		}
		if i, dup := c.byID[e.ID]; dup {
			err = multierr.Append(err, fmt.Errorf("pseudo-element %q reuses identifier of %q", e.Text, c.entries[i].Text))
			continue
		}
		c.byText[key] = len(c.entries)
		c.byID[e.ID] = len(c.entries)
		c.entries = append(c.entries, e)
	}
	if err != nil {
		return nil, fmt.Errorf("invalid pseudo-element catalog: %w", err)
	}
	return c, nil
}

func validateText(text string) error {
	switch {
	case len(text) < 2 || text[0] != ':':
		return fmt.Errorf("pseudo-element text %q must start with a single colon", text)
	case text[1] == ':':
		return fmt.Errorf("pseudo-element text %q must not start with a double colon", text)
	case string(parse.ToLower([]byte(text))) != text:
		return fmt.Errorf("pseudo-element text %q is not lowercase", text)
	}
	return nil
}

// foldName lowercases ASCII letters of name into buf. Other bytes are kept as
// is, so non-ASCII text only ever matches byte for byte.
func foldName(buf []byte, name string) []byte {
	return parse.ToLower(append(buf[:0], name...))
}

// LookupByText finds a pseudo-element by its name without the leading colon,
// ignoring ASCII case. Internal entries are invisible unless allowInternal.
func (c *Catalog) LookupByText(name string, allowInternal bool) (Element, bool) {
	var buf [64]byte
	i, ok := c.byText[string(foldName(buf[:], name))]
	if !ok {
		return Element{}, false
	}
	e := c.entries[i]
	if e.Internal && !allowInternal {
		return Element{}, false
	}
	return Element{id: e.ID, internal: e.Internal}, true
}

// LookupByID finds the catalog record for an identifier.
func (c *Catalog) LookupByID(id atom.Atom) (Element, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Element{}, false
	}
	return Element{id: id, internal: c.entries[i].Internal}, true
}

// Checked constructs an element for a known identifier and verifies the
// internal flag against the catalog.
func (c *Catalog) Checked(id atom.Atom, internal bool) (Element, error) {
	pe, ok := c.LookupByID(id)
	if !ok {
		return Element{}, fmt.Errorf("%w: unknown pseudo-element %q", ErrInconsistent, id.String())
	}
	if pe.internal != internal {
		return Element{}, fmt.Errorf("%w: %q internal=%t, catalog says %t", ErrInconsistent, id.String(), internal, pe.internal)
	}
	return pe, nil
}

// Unchecked constructs an element whose internal flag the caller already
// knows to be right. Built with the debug tag it re-validates against the
// catalog and panics on mismatch. Otherwise a known identifier always
// carries the catalog's flag, so the result compares == to the catalog's
// own value; internal is only used for identifiers the catalog lacks.
func (c *Catalog) Unchecked(id atom.Atom, internal bool) Element {
	if debugAssertions {
		pe, err := c.Checked(id, internal)
		if err != nil {
			panic(err)
		}
		return pe
	}
	if pe, ok := c.LookupByID(id); ok {
		return pe
	}
	return Element{id: id, internal: internal}
}

// ForEach calls fn for every catalog entry in table order.
func (c *Catalog) ForEach(fn func(Element)) {
	for _, e := range c.entries {
		fn(Element{id: e.ID, internal: e.Internal})
	}
}

// All returns a restartable sequence over catalog entries in table order.
func (c *Catalog) All() iter.Seq[Element] {
	return func(yield func(Element) bool) {
		for _, e := range c.entries {
			if !yield(Element{id: e.ID, internal: e.Internal}) {
				return
			}
		}
	}
}

// Entries returns a copy of the catalog records.
func (c *Catalog) Entries() []Entry {
	return append([]Entry(nil), c.entries...)
}

// Len returns the number of entries.
func (c *Catalog) Len() int {
	return len(c.entries)
}

var defaultCatalog = mustBuildDefault()

func mustBuildDefault() *Catalog {
	entries := make([]Entry, 0, len(defaultTable))
	for _, r := range defaultTable {
		entries = append(entries, Entry{Text: r.text, ID: atom.Intern(r.text), Internal: r.internal})
	}
	c, err := NewCatalog(entries)
	if err != nil {
		// generated table is broken, nothing sensible to do
		panic(err)
	}
	return c
}

// Default returns the built-in process-wide catalog.
func Default() *Catalog {
	return defaultCatalog
}

// EntryFor builds an Entry interning text in the default atom table.
func EntryFor(text string, internal bool) Entry {
	text = strings.TrimSpace(text)
	return Entry{Text: text, ID: atom.Intern(text), Internal: internal}
}
