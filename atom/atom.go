// Package atom interns identifier strings into small comparable handles.
//
// Selector vocabulary (pseudo-element names, namespace prefixes, attribute
// names and values) is compared by handle, never by text. Backing text lives
// in a Table for the lifetime of the process.
package atom

import "sync"

// Atom is an opaque handle for an interned string. The zero Atom is the empty
// string in every Table.
type Atom uint32

// Empty is the handle of the empty string.
const Empty Atom = 0

// Table interns strings to unique Atoms.
type Table struct {
	mu     sync.RWMutex
	byName map[string]Atom
	byID   []string
}

// NewTable creates a table holding only the empty string.
func NewTable() *Table {
	return &Table{
		byName: map[string]Atom{"": Empty},
		byID:   append(make([]string, 0, 256), ""),
	}
}

// Intern returns the Atom for s, creating a new one if needed.
func (t *Table) Intern(s string) Atom {
	// Fast path: read-only lookup
	t.mu.RLock()
	if a, ok := t.byName[s]; ok {
		t.mu.RUnlock()
		return a
	}
	t.mu.RUnlock()

	t.mu.Lock()
	defer t.mu.Unlock()

	// Double-check after acquiring write lock
	if a, ok := t.byName[s]; ok {
		return a
	}
	a := Atom(len(t.byID))
	t.byName[s] = a
	t.byID = append(t.byID, s)
	return a
}

// Lookup returns the Atom for s without interning it.
func (t *Table) Lookup(s string) (Atom, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	a, ok := t.byName[s]
	return a, ok
}

// Text returns the string behind a, or "" for handles this table never issued.
func (t *Table) Text(a Atom) string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if int(a) >= len(t.byID) {
		return ""
	}
	return t.byID[a]
}

// Len returns the number of interned strings, the empty string included.
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.byID)
}

// Default is the process-wide table used by the package level helpers.
var Default = NewTable()

// Well known atoms referenced by the cascade classifier.
var (
	Before = Default.Intern(":before")
	After  = Default.Intern(":after")
)

// Intern interns s in the Default table.
func Intern(s string) Atom {
	return Default.Intern(s)
}

// Lookup looks s up in the Default table.
func Lookup(s string) (Atom, bool) {
	return Default.Lookup(s)
}

// String returns the text of a from the Default table.
func (a Atom) String() string {
	return Default.Text(a)
}
