// Package element defines the dynamic element state bits selector matching
// tests against. The live state of an element is owned by the document layer;
// this package only names the bits.
package element

import "strings"

// State is a set of dynamic element conditions.
type State uint16

const (
	StateActive State = 1 << iota
	StateFocus
	StateFullscreen
	StateHover
	StateEnabled
	StateDisabled
	StateChecked
	StateIndeterminate
	// StateReadWrite is set for editable elements. Its absence means read-only,
	// so :read-only and :read-write both map to this single bit.
	StateReadWrite
)

// StateEmpty is the empty set.
const StateEmpty State = 0

var stateNames = [...]struct {
	bit  State
	name string
}{
	{StateActive, "active"},
	{StateFocus, "focus"},
	{StateFullscreen, "fullscreen"},
	{StateHover, "hover"},
	{StateEnabled, "enabled"},
	{StateDisabled, "disabled"},
	{StateChecked, "checked"},
	{StateIndeterminate, "indeterminate"},
	{StateReadWrite, "read-write"},
}

// Empty reports whether no bit is set.
func (s State) Empty() bool {
	return s == StateEmpty
}

// Contains reports whether all bits of other are set in s.
func (s State) Contains(other State) bool {
	return s&other == other
}

// Intersects reports whether s and other share at least one bit.
func (s State) Intersects(other State) bool {
	return s&other != 0
}

// Union returns s with the bits of other added.
func (s State) Union(other State) State {
	return s | other
}

// Names returns the names of set bits in bit order.
func (s State) Names() []string {
	var names []string
	for _, sn := range stateNames {
		if s&sn.bit != 0 {
			names = append(names, sn.name)
		}
	}
	return names
}

// String joins set bit names with "|".
func (s State) String() string {
	return strings.Join(s.Names(), "|")
}
