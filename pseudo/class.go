package pseudo

import (
	"fmt"

	"pseudosel/element"
)

// Class is a pseudo-class that is not tree-structural. Tree-structural
// pseudo-classes (:first-child, :not() and friends) belong to the generic
// selector engine.
type Class uint8

const (
	ClassAnyLink Class = iota
	ClassLink
	ClassVisited
	ClassActive
	ClassFocus
	ClassFullscreen
	ClassHover
	ClassEnabled
	ClassDisabled
	ClassChecked
	ClassIndeterminate
	ClassReadWrite
	ClassReadOnly
)

var classNames = [...]string{
	ClassAnyLink:       "any-link",
	ClassLink:          "link",
	ClassVisited:       "visited",
	ClassActive:        "active",
	ClassFocus:         "focus",
	ClassFullscreen:    "fullscreen",
	ClassHover:         "hover",
	ClassEnabled:       "enabled",
	ClassDisabled:      "disabled",
	ClassChecked:       "checked",
	ClassIndeterminate: "indeterminate",
	ClassReadWrite:     "read-write",
	ClassReadOnly:      "read-only",
}

var classStates = [...]element.State{
	ClassActive:        element.StateActive,
	ClassFocus:         element.StateFocus,
	ClassFullscreen:    element.StateFullscreen,
	ClassHover:         element.StateHover,
	ClassEnabled:       element.StateEnabled,
	ClassDisabled:      element.StateDisabled,
	ClassChecked:       element.StateChecked,
	ClassIndeterminate: element.StateIndeterminate,
	ClassReadWrite:     element.StateReadWrite,
	ClassReadOnly:      element.StateReadWrite,
	// link state comes from history, not from element state
	ClassAnyLink: element.StateEmpty,
	ClassLink:    element.StateEmpty,
	ClassVisited: element.StateEmpty,
}

var classByName = func() map[string]Class {
	m := make(map[string]Class, len(classNames))
	for c, name := range classNames {
		m[name] = Class(c)
	}
	return m
}()

// ResolveClass matches name, without the colon, against the pseudo-class
// vocabulary ignoring ASCII case.
func ResolveClass(name string) (Class, error) {
	var buf [32]byte
	if c, ok := classByName[string(foldName(buf[:], name))]; ok {
		return c, nil
	}
	return 0, fmt.Errorf("pseudo-class %q: %w", name, ErrNoMatch)
}

// Classes returns every pseudo-class in declaration order.
func Classes() []Class {
	all := make([]Class, len(classNames))
	for i := range all {
		all[i] = Class(i)
	}
	return all
}

// StateFlag returns the element state bit the class tests. :read-only and
// :read-write share a bit; link classes return the empty set.
func (c Class) StateFlag() element.State {
	if int(c) >= len(classStates) {
		return element.StateEmpty
	}
	return classStates[c]
}

// Name returns the bare name, e.g. "hover".
func (c Class) Name() string {
	if int(c) >= len(classNames) {
		return fmt.Sprintf("Class(%d)", c)
	}
	return classNames[c]
}

// String returns CSS text, e.g. ":hover".
func (c Class) String() string {
	return ":" + c.Name()
}
