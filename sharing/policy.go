// Package sharing decides which attribute selectors keep a compiled selector
// eligible for the style-sharing cache.
//
// The cache can only reuse computed style between two elements when it knows
// how to compare the attributes a selector looks at. Those are the common
// style-affecting attributes: the cache checks their presence or their
// value on both candidates before sharing.
package sharing

import (
	"fmt"
	"slices"

	parse "github.com/tdewolff/parse/v2"
	"go.uber.org/multierr"

	"pseudosel/atom"
	"pseudosel/selector"
)

// Rule declares one style-affecting attribute.
type Rule struct {
	Name   string   `yaml:"name" validate:"required"`
	Mode   Mode     `yaml:"mode"`
	Values []string `yaml:"values,omitempty"`
}

// Policy implements selector.SharingPolicy. It is immutable once built.
type Policy struct {
	present map[atom.Atom]struct{}
	equals  map[atom.Atom][]string
}

var _ selector.SharingPolicy = (*Policy)(nil)

// DefaultRules are the attributes the style-sharing cache compares.
var DefaultRules = []Rule{
	{Name: "hidden", Mode: ModePresent},
	{Name: "nowrap", Mode: ModePresent},
	{Name: "align", Mode: ModeEquals, Values: []string{"left", "center", "right"}},
}

// New builds a policy, reporting every invalid rule.
func New(rules []Rule) (*Policy, error) {
	p := &Policy{
		present: make(map[atom.Atom]struct{}),
		equals:  make(map[atom.Atom][]string),
	}

	var err error
	for i, r := range rules {
		if r.Name == "" {
			err = multierr.Append(err, fmt.Errorf("sharing rule %d: empty attribute name", i))
			continue
		}
		name := atom.Intern(lower(r.Name))
		switch r.Mode {
		case ModePresent:
			if len(r.Values) > 0 {
				err = multierr.Append(err, fmt.Errorf("sharing rule %q: values are not allowed in %s mode", r.Name, r.Mode))
				continue
			}
			p.present[name] = struct{}{}
		case ModeEquals:
			if len(r.Values) == 0 {
				err = multierr.Append(err, fmt.Errorf("sharing rule %q: %s mode needs values", r.Name, r.Mode))
				continue
			}
			for _, v := range r.Values {
				if !slices.Contains(p.equals[name], v) {
					p.equals[name] = append(p.equals[name], v)
				}
			}
		default:
			err = multierr.Append(err, fmt.Errorf("sharing rule %q: %w", r.Name, ErrInvalidMode))
		}
	}
	if err != nil {
		return nil, fmt.Errorf("invalid sharing policy: %w", err)
	}
	return p, nil
}

// Default returns the policy built from DefaultRules.
func Default() *Policy {
	p, err := New(DefaultRules)
	if err != nil {
		// DefaultRules are static
		panic(err)
	}
	return p
}

func lower(s string) string {
	return string(parse.ToLower([]byte(s)))
}

// AttrExistsIsShareable reports whether [attr] keeps a selector shareable.
// Only null namespace attributes the cache compares by presence qualify.
func (p *Policy) AttrExistsIsShareable(sel *selector.AttrSelector) bool {
	if !sel.Namespace.IsNull() {
		return false
	}
	_, ok := p.present[sel.LowerName]
	return ok
}

// AttrEqualsIsShareable reports whether [attr=value] keeps a selector
// shareable. The value must be one the cache compares for that attribute.
func (p *Policy) AttrEqualsIsShareable(sel *selector.AttrSelector, value string) bool {
	if !sel.Namespace.IsNull() {
		return false
	}
	targets := p.equals[sel.LowerName]
	if sel.Case != selector.CaseSensitivityInsensitive {
		return slices.Contains(targets, value)
	}
	text := []byte(value)
	for _, t := range targets {
		if parse.EqualFold(text, []byte(lower(t))) {
			return true
		}
	}
	return false
}
