package css

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"pseudosel/atom"
	"pseudosel/element"
	"pseudosel/namespace"
	"pseudosel/pseudo"
	"pseudosel/selector"
)

var stringEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\a `)

// quoteString returns s as a double-quoted CSS string.
func quoteString(s string) string {
	return `"` + stringEscaper.Replace(s) + `"`
}

// TypeSelector is an element name with its namespace constraint.
type TypeSelector struct {
	Name      string // local name, "*" for the universal selector
	Namespace selector.NamespaceConstraint
}

// Attribute is a compiled attribute selector.
type Attribute struct {
	Selector  selector.AttrSelector
	Operator  string // empty for [attr], otherwise "=", "~=", "|=", "^=", "$=" or "*="
	Value     string
	Shareable bool
}

// Selector is a compiled complex selector. Only the vocabulary this module
// resolves is broken out; combinators and simple selectors the matching
// engine handles on its own stay in Raw.
type Selector struct {
	Raw        string
	Types      []TypeSelector
	Classes    []pseudo.Class
	Structural []string       // tree-structural pseudo-classes, e.g. "first-child", "not(...)"
	Pseudo     pseudo.Element // zero when the selector has no pseudo-element
	Attributes []Attribute
	States     element.State // union of state bits tested by Classes
	Shareable  bool          // every attribute selector allows style sharing
}

// HasPseudo reports whether the selector targets a pseudo-element.
func (s Selector) HasPseudo() bool {
	return !s.Pseudo.IsZero()
}

// Cascade returns the cascade timing of the selector's pseudo-element.
func (s Selector) Cascade() (pseudo.CascadeType, bool) {
	if !s.HasPseudo() {
		return 0, false
	}
	return pseudo.Classify(s.Pseudo), true
}

// Rule represents a single CSS rule (selector list + properties).
type Rule struct {
	Selectors  []Selector       // every selector of the list, none failed
	Properties map[string]string // lowercase property name -> value text
	Media      string           // raw @media query, empty for top-level rules
}

// SelectorText joins the raw selectors of the rule.
func (r Rule) SelectorText() string {
	raws := make([]string, 0, len(r.Selectors))
	for _, s := range r.Selectors {
		raws = append(raws, s.Raw)
	}
	return strings.Join(raws, ", ")
}

// Stylesheet is the result of scanning one stylesheet.
type Stylesheet struct {
	Origin     selector.Origin
	Namespaces *namespace.Table // namespace context of this parse
	Rules      []Rule           // rules in source order
	Warnings   []string         // dropped rules and ignored constructs
}

// RulesByCascade returns rules with at least one selector whose
// pseudo-element has cascade type ct.
func (s *Stylesheet) RulesByCascade(ct pseudo.CascadeType) []Rule {
	var matches []Rule
	for _, r := range s.Rules {
		for _, sel := range r.Selectors {
			if got, ok := sel.Cascade(); ok && got == ct {
				matches = append(matches, r)
				break
			}
		}
	}
	return matches
}

// RulesBySelector returns rules whose selector list contains raw.
func (s *Stylesheet) RulesBySelector(raw string) []Rule {
	var matches []Rule
	for _, r := range s.Rules {
		for _, sel := range r.Selectors {
			if sel.Raw == raw {
				matches = append(matches, r)
				break
			}
		}
	}
	return matches
}

// WriteTo writes namespace declarations followed by rules in source order,
// implementing io.WriterTo. Consecutive rules of the same @media query are
// grouped. Property order within a rule is sorted for deterministic output.
func (s *Stylesheet) WriteTo(w io.Writer) (int64, error) {
	var total int64
	add := func(n int, err error) error {
		total += int64(n)
		return err
	}

	if s.Namespaces != nil {
		if def, ok := s.Namespaces.Default(); ok {
			if err := add(fmt.Fprintf(w, "@namespace url(%s);\n", quoteString(string(def)))); err != nil {
				return total, err
			}
		}
		for _, p := range s.Namespaces.Prefixes() {
			url, _ := s.Namespaces.ForPrefix(atom.Intern(p))
			if err := add(fmt.Fprintf(w, "@namespace %s url(%s);\n", p, quoteString(string(url)))); err != nil {
				return total, err
			}
		}
	}

	for i := 0; i < len(s.Rules); {
		if total > 0 {
			if err := add(fmt.Fprint(w, "\n")); err != nil {
				return total, err
			}
		}
		media := s.Rules[i].Media
		if media == "" {
			if err := add(writeRule(w, &s.Rules[i], "")); err != nil {
				return total, err
			}
			i++
			continue
		}
		if err := add(fmt.Fprintf(w, "@media %s {\n", media)); err != nil {
			return total, err
		}
		for first := true; i < len(s.Rules) && s.Rules[i].Media == media; i++ {
			if !first {
				if err := add(fmt.Fprint(w, "\n")); err != nil {
					return total, err
				}
			}
			first = false
			if err := add(writeRule(w, &s.Rules[i], "  ")); err != nil {
				return total, err
			}
		}
		if err := add(fmt.Fprint(w, "}\n")); err != nil {
			return total, err
		}
	}
	return total, nil
}

// String returns the CSS text of the stylesheet.
func (s *Stylesheet) String() string {
	var sb strings.Builder
	s.WriteTo(&sb) //nolint:errcheck
	return sb.String()
}

// writeRule writes a single CSS rule to w with the given indent.
func writeRule(w io.Writer, rule *Rule, indent string) (int, error) {
	var total int
	n, err := fmt.Fprintf(w, "%s%s {\n", indent, rule.SelectorText())
	total += n
	if err != nil {
		return total, err
	}
	n, err = writeProperties(w, rule.Properties, indent+"  ")
	total += n
	if err != nil {
		return total, err
	}
	n, err = fmt.Fprintf(w, "%s}\n", indent)
	total += n
	return total, err
}

// writeProperties writes property declarations sorted alphabetically.
func writeProperties(w io.Writer, props map[string]string, indent string) (int, error) {
	names := make([]string, 0, len(props))
	for name := range props {
		names = append(names, name)
	}
	sort.Strings(names)

	var total int
	for _, name := range names {
		n, err := fmt.Fprintf(w, "%s%s: %s;\n", indent, name, props[name])
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}
