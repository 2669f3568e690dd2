package css

import (
	"maps"
	"slices"
	"sort"

	"github.com/maruel/natural"

	"pseudosel/utils/debug"
)

type treeWriter struct {
	*debug.TreeWriter
}

// Dump returns a readable tree of the scanned stylesheet.
// It exists solely for manual inspection during debugging.
func (s *Stylesheet) Dump() string {
	tw := treeWriter{debug.NewTreeWriter()}
	tw.Line(0, "Stylesheet origin=%s rules=%d warnings=%d", s.Origin, len(s.Rules), len(s.Warnings))

	if s.Namespaces != nil {
		if def, ok := s.Namespaces.Default(); ok {
			tw.TextBlock(1, "default namespace", string(def))
		}
		tw.List(1, "prefixes", s.Namespaces.Prefixes())
	}

	for i := range s.Rules {
		tw.rule(1, i, &s.Rules[i])
	}

	for _, w := range s.Warnings {
		tw.TextBlock(1, "warning", w)
	}
	return tw.String()
}

func (tw treeWriter) rule(depth, idx int, r *Rule) {
	tw.Line(depth, "Rule[%d]", idx)
	if r.Media != "" {
		tw.TextBlock(depth+1, "media", r.Media)
	}
	for i := range r.Selectors {
		tw.selector(depth+1, &r.Selectors[i])
	}

	keys := slices.Collect(maps.Keys(r.Properties))
	sort.Sort(natural.StringSlice(keys))
	for _, k := range keys {
		tw.TextBlock(depth+1, k, r.Properties[k])
	}
}

func (tw treeWriter) selector(depth int, sel *Selector) {
	tw.TextBlock(depth, "selector", sel.Raw)
	if ct, ok := sel.Cascade(); ok {
		tw.Line(depth+1, "pseudo-element: %s (%s, internal=%t)", sel.Pseudo, ct, sel.Pseudo.Internal())
	}

	classes := make([]string, 0, len(sel.Classes))
	for _, c := range sel.Classes {
		classes = append(classes, c.String())
	}
	tw.List(depth+1, "classes", classes)
	tw.List(depth+1, "structural", sel.Structural)
	if !sel.States.Empty() {
		tw.Line(depth+1, "states: %s", sel.States)
	}

	for _, ts := range sel.Types {
		switch {
		case ts.Namespace.Any:
			tw.Line(depth+1, "type: *|%s", ts.Name)
		default:
			tw.Line(depth+1, "type: {%s}%s", ts.Namespace.URL, ts.Name)
		}
	}
	for _, a := range sel.Attributes {
		tw.Line(depth+1, "attribute: %s%s%q case=%s shareable=%t", a.Selector.Name, a.Operator, a.Value, a.Selector.Case, a.Shareable)
	}
	tw.Line(depth+1, "shareable: %t", sel.Shareable)
}
