package selector_test

import (
	"errors"
	"testing"

	"go.uber.org/zap/zaptest"

	"pseudosel/atom"
	"pseudosel/element"
	"pseudosel/namespace"
	"pseudosel/pseudo"
	"pseudosel/selector"
)

func testCatalog(t *testing.T) *pseudo.Catalog {
	t.Helper()
	cat, err := pseudo.NewCatalog([]pseudo.Entry{
		pseudo.EntryFor(":before", false),
		pseudo.EntryFor(":after", false),
		pseudo.EntryFor(":-internal-box", true),
		pseudo.EntryFor(":placeholder", false),
	})
	if err != nil {
		t.Fatalf("NewCatalog() error = %v", err)
	}
	return cat
}

func TestParser_EndToEnd(t *testing.T) {
	cat := testCatalog(t)
	log := zaptest.NewLogger(t)

	trusted := selector.NewParser(log, selector.WithCatalog(cat), selector.WithOrigin(selector.OriginUserAgent))
	untrusted := selector.NewParser(log, selector.WithCatalog(cat), selector.WithOrigin(selector.OriginAuthor))

	for _, p := range []*selector.Parser{trusted, untrusted} {
		pe, err := p.ParsePseudoElement("before")
		if err != nil {
			t.Fatalf("%v: ParsePseudoElement(before) error = %v", p.Origin(), err)
		}
		if pe.ID() != atom.Before {
			t.Errorf("%v: before resolved to %q", p.Origin(), pe.Text())
		}
		if ct := p.CascadeType(pe); ct != pseudo.CascadeTypeEager {
			t.Errorf("%v: CascadeType(before) = %v, want eager", p.Origin(), ct)
		}
	}

	box, err := trusted.ParsePseudoElement("-internal-box")
	if err != nil {
		t.Fatalf("trusted ParsePseudoElement(-internal-box) error = %v", err)
	}
	if ct := trusted.CascadeType(box); ct != pseudo.CascadeTypePrecomputed {
		t.Errorf("CascadeType(-internal-box) = %v, want precomputed", ct)
	}

	_, err = untrusted.ParsePseudoElement("-internal-box")
	if !errors.Is(err, pseudo.ErrNoMatch) || !errors.Is(err, selector.ErrParse) {
		t.Errorf("untrusted ParsePseudoElement(-internal-box) error = %v, want ErrParse wrapping ErrNoMatch", err)
	}

	pc, err := trusted.ParseNonTSPseudoClass("HOVER")
	if err != nil {
		t.Fatalf("ParseNonTSPseudoClass(HOVER) error = %v", err)
	}
	if pc != pseudo.ClassHover {
		t.Errorf("HOVER resolved to %v", pc)
	}
	if got := trusted.PseudoClassStateFlag(pc); got != element.StateHover {
		t.Errorf("state flag = %v, want hover", got)
	}
}

func TestParser_PseudoClassErrors(t *testing.T) {
	p := selector.NewParser(nil)

	_, err := p.ParseNonTSPseudoClass("not-a-real-pseudo-class")
	if !errors.Is(err, selector.ErrParse) {
		t.Errorf("error = %v, want ErrParse", err)
	}
	if !errors.Is(err, pseudo.ErrNoMatch) {
		t.Errorf("error = %v, want ErrNoMatch", err)
	}
}

func TestParser_Defaults(t *testing.T) {
	p := selector.NewParser(nil)

	if p.Origin() != selector.OriginAuthor {
		t.Errorf("default origin = %v", p.Origin())
	}
	if p.Catalog() != pseudo.Default() {
		t.Error("default catalog not used")
	}
	if _, ok := p.DefaultNamespace(); ok {
		t.Error("default namespace present without declaration")
	}
	if p.AttrExistsIsShareable(&selector.AttrSelector{Name: "hidden", LowerName: atom.Intern("hidden")}) {
		t.Error("sharing should be disabled by default")
	}

	// built-in internal pseudo-elements are hidden from authors
	if _, err := p.ParsePseudoElement("-moz-table-cell"); err == nil {
		t.Error("author parser resolved an anonymous box")
	}
	ua := selector.NewParser(nil, selector.WithOrigin(selector.OriginUserAgent))
	if _, err := ua.ParsePseudoElement("-moz-table-cell"); err != nil {
		t.Errorf("user agent parser failed: %v", err)
	}
	user := selector.NewParser(nil, selector.WithOrigin(selector.OriginUser))
	if _, err := user.ParsePseudoElement("-moz-table-cell"); err == nil {
		t.Error("user parser resolved an anonymous box")
	}
}

func TestParser_Namespaces(t *testing.T) {
	tbl := namespace.NewTable()
	tbl.Declare("", namespace.XHTML)
	tbl.Declare("svg", namespace.SVG)

	p := selector.NewParser(zaptest.NewLogger(t), selector.WithNamespaces(tbl))

	if url, ok := p.DefaultNamespace(); !ok || url != namespace.XHTML {
		t.Errorf("DefaultNamespace() = %q, %v", url, ok)
	}
	if url, ok := p.NamespaceForPrefix(atom.Intern("svg")); !ok || url != namespace.SVG {
		t.Errorf("NamespaceForPrefix(svg) = %q, %v", url, ok)
	}
	if url, ok := p.NamespaceForPrefix(atom.Intern("unregistered")); ok {
		t.Errorf("NamespaceForPrefix(unregistered) = %q, want absent", url)
	}
}

func TestParser_SharingIsDelegated(t *testing.T) {
	hidden := atom.Intern("hidden")

	var existsCalls, equalsCalls int
	policy := selector.SharingFuncs{
		Exists: func(sel *selector.AttrSelector) bool {
			existsCalls++
			return sel.LowerName == hidden
		},
		Equals: func(sel *selector.AttrSelector, value string) bool {
			equalsCalls++
			return value == "left"
		},
	}
	p := selector.NewParser(nil, selector.WithSharing(policy))

	attr := &selector.AttrSelector{Name: "hidden", LowerName: hidden}
	if !p.AttrExistsIsShareable(attr) {
		t.Error("[hidden] should be shareable")
	}
	if p.AttrEqualsIsShareable(attr, "right") {
		t.Error("[hidden=right] should not be shareable")
	}
	if !p.AttrEqualsIsShareable(attr, "left") {
		t.Error("[hidden=left] should be shareable")
	}
	if existsCalls != 1 || equalsCalls != 2 {
		t.Errorf("calls exists=%d equals=%d", existsCalls, equalsCalls)
	}

	// answering must not change the descriptor
	if attr.Name != "hidden" || attr.Case != selector.CaseSensitivityDefault {
		t.Error("descriptor mutated")
	}
}

func TestParser_EachPseudoElement(t *testing.T) {
	cat := testCatalog(t)
	p := selector.NewParser(nil, selector.WithCatalog(cat))

	var visited []pseudo.Element
	p.EachPseudoElement(func(pe pseudo.Element) {
		visited = append(visited, pe)
	})
	if len(visited) != cat.Len() {
		t.Fatalf("visited %d, want %d", len(visited), cat.Len())
	}

	beforeAfter := 0
	for _, pe := range visited {
		if p.PseudoIsBeforeOrAfter(pe) {
			beforeAfter++
		}
	}
	if beforeAfter != 2 {
		t.Errorf("before/after count = %d", beforeAfter)
	}
}

func TestOrigin_Trusted(t *testing.T) {
	tests := []struct {
		name    string
		trusted bool
	}{
		{"author", false},
		{"user", false},
		{"user-agent", true},
	}
	for _, tt := range tests {
		o, err := selector.ParseOrigin(tt.name)
		if err != nil {
			t.Fatalf("ParseOrigin(%q) error = %v", tt.name, err)
		}
		if o.Trusted() != tt.trusted {
			t.Errorf("%q Trusted() = %v", tt.name, o.Trusted())
		}
	}
	if _, err := selector.ParseOrigin("browser"); !errors.Is(err, selector.ErrInvalidOrigin) {
		t.Errorf("ParseOrigin(browser) error = %v", err)
	}

	names := selector.OriginNames()
	if len(names) != len(tests) {
		t.Fatalf("OriginNames() = %v", names)
	}
	for i, tt := range tests {
		if names[i] != tt.name {
			t.Errorf("OriginNames()[%d] = %q, want %q", i, names[i], tt.name)
		}
	}
}
