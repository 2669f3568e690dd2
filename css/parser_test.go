package css_test

import (
	"maps"
	"strings"
	"sync"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"pseudosel/atom"
	"pseudosel/css"
	"pseudosel/element"
	"pseudosel/namespace"
	"pseudosel/pseudo"
	"pseudosel/selector"
	"pseudosel/sharing"
)

func TestParser_PseudoElementBefore(t *testing.T) {
	p := css.NewParser(zaptest.NewLogger(t), css.Options{})

	sheet := p.Parse([]byte(`p::before { content: "x"; }`))
	if len(sheet.Rules) != 1 {
		t.Fatalf("expected 1 rule, got %d (warnings %v)", len(sheet.Rules), sheet.Warnings)
	}

	sel := sheet.Rules[0].Selectors[0]
	if !sel.HasPseudo() || !sel.Pseudo.IsBeforeOrAfter() {
		t.Fatalf("expected ::before, got %q", sel.Pseudo)
	}
	if sel.Pseudo.String() != "::before" {
		t.Errorf("expected '::before', got %q", sel.Pseudo)
	}
	if ct, _ := sel.Cascade(); ct != pseudo.CascadeTypeEager {
		t.Errorf("expected eager cascade, got %v", ct)
	}
	if v, ok := sheet.Rules[0].Properties["content"]; !ok || v != `"x"` {
		t.Errorf("expected content '\"x\"', got %q", v)
	}
}

func TestParser_LegacySingleColon(t *testing.T) {
	p := css.NewParser(zap.NewNop(), css.Options{})

	sheet := p.Parse([]byte(`p:after { content: ""; } p:First-Letter { float: left; }`))
	if len(sheet.Rules) != 2 {
		t.Fatalf("expected 2 rules, got %d (warnings %v)", len(sheet.Rules), sheet.Warnings)
	}
	if got := sheet.Rules[0].Selectors[0].Pseudo.String(); got != "::after" {
		t.Errorf("expected '::after', got %q", got)
	}
	if got := sheet.Rules[1].Selectors[0].Pseudo.String(); got != "::first-letter" {
		t.Errorf("expected '::first-letter', got %q", got)
	}
	if ct, _ := sheet.Rules[1].Selectors[0].Cascade(); ct != pseudo.CascadeTypeLazy {
		t.Errorf("expected lazy cascade, got %v", ct)
	}
}

func TestParser_PseudoClasses(t *testing.T) {
	p := css.NewParser(zap.NewNop(), css.Options{})

	sheet := p.Parse([]byte(`a:hover, input:CHECKED:focus { color: red; }`))
	if len(sheet.Rules) != 1 {
		t.Fatalf("expected 1 rule, got %d", len(sheet.Rules))
	}
	rule := sheet.Rules[0]
	if len(rule.Selectors) != 2 {
		t.Fatalf("expected 2 selectors, got %d", len(rule.Selectors))
	}
	if rule.Selectors[0].States != element.StateHover {
		t.Errorf("expected hover state, got %v", rule.Selectors[0].States)
	}
	if want := element.StateChecked | element.StateFocus; rule.Selectors[1].States != want {
		t.Errorf("expected %v, got %v", want, rule.Selectors[1].States)
	}
	if rule.SelectorText() != "a:hover, input:CHECKED:focus" {
		t.Errorf("unexpected selector text %q", rule.SelectorText())
	}
}

func TestParser_InvalidSelectorDropsRule(t *testing.T) {
	p := css.NewParser(zap.NewNop(), css.Options{})

	sheet := p.Parse([]byte(`
p, a:bogus { color: red; }
span { color: blue; }
`))
	if len(sheet.Rules) != 1 {
		t.Fatalf("expected 1 rule, got %d", len(sheet.Rules))
	}
	if len(sheet.RulesBySelector("span")) != 1 {
		t.Error("expected 'span' rule to survive")
	}
	if len(sheet.RulesBySelector("p")) != 0 {
		t.Error("expected 'p' rule to be dropped with its list")
	}
	if len(sheet.Warnings) != 1 || !strings.Contains(sheet.Warnings[0], "invalid selector") {
		t.Errorf("expected one invalid selector warning, got %v", sheet.Warnings)
	}
}

func TestParser_InternalPseudoElementNeedsTrust(t *testing.T) {
	input := []byte(`::-moz-table-cell { display: block; }`)

	author := css.NewParser(zap.NewNop(), css.Options{Origin: selector.OriginAuthor}).Parse(input)
	if len(author.Rules) != 0 {
		t.Errorf("author sheet: expected rule to be dropped, got %d", len(author.Rules))
	}

	ua := css.NewParser(zap.NewNop(), css.Options{Origin: selector.OriginUserAgent}).Parse(input)
	if len(ua.Rules) != 1 {
		t.Fatalf("user-agent sheet: expected 1 rule, got %d (warnings %v)", len(ua.Rules), ua.Warnings)
	}
	sel := ua.Rules[0].Selectors[0]
	if !sel.Pseudo.Internal() {
		t.Error("expected internal pseudo-element")
	}
	if ct, _ := sel.Cascade(); ct != pseudo.CascadeTypePrecomputed {
		t.Errorf("expected precomputed cascade, got %v", ct)
	}
}

func TestParser_CustomCatalog(t *testing.T) {
	cat, err := pseudo.NewCatalog([]pseudo.Entry{
		pseudo.EntryFor(":before", false),
		pseudo.EntryFor(":marker", false),
	})
	if err != nil {
		t.Fatalf("NewCatalog() error = %v", err)
	}
	p := css.NewParser(zap.NewNop(), css.Options{Catalog: cat})

	sheet := p.Parse([]byte(`li::marker { color: red; } p::after { color: blue; }`))
	if len(sheet.Rules) != 1 {
		t.Fatalf("expected 1 rule, got %d", len(sheet.Rules))
	}
	if got := sheet.Rules[0].Selectors[0].Pseudo.String(); got != "::marker" {
		t.Errorf("expected '::marker', got %q", got)
	}
}

func TestParser_Namespaces(t *testing.T) {
	p := css.NewParser(zap.NewNop(), css.Options{})

	sheet := p.Parse([]byte(`
@namespace url(http://www.w3.org/1999/xhtml);
@namespace svg "http://www.w3.org/2000/svg";
svg|rect, p { fill: none; }
math|mi { color: red; }
`))
	if len(sheet.Rules) != 1 {
		t.Fatalf("expected 1 rule, got %d (warnings %v)", len(sheet.Rules), sheet.Warnings)
	}
	sels := sheet.Rules[0].Selectors
	if got := sels[0].Types[0].Namespace.URL; got != namespace.SVG {
		t.Errorf("expected svg namespace, got %q", got)
	}
	if got := sels[1].Types[0].Namespace.URL; got != namespace.XHTML {
		t.Errorf("expected default xhtml namespace, got %q", got)
	}
	if len(sheet.Warnings) != 1 || !strings.Contains(sheet.Warnings[0], "math") {
		t.Errorf("expected warning about unknown prefix, got %v", sheet.Warnings)
	}
}

func TestParser_NamespaceAfterRulesIgnored(t *testing.T) {
	p := css.NewParser(zap.NewNop(), css.Options{})

	sheet := p.Parse([]byte(`
p { color: red; }
@namespace svg url(http://www.w3.org/2000/svg);
svg|rect { fill: none; }
`))
	if len(sheet.Rules) != 1 {
		t.Fatalf("expected 1 rule, got %d", len(sheet.Rules))
	}
	if _, ok := sheet.Namespaces.ForPrefix(svgPrefix()); ok {
		t.Error("late @namespace must not be declared")
	}
	if len(sheet.Warnings) != 2 {
		t.Errorf("expected 2 warnings, got %v", sheet.Warnings)
	}
}

func TestParser_SeedNamespacesUntouched(t *testing.T) {
	seed := namespace.NewTable()
	seed.Declare("svg", namespace.SVG)
	p := css.NewParser(zap.NewNop(), css.Options{Namespaces: seed})

	sheet := p.Parse([]byte(`
@namespace url(http://www.w3.org/1999/xhtml);
svg|circle { fill: none; }
`))
	if len(sheet.Rules) != 1 {
		t.Fatalf("expected 1 rule, got %d (warnings %v)", len(sheet.Rules), sheet.Warnings)
	}
	if _, ok := seed.Default(); ok {
		t.Error("parse must not declare into the seed table")
	}
	if def, _ := sheet.Namespaces.Default(); def != namespace.XHTML {
		t.Errorf("expected stylesheet default xhtml, got %q", def)
	}
}

func TestParser_AttributeSharing(t *testing.T) {
	p := css.NewParser(zap.NewNop(), css.Options{Sharing: sharing.Default()})

	tests := []struct {
		input     string
		shareable bool
	}{
		{`[hidden] { display: none; }`, true},
		{`td[nowrap] { white-space: nowrap; }`, true},
		{`div[align=left] { text-align: left; }`, true},
		{`div[align="CENTER" i] { text-align: center; }`, true},
		{`div[align=center i] { text-align: center; }`, true},
		{`div[align=CENTER i] { text-align: center; }`, true},
		{`div[align=CENTER/**/i] { text-align: center; }`, true},
		{`div[ align = right ] { text-align: right; }`, true},
		{`div[align="CENTER"] { text-align: center; }`, false},
		{`div[align=justify] { text-align: justify; }`, false},
		{`p[title] { color: red; }`, false},
		{`p[class~=x] { color: red; }`, false},
		{`p { color: red; }`, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			sheet := p.Parse([]byte(tt.input))
			if len(sheet.Rules) != 1 {
				t.Fatalf("expected 1 rule, got %d (warnings %v)", len(sheet.Rules), sheet.Warnings)
			}
			if got := sheet.Rules[0].Selectors[0].Shareable; got != tt.shareable {
				t.Errorf("expected shareable=%t, got %t", tt.shareable, got)
			}
		})
	}
}

func TestParser_NoSharingPolicy(t *testing.T) {
	p := css.NewParser(zap.NewNop(), css.Options{})

	sheet := p.Parse([]byte(`[hidden] { display: none; }`))
	if len(sheet.Rules) != 1 {
		t.Fatalf("expected 1 rule, got %d", len(sheet.Rules))
	}
	if sheet.Rules[0].Selectors[0].Shareable {
		t.Error("expected attribute selectors to disable sharing without a policy")
	}
}

func TestParser_MediaBlock(t *testing.T) {
	p := css.NewParser(zap.NewNop(), css.Options{})

	sheet := p.Parse([]byte(`
@media screen and (min-width: 10em) {
  p::first-line { font-weight: bold; }
  a:bogus { color: red; }
}
@font-face { font-family: x; }
h1 { margin: 0; }
`))
	if len(sheet.Rules) != 2 {
		t.Fatalf("expected 2 rules, got %d (warnings %v)", len(sheet.Rules), sheet.Warnings)
	}
	if sheet.Rules[0].Media == "" {
		t.Error("expected first rule to carry its media query")
	}
	if !strings.HasPrefix(sheet.Rules[0].Media, "screen") {
		t.Errorf("unexpected media query %q", sheet.Rules[0].Media)
	}
	if sheet.Rules[1].Media != "" {
		t.Errorf("expected top-level h1 rule, got media %q", sheet.Rules[1].Media)
	}
}

func TestParser_SourceOrderPreserved(t *testing.T) {
	p := css.NewParser(zap.NewNop(), css.Options{})

	sheet := p.Parse([]byte(`b { x: 1; } a { x: 2; } c { x: 3; }`))
	var got []string
	for _, r := range sheet.Rules {
		got = append(got, r.SelectorText())
	}
	if strings.Join(got, ",") != "b,a,c" {
		t.Errorf("expected source order b,a,c got %v", got)
	}
}

func TestParser_Comments(t *testing.T) {
	p := css.NewParser(zap.NewNop(), css.Options{})

	sheet := p.Parse([]byte(`/* head */ p /* mid */ span::after { content: ""; /* tail */ }`))
	if len(sheet.Rules) != 1 {
		t.Fatalf("expected 1 rule, got %d (warnings %v)", len(sheet.Rules), sheet.Warnings)
	}
	if !sheet.Rules[0].Selectors[0].HasPseudo() {
		t.Error("expected pseudo-element to survive comments")
	}
}

func TestParser_AttributeFlags(t *testing.T) {
	p := css.NewParser(zap.NewNop(), css.Options{Sharing: sharing.Default()})

	tests := []struct {
		input string
		raw   string
		value string
		cs    selector.CaseSensitivity
	}{
		{`[align=center i] {}`, "[align=center i]", "center", selector.CaseSensitivityInsensitive},
		{`[class~=x s] {}`, "[class~=x s]", "x", selector.CaseSensitivitySensitive},
		{`[lang |= "en"  I] {}`, `[lang |= "en" I]`, "en", selector.CaseSensitivityInsensitive},
		{`[title=a/* c */s] {}`, "[title=a/**/s]", "a", selector.CaseSensitivitySensitive},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			sheet := p.Parse([]byte(tt.input))
			if len(sheet.Rules) != 1 {
				t.Fatalf("expected 1 rule, got %d (warnings %v)", len(sheet.Rules), sheet.Warnings)
			}
			sel := sheet.Rules[0].Selectors[0]
			if sel.Raw != tt.raw {
				t.Errorf("Raw = %q, want %q", sel.Raw, tt.raw)
			}
			a := sel.Attributes[0]
			if a.Value != tt.value || a.Selector.Case != tt.cs {
				t.Errorf("attribute value=%q case=%v, want %q %v", a.Value, a.Selector.Case, tt.value, tt.cs)
			}
		})
	}
}

func TestParser_CommentSeparatesTokens(t *testing.T) {
	p := css.NewParser(zap.NewNop(), css.Options{})

	sheet := p.Parse([]byte(`a/**/b { color: red; } a /* x */ b { color: blue; }`))
	if len(sheet.Rules) != 1 {
		t.Fatalf("expected 1 rule, got %d (warnings %v)", len(sheet.Rules), sheet.Warnings)
	}
	if got := sheet.Rules[0].Selectors[0]; got.Raw != "a b" || len(got.Types) != 2 {
		t.Errorf("descendant selector = %q with %d types", got.Raw, len(got.Types))
	}
	if len(sheet.Warnings) != 1 || !strings.Contains(sheet.Warnings[0], `"a/**/b"`) {
		t.Errorf("expected a/**/b to be rejected, got %v", sheet.Warnings)
	}
	if out := sheet.String(); strings.Contains(out, "ab {") {
		t.Errorf("rewritten selector leaked into output:\n%s", out)
	}
}

func TestParser_EscapedSelectors(t *testing.T) {
	p := css.NewParser(zap.NewNop(), css.Options{})

	sheet := p.Parse([]byte(`.a\,b, p::before { color: red; } p::bef\6fre { content: ""; } p:HOV\45R { x: y; }`))
	if len(sheet.Rules) != 3 {
		t.Fatalf("expected 3 rules, got %d (warnings %v)", len(sheet.Rules), sheet.Warnings)
	}

	list := sheet.Rules[0].Selectors
	if len(list) != 2 || list[0].Raw != `.a\,b` || list[1].Raw != "p::before" {
		t.Errorf("selector list = %q", sheet.Rules[0].SelectorText())
	}
	if pe := sheet.Rules[1].Selectors[0].Pseudo; pe.String() != "::before" {
		t.Errorf("escaped pseudo-element resolved to %q", pe)
	}
	if raw := sheet.Rules[1].Selectors[0].Raw; raw != `p::bef\6fre` {
		t.Errorf("Raw = %q, escapes must be kept as written", raw)
	}
	if states := sheet.Rules[2].Selectors[0].States; states != element.StateHover {
		t.Errorf("escaped pseudo-class states = %v", states)
	}
}

func TestParser_DeclarationValues(t *testing.T) {
	p := css.NewParser(zap.NewNop(), css.Options{})

	sheet := p.Parse([]byte(`p { Margin: 0  auto; width: calc(100% - 2px); font-family: "A B",  serif; --x: 1; }`))
	if len(sheet.Rules) != 1 {
		t.Fatalf("expected 1 rule, got %d", len(sheet.Rules))
	}
	want := map[string]string{
		"margin":      "0 auto",
		"width":       "calc(100% - 2px)",
		"font-family": `"A B",serif`,
	}
	if got := sheet.Rules[0].Properties; !maps.Equal(got, want) {
		t.Errorf("Properties = %q, want %q", got, want)
	}
}

func TestRulesByCascade(t *testing.T) {
	p := css.NewParser(zap.NewNop(), css.Options{Origin: selector.OriginUserAgent})

	sheet := p.Parse([]byte(`
p::before { content: ""; }
p::first-line { color: red; }
::-moz-table-cell { display: block; }
p { color: blue; }
div, span::after { content: ""; }
`))
	if len(sheet.Rules) != 5 {
		t.Fatalf("expected 5 rules, got %d (warnings %v)", len(sheet.Rules), sheet.Warnings)
	}

	counts := map[pseudo.CascadeType]int{
		pseudo.CascadeTypeEager:       2,
		pseudo.CascadeTypeLazy:        1,
		pseudo.CascadeTypePrecomputed: 1,
	}
	for ct, want := range counts {
		if got := len(sheet.RulesByCascade(ct)); got != want {
			t.Errorf("RulesByCascade(%v) = %d rules, want %d", ct, got, want)
		}
	}
}

func TestParser_ConcurrentParse(t *testing.T) {
	p := css.NewParser(zap.NewNop(), css.Options{})

	inputs := []string{
		`@namespace svg url(http://www.w3.org/2000/svg); svg|rect { fill: none; }`,
		`@namespace svg url(http://www.w3.org/1998/Math/MathML); svg|mi { color: red; }`,
		`p::before { content: ""; }`,
	}

	var wg sync.WaitGroup
	errs := make(chan string, 64)
	for i := range 30 {
		wg.Go(func() {
			in := inputs[i%len(inputs)]
			sheet := p.Parse([]byte(in))
			if len(sheet.Rules) != 1 {
				errs <- in
			}
		})
	}
	wg.Wait()
	close(errs)
	for in := range errs {
		t.Errorf("concurrent parse of %q lost its rule", in)
	}
}

func TestStylesheet_WriteTo(t *testing.T) {
	p := css.NewParser(zap.NewNop(), css.Options{})

	sheet := p.Parse([]byte(`
a:hover { color: red; }
@media print { p { margin: 0; } p::after { content: ""; } }
`))

	want := "a:hover {\n  color: red;\n}\n" +
		"\n" +
		"@media print {\n  p {\n    margin: 0;\n  }\n\n  p::after {\n    content: \"\";\n  }\n}\n"
	if got := sheet.String(); got != want {
		t.Errorf("String() mismatch\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestStylesheet_WriteToNamespaces(t *testing.T) {
	p := css.NewParser(zap.NewNop(), css.Options{})

	sheet := p.Parse([]byte(`@namespace svg url(http://www.w3.org/2000/svg); svg|rect { fill: none; }`))

	want := "@namespace svg url(\"http://www.w3.org/2000/svg\");\n" +
		"\n" +
		"svg|rect {\n  fill: none;\n}\n"
	if got := sheet.String(); got != want {
		t.Errorf("String() mismatch\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestStylesheet_Dump(t *testing.T) {
	p := css.NewParser(zap.NewNop(), css.Options{Sharing: sharing.Default()})

	sheet := p.Parse([]byte(`td[nowrap]:hover::before { content: ""; } a:bogus { x: y; }`))
	dump := sheet.Dump()

	for _, want := range []string{
		"Stylesheet origin=author rules=1 warnings=1",
		"pseudo-element: ::before (eager, internal=false)",
		"classes: [:hover]",
		"states: hover",
		"shareable: true",
		"warning:",
	} {
		if !strings.Contains(dump, want) {
			t.Errorf("Dump() missing %q\n%s", want, dump)
		}
	}
}

func svgPrefix() atom.Atom {
	return atom.Intern("svg")
}
