package css

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"

	"pseudosel/atom"
	"pseudosel/selector"
)

// ErrInvalidSelector is returned for selectors that must be discarded.
var ErrInvalidSelector = errors.New("invalid selector")

// Tree-structural pseudo-classes are matched by the selector engine itself
// and never reach the host parser.
var structuralClasses = map[string]bool{
	"root":          true,
	"empty":         true,
	"first-child":   true,
	"last-child":    true,
	"only-child":    true,
	"first-of-type": true,
	"last-of-type":  true,
	"only-of-type":  true,
}

var structuralFunctions = map[string]bool{
	"not":              true,
	"nth-child":        true,
	"nth-last-child":   true,
	"nth-of-type":      true,
	"nth-last-of-type": true,
}

// Pseudo-elements from CSS 2 that may be written with a single colon.
var legacyPseudoElements = map[string]bool{
	"before":       true,
	"after":        true,
	"first-line":   true,
	"first-letter": true,
}

type token struct {
	tt   css.TokenType
	data string // identifiers and strings with escapes decoded
	text string // as written
	// a dropped comment was the only thing separating it from the
	// previous token
	glued bool
}

// lexSelector splits selector text into tokens, dropping comments and
// collapsing whitespace runs into a single " " token.
func lexSelector(raw string) ([]token, error) {
	l := css.NewLexer(parse.NewInputString(raw))
	var (
		tokens  []token
		comment bool
	)
	for {
		tt, b := l.Next()
		switch tt {
		case css.ErrorToken:
			if err := l.Err(); err != nil && err != io.EOF {
				return nil, err
			}
			return tokens, nil
		case css.CommentToken:
			comment = true
			continue
		case css.WhitespaceToken:
			comment = false
			if n := len(tokens); n > 0 && tokens[n-1].tt == css.WhitespaceToken {
				continue
			}
			tokens = append(tokens, token{tt: tt, data: " ", text: " "})
			continue
		}

		t := token{tt: tt, data: string(b), text: string(b)}
		switch tt {
		case css.IdentToken, css.FunctionToken, css.HashToken:
			t.data = unescape(t.text)
		case css.StringToken:
			t.data = unescape(unquote(t.text))
		}
		if n := len(tokens); comment && n > 0 && tokens[n-1].tt != css.WhitespaceToken {
			t.glued = true
		}
		comment = false
		tokens = append(tokens, t)
	}
}

// splitSelectorList splits tokens at top-level commas.
func splitSelectorList(tokens []token) [][]token {
	var (
		parts [][]token
		depth int
		start int
	)
	for i, t := range tokens {
		switch t.tt {
		case css.FunctionToken, css.LeftParenthesisToken, css.LeftBracketToken:
			depth++
		case css.RightParenthesisToken, css.RightBracketToken:
			if depth > 0 {
				depth--
			}
		case css.CommaToken:
			if depth == 0 {
				parts = append(parts, trimWhitespace(tokens[start:i]))
				start = i + 1
			}
		}
	}
	return append(parts, trimWhitespace(tokens[start:]))
}

func trimWhitespace(tokens []token) []token {
	for len(tokens) > 0 && tokens[0].tt == css.WhitespaceToken {
		tokens = tokens[1:]
	}
	for len(tokens) > 0 && tokens[len(tokens)-1].tt == css.WhitespaceToken {
		tokens = tokens[:len(tokens)-1]
	}
	return tokens
}

// sourceText renders tokens back to CSS, keeping escapes as written. An
// empty comment stands in for one that kept two tokens apart.
func sourceText(tokens []token) string {
	var sb strings.Builder
	for _, t := range tokens {
		if t.glued {
			sb.WriteString("/**/")
		}
		sb.WriteString(t.text)
	}
	return sb.String()
}

// unescape decodes CSS escapes: a backslash followed by up to six hex digits
// and one optional whitespace, or by any other character taken literally.
// An escaped newline, a line continuation inside strings, is dropped.
func unescape(s string) string {
	i := strings.IndexByte(s, '\\')
	if i < 0 {
		return s
	}
	var sb strings.Builder
	sb.Grow(len(s))
	sb.WriteString(s[:i])
	for i < len(s) {
		if s[i] != '\\' {
			sb.WriteByte(s[i])
			i++
			continue
		}
		i++
		if i == len(s) {
			sb.WriteRune(utf8.RuneError)
			break
		}

		j := i
		for j < len(s) && j-i < 6 && isHexDigit(s[j]) {
			j++
		}
		if j > i {
			n, _ := strconv.ParseUint(s[i:j], 16, 32)
			r := rune(n)
			if r == 0 || r > unicode.MaxRune || (r >= 0xD800 && r <= 0xDFFF) {
				r = utf8.RuneError
			}
			sb.WriteRune(r)
			i = j
			switch {
			case strings.HasPrefix(s[i:], "\r\n"):
				i += 2
			case i < len(s) && parse.IsWhitespace(s[i]):
				i++
			}
			continue
		}

		switch {
		case strings.HasPrefix(s[i:], "\r\n"):
			i += 2
		case s[i] == '\n' || s[i] == '\r' || s[i] == '\f':
			i++
		default:
			_, size := utf8.DecodeRuneInString(s[i:])
			sb.WriteString(s[i : i+size])
			i += size
		}
	}
	return sb.String()
}

func isHexDigit(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}

func lowerASCII(s string) string {
	return string(parse.ToLower([]byte(s)))
}

// compiler turns one complex selector into a Selector, asking the host
// parser about every name it meets. Any failure invalidates the selector.
type compiler struct {
	p      *selector.Parser
	tokens []token
	pos    int
	sel    Selector
	// set once a pseudo-element was seen, nothing may follow it
	closed bool
	// true at the start of a compound selector
	compoundStart bool
}

// compileSelector lexes and compiles a single complex selector.
func compileSelector(p *selector.Parser, raw string) (Selector, error) {
	tokens, err := lexSelector(raw)
	if err != nil {
		return Selector{}, fmt.Errorf("%w %q: %w", ErrInvalidSelector, raw, err)
	}
	return compileTokens(p, trimWhitespace(tokens))
}

func compileTokens(p *selector.Parser, tokens []token) (Selector, error) {
	raw := sourceText(tokens)
	if len(tokens) == 0 {
		return Selector{}, fmt.Errorf("%w: empty selector", ErrInvalidSelector)
	}
	c := &compiler{p: p, tokens: tokens, sel: Selector{Raw: raw, Shareable: true}, compoundStart: true}
	if err := c.run(); err != nil {
		return Selector{}, fmt.Errorf("%w %q: %w", ErrInvalidSelector, raw, err)
	}
	if c.compoundStart {
		return Selector{}, fmt.Errorf("%w %q: dangling combinator", ErrInvalidSelector, raw)
	}
	return c.sel, nil
}

func (c *compiler) peek(off int) (token, bool) {
	if c.pos+off >= len(c.tokens) {
		return token{}, false
	}
	return c.tokens[c.pos+off], true
}

func (c *compiler) next() (token, bool) {
	t, ok := c.peek(0)
	if ok {
		c.pos++
	}
	return t, ok
}

func isDelim(t token, d string) bool {
	return t.tt == css.DelimToken && t.data == d
}

func (c *compiler) run() error {
	// leading whitespace is not a combinator
	for t, ok := c.peek(0); ok && t.tt == css.WhitespaceToken; t, ok = c.peek(0) {
		c.pos++
	}

	for {
		t, ok := c.next()
		if !ok {
			return nil
		}
		if c.closed && !(t.tt == css.WhitespaceToken && c.pos == len(c.tokens)) {
			return errors.New("pseudo-element must be the last component")
		}

		switch {
		case t.tt == css.WhitespaceToken:
			if err := c.combinator(); err != nil {
				return err
			}
		case isDelim(t, ">"), isDelim(t, "+"), isDelim(t, "~"):
			if c.compoundStart {
				return fmt.Errorf("unexpected combinator %q", t.data)
			}
			c.skipWhitespace()
			c.compoundStart = true
		case t.tt == css.IdentToken, isDelim(t, "*"), isDelim(t, "|"):
			if !c.compoundStart {
				return fmt.Errorf("type selector %q inside compound", t.data)
			}
			if err := c.typeSelector(t); err != nil {
				return err
			}
		case isDelim(t, "."):
			n, ok := c.next()
			if !ok || n.tt != css.IdentToken {
				return errors.New("class selector without name")
			}
			c.compoundStart = false
		case t.tt == css.HashToken:
			c.compoundStart = false
		case t.tt == css.LeftBracketToken:
			if err := c.attribute(); err != nil {
				return err
			}
			c.compoundStart = false
		case t.tt == css.ColonToken:
			if err := c.pseudo(); err != nil {
				return err
			}
			c.compoundStart = false
		default:
			return fmt.Errorf("unexpected token %q", t.data)
		}
	}
}

func (c *compiler) skipWhitespace() {
	for t, ok := c.peek(0); ok && t.tt == css.WhitespaceToken; t, ok = c.peek(0) {
		c.pos++
	}
}

// combinator handles whitespace: either a descendant combinator or padding
// around an explicit one.
func (c *compiler) combinator() error {
	t, ok := c.peek(0)
	if !ok {
		return nil // trailing whitespace
	}
	if isDelim(t, ">") || isDelim(t, "+") || isDelim(t, "~") {
		return nil
	}
	if c.compoundStart {
		return errors.New("unexpected whitespace")
	}
	c.compoundStart = true
	return nil
}

// namespacePrefix consumes an optional "prefix|", "*|" or "|" and resolves
// it. first is the already consumed token.
func (c *compiler) namespacePrefix(first token) (selector.NamespaceConstraint, bool, token, error) {
	if isDelim(first, "|") {
		n, ok := c.next()
		if !ok {
			return selector.NamespaceConstraint{}, false, token{}, errors.New("missing name after '|'")
		}
		return selector.NamespaceConstraint{}, true, n, nil
	}
	if bar, ok := c.peek(0); ok && isDelim(bar, "|") {
		c.pos++
		n, ok := c.next()
		if !ok {
			return selector.NamespaceConstraint{}, false, token{}, errors.New("missing name after '|'")
		}
		if isDelim(first, "*") {
			return selector.NamespaceConstraint{Any: true}, true, n, nil
		}
		url, found := c.p.NamespaceForPrefix(atom.Intern(first.data))
		if !found {
			return selector.NamespaceConstraint{}, false, token{}, fmt.Errorf("unknown namespace prefix %q", first.data)
		}
		return selector.NamespaceConstraint{URL: url}, true, n, nil
	}
	return selector.NamespaceConstraint{}, false, first, nil
}

func (c *compiler) typeSelector(first token) error {
	nc, explicit, name, err := c.namespacePrefix(first)
	if err != nil {
		return err
	}
	if name.tt != css.IdentToken && !isDelim(name, "*") {
		return fmt.Errorf("invalid type selector %q", name.data)
	}
	if !explicit {
		if def, ok := c.p.DefaultNamespace(); ok {
			nc = selector.NamespaceConstraint{URL: def}
		} else {
			nc = selector.NamespaceConstraint{Any: true}
		}
	}
	c.sel.Types = append(c.sel.Types, TypeSelector{Name: name.data, Namespace: nc})
	c.compoundStart = false
	return nil
}

func (c *compiler) pseudo() error {
	t, ok := c.next()
	if !ok {
		return errors.New("missing pseudo name")
	}

	if t.tt == css.ColonToken {
		n, ok := c.next()
		if !ok || n.tt != css.IdentToken {
			return errors.New("unsupported pseudo-element syntax")
		}
		return c.pseudoElement(n.data)
	}

	switch t.tt {
	case css.IdentToken:
		name := lowerASCII(t.data)
		switch {
		case structuralClasses[name]:
			c.sel.Structural = append(c.sel.Structural, name)
			return nil
		case legacyPseudoElements[name]:
			return c.pseudoElement(t.data)
		}
		pc, err := c.p.ParseNonTSPseudoClass(t.data)
		if err != nil {
			return err
		}
		c.sel.Classes = append(c.sel.Classes, pc)
		c.sel.States = c.sel.States.Union(c.p.PseudoClassStateFlag(pc))
		return nil
	case css.FunctionToken:
		name := lowerASCII(strings.TrimSuffix(t.data, "("))
		if !structuralFunctions[name] {
			return fmt.Errorf("unsupported functional pseudo-class %q", name)
		}
		args, err := c.balanced()
		if err != nil {
			return err
		}
		c.sel.Structural = append(c.sel.Structural, name+"("+strings.TrimSpace(args)+")")
		return nil
	}
	return fmt.Errorf("unexpected token %q after ':'", t.data)
}

func (c *compiler) pseudoElement(name string) error {
	if c.sel.HasPseudo() {
		return errors.New("more than one pseudo-element")
	}
	pe, err := c.p.ParsePseudoElement(name)
	if err != nil {
		return err
	}
	c.sel.Pseudo = pe
	c.closed = true
	return nil
}

// balanced consumes tokens up to the parenthesis closing an already
// consumed function token and returns them as text.
func (c *compiler) balanced() (string, error) {
	start := c.pos
	depth := 1
	for {
		t, ok := c.next()
		if !ok {
			return "", errors.New("unclosed parenthesis")
		}
		switch t.tt {
		case css.FunctionToken, css.LeftParenthesisToken:
			depth++
		case css.RightParenthesisToken:
			depth--
			if depth == 0 {
				return sourceText(c.tokens[start : c.pos-1]), nil
			}
		}
	}
}

var attrOperators = map[css.TokenType]string{
	css.IncludeMatchToken:   "~=",
	css.DashMatchToken:      "|=",
	css.PrefixMatchToken:    "^=",
	css.SuffixMatchToken:    "$=",
	css.SubstringMatchToken: "*=",
}

// attribute compiles the inside of [...] and asks the sharing policy about
// it while the node is being built.
func (c *compiler) attribute() error {
	c.skipWhitespace()
	first, ok := c.next()
	if !ok {
		return errors.New("unclosed attribute selector")
	}
	nc, _, name, err := c.namespacePrefix(first)
	if err != nil {
		return err
	}
	if name.tt != css.IdentToken {
		return fmt.Errorf("invalid attribute name %q", name.data)
	}

	attr := Attribute{
		Selector: selector.AttrSelector{
			Name:      name.data,
			LowerName: atom.Intern(lowerASCII(name.data)),
			Namespace: nc,
		},
	}

	c.skipWhitespace()
	t, ok := c.next()
	if !ok {
		return errors.New("unclosed attribute selector")
	}
	if t.tt == css.RightBracketToken {
		attr.Shareable = c.p.AttrExistsIsShareable(&attr.Selector)
		c.addAttribute(attr)
		return nil
	}

	switch {
	case isDelim(t, "="):
		attr.Operator = "="
	case attrOperators[t.tt] != "":
		attr.Operator = attrOperators[t.tt]
	default:
		return fmt.Errorf("invalid attribute operator %q", t.data)
	}

	c.skipWhitespace()
	v, ok := c.next()
	switch {
	case !ok:
		return errors.New("missing attribute value")
	case v.tt == css.IdentToken, v.tt == css.StringToken:
		attr.Value = v.data
	default:
		return fmt.Errorf("invalid attribute value %q", v.data)
	}

	c.skipWhitespace()
	t, ok = c.next()
	if ok && t.tt == css.IdentToken {
		switch lowerASCII(t.data) {
		case "i":
			attr.Selector.Case = selector.CaseSensitivityInsensitive
		case "s":
			attr.Selector.Case = selector.CaseSensitivitySensitive
		default:
			return fmt.Errorf("invalid attribute flag %q", t.data)
		}
		c.skipWhitespace()
		t, ok = c.next()
	}
	if !ok || t.tt != css.RightBracketToken {
		return errors.New("unclosed attribute selector")
	}

	if attr.Operator == "=" {
		attr.Shareable = c.p.AttrEqualsIsShareable(&attr.Selector, attr.Value)
	}
	c.addAttribute(attr)
	return nil
}

func (c *compiler) addAttribute(attr Attribute) {
	c.sel.Attributes = append(c.sel.Attributes, attr)
	if !attr.Shareable {
		c.sel.Shareable = false
	}
}
