// Package css scans stylesheets and compiles their selectors, resolving
// pseudo-classes, pseudo-elements and namespaces through selector.Parser.
package css

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
	"go.uber.org/zap"

	"pseudosel/namespace"
	"pseudosel/pseudo"
	"pseudosel/selector"
)

// Options configure how stylesheets are scanned.
type Options struct {
	Origin     selector.Origin
	Catalog    *pseudo.Catalog        // nil means the built-in catalog
	Sharing    selector.SharingPolicy // nil disables style sharing
	Namespaces *namespace.Table       // seeds every parse, never modified
}

// Parser parses CSS stylesheets into compiled rules.
type Parser struct {
	log  *zap.Logger
	opts Options
}

// NewParser creates a new CSS parser.
func NewParser(log *zap.Logger, opts Options) *Parser {
	if log == nil {
		log = zap.NewNop()
	}
	return &Parser{log: log.Named("css-parser"), opts: opts}
}

// parseState is owned by a single Parse call.
type parseState struct {
	sheet   *Stylesheet
	host    *selector.Parser
	sawRule bool
}

// Parse parses CSS text into a Stylesheet. Each call gets its own namespace
// table, so a Parser may be used from several goroutines.
// The optional source parameter identifies what's being parsed (for debug logging).
func (p *Parser) Parse(data []byte, source ...string) *Stylesheet {
	ns := namespace.NewTable()
	if p.opts.Namespaces != nil {
		ns = p.opts.Namespaces.Clone()
	}
	st := &parseState{
		sheet: &Stylesheet{
			Origin:     p.opts.Origin,
			Namespaces: ns,
			Rules:      make([]Rule, 0),
			Warnings:   make([]string, 0),
		},
		host: selector.NewParser(p.log,
			selector.WithCatalog(p.opts.Catalog),
			selector.WithOrigin(p.opts.Origin),
			selector.WithNamespaces(ns),
			selector.WithSharing(p.opts.Sharing),
		),
	}

	if len(source) > 0 && source[0] != "" {
		p.log.Debug("Parsing CSS", zap.String("source", source[0]), zap.Int("bytes", len(data)), zap.Stringer("origin", p.opts.Origin))
	}

	input := parse.NewInput(bytes.NewReader(data))
	parser := css.NewParser(input, false)

	for {
		start := parser.Offset()
		gt, _, tok := parser.Next()

		switch gt {
		case css.ErrorGrammar:
			if err := parser.Err(); err != nil && !errors.Is(err, io.EOF) {
				p.log.Debug("CSS parse error", zap.Error(err))
			}
			return st.sheet

		case css.BeginAtRuleGrammar:
			atRule := strings.ToLower(string(tok))
			if atRule == "@media" {
				query := joinTokens(parser.Values())
				n := p.parseMediaBlock(parser, st, data, query)
				p.log.Debug("Parsed @media block", zap.String("query", query), zap.Int("rules", n))
			} else {
				p.skipAtRuleBlock(parser)
				p.log.Debug("Skipping @-rule", zap.String("rule", atRule))
			}

		case css.AtRuleGrammar:
			atRule := strings.ToLower(string(tok))
			if atRule == "@namespace" {
				p.parseNamespace(parser.Values(), st)
			} else {
				p.log.Debug("Skipping @-rule", zap.String("rule", atRule))
			}

		case css.BeginRulesetGrammar:
			p.parseRuleset(parser, st, prelude(data, start, parser.Offset()), "")

		case css.QualifiedRuleGrammar:
			// selector without a block, nothing to attach it to
			st.warn("qualified rule without declarations: " + joinTokens(parser.Values()))
		}
	}
}

func (st *parseState) warn(msg string) {
	st.sheet.Warnings = append(st.sheet.Warnings, msg)
}

// parseNamespace handles @namespace [prefix] (url(...) | "...").
// Declarations after the first rule are invalid and ignored.
func (p *Parser) parseNamespace(tokens []css.Token, st *parseState) {
	if st.sawRule {
		st.warn("@namespace after style rules ignored")
		return
	}

	var prefix, url string
	var haveURL bool
	for _, t := range tokens {
		switch t.TokenType {
		case css.IdentToken:
			if prefix == "" && !haveURL {
				prefix = string(t.Data)
			}
		case css.StringToken:
			url, haveURL = unquote(string(t.Data)), true
		case css.URLToken:
			url, haveURL = extractURL(string(t.Data)), true
		}
	}
	if !haveURL {
		st.warn("@namespace without URL ignored")
		return
	}
	st.sheet.Namespaces.Declare(prefix, namespace.URL(url))
	p.log.Debug("Parsed @namespace", zap.String("prefix", prefix), zap.String("url", url))
}

// extractURL strips url( ... ) around a URL token.
func extractURL(s string) string {
	s = strings.TrimPrefix(s, "url(")
	s = strings.TrimSuffix(s, ")")
	return unquote(strings.TrimSpace(s))
}

// prelude returns the source text between the end of the previous grammar
// and the '{' that opened a ruleset ending at end. Grammar values lose
// comments and whitespace inside brackets, selectors need both.
func prelude(src []byte, start, end int) string {
	end-- // '{'
	if start < 0 || end > len(src) || end < start {
		return ""
	}
	return string(src[start:end])
}

// parseRuleset compiles the selector list of a ruleset whose block was just
// opened and reads its declarations. A single invalid selector drops the
// whole rule.
func (p *Parser) parseRuleset(parser *css.Parser, st *parseState, list, media string) bool {
	st.sawRule = true
	props := p.parseDeclarations(parser)

	tokens, err := lexSelector(list)
	if err != nil {
		st.warn(fmt.Errorf("%w %q: %w", ErrInvalidSelector, strings.TrimSpace(list), err).Error())
		return false
	}
	parts := splitSelectorList(tokens)
	selectors := make([]Selector, 0, len(parts))
	for _, part := range parts {
		sel, err := compileTokens(st.host, part)
		if err != nil {
			st.warn(err.Error())
			p.log.Debug("Dropping rule", zap.String("selectors", sourceText(trimWhitespace(tokens))), zap.Error(err))
			return false
		}
		for _, a := range sel.Attributes {
			if !a.Shareable {
				p.log.Debug("Attribute selector disables style sharing", zap.String("selector", sel.Raw), zap.String("attribute", a.Selector.Name))
			}
		}
		selectors = append(selectors, sel)
	}

	st.sheet.Rules = append(st.sheet.Rules, Rule{
		Selectors:  selectors,
		Properties: props,
		Media:      media,
	})
	return true
}

// parseDeclarations parses property declarations until EndRulesetGrammar.
func (p *Parser) parseDeclarations(parser *css.Parser) map[string]string {
	props := make(map[string]string)

	for {
		gt, _, data := parser.Next()

		switch gt {
		case css.ErrorGrammar, css.EndRulesetGrammar:
			return props

		case css.DeclarationGrammar:
			propName := strings.ToLower(string(data))
			values := parser.Values()
			if len(values) > 0 {
				props[propName] = joinTokens(values)
			}

		case css.CustomPropertyGrammar:
			// CSS custom properties (--var) - skip for now
			continue
		}
	}
}

// joinTokens rebuilds text from tokens collapsing whitespace runs.
func joinTokens(tokens []css.Token) string {
	var parts []string
	for _, t := range tokens {
		if t.TokenType != css.WhitespaceToken {
			parts = append(parts, string(t.Data))
		} else if len(parts) > 0 {
			parts = append(parts, " ")
		}
	}
	return strings.TrimSpace(strings.Join(parts, ""))
}

// skipAtRuleBlock skips tokens until the matching end of an @-rule block.
func (p *Parser) skipAtRuleBlock(parser *css.Parser) {
	depth := 1
	for depth > 0 {
		gt, _, _ := parser.Next()
		switch gt {
		case css.ErrorGrammar:
			return
		case css.BeginAtRuleGrammar, css.BeginRulesetGrammar:
			depth++
		case css.EndAtRuleGrammar, css.EndRulesetGrammar:
			depth--
		}
	}
}

// parseMediaBlock parses rules inside an @media block and returns how many
// were kept.
func (p *Parser) parseMediaBlock(parser *css.Parser, st *parseState, src []byte, query string) int {
	var kept int
	for {
		start := parser.Offset()
		gt, _, _ := parser.Next()

		switch gt {
		case css.ErrorGrammar, css.EndAtRuleGrammar:
			return kept

		case css.BeginRulesetGrammar:
			if p.parseRuleset(parser, st, prelude(src, start, parser.Offset()), query) {
				kept++
			}

		case css.BeginAtRuleGrammar:
			p.skipAtRuleBlock(parser)
		}
	}
}

// unquote removes surrounding quotes from a string.
func unquote(s string) string {
	s = strings.TrimSpace(s)
	if len(s) < 2 {
		return s
	}
	if (s[0] == '"' && s[len(s)-1] == '"') ||
		(s[0] == '\'' && s[len(s)-1] == '\'') {
		return s[1 : len(s)-1]
	}
	return s
}
