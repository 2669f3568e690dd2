// Package selector provides the host side of a generic selector parser:
// resolving pseudo-class, pseudo-element and namespace names and answering
// style-sharing queries for attribute selectors.
package selector

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"pseudosel/atom"
	"pseudosel/element"
	"pseudosel/namespace"
	"pseudosel/pseudo"
)

// ErrParse is returned for any name the parser does not recognize. It wraps
// pseudo.ErrNoMatch. Callers discard the whole enclosing selector.
var ErrParse = errors.New("unrecognized selector component")

// Parser answers the questions a generic selector parser asks its host while
// building a selector. A Parser is bound to one stylesheet parse.
type Parser struct {
	log        *zap.Logger
	catalog    *pseudo.Catalog
	origin     Origin
	namespaces NamespaceSource
	sharing    SharingPolicy
}

// Option configures a Parser.
type Option func(*Parser)

// WithCatalog replaces the built-in pseudo-element catalog.
func WithCatalog(c *pseudo.Catalog) Option {
	return func(p *Parser) {
		if c != nil {
			p.catalog = c
		}
	}
}

// WithOrigin sets the origin of the stylesheet being parsed.
func WithOrigin(o Origin) Option {
	return func(p *Parser) {
		p.origin = o
	}
}

// WithNamespaces sets the namespace context.
func WithNamespaces(ns NamespaceSource) Option {
	return func(p *Parser) {
		if ns != nil {
			p.namespaces = ns
		}
	}
}

// WithSharing sets the style-sharing policy.
func WithSharing(sp SharingPolicy) Option {
	return func(p *Parser) {
		if sp != nil {
			p.sharing = sp
		}
	}
}

// NewParser creates a parser for author stylesheets with the built-in
// catalog, an empty namespace context and style sharing disabled unless
// options say otherwise.
func NewParser(log *zap.Logger, opts ...Option) *Parser {
	if log == nil {
		log = zap.NewNop()
	}
	p := &Parser{
		log:        log.Named("selector-parser"),
		catalog:    pseudo.Default(),
		origin:     OriginAuthor,
		namespaces: namespace.NewTable(),
		sharing:    NeverShare,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Origin returns the origin the parser was created for.
func (p *Parser) Origin() Origin {
	return p.origin
}

// Catalog returns the pseudo-element catalog in use.
func (p *Parser) Catalog() *pseudo.Catalog {
	return p.catalog
}

// ParseNonTSPseudoClass resolves a pseudo-class name given without the colon.
func (p *Parser) ParseNonTSPseudoClass(name string) (pseudo.Class, error) {
	pc, err := pseudo.ResolveClass(name)
	if err != nil {
		p.log.Debug("Unrecognized pseudo-class", zap.String("name", name))
		return 0, fmt.Errorf("%w: %w", ErrParse, err)
	}
	return pc, nil
}

// ParsePseudoElement resolves a pseudo-element name given without colons.
// Internal pseudo-elements resolve only in user agent stylesheets.
func (p *Parser) ParsePseudoElement(name string) (pseudo.Element, error) {
	trusted := p.origin.Trusted()
	pe, ok := p.catalog.LookupByText(name, trusted)
	if !ok {
		p.log.Debug("Unrecognized pseudo-element", zap.String("name", name), zap.Bool("trusted", trusted))
		return pseudo.Element{}, fmt.Errorf("%w: pseudo-element %q: %w", ErrParse, name, pseudo.ErrNoMatch)
	}
	return pe, nil
}

// DefaultNamespace returns the default namespace of the stylesheet, if any.
func (p *Parser) DefaultNamespace() (namespace.URL, bool) {
	return p.namespaces.Default()
}

// NamespaceForPrefix returns the namespace bound to prefix, if any.
func (p *Parser) NamespaceForPrefix(prefix atom.Atom) (namespace.URL, bool) {
	url, ok := p.namespaces.ForPrefix(prefix)
	if !ok {
		p.log.Debug("Unknown namespace prefix", zap.Stringer("prefix", prefix))
	}
	return url, ok
}

// AttrExistsIsShareable is asked while an [attr] node is built.
func (p *Parser) AttrExistsIsShareable(sel *AttrSelector) bool {
	return p.sharing.AttrExistsIsShareable(sel)
}

// AttrEqualsIsShareable is asked while an [attr=value] node is built.
func (p *Parser) AttrEqualsIsShareable(sel *AttrSelector, value string) bool {
	return p.sharing.AttrEqualsIsShareable(sel, value)
}

// CascadeType classifies a pseudo-element for the cascade.
func (p *Parser) CascadeType(pe pseudo.Element) pseudo.CascadeType {
	return pseudo.Classify(pe)
}

// PseudoIsBeforeOrAfter reports whether pe is ::before or ::after.
func (p *Parser) PseudoIsBeforeOrAfter(pe pseudo.Element) bool {
	return pe.IsBeforeOrAfter()
}

// EachPseudoElement visits every pseudo-element of the catalog, internal
// ones included.
func (p *Parser) EachPseudoElement(fn func(pseudo.Element)) {
	p.catalog.ForEach(fn)
}

// PseudoClassStateFlag returns the element state bit tested by pc.
func (p *Parser) PseudoClassStateFlag(pc pseudo.Class) element.State {
	return pc.StateFlag()
}
