// Package css parses CSS selectors and matches them against dom elements.
package css

import (
	"fmt"
	"strings"
	"unicode"
)

// CSSSelector represents a parsed CSS selector.
type CSSSelector struct {
	// A selector is a list of complex selectors separated by commas
	ComplexSelectors []*ComplexSelector
}

// ComplexSelector is a chain of compound selectors separated by combinators.
type ComplexSelector struct {
	Compounds []*CompoundSelector
}

// CompoundSelector is a sequence of simple selectors.
type CompoundSelector struct {
	TypeSelector      *TypeSelector
	IDSelectors       []string
	ClassSelectors    []string
	AttributeMatchers []*AttributeMatcher
	PseudoClasses     []*PseudoClassSelector
	Combinator        CombinatorType // Combinator following this compound selector
}

// CombinatorType represents the type of combinator.
type CombinatorType int

const (
	CombinatorNone              CombinatorType = iota
	CombinatorDescendant                       // (whitespace)
	CombinatorChild                            // >
	CombinatorNextSibling                      // +
	CombinatorSubsequentSibling                // ~
)

// TypeSelector represents a type (tag) selector.
type TypeSelector struct {
	Name string // "*" for universal, or lowercased tag name
}

// AttributeMatcher represents an attribute selector.
type AttributeMatcher struct {
	Name            string
	Operator        AttributeOperator
	Value           string
	CaseInsensitive bool
}

// AttributeOperator represents the operator in an attribute selector.
type AttributeOperator int

const (
	AttrExists    AttributeOperator = iota // [attr]
	AttrEquals                             // [attr=value]
	AttrIncludes                           // [attr~=value]
	AttrDashMatch                          // [attr|=value]
	AttrPrefix                             // [attr^=value]
	AttrSuffix                             // [attr$=value]
	AttrSubstring                          // [attr*=value]
)

// PseudoClassSelector represents a pseudo-class.
type PseudoClassSelector struct {
	Name     string
	Selector *CSSSelector // argument of :not()
}

// SyntaxError reports an unparsable selector.
type SyntaxError struct {
	Selector string
	Offset   int
	Reason   string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("invalid selector %q at offset %d: %s", e.Selector, e.Offset, e.Reason)
}

var supportedPseudoClasses = map[string]bool{
	"first-child": true,
	"last-child":  true,
	"only-child":  true,
	"checked":     true,
	"disabled":    true,
	"enabled":     true,
	"empty":       true,
	"root":        true,
	"not":         true,
}

// SelectorParser parses CSS selectors.
type SelectorParser struct {
	input []rune
	pos   int
	src   string
}

// ParseSelector parses a CSS selector string.
func ParseSelector(input string) (*CSSSelector, error) {
	p := &SelectorParser{input: []rune(input), src: input}
	sel, err := p.parseSelector()
	if err != nil {
		return nil, err
	}
	p.skipWhitespace()
	if !p.eof() {
		return nil, p.errorf("unexpected %q", p.current())
	}
	return sel, nil
}

func (p *SelectorParser) errorf(format string, args ...any) error {
	return &SyntaxError{Selector: p.src, Offset: p.pos, Reason: fmt.Sprintf(format, args...)}
}

func (p *SelectorParser) eof() bool {
	return p.pos >= len(p.input)
}

func (p *SelectorParser) current() rune {
	if p.eof() {
		return 0
	}
	return p.input[p.pos]
}

func (p *SelectorParser) skipWhitespace() bool {
	skipped := false
	for !p.eof() && unicode.IsSpace(p.current()) {
		p.pos++
		skipped = true
	}
	return skipped
}

// parseSelector parses a selector list.
func (p *SelectorParser) parseSelector() (*CSSSelector, error) {
	selector := &CSSSelector{}
	p.skipWhitespace()

	for {
		complex, err := p.parseComplexSelector()
		if err != nil {
			return nil, err
		}
		selector.ComplexSelectors = append(selector.ComplexSelectors, complex)

		p.skipWhitespace()
		if p.current() == ',' {
			p.pos++
			p.skipWhitespace()
			continue
		}
		return selector, nil
	}
}

// parseComplexSelector parses compounds joined by combinators.
func (p *SelectorParser) parseComplexSelector() (*ComplexSelector, error) {
	complex := &ComplexSelector{}

	for {
		compound, err := p.parseCompoundSelector()
		if err != nil {
			return nil, err
		}
		complex.Compounds = append(complex.Compounds, compound)

		sawSpace := p.skipWhitespace()
		combinator := CombinatorNone
		switch p.current() {
		case '>':
			combinator = CombinatorChild
		case '+':
			combinator = CombinatorNextSibling
		case '~':
			combinator = CombinatorSubsequentSibling
		}
		if combinator != CombinatorNone {
			p.pos++
			p.skipWhitespace()
		} else if sawSpace && !p.eof() && p.current() != ',' && p.current() != ')' {
			combinator = CombinatorDescendant
		} else {
			return complex, nil
		}
		compound.Combinator = combinator
	}
}

// parseCompoundSelector parses a sequence of simple selectors.
func (p *SelectorParser) parseCompoundSelector() (*CompoundSelector, error) {
	compound := &CompoundSelector{}
	start := p.pos

	if p.current() == '*' {
		p.pos++
		compound.TypeSelector = &TypeSelector{Name: "*"}
	} else if isIdentStart(p.current()) {
		compound.TypeSelector = &TypeSelector{Name: strings.ToLower(p.parseIdent())}
	}

loop:
	for !p.eof() {
		switch p.current() {
		case '#':
			p.pos++
			id := p.parseIdent()
			if id == "" {
				return nil, p.errorf("expected id after '#'")
			}
			compound.IDSelectors = append(compound.IDSelectors, id)
		case '.':
			p.pos++
			class := p.parseIdent()
			if class == "" {
				return nil, p.errorf("expected class name after '.'")
			}
			compound.ClassSelectors = append(compound.ClassSelectors, class)
		case '[':
			attr, err := p.parseAttributeSelector()
			if err != nil {
				return nil, err
			}
			compound.AttributeMatchers = append(compound.AttributeMatchers, attr)
		case ':':
			pseudo, err := p.parsePseudoClass()
			if err != nil {
				return nil, err
			}
			compound.PseudoClasses = append(compound.PseudoClasses, pseudo)
		default:
			break loop
		}
	}
	if p.pos == start {
		if p.eof() {
			return nil, p.errorf("unexpected end of selector")
		}
		return nil, p.errorf("unexpected %q", p.current())
	}
	return compound, nil
}

// parseAttributeSelector parses [name], [name=value] and the operator forms.
func (p *SelectorParser) parseAttributeSelector() (*AttributeMatcher, error) {
	p.pos++ // [
	p.skipWhitespace()
	name := p.parseIdent()
	if name == "" {
		return nil, p.errorf("expected attribute name")
	}
	matcher := &AttributeMatcher{Name: strings.ToLower(name), Operator: AttrExists}
	p.skipWhitespace()

	if p.current() == ']' {
		p.pos++
		return matcher, nil
	}

	switch p.current() {
	case '=':
		matcher.Operator = AttrEquals
	case '~':
		matcher.Operator = AttrIncludes
	case '|':
		matcher.Operator = AttrDashMatch
	case '^':
		matcher.Operator = AttrPrefix
	case '$':
		matcher.Operator = AttrSuffix
	case '*':
		matcher.Operator = AttrSubstring
	default:
		return nil, p.errorf("unexpected %q in attribute selector", p.current())
	}
	p.pos++
	if matcher.Operator != AttrEquals {
		if p.current() != '=' {
			return nil, p.errorf("expected '=' in attribute selector")
		}
		p.pos++
	}
	p.skipWhitespace()

	switch q := p.current(); q {
	case '"', '\'':
		p.pos++
		var sb strings.Builder
		for !p.eof() && p.current() != q {
			if p.current() == '\\' && p.pos+1 < len(p.input) {
				p.pos++
			}
			sb.WriteRune(p.current())
			p.pos++
		}
		if p.eof() {
			return nil, p.errorf("unterminated string")
		}
		p.pos++
		matcher.Value = sb.String()
	default:
		matcher.Value = p.parseIdent()
		if matcher.Value == "" {
			return nil, p.errorf("expected attribute value")
		}
	}

	p.skipWhitespace()
	if p.current() == 'i' || p.current() == 'I' {
		matcher.CaseInsensitive = true
		p.pos++
		p.skipWhitespace()
	} else if p.current() == 's' || p.current() == 'S' {
		p.pos++
		p.skipWhitespace()
	}
	if p.current() != ']' {
		return nil, p.errorf("expected ']'")
	}
	p.pos++
	return matcher, nil
}

// parsePseudoClass parses :name and :not(selector).
func (p *SelectorParser) parsePseudoClass() (*PseudoClassSelector, error) {
	p.pos++ // :
	if p.current() == ':' {
		return nil, p.errorf("pseudo-elements are not supported")
	}
	name := strings.ToLower(p.parseIdent())
	if !supportedPseudoClasses[name] {
		return nil, p.errorf("unsupported pseudo-class %q", name)
	}
	pseudo := &PseudoClassSelector{Name: name}

	if name != "not" {
		return pseudo, nil
	}
	if p.current() != '(' {
		return nil, p.errorf("expected '(' after :not")
	}
	p.pos++
	inner, err := p.parseSelector()
	if err != nil {
		return nil, err
	}
	p.skipWhitespace()
	if p.current() != ')' {
		return nil, p.errorf("expected ')'")
	}
	p.pos++
	pseudo.Selector = inner
	return pseudo, nil
}

// parseIdent reads an identifier, honoring backslash escapes.
func (p *SelectorParser) parseIdent() string {
	var sb strings.Builder
	for !p.eof() {
		r := p.current()
		if r == '\\' && p.pos+1 < len(p.input) {
			p.pos++
			sb.WriteRune(p.current())
			p.pos++
			continue
		}
		if !isIdentChar(r) {
			break
		}
		sb.WriteRune(r)
		p.pos++
	}
	return sb.String()
}

func isIdentStart(r rune) bool {
	return r == '_' || r == '-' || r == '\\' || unicode.IsLetter(r) || r > 0x7f
}

func isIdentChar(r rune) bool {
	return isIdentStart(r) || unicode.IsDigit(r)
}
