package css

import (
	"strings"

	"github.com/chrisuehlinger/htmlkit/dom"
)

// MatchElement tests if a selector matches an element.
func (s *CSSSelector) MatchElement(el *dom.Element) bool {
	for _, cs := range s.ComplexSelectors {
		if cs.MatchElement(el) {
			return true
		}
	}
	return false
}

// MatchElement tests if a complex selector matches an element.
func (cs *ComplexSelector) MatchElement(el *dom.Element) bool {
	if el == nil || len(cs.Compounds) == 0 {
		return false
	}
	return cs.matchFrom(len(cs.Compounds)-1, el)
}

// matchFrom matches compounds[0..i] with compounds[i] anchored at el. The
// descendant and subsequent-sibling combinators backtrack, so "a b > c"
// finds a matching "a" above any "b" parent rather than only the nearest.
func (cs *ComplexSelector) matchFrom(i int, el *dom.Element) bool {
	if !cs.Compounds[i].MatchElement(el) {
		return false
	}
	if i == 0 {
		return true
	}

	switch cs.Compounds[i-1].Combinator {
	case CombinatorDescendant:
		for ancestor := el.AsNode().ParentElement(); ancestor != nil; ancestor = ancestor.AsNode().ParentElement() {
			if cs.matchFrom(i-1, ancestor) {
				return true
			}
		}
	case CombinatorChild:
		if parent := el.AsNode().ParentElement(); parent != nil {
			return cs.matchFrom(i-1, parent)
		}
	case CombinatorNextSibling:
		if prev := el.PreviousElementSibling(); prev != nil {
			return cs.matchFrom(i-1, prev)
		}
	case CombinatorSubsequentSibling:
		for prev := el.PreviousElementSibling(); prev != nil; prev = prev.PreviousElementSibling() {
			if cs.matchFrom(i-1, prev) {
				return true
			}
		}
	}
	return false
}

// MatchElement tests if a compound selector matches an element.
func (c *CompoundSelector) MatchElement(el *dom.Element) bool {
	if c.TypeSelector != nil && c.TypeSelector.Name != "*" && el.LocalName() != c.TypeSelector.Name {
		return false
	}

	for _, id := range c.IDSelectors {
		if el.Id() != id {
			return false
		}
	}

	for _, class := range c.ClassSelectors {
		if !el.ClassList().Contains(class) {
			return false
		}
	}

	for _, attr := range c.AttributeMatchers {
		if !matchAttributeSelector(attr, el) {
			return false
		}
	}

	for _, pseudo := range c.PseudoClasses {
		if !matchPseudoClass(pseudo, el) {
			return false
		}
	}

	return true
}

func matchAttributeSelector(attr *AttributeMatcher, el *dom.Element) bool {
	if !el.HasAttribute(attr.Name) {
		return false
	}
	if attr.Operator == AttrExists {
		return true
	}

	value := el.GetAttribute(attr.Name)
	expected := attr.Value
	if attr.CaseInsensitive {
		value = strings.ToLower(value)
		expected = strings.ToLower(expected)
	}

	switch attr.Operator {
	case AttrEquals:
		return value == expected
	case AttrIncludes:
		if expected == "" {
			return false
		}
		for _, word := range strings.Fields(value) {
			if word == expected {
				return true
			}
		}
		return false
	case AttrDashMatch:
		return value == expected || strings.HasPrefix(value, expected+"-")
	case AttrPrefix:
		return expected != "" && strings.HasPrefix(value, expected)
	case AttrSuffix:
		return expected != "" && strings.HasSuffix(value, expected)
	case AttrSubstring:
		return expected != "" && strings.Contains(value, expected)
	}
	return false
}

func matchPseudoClass(pseudo *PseudoClassSelector, el *dom.Element) bool {
	switch pseudo.Name {
	case "first-child":
		return el.AsNode().ParentNode() != nil && el.PreviousElementSibling() == nil
	case "last-child":
		return el.AsNode().ParentNode() != nil && el.NextElementSibling() == nil
	case "only-child":
		return el.AsNode().ParentNode() != nil && el.PreviousElementSibling() == nil && el.NextElementSibling() == nil
	case "checked":
		if el.LocalName() == "option" {
			return el.Selected()
		}
		return el.IsCheckable() && el.Checked()
	case "disabled":
		return isFormControl(el) && el.Disabled()
	case "enabled":
		return isFormControl(el) && !el.Disabled()
	case "empty":
		for child := el.AsNode().FirstChild(); child != nil; child = child.NextSibling() {
			switch child.NodeType() {
			case dom.ElementNode:
				return false
			case dom.TextNode:
				if child.NodeValue() != "" {
					return false
				}
			}
		}
		return true
	case "root":
		parent := el.AsNode().ParentNode()
		return parent != nil && parent.NodeType() == dom.DocumentNode
	case "not":
		return pseudo.Selector != nil && !pseudo.Selector.MatchElement(el)
	}
	return false
}

func isFormControl(el *dom.Element) bool {
	switch el.LocalName() {
	case "input", "button", "select", "textarea", "option", "fieldset":
		return true
	}
	return false
}

// QuerySelector returns the first descendant of root, in document order,
// that matches the selector.
func QuerySelector(root *dom.Node, selector *CSSSelector) *dom.Element {
	var found *dom.Element
	walk(root, func(el *dom.Element) bool {
		if selector.MatchElement(el) {
			found = el
			return false
		}
		return true
	})
	return found
}

// QuerySelectorAll returns every descendant of root that matches the
// selector, in document order.
func QuerySelectorAll(root *dom.Node, selector *CSSSelector) []*dom.Element {
	var results []*dom.Element
	walk(root, func(el *dom.Element) bool {
		if selector.MatchElement(el) {
			results = append(results, el)
		}
		return true
	})
	return results
}

// Query parses selector and returns the first match under root.
func Query(root *dom.Node, selector string) (*dom.Element, error) {
	sel, err := ParseSelector(selector)
	if err != nil {
		return nil, err
	}
	return QuerySelector(root, sel), nil
}

// QueryAll parses selector and returns every match under root.
func QueryAll(root *dom.Node, selector string) ([]*dom.Element, error) {
	sel, err := ParseSelector(selector)
	if err != nil {
		return nil, err
	}
	return QuerySelectorAll(root, sel), nil
}

// Matches reports whether el matches the selector string.
func Matches(el *dom.Element, selector string) (bool, error) {
	sel, err := ParseSelector(selector)
	if err != nil {
		return false, err
	}
	return sel.MatchElement(el), nil
}

func walk(root *dom.Node, visit func(*dom.Element) bool) bool {
	if root == nil {
		return true
	}
	for child := root.FirstChild(); child != nil; child = child.NextSibling() {
		if child.NodeType() != dom.ElementNode {
			continue
		}
		if !visit((*dom.Element)(child)) || !walk(child, visit) {
			return false
		}
	}
	return true
}
