package dom

import (
	"fmt"
	"strings"
)

// validateToken checks that a token is non-empty and free of whitespace.
func validateToken(token string) error {
	if token == "" {
		return ErrSyntax("The token provided must not be empty.")
	}
	if strings.ContainsAny(token, " \t\n\r\f") {
		return ErrInvalidCharacter(fmt.Sprintf("The token provided ('%s') contains HTML space characters, which are not valid in tokens.", token))
	}
	return nil
}

// DOMTokenList is a live view over a space-separated attribute. It backs
// Element.ClassList.
type DOMTokenList struct {
	element  *Element
	attrName string
}

func newDOMTokenList(element *Element, attrName string) *DOMTokenList {
	return &DOMTokenList{element: element, attrName: attrName}
}

// tokens returns the current tokens, deduplicated in order.
func (dtl *DOMTokenList) tokens() []string {
	value := dtl.element.GetAttribute(dtl.attrName)
	if value == "" {
		return nil
	}
	seen := make(map[string]bool)
	var result []string
	for _, token := range strings.Fields(value) {
		if !seen[token] {
			seen[token] = true
			result = append(result, token)
		}
	}
	return result
}

// setTokens writes the tokens back. An absent attribute stays absent when
// there is nothing to write.
func (dtl *DOMTokenList) setTokens(tokens []string) {
	if len(tokens) > 0 || dtl.element.HasAttribute(dtl.attrName) {
		dtl.element.SetAttribute(dtl.attrName, strings.Join(tokens, " "))
	}
}

// Length returns the number of tokens.
func (dtl *DOMTokenList) Length() int {
	return len(dtl.tokens())
}

// Item returns the token at the given index, or empty string if out of bounds.
func (dtl *DOMTokenList) Item(index int) string {
	tokens := dtl.tokens()
	if index < 0 || index >= len(tokens) {
		return ""
	}
	return tokens[index]
}

// Values returns a copy of the tokens.
func (dtl *DOMTokenList) Values() []string {
	return dtl.tokens()
}

// Contains returns true if the given token is in the list.
func (dtl *DOMTokenList) Contains(token string) bool {
	for _, t := range dtl.tokens() {
		if t == token {
			return true
		}
	}
	return false
}

// Add appends the tokens that are not present yet.
func (dtl *DOMTokenList) Add(tokens ...string) error {
	for _, token := range tokens {
		if err := validateToken(token); err != nil {
			return err
		}
	}
	current := dtl.tokens()
	for _, token := range tokens {
		if !containsString(current, token) {
			current = append(current, token)
		}
	}
	dtl.setTokens(current)
	return nil
}

// Remove deletes the given tokens.
func (dtl *DOMTokenList) Remove(tokens ...string) error {
	for _, token := range tokens {
		if err := validateToken(token); err != nil {
			return err
		}
	}
	current := dtl.tokens()
	result := current[:0]
	for _, t := range current {
		if !containsString(tokens, t) {
			result = append(result, t)
		}
	}
	dtl.setTokens(result)
	return nil
}

// Toggle removes the token if present and adds it otherwise. It returns
// whether the token is present afterwards.
func (dtl *DOMTokenList) Toggle(token string) (bool, error) {
	if err := validateToken(token); err != nil {
		return false, err
	}
	if dtl.Contains(token) {
		return false, dtl.Remove(token)
	}
	return true, dtl.Add(token)
}

// String returns the serialized attribute value.
func (dtl *DOMTokenList) String() string {
	return dtl.element.GetAttribute(dtl.attrName)
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
