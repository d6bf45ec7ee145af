package dom

import (
	"strings"
)

// Element represents an element in the document tree.
type Element Node

// AsNode returns the underlying Node.
func (e *Element) AsNode() *Node {
	return (*Node)(e)
}

// NodeType returns ElementNode.
func (e *Element) NodeType() NodeType {
	return ElementNode
}

// TagName returns the tag name in uppercase.
func (e *Element) TagName() string {
	return e.elementData.tagName
}

// LocalName returns the lowercase local name of the element.
func (e *Element) LocalName() string {
	return e.elementData.localName
}

// OwnerDocument returns the document that owns this element.
func (e *Element) OwnerDocument() *Document {
	return e.ownerDoc
}

// Id returns the id attribute value.
func (e *Element) Id() string {
	return e.GetAttribute("id")
}

// SetId sets the id attribute value.
func (e *Element) SetId(id string) {
	e.SetAttribute("id", id)
}

// ClassName returns the class attribute value.
func (e *Element) ClassName() string {
	return e.GetAttribute("class")
}

// SetClassName sets the class attribute value.
func (e *Element) SetClassName(className string) {
	e.SetAttribute("class", className)
}

// ClassList returns the live class token list.
func (e *Element) ClassList() *DOMTokenList {
	if e.elementData.classList == nil {
		e.elementData.classList = newDOMTokenList(e, "class")
	}
	return e.elementData.classList
}

// Attributes returns the element's attribute collection.
func (e *Element) Attributes() *NamedNodeMap {
	if e.elementData.attributes == nil {
		e.elementData.attributes = newNamedNodeMap(e)
	}
	return e.elementData.attributes
}

// GetAttribute returns the value of the named attribute, or "" when absent.
func (e *Element) GetAttribute(name string) string {
	return e.Attributes().GetValue(strings.ToLower(name))
}

// SetAttribute sets the value of the named attribute.
// For error-returning version, use SetAttributeWithError.
func (e *Element) SetAttribute(name, value string) {
	_ = e.SetAttributeWithError(name, value)
}

// SetAttributeWithError sets the value of the named attribute.
// Returns an InvalidCharacterError if the name is invalid.
func (e *Element) SetAttributeWithError(name, value string) error {
	if !IsValidAttributeName(name) {
		return ErrInvalidCharacter("The string contains invalid characters.")
	}
	name = strings.ToLower(name)
	e.Attributes().SetValue(name, value)
	if name == "style" && e.elementData.style != nil {
		e.elementData.style.RefreshFromAttribute()
	}
	return nil
}

// IsValidAttributeName reports whether name is non-empty and free of
// whitespace, NUL, '/', '=' and '>'.
func IsValidAttributeName(name string) bool {
	if name == "" {
		return false
	}
	return !strings.ContainsAny(name, " \t\n\f\r\x00/=>")
}

// HasAttribute returns true if the element has the given attribute.
func (e *Element) HasAttribute(name string) bool {
	return e.Attributes().Has(strings.ToLower(name))
}

// RemoveAttribute removes the named attribute.
func (e *Element) RemoveAttribute(name string) {
	name = strings.ToLower(name)
	e.Attributes().RemoveNamedItem(name)
	if name == "style" && e.elementData.style != nil {
		e.elementData.style.RefreshFromAttribute()
	}
}

// ToggleAttribute removes the attribute if present and adds it with an empty
// value otherwise. It returns whether the attribute is present afterwards.
func (e *Element) ToggleAttribute(name string) bool {
	if e.HasAttribute(name) {
		e.RemoveAttribute(name)
		return false
	}
	e.SetAttribute(name, "")
	return true
}

// Style returns the inline style declaration.
func (e *Element) Style() *CSSStyleDeclaration {
	if e.elementData.style == nil {
		e.elementData.style = NewCSSStyleDeclaration(e)
	}
	return e.elementData.style
}

// Children returns the element children in document order.
func (e *Element) Children() []*Element {
	var children []*Element
	for child := e.firstChild; child != nil; child = child.nextSibling {
		if child.nodeType == ElementNode {
			children = append(children, (*Element)(child))
		}
	}
	return children
}

// ChildElementCount returns the number of element children.
func (e *Element) ChildElementCount() int {
	return len(e.Children())
}

// FirstElementChild returns the first element child, or nil.
func (e *Element) FirstElementChild() *Element {
	for child := e.firstChild; child != nil; child = child.nextSibling {
		if child.nodeType == ElementNode {
			return (*Element)(child)
		}
	}
	return nil
}

// PreviousElementSibling returns the previous element sibling, or nil.
func (e *Element) PreviousElementSibling() *Element {
	for sib := e.prevSibling; sib != nil; sib = sib.prevSibling {
		if sib.nodeType == ElementNode {
			return (*Element)(sib)
		}
	}
	return nil
}

// NextElementSibling returns the next element sibling, or nil.
func (e *Element) NextElementSibling() *Element {
	for sib := e.nextSibling; sib != nil; sib = sib.nextSibling {
		if sib.nodeType == ElementNode {
			return (*Element)(sib)
		}
	}
	return nil
}

// GetElementsByTagName returns the descendant elements with the given tag
// name, or all descendants for "*".
func (e *Element) GetElementsByTagName(tagName string) []*Element {
	return elementsByTagName(e.AsNode(), tagName)
}

func elementsByTagName(root *Node, tagName string) []*Element {
	tagName = strings.ToLower(tagName)
	var result []*Element
	walkElements(root, func(el *Element) bool {
		if tagName == "*" || el.LocalName() == tagName {
			result = append(result, el)
		}
		return true
	})
	return result
}

// walkElements visits the descendant elements of root in document order
// until visit returns false.
func walkElements(root *Node, visit func(*Element) bool) bool {
	for child := root.firstChild; child != nil; child = child.nextSibling {
		if child.nodeType != ElementNode {
			continue
		}
		if !visit((*Element)(child)) || !walkElements(child, visit) {
			return false
		}
	}
	return true
}

// Append adds the nodes as the last children of the element.
func (e *Element) Append(nodes ...*Node) {
	for _, node := range nodes {
		e.AsNode().AppendChild(node)
	}
}

// Prepend inserts the nodes before the first child of the element.
func (e *Element) Prepend(nodes ...*Node) {
	ref := e.firstChild
	for _, node := range nodes {
		e.AsNode().InsertBefore(node, ref)
	}
}

// Remove detaches the element from its parent.
func (e *Element) Remove() {
	e.AsNode().Remove()
}

// ReplaceChildren removes every child and then appends the given nodes.
func (e *Element) ReplaceChildren(nodes ...*Node) {
	e.AsNode().ReplaceChildren(nodes...)
}

// CloneNode returns a copy of the element, including descendants when deep.
func (e *Element) CloneNode(deep bool) *Element {
	return (*Element)(e.AsNode().CloneNode(deep))
}

// TextContent returns the text content of the element.
func (e *Element) TextContent() string {
	return e.AsNode().TextContent()
}

// SetTextContent replaces the children with a single text node.
func (e *Element) SetTextContent(text string) {
	e.AsNode().SetTextContent(text)
}

// Contains returns true if other is an inclusive descendant of the element.
func (e *Element) Contains(other *Node) bool {
	return e.AsNode().Contains(other)
}

// IsConnected returns true if the element is inside a document.
func (e *Element) IsConnected() bool {
	return e.AsNode().IsConnected()
}

// ParentNode returns the parent of the element.
func (e *Element) ParentNode() *Node {
	return e.parentNode
}
