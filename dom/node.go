package dom

import (
	"strings"
)

// Node represents a node in the document tree. Document and Element are
// conversions of Node and share its storage.
type Node struct {
	nodeType NodeType
	nodeName string
	ownerDoc *Document

	parentNode  *Node
	firstChild  *Node
	lastChild   *Node
	prevSibling *Node
	nextSibling *Node

	// data holds the character data of Text and Comment nodes.
	data string

	// Only set for Element nodes.
	elementData *elementData

	// Lazily created on the first AddEventListener.
	events *EventTarget
}

// elementData holds data specific to Element nodes.
type elementData struct {
	localName  string
	tagName    string
	attributes *NamedNodeMap
	classList  *DOMTokenList
	style      *CSSStyleDeclaration
	form       formState
}

func newNode(nodeType NodeType, nodeName string, ownerDoc *Document) *Node {
	return &Node{
		nodeType: nodeType,
		nodeName: nodeName,
		ownerDoc: ownerDoc,
	}
}

// NodeType returns the type of the node.
func (n *Node) NodeType() NodeType {
	return n.nodeType
}

// NodeName returns the name of the node.
// For elements, this is the tag name in uppercase.
// For text nodes, this is "#text".
func (n *Node) NodeName() string {
	return n.nodeName
}

// NodeValue returns the character data of text and comment nodes and ""
// for everything else.
func (n *Node) NodeValue() string {
	switch n.nodeType {
	case TextNode, CommentNode:
		return n.data
	}
	return ""
}

// SetNodeValue sets the character data. It has no effect on other node types.
func (n *Node) SetNodeValue(value string) {
	switch n.nodeType {
	case TextNode, CommentNode:
		n.data = value
	}
}

// OwnerDocument returns the Document that owns this node.
// For Document nodes, this returns nil.
func (n *Node) OwnerDocument() *Document {
	if n.nodeType == DocumentNode {
		return nil
	}
	return n.ownerDoc
}

// ParentNode returns the parent of this node.
func (n *Node) ParentNode() *Node {
	return n.parentNode
}

// ParentElement returns the parent Element, or nil if the parent is not an element.
func (n *Node) ParentElement() *Element {
	if n.parentNode != nil && n.parentNode.nodeType == ElementNode {
		return (*Element)(n.parentNode)
	}
	return nil
}

// FirstChild returns the first child node, or nil if there are no children.
func (n *Node) FirstChild() *Node {
	return n.firstChild
}

// LastChild returns the last child node, or nil if there are no children.
func (n *Node) LastChild() *Node {
	return n.lastChild
}

// PreviousSibling returns the previous sibling node.
func (n *Node) PreviousSibling() *Node {
	return n.prevSibling
}

// NextSibling returns the next sibling node.
func (n *Node) NextSibling() *Node {
	return n.nextSibling
}

// HasChildNodes returns true if this node has any child nodes.
func (n *Node) HasChildNodes() bool {
	return n.firstChild != nil
}

// ChildNodes returns a snapshot of the child nodes.
func (n *Node) ChildNodes() []*Node {
	var children []*Node
	for c := n.firstChild; c != nil; c = c.nextSibling {
		children = append(children, c)
	}
	return children
}

// IsConnected returns true if the node's root is a document.
func (n *Node) IsConnected() bool {
	return n.GetRootNode().nodeType == DocumentNode
}

// GetRootNode returns the topmost ancestor of the node.
func (n *Node) GetRootNode() *Node {
	root := n
	for root.parentNode != nil {
		root = root.parentNode
	}
	return root
}

// Contains returns true if other is an inclusive descendant of this node.
func (n *Node) Contains(other *Node) bool {
	for ; other != nil; other = other.parentNode {
		if other == n {
			return true
		}
	}
	return false
}

// TextContent returns the text content of the node and its descendants.
func (n *Node) TextContent() string {
	switch n.nodeType {
	case DocumentNode, DocumentTypeNode:
		return ""
	case TextNode, CommentNode:
		return n.data
	default:
		var sb strings.Builder
		n.collectTextContent(&sb)
		return sb.String()
	}
}

func (n *Node) collectTextContent(sb *strings.Builder) {
	for child := n.firstChild; child != nil; child = child.nextSibling {
		switch child.nodeType {
		case TextNode:
			sb.WriteString(child.data)
		case ElementNode, DocumentFragmentNode:
			child.collectTextContent(sb)
		}
	}
}

// SetTextContent sets the text content of the node.
// For elements and fragments, this replaces all children with a single text node.
func (n *Node) SetTextContent(value string) {
	switch n.nodeType {
	case DocumentNode, DocumentTypeNode:
		return
	case TextNode, CommentNode:
		n.data = value
	default:
		n.ReplaceChildren()
		if value != "" {
			n.AppendChild(n.ownerDoc.CreateTextNode(value))
		}
	}
}

// AppendChild adds a node to the end of the list of children of this node.
// For error-returning version, use AppendChildWithError.
func (n *Node) AppendChild(child *Node) *Node {
	result, _ := n.AppendChildWithError(child)
	return result
}

// AppendChildWithError adds a node to the end of the list of children of this node.
func (n *Node) AppendChildWithError(child *Node) (*Node, error) {
	return n.InsertBeforeWithError(child, nil)
}

// InsertBefore inserts a node before a reference child node.
// If refChild is nil, the node is appended to the end.
func (n *Node) InsertBefore(newChild, refChild *Node) *Node {
	result, _ := n.InsertBeforeWithError(newChild, refChild)
	return result
}

// InsertBeforeWithError inserts a node before a reference child node.
// Returns an error if the operation would break the tree.
func (n *Node) InsertBeforeWithError(newChild, refChild *Node) (*Node, error) {
	if err := n.validatePreInsertion(newChild, refChild); err != nil {
		return nil, err
	}
	if newChild.nodeType == DocumentFragmentNode {
		for _, child := range newChild.ChildNodes() {
			n.insertBefore(child, refChild)
		}
		return newChild, nil
	}
	return n.insertBefore(newChild, refChild), nil
}

func (n *Node) validatePreInsertion(node, child *Node) error {
	if node == nil {
		return ErrHierarchyRequest("The node to be inserted is null.")
	}
	switch n.nodeType {
	case DocumentNode, DocumentFragmentNode, ElementNode:
	default:
		return ErrHierarchyRequest("The parent cannot have children.")
	}
	if node.Contains(n) {
		return ErrHierarchyRequest("The new child is an ancestor of the parent.")
	}
	if child != nil && child.parentNode != n {
		return ErrNotFound("The reference node is not a child of this node.")
	}
	if node.nodeType == DocumentNode {
		return ErrHierarchyRequest("A document cannot be inserted.")
	}
	if n.nodeType == DocumentNode && node.nodeType == ElementNode {
		for c := n.firstChild; c != nil; c = c.nextSibling {
			if c.nodeType == ElementNode && c != node {
				return ErrHierarchyRequest("The document already has a document element.")
			}
		}
	}
	return nil
}

func (n *Node) insertBefore(newChild, refChild *Node) *Node {
	if newChild == refChild {
		return newChild
	}
	if newChild.parentNode != nil {
		newChild.parentNode.removeChildInternal(newChild)
	}

	newChild.parentNode = n
	if n.nodeType == DocumentNode {
		adoptNode(newChild, (*Document)(n))
	} else if n.ownerDoc != nil && newChild.ownerDoc != n.ownerDoc {
		adoptNode(newChild, n.ownerDoc)
	}

	if refChild == nil {
		newChild.prevSibling = n.lastChild
		newChild.nextSibling = nil
		if n.lastChild != nil {
			n.lastChild.nextSibling = newChild
		} else {
			n.firstChild = newChild
		}
		n.lastChild = newChild
		return newChild
	}

	newChild.prevSibling = refChild.prevSibling
	newChild.nextSibling = refChild
	if refChild.prevSibling != nil {
		refChild.prevSibling.nextSibling = newChild
	} else {
		n.firstChild = newChild
	}
	refChild.prevSibling = newChild
	return newChild
}

// adoptNode recursively sets the ownerDocument for a node and its descendants.
func adoptNode(node *Node, doc *Document) {
	node.ownerDoc = doc
	for child := node.firstChild; child != nil; child = child.nextSibling {
		adoptNode(child, doc)
	}
}

// RemoveChild removes a child node from this node.
func (n *Node) RemoveChild(child *Node) *Node {
	result, _ := n.RemoveChildWithError(child)
	return result
}

// RemoveChildWithError removes a child node from this node.
// Returns an error if the child is not a child of this node.
func (n *Node) RemoveChildWithError(child *Node) (*Node, error) {
	if child == nil {
		return nil, ErrNotFound("The node to be removed is null.")
	}
	if child.parentNode != n {
		return nil, ErrNotFound("The node to be removed is not a child of this node.")
	}
	n.removeChildInternal(child)
	return child, nil
}

func (n *Node) removeChildInternal(child *Node) {
	if child.prevSibling != nil {
		child.prevSibling.nextSibling = child.nextSibling
	} else {
		n.firstChild = child.nextSibling
	}
	if child.nextSibling != nil {
		child.nextSibling.prevSibling = child.prevSibling
	} else {
		n.lastChild = child.prevSibling
	}
	child.parentNode = nil
	child.prevSibling = nil
	child.nextSibling = nil
}

// Remove detaches the node from its parent, if any.
func (n *Node) Remove() {
	if n.parentNode != nil {
		n.parentNode.removeChildInternal(n)
	}
}

// ReplaceChildren removes every child and then appends the given nodes.
func (n *Node) ReplaceChildren(nodes ...*Node) {
	for n.firstChild != nil {
		n.removeChildInternal(n.firstChild)
	}
	for _, node := range nodes {
		n.AppendChild(node)
	}
}

// CloneNode returns a copy of the node. When deep is true the descendants are
// copied as well. Event listeners are never copied.
func (n *Node) CloneNode(deep bool) *Node {
	clone := n.shallowClone()
	if deep {
		for child := n.firstChild; child != nil; child = child.nextSibling {
			clone.insertBefore(child.CloneNode(true), nil)
		}
	}
	return clone
}

func (n *Node) shallowClone() *Node {
	clone := newNode(n.nodeType, n.nodeName, n.ownerDoc)
	clone.data = n.data

	switch n.nodeType {
	case ElementNode:
		if n.elementData != nil {
			el := (*Element)(clone)
			clone.elementData = &elementData{
				localName: n.elementData.localName,
				tagName:   n.elementData.tagName,
				form:      n.elementData.form.clone(),
			}
			clone.elementData.attributes = n.elementData.attributes.Clone(el)
		}
	case DocumentNode:
		clone.ownerDoc = (*Document)(clone)
	}
	return clone
}
