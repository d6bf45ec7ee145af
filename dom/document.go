package dom

import (
	"strings"
)

// Document represents the entire HTML document.
type Document Node

// NewDocument creates a new empty Document.
func NewDocument() *Document {
	node := newNode(DocumentNode, "#document", nil)
	doc := (*Document)(node)
	node.ownerDoc = doc
	return doc
}

// NewHTMLDocument creates a Document with an html/head/body skeleton.
func NewHTMLDocument() *Document {
	doc := NewDocument()
	root := doc.CreateElement("html")
	root.Append(doc.CreateElement("head").AsNode(), doc.CreateElement("body").AsNode())
	doc.AsNode().AppendChild(root.AsNode())
	return doc
}

// AsNode returns the underlying Node.
func (d *Document) AsNode() *Node {
	return (*Node)(d)
}

// NodeType returns DocumentNode.
func (d *Document) NodeType() NodeType {
	return DocumentNode
}

// DocumentElement returns the root element of the document.
func (d *Document) DocumentElement() *Element {
	for child := d.firstChild; child != nil; child = child.nextSibling {
		if child.nodeType == ElementNode {
			return (*Element)(child)
		}
	}
	return nil
}

// Head returns the <head> element.
func (d *Document) Head() *Element {
	return d.rootChild("head")
}

// Body returns the <body> element.
func (d *Document) Body() *Element {
	return d.rootChild("body")
}

func (d *Document) rootChild(localName string) *Element {
	docEl := d.DocumentElement()
	if docEl == nil {
		return nil
	}
	for _, child := range docEl.Children() {
		if child.LocalName() == localName {
			return child
		}
	}
	return nil
}

// Title returns the text of the first <title> in <head>.
func (d *Document) Title() string {
	head := d.Head()
	if head == nil {
		return ""
	}
	for _, child := range head.Children() {
		if child.LocalName() == "title" {
			return strings.TrimSpace(child.TextContent())
		}
	}
	return ""
}

// CreateElement creates a new element with the given tag name.
// Use CreateElementWithError to observe invalid names.
func (d *Document) CreateElement(tagName string) *Element {
	el, _ := d.CreateElementWithError(tagName)
	return el
}

// CreateElementWithError creates a new element with the given tag name.
// Returns an InvalidCharacterError if the tag name is not a valid name.
func (d *Document) CreateElementWithError(tagName string) (*Element, error) {
	if !isValidName(tagName) {
		return nil, ErrInvalidCharacter("The string contains invalid characters.")
	}
	return d.newElement(tagName), nil
}

func (d *Document) newElement(tagName string) *Element {
	upper := strings.ToUpper(tagName)
	node := newNode(ElementNode, upper, d)
	node.elementData = &elementData{
		localName: strings.ToLower(tagName),
		tagName:   upper,
	}
	el := (*Element)(node)
	node.elementData.attributes = newNamedNodeMap(el)
	return el
}

// isValidName is a conservative check for element names: a letter first,
// then letters, digits, '-', '_', '.' or ':'.
func isValidName(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r > 0x7f:
		case i > 0 && (r >= '0' && r <= '9' || r == '-' || r == '_' || r == '.' || r == ':'):
		default:
			return false
		}
	}
	return true
}

// CreateTextNode creates a new Text node.
func (d *Document) CreateTextNode(data string) *Node {
	n := newNode(TextNode, "#text", d)
	n.data = data
	return n
}

// CreateComment creates a new Comment node.
func (d *Document) CreateComment(data string) *Node {
	n := newNode(CommentNode, "#comment", d)
	n.data = data
	return n
}

// CreateDocumentFragment creates a new empty DocumentFragment node.
func (d *Document) CreateDocumentFragment() *Node {
	return newNode(DocumentFragmentNode, "#document-fragment", d)
}

// GetElementById returns the first element in document order with the given id.
func (d *Document) GetElementById(id string) *Element {
	if id == "" {
		return nil
	}
	var found *Element
	walkElements(d.AsNode(), func(el *Element) bool {
		if el.Id() == id {
			found = el
			return false
		}
		return true
	})
	return found
}

// GetElementsByTagName returns the elements with the given tag name in document order.
func (d *Document) GetElementsByTagName(tagName string) []*Element {
	return elementsByTagName(d.AsNode(), tagName)
}
