package dom

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// InnerHTML returns the serialized children of the element.
func (e *Element) InnerHTML() string {
	var sb strings.Builder
	for child := e.firstChild; child != nil; child = child.nextSibling {
		serializeNode(child, &sb)
	}
	return sb.String()
}

// SetInnerHTML replaces the children with the parsed HTML fragment.
func (e *Element) SetInnerHTML(htmlContent string) error {
	nodes, err := parseHTMLFragment(htmlContent, e)
	if err != nil {
		return err
	}
	e.ReplaceChildren(nodes...)
	return nil
}

// OuterHTML returns the HTML of the element including the element itself.
func (e *Element) OuterHTML() string {
	var sb strings.Builder
	serializeNode(e.AsNode(), &sb)
	return sb.String()
}

// Serialize returns the HTML serialization of any node.
func Serialize(n *Node) string {
	var sb strings.Builder
	serializeNode(n, &sb)
	return sb.String()
}

func serializeNode(n *Node, sb *strings.Builder) {
	switch n.nodeType {
	case TextNode:
		if p := n.ParentElement(); p != nil && isRawTextElement(p.LocalName()) {
			sb.WriteString(n.data)
		} else {
			sb.WriteString(html.EscapeString(n.data))
		}
	case CommentNode:
		sb.WriteString("<!--")
		sb.WriteString(n.data)
		sb.WriteString("-->")
	case DocumentTypeNode:
		sb.WriteString("<!DOCTYPE ")
		sb.WriteString(n.nodeName)
		sb.WriteString(">")
	case ElementNode:
		el := (*Element)(n)
		tagName := el.LocalName()
		sb.WriteString("<")
		sb.WriteString(tagName)
		for _, attr := range el.Attributes().attrs {
			sb.WriteString(" ")
			sb.WriteString(attr.name)
			sb.WriteString("=\"")
			sb.WriteString(html.EscapeString(attr.value))
			sb.WriteString("\"")
		}
		sb.WriteString(">")
		if isVoidElement(tagName) {
			return
		}
		for child := n.firstChild; child != nil; child = child.nextSibling {
			serializeNode(child, sb)
		}
		sb.WriteString("</")
		sb.WriteString(tagName)
		sb.WriteString(">")
	case DocumentNode, DocumentFragmentNode:
		for child := n.firstChild; child != nil; child = child.nextSibling {
			serializeNode(child, sb)
		}
	}
}

func isVoidElement(tagName string) bool {
	switch lookupAtom(tagName) {
	case atom.Area, atom.Base, atom.Br, atom.Col, atom.Embed, atom.Hr, atom.Img, atom.Input,
		atom.Link, atom.Meta, atom.Param, atom.Source, atom.Track, atom.Wbr:
		return true
	}
	return false
}

func isRawTextElement(tagName string) bool {
	switch lookupAtom(tagName) {
	case atom.Script, atom.Style:
		return true
	}
	return false
}

func lookupAtom(tagName string) atom.Atom {
	return atom.Lookup([]byte(tagName))
}

// parseHTMLFragment parses an HTML fragment in the context of an element.
func parseHTMLFragment(htmlContent string, context *Element) ([]*Node, error) {
	tagName := context.LocalName()
	contextNode := &html.Node{
		Type:     html.ElementNode,
		DataAtom: lookupAtom(tagName),
		Data:     tagName,
	}
	parsed, err := html.ParseFragment(strings.NewReader(htmlContent), contextNode)
	if err != nil {
		return nil, err
	}
	doc := context.ownerDoc
	result := make([]*Node, 0, len(parsed))
	for _, n := range parsed {
		if node := ConvertHTMLNode(n, doc); node != nil {
			result = append(result, node)
		}
	}
	return result, nil
}

// ConvertHTMLNode converts a parsed golang.org/x/net/html node, with its
// descendants, into a node owned by doc. Document nodes are not converted.
func ConvertHTMLNode(n *html.Node, doc *Document) *Node {
	var node *Node
	switch n.Type {
	case html.TextNode:
		node = doc.CreateTextNode(n.Data)
	case html.CommentNode:
		node = doc.CreateComment(n.Data)
	case html.DoctypeNode:
		node = newNode(DocumentTypeNode, n.Data, doc)
	case html.ElementNode:
		el := doc.newElement(n.Data)
		for _, attr := range n.Attr {
			el.Attributes().SetValue(strings.ToLower(attr.Key), attr.Val)
		}
		node = el.AsNode()
	default:
		return nil
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if child := ConvertHTMLNode(c, doc); child != nil {
			node.insertBefore(child, nil)
		}
	}
	return node
}
