// Package render writes document trees as HTML text, either compact or
// indented one node per line.
package render

import (
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/chrisuehlinger/htmlkit/dom"
)

// Options controls the output.
type Options struct {
	Pretty bool
	Indent string // defaults to two spaces
}

// line is one entry of the display list built for pretty output.
type line struct {
	depth int
	text  string
}

// Write renders n to w.
func Write(w io.Writer, n *dom.Node, opts Options) error {
	if n == nil {
		return nil
	}
	if !opts.Pretty {
		_, err := io.WriteString(w, dom.Serialize(n))
		return err
	}

	indent := opts.Indent
	if indent == "" {
		indent = "  "
	}
	var sb strings.Builder
	for _, l := range buildDisplayList(n) {
		sb.WriteString(strings.Repeat(indent, l.depth))
		sb.WriteString(l.text)
		sb.WriteByte('\n')
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

// String renders n and returns the result.
func String(n *dom.Node, opts Options) string {
	var sb strings.Builder
	_ = Write(&sb, n, opts)
	return sb.String()
}

func buildDisplayList(n *dom.Node) []line {
	var list []line
	var walk func(n *dom.Node, depth int)
	walk = func(n *dom.Node, depth int) {
		switch n.NodeType() {
		case dom.DocumentNode, dom.DocumentFragmentNode:
			for c := n.FirstChild(); c != nil; c = c.NextSibling() {
				walk(c, depth)
			}
		case dom.DocumentTypeNode:
			list = append(list, line{depth, "<!DOCTYPE " + n.NodeName() + ">"})
		case dom.CommentNode:
			list = append(list, line{depth, "<!--" + n.NodeValue() + "-->"})
		case dom.TextNode:
			if text := strings.TrimSpace(n.NodeValue()); text != "" {
				list = append(list, line{depth, html.EscapeString(text)})
			}
		case dom.ElementNode:
			el := (*dom.Element)(n)
			if inline(el) {
				list = append(list, line{depth, dom.Serialize(n)})
				return
			}
			list = append(list, line{depth, startTag(el)})
			for c := n.FirstChild(); c != nil; c = c.NextSibling() {
				walk(c, depth+1)
			}
			list = append(list, line{depth, "</" + el.LocalName() + ">"})
		}
	}
	walk(n, 0)
	return list
}

// inline reports whether an element is printed on a single line: it has no
// element children, or its content is whitespace-sensitive.
func inline(el *dom.Element) bool {
	switch atom.Lookup([]byte(el.LocalName())) {
	case atom.Pre, atom.Textarea, atom.Script, atom.Style:
		return true
	}
	return el.ChildElementCount() == 0
}

func startTag(el *dom.Element) string {
	var sb strings.Builder
	sb.WriteString("<")
	sb.WriteString(el.LocalName())
	attrs := el.Attributes()
	for i := 0; i < attrs.Length(); i++ {
		a := attrs.Item(i)
		sb.WriteString(" ")
		sb.WriteString(a.Name())
		sb.WriteString(`="`)
		sb.WriteString(html.EscapeString(a.Value()))
		sb.WriteString(`"`)
	}
	sb.WriteString(">")
	return sb.String()
}
