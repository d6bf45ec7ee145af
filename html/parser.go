// Package html builds dom documents using golang.org/x/net/html as the
// underlying parser implementation.
package html

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/chrisuehlinger/htmlkit/dom"
)

// Parse parses an HTML document into a dom.Document. The HTML5 parsing
// algorithm always produces html, head and body elements.
func Parse(htmlContent string) (*dom.Document, error) {
	return ParseReader(strings.NewReader(htmlContent))
}

// ParseReader parses an HTML document from a reader.
func ParseReader(r io.Reader) (*dom.Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	doc := dom.NewDocument()
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if node := dom.ConvertHTMLNode(c, doc); node != nil {
			if _, err := doc.AsNode().AppendChildWithError(node); err != nil {
				return nil, fmt.Errorf("build document: %w", err)
			}
		}
	}
	return doc, nil
}

// ParseFragment parses markup as if it were the content of context. The
// returned nodes belong to the context's document but are not attached.
func ParseFragment(fragment string, context *dom.Element) ([]*dom.Node, error) {
	doc := context.OwnerDocument()
	if doc == nil {
		return nil, fmt.Errorf("parse fragment: context element has no document")
	}

	ctx := &html.Node{
		Type:     html.ElementNode,
		Data:     context.LocalName(),
		DataAtom: atom.Lookup([]byte(context.LocalName())),
	}
	nodes, err := html.ParseFragment(strings.NewReader(fragment), ctx)
	if err != nil {
		return nil, fmt.Errorf("parse fragment: %w", err)
	}

	result := make([]*dom.Node, 0, len(nodes))
	for _, n := range nodes {
		if node := dom.ConvertHTMLNode(n, doc); node != nil {
			result = append(result, node)
		}
	}
	return result, nil
}

// Resource is an external stylesheet or script referenced by a document.
type Resource struct {
	Kind string // "stylesheet" or "script"
	URL  string
}

// Resources lists the stylesheets and scripts a document links to, in
// document order.
func Resources(doc *dom.Document) []Resource {
	var resources []Resource
	for _, el := range doc.GetElementsByTagName("*") {
		switch el.LocalName() {
		case "link":
			if hasToken(el.GetAttribute("rel"), "stylesheet") && el.GetAttribute("href") != "" {
				resources = append(resources, Resource{Kind: "stylesheet", URL: el.GetAttribute("href")})
			}
		case "script":
			if src := el.GetAttribute("src"); src != "" {
				resources = append(resources, Resource{Kind: "script", URL: src})
			}
		}
	}
	return resources
}

// InlineScripts returns the text of the scripts without a src attribute.
func InlineScripts(doc *dom.Document) []string {
	var scripts []string
	for _, el := range doc.GetElementsByTagName("script") {
		if el.HasAttribute("src") {
			continue
		}
		if t := strings.ToLower(el.GetAttribute("type")); t != "" && t != "text/javascript" && t != "module" {
			continue
		}
		scripts = append(scripts, el.TextContent())
	}
	return scripts
}

func hasToken(list, token string) bool {
	for _, f := range strings.Fields(list) {
		if strings.EqualFold(f, token) {
			return true
		}
	}
	return false
}
