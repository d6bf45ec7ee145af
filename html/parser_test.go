package html

import (
	"strings"
	"testing"

	"github.com/chrisuehlinger/htmlkit/dom"
)

func TestParse_BasicDocument(t *testing.T) {
	input := `<!DOCTYPE html>
<html>
<head><title>Test</title></head>
<body><p>Hello, World!</p></body>
</html>`

	doc, err := Parse(input)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if doc.NodeType() != dom.DocumentNode {
		t.Errorf("Expected DocumentNode, got %v", doc.NodeType())
	}
	if doc.AsNode().FirstChild().NodeType() != dom.DocumentTypeNode {
		t.Errorf("Expected doctype first, got %v", doc.AsNode().FirstChild().NodeType())
	}
	if doc.Head() == nil {
		t.Error("Missing head element")
	}
	if doc.Body() == nil {
		t.Fatal("Missing body element")
	}
	if doc.Title() != "Test" {
		t.Errorf("Expected title 'Test', got '%s'", doc.Title())
	}
	if doc.Body().TextContent() != "Hello, World!" {
		t.Errorf("Expected body text 'Hello, World!', got '%s'", doc.Body().TextContent())
	}
}

func TestParse_MalformedHTML(t *testing.T) {
	// HTML5 parser should handle malformed HTML gracefully
	input := `<p>unclosed paragraph<div>nested div</p></div>`

	doc, err := Parse(input)
	if err != nil {
		t.Fatalf("Parse failed on malformed HTML: %v", err)
	}
	if doc.Body() == nil {
		t.Fatal("Expected body to be synthesized")
	}
	if len(doc.GetElementsByTagName("div")) != 1 {
		t.Errorf("Expected one div, got %d", len(doc.GetElementsByTagName("div")))
	}
}

func TestParse_Attributes(t *testing.T) {
	input := `<div id="main" class="a b" data-Value="123" style="color: red"></div>`

	doc, err := ParseReader(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	div := doc.GetElementById("main")
	if div == nil {
		t.Fatal("Could not find div#main")
	}
	if !div.ClassList().Contains("b") {
		t.Error("Expected class 'b'")
	}
	if div.GetAttribute("data-value") != "123" {
		t.Errorf("Expected data-value '123', got '%s'", div.GetAttribute("data-value"))
	}
	if div.Style().GetPropertyValue("color") != "red" {
		t.Errorf("Expected inline color 'red', got '%s'", div.Style().GetPropertyValue("color"))
	}
}

func TestParseFragment(t *testing.T) {
	doc := dom.NewHTMLDocument()
	nodes, err := ParseFragment(`<li>a</li><li>b</li>text`, doc.CreateElement("ul"))
	if err != nil {
		t.Fatalf("ParseFragment failed: %v", err)
	}
	if len(nodes) != 3 {
		t.Fatalf("Expected 3 nodes, got %d", len(nodes))
	}
	for _, n := range nodes {
		if n.ParentNode() != nil {
			t.Error("Expected fragment nodes to be detached")
		}
		if n.OwnerDocument() != doc {
			t.Error("Expected fragment nodes to belong to the context document")
		}
	}
}

func TestResources(t *testing.T) {
	doc, err := Parse(`<html><head>
		<link rel="stylesheet" href="a.css">
		<link rel="icon" href="favicon.ico">
		<script src="app.js" defer></script>
		<script>var inline = 1;</script>
		<script type="application/json">{}</script>
	</head><body><link rel="Alternate STYLESHEET" href="b.css"></body></html>`)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	resources := Resources(doc)
	expected := []Resource{
		{Kind: "stylesheet", URL: "a.css"},
		{Kind: "script", URL: "app.js"},
		{Kind: "stylesheet", URL: "b.css"},
	}
	if len(resources) != len(expected) {
		t.Fatalf("Expected %d resources, got %v", len(expected), resources)
	}
	for i := range expected {
		if resources[i] != expected[i] {
			t.Errorf("Resource %d: expected %v, got %v", i, expected[i], resources[i])
		}
	}

	scripts := InlineScripts(doc)
	if len(scripts) != 1 || scripts[0] != "var inline = 1;" {
		t.Errorf("Expected one inline script, got %q", scripts)
	}
}
