package css

import (
	"errors"
	"testing"

	"github.com/chrisuehlinger/htmlkit/dom"
)

// buildTree parses markup into the body of a fresh document.
func buildTree(t *testing.T, markup string) *dom.Document {
	t.Helper()
	doc := dom.NewHTMLDocument()
	if err := doc.Body().SetInnerHTML(markup); err != nil {
		t.Fatalf("SetInnerHTML failed: %v", err)
	}
	return doc
}

func TestParseSelectorSimple(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"div", false},
		{".class", false},
		{"#id", false},
		{"*", false},
		{"div.class", false},
		{"div#id", false},
		{"div.class#id", false},
		{"div.class1.class2", false},
		{"", true},
		{"div..x", true},
		{"#", true},
		{"div >", true},
		{"p::before", true},
		{":hover", true},
		{"a[href", true},
	}

	for _, tt := range tests {
		sel, err := ParseSelector(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseSelector(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && sel == nil {
			t.Errorf("ParseSelector(%q) returned nil selector", tt.input)
		}
	}
}

func TestParseSelectorSyntaxError(t *testing.T) {
	_, err := ParseSelector("div }")
	var syntaxErr *SyntaxError
	if !errors.As(err, &syntaxErr) {
		t.Fatalf("Expected *SyntaxError, got %v", err)
	}
	if syntaxErr.Offset != 4 {
		t.Errorf("Expected offset 4, got %d", syntaxErr.Offset)
	}
}

func TestParseSelectorCombinators(t *testing.T) {
	tests := []struct {
		input       string
		numCompound int
		first       CombinatorType
	}{
		{"div p", 2, CombinatorDescendant},
		{"div > p", 2, CombinatorChild},
		{"div>p", 2, CombinatorChild},
		{"div + p", 2, CombinatorNextSibling},
		{"div ~ p", 2, CombinatorSubsequentSibling},
		{"ul li a", 3, CombinatorDescendant},
		{"div > ul > li", 3, CombinatorChild},
	}

	for _, tt := range tests {
		sel, err := ParseSelector(tt.input)
		if err != nil {
			t.Errorf("ParseSelector(%q) error = %v", tt.input, err)
			continue
		}
		compounds := sel.ComplexSelectors[0].Compounds
		if len(compounds) != tt.numCompound {
			t.Errorf("ParseSelector(%q) got %d compounds, want %d", tt.input, len(compounds), tt.numCompound)
			continue
		}
		if compounds[0].Combinator != tt.first {
			t.Errorf("ParseSelector(%q) got combinator %v, want %v", tt.input, compounds[0].Combinator, tt.first)
		}
	}
}

func TestParseSelectorList(t *testing.T) {
	sel, err := ParseSelector("h1, h2 , .title")
	if err != nil {
		t.Fatalf("ParseSelector error = %v", err)
	}
	if len(sel.ComplexSelectors) != 3 {
		t.Errorf("Expected 3 complex selectors, got %d", len(sel.ComplexSelectors))
	}
}

func TestParseSelectorAttribute(t *testing.T) {
	tests := []struct {
		input    string
		name     string
		operator AttributeOperator
		value    string
		ci       bool
	}{
		{"[disabled]", "disabled", AttrExists, "", false},
		{"[type=text]", "type", AttrEquals, "text", false},
		{"[type=\"a b\"]", "type", AttrEquals, "a b", false},
		{"[class~=foo]", "class", AttrIncludes, "foo", false},
		{"[lang|=en]", "lang", AttrDashMatch, "en", false},
		{"[href^='http']", "href", AttrPrefix, "http", false},
		{"[href$=\".pdf\"]", "href", AttrSuffix, ".pdf", false},
		{"[title*=hello i]", "title", AttrSubstring, "hello", true},
		{"[DATA-X = y]", "data-x", AttrEquals, "y", false},
	}

	for _, tt := range tests {
		sel, err := ParseSelector(tt.input)
		if err != nil {
			t.Errorf("ParseSelector(%q) error = %v", tt.input, err)
			continue
		}
		attr := sel.ComplexSelectors[0].Compounds[0].AttributeMatchers[0]
		if attr.Name != tt.name || attr.Operator != tt.operator || attr.Value != tt.value || attr.CaseInsensitive != tt.ci {
			t.Errorf("ParseSelector(%q) got %+v", tt.input, attr)
		}
	}
}

func TestSelectorMatchElement(t *testing.T) {
	doc := buildTree(t, `
		<div id="main" class="container wide">
			<ul class="list">
				<li class="item first">One</li>
				<li class="item">Two</li>
				<li class="item last"><a href="https://example.com/doc.pdf" lang="en-US">Three</a></li>
			</ul>
			<p>After</p>
			<span>Span</span>
		</div>`)

	tests := []struct {
		selector string
		count    int
	}{
		{"li", 3},
		{"LI", 3},
		{".item", 3},
		{"li.first", 1},
		{"#main", 1},
		{"div#main.container.wide", 1},
		{"*", 8},
		{"div li", 3},
		{"div > li", 0},
		{"ul > li", 3},
		{"div ul li a", 1},
		{"li + li", 2},
		{".first ~ li", 2},
		{"ul ~ span", 1},
		{"ul + p", 1},
		{"ul + span", 0},
		{"[href$='.pdf']", 1},
		{"[lang|=en]", 1},
		{"[href^=https]", 1},
		{"[class~=item]", 3},
		{"[class*=ir]", 1},
		{"p, span, #missing", 2},
		{"body div li.last a", 1},
	}

	for _, tt := range tests {
		results, err := QueryAll(doc.AsNode(), tt.selector)
		if err != nil {
			t.Errorf("QueryAll(%q) error = %v", tt.selector, err)
			continue
		}
		want := tt.count
		if tt.selector == "*" {
			// html, head, body plus the markup
			want += 3
		}
		if len(results) != want {
			t.Errorf("QueryAll(%q) got %d results, want %d", tt.selector, len(results), want)
		}
	}
}

func TestDescendantBacktracking(t *testing.T) {
	doc := buildTree(t, `<section class="a"><div><div class="b"><p id="x">x</p></div></div></section>`)

	el, err := Query(doc.AsNode(), ".a > div p")
	if err != nil {
		t.Fatalf("Query error = %v", err)
	}
	if el == nil || el.Id() != "x" {
		t.Errorf("Expected to match #x, got %v", el)
	}
}

func TestQuerySelectorDocumentOrder(t *testing.T) {
	doc := buildTree(t, `<div><p id="one"></p></div><p id="two"></p>`)

	results, err := QueryAll(doc.AsNode(), "#two, #one")
	if err != nil {
		t.Fatalf("QueryAll error = %v", err)
	}
	if len(results) != 2 || results[0].Id() != "one" || results[1].Id() != "two" {
		t.Errorf("Expected results in document order, got %v", results)
	}

	first, _ := Query(doc.AsNode(), "p")
	if first == nil || first.Id() != "one" {
		t.Errorf("Expected first match #one, got %v", first)
	}
}

func TestQuerySelectorScopedToRoot(t *testing.T) {
	doc := buildTree(t, `<div id="scope"><span></span></div><span></span>`)
	scope := doc.GetElementById("scope")

	results, _ := QueryAll(scope.AsNode(), "span")
	if len(results) != 1 {
		t.Errorf("Expected 1 span inside scope, got %d", len(results))
	}
	self, _ := Query(scope.AsNode(), "#scope")
	if self != nil {
		t.Error("Expected root itself not to be a candidate")
	}
}

func TestPseudoClassMatching(t *testing.T) {
	doc := buildTree(t, `
		<ul><li>1</li><li>2</li><li>3</li></ul>
		<ol><li>only</li></ol>
		<div id="empty"></div>
		<form>
			<input id="c1" type="checkbox" checked>
			<input id="c2" type="checkbox">
			<input id="d" disabled>
			<select><option id="o1">a</option><option id="o2" selected>b</option></select>
		</form>`)

	tests := []struct {
		selector string
		ids      []string
		count    int
	}{
		{"ul li:first-child", nil, 1},
		{"ul li:last-child", nil, 1},
		{"li:only-child", nil, 1},
		{"div:empty", []string{"empty"}, 1},
		{":checked", []string{"c1", "o2"}, 2},
		{"input:disabled", []string{"d"}, 1},
		{"input:enabled", []string{"c1", "c2"}, 2},
		{"input:not([disabled])", []string{"c1", "c2"}, 2},
		{"li:not(:first-child, :last-child)", nil, 1},
		{":root", nil, 1},
	}

	for _, tt := range tests {
		results, err := QueryAll(doc.AsNode(), tt.selector)
		if err != nil {
			t.Errorf("QueryAll(%q) error = %v", tt.selector, err)
			continue
		}
		if len(results) != tt.count {
			t.Errorf("QueryAll(%q) got %d results, want %d", tt.selector, len(results), tt.count)
			continue
		}
		for i, id := range tt.ids {
			if results[i].Id() != id {
				t.Errorf("QueryAll(%q)[%d] got id %q, want %q", tt.selector, i, results[i].Id(), id)
			}
		}
	}
}

func TestCheckedFollowsState(t *testing.T) {
	doc := buildTree(t, `<input id="box" type="checkbox">`)
	box := doc.GetElementById("box")

	if ok, _ := Matches(box, ":checked"); ok {
		t.Error("Expected unchecked box not to match :checked")
	}
	box.SetChecked(true)
	if ok, _ := Matches(box, "input:checked"); !ok {
		t.Error("Expected checked box to match :checked")
	}
}

func TestAttributeMatchingCaseInsensitive(t *testing.T) {
	doc := buildTree(t, `<input id="x" type="TEXT">`)
	el := doc.GetElementById("x")

	if ok, _ := Matches(el, "[type=text]"); ok {
		t.Error("Expected case-sensitive match to fail")
	}
	if ok, _ := Matches(el, "[type=text i]"); !ok {
		t.Error("Expected case-insensitive match to succeed")
	}
}

func TestMatchesInvalidSelector(t *testing.T) {
	doc := dom.NewDocument()
	el := doc.CreateElement("div")

	if _, err := Matches(el, "div["); err == nil {
		t.Error("Expected error for invalid selector")
	}
}
