package component

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chrisuehlinger/htmlkit/dom"
)

func TestCreate_Defaults(t *testing.T) {
	doc := dom.NewHTMLDocument()
	e := Create(doc, Descriptor{})
	require.NotNil(t, e)
	assert.Equal(t, "DIV", e.TagName())
	assert.Equal(t, BindText, e.Binding())
	assert.Empty(t, e.Attrs())
	assert.Nil(t, e.Node().ParentNode())

	assert.Nil(t, Create(doc, Descriptor{Type: "1bad"}))
	assert.Nil(t, Create(nil, Descriptor{}))
}

func TestCreate_Scenarios(t *testing.T) {
	doc := dom.NewHTMLDocument()

	box := Create(doc, Descriptor{Type: "input", Attrs: map[string]string{"type": "checkbox"}})
	box.SetValue(true)
	assert.Equal(t, true, box.Value())

	div := Create(doc, Descriptor{Type: "div", ID: "x"})
	div.SetValue("hi")
	assert.Equal(t, "hi", div.Node().TextContent())
	assert.Equal(t, "x", div.ID())
}

func TestCreate_ClassesRoundTrip(t *testing.T) {
	doc := dom.NewHTMLDocument()
	e := Create(doc, Descriptor{Classes: ClassList{"a", "b"}})

	assert.Equal(t, "a b", e.Classes())
	assert.Equal(t, []string{"a", "b"}, e.Node().ClassList().Values())
}

func TestCreate_AllFields(t *testing.T) {
	doc := dom.NewHTMLDocument()
	e := Create(doc, Descriptor{
		Type:    "input",
		ID:      "email",
		Classes: SplitClasses("field, wide"),
		Attrs:   map[string]string{"type": "email", "placeholder": "you@example.com"},
		Styles:  map[string]string{"width": "10em"},
		Value:   "me@example.com",
	})

	assert.Equal(t, BindValue, e.Binding())
	assert.Equal(t, "me@example.com", e.Value())
	assert.Equal(t, "field wide", e.Classes())
	want := map[string]string{
		"id":          "email",
		"class":       "field wide",
		"type":        "email",
		"placeholder": "you@example.com",
		"style":       "width: 10em;",
	}
	if diff := cmp.Diff(want, e.Attrs()); diff != "" {
		t.Errorf("Attrs() mismatch (-want +got):\n%s", diff)
	}
}

func TestCreate_ValueSeeding(t *testing.T) {
	doc := dom.NewHTMLDocument()

	checked := Create(doc, Descriptor{Type: "input", Attrs: map[string]string{"type": "radio"}, Value: "on"})
	assert.Equal(t, true, checked.Value())

	unseeded := Create(doc, Descriptor{Type: "input", Attrs: map[string]string{"value": "from-attr"}})
	assert.Equal(t, "from-attr", unseeded.Value())

	text := Create(doc, Descriptor{Type: "p", Value: "value wins", TextContent: ptr("ignored")})
	assert.Equal(t, "value wins", text.Value())

	textOnly := Create(doc, Descriptor{Type: "p", TextContent: ptr("from text")})
	assert.Equal(t, "from text", textOnly.Value())

	area := Create(doc, Descriptor{Type: "textarea", TextContent: ptr("default"), Value: "current"})
	assert.Equal(t, "default", area.TextContent())
	assert.Equal(t, "current", area.Value())

	none := Create(doc, Descriptor{Type: "section", TextContent: ptr("body text"), Value: "dropped"})
	assert.Equal(t, "body text", none.TextContent())
	assert.Nil(t, none.Value())
}

func TestCreate_Adopt(t *testing.T) {
	doc := dom.NewHTMLDocument()
	existing := doc.CreateElement("input")
	existing.SetAttribute("id", "agree")
	existing.SetAttribute("type", "checkbox")
	doc.Body().Append(existing.AsNode())

	adopted := Create(doc, Descriptor{ID: "agree", Adopt: true, Value: true, Classes: ClassList{"on"}})
	assert.Same(t, existing, adopted.Node())
	assert.Equal(t, BindChecked, adopted.Binding())
	assert.True(t, existing.Checked())
	assert.Equal(t, "on", existing.ClassName())

	// Without Adopt a fresh element is created even when the id exists.
	fresh := Create(doc, Descriptor{ID: "agree"})
	assert.NotSame(t, existing, fresh.Node())

	// Adopt with an unknown id falls back to creating the element.
	created := Create(doc, Descriptor{Type: "span", ID: "new", Adopt: true})
	assert.Equal(t, "SPAN", created.TagName())
}

func TestLoadDescriptors(t *testing.T) {
	input := `
- type: ul
  id: menu
  classes: "nav, main"
  styles:
    display: flex
  children:
    - type: li
      value: Home
    - type: li
      classes: [active, item]
      value: About
- type: input
  attrs:
    type: checkbox
  value: true
- type: textarea
  textContent: hello
`
	ds, err := LoadDescriptors(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, ds, 3)

	assert.Equal(t, ClassList{"nav", "main"}, ds[0].Classes)
	assert.Equal(t, ClassList{"active", "item"}, ds[0].Children[1].Classes)
	assert.Equal(t, true, ds[1].Value)
	require.NotNil(t, ds[2].TextContent)
	assert.Equal(t, "hello", *ds[2].TextContent)

	doc := dom.NewHTMLDocument()
	built := Build(doc, doc.Body(), ds)
	require.Len(t, built, 3)
	assert.Equal(t,
		`<ul id="menu" class="nav main" style="display: flex;"><li>Home</li><li class="active item">About</li></ul>`,
		built[0].OuterHTML())
	assert.Equal(t, true, built[1].Value())
	assert.Equal(t, 3, doc.Body().ChildElementCount())
}

func TestLoadDescriptors_SingleAndEmpty(t *testing.T) {
	ds, err := LoadDescriptors(strings.NewReader("type: p\nvalue: one\n"))
	require.NoError(t, err)
	require.Len(t, ds, 1)
	assert.Equal(t, "p", ds[0].Type)

	ds, err = LoadDescriptors(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, ds)
}

func TestLoadDescriptors_Errors(t *testing.T) {
	_, err := LoadDescriptors(strings.NewReader("just a string"))
	assert.Error(t, err)

	_, err = LoadDescriptors(strings.NewReader("- classes: {a: b}\n"))
	assert.ErrorContains(t, err, "classes")

	_, err = LoadDescriptors(strings.NewReader("- type: [unclosed"))
	assert.Error(t, err)
}

func TestBuild_AdoptedStaysInPlace(t *testing.T) {
	doc := dom.NewHTMLDocument()
	header := doc.CreateElement("header")
	header.SetId("top")
	doc.Body().Append(header.AsNode())
	content := doc.CreateElement("main")
	doc.Body().Append(content.AsNode())

	built := Build(doc, content, []Descriptor{{ID: "top", Adopt: true, TextContent: ptr("Title")}, {Type: "p"}})
	require.Len(t, built, 2)
	assert.Same(t, doc.Body().AsNode(), header.ParentNode())
	assert.Equal(t, "Title", header.TextContent())
	assert.Equal(t, 1, content.ChildElementCount())
}
