package component

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chrisuehlinger/htmlkit/dom"
)

func TestBindingFor(t *testing.T) {
	tests := []struct {
		tag       string
		inputType string
		want      BindingKind
	}{
		{"div", "", BindText},
		{"LI", "", BindText},
		{"span", "", BindText},
		{"p", "", BindText},
		{"button", "", BindText},
		{"label", "", BindText},
		{"a", "", BindText},
		{"input", "", BindValue},
		{"input", "text", BindValue},
		{"input", "number", BindValue},
		{"input", "checkbox", BindChecked},
		{"INPUT", " Radio ", BindChecked},
		{"textarea", "", BindValue},
		{"select", "", BindValue},
		{"option", "", BindValue},
		{"img", "", BindNone},
		{"section", "", BindNone},
		{"div", "checkbox", BindText},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, BindingFor(tt.tag, tt.inputType), "BindingFor(%q, %q)", tt.tag, tt.inputType)
	}
	assert.Equal(t, "checked", BindChecked.String())
	assert.Equal(t, "none", BindNone.String())
}

func TestTextBinding(t *testing.T) {
	doc := dom.NewHTMLDocument()

	for _, tag := range []string{"div", "li", "span", "p", "button", "label", "a"} {
		e := New(doc, tag)
		require.NotNil(t, e, tag)
		assert.Equal(t, BindText, e.Binding(), tag)

		e.SetValue("hello")
		assert.Equal(t, "hello", e.Node().TextContent(), tag)
		assert.Equal(t, "hello", e.Value(), tag)

		e.SetValue(nil)
		assert.Equal(t, "", e.Value(), tag)

		e.SetValue(42)
		assert.Equal(t, "42", e.Text(), tag)
	}
}

func TestCheckedBinding(t *testing.T) {
	doc := dom.NewHTMLDocument()
	box := Create(doc, Descriptor{Type: "input", Attrs: map[string]string{"type": "checkbox"}})
	require.NotNil(t, box)
	assert.Equal(t, BindChecked, box.Binding())
	assert.Equal(t, false, box.Value())

	box.SetValue(true)
	assert.True(t, box.Node().Checked())
	assert.Equal(t, true, box.Value())

	box.SetValue("")
	assert.Equal(t, false, box.Value())
	box.SetValue("yes")
	assert.Equal(t, true, box.Value())
	box.SetValue("false")
	assert.Equal(t, false, box.Value())
	box.SetValue(1)
	assert.Equal(t, true, box.Value())
	box.SetValue(nil)
	assert.Equal(t, false, box.Value())
}

func TestValueBinding(t *testing.T) {
	doc := dom.NewHTMLDocument()

	input := New(doc, "input")
	assert.Equal(t, BindValue, input.Binding())
	input.SetValue("typed")
	assert.Equal(t, "typed", input.Value())
	input.SetValue(3.5)
	assert.Equal(t, "3.5", input.Value())

	area := New(doc, "textarea")
	area.SetValue("notes")
	assert.Equal(t, "notes", area.Value())

	sel := Create(doc, Descriptor{
		Type: "select",
		Children: []Descriptor{
			{Type: "option", Attrs: map[string]string{"value": "a"}, TextContent: ptr("A")},
			{Type: "option", Attrs: map[string]string{"value": "b"}, TextContent: ptr("B")},
		},
		Value: "b",
	})
	require.NotNil(t, sel)
	assert.Equal(t, "b", sel.Value())
	sel.SetValue("a")
	assert.Equal(t, "a", sel.Value())
}

func TestNoBinding(t *testing.T) {
	doc := dom.NewHTMLDocument()
	img := New(doc, "img")
	require.NotNil(t, img)
	assert.Equal(t, BindNone, img.Binding())
	assert.Nil(t, img.Value())

	img.SetValue("ignored")
	assert.Nil(t, img.Value())
	assert.False(t, img.Node().HasAttribute("value"))
}

func TestBindingFixedAtConstruction(t *testing.T) {
	doc := dom.NewHTMLDocument()
	input := New(doc, "input")
	input.SetAttr("type", "checkbox")

	assert.Equal(t, BindValue, input.Binding())
	assert.Equal(t, BindChecked, Wrap(input.Node()).Binding())
}

func TestNew_InvalidTag(t *testing.T) {
	doc := dom.NewHTMLDocument()
	assert.Nil(t, New(doc, "not valid"))
	assert.Nil(t, New(nil, "div"))
}

func TestWrap(t *testing.T) {
	doc := dom.NewHTMLDocument()
	el := doc.CreateElement("input")
	el.SetAttribute("type", "radio")

	e := Wrap(el)
	require.NotNil(t, e)
	assert.Same(t, el, e.Node())
	assert.Equal(t, "INPUT", e.TagName())
	assert.Equal(t, BindChecked, e.Binding())
	assert.Nil(t, Wrap(nil))
}

func TestFrom(t *testing.T) {
	doc := dom.NewHTMLDocument()
	el := doc.CreateElement("p")

	assert.Equal(t, "SPAN", From(doc, "span").TagName())
	assert.Same(t, el, From(doc, el).Node())
	assert.Same(t, el, From(doc, Wrap(el)).Node())
	assert.Equal(t, "UL", From(doc, Descriptor{Type: "ul"}).TagName())
	assert.Equal(t, "DIV", From(doc, &Descriptor{}).TagName())
	assert.Nil(t, From(doc, 12))
	assert.Nil(t, From(doc, (*Descriptor)(nil)))
}

func TestClasses(t *testing.T) {
	doc := dom.NewHTMLDocument()
	e := New(doc, "div")

	e.SetClasses([]string{"a", "b"})
	assert.Equal(t, "a b", e.Classes())

	e.SetClasses("x  y")
	assert.Equal(t, "x  y", e.Classes())

	e.SetClasses([]any{"m", 1})
	assert.Equal(t, "m 1", e.Classes())

	e.SetClasses(7)
	assert.Equal(t, "7", e.Classes())

	e.SetClasses(nil).AddClass("one").AddClasses("two", "", "three").RemoveClass("two").RemoveClass("")
	assert.Equal(t, "one three", e.Classes())

	e.AddClass("bad name")
	assert.Equal(t, "one three", e.Classes())
}

func TestAttrs(t *testing.T) {
	doc := dom.NewHTMLDocument()
	e := New(doc, "a")
	e.SetAttr("href", "/home")

	e.SetAttrs(map[string]string{"target": "_blank", "title": "Home"})
	want := map[string]string{"href": "/home", "target": "_blank", "title": "Home"}
	if diff := cmp.Diff(want, e.Attrs()); diff != "" {
		t.Errorf("Attrs() mismatch (-want +got):\n%s", diff)
	}

	// The returned map is a copy.
	attrs := e.Attrs()
	attrs["href"] = "/changed"
	assert.Equal(t, "/home", e.Node().GetAttribute("href"))

	e.SetAttr("", "ignored").SetAttr("a=b", "ignored")
	assert.Len(t, e.Attrs(), 3)
}

func TestStyles(t *testing.T) {
	doc := dom.NewHTMLDocument()
	e := New(doc, "div")
	e.SetStyle("color", "red")
	e.SetStyles(map[string]string{"display": "block", "marginTop": "4px"})

	want := map[string]string{"color": "red", "display": "block", "margin-top": "4px"}
	if diff := cmp.Diff(want, e.Styles()); diff != "" {
		t.Errorf("Styles() mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, "color: red; display: block; margin-top: 4px;", e.Node().GetAttribute("style"))

	e.SetStyle("color", "")
	assert.NotContains(t, e.Styles(), "color")
}

func TestTextContentAlwaysAvailable(t *testing.T) {
	doc := dom.NewHTMLDocument()
	area := New(doc, "textarea")
	area.SetTextContent("default")
	assert.Equal(t, "default", area.TextContent())
	assert.Equal(t, "default", area.Value())
}

func TestClone(t *testing.T) {
	doc := dom.NewHTMLDocument()
	src := Create(doc, Descriptor{
		Type:    "div",
		ID:      "src",
		Classes: ClassList{"card", "big"},
		Attrs:   map[string]string{"data-x": "1"},
		Styles:  map[string]string{"color": "blue"},
	})
	src.AddChild(Descriptor{Type: "span", Value: "inner"})

	clicks := 0
	l := src.On("click", func(*dom.Event) { clicks++ })
	target := New(doc, "div")
	src.AddClient(target, nil)

	clone := src.Clone(false)
	require.NotNil(t, clone)
	assert.NotSame(t, src.Node(), clone.Node())
	assert.Equal(t, src.Classes(), clone.Classes())
	assert.Equal(t, src.Attrs(), clone.Attrs())
	assert.Equal(t, src.Styles(), clone.Styles())
	assert.Equal(t, "inner", clone.Value())
	assert.NotNil(t, clone.GetChild("span"), "deep clone keeps child elements")
	assert.Empty(t, clone.Clients())
	assert.Empty(t, clone.Listeners("click"))

	clone.Dispatch("click")
	assert.Equal(t, 0, clicks)

	withEvents := src.Clone(true)
	require.Len(t, withEvents.Listeners("click"), 1)
	assert.Same(t, l, withEvents.Listeners("click")[0])
	withEvents.Dispatch("click")
	assert.Equal(t, 1, clicks)
	assert.Empty(t, withEvents.Clients())
}

func TestClone_FormState(t *testing.T) {
	doc := dom.NewHTMLDocument()
	box := Create(doc, Descriptor{Type: "input", Attrs: map[string]string{"type": "checkbox"}, Value: true})

	clone := box.Clone(false)
	assert.Equal(t, BindChecked, clone.Binding())
	assert.Equal(t, true, clone.Value())

	clone.SetValue(false)
	assert.Equal(t, true, box.Value())
}

func TestOuterHTML(t *testing.T) {
	doc := dom.NewHTMLDocument()
	e := Create(doc, Descriptor{Type: "p", ID: "x", Value: "hi"})
	assert.Equal(t, `<p id="x">hi</p>`, e.OuterHTML())
}

func ptr[T any](v T) *T {
	return &v
}
