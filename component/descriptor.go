package component

import (
	"errors"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"
	"unicode"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/chrisuehlinger/htmlkit/dom"
)

// Descriptor configures an element in one call. Every field is optional and
// applied only when set.
type Descriptor struct {
	// Type is the tag name; it defaults to "div".
	Type    string            `yaml:"type"`
	ID      string            `yaml:"id"`
	Classes ClassList         `yaml:"classes"`
	Attrs   map[string]string `yaml:"attrs"`
	Styles  map[string]string `yaml:"styles"`
	// Value seeds the bound property.
	Value any `yaml:"value"`
	// TextContent seeds the text of elements whose value is not their text.
	TextContent *string      `yaml:"textContent"`
	Children    []Descriptor `yaml:"children"`
	// Adopt reuses the element with the same ID when the document has one.
	Adopt bool `yaml:"adopt"`

	Events  map[string][]*dom.Listener `yaml:"-"`
	Clients []Client                   `yaml:"-"`
}

// ClassList is a list of class names. In YAML it is either a sequence or a
// string of names separated by commas or whitespace.
type ClassList []string

// SplitClasses splits s on commas and whitespace.
func SplitClasses(s string) ClassList {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (c *ClassList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		*c = SplitClasses(value.Value)
		return nil
	case yaml.SequenceNode:
		var names []string
		if err := value.Decode(&names); err != nil {
			return fmt.Errorf("classes: %w", err)
		}
		*c = names
		return nil
	}
	return fmt.Errorf("classes: line %d: expected a string or a list", value.Line)
}

// Create builds an element from d. See Descriptor for the fields. The input
// type used for the binding comes from Attrs["type"], or from the adopted
// element when Attrs has none. It returns nil when Type is not a valid tag
// name.
func Create(doc *dom.Document, d Descriptor) *Element {
	if doc == nil {
		return nil
	}
	tag := d.Type
	if tag == "" {
		tag = "div"
	}

	var el *dom.Element
	if d.Adopt && d.ID != "" {
		el = doc.GetElementById(d.ID)
	}
	inputType := d.Attrs["type"]
	if el != nil {
		if inputType == "" {
			inputType = el.Type()
		}
	} else {
		var err error
		if el, err = doc.CreateElementWithError(tag); err != nil {
			logger().Debug("Invalid descriptor type.", zap.String("type", tag), zap.Error(err))
			return nil
		}
	}

	e := newElement(el, BindingFor(el.TagName(), inputType))
	if d.ID != "" {
		e.SetID(d.ID)
	}
	if len(d.Classes) > 0 {
		e.SetClasses(d.Classes)
	}
	e.SetAttrs(d.Attrs)
	e.SetStyles(d.Styles)
	e.AddChildren(d.Children...)

	if d.TextContent != nil && (e.binding != BindText || d.Value == nil) {
		e.SetTextContent(*d.TextContent)
	}
	if d.Value != nil {
		e.SetValue(d.Value)
	}

	for _, event := range slices.Sorted(maps.Keys(d.Events)) {
		for _, l := range d.Events[event] {
			e.AddEventListener(event, l)
		}
	}
	for _, c := range d.Clients {
		e.AddClient(c.key(), c.Callback)
	}
	return e
}

// LoadDescriptors decodes descriptors from YAML. The document is either a
// list of descriptors or a single descriptor. An empty document yields none.
func LoadDescriptors(r io.Reader) ([]Descriptor, error) {
	var root yaml.Node
	if err := yaml.NewDecoder(r).Decode(&root); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("decode descriptors: %w", err)
	}
	if len(root.Content) == 0 {
		return nil, nil
	}

	node := root.Content[0]
	switch node.Kind {
	case yaml.SequenceNode:
		var ds []Descriptor
		if err := node.Decode(&ds); err != nil {
			return nil, fmt.Errorf("decode descriptors: %w", err)
		}
		return ds, nil
	case yaml.MappingNode:
		var d Descriptor
		if err := node.Decode(&d); err != nil {
			return nil, fmt.Errorf("decode descriptor: %w", err)
		}
		return []Descriptor{d}, nil
	}
	return nil, fmt.Errorf("decode descriptors: line %d: expected a list or a mapping", node.Line)
}

// Build creates an element for each descriptor and appends it to parent.
// Adopted elements that already have a parent stay where they are.
func Build(doc *dom.Document, parent Container, ds []Descriptor) []*Element {
	built := make([]*Element, 0, len(ds))
	for _, d := range ds {
		e := Create(doc, d)
		if e == nil {
			continue
		}
		if e.Node().ParentNode() == nil {
			e.AppendTo(parent)
		}
		built = append(built, e)
	}
	return built
}
