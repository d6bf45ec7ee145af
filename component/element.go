// Package component provides Element, a chainable facade over a live
// dom.Element with a uniform value binding, recorded event listeners and
// change propagation to client elements.
package component

import (
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cast"
	"go.uber.org/zap"

	"github.com/chrisuehlinger/htmlkit/dom"
	"github.com/chrisuehlinger/htmlkit/logging"
)

// Element wraps exactly one dom.Element. The zero value and a nil *Element
// are inert: every method is a no-op and getters return zero values. Destroy
// returns an Element to that state.
type Element struct {
	node    *dom.Element
	tag     string
	binding BindingKind

	// events records listeners added through the facade, for teardown.
	events map[string][]*dom.Listener
	// clients maps a client key to the change listener installed for it.
	clients     map[any]*dom.Listener
	clientOrder []any
}

func logger() *zap.Logger {
	return logging.L().Named("component")
}

// New creates an element with the given tag name. It returns nil when the
// tag name is not a valid element name.
func New(doc *dom.Document, tag string) *Element {
	if doc == nil {
		return nil
	}
	el, err := doc.CreateElementWithError(tag)
	if err != nil {
		logger().Debug("Invalid tag name.", zap.String("tag", tag), zap.Error(err))
		return nil
	}
	return newElement(el, BindingFor(el.TagName(), el.Type()))
}

// Wrap adopts an existing element without cloning it. The binding is derived
// from the tag name and, for inputs, the current type attribute.
func Wrap(el *dom.Element) *Element {
	if el == nil {
		return nil
	}
	return newElement(el, BindingFor(el.TagName(), el.Type()))
}

// From builds an element from a tag name, an existing node, another facade
// or a descriptor. Any other input yields nil.
func From(doc *dom.Document, v any) *Element {
	switch x := v.(type) {
	case string:
		return New(doc, x)
	case *dom.Element:
		return Wrap(x)
	case *Element:
		if x == nil || x.node == nil {
			return nil
		}
		return Wrap(x.node)
	case Descriptor:
		return Create(doc, x)
	case *Descriptor:
		if x == nil {
			return nil
		}
		return Create(doc, *x)
	}
	return nil
}

func newElement(el *dom.Element, binding BindingKind) *Element {
	return &Element{
		node:    el,
		tag:     el.TagName(),
		binding: binding,
	}
}

func (e *Element) alive() bool {
	return e != nil && e.node != nil
}

// Node returns the wrapped element, or nil once destroyed.
func (e *Element) Node() *dom.Element {
	if !e.alive() {
		return nil
	}
	return e.node
}

// AsNode returns the wrapped node so an Element can serve as a Container.
func (e *Element) AsNode() *dom.Node {
	if !e.alive() {
		return nil
	}
	return e.node.AsNode()
}

// TagName returns the uppercased tag name fixed at construction.
func (e *Element) TagName() string {
	if e == nil {
		return ""
	}
	return e.tag
}

// Binding returns the value binding fixed at construction.
func (e *Element) Binding() BindingKind {
	if e == nil {
		return BindNone
	}
	return e.binding
}

// Destroyed reports whether Destroy has been called.
func (e *Element) Destroyed() bool {
	return !e.alive()
}

// Value returns the bound value: a string for text and value bindings, a
// bool for the checked binding and nil when the element has no binding.
func (e *Element) Value() any {
	if !e.alive() {
		return nil
	}
	switch e.binding {
	case BindText:
		return e.node.TextContent()
	case BindValue:
		return e.node.Value()
	case BindChecked:
		return e.node.Checked()
	}
	return nil
}

// Text returns the bound value as a string.
func (e *Element) Text() string {
	if v := e.Value(); v != nil {
		return cast.ToString(v)
	}
	return ""
}

// SetValue writes the bound property. The checked binding coerces v to a
// bool; the other bindings coerce it to a string with nil as "".
func (e *Element) SetValue(v any) *Element {
	if !e.alive() {
		return e
	}
	switch e.binding {
	case BindText:
		e.node.SetTextContent(toString(v))
	case BindValue:
		e.node.SetValue(toString(v))
	case BindChecked:
		e.node.SetChecked(toBool(v))
	default:
		logger().Debug("SetValue on element without binding.", zap.String("tag", e.tag))
	}
	return e
}

func toString(v any) string {
	if v == nil {
		return ""
	}
	return cast.ToString(v)
}

// toBool follows the truthiness of scripting languages for values that do
// not parse as a bool: non-empty strings and non-nil values are true.
func toBool(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case string:
		if b, err := strconv.ParseBool(x); err == nil {
			return b
		}
		return x != ""
	}
	if b, err := cast.ToBoolE(v); err == nil {
		return b
	}
	return true
}

// TextContent returns the text content of the node regardless of binding.
func (e *Element) TextContent() string {
	if !e.alive() {
		return ""
	}
	return e.node.TextContent()
}

// SetTextContent replaces the node's children with a single text node.
func (e *Element) SetTextContent(text string) *Element {
	if e.alive() {
		e.node.SetTextContent(text)
	}
	return e
}

// ID returns the id attribute.
func (e *Element) ID() string {
	if !e.alive() {
		return ""
	}
	return e.node.Id()
}

// SetID sets the id attribute.
func (e *Element) SetID(id string) *Element {
	if e.alive() {
		e.node.SetId(id)
	}
	return e
}

// Classes returns the class attribute.
func (e *Element) Classes() string {
	if !e.alive() {
		return ""
	}
	return e.node.ClassName()
}

// SetClasses replaces the class attribute. A list of names is joined with
// single spaces; any other value is converted to a string.
func (e *Element) SetClasses(v any) *Element {
	if !e.alive() {
		return e
	}
	switch x := v.(type) {
	case ClassList:
		e.node.SetClassName(strings.Join(x, " "))
	case []string:
		e.node.SetClassName(strings.Join(x, " "))
	case []any:
		e.node.SetClassName(strings.Join(cast.ToStringSlice(x), " "))
	default:
		e.node.SetClassName(toString(v))
	}
	return e
}

// AddClass adds a class name. Empty names are ignored.
func (e *Element) AddClass(name string) *Element {
	if !e.alive() || name == "" {
		return e
	}
	if err := e.node.ClassList().Add(name); err != nil {
		logger().Debug("Class not added.", zap.String("class", name), zap.Error(err))
	}
	return e
}

// RemoveClass removes a class name. Empty names are ignored.
func (e *Element) RemoveClass(name string) *Element {
	if !e.alive() || name == "" {
		return e
	}
	if err := e.node.ClassList().Remove(name); err != nil {
		logger().Debug("Class not removed.", zap.String("class", name), zap.Error(err))
	}
	return e
}

// AddClasses adds each class name in order.
func (e *Element) AddClasses(names ...string) *Element {
	for _, name := range names {
		e.AddClass(name)
	}
	return e
}

// Attrs returns a fresh map of every attribute present on the node.
func (e *Element) Attrs() map[string]string {
	attrs := make(map[string]string)
	if !e.alive() {
		return attrs
	}
	nm := e.node.Attributes()
	for i := 0; i < nm.Length(); i++ {
		attr := nm.Item(i)
		attrs[attr.Name()] = attr.Value()
	}
	return attrs
}

// SetAttrs merges attrs into the node's attributes. Attributes missing from
// attrs are kept. Keys are applied in sorted order.
func (e *Element) SetAttrs(attrs map[string]string) *Element {
	for _, name := range slices.Sorted(maps.Keys(attrs)) {
		e.SetAttr(name, attrs[name])
	}
	return e
}

// SetAttr sets one attribute. An empty name is ignored.
func (e *Element) SetAttr(name, value string) *Element {
	if !e.alive() || name == "" {
		return e
	}
	if err := e.node.SetAttributeWithError(name, value); err != nil {
		logger().Debug("Attribute not set.", zap.String("name", name), zap.Error(err))
	}
	return e
}

// Styles returns a fresh map of every property set in the inline style.
func (e *Element) Styles() map[string]string {
	styles := make(map[string]string)
	if !e.alive() {
		return styles
	}
	style := e.node.Style()
	for _, prop := range style.PropertyNames() {
		styles[prop] = style.GetPropertyValue(prop)
	}
	return styles
}

// SetStyles merges styles into the inline style. Keys are applied in sorted
// order.
func (e *Element) SetStyles(styles map[string]string) *Element {
	for _, prop := range slices.Sorted(maps.Keys(styles)) {
		e.SetStyle(prop, styles[prop])
	}
	return e
}

// SetStyle sets one inline style property. An empty value removes it.
func (e *Element) SetStyle(property, value string) *Element {
	if !e.alive() || property == "" {
		return e
	}
	e.node.Style().SetProperty(property, value)
	return e
}

// Clone deep-copies the node into a new facade with the same binding and
// copies the value, classes, attributes and styles onto it. With withEvents
// every recorded listener is attached to the clone as well; the listeners
// are shared, not copied. Clients are never cloned.
func (e *Element) Clone(withEvents bool) *Element {
	if !e.alive() {
		return nil
	}
	clone := newElement(e.node.CloneNode(true), e.binding)
	// A deep clone usually carries the value already; rewriting an equal text
	// value would flatten the clone's child elements.
	if v := e.Value(); v != nil && clone.Value() != v {
		clone.SetValue(v)
	}
	clone.SetClasses(e.Classes())
	clone.SetAttrs(e.Attrs())
	clone.SetStyles(e.Styles())

	if withEvents {
		for _, name := range slices.Sorted(maps.Keys(e.events)) {
			for _, l := range e.events[name] {
				clone.AddEventListener(name, l)
			}
		}
	}
	return clone
}

// OuterHTML serializes the node.
func (e *Element) OuterHTML() string {
	if !e.alive() {
		return ""
	}
	return e.node.OuterHTML()
}
