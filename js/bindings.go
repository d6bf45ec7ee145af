package js

import (
	"fmt"
	"slices"

	"github.com/dop251/goja"
	"github.com/spf13/cast"
	"go.uber.org/zap"

	"github.com/chrisuehlinger/htmlkit/component"
	"github.com/chrisuehlinger/htmlkit/dom"
)

// elementKey names the hidden property that carries the Go facade.
const elementKey = "__element"

// binder maps facades to script objects and script functions to listeners.
type binder struct {
	runtime *Runtime
	objects map[*dom.Element]*goja.Object
	// listeners memoizes one *dom.Listener per script function so that
	// removeEventListener(type, fn) finds what addEventListener(type, fn)
	// installed. Entries go once their listener is attached nowhere.
	listeners []boundListener
}

type boundListener struct {
	fn       goja.Value
	listener *dom.Listener
}

func newBinder(r *Runtime) *binder {
	return &binder{
		runtime: r,
		objects: make(map[*dom.Element]*goja.Object),
	}
}

// bind returns the script object for e, creating it on first use.
func (b *binder) bind(e *component.Element) goja.Value {
	if e == nil || e.Destroyed() {
		return goja.Null()
	}
	if obj, ok := b.objects[e.Node()]; ok && !unwrap(obj).Destroyed() {
		return obj
	}
	obj := b.newElementObject(e)
	b.objects[e.Node()] = obj
	return obj
}

// bindNode returns the script object for el, reusing the facade of an
// element scripts have already seen.
func (b *binder) bindNode(el *dom.Element) goja.Value {
	if el == nil {
		return goja.Null()
	}
	if obj, ok := b.objects[el]; ok && !unwrap(obj).Destroyed() {
		return obj
	}
	return b.bind(component.Wrap(el))
}

// unwrap returns the facade carried by a script object, or nil.
func unwrap(v goja.Value) *component.Element {
	obj, ok := v.(*goja.Object)
	if !ok || obj == nil {
		return nil
	}
	inner := obj.Get(elementKey)
	if inner == nil {
		return nil
	}
	e, _ := inner.Export().(*component.Element)
	return e
}

// element resolves an argument to a facade: a bound object, a tag name or a
// descriptor object.
func (b *binder) element(v goja.Value) *component.Element {
	if isMissing(v) {
		return nil
	}
	if e := unwrap(v); e != nil {
		return e
	}
	if obj, ok := v.(*goja.Object); ok {
		return component.Create(b.runtime.doc, b.descriptor(obj))
	}
	if s, ok := v.Export().(string); ok {
		return component.New(b.runtime.doc, s)
	}
	return nil
}

// container resolves an argument to something nodes can be appended to: a
// bound object or a selector matched against the document.
func (b *binder) container(v goja.Value) component.Container {
	if e := unwrap(v); e != nil {
		return e
	}
	if s, ok := exportValue(v).(string); ok {
		if e := component.GetBySelector(b.runtime.doc, s); e != nil {
			return e
		}
	}
	return nil
}

// listenerFor returns the listener memoized for fn. With create set, a
// missing listener is made; otherwise nil is returned.
func (b *binder) listenerFor(fn goja.Value, create bool) *dom.Listener {
	for _, bl := range b.listeners {
		if bl.fn.SameAs(fn) {
			return bl.listener
		}
	}
	if !create {
		return nil
	}
	callable, ok := goja.AssertFunction(fn)
	if !ok {
		return nil
	}
	l := dom.NewListener(func(ev *dom.Event) {
		this := b.bindNode(asElement(ev.CurrentTarget))
		b.call(callable, this, b.eventObject(ev))
	})
	b.listeners = append(b.listeners, boundListener{fn: fn, listener: l})
	return l
}

// pruneListeners forgets memoized listeners that are no longer registered
// on any node.
func (b *binder) pruneListeners() {
	b.listeners = slices.DeleteFunc(b.listeners, func(bl boundListener) bool {
		return bl.listener.Attached() == 0
	})
}

// clientFunc adapts a script callback to a client callback. The script sees
// the source element as this and the change event as its argument.
func (b *binder) clientFunc(fn goja.Value) component.ClientFunc {
	callable, ok := goja.AssertFunction(fn)
	if !ok {
		return nil
	}
	return func(source *component.Element, ev *dom.Event) {
		b.call(callable, b.bind(source), b.eventObject(ev))
	}
}

// clientKey resolves the key of a script client: a bound element stands for
// its facade, any other object for itself and a primitive for its value.
func clientKey(v goja.Value) any {
	if isMissing(v) {
		return nil
	}
	if e := unwrap(v); e != nil {
		return e
	}
	if obj, ok := v.(*goja.Object); ok {
		return obj
	}
	return v.Export()
}

// client builds a descriptor client from a key and an optional callback.
func (b *binder) client(key, fn goja.Value) component.Client {
	return component.Client{
		Target:   unwrap(key),
		Key:      clientKey(key),
		Callback: b.clientFunc(fn),
	}
}

// call invokes fn and records any exception it throws.
func (b *binder) call(fn goja.Callable, this goja.Value, args ...goja.Value) {
	defer func() {
		if p := recover(); p != nil {
			b.runtime.recordError(fmt.Errorf("script callback panic: %v", p))
		}
	}()
	if _, err := fn(this, args...); err != nil {
		b.runtime.recordError(err)
	}
}

// eventObject exposes ev to scripts.
func (b *binder) eventObject(ev *dom.Event) *goja.Object {
	vm := b.runtime.vm
	obj := vm.NewObject()
	obj.Set("type", ev.Type)
	obj.Set("bubbles", ev.Bubbles)
	obj.Set("cancelable", ev.Cancelable)
	obj.Set("detail", ev.Detail)
	obj.Set("target", b.bindNode(asElement(ev.Target)))
	obj.Set("currentTarget", b.bindNode(asElement(ev.CurrentTarget)))
	obj.Set("preventDefault", func(goja.FunctionCall) goja.Value {
		ev.PreventDefault()
		return goja.Undefined()
	})
	obj.Set("stopPropagation", func(goja.FunctionCall) goja.Value {
		ev.StopPropagation()
		return goja.Undefined()
	})
	obj.Set("stopImmediatePropagation", func(goja.FunctionCall) goja.Value {
		ev.StopImmediatePropagation()
		return goja.Undefined()
	})
	defineAccessor(vm, obj, "defaultPrevented", func() goja.Value {
		return vm.ToValue(ev.DefaultPrevented())
	}, nil)
	return obj
}

// descriptor reads a descriptor from a script object. Unknown keys are
// ignored and malformed values are skipped.
func (b *binder) descriptor(obj *goja.Object) component.Descriptor {
	var d component.Descriptor
	d.Type = stringField(obj, "type")
	d.ID = stringField(obj, "id")
	d.Adopt = obj.Get("adopt") != nil && obj.Get("adopt").ToBoolean()

	switch classes := exportValue(obj.Get("classes")).(type) {
	case nil:
	case string:
		d.Classes = component.SplitClasses(classes)
	default:
		names, err := cast.ToStringSliceE(classes)
		if err != nil {
			b.runtime.log.Debug("Ignoring descriptor classes.", zap.Error(err))
		}
		d.Classes = names
	}

	d.Attrs = stringMap(obj.Get("attrs"))
	d.Styles = stringMap(obj.Get("styles"))

	if v := obj.Get("value"); !isMissing(v) {
		d.Value = v.Export()
	}
	if v := obj.Get("textContent"); !isMissing(v) {
		s := v.String()
		d.TextContent = &s
	}

	for _, child := range arrayItems(obj.Get("children")) {
		switch c := child.(type) {
		case *goja.Object:
			d.Children = append(d.Children, b.descriptor(c))
		default:
			if s, ok := exportValue(child).(string); ok {
				d.Children = append(d.Children, component.Descriptor{Type: s})
			}
		}
	}

	if events, ok := obj.Get("events").(*goja.Object); ok {
		d.Events = make(map[string][]*dom.Listener)
		for _, name := range events.Keys() {
			fns := arrayItems(events.Get(name))
			if fns == nil {
				fns = []goja.Value{events.Get(name)}
			}
			for _, fn := range fns {
				if l := b.listenerFor(fn, true); l != nil {
					d.Events[name] = append(d.Events[name], l)
				}
			}
		}
	}

	// Clients are an element, a [key, callback] pair or {target, callback}.
	for _, item := range arrayItems(obj.Get("clients")) {
		if pair := arrayItems(item); pair != nil {
			switch len(pair) {
			case 0:
			case 1:
				d.Clients = append(d.Clients, b.client(pair[0], nil))
			default:
				d.Clients = append(d.Clients, b.client(pair[0], pair[1]))
			}
			continue
		}
		if target := unwrap(item); target != nil {
			d.Clients = append(d.Clients, component.Client{Target: target})
			continue
		}
		if c, ok := item.(*goja.Object); ok {
			d.Clients = append(d.Clients, b.client(c.Get("target"), c.Get("callback")))
		}
	}
	return d
}

func asElement(n *dom.Node) *dom.Element {
	if n == nil || n.NodeType() != dom.ElementNode {
		return nil
	}
	return (*dom.Element)(n)
}

func isMissing(v goja.Value) bool {
	return v == nil || goja.IsUndefined(v) || goja.IsNull(v)
}

func exportValue(v goja.Value) any {
	if isMissing(v) {
		return nil
	}
	return v.Export()
}

// stringArg converts an argument to a string; undefined and null become "".
func stringArg(v goja.Value) string {
	if isMissing(v) {
		return ""
	}
	return v.String()
}

func stringField(obj *goja.Object, name string) string {
	return stringArg(obj.Get(name))
}

func stringMap(v goja.Value) map[string]string {
	if _, ok := v.(*goja.Object); !ok {
		return nil
	}
	m, err := cast.ToStringMapStringE(v.Export())
	if err != nil {
		return nil
	}
	return m
}

// arrayItems returns the elements of a script array, or nil when v is not
// an array.
func arrayItems(v goja.Value) []goja.Value {
	obj, ok := v.(*goja.Object)
	if !ok || obj.ClassName() != "Array" {
		return nil
	}
	n := int(obj.Get("length").ToInteger())
	items := make([]goja.Value, 0, n)
	for i := range n {
		items = append(items, obj.Get(fmt.Sprint(i)))
	}
	return items
}

// defineAccessor defines an enumerable accessor property. A nil set makes it
// read-only.
func defineAccessor(vm *goja.Runtime, obj *goja.Object, name string, get func() goja.Value, set func(goja.Value)) {
	getter := vm.ToValue(func(goja.FunctionCall) goja.Value { return get() })
	var setter goja.Value
	if set != nil {
		setter = vm.ToValue(func(call goja.FunctionCall) goja.Value {
			set(call.Argument(0))
			return goja.Undefined()
		})
	}
	_ = obj.DefineAccessorProperty(name, getter, setter, goja.FLAG_FALSE, goja.FLAG_TRUE)
}
