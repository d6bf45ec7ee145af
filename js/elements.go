package js

import (
	"github.com/dop251/goja"

	"github.com/chrisuehlinger/htmlkit/component"
)

// newElementObject builds the script view of e. Mutating methods return the
// object itself so calls chain the way they do in Go.
func (b *binder) newElementObject(e *component.Element) *goja.Object {
	vm := b.runtime.vm
	obj := vm.NewObject()
	_ = obj.DefineDataProperty(elementKey, vm.ToValue(e), goja.FLAG_FALSE, goja.FLAG_FALSE, goja.FLAG_FALSE)

	chain := func(name string, fn func(call goja.FunctionCall)) {
		obj.Set(name, func(call goja.FunctionCall) goja.Value {
			fn(call)
			return obj
		})
	}

	// Properties
	defineAccessor(vm, obj, "tagName", func() goja.Value {
		return vm.ToValue(e.TagName())
	}, nil)
	defineAccessor(vm, obj, "binding", func() goja.Value {
		return vm.ToValue(e.Binding().String())
	}, nil)
	defineAccessor(vm, obj, "destroyed", func() goja.Value {
		return vm.ToValue(e.Destroyed())
	}, nil)
	defineAccessor(vm, obj, "value", func() goja.Value {
		return vm.ToValue(e.Value())
	}, func(v goja.Value) {
		e.SetValue(exportValue(v))
	})
	defineAccessor(vm, obj, "textContent", func() goja.Value {
		return vm.ToValue(e.TextContent())
	}, func(v goja.Value) {
		e.SetTextContent(stringArg(v))
	})
	defineAccessor(vm, obj, "id", func() goja.Value {
		return vm.ToValue(e.ID())
	}, func(v goja.Value) {
		e.SetID(stringArg(v))
	})
	defineAccessor(vm, obj, "classes", func() goja.Value {
		return vm.ToValue(e.Classes())
	}, func(v goja.Value) {
		e.SetClasses(exportValue(v))
	})
	defineAccessor(vm, obj, "attrs", func() goja.Value {
		return vm.ToValue(toAnyMap(e.Attrs()))
	}, func(v goja.Value) {
		e.SetAttrs(stringMap(v))
	})
	defineAccessor(vm, obj, "styles", func() goja.Value {
		return vm.ToValue(toAnyMap(e.Styles()))
	}, func(v goja.Value) {
		e.SetStyles(stringMap(v))
	})
	defineAccessor(vm, obj, "outerHTML", func() goja.Value {
		return vm.ToValue(e.OuterHTML())
	}, nil)

	// Value, attributes, classes, styles
	obj.Set("getValue", func(goja.FunctionCall) goja.Value {
		return vm.ToValue(e.Value())
	})
	chain("setValue", func(call goja.FunctionCall) {
		e.SetValue(exportValue(call.Argument(0)))
	})
	chain("setAttr", func(call goja.FunctionCall) {
		e.SetAttr(stringArg(call.Argument(0)), stringArg(call.Argument(1)))
	})
	chain("addId", func(call goja.FunctionCall) {
		if id := call.Argument(0); !isMissing(id) {
			e.SetID(id.String())
		}
	})
	// setStyle takes a {property: value} object or a property and a value.
	chain("setStyle", func(call goja.FunctionCall) {
		arg := call.Argument(0)
		if _, ok := arg.(*goja.Object); ok {
			e.SetStyles(stringMap(arg))
			return
		}
		if isMissing(arg) {
			return
		}
		e.SetStyle(arg.String(), stringArg(call.Argument(1)))
	})
	chain("addClass", func(call goja.FunctionCall) {
		for _, arg := range call.Arguments {
			e.AddClasses(component.SplitClasses(stringArg(arg))...)
		}
	})
	chain("removeClass", func(call goja.FunctionCall) {
		for _, arg := range call.Arguments {
			for _, name := range component.SplitClasses(stringArg(arg)) {
				e.RemoveClass(name)
			}
		}
	})

	// Events
	chain("addEventListener", func(call goja.FunctionCall) {
		if l := b.listenerFor(call.Argument(1), true); l != nil {
			e.AddEventListener(stringArg(call.Argument(0)), l)
		}
	})
	chain("removeEventListener", func(call goja.FunctionCall) {
		event := stringArg(call.Argument(0))
		if len(call.Arguments) < 2 {
			e.RemoveEventListener(event)
			b.pruneListeners()
			return
		}
		if l := b.listenerFor(call.Argument(1), false); l != nil {
			e.RemoveEventListener(event, l)
		}
		b.pruneListeners()
	})
	chain("dispatch", func(call goja.FunctionCall) {
		e.Dispatch(stringArg(call.Argument(0)))
	})

	// Tree
	chain("append", func(call goja.FunctionCall) {
		for _, arg := range call.Arguments {
			e.Append(b.element(arg))
		}
	})
	chain("appendTo", func(call goja.FunctionCall) {
		e.AppendTo(b.container(call.Argument(0)))
	})
	chain("prependTo", func(call goja.FunctionCall) {
		e.PrependTo(b.container(call.Argument(0)))
	})
	chain("addChild", func(call goja.FunctionCall) {
		for _, arg := range call.Arguments {
			e.Append(b.element(arg))
		}
	})
	// addChildren takes an array of children, or the children as arguments.
	chain("addChildren", func(call goja.FunctionCall) {
		children := arrayItems(call.Argument(0))
		if children == nil {
			children = call.Arguments
		}
		for _, child := range children {
			e.Append(b.element(child))
		}
	})
	obj.Set("addAndReturnChild", func(call goja.FunctionCall) goja.Value {
		child := b.element(call.Argument(0))
		if child == nil {
			return goja.Null()
		}
		e.Append(child)
		return b.bind(child)
	})
	obj.Set("getChild", func(call goja.FunctionCall) goja.Value {
		child := e.GetChild(stringArg(call.Argument(0)))
		if child == nil {
			return goja.Null()
		}
		return b.bindNode(child.Node())
	})
	chain("removeChildren", func(goja.FunctionCall) {
		e.RemoveChildren()
	})
	obj.Set("clone", func(call goja.FunctionCall) goja.Value {
		return b.bind(e.Clone(call.Argument(0).ToBoolean()))
	})

	// Clients
	chain("addClient", func(call goja.FunctionCall) {
		e.AddClient(clientKey(call.Argument(0)), b.clientFunc(call.Argument(1)))
	})
	chain("removeClient", func(call goja.FunctionCall) {
		e.RemoveClient(clientKey(call.Argument(0)))
	})
	chain("clearClients", func(goja.FunctionCall) {
		e.ClearClients()
	})

	// Lifecycle
	chain("remove", func(goja.FunctionCall) {
		e.Remove()
	})
	obj.Set("destroy", func(goja.FunctionCall) goja.Value {
		if node := e.Node(); node != nil {
			delete(b.objects, node)
		}
		e.Destroy()
		b.pruneListeners()
		return goja.Undefined()
	})

	return obj
}

// setupHtmlElement installs the HtmlElement global and the include helpers.
func (r *Runtime) setupHtmlElement() {
	vm := r.vm
	b := r.binder
	api := vm.NewObject()

	api.Set("create", func(call goja.FunctionCall) goja.Value {
		return b.bind(b.element(call.Argument(0)))
	})
	api.Set("getById", func(call goja.FunctionCall) goja.Value {
		return b.bindNode(r.doc.GetElementById(stringArg(call.Argument(0))))
	})
	api.Set("getBySelector", func(call goja.FunctionCall) goja.Value {
		e := component.GetBySelector(r.doc, stringArg(call.Argument(0)))
		if e == nil {
			return goja.Null()
		}
		return b.bindNode(e.Node())
	})
	api.Set("getBySelectorAll", func(call goja.FunctionCall) goja.Value {
		found := component.GetBySelectorAll(r.doc, stringArg(call.Argument(0)))
		items := make([]any, len(found))
		for i, e := range found {
			items[i] = b.bindNode(e.Node())
		}
		return vm.NewArray(items...)
	})

	includeCSS := func(call goja.FunctionCall) goja.Value {
		component.IncludeCSS(r.doc, stringArg(call.Argument(0)))
		return goja.Undefined()
	}
	includeJS := func(call goja.FunctionCall) goja.Value {
		component.IncludeJS(r.doc, stringArg(call.Argument(0)))
		return goja.Undefined()
	}
	api.Set("includeFileCSS", includeCSS)
	api.Set("includeFileJS", includeJS)

	vm.Set("HtmlElement", api)
	vm.Set("includeFileCSS", includeCSS)
	vm.Set("includeFileJS", includeJS)
}

// toAnyMap copies m so goja exposes it as a plain object.
func toAnyMap(m map[string]string) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
