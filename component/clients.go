package component

import (
	"reflect"
	"slices"

	"go.uber.org/zap"

	"github.com/chrisuehlinger/htmlkit/dom"
)

// ClientFunc reacts to a change event on source.
type ClientFunc func(source *Element, e *dom.Event)

// Client pairs a target with an optional callback. A nil Callback copies the
// source value into Target. Key names a callback client that has no target;
// Target takes precedence when both are set.
type Client struct {
	Target   *Element
	Key      any
	Callback ClientFunc
}

func (c Client) key() any {
	if c.Target != nil {
		return c.Target
	}
	return c.Key
}

// AddClient installs one change listener under key. Without cb, key must be
// the target *Element and the listener copies this element's value into it.
// With cb, key is the target or any comparable value naming the client,
// nil included, and the listener calls cb with this element and the event.
// Adding a client under a key that already has one replaces the previous
// listener.
//
// Clients that feed each other in a cycle will loop if SetValue dispatches
// change events; nothing guards against that.
func (e *Element) AddClient(key any, cb ClientFunc) *Element {
	if !e.alive() {
		return e
	}
	key = normalizeKey(key)
	if key != nil && !reflect.TypeOf(key).Comparable() {
		logger().Debug("Client key is not comparable.", zap.String("type", reflect.TypeOf(key).String()))
		return e
	}

	var l *dom.Listener
	if cb == nil {
		target, ok := key.(*Element)
		if !ok {
			logger().Debug("Client without callback needs a target element.", zap.String("tag", e.tag))
			return e
		}
		l = dom.NewListener(func(*dom.Event) { target.SetValue(e.Value()) })
	} else {
		l = dom.NewListener(func(ev *dom.Event) { cb(e, ev) })
	}

	if e.clients == nil {
		e.clients = make(map[any]*dom.Listener)
	}
	if old, ok := e.clients[key]; ok {
		e.node.RemoveEventListener("change", old)
	} else {
		e.clientOrder = append(e.clientOrder, key)
	}
	e.clients[key] = l
	e.node.AddEventListener("change", l)
	return e
}

// normalizeKey turns a typed nil *Element into a plain nil key.
func normalizeKey(key any) any {
	if t, ok := key.(*Element); ok && t == nil {
		return nil
	}
	return key
}

// RemoveClient detaches the listener installed under key.
func (e *Element) RemoveClient(key any) *Element {
	if !e.alive() {
		return e
	}
	key = normalizeKey(key)
	if key != nil && !reflect.TypeOf(key).Comparable() {
		return e
	}
	l, ok := e.clients[key]
	if !ok {
		return e
	}
	e.node.RemoveEventListener("change", l)
	delete(e.clients, key)
	if i := slices.Index(e.clientOrder, key); i >= 0 {
		e.clientOrder = slices.Delete(e.clientOrder, i, i+1)
	}
	return e
}

// ClearClients detaches every client listener.
func (e *Element) ClearClients() *Element {
	if !e.alive() {
		return e
	}
	e.detachClients()
	return e
}

func (e *Element) detachClients() {
	for _, key := range e.clientOrder {
		e.node.RemoveEventListener("change", e.clients[key])
	}
	e.clients = nil
	e.clientOrder = nil
}

// Clients returns the client target elements in the order they were added.
// Callback clients keyed by anything else are left out; see ClientKeys.
func (e *Element) Clients() []*Element {
	if !e.alive() {
		return nil
	}
	var targets []*Element
	for _, key := range e.clientOrder {
		if t, ok := key.(*Element); ok {
			targets = append(targets, t)
		}
	}
	return targets
}

// ClientKeys returns the key of every client in the order they were added.
func (e *Element) ClientKeys() []any {
	if !e.alive() {
		return nil
	}
	return slices.Clone(e.clientOrder)
}
