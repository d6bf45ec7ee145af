package component

import (
	"slices"

	"go.uber.org/zap"

	"github.com/chrisuehlinger/htmlkit/dom"
)

// AddEventListener attaches l to the node and records it. A nil listener, or
// one already recorded for the event, is ignored.
func (e *Element) AddEventListener(event string, l *dom.Listener) *Element {
	if !e.alive() || l == nil {
		return e
	}
	for _, existing := range e.events[event] {
		if existing == l {
			logger().Debug("Duplicate listener rejected.", zap.String("event", event), zap.String("tag", e.tag))
			return e
		}
	}
	if e.events == nil {
		e.events = make(map[string][]*dom.Listener)
	}
	e.node.AddEventListener(event, l)
	e.events[event] = append(e.events[event], l)
	return e
}

// On wraps fn in a new listener, adds it and returns the listener so it can
// be removed later.
func (e *Element) On(event string, fn func(*dom.Event)) *dom.Listener {
	l := dom.NewListener(fn)
	e.AddEventListener(event, l)
	return l
}

// RemoveEventListener detaches the given listeners from event. Without
// listeners it detaches every listener recorded for event. Listeners this
// facade did not record are left alone.
func (e *Element) RemoveEventListener(event string, listeners ...*dom.Listener) *Element {
	if !e.alive() {
		return e
	}
	recorded, ok := e.events[event]
	if !ok {
		return e
	}
	if len(listeners) == 0 {
		for _, l := range recorded {
			e.node.RemoveEventListener(event, l)
		}
		delete(e.events, event)
		return e
	}

	for _, l := range listeners {
		i := slices.Index(recorded, l)
		if i < 0 {
			continue
		}
		e.node.RemoveEventListener(event, l)
		recorded = slices.Delete(slices.Clone(recorded), i, i+1)
	}
	if len(recorded) == 0 {
		delete(e.events, event)
		return e
	}
	e.events[event] = recorded
	return e
}

// Listeners returns a copy of the listeners recorded for event.
func (e *Element) Listeners(event string) []*dom.Listener {
	if !e.alive() {
		return nil
	}
	return append([]*dom.Listener(nil), e.events[event]...)
}

// Dispatch fires a new event of the given type at the node.
func (e *Element) Dispatch(event string) *Element {
	if e.alive() {
		e.node.Dispatch(event)
	}
	return e
}

// DispatchEvent fires ev at the node. It returns false if a listener
// canceled the event.
func (e *Element) DispatchEvent(ev *dom.Event) bool {
	if !e.alive() {
		return true
	}
	return e.node.DispatchEvent(ev)
}

// Remove detaches the node from its parent. Listeners and clients stay.
func (e *Element) Remove() *Element {
	if e.alive() {
		e.node.Remove()
	}
	return e
}

// Destroy detaches the node from its parent, removes every recorded listener
// and client listener, and drops the node. The facade is inert afterwards.
func (e *Element) Destroy() {
	if !e.alive() {
		return
	}
	if e.node.ParentNode() != nil {
		e.node.Remove()
	}
	e.detachClients()
	for event, listeners := range e.events {
		for _, l := range listeners {
			e.node.RemoveEventListener(event, l)
		}
	}
	e.events = nil
	e.node = nil
}
