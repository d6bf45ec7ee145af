package dom

// EventPhase represents the phase of event dispatch.
type EventPhase int

const (
	EventPhaseNone     EventPhase = 0
	EventPhaseAtTarget EventPhase = 2
	EventPhaseBubbling EventPhase = 3
)

// Event is dispatched to listeners registered on a node.
type Event struct {
	Type       string
	Bubbles    bool
	Cancelable bool
	// Detail carries arbitrary data for custom events.
	Detail any

	Target        *Node
	CurrentTarget *Node
	Phase         EventPhase

	defaultPrevented bool
	stopPropagation  bool
	stopImmediate    bool
	dispatching      bool
}

// NewEvent creates an event of the given type.
func NewEvent(eventType string, bubbles, cancelable bool) *Event {
	return &Event{Type: eventType, Bubbles: bubbles, Cancelable: cancelable}
}

// PreventDefault marks a cancelable event as canceled.
func (e *Event) PreventDefault() {
	if e.Cancelable {
		e.defaultPrevented = true
	}
}

// DefaultPrevented reports whether PreventDefault was called on a cancelable event.
func (e *Event) DefaultPrevented() bool {
	return e.defaultPrevented
}

// StopPropagation prevents the event from reaching further nodes.
func (e *Event) StopPropagation() {
	e.stopPropagation = true
}

// StopImmediatePropagation also skips the remaining listeners of the current node.
func (e *Event) StopImmediatePropagation() {
	e.stopPropagation = true
	e.stopImmediate = true
}

// Listener wraps an event callback. Listeners are compared by pointer, so
// registering the same *Listener twice for one event type is a no-op.
type Listener struct {
	fn func(*Event)
	// Once removes the listener after its first invocation.
	Once bool
	// attached counts the registrations of this listener across targets.
	attached int
}

// NewListener creates a listener that calls fn.
func NewListener(fn func(e *Event)) *Listener {
	return &Listener{fn: fn}
}

// Attached returns the number of event types and targets the listener is
// currently registered for.
func (l *Listener) Attached() int {
	if l == nil {
		return 0
	}
	return l.attached
}

// HandleEvent invokes the callback.
func (l *Listener) HandleEvent(e *Event) {
	if l != nil && l.fn != nil {
		l.fn(e)
	}
}

type registration struct {
	listener *Listener
	removed  bool
}

// EventTarget manages the listeners registered on one node.
type EventTarget struct {
	listeners map[string][]*registration
}

// NewEventTarget creates a new EventTarget.
func NewEventTarget() *EventTarget {
	return &EventTarget{listeners: make(map[string][]*registration)}
}

// AddEventListener registers a listener. It returns false when the listener
// is nil or already registered for the event type.
func (et *EventTarget) AddEventListener(eventType string, l *Listener) bool {
	if l == nil {
		return false
	}
	for _, r := range et.listeners[eventType] {
		if r.listener == l {
			return false
		}
	}
	et.listeners[eventType] = append(et.listeners[eventType], &registration{listener: l})
	l.attached++
	return true
}

// RemoveEventListener unregisters a listener. It returns false when the
// listener was not registered.
func (et *EventTarget) RemoveEventListener(eventType string, l *Listener) bool {
	regs := et.listeners[eventType]
	for i, r := range regs {
		if r.listener == l {
			r.removed = true
			l.attached--
			et.listeners[eventType] = append(regs[:i:i], regs[i+1:]...)
			if len(et.listeners[eventType]) == 0 {
				delete(et.listeners, eventType)
			}
			return true
		}
	}
	return false
}

// HasEventListeners returns true if there are any listeners for the event type.
func (et *EventTarget) HasEventListeners(eventType string) bool {
	return len(et.listeners[eventType]) > 0
}

// ListenerCount returns the number of listeners for the event type.
func (et *EventTarget) ListenerCount(eventType string) int {
	return len(et.listeners[eventType])
}

// invoke runs the listeners registered when dispatch reached this target, in
// registration order. Listeners removed meanwhile are skipped.
func (et *EventTarget) invoke(e *Event) {
	snapshot := append([]*registration(nil), et.listeners[e.Type]...)
	for _, r := range snapshot {
		if r.removed {
			continue
		}
		if r.listener.Once {
			et.RemoveEventListener(e.Type, r.listener)
		}
		r.listener.HandleEvent(e)
		if e.stopImmediate {
			return
		}
	}
}

// AddEventListener registers a listener on the node.
func (n *Node) AddEventListener(eventType string, l *Listener) bool {
	if n.events == nil {
		n.events = NewEventTarget()
	}
	return n.events.AddEventListener(eventType, l)
}

// RemoveEventListener unregisters a listener from the node.
func (n *Node) RemoveEventListener(eventType string, l *Listener) bool {
	if n.events == nil {
		return false
	}
	return n.events.RemoveEventListener(eventType, l)
}

// HasEventListeners returns true if the node has listeners for the event type.
func (n *Node) HasEventListeners(eventType string) bool {
	return n.events != nil && n.events.HasEventListeners(eventType)
}

// ListenerCount returns the number of listeners the node has for the event type.
func (n *Node) ListenerCount(eventType string) int {
	if n.events == nil {
		return 0
	}
	return n.events.ListenerCount(eventType)
}

// DispatchEvent fires the event at the node and, when it bubbles, at each
// ancestor. The propagation path is fixed before the first listener runs.
// It returns false if a listener canceled the event.
func (n *Node) DispatchEvent(e *Event) bool {
	if e == nil || e.dispatching {
		return true
	}
	e.dispatching = true
	defer func() {
		e.dispatching = false
		e.Phase = EventPhaseNone
		e.CurrentTarget = nil
	}()

	e.Target = n
	path := []*Node{n}
	if e.Bubbles {
		for p := n.parentNode; p != nil; p = p.parentNode {
			path = append(path, p)
		}
	}

	for i, node := range path {
		if e.stopPropagation {
			break
		}
		if node.events == nil {
			continue
		}
		e.CurrentTarget = node
		e.Phase = EventPhaseBubbling
		if i == 0 {
			e.Phase = EventPhaseAtTarget
		}
		node.events.invoke(e)
	}
	return !e.defaultPrevented
}

// Dispatch fires a new event of the given type at the node. Bubbling and
// cancelability follow the browser defaults for the common UI events.
func (n *Node) Dispatch(eventType string) bool {
	return n.DispatchEvent(NewEvent(eventType, bubblesByDefault(eventType), cancelableByDefault(eventType)))
}

func bubblesByDefault(eventType string) bool {
	switch eventType {
	case "change", "input", "click", "submit", "keydown", "keyup":
		return true
	}
	return false
}

func cancelableByDefault(eventType string) bool {
	switch eventType {
	case "click", "submit", "keydown", "keyup":
		return true
	}
	return false
}

// AddEventListener registers a listener on the element.
func (e *Element) AddEventListener(eventType string, l *Listener) bool {
	return e.AsNode().AddEventListener(eventType, l)
}

// RemoveEventListener unregisters a listener from the element.
func (e *Element) RemoveEventListener(eventType string, l *Listener) bool {
	return e.AsNode().RemoveEventListener(eventType, l)
}

// DispatchEvent fires the event at the element.
func (e *Element) DispatchEvent(ev *Event) bool {
	return e.AsNode().DispatchEvent(ev)
}

// Dispatch fires a new event of the given type at the element.
func (e *Element) Dispatch(eventType string) bool {
	return e.AsNode().Dispatch(eventType)
}
