package component

import (
	"go.uber.org/zap"

	"github.com/chrisuehlinger/htmlkit/css"
	"github.com/chrisuehlinger/htmlkit/dom"
)

// Container is anything that can hold child nodes: an Element, a
// *dom.Element or a *dom.Document.
type Container interface {
	AsNode() *dom.Node
}

// Append adds child's node as the last child of this node.
func (e *Element) Append(child *Element) *Element {
	if !e.alive() || !child.alive() {
		return e
	}
	if _, err := e.node.AsNode().AppendChildWithError(child.node.AsNode()); err != nil {
		logger().Debug("Append failed.", zap.String("tag", e.tag), zap.Error(err))
	}
	return e
}

// AppendTo inserts this node as the last child of target.
func (e *Element) AppendTo(target Container) *Element {
	parent := containerNode(target)
	if !e.alive() || parent == nil {
		return e
	}
	if _, err := parent.AppendChildWithError(e.node.AsNode()); err != nil {
		logger().Debug("AppendTo failed.", zap.String("tag", e.tag), zap.Error(err))
	}
	return e
}

// PrependTo inserts this node before the first child of target.
func (e *Element) PrependTo(target Container) *Element {
	parent := containerNode(target)
	if !e.alive() || parent == nil {
		return e
	}
	if _, err := parent.InsertBeforeWithError(e.node.AsNode(), parent.FirstChild()); err != nil {
		logger().Debug("PrependTo failed.", zap.String("tag", e.tag), zap.Error(err))
	}
	return e
}

func containerNode(c Container) *dom.Node {
	if c == nil {
		return nil
	}
	return c.AsNode()
}

// AddChild creates an element from d, appends it and returns the receiver.
func (e *Element) AddChild(d Descriptor) *Element {
	e.AddAndReturnChild(d)
	return e
}

// AddAndReturnChild creates an element from d, appends it and returns the
// new child.
func (e *Element) AddAndReturnChild(d Descriptor) *Element {
	if !e.alive() {
		return nil
	}
	child := Create(e.node.OwnerDocument(), d)
	e.Append(child)
	return child
}

// AddChildren appends an element for each descriptor, in order.
func (e *Element) AddChildren(ds ...Descriptor) *Element {
	for _, d := range ds {
		e.AddChild(d)
	}
	return e
}

// GetChild wraps the first descendant matching selector. It returns nil when
// nothing matches or the selector is invalid.
func (e *Element) GetChild(selector string) *Element {
	if !e.alive() {
		return nil
	}
	el, err := css.Query(e.node.AsNode(), selector)
	if err != nil {
		logger().Debug("Invalid selector.", zap.String("selector", selector), zap.Error(err))
		return nil
	}
	return Wrap(el)
}

// RemoveChildren detaches every child node. Registries are untouched.
func (e *Element) RemoveChildren() *Element {
	if e.alive() {
		e.node.ReplaceChildren()
	}
	return e
}
