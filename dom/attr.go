package dom

// Attr represents an attribute of an Element.
type Attr struct {
	ownerElement *Element
	name         string
	value        string
}

// NewAttr creates a new Attr with the given name and value.
func NewAttr(name, value string) *Attr {
	return &Attr{name: name, value: value}
}

// Name returns the attribute name.
func (a *Attr) Name() string {
	return a.name
}

// Value returns the attribute value.
func (a *Attr) Value() string {
	return a.value
}

// OwnerElement returns the element this attribute belongs to.
func (a *Attr) OwnerElement() *Element {
	return a.ownerElement
}
