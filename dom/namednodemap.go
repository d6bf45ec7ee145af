package dom

// NamedNodeMap is the ordered attribute collection of an element.
type NamedNodeMap struct {
	ownerElement *Element
	attrs        []*Attr
}

func newNamedNodeMap(element *Element) *NamedNodeMap {
	return &NamedNodeMap{ownerElement: element}
}

// Length returns the number of attributes in the map.
func (nm *NamedNodeMap) Length() int {
	return len(nm.attrs)
}

// Item returns the attribute at the given index, or nil if out of bounds.
func (nm *NamedNodeMap) Item(index int) *Attr {
	if index < 0 || index >= len(nm.attrs) {
		return nil
	}
	return nm.attrs[index]
}

// GetNamedItem returns the attribute with the given name, or nil if not found.
func (nm *NamedNodeMap) GetNamedItem(name string) *Attr {
	for _, attr := range nm.attrs {
		if attr.name == name {
			return attr
		}
	}
	return nil
}

// GetValue returns the value of the attribute with the given name, or empty string.
func (nm *NamedNodeMap) GetValue(name string) string {
	if attr := nm.GetNamedItem(name); attr != nil {
		return attr.value
	}
	return ""
}

// SetValue sets the value of the attribute with the given name,
// appending a new attribute if it doesn't exist yet.
func (nm *NamedNodeMap) SetValue(name, value string) {
	if attr := nm.GetNamedItem(name); attr != nil {
		attr.value = value
		return
	}
	nm.attrs = append(nm.attrs, &Attr{ownerElement: nm.ownerElement, name: name, value: value})
}

// RemoveNamedItem removes the attribute with the given name and returns it.
func (nm *NamedNodeMap) RemoveNamedItem(name string) *Attr {
	for i, attr := range nm.attrs {
		if attr.name == name {
			nm.attrs = append(nm.attrs[:i], nm.attrs[i+1:]...)
			attr.ownerElement = nil
			return attr
		}
	}
	return nil
}

// Has returns true if an attribute with the given name exists.
func (nm *NamedNodeMap) Has(name string) bool {
	return nm.GetNamedItem(name) != nil
}

// Names returns the attribute names in insertion order.
func (nm *NamedNodeMap) Names() []string {
	names := make([]string, len(nm.attrs))
	for i, attr := range nm.attrs {
		names[i] = attr.name
	}
	return names
}

// Clone creates a deep copy of this NamedNodeMap owned by newOwner.
func (nm *NamedNodeMap) Clone(newOwner *Element) *NamedNodeMap {
	clone := newNamedNodeMap(newOwner)
	if nm == nil {
		return clone
	}
	for _, attr := range nm.attrs {
		clone.attrs = append(clone.attrs, &Attr{ownerElement: newOwner, name: attr.name, value: attr.value})
	}
	return clone
}
