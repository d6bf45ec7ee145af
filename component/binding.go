package component

import "strings"

// BindingKind selects the node property that Value and SetValue read and
// write.
type BindingKind int

const (
	// BindNone means the element has no value; Value returns nil.
	BindNone BindingKind = iota
	// BindText binds to the text content.
	BindText
	// BindValue binds to the form control value.
	BindValue
	// BindChecked binds to the checkedness of a checkbox or radio.
	BindChecked
)

func (k BindingKind) String() string {
	switch k {
	case BindText:
		return "text"
	case BindValue:
		return "value"
	case BindChecked:
		return "checked"
	default:
		return "none"
	}
}

// BindingFor returns the binding of an element with the given tag name.
// inputType is only consulted for INPUT elements.
func BindingFor(tagName, inputType string) BindingKind {
	switch strings.ToUpper(tagName) {
	case "DIV", "LI", "SPAN", "P", "BUTTON", "LABEL", "A":
		return BindText
	case "INPUT":
		switch strings.ToLower(strings.TrimSpace(inputType)) {
		case "checkbox", "radio":
			return BindChecked
		}
		return BindValue
	case "TEXTAREA", "SELECT", "OPTION":
		return BindValue
	}
	return BindNone
}
