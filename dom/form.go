package dom

import (
	"strings"
)

// formState is the mutable state of form controls. A nil field means the
// control is still reflecting its content attribute.
type formState struct {
	value    *string
	checked  *bool
	selected *bool
}

func (fs formState) clone() formState {
	var c formState
	if fs.value != nil {
		v := *fs.value
		c.value = &v
	}
	if fs.checked != nil {
		v := *fs.checked
		c.checked = &v
	}
	if fs.selected != nil {
		v := *fs.selected
		c.selected = &v
	}
	return c
}

// Type returns the lowercased type attribute. Inputs default to "text".
func (e *Element) Type() string {
	t := strings.ToLower(strings.TrimSpace(e.GetAttribute("type")))
	if t == "" && e.LocalName() == "input" {
		return "text"
	}
	return t
}

// IsCheckable reports whether the element is a checkbox or radio input.
func (e *Element) IsCheckable() bool {
	if e.LocalName() != "input" {
		return false
	}
	switch e.Type() {
	case "checkbox", "radio":
		return true
	}
	return false
}

// Value returns the current value of a form control.
//
//	input    dirty value, else the value attribute ("on" for checkables)
//	textarea dirty value, else the text content
//	select   value of the selected option
//	option   value attribute, else the collapsed text
//
// Any other element reports its value attribute.
func (e *Element) Value() string {
	fs := &e.elementData.form
	switch e.LocalName() {
	case "input":
		if fs.value != nil {
			return *fs.value
		}
		if e.IsCheckable() && !e.HasAttribute("value") {
			return "on"
		}
		return e.GetAttribute("value")
	case "textarea":
		if fs.value != nil {
			return *fs.value
		}
		return e.TextContent()
	case "select":
		if opt := e.SelectedOption(); opt != nil {
			return opt.Value()
		}
		return ""
	case "option":
		if e.HasAttribute("value") {
			return e.GetAttribute("value")
		}
		return strings.Join(strings.Fields(e.TextContent()), " ")
	}
	return e.GetAttribute("value")
}

// SetValue sets the current value of a form control. For a select, the
// first option with a matching value becomes the only selected option.
func (e *Element) SetValue(value string) {
	fs := &e.elementData.form
	switch e.LocalName() {
	case "input", "textarea":
		fs.value = &value
	case "select":
		matched := false
		for _, opt := range e.Options() {
			sel := !matched && opt.Value() == value
			if sel {
				matched = true
			}
			opt.elementData.form.selected = &sel
		}
	default:
		e.SetAttribute("value", value)
	}
}

// Checked returns the checkedness of an input.
func (e *Element) Checked() bool {
	if c := e.elementData.form.checked; c != nil {
		return *c
	}
	return e.HasAttribute("checked")
}

// SetChecked sets the checkedness of an input. Checking a radio button
// unchecks the other radios of the same name in the same tree.
func (e *Element) SetChecked(checked bool) {
	e.elementData.form.checked = &checked
	if !checked || e.LocalName() != "input" || e.Type() != "radio" {
		return
	}
	name := e.GetAttribute("name")
	if name == "" {
		return
	}
	walkElements(e.AsNode().GetRootNode(), func(other *Element) bool {
		if other != e && other.LocalName() == "input" && other.Type() == "radio" && other.GetAttribute("name") == name {
			off := false
			other.elementData.form.checked = &off
		}
		return true
	})
}

// Selected returns the selectedness of an option.
func (e *Element) Selected() bool {
	if s := e.elementData.form.selected; s != nil {
		return *s
	}
	return e.HasAttribute("selected")
}

// SetSelected sets the selectedness of an option.
func (e *Element) SetSelected(selected bool) {
	e.elementData.form.selected = &selected
}

// Options returns the option descendants of a select in document order.
func (e *Element) Options() []*Element {
	return e.GetElementsByTagName("option")
}

// SelectedOption returns the first selected option, else the first option.
func (e *Element) SelectedOption() *Element {
	options := e.Options()
	for _, opt := range options {
		if opt.Selected() {
			return opt
		}
	}
	if len(options) > 0 {
		return options[0]
	}
	return nil
}

// Disabled reports whether the element carries the disabled attribute.
func (e *Element) Disabled() bool {
	return e.HasAttribute("disabled")
}
