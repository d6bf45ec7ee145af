package dom

import (
	"strings"
)

// CSSStyleDeclaration is the inline style of an element. It is kept in sync
// with the element's style attribute in both directions.
type CSSStyleDeclaration struct {
	element *Element

	declarations map[string]*styleProperty
	// Insertion order, used for serialization and indexed access.
	propertyOrder []string
}

type styleProperty struct {
	value    string
	priority string // "important" or ""
}

// NewCSSStyleDeclaration creates a declaration seeded from the element's
// style attribute. A nil element yields a detached declaration.
func NewCSSStyleDeclaration(element *Element) *CSSStyleDeclaration {
	sd := &CSSStyleDeclaration{
		element:      element,
		declarations: make(map[string]*styleProperty),
	}
	if element != nil {
		sd.parse(element.GetAttribute("style"))
	}
	return sd
}

// CSSText returns the textual representation of the declaration block.
func (sd *CSSStyleDeclaration) CSSText() string {
	parts := make([]string, 0, len(sd.propertyOrder))
	for _, prop := range sd.propertyOrder {
		sp := sd.declarations[prop]
		part := prop + ": " + sp.value
		if sp.priority == "important" {
			part += " !important"
		}
		parts = append(parts, part+";")
	}
	return strings.Join(parts, " ")
}

// SetCSSText replaces every declaration with the ones parsed from cssText.
func (sd *CSSStyleDeclaration) SetCSSText(cssText string) {
	sd.reset()
	sd.parse(cssText)
	sd.syncToAttribute()
}

// Length returns the number of properties set.
func (sd *CSSStyleDeclaration) Length() int {
	return len(sd.propertyOrder)
}

// Item returns the property name at the given index.
func (sd *CSSStyleDeclaration) Item(index int) string {
	if index < 0 || index >= len(sd.propertyOrder) {
		return ""
	}
	return sd.propertyOrder[index]
}

// PropertyNames returns all property names in declaration order.
func (sd *CSSStyleDeclaration) PropertyNames() []string {
	return append([]string(nil), sd.propertyOrder...)
}

// GetPropertyValue returns the value of a CSS property.
func (sd *CSSStyleDeclaration) GetPropertyValue(property string) string {
	if sp, ok := sd.declarations[normalizeCSSPropertyName(property)]; ok {
		return sp.value
	}
	return ""
}

// GetPropertyPriority returns "important" or "".
func (sd *CSSStyleDeclaration) GetPropertyPriority(property string) string {
	if sp, ok := sd.declarations[normalizeCSSPropertyName(property)]; ok {
		return sp.priority
	}
	return ""
}

// SetProperty sets a CSS property with an optional priority.
// An empty value removes the property.
func (sd *CSSStyleDeclaration) SetProperty(property, value string, priority ...string) {
	property = normalizeCSSPropertyName(property)
	if property == "" {
		return
	}
	value = strings.TrimSpace(value)
	if value == "" {
		sd.RemoveProperty(property)
		return
	}
	pri := ""
	if len(priority) > 0 && strings.EqualFold(priority[0], "important") {
		pri = "important"
	}
	sd.put(property, value, pri)
	sd.syncToAttribute()
}

// RemoveProperty removes a CSS property and returns its old value.
func (sd *CSSStyleDeclaration) RemoveProperty(property string) string {
	property = normalizeCSSPropertyName(property)
	sp, ok := sd.declarations[property]
	if !ok {
		return ""
	}
	delete(sd.declarations, property)
	for i, p := range sd.propertyOrder {
		if p == property {
			sd.propertyOrder = append(sd.propertyOrder[:i], sd.propertyOrder[i+1:]...)
			break
		}
	}
	sd.syncToAttribute()
	return sp.value
}

// RefreshFromAttribute reloads the declarations after the style attribute
// was written directly.
func (sd *CSSStyleDeclaration) RefreshFromAttribute() {
	sd.reset()
	if sd.element != nil {
		sd.parse(sd.element.GetAttribute("style"))
	}
}

func (sd *CSSStyleDeclaration) reset() {
	sd.declarations = make(map[string]*styleProperty)
	sd.propertyOrder = nil
}

func (sd *CSSStyleDeclaration) put(property, value, priority string) {
	if _, exists := sd.declarations[property]; !exists {
		sd.propertyOrder = append(sd.propertyOrder, property)
	}
	sd.declarations[property] = &styleProperty{value: value, priority: priority}
}

// parse reads "prop: value [!important]; ..." declarations.
func (sd *CSSStyleDeclaration) parse(text string) {
	for _, part := range strings.Split(text, ";") {
		name, value, ok := strings.Cut(part, ":")
		if !ok {
			continue
		}
		name = normalizeCSSPropertyName(strings.TrimSpace(name))
		value = strings.TrimSpace(value)
		priority := ""
		if idx := strings.LastIndex(value, "!"); idx >= 0 && strings.EqualFold(strings.TrimSpace(value[idx+1:]), "important") {
			priority = "important"
			value = strings.TrimSpace(value[:idx])
		}
		if name == "" || value == "" {
			continue
		}
		sd.put(name, value, priority)
	}
}

// syncToAttribute writes the declarations back without re-parsing them.
func (sd *CSSStyleDeclaration) syncToAttribute() {
	if sd.element == nil {
		return
	}
	attrs := sd.element.Attributes()
	if len(sd.propertyOrder) == 0 {
		attrs.RemoveNamedItem("style")
		return
	}
	attrs.SetValue("style", sd.CSSText())
}

// normalizeCSSPropertyName converts camelCase to kebab-case and lowercases.
// Custom properties ("--x") keep their case.
func normalizeCSSPropertyName(name string) string {
	if name == "" || strings.HasPrefix(name, "--") {
		return name
	}
	if strings.Contains(name, "-") {
		return strings.ToLower(name)
	}
	var sb strings.Builder
	for i, r := range name {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				sb.WriteByte('-')
			}
			r += 'a' - 'A'
		}
		sb.WriteRune(r)
	}
	return sb.String()
}
