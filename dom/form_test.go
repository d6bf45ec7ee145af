package dom

import (
	"testing"
)

func TestInput_Value(t *testing.T) {
	doc := NewDocument()
	input := doc.CreateElement("input")

	if input.Type() != "text" {
		t.Errorf("Expected default type 'text', got %q", input.Type())
	}
	input.SetAttribute("value", "initial")
	if input.Value() != "initial" {
		t.Errorf("Expected value from attribute, got %q", input.Value())
	}

	input.SetValue("typed")
	if input.Value() != "typed" {
		t.Errorf("Expected dirty value 'typed', got %q", input.Value())
	}
	if input.GetAttribute("value") != "initial" {
		t.Error("Expected value attribute to stay unchanged")
	}

	clone := input.CloneNode(false)
	if clone.Value() != "typed" {
		t.Errorf("Expected clone to copy the dirty value, got %q", clone.Value())
	}
}

func TestInput_Checked(t *testing.T) {
	doc := NewDocument()
	box := doc.CreateElement("input")
	box.SetAttribute("type", "Checkbox")

	if !box.IsCheckable() {
		t.Fatal("Expected checkbox to be checkable")
	}
	if box.Checked() {
		t.Error("Expected unchecked by default")
	}
	if box.Value() != "on" {
		t.Errorf("Expected default checkbox value 'on', got %q", box.Value())
	}

	box.SetAttribute("checked", "")
	if !box.Checked() {
		t.Error("Expected checked attribute to be reflected")
	}
	box.SetChecked(false)
	if box.Checked() {
		t.Error("Expected dirty checkedness to win over the attribute")
	}
}

func TestInput_RadioGroup(t *testing.T) {
	doc := NewHTMLDocument()
	var radios []*Element
	for i := 0; i < 3; i++ {
		r := doc.CreateElement("input")
		r.SetAttribute("type", "radio")
		r.SetAttribute("name", "size")
		doc.Body().Append(r.AsNode())
		radios = append(radios, r)
	}

	radios[0].SetChecked(true)
	radios[2].SetChecked(true)
	if radios[0].Checked() || radios[1].Checked() || !radios[2].Checked() {
		t.Errorf("Expected only the last radio to be checked, got %v %v %v",
			radios[0].Checked(), radios[1].Checked(), radios[2].Checked())
	}
}

func TestTextarea_Value(t *testing.T) {
	doc := NewDocument()
	ta := doc.CreateElement("textarea")
	ta.SetTextContent("default text")

	if ta.Value() != "default text" {
		t.Errorf("Expected value from text content, got %q", ta.Value())
	}
	ta.SetValue("edited")
	if ta.Value() != "edited" || ta.TextContent() != "default text" {
		t.Errorf("Expected dirty value without touching text, got %q / %q", ta.Value(), ta.TextContent())
	}
}

func TestSelect_Value(t *testing.T) {
	doc := NewDocument()
	sel := doc.CreateElement("select")
	if err := sel.SetInnerHTML(`<option value="a">A</option><option>  B  option </option><option value="c" selected>C</option>`); err != nil {
		t.Fatalf("SetInnerHTML failed: %v", err)
	}

	if sel.Value() != "c" {
		t.Errorf("Expected selected option 'c', got %q", sel.Value())
	}
	if sel.Options()[1].Value() != "B option" {
		t.Errorf("Expected collapsed option text, got %q", sel.Options()[1].Value())
	}

	sel.SetValue("a")
	if sel.Value() != "a" {
		t.Errorf("Expected 'a' after SetValue, got %q", sel.Value())
	}
	if sel.Options()[2].Selected() {
		t.Error("Expected previously selected option to be deselected")
	}
}

func TestOption_SetValue(t *testing.T) {
	doc := NewDocument()
	opt := doc.CreateElement("option")
	opt.SetTextContent("Label")
	opt.SetValue("v1")

	if opt.GetAttribute("value") != "v1" || opt.Value() != "v1" {
		t.Errorf("Expected option value attribute 'v1', got %q", opt.GetAttribute("value"))
	}
}
