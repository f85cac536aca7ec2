package render

import "strings"

// Button is a submit button rendered in the button bar.
type Button struct {
	Name  string `json:"name"`
	Value string `json:"value"`
	Title string `json:"title,omitempty"`
}

// ButtonBar is an ordered list of submit buttons.
type ButtonBar struct {
	Buttons []Button `json:"buttons,omitempty"`
}

// Add appends a button. Blank names are ignored and a repeated name replaces
// the earlier button in place.
func (b *ButtonBar) Add(name, value, title string) {
	name = strings.TrimSpace(name)
	if name == "" {
		return
	}
	button := Button{Name: name, Value: value, Title: title}
	for i := range b.Buttons {
		if b.Buttons[i].Name == name {
			b.Buttons[i] = button
			return
		}
	}
	b.Buttons = append(b.Buttons, button)
}

// Empty reports whether the bar holds no buttons.
func (b ButtonBar) Empty() bool { return len(b.Buttons) == 0 }
