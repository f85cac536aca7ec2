package form

import (
	"fmt"
	"strings"
)

// Form is an ordered collection of named elements plus the attributes of the
// enclosing form tag.
type Form struct {
	name       string
	elements   []Element
	attributes map[string]string
	failed     []string
}

// FormOption configures a Form during construction.
type FormOption func(*Form)

// WithAction sets the action attribute.
func WithAction(action string) FormOption {
	return func(f *Form) { f.SetAttribute("action", action) }
}

// WithMethod sets the method attribute.
func WithMethod(method string) FormOption {
	return func(f *Form) { f.SetAttribute("method", strings.ToLower(method)) }
}

// WithAttribute sets an arbitrary attribute.
func WithAttribute(key, value string) FormOption {
	return func(f *Form) { f.SetAttribute(key, value) }
}

// New constructs an empty form. The name and method attributes default to
// the form name and "post".
func New(name string, options ...FormOption) *Form {
	f := &Form{
		name:       strings.TrimSpace(name),
		attributes: make(map[string]string),
	}
	f.SetAttribute("name", f.name)
	f.SetAttribute("method", "post")
	for _, opt := range options {
		if opt != nil {
			opt(f)
		}
	}
	return f
}

func (f *Form) Name() string { return f.name }

// AddElement constructs an element of type t and registers it.
func (f *Form) AddElement(t Type, name string, args ...any) (Element, error) {
	el, err := NewElement(t, name, args...)
	if err != nil {
		return nil, err
	}
	if err := f.Register(el); err != nil {
		return nil, err
	}
	return el, nil
}

// Add constructs and registers an element, returning it as its concrete type:
//
//	port, err := form.Add[*form.Integer](f, form.TypeInteger, "serverPort", "Server port")
func Add[T Element](f *Form, t Type, name string, args ...any) (T, error) {
	var zero T
	el, err := NewElement(t, name, args...)
	if err != nil {
		return zero, err
	}
	typed, ok := el.(T)
	if !ok {
		return zero, fmt.Errorf("%w: %s element %q is %T, want %T", ErrTypeMismatch, t, name, el, zero)
	}
	if err := f.Register(typed); err != nil {
		return zero, err
	}
	return typed, nil
}

// Register adds el to the form. An element registered under an existing name
// replaces the previous one in its original position.
func (f *Form) Register(el Element) error {
	if el == nil {
		return fmt.Errorf("form: element is required")
	}
	if el.Name() == "" {
		return ErrNameRequired
	}
	if i := f.indexOf(el.Name()); i >= 0 {
		f.elements[i] = el
		return nil
	}
	f.elements = append(f.elements, el)
	return nil
}

// Element returns the element registered under name, or nil.
func (f *Form) Element(name string) Element {
	if i := f.indexOf(name); i >= 0 {
		return f.elements[i]
	}
	return nil
}

func (f *Form) indexOf(name string) int {
	for i, el := range f.elements {
		if el.Name() == name {
			return i
		}
	}
	return -1
}

// Elements returns the registered elements in registration order.
func (f *Form) Elements() []Element {
	out := make([]Element, len(f.elements))
	copy(out, f.elements)
	return out
}

func (f *Form) Len() int { return len(f.elements) }

// Fetch fetches every element in registration order.
func (f *Form) Fetch(in Input) {
	for _, el := range f.elements {
		el.Fetch(in)
	}
}

// Validate validates every element, including those after a failure, and
// reports whether all of them passed. Failing names are available via Failed.
func (f *Form) Validate() bool {
	f.failed = nil
	for _, el := range f.elements {
		if !el.Validate() {
			f.failed = append(f.failed, el.Name())
		}
	}
	return len(f.failed) == 0
}

// Failed returns the names of the elements that failed the last Validate.
func (f *Form) Failed() []string {
	if len(f.failed) == 0 {
		return nil
	}
	out := make([]string, len(f.failed))
	copy(out, f.failed)
	return out
}

// DbValues snapshots the storage value of every element in registration
// order.
func (f *Form) DbValues() Values {
	out := make(Values, 0, len(f.elements))
	for _, el := range f.elements {
		out = append(out, Entry{Name: el.Name(), Value: el.DbValue()})
	}
	return out
}

// Layout returns the rows of all elements, hidden ones separated from visible
// ones.
func (f *Form) Layout() Layout {
	var layout Layout
	for _, el := range f.elements {
		row := el.Row()
		if row.Hidden {
			layout.Hidden = append(layout.Hidden, row)
			continue
		}
		layout.Visible = append(layout.Visible, row)
	}
	return layout
}

// SetAttribute sets a form tag attribute. Keys are case-insensitive and the
// last write wins.
func (f *Form) SetAttribute(key, value string) {
	key = strings.ToLower(strings.TrimSpace(key))
	if key == "" {
		return
	}
	f.attributes[key] = value
}

// Attribute returns the attribute stored under key.
func (f *Form) Attribute(key string) (string, bool) {
	v, ok := f.attributes[strings.ToLower(strings.TrimSpace(key))]
	return v, ok
}

// Attributes returns a copy of all attributes with lower-case keys.
func (f *Form) Attributes() map[string]string {
	out := make(map[string]string, len(f.attributes))
	for k, v := range f.attributes {
		out[k] = v
	}
	return out
}

// Entry is one named storage value.
type Entry struct {
	Name  string `json:"name"`
	Value any    `json:"value"`
}

// Values is an ordered snapshot of storage values.
type Values []Entry

// Get returns the value stored under name.
func (v Values) Get(name string) (any, bool) {
	for _, entry := range v {
		if entry.Name == name {
			return entry.Value, true
		}
	}
	return nil, false
}

// Text returns the value under name as text; lists and missing names yield "".
func (v Values) Text(name string) string {
	value, _ := v.Get(name)
	return textOf(value)
}

// Strings returns the value under name as a list of strings.
func (v Values) Strings(name string) []string {
	value, _ := v.Get(name)
	return selectedKeys(value)
}

// Names returns the entry names in order.
func (v Values) Names() []string {
	out := make([]string, len(v))
	for i, entry := range v {
		out[i] = entry.Name
	}
	return out
}

// Map returns the entries as an unordered map.
func (v Values) Map() map[string]any {
	out := make(map[string]any, len(v))
	for _, entry := range v {
		out[entry.Name] = entry.Value
	}
	return out
}
