package form

import "strings"

// Namespace is the request key prefix element inputs are posted under.
const Namespace = "data"

// Element is the contract shared by every form element variant.
type Element interface {
	Type() Type
	Name() string
	SetName(name string)
	Label() string
	SetLabel(label string)
	Hint() string
	SetHint(hint string)

	Fetch(in Input)
	SetValue(raw any)
	SetDbValue(raw any)
	Value() any
	DbValue() any
	DefaultValue() any
	SetDefaultValue(v any)
	DisplayValue() any
	IsEmpty() bool

	NotNull() bool
	SetNotNull(notNull bool)
	Validate() bool
	Errors() []ErrorKind
	HasError() bool
	SetError(kind ErrorKind)
	IsValidated() bool

	Row() Row
}

// Base carries the state and behaviour common to all elements. Variants embed
// it and override the methods whose semantics differ.
type Base struct {
	name         string
	label        string
	hint         string
	value        any
	defaultValue any
	notNull      bool
	errors       []ErrorKind
	validated    bool
}

func newBase(name, label string) Base {
	return Base{
		name:      strings.TrimSpace(name),
		label:     label,
		validated: true,
	}
}

func (b *Base) Name() string { return b.name }

// SetName renames the element. Renaming after Fetch leaves the fetched value
// bound to the old name's input.
func (b *Base) SetName(name string) { b.name = strings.TrimSpace(name) }

// Label returns the configured label or one derived from the name.
func (b *Base) Label() string {
	if b.label != "" {
		return b.label
	}
	return DefaultLabel(b.name)
}

func (b *Base) SetLabel(label string) { b.label = label }
func (b *Base) Hint() string          { return b.hint }
func (b *Base) SetHint(hint string)   { b.hint = hint }
func (b *Base) NotNull() bool         { return b.notNull }
func (b *Base) SetNotNull(v bool)     { b.notNull = v }
func (b *Base) DefaultValue() any     { return b.defaultValue }
func (b *Base) SetDefaultValue(v any) { b.defaultValue = v }
func (b *Base) IsValidated() bool     { return b.validated }

func (b *Base) Value() any   { return b.value }
func (b *Base) DbValue() any { return b.value }

// Fetch pulls the element value from in. Request input marks the element as
// not validated; global input is trusted and marks it validated.
func (b *Base) Fetch(in Input) { fetch(b, in) }

// SetValue stores raw input. A list of row records yields the column named
// after the element; any other list yields nil.
func (b *Base) SetValue(raw any) {
	b.validated = false
	if !isList(raw) {
		b.value = raw
		return
	}
	b.value = nil
	if rows, ok := rowsOf(raw); ok {
		if v, found := column(rows, b.name); found {
			b.value = v
		}
	}
}

// SetDbValue stores a storage value. Lists without a matching column yield an
// empty list instead of nil.
func (b *Base) SetDbValue(raw any) {
	if !isList(raw) {
		b.value = raw
		return
	}
	b.value = []string{}
	if rows, ok := rowsOf(raw); ok {
		if v, found := column(rows, b.name); found {
			b.value = v
		}
	}
}

// IsEmpty reports whether the value is nil, an empty list or an empty string.
func (b *Base) IsEmpty() bool {
	switch v := b.value.(type) {
	case nil:
		return true
	case string:
		return v == ""
	}
	if isList(b.value) {
		return listLen(b.value) == 0
	}
	return false
}

// DisplayValue returns the value to show in an interactive form: the default
// when the value is empty, the value otherwise.
func (b *Base) DisplayValue() any {
	return b.displayValue(b.IsEmpty())
}

func (b *Base) displayValue(empty bool) any {
	if empty && b.defaultValue != nil {
		return b.defaultValue
	}
	return b.value
}

// Validate checks the not-null constraint.
func (b *Base) Validate() bool {
	b.resetErrors()
	if b.notNull && b.IsEmpty() {
		b.SetError(EmptyValue)
	}
	b.validated = true
	return !b.HasError()
}

// Errors returns the recorded error kinds in the order they were raised.
func (b *Base) Errors() []ErrorKind {
	if len(b.errors) == 0 {
		return nil
	}
	out := make([]ErrorKind, len(b.errors))
	copy(out, b.errors)
	return out
}

func (b *Base) HasError() bool { return len(b.errors) > 0 }

// SetError records kind. Recording the same kind twice is a no-op.
func (b *Base) SetError(kind ErrorKind) {
	for _, existing := range b.errors {
		if existing == kind {
			return
		}
	}
	b.errors = append(b.errors, kind)
}

func (b *Base) resetErrors() { b.errors = nil }

func (b *Base) clear()              { b.value = nil }
func (b *Base) setValidated(v bool) { b.validated = v }

func (b *Base) row(control Control) Row {
	return Row{
		Name:    b.name,
		Label:   b.Label(),
		Hint:    b.hint,
		Control: control,
		Errors:  b.Errors(),
	}
}

type binder interface {
	Name() string
	SetValue(raw any)
	SetDbValue(raw any)
	clear()
	setValidated(v bool)
}

func fetch(e binder, in Input) {
	name := e.Name()
	if v, ok := lookup(in.Request, name); ok {
		e.SetValue(v)
		e.setValidated(false)
		return
	}
	if v, ok := lookup(in.Global, name); ok {
		e.SetDbValue(v)
		e.setValidated(true)
		return
	}
	e.clear()
}
