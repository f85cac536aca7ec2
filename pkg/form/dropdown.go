package form

import "strconv"

// defaultGrowthSize is the maximum size enabled when a single-row dropdown
// becomes multi-select.
const defaultGrowthSize = 5

// Option is one dropdown entry. Key is the storage value, Label the text shown.
type Option struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

// Options is an ordered set of dropdown entries.
type Options []Option

// OptionsFromList keys labels by their list index.
func OptionsFromList(labels ...string) Options {
	out := make(Options, 0, len(labels))
	for i, label := range labels {
		out = append(out, Option{Key: strconv.Itoa(i), Label: label})
	}
	return out
}

// Label returns the label stored under key.
func (o Options) Label(key string) (string, bool) {
	for _, opt := range o {
		if opt.Key == key {
			return opt.Label, true
		}
	}
	return "", false
}

// Keys returns the option keys in order.
func (o Options) Keys() []string {
	out := make([]string, len(o))
	for i, opt := range o {
		out[i] = opt.Key
	}
	return out
}

// Dropdown is a select input with single or multiple selection.
type Dropdown struct {
	Base
	options     Options
	multiple    bool
	size        int
	maximumSize int
}

// NewDropdown constructs a single-select dropdown of one visible row.
func NewDropdown(name, label string, options Options) *Dropdown {
	d := &Dropdown{Base: newBase(name, label), size: 1}
	d.SetOptions(options)
	return d
}

func (d *Dropdown) Type() Type { return TypeDropdown }

func (d *Dropdown) Options() Options {
	out := make(Options, len(d.options))
	copy(out, d.options)
	return out
}

func (d *Dropdown) SetOptions(options Options) {
	d.options = make(Options, len(options))
	copy(d.options, options)
}

func (d *Dropdown) IsMultiple() bool { return d.multiple }

// SetIsMultiple toggles multi-select. Enabling it on a single-row dropdown
// turns on the growth policy with a maximum size of 5.
func (d *Dropdown) SetIsMultiple(multiple bool) {
	d.multiple = multiple
	if multiple && d.size == 1 {
		d.SetMaximumSize(defaultGrowthSize)
	}
}

func (d *Dropdown) Size() int { return d.size }

// SetSize sets the visible row count to |n|, at least 1. A size of 1 forces
// single selection and disables the growth policy.
func (d *Dropdown) SetSize(n int) {
	if n < 0 {
		n = -n
	}
	if n < 1 {
		n = 1
	}
	d.size = n
	if n == 1 {
		d.multiple = false
		d.maximumSize = 0
	}
}

// MaximumSize returns the growth policy ceiling, or 0 when the policy is off.
func (d *Dropdown) MaximumSize() int { return d.maximumSize }

// SetMaximumSize enables the growth policy for n > 1 and uses n as the
// current size. Any other n disables the policy.
func (d *Dropdown) SetMaximumSize(n int) {
	if n > 1 {
		d.maximumSize = n
		d.size = n
		return
	}
	d.maximumSize = 0
}

// EffectiveSize is the row count used for rendering: the smaller of the
// maximum size and the option count while the growth policy is on.
func (d *Dropdown) EffectiveSize() int {
	if d.maximumSize < 2 {
		return d.size
	}
	size := d.maximumSize
	if len(d.options) < size {
		size = len(d.options)
	}
	if size < 1 {
		size = 1
	}
	return size
}

func (d *Dropdown) Fetch(in Input) { fetch(d, in) }

// SetValue stores raw input as-is, lists included. Joined rows yield the
// column from the first matching row.
func (d *Dropdown) SetValue(raw any) {
	d.validated = false
	rows, ok := rowsOf(raw)
	if !ok {
		d.value = raw
		return
	}
	d.value = nil
	if v, found := column(rows, d.name); found {
		d.value = v
	}
}

// SetDbValue accepts a scalar, a flat list or joined rows. Joined rows yield
// the element column of every row.
func (d *Dropdown) SetDbValue(raw any) { d.value = d.normalize(raw) }

func (d *Dropdown) normalize(raw any) any {
	if rows, ok := rowsOf(raw); ok {
		out := []string{}
		for _, row := range rows {
			if v, found := row[d.name]; found && v != nil {
				out = append(out, scalarString(v))
			}
		}
		return out
	}
	if isList(raw) || d.multiple {
		return toStrings(raw)
	}
	return raw
}

// IsEmpty treats a list as empty when it has no entries and a scalar when its
// text is empty.
func (d *Dropdown) IsEmpty() bool {
	if isList(d.value) {
		return listLen(d.value) == 0
	}
	return scalarString(d.value) == ""
}

// DisplayValue resolves the default through the storage normalisation
// without touching the element.
func (d *Dropdown) DisplayValue() any {
	if d.IsEmpty() && d.defaultValue != nil {
		return d.normalize(d.defaultValue)
	}
	return d.value
}

// SelectedKeys returns the current value as strings.
func (d *Dropdown) SelectedKeys() []string { return selectedKeys(d.value) }

// IsSelected reports whether key is part of the current value. Keys compare
// by exact string equality, so "0" never matches an empty selection.
func (d *Dropdown) IsSelected(key string) bool {
	return containsKey(d.SelectedKeys(), key)
}

// Validate drops one empty entry from a list value, turns an empty scalar
// into nil and then applies the not-null check. A multi-select dropdown
// always ends up with a list, a lone scalar becoming its only entry.
func (d *Dropdown) Validate() bool {
	d.resetErrors()
	if isList(d.value) || d.multiple {
		keys := toStrings(d.value)
		for i, key := range keys {
			if key == "" {
				keys = append(keys[:i], keys[i+1:]...)
				break
			}
		}
		d.value = keys
	} else if s, ok := d.value.(string); ok && s == "" {
		d.value = nil
	}

	if d.notNull && (d.value == nil || (isList(d.value) && listLen(d.value) == 0)) {
		d.SetError(EmptyValue)
	}
	d.validated = true
	return !d.HasError()
}

func (d *Dropdown) Row() Row {
	selected := selectedKeys(d.DisplayValue())
	choices := make([]Choice, 0, len(d.options))
	for _, opt := range d.options {
		choices = append(choices, Choice{
			Key:      opt.Key,
			Label:    opt.Label,
			Selected: containsKey(selected, opt.Key),
		})
	}
	return d.row(Control{
		Kind:     "select",
		Name:     InputName(Namespace, d.name, d.multiple),
		Options:  choices,
		Multiple: d.multiple,
		Size:     d.EffectiveSize(),
	})
}

func selectedKeys(v any) []string {
	if v == nil {
		return []string{}
	}
	return toStrings(v)
}

func containsKey(keys []string, key string) bool {
	for _, k := range keys {
		if k == key {
			return true
		}
	}
	return false
}
