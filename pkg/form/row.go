package form

// Row is the layout unit an element hands to a renderer: a label, an input
// control and the error kinds to annotate it with.
type Row struct {
	Name    string      `json:"name"`
	Label   string      `json:"label,omitempty"`
	Hint    string      `json:"hint,omitempty"`
	Hidden  bool        `json:"hidden,omitempty"`
	Control Control     `json:"control"`
	Errors  []ErrorKind `json:"errors,omitempty"`
}

// HasError reports whether the row carries validation errors.
func (r Row) HasError() bool { return len(r.Errors) > 0 }

// Control describes the input of a row.
type Control struct {
	// Kind is the HTML input kind: text, password, hidden or select.
	Kind     string   `json:"kind"`
	Name     string   `json:"name"`
	Value    string   `json:"value,omitempty"`
	Options  []Choice `json:"options,omitempty"`
	Multiple bool     `json:"multiple,omitempty"`
	Size     int      `json:"size,omitempty"`
}

// Choice is a dropdown option prepared for rendering.
type Choice struct {
	Key      string `json:"key"`
	Label    string `json:"label"`
	Selected bool   `json:"selected,omitempty"`
}

// Layout groups rows for rendering. Hidden rows are emitted before visible
// ones so hidden inputs never interleave with table rows.
type Layout struct {
	Hidden  []Row `json:"hidden"`
	Visible []Row `json:"visible"`
}

// Rows returns hidden rows followed by visible rows.
func (l Layout) Rows() []Row {
	out := make([]Row, 0, len(l.Hidden)+len(l.Visible))
	out = append(out, l.Hidden...)
	return append(out, l.Visible...)
}
