package form

// Hidden is a non-interactive input carried through the form round trip.
type Hidden struct {
	Base
}

// NewHidden constructs a hidden element.
func NewHidden(name string) *Hidden {
	return &Hidden{Base: newBase(name, "")}
}

func (h *Hidden) Type() Type { return TypeHidden }

func (h *Hidden) Row() Row {
	row := h.row(Control{
		Kind:  "hidden",
		Name:  InputName(Namespace, h.name, false),
		Value: textOf(h.DisplayValue()),
	})
	row.Hidden = true
	return row
}
