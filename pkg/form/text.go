package form

import (
	"fmt"
	"regexp"
	"strings"
)

// Text is a single-line text input with an optional validation pattern.
type Text struct {
	Base
	pattern *regexp.Regexp
}

// NewText constructs a text element.
func NewText(name, label string) *Text {
	return &Text{Base: newBase(name, label)}
}

func (t *Text) Type() Type { return TypeText }

// SetPattern compiles expr as the validation pattern. An empty expr removes
// the pattern.
func (t *Text) SetPattern(expr string) error {
	re, err := compilePattern(t.name, expr)
	if err != nil {
		return err
	}
	t.pattern = re
	return nil
}

// Pattern returns the source of the validation pattern, if any.
func (t *Text) Pattern() string { return patternSource(t.pattern) }

// Validate runs the not-null check, then matches the trimmed value against the
// pattern when both are present.
func (t *Text) Validate() bool {
	t.Base.Validate()
	if t.pattern == nil {
		return !t.HasError()
	}
	trimmed := strings.TrimSpace(textOf(t.value))
	if trimmed != "" && !t.pattern.MatchString(trimmed) {
		t.SetError(RegexpMismatch)
	}
	return !t.HasError()
}

func (t *Text) Row() Row {
	return t.row(Control{
		Kind:  "text",
		Name:  InputName(Namespace, t.name, false),
		Value: textOf(t.DisplayValue()),
	})
}

func compilePattern(name, expr string) (*regexp.Regexp, error) {
	if strings.TrimSpace(expr) == "" {
		return nil, nil
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("form: compile pattern for %q: %w", name, err)
	}
	return re, nil
}

func patternSource(re *regexp.Regexp) string {
	if re == nil {
		return ""
	}
	return re.String()
}

// textOf renders scalar values as text. Lists have no single-line text form
// and yield "".
func textOf(v any) string {
	if isList(v) {
		return ""
	}
	return scalarString(v)
}
