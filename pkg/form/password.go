package form

import (
	"regexp"
	"strings"
)

// Password is a masked input. Its value is never echoed back when rendered.
type Password struct {
	Base
	pattern *regexp.Regexp
}

// NewPassword constructs a password element.
func NewPassword(name, label string) *Password {
	return &Password{Base: newBase(name, label)}
}

func (p *Password) Type() Type { return TypePassword }

// SetPattern compiles expr as the optional pattern. Validate does not apply
// it; callers check it through MatchesPattern.
func (p *Password) SetPattern(expr string) error {
	re, err := compilePattern(p.name, expr)
	if err != nil {
		return err
	}
	p.pattern = re
	return nil
}

func (p *Password) Pattern() string { return patternSource(p.pattern) }

// MatchesPattern reports whether the trimmed value satisfies the pattern.
// Empty values and elements without a pattern always match.
func (p *Password) MatchesPattern() bool {
	if p.pattern == nil {
		return true
	}
	trimmed := strings.TrimSpace(textOf(p.value))
	return trimmed == "" || p.pattern.MatchString(trimmed)
}

func (p *Password) Row() Row {
	return p.row(Control{
		Kind: "password",
		Name: InputName(Namespace, p.name, false),
	})
}
