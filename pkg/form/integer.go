package form

import (
	"regexp"
	"strconv"
	"strings"
)

var integerPattern = regexp.MustCompile(`^[-+]?[0-9]+$`)

// Integer is a text input restricted to whole numbers within an optional
// inclusive range.
type Integer struct {
	Base
	minimum    int64
	maximum    int64
	hasMinimum bool
	hasMaximum bool
}

// NewInteger constructs an integer element without range limits.
func NewInteger(name, label string) *Integer {
	return &Integer{Base: newBase(name, label)}
}

func (i *Integer) Type() Type { return TypeInteger }

func (i *Integer) SetMinimum(n int64) { i.minimum, i.hasMinimum = n, true }
func (i *Integer) SetMaximum(n int64) { i.maximum, i.hasMaximum = n, true }
func (i *Integer) ClearMinimum()      { i.minimum, i.hasMinimum = 0, false }
func (i *Integer) ClearMaximum()      { i.maximum, i.hasMaximum = 0, false }

// Minimum returns the lower bound and whether one is set.
func (i *Integer) Minimum() (int64, bool) { return i.minimum, i.hasMinimum }

// Maximum returns the upper bound and whether one is set.
func (i *Integer) Maximum() (int64, bool) { return i.maximum, i.hasMaximum }

// IsEmpty trims the value before checking its length.
func (i *Integer) IsEmpty() bool {
	if i.value == nil {
		return true
	}
	return strings.TrimSpace(textOf(i.value)) == ""
}

func (i *Integer) DisplayValue() any { return i.displayValue(i.IsEmpty()) }

// Int64 parses the current value.
func (i *Integer) Int64() (int64, bool) {
	n, err := strconv.ParseInt(strings.TrimSpace(textOf(i.value)), 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// Validate trims the value. An empty value becomes nil and skips the format
// and range checks. Otherwise the format and both bounds are checked
// independently, so one call can record several kinds.
func (i *Integer) Validate() bool {
	i.resetErrors()
	defer i.setValidated(true)

	if i.IsEmpty() {
		if i.notNull {
			i.SetError(EmptyValue)
		}
		i.value = nil
		return !i.HasError()
	}

	trimmed := strings.TrimSpace(textOf(i.value))
	i.value = trimmed

	if !integerPattern.MatchString(trimmed) {
		i.SetError(InvalidFormat)
	}
	n := leadingNumber(trimmed)
	if i.hasMinimum && n < float64(i.minimum) {
		i.SetError(MinExceeded)
	}
	if i.hasMaximum && n > float64(i.maximum) {
		i.SetError(MaxExceeded)
	}
	return !i.HasError()
}

func (i *Integer) Row() Row {
	return i.row(Control{
		Kind:  "text",
		Name:  InputName(Namespace, i.name, false),
		Value: textOf(i.DisplayValue()),
	})
}

// leadingNumber parses the longest numeric prefix of s. Text without a
// numeric prefix is 0.
func leadingNumber(s string) float64 {
	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
		digits++
	}
	if end < len(s) && s[end] == '.' {
		frac := end + 1
		for frac < len(s) && s[frac] >= '0' && s[frac] <= '9' {
			frac++
		}
		if frac > end+1 || digits > 0 {
			digits += frac - end - 1
			end = frac
		}
	}
	if digits == 0 {
		return 0
	}
	n, err := strconv.ParseFloat(strings.TrimSuffix(s[:end], "."), 64)
	if err != nil {
		return 0
	}
	return n
}
