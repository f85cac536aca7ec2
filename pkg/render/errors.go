package render

import (
	"strings"

	"github.com/goliatone/go-knock/pkg/form"
)

// ErrorMapping splits validation feedback into element-level messages keyed
// by element name and form-level messages.
type ErrorMapping struct {
	Fields map[string][]string
	Form   []string
}

// Empty reports whether the mapping carries no messages.
func (m ErrorMapping) Empty() bool {
	return len(m.Fields) == 0 && len(m.Form) == 0
}

// MapErrors localizes the error kinds of every element in f. Extra
// form-level messages are appended after de-duplication.
func MapErrors(f *form.Form, opts RenderOptions, formLevel ...string) ErrorMapping {
	mapping := ErrorMapping{Fields: make(map[string][]string)}
	if f != nil {
		for _, el := range f.Elements() {
			kinds := el.Errors()
			if len(kinds) == 0 {
				continue
			}
			messages := make([]string, 0, len(kinds))
			for _, kind := range kinds {
				messages = append(messages, ErrorMessage(kind, opts))
			}
			if normalized := normalizeMessages(messages); len(normalized) > 0 {
				mapping.Fields[el.Name()] = normalized
			}
		}
	}
	if len(mapping.Fields) == 0 {
		mapping.Fields = nil
	}
	mapping.Form = normalizeMessages(formLevel)
	return mapping
}

// MergeFormErrors concatenates and normalises form-level error slices,
// trimming whitespace and removing duplicates while preserving order.
func MergeFormErrors(existing []string, extras ...string) []string {
	combined := make([]string, 0, len(existing)+len(extras))
	combined = append(combined, existing...)
	combined = append(combined, extras...)
	return normalizeMessages(combined)
}

func normalizeMessages(messages []string) []string {
	if len(messages) == 0 {
		return nil
	}

	out := make([]string, 0, len(messages))
	seen := make(map[string]struct{}, len(messages))

	for _, message := range messages {
		trimmed := strings.TrimSpace(message)
		if trimmed == "" {
			continue
		}
		if _, exists := seen[trimmed]; exists {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}

	if len(out) == 0 {
		return nil
	}
	return out
}
