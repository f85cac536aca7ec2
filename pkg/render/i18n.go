package render

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-knock/pkg/form"
)

// Translator resolves a message key for a locale.
type Translator interface {
	Translate(locale, key string, args ...any) (string, error)
}

// MissingTranslationHandler returns the text used when key has no
// translation. err is the translator error, if any.
type MissingTranslationHandler func(locale, key string, args []any, err error) string

// ErrMissingTranslation is returned by the built-in catalog for unknown keys.
var ErrMissingTranslation = errors.New("render: missing translation")

// ErrorKey returns the translation key of an error kind.
func ErrorKey(kind form.ErrorKind) string {
	return "form.error." + string(kind)
}

// Catalog is a static Translator keyed by locale then message key. Locales
// fall back to their base language ("de-AT" to "de") and then to "en".
type Catalog map[string]map[string]string

// DefaultCatalog holds the built-in error messages.
var DefaultCatalog = Catalog{
	"en": {
		ErrorKey(form.EmptyValue):     "Please enter a value.",
		ErrorKey(form.InvalidFormat):  "Invalid format.",
		ErrorKey(form.MinExceeded):    "Value is below the minimum.",
		ErrorKey(form.MaxExceeded):    "Value is above the maximum.",
		ErrorKey(form.RegexpMismatch): "Invalid value.",
	},
	"de": {
		ErrorKey(form.EmptyValue):     "Bitte einen Wert eingeben.",
		ErrorKey(form.InvalidFormat):  "Ungültiges Format.",
		ErrorKey(form.MinExceeded):    "Der Wert ist zu klein.",
		ErrorKey(form.MaxExceeded):    "Der Wert ist zu groß.",
		ErrorKey(form.RegexpMismatch): "Ungültiger Wert.",
	},
}

// Translate implements Translator.
func (c Catalog) Translate(locale, key string, args ...any) (string, error) {
	for _, candidate := range localeChain(locale) {
		if msg, ok := c[candidate][key]; ok {
			if len(args) > 0 {
				return fmt.Sprintf(msg, args...), nil
			}
			return msg, nil
		}
	}
	return "", fmt.Errorf("%w: %s/%s", ErrMissingTranslation, locale, key)
}

func localeChain(locale string) []string {
	locale = strings.ToLower(strings.TrimSpace(strings.ReplaceAll(locale, "_", "-")))
	var out []string
	if locale != "" {
		out = append(out, locale)
		if base, _, found := strings.Cut(locale, "-"); found {
			out = append(out, base)
		}
	}
	return append(out, "en")
}

// ErrorMessage returns the localized text of kind.
func ErrorMessage(kind form.ErrorKind, opts RenderOptions) string {
	t := opts.Translator
	if t == nil {
		t = DefaultCatalog
	}
	onMissing := opts.OnMissing
	if onMissing == nil {
		onMissing = missingTranslationDefault
	}
	return translate(opts.Locale, ErrorKey(kind), "Invalid value.", t, onMissing)
}

func translate(locale, key, fallback string, t Translator, onMissing MissingTranslationHandler) string {
	key = strings.TrimSpace(key)
	if key == "" {
		return fallback
	}
	result, err := t.Translate(locale, key)
	if err == nil && strings.TrimSpace(result) != "" {
		return result
	}
	if msg := onMissing(locale, key, []any{map[string]any{"default": fallback}}, err); msg != "" {
		return msg
	}
	return fallback
}

// missingTranslationDefault returns the fallback carried in args, or the key.
func missingTranslationDefault(_ string, key string, args []any, _ error) string {
	for _, arg := range args {
		if m, ok := arg.(map[string]any); ok {
			if s, ok := m["default"].(string); ok && strings.TrimSpace(s) != "" {
				return s
			}
		}
	}
	return key
}
