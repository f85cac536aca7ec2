package render

import (
	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-knock/pkg/message"
)

// RenderOptions describe per-request data that renderers combine with the
// form rows.
type RenderOptions struct {
	// Title is the page title.
	Title string
	// Locale selects translations for error messages.
	Locale string
	// Translator resolves error message keys. Nil falls back to the built-in
	// English catalog.
	Translator Translator
	// OnMissing customises the text used when a translation is missing.
	OnMissing MissingTranslationHandler
	// Stylesheets are emitted in order in the page head.
	Stylesheets []string
	// Messages are the flash messages shown above the form.
	Messages message.Snapshot
	// Buttons render below the form body.
	Buttons ButtonBar
	// Theme carries resolved tokens, CSS variables and asset URLs.
	Theme *theme.RendererConfig
	// Product and Version label the page header and footer.
	Product string
	Version string
	// Legend toggles the explanatory text below the form.
	Legend bool
	// Valid reports the outcome of the last validation for machine readable
	// renderers. Nil means the form was not validated.
	Valid *bool
}
