package render

import (
	"context"

	"github.com/goliatone/go-knock/pkg/form"
)

// Renderer converts a form and its surrounding page data into bytes (HTML,
// JSON, ...).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, f *form.Form, options RenderOptions) ([]byte, error)
}
