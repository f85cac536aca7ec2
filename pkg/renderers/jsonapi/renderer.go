// Package jsonapi renders the outcome of a form submission as JSON for
// scripted clients.
package jsonapi

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/goliatone/go-knock/pkg/form"
	"github.com/goliatone/go-knock/pkg/message"
	"github.com/goliatone/go-knock/pkg/render"
)

// Renderer produces application/json documents.
type Renderer struct {
	indent string
}

var _ render.Renderer = (*Renderer)(nil)

type Option func(*Renderer)

// WithIndent pretty prints the document using indent.
func WithIndent(indent string) Option {
	return func(r *Renderer) {
		r.indent = indent
	}
}

func New(options ...Option) *Renderer {
	r := &Renderer{}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

func (r *Renderer) Name() string        { return "json" }
func (r *Renderer) ContentType() string { return "application/json" }

// Document is the JSON shape produced by Render.
type Document struct {
	Form     string              `json:"form"`
	Valid    *bool               `json:"valid,omitempty"`
	Values   form.Values         `json:"values"`
	Errors   map[string][]string `json:"errors,omitempty"`
	Failed   []string            `json:"failed,omitempty"`
	Messages message.Snapshot    `json:"messages"`
}

// Render encodes the storage values in registration order, the localized
// field errors and the flash messages. Defaults are not storage values and
// password values are never included.
func (r *Renderer) Render(ctx context.Context, f *form.Form, opts render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if f == nil {
		return nil, fmt.Errorf("jsonapi renderer: form is nil")
	}

	doc := Document{
		Form:     f.Name(),
		Valid:    opts.Valid,
		Values:   form.Values{},
		Failed:   f.Failed(),
		Messages: opts.Messages,
	}
	for _, entry := range f.DbValues() {
		if el := f.Element(entry.Name); el != nil && el.Type() == form.TypePassword {
			continue
		}
		doc.Values = append(doc.Values, entry)
	}
	if errs := render.MapErrors(f, opts); len(errs.Fields) > 0 {
		doc.Errors = errs.Fields
	}

	var (
		payload []byte
		err     error
	)
	if r.indent != "" {
		payload, err = json.MarshalIndent(doc, "", r.indent)
	} else {
		payload, err = json.Marshal(doc)
	}
	if err != nil {
		return nil, fmt.Errorf("jsonapi renderer: encode: %w", err)
	}
	return payload, nil
}
