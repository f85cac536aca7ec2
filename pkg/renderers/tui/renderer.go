// Package tui fills forms interactively in a terminal. Every visible element
// is prompted in order and re-prompted until its own validation passes.
package tui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/goliatone/go-knock/pkg/form"
	"github.com/goliatone/go-knock/pkg/render"
)

// Renderer implements render.Renderer for terminal-driven sessions.
type Renderer struct {
	driver       PromptDriver
	out          io.Writer
	outputFormat OutputFormat
	theme        Theme
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs a TUI renderer with defaults (survey driver, JSON output).
func New(options ...Option) *Renderer {
	r := &Renderer{outputFormat: OutputFormatJSON}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	if r.driver == nil {
		r.driver = newSurveyDriver(r.out)
	}
	return r
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return "tui"
}

// ContentType reports the serialization format used by Render.
func (r *Renderer) ContentType() string {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		return "application/x-www-form-urlencoded"
	case OutputFormatPrettyText:
		return "text/plain"
	default:
		return "application/json"
	}
}

// Render fills f through the prompt driver and serializes the collected
// values.
func (r *Renderer) Render(ctx context.Context, f *form.Form, opts render.RenderOptions) ([]byte, error) {
	values, err := r.Fill(ctx, f, opts)
	if err != nil {
		return nil, err
	}
	return r.serialize(f, values)
}

// Fill prompts for every visible element of f, storing each answer on the
// element. Hidden elements keep their display value. The returned source
// holds the answers keyed by element name and can be fed back to Fetch.
func (r *Renderer) Fill(ctx context.Context, f *form.Form, opts render.RenderOptions) (form.MapSource, error) {
	if ctx == nil {
		return nil, errors.New("tui: context is required")
	}
	if f == nil {
		return nil, errors.New("tui: form is nil")
	}
	if r.driver == nil {
		return nil, errors.New("tui: prompt driver is nil")
	}

	state := NewState(nil, render.MapErrors(f, opts).Fields)
	for _, el := range f.Elements() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		row := el.Row()
		if row.Hidden {
			value := el.DisplayValue()
			el.SetValue(value)
			state.SetValue(el.Name(), value)
			continue
		}
		if err := r.promptElement(ctx, el, row, state, opts); err != nil {
			return nil, fmt.Errorf("tui: %s: %w", el.Name(), err)
		}
	}
	return form.MapSource(state.Values()), nil
}

func (r *Renderer) promptElement(ctx context.Context, el form.Element, row form.Row, state *State, opts render.RenderOptions) error {
	name := el.Name()
	if row.Control.Kind == "select" && len(row.Control.Options) == 0 {
		if el.NotNull() {
			return ErrNoOptions
		}
		return nil
	}
	for {
		for _, msg := range state.ErrorsFor(name) {
			if err := r.driver.Info(ctx, r.theme.ErrorPrefix+row.Label+": "+msg); err != nil {
				return err
			}
		}

		answer, err := r.ask(ctx, row)
		if err != nil {
			return err
		}

		el.SetValue(answer)
		if el.Validate() {
			state.SetErrors(name, nil)
			state.SetValue(name, el.Value())
			return nil
		}

		messages := make([]string, 0, len(el.Errors()))
		for _, kind := range el.Errors() {
			messages = append(messages, render.ErrorMessage(kind, opts))
		}
		state.SetErrors(name, messages)
		row = el.Row()
	}
}

func (r *Renderer) ask(ctx context.Context, row form.Row) (any, error) {
	message := r.theme.PromptPrefix + row.Label
	switch row.Control.Kind {
	case "password":
		return r.driver.Password(ctx, InputConfig{Message: message, Help: row.Hint})
	case "select":
		return r.askSelect(ctx, message, row)
	default:
		return r.driver.Input(ctx, InputConfig{
			Message: message,
			Default: row.Control.Value,
			Help:    row.Hint,
		})
	}
}

func (r *Renderer) askSelect(ctx context.Context, message string, row form.Row) (any, error) {
	choices := row.Control.Options
	labels := make([]string, len(choices))
	var selected []int
	for i, choice := range choices {
		labels[i] = choice.Label
		if choice.Selected {
			selected = append(selected, i)
		}
	}
	cfg := SelectConfig{
		Message:      message,
		Options:      labels,
		DefaultIndex: -1,
		Defaults:     selected,
		Help:         row.Hint,
	}
	if row.Control.Size > 1 {
		cfg.PageSize = row.Control.Size
	}

	if row.Control.Multiple {
		indices, err := r.driver.MultiSelect(ctx, cfg)
		if err != nil {
			return nil, err
		}
		keys := make([]string, 0, len(indices))
		for _, idx := range indices {
			if idx >= 0 && idx < len(choices) {
				keys = append(keys, choices[idx].Key)
			}
		}
		return keys, nil
	}

	if len(selected) > 0 {
		cfg.DefaultIndex = selected[0]
	}
	idx, err := r.driver.Select(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if idx < 0 || idx >= len(choices) {
		return "", nil
	}
	return choices[idx].Key, nil
}

// Confirm asks a yes/no question through the prompt driver.
func (r *Renderer) Confirm(ctx context.Context, message string, def bool) (bool, error) {
	if r.driver == nil {
		return false, errors.New("tui: prompt driver is nil")
	}
	ok, err := r.driver.Confirm(ctx, ConfirmConfig{Message: message, Default: def})
	if err != nil {
		return false, fmt.Errorf("tui: confirm: %w", err)
	}
	return ok, nil
}

// Summary lists the labelled values of f with passwords masked.
func Summary(f *form.Form, values form.MapSource) string {
	return prettyPrint(f, values)
}

func (r *Renderer) serialize(f *form.Form, values form.MapSource) ([]byte, error) {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		return []byte(encodeForm(f, values)), nil
	case OutputFormatPrettyText:
		return []byte(prettyPrint(f, values)), nil
	default:
		return json.Marshal(values)
	}
}

// encodeForm keys values by the input names the HTML form posts.
func encodeForm(f *form.Form, values form.MapSource) string {
	out := url.Values{}
	for _, el := range f.Elements() {
		value, ok := values[el.Name()]
		if !ok || value == nil {
			continue
		}
		if list, ok := value.([]string); ok {
			key := form.InputName(form.Namespace, el.Name(), true)
			for _, item := range list {
				out.Add(key, item)
			}
			continue
		}
		out.Set(form.InputName(form.Namespace, el.Name(), false), textValue(value))
	}
	return out.Encode()
}

func prettyPrint(f *form.Form, values form.MapSource) string {
	var b strings.Builder
	for _, el := range f.Elements() {
		if el.Type() == form.TypeHidden {
			continue
		}
		value := textValue(values[el.Name()])
		if el.Type() == form.TypePassword && value != "" {
			value = "****"
		}
		fmt.Fprintf(&b, "%s: %s\n", el.Label(), value)
	}
	return b.String()
}

func textValue(v any) string {
	switch typed := v.(type) {
	case nil:
		return ""
	case string:
		return typed
	case []string:
		return strings.Join(typed, ", ")
	default:
		return fmt.Sprint(typed)
	}
}
