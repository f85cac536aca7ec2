package openapi

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-knock/pkg/form"
)

const (
	// Version is the OpenAPI version emitted by Describe.
	Version = "3.0.3"

	formContentType = "application/x-www-form-urlencoded"
)

// Options customise the generated document.
type Options struct {
	Title       string
	Version     string
	Description string
	Path        string
	OperationID string
	Servers     []string
}

// Option mutates Options.
type Option func(*Options)

// WithTitle sets the info title. Blank titles keep the form name.
func WithTitle(title string) Option {
	return func(o *Options) {
		if title = strings.TrimSpace(title); title != "" {
			o.Title = title
		}
	}
}

// WithVersion sets the info version. Blank versions keep "0.0.0".
func WithVersion(version string) Option {
	return func(o *Options) {
		if version = strings.TrimSpace(version); version != "" {
			o.Version = version
		}
	}
}

func WithDescription(description string) Option {
	return func(o *Options) { o.Description = description }
}

// WithPath sets the path the form posts to. Defaults to "/".
func WithPath(path string) Option {
	return func(o *Options) { o.Path = path }
}

func WithOperationID(id string) Option {
	return func(o *Options) { o.OperationID = id }
}

// WithServer appends a server URL.
func WithServer(url string) Option {
	return func(o *Options) {
		if url = strings.TrimSpace(url); url != "" {
			o.Servers = append(o.Servers, url)
		}
	}
}

// Describe builds a document with a GET operation returning the form page and
// a POST operation whose url-encoded body mirrors the form elements. Property
// names are the input names the HTML form posts, and not-null elements are
// required.
func Describe(f *form.Form, options ...Option) (*openapi3.T, error) {
	if f == nil {
		return nil, errors.New("openapi: form is nil")
	}
	opts := Options{
		Title:       f.Name(),
		Version:     "0.0.0",
		Path:        "/",
		OperationID: f.Name(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(&opts)
		}
	}
	if !strings.HasPrefix(opts.Path, "/") {
		opts.Path = "/" + opts.Path
	}

	body, err := BodySchema(f)
	if err != nil {
		return nil, err
	}

	page := openapi3.NewResponse().
		WithDescription("Rendered form page").
		WithContent(openapi3.Content{"text/html": openapi3.NewMediaType()})

	show := openapi3.NewOperation()
	show.OperationID = opts.OperationID + "Show"
	show.Summary = "Render the " + f.Name() + " form"
	show.Responses = openapi3.NewResponses(openapi3.WithStatus(200, &openapi3.ResponseRef{Value: page}))

	submit := openapi3.NewOperation()
	submit.OperationID = opts.OperationID + "Submit"
	submit.Summary = "Submit the " + f.Name() + " form"
	submit.RequestBody = &openapi3.RequestBodyRef{
		Value: openapi3.NewRequestBody().
			WithRequired(true).
			WithContent(openapi3.Content{formContentType: openapi3.NewMediaType().WithSchema(body)}),
	}
	submit.Responses = openapi3.NewResponses(
		openapi3.WithStatus(200, &openapi3.ResponseRef{Value: page}),
		openapi3.WithStatus(405, &openapi3.ResponseRef{Value: openapi3.NewResponse().WithDescription("Method not allowed")}),
	)

	doc := &openapi3.T{
		OpenAPI: Version,
		Info: &openapi3.Info{
			Title:       opts.Title,
			Version:     opts.Version,
			Description: opts.Description,
		},
		Paths: openapi3.NewPaths(openapi3.WithPath(opts.Path, &openapi3.PathItem{
			Get:  show,
			Post: submit,
		})),
	}
	for _, url := range opts.Servers {
		doc.AddServer(&openapi3.Server{URL: url})
	}
	return doc, nil
}

// BodySchema returns the object schema of the form body.
func BodySchema(f *form.Form) (*openapi3.Schema, error) {
	schema := openapi3.NewObjectSchema()
	for _, el := range f.Elements() {
		prop, multiple, err := elementSchema(el)
		if err != nil {
			return nil, err
		}
		key := form.InputName(form.Namespace, el.Name(), multiple)
		schema.WithProperty(key, prop)
		if el.NotNull() {
			schema.Required = append(schema.Required, key)
		}
	}
	return schema, nil
}

func elementSchema(el form.Element) (*openapi3.Schema, bool, error) {
	var (
		schema   *openapi3.Schema
		multiple bool
	)
	switch typed := el.(type) {
	case *form.Integer:
		schema = openapi3.NewIntegerSchema()
		if n, ok := typed.Minimum(); ok {
			schema.WithMin(float64(n))
		}
		if n, ok := typed.Maximum(); ok {
			schema.WithMax(float64(n))
		}
	case *form.Text:
		schema = openapi3.NewStringSchema()
		if pattern := typed.Pattern(); pattern != "" {
			schema.WithPattern(pattern)
		}
	case *form.Password:
		schema = openapi3.NewStringSchema().WithFormat("password")
		schema.WriteOnly = true
	case *form.Hidden:
		schema = openapi3.NewStringSchema()
	case *form.Dropdown:
		keys := typed.Options().Keys()
		enum := make([]any, len(keys))
		for i, key := range keys {
			enum[i] = key
		}
		item := openapi3.NewStringSchema()
		if len(enum) > 0 {
			item.WithEnum(enum...)
		}
		schema = item
		if typed.IsMultiple() {
			multiple = true
			schema = openapi3.NewArraySchema().WithItems(item)
		}
	default:
		return nil, false, fmt.Errorf("openapi: %w: %s", form.ErrUnknownElementType, el.Type())
	}

	schema.Title = el.Label()
	schema.Description = el.Hint()
	if el.Type() != form.TypePassword {
		if def := defaultValue(el); def != nil {
			schema.Default = def
		}
	}
	return schema, multiple, nil
}

// defaultValue converts the display value into the JSON shape the schema
// validator expects. Empty values yield nil.
func defaultValue(el form.Element) any {
	var keys []string
	switch v := el.DisplayValue().(type) {
	case nil:
		return nil
	case []string:
		keys = v
	case string:
		if strings.TrimSpace(v) == "" {
			return nil
		}
		keys = []string{v}
	default:
		keys = []string{fmt.Sprint(v)}
	}
	if len(keys) == 0 {
		return nil
	}

	switch typed := el.(type) {
	case *form.Integer:
		n, err := strconv.ParseInt(strings.TrimSpace(keys[0]), 10, 64)
		if err != nil {
			return nil
		}
		return float64(n)
	case *form.Dropdown:
		if !typed.IsMultiple() {
			return keys[0]
		}
		out := make([]any, len(keys))
		for i, key := range keys {
			out[i] = key
		}
		return out
	}
	return keys[0]
}

// Validate checks a generated document with the kin-openapi validator.
func Validate(ctx context.Context, doc *openapi3.T) error {
	if doc == nil {
		return errors.New("openapi: document is nil")
	}
	if err := doc.Validate(ctx); err != nil {
		return fmt.Errorf("openapi: invalid document: %w", err)
	}
	return nil
}

// MarshalJSON describes f and encodes the document.
func MarshalJSON(f *form.Form, options ...Option) ([]byte, error) {
	doc, err := Describe(f, options...)
	if err != nil {
		return nil, err
	}
	return doc.MarshalJSON()
}
