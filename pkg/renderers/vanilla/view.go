package vanilla

import (
	"sort"
	"strconv"

	"github.com/goliatone/go-knock/pkg/form"
	"github.com/goliatone/go-knock/pkg/render"
)

type pageView struct {
	Title       string          `json:"title"`
	Locale      string          `json:"locale"`
	Product     string          `json:"product"`
	Version     string          `json:"version"`
	Stylesheets []string        `json:"stylesheets"`
	ThemeName   string          `json:"theme_name"`
	ThemeStyle  string          `json:"theme_style"`
	Messages    messagesView    `json:"messages"`
	Form        formView        `json:"form"`
	Buttons     []render.Button `json:"buttons"`
	Legend      bool            `json:"legend"`
}

type messagesView struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
	Notices  []string `json:"notices"`
	Infos    []string `json:"infos"`
}

type attributeView struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type formView struct {
	Attributes []attributeView `json:"attributes"`
	Hidden     []rowView       `json:"hidden"`
	Rows       []rowView       `json:"rows"`
}

type rowView struct {
	ID        string        `json:"id"`
	Label     string        `json:"label"`
	Hint      string        `json:"hint"`
	Kind      string        `json:"kind"`
	InputName string        `json:"input_name"`
	Value     string        `json:"value"`
	Multiple  bool          `json:"multiple"`
	Size      string        `json:"size"`
	Options   []form.Choice `json:"options"`
	Errors    []string      `json:"errors"`
	Invalid   bool          `json:"invalid"`
}

func buildPageView(f *form.Form, opts render.RenderOptions) pageView {
	view := pageView{
		Title:       opts.Title,
		Locale:      opts.Locale,
		Product:     opts.Product,
		Version:     opts.Version,
		Stylesheets: append([]string(nil), opts.Stylesheets...),
		Buttons:     opts.Buttons.Buttons,
		Legend:      opts.Legend,
		Messages: messagesView{
			Errors:   sanitizeMessages(opts.Messages.Errors),
			Warnings: sanitizeMessages(opts.Messages.Warnings),
			Notices:  sanitizeMessages(opts.Messages.Notices),
			Infos:    sanitizeMessages(opts.Messages.Infos),
		},
	}
	if view.Locale == "" {
		view.Locale = "en"
	}
	if view.Title == "" {
		view.Title = opts.Product
	}
	if opts.Theme != nil {
		view.ThemeName = opts.Theme.Theme
		view.ThemeStyle = render.CSSVarsStyle(opts.Theme.CSSVars)
		if opts.Theme.AssetURL != nil {
			if href := opts.Theme.AssetURL("stylesheet"); href != "" {
				view.Stylesheets = append(view.Stylesheets, href)
			}
		}
	}
	if f == nil {
		return view
	}

	attrs := f.Attributes()
	keys := make([]string, 0, len(attrs))
	for key := range attrs {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		view.Form.Attributes = append(view.Form.Attributes, attributeView{Name: key, Value: attrs[key]})
	}

	errs := render.MapErrors(f, opts)
	layout := f.Layout()
	for _, row := range layout.Hidden {
		view.Form.Hidden = append(view.Form.Hidden, buildRowView(f.Name(), row, errs.Fields[row.Name]))
	}
	for _, row := range layout.Visible {
		view.Form.Rows = append(view.Form.Rows, buildRowView(f.Name(), row, errs.Fields[row.Name]))
	}
	return view
}

func buildRowView(formName string, row form.Row, messages []string) rowView {
	view := rowView{
		ID:        formName + "-" + row.Name,
		Label:     row.Label,
		Hint:      row.Hint,
		Kind:      row.Control.Kind,
		InputName: row.Control.Name,
		Value:     row.Control.Value,
		Multiple:  row.Control.Multiple,
		Options:   row.Control.Options,
		Errors:    messages,
		Invalid:   row.HasError(),
	}
	if row.Control.Size > 0 {
		view.Size = strconv.Itoa(row.Control.Size)
	}
	return view
}
