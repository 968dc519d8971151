// Package tmplx wraps text/template with the helpers our prompt templates
// rely on. Rendering is deterministic: the same data always produces the
// same bytes.
package tmplx

import (
	"bytes"
	"errors"
	"fmt"
	"text/template"

	"github.com/goccy/go-json"
	"github.com/spf13/cast"
	"github.com/tidwall/gjson"
)

var (
	ErrParseTemplate  = errors.New("tmplx: parse error")
	ErrRenderTemplate = errors.New("tmplx: render error")
)

type Template struct {
	tmpl *template.Template
}

type Option func(template.FuncMap)

// WithFunc registers a custom template function.
func WithFunc(name string, fn any) Option {
	return func(funcs template.FuncMap) {
		funcs[name] = fn
	}
}

func defaultFuncs() template.FuncMap {
	return template.FuncMap{
		"quote":   quoteFunc,
		"json":    jsonFunc,
		"default": defaultFunc,
		"jsonGet": jsonGet,
		"str":     cast.ToString,
	}
}

func MustParse(name, text string, opts ...Option) *Template {
	t, err := Parse(name, text, opts...)
	if err != nil {
		panic(err)
	}
	return t
}

func Parse(name, text string, opts ...Option) (*Template, error) {
	funcs := defaultFuncs()
	for _, opt := range opts {
		opt(funcs)
	}

	tmpl, err := template.New(name).
		Option("missingkey=error").
		Funcs(funcs).
		Parse(text)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParseTemplate, err)
	}
	return &Template{tmpl: tmpl}, nil
}

func (t *Template) Render(data any) (string, error) {
	buf := new(bytes.Buffer)
	if err := t.tmpl.Execute(buf, data); err != nil {
		return "", fmt.Errorf("%w: %w", ErrRenderTemplate, err)
	}
	return buf.String(), nil
}

func quoteFunc(v any) (string, error) {
	return jsonFunc(cast.ToString(v))
}

func jsonFunc(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func defaultFunc(def, value any) any {
	if value != nil && cast.ToString(value) != "" {
		return value
	}
	return def
}

// jsonGet pulls a dotted path out of a raw JSON string.
func jsonGet(path, raw string) string {
	return gjson.Get(raw, path).String()
}
