package template

import (
	"io"
)

// Executor runs a named template against data. The HTML panel renderer only
// needs this much of an engine.
type Executor interface {
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
}

// TemplateRenderer is the full engine contract shared with
// github.com/goliatone/go-template. Engines that satisfy it can also render
// inline bodies and take filters and globals.
type TemplateRenderer interface {
	Executor
	Render(name string, data any, out ...io.Writer) (string, error)
	RenderString(templateContent string, data any, out ...io.Writer) (string, error)
	RegisterFilter(name string, fn func(input any, param any) (any, error)) error
	GlobalContext(data any) error
}

// Execute renders name through e and returns the output as bytes. A nil
// executor is an error rather than a panic.
func Execute(e Executor, name string, data any) ([]byte, error) {
	if e == nil {
		return nil, ErrNoEngine
	}
	out, err := e.RenderTemplate(name, data)
	if err != nil {
		return nil, err
	}
	return []byte(out), nil
}
