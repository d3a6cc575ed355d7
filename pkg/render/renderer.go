package render

import (
	"context"

	"github.com/goliatone/go-unitconv/pkg/widget"
)

// Renderer turns a panel snapshot into a byte representation (HTML, JSON,
// terminal text, ...).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, view widget.View, options RenderOptions) ([]byte, error)
}
