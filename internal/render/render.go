package render

import (
	"fmt"

	"github.com/kordes/rolodex/internal/contact"
)

// Renderer formats a list of contacts into bytes for output.
type Renderer interface {
	Render(records []contact.Record) ([]byte, error)
}

// NewRenderer returns a Renderer for the given format string.
// Supported formats: "table" (default), "json", "yaml".
func NewRenderer(format string) (Renderer, error) {
	switch format {
	case "table":
		return &tableRenderer{}, nil
	case "json":
		return &jsonRenderer{}, nil
	case "yaml":
		return &yamlRenderer{}, nil
	default:
		return nil, fmt.Errorf("unknown format %q: supported formats are table, json, yaml", format)
	}
}
