package httpapi

import (
	"embed"
	"sync"

	"github.com/goliatone/go-gis-dashboard/components/gis"
	template "github.com/goliatone/go-template"
)

//go:embed templates/*.html
var embeddedTemplates embed.FS

// NewTemplateRenderer creates a go-template renderer backed by the shell templates.
func NewTemplateRenderer() (gis.Renderer, error) {
	return template.NewRenderer(
		template.WithFS(embeddedTemplates),
		template.WithBaseDir("templates"),
		template.WithExtension(".html"),
	)
}

var defaultRenderer = sync.OnceValues(NewTemplateRenderer)
