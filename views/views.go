// Package views holds the HTML pages, embedded into the binary.
package views

import (
	"embed"
	"net/http"

	"github.com/gofiber/template/html/v2"
)

//go:embed *.html
var files embed.FS

// Layout is the template every page renders inside.
const Layout = "layout"

// NewEngine returns a fiber template engine over the embedded pages.
func NewEngine() *html.Engine {
	return html.NewFileSystem(http.FS(files), ".html")
}
