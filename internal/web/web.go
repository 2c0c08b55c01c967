// Package web renders the email form page and the fragments htmx swaps into
// it. Templates and static assets are embedded in the binary.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"net/http"
)

// ErrorMessage is the only failure text the form ever shows.
const ErrorMessage = "Error generating email"

const (
	// ResultID is the id of the element in index.html that receives the
	// result and error fragments.
	ResultID = "result"

	// GeneratedEvent fires on the page after a successful swap.
	GeneratedEvent = "email-generated"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// PageData feeds the form page.
type PageData struct {
	Title    string
	Endpoint string   // where the form posts
	Purposes []string // select options for emailPurpose
}

// Renderer executes the embedded templates. It is safe for concurrent use.
type Renderer struct {
	tmpl *template.Template
}

// NewRenderer parses the embedded templates.
func NewRenderer() (*Renderer, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("web: parse templates: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// Page writes the full form page.
func (r *Renderer) Page(w io.Writer, data PageData) error {
	return r.tmpl.ExecuteTemplate(w, "index.html", data)
}

// Result writes the success fragment. The email text is escaped and shown
// with its whitespace intact.
func (r *Renderer) Result(w io.Writer, email string) error {
	return r.tmpl.ExecuteTemplate(w, "result", email)
}

// Error writes the static failure fragment.
func (r *Renderer) Error(w io.Writer) error {
	return r.tmpl.ExecuteTemplate(w, "error", ErrorMessage)
}

// Static serves the embedded assets. Mount it under /static/.
func Static() http.Handler {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		// The embed directive guarantees the directory exists.
		panic(err)
	}
	return http.FileServer(http.FS(sub))
}
