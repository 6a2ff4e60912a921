// Package render turns a built book tree into plain text and HTML
// documents.
//
// The tree rendering itself is a set of explicit per-level formatting
// functions, each taking the entity and its immediate parent so every
// level can display its duration against the parent's total. The
// Renderer wraps the HTML fragment in embedded page templates.
package render

import (
	"bytes"
	"embed"
	"html/template"

	"github.com/bookbinderapp/bookbinder/internal/domain"
	"github.com/bookbinderapp/bookbinder/internal/errors"
)

//go:embed templates/*.html
var templates embed.FS

// Renderer produces the final HTML documents around the rendered tree.
type Renderer struct {
	book  *template.Template
	index *template.Template
}

// New parses the embedded page templates.
func New() (*Renderer, error) {
	book, err := template.ParseFS(templates, "templates/book.html")
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "parsing book page template")
	}

	index, err := template.ParseFS(templates, "templates/index.html")
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "parsing index page template")
	}

	return &Renderer{book: book, index: index}, nil
}

// bookPageData contains data for the book page template.
type bookPageData struct {
	Title    string
	Duration string
	Body     template.HTML
}

// BookPage renders the complete HTML document for one book.
func (r *Renderer) BookPage(b domain.Book) (string, error) {
	data := bookPageData{
		Title:    b.Name,
		Duration: HMS(b.Duration()),
		Body:     template.HTML(BookHTML(b)), //#nosec G203 -- Fragment built from escaped track names
	}

	var buf bytes.Buffer
	if err := r.book.Execute(&buf, data); err != nil {
		return "", errors.Wrapf(err, errors.CodeInternal, "rendering page for %s", b.Name)
	}
	return buf.String(), nil
}

// IndexEntry is one row on the index page.
type IndexEntry struct {
	Name     string
	Href     string
	Duration string
	Tracks   int
}

// indexPageData contains data for the index page template.
type indexPageData struct {
	Books []IndexEntry
}

// IndexPage renders the index document linking every built book.
func (r *Renderer) IndexPage(entries []IndexEntry) (string, error) {
	var buf bytes.Buffer
	if err := r.index.Execute(&buf, indexPageData{Books: entries}); err != nil {
		return "", errors.Wrap(err, errors.CodeInternal, "rendering index page")
	}
	return buf.String(), nil
}
