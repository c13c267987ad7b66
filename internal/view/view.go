// Package view renders server-side HTML with html/template.  Pages share
// one layout; htmx requests get only the page's "content" block so the
// client can swap it into the current document.
package view

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-dashboard/internal/filter"
	"github.com/iliyamo/cinema-dashboard/internal/flash"
	"github.com/iliyamo/cinema-dashboard/internal/model"
	"github.com/iliyamo/cinema-dashboard/internal/session"
)

//go:embed templates
var files embed.FS

// Page is passed to every full page template.
type Page struct {
	Title   string
	Session session.Session
	Flash   *flash.Message
	Path    string
	Data    any
}

// NewPage builds the envelope for c and consumes the pending toast.
func NewPage(c echo.Context, title string, data any) Page {
	return Page{
		Title:   title,
		Session: session.From(c),
		Flash:   flash.Pop(c),
		Path:    c.Request().URL.Path,
		Data:    data,
	}
}

// IsHTMX reports whether the request was issued by htmx.
func IsHTMX(c echo.Context) bool { return c.Request().Header.Get("HX-Request") == "true" }

// Renderer implements echo.Renderer.  Page templates are addressed by
// their path below templates/pages without extension, e.g.
// "dashboard/genres".  Any other name is looked up among the partials
// and rendered as a bare fragment.
type Renderer struct {
	base  *template.Template
	pages map[string]*template.Template
}

// New parses the embedded templates.
func New() (*Renderer, error) {
	base, err := template.New("").Funcs(funcs).ParseFS(files, "templates/layout.html", "templates/partials/*.html")
	if err != nil {
		return nil, fmt.Errorf("view: parse base: %w", err)
	}
	r := &Renderer{base: base, pages: map[string]*template.Template{}}

	err = fs.WalkDir(files, "templates/pages", func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || path.Ext(p) != ".html" {
			return err
		}
		t, err := base.Clone()
		if err != nil {
			return err
		}
		if t, err = t.ParseFS(files, p); err != nil {
			return fmt.Errorf("view: parse %s: %w", p, err)
		}
		name := strings.TrimSuffix(strings.TrimPrefix(p, "templates/pages/"), ".html")
		r.pages[name] = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r, nil
}

// Render writes the named page or fragment.
func (r *Renderer) Render(w io.Writer, name string, data any, c echo.Context) error {
	if t, ok := r.pages[name]; ok {
		block := "layout"
		if c != nil && IsHTMX(c) {
			block = "content"
		}
		return t.ExecuteTemplate(w, block, data)
	}
	if r.base.Lookup(name) == nil {
		return fmt.Errorf("view: unknown template %q", name)
	}
	return r.base.ExecuteTemplate(w, name, data)
}

var funcs = template.FuncMap{
	"hasPrefix": strings.HasPrefix,
	"add":       func(a, b int) int { return a + b },
	"sub":       func(a, b int) int { return a - b },
	"stars": func(rating int) string {
		if rating < 0 {
			rating = 0
		}
		if rating > model.MaxRating {
			rating = model.MaxRating
		}
		return strings.Repeat("★", rating) + strings.Repeat("☆", model.MaxRating-rating)
	},
	"date":      func(t time.Time) string { return t.Format("02.01.2006") },
	"pageURL":   func(p string, q url.Values, n int) string { return filter.PageURL(p, q, n) },
	"price":     func(p int) string { return fmt.Sprintf("%d ₽", p) },
	"locations": func() []model.Location { return model.Locations },
	"query": func(next string) string {
		if next == "" {
			return ""
		}
		return "?next=" + url.QueryEscape(next)
	},
}
