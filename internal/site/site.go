// Package site is the HTML rendering layer, built on impractical.co/temple.
//
// temple renders pages as a composition of components: a page declares
// the templates it needs, the components it builds on, and the CSS/JS
// resources it links, and temple parses, caches, and executes the lot.
// Rendering is a pure function of (site, page data) — no request state
// is threaded through the templates.
//
// The templates and static assets are embedded into the binary, so the
// deployed artifact is a single executable plus the database file.
package site

import (
	"context"
	"embed"
	"fmt"
	"io/fs"

	"impractical.co/temple"

	"github.com/aanand-mishra/students-web/internal/types"
)

//go:embed templates
var templatesDir embed.FS

//go:embed static
var staticDir embed.FS

// Site holds the cross-request rendering state: the parsed-template
// cache and the site title. Embedding *temple.CachedSite makes Site a
// temple.Site implementation with template caching for free.
type Site struct {
	*temple.CachedSite

	Title string
}

// New returns a Site rendering from the embedded template directory.
func New(title string) (*Site, error) {
	templates, err := fs.Sub(templatesDir, "templates")
	if err != nil {
		return nil, fmt.Errorf("site.New: template dir: %w", err)
	}
	return &Site{
		CachedSite: temple.NewCachedSite(templates),
		Title:      title,
	}, nil
}

// StaticDir returns the embedded static assets (stylesheet and counter
// script) as an fs.FS rooted at the asset names, ready for
// http.FileServerFS.
func StaticDir() (fs.FS, error) {
	static, err := fs.Sub(staticDir, "static")
	if err != nil {
		return nil, fmt.Errorf("site.StaticDir: %w", err)
	}
	return static, nil
}

// Layout is the base page skeleton every page fills blocks in.
type Layout struct{}

// Templates implements temple.Component.
func (l Layout) Templates(_ context.Context) []string {
	return []string{l.BaseTemplate()}
}

// BaseTemplate names the skeleton template. Pages return it from
// ExecutedTemplate so temple executes the skeleton and lets the page's
// "body" block fill it in.
func (Layout) BaseTemplate() string {
	return "base.html.tmpl"
}

// StudentsPage is the single page of the application: the list of all
// students plus the add-student form and the count placeholder filled
// in by the counter script.
type StudentsPage struct {
	Layout Layout

	// Students is rendered one list item per record, in storage order.
	Students []types.Student
}

// Templates implements temple.Component.
func (StudentsPage) Templates(_ context.Context) []string {
	return []string{"students.html.tmpl"}
}

// UseComponents implements temple.ComponentUser.
func (p StudentsPage) UseComponents(_ context.Context) []temple.Component {
	return []temple.Component{
		p.Layout,
	}
}

// Key implements temple.Renderable. The parsed template set is the same
// for every render of this page, so a constant key caches it.
func (StudentsPage) Key(_ context.Context) string {
	return "students.html.tmpl"
}

// ExecutedTemplate implements temple.Renderable.
func (p StudentsPage) ExecutedTemplate(_ context.Context) string {
	return p.Layout.BaseTemplate()
}

// LinkCSS implements temple.CSSLinker: the page's stylesheet, served
// from the embedded static directory.
func (StudentsPage) LinkCSS(_ context.Context) []temple.CSSLink {
	return []temple.CSSLink{
		{Href: "/static/style.css", Rel: "stylesheet"},
	}
}

// LinkJS implements temple.JSLinker: the counter script goes in the
// footer so the list is parsed before the script runs.
func (StudentsPage) LinkJS(_ context.Context) []temple.JSLink {
	return []temple.JSLink{
		{Src: "/static/counter.js", PlaceInFooter: true},
	}
}
