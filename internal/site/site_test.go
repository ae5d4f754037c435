package site_test

import (
	"bytes"
	"context"
	"io"
	"io/fs"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"impractical.co/temple"

	"github.com/aanand-mishra/students-web/internal/site"
	"github.com/aanand-mishra/students-web/internal/types"
)

func render(t *testing.T, students []types.Student) string {
	t.Helper()

	webSite, err := site.New("Students")
	require.NoError(t, err)

	ctx := temple.LoggingContext(context.Background(),
		slog.New(slog.NewTextHandler(io.Discard, nil)))

	var buf bytes.Buffer
	temple.Render(ctx, &buf, webSite, site.StudentsPage{Students: students})
	return buf.String()
}

func TestStudentsPage(t *testing.T) {
	html := render(t, []types.Student{
		{ID: 1, Name: "Ada"},
		{ID: 2, Name: "Grace"},
	})

	assert.Contains(t, html, "<li>Ada</li>")
	assert.Contains(t, html, "<li>Grace</li>")

	// the add-student form, posting the single named input
	assert.Contains(t, html, `<form action="/student" method="post">`)
	assert.Contains(t, html, `name="student"`)

	// the placeholder the counter script fills in
	assert.Contains(t, html, `id="count"`)

	// linked assets
	assert.Contains(t, html, `/static/style.css`)
	assert.Contains(t, html, `/static/counter.js`)
}

func TestStudentsPageEmpty(t *testing.T) {
	html := render(t, []types.Student{})

	assert.Contains(t, html, `<ul id="students">`)
	assert.NotContains(t, html, "<li>")
}

// Names are data, not markup: HTML-special characters must come out
// escaped, never as live tags.
func TestStudentsPageEscapesNames(t *testing.T) {
	html := render(t, []types.Student{
		{ID: 1, Name: `<script>alert("x")</script>`},
	})

	assert.NotContains(t, html, `<script>alert`)
	assert.Contains(t, html, "&lt;script&gt;")
}

// Rendering is a pure function of the student list: same input, same
// output, including the second render served from the template cache.
func TestStudentsPageDeterministic(t *testing.T) {
	webSite, err := site.New("Students")
	require.NoError(t, err)

	ctx := temple.LoggingContext(context.Background(),
		slog.New(slog.NewTextHandler(io.Discard, nil)))
	page := site.StudentsPage{Students: []types.Student{{ID: 1, Name: "Ada"}}}

	var first, second bytes.Buffer
	temple.Render(ctx, &first, webSite, page)
	temple.Render(ctx, &second, webSite, page)

	assert.Equal(t, first.String(), second.String())
}

func TestStaticDir(t *testing.T) {
	static, err := site.StaticDir()
	require.NoError(t, err)

	for _, name := range []string{"style.css", "counter.js"} {
		contents, err := fs.ReadFile(static, name)
		require.NoError(t, err)
		assert.NotEmpty(t, contents)
	}

	// the counter script targets the count endpoint and the placeholder
	script, err := fs.ReadFile(static, "counter.js")
	require.NoError(t, err)
	assert.Contains(t, string(script), `fetch("/data")`)
	assert.Contains(t, string(script), `"count"`)
}
