package mailer

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"
)

var templates = fstest.MapFS{
	"layouts/base.html": {Data: []byte(`<html><body>{{.Content}}</body></html>`)},
	"welcome.md": {Data: []byte(`---
Subject: Welcome {{.Name}}
Preheader: Glad you're here
---
Hello **{{.Name}}**!
`)},
	"plain.md":   {Data: []byte("No frontmatter here.\n")},
	"broken.md":  {Data: []byte("---\nSubject: [unclosed\n---\nbody\n")},
	"open.md":    {Data: []byte("---\nSubject: x\n")},
	"badtmpl.md": {Data: []byte("Hello {{.Name")},
}

func TestParseTemplate(t *testing.T) {
	t.Parallel()

	tpl, err := ParseTemplate(templates["welcome.md"].Data)
	require.NoError(t, err)
	require.Equal(t, "Welcome {{.Name}}", tpl.String("Subject"))
	require.Equal(t, "Glad you're here", tpl.String("Preheader"))
	require.Empty(t, tpl.String("Missing"))
	require.Equal(t, "Hello **{{.Name}}**!\n", tpl.Body)

	tpl, err = ParseTemplate([]byte("just body"))
	require.NoError(t, err)
	require.Empty(t, tpl.Metadata)
	require.Equal(t, "just body", tpl.Body)

	_, err = ParseTemplate(templates["open.md"].Data)
	require.ErrorIs(t, err, ErrInvalidFrontmatter)

	_, err = ParseTemplate([]byte("---"))
	require.ErrorIs(t, err, ErrInvalidFrontmatter)

	_, err = ParseTemplate(templates["broken.md"].Data)
	require.ErrorIs(t, err, ErrInvalidFrontmatter)
}

func TestRenderer_Render(t *testing.T) {
	t.Parallel()

	r := NewRenderer(templates)

	out, err := r.Render("welcome.md", map[string]string{"Name": "Alice"})

	require.NoError(t, err)
	require.Equal(t, "Welcome Alice", out.Subject)
	require.Equal(t, "<p>Hello <strong>Alice</strong>!</p>\n", out.HTML)
	require.Equal(t, "Hello **Alice**!\n", out.Text)
	require.Equal(t, "Glad you're here", out.Metadata["Preheader"])
}

func TestRenderer_Render_WithLayout(t *testing.T) {
	t.Parallel()

	r := NewRenderer(templates, WithLayout("layouts/base.html"))

	out, err := r.Render("plain.md", nil)

	require.NoError(t, err)
	require.Empty(t, out.Subject)
	require.Equal(t, "<html><body><p>No frontmatter here.</p>\n</body></html>", out.HTML)
}

func TestRenderer_Render_Errors(t *testing.T) {
	t.Parallel()

	r := NewRenderer(templates)

	_, err := r.Render("missing.md", nil)
	require.ErrorIs(t, err, ErrTemplateNotFound)

	_, err = r.Render("badtmpl.md", nil)
	require.ErrorIs(t, err, ErrRenderFailed)

	_, err = r.Render("broken.md", nil)
	require.ErrorIs(t, err, ErrInvalidFrontmatter)

	_, err = NewRenderer(templates, WithLayout("layouts/none.html")).Render("plain.md", nil)
	require.ErrorIs(t, err, ErrTemplateNotFound)
}

func TestPlainText(t *testing.T) {
	t.Parallel()

	got := PlainText("<h1>Hi &amp; welcome</h1>\n\n<p>Visit <a href=\"https://example.com\">us</a>.</p>\n")

	require.Equal(t, "Hi & welcome\nVisit us.", got)
}
