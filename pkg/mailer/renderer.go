package mailer

import (
	"bytes"
	"fmt"
	"html"
	"html/template"
	"io/fs"
	"path"
	"strings"
	texttemplate "text/template"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// Renderer turns markdown templates with YAML frontmatter into email bodies.
type Renderer struct {
	fs     fs.FS
	md     goldmark.Markdown
	layout string
}

// RendererOption configures a Renderer.
type RendererOption func(*Renderer)

// WithLayout wraps rendered HTML in an html/template layout file.
// The layout receives .Content (the rendered HTML) and .Metadata.
func WithLayout(name string) RendererOption {
	return func(r *Renderer) {
		r.layout = name
	}
}

// NewRenderer creates a renderer reading templates from filesystem.
func NewRenderer(filesystem fs.FS, opts ...RendererOption) *Renderer {
	r := &Renderer{
		fs: filesystem,
		md: goldmark.New(goldmark.WithExtensions(extension.GFM)),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Rendered is the output of a template render.
type Rendered struct {
	Metadata map[string]any
	Subject  string // Executed "Subject" frontmatter value, if any
	HTML     string
	Text     string // Executed markdown source
}

// Render executes the named template with data.
func (r *Renderer) Render(name string, data any) (*Rendered, error) {
	content, err := fs.ReadFile(r.fs, name)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrTemplateNotFound, name, err)
	}

	tpl, err := ParseTemplate(content)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	text, err := execute(name, tpl.Body, data)
	if err != nil {
		return nil, err
	}

	subject, err := execute(name+":subject", tpl.String("Subject"), data)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := r.md.Convert([]byte(text), &buf); err != nil {
		return nil, fmt.Errorf("%w: markdown: %v", ErrRenderFailed, err)
	}

	body := buf.String()
	if r.layout != "" {
		body, err = r.wrap(body, tpl.Metadata)
		if err != nil {
			return nil, err
		}
	}

	return &Rendered{
		Metadata: tpl.Metadata,
		Subject:  strings.TrimSpace(subject),
		HTML:     body,
		Text:     text,
	}, nil
}

func (r *Renderer) wrap(content string, meta map[string]any) (string, error) {
	raw, err := fs.ReadFile(r.fs, r.layout)
	if err != nil {
		return "", fmt.Errorf("%w: layout %s: %v", ErrTemplateNotFound, r.layout, err)
	}
	layout, err := template.New(path.Base(r.layout)).Parse(string(raw))
	if err != nil {
		return "", fmt.Errorf("%w: layout: %v", ErrRenderFailed, err)
	}

	var buf bytes.Buffer
	err = layout.Execute(&buf, map[string]any{
		"Content":  template.HTML(content), //nolint:gosec // rendered from trusted templates
		"Metadata": meta,
	})
	if err != nil {
		return "", fmt.Errorf("%w: layout: %v", ErrRenderFailed, err)
	}
	return buf.String(), nil
}

func execute(name, src string, data any) (string, error) {
	if src == "" {
		return "", nil
	}
	tmpl, err := texttemplate.New(name).Parse(src)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrRenderFailed, name, err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrRenderFailed, name, err)
	}
	return buf.String(), nil
}

var textPolicy = bluemonday.StrictPolicy()

// PlainText strips all markup from an HTML body, for use as a text alternative.
func PlainText(htmlBody string) string {
	stripped := textPolicy.Sanitize(htmlBody)
	lines := strings.Split(html.UnescapeString(stripped), "\n")
	out := lines[:0]
	for _, l := range lines {
		if l = strings.TrimSpace(l); l != "" {
			out = append(out, l)
		}
	}
	return strings.Join(out, "\n")
}
