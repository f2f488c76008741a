package mailer

import (
	"encoding/base64"
	"mime"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

const defaultContentType = "application/octet-stream"

// PreparedAttachment is an attachment in the shape JSON email APIs expect.
type PreparedAttachment struct {
	ContentType   string `json:"ContentType"`
	Filename      string `json:"Filename"`
	Base64Content string `json:"Base64Content"`
	ContentID     string `json:"ContentID,omitempty"`
}

// AttachmentPreparer splits an email's attachments into regular and inline
// parts and returns the HTML with inline references resolved.
type AttachmentPreparer interface {
	Prepare(email *Email, html string) (attachments, inlines []PreparedAttachment, rewritten string)
}

// AttachmentPreparerFunc adapts a function to AttachmentPreparer.
type AttachmentPreparerFunc func(email *Email, html string) ([]PreparedAttachment, []PreparedAttachment, string)

func (f AttachmentPreparerFunc) Prepare(email *Email, html string) ([]PreparedAttachment, []PreparedAttachment, string) {
	return f(email, html)
}

// DefaultPreparer base64-encodes attachment content and guesses missing
// content types from the filename. Inline attachments without a ContentID
// get a generated one, and "cid:<filename>" references in the HTML are
// rewritten to "cid:<content-id>".
type DefaultPreparer struct{}

func (DefaultPreparer) Prepare(email *Email, html string) ([]PreparedAttachment, []PreparedAttachment, string) {
	var attachments, inlines []PreparedAttachment
	for _, a := range email.Attachments {
		prepared := PreparedAttachment{
			ContentType:   contentTypeOf(a),
			Filename:      a.Filename,
			Base64Content: base64.StdEncoding.EncodeToString(a.Content),
		}
		if !a.Inline {
			attachments = append(attachments, prepared)
			continue
		}

		cid := a.ContentID
		if cid == "" {
			cid = uuid.NewString()
		}
		prepared.ContentID = cid
		if a.Filename != "" && a.Filename != cid {
			html = rewriteCID(html, a.Filename, cid)
		}
		inlines = append(inlines, prepared)
	}
	return attachments, inlines, html
}

func contentTypeOf(a Attachment) string {
	if a.ContentType != "" {
		return a.ContentType
	}
	if ct := mime.TypeByExtension(filepath.Ext(a.Filename)); ct != "" {
		return ct
	}
	return defaultContentType
}

// rewriteCID replaces whole "cid:<from>" references, leaving longer names
// that merely share the prefix untouched.
func rewriteCID(html, from, to string) string {
	re := regexp.MustCompile(`cid:` + regexp.QuoteMeta(from) + `(["'\s)>]|$)`)
	return re.ReplaceAllString(html, "cid:"+strings.ReplaceAll(to, "$", "$$")+"${1}")
}
