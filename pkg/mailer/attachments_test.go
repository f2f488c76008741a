package mailer

import (
	"encoding/base64"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestDefaultPreparer(t *testing.T) {
	t.Parallel()

	email := &Email{Attachments: []Attachment{
		{Filename: "report.pdf", Content: []byte("pdf")},
		{Filename: "data.unknownext", Content: []byte("?")},
		{Filename: "notes.txt", ContentType: "text/markdown", Content: []byte("# hi")},
		{Filename: "logo.png", ContentID: "brand", Inline: true, Content: []byte("png")},
	}}
	html := `<img src="cid:logo.png"><img src='cid:logo.png.bak'>`

	attachments, inlines, rewritten := DefaultPreparer{}.Prepare(email, html)

	require.Len(t, attachments, 3)
	require.Equal(t, PreparedAttachment{
		ContentType:   "application/pdf",
		Filename:      "report.pdf",
		Base64Content: base64.StdEncoding.EncodeToString([]byte("pdf")),
	}, attachments[0])
	require.Equal(t, "application/octet-stream", attachments[1].ContentType)
	require.Equal(t, "text/markdown", attachments[2].ContentType)

	require.Len(t, inlines, 1)
	require.Equal(t, "brand", inlines[0].ContentID)
	require.Equal(t, "image/png", inlines[0].ContentType)
	require.Equal(t, `<img src="cid:brand"><img src='cid:logo.png.bak'>`, rewritten)
}

func TestDefaultPreparer_GeneratesContentID(t *testing.T) {
	t.Parallel()

	email := &Email{Attachments: []Attachment{{Filename: "logo.png", Inline: true, Content: []byte("png")}}}

	_, inlines, rewritten := DefaultPreparer{}.Prepare(email, `<img src="cid:logo.png">`)

	require.Len(t, inlines, 1)
	_, err := uuid.Parse(inlines[0].ContentID)
	require.NoError(t, err)
	require.Equal(t, `<img src="cid:`+inlines[0].ContentID+`">`, rewritten)
}

func TestDefaultPreparer_NoAttachments(t *testing.T) {
	t.Parallel()

	attachments, inlines, rewritten := DefaultPreparer{}.Prepare(&Email{}, "<p>x</p>")

	require.Nil(t, attachments)
	require.Nil(t, inlines)
	require.Equal(t, "<p>x</p>", rewritten)
}

func TestRewriteCID_EscapesReplacement(t *testing.T) {
	t.Parallel()

	require.Equal(t, `cid:a$1b)`, rewriteCID(`cid:x.png)`, "x.png", "a$1b"))
	require.Equal(t, `cid:y`, rewriteCID(`cid:x.png`, "x.png", "y"))
}
