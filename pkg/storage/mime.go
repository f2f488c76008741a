package storage

import (
	"mime"
	"net/http"
	"path/filepath"
	"strings"
)

const (
	// MIMEOctetStream is the fallback content type.
	MIMEOctetStream = "application/octet-stream"

	mimeDetectionBytes = 512
)

// DetectContentType resolves a content type for an attachment.
// A declared type wins, then the filename extension, then magic bytes.
func DetectContentType(declared, filename string, data []byte) string {
	if t := normalizeMIME(declared); t != "" && t != MIMEOctetStream {
		return declared
	}
	if t := mime.TypeByExtension(strings.ToLower(filepath.Ext(filename))); t != "" {
		return t
	}
	if len(data) == 0 {
		return MIMEOctetStream
	}
	if len(data) > mimeDetectionBytes {
		data = data[:mimeDetectionBytes]
	}
	return http.DetectContentType(data)
}

// normalizeMIME strips parameters such as charset and lowercases the type.
func normalizeMIME(mimeType string) string {
	mimeType, _, _ = strings.Cut(mimeType, ";")
	return strings.TrimSpace(strings.ToLower(mimeType))
}
