package mailer

import (
	"fmt"
	"io"
)

// Body is a consumable content source for the HTML part of an email.
//
// A body is either a plain string or a stream. Streams are read once per
// send. A seekable stream is rewound to its start before each read; a
// plain stream is read from wherever its cursor happens to be, so a
// stream that was already partially consumed yields the remainder only.
type Body struct {
	r        io.Reader
	seeker   io.Seeker
	s        string
	isStream bool
}

// BodyString creates a body from an in-memory string.
func BodyString(s string) Body {
	return Body{s: s}
}

// BodyStream creates a body from a non-seekable stream.
func BodyStream(r io.Reader) Body {
	if r == nil {
		return Body{}
	}
	return Body{r: r, isStream: true}
}

// BodySeekable creates a body from a stream that can be rewound.
func BodySeekable(rs io.ReadSeeker) Body {
	if rs == nil {
		return Body{}
	}
	return Body{r: rs, seeker: rs, isStream: true}
}

// IsZero reports whether no content was set.
func (b Body) IsZero() bool {
	return !b.isStream && b.s == ""
}

// IsStream reports whether the body is backed by a reader.
func (b Body) IsStream() bool {
	return b.isStream
}

// Seekable reports whether the body is a stream that can be rewound.
func (b Body) Seekable() bool {
	return b.seeker != nil
}

// Read returns the full content as a string.
// Seekable streams are rewound first; other streams are read as-is.
func (b Body) Read() (string, error) {
	if !b.isStream {
		return b.s, nil
	}
	if b.seeker != nil {
		if _, err := b.seeker.Seek(0, io.SeekStart); err != nil {
			return "", fmt.Errorf("%w: rewind: %v", ErrBodyRead, err)
		}
	}
	data, err := io.ReadAll(b.r)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrBodyRead, err)
	}
	return string(data), nil
}
