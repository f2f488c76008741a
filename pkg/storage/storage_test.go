package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mailbridge/mailbridge/pkg/httpclient"
	"github.com/mailbridge/mailbridge/pkg/mailer"
)

// mockAPIError implements smithy.APIError for testing.
type mockAPIError struct {
	code string
}

func (e *mockAPIError) ErrorCode() string             { return e.code }
func (e *mockAPIError) ErrorMessage() string          { return "mock" }
func (e *mockAPIError) ErrorFault() smithy.ErrorFault { return smithy.FaultUnknown }
func (e *mockAPIError) Error() string                 { return fmt.Sprintf("%s: mock", e.code) }

// MockObjectGetter is a mock implementation of ObjectGetter.
type MockObjectGetter struct {
	mock.Mock
}

func (m *MockObjectGetter) GetObject(ctx context.Context, params *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	args := m.Called(ctx, params)
	out, _ := args.Get(0).(*s3.GetObjectOutput)
	return out, args.Error(1)
}

func TestWrapS3Error(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want error
	}{
		{name: "NoSuchKey code", err: &mockAPIError{code: "NoSuchKey"}, want: ErrNotFound},
		{name: "NotFound code", err: &mockAPIError{code: "NotFound"}, want: ErrNotFound},
		{name: "AccessDenied code", err: &mockAPIError{code: "AccessDenied"}, want: ErrAccessDenied},
		{name: "Forbidden code", err: &mockAPIError{code: "Forbidden"}, want: ErrAccessDenied},
		{name: "typed NoSuchKey", err: &types.NoSuchKey{}, want: ErrNotFound},
		{name: "other code", err: &mockAPIError{code: "SlowDown"}, want: ErrDownloadFailed},
		{name: "plain error", err: errors.New("boom"), want: ErrDownloadFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.ErrorIs(t, wrapS3Error(tt.err, ErrDownloadFailed), tt.want)
		})
	}
}

func TestDetectContentType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		declared string
		filename string
		data     []byte
		want     string
	}{
		{name: "declared wins", declared: "application/pdf", filename: "a.png", want: "application/pdf"},
		{name: "octet stream falls through", declared: "application/octet-stream", filename: "a.png", want: "image/png"},
		{name: "extension", filename: "LOGO.PNG", want: "image/png"},
		{name: "sniffed", filename: "noext", data: []byte("%PDF-1.7 ..."), want: "application/pdf"},
		{name: "empty", filename: "noext", want: MIMEOctetStream},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, DetectContentType(tt.declared, tt.filename, tt.data))
		})
	}
}

func TestFileLoader(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"docs/invoice.pdf": {Data: []byte("%PDF-1.7 invoice")},
		"empty.txt":        {Data: nil},
		"big.bin":          {Data: []byte(strings.Repeat("x", 32))},
	}
	l := NewFileLoader(fsys, 16)

	att, err := l.Load(context.Background(), "file:///docs/invoice.pdf")
	require.NoError(t, err)
	require.Equal(t, "invoice.pdf", att.Filename)
	require.Equal(t, "application/pdf", att.ContentType)
	require.Equal(t, []byte("%PDF-1.7 invoice"), att.Content)
	require.False(t, att.Inline)

	_, err = l.Load(context.Background(), "missing.pdf")
	require.ErrorIs(t, err, ErrNotFound)

	_, err = l.Load(context.Background(), "empty.txt")
	require.ErrorIs(t, err, ErrEmptyFile)

	_, err = l.Load(context.Background(), "big.bin")
	require.ErrorIs(t, err, ErrTooLarge)

	_, err = l.Load(context.Background(), "")
	require.ErrorIs(t, err, ErrInvalidRef)
}

func TestS3Loader(t *testing.T) {
	t.Parallel()

	client := &MockObjectGetter{}
	client.On("GetObject", mock.Anything, mock.MatchedBy(func(in *s3.GetObjectInput) bool {
		return aws.ToString(in.Bucket) == "assets" && aws.ToString(in.Key) == "brand/logo.png"
	})).Return(&s3.GetObjectOutput{
		Body:          io.NopCloser(strings.NewReader("png-bytes")),
		ContentType:   aws.String("image/png"),
		ContentLength: aws.Int64(9),
	}, nil)
	client.On("GetObject", mock.Anything, mock.Anything).Return(nil, &mockAPIError{code: "NoSuchKey"})

	l := NewS3LoaderWithClient(client, 0)

	att, err := l.Load(context.Background(), "s3://assets/brand/logo.png")
	require.NoError(t, err)
	require.Equal(t, "logo.png", att.Filename)
	require.Equal(t, "image/png", att.ContentType)
	require.Equal(t, []byte("png-bytes"), att.Content)

	_, err = l.Load(context.Background(), "s3://assets/missing.png")
	require.ErrorIs(t, err, ErrNotFound)

	client.AssertNumberOfCalls(t, "GetObject", 2)
}

func TestS3Loader_TooLarge(t *testing.T) {
	t.Parallel()

	client := &MockObjectGetter{}
	client.On("GetObject", mock.Anything, mock.Anything).Return(&s3.GetObjectOutput{
		Body:          io.NopCloser(strings.NewReader("0123456789")),
		ContentLength: aws.Int64(10),
	}, nil)

	_, err := NewS3LoaderWithClient(client, 4).Load(context.Background(), "s3://b/k")

	require.ErrorIs(t, err, ErrTooLarge)
}

func TestParseS3Ref(t *testing.T) {
	t.Parallel()

	bucket, key, err := parseS3Ref("s3://b/a/b/c.txt")
	require.NoError(t, err)
	require.Equal(t, "b", bucket)
	require.Equal(t, "a/b/c.txt", key)

	for _, ref := range []string{"s3://", "s3://bucket", "s3://bucket/", "https://x/y"} {
		_, _, err := parseS3Ref(ref)
		require.ErrorIs(t, err, ErrInvalidRef, ref)
	}
}

func TestURLLoader(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/files/report.csv":
			w.Header().Set("Content-Type", "text/csv")
			_, _ = w.Write([]byte("a,b\n1,2\n"))
		case "/private.pdf":
			w.WriteHeader(http.StatusForbidden)
		case "/broken":
			w.WriteHeader(http.StatusInternalServerError)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	l := NewURLLoader(httpclient.New(httpclient.WithDoer(srv.Client())), 0)

	att, err := l.Load(context.Background(), srv.URL+"/files/report.csv?sig=abc")
	require.NoError(t, err)
	require.Equal(t, "report.csv", att.Filename)
	require.Equal(t, "text/csv", att.ContentType)
	require.Equal(t, "a,b\n1,2\n", string(att.Content))

	_, err = l.Load(context.Background(), srv.URL+"/nope.png")
	require.ErrorIs(t, err, ErrNotFound)

	_, err = l.Load(context.Background(), srv.URL+"/private.pdf")
	require.ErrorIs(t, err, ErrAccessDenied)

	_, err = l.Load(context.Background(), srv.URL+"/broken")
	require.ErrorIs(t, err, ErrDownloadFailed)

	_, err = l.Load(context.Background(), "ftp://example.com/x")
	require.ErrorIs(t, err, ErrInvalidRef)
}

func TestMultiLoader_DispatchesByPrefix(t *testing.T) {
	t.Parallel()

	named := func(name string) Loader {
		return LoaderFunc(func(_ context.Context, ref string) (mailer.Attachment, error) {
			return mailer.Attachment{Filename: name + ":" + ref}, nil
		})
	}

	m := NewMultiLoader(named("file")).
		Handle("s3://", named("s3")).
		Handle("s3://special/", named("special"))

	tests := map[string]string{
		"s3://bucket/key":     "s3:s3://bucket/key",
		"s3://special/key":    "special:s3://special/key",
		"./local/invoice.pdf": "file:./local/invoice.pdf",
	}
	for ref, want := range tests {
		att, err := m.Load(context.Background(), ref)
		require.NoError(t, err)
		require.Equal(t, want, att.Filename)
	}

	_, err := NewMultiLoader(nil).Load(context.Background(), "x")
	require.ErrorIs(t, err, ErrInvalidRef)
}

func TestInline(t *testing.T) {
	t.Parallel()

	att := Inline(mailer.Attachment{Filename: "logo.png"}, "")
	require.True(t, att.Inline)
	require.Equal(t, "logo.png", att.ContentID)

	require.Equal(t, "brand", Inline(att, "brand").ContentID)
}
