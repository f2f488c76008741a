package storage

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/mailbridge/mailbridge/pkg/mailer"
)

// S3Prefix is the ref prefix handled by S3Loader.
const S3Prefix = "s3://"

// ObjectGetter is the subset of the S3 client used by S3Loader.
type ObjectGetter interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Loader loads attachments from "s3://bucket/key" refs.
type S3Loader struct {
	client  ObjectGetter
	maxSize int64
}

// NewS3Loader creates an S3Loader backed by a client built from cfg.
func NewS3Loader(cfg Config) *S3Loader {
	cfg.applyDefaults()

	opts := []func(*s3.Options){
		func(o *s3.Options) {
			o.Region = cfg.Region
			if cfg.AccessKey != "" {
				o.Credentials = credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")
			}
		},
	}
	if cfg.Endpoint != "" {
		opts = append(opts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = cfg.PathStyle
		})
	}

	return NewS3LoaderWithClient(s3.New(s3.Options{}, opts...), cfg.MaxSize)
}

// NewS3LoaderWithClient creates an S3Loader over an existing client.
func NewS3LoaderWithClient(client ObjectGetter, maxSize int64) *S3Loader {
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}
	return &S3Loader{client: client, maxSize: maxSize}
}

// Load implements Loader.
func (l *S3Loader) Load(ctx context.Context, ref string) (mailer.Attachment, error) {
	bucket, key, err := parseS3Ref(ref)
	if err != nil {
		return mailer.Attachment{}, err
	}

	out, err := l.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return mailer.Attachment{}, wrapS3Error(err, ErrDownloadFailed)
	}
	defer out.Body.Close()

	if out.ContentLength != nil && *out.ContentLength > l.maxSize {
		return mailer.Attachment{}, fmt.Errorf("%w: limit %d bytes", ErrTooLarge, l.maxSize)
	}

	data, err := readLimited(out.Body, l.maxSize)
	if err != nil {
		return mailer.Attachment{}, fmt.Errorf("storage: read %s: %w", ref, err)
	}

	name := baseName(key)
	return mailer.Attachment{
		Filename:    name,
		ContentType: DetectContentType(aws.ToString(out.ContentType), name, data),
		Content:     data,
	}, nil
}

func parseS3Ref(ref string) (bucket, key string, err error) {
	rest, ok := strings.CutPrefix(ref, S3Prefix)
	if !ok {
		return "", "", fmt.Errorf("%w: %q is not an s3 ref", ErrInvalidRef, ref)
	}
	bucket, key, _ = strings.Cut(rest, "/")
	if bucket == "" || key == "" {
		return "", "", fmt.Errorf("%w: %q needs a bucket and a key", ErrInvalidRef, ref)
	}
	return bucket, key, nil
}
