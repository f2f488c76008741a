// Package storage loads email attachments from local files, S3-compatible
// object storage and HTTP URLs.
//
// # Usage
//
//	loader := storage.NewDefaultLoader(storage.Config{
//		Region:    "eu-west-1",
//		AccessKey: os.Getenv("AWS_ACCESS_KEY_ID"),
//		SecretKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
//	})
//
//	logo, err := loader.Load(ctx, "s3://assets/brand/logo.png")
//	if err != nil {
//		return err
//	}
//	email.Attachments = append(email.Attachments, storage.Inline(logo, "logo"))
//
// Refs are dispatched by prefix: "s3://bucket/key" to S3Loader, "http://" and
// "https://" to URLLoader, anything else to FileLoader.
//
// # Content Types
//
// A content type reported by the source wins, then the filename extension,
// then magic-byte sniffing via http.DetectContentType.
//
// # Errors
//
//	switch {
//	case errors.Is(err, storage.ErrNotFound):
//	case errors.Is(err, storage.ErrAccessDenied):
//	case errors.Is(err, storage.ErrTooLarge):
//	case errors.Is(err, storage.ErrInvalidRef):
//	}
//
// S3 API error codes are mapped onto these sentinels.
package storage
