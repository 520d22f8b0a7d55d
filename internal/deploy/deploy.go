// Package deploy uploads a static export to S3. Keys mirror the export
// directory layout under an optional prefix.
package deploy

import (
	"context"
	"log/slog"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/zyte-go/zyte/internal/errors"
)

// S3API is the slice of the S3 client the uploader needs.
type S3API interface {
	PutObject(ctx context.Context, input *s3.PutObjectInput, opts ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Options configures an upload.
type Options struct {
	// Bucket is the destination bucket.
	Bucket string

	// Prefix is an optional key prefix inside the bucket.
	Prefix string

	// OnUpload is called with each uploaded key.
	OnUpload func(key string)
}

// Uploader pushes a directory tree to S3.
type Uploader struct {
	client  S3API
	options Options
	log     *slog.Logger
}

// New creates an uploader.
func New(client S3API, options Options) *Uploader {
	return &Uploader{
		client:  client,
		options: options,
		log:     slog.Default().With("component", "deploy"),
	}
}

// Upload walks dir and puts every regular file into the bucket. It returns
// the number of uploaded objects.
func (u *Uploader) Upload(ctx context.Context, dir string) (int, error) {
	if u.options.Bucket == "" {
		return 0, errors.New(errors.CodeDeployFailed).
			WithDetail("no deploy bucket configured").
			WithSuggestion(`Set deploy.bucket in zyte.json.`)
	}

	count := 0
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		key := u.key(rel)

		if err := u.putFile(ctx, path, key); err != nil {
			return errors.New(errors.CodeDeployFailed).
				WithDetail("uploading %s to s3://%s/%s", rel, u.options.Bucket, key).
				Wrap(err)
		}
		count++
		if u.options.OnUpload != nil {
			u.options.OnUpload(key)
		}
		return nil
	})
	if err != nil {
		return count, err
	}

	u.log.Info("deploy complete", "bucket", u.options.Bucket, "objects", count)
	return count, nil
}

func (u *Uploader) putFile(ctx context.Context, path, key string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.options.Bucket),
		Key:         aws.String(key),
		Body:        f,
		ContentType: aws.String(contentType(path)),
	})
	return err
}

// key converts an export-relative file path into an object key.
func (u *Uploader) key(rel string) string {
	key := filepath.ToSlash(rel)
	if prefix := strings.Trim(u.options.Prefix, "/"); prefix != "" {
		key = prefix + "/" + key
	}
	return key
}

func contentType(path string) string {
	if ct := mime.TypeByExtension(filepath.Ext(path)); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
