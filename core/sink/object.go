package sink

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"okta-import/core/storage"

	"github.com/minio/minio-go/v7"
)

// ObjectSink uploads artifacts to a bucket.
type ObjectSink struct {
	client      storage.Client
	bucket      string
	prefix      string
	environment string
	fileName    string
}

// NewObjectSink creates a sink writing to bucket under prefix/environment.
func NewObjectSink(client storage.Client, bucket, prefix, environment, fileName string) *ObjectSink {
	if fileName == "" {
		fileName = "import.tf"
	}
	return &ObjectSink{
		client:      client,
		bucket:      bucket,
		prefix:      strings.Trim(prefix, "/"),
		environment: filepath.Base(environment),
		fileName:    fileName,
	}
}

// ObjectName returns the object name of kind.
func (s *ObjectSink) ObjectName(kind string) string {
	return path.Join(s.prefix, s.environment, kind, s.fileName)
}

// EnsureBucket creates the bucket when it does not exist.
func (s *ObjectSink) EnsureBucket(ctx context.Context, region string) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket %s: %w", s.bucket, err)
	}
	if exists {
		return nil
	}
	if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{Region: region}); err != nil {
		return fmt.Errorf("failed to create bucket %s: %w", s.bucket, err)
	}
	return nil
}

// Write uploads body as the artifact of kind.
func (s *ObjectSink) Write(ctx context.Context, kind string, body []byte) (string, error) {
	name := s.ObjectName(kind)
	target := fmt.Sprintf("s3://%s/%s", s.bucket, name)

	if err := ctx.Err(); err != nil {
		return target, err
	}

	_, err := s.client.PutObject(ctx, s.bucket, name, bytes.NewReader(body), int64(len(body)), minio.PutObjectOptions{
		ContentType: "text/plain; charset=utf-8",
	})
	if err != nil {
		return target, fmt.Errorf("failed to upload %s: %w", name, err)
	}
	return target, nil
}
