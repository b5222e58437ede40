// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client to provide the operations the object sink
// needs: checking bucket existence, creating the bucket and uploading import
// artifacts. This abstraction supports both AWS S3 and self-hosted MinIO
// instances.
//
// # Client Interface
//
// The Client interface abstracts the underlying storage provider, making it easier
// to mock storage interactions for unit testing (as seen in core/storage/mocks).
//
// # Usage
//
//	client, err := storage.NewClient(config)
//	exists, err := client.BucketExists(ctx, "terraform-imports")
package storage
