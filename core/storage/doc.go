// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client so AWS S3 and self-hosted MinIO can be used
// interchangeably. The service stores every uploaded list export here before
// importing it.
//
// # Client Interface
//
// The Client interface abstracts the provider so storage interactions can be
// mocked in unit tests (see core/storage/mocks).
//
// # Usage
//
//	client, err := storage.NewClient(config)
//	err = storage.EnsureBucket(ctx, client, "imports", "")
package storage
