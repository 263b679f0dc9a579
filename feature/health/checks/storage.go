package checks

import (
	"context"
	"fmt"

	"media-tracker/core/storage"

	"github.com/minio/minio-go/v7"
)

// StorageReport describes the import archive bucket.
type StorageReport struct {
	Bucket   string `json:"bucket"`
	Exists   bool   `json:"exists"`
	Archived bool   `json:"archived"` // at least one document under the prefix
}

// CheckStorage verifies the archive bucket exists and can be listed.
func CheckStorage(ctx context.Context, client storage.Client, bucket, prefix string) (*StorageReport, error) {
	if client == nil {
		return nil, fmt.Errorf("storage client is not configured")
	}

	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket existence: %w", err)
	}
	report := &StorageReport{Bucket: bucket, Exists: exists}
	if !exists {
		return report, fmt.Errorf("bucket %s does not exist", bucket)
	}

	opts := minio.ListObjectsOptions{Prefix: prefix, Recursive: true, MaxKeys: 1}
	for obj := range client.ListObjects(ctx, bucket, opts) {
		if obj.Err != nil {
			return report, fmt.Errorf("failed to list bucket %s: %w", bucket, obj.Err)
		}
		report.Archived = true
		break
	}
	return report, nil
}
