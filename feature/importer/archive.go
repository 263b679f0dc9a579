package importer

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strconv"
	"time"

	"media-tracker/core/storage"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
)

// Archiver keeps a copy of every uploaded export in object storage.
type Archiver struct {
	client storage.Client
	bucket string
	prefix string
	now    func() time.Time
}

// NewArchiver creates an archiver writing to bucket under prefix.
func NewArchiver(client storage.Client, bucket, prefix string) *Archiver {
	return &Archiver{client: client, bucket: bucket, prefix: prefix, now: time.Now}
}

// Store uploads raw and returns its object key:
// {prefix}/{user}/{timestamp}-{uuid}.xml
func (a *Archiver) Store(ctx context.Context, userID uint, filename string, raw []byte) (string, error) {
	key := path.Join(
		a.prefix,
		strconv.FormatUint(uint64(userID), 10),
		a.now().UTC().Format("20060102T150405Z")+"-"+uuid.NewString()+".xml",
	)

	opts := minio.PutObjectOptions{ContentType: "application/xml"}
	if filename != "" {
		opts.UserMetadata = map[string]string{"filename": filename}
	}

	if _, err := a.client.PutObject(ctx, a.bucket, key, bytes.NewReader(raw), int64(len(raw)), opts); err != nil {
		return "", fmt.Errorf("failed to archive import to %s/%s: %w", a.bucket, key, err)
	}
	return key, nil
}
