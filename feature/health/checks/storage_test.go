package checks

import (
	"context"
	"errors"
	"testing"

	"media-tracker/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func objects(infos ...minio.ObjectInfo) <-chan minio.ObjectInfo {
	ch := make(chan minio.ObjectInfo, len(infos))
	for _, info := range infos {
		ch <- info
	}
	close(ch)
	return ch
}

func TestCheckStorage(t *testing.T) {
	ctx := context.Background()

	t.Run("bucket with archives", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", ctx, "imports").Return(true, nil)
		client.On("ListObjects", ctx, "imports", mock.Anything).Return(objects(minio.ObjectInfo{Key: "mal/1/a.xml"}))

		report, err := CheckStorage(ctx, client, "imports", "mal")
		require.NoError(t, err)
		assert.True(t, report.Exists)
		assert.True(t, report.Archived)
	})

	t.Run("empty bucket", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", ctx, "imports").Return(true, nil)
		client.On("ListObjects", ctx, "imports", mock.Anything).Return(objects())

		report, err := CheckStorage(ctx, client, "imports", "mal")
		require.NoError(t, err)
		assert.False(t, report.Archived)
	})

	t.Run("missing bucket", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", ctx, "imports").Return(false, nil)

		report, err := CheckStorage(ctx, client, "imports", "mal")
		assert.Error(t, err)
		assert.False(t, report.Exists)
	})

	t.Run("list error", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", ctx, "imports").Return(true, nil)
		client.On("ListObjects", ctx, "imports", mock.Anything).Return(objects(minio.ObjectInfo{Err: errors.New("denied")}))

		_, err := CheckStorage(ctx, client, "imports", "mal")
		assert.ErrorContains(t, err, "denied")
	})

	t.Run("unreachable", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", ctx, "imports").Return(false, errors.New("dial tcp: refused"))

		report, err := CheckStorage(ctx, client, "imports", "mal")
		assert.Error(t, err)
		assert.Nil(t, report)
	})

	t.Run("not configured", func(t *testing.T) {
		_, err := CheckStorage(ctx, nil, "imports", "mal")
		assert.Error(t, err)
	})
}
