package storage_test

import (
	"context"
	"testing"

	"media-tracker/core/storage"
	"media-tracker/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestNewClient(t *testing.T) {
	t.Run("ValidConfig", func(t *testing.T) {
		cfg := storage.Config{
			Endpoint:  "localhost:9000",
			AccessKey: "testkey",
			SecretKey: "testsecret",
			Bucket:    "imports",
			Region:    "us-east-1",
		}

		client, err := storage.NewClient(cfg)
		assert.NoError(t, err)
		assert.NotNil(t, client)
	})

	t.Run("EndpointWithScheme", func(t *testing.T) {
		for _, endpoint := range []string{"http://localhost:9000", "https://s3.amazonaws.com"} {
			client, err := storage.NewClient(storage.Config{Endpoint: endpoint, AccessKey: "k", SecretKey: "s"})
			assert.NoError(t, err, endpoint)
			assert.NotNil(t, client, endpoint)
		}
	})
}

func TestEnsureBucket(t *testing.T) {
	ctx := context.Background()

	t.Run("Exists", func(t *testing.T) {
		m := new(mocks.Client)
		m.On("BucketExists", mock.Anything, "imports").Return(true, nil)

		assert.NoError(t, storage.EnsureBucket(ctx, m, "imports", ""))
		m.AssertNotCalled(t, "MakeBucket", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Creates", func(t *testing.T) {
		m := new(mocks.Client)
		m.On("BucketExists", mock.Anything, "imports").Return(false, nil)
		m.On("MakeBucket", mock.Anything, "imports", minio.MakeBucketOptions{Region: "eu-west-1"}).Return(nil)

		assert.NoError(t, storage.EnsureBucket(ctx, m, "imports", "eu-west-1"))
		m.AssertExpectations(t)
	})

	t.Run("CheckFails", func(t *testing.T) {
		m := new(mocks.Client)
		m.On("BucketExists", mock.Anything, "imports").Return(false, assert.AnError)

		err := storage.EnsureBucket(ctx, m, "imports", "")
		assert.ErrorIs(t, err, assert.AnError)
	})
}
