package sink

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"okta-import/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestFileSink_Write(t *testing.T) {
	dir := t.TempDir()
	s := NewFileSink(dir, "")

	target, err := s.Write(context.Background(), "groups", []byte("import {}\n"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "groups", "import.tf"), target)

	target, err = s.Write(context.Background(), "groups", []byte("second\n"))
	require.NoError(t, err)

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "second\n", string(data), "last write wins")
}

func TestFileSink_CancelledWritesNothing(t *testing.T) {
	dir := t.TempDir()
	s := NewFileSink(dir, "imports.tf")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	target, err := s.Write(ctx, "users", []byte("data"))
	assert.ErrorIs(t, err, context.Canceled)
	_, statErr := os.Stat(target)
	assert.True(t, os.IsNotExist(statErr))
}

func TestObjectSink_Write(t *testing.T) {
	client := new(mocks.Client)
	body := []byte("import {}\n")
	client.On("PutObject", mock.Anything, "imports", "okta/preview/applications/import.tf", mock.Anything, int64(len(body)), mock.Anything).
		Return(minio.UploadInfo{}, nil)

	s := NewObjectSink(client, "imports", "/okta/", "environments/preview", "")
	target, err := s.Write(context.Background(), "applications", body)

	require.NoError(t, err)
	assert.Equal(t, "s3://imports/okta/preview/applications/import.tf", target)
	client.AssertExpectations(t)
}

func TestObjectSink_WriteFailure(t *testing.T) {
	client := new(mocks.Client)
	client.On("PutObject", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(minio.UploadInfo{}, errors.New("access denied"))

	s := NewObjectSink(client, "imports", "", "preview", "")
	_, err := s.Write(context.Background(), "users", []byte("x"))
	assert.ErrorContains(t, err, "access denied")
}

func TestObjectSink_EnsureBucket(t *testing.T) {
	t.Run("Exists", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, "imports").Return(true, nil)

		s := NewObjectSink(client, "imports", "", "preview", "")
		assert.NoError(t, s.EnsureBucket(context.Background(), ""))
		client.AssertNotCalled(t, "MakeBucket", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Creates", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, "imports").Return(false, nil)
		client.On("MakeBucket", mock.Anything, "imports", minio.MakeBucketOptions{Region: "eu-west-1"}).Return(nil)

		s := NewObjectSink(client, "imports", "", "preview", "")
		assert.NoError(t, s.EnsureBucket(context.Background(), "eu-west-1"))
		client.AssertExpectations(t)
	})

	t.Run("CheckFails", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, "imports").Return(false, errors.New("dns"))

		s := NewObjectSink(client, "imports", "", "preview", "")
		assert.Error(t, s.EnsureBucket(context.Background(), ""))
	})
}
