package minio

import (
	"context"
	"errors"
	"testing"

	"github.com/hupe1980/vivaldi/blobstore"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapError(t *testing.T) {
	notFound := minio.ErrorResponse{Code: "NoSuchKey", StatusCode: 404}
	assert.ErrorIs(t, mapError(notFound), blobstore.ErrNotFound)

	status := minio.ErrorResponse{StatusCode: 404}
	assert.ErrorIs(t, mapError(status), blobstore.ErrNotFound)

	other := errors.New("boom")
	assert.Equal(t, other, mapError(other))
}

func TestStore_Keys(t *testing.T) {
	s := NewStore(nil, "bucket", "/vivaldi/snapshots/")

	assert.Equal(t, "vivaldi/snapshots/node-a.snap", s.key("node-a.snap"))
	assert.Equal(t, "node-a.snap", s.name("vivaldi/snapshots/node-a.snap"))

	root := NewStore(nil, "bucket", "")
	assert.Equal(t, "node-a.snap", root.key("node-a.snap"))
	assert.Equal(t, "node-a.snap", root.name("node-a.snap"))
}

// TestMinioStore_Integration requires a running MinIO instance.
// Skip if not available.
func TestMinioStore_Integration(t *testing.T) {
	endpoint := "localhost:9000"
	accessKey := "minioadmin"
	secretKey := "minioadmin"
	bucket := "test-vivaldi"

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: false,
	})
	if err != nil {
		t.Skipf("MinIO client creation failed: %v", err)
	}

	ctx := context.Background()

	// Check if MinIO is reachable
	_, err = client.ListBuckets(ctx)
	if err != nil {
		t.Skipf("MinIO not available: %v", err)
	}

	// Ensure bucket exists
	exists, err := client.BucketExists(ctx, bucket)
	require.NoError(t, err)
	if !exists {
		err = client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{})
		require.NoError(t, err)
	}

	store := NewStore(client, bucket, "test-prefix/")

	// Test Put and Get
	data := []byte("hello minio world")
	require.NoError(t, store.Put(ctx, "test.snap", data))

	got, err := store.Get(ctx, "test.snap")
	require.NoError(t, err)
	require.Equal(t, data, got)

	// Test List
	names, err := store.List(ctx, "")
	require.NoError(t, err)
	assert.Contains(t, names, "test.snap")

	// Test Delete
	require.NoError(t, store.Delete(ctx, "test.snap"))

	// Verify deleted
	_, err = store.Get(ctx, "test.snap")
	require.ErrorIs(t, err, blobstore.ErrNotFound)
}
