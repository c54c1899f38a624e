// Package s3 provides an S3 implementation of the blobstore.BlobStore interface.
//
// # Usage
//
//	store, err := s3.New(ctx, "my-bucket",
//	    s3.WithPrefix("coordinates/"),
//	    s3.WithRegion("us-east-1"),
//	)
//
//	snap := snapshot.New(client, store, "node-a.snap")
//
// # Features
//
//   - CRC32C checksums on every write
//   - Multipart uploads for blobs larger than one part
//   - Automatic pagination for listing
//   - Configurable prefix for multi-tenant isolation
package s3
