package s3

import (
	"bytes"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/hupe1980/vivaldi/internal/hash"
)

// DefaultContentType is stored with every object unless UploadConfig
// overrides it.
const DefaultContentType = "application/octet-stream"

// UploadConfig configures how Store writes objects.
type UploadConfig struct {
	// PartSize is the size at which Put switches to a multipart upload.
	// Default: 8MB
	PartSize int64

	// Concurrency is the number of parts uploaded in parallel.
	// Default: 5
	Concurrency int

	// Checksum attaches a CRC32C so S3 rejects corrupted uploads.
	// Default: true
	Checksum bool

	// ContentType of written objects.
	ContentType string

	// LeavePartsOnError keeps the parts of a failed multipart upload instead
	// of aborting it.
	LeavePartsOnError bool
}

// DefaultUploadConfig returns the default upload settings.
func DefaultUploadConfig() UploadConfig {
	return UploadConfig{
		PartSize:    8 * 1024 * 1024,
		Concurrency: 5,
		Checksum:    true,
		ContentType: DefaultContentType,
	}
}

func newUploader(client manager.UploadAPIClient, cfg UploadConfig) *manager.Uploader {
	return manager.NewUploader(client, func(u *manager.Uploader) {
		if cfg.PartSize >= manager.MinUploadPartSize {
			u.PartSize = cfg.PartSize
		}
		if cfg.Concurrency > 0 {
			u.Concurrency = cfg.Concurrency
		}
		u.LeavePartsOnError = cfg.LeavePartsOnError
	})
}

// putInput builds the request that writes data to key and reports whether
// it needs a multipart upload. Single requests carry a precomputed checksum;
// for multipart uploads the SDK computes one per part.
func (cfg UploadConfig) putInput(bucket, key string, data []byte) (*s3.PutObjectInput, bool) {
	in := &s3.PutObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
		Body:   bytes.NewReader(data),
	}
	if cfg.ContentType != "" {
		in.ContentType = aws.String(cfg.ContentType)
	}

	if int64(len(data)) >= cfg.PartSize {
		if cfg.Checksum {
			in.ChecksumAlgorithm = types.ChecksumAlgorithmCrc32c
		}
		return in, true
	}

	in.ContentLength = aws.Int64(int64(len(data)))
	if cfg.Checksum {
		in.ChecksumCRC32C = aws.String(hash.S3Checksum(data))
	}
	return in, false
}
