// Package hash provides the CRC32-Castagnoli checksum used for snapshot
// trailers and S3 upload integrity checks.
//
// S3 accepts CRC32C as an upload checksum, so the same polynomial serves
// both purposes.
package hash
