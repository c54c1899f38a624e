package hash

import (
	"encoding/base64"
	"encoding/binary"
	"hash/crc32"
)

// Size is the length of an encoded checksum.
const Size = 4

var castagnoli = crc32.MakeTable(crc32.Castagnoli)

// CRC32C returns the CRC32-Castagnoli checksum of data.
func CRC32C(data []byte) uint32 {
	return crc32.Checksum(data, castagnoli)
}

// Seal appends the little-endian checksum of buf to buf.
func Seal(buf []byte) []byte {
	return binary.LittleEndian.AppendUint32(buf, CRC32C(buf))
}

// Open strips the checksum Seal appended and reports whether it matched.
func Open(sealed []byte) ([]byte, bool) {
	if len(sealed) < Size {
		return nil, false
	}
	body := sealed[:len(sealed)-Size]
	return body, binary.LittleEndian.Uint32(sealed[len(body):]) == CRC32C(body)
}

// S3Checksum returns the checksum in the form S3 expects for
// x-amz-checksum-crc32c: base64 of the big-endian bytes.
func S3Checksum(data []byte) string {
	b := binary.BigEndian.AppendUint32(nil, CRC32C(data))
	return base64.StdEncoding.EncodeToString(b)
}
