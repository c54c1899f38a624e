package hash

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCRC32C(t *testing.T) {
	// Check value from the CRC catalogue.
	assert.Equal(t, uint32(0xE3069283), CRC32C([]byte("123456789")))
	assert.Equal(t, uint32(0), CRC32C(nil))
}

func TestSealOpen(t *testing.T) {
	sealed := Seal([]byte("123456789"))
	require.Len(t, sealed, 9+Size)
	assert.Equal(t, []byte{0x83, 0x92, 0x06, 0xE3}, sealed[9:])

	body, ok := Open(sealed)
	assert.True(t, ok)
	assert.Equal(t, []byte("123456789"), body)

	sealed[0] ^= 1
	_, ok = Open(sealed)
	assert.False(t, ok)

	_, ok = Open([]byte{1, 2})
	assert.False(t, ok)
}

func TestS3Checksum(t *testing.T) {
	// base64 of E3 06 92 83
	assert.Equal(t, "4waSgw==", S3Checksum([]byte("123456789")))
}
