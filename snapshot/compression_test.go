package snapshot

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompressBlock_RoundTrip(t *testing.T) {
	compressible := bytes.Repeat([]byte("vivaldi coordinate "), 64)
	incompressible := []byte{0x01, 0x7f, 0x33, 0xa0}

	for _, c := range []Compression{CompressionNone, CompressionLZ4, CompressionZSTD} {
		t.Run(c.String(), func(t *testing.T) {
			for _, data := range [][]byte{compressible, incompressible} {
				block, err := compressBlock(data, c)
				require.NoError(t, err)

				out, err := decompressBlock(block, c)
				require.NoError(t, err)
				assert.Equal(t, data, out)
			}
		})
	}
}

func TestCompressBlock_Shrinks(t *testing.T) {
	data := bytes.Repeat([]byte("a"), 4096)

	for _, c := range []Compression{CompressionLZ4, CompressionZSTD} {
		block, err := compressBlock(data, c)
		require.NoError(t, err)
		assert.Less(t, len(block), len(data)/2, c.String())
	}

	block, err := compressBlock(data, CompressionNone)
	require.NoError(t, err)
	assert.Equal(t, blockHeaderSize+len(data), len(block))
}

func TestDecompressBlock_Errors(t *testing.T) {
	_, err := decompressBlock([]byte{1, 2, 3}, CompressionNone)
	assert.Error(t, err)

	block, err := compressBlock([]byte("hello"), CompressionNone)
	require.NoError(t, err)
	_, err = decompressBlock(block[:len(block)-1], CompressionNone)
	assert.Error(t, err)
	_, err = decompressBlock(append(block, 0), CompressionNone)
	assert.Error(t, err)
}

func TestParseCompression(t *testing.T) {
	for _, c := range []Compression{CompressionNone, CompressionLZ4, CompressionZSTD} {
		parsed, err := ParseCompression(c.String())
		require.NoError(t, err)
		assert.Equal(t, c, parsed)
	}

	_, err := ParseCompression("brotli")
	assert.Error(t, err)
	assert.Equal(t, "compression(9)", Compression(9).String())
}
