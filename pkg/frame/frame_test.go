package frame

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ssargent/fsepack/pkg/codec"
)

func encodeBytes(t *testing.T, input []byte, blockSizeID uint8) []byte {
	t.Helper()
	enc, err := NewEncoder(EncoderConfig{BlockSizeID: blockSizeID})
	require.NoError(t, err)
	var out bytes.Buffer
	n, err := enc.Encode(bytes.NewReader(input), &out)
	require.NoError(t, err)
	require.Equal(t, int64(out.Len()), n, "reported size must match bytes written")
	return out.Bytes()
}

func decodeBytes(t *testing.T, frame []byte) ([]byte, error) {
	t.Helper()
	var out bytes.Buffer
	n, err := NewDecoder().Decode(bytes.NewReader(frame), &out)
	if err != nil {
		return out.Bytes(), err
	}
	require.Equal(t, int64(out.Len()), n, "reported size must match bytes written")
	return out.Bytes(), nil
}

// parseBlocks walks a frame and returns the block headers in order, the
// trailer included as the last element.
func parseBlocks(t *testing.T, frame []byte) []codec.BlockHeader {
	t.Helper()
	_, err := codec.ParseFrameHeader(frame)
	require.NoError(t, err)
	var headers []codec.BlockHeader
	off := codec.FrameHeaderSize
	for {
		require.LessOrEqual(t, off+codec.BlockHeaderSize, len(frame), "frame truncated while walking")
		h, err := codec.DecodeBlockHeader(frame[off : off+codec.BlockHeaderSize])
		require.NoError(t, err)
		headers = append(headers, h)
		off += codec.BlockHeaderSize
		switch h.Type {
		case codec.BlockCRC:
			require.Equal(t, len(frame), off, "trailer must end the frame")
			return headers
		case codec.BlockRLE:
			off++
		default:
			off += int(h.Len)
		}
	}
}

func skewed(n int, seed int64) []byte {
	rng := rand.New(rand.NewSource(seed))
	alphabet := []byte("aaaaaaaabbbbccde")
	out := make([]byte, n)
	for i := range out {
		out[i] = alphabet[rng.Intn(len(alphabet))]
	}
	return out
}

func uniform(n int, seed int64) []byte {
	out := make([]byte, n)
	rand.New(rand.NewSource(seed)).Read(out)
	return out
}

func TestRoundTrip(t *testing.T) {
	testCases := []struct {
		name        string
		input       []byte
		blockSizeID uint8
	}{
		{"empty", nil, codec.DefaultBlockSizeID},
		{"single byte", []byte{0x7F}, codec.DefaultBlockSizeID},
		{"short text", []byte("hello, frame"), codec.DefaultBlockSizeID},
		{"compressible one block", skewed(16*1024, 1), codec.DefaultBlockSizeID},
		{"compressible many blocks", skewed(200*1024, 2), codec.DefaultBlockSizeID},
		{"random many blocks", uniform(10*1024, 3), 0},
		{"rle", bytes.Repeat([]byte{0}, 100*1024), codec.DefaultBlockSizeID},
		{"exactly one block", skewed(1024, 4), 0},
		{"one block plus one byte", append(skewed(1024, 5), 'x'), 0},
		{"largest blocks", skewed(3*1024*1024, 6), codec.MaxBlockSizeID},
		{"mixed block kinds", append(append(bytes.Repeat([]byte{9}, 2048), uniform(1024, 7)...), skewed(4096, 8)...), 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			frame := encodeBytes(t, tc.input, tc.blockSizeID)
			got, err := decodeBytes(t, frame)
			require.NoError(t, err)
			assert.True(t, bytes.Equal(got, tc.input),
				"round trip mismatch: %d bytes in, %d bytes out", len(tc.input), len(got))
		})
	}
}

func TestEmptyInputFrameIsEightBytes(t *testing.T) {
	frame := encodeBytes(t, nil, codec.DefaultBlockSizeID)
	assert.Equal(t, 8, len(frame), "empty frame is magic + descriptor + trailer")

	headers := parseBlocks(t, frame)
	require.Len(t, headers, 1)
	assert.Equal(t, codec.BlockCRC, headers[0].Type)

	got, err := decodeBytes(t, frame)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSingleSymbolInputBecomesRLE(t *testing.T) {
	frame := encodeBytes(t, bytes.Repeat([]byte{0x00}, 1024), 0)

	headers := parseBlocks(t, frame)
	require.Len(t, headers, 2)
	assert.Equal(t, codec.BlockRLE, headers[0].Type)
	assert.Equal(t, uint32(1024), headers[0].Len, "rle length field holds the decompressed size")
	assert.Equal(t, byte(0x00), frame[codec.FrameHeaderSize+codec.BlockHeaderSize], "rle body byte")

	// magic(4) + descriptor(1) + block header(3) + rle body(1) + trailer(3)
	assert.Equal(t, 12, len(frame))
}

func TestIncompressibleBlockIsRaw(t *testing.T) {
	input := uniform(1024, 9)
	frame := encodeBytes(t, input, 0)

	headers := parseBlocks(t, frame)
	require.Len(t, headers, 2)
	assert.Equal(t, codec.BlockRaw, headers[0].Type)
	assert.Equal(t, uint32(1024), headers[0].Len)
	assert.Equal(t, codec.FrameHeaderSize+codec.BlockHeaderSize+1024+codec.BlockHeaderSize, len(frame))
}

func TestTwoFullBlocksAtDefaultSize(t *testing.T) {
	input := skewed(2*32*1024, 10)
	frame := encodeBytes(t, input, codec.DefaultBlockSizeID)

	headers := parseBlocks(t, frame)
	require.Len(t, headers, 3, "two data blocks plus trailer")
	for _, h := range headers[:2] {
		assert.NotEqual(t, codec.BlockCRC, h.Type)
	}

	got, err := decodeBytes(t, frame)
	require.NoError(t, err)
	assert.True(t, bytes.Equal(got, input), "hash must accumulate over both payloads in order")
}

func TestEncoderRejectsBadBlockSizeID(t *testing.T) {
	_, err := NewEncoder(EncoderConfig{BlockSizeID: codec.MaxBlockSizeID + 1})
	require.Error(t, err)
	assert.Equal(t, CodeBlockSizeID, Code(err))
}

func TestDecodeTruncatedFrame(t *testing.T) {
	frame := encodeBytes(t, skewed(4096, 11), 0)

	t.Run("cut into trailer", func(t *testing.T) {
		_, err := decodeBytes(t, frame[:len(frame)-3])
		require.Error(t, err)
		assert.Equal(t, CodeReadBlockHeader, Code(err))
	})

	t.Run("cut into block body", func(t *testing.T) {
		_, err := decodeBytes(t, frame[:codec.FrameHeaderSize+codec.BlockHeaderSize+1])
		require.Error(t, err)
		assert.Equal(t, CodeReadBlockBody, Code(err))
	})

	t.Run("cut into frame header", func(t *testing.T) {
		_, err := decodeBytes(t, frame[:3])
		require.Error(t, err)
		assert.Equal(t, CodeReadFrameHeader, Code(err))
	})
}

func TestDecodeWrongMagic(t *testing.T) {
	frame := encodeBytes(t, []byte("payload"), codec.DefaultBlockSizeID)
	bad := append([]byte{0x00, 0x00, 0x00, 0x00}, frame[4:]...)

	var out bytes.Buffer
	_, err := NewDecoder().Decode(bytes.NewReader(bad), &out)
	require.Error(t, err)
	assert.Equal(t, CodeBadMagic, Code(err))
	assert.Zero(t, out.Len(), "no payload may be written on a magic mismatch")
}

func TestDecodeReservedDescriptorBits(t *testing.T) {
	frame := encodeBytes(t, []byte("payload"), codec.DefaultBlockSizeID)
	for _, bit := range []byte{0x10, 0x20, 0x40, 0x80} {
		bad := append([]byte(nil), frame...)
		bad[4] |= bit
		_, err := decodeBytes(t, bad)
		require.Error(t, err, "descriptor bit %#02x", bit)
		assert.Equal(t, CodeReservedBits, Code(err))
	}
}

func TestDecodeChecksumCorruption(t *testing.T) {
	frame := encodeBytes(t, skewed(8192, 12), 0)

	bad := append([]byte(nil), frame...)
	bad[len(bad)-1] ^= 0x01 // low bit of trailer byte 2

	_, err := decodeBytes(t, bad)
	require.Error(t, err)
	assert.Equal(t, CodeChecksum, Code(err))
}

func TestDecodePayloadCorruption(t *testing.T) {
	input := skewed(8192, 13)
	frame := encodeBytes(t, input, 0)
	headers := parseBlocks(t, frame)
	require.Equal(t, codec.BlockCompressed, headers[0].Type, "test needs an entropy-coded block")

	// Flip one bit in every payload byte position in turn. A flip may land
	// on a don't-care bit of the entropy header and decode to the original
	// content; what must never happen is a silent decode to different
	// content.
	start := codec.FrameHeaderSize + codec.BlockHeaderSize
	end := start + int(headers[0].Len)
	for pos := start; pos < end; pos++ {
		bad := append([]byte(nil), frame...)
		bad[pos] ^= 0x01
		got, err := decodeBytes(t, bad)
		if err == nil && !bytes.Equal(got, input) {
			t.Errorf("corruption at byte %d went undetected", pos)
		}
	}
}

func TestDecodeStopsAtFirstTrailer(t *testing.T) {
	// A frame whose trailer is followed by trailing garbage: the decoder
	// must consume exactly one frame and succeed.
	frame := encodeBytes(t, []byte("data to keep"), codec.DefaultBlockSizeID)
	extended := append(append([]byte(nil), frame...), 0xDE, 0xAD, 0xBE, 0xEF)

	got, err := decodeBytes(t, extended)
	require.NoError(t, err)
	assert.Equal(t, "data to keep", string(got))
}

func TestDecodeRejectsZeroLengthDataBlocks(t *testing.T) {
	// Hand-build a frame with a zero-length raw block; no conforming
	// encoder emits one.
	var frame bytes.Buffer
	var fh [codec.FrameHeaderSize]byte
	require.NoError(t, codec.EncodeFrameHeader(fh[:], 0))
	frame.Write(fh[:])
	var hb [codec.BlockHeaderSize]byte
	require.NoError(t, codec.BlockHeader{Type: codec.BlockRaw, Len: 0}.Encode(hb[:]))
	frame.Write(hb[:])

	_, err := decodeBytes(t, frame.Bytes())
	require.Error(t, err)
	assert.Equal(t, CodeBlockLength, Code(err))
}

func TestDecodeRejectsOversizedBlockLength(t *testing.T) {
	var frame bytes.Buffer
	var fh [codec.FrameHeaderSize]byte
	require.NoError(t, codec.EncodeFrameHeader(fh[:], 0)) // 1 KiB blocks
	frame.Write(fh[:])
	var hb [codec.BlockHeaderSize]byte
	require.NoError(t, codec.BlockHeader{Type: codec.BlockRLE, Len: 2048}.Encode(hb[:]))
	frame.Write(hb[:])
	frame.WriteByte(0xAA)

	_, err := decodeBytes(t, frame.Bytes())
	require.Error(t, err)
	assert.Equal(t, CodeBlockLength, Code(err))
}

func TestEncoderReuse(t *testing.T) {
	enc, err := NewEncoder(EncoderConfig{BlockSizeID: 0})
	require.NoError(t, err)

	for _, input := range [][]byte{skewed(4096, 14), uniform(512, 15), nil} {
		var out bytes.Buffer
		_, err := enc.Encode(bytes.NewReader(input), &out)
		require.NoError(t, err)
		got, err := decodeBytes(t, out.Bytes())
		require.NoError(t, err)
		assert.True(t, bytes.Equal(got, input), "reused encoder must reset per frame")
	}
}
