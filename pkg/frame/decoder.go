package frame

import (
	"bufio"
	"errors"
	"io"

	"github.com/ssargent/fsepack/pkg/codec"
	"github.com/ssargent/fsepack/pkg/entropy"
	"github.com/ssargent/fsepack/pkg/xxh32"
)

// Decoder parses a frame and reproduces the original byte stream. The block
// size is taken from the frame's stream descriptor, so the zero-value
// decoder is ready to use.
type Decoder struct{}

// NewDecoder creates a frame decoder.
func NewDecoder() *Decoder {
	return &Decoder{}
}

// Decode parses one frame from r, writes the decoded payload to w and
// returns the number of bytes written. The first trailer-type block header
// ends the frame; its stored checksum must match the hash of the decoded
// payload.
func (d *Decoder) Decode(r io.Reader, w io.Writer) (int64, error) {
	br := bufio.NewReader(r)

	var fh [codec.FrameHeaderSize]byte
	if _, err := io.ReadFull(br, fh[:]); err != nil {
		return 0, errf(CodeReadFrameHeader, err, "cannot read frame header")
	}
	blockSizeID, err := codec.ParseFrameHeader(fh[:])
	if err != nil {
		switch {
		case errors.Is(err, codec.ErrBadMagic):
			return 0, errf(CodeBadMagic, err, "not an fsepack frame")
		case errors.Is(err, codec.ErrReservedBits):
			return 0, errf(CodeReservedBits, err, "unsupported stream descriptor")
		default:
			return 0, errf(CodeBlockSizeID, err, "unsupported stream descriptor")
		}
	}

	blockSize := codec.BlockSize(blockSizeID)
	maxBody := entropy.MaxCompressedSize(blockSize)
	coder := entropy.NewCoder(blockSize)
	body := make([]byte, maxBody)
	fill := make([]byte, blockSize)
	var hash xxh32.Digest
	var written int64

	for {
		var hb [codec.BlockHeaderSize]byte
		if _, err := io.ReadFull(br, hb[:]); err != nil {
			return written, errf(CodeReadBlockHeader, err, "cannot read block header")
		}
		header, err := codec.DecodeBlockHeader(hb[:])
		if err != nil {
			return written, errf(CodeReadBlockHeader, err, "cannot decode block header")
		}

		var payload []byte
		switch header.Type {
		case codec.BlockCRC:
			computed := (hash.Sum32() >> 5) & codec.ChecksumMask
			if header.Len != computed {
				return written, errf(CodeChecksum, nil,
					"content checksum mismatch: stored %06x, computed %06x", header.Len, computed)
			}
			return written, nil

		case codec.BlockRaw:
			if header.Len == 0 || int(header.Len) > blockSize {
				return written, errf(CodeBlockLength, nil, "raw block length %d out of range", header.Len)
			}
			payload = body[:header.Len]
			if _, err := io.ReadFull(br, payload); err != nil {
				return written, errf(CodeReadBlockBody, err, "cannot read raw block body")
			}

		case codec.BlockRLE:
			if header.Len == 0 || int(header.Len) > blockSize {
				return written, errf(CodeBlockLength, nil, "rle block length %d out of range", header.Len)
			}
			b, err := br.ReadByte()
			if err != nil {
				return written, errf(CodeReadBlockBody, err, "cannot read rle block body")
			}
			payload = fill[:header.Len]
			for i := range payload {
				payload[i] = b
			}

		case codec.BlockCompressed:
			if header.Len == 0 || int(header.Len) > maxBody {
				return written, errf(CodeBlockLength, nil, "compressed block length %d out of range", header.Len)
			}
			compressed := body[:header.Len]
			if _, err := io.ReadFull(br, compressed); err != nil {
				return written, errf(CodeReadBlockBody, err, "cannot read compressed block body")
			}
			payload, err = coder.Decompress(compressed, blockSize)
			if err != nil {
				return written, errf(CodeEntropyDecompress, err, "entropy decompression failed")
			}

		default:
			return written, errf(CodeBlockType, nil, "unknown block type %d", header.Type)
		}

		hash.Write(payload)
		if _, err := w.Write(payload); err != nil {
			return written, errf(CodeWriteSink, err, "cannot write decoded block")
		}
		written += int64(len(payload))
	}
}
