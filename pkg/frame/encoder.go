package frame

import (
	"bufio"
	"io"

	"github.com/ssargent/fsepack/pkg/codec"
	"github.com/ssargent/fsepack/pkg/entropy"
	"github.com/ssargent/fsepack/pkg/xxh32"
)

// EncoderConfig holds configuration for the frame encoder.
type EncoderConfig struct {
	BlockSizeID uint8 // uncompressed block size = 1 KiB << id, 0..11
}

// Encoder compresses a byte stream into a frame. An Encoder owns its block
// buffers and coder state and may be reused for multiple frames, one at a
// time.
type Encoder struct {
	blockSizeID uint8
	blockSize   int
	coder       *entropy.Coder
	in          []byte
	hash        xxh32.Digest
}

// NewEncoder creates an encoder with the given configuration.
func NewEncoder(config EncoderConfig) (*Encoder, error) {
	if config.BlockSizeID > codec.MaxBlockSizeID {
		return nil, errf(CodeBlockSizeID, codec.ErrBlockSizeID, "block size id %d", config.BlockSizeID)
	}
	blockSize := codec.BlockSize(config.BlockSizeID)
	return &Encoder{
		blockSizeID: config.BlockSizeID,
		blockSize:   blockSize,
		coder:       entropy.NewCoder(blockSize),
		in:          make([]byte, blockSize),
	}, nil
}

// Encode reads r to exhaustion and writes one complete frame to w, returning
// the number of compressed bytes written. A short final read ends the block
// loop cleanly; the trailer is always emitted. Empty input yields an
// 8-byte frame.
func (e *Encoder) Encode(r io.Reader, w io.Writer) (int64, error) {
	bw := bufio.NewWriter(w)
	e.hash.Reset()
	var written int64

	var fh [codec.FrameHeaderSize]byte
	if err := codec.EncodeFrameHeader(fh[:], e.blockSizeID); err != nil {
		return 0, errf(CodeWriteHeader, err, "cannot build frame header")
	}
	if _, err := bw.Write(fh[:]); err != nil {
		return written, errf(CodeWriteHeader, err, "cannot write frame header")
	}
	written += codec.FrameHeaderSize

	for {
		n, err := io.ReadFull(r, e.in)
		if err == io.EOF {
			break
		}
		if err == io.ErrUnexpectedEOF {
			err = nil // short final block
		}
		if err != nil {
			return written, errf(CodeReadSource, err, "cannot read source")
		}

		src := e.in[:n]
		e.hash.Write(src)

		res, err := e.coder.Compress(src)
		if err != nil {
			return written, errf(CodeEntropyCompress, err, "entropy compression failed")
		}

		var blockN int
		switch res.Kind {
		case entropy.KindCompressed:
			blockN, err = writeBlock(bw, codec.BlockCompressed, uint32(len(res.Payload)), res.Payload)
			if err != nil {
				return written, errf(CodeWriteCompressed, err, "cannot write compressed block")
			}
		case entropy.KindRaw:
			blockN, err = writeBlock(bw, codec.BlockRaw, uint32(n), src)
			if err != nil {
				return written, errf(CodeWriteRaw, err, "cannot write raw block")
			}
		case entropy.KindRLE:
			blockN, err = writeBlock(bw, codec.BlockRLE, uint32(n), src[:1])
			if err != nil {
				return written, errf(CodeWriteRLE, err, "cannot write rle block")
			}
		}
		written += int64(blockN)

		if n < e.blockSize {
			break
		}
	}

	checksum := (e.hash.Sum32() >> 5) & codec.ChecksumMask
	trailerN, err := writeBlock(bw, codec.BlockCRC, checksum, nil)
	if err != nil {
		return written, errf(CodeWriteTrailer, err, "cannot write trailer")
	}
	written += int64(trailerN)

	if err := bw.Flush(); err != nil {
		return written, errf(CodeWriteTrailer, err, "cannot flush frame")
	}
	return written, nil
}

// writeBlock emits a 3-byte header followed by the body (nil for the
// trailer) and returns the bytes written.
func writeBlock(w *bufio.Writer, typ codec.BlockType, length uint32, body []byte) (int, error) {
	var hdr [codec.BlockHeaderSize]byte
	h := codec.BlockHeader{Type: typ, Len: length}
	if err := h.Encode(hdr[:]); err != nil {
		return 0, err
	}
	if _, err := w.Write(hdr[:]); err != nil {
		return 0, err
	}
	if len(body) > 0 {
		if _, err := w.Write(body); err != nil {
			return 0, err
		}
	}
	return codec.BlockHeaderSize + len(body), nil
}
