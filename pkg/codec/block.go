package codec

import (
	"encoding/binary"
	"fmt"
)

// Frame layout constants.
const (
	// Magic identifies an fsepack frame. Written little-endian as the first
	// four bytes of every frame.
	Magic uint32 = 0x183E2308

	// FrameHeaderSize is magic (4) plus the stream descriptor byte.
	FrameHeaderSize = 5

	// BlockHeaderSize is the fixed size of every block header, trailer
	// included.
	BlockHeaderSize = 3

	// MaxBlockSizeID is the largest accepted block size exponent
	// (2 MiB blocks).
	MaxBlockSizeID = 11

	// DefaultBlockSizeID selects 32 KiB blocks.
	DefaultBlockSizeID = 5

	// MaxBlockLen is the largest value representable in a block header's
	// 22-bit length field.
	MaxBlockLen = 1<<22 - 1

	// ChecksumMask truncates a 32-bit content hash to the 22 bits stored in
	// the trailer.
	ChecksumMask = 1<<22 - 1
)

// BlockType is the 2-bit tag in the top bits of a block header's first byte.
type BlockType uint8

const (
	// BlockCompressed marks a body holding entropy-coded bytes; the length
	// field is the body length.
	BlockCompressed BlockType = 0
	// BlockRaw marks a body stored verbatim; the length field is the body
	// length.
	BlockRaw BlockType = 1
	// BlockRLE marks a single-byte body repeated length-field times; the
	// length field is the decompressed length.
	BlockRLE BlockType = 2
	// BlockCRC marks the frame trailer; the length field carries the 22-bit
	// content checksum and no body follows.
	BlockCRC BlockType = 3
)

func (t BlockType) String() string {
	switch t {
	case BlockCompressed:
		return "compressed"
	case BlockRaw:
		return "raw"
	case BlockRLE:
		return "rle"
	case BlockCRC:
		return "crc"
	}
	return fmt.Sprintf("BlockType(%d)", uint8(t))
}

// Sentinel errors for malformed frame material.
var (
	ErrBadMagic       = &WireError{"bad magic number"}
	ErrReservedBits   = &WireError{"reserved descriptor bits set"}
	ErrBlockSizeID    = &WireError{"block size id out of range"}
	ErrLengthOverflow = &WireError{"block length exceeds 22-bit field"}
	ErrShortBuffer    = &WireError{"buffer too short"}
)

// WireError represents a violation of the frame wire format.
type WireError struct {
	Message string
}

func (e *WireError) Error() string {
	return e.Message
}

// BlockHeader is the decoded form of a 3-byte block header.
type BlockHeader struct {
	Type BlockType
	Len  uint32 // 22-bit: body length, decompressed length (RLE) or checksum (CRC)
}

// Encode packs the header into dst[0:3].
// Layout: byte 0 bits 7..6 = type, bits 5..0 = length bits 21..16;
// byte 1 = length bits 15..8; byte 2 = length bits 7..0.
func (h BlockHeader) Encode(dst []byte) error {
	if len(dst) < BlockHeaderSize {
		return ErrShortBuffer
	}
	if h.Len > MaxBlockLen {
		return ErrLengthOverflow
	}
	dst[0] = byte(h.Type)<<6 | byte(h.Len>>16)
	dst[1] = byte(h.Len >> 8)
	dst[2] = byte(h.Len)
	return nil
}

// DecodeBlockHeader unpacks a 3-byte block header.
func DecodeBlockHeader(src []byte) (BlockHeader, error) {
	if len(src) < BlockHeaderSize {
		return BlockHeader{}, ErrShortBuffer
	}
	return BlockHeader{
		Type: BlockType(src[0] >> 6),
		Len:  uint32(src[0]&0x3F)<<16 | uint32(src[1])<<8 | uint32(src[2]),
	}, nil
}

// BlockSize converts a block size id to the uncompressed block size in bytes.
func BlockSize(id uint8) int {
	return 1024 << id
}

// EncodeFrameHeader writes the magic and stream descriptor into dst[0:5].
func EncodeFrameHeader(dst []byte, blockSizeID uint8) error {
	if len(dst) < FrameHeaderSize {
		return ErrShortBuffer
	}
	if blockSizeID > MaxBlockSizeID {
		return ErrBlockSizeID
	}
	binary.LittleEndian.PutUint32(dst, Magic)
	dst[4] = blockSizeID
	return nil
}

// ParseFrameHeader validates the magic and descriptor and returns the block
// size id. Descriptor bits 4..7 are reserved and must be zero.
func ParseFrameHeader(src []byte) (uint8, error) {
	if len(src) < FrameHeaderSize {
		return 0, ErrShortBuffer
	}
	if binary.LittleEndian.Uint32(src) != Magic {
		return 0, ErrBadMagic
	}
	desc := src[4]
	if desc&0xF0 != 0 {
		return 0, ErrReservedBits
	}
	if desc > MaxBlockSizeID {
		return 0, ErrBlockSizeID
	}
	return desc, nil
}
