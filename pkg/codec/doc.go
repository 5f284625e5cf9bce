// Package codec defines the fsepack frame wire format.
//
// The codec package implements the byte-level encoding of frame and block
// headers. It is the foundation the frame encoder and decoder are built on;
// it performs no I/O and no compression of its own.
//
// # Frame Format
//
// A frame is a self-describing compressed artifact:
//
//	[Magic(4)][Descriptor(1)][Block...][Trailer(3)]
//
// Fields:
//   - Magic: the 32-bit sentinel 0x183E2308, little-endian
//   - Descriptor: bits 0-3 hold the block size id (block size =
//     1 KiB << id, id <= 11); bits 4-7 are reserved and must be zero
//   - Block: a 3-byte header followed by a type-dependent body
//   - Trailer: a block header of type crc carrying the content checksum;
//     it has no body and terminates the frame
//
// # Block Header Format
//
// Every block starts with 3 bytes:
//
//	byte 0: [type(2 bits)][length bits 21..16]
//	byte 1: length bits 15..8
//	byte 2: length bits 7..0
//
// The 2-bit type is one of compressed (0), raw (1), rle (2) or crc (3).
// The meaning of the 22-bit length field depends on the type:
//   - compressed, raw: length of the body that follows
//   - rle: the decompressed length; the body is a single byte to repeat
//   - crc: the truncated content checksum; no body follows
//
// # Content Checksum
//
// The trailer stores (XXH32(payload) >> 5) & 0x3FFFFF, where payload is the
// concatenation of all decoded block payloads in frame order. The hash is
// seeded with zero.
//
// # Usage
//
// Headers are packed and unpacked with explicit byte arithmetic so the
// format is independent of host endianness and alignment:
//
//	var buf [codec.BlockHeaderSize]byte
//	h := codec.BlockHeader{Type: codec.BlockRaw, Len: 4096}
//	if err := h.Encode(buf[:]); err != nil {
//	    return err
//	}
//
//	h, err := codec.DecodeBlockHeader(buf[:])
//	if err != nil {
//	    return err
//	}
//
// # Error Handling
//
// Malformed material is reported through sentinel *WireError values
// (ErrBadMagic, ErrReservedBits, ErrBlockSizeID, ErrLengthOverflow,
// ErrShortBuffer) suitable for errors.Is.
package codec
