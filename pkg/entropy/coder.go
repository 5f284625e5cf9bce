// Package entropy adapts the FSE entropy primitive to the block codec.
//
// Compression of a block has three useful outcomes, not one: the primitive
// may decide the input is incompressible (send it raw), may observe a single
// repeated symbol (send it run-length encoded), or may produce a compressed
// body. Compress reports these as a tagged Result instead of sentinel
// return values.
package entropy

import (
	"errors"
	"fmt"

	"github.com/klauspost/compress/fse"
)

// compressBoundPad covers the worst-case normalized-count header emitted in
// front of the entropy-coded bitstream.
const compressBoundPad = 512

// MaxCompressedSize returns an upper bound on the compressed size of n
// input bytes.
func MaxCompressedSize(n int) int {
	return compressBoundPad + n + n>>7
}

// Kind labels the outcome of compressing one block.
type Kind uint8

const (
	// KindCompressed means Payload holds the entropy-coded body.
	KindCompressed Kind = iota
	// KindRaw means the input gained nothing from entropy coding and should
	// be stored verbatim.
	KindRaw
	// KindRLE means the input is one symbol repeated and a single byte
	// suffices.
	KindRLE
)

// Result is the outcome of Coder.Compress for one block.
type Result struct {
	Kind Kind
	// Payload is the compressed body when Kind is KindCompressed, nil
	// otherwise. It aliases the coder's scratch buffer and is only valid
	// until the next Compress call.
	Payload []byte
}

// Coder wraps a pair of FSE scratch states sized for one frame. A Coder is
// not safe for concurrent use; blocks of a frame are coded strictly in
// sequence.
type Coder struct {
	comp fse.Scratch
	dec  fse.Scratch
}

// NewCoder returns a coder for blocks of at most blockSize uncompressed
// bytes. The compression scratch is pre-sized so no per-block allocation
// happens on the happy path.
func NewCoder(blockSize int) *Coder {
	c := &Coder{}
	c.comp.Out = make([]byte, 0, MaxCompressedSize(blockSize))
	c.dec.Out = make([]byte, 0, blockSize)
	return c
}

// Compress runs the entropy coder over src and classifies the outcome.
// A compressed body at least as large as the input is reported as KindRaw.
func (c *Coder) Compress(src []byte) (Result, error) {
	out, err := fse.Compress(src, &c.comp)
	switch {
	case errors.Is(err, fse.ErrIncompressible):
		return Result{Kind: KindRaw}, nil
	case errors.Is(err, fse.ErrUseRLE):
		return Result{Kind: KindRLE}, nil
	case err != nil:
		return Result{}, fmt.Errorf("fse compress: %w", err)
	}
	if len(out) >= len(src) {
		return Result{Kind: KindRaw}, nil
	}
	return Result{Kind: KindCompressed, Payload: out}, nil
}

// Decompress decodes an entropy-coded body. dstCap caps the decoded size;
// a body that inflates past it is an error.
func (c *Coder) Decompress(src []byte, dstCap int) ([]byte, error) {
	// The primitive's limit aborts mid-stream; one past the cap keeps a
	// body decoding to exactly dstCap legal, the post-check does the rest.
	c.dec.DecompressLimit = dstCap + 1
	out, err := fse.Decompress(src, &c.dec)
	if err != nil {
		return nil, fmt.Errorf("fse decompress: %w", err)
	}
	if len(out) > dstCap {
		return nil, fmt.Errorf("fse decompress: decoded %d bytes, block limit is %d", len(out), dstCap)
	}
	return out, nil
}
