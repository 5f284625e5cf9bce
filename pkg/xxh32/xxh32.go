// Package xxh32 implements the 32-bit variant of the xxHash algorithm.
//
// The frame format stores a truncated XXH32 digest of the uncompressed
// payload in its trailer, so the hash has to be the 32-bit flavor exactly;
// the 64-bit xxHash packages in the ecosystem are not wire compatible.
// The digest is seeded with zero and accumulates incrementally, one payload
// block at a time.
package xxh32

import "math/bits"

const (
	prime1 uint32 = 2654435761
	prime2 uint32 = 2246822519
	prime3 uint32 = 3266489917
	prime4 uint32 = 668265263
	prime5 uint32 = 374761393
)

// Digest is a streaming XXH32 state. The zero value is ready to use and
// equivalent to a freshly Reset digest with seed 0.
type Digest struct {
	v1, v2, v3, v4 uint32
	total          uint64
	buf            [16]byte
	n              int
	started        bool
}

// Reset returns the digest to its initial (seed 0) state.
func (d *Digest) Reset() {
	*d = Digest{}
}

func (d *Digest) init() {
	d.v1 = prime1
	d.v1 += prime2
	d.v2 = prime2
	d.v3 = 0
	d.v4 = 0
	d.v4 -= prime1
	d.started = true
}

// Write absorbs p into the digest. It never fails; the error return exists
// to satisfy io.Writer.
func (d *Digest) Write(p []byte) (int, error) {
	if !d.started {
		d.init()
	}
	written := len(p)
	d.total += uint64(written)

	if d.n > 0 {
		c := copy(d.buf[d.n:], p)
		d.n += c
		if d.n < 16 {
			return written, nil
		}
		d.round(d.buf[:16])
		d.n = 0
		p = p[c:]
	}

	for len(p) >= 16 {
		d.round(p[:16])
		p = p[16:]
	}

	d.n = copy(d.buf[:], p)
	return written, nil
}

func (d *Digest) round(stripe []byte) {
	d.v1 = rol13(d.v1+le32(stripe[0:4])*prime2) * prime1
	d.v2 = rol13(d.v2+le32(stripe[4:8])*prime2) * prime1
	d.v3 = rol13(d.v3+le32(stripe[8:12])*prime2) * prime1
	d.v4 = rol13(d.v4+le32(stripe[12:16])*prime2) * prime1
}

// Sum32 returns the digest of everything written so far. It does not
// consume the state; more data may be written afterwards.
func (d *Digest) Sum32() uint32 {
	var h uint32
	if d.total >= 16 {
		h = rol1(d.v1) + rol7(d.v2) + rol12(d.v3) + rol18(d.v4)
	} else {
		h = prime5
	}
	h += uint32(d.total)

	tail := d.buf[:d.n]
	for len(tail) >= 4 {
		h = rol17(h+le32(tail[:4])*prime3) * prime4
		tail = tail[4:]
	}
	for _, b := range tail {
		h = rol11(h+uint32(b)*prime5) * prime1
	}

	h ^= h >> 15
	h *= prime2
	h ^= h >> 13
	h *= prime3
	h ^= h >> 16
	return h
}

// Checksum is the one-shot form of Digest.
func Checksum(p []byte) uint32 {
	var d Digest
	d.Write(p)
	return d.Sum32()
}

func le32(b []byte) uint32 {
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
}

func rol1(u uint32) uint32  { return bits.RotateLeft32(u, 1) }
func rol7(u uint32) uint32  { return bits.RotateLeft32(u, 7) }
func rol11(u uint32) uint32 { return bits.RotateLeft32(u, 11) }
func rol12(u uint32) uint32 { return bits.RotateLeft32(u, 12) }
func rol13(u uint32) uint32 { return bits.RotateLeft32(u, 13) }
func rol17(u uint32) uint32 { return bits.RotateLeft32(u, 17) }
func rol18(u uint32) uint32 { return bits.RotateLeft32(u, 18) }
