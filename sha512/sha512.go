// Copyright (c) 2025 The Zcash developers
// Distributed under the MIT software license, see the accompanying
// file COPYING or https://www.opensource.org/licenses/mit-license.php .

// Package sha512 implements the SHA-384 and SHA-512 hash algorithms as
// defined in FIPS 180-4.
//
// Two compression functions are provided: the default one works on native
// uint64 lanes, the one selected by NewLanes emulates every lane with two
// 32-bit halves. Both produce identical digests.
package sha512

import (
	"encoding/hex"
	"math/bits"

	"github.com/zcash/hashkit/compare"
	"github.com/zcash/hashkit/internal/bytestring"
)

const (
	// BlockSize is the block size of SHA-384 and SHA-512 in bytes.
	BlockSize = 128
	// Size is the size of a SHA-512 checksum in bytes.
	Size = 64
	// Size384 is the size of a SHA-384 checksum in bytes.
	Size384 = 48

	// the 128-bit bit length occupies the last 16 bytes of the final block
	lengthOffset = BlockSize - 16
)

// Variant selects the output length of the engine.
type Variant int

const (
	SHA384 Variant = iota
	SHA512
)

type descriptor struct {
	name  string
	iv    [8]uint64
	lanes int
}

var descriptors = [...]descriptor{
	SHA384: {
		name: "SHA-384",
		iv: [8]uint64{
			0xcbbb9d5dc1059ed8, 0x629a292a367cd507, 0x9159015a3070dd17, 0x152fecd8f70e5939,
			0x67332667ffc00b31, 0x8eb44a8768581511, 0xdb0c2e0d64f98fa7, 0x47b5481dbefa4fa4,
		},
		lanes: Size384 / 8,
	},
	SHA512: {
		name: "SHA-512",
		iv: [8]uint64{
			0x6a09e667f3bcc908, 0xbb67ae8584caa73b, 0x3c6ef372fe94f82b, 0xa54ff53a5f1d36f1,
			0x510e527fade682d1, 0x9b05688c2b3e6c1f, 0x1f83d9abfb41bd6b, 0x5be0cd19137e2179,
		},
		lanes: Size / 8,
	},
}

func (v Variant) String() string { return descriptors[v].name }

// Size returns the digest length of the variant in bytes.
func (v Variant) Size() int { return descriptors[v].lanes * 8 }

// Digest holds the running state of one SHA-384 or SHA-512 computation.
// The first call to Sum, Digest or Hex finalizes it; later writes are
// ignored until Reset. The zero value computes SHA-512 with the native
// compression function.
type Digest struct {
	desc      *descriptor
	compress  func(h *[8]uint64, p []byte)
	h         [8]uint64
	x         [BlockSize]byte
	nx        int
	lo, hi    uint64 // total bytes written, hi counts overflow past 2^64
	finalized bool
}

// New returns a new Digest computing SHA-512.
func New() *Digest { return NewVariant(SHA512) }

// New384 returns a new Digest computing SHA-384.
func New384() *Digest { return NewVariant(SHA384) }

// NewVariant returns a new Digest for v using native 64-bit arithmetic.
func NewVariant(v Variant) *Digest {
	return newDigest(v, block)
}

// NewLanes returns a new Digest for v whose compression function works on
// pairs of 32-bit halves.
func NewLanes(v Variant) *Digest {
	return newDigest(v, blockLanes)
}

func newDigest(v Variant, compress func(*[8]uint64, []byte)) *Digest {
	d := &Digest{desc: &descriptors[v], compress: compress}
	d.Reset()
	return d
}

// Sum512 returns the SHA-512 checksum of data.
func Sum512(data []byte) [Size]byte {
	var sum [Size]byte
	d := New()
	d.Write(data)
	copy(sum[:], d.Digest())
	return sum
}

// Sum384 returns the SHA-384 checksum of data.
func Sum384(data []byte) [Size384]byte {
	var sum [Size384]byte
	d := New384()
	d.Write(data)
	copy(sum[:], d.Digest())
	return sum
}

// Reset restores the variant's initial chaining value and discards any
// input.
func (d *Digest) Reset() {
	if d.desc == nil {
		d.desc = &descriptors[SHA512]
	}
	if d.compress == nil {
		d.compress = block
	}
	d.h = d.desc.iv
	d.nx = 0
	d.lo, d.hi = 0, 0
	d.finalized = false
}

// Size returns the digest length of the variant in bytes.
func (d *Digest) Size() int {
	if d.desc == nil {
		return Size
	}
	return d.desc.lanes * 8
}

// BlockSize returns the compression block size, 128 bytes.
func (d *Digest) BlockSize() int { return BlockSize }

// Finalized reports whether the padding has been applied and the chaining
// value frozen.
func (d *Digest) Finalized() bool { return d.finalized }

// Write absorbs p. It has no effect once the digest is finalized and never
// returns an error.
func (d *Digest) Write(p []byte) (n int, err error) {
	n = len(p)
	if d.finalized {
		return
	}
	if d.desc == nil {
		d.Reset()
	}
	var carry uint64
	d.lo, carry = bits.Add64(d.lo, uint64(n), 0)
	d.hi += carry

	in := bytestring.String(p)
	for !in.Empty() {
		d.nx += copy(d.x[d.nx:], in.Next(BlockSize-d.nx))
		if d.nx == BlockSize {
			d.compress(&d.h, d.x[:])
			d.nx = 0
		}
	}
	return
}

// Sum finalizes the digest and appends it to b.
func (d *Digest) Sum(b []byte) []byte {
	d.finalize()
	for _, v := range d.h[:d.desc.lanes] {
		b = bytestring.AppendUint64BE(b, v)
	}
	return b
}

// Digest finalizes the digest and returns it as a new slice.
func (d *Digest) Digest() []byte { return d.Sum(nil) }

// Hex finalizes the digest and returns it as lowercase hexadecimal.
func (d *Digest) Hex() string { return hex.EncodeToString(d.Digest()) }

// Equal finalizes the digest and compares it with other in constant time.
func (d *Digest) Equal(other []byte) bool {
	return compare.Equal(d.Digest(), other)
}

func (d *Digest) finalize() {
	if d.finalized {
		return
	}
	if d.desc == nil {
		d.Reset()
	}
	d.finalized = true

	d.x[d.nx] = 0x80
	clear(d.x[d.nx+1:])
	if d.nx >= lengthOffset {
		d.compress(&d.h, d.x[:])
		clear(d.x[:])
	}

	length := bytestring.AppendUint64BE(nil, d.hi<<3|d.lo>>61)
	length = bytestring.AppendUint64BE(length, d.lo<<3)
	copy(d.x[lengthOffset:], length)
	d.compress(&d.h, d.x[:])
	d.nx = 0
}
