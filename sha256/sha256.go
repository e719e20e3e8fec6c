// Copyright (c) 2025 The Zcash developers
// Distributed under the MIT software license, see the accompanying
// file COPYING or https://www.opensource.org/licenses/mit-license.php .

// Package sha256 implements the SHA-224 and SHA-256 hash algorithms as
// defined in FIPS 180-4. Both variants share one engine and differ only in
// their initial chaining value and in how many words of it are emitted.
//
// Unlike the standard library, a Digest is finalized by the first call to
// Sum, Digest or Hex: the chaining value is frozen from then on and further
// writes are ignored until Reset.
package sha256

import (
	"encoding/hex"
	"math/bits"

	"github.com/zcash/hashkit/compare"
	"github.com/zcash/hashkit/hash32"
	"github.com/zcash/hashkit/internal/bytestring"
)

const (
	// BlockSize is the block size of SHA-224 and SHA-256 in bytes.
	BlockSize = 64
	// Size is the size of a SHA-256 checksum in bytes.
	Size = 32
	// Size224 is the size of a SHA-224 checksum in bytes.
	Size224 = 28

	// the bit length occupies the last 8 bytes of the final block
	lengthOffset = BlockSize - 8
)

// Variant selects the output length of the engine.
type Variant int

const (
	SHA224 Variant = iota
	SHA256
)

type descriptor struct {
	name  string
	iv    [8]uint32
	words int
}

var descriptors = [...]descriptor{
	SHA224: {
		name: "SHA-224",
		iv: [8]uint32{
			0xc1059ed8, 0x367cd507, 0x3070dd17, 0xf70e5939,
			0xffc00b31, 0x68581511, 0x64f98fa7, 0xbefa4fa4,
		},
		words: Size224 / 4,
	},
	SHA256: {
		name: "SHA-256",
		iv: [8]uint32{
			0x6a09e667, 0xbb67ae85, 0x3c6ef372, 0xa54ff53a,
			0x510e527f, 0x9b05688c, 0x1f83d9ab, 0x5be0cd19,
		},
		words: Size / 4,
	},
}

func (v Variant) String() string { return descriptors[v].name }

// Size returns the digest length of the variant in bytes.
func (v Variant) Size() int { return descriptors[v].words * 4 }

// Digest holds the running state of one SHA-224 or SHA-256 computation.
// It implements hash.Hash. A Digest must not be used from more than one
// goroutine at a time. The zero value computes SHA-256.
type Digest struct {
	desc      *descriptor
	h         [8]uint32
	x         [BlockSize]byte
	nx        int
	lo, hi    uint32 // total bytes written, hi counts overflow past 2^32
	finalized bool
}

// New returns a new Digest computing SHA-256.
func New() *Digest {
	return NewVariant(SHA256)
}

// New224 returns a new Digest computing SHA-224.
func New224() *Digest {
	return NewVariant(SHA224)
}

// NewVariant returns a new Digest for the given variant. It panics if v is
// not SHA224 or SHA256.
func NewVariant(v Variant) *Digest {
	d := &Digest{desc: &descriptors[v]}
	d.Reset()
	return d
}

// Sum256 returns the SHA-256 checksum of data.
func Sum256(data []byte) [Size]byte {
	var sum [Size]byte
	d := New()
	d.Write(data)
	d.finalize()
	d.put(sum[:])
	return sum
}

// Sum256Hash returns the SHA-256 checksum of data as a hash32 value.
func Sum256Hash(data []byte) hash32.T {
	return hash32.T(Sum256(data))
}

// Sum224 returns the SHA-224 checksum of data.
func Sum224(data []byte) [Size224]byte {
	var sum [Size224]byte
	d := New224()
	d.Write(data)
	d.finalize()
	d.put(sum[:])
	return sum
}

// Reset restores the variant's initial chaining value and discards any
// input.
func (d *Digest) Reset() {
	if d.desc == nil {
		d.desc = &descriptors[SHA256]
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
	return d.desc.words * 4
}

// BlockSize returns the compression block size, 64 bytes.
func (d *Digest) BlockSize() int { return BlockSize }

// Finalized reports whether the padding has been applied and the chaining
// value frozen.
func (d *Digest) Finalized() bool { return d.finalized }

// Write absorbs p. Once the digest is finalized, Write has no effect. It
// never returns an error.
func (d *Digest) Write(p []byte) (n int, err error) {
	n = len(p)
	if d.finalized {
		return
	}
	if d.desc == nil {
		d.Reset()
	}
	d.count(n)

	in := bytestring.String(p)
	for !in.Empty() {
		d.nx += copy(d.x[d.nx:], in.Next(BlockSize-d.nx))
		if d.nx == BlockSize {
			block(&d.h, d.x[:])
			d.nx = 0
		}
	}
	return
}

func (d *Digest) count(n int) {
	var carry uint32
	d.lo, carry = bits.Add32(d.lo, uint32(n), 0)
	d.hi += carry + uint32(uint64(n)>>32)
}

// Sum finalizes the digest and appends it to b.
func (d *Digest) Sum(b []byte) []byte {
	d.finalize()
	out := make([]byte, d.Size())
	d.put(out)
	return append(b, out...)
}

// Digest finalizes the digest and returns it as a new slice.
func (d *Digest) Digest() []byte {
	return d.Sum(nil)
}

// Hex finalizes the digest and returns it as lowercase hexadecimal.
func (d *Digest) Hex() string {
	return hex.EncodeToString(d.Digest())
}

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
		block(&d.h, d.x[:])
		clear(d.x[:])
	}

	bitsHi := d.hi<<3 | d.lo>>29
	bitsLo := d.lo << 3
	putUint32(d.x[lengthOffset:], bitsHi)
	putUint32(d.x[lengthOffset+4:], bitsLo)
	block(&d.h, d.x[:])
	d.nx = 0
}

func (d *Digest) put(out []byte) {
	for i := 0; i < d.desc.words; i++ {
		putUint32(out[4*i:], d.h[i])
	}
}

func putUint32(b []byte, v uint32) {
	_ = b[3]
	b[0] = byte(v >> 24)
	b[1] = byte(v >> 16)
	b[2] = byte(v >> 8)
	b[3] = byte(v)
}
