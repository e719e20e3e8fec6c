// Copyright (c) 2025 The Zcash developers
// Distributed under the MIT software license, see the accompanying
// file COPYING or https://www.opensource.org/licenses/mit-license.php .

// Package sha1 implements the SHA-1 hash algorithm. SHA-1 is broken for
// collision resistance; it is kept for HMAC-SHA1 and PBKDF2-HMAC-SHA1
// interoperability.
package sha1

import (
	"encoding/hex"
	"math/bits"

	"github.com/zcash/hashkit/compare"
	"github.com/zcash/hashkit/internal/bytestring"
)

const (
	// BlockSize is the block size of SHA-1 in bytes.
	BlockSize = 64
	// Size is the size of a SHA-1 checksum in bytes.
	Size = 20

	lengthOffset = BlockSize - 8
)

const (
	init0 = 0x67452301
	init1 = 0xefcdab89
	init2 = 0x98badcfe
	init3 = 0x10325476
	init4 = 0xc3d2e1f0
)

// Digest is the running state of a SHA-1 computation. It is finalized by
// the first Sum, Digest or Hex call; later writes are ignored. The zero
// value is ready to use.
type Digest struct {
	h         [5]uint32
	x         [BlockSize]byte
	nx        int
	lo, hi    uint32
	ready     bool // h holds a chaining value
	finalized bool
}

// New returns a new Digest computing SHA-1.
func New() *Digest {
	d := new(Digest)
	d.Reset()
	return d
}

// Sum returns the SHA-1 checksum of data.
func Sum(data []byte) [Size]byte {
	var sum [Size]byte
	d := New()
	d.Write(data)
	copy(sum[:], d.Digest())
	return sum
}

// Reset restores the initial chaining value and discards any input.
func (d *Digest) Reset() {
	d.h = [5]uint32{init0, init1, init2, init3, init4}
	d.nx = 0
	d.lo, d.hi = 0, 0
	d.ready = true
	d.finalized = false
}

// Size returns the digest length, 20 bytes.
func (d *Digest) Size() int { return Size }

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
	if !d.ready {
		d.Reset()
	}
	var carry uint32
	d.lo, carry = bits.Add32(d.lo, uint32(n), 0)
	d.hi += carry + uint32(uint64(n)>>32)

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

// Sum finalizes the digest and appends it to b.
func (d *Digest) Sum(b []byte) []byte {
	d.finalize()
	for _, v := range d.h {
		b = bytestring.AppendUint32BE(b, v)
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
	if !d.ready {
		d.Reset()
	}
	d.finalized = true

	d.x[d.nx] = 0x80
	clear(d.x[d.nx+1:])
	if d.nx >= lengthOffset {
		block(&d.h, d.x[:])
		clear(d.x[:])
	}
	length := bytestring.AppendUint32BE(nil, d.hi<<3|d.lo>>29)
	length = bytestring.AppendUint32BE(length, d.lo<<3)
	copy(d.x[lengthOffset:], length)
	block(&d.h, d.x[:])
	d.nx = 0
}
