// Copyright (c) 2025 The Zcash developers
// Distributed under the MIT software license, see the accompanying
// file COPYING or https://www.opensource.org/licenses/mit-license.php .

/*
Package hmac implements the Keyed-Hash Message Authentication Code (HMAC) as
defined in FIPS 198-1 and RFC 2104, over any hash.Hash constructor.

The outer hash is computed once, on the first call to Sum, Digest or Hex,
and the tag is kept from then on. Writes after that point are ignored.
Tags should be checked with Equal (or MAC.Equal), which runs in constant
time:

	mac := hmac.New(func() hash.Hash { return sha256.New() }, key)
	mac.Write(message)
	ok := mac.Equal(receivedTag)
*/
package hmac

import (
	"encoding/hex"
	"hash"

	"github.com/zcash/hashkit/compare"
	"github.com/zcash/hashkit/sha256"
)

const (
	ipadByte = 0x36
	opadByte = 0x5c
)

// MAC is a running HMAC computation. It implements hash.Hash. The zero
// value is HMAC-SHA256 with an empty key.
type MAC struct {
	size         int
	blocksize    int
	ipad, opad   []byte
	inner, outer hash.Hash
	tag          []byte // set on first finalize
}

// New returns a MAC keyed with key over the hash returned by h. A key longer
// than the block size is first replaced by its digest; a shorter one is
// zero-padded to the block size.
func New(h func() hash.Hash, key []byte) *MAC {
	m := new(MAC)
	m.inner = h()
	m.outer = h()
	m.size = m.inner.Size()
	m.blocksize = m.inner.BlockSize()
	m.ipad = make([]byte, m.blocksize)
	m.opad = make([]byte, m.blocksize)
	if len(key) > m.blocksize {
		m.outer.Write(key)
		key = m.outer.Sum(nil)
	}
	copy(m.ipad, key)
	copy(m.opad, key)
	for i := range m.ipad {
		m.ipad[i] ^= ipadByte
		m.opad[i] ^= opadByte
	}
	m.inner.Write(m.ipad)
	return m
}

// setup keys a zero MAC.
func (m *MAC) setup() {
	if m.inner == nil {
		*m = *New(func() hash.Hash { return sha256.New() }, nil)
	}
}

// Size returns the tag length in bytes.
func (m *MAC) Size() int {
	m.setup()
	return m.size
}

// BlockSize returns the block size of the underlying hash.
func (m *MAC) BlockSize() int {
	m.setup()
	return m.blocksize
}

// Finalized reports whether the tag has been computed.
func (m *MAC) Finalized() bool { return m.tag != nil }

// Write absorbs message bytes into the inner hash.
func (m *MAC) Write(p []byte) (n int, err error) {
	if m.tag != nil {
		return len(p), nil
	}
	m.setup()
	return m.inner.Write(p)
}

// Reset discards the message and any computed tag, keeping the key.
func (m *MAC) Reset() {
	m.setup()
	m.inner.Reset()
	m.inner.Write(m.ipad)
	m.tag = nil
}

// Sum finalizes the MAC and appends the tag to b.
func (m *MAC) Sum(b []byte) []byte {
	m.finalize()
	return append(b, m.tag...)
}

// Digest finalizes the MAC and returns the tag as a new slice.
func (m *MAC) Digest() []byte { return m.Sum(nil) }

// Hex finalizes the MAC and returns the tag as lowercase hexadecimal.
func (m *MAC) Hex() string { return hex.EncodeToString(m.Digest()) }

// Equal finalizes the MAC and compares the tag with other in constant time.
func (m *MAC) Equal(other []byte) bool {
	return compare.Equal(m.Digest(), other)
}

func (m *MAC) finalize() {
	if m.tag != nil {
		return
	}
	m.setup()
	in := m.inner.Sum(nil)
	m.outer.Reset()
	m.outer.Write(m.opad)
	m.outer.Write(in)
	m.tag = m.outer.Sum(nil)
}

// Equal compares two MACs for equality without leaking timing information.
func Equal(mac1, mac2 []byte) bool {
	return compare.Equal(mac1, mac2)
}
