// Copyright (c) 2025 The Zcash developers
// Distributed under the MIT software license, see the accompanying
// file COPYING or https://www.opensource.org/licenses/mit-license.php .

package sha1

import (
	"math/bits"

	"github.com/zcash/hashkit/internal/bytestring"
)

const (
	_K0 = 0x5a827999
	_K1 = 0x6ed9eba1
	_K2 = 0x8f1bbcdc
	_K3 = 0xca62c1d6
)

func block(h *[5]uint32, p []byte) {
	var w [80]uint32
	in := bytestring.String(p)
	for i := 0; i < 16; i++ {
		in.ReadUint32BE(&w[i])
	}
	for i := 16; i < 80; i++ {
		w[i] = bits.RotateLeft32(w[i-3]^w[i-8]^w[i-14]^w[i-16], 1)
	}

	a, b, c, d, e := h[0], h[1], h[2], h[3], h[4]
	for i := 0; i < 80; i++ {
		var f, k uint32
		switch {
		case i < 20:
			f = (b & c) | (^b & d)
			k = _K0
		case i < 40:
			f = b ^ c ^ d
			k = _K1
		case i < 60:
			f = (b & c) | (b & d) | (c & d)
			k = _K2
		default:
			f = b ^ c ^ d
			k = _K3
		}
		t := bits.RotateLeft32(a, 5) + f + e + k + w[i]
		a, b, c, d, e = t, a, bits.RotateLeft32(b, 30), c, d
	}

	h[0] += a
	h[1] += b
	h[2] += c
	h[3] += d
	h[4] += e
}
