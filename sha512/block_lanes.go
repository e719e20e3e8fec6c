// Copyright (c) 2025 The Zcash developers
// Distributed under the MIT software license, see the accompanying
// file COPYING or https://www.opensource.org/licenses/mit-license.php .

package sha512

import (
	"github.com/zcash/hashkit/internal/bytestring"
	"github.com/zcash/hashkit/internal/lane64"
)

var _KLanes = func() (k [80]lane64.Lane) {
	for i, v := range _K {
		k[i] = lane64.FromUint64(v)
	}
	return
}()

// blockLanes is block written against 32-bit halves only.
func blockLanes(h *[8]uint64, p []byte) {
	var w [80]lane64.Lane
	in := bytestring.String(p)
	for i := 0; i < 16; i++ {
		in.ReadUint32BE(&w[i].Hi)
		in.ReadUint32BE(&w[i].Lo)
	}
	for i := 16; i < 80; i++ {
		v1 := w[i-2]
		s1 := v1.Rotr(19).Xor(v1.Rotr(61)).Xor(v1.Shr(6))
		v2 := w[i-15]
		s0 := v2.Rotr(1).Xor(v2.Rotr(8)).Xor(v2.Shr(7))
		w[i] = lane64.Add4(w[i-16], s0, w[i-7], s1)
	}

	var s [8]lane64.Lane
	for i := range s {
		s[i] = lane64.FromUint64(h[i])
	}
	a, b, c, d, e, f, g, hh := s[0], s[1], s[2], s[3], s[4], s[5], s[6], s[7]
	for i := 0; i < 80; i++ {
		sigma1 := e.Rotr(14).Xor(e.Rotr(18)).Xor(e.Rotr(41))
		ch := e.And(f).Xor(e.Not().And(g))
		t1 := lane64.Add5(hh, sigma1, ch, _KLanes[i], w[i])
		sigma0 := a.Rotr(28).Xor(a.Rotr(34)).Xor(a.Rotr(39))
		maj := a.And(b).Xor(a.And(c)).Xor(b.And(c))
		t2 := lane64.Add(sigma0, maj)

		hh = g
		g = f
		f = e
		e = lane64.Add(d, t1)
		d = c
		c = b
		b = a
		a = lane64.Add(t1, t2)
	}

	for i, v := range [8]lane64.Lane{a, b, c, d, e, f, g, hh} {
		h[i] = lane64.Add(lane64.FromUint64(h[i]), v).Uint64()
	}
}
