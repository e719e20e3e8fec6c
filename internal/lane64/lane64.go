// Copyright (c) 2025 The Zcash developers
// Distributed under the MIT software license, see the accompanying
// file COPYING or https://www.opensource.org/licenses/mit-license.php .

// Package lane64 implements 64-bit unsigned arithmetic on pairs of 32-bit
// halves. It backs the reference SHA-384/512 engine, which must agree bit
// for bit with the native uint64 one.
package lane64

import "math/bits"

// Lane is a 64-bit value held as a high and a low 32-bit half.
type Lane struct {
	Hi, Lo uint32
}

// FromUint64 splits v into its high and low halves.
func FromUint64(v uint64) Lane {
	return Lane{Hi: uint32(v >> 32), Lo: uint32(v)}
}

// Uint64 joins the halves back into one value.
func (a Lane) Uint64() uint64 {
	return uint64(a.Hi)<<32 | uint64(a.Lo)
}

// Add returns a+b mod 2^64, carrying out of the low half into the high half.
func Add(a, b Lane) Lane {
	lo, carry := bits.Add32(a.Lo, b.Lo, 0)
	return Lane{Hi: a.Hi + b.Hi + carry, Lo: lo}
}

// Add4 returns a+b+c+d mod 2^64. The low halves are summed in 64 bits so
// that carries of up to 3 are propagated.
func Add4(a, b, c, d Lane) Lane {
	lo := uint64(a.Lo) + uint64(b.Lo) + uint64(c.Lo) + uint64(d.Lo)
	return Lane{
		Hi: a.Hi + b.Hi + c.Hi + d.Hi + uint32(lo>>32),
		Lo: uint32(lo),
	}
}

// Add5 returns a+b+c+d+e mod 2^64.
func Add5(a, b, c, d, e Lane) Lane {
	lo := uint64(a.Lo) + uint64(b.Lo) + uint64(c.Lo) + uint64(d.Lo) + uint64(e.Lo)
	return Lane{
		Hi: a.Hi + b.Hi + c.Hi + d.Hi + e.Hi + uint32(lo>>32),
		Lo: uint32(lo),
	}
}

// Rotr rotates a right by n bits. For n below 32 bits move between halves
// in place; from 32 upward the halves swap first.
func (a Lane) Rotr(n uint) Lane {
	n &= 63
	if n < 32 {
		return Lane{
			Hi: a.Hi>>n | a.Lo<<(32-n),
			Lo: a.Lo>>n | a.Hi<<(32-n),
		}
	}
	n -= 32
	return Lane{
		Hi: a.Lo>>n | a.Hi<<(32-n),
		Lo: a.Hi>>n | a.Lo<<(32-n),
	}
}

// Shr shifts a right by n bits, filling with zeros.
func (a Lane) Shr(n uint) Lane {
	if n < 32 {
		return Lane{
			Hi: a.Hi >> n,
			Lo: a.Lo>>n | a.Hi<<(32-n),
		}
	}
	return Lane{Lo: a.Hi >> (n - 32)}
}

// Xor, And and Not apply the bitwise operation to both halves.
func (a Lane) Xor(b Lane) Lane { return Lane{Hi: a.Hi ^ b.Hi, Lo: a.Lo ^ b.Lo} }
func (a Lane) And(b Lane) Lane { return Lane{Hi: a.Hi & b.Hi, Lo: a.Lo & b.Lo} }
func (a Lane) Not() Lane       { return Lane{Hi: ^a.Hi, Lo: ^a.Lo} }
