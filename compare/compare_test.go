// Copyright (c) 2025 The Zcash developers
// Distributed under the MIT software license, see the accompanying
// file COPYING or https://www.opensource.org/licenses/mit-license.php .

package compare

import (
	"crypto/subtle"
	"testing"
)

func TestEqualReflexive(t *testing.T) {
	for n := 0; n < 130; n++ {
		a := make([]byte, n)
		for i := range a {
			a[i] = byte(i * 7)
		}
		if !Equal(a, a) {
			t.Fatalf("Equal(a, a) false for length %d", n)
		}
		b := append([]byte(nil), a...)
		if !Equal(a, b) {
			t.Fatalf("Equal(a, copy(a)) false for length %d", n)
		}
	}
	if !Equal(nil, []byte{}) {
		t.Fatal("nil and empty slices should compare equal")
	}
}

func TestEqualSingleByteDifference(t *testing.T) {
	a := make([]byte, 64)
	for i := range a {
		a[i] = byte(i)
	}
	for pos := range a {
		for _, flip := range []byte{0x01, 0x80, 0xff} {
			b := append([]byte(nil), a...)
			b[pos] ^= flip
			if Equal(a, b) {
				t.Fatalf("difference at byte %d (xor %#x) not detected", pos, flip)
			}
			if Equal(a, b) != (subtle.ConstantTimeCompare(a, b) == 1) {
				t.Fatalf("disagrees with crypto/subtle at byte %d", pos)
			}
		}
	}
}

func TestEqualLengthMismatch(t *testing.T) {
	a := []byte{1, 2, 3}
	if Equal(a, a[:2]) {
		t.Fatal("prefix compared equal")
	}
	if Equal(a, append(a[:3:3], 0)) {
		t.Fatal("longer slice compared equal")
	}
	if Equal(nil, []byte{0}) {
		t.Fatal("empty and non-empty compared equal")
	}
}
