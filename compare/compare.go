// Copyright (c) 2025 The Zcash developers
// Distributed under the MIT software license, see the accompanying
// file COPYING or https://www.opensource.org/licenses/mit-license.php .

// Package compare checks digests and MAC tags for equality without leaking,
// through timing, where the first mismatching byte is.
package compare

// Equal reports whether a and b hold the same bytes. Slices of different
// length are unequal straight away; the length of a digest is not secret.
// Otherwise every byte pair is visited, so the running time depends only on
// the length.
func Equal(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	var acc byte
	for i := range a {
		acc |= a[i] ^ b[i]
	}
	return acc == 0
}
