// Copyright (c) 2025 The Zcash developers
// Distributed under the MIT software license, see the accompanying
// file COPYING or https://www.opensource.org/licenses/mit-license.php .

package hash32

import (
	"encoding/hex"

	"github.com/pkg/errors"

	"github.com/zcash/hashkit/compare"
)

// This type is for any kind of 32-byte digest, such as a SHA-256 checksum
// or a 32-byte derived key. Variables of this type are passed around and
// returned by value (treat like an integer).
type T [32]byte

// An all-zero value is taken to mean an unset digest.
var Nil = [32]byte{}

// ErrLength is returned by Decode when the input is not 32 bytes long.
var ErrLength = errors.New("hash32: length is not 32 bytes")

// FromSlice converts a slice to a hash32. If the slice is too long,
// the return is only the first 32 bytes; if the slice is too short,
// the remaining bytes in the return value are zeros.
func FromSlice(arg []byte) T {
	var r T
	copy(r[:], arg)
	return r
}

// ToSlice converts a hash32 to a byte slice.
func ToSlice(arg T) []byte {
	return arg[:]
}

// Reverse the given hash, returning a new value; the input is unchanged.
func Reverse(arg T) T {
	r := T{}
	for i := range 32 {
		r[i] = arg[32-1-i]
	}
	return r
}

// Equal compares two digests in constant time.
func Equal(a, b T) bool {
	return compare.Equal(a[:], b[:])
}

func Decode(s string) (T, error) {
	r := T{}
	hash, err := hex.DecodeString(s)
	if err != nil {
		return r, errors.Wrap(err, "hash32: decoding hex")
	}
	if len(hash) != 32 {
		return r, ErrLength
	}
	return T(hash), nil
}

func Encode(arg T) string {
	return hex.EncodeToString(ToSlice(arg))
}
