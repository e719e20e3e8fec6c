// Copyright (c) 2025 The Zcash developers
// Distributed under the MIT software license, see the accompanying
// file COPYING or https://www.opensource.org/licenses/mit-license.php .

// Package pbkdf2 implements the key derivation function PBKDF2 as defined
// in RFC 8018 (PKCS #5 v2.1), with HMAC over a caller-chosen hash as the
// pseudorandom function.
package pbkdf2

import (
	"hash"

	"github.com/pkg/errors"

	"github.com/zcash/hashkit/hmac"
	"github.com/zcash/hashkit/internal/bytestring"
)

// ErrInvalidParameter is returned for a non-positive iteration count or
// key length.
var ErrInvalidParameter = errors.New("pbkdf2: iterations and key length must be positive")

// Key derives a keyLen-byte key from password and salt by iterating
// HMAC-h iter times per output block.
func Key(h func() hash.Hash, password, salt []byte, iter, keyLen int) ([]byte, error) {
	if iter <= 0 {
		return nil, errors.Wrapf(ErrInvalidParameter, "iterations %d", iter)
	}
	if keyLen <= 0 {
		return nil, errors.Wrapf(ErrInvalidParameter, "key length %d", keyLen)
	}

	prf := hmac.New(h, password)
	hashLen := prf.Size()
	numBlocks := (keyLen + hashLen - 1) / hashLen

	dk := make([]byte, 0, numBlocks*hashLen)
	buf := make([]byte, 0, len(salt)+4)
	t := make([]byte, hashLen)
	for i := 1; i <= numBlocks; i++ {
		// U_1 = PRF(password, salt || INT(i))
		prf.Reset()
		buf = bytestring.AppendUint32BE(append(buf[:0], salt...), uint32(i))
		prf.Write(buf)
		u := prf.Sum(nil)
		copy(t, u)

		// U_n = PRF(password, U_(n-1))
		for n := 2; n <= iter; n++ {
			prf.Reset()
			prf.Write(u)
			u = prf.Sum(u[:0])
			for x := range t {
				t[x] ^= u[x]
			}
		}
		dk = append(dk, t...)
	}
	return dk[:keyLen], nil
}
