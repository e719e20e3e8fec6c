// Copyright (c) 2025 The Zcash developers
// Distributed under the MIT software license, see the accompanying
// file COPYING or https://www.opensource.org/licenses/mit-license.php .

package hashkit

import (
	"encoding/hex"
	"hash"

	"github.com/pkg/errors"

	"github.com/zcash/hashkit/compare"
	"github.com/zcash/hashkit/hmac"
	"github.com/zcash/hashkit/internal/bytestring"
	"github.com/zcash/hashkit/pbkdf2"
)

// Hash is implemented by every digest engine and by HMAC. The first call to
// Sum, Digest, Hex or Equal finalizes it; writes after that are ignored.
type Hash interface {
	hash.Hash
	// Digest finalizes and returns the raw digest.
	Digest() []byte
	// Hex finalizes and returns the digest as lowercase hexadecimal.
	Hex() string
	// Equal finalizes and compares the digest with other in constant time.
	Equal(other []byte) bool
	Finalized() bool
}

// New returns a fresh streaming context for alg.
func New(alg Algorithm) (Hash, error) {
	info, ok := algorithms[alg]
	if !ok {
		return nil, errors.Wrapf(ErrUnsupportedAlgorithm, "algorithm %d", int(alg))
	}
	return info.new(), nil
}

// Update normalizes data and absorbs it into h. See bytestring.From for the
// accepted input types.
func Update(h Hash, data any) error {
	b, err := bytestring.From(data)
	if err != nil {
		return err
	}
	h.Write(b)
	return nil
}

// Digest returns the raw digest of data under alg.
func Digest(alg Algorithm, data any) ([]byte, error) {
	h, err := New(alg)
	if err != nil {
		return nil, err
	}
	if err := Update(h, data); err != nil {
		return nil, err
	}
	return h.Digest(), nil
}

// Hex returns the lowercase hexadecimal digest of data under alg.
func Hex(alg Algorithm, data any) (string, error) {
	sum, err := Digest(alg, data)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(sum), nil
}

// SaltedHex returns the hex digest of salt followed by message.
func SaltedHex(alg Algorithm, message, salt any) (string, error) {
	h, err := New(alg)
	if err != nil {
		return "", err
	}
	if err := Update(h, salt); err != nil {
		return "", errors.Wrap(err, "salt")
	}
	if err := Update(h, message); err != nil {
		return "", errors.Wrap(err, "message")
	}
	return h.Hex(), nil
}

// NewHMAC returns a streaming HMAC context keyed with key.
func NewHMAC(alg Algorithm, key any) (Hash, error) {
	fn, err := alg.HashFunc()
	if err != nil {
		return nil, err
	}
	k, err := bytestring.From(key)
	if err != nil {
		return nil, errors.Wrap(err, "key")
	}
	return hmac.New(fn, k), nil
}

// HMACDigest returns the raw HMAC tag of message under key.
func HMACDigest(alg Algorithm, key, message any) ([]byte, error) {
	mac, err := NewHMAC(alg, key)
	if err != nil {
		return nil, err
	}
	if err := Update(mac, message); err != nil {
		return nil, errors.Wrap(err, "message")
	}
	return mac.Digest(), nil
}

// HMACHex returns the HMAC tag of message under key as lowercase hex.
func HMACHex(alg Algorithm, key, message any) (string, error) {
	tag, err := HMACDigest(alg, key, message)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(tag), nil
}

// PBKDF2 derives a keyLen-byte key from password and salt using HMAC-alg.
func PBKDF2(alg Algorithm, password, salt any, iter, keyLen int) ([]byte, error) {
	fn, err := alg.HashFunc()
	if err != nil {
		return nil, err
	}
	p, err := bytestring.From(password)
	if err != nil {
		return nil, errors.Wrap(err, "password")
	}
	s, err := bytestring.From(salt)
	if err != nil {
		return nil, errors.Wrap(err, "salt")
	}
	return pbkdf2.Key(fn, p, s, iter, keyLen)
}

// Equal compares two digests or tags in constant time.
func Equal(a, b []byte) bool {
	return compare.Equal(a, b)
}
