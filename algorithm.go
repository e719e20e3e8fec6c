// Copyright (c) 2025 The Zcash developers
// Distributed under the MIT software license, see the accompanying
// file COPYING or https://www.opensource.org/licenses/mit-license.php .

package hashkit

import (
	"hash"
	"strings"

	"github.com/pkg/errors"

	"github.com/zcash/hashkit/sha1"
	"github.com/zcash/hashkit/sha256"
	"github.com/zcash/hashkit/sha512"
)

// ErrUnsupportedAlgorithm is returned when an algorithm name or value does
// not identify one of the supported hashes.
var ErrUnsupportedAlgorithm = errors.New("unsupported hash algorithm")

// Algorithm identifies one of the supported digest algorithms.
type Algorithm int

const (
	SHA1 Algorithm = iota + 1
	SHA224
	SHA256
	SHA384
	SHA512
)

type algorithmInfo struct {
	name      string
	size      int
	blockSize int
	new       func() Hash
}

var algorithms = map[Algorithm]algorithmInfo{
	SHA1:   {"sha1", sha1.Size, sha1.BlockSize, func() Hash { return sha1.New() }},
	SHA224: {"sha224", sha256.Size224, sha256.BlockSize, func() Hash { return sha256.New224() }},
	SHA256: {"sha256", sha256.Size, sha256.BlockSize, func() Hash { return sha256.New() }},
	SHA384: {"sha384", sha512.Size384, sha512.BlockSize, func() Hash { return sha512.New384() }},
	SHA512: {"sha512", sha512.Size, sha512.BlockSize, func() Hash { return sha512.New() }},
}

// Algorithms lists the supported algorithms in ascending digest size.
func Algorithms() []Algorithm {
	return []Algorithm{SHA1, SHA224, SHA256, SHA384, SHA512}
}

// ParseAlgorithm maps a name such as "sha256", "SHA-256" or "sha_256" to
// its Algorithm.
func ParseAlgorithm(name string) (Algorithm, error) {
	norm := strings.ToLower(strings.TrimSpace(name))
	norm = strings.NewReplacer("-", "", "_", "").Replace(norm)
	for _, a := range Algorithms() {
		if algorithms[a].name == norm {
			return a, nil
		}
	}
	return 0, errors.Wrapf(ErrUnsupportedAlgorithm, "%q", name)
}

// Valid reports whether a is a supported algorithm.
func (a Algorithm) Valid() bool {
	_, ok := algorithms[a]
	return ok
}

func (a Algorithm) String() string {
	if info, ok := algorithms[a]; ok {
		return info.name
	}
	return "unknown"
}

// Size returns the digest length in bytes, or 0 for an unsupported value.
func (a Algorithm) Size() int { return algorithms[a].size }

// BlockSize returns the compression block size in bytes, or 0 for an
// unsupported value.
func (a Algorithm) BlockSize() int { return algorithms[a].blockSize }

// HashFunc returns a constructor suitable for hmac.New and pbkdf2.Key.
func (a Algorithm) HashFunc() (func() hash.Hash, error) {
	info, ok := algorithms[a]
	if !ok {
		return nil, errors.Wrapf(ErrUnsupportedAlgorithm, "algorithm %d", int(a))
	}
	return func() hash.Hash { return info.new() }, nil
}

func (a Algorithm) MarshalText() ([]byte, error) {
	if !a.Valid() {
		return nil, errors.Wrapf(ErrUnsupportedAlgorithm, "algorithm %d", int(a))
	}
	return []byte(a.String()), nil
}

func (a *Algorithm) UnmarshalText(text []byte) error {
	parsed, err := ParseAlgorithm(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// New is shorthand for the package-level New(a).
func (a Algorithm) New() (Hash, error) {
	return New(a)
}
