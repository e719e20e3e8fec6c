// Package bytestring normalizes caller input into the canonical byte
// sequence fed to the digest engines, and provides a small cursor API for
// consuming it block by block.
package bytestring

import (
	"io"

	"github.com/pkg/errors"
)

// ErrUnsupportedInput is returned by From when the value is neither text
// nor byte-like.
var ErrUnsupportedInput = errors.New("input must be a string, byte slice, UTF-16 code units, or io.Reader")

// String represents a string of bytes and provides methods for consuming
// values from it.
type String []byte

// From converts v into a String. Strings are taken as their UTF-8 bytes,
// byte slices pass through unchanged, []uint16 is treated as UTF-16 code
// units and []rune as code points. An io.Reader is read to EOF.
func From(v any) (String, error) {
	switch in := v.(type) {
	case String:
		return in, nil
	case []byte:
		return String(in), nil
	case string:
		return FromText(in), nil
	case []uint16:
		return FromUTF16(in), nil
	case []rune:
		return FromText(string(in)), nil
	case io.Reader:
		b, err := io.ReadAll(in)
		if err != nil {
			return nil, errors.Wrap(err, "reading input")
		}
		return String(b), nil
	}
	return nil, errors.Wrapf(ErrUnsupportedInput, "got %T", v)
}

// FromText returns the UTF-8 encoding of s. Go strings already hold UTF-8,
// so the bytes are copied as they are.
func FromText(s string) String {
	return String(s)
}

// FromUTF16 encodes a sequence of UTF-16 code units as UTF-8. Any surrogate
// unit is combined with the unit that follows it, without checking that the
// pair is well formed; a surrogate at the very end combines with an implicit
// zero unit.
func FromUTF16(units []uint16) String {
	out := make(String, 0, len(units))
	for i := 0; i < len(units); i++ {
		code := uint32(units[i])
		switch {
		case code < 0x80:
			out = append(out, byte(code))
		case code < 0x800:
			out = append(out,
				0xc0|byte(code>>6),
				0x80|byte(code&0x3f))
		case code < 0xd800 || code >= 0xe000:
			out = append(out,
				0xe0|byte(code>>12),
				0x80|byte((code>>6)&0x3f),
				0x80|byte(code&0x3f))
		default:
			i++
			var low uint32
			if i < len(units) {
				low = uint32(units[i])
			}
			code = 0x10000 + ((code&0x3ff)<<10 | low&0x3ff)
			out = append(out,
				0xf0|byte(code>>18),
				0x80|byte((code>>12)&0x3f),
				0x80|byte((code>>6)&0x3f),
				0x80|byte(code&0x3f))
		}
	}
	return out
}

// read advances the string by n bytes and returns them. If fewer than n bytes
// remain, it returns nil.
func (s *String) read(n int) []byte {
	if len(*s) < n {
		return nil
	}

	out := (*s)[:n]
	(*s) = (*s)[n:]
	return out
}

// Next advances the string by up to n bytes and returns them. It returns
// fewer than n bytes only when the string is shorter than n.
func (s *String) Next(n int) []byte {
	if n > len(*s) {
		n = len(*s)
	}
	return s.read(n)
}

// Read reads the next len(p) bytes from the string, or the remainder of the
// string if len(*s) < len(p). It returns the number of bytes read as n. If the
// string is empty it returns an io.EOF error, or a nil error if len(p) == 0.
// Read satisfies io.Reader.
func (s *String) Read(p []byte) (n int, err error) {
	if s.Empty() {
		if len(p) == 0 {
			return 0, nil
		}
		return 0, io.EOF
	}

	n = copy(p, *s)
	if !s.Skip(n) {
		return 0, errors.New("unexpected end of bytestring read")
	}
	return n, nil
}

// Empty reports whether or not the string is empty.
func (s *String) Empty() bool {
	return len(*s) == 0
}

// Skip advances the string by n bytes and reports whether it was successful.
func (s *String) Skip(n int) bool {
	return s.read(n) != nil
}

// ReadBytes reads n bytes into out and advances over them. It reports if the
// read was successful.
func (s *String) ReadBytes(out *[]byte, n int) bool {
	v := s.read(n)
	if v == nil {
		return false
	}
	*out = v
	return true
}

// ReadUint32BE decodes a big-endian, 32-bit value into out and advances over
// it. It reports whether the read was successful.
func (s *String) ReadUint32BE(out *uint32) bool {
	v := s.read(4)
	if v == nil {
		return false
	}
	*out = uint32(v[0])<<24 | uint32(v[1])<<16 | uint32(v[2])<<8 | uint32(v[3])
	return true
}

// ReadUint64BE decodes a big-endian, 64-bit value into out and advances over
// it. It reports whether the read was successful.
func (s *String) ReadUint64BE(out *uint64) bool {
	v := s.read(8)
	if v == nil {
		return false
	}
	*out = uint64(v[0])<<56 | uint64(v[1])<<48 | uint64(v[2])<<40 | uint64(v[3])<<32 |
		uint64(v[4])<<24 | uint64(v[5])<<16 | uint64(v[6])<<8 | uint64(v[7])
	return true
}

// AppendUint32BE appends the big-endian encoding of v to b.
func AppendUint32BE(b []byte, v uint32) []byte {
	return append(b, byte(v>>24), byte(v>>16), byte(v>>8), byte(v))
}

// AppendUint64BE appends the big-endian encoding of v to b.
func AppendUint64BE(b []byte, v uint64) []byte {
	return append(b,
		byte(v>>56), byte(v>>48), byte(v>>40), byte(v>>32),
		byte(v>>24), byte(v>>16), byte(v>>8), byte(v))
}
