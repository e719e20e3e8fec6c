package bytestring

import (
	"bytes"
	"strings"
	"testing"

	"github.com/pkg/errors"
)

func TestString_read(t *testing.T) {
	s := String{}
	if !(s).Empty() {
		t.Fatal("initial string not empty")
	}
	s = String{22, 33, 44}
	if s.Empty() {
		t.Fatal("string unexpectedly empty")
	}
	r := s.read(2)
	if len(r) != 2 {
		t.Fatal("unexpected string length after read()")
	}
	if !bytes.Equal(r, []byte{22, 33}) {
		t.Fatal("miscompare mismatch after read()")
	}
	if s.read(2) != nil {
		t.Fatal("unexpected successful too-large read()")
	}
	r = s.read(1)
	if !bytes.Equal(r, []byte{44}) {
		t.Fatal("miscompare after read()")
	}
	if s.read(1) != nil {
		t.Fatal("unexpected successful too-large read()")
	}
}

func TestString_Next(t *testing.T) {
	s := String{1, 2, 3, 4, 5}
	if got := s.Next(3); !bytes.Equal(got, []byte{1, 2, 3}) {
		t.Fatalf("Next(3) = %v", got)
	}
	if got := s.Next(10); !bytes.Equal(got, []byte{4, 5}) {
		t.Fatalf("Next(10) = %v", got)
	}
	if !s.Empty() {
		t.Fatal("string not empty after consuming everything")
	}
	if got := s.Next(1); len(got) != 0 {
		t.Fatalf("Next on empty string returned %v", got)
	}
}

func TestString_Read(t *testing.T) {
	s := String{22, 33, 44}
	b := make([]byte, 10)
	n, err := s.Read(b)
	if err != nil {
		t.Fatal("Read() failed")
	}
	if n != 3 {
		t.Fatal("Read() returned incorrect length")
	}
	if !bytes.Equal(b[:3], []byte{22, 33, 44}) {
		t.Fatal("miscompare after Read()")
	}

	// s should now be empty
	n, err = s.Read(b)
	if err == nil {
		t.Fatal("Read() unexpectedly succeeded")
	}
	if n != 0 {
		t.Fatal("Read() failed as expected but returned incorrect length")
	}
	n, err = s.Read([]byte{})
	if err != nil {
		t.Fatal("Read() failed")
	}
	if n != 0 {
		t.Fatal("Read() returned non-zero length")
	}
}

func TestString_Skip(t *testing.T) {
	s := String{22, 33, 44}
	if !s.Skip(1) {
		t.Fatal("Skip() failed")
	}
	if !bytes.Equal(s, []byte{33, 44}) {
		t.Fatal("miscompare after Skip()")
	}
	if s.Skip(3) {
		t.Fatal("Skip() unexpectedly succeeded")
	}
	if !s.Skip(0) {
		t.Fatal("Skip(0) failed")
	}
}

func TestString_ReadBytes(t *testing.T) {
	s := String{22, 33, 44}
	var b []byte
	if !s.ReadBytes(&b, 2) {
		t.Fatal("ReadBytes() failed")
	}
	if !bytes.Equal(b, []byte{22, 33}) {
		t.Fatal("miscompare after ReadBytes()")
	}
	if s.ReadBytes(&b, 2) {
		t.Fatal("ReadBytes() unexpected success")
	}
}

func TestString_ReadUint32BE(t *testing.T) {
	s := String{0x01, 0x02, 0x03, 0x04, 0xff}
	var v uint32
	if !s.ReadUint32BE(&v) {
		t.Fatal("ReadUint32BE() failed")
	}
	if v != 0x01020304 {
		t.Fatalf("ReadUint32BE() = %#x", v)
	}
	if s.ReadUint32BE(&v) {
		t.Fatal("ReadUint32BE() unexpectedly succeeded with one byte left")
	}
}

func TestString_ReadUint64BE(t *testing.T) {
	s := String{1, 2, 3, 4, 5, 6, 7, 8}
	var v uint64
	if !s.ReadUint64BE(&v) {
		t.Fatal("ReadUint64BE() failed")
	}
	if v != 0x0102030405060708 {
		t.Fatalf("ReadUint64BE() = %#x", v)
	}
}

func TestAppendBE(t *testing.T) {
	got := AppendUint32BE([]byte{0xaa}, 1)
	if !bytes.Equal(got, []byte{0xaa, 0, 0, 0, 1}) {
		t.Fatalf("AppendUint32BE = %x", got)
	}
	got = AppendUint64BE(nil, 0x0102030405060708)
	if !bytes.Equal(got, []byte{1, 2, 3, 4, 5, 6, 7, 8}) {
		t.Fatalf("AppendUint64BE = %x", got)
	}
}

var utf16Tests = []struct {
	units []uint16
	want  string
}{
	/* 00 */ {[]uint16{}, ""},
	/* 01 */ {[]uint16{'a', 'b', 'c'}, "abc"},
	/* 02 */ {[]uint16{0x00e9}, "\u00e9"},
	/* 03 */ {[]uint16{0x07ff}, "\u07ff"},
	/* 04 */ {[]uint16{0x0800}, "\u0800"},
	/* 05 */ {[]uint16{0x20ac}, "\u20ac"},
	/* 06 */ {[]uint16{0xd7ff}, "\ud7ff"},
	/* 07 */ {[]uint16{0xe000}, "\ue000"},
	/* 08 */ {[]uint16{0xffff}, "\uffff"},
	/* 09 */ {[]uint16{0xd83d, 0xde00}, "\U0001f600"},
	/* 10 */ {[]uint16{'x', 0xd834, 0xdd1e, 'y'}, "x\U0001d11ey"},
}

func TestFromUTF16(t *testing.T) {
	for i, tt := range utf16Tests {
		got := FromUTF16(tt.units)
		if !bytes.Equal(got, []byte(tt.want)) {
			t.Fatalf("test %d: got %x want %x", i, []byte(got), []byte(tt.want))
		}
	}
}

func TestFromUTF16TrailingSurrogate(t *testing.T) {
	// A lone high surrogate at the end combines with an implicit zero unit.
	got := FromUTF16([]uint16{0xd800})
	want := []byte{0xf0, 0x90, 0x80, 0x80}
	if !bytes.Equal(got, want) {
		t.Fatalf("got %x want %x", []byte(got), want)
	}
}

func TestFromUTF16LoneLowSurrogate(t *testing.T) {
	// A low surrogate is not validated; it pairs with the next unit.
	got := FromUTF16([]uint16{0xdc00, 'a'})
	want := FromUTF16([]uint16{0xd800, 'a'})
	if !bytes.Equal(got, want) {
		t.Fatalf("got %x want %x", []byte(got), []byte(want))
	}
	if len(got) != 4 {
		t.Fatalf("expected one 4-byte sequence, got %x", []byte(got))
	}
}

func TestFrom(t *testing.T) {
	raw := []byte{0, 1, 2, 0xff}
	for _, in := range []any{
		"héllo",
		[]byte("héllo"),
		String("héllo"),
		[]rune("héllo"),
		[]uint16{'h', 0xe9, 'l', 'l', 'o'},
		strings.NewReader("héllo"),
	} {
		got, err := From(in)
		if err != nil {
			t.Fatalf("From(%T) failed: %v", in, err)
		}
		if string(got) != "héllo" {
			t.Fatalf("From(%T) = %q", in, got)
		}
	}

	got, err := From(raw)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, raw) {
		t.Fatal("byte input not passed through unchanged")
	}
}

func TestFromUnsupported(t *testing.T) {
	for _, in := range []any{42, 3.5, nil, struct{}{}, []int{1, 2}} {
		got, err := From(in)
		if err == nil {
			t.Fatalf("From(%T) unexpectedly succeeded", in)
		}
		if errors.Cause(err) != ErrUnsupportedInput {
			t.Fatalf("From(%T) returned %v, want ErrUnsupportedInput", in, err)
		}
		if got != nil {
			t.Fatalf("From(%T) returned partial output", in)
		}
	}
}
