// Copyright (C) 2021  Antonio Lassandro

// This program is free software: you can redistribute it and/or modify it
// under the terms of the GNU General Public License as published by the Free
// Software Foundation, either version 3 of the License, or (at your option)
// any later version.

// This program is distributed in the hope that it will be useful, but WITHOUT
// ANY WARRANTY; without even the implied warranty of MERCHANTABILITY or
// FITNESS FOR A PARTICULAR PURPOSE.  See the GNU General Public License for
// more details.

// You should have received a copy of the GNU General Public License along
// with this program.  If not, see <http://www.gnu.org/licenses/>.

package encoding_test

import (
	"bytes"
	"testing"

	"github.com/lassandro/gosic/pkg/encoding"
)

func TestDecodeHex(t *testing.T) {
	tests := []struct {
		Input  string
		Output uint32
		Fail   bool
	}{
		{"1000", 0x1000, false},
		{"x1000", 0x1000, false},
		{"0x1000", 0x1000, false},
		{"FFFFF", 0xFFFFF, false},
		{"1x00", 0, true},
		{"ZZZ", 0, true},
		{"", 0, true},
	}

	for _, test := range tests {
		have, err := encoding.DecodeHex(test.Input)

		if (err != nil) != test.Fail || have != test.Output {
			t.Fatalf(
				"DecodeHex(%q)\nwant:%#x fail:%t\nhave:%#x err:%v",
				test.Input, test.Output, test.Fail, have, err,
			)
		}
	}
}

func TestDecodeInt(t *testing.T) {
	for input, want := range map[string]int64{"0": 0, "-5": -5, "+12": 12, "4096": 4096} {
		if have, err := encoding.DecodeInt(input); err != nil || have != want {
			t.Fatalf("DecodeInt(%q)\nwant:%d\nhave:%d err:%v", input, want, have, err)
		}
	}

	for _, input := range []string{"#5", "x10", "ONE", ""} {
		if _, err := encoding.DecodeInt(input); err == nil {
			t.Fatalf("DecodeInt(%q) accepted a non-decimal value", input)
		}
	}
}

func TestDecodeConstant(t *testing.T) {
	tests := []struct {
		Input  string
		Output []byte
	}{
		{"C'EOF'", []byte("EOF")},
		{"X'F1'", []byte{0xF1}},
		{"X'ABC'", []byte{0x0A, 0xBC}},
		{"X'05'", []byte{0x05}},
	}

	for _, test := range tests {
		have, err := encoding.DecodeConstant(test.Input)

		if err != nil || !bytes.Equal(have, test.Output) {
			t.Fatalf(
				"DecodeConstant(%q)\nwant:% X\nhave:% X err:%v",
				test.Input, test.Output, have, err,
			)
		}
	}

	for _, input := range []string{"C''", "X'G1'", "Y'01'", "C'ABC", "5"} {
		if _, err := encoding.DecodeConstant(input); err == nil {
			t.Fatalf("DecodeConstant(%q) accepted a malformed constant", input)
		}
	}
}

func TestBitFields(t *testing.T) {
	if have := encoding.Mask(-3, 12); have != 0xFFD {
		t.Fatalf("Mask(-3, 12)\nwant:0xffd\nhave:%#x", have)
	}

	if have := encoding.PackBigEndian([]byte{0x41, 0x42}); have != 0x4142 {
		t.Fatalf("PackBigEndian\nwant:0x4142\nhave:%#x", have)
	}

	if !encoding.FitsSigned(2047, 12) || encoding.FitsSigned(2048, 12) ||
		!encoding.FitsSigned(-2048, 12) || encoding.FitsSigned(-2049, 12) {
		t.Fatal("FitsSigned 12-bit bounds")
	}

	if !encoding.FitsUnsigned(4095, 12) || encoding.FitsUnsigned(4096, 12) ||
		encoding.FitsUnsigned(-1, 12) {
		t.Fatal("FitsUnsigned 12-bit bounds")
	}
}
