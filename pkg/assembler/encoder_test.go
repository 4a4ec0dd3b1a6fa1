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

package assembler_test

import (
	"errors"
	"testing"

	"github.com/lassandro/gosic/pkg/assembler"
)

// Splits a packed format 3/4 instruction back into its fields.
func decode(data []byte) (opcode byte, flags assembler.Flags, disp uint32) {
	opcode = data[0] & 0xFC
	flags = assembler.Flags(data[0]&0x3)<<4 | assembler.Flags(data[1]>>4)
	disp = uint32(data[1]&0xF)<<8 | uint32(data[2])

	if len(data) == 4 {
		disp = disp<<8 | uint32(data[3])
	}

	return opcode, flags, disp
}

func TestPackRoundTrip(t *testing.T) {
	flagSets := []assembler.Flags{
		assembler.FLAG_N | assembler.FLAG_I | assembler.FLAG_P,
		assembler.FLAG_N | assembler.FLAG_I | assembler.FLAG_B,
		assembler.FLAG_N | assembler.FLAG_I | assembler.FLAG_X | assembler.FLAG_P,
		assembler.FLAG_N | assembler.FLAG_P,
		assembler.FLAG_I | assembler.FLAG_B,
		assembler.FLAG_I,
		assembler.FLAG_N,
	}

	for _, flags := range flagSets {
		for _, disp := range []uint32{0, 1, 0x7FF, 0x800, 0xFFF} {
			data := assembler.Pack(assembler.FORMAT_3, 0x6C, flags, disp, 0)
			opcode, haveFlags, haveDisp := decode(data)

			if len(data) != 3 || opcode != 0x6C || haveFlags != flags || haveDisp != disp {
				t.Fatalf(
					"Format 3 round trip mismatch\n"+
						"want:%#02x %s %#03x\n"+
						"have:%#02x %s %#03x",
					0x6C, flags, disp, opcode, haveFlags, haveDisp,
				)
			}
		}

		flags := flags&^(assembler.FLAG_B|assembler.FLAG_P) | assembler.FLAG_E

		for _, addr := range []uint32{0, 0x12345, 0xFFFFF} {
			data := assembler.Pack(assembler.FORMAT_4, 0x48, flags, addr, 0)
			opcode, haveFlags, haveAddr := decode(data)

			if len(data) != 4 || opcode != 0x48 || haveFlags != flags || haveAddr != addr {
				t.Fatalf(
					"Format 4 round trip mismatch\n"+
						"want:%#02x %s %#05x\n"+
						"have:%#02x %s %#05x",
					0x48, flags, addr, opcode, haveFlags, haveAddr,
				)
			}
		}
	}
}

func symbol(addr int64) assembler.Operand {
	return assembler.Operand{Kind: assembler.OPERAND_SYMBOL, Value: addr}
}

func TestDisplacement(t *testing.T) {
	tests := []struct {
		Name  string
		Inst  assembler.Instruction
		Value uint32
		Flag  assembler.Flags
	}{
		{
			Name:  "PC forward limit",
			Inst:  assembler.Instruction{Format: assembler.FORMAT_3, Source: 0x1000, Target: symbol(0x1000 + 2047)},
			Value: 0x7FF,
			Flag:  assembler.FLAG_P,
		},
		{
			Name:  "PC backward limit",
			Inst:  assembler.Instruction{Format: assembler.FORMAT_3, Source: 0x1000, Target: symbol(0x1000 - 2048)},
			Value: 0x800,
			Flag:  assembler.FLAG_P,
		},
		{
			Name:  "Base window end",
			Inst:  assembler.Instruction{Format: assembler.FORMAT_3, Source: 0x0, Base: 0x1000, Target: symbol(0x1FFF)},
			Value: 0xFFF,
			Flag:  assembler.FLAG_B,
		},
		{
			Name:  "Base forward",
			Inst:  assembler.Instruction{Format: assembler.FORMAT_3, Source: 0x1000, Base: 0x1800, Target: symbol(0x1000 + 2048)},
			Value: 0x000,
			Flag:  assembler.FLAG_B,
		},
		{
			Name:  "Base backward",
			Inst:  assembler.Instruction{Format: assembler.FORMAT_3, Source: 0x2000, Base: 0x1000, Target: symbol(0x2000 - 2049)},
			Value: 0x7FF,
			Flag:  assembler.FLAG_B,
		},
		{
			Name: "Indexed",
			Inst: assembler.Instruction{
				Format: assembler.FORMAT_3, Source: 0x0, Index: 0x10,
				Target: assembler.Operand{Kind: assembler.OPERAND_SYMBOL, Value: 0x123, Indexed: true},
			},
			Value: 0x133,
		},
		{
			Name: "Immediate symbol",
			Inst: assembler.Instruction{
				Format: assembler.FORMAT_3, Source: 0x5000,
				Target: assembler.Operand{
					Kind: assembler.OPERAND_SYMBOL, Value: 0x1ABC,
					Addressing: assembler.ADDRESSING_IMMEDIATE,
				},
			},
			Value: 0xABC,
		},
		{
			Name: "Negative literal",
			Inst: assembler.Instruction{
				Format: assembler.FORMAT_3,
				Target: assembler.Operand{
					Kind: assembler.OPERAND_LITERAL, Value: -1,
					Addressing: assembler.ADDRESSING_IMMEDIATE,
				},
			},
			Value: 0xFFF,
		},
		{
			Name:  "Extended",
			Inst:  assembler.Instruction{Format: assembler.FORMAT_4, Source: 0x0, Target: symbol(0xF1234)},
			Value: 0xF1234,
		},
		{
			Name:  "SIC",
			Inst:  assembler.Instruction{Format: assembler.FORMAT_SIC, Source: 0x0, Target: symbol(0x7FFF)},
			Value: 0x7FFF,
		},
		{
			Name:  "No operand",
			Inst:  assembler.Instruction{Format: assembler.FORMAT_3, Source: 0x1000},
			Value: 0,
		},
	}

	for _, test := range tests {
		t.Run(test.Name, func(t *testing.T) {
			value, flag, err := assembler.Displacement(&test.Inst)

			if err != nil {
				t.Fatal(err)
			}

			if flag == assembler.FLAG_B|assembler.FLAG_P {
				t.Fatal("Both PC and base relative flags set")
			}

			if value != test.Value || flag != test.Flag {
				t.Fatalf(
					"Displacement mismatch\nwant:%#x %s\nhave:%#x %s",
					test.Value, test.Flag, value, flag,
				)
			}
		})
	}
}

// Base relative displacements outside 0..4095 are reported rather than
// truncated to 12 bits.
func TestDisplacementRange(t *testing.T) {
	tests := []struct {
		Name string
		Inst assembler.Instruction
		Disp int64
	}{
		{
			Name: "Past base window",
			Inst: assembler.Instruction{Format: assembler.FORMAT_3, Source: 0x0, Base: 0x0, Target: symbol(0x2000)},
			Disp: 0x2000,
		},
		{
			Name: "Behind base",
			Inst: assembler.Instruction{Format: assembler.FORMAT_3, Source: 0x3000, Base: 0x2000, Target: symbol(0x1000)},
			Disp: -0x1000,
		},
		{
			Name: "One past base window",
			Inst: assembler.Instruction{Format: assembler.FORMAT_3, Source: 0x0, Base: 0x1000, Target: symbol(0x2000)},
			Disp: 0x1000,
		},
	}

	for _, test := range tests {
		t.Run(test.Name, func(t *testing.T) {
			_, _, err := assembler.Displacement(&test.Inst)

			var rangeErr *assembler.DisplacementRangeError

			if !errors.As(err, &rangeErr) {
				t.Fatalf("want:%T\nhave:%v", rangeErr, err)
			}

			if rangeErr.Received != test.Disp {
				t.Fatalf("want:%d\nhave:%d", test.Disp, rangeErr.Received)
			}
		})
	}
}

func TestAddressingFlags(t *testing.T) {
	tests := []struct {
		Name   string
		Format assembler.Format
		Target assembler.Operand
		Flags  assembler.Flags
	}{
		{"Simple", assembler.FORMAT_3, symbol(0), assembler.FLAG_N | assembler.FLAG_I},
		{
			"Immediate", assembler.FORMAT_3,
			assembler.Operand{Kind: assembler.OPERAND_LITERAL, Addressing: assembler.ADDRESSING_IMMEDIATE},
			assembler.FLAG_I,
		},
		{
			"Indirect", assembler.FORMAT_3,
			assembler.Operand{Kind: assembler.OPERAND_SYMBOL, Addressing: assembler.ADDRESSING_INDIRECT},
			assembler.FLAG_N,
		},
		{
			"Indexed", assembler.FORMAT_3,
			assembler.Operand{Kind: assembler.OPERAND_SYMBOL, Indexed: true},
			assembler.FLAG_N | assembler.FLAG_I | assembler.FLAG_X,
		},
		{
			"Extended", assembler.FORMAT_4, symbol(0),
			assembler.FLAG_N | assembler.FLAG_I | assembler.FLAG_E,
		},
		{"No operand", assembler.FORMAT_3, assembler.Operand{}, assembler.FLAG_N | assembler.FLAG_I},
		{"Extended no operand", assembler.FORMAT_4, assembler.Operand{}, assembler.FLAG_N | assembler.FLAG_I},
		{
			"SIC indexed", assembler.FORMAT_SIC,
			assembler.Operand{Kind: assembler.OPERAND_SYMBOL, Indexed: true},
			assembler.FLAG_X,
		},
		{"Format 2", assembler.FORMAT_2, assembler.Operand{Kind: assembler.OPERAND_REGISTER_PAIR}, 0},
		{"Format 1", assembler.FORMAT_1, assembler.Operand{}, 0},
	}

	for _, test := range tests {
		t.Run(test.Name, func(t *testing.T) {
			inst := assembler.Instruction{Format: test.Format, Target: test.Target}

			if have := assembler.AddressingFlags(&inst); have != test.Flags {
				t.Fatalf("want:%s\nhave:%s", test.Flags, have)
			}
		})
	}
}

func TestEncodePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("Encode accepted a format 2 instruction without registers")
		}
	}()

	inst := assembler.Instruction{Mnemonic: "CLEAR", Opcode: 0xB4, Format: assembler.FORMAT_2}
	assembler.Encode(&inst)
}

func TestHexString(t *testing.T) {
	if have := assembler.HexString([]byte{0x03, 0x20, 0xab}); have != "0320AB" {
		t.Fatalf("want:0320AB\nhave:%s", have)
	}

	if have := assembler.HexString(nil); have != "" {
		t.Fatalf("want:<empty>\nhave:%s", have)
	}
}
