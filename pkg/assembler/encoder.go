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

package assembler

import (
	"fmt"

	"github.com/lassandro/gosic/pkg/encoding"
)

// Instruction carries everything the encoder needs to produce the object
// bytes of one statement. Source is the address of the statement itself; it
// is the origin of PC relative displacements.
type Instruction struct {
	Mnemonic string
	Opcode   byte
	Operand  string
	Target   Operand
	Format   Format
	Source   uint32
	Base     uint32
	Index    uint32
}

// AddressingFlags derives the n, i, x and e bits of a format 3/4 instruction,
// or the x bit of a SIC instruction. The b and p bits come from Displacement.
// A format 3/4 instruction without an operand gets n and i only.
func AddressingFlags(inst *Instruction) Flags {
	var flags Flags

	if inst.Target.Kind == OPERAND_NONE &&
		(inst.Format == FORMAT_3 || inst.Format == FORMAT_4) {
		return FLAG_N | FLAG_I
	}

	if inst.Target.Indexed {
		flags |= FLAG_X
	}

	switch inst.Format {
	case FORMAT_SIC:
		return flags
	case FORMAT_4:
		flags |= FLAG_E
	case FORMAT_3:
	default:
		return 0
	}

	switch inst.Target.Addressing {
	case ADDRESSING_IMMEDIATE:
		flags |= FLAG_I
	case ADDRESSING_INDIRECT:
		flags |= FLAG_N
	default:
		flags |= FLAG_N | FLAG_I
	}

	return flags
}

// Displacement computes the address field of inst along with the relative
// flag (FLAG_P or FLAG_B) it was computed against, if any. Only symbolic,
// simple, non-indexed format 3 operands are relative: PC relative when the
// target is within -2048..2047 of the statement, base relative otherwise.
func Displacement(inst *Instruction) (uint32, Flags, error) {
	target := inst.Target

	switch inst.Format {
	case FORMAT_1, FORMAT_2, FORMAT_BYTE:
		return 0, 0, nil
	case FORMAT_WORD:
		return encoding.Mask(target.Value, 24), 0, nil
	}

	if target.Kind == OPERAND_NONE {
		return 0, 0, nil
	}

	bits := addressBits(inst.Format)
	value := target.Value

	if target.Indexed && target.Addressing == ADDRESSING_SIMPLE {
		value += int64(inst.Index)
	}

	if target.Kind == OPERAND_LITERAL ||
		target.Addressing != ADDRESSING_SIMPLE ||
		target.Indexed ||
		inst.Format != FORMAT_3 {
		return encoding.Mask(value, bits), 0, nil
	}

	disp := value - int64(inst.Source)

	if encoding.FitsSigned(disp, 12) {
		return encoding.Mask(disp, 12), FLAG_P, nil
	}

	disp = value - int64(inst.Base)

	if !encoding.FitsUnsigned(disp, 12) {
		return 0, 0, &DisplacementRangeError{Received: disp}
	}

	return encoding.Mask(disp, 12), FLAG_B, nil
}

// Pack lays out the opcode, flags and address field of an instruction in the
// bit layout of its format. For format 2, value and second are the register
// ids. For FORMAT_WORD, value is the 24-bit word.
func Pack(format Format, opcode byte, flags Flags, value uint32, second uint32) []byte {
	switch format {
	case FORMAT_SIC:
		x := byte(0)

		if flags&FLAG_X != 0 {
			x = 0x80
		}

		return []byte{opcode, x | byte(value>>8)&0x7F, byte(value)}

	case FORMAT_1:
		return []byte{opcode}

	case FORMAT_2:
		return []byte{opcode, byte(value&0xF)<<4 | byte(second&0xF)}

	case FORMAT_3:
		return []byte{
			opcode&0xFC | byte(flags>>4)&0x3,
			byte(flags&0xF)<<4 | byte(value>>8)&0xF,
			byte(value),
		}

	case FORMAT_4:
		return []byte{
			opcode&0xFC | byte(flags>>4)&0x3,
			byte(flags&0xF)<<4 | byte(value>>16)&0xF,
			byte(value >> 8),
			byte(value),
		}

	case FORMAT_WORD:
		return []byte{byte(value >> 16), byte(value >> 8), byte(value)}
	}

	panic(fmt.Sprintf("assembler: cannot pack format %s", format))
}

// Encode produces the object bytes of inst. The only reported failure is a
// symbolic target out of reach of both PC and base relative addressing;
// operands are expected to have been resolved and range checked.
func Encode(inst *Instruction) ([]byte, error) {
	if inst.Format == FORMAT_BYTE {
		data, err := byteConstant(inst.Operand)

		if err != nil {
			panic(fmt.Sprintf("assembler: unchecked BYTE operand %q", inst.Operand))
		}

		return data, nil
	}

	if inst.Format == FORMAT_2 {
		switch inst.Target.Kind {
		case OPERAND_REGISTER:
			return Pack(FORMAT_2, inst.Opcode, 0, uint32(inst.Target.Value), 0), nil
		case OPERAND_REGISTER_PAIR:
			return Pack(
				FORMAT_2, inst.Opcode, 0,
				uint32(inst.Target.Value), uint32(inst.Target.Second),
			), nil
		}

		panic(fmt.Sprintf("assembler: %s needs register operands", inst.Mnemonic))
	}

	if inst.Target.Kind == OPERAND_UNRESOLVED {
		panic(fmt.Sprintf("assembler: unresolved operand %q", inst.Operand))
	}

	flags := AddressingFlags(inst)
	value, relative, err := Displacement(inst)

	if err != nil {
		return nil, err
	}

	return Pack(inst.Format, inst.Opcode, flags|relative, value, 0), nil
}

// Uppercase hex rendering of object bytes, two digits per byte.
func HexString(data []byte) string {
	return fmt.Sprintf("%X", data)
}

func addressBits(format Format) uint {
	switch format {
	case FORMAT_SIC:
		return 15
	case FORMAT_4:
		return 20
	}

	return 12
}
