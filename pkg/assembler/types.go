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
	"strings"
)

type Mode uint
type Format uint
type Flags uint8
type DirectiveType uint
type OperandKind uint
type AddressingMode uint
type RecordType uint

func (mode Mode) String() string {
	if mode == MODE_SIC {
		return "SIC"
	}

	return "SIC/XE"
}

func (mode Mode) MemorySize() uint32 {
	if mode == MODE_SIC {
		return MEMSIZE_SIC
	}

	return MEMSIZE_XE
}

// Number of bytes an instruction of this format occupies.
func (format Format) Width() uint32 {
	switch format {
	case FORMAT_1:
		return 1
	case FORMAT_2:
		return 2
	case FORMAT_4:
		return 4
	}

	return 3
}

func (format Format) String() string {
	switch format {
	case FORMAT_SIC:
		return "SIC"
	case FORMAT_1:
		return "1"
	case FORMAT_2:
		return "2"
	case FORMAT_3:
		return "3"
	case FORMAT_4:
		return "4"
	case FORMAT_BYTE:
		return "BYTE"
	case FORMAT_WORD:
		return "WORD"
	}

	return "<invalid>"
}

// Renders the flags as the six nixbpe bits, most significant first.
func (flags Flags) String() string {
	return fmt.Sprintf("%06b", uint8(flags)&0x3F)
}

type Cursor struct {
	Line   int
	Column int
}

type Fields struct {
	Label    string
	Mnemonic string
	Operand  string
}

type Opcode struct {
	Mnemonic string
	Code     byte
	Format   Format
}

// Operand is the resolved form of an operand field. Value holds the symbol
// address, literal value or first register id depending on Kind; Second holds
// the second register id (or encoded shift count) of a register pair.
type Operand struct {
	Kind       OperandKind
	Value      int64
	Second     int64
	Addressing AddressingMode
	Indexed    bool
	Text       string
}

// Record is one source line as annotated by pass one and completed by pass
// two.
type Record struct {
	Type      RecordType
	Position  Cursor
	Source    string
	Fields    Fields
	Address   uint32
	Directive DirectiveType
	Opcode    Opcode
	Extended  bool
	Width     uint32
	Object    []byte
	Errors    []error
}

type Intermediate struct {
	Name       string
	Start      uint32
	Length     uint32
	Entry      uint32
	EntryLabel string
	Records    []Record
	ErrorFree  bool
}

type Result struct {
	Intermediate
	Mode    Mode
	Symbols SymTable
	Errors  []error
}

type TokenError interface {
	GetPosition() Cursor
}

type RedeclaredLabelError struct {
	Position Cursor
	Received string
}

func (err *RedeclaredLabelError) GetPosition() Cursor {
	return err.Position
}

func (err *RedeclaredLabelError) Error() string {
	return fmt.Sprintf(
		"%02d:%02d: Duplicate symbol '%s'",
		err.Position.Line,
		err.Position.Column,
		err.Received,
	)
}

type UnknownIdentifierError struct {
	Position Cursor
	Received string
}

func (err *UnknownIdentifierError) GetPosition() Cursor {
	return err.Position
}

func (err *UnknownIdentifierError) Error() string {
	return fmt.Sprintf(
		"%02d:%02d: Invalid opcode '%s'",
		err.Position.Line,
		err.Position.Column,
		err.Received,
	)
}

type MalformedLineError struct {
	Position Cursor
	Required int
	Received int
}

func (err *MalformedLineError) GetPosition() Cursor {
	return err.Position
}

func (err *MalformedLineError) Error() string {
	return fmt.Sprintf(
		"%02d:%02d: Malformed line\n\twant:at most %d fields\n\thave:%d",
		err.Position.Line,
		err.Position.Column,
		err.Required,
		err.Received,
	)
}

type InvalidOperandError struct {
	Position Cursor
	Received string
	Reason   string
}

func (err *InvalidOperandError) GetPosition() Cursor {
	return err.Position
}

func (err *InvalidOperandError) Error() string {
	return fmt.Sprintf(
		"%02d:%02d: Invalid operand '%s': %s",
		err.Position.Line,
		err.Position.Column,
		err.Received,
		err.Reason,
	)
}

type MisplacedDirectiveError struct {
	Position Cursor
	Received string
}

func (err *MisplacedDirectiveError) GetPosition() Cursor {
	return err.Position
}

func (err *MisplacedDirectiveError) Error() string {
	return fmt.Sprintf(
		"%02d:%02d: Misplaced directive '%s'",
		err.Position.Line,
		err.Position.Column,
		err.Received,
	)
}

type OversizedBinaryError struct {
	Position Cursor
	Required uint32
	Received uint32
}

func (err *OversizedBinaryError) GetPosition() Cursor {
	return err.Position
}

func (err *OversizedBinaryError) Error() string {
	return fmt.Sprintf(
		"%02d:%02d: Program exceeds address space\n\twant:<= %#x\n\thave:%#x",
		err.Position.Line,
		err.Position.Column,
		err.Required,
		err.Received,
	)
}

type UnknownLabelError struct {
	Position Cursor
	Received string
}

func (err *UnknownLabelError) GetPosition() Cursor {
	return err.Position
}

func (err *UnknownLabelError) Error() string {
	return fmt.Sprintf(
		"%02d:%02d: Unknown label '%s'",
		err.Position.Line,
		err.Position.Column,
		err.Received,
	)
}

type DisplacementRangeError struct {
	Position Cursor
	Received int64
}

func (err *DisplacementRangeError) GetPosition() Cursor {
	return err.Position
}

func (err *DisplacementRangeError) Error() string {
	return fmt.Sprintf(
		"%02d:%02d: Target out of range for PC or base relative addressing"+
			"\n\twant:0..4095 from base\n\thave:%d",
		err.Position.Line,
		err.Position.Column,
		err.Received,
	)
}

// Column (1-based) of field within line, or 1 when the field is absent.
func columnOf(line string, field string) int {
	if field == "" {
		return 1
	}

	if i := strings.Index(line, field); i != -1 {
		return i + 1
	}

	return 1
}

func (err *InvalidOperandError) setPosition(pos Cursor)    { err.Position = pos }
func (err *UnknownLabelError) setPosition(pos Cursor)      { err.Position = pos }
func (err *DisplacementRangeError) setPosition(pos Cursor) { err.Position = pos }
