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

const (
	MODE_SIC Mode = iota
	MODE_XE
)

const (
	FORMAT_SIC Format = iota
	FORMAT_1
	FORMAT_2
	FORMAT_3
	FORMAT_4
	FORMAT_BYTE
	FORMAT_WORD
)

// nixbpe addressing flags, bit positions as they appear in the six flag bits
// of a format 3/4 instruction.
const (
	FLAG_N Flags = 0x20
	FLAG_I Flags = 0x10
	FLAG_X Flags = 0x08
	FLAG_B Flags = 0x04
	FLAG_P Flags = 0x02
	FLAG_E Flags = 0x01
)

const (
	DIRECTIVE_INVALID DirectiveType = iota
	DIRECTIVE_START
	DIRECTIVE_END
	DIRECTIVE_BYTE
	DIRECTIVE_WORD
	DIRECTIVE_RESB
	DIRECTIVE_RESW
	DIRECTIVE_BASE
)

const (
	OPERAND_NONE OperandKind = iota
	OPERAND_SYMBOL
	OPERAND_LITERAL
	OPERAND_REGISTER
	OPERAND_REGISTER_PAIR
	OPERAND_UNRESOLVED
)

const (
	ADDRESSING_SIMPLE AddressingMode = iota
	ADDRESSING_IMMEDIATE
	ADDRESSING_INDIRECT
)

const (
	RECORD_COMMENT RecordType = iota
	RECORD_INSTRUCTION
	RECORD_DIRECTIVE
	RECORD_INVALID
)

const (
	COMMENT_MARKER   = '.'
	EXTENDED_MARKER  = '+'
	IMMEDIATE_MARKER = '#'
	INDIRECT_MARKER  = '@'
	INDEX_SUFFIX     = ",X"

	MAX_SYMBOL_LEN = 6
)

const (
	MEMSIZE_SIC uint32 = 1 << 15
	MEMSIZE_XE  uint32 = 1 << 20
)
