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

import "strings"

// Directory maps mnemonics to opcodes for one instruction set. Directories are
// built once and never modified.
type Directory struct {
	mode    Mode
	opcodes map[string]Opcode
}

var registers = map[string]byte{
	"A":  0,
	"X":  1,
	"L":  2,
	"B":  3,
	"S":  4,
	"T":  5,
	"F":  6,
	"PC": 8,
	"SW": 9,
}

var xeOpcodes = []Opcode{
	{"ADD", 0x18, FORMAT_3},
	{"ADDF", 0x58, FORMAT_3},
	{"ADDR", 0x90, FORMAT_2},
	{"AND", 0x40, FORMAT_3},
	{"CLEAR", 0xB4, FORMAT_2},
	{"COMP", 0x28, FORMAT_3},
	{"COMPF", 0x88, FORMAT_3},
	{"COMPR", 0xA0, FORMAT_2},
	{"DIV", 0x24, FORMAT_3},
	{"DIVF", 0x64, FORMAT_3},
	{"DIVR", 0x9C, FORMAT_2},
	{"FIX", 0xC4, FORMAT_1},
	{"FLOAT", 0xC0, FORMAT_1},
	{"HIO", 0xF4, FORMAT_1},
	{"J", 0x3C, FORMAT_3},
	{"JEQ", 0x30, FORMAT_3},
	{"JGT", 0x34, FORMAT_3},
	{"JLT", 0x38, FORMAT_3},
	{"JSUB", 0x48, FORMAT_3},
	{"LDA", 0x00, FORMAT_3},
	{"LDB", 0x68, FORMAT_3},
	{"LDCH", 0x50, FORMAT_3},
	{"LDF", 0x70, FORMAT_3},
	{"LDL", 0x08, FORMAT_3},
	{"LDS", 0x6C, FORMAT_3},
	{"LDT", 0x74, FORMAT_3},
	{"LDX", 0x04, FORMAT_3},
	{"LPS", 0xD0, FORMAT_3},
	{"MUL", 0x20, FORMAT_3},
	{"MULF", 0x60, FORMAT_3},
	{"MULR", 0x98, FORMAT_2},
	{"NORM", 0xC8, FORMAT_1},
	{"OR", 0x44, FORMAT_3},
	{"RD", 0xD8, FORMAT_3},
	{"RMO", 0xAC, FORMAT_2},
	{"RSUB", 0x4C, FORMAT_3},
	{"SHIFTL", 0xA4, FORMAT_2},
	{"SHIFTR", 0xA8, FORMAT_2},
	{"SIO", 0xF0, FORMAT_1},
	{"SSK", 0xEC, FORMAT_3},
	{"STA", 0x0C, FORMAT_3},
	{"STB", 0x78, FORMAT_3},
	{"STCH", 0x54, FORMAT_3},
	{"STF", 0x80, FORMAT_3},
	{"STI", 0xD4, FORMAT_3},
	{"STL", 0x14, FORMAT_3},
	{"STS", 0x7C, FORMAT_3},
	{"STSW", 0xE8, FORMAT_3},
	{"STT", 0x84, FORMAT_3},
	{"STX", 0x10, FORMAT_3},
	{"SUB", 0x1C, FORMAT_3},
	{"SUBF", 0x5C, FORMAT_3},
	{"SUBR", 0x94, FORMAT_2},
	{"SVC", 0xB0, FORMAT_2},
	{"TD", 0xE0, FORMAT_3},
	{"TIO", 0xF8, FORMAT_1},
	{"TIX", 0x2C, FORMAT_3},
	{"TIXR", 0xB8, FORMAT_2},
	{"WD", 0xDC, FORMAT_3},
}

// The base machine has no register-to-register or single byte instructions;
// every instruction it knows is a 3 byte SIC format instruction.
var sicMnemonics = []string{
	"ADD", "AND", "COMP", "DIV", "J", "JEQ", "JGT", "JLT", "JSUB", "LDA",
	"LDCH", "LDL", "LDX", "LPS", "MUL", "OR", "RD", "RSUB", "SSK", "STA",
	"STCH", "STI", "STL", "STSW", "STX", "SUB", "TD", "TIX", "WD",
}

var sicDirectory, xeDirectory = buildDirectories()

func buildDirectories() (*Directory, *Directory) {
	xe := &Directory{MODE_XE, make(map[string]Opcode, len(xeOpcodes))}

	for _, opcode := range xeOpcodes {
		xe.opcodes[opcode.Mnemonic] = opcode
	}

	sic := &Directory{MODE_SIC, make(map[string]Opcode, len(sicMnemonics))}

	for _, mnemonic := range sicMnemonics {
		opcode := xe.opcodes[mnemonic]
		opcode.Format = FORMAT_SIC
		sic.opcodes[mnemonic] = opcode
	}

	return sic, xe
}

func DirectoryFor(mode Mode) *Directory {
	if mode == MODE_SIC {
		return sicDirectory
	}

	return xeDirectory
}

func (dir *Directory) Mode() Mode {
	return dir.mode
}

func (dir *Directory) Lookup(mnemonic string) (Opcode, bool) {
	opcode, ok := dir.opcodes[mnemonic]
	return opcode, ok
}

// Resolves an extended format mnemonic such as +LDA. Only format 3
// instructions of the extended machine have a format 4 variant.
func (dir *Directory) LookupExtended(mnemonic string) (Opcode, bool) {
	if dir.mode != MODE_XE || len(mnemonic) < 2 || !isExtended(mnemonic) {
		return Opcode{}, false
	}

	opcode, ok := dir.opcodes[mnemonic[1:]]

	if !ok || opcode.Format != FORMAT_3 {
		return Opcode{}, false
	}

	opcode.Format = FORMAT_4
	return opcode, true
}

// Resolves a mnemonic in either its plain or extended form.
func (dir *Directory) Resolve(mnemonic string) (Opcode, bool) {
	if opcode, ok := dir.Lookup(mnemonic); ok {
		return opcode, true
	}

	return dir.LookupExtended(mnemonic)
}

func (dir *Directory) Len() int {
	return len(dir.opcodes)
}

func LookupRegister(name string) (byte, bool) {
	reg, ok := registers[name]
	return reg, ok
}

func parseDirective(ident string) DirectiveType {
	switch ident {
	case "START":
		return DIRECTIVE_START
	case "END":
		return DIRECTIVE_END
	case "BYTE":
		return DIRECTIVE_BYTE
	case "WORD":
		return DIRECTIVE_WORD
	case "RESB":
		return DIRECTIVE_RESB
	case "RESW":
		return DIRECTIVE_RESW
	case "BASE":
		return DIRECTIVE_BASE
	}

	return DIRECTIVE_INVALID
}

func isExtended(mnemonic string) bool {
	return strings.HasPrefix(mnemonic, string(EXTENDED_MARKER))
}
