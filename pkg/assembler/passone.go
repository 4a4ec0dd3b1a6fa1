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
	"strings"

	"github.com/lassandro/gosic/pkg/encoding"
)

type passOne struct {
	dir     *Directory
	symbols SymTable
	opts    *Options
	inter   *Intermediate
	errs    []error
	counter uint32
	started bool
	limited bool
}

// PassOne assigns an address to every statement of lines, fills symbols (which
// it clears first) and validates mnemonics and directive operands. The
// returned errors are also attached to the records they concern.
func PassOne(
	lines []string, dir *Directory, symbols SymTable, opts *Options,
) (*Intermediate, []error) {
	symbols.Reset()

	p := passOne{
		dir:     dir,
		symbols: symbols,
		opts:    opts,
		inter:   &Intermediate{ErrorFree: true},
		errs:    make([]error, 0),
	}

	p.opts.logSection("Pass one")
	p.opts.log("%s, %d mnemonics", dir.Mode(), dir.Len())

	for i, line := range lines {
		record := Record{
			Position: Cursor{Line: i + 1, Column: 1},
			Source:   line,
			Address:  p.counter,
		}

		if isComment(line) || strings.TrimSpace(line) == "" {
			record.Type = RECORD_COMMENT
			p.inter.Records = append(p.inter.Records, record)
			continue
		}

		fields, ok := Tokenize(line)
		record.Fields = fields

		if !ok {
			record.Type = RECORD_INVALID
			p.fail(&record, &MalformedLineError{
				record.Position, 3, fieldCount(line),
			})
			p.inter.Records = append(p.inter.Records, record)
			p.started = true
			continue
		}

		done := p.statement(&record)
		p.inter.Records = append(p.inter.Records, record)

		p.opts.log(
			"%05X %-6s %-6s %-12s width:%d",
			record.Address, fields.Label, fields.Mnemonic, fields.Operand,
			record.Width,
		)

		if done {
			break
		}
	}

	p.inter.Length = p.counter - p.inter.Start
	p.inter.Entry = p.inter.Start

	p.opts.log(
		"start:%05X length:%05X symbols:%d errors:%d",
		p.inter.Start, p.inter.Length, len(p.symbols), len(p.errs),
	)

	return p.inter, p.errs
}

func (p *passOne) fail(record *Record, err error) {
	record.Errors = append(record.Errors, err)
	p.errs = append(p.errs, err)
	p.inter.ErrorFree = false
}

// Processes one tokenized statement. Returns true once END has been seen.
func (p *passOne) statement(record *Record) bool {
	fields := &record.Fields
	directive := parseDirective(fields.Mnemonic)

	if directive == DIRECTIVE_START {
		record.Type = RECORD_DIRECTIVE
		record.Directive = directive

		if p.started {
			p.fail(record, &MisplacedDirectiveError{
				Cursor{record.Position.Line, columnOf(record.Source, fields.Mnemonic)},
				fields.Mnemonic,
			})
			return false
		}

		p.started = true
		p.inter.Name = fields.Label

		start, err := encoding.DecodeHex(fields.Operand)

		if err != nil || start >= p.dir.Mode().MemorySize() {
			p.fail(record, &InvalidOperandError{
				Cursor{record.Position.Line, columnOf(record.Source, fields.Operand)},
				fields.Operand,
				"starting address must be a hexadecimal address",
			})
			start = 0
		}

		p.inter.Start = start
		p.counter = start
		record.Address = start
		return false
	}

	p.started = true

	switch directive {
	case DIRECTIVE_END:
		record.Type = RECORD_DIRECTIVE
		record.Directive = directive
		p.inter.EntryLabel = fields.Operand
		return true

	case DIRECTIVE_BASE:
		record.Type = RECORD_DIRECTIVE
		record.Directive = directive
		return false
	}

	if fields.Label != "" && !p.symbols.Define(fields.Label, p.counter) {
		p.fail(record, &RedeclaredLabelError{
			Cursor{record.Position.Line, columnOf(record.Source, fields.Label)},
			fields.Label,
		})
	}

	record.Width = p.width(record, directive)
	p.counter += record.Width

	if limit := p.dir.Mode().MemorySize(); p.counter > limit && !p.limited {
		p.limited = true
		p.fail(record, &OversizedBinaryError{record.Position, limit, p.counter})
	}

	return false
}

func (p *passOne) width(record *Record, directive DirectiveType) uint32 {
	fields := &record.Fields
	operandPos := Cursor{
		record.Position.Line, columnOf(record.Source, fields.Operand),
	}

	if directive == DIRECTIVE_INVALID {
		if opcode, ok := p.dir.Resolve(fields.Mnemonic); ok {
			record.Type = RECORD_INSTRUCTION
			record.Opcode = opcode
			record.Extended = opcode.Format == FORMAT_4
			return opcode.Format.Width()
		}

		record.Type = RECORD_INVALID
		p.fail(record, &UnknownIdentifierError{
			Cursor{record.Position.Line, columnOf(record.Source, fields.Mnemonic)},
			fields.Mnemonic,
		})
		return 0
	}

	record.Type = RECORD_DIRECTIVE
	record.Directive = directive

	switch directive {
	case DIRECTIVE_WORD:
		if reason := checkWordOperand(fields.Operand); reason != "" {
			p.fail(record, &InvalidOperandError{operandPos, fields.Operand, reason})
		}

		return 3

	case DIRECTIVE_BYTE:
		size, reason := byteOperandWidth(fields.Operand)

		if reason != "" {
			p.fail(record, &InvalidOperandError{operandPos, fields.Operand, reason})
		}

		return size

	case DIRECTIVE_RESW, DIRECTIVE_RESB:
		count, err := encoding.DecodeInt(fields.Operand)

		if err != nil || count < 0 {
			p.fail(record, &InvalidOperandError{
				operandPos, fields.Operand, "reservation size must be a count",
			})
			return 0
		}

		size := uint64(count)

		if directive == DIRECTIVE_RESW {
			size *= 3
		}

		if size > uint64(p.dir.Mode().MemorySize()) {
			p.fail(record, &InvalidOperandError{
				operandPos, fields.Operand, "reservation exceeds the address space",
			})
			return 0
		}

		return uint32(size)
	}

	return 0
}

func byteOperandWidth(operand string) (uint32, string) {
	if _, _, ok := encoding.SplitConstant(operand); ok {
		data, err := encoding.DecodeConstant(operand)

		if err != nil {
			return 0, "malformed constant"
		}

		return uint32(len(data)), ""
	}

	value, err := encoding.DecodeInt(operand)

	if err != nil {
		return 0, "expected C'..', X'..' or a number"
	}

	if value < -128 || value > 255 {
		return 1, "value does not fit in a byte"
	}

	return 1, ""
}

func checkWordOperand(operand string) string {
	if operand == "" {
		return "missing value"
	}

	if _, _, ok := encoding.SplitConstant(operand); ok {
		data, err := encoding.DecodeConstant(operand)

		if err != nil {
			return "malformed constant"
		}

		if len(data) > 3 {
			return "constant does not fit in a word"
		}

		return ""
	}

	if value, err := encoding.DecodeInt(operand); err == nil {
		if value < -(1<<23) || value >= 1<<24 {
			return "value does not fit in a word"
		}

		return ""
	}

	// Anything else names a symbol and is checked in pass two.
	if !isSymbolName(operand) {
		return "expected a number, constant or label"
	}

	return ""
}

func isSymbolName(s string) bool {
	if s == "" {
		return false
	}

	for i, c := range s {
		isLetter := (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z') || c == '_'
		isDigit := c >= '0' && c <= '9'

		if !isLetter && !(isDigit && i > 0) {
			return false
		}
	}

	return true
}
