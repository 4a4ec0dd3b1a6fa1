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
	"github.com/lassandro/gosic/pkg/encoding"
)

// PassTwo encodes every instruction and data directive of inter, storing the
// object bytes on its records. BASE updates the base register used for base
// relative displacements from that point on. The returned errors are also
// attached to the records they concern.
func PassTwo(
	inter *Intermediate, dir *Directory, symbols SymTable, opts *Options,
) []error {
	errs := make([]error, 0)
	base := uint32(0)

	fail := func(record *Record, err error) {
		if posErr, ok := err.(interface{ setPosition(Cursor) }); ok {
			posErr.setPosition(Cursor{
				record.Position.Line,
				columnOf(record.Source, record.Fields.Operand),
			})
		}

		record.Errors = append(record.Errors, err)
		errs = append(errs, err)
	}

	opts.logSection("Pass two")

	for i := range inter.Records {
		record := &inter.Records[i]

		switch record.Type {
		case RECORD_DIRECTIVE:
			switch record.Directive {
			case DIRECTIVE_BASE:
				addr, err := resolveAddress(record.Fields.Operand, symbols)

				if err != nil {
					fail(record, err)
					continue
				}

				base = addr
				opts.log("%05X base:%05X", record.Address, base)

			case DIRECTIVE_END:
				if record.Fields.Operand == "" {
					continue
				}

				if record.Fields.Operand == inter.Name {
					inter.Entry = inter.Start
					continue
				}

				addr, err := resolveAddress(record.Fields.Operand, symbols)

				if err != nil {
					fail(record, err)
					continue
				}

				inter.Entry = addr

			case DIRECTIVE_BYTE, DIRECTIVE_WORD:
				format := FORMAT_WORD

				if record.Directive == DIRECTIVE_BYTE {
					format = FORMAT_BYTE
				}

				encodeRecord(record, format, 0, base, symbols, opts, fail)
			}

		case RECORD_INSTRUCTION:
			encodeRecord(
				record, record.Opcode.Format, record.Opcode.Code, base, symbols,
				opts, fail,
			)
		}
	}

	return errs
}

func encodeRecord(
	record *Record,
	format Format,
	code byte,
	base uint32,
	symbols SymTable,
	opts *Options,
	fail func(*Record, error),
) {
	target, err := ResolveOperand(record.Fields.Operand, format, symbols)

	if err != nil {
		fail(record, err)
		return
	}

	inst := Instruction{
		Mnemonic: record.Fields.Mnemonic,
		Opcode:   code,
		Operand:  record.Fields.Operand,
		Target:   target,
		Format:   format,
		Source:   record.Address,
		Base:     base,
	}

	object, err := Encode(&inst)

	if err != nil {
		fail(record, err)
		return
	}

	record.Object = object

	opts.log(
		"%05X %-7s %-12s format:%-4s flags:%s object:%s",
		record.Address, record.Fields.Mnemonic, record.Fields.Operand,
		format, AddressingFlags(&inst), HexString(object),
	)
}

// Resolves the operand of BASE or END: a label or a decimal address.
func resolveAddress(operand string, symbols SymTable) (uint32, error) {
	if addr, ok := symbols.Lookup(operand); ok {
		return addr, nil
	}

	if value, err := encoding.DecodeInt(operand); err == nil && value >= 0 {
		return uint32(value), nil
	}

	if !isSymbolName(operand) {
		return 0, &InvalidOperandError{Received: operand, Reason: "expected a label or address"}
	}

	return 0, &UnknownLabelError{Received: operand}
}
