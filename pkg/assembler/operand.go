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

// ResolveOperand maps the operand text of an instruction of the given format
// to a symbol address, literal, register or register pair. The returned error
// is an *UnknownLabelError or *InvalidOperandError without a position.
func ResolveOperand(text string, format Format, symbols SymTable) (Operand, error) {
	operand := Operand{Kind: OPERAND_NONE, Text: text}

	switch format {
	case FORMAT_1:
		if text != "" {
			return unresolved(operand, "instruction takes no operand")
		}

		return operand, nil

	case FORMAT_2:
		return resolveRegisters(operand)

	case FORMAT_BYTE:
		data, err := byteConstant(text)

		if err != nil {
			return unresolved(operand, err.Error())
		}

		operand.Kind = OPERAND_LITERAL
		operand.Value = int64(encoding.PackBigEndian(data))
		return operand, nil

	case FORMAT_WORD:
		if value, err := wordConstant(text); err == nil {
			operand.Kind = OPERAND_LITERAL
			operand.Value = value
			return operand, nil
		}

		return resolveSymbol(operand, text, symbols)
	}

	if text == "" {
		return operand, nil
	}

	rest := text

	switch rest[0] {
	case IMMEDIATE_MARKER:
		operand.Addressing = ADDRESSING_IMMEDIATE
		rest = rest[1:]
	case INDIRECT_MARKER:
		operand.Addressing = ADDRESSING_INDIRECT
		rest = rest[1:]
	}

	if operand.Addressing != ADDRESSING_SIMPLE && format == FORMAT_SIC {
		return unresolved(operand, "immediate and indirect addressing need SIC/XE")
	}

	if len(rest) > len(INDEX_SUFFIX) && strings.HasSuffix(rest, INDEX_SUFFIX) {
		operand.Indexed = true
		rest = rest[:len(rest)-len(INDEX_SUFFIX)]
	}

	if rest == "" {
		return unresolved(operand, "missing operand value")
	}

	if addr, ok := symbols.Lookup(rest); ok {
		operand.Kind = OPERAND_SYMBOL
		operand.Value = int64(addr)
		return operand, nil
	}

	if value, err := encoding.DecodeInt(rest); err == nil {
		if !literalFits(value, format) {
			return unresolved(operand, "literal does not fit the instruction")
		}

		operand.Kind = OPERAND_LITERAL
		operand.Value = value
		return operand, nil
	}

	if _, ok := LookupRegister(rest); ok {
		return unresolved(operand, "register operand needs a format 2 instruction")
	}

	return resolveSymbol(operand, rest, symbols)
}

func resolveSymbol(operand Operand, name string, symbols SymTable) (Operand, error) {
	if addr, ok := symbols.Lookup(name); ok {
		operand.Kind = OPERAND_SYMBOL
		operand.Value = int64(addr)
		return operand, nil
	}

	operand.Kind = OPERAND_UNRESOLVED

	if !isSymbolName(name) {
		return operand, &InvalidOperandError{Received: operand.Text, Reason: "not a label, register or literal"}
	}

	return operand, &UnknownLabelError{Received: name}
}

// Register operands take the forms r1, r1,r2 and r1,n. A count n in the
// second position is a shift count (1..16) and is stored as n-1; a lone count
// is an interrupt number (0..15) as used by SVC.
func resolveRegisters(operand Operand) (Operand, error) {
	parts := strings.Split(operand.Text, ",")

	if operand.Text == "" || len(parts) > 2 {
		return unresolved(operand, "expected one or two registers")
	}

	values := make([]int64, len(parts))

	for i, part := range parts {
		if reg, ok := LookupRegister(part); ok {
			values[i] = int64(reg)
			continue
		}

		n, err := encoding.DecodeInt(part)

		switch {
		case err != nil:
			return unresolved(operand, "unknown register '"+part+"'")
		case i == 0 && len(parts) == 1 && n >= 0 && n <= 15:
			values[i] = n
		case i == 1 && n >= 1 && n <= 16:
			values[i] = n - 1
		default:
			return unresolved(operand, "count out of range")
		}
	}

	operand.Value = values[0]

	if len(values) == 2 {
		operand.Kind = OPERAND_REGISTER_PAIR
		operand.Second = values[1]
	} else {
		operand.Kind = OPERAND_REGISTER
	}

	return operand, nil
}

func unresolved(operand Operand, reason string) (Operand, error) {
	operand.Kind = OPERAND_UNRESOLVED
	return operand, &InvalidOperandError{Received: operand.Text, Reason: reason}
}

func literalFits(value int64, format Format) bool {
	switch format {
	case FORMAT_SIC:
		return encoding.FitsUnsigned(value, 15)
	case FORMAT_4:
		return value >= -(1<<19) && value < 1<<20
	}

	return value >= -(1<<11) && value < 1<<12
}

func byteConstant(text string) ([]byte, error) {
	if _, _, ok := encoding.SplitConstant(text); ok {
		return encoding.DecodeConstant(text)
	}

	value, err := encoding.DecodeInt(text)

	if err != nil || value < -128 || value > 255 {
		return nil, encoding.ErrInvalidConstant
	}

	return []byte{byte(value)}, nil
}

func wordConstant(text string) (int64, error) {
	if _, _, ok := encoding.SplitConstant(text); ok {
		data, err := encoding.DecodeConstant(text)

		if err != nil || len(data) > 3 {
			return 0, encoding.ErrInvalidConstant
		}

		return int64(encoding.PackBigEndian(data)), nil
	}

	return encoding.DecodeInt(text)
}
