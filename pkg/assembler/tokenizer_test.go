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
	"testing"

	"github.com/lassandro/gosic/pkg/assembler"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		Name   string
		Input  string
		Output assembler.Fields
		Ok     bool
	}{
		{"Empty", "   ", assembler.Fields{}, true},
		{"Mnemonic", "  RSUB", assembler.Fields{Mnemonic: "RSUB"}, true},
		{
			"Operand",
			"\tLDA\tFIVE",
			assembler.Fields{Mnemonic: "LDA", Operand: "FIVE"},
			true,
		},
		{
			"Label",
			"FIRST   LDA   FIVE",
			assembler.Fields{Label: "FIRST", Mnemonic: "LDA", Operand: "FIVE"},
			true,
		},
		{
			"Long label",
			"LONGLABEL WORD 1",
			assembler.Fields{Label: "LONGLA", Mnemonic: "WORD", Operand: "1"},
			true,
		},
		{
			"Too many fields",
			"A LDA B C",
			assembler.Fields{Label: "A", Mnemonic: "LDA", Operand: "B"},
			false,
		},
	}

	for _, test := range tests {
		t.Run(test.Name, func(t *testing.T) {
			have, ok := assembler.Tokenize(test.Input)

			if have != test.Output || ok != test.Ok {
				t.Fatalf(
					"Tokenize(%q) mismatch\nwant:%+v %t\nhave:%+v %t",
					test.Input,
					test.Output,
					test.Ok,
					have,
					ok,
				)
			}
		})
	}
}
