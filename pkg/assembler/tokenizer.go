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

// Splits a source line into its label, mnemonic and operand fields. A line
// holding more than three fields is reported with ok == false; the first three
// fields are still returned.
func Tokenize(line string) (fields Fields, ok bool) {
	tokens := strings.Fields(line)

	switch len(tokens) {
	case 0:
		return Fields{}, true
	case 1:
		fields.Mnemonic = tokens[0]
	case 2:
		fields.Mnemonic = tokens[0]
		fields.Operand = tokens[1]
	default:
		fields.Label = tokens[0]
		fields.Mnemonic = tokens[1]
		fields.Operand = tokens[2]
	}

	if len(fields.Label) > MAX_SYMBOL_LEN {
		fields.Label = fields.Label[:MAX_SYMBOL_LEN]
	}

	return fields, len(tokens) <= 3
}

func isComment(line string) bool {
	trimmed := strings.TrimSpace(line)
	return len(trimmed) > 0 && trimmed[0] == COMMENT_MARKER
}

func fieldCount(line string) int {
	return len(strings.Fields(line))
}
