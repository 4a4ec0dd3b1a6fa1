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
	"bufio"
	"errors"
	"fmt"
	"io"
)

// Longest run of object bytes carried by a single text record.
const MAX_TEXT_RECORD = 30

var ErrProgramHasErrors = errors.New("program has errors")

type textRecord struct {
	start uint32
	data  []byte
}

// WriteObjectProgram writes result as an absolute object program: a header
// record with name, start and length, text records of at most MAX_TEXT_RECORD
// bytes each, and an end record with the entry point. A text record is cut at
// every gap in the object code, such as storage reserved with RESB or RESW.
func WriteObjectProgram(w io.Writer, result *Result) error {
	if !result.ErrorFree || len(result.Errors) > 0 {
		return ErrProgramHasErrors
	}

	out := bufio.NewWriter(w)

	name := result.Name

	if len(name) > MAX_SYMBOL_LEN {
		name = name[:MAX_SYMBOL_LEN]
	}

	fmt.Fprintf(out, "H%-6s%06X%06X\n", name, result.Start, result.Length)

	for _, text := range textRecords(result.Records) {
		fmt.Fprintf(out, "T%06X%02X%s\n", text.start, len(text.data), HexString(text.data))
	}

	fmt.Fprintf(out, "E%06X\n", result.Entry)

	return out.Flush()
}

func textRecords(records []Record) []textRecord {
	texts := make([]textRecord, 0)
	var current *textRecord

	for i := range records {
		record := &records[i]

		if len(record.Object) == 0 {
			if record.Width > 0 {
				current = nil
			}

			continue
		}

		for offset := 0; offset < len(record.Object); {
			addr := record.Address + uint32(offset)

			if current == nil ||
				current.start+uint32(len(current.data)) != addr ||
				len(current.data) == MAX_TEXT_RECORD {
				texts = append(texts, textRecord{start: addr})
				current = &texts[len(texts)-1]
			}

			n := MAX_TEXT_RECORD - len(current.data)

			if remaining := len(record.Object) - offset; remaining < n {
				n = remaining
			}

			current.data = append(current.data, record.Object[offset:offset+n]...)
			offset += n
		}
	}

	return texts
}
