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
	"fmt"
	"io"
	"strings"
)

const listingColumn = "%-9s"

// WriteListing writes the annotated pass one listing: a summary line, a column
// header, one line per source record with its resolved address and any error
// markers beneath it, and a closing line when no errors were found.
func WriteListing(w io.Writer, result *Result) error {
	out := bufio.NewWriter(w)

	if len(result.Errors) == 0 {
		fmt.Fprintln(out, ". No errors detected")
	} else {
		fmt.Fprintf(out, ". %d error(s) detected\n", len(result.Errors))
	}

	writeHeader(out, false)

	for i := range result.Records {
		writeRecord(out, &result.Records[i], false)
	}

	if len(result.Errors) == 0 {
		fmt.Fprintln(out, "...No errors detected...")
	}

	return out.Flush()
}

// WriteObjectListing writes every record with its object code in a trailing
// column. It refuses results that did not assemble cleanly.
func WriteObjectListing(w io.Writer, result *Result) error {
	if !result.ErrorFree {
		return fmt.Errorf("object listing: program has errors")
	}

	out := bufio.NewWriter(w)
	writeHeader(out, true)

	for i := range result.Records {
		writeRecord(out, &result.Records[i], true)
	}

	return out.Flush()
}

func writeHeader(out *bufio.Writer, object bool) {
	fmt.Fprintf(out, listingColumn+listingColumn+listingColumn+"%-12s", "Loc", "Label", "Mnemonic", "Operand")

	if object {
		fmt.Fprint(out, "Object")
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out)
}

func writeRecord(out *bufio.Writer, record *Record, object bool) {
	if record.Type == RECORD_COMMENT {
		fmt.Fprintf(out, listingColumn+"%s\n", "", strings.TrimRight(record.Source, " \t"))
		return
	}

	line := fmt.Sprintf(
		listingColumn+listingColumn+listingColumn+"%-12s",
		fmt.Sprintf("%04X", record.Address),
		record.Fields.Label,
		record.Fields.Mnemonic,
		record.Fields.Operand,
	)

	if object {
		line += HexString(record.Object)
	}

	fmt.Fprintln(out, strings.TrimRight(line, " "))

	for _, err := range record.Errors {
		message, _, _ := strings.Cut(err.Error(), "\n")
		fmt.Fprintf(out, ". !!! %s\n", message)
	}
}
