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

package machine

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/lassandro/gosic/pkg/encoding"
)

// Reset clears memory to size bytes of zero and the program counter to zero.
func (mc *MachineState) Reset(size uint32) {
	if uint32(len(mc.Memory)) != size {
		mc.Memory = make([]byte, size)
	} else {
		for i := range mc.Memory {
			mc.Memory[i] = 0
		}
	}

	mc.Program = 0
}

// Word reads the big-endian 24-bit word at addr.
func (mc *MachineState) Word(addr uint32) uint32 {
	return encoding.PackBigEndian(mc.Memory[addr : addr+3])
}

// LoadObject loads an absolute object program into memory, which must already
// be sized with Reset. The program counter is set from the end record. Memory
// outside the text records is left untouched.
func (mc *Machine) LoadObject(reader io.Reader) error {
	scanner := bufio.NewScanner(reader)
	line := 0
	header := false

	for scanner.Scan() {
		line++
		record := strings.TrimRight(scanner.Text(), "\r")

		if record == "" {
			continue
		}

		if !header && record[0] != RECORD_HEADER {
			return &ObjectError{line, "expected header record"}
		}

		switch record[0] {
		case RECORD_HEADER:
			if header {
				return &ObjectError{line, "duplicate header record"}
			}

			if err := mc.loadHeader(line, record); err != nil {
				return err
			}

			header = true

		case RECORD_TEXT:
			if err := mc.loadText(line, record); err != nil {
				return err
			}

		case RECORD_END:
			if len(record) != END_LEN {
				return &ObjectError{line, "malformed end record"}
			}

			entry, err := encoding.DecodeHex(record[1:7])

			if err != nil {
				return &ObjectError{line, "malformed entry point"}
			}

			if entry >= uint32(len(mc.State.Memory)) {
				return &AddressError{line, uint32(len(mc.State.Memory)), entry}
			}

			mc.State.Program = entry
			return nil

		default:
			return &ObjectError{line, fmt.Sprintf("unknown record type %q", record[0])}
		}
	}

	if err := scanner.Err(); err != nil {
		return err
	}

	return &ObjectError{line, "missing end record"}
}

func (mc *Machine) loadHeader(line int, record string) error {
	if len(record) != HEADER_LEN {
		return &ObjectError{line, "malformed header record"}
	}

	start, err := encoding.DecodeHex(record[7:13])

	if err != nil {
		return &ObjectError{line, "malformed start address"}
	}

	length, err := encoding.DecodeHex(record[13:19])

	if err != nil {
		return &ObjectError{line, "malformed program length"}
	}

	if size := uint32(len(mc.State.Memory)); start+length > size {
		return &AddressError{line, size, start + length}
	}

	mc.Header = Header{
		Name:   strings.TrimRight(record[1:7], " "),
		Start:  start,
		Length: length,
	}

	return nil
}

func (mc *Machine) loadText(line int, record string) error {
	if len(record) < TEXT_MIN {
		return &ObjectError{line, "malformed text record"}
	}

	addr, err := encoding.DecodeHex(record[1:7])

	if err != nil {
		return &ObjectError{line, "malformed text address"}
	}

	size, err := encoding.DecodeHex(record[7:9])

	if err != nil || size > TEXT_MAX {
		return &ObjectError{line, "malformed text length"}
	}

	data, err := encoding.DecodeConstant("X'" + record[9:] + "'")

	if err != nil || len(record[9:]) != 2*int(size) {
		return &ObjectError{line, "text length does not match its data"}
	}

	if addr < mc.Header.Start || addr+size > mc.Header.Start+mc.Header.Length {
		return &AddressError{line, mc.Header.Start + mc.Header.Length, addr + size}
	}

	copy(mc.State.Memory[addr:], data)
	return nil
}

// Dump writes count bytes of memory from addr, DUMP_WIDTH bytes per line.
// With color set, addresses are bold and zero bytes are dimmed.
func (mc *MachineState) Dump(w io.Writer, addr, count uint32, color bool) error {
	out := bufio.NewWriter(w)
	end := addr + count

	if size := uint32(len(mc.Memory)); end > size || end < addr {
		end = size
	}

	for i := addr; i < end; i++ {
		if (i-addr)%DUMP_WIDTH == 0 {
			if i != addr {
				fmt.Fprintln(out)
			}

			if color {
				fmt.Fprintf(out, "\033[1m[%05X]\033[0m", i)
			} else {
				fmt.Fprintf(out, "[%05X]", i)
			}
		}

		if value := mc.Memory[i]; value == 0 && color {
			fmt.Fprintf(out, " \033[1;30m%02X\033[0m", value)
		} else {
			fmt.Fprintf(out, " %02X", value)
		}
	}

	if end > addr {
		fmt.Fprintln(out)
	}

	return out.Flush()
}
