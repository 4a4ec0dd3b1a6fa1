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
	"fmt"
)

type MachineState struct {
	// Set to the entry point of the loaded program.
	Program uint32
	Memory  []byte
}

// Header describes the program most recently loaded.
type Header struct {
	Name   string
	Start  uint32
	Length uint32
}

type Machine struct {
	State  MachineState
	Header Header
}

type ObjectError struct {
	Line   int
	Reason string
}

func (err *ObjectError) Error() string {
	return fmt.Sprintf("%02d: Invalid object record: %s", err.Line, err.Reason)
}

type AddressError struct {
	Line     int
	Required uint32
	Received uint32
}

func (err *AddressError) Error() string {
	return fmt.Sprintf(
		"%02d: Record outside of memory\n\twant:< %#x\n\thave:%#x",
		err.Line,
		err.Required,
		err.Received,
	)
}
