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
	"encoding/gob"
	"io"
	"sort"
)

// SymTable maps labels to the address they were defined at.
type SymTable map[string]uint32

// Adds label at addr. A label that already exists keeps its first address and
// ok is false.
func (symbols SymTable) Define(label string, addr uint32) (ok bool) {
	if _, exists := symbols[label]; exists {
		return false
	}

	symbols[label] = addr
	return true
}

func (symbols SymTable) Lookup(label string) (uint32, bool) {
	addr, ok := symbols[label]
	return addr, ok
}

func (symbols SymTable) Reset() {
	for label := range symbols {
		delete(symbols, label)
	}
}

func (symbols SymTable) Clone() SymTable {
	result := make(SymTable, len(symbols))

	for label, addr := range symbols {
		result[label] = addr
	}

	return result
}

// Labels in ascending address order, ties broken by name.
func (symbols SymTable) Sorted() []string {
	labels := make([]string, 0, len(symbols))

	for label := range symbols {
		labels = append(labels, label)
	}

	sort.Slice(labels, func(i, j int) bool {
		a, b := symbols[labels[i]], symbols[labels[j]]

		if a != b {
			return a < b
		}

		return labels[i] < labels[j]
	})

	return labels
}

// SymbolFile is the debugging companion written next to an object program.
type SymbolFile struct {
	Source  string
	Mode    Mode
	Symbols SymTable
}

func (file *SymbolFile) Encode(w io.Writer) error {
	return gob.NewEncoder(w).Encode(file)
}

func DecodeSymbolFile(r io.Reader) (*SymbolFile, error) {
	var file SymbolFile

	if err := gob.NewDecoder(r).Decode(&file); err != nil {
		return nil, err
	}

	return &file, nil
}
