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
	"bytes"
	"reflect"
	"testing"

	"github.com/davecgh/go-spew/spew"

	"github.com/lassandro/gosic/pkg/assembler"
)

func TestSymTable(t *testing.T) {
	symbols := make(assembler.SymTable)

	if !symbols.Define("LOOP", 0x10) || !symbols.Define("AFTER", 0x10) {
		t.Fatal("Define rejected a new label")
	}

	if symbols.Define("LOOP", 0x20) {
		t.Fatal("Define accepted a duplicate label")
	}

	if addr, _ := symbols.Lookup("LOOP"); addr != 0x10 {
		t.Fatalf("Duplicate overwrote label\nwant:0x10\nhave:%#x", addr)
	}

	symbols.Define("FIRST", 0x0)

	want := []string{"FIRST", "AFTER", "LOOP"}

	if have := symbols.Sorted(); !reflect.DeepEqual(have, want) {
		t.Fatalf("want:%v\nhave:%v", want, have)
	}

	symbols.Reset()

	if len(symbols) != 0 {
		t.Fatalf("Reset left labels\nhave:%s", spew.Sdump(symbols))
	}
}

func TestSymbolFile(t *testing.T) {
	want := assembler.SymbolFile{
		Source:  "/tmp/copy.asm",
		Mode:    assembler.MODE_XE,
		Symbols: assembler.SymTable{"FIRST": 0x1000, "FIVE": 0x1003},
	}

	buffer := new(bytes.Buffer)

	if err := want.Encode(buffer); err != nil {
		t.Fatal(err)
	}

	have, err := assembler.DecodeSymbolFile(buffer)

	if err != nil {
		t.Fatal(err)
	}

	if !reflect.DeepEqual(*have, want) {
		t.Fatalf("want:%s\nhave:%s", spew.Sdump(want), spew.Sdump(have))
	}
}
