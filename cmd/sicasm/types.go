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

package main

type cliArgs struct {
	Asm   cliAsmCmd   `cmd:"" default:"withargs" help:"Assemble a SIC or SIC/XE source file."`
	Dump  cliDumpCmd  `cmd:"" help:"Load an object program and dump its memory."`
	LSP   cliLSPCmd   `cmd:"" name:"lsp" help:"Run the language server."`
	Serve cliServeCmd `cmd:"" help:"Serve the websocket assemble service."`
}

type cliAsmCmd struct {
	File          string `arg:"" help:"Source file, or - for stdin."`
	Mode          string `short:"m" enum:"sic,xe" default:"xe" help:"Instruction set: sic or xe."`
	Listing       string `short:"l" help:"Listing path (default: <file>.lst)."`
	ObjectListing string `name:"object-listing" help:"Object listing path (default: <file>.olst)."`
	Object        string `short:"o" help:"Object program path (default: <file>.obj)."`
	Symbols       bool   `short:"g" help:"Write a symbol table next to the object program (.sicdb)."`
	Verbose       bool   `short:"v" help:"Trace both passes to stderr."`
}

type cliDumpCmd struct {
	File  string  `arg:"" type:"existingfile" help:"Object program to load."`
	Mode  string  `short:"m" enum:"sic,xe" default:"xe" help:"Memory size: sic (32 KiB) or xe (1 MiB)."`
	Addr  *string `short:"a" help:"First address to dump, hex (default: program start)."`
	Count *uint32 `short:"n" help:"Bytes to dump (default: program length)."`
}

type cliLSPCmd struct {
	Mode string `short:"m" enum:"sic,xe" default:"xe" help:"Default instruction set."`
	TCP  string `name:"tcp" placeholder:"ADDR" help:"Listen on a TCP address instead of stdio."`
}

type cliServeCmd struct {
	Mode string `short:"m" enum:"sic,xe" default:"xe" help:"Default instruction set."`
	Addr string `default:"localhost:2035" help:"Listen address."`
}
