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

import (
	"fmt"
	"log"
	"os"

	"github.com/alecthomas/kong"
	"golang.org/x/term"

	"github.com/lassandro/gosic/pkg/assembler"
)

// ANSI styling is only used when stderr is a terminal.
var colorize = term.IsTerminal(int(os.Stderr.Fd()))

func init() {
	log.SetFlags(0)
	log.SetOutput(os.Stderr)
}

func bold(s string) string {
	if !colorize {
		return s
	}

	return "\033[1m" + s + "\033[0m"
}

func red(s string) string {
	if !colorize {
		return s
	}

	return "\033[31m" + s + "\033[0m"
}

func setPrefix(name string) {
	log.SetPrefix(bold(name+":") + " ")
}

func parseMode(mode string) assembler.Mode {
	if mode == "sic" {
		return assembler.MODE_SIC
	}

	return assembler.MODE_XE
}

func parseCLI(argv []string) (cliArgs, *kong.Context, error) {
	var args cliArgs

	parser, err := kong.New(
		&args,
		kong.Name("sicasm"),
		kong.Description("Two pass SIC and SIC/XE assembler."),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:   true,
			FlagsLast: true,
		}),
	)

	if err != nil {
		return args, nil, err
	}

	parsed, err := parser.Parse(argv)

	if err != nil {
		return args, nil, err
	}

	return args, parsed, nil
}

func sicasm(argv []string) int {
	args, parsed, err := parseCLI(argv)

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	switch parsed.Command() {
	case "asm <file>":
		return cmdAsm(&args.Asm)
	case "dump <file>":
		return cmdDump(&args.Dump)
	case "lsp":
		return cmdLSP(&args.LSP)
	case "serve":
		return cmdServe(&args.Serve)
	}

	return 2
}

func main() {
	os.Exit(sicasm(os.Args[1:]))
}
