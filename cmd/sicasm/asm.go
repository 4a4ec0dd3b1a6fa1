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
	"bytes"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/lassandro/gosic/pkg/assembler"
)

// Replaces the extension of name with ext, the way every output path is
// derived from the input path.
func withExt(name string, ext string) string {
	return strings.TrimSuffix(name, filepath.Ext(name)) + ext
}

func writeOutput(path string, write func(io.Writer) error) error {
	file, err := os.Create(path)

	if err != nil {
		return err
	}

	if err := write(file); err != nil {
		file.Close()
		return err
	}

	return file.Close()
}

func cmdAsm(cmd *cliAsmCmd) int {
	var input io.ReadSeeker
	var source string
	base := "out"

	if cmd.File == "-" {
		setPrefix("<stdin>")

		data, err := io.ReadAll(os.Stdin)

		if err != nil {
			log.Println(err)
			return 1
		}

		input = bytes.NewReader(data)
	} else {
		file, err := os.Open(cmd.File)

		if err != nil {
			log.Println(err)
			return 1
		}

		defer file.Close()

		filename := filepath.Base(file.Name())
		setPrefix(filename)

		if stat, err := file.Stat(); err != nil {
			log.Println(err)
			return 1
		} else if stat.IsDir() {
			log.Printf("%s is not a valid SIC assembly file", filename)
			return 1
		}

		input = file
		base = cmd.File

		if source, err = filepath.Abs(cmd.File); err != nil {
			log.Println(err)
			source = ""
		}
	}

	var options []assembler.Option

	if cmd.Verbose {
		options = append(options, assembler.WithLogger(log.New(os.Stderr, "", 0)))
	}

	a := assembler.New(input, parseMode(cmd.Mode), options...)

	if err := a.Assemble(); err != nil {
		log.Println(err)
		return 1
	}

	result := a.Result()

	if cmd.Listing == "" {
		cmd.Listing = withExt(base, ".lst")
	}

	if err := os.WriteFile(cmd.Listing, a.Listing(), 0666); err != nil {
		log.Println("Error writing listing")
		log.Println(err)
		return 1
	}

	if a.IsErrorFree() {
		if cmd.ObjectListing == "" {
			cmd.ObjectListing = withExt(base, ".olst")
		}

		if err := os.WriteFile(cmd.ObjectListing, a.ObjectListing(), 0666); err != nil {
			log.Println("Error writing object listing")
			log.Println(err)
			return 1
		}
	}

	if len(result.Errors) > 0 {
		reportErrors(result)
		return 1
	}

	if cmd.Object == "" {
		cmd.Object = withExt(base, ".obj")
	}

	if err := writeOutput(cmd.Object, func(w io.Writer) error {
		return assembler.WriteObjectProgram(w, result)
	}); err != nil {
		log.Println("Error writing object program")
		log.Println(err)
		return 1
	}

	if cmd.Symbols {
		symfile := assembler.SymbolFile{
			Source:  source,
			Mode:    result.Mode,
			Symbols: result.Symbols,
		}

		if err := writeOutput(withExt(cmd.Object, ".sicdb"), symfile.Encode); err != nil {
			log.Println("Error writing symbol table")
			log.Println(err)
			return 1
		}
	}

	return 0
}

// Logs each error followed by its source line with the offending field
// underlined.
func reportErrors(result *assembler.Result) {
	sources := make(map[int]string, len(result.Records))

	for _, record := range result.Records {
		sources[record.Position.Line] = record.Source
	}

	for _, err := range result.Errors {
		tokenErr, ok := err.(assembler.TokenError)

		if !ok {
			log.Println(err)
			continue
		}

		cursor := tokenErr.GetPosition()
		line := strings.TrimRight(sources[cursor.Line], "\r")
		start := cursor.Column - 1

		if start < 0 || start > len(line) {
			log.Println(err)
			continue
		}

		end := start

		for end < len(line) && line[end] != ' ' && line[end] != '\t' {
			end++
		}

		underline := "^" + strings.Repeat("~", max(end-start-1, 0))

		log.Printf(
			"%s\n%s\n%s",
			err,
			line,
			red(fmt.Sprintf("%*s", start+len(underline), underline)),
		)
	}
}
