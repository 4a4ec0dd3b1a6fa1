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
	"bytes"
	"fmt"
	"io"
	"log"
	"strings"
)

type Options struct {
	// Receives a trace of both passes when set.
	Logger *log.Logger
}

type Option func(*Options)

func WithLogger(logger *log.Logger) Option {
	return func(opts *Options) {
		opts.Logger = logger
	}
}

func (opts *Options) log(format string, args ...interface{}) {
	if opts == nil || opts.Logger == nil {
		return
	}

	opts.Logger.Printf(format, args...)
}

func (opts *Options) logSection(name string) {
	if opts == nil || opts.Logger == nil {
		return
	}

	opts.Logger.Printf("---- %s ----", name)
}

func newOptions(options []Option) *Options {
	opts := &Options{}

	for _, option := range options {
		option(opts)
	}

	return opts
}

func readLines(input io.Reader) ([]string, error) {
	lines := make([]string, 0)
	scanner := bufio.NewScanner(input)

	for scanner.Scan() {
		lines = append(lines, strings.TrimRight(scanner.Text(), "\r"))
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return lines, nil
}

func assembleLines(
	lines []string, mode Mode, symbols SymTable, opts *Options,
) *Result {
	dir := DirectoryFor(mode)
	inter, errs := PassOne(lines, dir, symbols, opts)

	result := &Result{Intermediate: *inter, Mode: mode, Symbols: symbols.Clone()}
	result.Errors = append(result.Errors, errs...)

	opts.logSection("Symbols")

	for _, name := range symbols.Sorted() {
		opts.log("%-6s %05X", name, symbols[name])
	}

	if !inter.ErrorFree {
		return result
	}

	result.Errors = append(
		result.Errors, PassTwo(&result.Intermediate, dir, symbols, opts)...,
	)

	return result
}

// AssembleSICSource runs both passes over input. Pass two only runs when
// pass one found no errors. The returned error is reserved for failures to
// read input; assembly errors are collected in the Result.
func AssembleSICSource(input io.Reader, mode Mode, options ...Option) (*Result, error) {
	lines, err := readLines(input)

	if err != nil {
		return nil, fmt.Errorf("reading source: %w", err)
	}

	return assembleLines(lines, mode, make(SymTable), newOptions(options)), nil
}

// Assembler assembles a rewindable source and keeps the listings of the last
// run. Assemble may be called any number of times; each run starts from an
// empty symbol table.
type Assembler struct {
	source  io.ReadSeeker
	mode    Mode
	opts    *Options
	symbols SymTable

	result        *Result
	listing       []byte
	objectListing []byte
}

func New(source io.ReadSeeker, mode Mode, options ...Option) *Assembler {
	return &Assembler{
		source:  source,
		mode:    mode,
		opts:    newOptions(options),
		symbols: make(SymTable),
	}
}

func (a *Assembler) Mode() Mode {
	return a.mode
}

// SetMode selects the instruction set for the next call to Assemble.
func (a *Assembler) SetMode(mode Mode) {
	a.mode = mode
}

func (a *Assembler) Assemble() error {
	a.result = nil
	a.listing = nil
	a.objectListing = nil

	if _, err := a.source.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("rewinding source: %w", err)
	}

	lines, err := readLines(a.source)

	if err != nil {
		return fmt.Errorf("reading source: %w", err)
	}

	a.result = assembleLines(lines, a.mode, a.symbols, a.opts)

	buffer := new(bytes.Buffer)

	if err := WriteListing(buffer, a.result); err != nil {
		return err
	}

	a.listing = buffer.Bytes()

	if !a.result.ErrorFree {
		return nil
	}

	buffer = new(bytes.Buffer)

	if err := WriteObjectListing(buffer, a.result); err != nil {
		return err
	}

	a.objectListing = buffer.Bytes()
	return nil
}

// IsErrorFree reports whether the last run's first pass found no errors.
func (a *Assembler) IsErrorFree() bool {
	return a.result != nil && a.result.ErrorFree
}

// Listing returns the intermediate listing of the last run, or nil before the
// first run.
func (a *Assembler) Listing() []byte {
	return a.listing
}

// ObjectListing returns the object listing of the last run, or nil when the
// run was not error free.
func (a *Assembler) ObjectListing() []byte {
	return a.objectListing
}

func (a *Assembler) Result() *Result {
	return a.result
}
