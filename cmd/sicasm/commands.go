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
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"golang.org/x/term"

	"github.com/lassandro/gosic/pkg/encoding"
	"github.com/lassandro/gosic/pkg/lsp"
	"github.com/lassandro/gosic/pkg/machine"
	"github.com/lassandro/gosic/pkg/server"
)

func cmdDump(cmd *cliDumpCmd) int {
	setPrefix(filepath.Base(cmd.File))

	file, err := os.Open(cmd.File)

	if err != nil {
		log.Println(err)
		return 1
	}

	defer file.Close()

	var mc machine.Machine
	mc.State.Reset(parseMode(cmd.Mode).MemorySize())

	if err := mc.LoadObject(file); err != nil {
		log.Println(err)
		return 1
	}

	addr, count := mc.Header.Start, mc.Header.Length

	if cmd.Addr != nil {
		if addr, err = encoding.DecodeHex(*cmd.Addr); err != nil {
			log.Printf("Invalid address '%s'", *cmd.Addr)
			return 1
		}
	}

	if cmd.Count != nil {
		count = *cmd.Count
	}

	colorOut := term.IsTerminal(int(os.Stdout.Fd()))
	name := mc.Header.Name

	if colorOut {
		name = "\033[1m" + name + "\033[0m"
	}

	fmt.Printf(
		"%s start:%05X length:%05X entry:%05X\n",
		name,
		mc.Header.Start,
		mc.Header.Length,
		mc.State.Program,
	)

	if err := mc.State.Dump(os.Stdout, addr, count, colorOut); err != nil {
		log.Println(err)
		return 1
	}

	return 0
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func cmdLSP(cmd *cliLSPCmd) int {
	setPrefix("sicasm lsp")

	ctx, cancel := signalContext()
	defer cancel()

	// stdout carries the protocol in stdio mode; logs stay on stderr.
	logger := log.New(os.Stderr, log.Prefix(), 0)
	mode := parseMode(cmd.Mode)

	if cmd.TCP == "" {
		lsp.ServeStdio(ctx, mode, logger)
		return 0
	}

	if err := lsp.ListenAndServeTCP(ctx, cmd.TCP, mode, logger); err != nil {
		log.Println(err)
		return 1
	}

	return 0
}

func cmdServe(cmd *cliServeCmd) int {
	setPrefix("sicasm serve")

	ctx, cancel := signalContext()
	defer cancel()

	logger := log.New(os.Stderr, log.Prefix(), 0)

	if err := server.New(parseMode(cmd.Mode), logger).ListenAndServe(ctx, cmd.Addr); err != nil {
		log.Println(err)
		return 1
	}

	return 0
}
