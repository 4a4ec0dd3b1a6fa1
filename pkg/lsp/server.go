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

package lsp

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net"
	"os"

	"github.com/sourcegraph/jsonrpc2"

	"github.com/lassandro/gosic/pkg/assembler"
)

const (
	SERVER_NAME = "sicasm"

	SEVERITY_ERROR = 1

	SYNC_FULL = 1
)

// Handler answers language server requests for one client connection. Each
// connection gets its own Handler; the document set is not shared.
type Handler struct {
	mode      assembler.Mode
	logger    *log.Logger
	documents map[DocumentURI]*document
}

func NewHandler(mode assembler.Mode, logger *log.Logger) *Handler {
	return &Handler{
		mode:      mode,
		logger:    logger,
		documents: make(map[DocumentURI]*document),
	}
}

func (h *Handler) logf(format string, args ...interface{}) {
	if h.logger != nil {
		h.logger.Printf(format, args...)
	}
}

func (h *Handler) Handle(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) {
	h.logf("received request: %s", req.Method)

	switch req.Method {
	case "initialize":
		h.initialize(ctx, conn, req)
	case "initialized":
	case "textDocument/didOpen":
		h.didOpen(ctx, conn, req)
	case "textDocument/didChange":
		h.didChange(ctx, conn, req)
	case "textDocument/didClose":
		h.didClose(ctx, conn, req)
	case "textDocument/diagnostic":
		h.diagnostic(ctx, conn, req)
	case "textDocument/hover":
		h.hover(ctx, conn, req)
	case "shutdown":
		conn.Reply(ctx, req.ID, nil)
	case "exit":
		conn.Close()
	default:
		if !req.Notif {
			conn.ReplyWithError(ctx, req.ID, &jsonrpc2.Error{
				Code:    jsonrpc2.CodeMethodNotFound,
				Message: "method not supported: " + req.Method,
			})
		}
	}
}

// Decodes the request parameters into params, replying with an error and
// returning false when they are missing or malformed.
func decodeParams(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request, params interface{}) bool {
	if req.Params != nil {
		if err := json.Unmarshal(*req.Params, params); err == nil {
			return true
		}
	}

	if !req.Notif {
		rpcErr := jsonrpc2.Error{Code: jsonrpc2.CodeInvalidParams}
		rpcErr.SetError("invalid parameters")
		conn.ReplyWithError(ctx, req.ID, &rpcErr)
	}

	return false
}

func (h *Handler) initialize(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) {
	params := InitializeParams{}

	if !decodeParams(ctx, conn, req, &params) {
		return
	}

	if opts := params.InitializationOptions; opts != nil {
		switch opts.Mode {
		case "sic":
			h.mode = assembler.MODE_SIC
		case "xe":
			h.mode = assembler.MODE_XE
		}
	}

	result := InitializeResult{}
	result.Capabilities.TextDocumentSync = SYNC_FULL
	result.Capabilities.HoverProvider = true
	result.ServerInfo.Name = SERVER_NAME

	conn.Reply(ctx, req.ID, result)
}

// ServeConn serves one client over rwc until the connection closes.
func ServeConn(ctx context.Context, rwc io.ReadWriteCloser, mode assembler.Mode, logger *log.Logger) {
	conn := jsonrpc2.NewConn(
		ctx,
		jsonrpc2.NewBufferedStream(rwc, jsonrpc2.VSCodeObjectCodec{}),
		NewHandler(mode, logger),
	)

	select {
	case <-conn.DisconnectNotify():
	case <-ctx.Done():
		conn.Close()
	}
}

// ListenAndServeTCP accepts clients on addr and serves each of them on its own
// connection until ctx is cancelled.
func ListenAndServeTCP(ctx context.Context, addr string, mode assembler.Mode, logger *log.Logger) error {
	listener, err := net.Listen("tcp", addr)

	if err != nil {
		return err
	}

	go func() {
		<-ctx.Done()
		listener.Close()
	}()

	if logger != nil {
		logger.Printf("listening for TCP connections on %s", listener.Addr())
	}

	connectionCount := 0

	for {
		conn, err := listener.Accept()

		if err != nil {
			if ctx.Err() != nil {
				return nil
			}

			return err
		}

		connectionCount++
		connectionID := connectionCount

		if logger != nil {
			logger.Printf("received incoming connection #%d", connectionID)
		}

		go func() {
			ServeConn(ctx, conn, mode, logger)

			if logger != nil {
				logger.Printf("connection #%d closed", connectionID)
			}
		}()
	}
}

type stdrwc struct{}

func (stdrwc) Read(p []byte) (int, error) {
	return os.Stdin.Read(p)
}

func (stdrwc) Write(p []byte) (int, error) {
	return os.Stdout.Write(p)
}

func (stdrwc) Close() error {
	if err := os.Stdin.Close(); err != nil {
		return err
	}

	return os.Stdout.Close()
}

// ServeStdio serves a single client over the process's stdin and stdout.
func ServeStdio(ctx context.Context, mode assembler.Mode, logger *log.Logger) {
	ServeConn(ctx, stdrwc{}, mode, logger)
}
