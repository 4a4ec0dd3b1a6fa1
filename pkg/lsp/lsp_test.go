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

package lsp_test

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/sourcegraph/jsonrpc2"

	"github.com/lassandro/gosic/pkg/assembler"
	"github.com/lassandro/gosic/pkg/lsp"
)

const uri = lsp.DocumentURI("file:///tmp/copy.asm")

type clientHandler struct {
	notifications chan *jsonrpc2.Request
}

func (h clientHandler) Handle(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) {
	if req.Notif {
		h.notifications <- req
	}
}

func connect(t *testing.T) (*jsonrpc2.Conn, chan *jsonrpc2.Request) {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	serverSide, clientSide := net.Pipe()

	go lsp.ServeConn(ctx, serverSide, assembler.MODE_SIC, nil)

	notifications := make(chan *jsonrpc2.Request, 16)
	conn := jsonrpc2.NewConn(
		ctx,
		jsonrpc2.NewBufferedStream(clientSide, jsonrpc2.VSCodeObjectCodec{}),
		clientHandler{notifications},
	)

	t.Cleanup(func() {
		conn.Close()
		cancel()
	})

	return conn, notifications
}

func waitDiagnostics(t *testing.T, notifications chan *jsonrpc2.Request) lsp.PublishDiagnosticsParams {
	t.Helper()

	select {
	case req := <-notifications:
		if req.Method != "textDocument/publishDiagnostics" {
			t.Fatalf("want:textDocument/publishDiagnostics\nhave:%s", req.Method)
		}

		var params lsp.PublishDiagnosticsParams

		if err := json.Unmarshal(*req.Params, &params); err != nil {
			t.Fatal(err)
		}

		return params

	case <-time.After(5 * time.Second):
		t.Fatal("Timed out waiting for diagnostics")
	}

	return lsp.PublishDiagnosticsParams{}
}

func TestLanguageServer(t *testing.T) {
	ctx := context.Background()
	conn, notifications := connect(t)

	var initResult lsp.InitializeResult

	err := conn.Call(ctx, "initialize", lsp.InitializeParams{
		ProcessID:             1,
		InitializationOptions: &lsp.InitializationOptions{Mode: "xe"},
	}, &initResult)

	if err != nil {
		t.Fatal(err)
	}

	if !initResult.Capabilities.HoverProvider || initResult.Capabilities.TextDocumentSync != lsp.SYNC_FULL {
		t.Fatalf("Capabilities mismatch\nhave:%s", spew.Sdump(initResult))
	}

	broken := "COPY START 1000\nA WORD 1\nA WORD 2\n CLEAR X\n END COPY\n"

	err = conn.Notify(ctx, "textDocument/didOpen", lsp.DidOpenTextDocumentParams{
		TextDocument: lsp.TextDocumentItem{URI: uri, LanguageID: "sic", Version: 1, Text: broken},
	})

	if err != nil {
		t.Fatal(err)
	}

	published := waitDiagnostics(t, notifications)

	if published.URI != uri || len(published.Diagnostics) != 1 {
		t.Fatalf("Diagnostics mismatch\nhave:%s", spew.Sdump(published))
	}

	want := lsp.Diagnostic{
		Range:    lsp.Range{Start: lsp.Position{Line: 2, Character: 0}, End: lsp.Position{Line: 2, Character: 1}},
		Severity: lsp.SEVERITY_ERROR,
		Source:   lsp.SERVER_NAME,
		Message:  "Duplicate symbol 'A'",
	}

	if published.Diagnostics[0] != want {
		t.Fatalf("want:%s\nhave:%s", spew.Sdump(want), spew.Sdump(published.Diagnostics[0]))
	}

	fixed := "COPY    START   1000\nFIRST   +LDA    FIVE\nFIVE    WORD    5\n        END     FIRST\n"

	err = conn.Notify(ctx, "textDocument/didChange", lsp.DidChangeTextDocumentParams{
		TextDocument:   lsp.VersionedTextDocumentIdentifier{URI: uri, Version: 2},
		ContentChanges: []lsp.TextDocumentContentChangeEvent{{Text: fixed}},
	})

	if err != nil {
		t.Fatal(err)
	}

	if published := waitDiagnostics(t, notifications); len(published.Diagnostics) != 0 || published.Version != 2 {
		t.Fatalf("Diagnostics mismatch\nhave:%s", spew.Sdump(published))
	}

	hovers := []struct {
		Character int
		Contains  string
	}{
		{16, "label at `1004`"},
		{9, "format 4"},
		{2, "label at `1000`"},
	}

	for _, test := range hovers {
		var hover lsp.Hover

		err := conn.Call(ctx, "textDocument/hover", lsp.TextDocumentPositionParams{
			TextDocument: lsp.TextDocumentIdentifier{URI: uri},
			Position:     lsp.Position{Line: 1, Character: test.Character},
		}, &hover)

		if err != nil {
			t.Fatal(err)
		}

		if !strings.Contains(hover.Contents.Value, test.Contains) {
			t.Fatalf("Hover mismatch\nwant:%s\nhave:%s", test.Contains, hover.Contents.Value)
		}
	}

	var report lsp.DocumentDiagnosticReport

	err = conn.Call(ctx, "textDocument/diagnostic", lsp.DocumentDiagnosticParams{
		TextDocument: lsp.TextDocumentIdentifier{URI: uri},
	}, &report)

	if err != nil {
		t.Fatal(err)
	}

	if report.Kind != "full" || len(report.Items) != 0 {
		t.Fatalf("Report mismatch\nhave:%s", spew.Sdump(report))
	}

	var rpcErr *jsonrpc2.Error

	err = conn.Call(ctx, "textDocument/formatting", nil, nil)

	if !errors.As(err, &rpcErr) || rpcErr.Code != jsonrpc2.CodeMethodNotFound {
		t.Fatalf("want:method not found\nhave:%v", err)
	}

	if err := conn.Call(ctx, "shutdown", nil, nil); err != nil {
		t.Fatal(err)
	}
}

func TestLanguageServerSICMode(t *testing.T) {
	ctx := context.Background()
	conn, notifications := connect(t)

	var initResult lsp.InitializeResult

	if err := conn.Call(ctx, "initialize", lsp.InitializeParams{}, &initResult); err != nil {
		t.Fatal(err)
	}

	err := conn.Notify(ctx, "textDocument/didOpen", lsp.DidOpenTextDocumentParams{
		TextDocument: lsp.TextDocumentItem{URI: uri, Text: "P START 0\n CLEAR X\n END P\n"},
	})

	if err != nil {
		t.Fatal(err)
	}

	published := waitDiagnostics(t, notifications)

	if len(published.Diagnostics) != 1 || published.Diagnostics[0].Range.Start.Character != 1 {
		t.Fatalf("Diagnostics mismatch\nhave:%s", spew.Sdump(published))
	}

	var hover *lsp.Hover

	err = conn.Call(ctx, "textDocument/hover", lsp.TextDocumentPositionParams{
		TextDocument: lsp.TextDocumentIdentifier{URI: uri},
		Position:     lsp.Position{Line: 1, Character: 0},
	}, &hover)

	if err != nil {
		t.Fatal(err)
	}

	if hover != nil {
		t.Fatalf("Hover on whitespace\nhave:%s", spew.Sdump(hover))
	}
}
