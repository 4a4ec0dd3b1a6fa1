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
	"strings"

	"github.com/sourcegraph/jsonrpc2"

	"github.com/lassandro/gosic/pkg/assembler"
)

type document struct {
	item   TextDocumentItem
	result *assembler.Result
}

// Reassembles doc and returns its diagnostics. The result is kept for hover.
func (h *Handler) assemble(doc *document) []Diagnostic {
	result, err := assembler.AssembleSICSource(strings.NewReader(doc.item.Text), h.mode)

	if err != nil {
		doc.result = nil
		return []Diagnostic{{Severity: SEVERITY_ERROR, Source: SERVER_NAME, Message: err.Error()}}
	}

	doc.result = result
	return diagnostics(doc.item.Text, result)
}

func (h *Handler) publish(ctx context.Context, conn *jsonrpc2.Conn, doc *document) {
	conn.Notify(ctx, "textDocument/publishDiagnostics", PublishDiagnosticsParams{
		URI:         doc.item.URI,
		Version:     doc.item.Version,
		Diagnostics: h.assemble(doc),
	})
}

func (h *Handler) didOpen(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) {
	params := DidOpenTextDocumentParams{}

	if !decodeParams(ctx, conn, req, &params) {
		return
	}

	doc := &document{item: params.TextDocument}
	h.documents[doc.item.URI] = doc
	h.publish(ctx, conn, doc)
}

func (h *Handler) didChange(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) {
	params := DidChangeTextDocumentParams{}

	if !decodeParams(ctx, conn, req, &params) || len(params.ContentChanges) == 0 {
		return
	}

	doc, exists := h.documents[params.TextDocument.URI]

	if !exists {
		doc = &document{item: TextDocumentItem{URI: params.TextDocument.URI}}
		h.documents[doc.item.URI] = doc
	}

	doc.item.Text = params.ContentChanges[len(params.ContentChanges)-1].Text
	doc.item.Version = params.TextDocument.Version
	h.publish(ctx, conn, doc)
}

func (h *Handler) didClose(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) {
	params := DidCloseTextDocumentParams{}

	if !decodeParams(ctx, conn, req, &params) {
		return
	}

	delete(h.documents, params.TextDocument.URI)
}

func (h *Handler) diagnostic(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) {
	params := DocumentDiagnosticParams{}

	if !decodeParams(ctx, conn, req, &params) {
		return
	}

	items := make([]Diagnostic, 0)

	if doc, exists := h.documents[params.TextDocument.URI]; exists {
		items = h.assemble(doc)
	}

	conn.Reply(ctx, req.ID, DocumentDiagnosticReport{Kind: "full", Items: items})
}

// Converts assembly errors to diagnostics spanning the offending field.
func diagnostics(text string, result *assembler.Result) []Diagnostic {
	lines := strings.Split(text, "\n")
	items := make([]Diagnostic, 0, len(result.Errors))

	for _, err := range result.Errors {
		message, _, _ := strings.Cut(err.Error(), "\n")
		span := Range{}

		if tokenErr, ok := err.(assembler.TokenError); ok {
			pos := tokenErr.GetPosition()
			line, start := pos.Line-1, pos.Column-1
			end := start

			if line >= 0 && line < len(lines) {
				end = fieldEnd(lines[line], start)
			}

			span = Range{Position{line, start}, Position{line, end}}

			if _, rest, found := strings.Cut(message, ": "); found {
				message = rest
			}
		}

		items = append(items, Diagnostic{
			Range:    span,
			Severity: SEVERITY_ERROR,
			Source:   SERVER_NAME,
			Message:  message,
		})
	}

	return items
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r'
}

// Index just past the whitespace delimited field starting at start.
func fieldEnd(line string, start int) int {
	if start >= len(line) {
		return len(line)
	}

	end := start

	for end < len(line) && !isSpace(line[end]) {
		end++
	}

	return end
}
