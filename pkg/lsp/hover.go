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
	"fmt"
	"strings"

	"github.com/sourcegraph/jsonrpc2"

	"github.com/lassandro/gosic/pkg/assembler"
)

var directiveHelp = map[string]string{
	"START": "Names the program and sets its hexadecimal starting address.",
	"END":   "Ends the program; the operand names the entry point.",
	"BYTE":  "Character (C'..'), hex (X'..') or byte sized constant.",
	"WORD":  "One 24-bit word constant.",
	"RESB":  "Reserves the given number of bytes.",
	"RESW":  "Reserves the given number of 24-bit words.",
	"BASE":  "Sets the base register value used for base relative addressing.",
}

func (h *Handler) hover(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) {
	params := TextDocumentPositionParams{}

	if !decodeParams(ctx, conn, req, &params) {
		return
	}

	doc, exists := h.documents[params.TextDocument.URI]

	if !exists {
		conn.Reply(ctx, req.ID, nil)
		return
	}

	lines := strings.Split(doc.item.Text, "\n")

	if params.Position.Line < 0 || params.Position.Line >= len(lines) {
		conn.Reply(ctx, req.ID, nil)
		return
	}

	line := lines[params.Position.Line]
	word, start, end := wordAt(line, params.Position.Character)
	text, ok := describe(word, doc.result, assembler.DirectoryFor(h.mode))

	if !ok {
		conn.Reply(ctx, req.ID, nil)
		return
	}

	conn.Reply(ctx, req.ID, Hover{
		Contents: MarkupContent{Kind: "markdown", Value: text},
		Range: &Range{
			Start: Position{params.Position.Line, start},
			End:   Position{params.Position.Line, end},
		},
	})
}

// Returns the name under character, without addressing prefixes, with its
// span in line. Names are delimited by whitespace and commas.
func wordAt(line string, character int) (string, int, int) {
	if character < 0 || character >= len(line) || isSpace(line[character]) {
		return "", character, character
	}

	start, end := character, character

	for start > 0 && !isSpace(line[start-1]) && line[start-1] != ',' {
		start--
	}

	for end < len(line) && !isSpace(line[end]) && line[end] != ',' {
		end++
	}

	word := line[start:end]

	if trimmed := strings.TrimLeft(word, "#@"); trimmed != word {
		start += len(word) - len(trimmed)
		word = trimmed
	}

	return word, start, end
}

func describe(word string, result *assembler.Result, dir *assembler.Directory) (string, bool) {
	if word == "" {
		return "", false
	}

	if result != nil {
		if addr, ok := result.Symbols.Lookup(word); ok {
			return fmt.Sprintf("**%s**: label at `%04X`", word, addr), true
		}
	}

	if opcode, ok := dir.Resolve(word); ok {
		return fmt.Sprintf(
			"**%s**: opcode `%02X`, format %s, %d bytes",
			opcode.Mnemonic, opcode.Code, opcode.Format, opcode.Format.Width(),
		), true
	}

	if help, ok := directiveHelp[word]; ok {
		return fmt.Sprintf("**%s**: %s", word, help), true
	}

	if id, ok := assembler.LookupRegister(word); ok {
		return fmt.Sprintf("**%s**: register %d", word, id), true
	}

	return "", false
}
