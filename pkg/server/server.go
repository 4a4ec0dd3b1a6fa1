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

package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"github.com/lassandro/gosic/pkg/assembler"
)

const (
	MESSAGE_ASSEMBLE = "assemble"
	MESSAGE_RESULT   = "result"
	MESSAGE_ERROR    = "error"
)

type Request struct {
	Type   string `json:"type"`
	Mode   string `json:"mode,omitempty"`
	Source string `json:"source"`
}

type Response struct {
	Type          string   `json:"type"`
	Text          string   `json:"text,omitempty"`
	ErrorFree     bool     `json:"errorFree"`
	Listing       string   `json:"listing,omitempty"`
	ObjectListing string   `json:"objectListing,omitempty"`
	ObjectProgram string   `json:"objectProgram,omitempty"`
	Errors        []string `json:"errors,omitempty"`
}

// Server assembles programs sent over a websocket at /ws. Every request is
// assembled with fresh state.
type Server struct {
	mode     assembler.Mode
	logger   *log.Logger
	upgrader websocket.Upgrader
}

func New(mode assembler.Mode, logger *log.Logger) *Server {
	return &Server{
		mode:   mode,
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

func (s *Server) logf(format string, args ...interface{}) {
	if s.logger != nil {
		s.logger.Printf(format, args...)
	}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.serveWebsocket)
	mux.HandleFunc("/", handleGetPage)
	return mux
}

func (s *Server) serveWebsocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)

	if err != nil {
		s.logf("upgrade: %v", err)
		return
	}

	defer conn.Close()

	for {
		_, messageBytes, err := conn.ReadMessage()

		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.logf("read: %v", err)
			}

			return
		}

		var request Request

		if err := json.Unmarshal(messageBytes, &request); err != nil {
			s.logf("json: %v", err)

			if err := conn.WriteJSON(Response{Type: MESSAGE_ERROR, Text: "malformed message"}); err != nil {
				return
			}

			continue
		}

		var response Response

		switch request.Type {
		case MESSAGE_ASSEMBLE:
			response = s.assemble(&request)
		default:
			s.logf("unknown message type: %s", request.Type)
			response = Response{Type: MESSAGE_ERROR, Text: "unknown message type: " + request.Type}
		}

		if err := conn.WriteJSON(response); err != nil {
			s.logf("write: %v", err)
			return
		}
	}
}

func (s *Server) assemble(request *Request) Response {
	mode := s.mode

	switch request.Mode {
	case "sic":
		mode = assembler.MODE_SIC
	case "xe":
		mode = assembler.MODE_XE
	case "":
	default:
		return Response{Type: MESSAGE_ERROR, Text: "unknown mode: " + request.Mode}
	}

	a := assembler.New(strings.NewReader(request.Source), mode)

	if err := a.Assemble(); err != nil {
		return Response{Type: MESSAGE_ERROR, Text: err.Error()}
	}

	result := a.Result()
	response := Response{
		Type:          MESSAGE_RESULT,
		ErrorFree:     a.IsErrorFree(),
		Listing:       string(a.Listing()),
		ObjectListing: string(a.ObjectListing()),
	}

	for _, err := range result.Errors {
		response.Errors = append(response.Errors, err.Error())
	}

	object := new(bytes.Buffer)

	if err := assembler.WriteObjectProgram(object, result); err == nil {
		response.ObjectProgram = object.String()
	}

	s.logf(
		"assembled %d lines (%s): %d errors",
		len(result.Records), mode, len(result.Errors),
	)

	return response
}

// ListenAndServe serves the assemble service on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	httpServer := &http.Server{Addr: addr, Handler: s.Handler()}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		httpServer.Shutdown(shutdownCtx)
	}()

	s.logf("assemble service at http://%s", addr)

	if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

func handleGetPage(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", "text/html")
	w.Write([]byte(htmlPage))
}

var htmlPage = `<html>
<head>
	<title>SIC Assembler</title>
</head>
<body style="background-color: #1E1E1E; color: white; font-family: monospace;">
	<h1 style="display: inline-block;">SIC Assembler</h1>
	<select id="mode"><option value="xe">SIC/XE</option><option value="sic">SIC</option></select>
	<button id="assembleButton">ASSEMBLE</button>
	<br/>
	<textarea id="source" rows="20" cols="100"></textarea>
	<pre id="output" style="background-color: black; padding: 10px;"></pre>

	<script>
		var socket = new WebSocket("ws://" + location.host + "/ws");

		socket.onmessage = function(event) {
			var data = JSON.parse(event.data);
			var output = document.getElementById("output");

			if (data.type == "result") {
				output.textContent = data.listing + "\n" + (data.objectListing || "") + "\n" + (data.objectProgram || "");
			} else {
				output.textContent = data.text;
			}
		};

		document.getElementById("assembleButton").onclick = function() {
			socket.send(JSON.stringify({
				type: "assemble",
				mode: document.getElementById("mode").value,
				source: document.getElementById("source").value,
			}));
		};
	</script>
</body>
</html>
`
