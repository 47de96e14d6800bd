package languageServer

import (
	"context"
	"encoding/json"
	"log"
	"net"
	"net/http"
	"os"

	"github.com/gorilla/websocket"
	"github.com/sourcegraph/jsonrpc2"
	"github.gatech.edu/ECEInnovation/RISC-V-Assembler/assembler"
	"github.gatech.edu/ECEInnovation/RISC-V-Assembler/util"
)

// Server carries the configuration shared by every language server
// connection. Each accepted connection gets its own handler with its own
// document state, so concurrent editors never share mutable state.
type Server struct {
	Config assembler.Config
}

func NewServer(config assembler.Config) *Server {
	return &Server{Config: config}
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

// ListenAndServe speaks the language server protocol over stdin/stdout,
// returning when the client disconnects.
func (s *Server) ListenAndServe() {
	h := s.newHandler()
	<-jsonrpc2.NewConn(context.Background(), jsonrpc2.NewBufferedStream(stdrwc{}, jsonrpc2.VSCodeObjectCodec{}), h).DisconnectNotify()
}

// ListenAndServeTCP accepts language server connections on addr, one
// jsonrpc2 session per TCP connection.
func (s *Server) ListenAndServeTCP(addr string) error {
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	defer lis.Close()

	log.Println("RISC-V language server: listening for TCP connections on", addr)

	connectionCount := 0
	for {
		conn, err := lis.Accept()
		if err != nil {
			return err
		}
		connectionCount++
		connectionID := connectionCount
		log.Printf("RISC-V language server: received incoming connection #%d\n", connectionID)
		rpcConn := jsonrpc2.NewConn(context.Background(), jsonrpc2.NewBufferedStream(conn, jsonrpc2.VSCodeObjectCodec{}), s.newHandler())
		go func() {
			<-rpcConn.DisconnectNotify()
			log.Printf("RISC-V language server: connection #%d closed\n", connectionID)
		}()
	}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ListenAndServeWebSocket accepts language server connections over
// websockets, for browser-hosted editors that cannot open raw sockets. Each
// websocket message carries one jsonrpc2 object.
func (s *Server) ListenAndServeWebSocket(addr string) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/lsp", func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Printf("RISC-V language server: websocket upgrade failed: %v\n", err)
			return
		}
		rpcConn := jsonrpc2.NewConn(context.Background(), newWebSocketStream(conn), s.newHandler())
		go func() {
			<-rpcConn.DisconnectNotify()
			conn.Close()
		}()
	})

	log.Println("RISC-V language server: listening for websocket connections on", addr)
	return http.ListenAndServe(addr, mux)
}

// handler serves one connection. The document map is connection-local.
type handler struct {
	server    *Server
	documents map[string]*document
}

func (s *Server) newHandler() *handler {
	return &handler{
		server:    s,
		documents: make(map[string]*document),
	}
}

func (h *handler) Handle(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) {
	util.LogF("RISC-V language server: received request: %s", req.Method)
	switch req.Method {
	case "initialize":
		h.handleInitialize(conn, req)
	case "textDocument/didOpen":
		h.documentOpenNotification(conn, req)
	case "textDocument/didClose":
		h.documentCloseNotification(conn, req)
	case "textDocument/didChange":
		h.documentChangeNotification(conn, req)
	case "textDocument/diagnostic":
		h.documentDiagnostics(conn, req)
	case "textDocument/willSaveWaitUntil":
		h.documentWillSaveWaitUntil(conn, req)
	case "textDocument/hover":
		h.hoverRequest(conn, req)

	// quitting
	case "shutdown":
		conn.Reply(context.Background(), req.ID, nil)
		conn.Close()
	case "exit":
		conn.Reply(context.Background(), req.ID, nil)
		conn.Close()
	}
}

func replyInvalidParams(conn *jsonrpc2.Conn, req *jsonrpc2.Request) {
	rpcErr := jsonrpc2.Error{}
	rpcErr.SetError("invalid parameters")
	conn.ReplyWithError(context.Background(), req.ID, &rpcErr)
}

func (h *handler) handleInitialize(conn *jsonrpc2.Conn, req *jsonrpc2.Request) {
	decodedParams := InitializeParams{}
	if err := json.Unmarshal(*req.Params, &decodedParams); err != nil {
		replyInvalidParams(conn, req)
		return
	}

	result := InitializeResult{}
	result.Capabilities.TextDocumentSync = 1
	result.Capabilities.HoverProvider = true
	conn.Reply(context.Background(), req.ID, result)

	registerRemainingCapabilities(conn)
}

func registerRemainingCapabilities(conn *jsonrpc2.Conn) {
	// textDocumentSync.willSaveWaitUntil cannot be announced statically
	util.LogF("RISC-V language server: registering remaining capabilities")
	params := RegistrationParams{
		Registrations: []Registration{
			{
				ID:     "textDocumentSync.willSaveWaitUntil",
				Method: "textDocument/willSaveWaitUntil",
				RegisterOptions: TextDocumentRegistrationOptions{
					DocumentSelector: []DocumentFilter{
						{
							Scheme:   "file",
							Language: "riscv",
						},
					},
				},
			},
		},
	}

	go conn.Call(context.Background(), "client/registerCapability", params, nil)
}
