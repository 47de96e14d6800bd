package languageServer

import (
	"sync"

	"github.com/gorilla/websocket"
)

// webSocketStream adapts a websocket connection to the jsonrpc2 ObjectStream
// interface. Websocket frames already delimit messages, so no length-header
// codec is needed; every frame is one JSON-RPC object. Writes are serialized
// because the underlying connection permits only one concurrent writer.
type webSocketStream struct {
	conn    *websocket.Conn
	writeMu sync.Mutex
}

func newWebSocketStream(conn *websocket.Conn) *webSocketStream {
	return &webSocketStream{conn: conn}
}

func (s *webSocketStream) WriteObject(obj interface{}) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	return s.conn.WriteJSON(obj)
}

func (s *webSocketStream) ReadObject(v interface{}) error {
	return s.conn.ReadJSON(v)
}

func (s *webSocketStream) Close() error {
	return s.conn.Close()
}
