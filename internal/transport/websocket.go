// SPDX-License-Identifier: MIT
package transport

import (
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"audioendpoints/internal/audio"
	"audioendpoints/internal/config"
	applog "audioendpoints/internal/log"

	"github.com/gorilla/websocket"
)

// OpEnumerate asks the server for the current endpoint list.
const OpEnumerate = "enumerate"

// Request is a message sent by a host application.
type Request struct {
	Op  string `json:"op"`
	Seq uint64 `json:"seq"`
}

// Response answers exactly one Request. Seq echoes the request.
type Response struct {
	Op        string           `json:"op"`
	Seq       uint64           `json:"seq"`
	Endpoints []audio.Endpoint `json:"endpoints,omitzero"`
	Error     string           `json:"error,omitempty"`
}

// WebSocketServer answers endpoint requests from host applications over
// WebSocket. It only replies; nothing is pushed unsolicited.
type WebSocketServer struct {
	addr         string
	path         string
	writeTimeout time.Duration
	source       EndpointSource

	upgrader  websocket.Upgrader
	clients   map[*websocket.Conn]struct{}
	clientsMu sync.Mutex

	server   *http.Server
	listener net.Listener
}

// NewWebSocketServer creates a server for source. Call Start to listen, or
// mount Handler on an existing mux.
func NewWebSocketServer(cfg config.ServerConfig, source EndpointSource) *WebSocketServer {
	wss := &WebSocketServer{
		addr:         cfg.Addr,
		path:         cfg.Path,
		writeTimeout: cfg.WriteTimeout,
		source:       source,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			// Host UIs connect from file:// and app:// origins.
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		clients: make(map[*websocket.Conn]struct{}),
	}
	if wss.writeTimeout <= 0 {
		wss.writeTimeout = config.DefaultWriteTimeout
	}
	return wss
}

// Handler returns the HTTP handler serving the WebSocket path.
func (wss *WebSocketServer) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(wss.path, wss.handleWebSocket)
	return mux
}

// Start listens on the configured address and serves in the background.
// Listen errors are returned directly.
func (wss *WebSocketServer) Start() error {
	ln, err := net.Listen("tcp", wss.addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", wss.addr, err)
	}
	wss.listener = ln
	wss.server = &http.Server{
		Handler:           wss.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		applog.Infof("WebSocketServer: listening on ws://%s%s", ln.Addr(), wss.path)
		if err := wss.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			applog.Errorf("WebSocketServer: server error: %v", err)
		}
	}()
	return nil
}

// Addr returns the address the server is listening on, or the configured
// address before Start.
func (wss *WebSocketServer) Addr() string {
	if wss.listener != nil {
		return wss.listener.Addr().String()
	}
	return wss.addr
}

func (wss *WebSocketServer) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := wss.upgrader.Upgrade(w, r, nil)
	if err != nil {
		applog.Warnf("WebSocketServer: upgrade error: %v", err)
		return
	}

	n := wss.register(conn)
	applog.Debugf("WebSocketServer: client %s connected, total: %d", conn.RemoteAddr(), n)

	defer func() {
		n := wss.unregister(conn)
		conn.Close()
		applog.Debugf("WebSocketServer: client %s disconnected, total: %d", conn.RemoteAddr(), n)
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				applog.Warnf("WebSocketServer: read error: %v", err)
			}
			return
		}

		resp := wss.dispatch(data)
		conn.SetWriteDeadline(time.Now().Add(wss.writeTimeout))
		if err := conn.WriteJSON(resp); err != nil {
			applog.Warnf("WebSocketServer: error sending to client: %v", err)
			return
		}
	}
}

// dispatch decodes one request and builds its response.
func (wss *WebSocketServer) dispatch(data []byte) Response {
	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		return Response{Error: fmt.Sprintf("malformed request: %v", err)}
	}

	resp := Response{Op: req.Op, Seq: req.Seq}
	switch req.Op {
	case OpEnumerate:
		endpoints, err := wss.source.EnumerateEndpoints()
		if err != nil {
			resp.Error = err.Error()
			return resp
		}
		resp.Endpoints = endpoints
	default:
		resp.Error = fmt.Sprintf("unknown op %q", req.Op)
	}
	return resp
}

func (wss *WebSocketServer) register(conn *websocket.Conn) int {
	wss.clientsMu.Lock()
	defer wss.clientsMu.Unlock()
	wss.clients[conn] = struct{}{}
	return len(wss.clients)
}

func (wss *WebSocketServer) unregister(conn *websocket.Conn) int {
	wss.clientsMu.Lock()
	defer wss.clientsMu.Unlock()
	delete(wss.clients, conn)
	return len(wss.clients)
}

// Close disconnects all clients and shuts the server down.
func (wss *WebSocketServer) Close() error {
	applog.Debugf("WebSocketServer: closing")

	wss.clientsMu.Lock()
	for client := range wss.clients {
		client.Close()
	}
	wss.clients = make(map[*websocket.Conn]struct{})
	wss.clientsMu.Unlock()

	if wss.server != nil {
		return wss.server.Close()
	}
	return nil
}
