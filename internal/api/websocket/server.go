package websocket

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/fortuna/scorebot/internal/assistant"
	"github.com/gorilla/websocket"
)

const (
	// Time allowed to read the next command from the peer
	idleTimeout = 5 * time.Minute

	// Time allowed to write a reply
	writeWait = 10 * time.Second

	// Maximum command size allowed from peer
	maxMessageSize = 1024

	// Sent when no handler recognizes the command
	NotUnderstood = "Sorry, I can't help with that"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// CommandHandler answers one assistant command
type CommandHandler interface {
	Handle(ctx context.Context, text string, say assistant.Say) (bool, error)
}

// Server runs conversational sessions: every text frame a client sends is a
// command, and every reply is written back as a text frame
type Server struct {
	server   *http.Server
	commands CommandHandler
	timeout  time.Duration
	sessions atomic.Int64
}

// NewServer creates a new WebSocket server
func NewServer(commands CommandHandler, timeout time.Duration) *Server {
	return &Server{
		commands: commands,
		timeout:  timeout,
	}
}

// Handler returns the HTTP routes served by the WebSocket server
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws/assistant", s.handleSession)
	mux.HandleFunc("/ws/health", s.handleHealth)
	return mux
}

// Start starts the WebSocket server
func (s *Server) Start(port string) error {
	s.server = &http.Server{
		Addr:              fmt.Sprintf(":%s", port),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.Printf("WebSocket server listening on :%s", port)
	return s.server.ListenAndServe()
}

// handleSession upgrades the connection and serves commands until the peer leaves
func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("Failed to upgrade connection: %v", err)
		return
	}
	defer conn.Close()

	s.sessions.Add(1)
	defer s.sessions.Add(-1)

	conn.SetReadLimit(maxMessageSize)

	for {
		text, err := s.listen(conn)
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("[ws] session read error: %v", err)
			}
			return
		}
		if text == "" {
			continue
		}

		if err := s.answer(r.Context(), conn, text); err != nil {
			log.Printf("[ws] session write error: %v", err)
			return
		}
	}
}

// listen blocks for the next text command
func (s *Server) listen(conn *websocket.Conn) (string, error) {
	conn.SetReadDeadline(time.Now().Add(idleTimeout))
	for {
		msgType, data, err := conn.ReadMessage()
		if err != nil {
			return "", err
		}
		if msgType == websocket.TextMessage {
			return strings.TrimSpace(string(data)), nil
		}
	}
}

// answer handles one command; the next one is not read until this returns
func (s *Server) answer(ctx context.Context, conn *websocket.Conn, text string) error {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	var replies []string
	say := func(msg string) { replies = append(replies, msg) }

	handled, err := s.commands.Handle(ctx, text, say)
	if err != nil {
		log.Printf("[ws] command %q: %v", text, err)
	}
	if !handled {
		replies = append(replies, NotUnderstood)
	}

	for _, reply := range replies {
		conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteMessage(websocket.TextMessage, []byte(reply)); err != nil {
			return err
		}
	}
	return nil
}

// handleHealth returns WebSocket server health status
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprintf(w, `{"status": "healthy", "sessions": %d}`, s.sessions.Load())
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
