package telemetry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const writeTimeout = time.Second

// Config holds server settings.
type Config struct {
	Addr string

	// Interval is the minimum time between broadcasts.
	Interval time.Duration
}

// Server broadcasts snapshots to websocket clients on /ws and serves
// metrics on /metrics.
type Server struct {
	config   Config
	log      *zap.Logger
	metrics  *Metrics
	limiter  *rate.Limiter
	upgrader websocket.Upgrader

	clientsMu sync.RWMutex
	clients   map[*websocket.Conn]*sync.Mutex

	pending chan Snapshot
	done    chan struct{}
	wg      sync.WaitGroup

	httpServer *http.Server
}

// New creates a server and starts its broadcast goroutine. metrics may be
// nil. Call Close to stop it.
func New(cfg Config, metrics *Metrics, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	if metrics == nil {
		metrics = NewMetrics()
	}
	limit := rate.Inf
	if cfg.Interval > 0 {
		limit = rate.Every(cfg.Interval)
	}

	s := &Server{
		config:  cfg,
		log:     log,
		metrics: metrics,
		limiter: rate.NewLimiter(limit, 1),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			// Local viewers load from file:// or another port.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		clients: make(map[*websocket.Conn]*sync.Mutex),
		pending: make(chan Snapshot, 1),
		done:    make(chan struct{}),
	}

	s.wg.Add(1)
	go s.broadcastLoop()
	return s
}

// Handler returns the HTTP routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.Handle("/metrics", s.metrics.Handler())
	return mux
}

// Start listens on the configured address and serves in the background.
// It returns the bound address, which differs from the configured one when
// the port is 0.
func (s *Server) Start() (string, error) {
	ln, err := net.Listen("tcp", s.config.Addr)
	if err != nil {
		return "", fmt.Errorf("telemetry listen %s: %w", s.config.Addr, err)
	}
	s.httpServer = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Error("telemetry server stopped", zap.Error(err))
		}
	}()

	addr := ln.Addr().String()
	s.log.Info("telemetry listening",
		zap.String("ws", "ws://"+addr+"/ws"),
		zap.String("metrics", "http://"+addr+"/metrics"))
	return addr, nil
}

// Metrics returns the collector the server exposes.
func (s *Server) Metrics() *Metrics { return s.metrics }

// Publish queues snap for broadcast without blocking. Snapshots arriving
// faster than the configured interval are dropped, and a queued snapshot
// not yet sent is replaced by the newer one. It reports whether snap was
// queued.
func (s *Server) Publish(snap Snapshot) bool {
	if !s.limiter.Allow() {
		return false
	}
	select {
	case <-s.pending:
	default:
	}
	select {
	case s.pending <- snap:
		return true
	default:
		return false
	}
}

// ClientCount returns the number of connected clients.
func (s *Server) ClientCount() int {
	s.clientsMu.RLock()
	defer s.clientsMu.RUnlock()
	return len(s.clients)
}

// Close stops the broadcaster, disconnects clients and shuts down the
// HTTP server if Start was called.
func (s *Server) Close(ctx context.Context) error {
	select {
	case <-s.done:
		return nil
	default:
		close(s.done)
	}

	var err error
	if s.httpServer != nil {
		err = s.httpServer.Shutdown(ctx)
	}

	s.clientsMu.Lock()
	for conn := range s.clients {
		conn.Close()
		delete(s.clients, conn)
	}
	s.clientsMu.Unlock()
	s.metrics.clients.Set(0)

	s.wg.Wait()
	return err
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	// Registration and wg.Add happen under clientsMu so Close either sees
	// the client or the client sees done.
	s.clientsMu.Lock()
	select {
	case <-s.done:
		s.clientsMu.Unlock()
		conn.Close()
		return
	default:
	}
	s.clients[conn] = &sync.Mutex{}
	s.metrics.clients.Set(float64(len(s.clients)))
	s.wg.Add(1)
	s.clientsMu.Unlock()
	s.log.Debug("telemetry client connected", zap.String("remote", conn.RemoteAddr().String()))

	// Clients only listen; reading detects the close.
	go func() {
		defer s.wg.Done()
		defer s.removeClient(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

func (s *Server) removeClient(conn *websocket.Conn) {
	s.clientsMu.Lock()
	_, ok := s.clients[conn]
	delete(s.clients, conn)
	if ok {
		s.metrics.clients.Set(float64(len(s.clients)))
	}
	s.clientsMu.Unlock()

	if ok {
		conn.Close()
		s.log.Debug("telemetry client disconnected")
	}
}

func (s *Server) broadcastLoop() {
	defer s.wg.Done()
	for {
		select {
		case <-s.done:
			return
		case snap := <-s.pending:
			s.broadcast(snap)
		}
	}
}

func (s *Server) broadcast(snap Snapshot) {
	payload, err := json.Marshal(snap)
	if err != nil {
		s.log.Error("encoding snapshot", zap.Error(err))
		return
	}

	var failed []*websocket.Conn
	s.clientsMu.RLock()
	for conn, mu := range s.clients {
		mu.Lock()
		conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		err := conn.WriteMessage(websocket.TextMessage, payload)
		mu.Unlock()
		if err != nil {
			failed = append(failed, conn)
			continue
		}
		s.metrics.messages.Inc()
	}
	s.clientsMu.RUnlock()

	for _, conn := range failed {
		s.removeClient(conn)
	}
}
