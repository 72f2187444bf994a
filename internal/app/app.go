// Package app implements the live monitor server: extracted records
// are stored in BoltDB and broadcast to websocket clients as they are
// emitted.
package app

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
	"go.etcd.io/bbolt"

	"RogueMon/internal/model"
)

var recordsBucket = []byte("records")

// App owns the record store, the websocket client set and the HTTP
// server. Only the extraction goroutine publishes; handlers read.
type App struct {
	DB     *bbolt.DB
	Mux    *http.ServeMux
	Server *http.Server

	header []string

	mu        sync.Mutex
	clients   map[*websocket.Conn]bool
	published int
	last      string
	summary   model.Summary
}

// New opens (or creates) the BoltDB store at dbPath and prepares the
// routes. header is the configured column list, Timestamp first.
func New(dbPath string, header []string) (*App, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create store dir: %w", err)
		}
	}
	db, err := bbolt.Open(dbPath, 0o666, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open record store: %w", err)
	}

	a := &App{
		DB:      db,
		Mux:     http.NewServeMux(),
		header:  header,
		clients: map[*websocket.Conn]bool{},
	}
	a.registerRoutes()
	return a, nil
}

// Start launches the HTTP server. This call blocks until the server
// stops or fails.
func (a *App) Start(addr string) error {
	a.Server = &http.Server{Addr: addr, Handler: a.Mux}
	log.Info().Str("addr", addr).Msg("live monitor listening")
	if err := a.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("live monitor server: %w", err)
	}
	return nil
}

// Stop gracefully shuts down the server, disconnects websocket clients
// and closes the record store.
func (a *App) Stop() {
	if a.Server != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := a.Server.Shutdown(ctx); err != nil {
			log.Warn().Err(err).Msg("live monitor shutdown")
		}
	}
	a.mu.Lock()
	for c := range a.clients {
		_ = c.Close()
	}
	a.clients = map[*websocket.Conn]bool{}
	a.mu.Unlock()
	if a.DB != nil {
		if err := a.DB.Close(); err != nil {
			log.Warn().Err(err).Msg("close record store")
		}
	}
}
