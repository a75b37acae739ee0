// Package mobile is the gomobile entry point. The app extracts the web
// client to disk and talks to the engine over a loopback server.
package mobile

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"chess3d/internal/server/game"
	httpserver "chess3d/internal/server/http"
)

var (
	mu      sync.Mutex
	running *httpserver.Server
)

// StartServer starts the local server in the background.
// webDir: physical path to the extracted web assets
// port: port to listen on, e.g. "2888"
func StartServer(webDir string, port string) error {
	mu.Lock()
	defer mu.Unlock()
	if running != nil {
		return errors.New("server already running")
	}

	srv := httpserver.New(httpserver.Config{
		AllowOrigins: "http://127.0.0.1:" + port,
		WebDir:       webDir,
		MobileDir:    webDir,
	}, game.NewManager())
	running = srv

	// Run in background so it doesn't block the UI thread
	go func() {
		if err := srv.Listen("127.0.0.1:" + port); err != nil {
			log.Printf("server error: %v", err)
			release(srv)
		}
	}()
	return nil
}

// release forgets srv if it is still the running server.
func release(srv *httpserver.Server) {
	mu.Lock()
	defer mu.Unlock()
	if running == srv {
		running = nil
	}
}

// StopServer shuts the local server down. It is a no-op when nothing runs.
func StopServer() error {
	mu.Lock()
	srv := running
	running = nil
	mu.Unlock()
	if srv == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}
