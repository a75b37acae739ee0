package main

import (
	"context"
	"flag"
	"log"
	"os/exec"
	"os/signal"
	"runtime"
	"strings"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"chess3d/internal/server/game"
	httpserver "chess3d/internal/server/http"
)

func openBrowser(url string) {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	case "darwin":
		cmd = exec.Command("open", url)
	default: // linux / bsd
		cmd = exec.Command("xdg-open", url)
	}

	_ = cmd.Start() // headless hosts have no browser
}

func main() {
	addr := flag.String("addr", ":2888", "listen address")
	webDir := flag.String("web", "", "desktop client directory; empty disables static routes")
	mobileDir := flag.String("mobile", "", "mobile client directory (defaults to -web)")
	origins := flag.String("origins", "*", "comma separated CORS origins")
	depth := flag.Int("depth", 3, "default search depth")
	thinkTime := flag.Duration("time", 3*time.Second, "default search time")
	quiesce := flag.Bool("quiesce", false, "enable quiescence search by default")
	accessLog := flag.Bool("access-log", false, "log every request")
	open := flag.Bool("open", false, "open the client in the default browser")
	flag.Parse()

	srv := httpserver.New(httpserver.Config{
		AllowOrigins: *origins,
		DefaultDepth: *depth,
		DefaultTime:  *thinkTime,
		Quiescence:   *quiesce,
		WebDir:       *webDir,
		MobileDir:    *mobileDir,
		AccessLog:    *accessLog,
	}, game.NewManager())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.Listen(*addr)
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		log.Printf("shutting down")
		return srv.Shutdown(shutdownCtx)
	})

	if *open && *webDir != "" {
		// give the listener a moment before the browser connects
		go func() {
			time.Sleep(100 * time.Millisecond)
			host := *addr
			if strings.HasPrefix(host, ":") {
				host = "127.0.0.1" + host
			}
			openBrowser("http://" + host + "/")
		}()
	}

	if err := g.Wait(); err != nil {
		log.Fatal(err)
	}
}
