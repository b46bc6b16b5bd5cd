package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/aligntogether/taskhub/internal/client/api"
	"github.com/aligntogether/taskhub/internal/client/cli"
	"github.com/aligntogether/taskhub/internal/client/session"
)

func main() {
	server := flag.String("server", envOr("TASKHUB_SERVER", "http://localhost:8080"), "taskhub server base URL")
	dataDir := flag.String("data", defaultDataDir(), "directory for local session state")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := os.MkdirAll(*dataDir, 0o700); err != nil {
		fmt.Fprintf(os.Stderr, "create data dir: %v\n", err)
		os.Exit(1)
	}

	store, err := session.OpenStore(ctx, filepath.Join(*dataDir, "session.db"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "open session store: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	app := cli.NewApp(api.New(*server), session.NewManager(store))
	if err := app.Startup(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "startup: %v\n", err)
		os.Exit(1)
	}

	app.Run(ctx, bufio.NewScanner(os.Stdin))
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".taskhub"
	}
	return filepath.Join(home, ".taskhub")
}
