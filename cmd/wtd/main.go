package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ssafy-wtd/wtd/internal/app"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "override wtd config path (optional)")
	prefsPath := flag.String("prefs", "", "override UI preferences path (optional)")
	logLevel := flag.String("log-level", "", "log level: debug, info, warn or error (optional)")
	sessionID := flag.String("session", "", "resume a stored filter session by id (optional)")
	once := flag.Bool("once", false, "run one search with the stored filters and print JSON")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	opts := app.Options{
		ConfigPath: *configPath,
		PrefsPath:  *prefsPath,
		LogLevel:   *logLevel,
		SessionID:  *sessionID,
		Once:       *once,
		Out:        os.Stdout,
	}

	if err := app.Run(ctx, opts); err != nil {
		fmt.Fprintf(os.Stderr, "wtd: %v\n", err)
		return 1
	}
	return 0
}
