package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/five82/lifter/internal/app"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "override config path (optional)")
	dataDir := flag.String("data", "", "directory for plans, custom exercises and favorites (optional)")
	catalogSource := flag.String("catalog", "", `exercise catalog: "bundled", a file path, or an http(s) URL (optional)`)
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	opts := app.Options{
		ConfigPath:    *configPath,
		DataDir:       *dataDir,
		CatalogSource: *catalogSource,
	}

	if err := app.Run(ctx, opts); err != nil {
		fmt.Fprintf(os.Stderr, "lifter: %v\n", err)
		return 1
	}
	return 0
}
