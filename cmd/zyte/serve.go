package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/zyte-go/zyte/internal/config"
	"github.com/zyte-go/zyte/pkg/component"
	"github.com/zyte-go/zyte/pkg/server"
)

func serveCmd() *cobra.Command {
	var (
		port    int
		host    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the project",
		Long: `Serve the project with production settings.

Component modules are read once and kept for the process lifetime. The
response cache is on by default and pre-warmed when zyte.json asks for
it.

Examples:
  zyte serve
  zyte serve --port=80 --host=0.0.0.0
  zyte serve --no-cache`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(port, host, noCache)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to run on (default from zyte.json)")
	cmd.Flags().StringVarP(&host, "host", "H", "", "Host to bind to (default from zyte.json)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "Disable the response cache")

	return cmd
}

func runServe(port int, host string, noCache bool) error {
	cfg, err := config.LoadFromWorkingDir()
	if err != nil {
		return err
	}
	if port > 0 {
		cfg.Port = port
	}
	if host != "" {
		cfg.Host = host
	}
	if noCache {
		cfg.Cache.Enabled = false
	}

	srv := server.New(server.Config{
		Address:      cfg.Address(),
		RoutesDir:    cfg.RoutesPath(),
		AppComponent: cfg.AppComponentPath(),
		PublicDir:    cfg.PublicPath(),
		SiteURL:      cfg.SiteURL,
		CacheEnabled: cfg.Cache.Enabled,
		CacheMaxAge:  cfg.CacheMaxAge(),
		Prewarm:      cfg.Cache.Prewarm,
		ReloadPolicy: component.ReloadOnce,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Println("\n\n  Shutting down...")
		cancel()
		shutdownCtx, done := context.WithTimeout(context.Background(), 10*time.Second)
		defer done()
		srv.Shutdown(shutdownCtx)
	}()

	info("Serving http://%s", cfg.Address())
	fmt.Println()

	return srv.Start(ctx)
}
