package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/zyte-go/zyte/internal/config"
	"github.com/zyte-go/zyte/internal/dev"
	"github.com/zyte-go/zyte/pkg/component"
	"github.com/zyte-go/zyte/pkg/router"
	"github.com/zyte-go/zyte/pkg/server"
)

func devCmd() *cobra.Command {
	var (
		port int
		host string
	)

	cmd := &cobra.Command{
		Use:   "dev",
		Short: "Start the development server",
		Long: `Start the development server with hot reload.

The dev server watches the routes tree, re-reads component modules on
every request, and refreshes connected browsers on change. The response
cache is disabled so edits are always visible.

Examples:
  zyte dev
  zyte dev --port=8080
  zyte dev --host=0.0.0.0`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDev(port, host)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to run on (default from zyte.json)")
	cmd.Flags().StringVarP(&host, "host", "H", "", "Host to bind to (default from zyte.json)")

	return cmd
}

func runDev(port int, host string) error {
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

	printBanner()
	fmt.Println("  dev")
	fmt.Println()

	reload := dev.NewReloadServer()
	defer reload.Close()

	srv := server.New(server.Config{
		Address:      cfg.Address(),
		RoutesDir:    cfg.RoutesPath(),
		AppComponent: cfg.AppComponentPath(),
		PublicDir:    cfg.PublicPath(),
		SiteURL:      cfg.SiteURL,
		CacheEnabled: false,
		ReloadPolicy: component.ReloadAlways,
		Middleware:   []func(http.Handler) http.Handler{dev.InjectScript},
		OnRenderError: func(path string, err error) {
			reload.NotifyError(err.Error())
		},
	})
	srv.Mount(dev.ReloadEndpoint, reload)

	watcher, err := dev.NewWatcher(dev.WatcherConfig{
		Paths: watchPaths(cfg),
	})
	if err != nil {
		return err
	}
	watcher.OnChange(func(path string) {
		srv.Reload()
		if strings.HasSuffix(path, router.StyleExt) {
			reload.NotifyCSS(filepath.Base(path))
		} else {
			reload.NotifyReload()
		}
		if n := reload.ClientCount(); n > 0 {
			success("Reloaded %d browsers", n)
		}
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Println("\n\n  Shutting down...")
		cancel()
		srv.Shutdown(context.Background())
	}()

	go watcher.Run(ctx)

	info("Serving http://%s", cfg.Address())
	info("Watching %s", cfg.Paths.Routes)
	fmt.Println()

	return srv.Start(ctx)
}

// watchPaths lists the directories the dev watcher monitors. The app
// component lives outside the routes tree, so its directory is included.
func watchPaths(cfg *config.Config) []string {
	paths := []string{cfg.RoutesPath()}
	appDir := filepath.Dir(cfg.AppComponentPath())
	if appDir != cfg.RoutesPath() {
		paths = append(paths, appDir)
	}
	if st, err := os.Stat(cfg.PublicPath()); err == nil && st.IsDir() {
		paths = append(paths, cfg.PublicPath())
	}
	return paths
}
