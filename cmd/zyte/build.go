package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/zyte-go/zyte/internal/build"
	"github.com/zyte-go/zyte/internal/config"
)

func buildCmd() *cobra.Command {
	var (
		output string
		clean  bool
	)

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Export the site as static files",
		Long: `Export the site as static files.

Every discovered route is rendered with an empty request context and
written as <route>/index.html, alongside public assets, stylesheets,
client scripts, sitemap.txt and robots.txt.

Examples:
  zyte build
  zyte build --output=out
  zyte build --clean`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(output, clean)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output directory (default from zyte.json)")
	cmd.Flags().BoolVar(&clean, "clean", false, "Clean output directory before export")

	return cmd
}

func runBuild(output string, clean bool) error {
	cfg, err := config.LoadFromWorkingDir()
	if err != nil {
		return err
	}
	if output != "" {
		cfg.Paths.Output = output
	}

	fmt.Println("  Exporting static site...")
	fmt.Println()

	if clean {
		info("Cleaning output directory...")
		if err := os.RemoveAll(cfg.OutputPath()); err != nil {
			return err
		}
	}

	exporter := build.New(cfg, build.Options{
		OnProgress: func(step string) {
			info(step)
		},
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	result, err := exporter.Export(ctx)
	if err != nil {
		return err
	}

	fmt.Println()
	success("Exported %d pages and %d assets in %s",
		result.Pages, result.Assets, result.Duration.Round(time.Millisecond))
	for _, skipped := range result.Skipped {
		warn("Skipped %s (render failed)", skipped)
	}
	fmt.Println()
	fmt.Printf("  Output: %s/\n", cfg.Paths.Output)
	fmt.Println()

	return nil
}
