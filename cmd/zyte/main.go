package main

import (
	stderrors "errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/zyte-go/zyte/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const banner = `
  ╔═╗┬ ┬┌┬┐┌─┐
  ╔═╝└┬┘ │ ├┤
  ╚═╝ ┴  ┴ └─┘
`

func main() {
	var verbose bool

	rootCmd := &cobra.Command{
		Use:   "zyte",
		Short: "Server-rendered pages from templates and component modules",
		Long: `Zyte renders HTML pages on the server.

Routes are directories: each one holds a component module (.js) and an
HTML template with {{ ... }} expressions evaluated against the module's
exports. Features include:

  • File-based routing
  • Response caching with pre-warming
  • Hot reload development server
  • Static export and S3 deploy`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
				Level: level,
			})))
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(
		createCmd(),
		addCmd(),
		devCmd(),
		serveCmd(),
		buildCmd(),
		deployCmd(),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		var zerr *errors.Error
		if stderrors.As(err, &zerr) {
			fmt.Fprintln(os.Stderr, errors.Format(zerr))
		} else {
			fmt.Fprintf(os.Stderr, "\033[31mError:\033[0m %s\n", err)
		}
		os.Exit(1)
	}
}

// printBanner prints the ASCII art banner.
func printBanner() {
	fmt.Print(banner)
}

// success prints a success message.
func success(format string, args ...any) {
	fmt.Printf("\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}

// info prints an info message.
func info(format string, args ...any) {
	fmt.Printf("  %s\n", fmt.Sprintf(format, args...))
}

// warn prints a warning message.
func warn(format string, args ...any) {
	fmt.Printf("\033[33m⚠\033[0m %s\n", fmt.Sprintf(format, args...))
}
