package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zyte-go/zyte/internal/config"
	"github.com/zyte-go/zyte/internal/errors"
	"github.com/zyte-go/zyte/internal/templates"
)

func addCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <route>",
		Short: "Add a route to the project",
		Long: `Add a route to the project.

Creates a directory under the routes path with a component module and
an HTML template. Nested routes use slashes.

Examples:
  zyte add about
  zyte add blog/archive`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdd(args[0])
		},
	}

	return cmd
}

func runAdd(route string) error {
	cfg, err := config.LoadFromWorkingDir()
	if err != nil {
		return err
	}

	route = strings.Trim(route, "/")
	if route == "" || !isValidRoutePath(route) {
		return errors.Newf(errors.CategoryCLI, "invalid route %q", route).
			WithSuggestion("Use URL path segments such as about or blog/archive")
	}

	dir := filepath.Join(cfg.RoutesPath(), filepath.FromSlash(route))
	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		return errors.Newf(errors.CategoryCLI, "route %q already exists", route).
			WithLocation(dir, 0)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	for name, content := range templates.RouteFiles(route) {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			return err
		}
	}

	success("Created route /%s", route)
	fmt.Println()
	info("Edit %s to get started", filepath.Join(dir, "page.html"))
	fmt.Println()

	return nil
}

func isValidRoutePath(route string) bool {
	for _, seg := range strings.Split(route, "/") {
		if seg == "" || seg == "." || seg == ".." {
			return false
		}
		for _, r := range seg {
			if r == ' ' || r == '\\' {
				return false
			}
		}
	}
	return true
}
