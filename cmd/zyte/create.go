package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/zyte-go/zyte/internal/errors"
	"github.com/zyte-go/zyte/internal/templates"
)

func createCmd() *cobra.Command {
	var (
		template    string
		description string
	)

	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a new project",
		Long: `Create a new project with the specified name.

The scaffold contains zyte.json, an app shell component, and a sample
route under app/routes/.

Examples:
  zyte create my-site
  zyte create my-site --description="Marketing pages"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCreate(args[0], template, description)
		},
	}

	cmd.Flags().StringVarP(&template, "template", "t", "default", "Project template")
	cmd.Flags().StringVarP(&description, "description", "d", "", "Project description")

	return cmd
}

func runCreate(name, templateName, description string) error {
	printBanner()
	fmt.Println("  Creating a new project...")
	fmt.Println()

	if !isValidProjectName(name) {
		return errors.Newf(errors.CategoryCLI, "invalid project name %q", name).
			WithSuggestion("Use lowercase letters, numbers, and hyphens")
	}

	projectDir, err := filepath.Abs(name)
	if err != nil {
		return err
	}
	if _, err := os.Stat(projectDir); !os.IsNotExist(err) {
		return errors.Newf(errors.CategoryCLI, "directory %q already exists", name).
			WithSuggestion("Choose a different name or remove the existing directory")
	}

	tmpl, err := templates.Get(templateName)
	if err != nil {
		return err
	}

	info("Creating project directory...")
	if err := os.MkdirAll(projectDir, 0o755); err != nil {
		return err
	}

	info("Creating project from %q template...", templateName)
	cfg := templates.Config{
		ProjectName: name,
		Description: description,
	}
	if err := tmpl.Create(projectDir, cfg); err != nil {
		os.RemoveAll(projectDir)
		return err
	}

	fmt.Println()
	success("Created %s/", name)
	fmt.Println()
	fmt.Println("  To get started:")
	fmt.Println()
	fmt.Printf("    cd %s\n", name)
	fmt.Println("    zyte dev")
	fmt.Println()
	fmt.Println("  Your site will be running at http://localhost:3000")
	fmt.Println()

	return nil
}

func isValidProjectName(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		if r == ' ' || r == '/' || r == '\\' {
			return false
		}
		if i == 0 && r >= '0' && r <= '9' {
			return false
		}
	}
	return true
}
