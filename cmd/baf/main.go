// Package main contains the cli implementation of the tool. It uses
// cobra for cli tool implementation.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"baf/internal/build"
	"baf/internal/example"
	"baf/internal/model"
	"baf/internal/visualize"
)

type buildFlags struct {
	input    string
	rootPath string
	out      string
	verbose  bool
}

type visualizeFlags struct {
	input    string
	rootPath string
	verbose  bool
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "baf",
		Short: "Build-A-File: compile structured source data into a byte-exact binary file",
	}

	rootCmd.AddCommand(buildCmd())
	rootCmd.AddCommand(visualizeCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func buildCmd() *cobra.Command {
	flags := &buildFlags{}
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build a source file (.toml or .json) against the level schema",
		RunE: func(_ *cobra.Command, _ []string) error {
			return runBuild(flags)
		},
	}
	cmd.Flags().StringVarP(&flags.input, "input", "i", "", "Path to TOML or JSON source data (required)")
	cmd.Flags().StringVar(&flags.rootPath, "root-path", "", "Root path for File fields (defaults to the input file's directory)")
	cmd.Flags().StringVarP(&flags.out, "out", "o", "", "Output file for the built bytes (defaults to stdout)")
	cmd.Flags().BoolVarP(&flags.verbose, "verbose", "v", false, "Log one entry per scheduler pass")
	return cmd
}

func visualizeCmd() *cobra.Command {
	flags := &visualizeFlags{}
	cmd := &cobra.Command{
		Use:   "visualize",
		Short: "Build a source file and print its datum tree",
		RunE: func(_ *cobra.Command, _ []string) error {
			return runVisualize(flags)
		},
	}
	cmd.Flags().StringVarP(&flags.input, "input", "i", "", "Path to TOML or JSON source data (required)")
	cmd.Flags().StringVar(&flags.rootPath, "root-path", "", "Root path for File fields (defaults to the input file's directory)")
	cmd.Flags().BoolVarP(&flags.verbose, "verbose", "v", false, "Log one entry per scheduler pass")
	return cmd
}

func runBuild(flags *buildFlags) error {
	if flags.input == "" {
		return fmt.Errorf("--input is required")
	}

	root, err := buildLevel(flags.input, flags.rootPath, flags.verbose)
	if err != nil {
		return fmt.Errorf("build failed: %w", err)
	}

	bytes, err := root.Bytes()
	if err != nil {
		return fmt.Errorf("build finished but root datum has no bytes: %w", err)
	}

	if flags.out == "" {
		_, err := os.Stdout.Write(bytes)
		return err
	}
	if err := os.WriteFile(flags.out, bytes, 0o644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	fmt.Printf("wrote %d bytes to %s\n", len(bytes), flags.out)
	return nil
}

func runVisualize(flags *visualizeFlags) error {
	if flags.input == "" {
		return fmt.Errorf("--input is required")
	}

	root, err := buildLevel(flags.input, flags.rootPath, flags.verbose)
	if err != nil {
		return fmt.Errorf("build failed: %w", err)
	}
	fmt.Print(visualize.Visualize(root))
	return nil
}

func buildLevel(input, rootPath string, verbose bool) (*model.Datum, error) {
	opts := build.Options{RootPath: rootPath}
	if verbose {
		opts.Logger = logrus.New()
		opts.Logger.SetLevel(logrus.DebugLevel)
	}

	schema := example.Level()
	ctx := context.Background()

	switch strings.ToLower(filepath.Ext(input)) {
	case ".toml":
		return build.BuildTOML(ctx, schema, input, opts)
	case ".json":
		return build.BuildJSON(ctx, schema, input, opts)
	default:
		return nil, fmt.Errorf("unsupported input extension %q (expected .toml or .json)", filepath.Ext(input))
	}
}
