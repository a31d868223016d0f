package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"cinelog/internal/catalog"
	"cinelog/internal/config"
)

func newExportCommand(ctx *commandContext) *cobra.Command {
	var outputPath string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the ranked catalog as CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			return ctx.withStore(func(store *catalog.Store) error {
				movies, err := store.ListRanked(cmd.Context())
				if err != nil {
					return err
				}

				if outputPath == "-" {
					return catalog.ExportCSV(cmd.OutOrStdout(), movies)
				}

				target, err := resolveExportPath(cfg, outputPath)
				if err != nil {
					return err
				}
				if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
					return fmt.Errorf("create export directory: %w", err)
				}
				file, err := os.Create(target)
				if err != nil {
					return fmt.Errorf("create export file: %w", err)
				}
				defer file.Close()

				if err := catalog.ExportCSV(file, movies); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Exported %d movies to %s\n", len(movies), target)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Export file path (\"-\" for stdout)")
	return cmd
}

func resolveExportPath(cfg *config.Config, flagValue string) (string, error) {
	if value := strings.TrimSpace(flagValue); value != "" {
		return config.ExpandPath(value)
	}
	dir := cfg.Paths.ExportDir
	if dir == "" {
		working, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("resolve working directory: %w", err)
		}
		dir = working
	}
	return filepath.Join(dir, "movies.csv"), nil
}
