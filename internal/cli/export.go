package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/quartetlab/quartet/infrastructure/storage"
)

var exportDir string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write collected study data as CSV files",
	Long: "Export writes generations.csv, scores.csv, and ratings.csv " +
		"from the configured database into the output directory.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runExport(cmd.Context(), exportDir)
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportDir, "out", "o", "exports", "output directory")
	rootCmd.AddCommand(exportCmd)
}

func runExport(ctx context.Context, dir string) error {
	db, err := storage.Open(currentConfig.DatabaseURL)
	if err != nil {
		return err
	}
	exporter := storage.NewExporter(db)

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	exports := []struct {
		name  string
		write func(context.Context, *os.File) error
	}{
		{"generations.csv", func(ctx context.Context, f *os.File) error { return exporter.ExportGenerations(ctx, f) }},
		{"scores.csv", func(ctx context.Context, f *os.File) error { return exporter.ExportScores(ctx, f) }},
		{"ratings.csv", func(ctx context.Context, f *os.File) error { return exporter.ExportRatings(ctx, f) }},
	}

	for _, exp := range exports {
		path := filepath.Join(dir, exp.name)
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", path, err)
		}
		if err := exp.write(ctx, f); err != nil {
			f.Close()
			return fmt.Errorf("failed to export %s: %w", exp.name, err)
		}
		if err := f.Close(); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", path)
	}
	return nil
}
