package cmd

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/taskbot-dev/taskbot/internal/output"
)

var countsCmd = &cobra.Command{
	Use:   "counts",
	Short: "Show per-filter task totals",
	RunE:  runCounts,
}

func init() {
	rootCmd.AddCommand(countsCmd)
}

func runCounts(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	b, closeBackend, err := newBackend(cfg)
	if err != nil {
		return err
	}
	defer closeBackend() //nolint:errcheck

	counts, err := b.Counts(context.Background())
	if err != nil {
		return err
	}

	format := outputFormat()
	if format == output.FormatJSON {
		return output.JSON(os.Stdout, counts)
	}
	if format == output.FormatCompact {
		output.CountsCompact(os.Stdout, counts)
		return nil
	}

	output.CountsTable(os.Stdout, counts)
	return nil
}
