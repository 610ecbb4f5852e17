// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/danielhkuo/garkas/models"
	"github.com/danielhkuo/garkas/transfer"
)

var errNothingToExport = errors.New("no events to export")

// NewExportCommand creates the export command
func NewExportCommand(opts *RootOptions) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write all events to a JSON file",
		Long: `Write all events to a JSON file that import can read back.

The default file name is fifa-events-<date>.json in the current directory.
Use -o - to write to standard output.

Example:
  garkas export
  garkas export -o backup.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, opts, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: fifa-events-<date>.json)")

	return cmd
}

func runExport(cmd *cobra.Command, opts *RootOptions, output string) error {
	ctx := cmd.Context()

	b, err := openBackend(ctx, opts.Config)
	if err != nil {
		return err
	}
	defer b.Close()

	events, err := b.store.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to load events: %w", err)
	}
	if len(events) == 0 {
		return errNothingToExport
	}

	// Same order as the API: newest first
	models.SortByDateDesc(events)

	if output == "-" {
		return transfer.Export(cmd.OutOrStdout(), events)
	}
	if output == "" {
		output = transfer.ExportFilename(time.Now())
	}

	f, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", output, err)
	}
	if err := transfer.Export(f, events); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", output, err)
	}

	info, err := os.Stat(output)
	if err != nil {
		return err
	}

	slog.Info("events exported", "file", output, "count", len(events), "bytes", info.Size())
	fmt.Fprintf(cmd.OutOrStdout(), "Exported %d events to %s (%s)\n",
		len(events), output, humanize.Bytes(uint64(info.Size())))
	return nil
}
