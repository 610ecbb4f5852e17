// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/danielhkuo/garkas/auth"
	"github.com/danielhkuo/garkas/refdata"
	"github.com/danielhkuo/garkas/transfer"
)

// NewImportCommand creates the import command
func NewImportCommand(opts *RootOptions) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Add the events of an exported JSON file",
		Long: `Add the events of an exported JSON file.

The whole file is checked first: it must be an array whose every event has
an id, title, date and description. Nothing is written if any event is
invalid. Imported events are added next to the existing ones.

After confirming, the access code is asked for until it matches or the
prompt is left empty.

Example:
  garkas import fifa-events-2024-07-01.json
  garkas import backup.json --yes`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd, opts, args[0], yes)
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "skip the confirmation question")

	return cmd
}

func runImport(cmd *cobra.Command, opts *RootOptions, path string, yes bool) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	events, err := transfer.ParseImport(f)
	f.Close()
	if err != nil {
		return err
	}

	prompter := opts.prompter(cmd)
	if !yes {
		ok, err := prompter.Confirm(fmt.Sprintf("Import %d events?", len(events)))
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(out, "Import cancelled.")
			return nil
		}
	}

	b, err := openBackend(ctx, opts.Config)
	if err != nil {
		return err
	}
	defer b.Close()

	gate := auth.NewGate(refdata.LoadAccessCode(ctx, opts.Config.ConfigSource))

	var imported int
	err = gate.Do(ctx, "import events", prompter, func() error {
		var importErr error
		imported, importErr = transfer.Import(ctx, b.store, events)
		return importErr
	})
	if errors.Is(err, auth.ErrCancelled) {
		fmt.Fprintln(out, "Import cancelled.")
		return nil
	}

	fmt.Fprintf(out, "Imported %d of %d events.\n", imported, len(events))
	return err
}
