// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/danielhkuo/garkas/auth"
	"github.com/danielhkuo/garkas/cliparse"
)

// RootOptions holds the configuration shared by all commands
type RootOptions struct {
	Config cliparse.Config

	// Prompter overrides the terminal prompt (for testing)
	Prompter Prompter
}

// Prompter asks for the access code and for confirmations
type Prompter interface {
	auth.Prompter
	Confirm(question string) (bool, error)
}

// NewRootCommand creates the garkas command tree
func NewRootCommand() *cobra.Command {
	return newRootCommand(&RootOptions{})
}

func newRootCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "garkas",
		Short: "Garka log - events, awards and the yearly podium",
		Long: `Keeps a log of events and the garkas handed out at each of them,
and ranks the most awarded persons on a yearly podium.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := cliparse.ApplyEnv(&opts.Config); err != nil {
				return err
			}
			return setupLogging(cmd.ErrOrStderr(), opts.Config.LogLevel)
		},
	}

	cliparse.Bind(cmd.PersistentFlags(), &opts.Config)

	cmd.AddCommand(NewServeCommand(opts))
	cmd.AddCommand(NewPodiumCommand(opts))
	cmd.AddCommand(NewExportCommand(opts))
	cmd.AddCommand(NewImportCommand(opts))

	return cmd
}

func setupLogging(w io.Writer, level string) error {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "", "info":
		lvl = slog.LevelInfo
	case "warn", "warning":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be debug, info, warn or error", level)
	}

	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})
	slog.SetDefault(slog.New(handler))
	return nil
}

func (o *RootOptions) prompter(cmd *cobra.Command) Prompter {
	if o.Prompter != nil {
		return o.Prompter
	}
	return auth.NewTermPrompter(os.Stdin, cmd.ErrOrStderr())
}
