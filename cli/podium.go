// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/danielhkuo/garkas/models"
	"github.com/danielhkuo/garkas/podium"
	"github.com/danielhkuo/garkas/refdata"
)

// NewPodiumCommand creates the podium command
func NewPodiumCommand(opts *RootOptions) *cobra.Command {
	var year int

	cmd := &cobra.Command{
		Use:   "podium",
		Short: "Print the podium for a year",
		Long: `Print the three persons with the most garkas in a year.

Without --year the current year is used. A year without events falls back to
the most recent year that has some.

Example:
  garkas podium
  garkas podium --year 2023`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if year == 0 {
				year = time.Now().Year()
			}
			return runPodium(cmd, opts, year)
		},
	}

	cmd.Flags().IntVarP(&year, "year", "y", 0, "year to rank (default: current year)")

	return cmd
}

func runPodium(cmd *cobra.Command, opts *RootOptions, year int) error {
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
	persons := refdata.LoadPersons(ctx, opts.Config.PersonsSource)

	view, _ := podium.Build(events, persons, year)
	printPodium(cmd.OutOrStdout(), view)
	return nil
}

func printPodium(w io.Writer, view models.PodiumView) {
	switch view.State {
	case models.PodiumNoEvents:
		fmt.Fprintln(w, "No events yet.")
		return
	case models.PodiumNoGarkas:
		fmt.Fprintf(w, "No garkas in %d.\n", view.Year)
	default:
		fmt.Fprintf(w, "Podium %d\n", view.Year)
		for _, p := range view.Places {
			noun := "garkas"
			if p.Count == 1 {
				noun = "garka"
			}
			fmt.Fprintf(w, "  %-4s %s %-12s %d %s\n", humanize.Ordinal(p.Rank), p.Medal, p.Name, p.Count, noun)
		}
	}

	years := make([]string, len(view.Years))
	for i, y := range view.Years {
		years[i] = strconv.Itoa(y)
	}
	fmt.Fprintf(w, "Years: %s\n", strings.Join(years, ", "))
}
