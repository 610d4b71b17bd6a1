package cli

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show storage statistics",
		Run:   runStats,
	}

	RootCmd.AddCommand(cmd)
}

func runStats(cmd *cobra.Command, args []string) {
	a := mustOpenApp(cmd)
	defer a.Close()

	stats, err := a.db.Stats(cmd.Context(), a.cfg.DBPath())
	if err != nil {
		a.exitErr("stats", err)
	}
	// The text backend keeps slots outside the database.
	stats.Slots = a.slots.Len()

	if jsonOutput() {
		printJSON(cmd.OutOrStdout(), stats)
		return
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "database: %s (%s)\n", stats.DBPath, humanize.Bytes(uint64(stats.DBSizeBytes)))
	fmt.Fprintf(out, "backend:  %s\n", a.cfg.SlotsBackend)
	fmt.Fprintf(out, "slots:    %d\n", stats.Slots)
	fmt.Fprintf(out, "tape:     %s entries\n", humanize.Comma(int64(stats.TapeEntries)))
	for _, oc := range stats.Outcomes {
		fmt.Fprintf(out, "  %-9s %d\n", oc.Outcome, oc.Count)
	}
}
