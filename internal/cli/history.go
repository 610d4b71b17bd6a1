package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/rcliao/redstone-calc/internal/model"
	"github.com/rcliao/redstone-calc/internal/store"
)

func init() {
	cmd := &cobra.Command{
		Use:   "history [query]",
		Short: "Show past evaluations",
		Long:  "Show the calculation tape, newest first. A query matches the expression or the result.",
		Run:   runHistory,
	}

	cmd.Flags().StringP("outcome", "o", "", "Filter by outcome: ok, error, rejected")
	cmd.Flags().IntP("limit", "l", 20, "Max results")

	RootCmd.AddCommand(cmd)
}

func runHistory(cmd *cobra.Command, args []string) {
	outcome, _ := cmd.Flags().GetString("outcome")
	limit, _ := cmd.Flags().GetInt("limit")
	if outcome != "" && !model.ValidOutcomes[outcome] {
		exitErr("history", fmt.Errorf("invalid outcome %q (use ok, error or rejected)", outcome))
	}

	a := mustOpenApp(cmd)
	defer a.Close()

	entries, err := a.db.ListTape(cmd.Context(), store.TapeParams{
		Outcome: outcome,
		Query:   strings.Join(args, " "),
		Limit:   limit,
	})
	if err != nil {
		a.exitErr("history", err)
	}

	if jsonOutput() {
		if entries == nil {
			entries = []model.TapeEntry{}
		}
		printJSON(cmd.OutOrStdout(), entries)
		return
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	for _, e := range entries {
		detail := e.Result
		if e.Outcome == model.OutcomeError {
			detail = e.Error
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", humanize.Time(e.CreatedAt), e.Outcome, e.Expr, detail)
	}
	tw.Flush()
}
