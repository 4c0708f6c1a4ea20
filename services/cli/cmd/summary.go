package cmd

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/spf13/cobra"

	"github.com/02loveslollipop/bikeshare-dashboard/services/api/bootstrap"
	"github.com/02loveslollipop/bikeshare-dashboard/services/api/dashboard"
	"github.com/02loveslollipop/bikeshare-dashboard/services/api/present"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Print headline metrics and category breakdowns",
	Long: `Print the dashboard metrics for a selection of years and seasons.

Examples:
  bikeshare summary                          # Every year and season
  bikeshare summary --year 2011 --season 1,2 # 2011 spring and summer
  bikeshare summary --json                   # Full view model as JSON`,
	RunE: runSummary,
}

func init() {
	rootCmd.AddCommand(summaryCmd)

	addSelectionFlags(summaryCmd)
	summaryCmd.Flags().Bool("json", false, "output the view model as JSON")
}

func runSummary(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	tables, err := bootstrap.LoadTables(ctx, sourceConfig(), log)
	if err != nil {
		return err
	}
	dash := dashboard.New(tables, dashboard.WithLogger(log))

	sel, err := selectionFromFlags(cmd, tables.Domain())
	if err != nil {
		return err
	}
	vm, err := dash.Render(ctx, sel)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(vm)
	}

	for _, w := range vm.Warnings {
		fmt.Fprintf(out, "warning: %s\n", w)
	}

	metrics := make([][]string, 0, len(vm.Metrics))
	for _, m := range vm.Metrics {
		metrics = append(metrics, []string{m.Label, m.Value})
	}
	if err := renderTable(out, []string{"Metric", "Value"}, metrics); err != nil {
		return err
	}

	fmt.Fprintln(out)
	if err := renderTable(out, []string{"Season", "Total", "Average", "Median"}, breakdownRows(vm.Seasons)); err != nil {
		return err
	}

	fmt.Fprintln(out)
	return renderTable(out, []string{"Weather", "Total", "Average", "Median"}, breakdownRows(vm.Weather))
}

func breakdownRows(b present.Breakdown) [][]string {
	totals := b.Totals.Series[0].Data
	means := b.Means.Series[0].Data
	rows := make([][]string, 0, len(b.Boxes))
	for i, box := range b.Boxes {
		rows = append(rows, []string{
			box.Label,
			present.FormatInt(int(totals[i].Value)),
			present.FormatInt(int(math.Round(means[i].Value))),
			present.FormatInt(int(math.Round(box.Box.Median))),
		})
	}
	return rows
}
