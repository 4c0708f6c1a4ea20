package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/02loveslollipop/bikeshare-dashboard/services/api/bootstrap"
	"github.com/02loveslollipop/bikeshare-dashboard/services/api/dashboard"
	"github.com/02loveslollipop/bikeshare-dashboard/services/api/present"
	"github.com/02loveslollipop/bikeshare-dashboard/services/api/report"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the filtered view to an XLSX workbook",
	Long: `Write the processed data, metrics, hourly and category breakdowns of a
selection to an XLSX workbook.

Examples:
  bikeshare export --out report.xlsx
  bikeshare export --year 2012 --season 3 --out fall-2012.xlsx`,
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)

	addSelectionFlags(exportCmd)
	exportCmd.Flags().StringP("out", "o", "report.xlsx", "output file")
}

func runExport(cmd *cobra.Command, args []string) error {
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
	rows, err := present.DataTable(dash.Select(vm.Selection).Daily)
	if err != nil {
		return err
	}

	data, err := report.NewGenerator(log).Workbook(vm, rows)
	if err != nil {
		return err
	}

	path, _ := cmd.Flags().GetString("out")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %d rows to %s\n", len(rows), path)
	return nil
}
