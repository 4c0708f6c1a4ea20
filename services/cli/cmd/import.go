package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/02loveslollipop/bikeshare-dashboard/services/api/bootstrap"
	"github.com/02loveslollipop/bikeshare-dashboard/services/api/dataset"
	"github.com/02loveslollipop/bikeshare-dashboard/services/api/db"
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Load the day and hour files into Postgres",
	Long: `Read the day and hour files and upsert every row into bikeshare.daily and
bikeshare.hourly. The schema is created when missing. DATABASE_URL must be set.

Examples:
  bikeshare import
  bikeshare import --day data/day.csv --hour data/hour.csv
  bikeshare import --dry-run   # Parse and count rows only`,
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)

	importCmd.Flags().Bool("dry-run", false, "parse the files without writing (also DRY_RUN=1)")
}

func dryRunEnabled(cmd *cobra.Command) bool {
	if v, _ := cmd.Flags().GetBool("dry-run"); v {
		return true
	}
	env := strings.TrimSpace(os.Getenv("DRY_RUN"))
	return env == "1" || strings.EqualFold(env, "true")
}

func runImport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	day, hour := bootstrap.Sources(cfg)
	tables, err := dataset.NewLoader(nil).LoadTables(ctx, day, hour)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "parsed %d daily and %d hourly rows\n", tables.Daily().Len(), tables.Hourly().Len())

	if dryRunEnabled(cmd) {
		fmt.Fprintln(out, "dry-run: skipping database writes")
		return nil
	}
	if cfg.DatabaseURL == "" {
		return errors.New("DATABASE_URL is required")
	}

	store, err := db.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	daily, err := store.ImportDaily(ctx, tables.Daily())
	if err != nil {
		return fmt.Errorf("import daily: %w", err)
	}
	hourly, err := store.ImportHourly(ctx, tables.Hourly())
	if err != nil {
		return fmt.Errorf("import hourly: %w", err)
	}

	fmt.Fprintf(out, "upserted %d daily and %d hourly rows\n", daily, hourly)
	return nil
}
