// Package cmd contains the bikeshare CLI commands.
package cmd

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/02loveslollipop/bikeshare-dashboard/services/api/config"
	"github.com/02loveslollipop/bikeshare-dashboard/services/api/logger"
)

var (
	dayPath  string
	hourPath string
	verbose  bool
	cfg      config.Config
	log      logger.Logger
)

var rootCmd = &cobra.Command{
	Use:   "bikeshare",
	Short: "Bike sharing dashboard tools",
	Long: `bikeshare summarizes, exports and imports the bike sharing dataset.

Example usage:
  bikeshare summary --year 2011 --season 1,2   # Headline metrics and breakdowns
  bikeshare export --out report.xlsx           # Workbook of the filtered view
  bikeshare import                             # Load day/hour files into Postgres`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig(cmd.ErrOrStderr())
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dayPath, "day", "", "daily data file or URL (default from DAY_CSV_PATH)")
	rootCmd.PersistentFlags().StringVar(&hourPath, "hour", "", "hourly data file or URL (default from HOUR_CSV_PATH)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

func initConfig(stderr io.Writer) error {
	var err error
	cfg, err = config.Load()
	if err != nil {
		return err
	}
	if dayPath != "" {
		cfg.DayCSVPath = dayPath
	}
	if hourPath != "" {
		cfg.HourCSVPath = hourPath
	}

	level := "warn"
	if verbose {
		level = "debug"
	}
	log = logger.NewWithWriter(level, stderr)
	return nil
}

// sourceConfig is the config used to read the tables. Explicit --day or
// --hour flags select the files even when DATABASE_URL is set.
func sourceConfig() config.Config {
	c := cfg
	if c.DatabaseURL != "" && (dayPath != "" || hourPath != "") {
		log.Debugf("reading data files given on the command line instead of DATABASE_URL")
		c.DatabaseURL = ""
	}
	return c
}
