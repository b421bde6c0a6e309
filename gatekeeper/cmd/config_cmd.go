package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sarchlab/gatekeeper/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the resolved gate configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cmd.SilenceUsage = true

		c, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		return printConfig(cmd.OutOrStdout(), c)
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func printConfig(w io.Writer, c config.Config) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	rows := [][2]string{
		{"max capacity", fmt.Sprint(c.MaxCapacity)},
		{"initial count", fmt.Sprint(c.InitialCount)},
		{"automatic-entry hours", c.ScheduleWindow.String()},
		{"tick interval", c.TickInterval.String()},
		{"open angle", fmt.Sprintf("%d tenths of a degree", c.OpenAngleTenthsDeg)},
		{"closed angle", fmt.Sprintf("%d tenths of a degree", c.ClosedAngleTenthsDeg)},
		{"animation", c.AnimationDuration.String()},
		{"open signal", fmt.Sprintf("%dus", c.OpenSignal)},
		{"closed signal", fmt.Sprintf("%dus", c.ClosedSignal)},
		{"clearance poll", c.ClearancePollInterval.String()},
		{"open settle", c.OpenSettle.String()},
		{"close settle", c.CloseSettle.String()},
		{"record path", c.RecordPath},
	}

	for _, r := range rows {
		fmt.Fprintf(tw, "%s\t%s\n", r[0], r[1])
	}

	return tw.Flush()
}
