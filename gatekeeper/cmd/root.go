// Package cmd provides the command-line interface for gatekeeper.
package cmd

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"

	"github.com/sarchlab/gatekeeper/config"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "gatekeeper",
	Short: "Gatekeeper controls a single-lane vehicle gate.",
	Long: `Gatekeeper controls a single-lane vehicle gate with a capacity ` +
		`limit, credential check and automatic-entry hours. The CLI replays ` +
		`scripted scenarios on a simulated gate and shows the resolved ` +
		`configuration.`,
}

func init() {
	rootCmd.PersistentFlags().String("env", "",
		"load GATE_* variables from this file before reading the environment")
}

// Execute adds all child commands to the root command and sets flags
// appropriately. Exit handlers, such as flushing passage records, run before
// the process ends.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)

	err := rootCmd.ExecuteContext(ctx)

	stop()

	if err != nil {
		atexit.Exit(1)
	}

	atexit.Exit(0)
}

func loadConfig(cmd *cobra.Command) (config.Config, error) {
	envFile, _ := cmd.Flags().GetString("env")

	c, err := config.Load(envFile)
	if err != nil {
		return config.Config{}, err
	}

	if err := c.Validate(); err != nil {
		return config.Config{}, err
	}

	return c, nil
}
