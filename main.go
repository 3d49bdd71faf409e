package main

import (
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	configPath string
	useMemory  bool
)

var rootCmd = &cobra.Command{
	Use:   "repair_desk",
	Short: "Equipment repair reporting backed by Google Sheets",
	Long: `repair_desk serves a repair report form and a task board. Reports are
appended to a Google Sheets worksheet and task status is updated in place.

Running without a subcommand is the same as "repair_desk serve".`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runServe,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Optional YAML config file")
	rootCmd.PersistentFlags().BoolVar(&useMemory, "memory", false, "Use an in-memory table instead of Google Sheets")

	serveCmd.Flags().StringVar(&listenAddr, "addr", "", "Listen address (overrides PORT and LISTEN_ADDR)")
	rootCmd.Flags().AddFlagSet(serveCmd.Flags())

	rootCmd.AddCommand(serveCmd, tasksCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("Command failed")
		os.Exit(1)
	}
}
