package commands

import (
	"github.com/spf13/cobra"

	"rollbook/internal/config"
	"rollbook/internal/store"
)

var storeFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "rollbook",
	Short: "Rollbook - organize tabular attendance exports",
	Long: `Rollbook ingests CSV/TSV attendance exports (arbitrary delimiter,
varying column names), normalizes them into per-person event histories
keyed by email, and renders attendance tables, histories, and a small
web dashboard.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&storeFile, "store", "", "path to the attendance data store")
}

// resolveStorePath prefers the --store flag over the environment config.
func resolveStorePath() string {
	if storeFile != "" {
		return storeFile
	}
	return config.Load().StorePath
}

// openStore opens the configured attendance store.
func openStore() (*store.Store, error) {
	return store.Open(resolveStorePath())
}
