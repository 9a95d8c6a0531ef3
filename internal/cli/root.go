package cli

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "dietplan",
	Short: "Snapshot-backed diet plan manager",
	Long: `dietplan manages clients and their diet plan snapshots on a SQLite
backend. Every meaningful edit becomes a snapshot; undo and redo walk the
snapshot history without losing any state.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to database file (overrides DIETPLAN_DB_PATH)")
}
