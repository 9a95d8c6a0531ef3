package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kamilw/dietplan/internal/history"
)

var undoCmd = &cobra.Command{
	Use:   "undo <client-uuid>",
	Short: "Undo the client's last diet change",
	Args:  cobra.ExactArgs(1),
	RunE:  runUndo,
}

var redoCmd = &cobra.Command{
	Use:   "redo <client-uuid>",
	Short: "Redo the client's last undone diet change",
	Args:  cobra.ExactArgs(1),
	RunE:  runRedo,
}

func init() {
	rootCmd.AddCommand(undoCmd)
	rootCmd.AddCommand(redoCmd)
}

func runUndo(cmd *cobra.Command, args []string) error {
	return runHistoryStep(cmd, args[0], func(e *history.Engine) (bool, error) {
		if !e.CanUndo() {
			return false, nil
		}
		return e.Undo()
	})
}

func runRedo(cmd *cobra.Command, args []string) error {
	return runHistoryStep(cmd, args[0], func(e *history.Engine) (bool, error) {
		if !e.CanRedo() {
			return false, nil
		}
		return e.Redo()
	})
}

func runHistoryStep(cmd *cobra.Command, clientUUID string, step func(*history.Engine) (bool, error)) error {
	database, s, cfg, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer database.Close()

	engine := history.NewEngine(s.Snapshots, clientUUID, history.Options{
		HistoryLimit: cfg.HistoryLimit,
	})
	if err := engine.Init(); err != nil {
		return err
	}

	moved, err := step(engine)
	if err != nil {
		return err
	}
	if !moved {
		fmt.Fprintln(cmd.OutOrStdout(), "Nothing to do.")
		return nil
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Current snapshot: %s\n", engine.CurrentSnapshotID())
	return nil
}
