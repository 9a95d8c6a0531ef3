package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/kamilw/dietplan/internal/diff"
	"github.com/kamilw/dietplan/internal/domain"
	"github.com/kamilw/dietplan/internal/store"
)

var snapshotsCmd = &cobra.Command{
	Use:   "snapshots",
	Short: "Inspect and manage diet snapshots",
}

var snapshotsLsCmd = &cobra.Command{
	Use:   "ls <client-uuid>",
	Short: "List a client's snapshots, newest first",
	Args:  cobra.ExactArgs(1),
	RunE:  runSnapshotsLs,
}

var snapshotsCreateCmd = &cobra.Command{
	Use:   "create <client-uuid>",
	Short: "Create a snapshot of the client's current diet state",
	Args:  cobra.ExactArgs(1),
	RunE:  runSnapshotsCreate,
}

var snapshotsRestoreCmd = &cobra.Command{
	Use:   "restore <snapshot-uuid>",
	Short: "Restore a snapshot as the client's current state",
	Long: `Restores a snapshot: the target becomes the client's current snapshot
and the previous current one is unmarked, atomically. Works for manual
snapshots too.

Use --notes-only to bring back only the important-notes field without
touching diet content.`,
	Args: cobra.ExactArgs(1),
	RunE: runSnapshotsRestore,
}

var snapshotsDiffCmd = &cobra.Command{
	Use:   "diff <snapshot-uuid> <snapshot-uuid>",
	Short: "Show a unified diff between two snapshots' payloads",
	Args:  cobra.ExactArgs(2),
	RunE:  runSnapshotsDiff,
}

var (
	snapshotsLsAll        bool
	snapshotsLsLimit      int
	snapshotsCreateManual bool
	snapshotsCreateDesc   string
	snapshotsRestoreNotes bool
)

func init() {
	rootCmd.AddCommand(snapshotsCmd)
	snapshotsCmd.AddCommand(snapshotsLsCmd)
	snapshotsCmd.AddCommand(snapshotsCreateCmd)
	snapshotsCmd.AddCommand(snapshotsRestoreCmd)
	snapshotsCmd.AddCommand(snapshotsDiffCmd)

	snapshotsLsCmd.Flags().BoolVar(&snapshotsLsAll, "all", false, "Include manual snapshots")
	snapshotsLsCmd.Flags().IntVar(&snapshotsLsLimit, "limit", 0, "Maximum number of snapshots")
	snapshotsCreateCmd.Flags().BoolVar(&snapshotsCreateManual, "manual", false, "Manual save, excluded from undo history")
	snapshotsCreateCmd.Flags().StringVar(&snapshotsCreateDesc, "description", "", "Human-readable trigger description")
	snapshotsRestoreCmd.Flags().BoolVar(&snapshotsRestoreNotes, "notes-only", false, "Restore only the important notes")
}

func runSnapshotsLs(cmd *cobra.Command, args []string) error {
	database, s, _, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer database.Close()

	snapshots, err := s.Snapshots.List(args[0], store.ListOptions{
		Limit:         snapshotsLsLimit,
		ExcludeManual: !snapshotsLsAll,
	})
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "UUID\tCREATED\tCURRENT\tMANUAL\tTRIGGER\tDESCRIPTION")
	for _, snap := range snapshots {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			snap.UUID,
			snap.CreatedAt.Format("2006-01-02 15:04:05"),
			mark(snap.IsCurrent),
			mark(snap.IsManual),
			snap.TriggerType,
			snap.TriggerDescription,
		)
	}
	return w.Flush()
}

func runSnapshotsCreate(cmd *cobra.Command, args []string) error {
	database, s, _, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer database.Close()

	trigger := domain.TriggerMealEdited
	if snapshotsCreateManual {
		trigger = domain.TriggerManualSave
	}

	snapshot, err := s.Snapshots.Create(args[0], store.CreateParams{
		TriggerType:        trigger,
		TriggerDescription: snapshotsCreateDesc,
		Manual:             snapshotsCreateManual,
		SkipThrottling:     true,
	})
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), snapshot.UUID)
	return nil
}

func runSnapshotsRestore(cmd *cobra.Command, args []string) error {
	database, s, _, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer database.Close()

	if snapshotsRestoreNotes {
		return s.Snapshots.RestoreNotes(args[0])
	}
	return s.Snapshots.Restore(args[0], store.RestoreOptions{})
}

func runSnapshotsDiff(cmd *cobra.Command, args []string) error {
	database, s, _, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer database.Close()

	a, err := s.Snapshots.Get(args[0])
	if err != nil {
		return err
	}
	b, err := s.Snapshots.Get(args[1])
	if err != nil {
		return err
	}

	text, err := diff.Snapshots(a, b)
	if err != nil {
		return err
	}
	if text == "" {
		fmt.Fprintln(cmd.OutOrStdout(), "Snapshots are identical.")
		return nil
	}
	fmt.Fprint(cmd.OutOrStdout(), text)
	return nil
}

func mark(b bool) string {
	if b {
		return "*"
	}
	return ""
}
