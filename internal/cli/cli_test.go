package cli

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

// setupTestEnv points the CLI at a fresh temp database.
func setupTestEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DIETPLAN_DB_PATH", filepath.Join(t.TempDir(), "test.db"))
}

func newTestCmd() (*cobra.Command, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	cmd := &cobra.Command{}
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	return cmd, buf
}

func resetSnapshotGlobals() {
	snapshotsLsAll = false
	snapshotsLsLimit = 0
	snapshotsCreateManual = false
	snapshotsCreateDesc = ""
	snapshotsRestoreNotes = false
}

// addTestClient creates a client through the CLI and returns its UUID.
func addTestClient(t *testing.T, name string) string {
	t.Helper()
	clientsAddNotes = ""
	cmd, buf := newTestCmd()
	if err := runClientsAdd(cmd, []string{name}); err != nil {
		t.Fatalf("runClientsAdd failed: %v", err)
	}
	return strings.TrimSpace(buf.String())
}

func TestClientsAddAndLs(t *testing.T) {
	setupTestEnv(t)

	uuid := addTestClient(t, "Jan Kowalski")
	if uuid == "" {
		t.Fatal("clients add printed no UUID")
	}

	cmd, buf := newTestCmd()
	if err := runClientsLs(cmd, nil); err != nil {
		t.Fatalf("runClientsLs failed: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "Jan Kowalski") || !strings.Contains(out, uuid) {
		t.Errorf("clients ls output missing client:\n%s", out)
	}
}

func TestSnapshotLifecycle(t *testing.T) {
	setupTestEnv(t)
	resetSnapshotGlobals()

	clientUUID := addTestClient(t, "Anna")

	// Two snapshots via the CLI.
	cmd, buf := newTestCmd()
	if err := runSnapshotsCreate(cmd, []string{clientUUID}); err != nil {
		t.Fatalf("runSnapshotsCreate failed: %v", err)
	}
	first := strings.TrimSpace(buf.String())

	cmd, buf = newTestCmd()
	if err := runSnapshotsCreate(cmd, []string{clientUUID}); err != nil {
		t.Fatalf("runSnapshotsCreate failed: %v", err)
	}
	second := strings.TrimSpace(buf.String())

	cmd, buf = newTestCmd()
	if err := runSnapshotsLs(cmd, []string{clientUUID}); err != nil {
		t.Fatalf("runSnapshotsLs failed: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, first) || !strings.Contains(out, second) {
		t.Errorf("snapshots ls missing snapshots:\n%s", out)
	}

	// Restore the first snapshot and confirm it is marked current.
	cmd, _ = newTestCmd()
	if err := runSnapshotsRestore(cmd, []string{first}); err != nil {
		t.Fatalf("runSnapshotsRestore failed: %v", err)
	}

	cmd, buf = newTestCmd()
	if err := runSnapshotsLs(cmd, []string{clientUUID}); err != nil {
		t.Fatalf("runSnapshotsLs failed: %v", err)
	}
	for _, line := range strings.Split(buf.String(), "\n") {
		if strings.Contains(line, first) && !strings.Contains(line, "*") {
			t.Errorf("restored snapshot not current:\n%s", line)
		}
	}

	// Identical payloads diff clean.
	cmd, buf = newTestCmd()
	if err := runSnapshotsDiff(cmd, []string{first, second}); err != nil {
		t.Fatalf("runSnapshotsDiff failed: %v", err)
	}
	if !strings.Contains(buf.String(), "identical") {
		t.Errorf("diff of identical payloads:\n%s", buf.String())
	}
}

func TestUndoRedoCommands(t *testing.T) {
	setupTestEnv(t)
	resetSnapshotGlobals()

	clientUUID := addTestClient(t, "Bartek")

	// Nothing to undo on a fresh client (init synthesizes the baseline).
	cmd, buf := newTestCmd()
	if err := runUndo(cmd, []string{clientUUID}); err != nil {
		t.Fatalf("runUndo failed: %v", err)
	}
	if !strings.Contains(buf.String(), "Nothing to do.") {
		t.Errorf("undo on fresh client = %q", buf.String())
	}

	// One more snapshot gives undo a target.
	cmd, _ = newTestCmd()
	if err := runSnapshotsCreate(cmd, []string{clientUUID}); err != nil {
		t.Fatalf("runSnapshotsCreate failed: %v", err)
	}

	cmd, buf = newTestCmd()
	if err := runUndo(cmd, []string{clientUUID}); err != nil {
		t.Fatalf("runUndo failed: %v", err)
	}
	if !strings.Contains(buf.String(), "Current snapshot:") {
		t.Errorf("undo output = %q", buf.String())
	}

	cmd, buf = newTestCmd()
	if err := runRedo(cmd, []string{clientUUID}); err != nil {
		t.Fatalf("runRedo failed: %v", err)
	}
	if !strings.Contains(buf.String(), "Current snapshot:") {
		t.Errorf("redo output = %q", buf.String())
	}
}
