package events

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/kamilw/dietplan/internal/domain"
)

// Writer handles writing events to the event log
type Writer struct {
	db *sql.DB
}

// NewWriter creates a new event writer
func NewWriter(db *sql.DB) *Writer {
	return &Writer{db: db}
}

// LogEvent writes an event to the event log
func (w *Writer) LogEvent(tx *sql.Tx, event *domain.Event) error {
	query := `
		INSERT INTO event_log (client_uuid, snapshot_uuid, event_type, payload)
		VALUES (?, ?, ?, ?)
	`

	executor := w.getExecutor(tx)
	_, err := executor.Exec(query, event.ClientUUID, event.SnapshotUUID, event.EventType, event.Payload)
	if err != nil {
		return fmt.Errorf("failed to write event: %w", err)
	}

	return nil
}

// LogSnapshotCreated logs a snapshot creation event
func (w *Writer) LogSnapshotCreated(tx *sql.Tx, snapshot *domain.Snapshot) error {
	payload, err := json.Marshal(map[string]interface{}{
		"trigger_type":        snapshot.TriggerType,
		"trigger_description": snapshot.TriggerDescription,
		"is_manual":           snapshot.IsManual,
	})
	if err != nil {
		return err
	}

	payloadStr := string(payload)
	event := &domain.Event{
		ClientUUID:   &snapshot.ClientUUID,
		SnapshotUUID: &snapshot.UUID,
		EventType:    "snapshot.created",
		Payload:      &payloadStr,
	}

	return w.LogEvent(tx, event)
}

// LogSnapshotRestored logs a snapshot restore event
func (w *Writer) LogSnapshotRestored(tx *sql.Tx, clientUUID, snapshotUUID string) error {
	event := &domain.Event{
		ClientUUID:   &clientUUID,
		SnapshotUUID: &snapshotUUID,
		EventType:    "snapshot.restored",
	}
	return w.LogEvent(tx, event)
}

// LogRefreshRequested logs a refresh signal for live-update consumers.
// Restores performed by the undo/redo engine skip this event because the
// engine drives its own refresh.
func (w *Writer) LogRefreshRequested(tx *sql.Tx, clientUUID string) error {
	event := &domain.Event{
		ClientUUID: &clientUUID,
		EventType:  "client.refresh_requested",
	}
	return w.LogEvent(tx, event)
}

// LogCurrentRepaired logs a current-pointer repair event
func (w *Writer) LogCurrentRepaired(tx *sql.Tx, clientUUID, snapshotUUID string) error {
	event := &domain.Event{
		ClientUUID:   &clientUUID,
		SnapshotUUID: &snapshotUUID,
		EventType:    "snapshot.current_repaired",
	}
	return w.LogEvent(tx, event)
}

// LogNotesRestored logs a notes-only restore event
func (w *Writer) LogNotesRestored(tx *sql.Tx, clientUUID, snapshotUUID string) error {
	event := &domain.Event{
		ClientUUID:   &clientUUID,
		SnapshotUUID: &snapshotUUID,
		EventType:    "client.notes_restored",
	}
	return w.LogEvent(tx, event)
}

// executor abstracts sql.Tx and sql.DB for event writes
type executor interface {
	Exec(query string, args ...interface{}) (sql.Result, error)
}

func (w *Writer) getExecutor(tx *sql.Tx) executor {
	if tx != nil {
		return tx
	}
	return w.db
}
