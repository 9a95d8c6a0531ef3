package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kamilw/dietplan/internal/domain"
	"github.com/kamilw/dietplan/internal/events"
)

// ThrottleWindow is the coalescing window for automatic snapshots. Rapid
// successive edits within the window reuse the previous snapshot instead of
// flooding history.
const ThrottleWindow = 2 * time.Second

// SnapshotStore handles snapshot persistence operations.
type SnapshotStore struct {
	store *Store

	// now is swappable for tests.
	now func() time.Time
}

// ListOptions configures snapshot listing.
type ListOptions struct {
	// Limit caps the number of returned snapshots; 0 means no limit.
	Limit int
	// ExcludeManual drops manually saved snapshots from the result.
	ExcludeManual bool
}

// CreateParams contains parameters for creating a new snapshot.
type CreateParams struct {
	TriggerType        domain.TriggerType
	TriggerDescription string
	Manual             bool
	Payload            domain.DietPayload
	// SkipThrottling bypasses the coalescing window for automatic snapshots.
	SkipThrottling bool
}

// RestoreOptions configures a snapshot restore.
type RestoreOptions struct {
	// SkipRefresh suppresses the refresh event live-update consumers listen
	// for. The undo/redo engine sets it because it drives its own refresh.
	SkipRefresh bool
}

func (ss *SnapshotStore) clock() time.Time {
	if ss.now != nil {
		return ss.now()
	}
	return time.Now()
}

// List returns a client's snapshots ordered newest first.
func (ss *SnapshotStore) List(clientUUID string, opts ListOptions) ([]domain.Snapshot, error) {
	query := `
		SELECT uuid, client_uuid, created_at, is_current, is_manual,
		       trigger_type, trigger_description, payload
		FROM snapshots
		WHERE client_uuid = ?
	`
	args := []interface{}{clientUUID}
	if opts.ExcludeManual {
		query += " AND is_manual = 0"
	}
	query += " ORDER BY created_at DESC, rowid DESC"
	if opts.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, opts.Limit)
	}

	rows, err := ss.store.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}
	defer rows.Close()

	var snapshots []domain.Snapshot
	for rows.Next() {
		s, err := scanSnapshot(rows)
		if err != nil {
			return nil, err
		}
		snapshots = append(snapshots, *s)
	}
	return snapshots, rows.Err()
}

// Get returns a single snapshot by UUID.
func (ss *SnapshotStore) Get(snapshotUUID string) (*domain.Snapshot, error) {
	row := ss.store.db.QueryRow(`
		SELECT uuid, client_uuid, created_at, is_current, is_manual,
		       trigger_type, trigger_description, payload
		FROM snapshots
		WHERE uuid = ?
	`, snapshotUUID)

	s, err := scanSnapshot(row)
	if err == sql.ErrNoRows {
		return nil, domain.ErrSnapshotNotFound
	}
	return s, err
}

// Create persists a new snapshot and makes it the client's current one.
// Automatic snapshots created within ThrottleWindow of the previous
// automatic snapshot are coalesced: the existing snapshot is returned and
// nothing is written, unless params.SkipThrottling is set.
func (ss *SnapshotStore) Create(clientUUID string, params CreateParams) (*domain.Snapshot, error) {
	if !params.Manual && !params.SkipThrottling {
		latest, err := ss.latestAutomatic(clientUUID)
		if err != nil {
			return nil, err
		}
		if latest != nil && ss.clock().Sub(latest.CreatedAt) < ThrottleWindow {
			return latest, nil
		}
	}

	payload, err := json.Marshal(params.Payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode payload: %w", err)
	}

	snapshot := &domain.Snapshot{
		UUID:               uuid.NewString(),
		ClientUUID:         clientUUID,
		CreatedAt:          ss.clock().UTC(),
		IsCurrent:          !params.Manual,
		IsManual:           params.Manual,
		TriggerType:        params.TriggerType,
		TriggerDescription: params.TriggerDescription,
		Payload:            params.Payload,
	}

	err = ss.store.withTx(func(tx *sql.Tx, ew *events.Writer) error {
		// Manual saves do not move the current pointer; they are side
		// captures kept for explicit restore.
		if !params.Manual {
			if _, err := tx.Exec(
				"UPDATE snapshots SET is_current = 0 WHERE client_uuid = ? AND is_current = 1",
				clientUUID,
			); err != nil {
				return fmt.Errorf("failed to unmark current snapshot: %w", err)
			}
		}

		if _, err := tx.Exec(`
			INSERT INTO snapshots (
				uuid, client_uuid, created_at, is_current, is_manual,
				trigger_type, trigger_description, payload
			)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`,
			snapshot.UUID,
			snapshot.ClientUUID,
			domain.FormatTimestamp(snapshot.CreatedAt),
			boolToInt(snapshot.IsCurrent),
			boolToInt(snapshot.IsManual),
			string(snapshot.TriggerType),
			snapshot.TriggerDescription,
			string(payload),
		); err != nil {
			return fmt.Errorf("failed to insert snapshot: %w", err)
		}

		return ew.LogSnapshotCreated(tx, snapshot)
	})
	if err != nil {
		return nil, err
	}

	return snapshot, nil
}

// Restore makes the target snapshot the client's current one. The unmark of
// the previous current and the mark of the target happen in one transaction;
// combined with the partial unique index on (client_uuid) WHERE is_current,
// a two-current state is unrepresentable.
func (ss *SnapshotStore) Restore(snapshotUUID string, opts RestoreOptions) error {
	return ss.store.withTx(func(tx *sql.Tx, ew *events.Writer) error {
		var clientUUID string
		err := tx.QueryRow(
			"SELECT client_uuid FROM snapshots WHERE uuid = ?", snapshotUUID,
		).Scan(&clientUUID)
		if err == sql.ErrNoRows {
			return domain.ErrSnapshotNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to look up snapshot: %w", err)
		}

		if _, err := tx.Exec(
			"UPDATE snapshots SET is_current = 0 WHERE client_uuid = ? AND is_current = 1",
			clientUUID,
		); err != nil {
			return fmt.Errorf("failed to unmark current snapshot: %w", err)
		}
		if _, err := tx.Exec(
			"UPDATE snapshots SET is_current = 1 WHERE uuid = ?", snapshotUUID,
		); err != nil {
			return fmt.Errorf("failed to mark snapshot current: %w", err)
		}

		if err := ew.LogSnapshotRestored(tx, clientUUID, snapshotUUID); err != nil {
			return err
		}
		if !opts.SkipRefresh {
			return ew.LogRefreshRequested(tx, clientUUID)
		}
		return nil
	})
}

// EnsureCurrent repairs the current pointer for a client: unless exactly one
// automatic snapshot holds the flag, all current flags are cleared and the
// newest automatic snapshot is promoted. A manual snapshot holding the flag
// (after an explicit archive restore) counts as needing repair, so automatic
// history regains a current anchor.
func (ss *SnapshotStore) EnsureCurrent(clientUUID string) error {
	return ss.store.withTx(func(tx *sql.Tx, ew *events.Writer) error {
		var count int
		if err := tx.QueryRow(
			"SELECT COUNT(*) FROM snapshots WHERE client_uuid = ? AND is_current = 1 AND is_manual = 0",
			clientUUID,
		).Scan(&count); err != nil {
			return fmt.Errorf("failed to count current snapshots: %w", err)
		}
		if count == 1 {
			return nil
		}

		var newest string
		err := tx.QueryRow(`
			SELECT uuid FROM snapshots
			WHERE client_uuid = ? AND is_manual = 0
			ORDER BY created_at DESC, rowid DESC
			LIMIT 1
		`, clientUUID).Scan(&newest)
		if err == sql.ErrNoRows {
			// No automatic snapshots: nothing to promote.
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to find newest snapshot: %w", err)
		}

		if _, err := tx.Exec(
			"UPDATE snapshots SET is_current = 0 WHERE client_uuid = ? AND is_current = 1",
			clientUUID,
		); err != nil {
			return fmt.Errorf("failed to clear current flags: %w", err)
		}
		if _, err := tx.Exec(
			"UPDATE snapshots SET is_current = 1 WHERE uuid = ?", newest,
		); err != nil {
			return fmt.Errorf("failed to promote newest snapshot: %w", err)
		}

		return ew.LogCurrentRepaired(tx, clientUUID, newest)
	})
}

// RestoreNotes copies only the important-notes field from a snapshot's
// payload back onto the client, leaving diet content and the current pointer
// untouched.
func (ss *SnapshotStore) RestoreNotes(snapshotUUID string) error {
	snapshot, err := ss.Get(snapshotUUID)
	if err != nil {
		return err
	}

	return ss.store.withTx(func(tx *sql.Tx, ew *events.Writer) error {
		result, err := tx.Exec(`
			UPDATE clients
			SET notes = ?, updated_at = strftime('%Y-%m-%dT%H:%M:%SZ','now')
			WHERE uuid = ?
		`, snapshot.Payload.ImportantNotes, snapshot.ClientUUID)
		if err != nil {
			return fmt.Errorf("failed to restore notes: %w", err)
		}
		affected, _ := result.RowsAffected()
		if affected == 0 {
			return domain.ErrClientNotFound
		}

		return ew.LogNotesRestored(tx, snapshot.ClientUUID, snapshotUUID)
	})
}

// latestAutomatic returns the newest automatic snapshot for a client, or nil.
func (ss *SnapshotStore) latestAutomatic(clientUUID string) (*domain.Snapshot, error) {
	row := ss.store.db.QueryRow(`
		SELECT uuid, client_uuid, created_at, is_current, is_manual,
		       trigger_type, trigger_description, payload
		FROM snapshots
		WHERE client_uuid = ? AND is_manual = 0
		ORDER BY created_at DESC, rowid DESC
		LIMIT 1
	`, clientUUID)

	s, err := scanSnapshot(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return s, err
}

// scanner covers *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanSnapshot(row scanner) (*domain.Snapshot, error) {
	var s domain.Snapshot
	var createdAt, payload, triggerType string
	var isCurrent, isManual int

	err := row.Scan(&s.UUID, &s.ClientUUID, &createdAt, &isCurrent, &isManual,
		&triggerType, &s.TriggerDescription, &payload)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan snapshot: %w", err)
	}

	s.CreatedAt, err = domain.ParseTimestamp(createdAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse snapshot timestamp: %w", err)
	}
	s.IsCurrent = isCurrent == 1
	s.IsManual = isManual == 1
	s.TriggerType = domain.TriggerType(triggerType)
	if err := json.Unmarshal([]byte(payload), &s.Payload); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot payload: %w", err)
	}
	return &s, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
