package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/kamilw/dietplan/internal/domain"
)

// ClientStore handles client persistence operations.
type ClientStore struct {
	store *Store
}

// ClientCreateParams contains parameters for creating a new client.
type ClientCreateParams struct {
	Name  string
	Notes string
}

// Create creates a new client.
func (cs *ClientStore) Create(params ClientCreateParams) (*domain.Client, error) {
	if params.Name == "" {
		return nil, fmt.Errorf("client name is required")
	}

	clientUUID := uuid.NewString()
	_, err := cs.store.db.Exec(`
		INSERT INTO clients (uuid, name, notes) VALUES (?, ?, ?)
	`, clientUUID, params.Name, params.Notes)
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	return cs.Get(clientUUID)
}

// Get returns a client by UUID.
func (cs *ClientStore) Get(clientUUID string) (*domain.Client, error) {
	var c domain.Client
	var createdAt, updatedAt string
	err := cs.store.db.QueryRow(`
		SELECT uuid, name, notes, created_at, updated_at
		FROM clients WHERE uuid = ?
	`, clientUUID).Scan(&c.UUID, &c.Name, &c.Notes, &createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, domain.ErrClientNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get client: %w", err)
	}

	if c.CreatedAt, err = domain.ParseTimestamp(createdAt); err != nil {
		return nil, fmt.Errorf("failed to parse client created_at: %w", err)
	}
	if c.UpdatedAt, err = domain.ParseTimestamp(updatedAt); err != nil {
		return nil, fmt.Errorf("failed to parse client updated_at: %w", err)
	}
	return &c, nil
}

// List returns all clients ordered by name.
func (cs *ClientStore) List() ([]domain.Client, error) {
	rows, err := cs.store.db.Query(`
		SELECT uuid, name, notes, created_at, updated_at
		FROM clients ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	defer rows.Close()

	var clients []domain.Client
	for rows.Next() {
		var c domain.Client
		var createdAt, updatedAt string
		if err := rows.Scan(&c.UUID, &c.Name, &c.Notes, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan client: %w", err)
		}
		if c.CreatedAt, err = domain.ParseTimestamp(createdAt); err != nil {
			return nil, fmt.Errorf("failed to parse client created_at: %w", err)
		}
		if c.UpdatedAt, err = domain.ParseTimestamp(updatedAt); err != nil {
			return nil, fmt.Errorf("failed to parse client updated_at: %w", err)
		}
		clients = append(clients, c)
	}
	return clients, rows.Err()
}

// UpdateNotes replaces a client's important notes.
func (cs *ClientStore) UpdateNotes(clientUUID, notes string) error {
	result, err := cs.store.db.Exec(`
		UPDATE clients
		SET notes = ?, updated_at = strftime('%Y-%m-%dT%H:%M:%SZ','now')
		WHERE uuid = ?
	`, notes, clientUUID)
	if err != nil {
		return fmt.Errorf("failed to update notes: %w", err)
	}
	affected, _ := result.RowsAffected()
	if affected == 0 {
		return domain.ErrClientNotFound
	}
	return nil
}
