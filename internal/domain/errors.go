package domain

import (
	"errors"
	"fmt"
)

// ErrSnapshotNotFound is returned when a snapshot UUID does not exist.
var ErrSnapshotNotFound = errors.New("snapshot not found")

// ErrClientNotFound is returned when a client UUID does not exist.
var ErrClientNotFound = errors.New("client not found")

// NoCurrentSnapshotError indicates a client has snapshots but none is flagged
// current. This is a data-integrity condition handled by a repair operation,
// not a normal runtime state.
type NoCurrentSnapshotError struct {
	ClientUUID string
}

func (e *NoCurrentSnapshotError) Error() string {
	return fmt.Sprintf("client %s has no current snapshot", e.ClientUUID)
}
