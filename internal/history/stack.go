// Package history implements the snapshot undo/redo engine: the derived
// past/current/future stack, the orchestrator sequencing backend restores,
// and a generic in-memory history for transient editor state.
package history

import (
	"github.com/kamilw/dietplan/internal/domain"
)

// Stack is the derived in-memory view of a client's snapshot history.
//
// Past is ordered so Past[0] is the next undo target (the most recent
// snapshot before current). Future is ordered so the last element is the
// next redo target. Together with Current they partition the client's known
// non-manual snapshots.
type Stack struct {
	Past    []domain.Snapshot
	Current domain.Snapshot
	Future  []domain.Snapshot
}

// BuildStack derives a Stack from a flat newest-first snapshot list.
// Manual snapshots are excluded: they are kept for explicit restore but do
// not participate in undo/redo history.
//
// The newest current-flagged snapshot becomes Current; anything newer goes
// to Future, anything older to Past. Returns nil for an empty list or when
// no snapshot is flagged current — the caller is expected to repair via the
// store's EnsureCurrent before rebuilding.
func BuildStack(snapshots []domain.Snapshot) *Stack {
	var automatic []domain.Snapshot
	for _, s := range snapshots {
		if !s.IsManual {
			automatic = append(automatic, s)
		}
	}
	if len(automatic) == 0 {
		return nil
	}

	currentIdx := -1
	for i, s := range automatic {
		if s.IsCurrent {
			currentIdx = i
			break
		}
	}
	if currentIdx == -1 {
		return nil
	}

	stack := &Stack{Current: automatic[currentIdx]}

	// Input is newest first: entries before current are redo targets. Future
	// keeps the next redo last, so reverse them.
	for i := currentIdx - 1; i >= 0; i-- {
		stack.Future = append(stack.Future, automatic[i])
	}
	// Entries after current are already ordered most-recent-first, which is
	// exactly Past's pop order.
	stack.Past = append(stack.Past, automatic[currentIdx+1:]...)

	return stack
}

// Size returns the total number of snapshots held by the stack.
func (s *Stack) Size() int {
	if s == nil {
		return 0
	}
	return len(s.Past) + len(s.Future) + 1
}
