package history

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/kamilw/dietplan/internal/domain"
	"github.com/kamilw/dietplan/internal/store"
)

// Backend is the persistence collaborator the engine drives. It is satisfied
// by *store.SnapshotStore.
type Backend interface {
	List(clientUUID string, opts store.ListOptions) ([]domain.Snapshot, error)
	Create(clientUUID string, params store.CreateParams) (*domain.Snapshot, error)
	Restore(snapshotUUID string, opts store.RestoreOptions) error
	EnsureCurrent(clientUUID string) error
}

// RealtimeGuard suppresses reaction to backend change notifications while a
// self-initiated restore is in flight. Raise is called before the restore;
// Lower is called after a short delay once the operation settles, so
// notifications triggered by the restore itself are still swallowed.
type RealtimeGuard interface {
	Raise()
	Lower()
}

// Defaults for the engine's timing knobs.
const (
	DefaultDebounce      = 500 * time.Millisecond
	DefaultGuardDelay    = 500 * time.Millisecond
	DefaultSlowThreshold = time.Second
	DefaultHistoryLimit  = 50
)

// Options configures an Engine. All fields are optional.
type Options struct {
	// Refresh is invoked after a successful undo/redo so the caller re-reads
	// current diet state from the backend.
	Refresh func()
	// CloseEditor is invoked before a transition so transient editors (for
	// example a macro calculator panel) are not left showing stale state.
	CloseEditor func()
	// Guard is raised around every restore call.
	Guard RealtimeGuard
	// ShowProgress/HideProgress bracket operations slower than
	// SlowThreshold; fast operations never show the indicator.
	ShowProgress func()
	HideProgress func()

	Logf          func(format string, args ...any)
	Debounce      time.Duration
	GuardDelay    time.Duration
	SlowThreshold time.Duration
	HistoryLimit  int
	Now           func() time.Time
}

// Engine orchestrates snapshot-based undo/redo for one client. The local
// stack is mutated only after the backend has confirmed a restore, so local
// pointers can never diverge from the backend's current flag. At most one
// operation is in flight at a time; excess requests are dropped, not queued.
type Engine struct {
	backend    Backend
	clientUUID string

	mu        sync.Mutex
	stack     *Stack
	currentID string
	busy      bool
	lastOpAt  time.Time

	refresh       func()
	closeEditor   func()
	guard         RealtimeGuard
	showProgress  func()
	hideProgress  func()
	logf          func(format string, args ...any)
	debounce      time.Duration
	guardDelay    time.Duration
	slowThreshold time.Duration
	historyLimit  int
	now           func() time.Time
}

type operation int

const (
	opUndo operation = iota
	opRedo
)

func (op operation) String() string {
	if op == opUndo {
		return "undo"
	}
	return "redo"
}

// NewEngine creates an engine for the given client. Each client gets its own
// engine instance with its own guard state.
func NewEngine(backend Backend, clientUUID string, opts Options) *Engine {
	e := &Engine{
		backend:       backend,
		clientUUID:    clientUUID,
		refresh:       opts.Refresh,
		closeEditor:   opts.CloseEditor,
		guard:         opts.Guard,
		showProgress:  opts.ShowProgress,
		hideProgress:  opts.HideProgress,
		logf:          opts.Logf,
		debounce:      opts.Debounce,
		guardDelay:    opts.GuardDelay,
		slowThreshold: opts.SlowThreshold,
		historyLimit:  opts.HistoryLimit,
		now:           opts.Now,
	}
	if e.logf == nil {
		e.logf = func(format string, args ...any) {
			fmt.Fprintf(os.Stderr, format+"\n", args...)
		}
	}
	if e.debounce == 0 {
		e.debounce = DefaultDebounce
	}
	if e.guardDelay == 0 {
		e.guardDelay = DefaultGuardDelay
	}
	if e.slowThreshold == 0 {
		e.slowThreshold = DefaultSlowThreshold
	}
	if e.historyLimit == 0 {
		e.historyLimit = DefaultHistoryLimit
	}
	if e.now == nil {
		e.now = time.Now
	}
	return e
}

// Init loads the client's snapshot history and builds the stack. A client
// with no snapshots gets a synthesized baseline snapshot so the first edit
// still has an undo anchor. A history where no snapshot is flagged current
// is repaired through the backend and re-fetched.
func (e *Engine) Init() error {
	snapshots, err := e.list()
	if err != nil {
		return err
	}

	if len(snapshots) == 0 {
		created, err := e.backend.Create(e.clientUUID, store.CreateParams{
			TriggerType:        domain.TriggerClientCreated,
			TriggerDescription: "Utworzenie klienta",
			SkipThrottling:     true,
		})
		if err != nil {
			return fmt.Errorf("failed to create baseline snapshot: %w", err)
		}
		e.mu.Lock()
		e.stack = &Stack{Current: *created}
		e.currentID = created.UUID
		e.mu.Unlock()
		return nil
	}

	stack := BuildStack(snapshots)
	if stack == nil {
		// Snapshots exist but none is current: data repair case.
		if err := e.backend.EnsureCurrent(e.clientUUID); err != nil {
			return fmt.Errorf("failed to repair current snapshot: %w", err)
		}
		snapshots, err = e.list()
		if err != nil {
			return err
		}
		stack = BuildStack(snapshots)
		if stack == nil {
			return &domain.NoCurrentSnapshotError{ClientUUID: e.clientUUID}
		}
	}

	e.mu.Lock()
	e.stack = stack
	e.currentID = stack.Current.UUID
	e.mu.Unlock()
	return nil
}

// RefreshSnapshots re-fetches the snapshot list and rebuilds the stack.
// Used whenever local stack consistency is in doubt.
func (e *Engine) RefreshSnapshots() error {
	snapshots, err := e.list()
	if err != nil {
		return err
	}
	stack := BuildStack(snapshots)
	e.mu.Lock()
	e.stack = stack
	if stack != nil {
		e.currentID = stack.Current.UUID
	} else {
		e.currentID = ""
	}
	e.mu.Unlock()
	return nil
}

func (e *Engine) list() ([]domain.Snapshot, error) {
	snapshots, err := e.backend.List(e.clientUUID, store.ListOptions{
		Limit:         e.historyLimit,
		ExcludeManual: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}
	return snapshots, nil
}

// Undo restores the most recent snapshot before current. Returns false with
// a nil error when the request was dropped (busy, within the debounce
// window, or nothing to undo).
func (e *Engine) Undo() (bool, error) {
	return e.run(opUndo)
}

// Redo restores the snapshot undone last. Returns false with a nil error
// when the request was dropped.
func (e *Engine) Redo() (bool, error) {
	return e.run(opRedo)
}

func (e *Engine) run(op operation) (bool, error) {
	e.mu.Lock()
	now := e.now()
	if e.busy || now.Sub(e.lastOpAt) < e.debounce {
		e.mu.Unlock()
		return false, nil
	}
	if e.stack == nil {
		e.mu.Unlock()
		return false, nil
	}

	var target domain.Snapshot
	switch op {
	case opUndo:
		if len(e.stack.Past) == 0 {
			// canUndo should have prevented this; abort without corruption.
			e.mu.Unlock()
			e.logf("%s requested with empty past", op)
			return false, nil
		}
		target = e.stack.Past[0]
	case opRedo:
		if len(e.stack.Future) == 0 {
			e.mu.Unlock()
			e.logf("%s requested with empty future", op)
			return false, nil
		}
		target = e.stack.Future[len(e.stack.Future)-1]
	}
	e.busy = true
	e.lastOpAt = now
	e.mu.Unlock()

	if e.closeEditor != nil {
		e.closeEditor()
	}
	if e.guard != nil {
		e.guard.Raise()
	}

	var slowTimer *time.Timer
	if e.showProgress != nil {
		slowTimer = time.AfterFunc(e.slowThreshold, e.showProgress)
	}

	// The engine manages its own refresh, so the backend's is skipped.
	err := e.backend.Restore(target.UUID, store.RestoreOptions{SkipRefresh: true})

	if slowTimer != nil {
		if !slowTimer.Stop() && e.hideProgress != nil {
			e.hideProgress()
		}
	}

	var stale bool
	e.mu.Lock()
	if err == nil {
		stale = !e.applyTransition(op, target)
	}
	e.busy = false
	e.mu.Unlock()

	// Let in-flight change notifications triggered by the restore arrive
	// while the guard is still up.
	if e.guard != nil {
		time.AfterFunc(e.guardDelay, e.guard.Lower)
	}

	if err != nil {
		e.logf("%s failed for snapshot %s: %v", op, target.UUID, err)
		return false, fmt.Errorf("failed to restore snapshot %s: %w", target.UUID, err)
	}

	if stale {
		if err := e.RefreshSnapshots(); err != nil {
			e.logf("%s: failed to rebuild stack after restore: %v", op, err)
		}
	}

	if e.refresh != nil {
		e.refresh()
	}
	return true, nil
}

// applyTransition shifts the stack pointers for a backend-confirmed restore.
// Caller holds e.mu. Returns false when the stack no longer matches the state
// the operation started from, for example because a new snapshot arrived
// while the restore was in flight; the caller then re-fetches instead of
// shifting blind.
func (e *Engine) applyTransition(op operation, target domain.Snapshot) bool {
	if e.stack == nil {
		return false
	}
	previous := e.stack.Current
	switch op {
	case opUndo:
		if len(e.stack.Past) == 0 || e.stack.Past[0].UUID != target.UUID {
			return false
		}
		e.stack.Past = append([]domain.Snapshot(nil), e.stack.Past[1:]...)
		e.stack.Future = append(e.stack.Future, previous)
	case opRedo:
		if len(e.stack.Future) == 0 || e.stack.Future[len(e.stack.Future)-1].UUID != target.UUID {
			return false
		}
		e.stack.Future = e.stack.Future[:len(e.stack.Future)-1]
		e.stack.Past = append([]domain.Snapshot{previous}, e.stack.Past...)
	}
	e.stack.Current = target
	e.currentID = target.UUID
	return true
}

// AddSnapshot records a freshly created snapshot as the new current in O(1),
// without re-fetching. The previous current joins the past and any redo
// targets are discarded: a new edit starts a fresh linear branch. Manual
// snapshots never enter automatic history.
func (e *Engine) AddSnapshot(s domain.Snapshot) {
	if s.IsManual {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.stack == nil {
		e.stack = &Stack{Current: s}
	} else {
		e.stack.Past = append([]domain.Snapshot{e.stack.Current}, e.stack.Past...)
		e.stack.Future = nil
		e.stack.Current = s
	}
	e.currentID = s.UUID
}

// CanUndo reports whether an undo target exists.
func (e *Engine) CanUndo() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.stack != nil && len(e.stack.Past) > 0
}

// CanRedo reports whether a redo target exists.
func (e *Engine) CanRedo() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.stack != nil && len(e.stack.Future) > 0
}

// IsBusy reports whether an operation is in flight.
func (e *Engine) IsBusy() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.busy
}

// CurrentSnapshotID returns the UUID of the current snapshot, or "" when no
// stack is loaded. UIs key remounts off this value.
func (e *Engine) CurrentSnapshotID() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.currentID
}

// Stack returns a copy of the current stack, or nil when none is loaded.
func (e *Engine) Stack() *Stack {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.stack == nil {
		return nil
	}
	return &Stack{
		Past:    append([]domain.Snapshot(nil), e.stack.Past...),
		Current: e.stack.Current,
		Future:  append([]domain.Snapshot(nil), e.stack.Future...),
	}
}
