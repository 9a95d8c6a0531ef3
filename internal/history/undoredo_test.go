package history

import (
	"testing"
)

type editorState struct {
	Text   string
	Values []float64
}

func cloneEditorState(s editorState) editorState {
	c := s
	c.Values = append([]float64(nil), s.Values...)
	return c
}

func TestUndoRedo_LinearHistory(t *testing.T) {
	h := NewUndoRedo(editorState{Text: "a"}, cloneEditorState)

	if h.CanUndo() || h.CanRedo() {
		t.Error("fresh history reports undo/redo available")
	}

	h.Push(editorState{Text: "b"})
	h.Push(editorState{Text: "c"})

	state, ok := h.Undo()
	if !ok || state.Text != "b" {
		t.Errorf("Undo = %+v, %v, want b", state, ok)
	}
	state, ok = h.Undo()
	if !ok || state.Text != "a" {
		t.Errorf("Undo = %+v, %v, want a", state, ok)
	}
	if _, ok := h.Undo(); ok {
		t.Error("Undo past the beginning succeeded")
	}

	state, ok = h.Redo()
	if !ok || state.Text != "b" {
		t.Errorf("Redo = %+v, %v, want b", state, ok)
	}
	state, ok = h.Redo()
	if !ok || state.Text != "c" {
		t.Errorf("Redo = %+v, %v, want c", state, ok)
	}
	if _, ok := h.Redo(); ok {
		t.Error("Redo past the end succeeded")
	}
}

func TestUndoRedo_PushClearsFuture(t *testing.T) {
	h := NewUndoRedo(editorState{Text: "a"}, cloneEditorState)
	h.Push(editorState{Text: "b"})
	h.Undo()

	if !h.CanRedo() {
		t.Fatal("CanRedo false after undo")
	}
	h.Push(editorState{Text: "x"})
	if h.CanRedo() {
		t.Error("redo branch survived a new edit")
	}
}

func TestUndoRedo_HistoryEntriesAreIsolated(t *testing.T) {
	live := editorState{Text: "a", Values: []float64{150}}
	h := NewUndoRedo(live, cloneEditorState)

	// Mutating live state after capture must not alter history.
	live.Values[0] = 999
	h.Push(editorState{Text: "b", Values: []float64{1}})

	state, _ := h.Undo()
	if state.Values[0] != 150 {
		t.Errorf("history entry mutated: %v", state.Values[0])
	}

	// Mutating a returned value must not alter the stored present.
	state.Values[0] = 777
	if h.Present().Values[0] != 150 {
		t.Errorf("present mutated through returned copy: %v", h.Present().Values[0])
	}
}
