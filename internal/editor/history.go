// Package editor implements the in-memory resume editing core: a document
// store that owns the current resume and a linear undo/redo history of
// whole-document snapshots.
package editor

import (
	"github.com/resumatehq/resumate/internal/document"
)

// History is a linear undo/redo log over full document snapshots. The past
// stack runs older-to-newer, the future stack newer-to-older after an undo.
// It knows nothing about section semantics; it only moves snapshots around.
//
// Snapshots are full deep copies, not deltas. That trades memory for
// simplicity, which is fine at the expected document sizes (tens of
// sections with small content arrays).
type History struct {
	past   []*document.ResumeDocument
	future []*document.ResumeDocument

	// Limit caps the past stack; oldest snapshots fall off first.
	// Zero means unbounded.
	Limit int
}

// Record notes a committed mutation: the pre-mutation snapshot goes onto the
// past stack and the future stack is discarded. Redoing a branch after a
// fresh edit is not supported.
func (h *History) Record(prev *document.ResumeDocument) {
	h.past = append(h.past, prev)
	if h.Limit > 0 && len(h.past) > h.Limit {
		h.past = h.past[len(h.past)-h.Limit:]
	}
	h.future = nil
}

// Undo exchanges the current document for the most recent past snapshot.
// Returns false, leaving everything untouched, when there is nothing to
// undo.
func (h *History) Undo(current *document.ResumeDocument) (*document.ResumeDocument, bool) {
	if len(h.past) == 0 {
		return nil, false
	}
	restored := h.past[len(h.past)-1]
	h.past = h.past[:len(h.past)-1]
	h.future = append([]*document.ResumeDocument{current}, h.future...)
	return restored, true
}

// Redo is the mirror of Undo. Returns false when the future stack is empty.
func (h *History) Redo(current *document.ResumeDocument) (*document.ResumeDocument, bool) {
	if len(h.future) == 0 {
		return nil, false
	}
	restored := h.future[0]
	h.future = h.future[1:]
	h.past = append(h.past, current)
	return restored, true
}

// CanUndo reports whether an undo would do anything.
func (h *History) CanUndo() bool { return len(h.past) > 0 }

// CanRedo reports whether a redo would do anything.
func (h *History) CanRedo() bool { return len(h.future) > 0 }

// Depth returns the sizes of the two stacks.
func (h *History) Depth() (past, future int) {
	return len(h.past), len(h.future)
}
